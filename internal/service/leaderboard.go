package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"lol-overlay/internal/api"
	"lol-overlay/internal/cache"
	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"
	"lol-overlay/internal/domain"
	"lol-overlay/internal/scrape"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// LeaderboardSource serves the authoritative leaderboard listing.
type LeaderboardSource interface {
	GetLeaderboard(ctx context.Context) (*api.LeaderboardResponse, error)
}

// LeagueSource serves privileged ranked lookups for the override step.
type LeagueSource interface {
	Enabled() bool
	GetLeagueEntries(ctx context.Context, puuid string) ([]api.LeagueEntry, error)
}

type LeaderboardService struct {
	source  LeaderboardSource
	league  LeagueSource
	fetcher scrape.ProfileFetcher
	roster  domain.Roster
	cache   *cache.Cache
	cfg     *config.Config
	logger  zerolog.Logger
}

func NewLeaderboardService(
	source LeaderboardSource,
	league LeagueSource,
	fetcher scrape.ProfileFetcher,
	roster domain.Roster,
	resultCache *cache.Cache,
	cfg *config.Config,
	logger zerolog.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		source:  source,
		league:  league,
		fetcher: fetcher,
		roster:  roster,
		cache:   resultCache,
		cfg:     cfg,
		logger:  logger,
	}
}

// GetLeaderboard returns the full assembled leaderboard, serving the cached
// copy when one is still fresh. The assembly fan-out is expensive, so the
// whole result is cached as one unit.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if cached, ok := cache.GetAs[[]domain.LeaderboardEntry](s.cache, constants.LeaderboardCacheKey); ok {
		s.logger.Debug().Int("players", len(cached)).Msg("returning cached leaderboard")
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	entries, err := s.assemble(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(constants.LeaderboardCacheKey, entries, constants.LeaderboardCacheTTL)
	return entries, nil
}

// assemble runs the full pipeline: upstream listing, dedup, privileged
// override, region-rank enrichment. Only the first step is fatal; the
// later steps degrade to less-complete data.
func (s *LeaderboardService) assemble(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	s.logger.Info().Msg("fetching leaderboard from API")

	payload, err := s.source.GetLeaderboard(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch leaderboard")
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	entries := dedupePlayers(payload.Players)
	s.logger.Info().Int("players", len(entries)).Msg("created leaderboard with unique players")

	entries = s.applyOverride(ctx, entries)

	s.logger.Info().Msg("fetching region ranks")
	start := time.Now()

	enriched, err := s.enrichRegionRanks(ctx, entries)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch region ranks, returning base leaderboard")
		return entries, nil
	}

	s.logger.Info().Dur("duration", time.Since(start)).Msg("region ranks fetched successfully")
	return enriched, nil
}

// dedupePlayers keeps the first occurrence of every display name, assigning
// leaderboard positions in first-seen order.
func dedupePlayers(players []api.LeaderboardPlayer) []domain.LeaderboardEntry {
	seen := make(map[string]struct{}, len(players))
	entries := make([]domain.LeaderboardEntry, 0, len(players))

	position := 1
	for _, p := range players {
		if _, ok := seen[p.DisplayName]; ok {
			continue
		}
		seen[p.DisplayName] = struct{}{}

		entries = append(entries, domain.LeaderboardEntry{
			Team:     p.Team,
			Player:   p.DisplayName,
			GameName: p.GameName,
			TagLine:  p.TagLine,
			Position: position,
			Rank:     p.Rank.Rank,
			Tier:     p.Rank.Tier,
			LP:       p.Rank.LeaguePoints,
			IsLive:   p.IsLive,
		})
		position++
	}

	return entries
}

// applyOverride replaces the designated player's entry with a direct ranked
// lookup when the lookup reports strictly more league points than the
// listing did. Its own failure never fails the assembly.
func (s *LeaderboardService) applyOverride(ctx context.Context, entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	if !s.league.Enabled() || s.cfg.OverridePUUID == "" {
		return entries
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RiotAPITimeout)
	defer cancel()

	leagueEntries, err := s.league.GetLeagueEntries(ctx, s.cfg.OverridePUUID)
	if err != nil {
		s.logger.Error().Err(err).Str("player", s.cfg.OverridePlayer).Msg("failed to fetch override data")
		return entries
	}
	if len(leagueEntries) == 0 {
		s.logger.Debug().Str("player", s.cfg.OverridePlayer).Msg("override lookup returned no entries")
		return entries
	}

	lookup := leagueEntries[0]

	for i := range entries {
		if entries[i].Player != s.cfg.OverridePlayer {
			continue
		}
		if lookup.LeaguePoints <= entries[i].LP {
			s.logger.Debug().
				Str("player", s.cfg.OverridePlayer).
				Int("lookup_lp", lookup.LeaguePoints).
				Int("listing_lp", entries[i].LP).
				Msg("override lookup not ahead of listing, keeping listing data")
			return entries
		}

		entries[i].Tier = lookup.Tier
		entries[i].Rank = lookup.Rank
		entries[i].LP = lookup.LeaguePoints
		entries[i].GameName = s.cfg.OverridePlayer
		s.logger.Info().Str("player", s.cfg.OverridePlayer).Int("lp", lookup.LeaguePoints).Msg("applied privileged override")
		return entries
	}

	// Player not in the listing at all: append them so the privileged
	// account still shows up on the board.
	entries = append(entries, domain.LeaderboardEntry{
		Team:     "KC",
		Player:   s.cfg.OverridePlayer,
		GameName: s.cfg.OverridePlayer,
		TagLine:  "ALT",
		Position: len(entries) + 1,
		Rank:     lookup.Rank,
		Tier:     lookup.Tier,
		LP:       lookup.LeaguePoints,
	})
	return entries
}

// enrichRegionRanks attaches scraped ladder positions to every entry,
// fanning out one aggregation per player. A player whose accounts all fail
// keeps their entry without a region rank; a failure of the phase itself is
// reported so the caller can fall back to the unenriched board.
func (s *LeaderboardService) enrichRegionRanks(ctx context.Context, entries []domain.LeaderboardEntry) (enriched []domain.LeaderboardEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			enriched = nil
			err = fmt.Errorf("region rank enrichment panicked: %v", r)
		}
	}()

	enriched = make([]domain.LeaderboardEntry, len(entries))
	copy(enriched, entries)

	g := new(errgroup.Group)
	for i := range enriched {
		i := i
		g.Go(func() (err error) {
			// A panic here escaped the per-account isolation inside
			// BestAccount; surface it as the phase error so the caller
			// falls back to the unenriched board. errgroup does not
			// forward panics to Wait, so recover on this goroutine.
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("enrichment for %s panicked: %v", enriched[i].Player, r)
				}
			}()

			entry := &enriched[i]

			accounts, ok := s.roster[entry.Player]
			if !ok {
				accounts = []domain.RiotAccount{{
					GameName: entry.GameName,
					TagLine:  entry.TagLine,
					Region:   "EUW",
				}}
			}

			if best := s.BestAccount(ctx, entry.Player, accounts); best != nil {
				entry.RegionRank = best.RegionRank
			}
			return nil
		})
	}

	if waitErr := g.Wait(); waitErr != nil {
		return nil, waitErr
	}
	return enriched, nil
}

// BestAccount fetches every account of one player concurrently and picks the
// one with the numerically lowest ladder position. An account whose position
// did not parse is always worse than any account with a real one. Returns
// nil when no account produced data; such a player contributes nothing
// rather than a placeholder.
func (s *LeaderboardService) BestAccount(ctx context.Context, player string, accounts []domain.RiotAccount) *domain.RankSnapshot {
	results := make([]*domain.RankSnapshot, len(accounts))

	g := new(errgroup.Group)
	for i, account := range accounts {
		i, account := i, account
		g.Go(func() error {
			// A panicking fetch must not take down the sibling
			// accounts; the slot just stays nil.
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error().
						Str("player", player).
						Str("account", account.GameName+"#"+account.TagLine).
						Interface("panic", r).
						Msg("profile fetch panicked")
				}
			}()
			results[i] = s.fetcher.Fetch(ctx, account)
			return nil
		})
	}
	// Fetches convert their own failures to nil results.
	_ = g.Wait()

	var best *domain.RankSnapshot
	bestPosition := math.Inf(1)

	for _, snapshot := range results {
		if snapshot == nil {
			continue
		}

		position := math.Inf(1)
		if n, ok := scrape.ParseLadderPosition(snapshot.RegionRank); ok {
			position = float64(n)
		}

		if best == nil || position < bestPosition {
			best = snapshot
			bestPosition = position
		}
	}

	if best == nil {
		s.logger.Warn().Str("player", player).Msg("no account returned data, omitting player")
		return nil
	}

	best.PlayerName = player
	s.logger.Debug().
		Str("player", player).
		Str("account", best.GameName+"#"+best.TagLine).
		Str("region_rank", best.RegionRank).
		Msg("selected best account")
	return best
}

// GetRosterLeaderboard builds the scrape-only roster leaderboard: every
// roster player's best account, players with zero resolvable data omitted.
func (s *LeaderboardService) GetRosterLeaderboard(ctx context.Context) []domain.RankSnapshot {
	if cached, ok := cache.GetAs[[]domain.RankSnapshot](s.cache, constants.RosterLeaderboardKey); ok {
		s.logger.Debug().Int("players", len(cached)).Msg("returning cached roster leaderboard")
		return cached
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Msg("fetching and processing roster leaderboard")

	players := make([]string, 0, len(s.roster))
	for player := range s.roster {
		players = append(players, player)
	}
	sort.Strings(players)

	results := make([]*domain.RankSnapshot, len(players))

	g := new(errgroup.Group)
	for i, player := range players {
		i, player := i, player
		g.Go(func() error {
			// One player's panic leaves only that slot empty.
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error().
						Str("player", player).
						Interface("panic", r).
						Msg("roster rank lookup panicked")
				}
			}()
			results[i] = s.BestAccount(ctx, player, s.roster[player])
			return nil
		})
	}
	_ = g.Wait()

	leaderboard := make([]domain.RankSnapshot, 0, len(results))
	for _, snapshot := range results {
		if snapshot != nil {
			leaderboard = append(leaderboard, *snapshot)
		}
	}

	s.cache.Set(constants.RosterLeaderboardKey, leaderboard, constants.LeaderboardCacheTTL)
	return leaderboard
}
