package service

import (
	"context"
	"fmt"
	"strconv"

	"lol-overlay/internal/api"
	"lol-overlay/internal/constants"
	"lol-overlay/internal/domain"

	"github.com/rs/zerolog"
)

// MatchService looks up the live match a player is currently in. Requires a
// Riot API key; unlike the leaderboard pipeline this surface has no
// best-effort mode, a missing key is an error.
type MatchService struct {
	riot     *api.RiotClient
	gameData *GameDataService
	logger   zerolog.Logger
}

func NewMatchService(riot *api.RiotClient, gameData *GameDataService, logger zerolog.Logger) *MatchService {
	return &MatchService{riot: riot, gameData: gameData, logger: logger}
}

func (s *MatchService) GetCurrentMatch(ctx context.Context, gameName, tagLine string) ([]domain.Participant, error) {
	if !s.riot.Enabled() {
		return nil, fmt.Errorf("riot API key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("name", gameName).Str("tag", tagLine).Msg("looking up current match")

	account, err := s.riot.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		s.logger.Error().Err(err).Str("name", gameName).Str("tag", tagLine).Msg("failed to resolve account")
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	game, err := s.riot.GetActiveGame(ctx, account.PUUID)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", account.PUUID).Msg("failed to fetch active game")
		return nil, fmt.Errorf("failed to fetch active game: %w", err)
	}

	champions, err := s.gameData.GetLatestChampions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch champions: %w", err)
	}

	byKey := make(map[string]domain.Champion, len(champions))
	for _, c := range champions {
		byKey[c.Key] = c
	}

	participants := make([]domain.Participant, 0, len(game.Participants))
	for _, p := range game.Participants {
		name := "Unknown Champion"
		if c, ok := byKey[strconv.FormatInt(p.ChampionID, 10)]; ok {
			name = c.Name
		}
		participants = append(participants, domain.Participant{
			PUUID:        p.PUUID,
			TeamID:       p.TeamID,
			RiotID:       p.RiotID,
			ChampionID:   p.ChampionID,
			ChampionName: name,
		})
	}

	s.logger.Info().Int("participants", len(participants)).Msg("current match resolved")
	return participants, nil
}
