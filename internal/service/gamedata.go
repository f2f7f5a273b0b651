package service

import (
	"context"
	"fmt"

	"lol-overlay/internal/api"
	"lol-overlay/internal/cache"
	"lol-overlay/internal/constants"
	"lol-overlay/internal/domain"

	"github.com/rs/zerolog"
)

// GameDataService serves static game data (versions, champion lists) from
// the Data Dragon CDN, cached aggressively since it only changes per patch.
type GameDataService struct {
	ddragon *api.DDragonClient
	cache   *cache.Cache
	logger  zerolog.Logger
}

func NewGameDataService(ddragon *api.DDragonClient, resultCache *cache.Cache, logger zerolog.Logger) *GameDataService {
	return &GameDataService{ddragon: ddragon, cache: resultCache, logger: logger}
}

func (s *GameDataService) GetLatestVersion(ctx context.Context) (string, error) {
	if cached, ok := cache.GetAs[string](s.cache, constants.LatestVersionCacheKey); ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RiotAPITimeout)
	defer cancel()

	version, err := s.ddragon.GetLatestVersion(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch latest version")
		return "", err
	}

	s.cache.Set(constants.LatestVersionCacheKey, version, constants.LatestVersionCacheTTL)
	s.logger.Debug().Str("version", version).Msg("latest version fetched")
	return version, nil
}

func (s *GameDataService) GetChampions(ctx context.Context, version string) ([]domain.Champion, error) {
	cacheKey := constants.ChampionsCacheKeyPrefix + version

	if cached, ok := cache.GetAs[[]domain.Champion](s.cache, cacheKey); ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RiotAPITimeout)
	defer cancel()

	payload, err := s.ddragon.GetChampions(ctx, version)
	if err != nil {
		s.logger.Error().Err(err).Str("version", version).Msg("failed to fetch champions")
		return nil, err
	}

	champions := make([]domain.Champion, 0, len(payload.Data))
	for _, c := range payload.Data {
		champions = append(champions, domain.Champion{
			Name:  c.Name,
			ID:    c.ID,
			Key:   c.Key,
			Image: api.ChampionImageURL(version, c.Image.Full),
		})
	}

	s.cache.Set(cacheKey, champions, constants.ChampionsCacheTTL)
	s.logger.Info().Int("count", len(champions)).Str("version", version).Msg("champions fetched")
	return champions, nil
}

// GetLatestChampions resolves the newest version and returns its champion
// list.
func (s *GameDataService) GetLatestChampions(ctx context.Context) ([]domain.Champion, error) {
	version, err := s.GetLatestVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve latest version: %w", err)
	}
	return s.GetChampions(ctx, version)
}
