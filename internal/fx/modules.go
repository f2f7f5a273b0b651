package fx

import (
	"context"

	"lol-overlay/internal/api"
	"lol-overlay/internal/cache"
	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"
	"lol-overlay/internal/database"
	"lol-overlay/internal/domain"
	"lol-overlay/internal/logger"
	"lol-overlay/internal/repository"
	"lol-overlay/internal/roster"
	"lol-overlay/internal/scheduler"
	"lol-overlay/internal/scrape"
	"lol-overlay/internal/server"
	"lol-overlay/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideExtractor() scrape.Extractor {
	return scrape.NewRegexExtractor()
}

func ProvideFetcher(cfg *config.Config, extractor scrape.Extractor, log zerolog.Logger) scrape.ProfileFetcher {
	return scrape.NewOpggFetcher(cfg, extractor, log)
}

func ProvideRoster() domain.Roster {
	return roster.KC()
}

func ProvideCache(log zerolog.Logger) *cache.Cache {
	return cache.New(constants.CacheSweepInterval, log)
}

func ProvideScheduler(overlays *repository.OverlayRepository, resultCache *cache.Cache, cfg *config.Config, log zerolog.Logger) *scheduler.Scheduler {
	jobs := []scheduler.Job{
		{Name: "expired-overlays", Run: overlays.CleanupExpired},
		{Name: "expired-cache-entries", Run: func(context.Context) (int, error) {
			return resultCache.Sweep(), nil
		}},
	}
	return scheduler.New(cfg.CleanupSchedule, jobs, log)
}

func ProvideLeaderboardService(
	dpm *api.DpmClient,
	riot *api.RiotClient,
	fetcher scrape.ProfileFetcher,
	kcRoster domain.Roster,
	resultCache *cache.Cache,
	cfg *config.Config,
	log zerolog.Logger,
) *service.LeaderboardService {
	return service.NewLeaderboardService(dpm, riot, fetcher, kcRoster, resultCache, cfg, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideCache),
	// repos
	fx.Provide(repository.NewOverlayRepository),
	// api clients
	fx.Provide(api.NewDpmClient),
	fx.Provide(api.NewRiotClient),
	fx.Provide(api.NewDDragonClient),
	// scrape
	fx.Provide(ProvideExtractor),
	fx.Provide(ProvideFetcher),
	fx.Provide(ProvideRoster),
	// svc
	fx.Provide(ProvideLeaderboardService),
	fx.Provide(service.NewGameDataService),
	fx.Provide(service.NewMatchService),
	// background
	fx.Provide(ProvideScheduler),
	// server
	fx.Provide(server.New),
)
