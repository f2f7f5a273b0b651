package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"lol-overlay/internal/cache"
	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"
	fxmodules "lol-overlay/internal/fx"
	"lol-overlay/internal/middleware"
	"lol-overlay/internal/scheduler"
	"lol-overlay/internal/server"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	apiServer *server.Server,
	sched *scheduler.Scheduler,
	resultCache *cache.Cache,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID(logger))
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	apiServer.Routes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.SchedulerEnabled {
				sched.Start()
			} else {
				logger.Info().Msg("scheduler is disabled via ENABLE_SCHEDULER env variable")
			}

			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			sched.Stop()
			resultCache.Close()

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
