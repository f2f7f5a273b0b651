package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	ServerPort string
	DBPath     string
	LogLevel   string

	// Upstream leaderboard listing (dpm.lol custom leaderboard).
	LeaderboardURL string

	// Profile site scraped for ladder positions.
	ProfileBaseURL string

	// Optional privileged override: a single leaderboard entry is replaced
	// with a direct Riot lookup when both values are set.
	RiotAPIKey     string
	OverridePUUID  string
	OverridePlayer string

	CleanupSchedule  string
	SchedulerEnabled bool
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DBPath:           getEnv("DB_PATH", "overlays.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LeaderboardURL:   getEnv("LEADERBOARD_URL", "https://dpm.lol/v1/leaderboards/custom/29e4e979-4c43-4ac7-bf5f-5f5195551f66"),
		ProfileBaseURL:   getEnv("PROFILE_BASE_URL", "https://op.gg/lol/summoners"),
		RiotAPIKey:       getEnv("RIOT_API_KEY", ""),
		OverridePUUID:    getEnv("OVERRIDE_PUUID", ""),
		OverridePlayer:   getEnv("OVERRIDE_PLAYER", "Hazel Alt"),
		CleanupSchedule:  getEnv("CLEANUP_CRON_SCHEDULE", ""),
		SchedulerEnabled: getEnv("ENABLE_SCHEDULER", "true") != "false",
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("override_enabled", cfg.RiotAPIKey != "" && cfg.OverridePUUID != "").
		Bool("scheduler_enabled", cfg.SchedulerEnabled).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
