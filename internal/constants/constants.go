package constants

import "time"

const (
	LeaderboardCacheTTL   = 15 * time.Minute
	LatestVersionCacheTTL = 30 * time.Minute
	ChampionsCacheTTL     = 24 * time.Hour
	CacheSweepInterval    = 30 * time.Minute
)

const (
	LeaderboardAPITimeout = 5 * time.Second
	RiotAPITimeout        = 5 * time.Second
	ProfileFetchTimeout   = 15 * time.Second
	DatabaseTimeout       = 5 * time.Second
	RequestTimeout        = 30 * time.Second
)

// Outbound profile scrapes are throttled so a full roster refresh does not
// hammer the profile site.
const (
	ScrapeRatePerSecond = 10
	ScrapeBurst         = 20
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultCleanupSchedule = "0 */6 * * *"
	DefaultOverlayExpiry   = 2 * time.Hour
)

const (
	LeaderboardCacheKey     = "kc-leaderboard"
	RosterLeaderboardKey    = "kc-roster-leaderboard"
	LatestVersionCacheKey   = "lol-latest-version"
	ChampionsCacheKeyPrefix = "lol-champions-"
)
