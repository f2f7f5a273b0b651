package domain

import "time"

// RiotAccount identifies one game account: riot ID (name + tag) plus region.
type RiotAccount struct {
	GameName string
	TagLine  string
	Region   string
}

// Roster maps a canonical player name to the accounts that player owns.
// Static configuration, read-only at runtime.
type Roster map[string][]RiotAccount

// RankSnapshot is what one profile-page scrape yields. RegionRank keeps the
// raw scraped string (may contain thousands separators, may be empty).
type RankSnapshot struct {
	PlayerName string `json:"playerName"`
	GameName   string `json:"inGameName"`
	TagLine    string `json:"tagLine"`
	Rank       string `json:"rank"`
	LP         int    `json:"lp"`
	RegionRank string `json:"regionRank"`
}

// LeaderboardEntry is one row of the assembled leaderboard.
type LeaderboardEntry struct {
	Team       string `json:"team"`
	Player     string `json:"player"`
	GameName   string `json:"inGameName"`
	TagLine    string `json:"tagLine"`
	Position   int    `json:"kcLeaderboardPosition"`
	Rank       string `json:"rank"`
	Tier       string `json:"tier"`
	LP         int    `json:"lp"`
	RegionRank string `json:"regionRank"`
	IsLive     bool   `json:"isLive"`
}

// Overlay is a user-created overlay configuration. Data is stored as opaque
// JSON; the widget renderer owns its shape.
type Overlay struct {
	ID        string    `json:"id"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Champion is one entry of the game-data champion list.
type Champion struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Key   string `json:"key"`
	Image string `json:"image"`
}

// Participant is one player in a live match.
type Participant struct {
	PUUID        string `json:"puuid"`
	TeamID       int    `json:"teamId"`
	RiotID       string `json:"riotId"`
	ChampionID   int64  `json:"championId"`
	ChampionName string `json:"championName"`
}
