package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"

	"github.com/valyala/fasthttp"
)

// DpmClient fetches the authoritative leaderboard listing. The payload is
// untrusted; shape is validated before use and a malformed response fails
// the call.
type DpmClient struct {
	url    string
	client *fasthttp.Client
}

func NewDpmClient(cfg *config.Config) *DpmClient {
	return &DpmClient{
		url: cfg.LeaderboardURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.LeaderboardAPITimeout,
			WriteTimeout:        constants.LeaderboardAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

type LeaderboardResponse struct {
	Players []LeaderboardPlayer `json:"players"`
}

type LeaderboardPlayer struct {
	DisplayName string `json:"displayName"`
	Team        string `json:"team"`
	GameName    string `json:"gameName"`
	TagLine     string `json:"tagLine"`
	Rank        struct {
		Rank         string `json:"rank"`
		Tier         string `json:"tier"`
		LeaguePoints int    `json:"leaguePoints"`
	} `json:"rank"`
	IsLive bool `json:"isLive"`
}

func (c *DpmClient) GetLeaderboard(ctx context.Context) (*LeaderboardResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.LeaderboardAPITimeout)
	defer cancel()

	// Unmarshal in two steps so a present-but-wrong-typed players field is
	// rejected rather than silently zeroed.
	raw, err := doRequest[struct {
		Players json.RawMessage `json:"players"`
	}](ctx, c.client, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	if raw.Players == nil {
		return nil, fmt.Errorf("unexpected leaderboard response shape: missing players field")
	}

	var players []LeaderboardPlayer
	if err := json.Unmarshal(raw.Players, &players); err != nil {
		return nil, fmt.Errorf("unexpected leaderboard response shape: %w", err)
	}

	return &LeaderboardResponse{Players: players}, nil
}
