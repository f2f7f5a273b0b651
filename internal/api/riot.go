package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"

	"github.com/valyala/fasthttp"
)

// RiotClient talks to the official Riot API. Only used when an API key is
// configured: the privileged leaderboard override and the live-match lookup.
type RiotClient struct {
	apiKey string
	client *fasthttp.Client
}

func NewRiotClient(cfg *config.Config) *RiotClient {
	return &RiotClient{
		apiKey: cfg.RiotAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.RiotAPITimeout,
			WriteTimeout:        constants.RiotAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *RiotClient) Enabled() bool {
	return c.apiKey != ""
}

func (c *RiotClient) headers() map[string]string {
	return map[string]string{"X-Riot-Token": c.apiKey}
}

type LeagueEntry struct {
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// GetLeagueEntries returns the ranked entries for a PUUID, solo queue first
// as the API serves them.
func (c *RiotClient) GetLeagueEntries(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("https://euw1.api.riotgames.com/lol/league/v4/entries/by-puuid/%s", url.PathEscape(puuid))
	entries, err := doRequest[[]LeagueEntry](ctx, c.client, u, c.headers())
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

type RiotAccount struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

func (c *RiotClient) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*RiotAccount, error) {
	u := fmt.Sprintf("https://europe.api.riotgames.com/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[RiotAccount](ctx, c.client, u, c.headers())
}

type ActiveGame struct {
	GameID       int64 `json:"gameId"`
	Participants []struct {
		PUUID      string `json:"puuid"`
		TeamID     int    `json:"teamId"`
		RiotID     string `json:"riotId"`
		ChampionID int64  `json:"championId"`
	} `json:"participants"`
}

func (c *RiotClient) GetActiveGame(ctx context.Context, puuid string) (*ActiveGame, error) {
	u := fmt.Sprintf("https://euw1.api.riotgames.com/lol/spectator/v5/active-games/by-summoner/%s", url.PathEscape(puuid))
	return doRequest[ActiveGame](ctx, c.client, u, c.headers())
}
