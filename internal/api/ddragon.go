package api

import (
	"context"
	"fmt"
	"time"

	"lol-overlay/internal/constants"

	"github.com/valyala/fasthttp"
)

// DDragonClient fetches static game data (versions, champions) from the
// Data Dragon CDN. No credentials required.
// docs: https://developer.riotgames.com/docs/lol#data-dragon_champions
type DDragonClient struct {
	client *fasthttp.Client
}

func NewDDragonClient() *DDragonClient {
	return &DDragonClient{
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.RiotAPITimeout,
			WriteTimeout:        constants.RiotAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// GetLatestVersion returns the newest game version.
func (c *DDragonClient) GetLatestVersion(ctx context.Context) (string, error) {
	versions, err := doRequest[[]string](ctx, c.client, "https://ddragon.leagueoflegends.com/api/versions.json", nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch versions: %w", err)
	}

	if len(*versions) == 0 {
		return "", fmt.Errorf("unexpected versions response shape: empty list")
	}
	return (*versions)[0], nil
}

type ChampionsResponse struct {
	Type    string                  `json:"type"`
	Format  string                  `json:"format"`
	Version string                  `json:"version"`
	Data    map[string]ChampionData `json:"data"`
}

type ChampionData struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Image struct {
		Full string `json:"full"`
	} `json:"image"`
}

func (c *DDragonClient) GetChampions(ctx context.Context, version string) (*ChampionsResponse, error) {
	u := fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/data/fr_FR/champion.json", version)
	champions, err := doRequest[ChampionsResponse](ctx, c.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch champions for version %s: %w", version, err)
	}
	return champions, nil
}

// ChampionImageURL builds the CDN URL for a champion portrait.
func ChampionImageURL(version, imageFull string) string {
	return fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/champion/%s", version, imageFull)
}
