package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"
	"lol-overlay/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// ProfileFetcher resolves one account's ladder standing from its public
// profile page.
type ProfileFetcher interface {
	// Fetch returns the parsed snapshot, or nil when the page could not be
	// fetched. Network and HTTP failures are logged here and never surface
	// as errors: one slow or broken profile page must only cost its own
	// result.
	Fetch(ctx context.Context, account domain.RiotAccount) *domain.RankSnapshot
}

type OpggFetcher struct {
	baseURL   string
	client    *fasthttp.Client
	limiter   *rate.Limiter
	extractor Extractor
	logger    zerolog.Logger
}

func NewOpggFetcher(cfg *config.Config, extractor Extractor, logger zerolog.Logger) *OpggFetcher {
	return &OpggFetcher{
		baseURL: strings.TrimSuffix(cfg.ProfileBaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ProfileFetchTimeout,
			WriteTimeout:        constants.ProfileFetchTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter:   rate.NewLimiter(rate.Limit(constants.ScrapeRatePerSecond), constants.ScrapeBurst),
		extractor: extractor,
		logger:    logger,
	}
}

func (f *OpggFetcher) profileURL(account domain.RiotAccount) string {
	return fmt.Sprintf("%s/%s/%s-%s",
		f.baseURL,
		strings.ToLower(account.Region),
		url.QueryEscape(account.GameName),
		url.QueryEscape(account.TagLine),
	)
}

func (f *OpggFetcher) Fetch(ctx context.Context, account domain.RiotAccount) *domain.RankSnapshot {
	ctx, cancel := context.WithTimeout(ctx, constants.ProfileFetchTimeout)
	defer cancel()

	if err := f.limiter.Wait(ctx); err != nil {
		f.logger.Warn().Err(err).
			Str("name", account.GameName).
			Str("tag", account.TagLine).
			Msg("profile fetch cancelled while rate limited")
		return nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(f.profileURL(account))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	deadline, _ := ctx.Deadline()
	if err := f.client.DoDeadline(req, resp, deadline); err != nil {
		f.logger.Error().Err(err).
			Str("name", account.GameName).
			Str("tag", account.TagLine).
			Msg("failed to fetch profile page")
		return nil
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		f.logger.Error().
			Int("status", resp.StatusCode()).
			Str("name", account.GameName).
			Str("tag", account.TagLine).
			Msg("profile page returned non-success status")
		return nil
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		// Fall back to the raw bytes when the encoding header lies.
		body = resp.Body()
	}

	data := f.extractor.Extract(string(body))

	rank := data.Rank
	if rank == "" {
		rank = "Unranked"
	}

	f.logger.Debug().
		Str("name", account.GameName).
		Str("tag", account.TagLine).
		Str("rank", rank).
		Int("lp", data.LP).
		Str("region_rank", data.RegionRank).
		Msg("profile page parsed")

	return &domain.RankSnapshot{
		GameName:   account.GameName,
		TagLine:    account.TagLine,
		Rank:       rank,
		LP:         data.LP,
		RegionRank: data.RegionRank,
	}
}
