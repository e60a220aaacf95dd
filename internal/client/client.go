package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/failsafe-go/failsafe-go/timeout"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/apperrors"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/cache"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/config"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/models"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/parser"
	"github.com/rs/zerolog"
)

// Client defines the interface for analyzing webtoon titles on the platform.
type Client interface {
	// ResolveMetadata resolves a title's name, adult flag and, for non-adult
	// titles, its paging trio (total count, page size, total pages).
	ResolveMetadata(ctx context.Context, titleID int) (*models.TitleMetadata, error)

	// FetchAllEpisodes fetches every list page concurrently and returns all
	// episodes sorted ascending by No. Any failing page aborts the whole call.
	FetchAllEpisodes(ctx context.Context, titleID, totalPages int) ([]models.Episode, error)

	// Analyze runs the full pipeline: metadata, pagination, classification.
	// Adult titles terminate with apperrors.ErrAdultContent before pagination.
	Analyze(ctx context.Context, titleID int) (*models.Analysis, error)

	// ExtractImages returns a copy of episode with its detail-page image URLs
	// filled in. It never fails outward: any problem degrades that episode to
	// an empty image list.
	ExtractImages(ctx context.Context, titleID int, episode models.Episode) models.Episode

	// CollectImages runs ExtractImages over episodes in consecutive batches of
	// batchSize with a fixed pause between batches. batchSize <= 0 disables
	// batching (single unpaced batch). Output order matches input order.
	CollectImages(ctx context.Context, titleID int, episodes []models.Episode, batchSize int) []models.Episode

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	baseURL       string
	imageParser   *parser.ImageParser
	analysisCache cache.Cache
	batchPause    time.Duration
}

// cacheLogger adapts zerolog to the cache package's Logger interface.
type cacheLogger struct {
	logger zerolog.Logger
}

func (l cacheLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

// NewClient creates a new client instance from configuration.
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	// Parse timeout duration
	requestTimeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			requestTimeout = parsedTimeout
		}
	}

	batchPause := 500 * time.Millisecond // default
	if cfg.Batch.Delay != "" {
		if parsedDelay, err := time.ParseDuration(cfg.Batch.Delay); err != nil {
			logger.Warn().Err(err).Str("delay", cfg.Batch.Delay).Msg("Invalid batch delay, using default 500ms")
		} else {
			batchPause = parsedDelay
		}
	}

	// Clone DefaultTransport to preserve its connection pooling and HTTP/2
	// settings, then layer on the platform headers + decompression and a
	// per-request timeout policy.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	transport := newWebtoonTransport(baseTransport, cfg.UserAgent, cfg.Referer)
	requestTimeoutPolicy := timeout.With[*http.Response](requestTimeout)

	httpClient := &http.Client{
		Transport: failsafehttp.NewRoundTripper(transport, requestTimeoutPolicy),
	}

	cacheTTL := time.Hour
	if cfg.Cache.TTL != "" {
		if parsedTTL, err := time.ParseDuration(cfg.Cache.TTL); err == nil {
			cacheTTL = parsedTTL
		}
	}
	analysisCache, err := cache.New(cfg.Cache.Provider, cache.Options{
		Size:          cfg.Cache.Size,
		TTL:           cacheTTL,
		Logger:        cacheLogger{logger: logger},
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		Group:         "analysis",
	})
	if err != nil {
		logger.Warn().Err(err).Str("provider", cfg.Cache.Provider).Msg("Cache unavailable, analyses will not be memoized")
		analysisCache = nil
	}

	return &client{
		httpClient:    httpClient,
		baseURL:       cfg.WebtoonDomain,
		imageParser:   parser.NewImageParser(),
		analysisCache: analysisCache,
		batchPause:    batchPause,
	}
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	if c.analysisCache != nil {
		return c.analysisCache.Close()
	}
	return nil
}

// URL builders for the three platform endpoints.

func (c *client) infoURL(titleID int) string {
	return fmt.Sprintf("%s/api/article/list/info?titleId=%d", c.baseURL, titleID)
}

func (c *client) listURL(titleID, page int) string {
	return fmt.Sprintf("%s/api/article/list?titleId=%d&page=%d", c.baseURL, titleID, page)
}

func (c *client) detailURL(titleID, no int) string {
	return fmt.Sprintf("%s/webtoon/detail?titleId=%d&no=%d", c.baseURL, titleID, no)
}

// fetchBody performs a GET and returns the response body bytes, mapping any
// non-success status to apperrors.ErrRemoteFetch.
func (c *client) fetchBody(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewRemoteFetchError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
