package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/apperrors"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/config"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/metrics"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/models"
)

// analysisCacheKey builds the cache key for one title's analysis snapshot.
func analysisCacheKey(titleID int) string {
	return fmt.Sprintf("analysis:%d", titleID)
}

// Analyze runs the full discovery pipeline for one title: resolve metadata,
// fetch every episode page, classify the downloadable prefix. The result is a
// fully-populated immutable value; no partially-built analysis ever escapes.
// Adult titles terminate with apperrors.ErrAdultContent before any pagination
// is attempted. Successful analyses are memoized in the configured cache.
func (c *client) Analyze(ctx context.Context, titleID int) (*models.Analysis, error) {
	logger := config.GetLogger()

	if c.analysisCache != nil {
		if data, ok := c.analysisCache.Get(analysisCacheKey(titleID)); ok {
			var cached models.Analysis
			if err := json.Unmarshal(data, &cached); err == nil {
				logger.Debug().Int("titleId", titleID).Msg("Analysis served from cache")
				return &cached, nil
			}
			// Undecodable entry: recompute and overwrite below.
			logger.Warn().Int("titleId", titleID).Msg("Discarding undecodable cached analysis")
		}
	}

	metadata, err := c.ResolveMetadata(ctx, titleID)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if metadata.IsAdult {
		metrics.AnalysesTotal.WithLabelValues("adult").Inc()
		return nil, apperrors.NewAdultContentError(titleID)
	}

	episodes, err := c.FetchAllEpisodes(ctx, titleID, *metadata.TotalPages)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	downloadableCount, _ := models.DownloadablePrefix(episodes)

	analysis := &models.Analysis{
		TitleID:           titleID,
		TitleName:         metadata.TitleName,
		TotalCount:        *metadata.TotalCount,
		DownloadableCount: downloadableCount,
		Episodes:          episodes,
	}

	if c.analysisCache != nil {
		if data, err := json.Marshal(analysis); err == nil {
			c.analysisCache.Set(analysisCacheKey(titleID), data)
		}
	}

	metrics.AnalysesTotal.WithLabelValues("success").Inc()
	logger.Info().
		Int("titleId", titleID).
		Str("titleName", analysis.TitleName).
		Int("totalCount", analysis.TotalCount).
		Int("downloadableCount", analysis.DownloadableCount).
		Msg("Title analysis completed")

	return analysis, nil
}
