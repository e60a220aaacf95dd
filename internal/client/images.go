package client

import (
	"bytes"
	"context"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/config"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/fanout"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/metrics"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/models"
)

// ExtractImages returns a copy of episode with the image URLs of its detail
// page filled in. Extraction is best-effort per episode: any transport error,
// non-success status or parse anomaly is logged and recorded, and the episode
// comes back with an empty image list instead of an error.
func (c *client) ExtractImages(ctx context.Context, titleID int, episode models.Episode) models.Episode {
	images := c.extractEpisodeImages(ctx, titleID, episode.No)
	episode.ImageURLs = images.URLs
	return episode
}

func (c *client) extractEpisodeImages(ctx context.Context, titleID, no int) models.EpisodeImages {
	logger := config.GetLogger()
	empty := models.EpisodeImages{No: no, URLs: []string{}}

	body, err := c.fetchBody(ctx, c.detailURL(titleID, no))
	if err != nil {
		logger.Warn().Err(err).Int("titleId", titleID).Int("no", no).Msg("Failed to fetch episode detail page")
		metrics.ImageExtractionsTotal.WithLabelValues("error").Inc()
		return empty
	}

	urls, err := c.imageParser.ParseHtml(bytes.NewReader(body))
	if err != nil {
		logger.Warn().Err(err).Int("titleId", titleID).Int("no", no).Msg("Failed to parse episode detail page")
		metrics.ImageExtractionsTotal.WithLabelValues("error").Inc()
		return empty
	}

	metrics.ImageExtractionsTotal.WithLabelValues("success").Inc()
	logger.Debug().
		Int("titleId", titleID).
		Int("no", no).
		Int("images", len(urls)).
		Msg("Extracted episode images")

	return models.EpisodeImages{No: no, URLs: urls}
}

// CollectImages extracts images for every episode, batchSize at a time, with
// the configured pause between consecutive batches. A batch is fully awaited
// before the next one starts; the pause is skipped after the final batch.
// Output order matches input order regardless of completion order, and a
// failing episode degrades to an empty image list without affecting its
// siblings. batchSize <= 0 runs everything as one unpaced batch and yields
// identical per-episode results.
func (c *client) CollectImages(ctx context.Context, titleID int, episodes []models.Episode, batchSize int) []models.Episode {
	logger := config.GetLogger()
	logger.Info().
		Int("titleId", titleID).
		Int("episodes", len(episodes)).
		Int("batchSize", batchSize).
		Msg("Collecting episode images")

	results, _ := fanout.Map(ctx, episodes, fanout.Options{Limit: batchSize, Pause: c.batchPause},
		func(ctx context.Context, _ int, ep models.Episode) (models.Episode, error) {
			return c.ExtractImages(ctx, titleID, ep), nil
		})

	return results
}
