package client

import (
	"bytes"
	"context"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/config"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/models"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/parser"
)

// ResolveMetadata resolves a title's display name and age rating from the
// info endpoint, then, for non-adult titles only, reads the paging trio from
// the first list page. Adult titles skip the list request entirely: the list
// API rejects them without session credentials, so their paging fields stay
// unset.
func (c *client) ResolveMetadata(ctx context.Context, titleID int) (*models.TitleMetadata, error) {
	logger := config.GetLogger()

	infoBody, err := c.fetchBody(ctx, c.infoURL(titleID))
	if err != nil {
		return nil, err
	}

	info, err := parser.ParseTitleInfo(bytes.NewReader(infoBody))
	if err != nil {
		return nil, err
	}

	metadata := &models.TitleMetadata{
		TitleID:   titleID,
		TitleName: info.TitleName,
		IsAdult:   info.IsAdult(),
	}

	if metadata.IsAdult {
		logger.Warn().
			Int("titleId", titleID).
			Str("titleName", info.TitleName).
			Msg("Age-restricted title, skipping paginated list request")
		return metadata, nil
	}

	listBody, err := c.fetchBody(ctx, c.listURL(titleID, 1))
	if err != nil {
		return nil, err
	}

	firstPage, err := parser.ParseArticleList(bytes.NewReader(listBody))
	if err != nil {
		return nil, err
	}

	totalCount := firstPage.TotalCount
	pageSize := firstPage.PageInfo.PageSize
	totalPages := firstPage.PageInfo.TotalPages
	metadata.TotalCount = &totalCount
	metadata.PageSize = &pageSize
	metadata.TotalPages = &totalPages

	logger.Info().
		Int("titleId", titleID).
		Str("titleName", metadata.TitleName).
		Int("totalCount", totalCount).
		Int("pageSize", pageSize).
		Int("totalPages", totalPages).
		Msg("Resolved title metadata")

	return metadata, nil
}
