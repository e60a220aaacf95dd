package parser

import (
	"encoding/json"
	"io"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/apperrors"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/models"
	"github.com/samber/lo"
)

// ArticleListPayload is one page of the episode list API response.
type ArticleListPayload struct {
	TitleID     int       `json:"titleId"`
	TotalCount  int       `json:"totalCount"`
	PageInfo    PageInfo  `json:"pageInfo"`
	ArticleList []Article `json:"articleList"`
}

// PageInfo is the paging block embedded in every list response.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalRows  int `json:"totalRows"`
	TotalPages int `json:"totalPages"`
}

// Article is one raw episode entry from the list API.
type Article struct {
	No            int    `json:"no"`
	Subtitle      string `json:"subtitle"`
	ThumbnailLock bool   `json:"thumbnailLock"`
}

// ParseArticleList decodes and validates one page of the episode list API.
// A payload that decodes but lacks the fields the pipeline depends on is
// rejected with a schema error rather than flowing through half-empty.
func ParseArticleList(body io.Reader) (*ArticleListPayload, error) {
	var payload ArticleListPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, apperrors.NewSchemaError("article list", err.Error())
	}

	if payload.TotalCount < 0 {
		return nil, apperrors.NewSchemaError("article list", "negative totalCount")
	}
	if payload.PageInfo.PageSize < 1 {
		return nil, apperrors.NewSchemaError("article list", "missing or invalid pageInfo.pageSize")
	}
	if payload.PageInfo.TotalPages < 1 {
		return nil, apperrors.NewSchemaError("article list", "missing or invalid pageInfo.totalPages")
	}
	if payload.ArticleList == nil {
		return nil, apperrors.NewSchemaError("article list", "missing articleList")
	}

	return &payload, nil
}

// Episodes maps the raw article entries of this page to Episode values with
// image URLs defaulted to empty, ready for aggregation.
func (p *ArticleListPayload) Episodes() []models.Episode {
	return lo.Map(p.ArticleList, func(a Article, _ int) models.Episode {
		return models.Episode{
			No:            a.No,
			Subtitle:      a.Subtitle,
			ThumbnailLock: a.ThumbnailLock,
			ImageURLs:     []string{},
		}
	})
}
