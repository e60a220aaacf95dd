package client

import (
	"fmt"
	"strings"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/config"
)

// Shared HTTP fixtures for the client tests. The fixture title mirrors the
// platform's paging: 45 episodes over 3 pages of 20/20/5, newest first within
// a page, with every episode from lockedFrom upward thumbnail-locked.

const (
	fixtureTotalCount = 45
	fixturePageSize   = 20
	fixtureTotalPages = 3
)

func testConfig(serverURL string) *config.Config {
	cfg := &config.Config{
		WebtoonDomain: serverURL,
		ClientTimeout: "10s",
		UserAgent:     config.DefaultUserAgent,
		Referer:       serverURL,
	}
	cfg.Batch.Delay = "0s"
	return cfg
}

func infoJSON(titleID int, titleName, ageType string) string {
	return fmt.Sprintf(`{"titleId": %d, "titleName": %q, "age": {"type": %q, "description": ""}}`,
		titleID, titleName, ageType)
}

// listPageJSON renders one page of the article list API for the fixture
// title, episodes in descending No order like the real platform.
func listPageJSON(titleID, page, lockedFrom int) string {
	first := fixtureTotalCount - (page-1)*fixturePageSize
	last := first - fixturePageSize + 1
	if last < 1 {
		last = 1
	}

	var articles []string
	for no := first; no >= last; no-- {
		locked := lockedFrom > 0 && no >= lockedFrom
		articles = append(articles, fmt.Sprintf(
			`{"no": %d, "subtitle": "Episode %d", "thumbnailLock": %t}`, no, no, locked))
	}

	return fmt.Sprintf(`{
		"titleId": %d,
		"totalCount": %d,
		"pageInfo": {"page": %d, "pageSize": %d, "totalRows": %d, "totalPages": %d},
		"articleList": [%s]
	}`, titleID, fixtureTotalCount, page, fixturePageSize, fixtureTotalCount, fixtureTotalPages,
		strings.Join(articles, ","))
}

// detailHTML renders an episode detail page with imgCount page images inside
// the content container.
func detailHTML(titleID, no, imgCount int) string {
	var imgs strings.Builder
	for i := 1; i <= imgCount; i++ {
		fmt.Fprintf(&imgs, `<img src="https://image-comic.pstatic.net/webtoon/%d/%d/%03d.jpg"/>`, titleID, no, i)
	}
	return fmt.Sprintf(`<html><body><div id="sectionContWide">%s</div></body></html>`, imgs.String())
}
