package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/apperrors"
)

// analysisServer serves the info endpoint and all three fixture list pages.
func analysisServer(t *testing.T, requests *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			atomic.AddInt64(requests, 1)
		}
		switch r.URL.Path {
		case "/api/article/list/info":
			_, _ = w.Write([]byte(infoJSON(717481, "Eleceed", "RATE_12")))
		case "/api/article/list":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			_, _ = w.Write([]byte(listPageJSON(717481, page, 30)))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_Analyze(t *testing.T) {
	server := analysisServer(t, nil)
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	defer c.Close()

	analysis, err := c.Analyze(context.Background(), 717481)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if analysis.TitleName != "Eleceed" {
		t.Errorf("Expected titleName Eleceed, got %q", analysis.TitleName)
	}
	if analysis.TotalCount != fixtureTotalCount {
		t.Errorf("Expected totalCount %d, got %d", fixtureTotalCount, analysis.TotalCount)
	}
	if len(analysis.Episodes) != fixtureTotalCount {
		t.Errorf("Expected %d episodes, got %d", fixtureTotalCount, len(analysis.Episodes))
	}
	// Lock starts at no=30, so 29 episodes are downloadable.
	if analysis.DownloadableCount != 29 {
		t.Errorf("Expected downloadableCount 29, got %d", analysis.DownloadableCount)
	}
	if len(analysis.LockedEpisodes()) != fixtureTotalCount-29 {
		t.Errorf("Expected %d locked episodes, got %d", fixtureTotalCount-29, len(analysis.LockedEpisodes()))
	}
}

func TestClient_Analyze_AdultTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/article/list/info" {
			_, _ = w.Write([]byte(infoJSON(818791, "Frontline", "RATE_18")))
			return
		}
		t.Errorf("Unexpected request for an adult title: %s", r.URL.String())
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	defer c.Close()

	analysis, err := c.Analyze(context.Background(), 818791)
	if analysis != nil {
		t.Error("Expected no analysis for an adult title")
	}

	var adultErr *apperrors.ErrAdultContent
	if !errors.As(err, &adultErr) {
		t.Fatalf("Expected ErrAdultContent, got %T: %v", err, err)
	}
	if adultErr.TitleID != 818791 {
		t.Errorf("Expected titleID 818791, got %d", adultErr.TitleID)
	}
}

func TestClient_Analyze_RemoteFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/article/list/info":
			_, _ = w.Write([]byte(infoJSON(717481, "Eleceed", "RATE_12")))
		case "/api/article/list":
			if r.URL.Query().Get("page") == "3" {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			_, _ = w.Write([]byte(listPageJSON(717481, page, 0)))
		}
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	defer c.Close()

	_, err := c.Analyze(context.Background(), 717481)
	if !errors.Is(err, &apperrors.ErrRemoteFetch{}) {
		t.Fatalf("Expected ErrRemoteFetch, got %T: %v", err, err)
	}
}

func TestClient_Analyze_RefetchesFirstListPage(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if page := r.URL.Query().Get("page"); page != "" {
			key += "?page=" + page
		}
		mu.Lock()
		hits[key]++
		mu.Unlock()

		switch r.URL.Path {
		case "/api/article/list/info":
			_, _ = w.Write([]byte(infoJSON(717481, "Eleceed", "RATE_12")))
		case "/api/article/list":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			_, _ = w.Write([]byte(listPageJSON(717481, page, 30)))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	defer c.Close()

	if _, err := c.Analyze(context.Background(), 717481); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if hits["/api/article/list/info"] != 1 {
		t.Errorf("Expected 1 info request, got %d", hits["/api/article/list/info"])
	}
	// The resolver reads the paging trio from page 1 and the aggregator
	// fetches every page 1..totalPages afresh, so page 1 is hit twice.
	if hits["/api/article/list?page=1"] != 2 {
		t.Errorf("Expected 2 requests for list page 1, got %d", hits["/api/article/list?page=1"])
	}
	for _, page := range []string{"2", "3"} {
		if hits["/api/article/list?page="+page] != 1 {
			t.Errorf("Expected 1 request for list page %s, got %d", page, hits["/api/article/list?page="+page])
		}
	}
}

func TestClient_Analyze_MemoizesInCache(t *testing.T) {
	var requests int64
	server := analysisServer(t, &requests)
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Cache.Provider = "memory"
	cfg.Cache.Size = 16
	cfg.Cache.TTL = "1h"

	c := NewClient(cfg)
	defer c.Close()

	first, err := c.Analyze(context.Background(), 717481)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	// info + list page 1 for the paging trio, then all 3 list pages again
	// during aggregation. Page 1 is intentionally fetched twice.
	requestsAfterFirst := atomic.LoadInt64(&requests)
	if requestsAfterFirst != 5 {
		t.Fatalf("Expected 5 requests for the first analysis, got %d", requestsAfterFirst)
	}

	second, err := c.Analyze(context.Background(), 717481)
	if err != nil {
		t.Fatalf("Expected no error on cached analysis, got: %v", err)
	}
	if atomic.LoadInt64(&requests) != requestsAfterFirst {
		t.Errorf("Expected the second analysis to be served from cache, got %d extra requests",
			atomic.LoadInt64(&requests)-requestsAfterFirst)
	}

	if second.TotalCount != first.TotalCount || second.DownloadableCount != first.DownloadableCount {
		t.Error("Expected identical cached analysis")
	}
	if len(second.Episodes) != len(first.Episodes) {
		t.Errorf("Expected %d cached episodes, got %d", len(first.Episodes), len(second.Episodes))
	}
}
