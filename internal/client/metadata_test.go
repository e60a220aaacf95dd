package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/apperrors"
)

func TestClient_ResolveMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/article/list/info":
			_, _ = w.Write([]byte(infoJSON(717481, "Eleceed", "RATE_12")))
		case "/api/article/list":
			if r.URL.Query().Get("page") != "1" {
				t.Errorf("Metadata resolution must only request page 1, got page %s", r.URL.Query().Get("page"))
			}
			_, _ = w.Write([]byte(listPageJSON(717481, 1, 0)))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	defer c.Close()

	metadata, err := c.ResolveMetadata(context.Background(), 717481)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.TitleName != "Eleceed" {
		t.Errorf("Expected titleName Eleceed, got %q", metadata.TitleName)
	}
	if metadata.IsAdult {
		t.Error("Expected non-adult title")
	}
	if !metadata.HasPaging() {
		t.Fatal("Expected the paging trio to be set for a non-adult title")
	}
	if *metadata.TotalCount != fixtureTotalCount {
		t.Errorf("Expected totalCount %d, got %d", fixtureTotalCount, *metadata.TotalCount)
	}
	if *metadata.PageSize != fixturePageSize {
		t.Errorf("Expected pageSize %d, got %d", fixturePageSize, *metadata.PageSize)
	}
	if *metadata.TotalPages != fixtureTotalPages {
		t.Errorf("Expected totalPages %d, got %d", fixtureTotalPages, *metadata.TotalPages)
	}
}

func TestClient_ResolveMetadata_AdultSkipsListRequest(t *testing.T) {
	var listRequests int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/article/list/info":
			_, _ = w.Write([]byte(infoJSON(818791, "Frontline", "RATE_18")))
		case "/api/article/list":
			atomic.AddInt64(&listRequests, 1)
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	defer c.Close()

	metadata, err := c.ResolveMetadata(context.Background(), 818791)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !metadata.IsAdult {
		t.Error("Expected adult title")
	}
	if metadata.TotalCount != nil || metadata.PageSize != nil || metadata.TotalPages != nil {
		t.Error("Expected all three paging fields to be unset for an adult title")
	}
	if atomic.LoadInt64(&listRequests) != 0 {
		t.Errorf("Expected the list endpoint not to be hit for an adult title, got %d requests", listRequests)
	}
}

func TestClient_ResolveMetadata_InfoFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	defer c.Close()

	_, err := c.ResolveMetadata(context.Background(), 717481)
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}

	var fetchErr *apperrors.ErrRemoteFetch
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected ErrRemoteFetch, got %T: %v", err, err)
	}
	if fetchErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", fetchErr.StatusCode)
	}
}

func TestClient_ResolveMetadata_ListSchemaError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/article/list/info":
			_, _ = w.Write([]byte(infoJSON(717481, "Eleceed", "RATE_12")))
		case "/api/article/list":
			_, _ = w.Write([]byte(`{"totalCount": 45}`))
		}
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	defer c.Close()

	_, err := c.ResolveMetadata(context.Background(), 717481)
	if !errors.Is(err, &apperrors.ErrSchema{}) {
		t.Fatalf("Expected ErrSchema, got %T: %v", err, err)
	}
}
