package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketsurvey/marketsurvey/pkg/config"
)

func testScrapeConfig() config.ScrapeConfig {
	return config.ScrapeConfig{
		MaxRetries: 3,
		UserAgent:  "MarketSurveyBot/1.0",
		Timeout:    5 * time.Second,
		PageLimit:  10,
	}
}

func TestFetcher_Get(t *testing.T) {
	var gotUA atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><body><h1>Project Page</h1></body></html>`)) //nolint:errcheck
	}))
	defer ts.Close()

	fetcher := NewFetcher(testScrapeConfig())
	doc, err := fetcher.Get(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "Project Page", doc.Find("h1").Text())
	assert.Equal(t, "MarketSurveyBot/1.0", gotUA.Load())
}

func TestFetcher_GetRetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`<html><body><h1>ok</h1></body></html>`)) //nolint:errcheck
	}))
	defer ts.Close()

	fetcher := NewFetcher(testScrapeConfig())
	doc, err := fetcher.Get(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Find("h1").Text())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetcher_GetNoRetryOnClientError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	fetcher := NewFetcher(testScrapeConfig())
	_, err := fetcher.Get(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "client errors should not be retried")
}

func TestFetcher_GetInvalidURL(t *testing.T) {
	fetcher := NewFetcher(testScrapeConfig())

	_, err := fetcher.Get(context.Background(), "not-a-url")
	assert.Error(t, err)

	_, err = fetcher.Get(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestFetcher_GetRespectsContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("<html></html>")) //nolint:errcheck
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	fetcher := NewFetcher(testScrapeConfig())
	_, err := fetcher.Get(ctx, ts.URL)
	assert.Error(t, err)
}

func TestFetcher_RateLimitDelays(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html></html>")) //nolint:errcheck
	}))
	defer ts.Close()

	cfg := testScrapeConfig()
	cfg.Delay = 100 * time.Millisecond
	fetcher := NewFetcher(cfg)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := fetcher.Get(context.Background(), ts.URL)
		require.NoError(t, err)
	}
	// first request is immediate, the next two wait for the limiter
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}
