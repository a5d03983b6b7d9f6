package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/time/rate"

	"github.com/marketsurvey/marketsurvey/pkg/config"
)

// errPermanent marks fetch failures that retrying can't fix
var errPermanent = errors.New("permanent fetch error")

// Fetcher retrieves HTML pages with rate limiting and bounded retries.
// A single limiter is shared by all scrapers so the configured delay
// applies to the process as a whole, not per source.
type Fetcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
}

// NewFetcher creates a fetcher from scrape configuration
func NewFetcher(cfg config.ScrapeConfig) *Fetcher {
	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}
	return &Fetcher{
		client:     &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		userAgent:  cfg.UserAgent,
		maxRetries: retries,
	}
}

// Get fetches a URL and parses it into a goquery document
func (f *Fetcher) Get(ctx context.Context, urlStr string) (*goquery.Document, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", urlStr)
	}

	var doc *goquery.Document
	retrier := repeater.NewBackoff(f.maxRetries, 500*time.Millisecond, repeater.WithMaxDelay(10*time.Second))
	err = retrier.Do(ctx, func() error {
		if err := f.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", errors.Join(err, errPermanent))
		}
		req.Header.Set("User-Agent", f.userAgent)
		addBrowserHeaders(req)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch URL %s: %w", urlStr, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return errors.Join(err, errPermanent) // client errors won't go away on retry
			}
			return err
		}

		parsed, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return fmt.Errorf("parse HTML from %s: %w", urlStr, err)
		}
		doc = parsed
		return nil
	}, errPermanent)

	if err != nil {
		return nil, err
	}
	return doc, nil
}
