package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/marketsurvey/marketsurvey/pkg/domain"
	"github.com/marketsurvey/marketsurvey/pkg/scraper"
)

//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/project_scraper.go -pkg mocks -skip-ensure -fmt goimports . ProjectScraper
//go:generate moq -out mocks/transaction_scraper.go -pkg mocks -skip-ensure -fmt goimports . TransactionScraper
//go:generate moq -out mocks/project_matcher.go -pkg mocks -skip-ensure -fmt goimports . ProjectMatcher
//go:generate moq -out mocks/price_correlator.go -pkg mocks -skip-ensure -fmt goimports . PriceCorrelator

// Scheduler runs scrape pipelines on demand and refreshes known cities
// periodically. A pipeline scrapes projects and transactions, matches them,
// computes price correlation and replaces the city's stored projects.
type Scheduler struct {
	db         Database
	projects   ProjectScraper
	sales      TransactionScraper
	matcher    ProjectMatcher
	correlator PriceCorrelator

	updateInterval time.Duration
	maxWorkers     int

	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu     sync.Mutex
	runCtx context.Context
}

// Database interface for scheduler operations
type Database interface {
	GetProjects(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error)
	ReplaceCityProjects(ctx context.Context, city string, projects []*domain.Project) error
	GetCities(ctx context.Context) ([]string, error)

	CreateScrapeRun(ctx context.Context, run *domain.ScrapeRun) error
	UpdateScrapeRun(ctx context.Context, run *domain.ScrapeRun) error
}

// ProjectScraper scrapes project listings for a city slug
type ProjectScraper interface {
	ScrapeProjects(ctx context.Context, citySlug string) ([]*domain.Project, error)
}

// TransactionScraper scrapes recorded sales for a city
type TransactionScraper interface {
	ScrapeTransactions(ctx context.Context, city string, start, end time.Time) ([]domain.Transaction, error)
}

// ProjectMatcher attaches transactions to projects by address similarity
type ProjectMatcher interface {
	MatchProjects(projects []*domain.Project, transactions []domain.Transaction)
}

// PriceCorrelator flags projects tracking the city-wide price trend
type PriceCorrelator interface {
	Apply(projects []*domain.Project)
}

// Params holds all scheduler dependencies and settings
type Params struct {
	Database           Database
	ProjectScraper     ProjectScraper
	TransactionScraper TransactionScraper
	Matcher            ProjectMatcher
	Correlator         PriceCorrelator
	UpdateInterval     time.Duration // 0 disables periodic refresh
	MaxWorkers         int
}

// ErrUnknownSource is returned for a scrape source other than madlan, ita or all
var ErrUnknownSource = errors.New("unknown scrape source")

// NewScheduler creates a scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.MaxWorkers == 0 {
		params.MaxWorkers = 5
	}
	return &Scheduler{
		db:             params.Database,
		projects:       params.ProjectScraper,
		sales:          params.TransactionScraper,
		matcher:        params.Matcher,
		correlator:     params.Correlator,
		updateInterval: params.UpdateInterval,
		maxWorkers:     params.MaxWorkers,
	}
}

// Start begins the periodic refresh worker. Must be called before ScrapeNow
// so background runs outlive the originating request.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Lock()
	s.runCtx = ctx
	s.mu.Unlock()

	if s.updateInterval > 0 {
		s.wg.Add(1)
		go s.refreshWorker(ctx)
		lgr.Printf("[INFO] scheduler started with update interval %v, max workers %d", s.updateInterval, s.maxWorkers)
		return
	}
	lgr.Printf("[INFO] scheduler started, periodic refresh disabled")
}

// Stop gracefully stops the scheduler and waits for in-flight runs
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// ScrapeNow starts an asynchronous scrape run for a city slug and returns the
// run record immediately. Source is one of "madlan", "ita" or "all"; "tax" is
// accepted as an alias for the tax-authority ("ita") pipeline.
func (s *Scheduler) ScrapeNow(ctx context.Context, citySlug, source string) (*domain.ScrapeRun, error) {
	if source == "tax" {
		source = "ita"
	}
	if source != "madlan" && source != "ita" && source != "all" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}

	run := &domain.ScrapeRun{
		ID:        uuid.New().String(),
		City:      citySlug,
		Source:    source,
		Status:    domain.ScrapeInProgress,
		StartedAt: time.Now(),
	}
	if err := s.db.CreateScrapeRun(ctx, run); err != nil {
		return nil, fmt.Errorf("create scrape run: %w", err)
	}

	runCopy := *run
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.executeRun(s.backgroundCtx(), &runCopy)
	}()

	return run, nil
}

// backgroundCtx returns the scheduler's long-lived context, or Background
// when Start was not called
func (s *Scheduler) backgroundCtx() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runCtx != nil {
		return s.runCtx
	}
	return context.Background()
}

// executeRun performs the scrape pipeline and records the outcome
func (s *Scheduler) executeRun(ctx context.Context, run *domain.ScrapeRun) {
	lgr.Printf("[INFO] scrape run %s started for %s (source %s)", run.ID, run.City, run.Source)

	city := scraper.SlugToCityName(run.City)

	var projects []*domain.Project
	var err error
	if run.Source == "madlan" || run.Source == "all" {
		projects, err = s.projects.ScrapeProjects(ctx, run.City)
		if err != nil {
			run.Errors = append(run.Errors, fmt.Sprintf("scrape projects: %v", err))
		}
	} else {
		// transactions-only run enriches what is already stored
		projects, err = s.db.GetProjects(ctx, domain.ProjectFilter{City: city, Limit: 1000})
		if err != nil {
			run.Errors = append(run.Errors, fmt.Sprintf("load stored projects: %v", err))
		}
	}

	var transactions []domain.Transaction
	if run.Source == "ita" || run.Source == "all" {
		transactions, err = s.sales.ScrapeTransactions(ctx, scraper.HebrewCityName(city), time.Time{}, time.Time{})
		if err != nil {
			run.Errors = append(run.Errors, fmt.Sprintf("scrape transactions: %v", err))
		}
	}

	if len(projects) > 0 {
		s.matcher.MatchProjects(projects, transactions)
		s.correlator.Apply(projects)

		if err := s.db.ReplaceCityProjects(ctx, city, projects); err != nil {
			run.Errors = append(run.Errors, fmt.Sprintf("store projects: %v", err))
		}
	}

	run.ProjectsFound = len(projects)
	for _, p := range projects {
		run.TransactionsFound += len(p.Transactions)
	}

	run.Status = domain.ScrapeCompleted
	if len(projects) == 0 && len(run.Errors) > 0 {
		run.Status = domain.ScrapeFailed
	}
	now := time.Now()
	run.FinishedAt = &now

	if err := s.db.UpdateScrapeRun(ctx, run); err != nil {
		lgr.Printf("[ERROR] failed to update scrape run %s: %v", run.ID, err)
		return
	}
	lgr.Printf("[INFO] scrape run %s finished: %s, %d projects, %d transactions, %d errors",
		run.ID, run.Status, run.ProjectsFound, run.TransactionsFound, len(run.Errors))
}

// refreshWorker re-scrapes all known cities on the configured interval
func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshAllCities(ctx)
		}
	}
}

// refreshAllCities runs the full pipeline for every stored city, bounded by
// the worker limit
func (s *Scheduler) refreshAllCities(ctx context.Context) {
	cities, err := s.db.GetCities(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list cities for refresh: %v", err)
		return
	}
	if len(cities) == 0 {
		return
	}

	lgr.Printf("[INFO] refreshing %d cities", len(cities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)
	for _, city := range cities {
		g.Go(func() error {
			slug := cityToSlug(city)
			run := &domain.ScrapeRun{
				ID:        uuid.New().String(),
				City:      slug,
				Source:    "all",
				Status:    domain.ScrapeInProgress,
				StartedAt: time.Now(),
			}
			if err := s.db.CreateScrapeRun(gctx, run); err != nil {
				lgr.Printf("[WARN] failed to create refresh run for %s: %v", city, err)
				return nil // refresh continues for other cities
			}
			s.executeRun(gctx, run)
			return nil
		})
	}
	_ = g.Wait()
}

// cityToSlug converts a stored city name back to its URL slug
func cityToSlug(city string) string {
	return strings.ReplaceAll(strings.ToLower(city), " ", "-")
}
