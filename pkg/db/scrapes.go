package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

// ErrNoScrapeRuns is returned when no scrape run was recorded yet
var ErrNoScrapeRuns = errors.New("no scrape runs")

// CreateScrapeRun records the start of a scraping task
func (db *DB) CreateScrapeRun(ctx context.Context, run *domain.ScrapeRun) error {
	query := `
		INSERT INTO scrape_runs (id, city, source, status, projects_found, transactions_found, errors, started_at)
		VALUES (:id, :city, :source, :status, :projects_found, :transactions_found, :errors, :started_at)
	`
	if _, err := db.conn.NamedExecContext(ctx, query, fromDomainScrapeRun(run)); err != nil {
		return fmt.Errorf("create scrape run: %w", err)
	}
	return nil
}

// UpdateScrapeRun updates the state of a scraping task
func (db *DB) UpdateScrapeRun(ctx context.Context, run *domain.ScrapeRun) error {
	query := `
		UPDATE scrape_runs
		SET status = :status, projects_found = :projects_found,
		    transactions_found = :transactions_found, errors = :errors, finished_at = :finished_at
		WHERE id = :id
	`
	if _, err := db.conn.NamedExecContext(ctx, query, fromDomainScrapeRun(run)); err != nil {
		return fmt.Errorf("update scrape run: %w", err)
	}
	return nil
}

// GetScrapeRun retrieves a scrape run by id
func (db *DB) GetScrapeRun(ctx context.Context, id string) (*domain.ScrapeRun, error) {
	var dbRun ScrapeRun
	err := db.conn.GetContext(ctx, &dbRun, "SELECT * FROM scrape_runs WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoScrapeRuns
		}
		return nil, fmt.Errorf("get scrape run: %w", err)
	}
	return toDomainScrapeRun(&dbRun), nil
}

// GetLatestScrapeRun retrieves the most recently started scrape run
func (db *DB) GetLatestScrapeRun(ctx context.Context) (*domain.ScrapeRun, error) {
	var dbRun ScrapeRun
	err := db.conn.GetContext(ctx, &dbRun, "SELECT * FROM scrape_runs ORDER BY started_at DESC, id DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoScrapeRuns
		}
		return nil, fmt.Errorf("get latest scrape run: %w", err)
	}
	return toDomainScrapeRun(&dbRun), nil
}

// toDomainScrapeRun converts db.ScrapeRun to domain.ScrapeRun
func toDomainScrapeRun(r *ScrapeRun) *domain.ScrapeRun {
	run := &domain.ScrapeRun{
		ID:                r.ID,
		City:              r.City,
		Source:            r.Source,
		Status:            domain.ScrapeStatus(r.Status),
		ProjectsFound:     r.ProjectsFound,
		TransactionsFound: r.TransactionsFound,
		Errors:            []string(r.Errors),
		StartedAt:         r.StartedAt,
	}
	if r.FinishedAt.Valid {
		finished := r.FinishedAt.Time
		run.FinishedAt = &finished
	}
	return run
}

// fromDomainScrapeRun converts domain.ScrapeRun to db.ScrapeRun
func fromDomainScrapeRun(r *domain.ScrapeRun) *ScrapeRun {
	run := &ScrapeRun{
		ID:                r.ID,
		City:              r.City,
		Source:            r.Source,
		Status:            string(r.Status),
		ProjectsFound:     r.ProjectsFound,
		TransactionsFound: r.TransactionsFound,
		Errors:            StringList(r.Errors),
		StartedAt:         r.StartedAt,
	}
	if r.FinishedAt != nil {
		run.FinishedAt = sql.NullTime{Time: *r.FinishedAt, Valid: true}
	}
	return run
}
