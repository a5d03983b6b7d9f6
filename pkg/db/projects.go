package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

// ErrProjectNotFound is returned when a project lookup misses
var ErrProjectNotFound = errors.New("project not found")

// CreateProject inserts a project with its transactions
func (db *DB) CreateProject(ctx context.Context, project *domain.Project) error {
	return db.InTransaction(ctx, func(tx *sqlx.Tx) error {
		id, err := insertProjectTx(ctx, tx, project)
		if err != nil {
			return err
		}
		project.ID = id
		return insertTransactionsTx(ctx, tx, id, project.Transactions)
	})
}

// ReplaceCityProjects atomically replaces all stored projects for a city.
// Retries on sqlite lock contention with the scheduler's writers.
func (db *DB) ReplaceCityProjects(ctx context.Context, city string, projects []*domain.Project) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		err := db.InTransaction(ctx, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE city = ? COLLATE NOCASE", city); err != nil {
				return fmt.Errorf("delete city projects: %w", err)
			}
			for _, p := range projects {
				id, err := insertProjectTx(ctx, tx, p)
				if err != nil {
					return err
				}
				p.ID = id
				if err := insertTransactionsTx(ctx, tx, id, p.Transactions); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: err}
		}
		return nil
	})
}

// GetProject retrieves a project with its transactions
func (db *DB) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	var dbProject Project
	err := db.conn.GetContext(ctx, &dbProject, "SELECT * FROM projects WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	project := toDomainProject(&dbProject)
	transactions, err := db.GetTransactions(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Transactions = transactions
	return project, nil
}

// GetProjects retrieves projects matching the filter, transactions included
func (db *DB) GetProjects(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	query := "SELECT * FROM projects WHERE confidence_score >= ?"
	args := []interface{}{filter.MinConfidence}

	if filter.City != "" {
		query += " AND city LIKE ? COLLATE NOCASE"
		args = append(args, "%"+filter.City+"%")
	}
	if filter.Developer != "" {
		query += " AND developer_name LIKE ? COLLATE NOCASE"
		args = append(args, "%"+filter.Developer+"%")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " ORDER BY confidence_score DESC, last_updated DESC LIMIT ?"
	args = append(args, limit)

	var dbProjects []Project
	if err := db.conn.SelectContext(ctx, &dbProjects, query, args...); err != nil {
		return nil, fmt.Errorf("get projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(dbProjects))
	for i := range dbProjects {
		project := toDomainProject(&dbProjects[i])
		transactions, err := db.GetTransactions(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		project.Transactions = transactions
		projects = append(projects, project)
	}
	return projects, nil
}

// DeleteAllProjects removes all stored projects and their transactions
func (db *DB) DeleteAllProjects(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("delete all projects: %w", err)
	}
	return nil
}

// GetCities returns distinct cities present in the store
func (db *DB) GetCities(ctx context.Context) ([]string, error) {
	var cities []string
	err := db.conn.SelectContext(ctx, &cities, "SELECT DISTINCT city FROM projects ORDER BY city")
	if err != nil {
		return nil, fmt.Errorf("get cities: %w", err)
	}
	return cities, nil
}

// insertProjectTx inserts a single project row and returns its id
func insertProjectTx(ctx context.Context, tx *sqlx.Tx, p *domain.Project) (int64, error) {
	dbProject := fromDomainProject(p)
	query := `
		INSERT INTO projects (
			project_name, developer_name, address, city, lat, lng,
			price_min, price_max, price_avg,
			confidence_score, price_correlation, price_correlated,
			sources, metadata, last_updated
		) VALUES (
			:project_name, :developer_name, :address, :city, :lat, :lng,
			:price_min, :price_max, :price_avg,
			:confidence_score, :price_correlation, :price_correlated,
			:sources, :metadata, :last_updated
		)
	`
	result, err := tx.NamedExecContext(ctx, query, dbProject)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get insert id: %w", err)
	}
	return id, nil
}

// toDomainProject converts db.Project to domain.Project
func toDomainProject(p *Project) *domain.Project {
	project := &domain.Project{
		ID:               p.ID,
		ProjectName:      p.ProjectName,
		DeveloperName:    p.DeveloperName,
		Address:          p.Address,
		City:             p.City,
		UnitPrices:       domain.PriceRange{Min: p.PriceMin, Max: p.PriceMax, Avg: p.PriceAvg},
		ConfidenceScore:  p.ConfidenceScore,
		PriceCorrelation: p.PriceCorrelation,
		PriceCorrelated:  p.PriceCorrelated,
		LastUpdated:      p.LastUpdated,
		Metadata:         map[string]any(p.Metadata),
	}
	if p.Lat.Valid && p.Lng.Valid {
		project.Coordinates = &domain.Coordinates{Lat: p.Lat.Float64, Lng: p.Lng.Float64}
	}
	for _, s := range p.Sources {
		project.Sources = append(project.Sources, domain.DataSource(s))
	}
	return project
}

// fromDomainProject converts domain.Project to db.Project
func fromDomainProject(p *domain.Project) *Project {
	dbProject := &Project{
		ID:               p.ID,
		ProjectName:      p.ProjectName,
		DeveloperName:    p.DeveloperName,
		Address:          p.Address,
		City:             p.City,
		PriceMin:         p.UnitPrices.Min,
		PriceMax:         p.UnitPrices.Max,
		PriceAvg:         p.UnitPrices.Avg,
		ConfidenceScore:  p.ConfidenceScore,
		PriceCorrelation: p.PriceCorrelation,
		PriceCorrelated:  p.PriceCorrelated,
		LastUpdated:      p.LastUpdated,
		Metadata:         Metadata(p.Metadata),
	}
	if dbProject.LastUpdated.IsZero() {
		dbProject.LastUpdated = time.Now()
	}
	if p.Coordinates != nil {
		dbProject.Lat = sql.NullFloat64{Float64: p.Coordinates.Lat, Valid: true}
		dbProject.Lng = sql.NullFloat64{Float64: p.Coordinates.Lng, Valid: true}
	}
	for _, s := range p.Sources {
		dbProject.Sources = append(dbProject.Sources, string(s))
	}
	// normalize city for stable lookups
	dbProject.City = strings.TrimSpace(dbProject.City)
	return dbProject
}
