package domain

import "time"

// DataSource identifies where project data came from
type DataSource string

// known data sources
const (
	SourceMadlan       DataSource = "madlan"
	SourceTaxAuthority DataSource = "ita"
	SourceCombined     DataSource = "combined"
)

// PriceRange holds unit price statistics in ILS
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
	Avg int `json:"avg"`
}

// Coordinates is a geographic point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Transaction represents a single historical sale
type Transaction struct {
	ID        int64      `json:"id,omitempty"`
	ProjectID int64      `json:"project_id,omitempty"`
	Price     int        `json:"price"`
	SaleDate  time.Time  `json:"sale_date"`
	UnitSize  *float64   `json:"unit_size,omitempty"`
	Floor     *int       `json:"floor,omitempty"`
	BuyerType string     `json:"buyer_type,omitempty"`
	Address   string     `json:"address,omitempty"`
	Source    DataSource `json:"source,omitempty"`
}

// Project represents a real estate development project
type Project struct {
	ID               int64          `json:"id"`
	ProjectName      string         `json:"project_name"`
	DeveloperName    string         `json:"developer_name,omitempty"`
	Address          string         `json:"address"`
	City             string         `json:"city"`
	Coordinates      *Coordinates   `json:"coordinates,omitempty"`
	UnitPrices       PriceRange     `json:"unit_prices"`
	Transactions     []Transaction  `json:"transactions"`
	ConfidenceScore  float64        `json:"data_confidence_score"`
	PriceCorrelation float64        `json:"price_correlation"`
	PriceCorrelated  bool           `json:"price_correlated"`
	LastUpdated      time.Time      `json:"last_updated"`
	Sources          []DataSource   `json:"sources"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// HasSource reports whether the project already lists the given source
func (p *Project) HasSource(src DataSource) bool {
	for _, s := range p.Sources {
		if s == src {
			return true
		}
	}
	return false
}

// ScrapeStatus represents the lifecycle state of a scrape run
type ScrapeStatus string

// scrape run states
const (
	ScrapeInProgress ScrapeStatus = "in_progress"
	ScrapeCompleted  ScrapeStatus = "completed"
	ScrapeFailed     ScrapeStatus = "failed"
)

// ScrapeRun records a single scraping task
type ScrapeRun struct {
	ID                string       `json:"id"`
	City              string       `json:"city"`
	Source            string       `json:"source"`
	Status            ScrapeStatus `json:"status"`
	ProjectsFound     int          `json:"projects_found"`
	TransactionsFound int          `json:"transactions_found"`
	Errors            []string     `json:"errors,omitempty"`
	StartedAt         time.Time    `json:"started_at"`
	FinishedAt        *time.Time   `json:"finished_at,omitempty"`
}

// City describes a city available for scraping
type City struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	HebrewName string `json:"hebrew_name,omitempty"`
}

// ProjectFilter represents filtering criteria for project queries
type ProjectFilter struct {
	City          string
	Developer     string
	MinConfidence float64
	Limit         int
}
