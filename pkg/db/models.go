package db

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Project represents a stored real estate project row
type Project struct {
	ID               int64           `db:"id"`
	ProjectName      string          `db:"project_name"`
	DeveloperName    string          `db:"developer_name"`
	Address          string          `db:"address"`
	City             string          `db:"city"`
	Lat              sql.NullFloat64 `db:"lat"`
	Lng              sql.NullFloat64 `db:"lng"`
	PriceMin         int             `db:"price_min"`
	PriceMax         int             `db:"price_max"`
	PriceAvg         int             `db:"price_avg"`
	ConfidenceScore  float64         `db:"confidence_score"`
	PriceCorrelation float64         `db:"price_correlation"`
	PriceCorrelated  bool            `db:"price_correlated"`
	Sources          StringList      `db:"sources"`
	Metadata         Metadata        `db:"metadata"`
	LastUpdated      time.Time       `db:"last_updated"`
	CreatedAt        time.Time       `db:"created_at"`
}

// Transaction represents a stored historical sale row
type Transaction struct {
	ID        int64           `db:"id"`
	ProjectID int64           `db:"project_id"`
	Price     int             `db:"price"`
	SaleDate  time.Time       `db:"sale_date"`
	UnitSize  sql.NullFloat64 `db:"unit_size"`
	Floor     sql.NullInt64   `db:"floor"`
	BuyerType string          `db:"buyer_type"`
	Address   string          `db:"address"`
	Source    string          `db:"source"`
}

// ScrapeRun represents a stored scraping task row
type ScrapeRun struct {
	ID                string       `db:"id"`
	City              string       `db:"city"`
	Source            string       `db:"source"`
	Status            string       `db:"status"`
	ProjectsFound     int          `db:"projects_found"`
	TransactionsFound int          `db:"transactions_found"`
	Errors            StringList   `db:"errors"`
	StartedAt         time.Time    `db:"started_at"`
	FinishedAt        sql.NullTime `db:"finished_at"`
}

// StringList is a string slice stored as a JSON column
type StringList []string

// Value implements driver.Valuer for database storage
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported type for string list: %T", value)
	}
	return json.Unmarshal(data, s)
}

// Metadata is a free-form map stored as a JSON column
type Metadata map[string]any

// Value implements driver.Valuer for database storage
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported type for metadata: %T", value)
	}
	return json.Unmarshal(data, m)
}
