package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/marketsurvey/marketsurvey/pkg/config"
	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

// TaxAuthority scrapes recorded sale transactions from the Israel Tax
// Authority public records search
type TaxAuthority struct {
	fetcher *Fetcher
	baseURL string
}

// NewTaxAuthority creates a tax authority scraper
func NewTaxAuthority(fetcher *Fetcher, cfg config.ScrapeConfig) *TaxAuthority {
	return &TaxAuthority{
		fetcher: fetcher,
		baseURL: strings.TrimSuffix(cfg.TaxBaseURL, "/"),
	}
}

var (
	trailingAddressRe = regexp.MustCompile(`(.+?)\s*,\s*([^,]+)$`)
	unitSizeRe        = regexp.MustCompile(`(\d+)\s*מ"ר`)
	floorRe           = regexp.MustCompile(`קומה\s+(\d+)`)
)

// ScrapeTransactions fetches transactions for a city within the date range.
// Zero start/end default to the trailing 365 days.
func (t *TaxAuthority) ScrapeTransactions(ctx context.Context, city string, start, end time.Time) ([]domain.Transaction, error) {
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -365)
	}

	query := url.Values{}
	query.Set("city", city)
	query.Set("start_date", start.Format("02/01/2006"))
	query.Set("end_date", end.Format("02/01/2006"))
	searchURL := fmt.Sprintf("%s/transactions?%s", t.baseURL, query.Encode())

	doc, err := t.fetcher.Get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions for %s: %w", city, err)
	}

	rows := doc.Find(".transaction-row")
	if rows.Length() == 0 {
		rows = doc.Find("table tr")
	}

	var transactions []domain.Transaction
	rows.Each(func(_ int, row *goquery.Selection) {
		tx, ok := parseTransactionRow(row.Text())
		if ok {
			transactions = append(transactions, tx)
		}
	})

	lgr.Printf("[DEBUG] scraped %d transactions for %s between %s and %s",
		len(transactions), city, start.Format("02/01/2006"), end.Format("02/01/2006"))
	return transactions, nil
}

// parseTransactionRow extracts one transaction from a result row's text.
// A row needs an address tail, a price and a sale date to count.
func parseTransactionRow(text string) (domain.Transaction, bool) {
	text = strings.TrimSpace(text)

	addressMatch := trailingAddressRe.FindString(text)
	if addressMatch == "" {
		return domain.Transaction{}, false
	}

	priceMatch := priceRe.FindStringSubmatch(text)
	if priceMatch == nil {
		return domain.Transaction{}, false
	}

	dateMatch := saleDateRe.FindStringSubmatch(text)
	if dateMatch == nil {
		return domain.Transaction{}, false
	}
	saleDate, err := time.Parse("02/01/2006", dateMatch[1])
	if err != nil {
		return domain.Transaction{}, false
	}

	tx := domain.Transaction{
		Address:  strings.TrimSpace(addressMatch),
		Price:    parsePrice(priceMatch[1]),
		SaleDate: saleDate,
		Source:   domain.SourceTaxAuthority,
	}

	if m := unitSizeRe.FindStringSubmatch(text); m != nil {
		if size, err := strconv.ParseFloat(m[1], 64); err == nil {
			tx.UnitSize = &size
		}
	}
	if m := floorRe.FindStringSubmatch(text); m != nil {
		if floor, err := strconv.Atoi(m[1]); err == nil {
			tx.Floor = &floor
		}
	}

	return tx, true
}
