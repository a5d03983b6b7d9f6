package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/marketsurvey/marketsurvey/pkg/config"
	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

// Madlan scrapes real estate projects from madlan.co.il
type Madlan struct {
	fetcher   *Fetcher
	baseURL   string
	pageLimit int
}

// NewMadlan creates a Madlan scraper
func NewMadlan(fetcher *Fetcher, cfg config.ScrapeConfig) *Madlan {
	return &Madlan{
		fetcher:   fetcher,
		baseURL:   strings.TrimSuffix(cfg.MadlanBaseURL, "/"),
		pageLimit: cfg.PageLimit,
	}
}

var (
	priceRangeRe = regexp.MustCompile(`₪([\d,]+)\s*-\s*₪([\d,]+)`)
	priceRe      = regexp.MustCompile(`₪([\d,]+)`)
	saleDateRe   = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)
	yearRe       = regexp.MustCompile(`\b(\d{4})\b`)

	developerLabelRe = regexp.MustCompile(`קבלן|מפתח|יזם`)
	addressLabelRe   = regexp.MustCompile(`כתובת`)
	statusLabelRe    = regexp.MustCompile(`סטטוס|מצב הפרויקט`)
)

// ScrapeProjects scrapes all projects for a city, identified by its URL slug
func (m *Madlan) ScrapeProjects(ctx context.Context, citySlug string) ([]*domain.Project, error) {
	cityURL := fmt.Sprintf("%s/projects/%s", m.baseURL, citySlug)
	doc, err := m.fetcher.Get(ctx, cityURL)
	if err != nil {
		return nil, fmt.Errorf("fetch city page %s: %w", cityURL, err)
	}

	links := m.projectLinks(doc)
	if m.pageLimit > 0 && len(links) > m.pageLimit {
		links = links[:m.pageLimit]
	}

	projects := make([]*domain.Project, 0, len(links))
	for _, link := range links {
		project, err := m.scrapeProjectDetails(ctx, link, citySlug)
		if err != nil {
			lgr.Printf("[WARN] failed to scrape project %s: %v", link, err)
			continue
		}
		if project != nil {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

// projectLinks extracts deduplicated project page links from a city page
func (m *Madlan) projectLinks(doc *goquery.Document) []string {
	seen := map[string]bool{}
	var links []string
	doc.Find(`a[href*="/projects/"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = m.baseURL + href
		}
		// skip links pointing back at city index pages
		if strings.Count(href, "/") <= strings.Count(m.baseURL, "/")+2 {
			return
		}
		if !seen[href] {
			seen[href] = true
			links = append(links, href)
		}
	})
	return links
}

// scrapeProjectDetails fetches and parses a single project page
func (m *Madlan) scrapeProjectDetails(ctx context.Context, projectURL, citySlug string) (*domain.Project, error) {
	doc, err := m.fetcher.Get(ctx, projectURL)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(doc.Find(`[data-testid="project-name"]`).First().Text())
	if name == "" {
		name = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if name == "" {
		return nil, nil // not a project page
	}

	project := &domain.Project{
		ProjectName:   name,
		DeveloperName: labeledValue(doc, developerLabelRe),
		Address:       labeledValue(doc, addressLabelRe),
		City:          SlugToCityName(citySlug),
		Sources:       []domain.DataSource{domain.SourceMadlan},
		LastUpdated:   time.Now(),
		Metadata:      map[string]any{"url": projectURL},
	}

	if status := labeledValue(doc, statusLabelRe); status != "" {
		project.Metadata["construction_status"] = status
	}
	if year := completionYear(doc.Text()); year > 0 {
		project.Metadata["completion_year"] = year
	}

	project.UnitPrices = extractPriceRange(doc.Text())
	project.Transactions = extractTransactions(doc)
	project.ConfidenceScore = scrapeConfidence(project)

	return project, nil
}

// labeledValue finds an element whose text matches the label pattern and
// returns the text of the element right after it
func labeledValue(doc *goquery.Document, label *regexp.Regexp) string {
	var value string
	doc.Find("dt, th, span, div, label").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		own := strings.TrimSpace(s.Clone().Children().Remove().End().Text())
		if own == "" || !label.MatchString(own) {
			return true
		}
		next := strings.TrimSpace(s.Next().Text())
		if next != "" {
			value = next
			return false
		}
		return true
	})
	return value
}

// extractPriceRange parses a ₪min - ₪max range from page text,
// falling back to a single ₪ amount
func extractPriceRange(text string) domain.PriceRange {
	if m := priceRangeRe.FindStringSubmatch(text); m != nil {
		minPrice := parsePrice(m[1])
		maxPrice := parsePrice(m[2])
		if minPrice > maxPrice {
			minPrice, maxPrice = maxPrice, minPrice
		}
		return domain.PriceRange{Min: minPrice, Max: maxPrice, Avg: (minPrice + maxPrice) / 2}
	}
	if m := priceRe.FindStringSubmatch(text); m != nil {
		price := parsePrice(m[1])
		return domain.PriceRange{Min: price, Max: price, Avg: price}
	}
	return domain.PriceRange{}
}

// extractTransactions pulls historical sales rows from tables on the page
func extractTransactions(doc *goquery.Document) []domain.Transaction {
	var transactions []domain.Transaction
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		text := row.Text()
		priceMatch := priceRe.FindStringSubmatch(text)
		dateMatch := saleDateRe.FindStringSubmatch(text)
		if priceMatch == nil || dateMatch == nil {
			return
		}
		saleDate, err := time.Parse("02/01/2006", dateMatch[1])
		if err != nil {
			return
		}
		transactions = append(transactions, domain.Transaction{
			Price:    parsePrice(priceMatch[1]),
			SaleDate: saleDate,
			Source:   domain.SourceMadlan,
		})
	})
	return transactions
}

// completionYear returns the first plausible completion year in the text
func completionYear(text string) int {
	for _, m := range yearRe.FindAllStringSubmatch(text, -1) {
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if year >= 2020 && year <= 2030 {
			return year
		}
	}
	return 0
}

// parsePrice converts a comma-separated ILS amount to int
func parsePrice(s string) int {
	price, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return price
}

// scrapeConfidence scores data completeness of a freshly scraped project.
// Required fields weigh 0.25 each, optional ones 0.1.
func scrapeConfidence(p *domain.Project) float64 {
	score, total := 0.0, 0.0

	required := []bool{p.ProjectName != "", p.Address != "", p.UnitPrices.Min > 0}
	for _, ok := range required {
		if ok {
			score += 0.25
		}
		total += 0.25
	}

	_, hasStatus := p.Metadata["construction_status"]
	_, hasYear := p.Metadata["completion_year"]
	optional := []bool{p.DeveloperName != "", hasStatus, hasYear}
	for _, ok := range optional {
		if ok {
			score += 0.1
		}
		total += 0.1
	}

	return score / total
}
