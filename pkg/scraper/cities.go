package scraper

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

// cityLinkRe matches city index pages like /projects/tel-aviv
var cityLinkRe = regexp.MustCompile(`/projects/([^/]+)$`)

// hebrewNames maps English city names to their Hebrew spelling
var hebrewNames = map[string]string{
	"Tel Aviv":       "תל אביב",
	"Jerusalem":      "ירושלים",
	"Haifa":          "חיפה",
	"Beer Sheva":     "באר שבע",
	"Ashdod":         "אשדוד",
	"Ashkelon":       "אשקלון",
	"Petah Tikva":    "פתח תקווה",
	"Netanya":        "נתניה",
	"Holon":          "חולון",
	"Ramat Gan":      "רמת גן",
	"Givatayim":      "גבעתיים",
	"Rishon Lezion":  "ראשון לציון",
	"Herzliya":       "הרצליה",
	"Raanana":        "רעננה",
	"Kfar Saba":      "כפר סבא",
	"Hod Hasharon":   "הוד השרון",
	"Ramat Hasharon": "רמת השרון",
	"Bat Yam":        "בת ים",
	"Rehovot":        "רחובות",
	"Modiin":         "מודיעין",
	"Eilat":          "אילת",
	"Nazareth":       "נצרת",
	"Acre":           "עכו",
	"Tiberias":       "טבריה",
	"Safed":          "צפת",
	"Kiryat Shmona":  "קריית שמונה",
	"Dimona":         "דימונה",
	"Arad":           "ערד",
	"Kiryat Gat":     "קריית גת",
	"Lod":            "לוד",
	"Ramla":          "רמלה",
}

// CityDiscovery finds which cities have project listings
type CityDiscovery struct {
	fetcher *Fetcher
	baseURL string
}

// NewCityDiscovery creates a city discovery helper
func NewCityDiscovery(fetcher *Fetcher, baseURL string) *CityDiscovery {
	return &CityDiscovery{fetcher: fetcher, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// DiscoverCities lists cities with project pages, scraped from the projects
// index. Falls back to a predefined list of major Israeli cities when the
// page yields nothing.
func (c *CityDiscovery) DiscoverCities(ctx context.Context) []domain.City {
	doc, err := c.fetcher.Get(ctx, c.baseURL+"/projects")
	if err != nil {
		lgr.Printf("[WARN] city discovery failed, using fallback list: %v", err)
		return FallbackCities()
	}

	cities := extractCityLinks(doc)
	if len(cities) == 0 {
		return FallbackCities()
	}
	return cities
}

// extractCityLinks collects city entries from /projects/{slug} links
func extractCityLinks(doc *goquery.Document) []domain.City {
	seen := map[string]bool{}
	var cities []domain.City
	doc.Find(`a[href*="/projects/"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		m := cityLinkRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		slug := m[1]
		if len(slug) <= 2 || seen[slug] {
			return
		}
		seen[slug] = true
		name := SlugToCityName(slug)
		cities = append(cities, domain.City{Name: name, Slug: slug, HebrewName: hebrewNames[name]})
	})
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities
}

// FallbackCities returns the predefined list of major Israeli cities
func FallbackCities() []domain.City {
	cities := make([]domain.City, 0, len(hebrewNames))
	for name, hebrew := range hebrewNames {
		cities = append(cities, domain.City{Name: name, Slug: cityNameToSlug(name), HebrewName: hebrew})
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities
}

// HebrewCityName returns the Hebrew spelling for a known city name,
// or the name itself when no translation is known
func HebrewCityName(name string) string {
	if hebrew, ok := hebrewNames[name]; ok {
		return hebrew
	}
	return name
}

// SlugToCityName converts a URL slug like "tel-aviv" to "Tel Aviv"
func SlugToCityName(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func cityNameToSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
