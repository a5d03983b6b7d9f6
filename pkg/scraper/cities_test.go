package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

func TestCityDiscovery_DiscoverCities(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/projects/tel-aviv">תל אביב</a>
			<a href="/projects/haifa">חיפה</a>
			<a href="/projects/tel-aviv">duplicate</a>
			<a href="/projects/haifa/some-project">a project, not a city</a>
			<a href="/projects/x">too short</a>
		</body></html>`)
	}))
	defer ts.Close()

	discovery := NewCityDiscovery(NewFetcher(testScrapeConfig()), ts.URL)
	cities := discovery.DiscoverCities(context.Background())

	require.Len(t, cities, 2)
	assert.Equal(t, domain.City{Name: "Haifa", Slug: "haifa", HebrewName: "חיפה"}, cities[0])
	assert.Equal(t, domain.City{Name: "Tel Aviv", Slug: "tel-aviv", HebrewName: "תל אביב"}, cities[1])
}

func TestCityDiscovery_FallbackOnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	discovery := NewCityDiscovery(NewFetcher(testScrapeConfig()), ts.URL)
	cities := discovery.DiscoverCities(context.Background())
	assert.Equal(t, FallbackCities(), cities)
}

func TestCityDiscovery_FallbackOnEmptyPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><p>no links here</p></body></html>`)
	}))
	defer ts.Close()

	discovery := NewCityDiscovery(NewFetcher(testScrapeConfig()), ts.URL)
	cities := discovery.DiscoverCities(context.Background())
	require.NotEmpty(t, cities)
	assert.Len(t, cities, 31)
}

func TestFallbackCities(t *testing.T) {
	cities := FallbackCities()
	require.Len(t, cities, 31)

	// sorted by name, slugs unique
	seen := map[string]bool{}
	for i, city := range cities {
		if i > 0 {
			assert.Less(t, cities[i-1].Name, city.Name)
		}
		assert.False(t, seen[city.Slug], "duplicate slug %s", city.Slug)
		seen[city.Slug] = true
		assert.NotEmpty(t, city.HebrewName)
	}
}

func TestSlugToCityName(t *testing.T) {
	assert.Equal(t, "Tel Aviv", SlugToCityName("tel-aviv"))
	assert.Equal(t, "Haifa", SlugToCityName("haifa"))
	assert.Equal(t, "Rishon Lezion", SlugToCityName("rishon-lezion"))
	assert.Equal(t, "", SlugToCityName(""))
}
