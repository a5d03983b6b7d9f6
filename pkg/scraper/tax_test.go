package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

const taxResultsHTML = `<html><body>
<div class="results">
  <div class="transaction-row">רוטשילד 12, תל אביב ₪3,100,000 12/03/2025 85 מ"ר קומה 3</div>
  <div class="transaction-row">דיזנגוף 50, תל אביב ₪2,450,000 28/11/2024</div>
  <div class="transaction-row">שורה בלי מחיר, תל אביב 01/01/2025</div>
</div>
</body></html>`

func taxForServer(ts *httptest.Server) *TaxAuthority {
	cfg := testScrapeConfig()
	cfg.TaxBaseURL = ts.URL
	return NewTaxAuthority(NewFetcher(cfg), cfg)
}

func TestTaxAuthority_ScrapeTransactions(t *testing.T) {
	var gotQuery map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, taxResultsHTML)
	}))
	defer ts.Close()

	tax := taxForServer(ts)
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	transactions, err := tax.ScrapeTransactions(context.Background(), "תל אביב", start, end)
	require.NoError(t, err)

	assert.Equal(t, []string{"תל אביב"}, gotQuery["city"])
	assert.Equal(t, []string{"01/09/2024"}, gotQuery["start_date"])
	assert.Equal(t, []string{"01/04/2025"}, gotQuery["end_date"])

	require.Len(t, transactions, 2, "row without a price is dropped")

	tx := transactions[0]
	assert.Equal(t, 3100000, tx.Price)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), tx.SaleDate)
	assert.Equal(t, domain.SourceTaxAuthority, tx.Source)
	assert.Contains(t, tx.Address, "רוטשילד 12")
	require.NotNil(t, tx.UnitSize)
	assert.InDelta(t, 85.0, *tx.UnitSize, 0.001)
	require.NotNil(t, tx.Floor)
	assert.Equal(t, 3, *tx.Floor)

	assert.Nil(t, transactions[1].UnitSize)
	assert.Nil(t, transactions[1].Floor)
}

func TestTaxAuthority_ScrapeTransactionsDefaultRange(t *testing.T) {
	var gotQuery map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `<html><body></body></html>`)
	}))
	defer ts.Close()

	tax := taxForServer(ts)
	_, err := tax.ScrapeTransactions(context.Background(), "חיפה", time.Time{}, time.Time{})
	require.NoError(t, err)

	start, err := time.Parse("02/01/2006", gotQuery["start_date"][0])
	require.NoError(t, err)
	end, err := time.Parse("02/01/2006", gotQuery["end_date"][0])
	require.NoError(t, err)
	assert.InDelta(t, 365, end.Sub(start).Hours()/24, 1, "defaults to the trailing year")
}

func TestTaxAuthority_ScrapeTransactionsTableFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><table>
			<tr><td>הרצל 8, חולון</td><td>₪1,900,000</td><td>07/06/2025</td></tr>
		</table></body></html>`)
	}))
	defer ts.Close()

	tax := taxForServer(ts)
	transactions, err := tax.ScrapeTransactions(context.Background(), "חולון", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, 1900000, transactions[0].Price)
}

func TestTaxAuthority_ScrapeTransactionsFetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	tax := taxForServer(ts)
	_, err := tax.ScrapeTransactions(context.Background(), "תל אביב", time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestParseTransactionRow(t *testing.T) {
	t.Run("no trailing address", func(t *testing.T) {
		_, ok := parseTransactionRow("₪1000000 01/01/2025")
		assert.False(t, ok)
	})
	t.Run("no date", func(t *testing.T) {
		_, ok := parseTransactionRow("הרצל 8, חולון ₪1,000,000")
		assert.False(t, ok)
	})
	t.Run("bad date", func(t *testing.T) {
		_, ok := parseTransactionRow("הרצל 8, חולון ₪1,000,000 99/99/2025")
		assert.False(t, ok)
	})
}
