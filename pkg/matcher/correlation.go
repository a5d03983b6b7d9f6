package matcher

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/marketsurvey/marketsurvey/pkg/config"
	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

// Correlator flags projects whose sale prices track the city-wide market.
// Prices are bucketed into monthly averages and each project's series is
// compared against the aggregate series with Pearson correlation.
type Correlator struct {
	threshold float64
}

// NewCorrelator creates a correlator with the configured threshold
func NewCorrelator(cfg config.MatchingConfig) *Correlator {
	return &Correlator{threshold: cfg.PriceCorrelationThreshold}
}

// Apply computes price correlation for each project against the combined
// transaction history of all given projects. Projects with fewer than two
// months of sales are left unflagged. Projects are modified in place.
func (c *Correlator) Apply(projects []*domain.Project) {
	cityMonthly := monthlyAverages(allTransactions(projects))

	for _, project := range projects {
		project.PriceCorrelation = 0
		project.PriceCorrelated = false

		projectMonthly := monthlyAverages(project.Transactions)
		if len(projectMonthly) < 2 {
			continue
		}

		months := make([]int, 0, len(projectMonthly))
		for month := range projectMonthly {
			months = append(months, month)
		}
		sort.Ints(months)

		x := make([]float64, 0, len(months))
		y := make([]float64, 0, len(months))
		for _, month := range months {
			x = append(x, projectMonthly[month])
			y = append(y, cityMonthly[month])
		}

		r := stat.Correlation(x, y, nil)
		if math.IsNaN(r) {
			continue
		}
		project.PriceCorrelation = r
		project.PriceCorrelated = r >= c.threshold
	}
}

func allTransactions(projects []*domain.Project) []domain.Transaction {
	var all []domain.Transaction
	for _, project := range projects {
		all = append(all, project.Transactions...)
	}
	return all
}

// monthlyAverages buckets transaction prices by calendar month and averages
// each bucket. The key is year*12+month so buckets sort chronologically.
func monthlyAverages(transactions []domain.Transaction) map[int]float64 {
	sums := map[int]int{}
	counts := map[int]int{}
	for _, tx := range transactions {
		if tx.Price <= 0 || tx.SaleDate.IsZero() {
			continue
		}
		key := tx.SaleDate.Year()*12 + int(tx.SaleDate.Month()) - 1
		sums[key] += tx.Price
		counts[key]++
	}

	averages := make(map[int]float64, len(sums))
	for key, sum := range sums {
		averages[key] = float64(sum) / float64(counts[key])
	}
	return averages
}
