package matcher

import (
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/marketsurvey/marketsurvey/pkg/config"
	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

// maxMatchesPerProject caps how many transactions can attach to one project
// in a single matching pass
const maxMatchesPerProject = 10

// Matcher links tax authority transactions to scraped projects by fuzzy
// address similarity and recalculates project confidence afterwards
type Matcher struct {
	threshold float64
	partial   *metrics.SmithWatermanGotoh
	ratio     *metrics.Levenshtein
}

// New creates a matcher with the configured similarity threshold
func New(cfg config.MatchingConfig) *Matcher {
	return &Matcher{
		threshold: cfg.AddressMatchThreshold,
		partial:   metrics.NewSmithWatermanGotoh(),
		ratio:     metrics.NewLevenshtein(),
	}
}

var (
	nonWordRe     = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	multiSpaceRe  = regexp.MustCompile(`\s+`)
	numberRangeRe = regexp.MustCompile(`(\d+)(?:\s*[-–]\s*\d+)?`)
	addressRe     = regexp.MustCompile(`^(?:רח|שד|דרך)?\s*(\D+?)\s*(\d+[א-ת]?)(?:\s*,\s*([^,]+))?$`)
)

// streetTypes maps full Hebrew street designations to their abbreviations
var streetTypes = map[string]string{
	"רחוב":  "רח",
	"שדרות": "שד",
	"דרך":   "דר",
}

// streetPrefixes are stripped from the front of a normalized address
var streetPrefixes = []string{"רח ", "שד ", "דר ", "הרב ", "הרבנית "}

// NormalizeAddress canonicalizes a Hebrew street address for comparison:
// lowercase, punctuation stripped, street types abbreviated, leading street
// designation removed and building number ranges collapsed to the first number
func NormalizeAddress(address string) string {
	if address == "" {
		return ""
	}

	address = strings.ToLower(strings.TrimSpace(address))
	address = nonWordRe.ReplaceAllString(address, " ")
	address = multiSpaceRe.ReplaceAllString(address, " ")

	for full, abbr := range streetTypes {
		address = strings.ReplaceAll(address, full, abbr)
	}

	for _, prefix := range streetPrefixes {
		if strings.HasPrefix(address, prefix) {
			address = address[len(prefix):]
			break
		}
	}

	address = numberRangeRe.ReplaceAllString(address, "$1")
	return strings.TrimSpace(address)
}

// MatchProjects attaches transactions to projects whose addresses are similar
// enough, updates price ranges and recalculates confidence scores. Projects
// are modified in place.
func (m *Matcher) MatchProjects(projects []*domain.Project, transactions []domain.Transaction) {
	type indexed struct {
		tx   domain.Transaction
		addr string
	}
	candidates := make([]indexed, 0, len(transactions))
	for _, tx := range transactions {
		if addr := NormalizeAddress(tx.Address); addr != "" {
			candidates = append(candidates, indexed{tx: tx, addr: addr})
		}
	}

	for _, project := range projects {
		projectAddr := NormalizeAddress(project.Address)
		if projectAddr != "" {
			type scored struct {
				tx    domain.Transaction
				score float64
			}
			var matches []scored
			for _, cand := range candidates {
				score := strutil.Similarity(projectAddr, cand.addr, m.partial)
				if score >= m.threshold {
					matches = append(matches, scored{tx: cand.tx, score: score})
				}
			}
			sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
			if len(matches) > maxMatchesPerProject {
				matches = matches[:maxMatchesPerProject]
			}

			for _, match := range matches {
				project.Transactions = append(project.Transactions, match.tx)
			}
			if len(matches) > 0 {
				updatePriceRange(project)
				if !project.HasSource(domain.SourceTaxAuthority) {
					project.Sources = append(project.Sources, domain.SourceTaxAuthority)
				}
			}
		}

		project.ConfidenceScore = RecalculateConfidence(project)
	}
}

// updatePriceRange recomputes min/max/avg over the project's transactions
func updatePriceRange(project *domain.Project) {
	if len(project.Transactions) == 0 {
		return
	}
	minPrice, maxPrice, sum := project.Transactions[0].Price, project.Transactions[0].Price, 0
	for _, tx := range project.Transactions {
		if tx.Price < minPrice {
			minPrice = tx.Price
		}
		if tx.Price > maxPrice {
			maxPrice = tx.Price
		}
		sum += tx.Price
	}
	project.UnitPrices = domain.PriceRange{
		Min: minPrice,
		Max: maxPrice,
		Avg: sum / len(project.Transactions),
	}
}

// RecalculateConfidence scores a project on data completeness after matching.
// Identity fields and coordinates carry fixed weights, each transaction adds
// 0.05 up to 0.3, and a second data source adds a bonus.
func RecalculateConfidence(project *domain.Project) float64 {
	score := 0.0

	if project.ProjectName != "" {
		score += 0.2
	}
	if project.Address != "" {
		score += 0.2
	}
	if project.DeveloperName != "" {
		score += 0.1
	}
	if project.Coordinates != nil {
		score += 0.1
	}

	if n := len(project.Transactions); n > 0 {
		bonus := float64(n) * 0.05
		if bonus > 0.3 {
			bonus = 0.3
		}
		score += bonus
	}

	if project.UnitPrices.Min > 0 {
		score += 0.1
	}
	if len(project.Sources) > 1 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// SimilarProject is a candidate returned by FindSimilarProjects
type SimilarProject struct {
	Project *domain.Project
	Score   float64
}

// similarityCutoff is the minimum weighted score for FindSimilarProjects
const similarityCutoff = 0.7

// FindSimilarProjects ranks other projects by weighted address and developer
// similarity to the target, highest first
func (m *Matcher) FindSimilarProjects(projects []*domain.Project, target *domain.Project) []SimilarProject {
	targetAddr := NormalizeAddress(target.Address)
	targetDev := strings.ToLower(target.DeveloperName)

	var similar []SimilarProject
	for _, project := range projects {
		if project == target || project.ID == target.ID && target.ID != 0 {
			continue
		}

		addrSim := strutil.Similarity(targetAddr, NormalizeAddress(project.Address), m.ratio)

		devSim := 0.0
		if targetDev != "" && project.DeveloperName != "" {
			devSim = strutil.Similarity(targetDev, strings.ToLower(project.DeveloperName), m.ratio)
		}

		total := addrSim*0.7 + devSim*0.3
		if total >= similarityCutoff {
			similar = append(similar, SimilarProject{Project: project, Score: total})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool { return similar[i].Score > similar[j].Score })
	return similar
}

// AddressParts is the result of parsing a street address
type AddressParts struct {
	Valid      bool   `json:"is_valid"`
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	City       string `json:"city,omitempty"`
	Normalized string `json:"normalized,omitempty"`
}

// ValidateAddressFormat parses an address into street, number and optional
// city after a comma
func ValidateAddressFormat(address string) AddressParts {
	address = strings.TrimSpace(address)
	if address == "" {
		return AddressParts{}
	}

	m := addressRe.FindStringSubmatch(address)
	if m == nil {
		return AddressParts{}
	}

	street := strings.TrimSpace(m[1])
	number := strings.TrimSpace(m[2])
	return AddressParts{
		Valid:      true,
		Street:     street,
		Number:     number,
		City:       strings.TrimSpace(m[3]),
		Normalized: street + " " + number,
	}
}
