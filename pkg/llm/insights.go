package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/marketsurvey/marketsurvey/pkg/config"
	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

// InsightsGenerator produces market analysis of scraped projects through an
// OpenAI-compatible chat completion endpoint
type InsightsGenerator struct {
	client *openai.Client
	config config.LLMConfig

	mu        sync.RWMutex
	systemMsg string
}

// NewInsightsGenerator creates a generator for the configured endpoint
func NewInsightsGenerator(cfg config.LLMConfig) *InsightsGenerator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &InsightsGenerator{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for market analysis
const defaultSystemPrompt = `You are a real estate market analyst with expertise in Israeli property markets.
Analyze the provided project data and generate comprehensive insights including:

1. Market trends and patterns
2. Price analysis and comparisons
3. Data quality assessment
4. Geographic distribution insights
5. Developer activity analysis
6. Investment recommendations

Provide clear, actionable insights in a professional tone. Focus on data-driven conclusions
and highlight any notable patterns or anomalies in the market data.`

// Result is the outcome of an insights request
type Result struct {
	Success  bool      `json:"success"`
	Insights string    `json:"insights"`
	Error    string    `json:"error,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Metadata describes how an insights result was produced
type Metadata struct {
	ProjectsAnalyzed int       `json:"projects_analyzed"`
	GeneratedAt      time.Time `json:"generated_at"`
	ModelUsed        string    `json:"model_used,omitempty"`
}

// Enabled reports whether an API key is configured
func (g *InsightsGenerator) Enabled() bool {
	return g.config.APIKey != ""
}

// GenerateInsights analyzes the projects with the LLM. A missing API key or a
// failed call is reported in the result, not as an error, so callers can pass
// the outcome straight to the client.
func (g *InsightsGenerator) GenerateInsights(ctx context.Context, projects []*domain.Project, customPrompt string) Result {
	if !g.Enabled() {
		lgr.Printf("[WARN] insights requested but no API key configured")
		return Result{
			Success:  false,
			Error:    "AI insights require API key configuration",
			Insights: "AI insights are currently unavailable. Please configure OPENROUTER_API_KEY.",
		}
	}

	if len(projects) == 0 {
		return Result{
			Success:  true,
			Insights: "No project data available for analysis.",
			Metadata: &Metadata{ProjectsAnalyzed: 0, GeneratedAt: time.Now()},
		}
	}

	systemMsg := customPrompt
	if systemMsg == "" {
		systemMsg = g.GetSystemPrompt()
	}

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	summary := buildDataSummary(projects)
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Temperature: float32(g.config.Temperature),
		MaxTokens:   g.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: "Please analyze this real estate market data and provide comprehensive insights:\n\n" + summary},
		},
	})
	if err != nil {
		lgr.Printf("[ERROR] insights generation failed: %v", err)
		return Result{Success: false, Error: err.Error(), Insights: "Unable to generate insights due to technical error."}
	}
	if len(resp.Choices) == 0 {
		return Result{Success: false, Error: "no response content from LLM", Insights: "Unable to generate insights due to technical error."}
	}

	return Result{
		Success:  true,
		Insights: resp.Choices[0].Message.Content,
		Metadata: &Metadata{
			ProjectsAnalyzed: len(projects),
			GeneratedAt:      time.Now(),
			ModelUsed:        g.config.Model,
		},
	}
}

// UpdateSystemPrompt replaces the system prompt used for analysis
func (g *InsightsGenerator) UpdateSystemPrompt(prompt string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.systemMsg = prompt
	lgr.Printf("[INFO] insights system prompt updated")
}

// GetSystemPrompt returns the current system prompt
func (g *InsightsGenerator) GetSystemPrompt() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.systemMsg
}

// buildDataSummary renders aggregate statistics and sample projects into the
// text block handed to the model
func buildDataSummary(projects []*domain.Project) string {
	totalTransactions := 0
	var avgPrices []int
	var confidences []float64
	recentCount := 0
	recentCutoff := time.Now().Add(-30 * 24 * time.Hour)

	cityCounts := map[string]int{}
	developerCounts := map[string]int{}
	sourceCounts := map[string]int{}

	for _, p := range projects {
		totalTransactions += len(p.Transactions)
		if p.UnitPrices.Avg > 0 {
			avgPrices = append(avgPrices, p.UnitPrices.Avg)
		}
		if p.ConfidenceScore > 0 {
			confidences = append(confidences, p.ConfidenceScore)
		}
		if p.LastUpdated.After(recentCutoff) {
			recentCount++
		}

		city := p.City
		if city == "" {
			city = "Unknown"
		}
		cityCounts[city]++

		dev := p.DeveloperName
		if dev == "" {
			dev = "Unknown"
		}
		developerCounts[dev]++

		for _, source := range p.Sources {
			sourceCounts[string(source)]++
		}
	}

	avgPrice, minPrice, maxPrice := 0, 0, 0
	if len(avgPrices) > 0 {
		minPrice, maxPrice = avgPrices[0], avgPrices[0]
		sum := 0
		for _, price := range avgPrices {
			if price < minPrice {
				minPrice = price
			}
			if price > maxPrice {
				maxPrice = price
			}
			sum += price
		}
		avgPrice = sum / len(avgPrices)
	}

	avgConfidence := 0.0
	high, medium, low := 0, 0, 0
	for _, score := range confidences {
		avgConfidence += score
		switch {
		case score > 0.8:
			high++
		case score >= 0.6:
			medium++
		default:
			low++
		}
	}
	if len(confidences) > 0 {
		avgConfidence /= float64(len(confidences))
	}

	var b strings.Builder
	b.WriteString("REAL ESTATE MARKET DATA ANALYSIS\n\n")
	fmt.Fprintf(&b, "OVERVIEW:\n- Total Projects: %d\n- Total Transactions: %d\n- Recent Projects (30 days): %d\n\n",
		len(projects), totalTransactions, recentCount)
	fmt.Fprintf(&b, "PRICE ANALYSIS:\n- Average Unit Price: ₪%s\n- Price Range: ₪%s - ₪%s\n- Projects with Price Data: %d\n\n",
		formatPrice(avgPrice), formatPrice(minPrice), formatPrice(maxPrice), len(avgPrices))
	fmt.Fprintf(&b, "DATA QUALITY:\n- Average Confidence Score: %.1f%%\n- High Confidence Projects (>80%%): %d\n- Medium Confidence Projects (60-80%%): %d\n- Low Confidence Projects (<60%%): %d\n\n",
		avgConfidence*100, high, medium, low)

	b.WriteString("GEOGRAPHIC DISTRIBUTION:\n" + formatDistribution(cityCounts, 5) + "\n\n")
	b.WriteString("TOP DEVELOPERS:\n" + formatDistribution(developerCounts, 10) + "\n\n")
	b.WriteString("DATA SOURCES:\n" + formatDistribution(sourceCounts, 5) + "\n\n")

	b.WriteString("SAMPLE PROJECTS:\n")
	samples := projects
	if len(samples) > 5 {
		samples = samples[:5]
	}
	for i, p := range samples {
		sources := make([]string, len(p.Sources))
		for j, source := range p.Sources {
			sources[j] = string(source)
		}
		fmt.Fprintf(&b, "\n%d. %s\n   - Developer: %s\n   - Location: %s, %s\n   - Price Range: ₪%s - ₪%s\n   - Transactions: %d\n   - Confidence: %.1f%%\n   - Sources: %s\n",
			i+1, p.ProjectName, orUnknown(p.DeveloperName), p.Address, p.City,
			formatPrice(p.UnitPrices.Min), formatPrice(p.UnitPrices.Max),
			len(p.Transactions), p.ConfidenceScore*100, strings.Join(sources, ", "))
	}

	return b.String()
}

// formatDistribution renders counts sorted by frequency, ties broken by name
func formatDistribution(counts map[string]int, limit int) string {
	if len(counts) == 0 {
		return "- no data available"
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name: name, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("- %s: %d", e.name, e.count)
	}
	return strings.Join(lines, "\n")
}

// formatPrice groups digits by thousands, e.g. 2500000 -> "2,500,000"
func formatPrice(price int) string {
	s := fmt.Sprintf("%d", price)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
