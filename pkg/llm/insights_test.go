package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketsurvey/marketsurvey/pkg/config"
	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

func testLLMConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:    endpoint,
		APIKey:      "test-key",
		Model:       "openai/gpt-4o",
		Temperature: 0.7,
		MaxTokens:   2000,
		Timeout:     5 * time.Second,
	}
}

func sampleProjects() []*domain.Project {
	return []*domain.Project{
		{
			ProjectName:     "מגדלי רוטשילד",
			DeveloperName:   "אזורים",
			Address:         "רוטשילד 12",
			City:            "Tel Aviv",
			UnitPrices:      domain.PriceRange{Min: 2500000, Max: 4800000, Avg: 3650000},
			ConfidenceScore: 0.9,
			Sources:         []domain.DataSource{domain.SourceMadlan, domain.SourceTaxAuthority},
			LastUpdated:     time.Now(),
			Transactions:    []domain.Transaction{{Price: 3000000}, {Price: 3200000}},
		},
		{
			ProjectName:     "City Gate",
			City:            "Jerusalem",
			UnitPrices:      domain.PriceRange{Avg: 2000000},
			ConfidenceScore: 0.5,
			LastUpdated:     time.Now().Add(-60 * 24 * time.Hour),
		},
	}
}

// fakeLLMServer returns an OpenAI-compatible server capturing the last request
func fakeLLMServer(t *testing.T, content string) (*httptest.Server, *openai.ChatCompletionRequest) {
	t.Helper()
	var captured openai.ChatCompletionRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(ts.Close)
	return ts, &captured
}

func TestInsightsGenerator_GenerateInsights(t *testing.T) {
	ts, captured := fakeLLMServer(t, "The Tel Aviv market is heating up.")
	gen := NewInsightsGenerator(testLLMConfig(ts.URL))

	result := gen.GenerateInsights(t.Context(), sampleProjects(), "")
	require.True(t, result.Success)
	assert.Equal(t, "The Tel Aviv market is heating up.", result.Insights)
	require.NotNil(t, result.Metadata)
	assert.Equal(t, 2, result.Metadata.ProjectsAnalyzed)
	assert.Equal(t, "openai/gpt-4o", result.Metadata.ModelUsed)

	assert.Equal(t, "openai/gpt-4o", captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 0.001)
	assert.Equal(t, 2000, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Contains(t, captured.Messages[0].Content, "real estate market analyst")
	assert.Contains(t, captured.Messages[1].Content, "מגדלי רוטשילד")
	assert.Contains(t, captured.Messages[1].Content, "Total Projects: 2")
}

func TestInsightsGenerator_GenerateInsightsCustomPrompt(t *testing.T) {
	ts, captured := fakeLLMServer(t, "ok")
	gen := NewInsightsGenerator(testLLMConfig(ts.URL))

	result := gen.GenerateInsights(t.Context(), sampleProjects(), "Focus on Jerusalem only.")
	require.True(t, result.Success)
	assert.Equal(t, "Focus on Jerusalem only.", captured.Messages[0].Content)
}

func TestInsightsGenerator_GenerateInsightsNoAPIKey(t *testing.T) {
	cfg := testLLMConfig("http://localhost:9")
	cfg.APIKey = ""
	gen := NewInsightsGenerator(cfg)
	assert.False(t, gen.Enabled())

	result := gen.GenerateInsights(t.Context(), sampleProjects(), "")
	assert.False(t, result.Success)
	assert.Equal(t, "AI insights require API key configuration", result.Error)
	assert.Contains(t, result.Insights, "OPENROUTER_API_KEY")
}

func TestInsightsGenerator_GenerateInsightsNoProjects(t *testing.T) {
	gen := NewInsightsGenerator(testLLMConfig("http://localhost:9"))

	result := gen.GenerateInsights(t.Context(), nil, "")
	require.True(t, result.Success)
	assert.Equal(t, "No project data available for analysis.", result.Insights)
	require.NotNil(t, result.Metadata)
	assert.Zero(t, result.Metadata.ProjectsAnalyzed)
}

func TestInsightsGenerator_GenerateInsightsServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	gen := NewInsightsGenerator(testLLMConfig(ts.URL))
	result := gen.GenerateInsights(t.Context(), sampleProjects(), "")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, "Unable to generate insights due to technical error.", result.Insights)
}

func TestInsightsGenerator_SystemPrompt(t *testing.T) {
	gen := NewInsightsGenerator(testLLMConfig("http://localhost:9"))
	assert.Contains(t, gen.GetSystemPrompt(), "real estate market analyst")

	gen.UpdateSystemPrompt("custom analyst prompt")
	assert.Equal(t, "custom analyst prompt", gen.GetSystemPrompt())
}

func TestBuildDataSummary(t *testing.T) {
	summary := buildDataSummary(sampleProjects())

	assert.Contains(t, summary, "Total Projects: 2")
	assert.Contains(t, summary, "Total Transactions: 2")
	assert.Contains(t, summary, "Recent Projects (30 days): 1")
	assert.Contains(t, summary, "Average Unit Price: ₪2,825,000")
	assert.Contains(t, summary, "Price Range: ₪2,000,000 - ₪3,650,000")
	assert.Contains(t, summary, "High Confidence Projects (>80%): 1")
	assert.Contains(t, summary, "Low Confidence Projects (<60%): 1")
	assert.Contains(t, summary, "- Tel Aviv: 1")
	assert.Contains(t, summary, "- Unknown: 1")
	assert.Contains(t, summary, "- madlan: 1")
	assert.Contains(t, summary, "1. מגדלי רוטשילד")
	assert.Contains(t, summary, "Sources: madlan, ita")
}

func TestBuildDataSummary_NoPrices(t *testing.T) {
	summary := buildDataSummary([]*domain.Project{{ProjectName: "empty"}})
	assert.Contains(t, summary, "Projects with Price Data: 0")
	assert.Contains(t, summary, "Average Unit Price: ₪0")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0", formatPrice(0))
	assert.Equal(t, "999", formatPrice(999))
	assert.Equal(t, "1,000", formatPrice(1000))
	assert.Equal(t, "2,500,000", formatPrice(2500000))
}
