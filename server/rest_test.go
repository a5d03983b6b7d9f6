package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketsurvey/marketsurvey/pkg/db"
	"github.com/marketsurvey/marketsurvey/pkg/domain"
	"github.com/marketsurvey/marketsurvey/pkg/llm"
	"github.com/marketsurvey/marketsurvey/pkg/scheduler"
)

func TestGetProjectsHandler(t *testing.T) {
	ts, deps := newTestServer(t)

	t.Run("default filter", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/projects")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Projects []domain.Project `json:"projects"`
			Count    int              `json:"count"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 1, body.Count)
		require.Len(t, body.Projects, 1)
		assert.Equal(t, "Rothschild Towers", body.Projects[0].ProjectName)

		calls := deps.db.GetProjectsCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, 100, calls[0].Filter.Limit)
	})

	t.Run("query filters passed through", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/projects?city=tel&developer=azorim&min_confidence=0.7&limit=5")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		calls := deps.db.GetProjectsCalls()
		filter := calls[len(calls)-1].Filter
		assert.Equal(t, "tel", filter.City)
		assert.Equal(t, "azorim", filter.Developer)
		assert.InDelta(t, 0.7, filter.MinConfidence, 0.0001)
		assert.Equal(t, 5, filter.Limit)
	})

	t.Run("bad min_confidence", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/projects?min_confidence=high")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad limit", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/projects?limit=0")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("db failure", func(t *testing.T) {
		deps.db.GetProjectsFunc = func(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
			return nil, errors.New("disk failure")
		}
		resp, err := http.Get(ts.URL + "/api/v1/projects")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestGetProjectHandler(t *testing.T) {
	ts, deps := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/projects/42")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var project domain.Project
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&project))
		assert.Equal(t, int64(42), project.ID)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/projects/abc")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		deps.db.GetProjectFunc = func(ctx context.Context, id int64) (*domain.Project, error) {
			return nil, db.ErrProjectNotFound
		}
		resp, err := http.Get(ts.URL + "/api/v1/projects/999")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestClearProjectsHandler(t *testing.T) {
	ts, deps := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/projects", http.NoBody)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "All projects cleared", body["message"])
	assert.Len(t, deps.db.DeleteAllProjectsCalls(), 1)
}

func TestScrapeHandler(t *testing.T) {
	ts, deps := newTestServer(t)

	t.Run("defaults without body", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/scrape", "application/json", http.NoBody)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Scraping task started", body["message"])
		assert.Equal(t, "run-42", body["run_id"])
		assert.Equal(t, "/api/v1/status/run-42", body["status_endpoint"])

		calls := deps.scheduler.ScrapeNowCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, "tel-aviv", calls[0].CitySlug)
		assert.Equal(t, "all", calls[0].Source)
	})

	t.Run("explicit city and source", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/scrape", "application/json",
			strings.NewReader(`{"city":"haifa","source":"madlan"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)

		calls := deps.scheduler.ScrapeNowCalls()
		last := calls[len(calls)-1]
		assert.Equal(t, "haifa", last.CitySlug)
		assert.Equal(t, "madlan", last.Source)
	})

	t.Run("query parameters", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/scrape?city=haifa&source=madlan", "application/json", http.NoBody)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)

		calls := deps.scheduler.ScrapeNowCalls()
		last := calls[len(calls)-1]
		assert.Equal(t, "haifa", last.CitySlug)
		assert.Equal(t, "madlan", last.Source)
	})

	t.Run("body overrides query", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/scrape?city=haifa&source=madlan", "application/json",
			strings.NewReader(`{"source":"ita"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)

		calls := deps.scheduler.ScrapeNowCalls()
		last := calls[len(calls)-1]
		assert.Equal(t, "haifa", last.CitySlug, "query city kept when body omits it")
		assert.Equal(t, "ita", last.Source)
	})

	t.Run("unknown source", func(t *testing.T) {
		deps.scheduler.ScrapeNowFunc = func(ctx context.Context, citySlug, source string) (*domain.ScrapeRun, error) {
			return nil, fmt.Errorf("%w: %s", scheduler.ErrUnknownSource, source)
		}
		resp, err := http.Post(ts.URL+"/api/v1/scrape", "application/json",
			strings.NewReader(`{"source":"zillow"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/scrape", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestStatusHandler(t *testing.T) {
	ts, deps := newTestServer(t)

	t.Run("latest run", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/status")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var run domain.ScrapeRun
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
		assert.Equal(t, "run-1", run.ID)
	})

	t.Run("no runs yet", func(t *testing.T) {
		deps.db.GetLatestScrapeRunFunc = func(ctx context.Context) (*domain.ScrapeRun, error) {
			return nil, db.ErrNoScrapeRuns
		}
		resp, err := http.Get(ts.URL + "/api/v1/status")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "no_scrapes_yet", body["status"])
	})

	t.Run("run by id not found", func(t *testing.T) {
		deps.db.GetScrapeRunFunc = func(ctx context.Context, id string) (*domain.ScrapeRun, error) {
			return nil, db.ErrNoScrapeRuns
		}
		resp, err := http.Get(ts.URL + "/api/v1/status/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestExportHandler(t *testing.T) {
	ts, _ := newTestServer(t)

	t.Run("json attachment", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/export")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "attachment; filename=projects.json", resp.Header.Get("Content-Disposition"))

		var projects []domain.Project
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&projects))
		require.Len(t, projects, 1)
	})

	t.Run("unsupported format", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/export?format=csv")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestInsightsHandler(t *testing.T) {
	ts, deps := newTestServer(t)

	t.Run("default request", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/insights", "application/json", http.NoBody)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result llm.Result
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Success)
		assert.Equal(t, "market looks stable", result.Insights)
	})

	t.Run("filters and prompt passed through", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/insights", "application/json",
			strings.NewReader(`{"city":"haifa","min_confidence":0.6,"custom_prompt":"short answer"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		dbCalls := deps.db.GetProjectsCalls()
		filter := dbCalls[len(dbCalls)-1].Filter
		assert.Equal(t, "haifa", filter.City)
		assert.InDelta(t, 0.6, filter.MinConfidence, 0.0001)

		genCalls := deps.insights.GenerateInsightsCalls()
		assert.Equal(t, "short answer", genCalls[len(genCalls)-1].CustomPrompt)
	})
}

func TestPromptHandlers(t *testing.T) {
	ts, deps := newTestServer(t)

	t.Run("get prompt", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/insights/prompt")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "default prompt", body["system_prompt"])
	})

	t.Run("update prompt", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/insights/prompt",
			strings.NewReader(`{"system_prompt":"analyze like a broker"}`))
		require.NoError(t, err)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		calls := deps.insights.UpdateSystemPromptCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, "analyze like a broker", calls[0].Prompt)
	})

	t.Run("empty prompt rejected", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/insights/prompt",
			strings.NewReader(`{"system_prompt":"  "}`))
		require.NoError(t, err)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCitiesHandler(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/cities")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Cities []domain.City `json:"cities"`
		Count  int           `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Cities, 1)
	assert.Equal(t, "tel-aviv", body.Cities[0].Slug)
}
