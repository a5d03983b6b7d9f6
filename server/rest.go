package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/marketsurvey/marketsurvey/pkg/db"
	"github.com/marketsurvey/marketsurvey/pkg/domain"
	"github.com/marketsurvey/marketsurvey/pkg/scheduler"
)

// getProjectsHandler lists projects with optional filters
func (s *Server) getProjectsHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProjectFilter{
		City:      r.URL.Query().Get("city"),
		Developer: r.URL.Query().Get("developer"),
		Limit:     100,
	}

	if v := r.URL.Query().Get("min_confidence"); v != "" {
		minConfidence, err := strconv.ParseFloat(v, 64)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid min_confidence"), http.StatusBadRequest)
			return
		}
		filter.MinConfidence = minConfidence
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			renderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	projects, err := s.db.GetProjects(r.Context(), filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to get projects: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]any{"projects": projects, "count": len(projects)})
}

// getProjectHandler returns a single project by id
func (s *Server) getProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid project ID"), http.StatusBadRequest)
		return
	}

	project, err := s.db.GetProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrProjectNotFound) {
			renderError(w, r, fmt.Errorf("project not found"), http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to get project %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, project)
}

// clearProjectsHandler removes all stored projects
func (s *Server) clearProjectsHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteAllProjects(r.Context()); err != nil {
		lgr.Printf("[ERROR] failed to clear projects: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"message": "All projects cleared"})
}

// scrapeRequest is the body of POST /scrape
type scrapeRequest struct {
	City   string `json:"city"`
	Source string `json:"source"`
}

// scrapeHandler starts an asynchronous scrape run. City and source come from
// query parameters, a JSON body overrides them field by field.
func (s *Server) scrapeHandler(w http.ResponseWriter, r *http.Request) {
	req := scrapeRequest{
		City:   r.URL.Query().Get("city"),
		Source: r.URL.Query().Get("source"),
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
			return
		}
	}
	if req.City == "" {
		req.City = "tel-aviv"
	}
	if req.Source == "" {
		req.Source = "all"
	}

	run, err := s.scheduler.ScrapeNow(r.Context(), req.City, strings.ToLower(req.Source))
	if err != nil {
		if errors.Is(err, scheduler.ErrUnknownSource) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		lgr.Printf("[ERROR] failed to start scrape run: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusAccepted, map[string]any{
		"message":         "Scraping task started",
		"run_id":          run.ID,
		"city":            run.City,
		"source":          run.Source,
		"status_endpoint": "/api/v1/status/" + run.ID,
	})
}

// statusHandler returns the latest scrape run
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	run, err := s.db.GetLatestScrapeRun(r.Context())
	if err != nil {
		if errors.Is(err, db.ErrNoScrapeRuns) {
			renderJSON(w, r, http.StatusOK, map[string]string{"status": "no_scrapes_yet"})
			return
		}
		lgr.Printf("[ERROR] failed to get latest scrape run: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, run)
}

// runStatusHandler returns a specific scrape run by id
func (s *Server) runStatusHandler(w http.ResponseWriter, r *http.Request) {
	run, err := s.db.GetScrapeRun(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNoScrapeRuns) {
			renderError(w, r, fmt.Errorf("scrape run not found"), http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to get scrape run: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, run)
}

// exportHandler downloads all projects as a file attachment
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if !strings.EqualFold(format, "json") {
		renderError(w, r, fmt.Errorf("unsupported format: %s", format), http.StatusBadRequest)
		return
	}

	projects, err := s.db.GetProjects(r.Context(), domain.ProjectFilter{Limit: 10000})
	if err != nil {
		lgr.Printf("[ERROR] failed to export projects: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=projects.json")
	renderJSON(w, r, http.StatusOK, projects)
}

// insightsRequest is the body of POST /insights
type insightsRequest struct {
	City          string  `json:"city"`
	MinConfidence float64 `json:"min_confidence"`
	CustomPrompt  string  `json:"custom_prompt"`
}

// insightsHandler generates AI market analysis over stored projects
func (s *Server) insightsHandler(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
			return
		}
	}

	projects, err := s.db.GetProjects(r.Context(), domain.ProjectFilter{
		City:          req.City,
		MinConfidence: req.MinConfidence,
		Limit:         1000,
	})
	if err != nil {
		lgr.Printf("[ERROR] failed to load projects for insights: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	result := s.insights.GenerateInsights(r.Context(), projects, req.CustomPrompt)
	renderJSON(w, r, http.StatusOK, result)
}

// getPromptHandler returns the current insights system prompt
func (s *Server) getPromptHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]string{"system_prompt": s.insights.GetSystemPrompt()})
}

// promptRequest is the body of PUT /insights/prompt
type promptRequest struct {
	SystemPrompt string `json:"system_prompt"`
}

// updatePromptHandler replaces the insights system prompt
func (s *Server) updatePromptHandler(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.SystemPrompt) == "" {
		renderError(w, r, fmt.Errorf("system_prompt is required"), http.StatusBadRequest)
		return
	}

	s.insights.UpdateSystemPrompt(req.SystemPrompt)
	renderJSON(w, r, http.StatusOK, map[string]string{"message": "System prompt updated"})
}

// citiesHandler lists cities available for scraping
func (s *Server) citiesHandler(w http.ResponseWriter, r *http.Request) {
	cities := s.cities.DiscoverCities(r.Context())
	renderJSON(w, r, http.StatusOK, map[string]any{"cities": cities, "count": len(cities)})
}
