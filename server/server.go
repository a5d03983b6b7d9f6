package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/marketsurvey/marketsurvey/pkg/domain"
	"github.com/marketsurvey/marketsurvey/pkg/llm"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/insights.go -pkg mocks -skip-ensure -fmt goimports . Insights
//go:generate moq -out mocks/city_directory.go -pkg mocks -skip-ensure -fmt goimports . CityDirectory

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	scheduler Scheduler
	insights  Insights
	cities    CityDirectory
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for server operations
type Database interface {
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	GetProjects(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error)
	DeleteAllProjects(ctx context.Context) error
	GetScrapeRun(ctx context.Context, id string) (*domain.ScrapeRun, error)
	GetLatestScrapeRun(ctx context.Context) (*domain.ScrapeRun, error)
}

// Scheduler interface for on-demand scrape runs
type Scheduler interface {
	ScrapeNow(ctx context.Context, citySlug, source string) (*domain.ScrapeRun, error)
}

// Insights interface for AI market analysis
type Insights interface {
	GenerateInsights(ctx context.Context, projects []*domain.Project, customPrompt string) llm.Result
	GetSystemPrompt() string
	UpdateSystemPrompt(prompt string)
}

// CityDirectory lists cities available for scraping
type CityDirectory interface {
	DiscoverCities(ctx context.Context) []domain.City
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, scheduler Scheduler, insights Insights, cities CityDirectory, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		db:        db,
		scheduler: scheduler,
		insights:  insights,
		cities:    cities,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("marketsurvey", "marketsurvey", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /", s.rootHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /projects", s.getProjectsHandler)
		r.HandleFunc("GET /projects/{id}", s.getProjectHandler)
		r.HandleFunc("DELETE /projects", s.clearProjectsHandler)
		r.HandleFunc("POST /scrape", s.scrapeHandler)
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /status/{id}", s.runStatusHandler)
		r.HandleFunc("GET /export", s.exportHandler)
		r.HandleFunc("POST /insights", s.insightsHandler)
		r.HandleFunc("GET /insights/prompt", s.getPromptHandler)
		r.HandleFunc("PUT /insights/prompt", s.updatePromptHandler)
		r.HandleFunc("GET /cities", s.citiesHandler)
	})
}

// rootHandler describes the API
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{
		"message": "Market Survey System API",
		"version": s.version,
		"endpoints": map[string]string{
			"projects": "/api/v1/projects",
			"scrape":   "/api/v1/scrape",
			"status":   "/api/v1/status",
			"export":   "/api/v1/export",
			"insights": "/api/v1/insights",
			"cities":   "/api/v1/cities",
		},
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
