package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"kpiboard/adapters/excel"
	"kpiboard/adapters/render"
	"kpiboard/internal/config"
	"kpiboard/internal/insight"
	"kpiboard/internal/session"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App serves the dashboard pages, the JSON API and the HTMX fragments over a
// shared in-memory table registry.
type App struct {
	router    *chi.Mux
	templates *template.Template

	cfg      config.Config
	reader   *excel.Reader
	engine   *insight.Engine
	renderer *render.Renderer
	registry *session.Registry

	// Workbook parsing is the one expensive request step; the semaphore
	// bounds how many uploads decode at once.
	parseSem *semaphore.Weighted

	instructions template.HTML
}

// NewApp assembles the application from configuration.
func NewApp(cfg config.Config) (*App, error) {
	funcMap := template.FuncMap{
		"formatNumber":   formatNumber,
		"formatOptional": formatOptional,
		"add":            func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		templates: templates,
		cfg:       cfg,
		reader:    excel.NewReader(cfg.Data.MaxRows),
		engine: insight.NewEngine(insight.Config{
			HistogramBins: cfg.Data.HistogramBins,
			MaxPieSlices:  cfg.Data.MaxPieSlices,
		}),
		renderer:     render.NewRenderer(0, 0),
		registry:     session.NewRegistry(cfg.Session.TTL, cfg.Session.Sweep),
		parseSem:     semaphore.NewWeighted(cfg.Server.ParseConcurrency),
		instructions: renderInstructions(),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files; embedded paths already carry the static/ prefix.
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", http.StripPrefix("/", staticFS))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main pages
	a.router.Get("/", a.handleIndex)
	a.router.Post("/upload", a.handleUploadForm)
	a.router.Get("/tables/{id}", a.handleTablePage)

	// HTMX fragment endpoints
	a.router.Get("/tables/{id}/fragments/kpis", a.handleFragmentKPIs)
	a.router.Get("/tables/{id}/fragments/chart", a.handleFragmentChart)
	a.router.Get("/tables/{id}/fragments/preview", a.handleFragmentPreview)

	// API endpoints
	a.router.Post("/api/tables", a.handleCreateTable)
	a.router.Get("/api/tables/{id}", a.handleGetTable)
	a.router.Get("/api/tables/{id}/preview", a.handlePreview)
	a.router.Get("/api/tables/{id}/kpis", a.handleKPIs)
	a.router.Get("/api/tables/{id}/summary", a.handleSummary)
	a.router.Get("/api/tables/{id}/chart", a.handleChart)
	a.router.Get("/api/tables/{id}/chart.png", a.handleChartPNG)
	a.router.Get("/api/tables/{id}/export", a.handleExport)
	a.router.Delete("/api/tables/{id}", a.handleDeleteTable)

	a.router.Get("/healthz", a.handleHealth)
}

// Router exposes the handler tree for the HTTP server and for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Close stops the registry janitor.
func (a *App) Close() {
	a.registry.Close()
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
