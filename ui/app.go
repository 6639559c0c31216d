// Package ui serves the analyst-facing dashboard: dataset list, report
// pages with feature profiles and correlation tables, and rendered insight
// cards.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	internaldataset "datalens/internal/dataset"
	"datalens/internal/insights"
	"datalens/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	datasets  ports.DatasetRepository
	reports   ports.ReportRepository
	processor *internaldataset.Processor
	insights  *insights.Generator
	templates *template.Template
	port      string
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(config Config, datasets ports.DatasetRepository, reports ports.ReportRepository, processor *internaldataset.Processor) (*App, error) {
	funcMap := template.FuncMap{
		"pct":   func(x float64) string { return fmt.Sprintf("%.1f%%", x) },
		"ratio": func(x float64) string { return fmt.Sprintf("%.1f%%", x*100) },
		"num":   func(x float64) string { return fmt.Sprintf("%.3f", x) },
		"markdown": func(source string) template.HTML {
			return renderMarkdown(source)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		datasets:  datasets,
		reports:   reports,
		processor: processor,
		insights:  insights.NewGenerator(insights.DefaultThresholds()),
		templates: templates,
		port:      config.Port,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", http.StripPrefix("/", staticFS))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/datasets/{id}", a.handleDatasetDetail)
	a.router.Get("/datasets/{id}/insights", a.handleInsightsFragment)
	a.router.Get("/datasets/{id}/charts", a.handleChartsJSON)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	return http.ListenAndServe(addr, a.router)
}

// Handler exposes the router for tests
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
