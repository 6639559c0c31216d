package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"datalens/domain/core"
	"datalens/domain/dataset"
	"datalens/domain/eda"
	"datalens/internal/insights"
)

type indexPage struct {
	Datasets []*dataset.Dataset
}

type detailPage struct {
	Dataset *dataset.Dataset
	Report  *eda.Report
	Cards   []insights.Card
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	datasets, err := a.datasets.List(r.Context(), 100)
	if err != nil {
		log.Printf("[UI] Failed to list datasets: %v", err)
		http.Error(w, "Failed to load datasets", http.StatusInternalServerError)
		return
	}
	a.renderTemplate(w, "index.html", indexPage{Datasets: datasets})
}

func (a *App) handleDatasetDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := a.datasetID(w, r)
	if !ok {
		return
	}

	ds, err := a.datasets.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}

	page := detailPage{Dataset: ds}
	if report, err := a.reports.GetLatestForDataset(r.Context(), id); err == nil {
		page.Report = &report.Report
		page.Cards = a.insights.Generate(report.Report)
	}

	a.renderTemplate(w, "dataset.html", page)
}

// handleInsightsFragment serves the card list alone, for HTMX refreshes
// after a re-analysis.
func (a *App) handleInsightsFragment(w http.ResponseWriter, r *http.Request) {
	id, ok := a.datasetID(w, r)
	if !ok {
		return
	}

	report, err := a.reports.GetLatestForDataset(r.Context(), id)
	if err != nil {
		http.Error(w, "No analysis report", http.StatusNotFound)
		return
	}

	a.renderTemplate(w, "insights.html", a.insights.Generate(report.Report))
}

// handleChartsJSON feeds the frontend chart library: per-column histograms
// plus the missing-pattern segments.
func (a *App) handleChartsJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := a.datasetID(w, r)
	if !ok {
		return
	}

	columns, err := a.processor.LoadColumns(r.Context(), id)
	if err != nil {
		log.Printf("[UI] Failed to load columns for %s: %v", id, err)
		http.Error(w, "Failed to load dataset columns", http.StatusInternalServerError)
		return
	}

	histograms, err := a.processor.Histograms(r.Context(), columns)
	if err != nil {
		log.Printf("[UI] Failed to compute histograms for %s: %v", id, err)
		http.Error(w, "Failed to compute histograms", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"histograms": histograms,
		"missing":    a.processor.MissingPatterns(columns),
	})
}

func (a *App) datasetID(w http.ResponseWriter, r *http.Request) (core.DatasetID, bool) {
	id, err := core.ParseDatasetID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid dataset ID", http.StatusBadRequest)
		return "", false
	}
	return id, true
}
