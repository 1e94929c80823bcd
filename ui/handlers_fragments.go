package ui

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kpiboard/domain/core"
	"kpiboard/internal/errors"
	"kpiboard/internal/insight"
	"kpiboard/internal/session"
)

// entryFromRequest resolves the {id} route parameter to a registry entry.
func (a *App) entryFromRequest(r *http.Request) (*session.Entry, error) {
	id, ok := core.Parse(chi.URLParam(r, "id"))
	if !ok {
		return nil, errors.NotFound("table")
	}
	return a.registry.Get(id)
}

// renderErrorFragment writes an inline error panel for HTMX swaps.
func (a *App) renderErrorFragment(w http.ResponseWriter, err error) {
	status, msg := clientMessage(err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if execErr := a.templates.ExecuteTemplate(w, "error.html", map[string]string{"Message": msg}); execErr != nil {
		log.Printf("Template error: %v", execErr)
	}
}

// handleFragmentKPIs returns the KPI cards snippet for one numeric column.
func (a *App) handleFragmentKPIs(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		a.renderErrorFragment(w, err)
		return
	}
	column := r.URL.Query().Get("column")
	if column == "" {
		a.renderErrorFragment(w, errors.InvalidColumn("pick a numeric column to see its KPIs"))
		return
	}
	result, err := a.engine.KPIs(entry.Table, column)
	if err != nil {
		a.renderErrorFragment(w, err)
		return
	}
	a.renderTemplate(w, "kpis.html", result)
}

type chartFragmentData struct {
	Spec   insight.ChartSpec
	PNGURL string
}

// handleFragmentChart returns the chart panel snippet: the rendered PNG
// plus the series it was built from.
func (a *App) handleFragmentChart(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		a.renderErrorFragment(w, err)
		return
	}
	req := chartRequest(r)
	spec, err := a.engine.BuildChart(entry.Table, req)
	if err != nil {
		a.renderErrorFragment(w, err)
		return
	}

	params := url.Values{}
	params.Set("kind", req.Kind)
	params.Set("column", req.Column)
	if req.GroupBy != "" {
		params.Set("group_by", req.GroupBy)
	}
	a.renderTemplate(w, "chart.html", chartFragmentData{
		Spec:   spec,
		PNGURL: "/api/tables/" + entry.ID.String() + "/chart.png?" + params.Encode(),
	})
}

// handleFragmentPreview returns the data preview table snippet.
func (a *App) handleFragmentPreview(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		a.renderErrorFragment(w, err)
		return
	}
	rows := a.cfg.Data.PreviewRows
	if v := r.URL.Query().Get("rows"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rows = n
		}
	}
	a.renderTemplate(w, "preview.html", map[string]interface{}{
		"Headers": entry.Table.ColumnNames(),
		"Rows":    entry.Table.Preview(rows),
	})
}
