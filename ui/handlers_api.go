package ui

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"kpiboard/adapters/excel"
	"kpiboard/domain/core"
	"kpiboard/domain/table"
	"kpiboard/internal/errors"
	"kpiboard/internal/insight"
	"kpiboard/internal/session"
)

// tableMeta is the JSON shape for a registered table.
type tableMeta struct {
	ID          core.ID                  `json:"id"`
	Filename    string                   `json:"filename"`
	UploadedAt  time.Time                `json:"uploaded_at"`
	Rows        int                      `json:"rows"`
	Columns     int                      `json:"columns"`
	SourceRows  int                      `json:"source_rows"`
	Truncated   bool                     `json:"truncated"`
	Descriptors []table.ColumnDescriptor `json:"descriptors"`
}

func metaFor(e *session.Entry) tableMeta {
	return tableMeta{
		ID:          e.ID,
		Filename:    e.Filename,
		UploadedAt:  e.UploadedAt,
		Rows:        e.Table.RowCount(),
		Columns:     e.Table.ColumnCount(),
		SourceRows:  e.SourceRows,
		Truncated:   e.Truncated,
		Descriptors: e.Descriptors,
	}
}

// handleCreateTable ingests a multipart upload via the JSON API.
func (a *App) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	entry, err := a.ingestUpload(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, metaFor(entry))
}

func (a *App) handleGetTable(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metaFor(entry))
}

func (a *App) handlePreview(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rows := a.cfg.Data.PreviewRows
	if v := r.URL.Query().Get("rows"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rows = n
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"headers": entry.Table.ColumnNames(),
		"rows":    entry.Table.Preview(rows),
	})
}

func (a *App) handleKPIs(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	column := r.URL.Query().Get("column")
	if column == "" {
		writeError(w, errors.InvalidColumn("column query parameter is required"))
		return
	}
	result, err := a.engine.KPIs(entry.Table, column)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": a.engine.Profile(entry.Table),
		"columns": a.engine.Describe(entry.Table),
	})
}

func chartRequest(r *http.Request) insight.ChartRequest {
	q := r.URL.Query()
	return insight.ChartRequest{
		Kind:    q.Get("kind"),
		Column:  q.Get("column"),
		GroupBy: q.Get("group_by"),
	}
}

func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	spec, err := a.engine.BuildChart(entry.Table, chartRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (a *App) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	spec, err := a.engine.BuildChart(entry.Table, chartRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	png, err := a.renderer.PNG(spec)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		log.Printf("[API] write chart png: %v", err)
	}
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := excel.WriteSummary(a.engine.Describe(entry.Table))
	if err != nil {
		writeError(w, err)
		return
	}
	base := strings.TrimSuffix(entry.Filename, filepath.Ext(entry.Filename))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+"-summary.xlsx"))
	if _, err := w.Write(payload); err != nil {
		log.Printf("[API] write export: %v", err)
	}
}

func (a *App) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	id, ok := core.Parse(chi.URLParam(r, "id"))
	if !ok || !a.registry.Delete(id) {
		writeError(w, errors.NotFound("table"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"tables":    a.registry.Len(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
