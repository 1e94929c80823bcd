package ui

import (
	stderrors "errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"kpiboard/domain/table"
	"kpiboard/internal/errors"
	"kpiboard/internal/insight"
	"kpiboard/internal/session"
)

type indexData struct {
	Instructions template.HTML
	Tables       []*session.Entry
	Error        string
}

// handleIndex renders the landing page with the upload form and the list
// of tables already held in memory.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderIndex(w, http.StatusOK, "")
}

func (a *App) renderIndex(w http.ResponseWriter, status int, errMsg string) {
	data := indexData{
		Instructions: a.instructions,
		Tables:       a.registry.List(),
		Error:        errMsg,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("Template error: %v", err)
	}
}

// handleUploadForm ingests the HTML form upload and redirects to the new
// table's dashboard.
func (a *App) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	entry, err := a.ingestUpload(w, r)
	if err != nil {
		status, msg := clientMessage(err)
		a.renderIndex(w, status, msg)
		return
	}
	http.Redirect(w, r, "/tables/"+entry.ID.String(), http.StatusSeeOther)
}

type tablePageData struct {
	Entry              *session.Entry
	Profile            insight.TableProfile
	Headers            []string
	Rows               [][]string
	Summaries          []insight.ColumnSummary
	NumericColumns     []string
	CategoricalColumns []string
	TemporalColumns    []string
	ChartKinds         []insight.ChartKind
}

// handleTablePage renders the dashboard for one uploaded table.
func (a *App) handleTablePage(w http.ResponseWriter, r *http.Request) {
	entry, err := a.entryFromRequest(r)
	if err != nil {
		status, msg := clientMessage(err)
		a.renderIndex(w, status, msg)
		return
	}

	var numeric, categorical, temporal []string
	for _, d := range entry.Descriptors {
		switch d.Type {
		case table.TypeNumeric:
			numeric = append(numeric, d.Name)
		case table.TypeCategorical:
			categorical = append(categorical, d.Name)
		case table.TypeTemporal:
			temporal = append(temporal, d.Name)
		}
	}

	data := tablePageData{
		Entry:              entry,
		Profile:            a.engine.Profile(entry.Table),
		Headers:            entry.Table.ColumnNames(),
		Rows:               entry.Table.Preview(a.cfg.Data.PreviewRows),
		Summaries:          a.engine.Describe(entry.Table),
		NumericColumns:     numeric,
		CategoricalColumns: categorical,
		TemporalColumns:    temporal,
		ChartKinds:         []insight.ChartKind{insight.ChartBar, insight.ChartLine, insight.ChartHistogram, insight.ChartPie},
	}
	a.renderTemplate(w, "table.html", data)
}

// ingestUpload reads the multipart upload, parses it into a table and
// registers the result. Shared by the HTML form and the JSON API.
func (a *App) ingestUpload(w http.ResponseWriter, r *http.Request) (*session.Entry, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.Server.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, errors.ParseError(fmt.Sprintf("file exceeds the %dMB upload limit", maxErr.Limit/(1024*1024)), err)
		}
		return nil, errors.ParseError("no file uploaded", err)
	}
	defer file.Close()

	filename := header.Filename
	if !hasValidExtension(filename) {
		return nil, errors.ParseError("only Excel (.xlsx, .xls) and CSV (.csv) files are allowed", nil)
	}
	if contentType := header.Header.Get("Content-Type"); !isExpectedMimeType(contentType) {
		// Some clients report odd MIME types for spreadsheets; the parser
		// decides, this is just a breadcrumb.
		log.Printf("[Upload] WARNING - unexpected MIME type %q for file %s", contentType, filename)
	}

	if err := a.parseSem.Acquire(r.Context(), 1); err != nil {
		return nil, errors.Wrap(err, "upload canceled")
	}
	defer a.parseSem.Release(1)

	tbl, stats, err := a.reader.ReadUpload(filename, file)
	if err != nil {
		return nil, err
	}

	return a.registry.Put(session.Entry{
		Filename:    filename,
		Table:       tbl,
		Descriptors: a.engine.Classify(tbl),
		SourceRows:  stats.TotalRows,
		Truncated:   stats.Truncated,
	}), nil
}

func hasValidExtension(filename string) bool {
	for _, ext := range []string{".xlsx", ".xls", ".csv"} {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			return true
		}
	}
	return false
}

func isExpectedMimeType(contentType string) bool {
	expected := []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", // .xlsx
		"application/vnd.ms-excel", // .xls
		"text/csv",
		"application/csv",
		"text/plain",
	}
	for _, mt := range expected {
		if contentType == mt {
			return true
		}
	}
	return strings.Contains(contentType, "excel") || strings.Contains(contentType, "csv")
}
