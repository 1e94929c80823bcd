package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"kpiboard/domain/table"
	"kpiboard/internal/errors"
)

// Reader ingests Excel and CSV uploads into tables.
type Reader struct {
	maxRows int
}

// Stats describes what ingestion saw in the source file. TotalRows is
// the number of data rows present before the cap was applied.
type Stats struct {
	TotalRows int  `json:"total_rows"`
	Truncated bool `json:"truncated"`
}

const defaultMaxRows = 10000

// NewReader creates a reader that keeps at most maxRows data rows per
// file. Zero or negative means the default cap.
func NewReader(maxRows int) *Reader {
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}
	return &Reader{maxRows: maxRows}
}

// ReadUpload ingests an uploaded file into a Table. The format is
// chosen by file extension: workbooks go through excelize, .csv through
// encoding/csv. The first row is the header row; a file with only a
// header yields a valid zero-row table.
func (r *Reader) ReadUpload(filename string, src io.Reader) (*table.Table, Stats, error) {
	start := time.Now()
	ext := strings.ToLower(filepath.Ext(filename))

	var rows [][]string
	var err error
	switch ext {
	case ".xlsx", ".xlsm", ".xls":
		rows, err = readWorkbook(src)
	case ".csv":
		rows, err = readCSV(src)
	default:
		return nil, Stats{}, errors.ParseError(fmt.Sprintf("unsupported file type %q, upload .xlsx, .xls or .csv", ext), nil)
	}
	if err != nil {
		return nil, Stats{}, err
	}

	if len(rows) == 0 {
		return nil, Stats{}, errors.ParseError("file has no rows", nil)
	}
	headers := rows[0]
	if len(headers) == 0 {
		return nil, Stats{}, errors.ParseError("file has no columns", nil)
	}

	data := rows[1:]
	stats := Stats{TotalRows: len(data)}
	if len(data) > r.maxRows {
		data = data[:r.maxRows]
		stats.Truncated = true
	}

	tbl := table.New(headers, data)
	log.Printf("[Reader] %s ingested in %.2fms (%d columns, %d rows, truncated=%v)",
		ext, float64(time.Since(start).Nanoseconds())/1e6, tbl.ColumnCount(), tbl.RowCount(), stats.Truncated)
	return tbl, stats, nil
}

// ReadFile ingests a file from disk, the CLI entry point.
func (r *Reader) ReadFile(path string) (*table.Table, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, errors.ParseError(fmt.Sprintf("unable to open %s", filepath.Base(path)), err)
	}
	defer f.Close()
	return r.ReadUpload(filepath.Base(path), f)
}

// readWorkbook pulls raw rows from the first sheet of a workbook.
func readWorkbook(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.ParseError("unable to read workbook", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.ParseError("workbook has no sheets", nil)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.ParseError(fmt.Sprintf("unable to read sheet %s", sheet), err)
	}
	return rows, nil
}

func readCSV(src io.Reader) ([][]string, error) {
	cr := csv.NewReader(src)
	// Ragged exports are common; the table constructor pads short rows.
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.ParseError("unable to read CSV", err)
	}
	return rows, nil
}
