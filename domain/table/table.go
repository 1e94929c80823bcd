package table

import (
	"fmt"
	"strings"
)

// Table is an ordered set of named columns of equal length. Instances
// are built through New, which normalizes headers and pads ragged rows,
// and are treated as immutable afterwards.
type Table struct {
	cols     []Column
	rowCount int
	index    map[string]int
}

// New builds a Table from a header row and data rows.
//
// Headers are trimmed; blank headers are named Column_N by position and
// duplicates get a numeric suffix so lookups stay unambiguous. Cell
// values are trimmed, with blank-marker tokens stored as absent. Rows
// shorter than the header are padded with absent cells; extra trailing
// cells beyond the header are dropped.
func New(headers []string, rows [][]string) *Table {
	names := normalizeHeaders(headers)

	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name, Cells: make([]Cell, len(rows))}
	}
	for r, row := range rows {
		for c := range cols {
			var raw string
			if c < len(row) {
				raw = strings.TrimSpace(row[c])
			}
			if isAbsentToken(raw) {
				cols[c].Cells[r] = Cell{Absent: true}
			} else {
				cols[c].Cells[r] = Cell{Raw: raw}
			}
		}
	}

	index := make(map[string]int, len(cols))
	for i, col := range cols {
		index[col.Name] = i
	}
	return &Table{cols: cols, rowCount: len(rows), index: index}
}

func normalizeHeaders(headers []string) []string {
	names := make([]string, len(headers))
	taken := make(map[string]struct{}, len(headers))
	for i, h := range headers {
		base := strings.TrimSpace(h)
		if base == "" {
			base = fmt.Sprintf("Column_%d", i+1)
		}
		name := base
		for n := 2; ; n++ {
			if _, dup := taken[name]; !dup {
				break
			}
			name = fmt.Sprintf("%s_%d", base, n)
		}
		taken[name] = struct{}{}
		names[i] = name
	}
	return names
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return t.rowCount
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.cols)
}

// Columns returns the columns in ingestion order. Callers must not
// modify the returned slice or its cells.
func (t *Table) Columns() []Column {
	return t.cols
}

// ColumnNames returns the column names in ingestion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Preview returns up to n rows of raw values in ingestion order, with
// absent cells rendered as empty strings. It never mutates the table.
func (t *Table) Preview(n int) [][]string {
	if n > t.rowCount {
		n = t.rowCount
	}
	if n < 0 {
		n = 0
	}
	out := make([][]string, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(t.cols))
		for c, col := range t.cols {
			if !col.Cells[r].Absent {
				row[c] = col.Cells[r].Raw
			}
		}
		out[r] = row
	}
	return out
}
