package table

import (
	"math"
	"strconv"
	"time"
)

// ColumnType is the inferred scalar type of a column.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeTemporal    ColumnType = "temporal"
	TypeCategorical ColumnType = "categorical"
	TypeUnknown     ColumnType = "unknown"
)

// Cell is a single table value. An absent cell carries no data: it is
// excluded from every aggregate and never coerced to zero or "".
type Cell struct {
	Raw    string
	Absent bool
}

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// ColumnDescriptor pairs a column name with its inferred type.
// Descriptors are derived once after ingestion and are immutable.
type ColumnDescriptor struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// absentTokens are the blank markers spreadsheet exports commonly use
// for missing data. Matching cells are stored as absent.
var absentTokens = map[string]struct{}{
	"":     {},
	"null": {},
	"NULL": {},
	"N/A":  {},
	"n/a":  {},
	"NA":   {},
	"NaN":  {},
	"nan":  {},
	"None": {},
}

func isAbsentToken(raw string) bool {
	_, ok := absentTokens[raw]
	return ok
}

// ParseNumber parses a cell value as a float. NaN and infinities are
// rejected: a cell spelling "Inf" is text, not a measurement.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// dateLayouts is the fixed set of layouts a temporal column may use.
// Columns mixing layouts outside this list fall back to categorical.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"Jan-2006",
	"Jan 2, 2006",
}

// ParseTime parses a cell value against the accepted date layouts.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Numbers returns the column's non-absent values that parse as numbers,
// in row order.
func (c Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Absent {
			continue
		}
		if v, ok := ParseNumber(cell.Raw); ok {
			out = append(out, v)
		}
	}
	return out
}

// NonAbsentCount returns the number of cells holding data.
func (c Column) NonAbsentCount() int {
	n := 0
	for _, cell := range c.Cells {
		if !cell.Absent {
			n++
		}
	}
	return n
}
