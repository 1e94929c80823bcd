package insight

import (
	"math"

	"github.com/montanaflynn/stats"

	"kpiboard/domain/table"
)

// ColumnSummary carries order statistics for one numeric column, the
// data behind the dashboard's summary-statistics panel. Aggregates that
// are undefined for the sample size are nil.
type ColumnSummary struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean,omitempty"`
	Std    *float64 `json:"std,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	P25    *float64 `json:"p25,omitempty"`
	Median *float64 `json:"median,omitempty"`
	P75    *float64 `json:"p75,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// Describe computes summary statistics for every numeric column, in
// table order. Columns without data report their count only.
func (e *Engine) Describe(t *table.Table) []ColumnSummary {
	out := make([]ColumnSummary, 0)
	for _, col := range t.Columns() {
		if classifyColumn(col) != table.TypeNumeric {
			continue
		}
		out = append(out, summarizeColumn(col))
	}
	return out
}

func summarizeColumn(col table.Column) ColumnSummary {
	values := col.Numbers()
	s := ColumnSummary{Column: col.Name, Count: len(values)}
	if len(values) == 0 {
		return s
	}
	s.Mean = statPtr(stats.Mean(values))
	s.Std = statPtr(stats.StandardDeviationSample(values))
	s.Min = statPtr(stats.Min(values))
	s.P25 = statPtr(stats.Percentile(values, 25))
	s.Median = statPtr(stats.Median(values))
	s.P75 = statPtr(stats.Percentile(values, 75))
	s.Max = statPtr(stats.Max(values))
	return s
}

// statPtr turns a stats result into an optional value. Sample standard
// deviation of a single value and percentiles of tiny samples come back
// as errors or NaN, which have no JSON representation.
func statPtr(v float64, err error) *float64 {
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

// FieldProfile is one column's classification and fill level.
type FieldProfile struct {
	Name      string           `json:"name"`
	Type      table.ColumnType `json:"type"`
	NonAbsent int              `json:"non_absent"`
}

// TableProfile summarizes a table's shape for the dashboard header
// cards and CLI inspection.
type TableProfile struct {
	Rows           int            `json:"rows"`
	Columns        int            `json:"columns"`
	NumericColumns int            `json:"numeric_columns"`
	Fields         []FieldProfile `json:"fields"`
}

// Profile reports the table's dimensions and per-column classification.
func (e *Engine) Profile(t *table.Table) TableProfile {
	cols := t.Columns()
	p := TableProfile{
		Rows:    t.RowCount(),
		Columns: len(cols),
		Fields:  make([]FieldProfile, len(cols)),
	}
	for i, col := range cols {
		ct := classifyColumn(col)
		if ct == table.TypeNumeric {
			p.NumericColumns++
		}
		p.Fields[i] = FieldProfile{Name: col.Name, Type: ct, NonAbsent: col.NonAbsentCount()}
	}
	return p
}
