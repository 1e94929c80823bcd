package insight

import (
	"github.com/montanaflynn/stats"

	"kpiboard/domain/table"
	"kpiboard/internal/errors"
)

// KPIResult holds the aggregates for one numeric column. Count is the
// number of non-absent values; when it is zero the sum is zero and the
// remaining aggregates are undefined, reported as nil and omitted from
// JSON rather than faked as zero.
type KPIResult struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Sum    float64  `json:"sum"`
	Mean   *float64 `json:"mean,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// KPIs computes sum, mean, count, min and max over the named column.
// Absent values are excluded before aggregation. The column must be
// classified numeric.
func (e *Engine) KPIs(t *table.Table, column string) (KPIResult, error) {
	col, ok := t.Column(column)
	if !ok {
		return KPIResult{}, errors.InvalidColumnf("column %q not found", column)
	}
	if ct := classifyColumn(col); ct != table.TypeNumeric {
		return KPIResult{}, errors.InvalidColumnf("column %q is %s, not numeric", column, ct)
	}

	values := col.Numbers()
	result := KPIResult{Column: column, Count: len(values)}
	if len(values) == 0 {
		return result, nil
	}

	// The stats calls only fail on empty input, which is guarded above.
	sum, _ := stats.Sum(values)
	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	result.Sum = sum
	result.Mean = &mean
	result.Min = &min
	result.Max = &max
	return result, nil
}
