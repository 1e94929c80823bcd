package insight

import (
	"kpiboard/domain/table"
)

// Classify infers a type for every column in ingestion order. A column
// is numeric when every non-absent value parses as a number, temporal
// when every non-absent value parses under the accepted date layouts,
// otherwise categorical. The precedence is fixed: a column of values
// satisfying several interpretations classifies by the first match in
// numeric, temporal, categorical order. Columns with no data at all are
// unknown and stay out of KPI and chart eligibility.
func (e *Engine) Classify(t *table.Table) []table.ColumnDescriptor {
	cols := t.Columns()
	out := make([]table.ColumnDescriptor, len(cols))
	for i, col := range cols {
		out[i] = table.ColumnDescriptor{Name: col.Name, Type: classifyColumn(col)}
	}
	return out
}

func classifyColumn(col table.Column) table.ColumnType {
	numeric, temporal := true, true
	seen := false
	for _, cell := range col.Cells {
		if cell.Absent {
			continue
		}
		seen = true
		if numeric {
			if _, ok := table.ParseNumber(cell.Raw); !ok {
				numeric = false
			}
		}
		if temporal {
			if _, ok := table.ParseTime(cell.Raw); !ok {
				temporal = false
			}
		}
		if !numeric && !temporal {
			break
		}
	}
	switch {
	case !seen:
		return table.TypeUnknown
	case numeric:
		return table.TypeNumeric
	case temporal:
		return table.TypeTemporal
	default:
		return table.TypeCategorical
	}
}
