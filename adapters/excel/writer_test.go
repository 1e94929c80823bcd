package excel

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"kpiboard/internal/insight"
)

func TestWriteSummary_RoundTrips(t *testing.T) {
	mean := 3.0
	min := 1.0
	max := 5.0
	summaries := []insight.ColumnSummary{
		{Column: "Qty", Count: 5, Mean: &mean, Min: &min, Max: &max},
		{Column: "Sparse", Count: 0},
	}

	data, err := WriteSummary(summaries)
	if err != nil {
		t.Fatalf("WriteSummary returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want header + 2 summaries", len(rows))
	}
	if rows[0][0] != "Column" || rows[0][1] != "Count" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Qty" || rows[1][1] != "5" {
		t.Errorf("first summary row = %v", rows[1])
	}
	if rows[1][2] != "3" {
		t.Errorf("mean cell = %q, want 3", rows[1][2])
	}
	if rows[2][0] != "Sparse" || rows[2][1] != "0" {
		t.Errorf("zero-count row = %v", rows[2])
	}
}
