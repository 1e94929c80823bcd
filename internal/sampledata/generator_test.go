package sampledata

import (
	"path/filepath"
	"testing"
	"time"

	"kpiboard/adapters/excel"
	"kpiboard/domain/table"
	"kpiboard/internal/insight"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 50

	first, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(first.Rows) != 50 || len(second.Rows) != 50 {
		t.Fatalf("rows = %d, %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		for j := range first.Rows[i] {
			if first.Rows[i][j] != second.Rows[i][j] {
				t.Fatalf("row %d col %d differs: %q vs %q", i, j, first.Rows[i][j], second.Rows[i][j])
			}
		}
	}
}

func TestGenerateLeavesRevenueGaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 400
	cfg.MissingRate = 0.2

	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	blanks := 0
	for _, row := range ds.Rows {
		if row[5] == "" {
			blanks++
		}
	}
	if blanks == 0 {
		t.Error("expected some blank revenue cells")
	}
	if blanks == len(ds.Rows) {
		t.Error("every revenue cell is blank")
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	if _, err := Generate(Config{Rows: 0}); err == nil {
		t.Error("zero rows accepted")
	}
	cfg := DefaultConfig()
	cfg.MissingRate = 1.5
	if _, err := Generate(cfg); err == nil {
		t.Error("missing rate above 1 accepted")
	}
}

func TestGeneratedFileClassifies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 60
	cfg.StartDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "demo.csv")
	if err := WriteCSV(path, ds); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	tbl, _, err := excel.NewReader(0).ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	descriptors := insight.NewEngine(insight.Config{}).Classify(tbl)
	types := make(map[string]table.ColumnType, len(descriptors))
	for _, d := range descriptors {
		types[d.Name] = d.Type
	}

	if types["Date"] != table.TypeTemporal {
		t.Errorf("Date classified as %s", types["Date"])
	}
	if types["Region"] != table.TypeCategorical {
		t.Errorf("Region classified as %s", types["Region"])
	}
	for _, name := range []string{"Units", "Unit Price", "Revenue", "Discount %"} {
		if types[name] != table.TypeNumeric {
			t.Errorf("%s classified as %s", name, types[name])
		}
	}
}
