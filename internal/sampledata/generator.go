package sampledata

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Dataset is a generated demo sales table: one row per order with a mix
// of temporal, categorical and numeric columns, plus occasional blank
// revenue cells so absent-value handling has something to chew on.
type Dataset struct {
	Headers []string
	Rows    [][]string // already formatted strings
}

type Config struct {
	Rows      int
	Seed      int64
	StartDate time.Time

	// MissingRate is the fraction of revenue cells left blank.
	MissingRate float64
}

func DefaultConfig() Config {
	return Config{
		Rows:        200,
		Seed:        42,
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		MissingRate: 0.05,
	}
}

var (
	regions  = []string{"North", "South", "East", "West"}
	products = []string{"Widget", "Gadget", "Gizmo", "Doohickey", "Sprocket"}
)

// Generate builds a deterministic order table: four orders a day from
// StartDate, weekend orders running larger.
func Generate(cfg Config) (*Dataset, error) {
	if cfg.Rows <= 0 {
		return nil, fmt.Errorf("rows must be > 0")
	}
	if cfg.MissingRate < 0 || cfg.MissingRate >= 1 {
		return nil, fmt.Errorf("missing rate must be in [0, 1)")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	headers := []string{"Date", "Region", "Product", "Units", "Unit Price", "Revenue", "Discount %"}
	rows := make([][]string, cfg.Rows)
	for i := 0; i < cfg.Rows; i++ {
		date := cfg.StartDate.AddDate(0, 0, i/4)
		region := regions[rng.Intn(len(regions))]
		product := products[rng.Intn(len(products))]

		units := 1 + rng.Intn(20)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			units += rng.Intn(10)
		}
		price := 4 + rng.Float64()*96

		discount := 0.0
		if rng.Float64() < 0.3 {
			discount = rng.Float64() * 0.25
		}
		revenue := float64(units) * price * (1 - discount)

		revenueCell := fToStr(revenue, 2)
		if rng.Float64() < cfg.MissingRate {
			revenueCell = ""
		}

		rows[i] = []string{
			date.Format("2006-01-02"),
			region,
			product,
			strconv.Itoa(units),
			fToStr(price, 2),
			revenueCell,
			fToStr(discount*100, 1),
		}
	}

	return &Dataset{Headers: headers, Rows: rows}, nil
}

func WriteCSV(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(ds.Headers); err != nil {
		return err
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func WriteXLSX(path string, ds *Dataset) error {
	f := excelize.NewFile()

	// Ensure Sheet1 exists and is active.
	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}

	// Header row
	for i, h := range ds.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	// Data rows
	for r := 0; r < len(ds.Rows); r++ {
		rowIdx := r + 2
		for c, v := range ds.Rows[r] {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func fToStr(x float64, decimals int) string {
	p := math.Pow10(decimals)
	x = math.Round(x*p) / p
	return strconv.FormatFloat(x, 'f', decimals, 64)
}
