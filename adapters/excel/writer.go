package excel

import (
	"github.com/xuri/excelize/v2"

	"kpiboard/internal/errors"
	"kpiboard/internal/insight"
)

var summaryHeader = []string{"Column", "Count", "Mean", "Std", "Min", "P25", "Median", "P75", "Max"}

// WriteSummary renders per-column summary statistics as an xlsx
// workbook for download. Undefined aggregates leave their cell empty.
func WriteSummary(summaries []insight.ColumnSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	for i, h := range summaryHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, errors.Wrap(err, "write summary header")
		}
	}

	for r, s := range summaries {
		row := []interface{}{s.Column, s.Count, optCell(s.Mean), optCell(s.Std), optCell(s.Min), optCell(s.P25), optCell(s.Median), optCell(s.P75), optCell(s.Max)}
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, errors.Wrap(err, "write summary row")
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write summary workbook")
	}
	return buf.Bytes(), nil
}

func optCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
