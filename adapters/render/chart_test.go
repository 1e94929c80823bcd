package render

import (
	"bytes"
	"testing"

	"kpiboard/internal/errors"
	"kpiboard/internal/insight"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func assertPNG(t *testing.T, data []byte, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("render returned error: %v", err)
	}
	if len(data) < len(pngMagic) || !bytes.Equal(data[:len(pngMagic)], pngMagic) {
		t.Fatalf("output is not a PNG (%d bytes)", len(data))
	}
}

func TestPNG_Bar(t *testing.T) {
	r := NewRenderer(0, 0)
	data, err := r.PNG(insight.ChartSpec{
		Kind:  insight.ChartBar,
		Title: "Sales by Region",
		X:     []string{"A", "B"},
		Y:     []float64{30, 40},
	})
	assertPNG(t, data, err)
}

func TestPNG_BarAllZeroAggregates(t *testing.T) {
	r := NewRenderer(400, 300)
	data, err := r.PNG(insight.ChartSpec{
		Kind: insight.ChartBar,
		X:    []string{"A", "B"},
		Y:    []float64{0, 0},
	})
	assertPNG(t, data, err)
}

func TestPNG_Pie(t *testing.T) {
	r := NewRenderer(400, 400)
	data, err := r.PNG(insight.ChartSpec{
		Kind: insight.ChartPie,
		X:    []string{"A", "B", "C"},
		Y:    []float64{5, 3, 2},
	})
	assertPNG(t, data, err)
}

func TestPNG_Line(t *testing.T) {
	r := NewRenderer(0, 0)
	data, err := r.PNG(insight.ChartSpec{
		Kind:   insight.ChartLine,
		Column: "Revenue",
		X:      []string{"2024-01-01", "2024-01-02", "2024-01-03"},
		Y:      []float64{3, 5, 4},
	})
	assertPNG(t, data, err)
}

func TestPNG_LineSinglePoint(t *testing.T) {
	r := NewRenderer(0, 0)
	data, err := r.PNG(insight.ChartSpec{
		Kind:   insight.ChartLine,
		Column: "Revenue",
		X:      []string{"2024-01-01"},
		Y:      []float64{3},
	})
	assertPNG(t, data, err)
}

func TestPNG_LineFlatSeries(t *testing.T) {
	r := NewRenderer(0, 0)
	data, err := r.PNG(insight.ChartSpec{
		Kind: insight.ChartLine,
		X:    []string{"a", "b", "c"},
		Y:    []float64{2, 2, 2},
	})
	assertPNG(t, data, err)
}

func TestPNG_Histogram(t *testing.T) {
	r := NewRenderer(0, 0)
	data, err := r.PNG(insight.ChartSpec{
		Kind: insight.ChartHistogram,
		X:    []string{"[0, 5)", "[5, 10]"},
		Y:    []float64{4, 6},
	})
	assertPNG(t, data, err)
}

func TestPNG_EmptySeries(t *testing.T) {
	r := NewRenderer(0, 0)
	_, err := r.PNG(insight.ChartSpec{Kind: insight.ChartPie, X: []string{}, Y: []float64{}})
	if !errors.HasCode(err, errors.CodeInvalidColumn) {
		t.Errorf("error = %v, want code %s", err, errors.CodeInvalidColumn)
	}
}
