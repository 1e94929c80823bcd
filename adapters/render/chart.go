package render

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"

	"kpiboard/internal/errors"
	"kpiboard/internal/insight"
)

// Renderer turns chart specs into PNG images for download and for
// clients without a canvas.
type Renderer struct {
	width  int
	height int
}

const (
	defaultWidth  = 900
	defaultHeight = 420
	maxAxisTicks  = 8
)

// NewRenderer creates a renderer with the given canvas size. Zero or
// negative dimensions fall back to the defaults.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &Renderer{width: width, height: height}
}

// PNG renders a chart spec. Specs whose series came out empty (every
// row filtered away) have nothing to draw and are rejected.
func (r *Renderer) PNG(spec insight.ChartSpec) ([]byte, error) {
	if len(spec.Y) == 0 {
		return nil, errors.InvalidColumn("selected columns produce no data points")
	}
	switch spec.Kind {
	case insight.ChartBar, insight.ChartHistogram:
		return r.barPNG(spec)
	case insight.ChartPie:
		return r.piePNG(spec)
	case insight.ChartLine:
		return r.linePNG(spec)
	default:
		return nil, errors.UnsupportedChart(string(spec.Kind))
	}
}

func (r *Renderer) barPNG(spec insight.ChartSpec) ([]byte, error) {
	bars := make([]chart.Value, len(spec.X))
	for i := range spec.X {
		bars[i] = chart.Value{Label: spec.X[i], Value: spec.Y[i]}
	}

	// An explicit y range keeps all-zero aggregates renderable, which
	// go-chart otherwise rejects as a zero data range.
	lo, hi := 0.0, 1.0
	for _, v := range spec.Y {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	ch := chart.BarChart{
		Title:    spec.Title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: barWidth(r.width, len(bars)),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "render bar chart")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) piePNG(spec insight.ChartSpec) ([]byte, error) {
	values := make([]chart.Value, len(spec.X))
	for i := range spec.X {
		values[i] = chart.Value{Label: spec.X[i], Value: spec.Y[i]}
	}

	ch := chart.PieChart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "render pie chart")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) linePNG(spec insight.ChartSpec) ([]byte, error) {
	xs := make([]float64, len(spec.Y))
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := spec.Y

	// A single point has no x extent, so it becomes a flat two-point
	// segment.
	if len(xs) == 1 {
		xs = []float64{0, 1}
		ys = []float64{spec.Y[0], spec.Y[0]}
	}

	yLo, yHi := ys[0], ys[0]
	for _, v := range ys {
		if v < yLo {
			yLo = v
		}
		if v > yHi {
			yHi = v
		}
	}
	if yLo == yHi {
		yLo, yHi = yLo-1, yHi+1
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 40}},
		XAxis: chart.XAxis{
			Ticks: lineTicks(spec.X),
			Range: &chart.ContinuousRange{Min: xs[0], Max: xs[len(xs)-1]},
		},
		YAxis: chart.YAxis{
			Name:  spec.Column,
			Range: &chart.ContinuousRange{Min: yLo, Max: yHi},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    spec.Column,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeWidth: 2, DotWidth: 3},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "render line chart")
	}
	return buf.Bytes(), nil
}

// lineTicks labels a bounded subset of points so dense series stay
// readable. The final point always gets a tick.
func lineTicks(labels []string) []chart.Tick {
	n := len(labels)
	if n == 0 {
		return nil
	}
	step := (n + maxAxisTicks - 1) / maxAxisTicks
	if step < 1 {
		step = 1
	}
	ticks := make([]chart.Tick, 0, maxAxisTicks+1)
	for i := 0; i < n; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	if last := n - 1; ticks[len(ticks)-1].Value != float64(last) {
		ticks = append(ticks, chart.Tick{Value: float64(last), Label: labels[last]})
	}
	return ticks
}

func barWidth(canvasWidth, bars int) int {
	if bars == 0 {
		return 0
	}
	w := (canvasWidth - 100) / bars
	if w < 10 {
		w = 10
	}
	if w > 60 {
		w = 60
	}
	return w
}
