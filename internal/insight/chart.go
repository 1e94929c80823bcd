package insight

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"kpiboard/domain/table"
	"kpiboard/internal/errors"
)

// ChartKind enumerates the supported chart shapes.
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartLine      ChartKind = "line"
	ChartHistogram ChartKind = "histogram"
	ChartPie       ChartKind = "pie"
)

// ParseChartKind maps a raw kind string onto a ChartKind.
func ParseChartKind(s string) (ChartKind, error) {
	kind := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	switch kind {
	case ChartBar, ChartLine, ChartHistogram, ChartPie:
		return kind, nil
	default:
		return "", errors.UnsupportedChart(s)
	}
}

// ChartRequest selects a chart to build. Kind stays a raw string so the
// unsupported-kind failure surfaces from BuildChart, not from callers.
type ChartRequest struct {
	Kind    string `json:"kind"`
	Column  string `json:"column"`
	GroupBy string `json:"group_by,omitempty"`
}

// ChartSpec is chart-ready data: parallel label and value series plus
// enough metadata to title and render the chart.
type ChartSpec struct {
	Kind    ChartKind `json:"kind"`
	Title   string    `json:"title"`
	Column  string    `json:"column"`
	GroupBy string    `json:"group_by,omitempty"`
	X       []string  `json:"x"`
	Y       []float64 `json:"y"`
}

// BuildChart produces the data series for one chart. The value column
// must be numeric for every kind; bar and pie additionally need a
// categorical grouping column, line needs a temporal or categorical
// x-axis column, and histogram ignores any grouping selection left over
// from a previous kind choice in the UI.
func (e *Engine) BuildChart(t *table.Table, req ChartRequest) (ChartSpec, error) {
	kind, err := ParseChartKind(req.Kind)
	if err != nil {
		return ChartSpec{}, err
	}

	col, ok := t.Column(req.Column)
	if !ok {
		return ChartSpec{}, errors.InvalidColumnf("column %q not found", req.Column)
	}
	if ct := classifyColumn(col); ct != table.TypeNumeric {
		return ChartSpec{}, errors.InvalidColumnf("column %q is %s, not numeric", req.Column, ct)
	}

	switch kind {
	case ChartBar:
		return e.buildBar(t, col, req.GroupBy)
	case ChartPie:
		return e.buildPie(t, col, req.GroupBy)
	case ChartLine:
		return e.buildLine(t, col, req.GroupBy)
	default:
		return e.buildHistogram(col), nil
	}
}

func (e *Engine) categoricalColumn(t *table.Table, name string) (table.Column, error) {
	if name == "" {
		return table.Column{}, errors.InvalidColumn("grouping column is required")
	}
	col, ok := t.Column(name)
	if !ok {
		return table.Column{}, errors.InvalidColumnf("column %q not found", name)
	}
	if ct := classifyColumn(col); ct != table.TypeCategorical {
		return table.Column{}, errors.InvalidColumnf("column %q is %s, grouping needs categorical", name, ct)
	}
	return col, nil
}

func (e *Engine) buildBar(t *table.Table, values table.Column, groupBy string) (ChartSpec, error) {
	groups, err := e.categoricalColumn(t, groupBy)
	if err != nil {
		return ChartSpec{}, err
	}
	x, y := sumByGroup(values, groups)
	return ChartSpec{
		Kind:    ChartBar,
		Title:   fmt.Sprintf("%s by %s", values.Name, groups.Name),
		Column:  values.Name,
		GroupBy: groups.Name,
		X:       x,
		Y:       y,
	}, nil
}

func (e *Engine) buildPie(t *table.Table, values table.Column, groupBy string) (ChartSpec, error) {
	groups, err := e.categoricalColumn(t, groupBy)
	if err != nil {
		return ChartSpec{}, err
	}
	x, y := sumByGroup(values, groups)
	x, y = positiveSlices(x, y)
	x, y = capLargest(x, y, e.maxPieSlices)
	return ChartSpec{
		Kind:    ChartPie,
		Title:   fmt.Sprintf("%s by %s", values.Name, groups.Name),
		Column:  values.Name,
		GroupBy: groups.Name,
		X:       x,
		Y:       y,
	}, nil
}

func (e *Engine) buildLine(t *table.Table, values table.Column, xAxis string) (ChartSpec, error) {
	if xAxis == "" {
		return ChartSpec{}, errors.InvalidColumn("line charts need an x-axis column")
	}
	xcol, ok := t.Column(xAxis)
	if !ok {
		return ChartSpec{}, errors.InvalidColumnf("column %q not found", xAxis)
	}
	switch ct := classifyColumn(xcol); ct {
	case table.TypeTemporal, table.TypeCategorical:
	default:
		return ChartSpec{}, errors.InvalidColumnf("column %q is %s, the x axis needs temporal or categorical", xAxis, ct)
	}

	// One point per row, in row order. A row missing either coordinate
	// has no point.
	xs := make([]string, 0, len(xcol.Cells))
	ys := make([]float64, 0, len(xcol.Cells))
	for i, xc := range xcol.Cells {
		vc := values.Cells[i]
		if xc.Absent || vc.Absent {
			continue
		}
		v, ok := table.ParseNumber(vc.Raw)
		if !ok {
			continue
		}
		xs = append(xs, xc.Raw)
		ys = append(ys, v)
	}
	return ChartSpec{
		Kind:    ChartLine,
		Title:   fmt.Sprintf("%s over %s", values.Name, xcol.Name),
		Column:  values.Name,
		GroupBy: xcol.Name,
		X:       xs,
		Y:       ys,
	}, nil
}

func (e *Engine) buildHistogram(values table.Column) ChartSpec {
	spec := ChartSpec{
		Kind:   ChartHistogram,
		Title:  fmt.Sprintf("Distribution of %s", values.Name),
		Column: values.Name,
		X:      []string{},
		Y:      []float64{},
	}
	data := values.Numbers()
	if len(data) == 0 {
		return spec
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	// A constant column has zero width, so equal-width binning collapses
	// to one bin holding every value.
	if lo == hi {
		spec.X = []string{fmt.Sprintf("[%.4g, %.4g]", lo, hi)}
		spec.Y = []float64{float64(len(sorted))}
		return spec
	}

	dividers := make([]float64, e.histogramBins+1)
	floats.Span(dividers, lo, hi)
	counts := stat.Histogram(nil, dividers, sorted, nil)

	labels := make([]string, len(counts))
	for i := range counts {
		if i == len(counts)-1 {
			labels[i] = fmt.Sprintf("[%.4g, %.4g]", dividers[i], dividers[i+1])
		} else {
			labels[i] = fmt.Sprintf("[%.4g, %.4g)", dividers[i], dividers[i+1])
		}
	}
	spec.X = labels
	spec.Y = counts
	return spec
}

// sumByGroup folds the value column into per-group sums, keeping groups
// in first-seen row order. Rows with an absent group label have nothing
// to group under and are skipped; a present label with an absent value
// still registers the group, so it shows up with a zero aggregate.
func sumByGroup(values, groups table.Column) ([]string, []float64) {
	order := make([]string, 0)
	sums := make(map[string]float64)
	for i, g := range groups.Cells {
		if g.Absent {
			continue
		}
		key := g.Raw
		if _, seen := sums[key]; !seen {
			sums[key] = 0
			order = append(order, key)
		}
		cell := values.Cells[i]
		if cell.Absent {
			continue
		}
		if v, ok := table.ParseNumber(cell.Raw); ok {
			sums[key] += v
		}
	}
	y := make([]float64, len(order))
	for i, key := range order {
		y[i] = sums[key]
	}
	return order, y
}

// positiveSlices drops groups whose aggregate is not positive.
func positiveSlices(x []string, y []float64) ([]string, []float64) {
	outX := make([]string, 0, len(x))
	outY := make([]float64, 0, len(y))
	for i := range y {
		if y[i] > 0 {
			outX = append(outX, x[i])
			outY = append(outY, y[i])
		}
	}
	return outX, outY
}

// capLargest keeps the n largest aggregates while preserving the
// first-seen order of the survivors. Ties keep the earlier group.
func capLargest(x []string, y []float64, n int) ([]string, []float64) {
	if len(y) <= n {
		return x, y
	}
	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return y[idx[a]] > y[idx[b]] })
	keep := idx[:n]
	sort.Ints(keep)

	outX := make([]string, n)
	outY := make([]float64, n)
	for i, j := range keep {
		outX[i] = x[j]
		outY[i] = y[j]
	}
	return outX, outY
}
