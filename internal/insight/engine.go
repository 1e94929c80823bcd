package insight

// Engine computes column classifications, KPI aggregates, chart series
// and summary statistics over ingested tables. Every operation is a pure
// function of its inputs: results are recomputed per call, nothing is
// cached, and tables are never mutated.
type Engine struct {
	histogramBins int
	maxPieSlices  int
}

// Config bounds the shape of generated chart data.
type Config struct {
	HistogramBins int
	MaxPieSlices  int
}

const (
	defaultHistogramBins = 20
	defaultMaxPieSlices  = 10
)

func NewEngine(cfg Config) *Engine {
	if cfg.HistogramBins <= 0 {
		cfg.HistogramBins = defaultHistogramBins
	}
	if cfg.MaxPieSlices <= 0 {
		cfg.MaxPieSlices = defaultMaxPieSlices
	}
	return &Engine{
		histogramBins: cfg.HistogramBins,
		maxPieSlices:  cfg.MaxPieSlices,
	}
}
