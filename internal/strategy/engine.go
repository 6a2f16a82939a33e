package strategy

import (
	"time"

	"DivergenceSentinel/internal/calculator"
	"DivergenceSentinel/internal/model"

	"github.com/google/uuid"
)

// Pair names a risk asset (A) and its confirmation asset (B).
type Pair struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// Evaluate runs one full analysis pass for a pair: window both series, build
// the ratio series, select pivots, classify trends and combine the signal.
// Nothing is cached between calls.
func Evaluate(cfg model.AnalysisConfig, a, b model.Series) *model.PairReport {
	window := calculator.EffectiveWindow(cfg.Lookback, cfg.Window)
	report := &model.PairReport{
		RunID:   uuid.NewString(),
		SymbolA: a.Symbol,
		SymbolB: b.Symbol,
		Params: model.AnalysisParams{
			Lookback: cfg.Lookback,
			Policy:   cfg.Policy,
			Window:   window,
		},
		EvaluatedAt: time.Now(),
	}

	var missing []string
	if a.Empty() {
		missing = append(missing, a.Symbol)
	}
	if b.Empty() {
		missing = append(missing, b.Symbol)
	}
	if len(missing) > 0 {
		report.Status = model.StatusNoData
		report.A = model.SeriesView{Series: a, Pivots: model.PivotPair{}, Trend: model.TrendFlat}
		report.B = model.SeriesView{Series: b, Pivots: model.PivotPair{}, Trend: model.TrendFlat}
		report.Ratio = model.SeriesView{
			Series: model.Series{Symbol: a.Symbol + "/" + b.Symbol},
			Pivots: model.PivotPair{},
			Trend:  model.TrendFlat,
		}
		report.Signal = NoData(missing...)
		return report
	}

	ratio := calculator.BuildRatio(a, b)

	report.Status = model.StatusOK
	report.A = analyzeSeries(a, cfg, window)
	report.B = analyzeSeries(b, cfg, window)
	report.Ratio = analyzeSeries(ratio, cfg, window)
	report.Signal = Combine(report.A.Trend, report.B.Trend, a.Symbol, b.Symbol)
	return report
}

// EvaluateAll evaluates every pair against a settled snapshot of series.
// Symbols absent from data are treated as empty.
func EvaluateAll(cfg model.AnalysisConfig, pairs []Pair, data map[string]model.Series) []*model.PairReport {
	reports := make([]*model.PairReport, 0, len(pairs))
	runID := uuid.NewString()
	for _, p := range pairs {
		a := lookup(data, p.A)
		b := lookup(data, p.B)
		r := Evaluate(cfg, a, b)
		r.RunID = runID
		reports = append(reports, r)
	}
	return reports
}

func analyzeSeries(s model.Series, cfg model.AnalysisConfig, window int) model.SeriesView {
	recent := s.Recent(cfg.Lookback)
	pivots := calculator.SelectPivots(recent, calculator.PairSize, window, cfg.Policy)
	return model.SeriesView{
		Series: recent,
		Pivots: pivots,
		Trend:  calculator.ClassifyTrend(pivots),
	}
}

func lookup(data map[string]model.Series, symbol string) model.Series {
	if s, ok := data[symbol]; ok {
		if s.Symbol == "" {
			s.Symbol = symbol
		}
		return s
	}
	return model.Series{Symbol: symbol}
}
