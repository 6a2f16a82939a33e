package strategy

import (
	"context"
	"testing"

	"DivergenceSentinel/internal/model"
)

type mapLoader struct {
	data      map[string]model.Series
	requested [][]string
}

func (m *mapLoader) LoadAll(_ context.Context, symbols []string) map[string]model.Series {
	m.requested = append(m.requested, symbols)
	out := make(map[string]model.Series, len(symbols))
	for _, s := range symbols {
		if v, ok := m.data[s]; ok {
			out[s] = v
		} else {
			out[s] = model.Series{Symbol: s}
		}
	}
	return out
}

func TestAnalyzer_Run(t *testing.T) {
	l := &mapLoader{data: map[string]model.Series{
		"SPY": mkSeries("SPY", 1, 3, 1, 4, 1, 5, 1),
		"HYG": mkSeries("HYG", 1, 5, 1, 4, 1, 3, 1),
	}}
	a := NewAnalyzer(l, []Pair{{A: "SPY", B: "HYG"}, {A: "QQQ", B: "HYG"}})
	cfg := model.AnalysisConfig{Lookback: 20, Policy: model.PolicyRecent, Window: 1}

	reports := a.Run(context.Background(), cfg)
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if got := l.requested[0]; len(got) != 3 || got[0] != "SPY" || got[1] != "HYG" || got[2] != "QQQ" {
		t.Errorf("expected deduplicated symbols, got %v", got)
	}
	if reports[0].Signal.Kind != model.SignalBearishDivergence {
		t.Errorf("expected bearish divergence, got %s", reports[0].Signal.Kind)
	}
	if reports[1].Status != model.StatusNoData {
		t.Errorf("expected no_data for QQQ, got %s", reports[1].Status)
	}
	if reports[0].RunID != reports[1].RunID {
		t.Error("expected one run id per pass")
	}
}

func TestAnalyzer_RunPairUppercases(t *testing.T) {
	l := &mapLoader{data: map[string]model.Series{
		"SPY": mkSeries("SPY", 1, 2, 3),
		"TLT": mkSeries("TLT", 3, 2, 1),
	}}
	a := NewAnalyzer(l, nil)
	r := a.RunPair(context.Background(), model.AnalysisConfig{Lookback: 20, Policy: model.PolicyRecent}, Pair{A: "spy", B: "tlt"})
	if r.Status != model.StatusOK || r.SymbolA != "SPY" || r.SymbolB != "TLT" {
		t.Errorf("unexpected report %+v", r)
	}
}
