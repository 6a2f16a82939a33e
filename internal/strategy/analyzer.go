package strategy

import (
	"context"
	"log"
	"strings"

	"DivergenceSentinel/internal/model"
)

// Loader returns a settled snapshot of series for the requested symbols.
type Loader interface {
	LoadAll(ctx context.Context, symbols []string) map[string]model.Series
}

// Analyzer loads the configured pairs' series and evaluates them.
type Analyzer struct {
	Loader Loader
	Pairs  []Pair
}

func NewAnalyzer(l Loader, pairs []Pair) *Analyzer {
	return &Analyzer{Loader: l, Pairs: pairs}
}

// Symbols returns every symbol used by the pairs, first occurrence order.
func (a *Analyzer) Symbols() []string {
	return pairSymbols(a.Pairs)
}

// Run evaluates every configured pair with cfg.
func (a *Analyzer) Run(ctx context.Context, cfg model.AnalysisConfig) []*model.PairReport {
	data := a.Loader.LoadAll(ctx, a.Symbols())
	reports := EvaluateAll(cfg, a.Pairs, data)
	log.Printf("[INFO] evaluated %d pairs (lookback=%d policy=%s window=%d)", len(reports), cfg.Lookback, cfg.Policy, cfg.Window)
	return reports
}

// RunPair evaluates one ad-hoc pair. Symbols are upper-cased.
func (a *Analyzer) RunPair(ctx context.Context, cfg model.AnalysisConfig, p Pair) *model.PairReport {
	p = Pair{A: strings.ToUpper(p.A), B: strings.ToUpper(p.B)}
	data := a.Loader.LoadAll(ctx, pairSymbols([]Pair{p}))
	return Evaluate(cfg, lookup(data, p.A), lookup(data, p.B))
}

func pairSymbols(pairs []Pair) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range pairs {
		for _, s := range []string{p.A, p.B} {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
