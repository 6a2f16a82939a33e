package model

import "time"

// PairStatus tells whether a pair could be analyzed.
type PairStatus string

const (
	StatusOK     PairStatus = "ok"
	StatusNoData PairStatus = "no_data"
)

// SeriesView is one windowed series with its selected pivots and trend,
// ready for chart markers and trend-line overlays.
type SeriesView struct {
	Series Series    `json:"series"`
	Pivots PivotPair `json:"pivots"`
	Trend  Trend     `json:"trend"`
}

// AnalysisParams records the configuration snapshot a report was built with.
type AnalysisParams struct {
	Lookback int    `json:"lookback"`
	Policy   Policy `json:"policy"`
	Window   int    `json:"window"` // effective neighbor radius
}

// PairReport is the full output for one configured pair.
type PairReport struct {
	RunID       string         `json:"run_id"`
	SymbolA     string         `json:"symbol_a"`
	SymbolB     string         `json:"symbol_b"`
	Status      PairStatus     `json:"status"`
	Params      AnalysisParams `json:"params"`
	A           SeriesView     `json:"a"`
	B           SeriesView     `json:"b"`
	Ratio       SeriesView     `json:"ratio"`
	Signal      Signal         `json:"signal"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
}
