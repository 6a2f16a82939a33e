package model

// Pivot annotates one point of a Series. Index is the position in the
// series the pivot was detected on.
type Pivot struct {
	Index int     `json:"index"`
	Time  int64   `json:"t"`
	Price float64 `json:"p"`
}

// PivotPair holds 0, 1 or 2 pivots, ascending by time.
type PivotPair []Pivot

// Trend is the direction between the two pivots of a pair.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendFlat    Trend = "flat"
)

// Label is the human-readable form used in messages.
func (t Trend) Label() string {
	switch t {
	case TrendRising:
		return "Rising"
	case TrendFalling:
		return "Falling"
	default:
		return "Flat"
	}
}

// SignalKind names one of the five divergence outcomes.
type SignalKind string

const (
	SignalBearishDivergence SignalKind = "BEARISH_DIVERGENCE"
	SignalBullishDivergence SignalKind = "BULLISH_DIVERGENCE"
	SignalAlignedRising     SignalKind = "ALIGNED_RISING"
	SignalAlignedFalling    SignalKind = "ALIGNED_FALLING"
	SignalNone              SignalKind = "NO_SIGNAL"
)

// Signal is the combined output for a pair of trends.
type Signal struct {
	Kind    SignalKind `json:"kind"`
	Message string     `json:"message"`
}

// Policy selects how two representative pivots are chosen.
type Policy string

const (
	PolicyRecent           Policy = "recent"
	PolicyHighestByPrice   Policy = "highest_by_price"
	PolicyHighestToCurrent Policy = "highest_to_current"
)

// Policies lists every selection policy in display order.
var Policies = []Policy{PolicyRecent, PolicyHighestByPrice, PolicyHighestToCurrent}

// AnalysisConfig is the configuration snapshot one analysis pass runs with.
// Window 0 means the neighbor radius is derived from Lookback.
type AnalysisConfig struct {
	Lookback int    `json:"lookback"`
	Policy   Policy `json:"policy"`
	Window   int    `json:"window"`
}
