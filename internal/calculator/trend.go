package calculator

import "DivergenceSentinel/internal/model"

// ClassifyTrend compares the later pivot to the earlier one.
// Fewer than two pivots is Flat.
func ClassifyTrend(pair model.PivotPair) model.Trend {
	if len(pair) < PairSize {
		return model.TrendFlat
	}
	switch {
	case pair[1].Price > pair[0].Price:
		return model.TrendRising
	case pair[1].Price < pair[0].Price:
		return model.TrendFalling
	default:
		return model.TrendFlat
	}
}
