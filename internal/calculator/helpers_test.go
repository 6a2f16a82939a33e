package calculator

import "DivergenceSentinel/internal/model"

// mkSeries builds a daily series starting at t=1000 with 1000s spacing.
func mkSeries(symbol string, prices ...float64) model.Series {
	pts := make([]model.Point, len(prices))
	for i, p := range prices {
		pts[i] = model.Point{Time: int64(1000 * (i + 1)), Price: p}
	}
	return model.NewSeries(symbol, pts)
}

func pivotIndexes(ps []model.Pivot) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.Index
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
