package calculator

import (
	"sort"

	"DivergenceSentinel/internal/model"
)

// BuildRatio inner-joins a and b on exact timestamp and emits priceA/priceB
// for every shared timestamp. Timestamps where priceB is zero are skipped.
// Each timestamp appears once; on duplicates within one input the later
// point wins.
func BuildRatio(a, b model.Series) model.Series {
	symbol := a.Symbol + "/" + b.Symbol
	denom := make(map[int64]float64, b.Len())
	for _, p := range b.Points {
		denom[p.Time] = p.Price
	}

	points := make([]model.Point, 0, min(a.Len(), b.Len()))
	seen := make(map[int64]int, a.Len())
	for _, p := range a.Points {
		d, ok := denom[p.Time]
		if !ok || d == 0 {
			continue
		}
		if i, dup := seen[p.Time]; dup {
			points[i].Price = p.Price / d
			continue
		}
		seen[p.Time] = len(points)
		points = append(points, model.Point{Time: p.Time, Price: p.Price / d})
	}

	// Explicit re-sort: the output must be ascending even when a was not
	// built through NewSeries.
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time < points[j].Time })
	return model.Series{Symbol: symbol, Points: points}
}
