package calculator

import "DivergenceSentinel/internal/model"

// DetectPivots returns every pivot high of the series: a point whose price is
// strictly greater than each price within leftBars before it and rightBars
// after it. Near the edges only the neighbors that exist are checked, so the
// first and last points can qualify. Equal prices break the pivot.
func DetectPivots(s model.Series, leftBars, rightBars int) []model.Pivot {
	if leftBars < 0 {
		leftBars = 0
	}
	if rightBars < 0 {
		rightBars = 0
	}
	pts := s.Points
	n := len(pts)
	var pivots []model.Pivot

	for i := 0; i < n; i++ {
		price := pts[i].Price
		isPivot := true

		// Check left
		for j := 1; j <= leftBars && i-j >= 0; j++ {
			if pts[i-j].Price >= price {
				isPivot = false
				break
			}
		}

		// Check right
		if isPivot {
			for j := 1; j <= rightBars && i+j < n; j++ {
				if pts[i+j].Price >= price {
					isPivot = false
					break
				}
			}
		}

		if isPivot {
			pivots = append(pivots, model.Pivot{Index: i, Time: pts[i].Time, Price: price})
		}
	}
	return pivots
}
