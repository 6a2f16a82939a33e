package calculator

import (
	"fmt"
	"sort"
	"strings"

	"DivergenceSentinel/internal/model"
)

// PairSize is how many pivots a trend comparison needs.
const PairSize = 2

// ParsePolicy accepts the canonical policy names and their short forms.
func ParsePolicy(s string) (model.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recent":
		return model.PolicyRecent, nil
	case "highest", "highest_by_price", "highestbyprice":
		return model.PolicyHighestByPrice, nil
	case "current", "highest_to_current", "highesttocurrent":
		return model.PolicyHighestToCurrent, nil
	default:
		return "", fmt.Errorf("unknown pivot policy %q", s)
	}
}

// SelectPivots reduces the series to at most maxCount representative pivots
// using the given policy. The result is always ascending by time.
func SelectPivots(s model.Series, maxCount, barsEachSide int, policy model.Policy) model.PivotPair {
	if s.Empty() || maxCount <= 0 {
		return model.PivotPair{}
	}
	switch policy {
	case model.PolicyHighestByPrice:
		return selectHighest(s, maxCount, barsEachSide)
	case model.PolicyHighestToCurrent:
		return selectHighestToCurrent(s, barsEachSide)
	case model.PolicyRecent:
		return selectRecent(s, maxCount, barsEachSide)
	default:
		canonical, err := ParsePolicy(string(policy))
		if err != nil {
			return model.PivotPair{}
		}
		return SelectPivots(s, maxCount, barsEachSide, canonical)
	}
}

// selectRecent keeps the last maxCount pivots in detection order.
func selectRecent(s model.Series, maxCount, bars int) model.PivotPair {
	pivots := DetectPivots(s, bars, bars)
	if len(pivots) > maxCount {
		pivots = pivots[len(pivots)-maxCount:]
	}
	out := make(model.PivotPair, len(pivots))
	copy(out, pivots)
	return out
}

// selectHighest ranks pivots by price and keeps the top maxCount.
// Equal prices keep detection order (stable sort), so the earlier pivot wins.
func selectHighest(s model.Series, maxCount, bars int) model.PivotPair {
	pivots := DetectPivots(s, bars, bars)
	ranked := make([]model.Pivot, len(pivots))
	copy(ranked, pivots)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Price > ranked[j].Price })
	if len(ranked) > maxCount {
		ranked = ranked[:maxCount]
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Time < ranked[j].Time })
	return model.PivotPair(ranked)
}

// selectHighestToCurrent pairs the highest historical pivot with the final
// point of the series. Pivots are detected on the whole series, so the
// right window of a historical candidate sees the bars that follow it; only
// candidates before the last bars+1 points are kept.
func selectHighestToCurrent(s model.Series, bars int) model.PivotPair {
	if bars < 0 {
		bars = 0
	}
	n := s.Len()
	histLen := n - (bars + 1)
	if histLen <= 0 {
		return model.PivotPair{}
	}
	var (
		best  model.Pivot
		found bool
	)
	for _, p := range DetectPivots(s, bars, bars) {
		if p.Index >= histLen {
			break
		}
		if !found || p.Price > best.Price {
			best, found = p, true
		}
	}
	if !found {
		return model.PivotPair{}
	}
	last, _ := s.Last()
	return model.PivotPair{best, {Index: n - 1, Time: last.Time, Price: last.Price}}
}
