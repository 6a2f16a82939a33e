package calculator

import (
	"testing"

	"DivergenceSentinel/internal/model"
)

func TestSelectPivots_RecentScenario(t *testing.T) {
	s := mkSeries("SPY", 100, 110, 90, 120)
	pair := SelectPivots(s, 2, 1, model.PolicyRecent)
	if len(pair) != 2 {
		t.Fatalf("expected 2 pivots, got %d", len(pair))
	}
	if pair[0].Time != 2000 || pair[1].Time != 4000 {
		t.Errorf("expected [t2 t4], got [%d %d]", pair[0].Time, pair[1].Time)
	}
}

func TestSelectPivots_RecentKeepsLatest(t *testing.T) {
	// pivots at 1, 3, 5, 7 with radius 1
	s := mkSeries("X", 1, 9, 1, 8, 1, 7, 1, 6, 1)
	pair := SelectPivots(s, 2, 1, model.PolicyRecent)
	if got := pivotIndexes(pair); !equalInts(got, []int{5, 7}) {
		t.Errorf("expected [5 7], got %v", got)
	}
}

func TestSelectPivots_HighestByPrice(t *testing.T) {
	// pivots at 1 (9), 3 (4), 5 (12), 7 (6)
	s := mkSeries("X", 1, 9, 1, 4, 1, 12, 1, 6, 1)
	pair := SelectPivots(s, 2, 1, model.PolicyHighestByPrice)
	if got := pivotIndexes(pair); !equalInts(got, []int{1, 5}) {
		t.Errorf("expected chronological [1 5], got %v", got)
	}
}

func TestSelectPivots_HighestByPriceTieKeepsEarlier(t *testing.T) {
	// pivots at 1 (9), 3 (5), 5 (9), 7 (9)
	s := mkSeries("X", 1, 9, 1, 5, 1, 9, 1, 9, 1)
	pair := SelectPivots(s, 2, 1, model.PolicyHighestByPrice)
	if got := pivotIndexes(pair); !equalInts(got, []int{1, 5}) {
		t.Errorf("expected earliest equal pivots [1 5], got %v", got)
	}
}

func TestSelectPivots_HighestByPriceIncludesUniqueMax(t *testing.T) {
	prices := []float64{3, 4, 2, 5, 3, 20, 4, 6, 2, 7, 1}
	s := mkSeries("X", prices...)
	for _, w := range []int{1, 2, 3} {
		pair := SelectPivots(s, 2, w, model.PolicyHighestByPrice)
		found := false
		for _, p := range pair {
			if p.Index == 5 {
				found = true
			}
		}
		if !found {
			t.Errorf("window %d: global max not selected, got %v", w, pivotIndexes(pair))
		}
	}
}

func TestSelectPivots_HighestToCurrent(t *testing.T) {
	// bars=1: last 2 points excluded from search, historical prefix is idx 0..6
	s := mkSeries("X", 1, 9, 1, 12, 1, 6, 1, 50, 8)
	pair := SelectPivots(s, 2, 1, model.PolicyHighestToCurrent)
	if len(pair) != 2 {
		t.Fatalf("expected 2 pivots, got %d", len(pair))
	}
	if pair[0].Index != 3 || pair[0].Price != 12 {
		t.Errorf("expected historical high at 3 (12), got %+v", pair[0])
	}
	if pair[1].Index != 8 || pair[1].Price != 8 || pair[1].Time != 9000 {
		t.Errorf("expected current point at 8, got %+v", pair[1])
	}
	if ClassifyTrend(pair) != model.TrendFalling {
		t.Errorf("expected falling, got %s", ClassifyTrend(pair))
	}
}

func TestSelectPivots_HighestToCurrentTieKeepsFirst(t *testing.T) {
	s := mkSeries("X", 1, 9, 1, 9, 1, 3, 3)
	pair := SelectPivots(s, 2, 1, model.PolicyHighestToCurrent)
	if len(pair) != 2 || pair[0].Index != 1 {
		t.Errorf("expected first equal pivot at 1, got %v", pivotIndexes(pair))
	}
}

func TestSelectPivots_HighestToCurrentShortSeries(t *testing.T) {
	tests := []struct {
		prices []float64
		bars   int
	}{
		{[]float64{1, 2}, 1},
		{[]float64{1, 2, 3}, 2},
		{[]float64{5}, 0},
	}
	for _, tt := range tests {
		pair := SelectPivots(mkSeries("X", tt.prices...), 2, tt.bars, model.PolicyHighestToCurrent)
		if len(pair) != 0 {
			t.Errorf("prices %v bars %d: expected empty pair, got %v", tt.prices, tt.bars, pivotIndexes(pair))
		}
	}
}

func TestSelectPivots_HighestToCurrentIncreasing(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = float64(i + 1)
	}
	for _, bars := range []int{1, 2, 3} {
		pair := SelectPivots(mkSeries("UP", prices...), 2, bars, model.PolicyHighestToCurrent)
		if len(pair) != 0 {
			t.Errorf("bars %d: expected no historical pivot in a strictly increasing series, got %v", bars, pivotIndexes(pair))
		}
		if ClassifyTrend(pair) != model.TrendFlat {
			t.Errorf("bars %d: expected flat, got %s", bars, ClassifyTrend(pair))
		}
	}
}

func TestSelectPivots_HighestToCurrentChecksFollowingBars(t *testing.T) {
	// idx 4 (9) tops the prefix idx 0..4 but is beaten by idx 5 (10);
	// the real swing high is idx 1 (8) since idx 5 sits in the excluded tail
	s := mkSeries("X", 1, 8, 2, 5, 9, 10, 7, 6)
	pair := SelectPivots(s, 2, 2, model.PolicyHighestToCurrent)
	if got := pivotIndexes(pair); !equalInts(got, []int{1, 7}) {
		t.Fatalf("expected [1 7], got %v", got)
	}
	for _, p := range pair[:1] {
		for j := p.Index - 2; j <= p.Index+2; j++ {
			if j >= 0 && j < s.Len() && j != p.Index && s.Points[j].Price >= p.Price {
				t.Errorf("pivot %d not above neighbor %d", p.Index, j)
			}
		}
	}
}

func TestSelectPivots_NonCanonicalPolicy(t *testing.T) {
	s := mkSeries("X", 1, 9, 1, 4, 1, 12, 1, 6, 1)
	pair := SelectPivots(s, 2, 1, model.Policy("HIGHEST"))
	if got := pivotIndexes(pair); !equalInts(got, []int{1, 5}) {
		t.Errorf("expected short form to select by price [1 5], got %v", got)
	}
	if got := SelectPivots(s, 2, 1, model.Policy("sideways")); len(got) != 0 {
		t.Errorf("expected empty pair for unknown policy, got %v", pivotIndexes(got))
	}
}

func TestSelectPivots_EmptyAndShort(t *testing.T) {
	for _, policy := range model.Policies {
		if got := SelectPivots(model.Series{}, 2, 2, policy); len(got) != 0 {
			t.Errorf("%s: expected empty pair for empty series, got %d", policy, len(got))
		}
		one := SelectPivots(mkSeries("X", 42), 2, 2, policy)
		if len(one) > 1 {
			t.Errorf("%s: expected at most 1 pivot for single point, got %d", policy, len(one))
		}
		if ClassifyTrend(one) != model.TrendFlat {
			t.Errorf("%s: expected flat for short series", policy)
		}
	}
}

func TestSelectPivots_AlwaysChronological(t *testing.T) {
	s := mkSeries("X", 2, 30, 1, 4, 1, 25, 2, 40, 3, 8, 1, 12, 2)
	for _, policy := range model.Policies {
		pair := SelectPivots(s, 2, 1, policy)
		for i := 1; i < len(pair); i++ {
			if pair[i].Time <= pair[i-1].Time {
				t.Errorf("%s: pair not ascending: %+v", policy, pair)
			}
		}
	}
}

func TestSelectPivots_Idempotent(t *testing.T) {
	s := mkSeries("X", 2, 30, 1, 4, 1, 25, 2, 40, 3, 8, 1, 12, 2)
	for _, policy := range model.Policies {
		first := SelectPivots(s, 2, 2, policy)
		second := SelectPivots(s, 2, 2, policy)
		if !equalInts(pivotIndexes(first), pivotIndexes(second)) {
			t.Errorf("%s: results differ between runs: %v vs %v", policy, pivotIndexes(first), pivotIndexes(second))
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    model.Policy
		wantErr bool
	}{
		{"recent", model.PolicyRecent, false},
		{" Highest ", model.PolicyHighestByPrice, false},
		{"highest_by_price", model.PolicyHighestByPrice, false},
		{"current", model.PolicyHighestToCurrent, false},
		{"highest_to_current", model.PolicyHighestToCurrent, false},
		{"lowest", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: unexpected error state: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
