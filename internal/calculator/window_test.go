package calculator

import "testing"

func TestAutoWindow(t *testing.T) {
	tests := []struct {
		lookback, want int
	}{
		{5, 2}, {20, 2}, {50, 3}, {100, 5}, {200, 10}, {300, 10}, {120, 6},
	}
	for _, tt := range tests {
		if got := AutoWindow(tt.lookback); got != tt.want {
			t.Errorf("lookback %d: expected %d, got %d", tt.lookback, tt.want, got)
		}
	}
}

func TestEffectiveWindow(t *testing.T) {
	if got := EffectiveWindow(50, 0); got != 3 {
		t.Errorf("auto: expected 3, got %d", got)
	}
	if got := EffectiveWindow(50, 7); got != 7 {
		t.Errorf("override: expected 7, got %d", got)
	}
}
