package calculator

// AutoWindow derives the pivot neighbor radius from the lookback length.
func AutoWindow(lookback int) int {
	switch {
	case lookback <= 20:
		return 2
	case lookback <= 50:
		return 3
	case lookback <= 100:
		return 5
	}
	w := lookback / 20
	if w > 10 {
		w = 10
	}
	return w
}

// EffectiveWindow returns override when it is positive, else AutoWindow.
func EffectiveWindow(lookback, override int) int {
	if override > 0 {
		return override
	}
	return AutoWindow(lookback)
}
