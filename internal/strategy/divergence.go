package strategy

import (
	"fmt"

	"DivergenceSentinel/internal/model"
)

// Combine maps the trends of a risk asset (A) and its confirmation asset (B)
// to a divergence signal. Any Flat trend yields no signal.
func Combine(trendA, trendB model.Trend, nameA, nameB string) model.Signal {
	switch {
	case trendA == model.TrendRising && trendB == model.TrendFalling:
		return model.Signal{
			Kind:    model.SignalBearishDivergence,
			Message: fmt.Sprintf("⚠️ Bearish divergence: %s making higher highs while %s makes lower highs", nameA, nameB),
		}
	case trendA == model.TrendFalling && trendB == model.TrendRising:
		return model.Signal{
			Kind:    model.SignalBullishDivergence,
			Message: fmt.Sprintf("✅ Bullish divergence: %s making lower highs while %s makes higher highs", nameA, nameB),
		}
	case trendA == model.TrendRising && trendB == model.TrendRising:
		return model.Signal{
			Kind:    model.SignalAlignedRising,
			Message: fmt.Sprintf("Aligned: %s and %s both making higher highs", nameA, nameB),
		}
	case trendA == model.TrendFalling && trendB == model.TrendFalling:
		return model.Signal{
			Kind:    model.SignalAlignedFalling,
			Message: fmt.Sprintf("Aligned: %s and %s both making lower highs", nameA, nameB),
		}
	default:
		return model.Signal{
			Kind:    model.SignalNone,
			Message: fmt.Sprintf("No clear divergence between %s and %s", nameA, nameB),
		}
	}
}

// NoData is the signal reported when a pair is missing price data.
func NoData(missing ...string) model.Signal {
	msg := "No data available"
	if len(missing) > 0 {
		msg += " for"
		for i, s := range missing {
			if i > 0 {
				msg += ","
			}
			msg += " " + s
		}
	}
	return model.Signal{Kind: model.SignalNone, Message: msg}
}
