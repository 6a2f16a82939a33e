package notifier

import (
	"strings"
	"testing"
	"time"

	"DivergenceSentinel/internal/model"
)

func TestFormatPairReports(t *testing.T) {
	at := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	params := model.AnalysisParams{Lookback: 50, Policy: model.PolicyRecent, Window: 3}
	reports := []*model.PairReport{
		{
			SymbolA: "SPY", SymbolB: "HYG", Status: model.StatusOK, Params: params, EvaluatedAt: at,
			A:      model.SeriesView{Trend: model.TrendRising, Pivots: model.PivotPair{{Price: 470}, {Price: 480.5}}},
			B:      model.SeriesView{Trend: model.TrendFalling, Pivots: model.PivotPair{{Price: 78}, {Price: 77}}},
			Ratio:  model.SeriesView{Trend: model.TrendRising, Pivots: model.PivotPair{{Price: 6.02}, {Price: 6.24}}},
			Signal: model.Signal{Kind: model.SignalBearishDivergence, Message: "⚠️ Bearish divergence: SPY making higher highs while HYG makes lower highs"},
		},
		{
			SymbolA: "QQQ", SymbolB: "HYG", Status: model.StatusNoData, Params: params, EvaluatedAt: at,
			Signal: model.Signal{Kind: model.SignalNone, Message: "No data available for QQQ"},
		},
	}

	msg := FormatPairReports(reports)
	for _, want := range []string{
		"2024-03-01 23:00",
		"Lookback 50 | recent | window 3",
		"<b>SPY / HYG</b>",
		"SPY: Rising (470.00 → 480.50)",
		"HYG: Falling (78.00 → 77.00)",
		"Ratio: Rising (6.0200 → 6.2400)",
		"Bearish divergence",
		"<b>QQQ / HYG</b>\nNo data available for QQQ",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q in:\n%s", want, msg)
		}
	}
}

func TestFormatPairReports_Empty(t *testing.T) {
	if msg := FormatPairReports(nil); !strings.Contains(msg, "No pairs configured") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestFormatConfig(t *testing.T) {
	auto := FormatConfig(model.AnalysisConfig{Lookback: 100, Policy: model.PolicyHighestByPrice}, 5, []int{20, 50, 100})
	for _, want := range []string{"Lookback: 100", "Lookback choices: 20, 50, 100", "Policy: highest_by_price", "Window: auto (5)"} {
		if !strings.Contains(auto, want) {
			t.Errorf("missing %q in:\n%s", want, auto)
		}
	}
	fixed := FormatConfig(model.AnalysisConfig{Lookback: 20, Policy: model.PolicyRecent, Window: 4}, 4, nil)
	if !strings.Contains(fixed, "Window: 4\n") || strings.Contains(fixed, "choices") {
		t.Errorf("unexpected fixed window message:\n%s", fixed)
	}
}
