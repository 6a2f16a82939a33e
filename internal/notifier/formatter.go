package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"DivergenceSentinel/internal/model"
)

// FormatPairReports formats one analysis pass into a Telegram message.
func FormatPairReports(reports []*model.PairReport) string {
	var b strings.Builder

	at := time.Now()
	if len(reports) > 0 {
		at = reports[0].EvaluatedAt
	}
	b.WriteString(fmt.Sprintf("📊 <b>Divergence Sentinel</b> | %s\n", at.UTC().Format("2006-01-02 15:04")))
	if len(reports) == 0 {
		b.WriteString("\nNo pairs configured.\n")
		return b.String()
	}
	p := reports[0].Params
	b.WriteString(fmt.Sprintf("Lookback %d | %s | window %d\n", p.Lookback, p.Policy, p.Window))

	for _, r := range reports {
		b.WriteString(fmt.Sprintf("\n<b>%s / %s</b>\n", html.EscapeString(r.SymbolA), html.EscapeString(r.SymbolB)))
		if r.Status == model.StatusNoData {
			b.WriteString(html.EscapeString(r.Signal.Message) + "\n")
			continue
		}
		writeView(&b, r.SymbolA, r.A)
		writeView(&b, r.SymbolB, r.B)
		writeView(&b, "Ratio", r.Ratio)
		b.WriteString(html.EscapeString(r.Signal.Message) + "\n")
	}
	return b.String()
}

func writeView(b *strings.Builder, name string, v model.SeriesView) {
	b.WriteString(fmt.Sprintf("  %s: %s", html.EscapeString(name), v.Trend.Label()))
	if len(v.Pivots) == 2 {
		b.WriteString(fmt.Sprintf(" (%s → %s)", fmtPrice(v.Pivots[0].Price), fmtPrice(v.Pivots[1].Price)))
	}
	b.WriteString("\n")
}

func fmtPrice(p float64) string {
	if p < 10 {
		return fmt.Sprintf("%.4f", p)
	}
	return fmt.Sprintf("%.2f", p)
}

// FormatConfig formats the active analysis settings.
func FormatConfig(cfg model.AnalysisConfig, effectiveWindow int, choices []int) string {
	var b strings.Builder
	b.WriteString("⚙️ <b>Analysis settings</b>\n\n")
	b.WriteString(fmt.Sprintf("Lookback: %d\n", cfg.Lookback))
	if len(choices) > 0 {
		parts := make([]string, len(choices))
		for i, c := range choices {
			parts[i] = fmt.Sprint(c)
		}
		b.WriteString(fmt.Sprintf("Lookback choices: %s\n", strings.Join(parts, ", ")))
	}
	b.WriteString(fmt.Sprintf("Policy: %s\n", cfg.Policy))
	if cfg.Window == 0 {
		b.WriteString(fmt.Sprintf("Window: auto (%d)\n", effectiveWindow))
	} else {
		b.WriteString(fmt.Sprintf("Window: %d\n", cfg.Window))
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"/signal - analyze all pairs now\n" +
		"/config - show analysis settings\n" +
		"/lookback N - set the lookback\n" +
		"/policy recent|highest|current - set the pivot policy\n" +
		"/window N|auto - set the neighbor window\n" +
		"/help - this message"
}
