package report

import (
	"fmt"
	"io"

	"DivergenceSentinel/internal/model"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes one row per pair: the trend and pivots of A, B and the
// ratio, then the combined signal.
func RenderTable(w io.Writer, reports []*model.PairReport) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	if len(reports) > 0 {
		p := reports[0].Params
		t.SetTitle("lookback %d | %s | window %d", p.Lookback, p.Policy, p.Window)
	}
	t.AppendHeader(table.Row{"Pair", "A", "B", "Ratio", "Signal"})
	for _, r := range reports {
		pair := r.SymbolA + "/" + r.SymbolB
		if r.Status == model.StatusNoData {
			t.AppendRow(table.Row{pair, "-", "-", "-", r.Signal.Message})
			continue
		}
		t.AppendRow(table.Row{pair, viewCell(r.A), viewCell(r.B), viewCell(r.Ratio), string(r.Signal.Kind)})
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	for _, r := range reports {
		if r.Status == model.StatusOK {
			if _, err := fmt.Fprintln(w, r.Signal.Message); err != nil {
				return err
			}
		}
	}
	return nil
}

func viewCell(v model.SeriesView) string {
	if len(v.Pivots) < 2 {
		return v.Trend.Label()
	}
	return fmt.Sprintf("%s %.4g → %.4g", v.Trend.Label(), v.Pivots[0].Price, v.Pivots[1].Price)
}
