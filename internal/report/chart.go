package report

import (
	"fmt"
	"io"

	"DivergenceSentinel/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderCharts writes an HTML page with three line charts per pair (A, B and
// the ratio). Selected pivots are marked and joined by a trend line.
func RenderCharts(w io.Writer, reports []*model.PairReport) error {
	page := components.NewPage()
	page.PageTitle = "Divergence Sentinel"
	for _, r := range reports {
		if r.Status == model.StatusNoData {
			page.AddCharts(emptyChart(r))
			continue
		}
		page.AddCharts(
			lineChart(r.SymbolA+" / "+r.SymbolB, r.SymbolA, r.A, r.Signal.Message),
			lineChart(r.SymbolA+" / "+r.SymbolB, r.SymbolB, r.B, ""),
			lineChart(r.SymbolA+" / "+r.SymbolB, r.Ratio.Series.Symbol, r.Ratio, ""),
		)
	}
	return page.Render(w)
}

func lineChart(title, name string, v model.SeriesView, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: title + " | " + name + " " + v.Trend.Label(), Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)

	xs := make([]string, v.Series.Len())
	data := make([]opts.LineData, v.Series.Len())
	for i, p := range v.Series.Points {
		xs[i] = model.FormatTime(p.Time)
		data[i] = opts.LineData{Value: p.Price}
	}

	seriesOpts := []charts.SeriesOpts{charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})}
	if len(v.Pivots) > 0 {
		points := make([]opts.MarkPointNameCoordItem, len(v.Pivots))
		for i, pv := range v.Pivots {
			points[i] = opts.MarkPointNameCoordItem{
				Name:       fmt.Sprintf("pivot %d", i+1),
				Coordinate: []interface{}{model.FormatTime(pv.Time), pv.Price},
				Value:      fmt.Sprintf("%.4g", pv.Price),
			}
		}
		seriesOpts = append(seriesOpts, charts.WithMarkPointNameCoordItemOpts(points...))
	}
	if len(v.Pivots) == 2 {
		seriesOpts = append(seriesOpts, charts.WithMarkLineNameCoordItemOpts(opts.MarkLineNameCoordItem{
			Name:        string(v.Trend),
			Coordinate0: []interface{}{model.FormatTime(v.Pivots[0].Time), v.Pivots[0].Price},
			Coordinate1: []interface{}{model.FormatTime(v.Pivots[1].Time), v.Pivots[1].Price},
		}))
	}

	line.SetXAxis(xs).AddSeries(name, data, seriesOpts...)
	return line
}

func emptyChart(r *model.PairReport) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "120px"}),
		charts.WithTitleOpts(opts.Title{Title: r.SymbolA + " / " + r.SymbolB, Subtitle: r.Signal.Message}),
	)
	return line
}
