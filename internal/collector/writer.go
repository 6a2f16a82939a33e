package collector

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"DivergenceSentinel/internal/model"
)

var (
	dailyHeader  = []string{"Date", "Open", "High", "Low", "Close", "Volume"}
	hourlyHeader = []string{"Date", "Time", "Open", "High", "Low", "Close", "Volume"}
)

// WriteBarsCSV writes bars to {dir}/{symbol}.csv (or {symbol}_hourly.csv).
// Daily rows carry the exchange calendar date; hourly rows are written in
// UTC so symbols from different exchanges join on the same instants.
func WriteBarsCSV(dir, symbol string, bars []model.OHLCV, hourly bool) (string, error) {
	path := filepath.Join(dir, FileName(symbol, hourly)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := dailyHeader
	if hourly {
		header = hourlyHeader
	}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, b := range bars {
		var row []string
		if hourly {
			ts := b.Time.UTC()
			row = []string{ts.Format("2006-01-02"), ts.Format("15:04:05")}
		} else {
			row = []string{b.Time.Format("2006-01-02")}
		}
		row = append(row, floatStr(b.Open), floatStr(b.High), floatStr(b.Low), floatStr(b.Close), floatStr(b.Volume))
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}
	return path, nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// DailyCloses converts daily bars to a close series keyed by the bar's
// calendar date at UTC midnight, matching what ParseCSV reads back.
func DailyCloses(symbol string, bars []model.OHLCV) model.Series {
	points := make([]model.Point, 0, len(bars))
	for _, b := range bars {
		y, m, d := b.Time.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		points = append(points, model.Point{Time: day.Unix(), Price: b.Close})
	}
	return model.NewSeries(symbol, points)
}
