package collector

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"DivergenceSentinel/internal/model"
)

var (
	dateColumns  = []string{"date", "datetime", "timestamp"}
	closeColumns = []string{"close", "adj close", "price"}
	dateLayouts  = []string{"2006-01-02", "2006-01-02 15:04:05", "2006-01-02 15:04", time.RFC3339}
)

// ParseCSV reads rows with a header line and returns the close series plus
// the number of rows dropped for a missing or non-numeric date or price.
// A Time column, when present, is combined with the date.
func ParseCSV(r io.Reader, symbol string) (model.Series, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return model.Series{Symbol: symbol}, 0, nil
	}
	if err != nil {
		return model.Series{Symbol: symbol}, 0, fmt.Errorf("read csv header: %w", err)
	}

	headerMap := make(map[string]int, len(header))
	for i, name := range header {
		headerMap[strings.ToLower(strings.TrimSpace(name))] = i
	}
	dateIdx, ok := findColumn(headerMap, dateColumns)
	if !ok {
		return model.Series{Symbol: symbol}, 0, fmt.Errorf("missing date column in %v", header)
	}
	closeIdx, ok := findColumn(headerMap, closeColumns)
	if !ok {
		return model.Series{Symbol: symbol}, 0, fmt.Errorf("missing close column in %v", header)
	}
	timeIdx, hasTime := headerMap["time"]

	var points []model.Point
	dropped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			dropped++
			continue
		}
		if err != nil {
			return model.Series{Symbol: symbol}, dropped, fmt.Errorf("read csv record: %w", err)
		}
		if dateIdx >= len(record) || closeIdx >= len(record) {
			dropped++
			continue
		}
		date := record[dateIdx]
		if hasTime && timeIdx < len(record) && strings.TrimSpace(record[timeIdx]) != "" {
			date = strings.TrimSpace(date) + " " + strings.TrimSpace(record[timeIdx])
		}
		p, ok := parsePoint(date, record[closeIdx])
		if !ok {
			dropped++
			continue
		}
		points = append(points, p)
	}
	return model.NewSeries(symbol, points), dropped, nil
}

// ParseJSON reads an array of row objects keyed like the CSV header.
func ParseJSON(r io.Reader, symbol string) (model.Series, int, error) {
	var rows []map[string]any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return model.Series{Symbol: symbol}, 0, fmt.Errorf("decode json rows: %w", err)
	}

	var points []model.Point
	dropped := 0
	for _, row := range rows {
		fields := make(map[string]string, len(row))
		for k, v := range row {
			fields[strings.ToLower(k)] = jsonString(v)
		}
		date := firstField(fields, dateColumns)
		if t := fields["time"]; t != "" {
			date += " " + t
		}
		p, ok := parsePoint(date, firstField(fields, closeColumns))
		if !ok {
			dropped++
			continue
		}
		points = append(points, p)
	}
	return model.NewSeries(symbol, points), dropped, nil
}

func parsePoint(date, price string) (model.Point, bool) {
	ts, ok := parseTimestamp(date)
	if !ok {
		return model.Point{}, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return model.Point{}, false
	}
	return model.Point{Time: ts, Price: v}, true
}

func parseTimestamp(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Unix(), true
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	return 0, false
}

func findColumn(headerMap map[string]int, names []string) (int, bool) {
	for _, n := range names {
		if i, ok := headerMap[n]; ok {
			return i, true
		}
	}
	return 0, false
}

func firstField(fields map[string]string, names []string) string {
	for _, n := range names {
		if v, ok := fields[n]; ok && v != "" {
			return v
		}
	}
	return ""
}

func jsonString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
