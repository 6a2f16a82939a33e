package model

import (
	"sort"
	"time"
)

// Point is one (timestamp, price) sample. Time is Unix seconds.
type Point struct {
	Time  int64   `json:"t"`
	Price float64 `json:"p"`
}

// Series is an ordered sequence of points for one symbol.
// Points are ascending by Time; duplicates are kept. A Series is never
// mutated after construction: every derived series gets its own slice.
type Series struct {
	Symbol string  `json:"symbol"`
	Points []Point `json:"points"`
}

// NewSeries copies points and sorts the copy ascending by timestamp.
// The sort is stable so duplicate timestamps keep their input order.
func NewSeries(symbol string, points []Point) Series {
	cp := make([]Point, len(points))
	copy(cp, points)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Time < cp[j].Time })
	return Series{Symbol: symbol, Points: cp}
}

func (s Series) Len() int { return len(s.Points) }

func (s Series) Empty() bool { return len(s.Points) == 0 }

// Last returns the final point; ok is false for an empty series.
func (s Series) Last() (p Point, ok bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Recent returns a new series holding the last n points.
// n <= 0 or n >= Len returns a copy of the whole series.
func (s Series) Recent(n int) Series {
	start := 0
	if n > 0 && n < len(s.Points) {
		start = len(s.Points) - n
	}
	cp := make([]Point, len(s.Points)-start)
	copy(cp, s.Points[start:])
	return Series{Symbol: s.Symbol, Points: cp}
}

// Prefix returns a new series holding the first n points.
func (s Series) Prefix(n int) Series {
	if n < 0 {
		n = 0
	}
	if n > len(s.Points) {
		n = len(s.Points)
	}
	cp := make([]Point, n)
	copy(cp, s.Points[:n])
	return Series{Symbol: s.Symbol, Points: cp}
}

// Prices extracts the price column.
func (s Series) Prices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// FormatTime renders a point timestamp as a UTC date, or date and time
// when the timestamp is not at midnight.
func FormatTime(ts int64) string {
	t := time.Unix(ts, 0).UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}

// OHLCV represents a single candlestick bar from the market-data provider.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
