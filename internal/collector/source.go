package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"DivergenceSentinel/internal/model"
)

// ErrNoData is returned when a source has nothing for a symbol.
var ErrNoData = errors.New("no data")

// Source loads the close-price series of one symbol.
type Source interface {
	LoadSeries(ctx context.Context, symbol string) (model.Series, error)
	Name() string
}

// FallbackSource tries each source in order and returns the first non-empty
// series. Errors are only returned when every source fails.
type FallbackSource struct {
	Sources []Source
}

func NewFallbackSource(sources ...Source) *FallbackSource {
	return &FallbackSource{Sources: sources}
}

func (f *FallbackSource) Name() string {
	names := make([]string, len(f.Sources))
	for i, s := range f.Sources {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

func (f *FallbackSource) LoadSeries(ctx context.Context, symbol string) (model.Series, error) {
	var errs []error
	for _, src := range f.Sources {
		s, err := src.LoadSeries(ctx, symbol)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		if !s.Empty() {
			return s, nil
		}
	}
	if len(errs) == len(f.Sources) && len(errs) > 0 {
		return model.Series{Symbol: symbol}, errors.Join(errs...)
	}
	return model.Series{Symbol: symbol}, nil
}

// MockSource returns fixed series for development and testing.
type MockSource struct {
	Data map[string]model.Series
	Err  map[string]error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) LoadSeries(_ context.Context, symbol string) (model.Series, error) {
	if err, ok := m.Err[symbol]; ok {
		return model.Series{Symbol: symbol}, err
	}
	if s, ok := m.Data[symbol]; ok {
		return s, nil
	}
	return model.Series{Symbol: symbol}, fmt.Errorf("%s: %w", symbol, ErrNoData)
}
