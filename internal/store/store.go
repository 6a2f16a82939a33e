package store

import (
	"context"

	"DivergenceSentinel/internal/model"
)

// Store persists fetched close prices so analysis can run without the CSV
// files. Computed pivots and signals are never stored.
type Store interface {
	SaveSeries(ctx context.Context, s model.Series) error
	LoadSeries(ctx context.Context, symbol string) (model.Series, error)
	Close() error
}
