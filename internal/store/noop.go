package store

import (
	"context"

	"DivergenceSentinel/internal/model"
)

// NoopStore is used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveSeries(_ context.Context, _ model.Series) error { return nil }
func (n *NoopStore) LoadSeries(_ context.Context, symbol string) (model.Series, error) {
	return model.Series{Symbol: symbol}, nil
}
func (n *NoopStore) Close() error { return nil }
