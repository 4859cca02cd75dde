// Package store caches fetched OHLCV bars between polling cycles.
package store

import "GoldSentinel/internal/model"

// Store persists fetched bars so restarts and repeated polls don't refetch
// history from the network. Signal results are never persisted.
type Store interface {
	SaveBars(symbol, interval string, bars []model.Bar) error
	LoadBars(symbol, interval string, limit int) ([]model.Bar, error)
	Close() error
}

// NoopStore is used when no database is configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveBars(_, _ string, _ []model.Bar) error { return nil }

func (n *NoopStore) LoadBars(_, _ string, _ int) ([]model.Bar, error) { return nil, nil }

func (n *NoopStore) Close() error { return nil }
