// Package collector fetches OHLCV bars from a market data provider and
// prepares them for analysis.
package collector

import "GoldSentinel/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchBars(symbol, interval string, limit int) ([]model.Bar, error)
	FetchCurrentPrice(symbol string) (float64, error)
	Name() string
}
