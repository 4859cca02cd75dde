package collector

import (
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"GoldSentinel/internal/model"
	"GoldSentinel/internal/store"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Data  []model.Bar
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_, _ string, limit int) ([]model.Bar, error) {
	if m.Data != nil {
		return m.Data, nil
	}
	return generateMockBars(m.Price, limit), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string) (float64, error) {
	return m.Price, nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().Add(-time.Duration(count-i) * time.Hour).Truncate(time.Hour),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches bars from the provider, keeps the local cache current,
// and falls back to cached bars when the provider is unreachable.
type Collector struct {
	Fetcher  Fetcher
	Store    store.Store
	Symbol   string
	Interval string
	Bars     int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, st store.Store, symbol, interval string, bars int) *Collector {
	return &Collector{Fetcher: fetcher, Store: st, Symbol: symbol, Interval: interval, Bars: bars}
}

// Collect returns a validated, strictly chronological series plus the
// latest traded price.
func (c *Collector) Collect() (model.Series, float64, error) {
	bars, err := c.Fetcher.FetchBars(c.Symbol, c.Interval, c.Bars)
	if err != nil {
		log.Warnf("fetch bars from %s failed: %v, trying cache", c.Fetcher.Name(), err)
		bars, err = c.Store.LoadBars(c.Symbol, c.Interval, c.Bars)
		if err != nil {
			return nil, 0, fmt.Errorf("load cached bars: %w", err)
		}
		if len(bars) == 0 {
			return nil, 0, fmt.Errorf("no bars available for %s %s", c.Symbol, c.Interval)
		}
		log.Infof("using %d cached bars for %s", len(bars), c.Symbol)
	} else {
		if err := c.Store.SaveBars(c.Symbol, c.Interval, bars); err != nil {
			log.Warnf("cache bars failed: %v", err)
		}
	}

	series := normalize(bars)
	if err := series.Validate(); err != nil {
		return nil, 0, fmt.Errorf("series after normalize: %w", err)
	}

	price, err := c.Fetcher.FetchCurrentPrice(c.Symbol)
	if err != nil {
		last, ok := series.Last()
		if !ok {
			return nil, 0, fmt.Errorf("fetch current price: %w", err)
		}
		log.Warnf("fetch current price failed: %v, using last close", err)
		price = last.Close
	}

	return series, price, nil
}

// normalize sorts bars chronologically and drops duplicate timestamps,
// keeping the later occurrence.
func normalize(bars []model.Bar) model.Series {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := make(model.Series, 0, len(bars))
	for _, b := range bars {
		if n := len(out); n > 0 && !out[n-1].Time.Before(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
