package collector

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldSentinel/internal/model"
	"GoldSentinel/internal/store"
)

type failFetcher struct{}

func (f *failFetcher) Name() string { return "fail" }

func (f *failFetcher) FetchBars(_, _ string, _ int) ([]model.Bar, error) {
	return nil, errors.New("provider down")
}

func (f *failFetcher) FetchCurrentPrice(_ string) (float64, error) {
	return 0, errors.New("provider down")
}

type memStore struct {
	bars  []model.Bar
	saved int
}

func (m *memStore) SaveBars(_, _ string, bars []model.Bar) error {
	m.bars = append([]model.Bar(nil), bars...)
	m.saved++
	return nil
}

func (m *memStore) LoadBars(_, _ string, _ int) ([]model.Bar, error) {
	return m.bars, nil
}

func (m *memStore) Close() error { return nil }

func barAt(ts time.Time, close float64) model.Bar {
	return model.Bar{Time: ts, Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 100}
}

func TestCollect_MockFetcher(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 2400}, store.NewNoopStore(), "XAUUSD", "1h", 50)

	series, price, err := c.Collect()
	require.NoError(t, err)
	assert.Equal(t, 50, series.Len())
	assert.NoError(t, series.Validate())
	assert.InDelta(t, 2400.0, price, 1e-9)
}

func TestCollect_SavesToCache(t *testing.T) {
	st := &memStore{}
	c := NewCollector(&MockFetcher{Price: 2400}, st, "XAUUSD", "1h", 20)

	_, _, err := c.Collect()
	require.NoError(t, err)
	assert.Equal(t, 1, st.saved)
	assert.Len(t, st.bars, 20)
}

func TestCollect_FallsBackToCache(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	st := &memStore{bars: []model.Bar{
		barAt(base, 2390),
		barAt(base.Add(time.Hour), 2395),
		barAt(base.Add(2*time.Hour), 2400),
	}}
	c := NewCollector(&failFetcher{}, st, "XAUUSD", "1h", 10)

	series, price, err := c.Collect()
	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())
	// Price falls back to the last cached close.
	assert.InDelta(t, 2400.0, price, 1e-9)
}

func TestCollect_NoDataAnywhere(t *testing.T) {
	c := NewCollector(&failFetcher{}, store.NewNoopStore(), "XAUUSD", "1h", 10)
	_, _, err := c.Collect()
	assert.Error(t, err)
}

func TestNormalize_SortsAndDeduplicates(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		barAt(base.Add(2*time.Hour), 102),
		barAt(base, 100),
		barAt(base.Add(time.Hour), 101),
		barAt(base.Add(time.Hour), 101.5), // duplicate timestamp, later wins
	}

	series := normalize(bars)
	require.Equal(t, 3, series.Len())
	assert.NoError(t, series.Validate())
	assert.InDelta(t, 101.5, series[1].Close, 1e-9)
	assert.InDelta(t, 102.0, series[2].Close, 1e-9)
}

func TestYahooSymbolMapping(t *testing.T) {
	f := NewYahooFetcher("")
	assert.Equal(t, "GC=F", f.yahooSymbol("XAUUSD"))
	assert.Equal(t, "SI=F", f.yahooSymbol("XAGUSD"))
	assert.Equal(t, "BTC-USD", f.yahooSymbol("BTC-USD"))
}

func TestRangeFor(t *testing.T) {
	assert.Equal(t, "5d", rangeFor("1h", 100))
	assert.Equal(t, "1mo", rangeFor("1h", 500))
	assert.Equal(t, "1y", rangeFor("1d", 250))
	assert.Equal(t, "2y", rangeFor("1d", 400))
}
