package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldSentinel/internal/config"
	"GoldSentinel/internal/model"
)

func testCfg() config.Analysis {
	return config.Analysis{
		Engine:       "builtin",
		SMAPeriods:   []int{3, 5},
		EMAPeriods:   []int{3},
		RSIPeriod:    3,
		MACDFast:     3,
		MACDSlow:     6,
		MACDSignal:   3,
		BBandsPeriod: 4,
		BBandsDev:    2.0,
		ATRPeriod:    3,
		StochFastK:   4,
		StochSlowK:   2,
		StochSlowD:   2,
	}
}

func testSeries(closes []float64) model.Series {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, len(closes))
	for i, c := range closes {
		s[i] = model.Bar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return s
}

func flatSeries(n int, price float64) model.Series {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, n)
	for i := range s {
		s[i] = model.Bar{
			Time: start.Add(time.Duration(i) * time.Hour),
			Open: price, High: price, Low: price, Close: price,
			Volume: 1000,
		}
	}
	return s
}

func TestNewEngine_Selection(t *testing.T) {
	cfg := testCfg()
	assert.Equal(t, "builtin", NewEngine(cfg).Name())

	cfg.Engine = "talib"
	assert.Equal(t, "talib", NewEngine(cfg).Name())

	cfg.Engine = "unknown"
	assert.Equal(t, "builtin", NewEngine(cfg).Name())
}

func TestBuiltinEngine_EmptySeries(t *testing.T) {
	set := NewEngine(testCfg()).Compute(nil)
	require.NotNil(t, set)
	assert.Equal(t, 0, set.Len())
	_, ok := set.Last(RSIName(3))
	assert.False(t, ok)
}

func TestBuiltinEngine_ColumnsPresent(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	set := NewEngine(testCfg()).Compute(testSeries(closes))

	last := set.Len() - 1
	for _, name := range []string{
		SMAName(3), SMAName(5), EMAName(3), RSIName(3), ATRName(3),
		ColMACD, ColMACDSignal, ColMACDHist,
		ColBBUpper, ColBBMiddle, ColBBLower,
		ColStochK, ColStochD,
	} {
		_, ok := set.Value(name, last)
		assert.True(t, ok, "column %s should be defined at the last bar", name)
	}
}

func TestBuiltinEngine_BandOrdering(t *testing.T) {
	closes := []float64{100, 102, 99, 103, 101, 104, 100, 105, 102, 106}
	set := NewEngine(testCfg()).Compute(testSeries(closes))

	last := set.Len() - 1
	upper, ok := set.Value(ColBBUpper, last)
	require.True(t, ok)
	middle, ok := set.Value(ColBBMiddle, last)
	require.True(t, ok)
	lower, ok := set.Value(ColBBLower, last)
	require.True(t, ok)

	assert.Greater(t, upper, middle)
	assert.Greater(t, middle, lower)
}

func TestBuiltinEngine_FlatSeries(t *testing.T) {
	set := NewEngine(testCfg()).Compute(flatSeries(30, 100))
	last := set.Len() - 1

	rsi, ok := set.Value(RSIName(3), last)
	require.True(t, ok)
	assert.InDelta(t, 50.0, rsi, 1e-9)

	k, ok := set.Value(ColStochK, last)
	require.True(t, ok)
	assert.InDelta(t, 50.0, k, 1e-9)

	upper, _ := set.Value(ColBBUpper, last)
	lower, _ := set.Value(ColBBLower, last)
	assert.InDelta(t, upper, lower, 1e-9)
}

func TestBuiltinEngine_CloseOnlyFeed(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	series := testSeries(closes)
	for i := range series {
		series[i].High = 0
		series[i].Low = 0
	}
	set := NewEngine(testCfg()).Compute(series)

	last := set.Len() - 1
	if _, ok := set.Value(ATRName(3), last); ok {
		t.Error("ATR should be undefined without high/low data")
	}
	if _, ok := set.Value(ColStochK, last); ok {
		t.Error("stochastic should be undefined without high/low data")
	}
	// Close-derived columns survive.
	_, ok := set.Value(SMAName(3), last)
	assert.True(t, ok)
}

func TestTalibEngine_WarmupUndefined(t *testing.T) {
	cfg := testCfg()
	cfg.Engine = "talib"
	set := NewEngine(cfg).Compute(flatSeries(30, 100))

	_, ok := set.Value(SMAName(3), 1)
	assert.False(t, ok, "SMA should be undefined inside the warmup region")

	v, ok := set.Value(SMAName(3), 2)
	assert.True(t, ok)
	assert.InDelta(t, 100.0, v, 1e-9)

	mid, ok := set.Value(ColBBMiddle, set.Len()-1)
	assert.True(t, ok)
	assert.InDelta(t, 100.0, mid, 1e-9)
}

func TestTalibEngine_ShortSeries(t *testing.T) {
	cfg := testCfg()
	cfg.Engine = "talib"
	set := NewEngine(cfg).Compute(flatSeries(2, 100))

	require.Equal(t, 2, set.Len())
	for _, name := range []string{SMAName(5), RSIName(3), ColMACD, ColStochK} {
		_, ok := set.Value(name, 1)
		assert.False(t, ok, "column %s should be undefined on a too-short series", name)
	}
}
