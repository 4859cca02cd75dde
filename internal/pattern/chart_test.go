package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"GoldSentinel/internal/model"
)

func seriesHL(highs, lows []float64) model.Series {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, len(highs))
	for i := range highs {
		mid := (highs[i] + lows[i]) / 2
		s[i] = model.Bar{
			Time: start.Add(time.Duration(i) * time.Hour),
			Open: mid, High: highs[i], Low: lows[i], Close: mid,
			Volume: 1000,
		}
	}
	return s
}

func TestDetectChartPatterns_DoubleTop(t *testing.T) {
	// Two peaks within 2% of each other around a trough more than 2% below.
	highs := []float64{101, 102, 103, 102, 104, 110, 104, 103, 100, 103, 105, 110.5, 105, 104, 103, 102}
	lows := []float64{100, 101, 102, 101, 103, 105, 101, 99, 95, 99, 101, 105, 101, 100, 99, 98}
	series := seriesHL(highs, lows)

	matches := detectChartPatterns(series, 16)

	m := findMatch(t, matches, "Double Top")
	assert.Equal(t, model.Bearish, m.Polarity)
	assert.Equal(t, 5, m.Start)
	assert.Equal(t, 11, m.End)
}

func TestDetectChartPatterns_DoubleBottom(t *testing.T) {
	highs := []float64{103, 102, 101, 102, 100, 95, 99, 100, 108, 100, 99, 94.8, 99, 100, 101, 102}
	lows := []float64{102, 101, 100, 101, 99, 90, 95, 96, 99, 96, 95, 90.3, 95, 96, 97, 98}
	series := seriesHL(highs, lows)

	matches := detectChartPatterns(series, 16)

	m := findMatch(t, matches, "Double Bottom")
	assert.Equal(t, model.Bullish, m.Polarity)
	assert.Equal(t, 5, m.Start)
	assert.Equal(t, 11, m.End)
}

func TestDetectChartPatterns_PeaksTooFarApart(t *testing.T) {
	// Second peak 8% above the first: no double top.
	highs := []float64{101, 102, 103, 102, 104, 110, 104, 103, 100, 103, 105, 119, 105, 104, 103, 102}
	lows := []float64{100, 101, 102, 101, 103, 105, 101, 99, 95, 99, 101, 105, 101, 100, 99, 98}
	series := seriesHL(highs, lows)

	matches := detectChartPatterns(series, 16)
	assert.NotContains(t, names(matches), "Double Top")
}

func TestDetectChartPatterns_TooShortSeries(t *testing.T) {
	highs := []float64{101, 102, 103}
	lows := []float64{100, 101, 102}
	matches := detectChartPatterns(seriesHL(highs, lows), 16)
	assert.Empty(t, matches)
}
