// Package levels finds horizontal support and resistance price levels.
package levels

import (
	"sort"

	"GoldSentinel/internal/model"
)

// Strategy selects the level detection algorithm.
type Strategy string

const (
	// StrategyRolling samples trailing rolling extrema of high/low.
	StrategyRolling Strategy = "rolling"
	// StrategySwing collects strict swing points and clusters them.
	StrategySwing Strategy = "swing"
)

// Detector finds support and resistance levels in a series. The strategy is
// fixed at construction; Detect is pure and safe for concurrent use.
type Detector struct {
	strategy  Strategy
	window    int
	threshold float64
}

// NewDetector creates a Detector. window is the extremum window in bars and
// threshold the relative clustering distance (0.02 = 2%), used by the swing
// strategy only.
func NewDetector(strategy Strategy, window int, threshold float64) *Detector {
	return &Detector{strategy: strategy, window: window, threshold: threshold}
}

// Detect returns the support and resistance levels of the series, each list
// ordered by price ascending. An empty or too-short series yields empty
// lists, never an error.
func (d *Detector) Detect(series model.Series) model.LevelSet {
	if series.Empty() || d.window <= 0 {
		return model.LevelSet{}
	}
	var support, resistance []float64
	switch d.strategy {
	case StrategyRolling:
		support = rollingExtrema(series.Lows(), d.window, false)
		resistance = rollingExtrema(series.Highs(), d.window, true)
	default:
		support = clusterLevels(swingValues(series.Lows(), d.window, false), d.threshold)
		resistance = clusterLevels(swingValues(series.Highs(), d.window, true), d.threshold)
	}
	return model.LevelSet{
		Support:    toLevels(support, model.LevelSupport),
		Resistance: toLevels(resistance, model.LevelResistance),
	}
}

// rollingExtrema computes the trailing rolling minimum (or maximum) over
// window bars, sampled over the most recent window points, deduplicated.
func rollingExtrema(values []float64, window int, max bool) []float64 {
	n := len(values)
	start := n - window
	if start < 0 {
		start = 0
	}
	seen := make(map[float64]struct{})
	var out []float64
	for i := start; i < n; i++ {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		ext := values[lo]
		for j := lo + 1; j <= i; j++ {
			if (max && values[j] > ext) || (!max && values[j] < ext) {
				ext = values[j]
			}
		}
		if _, ok := seen[ext]; !ok {
			seen[ext] = struct{}{}
			out = append(out, ext)
		}
	}
	sort.Float64s(out)
	return out
}

// swingValues returns the values of strict swing points: positions strictly
// more extreme than every neighbor within window bars on both sides. Indices
// within window of either boundary cannot qualify.
func swingValues(values []float64, window int, high bool) []float64 {
	var out []float64
	for _, i := range SwingIndexes(values, window, high) {
		out = append(out, values[i])
	}
	return out
}

// SwingIndexes returns the indices of strict swing highs (or lows) of
// values, using a symmetric window on both sides.
func SwingIndexes(values []float64, window int, high bool) []int {
	var out []int
	for i := window; i < len(values)-window; i++ {
		if isSwing(values, i, window, high) {
			out = append(out, i)
		}
	}
	return out
}

func isSwing(values []float64, i, window int, high bool) bool {
	for j := 1; j <= window; j++ {
		if high {
			if values[i] <= values[i-j] || values[i] <= values[i+j] {
				return false
			}
		} else {
			if values[i] >= values[i-j] || values[i] >= values[i+j] {
				return false
			}
		}
	}
	return true
}

func toLevels(prices []float64, kind model.LevelKind) []model.Level {
	out := make([]model.Level, 0, len(prices))
	for _, p := range prices {
		out = append(out, model.Level{Price: p, Kind: kind})
	}
	return out
}

// Nearest returns the n levels closest to price, re-sorted by price
// ascending. n <= 0 or n >= len keeps all levels.
func Nearest(lv []model.Level, price float64, n int) []model.Level {
	if n <= 0 || n >= len(lv) {
		return lv
	}
	sorted := make([]model.Level, len(lv))
	copy(sorted, lv)
	sort.SliceStable(sorted, func(i, j int) bool {
		di := sorted[i].Price - price
		if di < 0 {
			di = -di
		}
		dj := sorted[j].Price - price
		if dj < 0 {
			dj = -dj
		}
		return di < dj
	})
	sorted = sorted[:n]
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	return sorted
}
