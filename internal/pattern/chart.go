package pattern

import (
	"math"

	"GoldSentinel/internal/levels"
	"GoldSentinel/internal/model"
)

// Tolerances for the geometric chart rules.
const (
	// doubleTolerance is the maximum relative difference between the two
	// peaks (troughs) of a double top (bottom).
	doubleTolerance = 0.02
	// interveningDepth is how far below (above) both peaks (troughs) the
	// opposing extremum between them must sit.
	interveningDepth = 0.02
	// shoulderTolerance is the wider tolerance between the two outer
	// extrema of a head-and-shoulders formation.
	shoulderTolerance = 0.05
	// triangleTolerance bounds the "flat" side of a triangle.
	triangleTolerance = 0.02
)

// extremum is a swing point within the analysed section, in series indices.
type extremum struct {
	index int
	value float64
}

func detectChartPatterns(series model.Series, lookback int) []model.PatternMatch {
	section := series.Tail(lookback)
	offset := series.Len() - section.Len()

	// The extremum window scales with the lookback the way the original
	// analysis ran argrelextrema with order=lookback/4.
	window := lookback / 4
	if window < 2 {
		window = 2
	}

	highs := extrema(section.Highs(), window, true, offset)
	lows := extrema(section.Lows(), window, false, offset)

	var out []model.PatternMatch
	if m, ok := doublePattern(highs, lows, true); ok {
		out = append(out, m)
	}
	if m, ok := doublePattern(lows, highs, false); ok {
		out = append(out, m)
	}
	if m, ok := headAndShoulders(highs, true); ok {
		out = append(out, m)
	}
	if m, ok := headAndShoulders(lows, false); ok {
		out = append(out, m)
	}
	if m, ok := triangle(highs, lows); ok {
		out = append(out, m)
	}
	return out
}

func extrema(values []float64, window int, high bool, offset int) []extremum {
	var out []extremum
	for _, i := range levels.SwingIndexes(values, window, high) {
		out = append(out, extremum{index: i + offset, value: values[i]})
	}
	return out
}

// doublePattern checks the last two same-sign extrema for a double top
// (tops=true, bearish) or double bottom (tops=false, bullish). The two must
// agree within doubleTolerance and enclose an opposing extremum of
// sufficient depth.
func doublePattern(same, opposing []extremum, tops bool) (model.PatternMatch, bool) {
	if len(same) < 2 {
		return model.PatternMatch{}, false
	}
	a := same[len(same)-2]
	b := same[len(same)-1]
	if relDiff(a.value, b.value) >= doubleTolerance {
		return model.PatternMatch{}, false
	}

	for _, o := range opposing {
		if o.index <= a.index || o.index >= b.index {
			continue
		}
		if tops && o.value < math.Min(a.value, b.value)*(1-interveningDepth) {
			return match("Double Top", a.index, b.index, model.Bearish), true
		}
		if !tops && o.value > math.Max(a.value, b.value)*(1+interveningDepth) {
			return match("Double Bottom", a.index, b.index, model.Bullish), true
		}
	}
	return model.PatternMatch{}, false
}

// headAndShoulders checks the last three same-sign extrema: the middle must
// exceed (tops) or undercut (bottoms) both outer ones, and the outer two
// must agree within shoulderTolerance.
func headAndShoulders(same []extremum, tops bool) (model.PatternMatch, bool) {
	if len(same) < 3 {
		return model.PatternMatch{}, false
	}
	left := same[len(same)-3]
	head := same[len(same)-2]
	right := same[len(same)-1]

	if relDiff(left.value, right.value) >= shoulderTolerance {
		return model.PatternMatch{}, false
	}
	if tops && head.value > left.value && head.value > right.value {
		return match("Head and Shoulders", left.index, right.index, model.Bearish), true
	}
	if !tops && head.value < left.value && head.value < right.value {
		return match("Inverse Head and Shoulders", left.index, right.index, model.Bullish), true
	}
	return model.PatternMatch{}, false
}

// triangle checks for an ascending triangle (flat top, rising lows) or a
// descending triangle (flat bottom, falling highs) on the last two extrema
// of each side.
func triangle(highs, lows []extremum) (model.PatternMatch, bool) {
	if len(highs) < 2 || len(lows) < 2 {
		return model.PatternMatch{}, false
	}
	h1 := highs[len(highs)-2]
	h2 := highs[len(highs)-1]
	l1 := lows[len(lows)-2]
	l2 := lows[len(lows)-1]

	if relDiff(h1.value, h2.value) < triangleTolerance && l2.value > l1.value {
		return match("Ascending Triangle", minIndex(h1, l1), maxIndex(h2, l2), model.Bullish), true
	}
	if relDiff(l1.value, l2.value) < triangleTolerance && h2.value < h1.value {
		return match("Descending Triangle", minIndex(h1, l1), maxIndex(h2, l2), model.Bearish), true
	}
	return model.PatternMatch{}, false
}

func relDiff(a, b float64) float64 {
	if a == 0 {
		return math.Inf(1)
	}
	return math.Abs(a-b) / math.Abs(a)
}

func minIndex(a, b extremum) int {
	if a.index < b.index {
		return a.index
	}
	return b.index
}

func maxIndex(a, b extremum) int {
	if a.index > b.index {
		return a.index
	}
	return b.index
}
