// Package pattern detects candlestick and multi-bar chart patterns.
package pattern

import "GoldSentinel/internal/model"

// Detector finds patterns over the trailing lookback bars of a series.
// The implementation is chosen at construction; Detect is pure and safe for
// concurrent use. Absence of a pattern yields no entry.
type Detector interface {
	Detect(series model.Series, lookback int) []model.PatternMatch
}

// NewDetector returns the rule-based detector. Candlestick rules run over
// every bar in the lookback; chart rules run over swing-point extrema of the
// lookback section.
func NewDetector() Detector {
	return &ruleDetector{}
}

type ruleDetector struct{}

func (d *ruleDetector) Detect(series model.Series, lookback int) []model.PatternMatch {
	if series.Empty() || lookback <= 0 {
		return nil
	}
	matches := detectCandlesticks(series, lookback)
	matches = append(matches, detectChartPatterns(series, lookback)...)
	return matches
}
