// Package strategy aggregates indicator, level, and pattern evidence into a
// weighted trading recommendation.
package strategy

import (
	"GoldSentinel/internal/config"
	"GoldSentinel/internal/model"
)

// Rule weights. Crossovers outweigh threshold touches because a crossing is
// a stronger confirmation than a level touch.
const (
	weightRSI       = 1.0
	weightMACross   = 1.5
	weightMACDCross = 1.0
	weightBBTouch   = 0.5
	weightStochZone = 0.5
	weightPattern   = 1.0
	weightLevel     = 0.5
)

// Aggregator scores the most recent bar (and its predecessor, for crossover
// detection) against the computed indicators, levels, and patterns.
type Aggregator struct {
	cfg config.Analysis
}

func NewAggregator(cfg config.Analysis) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate evaluates every rule in fixed order (RSI, MA crossover, MACD
// crossover, Bollinger proximity, stochastic zone, patterns, levels) and
// sums the contributing weights per direction. Undefined indicator values
// and empty inputs contribute nothing; an empty series yields a Neutral
// summary with zero strengths.
func (a *Aggregator) Aggregate(series model.Series, ind *model.IndicatorSet, lv model.LevelSet, patterns []model.PatternMatch) *model.SignalSummary {
	summary := &model.SignalSummary{Recommendation: model.RecNeutral}
	if series.Empty() || ind == nil {
		return summary
	}

	i := series.Len() - 1
	price := series[i].Close

	var signals []model.Signal
	signals = append(signals, a.ruleRSI(ind, i)...)
	signals = append(signals, a.ruleMACross(ind, i)...)
	signals = append(signals, a.ruleMACDCross(ind, i)...)
	signals = append(signals, a.ruleBollinger(ind, i, price)...)
	signals = append(signals, a.ruleStochastic(ind, i)...)
	signals = append(signals, a.rulePatterns(patterns)...)
	signals = append(signals, a.ruleLevels(lv, price)...)

	for _, s := range signals {
		switch s.Direction {
		case model.DirectionBuy:
			summary.BuyStrength += s.Weight
		case model.DirectionSell:
			summary.SellStrength += s.Weight
		}
	}
	summary.Signals = signals
	summary.Recommendation = classify(summary.BuyStrength, summary.SellStrength)
	return summary
}

// classify maps the aggregate strengths to a five-level recommendation. A
// strong call needs a margin over the opposing side and an absolute strength
// of at least 2.
func classify(buy, sell float64) model.Recommendation {
	switch {
	case buy > sell && buy >= 2:
		return model.StrongBuy
	case buy > sell:
		return model.RecBuy
	case sell > buy && sell >= 2:
		return model.StrongSell
	case sell > buy:
		return model.RecSell
	default:
		return model.RecNeutral
	}
}
