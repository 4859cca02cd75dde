package strategy

import (
	"fmt"

	"GoldSentinel/internal/calculator"
	"GoldSentinel/internal/model"
)

func buy(weight float64, reason string) model.Signal {
	return model.Signal{Direction: model.DirectionBuy, Weight: weight, Reason: reason}
}

func sell(weight float64, reason string) model.Signal {
	return model.Signal{Direction: model.DirectionSell, Weight: weight, Reason: reason}
}

func (a *Aggregator) ruleRSI(ind *model.IndicatorSet, i int) []model.Signal {
	v, ok := ind.Value(calculator.RSIName(a.cfg.RSIPeriod), i)
	if !ok {
		return nil
	}
	if v < a.cfg.RSIOversold {
		return []model.Signal{buy(weightRSI, fmt.Sprintf("RSI oversold (%.1f)", v))}
	}
	if v > a.cfg.RSIOverbought {
		return []model.Signal{sell(weightRSI, fmt.Sprintf("RSI overbought (%.1f)", v))}
	}
	return nil
}

// ruleMACross is edge-triggered: it contributes only on the bar where the
// fast SMA crosses the slow SMA, not on every bar the ordering holds.
func (a *Aggregator) ruleMACross(ind *model.IndicatorSet, i int) []model.Signal {
	fastP := a.cfg.SMAPeriods[0]
	slowP := fastP
	if len(a.cfg.SMAPeriods) > 1 {
		slowP = a.cfg.SMAPeriods[1]
	}
	fast, ok1 := ind.Value(calculator.SMAName(fastP), i)
	slow, ok2 := ind.Value(calculator.SMAName(slowP), i)
	prevFast, ok3 := ind.Value(calculator.SMAName(fastP), i-1)
	prevSlow, ok4 := ind.Value(calculator.SMAName(slowP), i-1)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}
	if fast > slow && prevFast <= prevSlow {
		return []model.Signal{buy(weightMACross, fmt.Sprintf("SMA %d crossed above SMA %d", fastP, slowP))}
	}
	if fast < slow && prevFast >= prevSlow {
		return []model.Signal{sell(weightMACross, fmt.Sprintf("SMA %d crossed below SMA %d", fastP, slowP))}
	}
	return nil
}

// ruleMACDCross is edge-triggered on the MACD line crossing its signal line.
func (a *Aggregator) ruleMACDCross(ind *model.IndicatorSet, i int) []model.Signal {
	macd, ok1 := ind.Value(calculator.ColMACD, i)
	sig, ok2 := ind.Value(calculator.ColMACDSignal, i)
	prevMACD, ok3 := ind.Value(calculator.ColMACD, i-1)
	prevSig, ok4 := ind.Value(calculator.ColMACDSignal, i-1)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}
	if macd > sig && prevMACD <= prevSig {
		return []model.Signal{buy(weightMACDCross, "MACD bullish crossover")}
	}
	if macd < sig && prevMACD >= prevSig {
		return []model.Signal{sell(weightMACDCross, "MACD bearish crossover")}
	}
	return nil
}

// ruleBollinger fires when the close is within the configured percentage of
// a band. Zero-width bands (flat window) carry no information and are
// skipped.
func (a *Aggregator) ruleBollinger(ind *model.IndicatorSet, i int, price float64) []model.Signal {
	upper, ok1 := ind.Value(calculator.ColBBUpper, i)
	lower, ok2 := ind.Value(calculator.ColBBLower, i)
	if !ok1 || !ok2 || upper <= lower {
		return nil
	}
	touch := a.cfg.BBandsTouchPct
	if lower > 0 && price <= lower*(1+touch) {
		return []model.Signal{buy(weightBBTouch, fmt.Sprintf("Price near lower Bollinger band (%.2f)", lower))}
	}
	if upper > 0 && price >= upper*(1-touch) {
		return []model.Signal{sell(weightBBTouch, fmt.Sprintf("Price near upper Bollinger band (%.2f)", upper))}
	}
	return nil
}

func (a *Aggregator) ruleStochastic(ind *model.IndicatorSet, i int) []model.Signal {
	k, ok1 := ind.Value(calculator.ColStochK, i)
	d, ok2 := ind.Value(calculator.ColStochD, i)
	if !ok1 || !ok2 {
		return nil
	}
	if k < a.cfg.StochOversold && d < a.cfg.StochOversold {
		return []model.Signal{buy(weightStochZone, fmt.Sprintf("Stochastic oversold (K=%.1f, D=%.1f)", k, d))}
	}
	if k > a.cfg.StochOverbought && d > a.cfg.StochOverbought {
		return []model.Signal{sell(weightStochZone, fmt.Sprintf("Stochastic overbought (K=%.1f, D=%.1f)", k, d))}
	}
	return nil
}

func (a *Aggregator) rulePatterns(patterns []model.PatternMatch) []model.Signal {
	var out []model.Signal
	for _, p := range patterns {
		switch {
		case p.Polarity > 0:
			out = append(out, buy(weightPattern, fmt.Sprintf("Bullish pattern: %s", p.Name)))
		case p.Polarity < 0:
			out = append(out, sell(weightPattern, fmt.Sprintf("Bearish pattern: %s", p.Name)))
		}
	}
	return out
}

// ruleLevels scores proximity to each detected level: within the configured
// percentage above a support is a buy, below a resistance a sell.
func (a *Aggregator) ruleLevels(lv model.LevelSet, price float64) []model.Signal {
	prox := a.cfg.LevelProximityPct
	var out []model.Signal
	for _, l := range lv.Support {
		if l.Price > 0 && price >= l.Price && (price-l.Price)/l.Price <= prox {
			out = append(out, buy(weightLevel, fmt.Sprintf("Price near support %.2f", l.Price)))
		}
	}
	for _, l := range lv.Resistance {
		if l.Price > 0 && price <= l.Price && (l.Price-price)/l.Price <= prox {
			out = append(out, sell(weightLevel, fmt.Sprintf("Price near resistance %.2f", l.Price)))
		}
	}
	return out
}
