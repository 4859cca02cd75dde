package pattern

import (
	"math"

	"GoldSentinel/internal/model"
)

// Candle geometry: body is |close-open|, the upper shadow runs from the body
// top to the high, the lower shadow from the low to the body bottom.
type candle struct {
	open, high, low, close float64
	body                   float64
	upper, lower           float64
}

func newCandle(b model.Bar) candle {
	top := math.Max(b.Open, b.Close)
	bottom := math.Min(b.Open, b.Close)
	return candle{
		open:  b.Open,
		high:  b.High,
		low:   b.Low,
		close: b.Close,
		body:  math.Abs(b.Close - b.Open),
		upper: b.High - top,
		lower: bottom - b.Low,
	}
}

func (c candle) bullish() bool { return c.close > c.open }
func (c candle) bearish() bool { return c.close < c.open }

func detectCandlesticks(series model.Series, lookback int) []model.PatternMatch {
	n := series.Len()
	start := n - lookback
	if start < 0 {
		start = 0
	}

	var out []model.PatternMatch
	for i := start; i < n; i++ {
		cur := newCandle(series[i])

		// Doji: tiny body relative to the full range. Zero-range bars carry
		// no shape information and are skipped.
		if series[i].High > series[i].Low && cur.body <= 0.1*(series[i].High-series[i].Low) {
			out = append(out, match("Doji", i, i, model.NeutralPolarity))
		}

		if cur.body > 0 && cur.lower >= 2*cur.body && cur.upper <= 0.5*cur.body {
			out = append(out, match("Hammer", i, i, model.Bullish))
		}
		if cur.body > 0 && cur.upper >= 2*cur.body && cur.lower <= 0.5*cur.body {
			out = append(out, match("Shooting Star", i, i, model.Bearish))
		}

		if i >= 1 {
			prev := newCandle(series[i-1])
			if cur.bullish() && prev.bearish() && cur.open <= prev.close && cur.close >= prev.open {
				out = append(out, match("Bullish Engulfing", i-1, i, model.Bullish))
			}
			if cur.bearish() && prev.bullish() && cur.open >= prev.close && cur.close <= prev.open {
				out = append(out, match("Bearish Engulfing", i-1, i, model.Bearish))
			}
		}

		if i >= 2 {
			first := newCandle(series[i-2])
			middle := newCandle(series[i-1])
			midpoint := (first.open + first.close) / 2
			smallMiddle := middle.body < 0.3*first.body

			if first.bearish() && smallMiddle && cur.bullish() && cur.close > midpoint {
				out = append(out, match("Morning Star", i-2, i, model.Bullish))
			}
			if first.bullish() && smallMiddle && cur.bearish() && cur.close < midpoint {
				out = append(out, match("Evening Star", i-2, i, model.Bearish))
			}
		}
	}
	return out
}

func match(name string, start, end, polarity int) model.PatternMatch {
	return model.PatternMatch{Name: name, Start: start, End: end, Polarity: polarity}
}
