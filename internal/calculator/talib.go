package calculator

import (
	"math"

	talib "github.com/markcheno/go-talib"

	"GoldSentinel/internal/config"
	"GoldSentinel/internal/model"
)

// TalibEngine computes the indicator set through go-talib, the Go port of
// the TA-Lib C library. go-talib zero-fills its warmup region, so each
// column's leading lookback values are remapped to undefined.
type TalibEngine struct {
	cfg config.Analysis
}

func (e *TalibEngine) Name() string { return "talib" }

func (e *TalibEngine) Compute(series model.Series) *model.IndicatorSet {
	n := series.Len()
	set := model.NewIndicatorSet(n)
	if n == 0 {
		return set
	}

	closes := series.Closes()
	for _, p := range e.cfg.SMAPeriods {
		set.SetColumn(SMAName(p), e.column(talibSafe(closes, p, func() []float64 {
			return talib.Sma(closes, p)
		}), p-1))
	}
	for _, p := range e.cfg.EMAPeriods {
		set.SetColumn(EMAName(p), e.column(talibSafe(closes, p, func() []float64 {
			return talib.Ema(closes, p)
		}), p-1))
	}

	p := e.cfg.RSIPeriod
	set.SetColumn(RSIName(p), e.column(talibSafe(closes, p+1, func() []float64 {
		return talib.Rsi(closes, p)
	}), p))

	fast, slow, sig := e.cfg.MACDFast, e.cfg.MACDSlow, e.cfg.MACDSignal
	if n >= slow+sig {
		macd, signal, hist := talib.Macd(closes, fast, slow, sig)
		set.SetColumn(ColMACD, e.column(macd, slow-1))
		set.SetColumn(ColMACDSignal, e.column(signal, slow+sig-2))
		set.SetColumn(ColMACDHist, e.column(hist, slow+sig-2))
	} else {
		set.SetColumn(ColMACD, nanSlice(n))
		set.SetColumn(ColMACDSignal, nanSlice(n))
		set.SetColumn(ColMACDHist, nanSlice(n))
	}

	bp := e.cfg.BBandsPeriod
	if n >= bp {
		upper, middle, lower := talib.BBands(closes, bp, e.cfg.BBandsDev, e.cfg.BBandsDev, talib.SMA)
		set.SetColumn(ColBBUpper, e.column(upper, bp-1))
		set.SetColumn(ColBBMiddle, e.column(middle, bp-1))
		set.SetColumn(ColBBLower, e.column(lower, bp-1))
	} else {
		set.SetColumn(ColBBUpper, nanSlice(n))
		set.SetColumn(ColBBMiddle, nanSlice(n))
		set.SetColumn(ColBBLower, nanSlice(n))
	}

	if !hasRange(series) {
		set.SetColumn(ATRName(e.cfg.ATRPeriod), nanSlice(n))
		set.SetColumn(ColStochK, nanSlice(n))
		set.SetColumn(ColStochD, nanSlice(n))
		return set
	}

	highs := series.Highs()
	lows := series.Lows()

	ap := e.cfg.ATRPeriod
	set.SetColumn(ATRName(ap), e.column(talibSafe(closes, ap+1, func() []float64 {
		return talib.Atr(highs, lows, closes, ap)
	}), ap))

	fk, sk, sd := e.cfg.StochFastK, e.cfg.StochSlowK, e.cfg.StochSlowD
	if n >= fk+sk+sd-2 {
		k, d := talib.Stoch(highs, lows, closes, fk, sk, talib.SMA, sd, talib.SMA)
		set.SetColumn(ColStochK, e.column(k, fk+sk-2))
		set.SetColumn(ColStochD, e.column(d, fk+sk+sd-3))
	} else {
		set.SetColumn(ColStochK, nanSlice(n))
		set.SetColumn(ColStochD, nanSlice(n))
	}

	return set
}

// column copies values and marks the leading lookback positions undefined.
func (e *TalibEngine) column(values []float64, lookback int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if lookback > len(out) {
		lookback = len(out)
	}
	for i := 0; i < lookback; i++ {
		out[i] = math.NaN()
	}
	return out
}

// talibSafe runs compute only when the input is long enough for the
// indicator's minimum history, returning an all-NaN column otherwise.
func talibSafe(input []float64, minLen int, compute func() []float64) []float64 {
	if len(input) < minLen {
		return nanSlice(len(input))
	}
	return compute()
}
