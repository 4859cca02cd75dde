package calculator

import (
	"fmt"

	"GoldSentinel/internal/config"
	"GoldSentinel/internal/model"
)

// Column names for the fixed-name indicators. Period-parameterized columns
// are built with SMAName, EMAName, RSIName and ATRName.
const (
	ColMACD       = "macd"
	ColMACDSignal = "macd_signal"
	ColMACDHist   = "macd_hist"
	ColBBUpper    = "bb_upper"
	ColBBMiddle   = "bb_middle"
	ColBBLower    = "bb_lower"
	ColStochK     = "stoch_k"
	ColStochD     = "stoch_d"
)

func SMAName(period int) string { return fmt.Sprintf("sma_%d", period) }
func EMAName(period int) string { return fmt.Sprintf("ema_%d", period) }
func RSIName(period int) string { return fmt.Sprintf("rsi_%d", period) }
func ATRName(period int) string { return fmt.Sprintf("atr_%d", period) }

// Engine computes the full indicator set for a series. The implementation is
// fixed at construction; Compute is pure, never errors, and is safe for
// concurrent use. Positions without enough history stay undefined.
type Engine interface {
	Compute(series model.Series) *model.IndicatorSet
	Name() string
}

// NewEngine selects the implementation named by cfg.Engine ("builtin" or
// "talib"). Unknown names fall back to the builtin engine.
func NewEngine(cfg config.Analysis) Engine {
	if cfg.Engine == "talib" {
		return &TalibEngine{cfg: cfg}
	}
	return &BuiltinEngine{cfg: cfg}
}

// BuiltinEngine is the pure Go implementation.
type BuiltinEngine struct {
	cfg config.Analysis
}

func (e *BuiltinEngine) Name() string { return "builtin" }

func (e *BuiltinEngine) Compute(series model.Series) *model.IndicatorSet {
	set := model.NewIndicatorSet(series.Len())
	if series.Empty() {
		return set
	}

	closes := series.Closes()
	for _, p := range e.cfg.SMAPeriods {
		set.SetColumn(SMAName(p), SMASeries(closes, p))
	}
	for _, p := range e.cfg.EMAPeriods {
		set.SetColumn(EMAName(p), EMASeries(closes, p))
	}
	set.SetColumn(RSIName(e.cfg.RSIPeriod), RSISeries(closes, e.cfg.RSIPeriod))

	macd, signal, hist := MACDSeries(closes, e.cfg.MACDFast, e.cfg.MACDSlow, e.cfg.MACDSignal)
	set.SetColumn(ColMACD, macd)
	set.SetColumn(ColMACDSignal, signal)
	set.SetColumn(ColMACDHist, hist)

	upper, middle, lower := BollingerSeries(closes, e.cfg.BBandsPeriod, e.cfg.BBandsDev)
	set.SetColumn(ColBBUpper, upper)
	set.SetColumn(ColBBMiddle, middle)
	set.SetColumn(ColBBLower, lower)

	// ATR and stochastic need high/low data; a feed that only carries closes
	// leaves them undefined rather than failing the whole computation.
	if !hasRange(series) {
		n := series.Len()
		set.SetColumn(ATRName(e.cfg.ATRPeriod), nanSlice(n))
		set.SetColumn(ColStochK, nanSlice(n))
		set.SetColumn(ColStochD, nanSlice(n))
		return set
	}

	highs := series.Highs()
	lows := series.Lows()
	set.SetColumn(ATRName(e.cfg.ATRPeriod), ATRSeries(highs, lows, closes, e.cfg.ATRPeriod))

	k, d := StochSeries(highs, lows, closes, e.cfg.StochFastK, e.cfg.StochSlowK, e.cfg.StochSlowD)
	set.SetColumn(ColStochK, k)
	set.SetColumn(ColStochD, d)

	return set
}

// hasRange reports whether the series carries usable high/low data. A feed
// that fills only closes leaves both at zero on every bar.
func hasRange(series model.Series) bool {
	for _, b := range series {
		if b.High != 0 || b.Low != 0 {
			return true
		}
	}
	return false
}
