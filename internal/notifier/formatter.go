package notifier

import (
	"fmt"
	"strings"
	"time"

	"GoldSentinel/internal/analyzer"
	"GoldSentinel/internal/calculator"
	"GoldSentinel/internal/config"
	"GoldSentinel/internal/model"
)

// Formatter renders analysis results into Telegram HTML messages.
type Formatter struct {
	Cfg    config.Analysis
	Symbol string
}

func recommendationEmoji(rec model.Recommendation) string {
	switch rec {
	case model.StrongBuy:
		return "🟢🟢"
	case model.RecBuy:
		return "🟢"
	case model.StrongSell:
		return "🔴🔴"
	case model.RecSell:
		return "🔴"
	default:
		return "⚪"
	}
}

// FormatSignalReport renders the full analysis summary: recommendation,
// weighted strengths, every contributing signal, an indicator snapshot,
// and the nearest levels.
func (f *Formatter) FormatSignalReport(res *analyzer.Result, nearest model.LevelSet, price float64) string {
	var b strings.Builder
	sum := res.Summary

	b.WriteString(fmt.Sprintf("📊 <b>%s Signal</b> | %s\n\n", f.Symbol, res.At.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Price: %.2f\n", price))
	b.WriteString(fmt.Sprintf("%s <b>%s</b> (buy %.1f / sell %.1f)\n\n",
		recommendationEmoji(sum.Recommendation), sum.Recommendation, sum.BuyStrength, sum.SellStrength))

	if len(sum.Signals) > 0 {
		b.WriteString("📈 <b>Signals:</b>\n")
		for _, s := range sum.Signals {
			arrow := "▲"
			if s.Direction == model.DirectionSell {
				arrow = "▼"
			}
			b.WriteString(fmt.Sprintf("  %s %s (%.1f)\n", arrow, s.Reason, s.Weight))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No active signals.\n\n")
	}

	b.WriteString(f.formatIndicatorSnapshot(res.Indicators))
	b.WriteString(f.formatLevelLines(nearest, price))
	return b.String()
}

func (f *Formatter) formatIndicatorSnapshot(ind *model.IndicatorSet) string {
	var b strings.Builder
	b.WriteString("🔍 <b>Indicators:</b>\n")

	if v, ok := ind.Last(calculator.RSIName(f.Cfg.RSIPeriod)); ok {
		b.WriteString(fmt.Sprintf("  RSI(%d): %.1f\n", f.Cfg.RSIPeriod, v))
	}
	if macd, ok := ind.Last(calculator.ColMACD); ok {
		if sig, ok2 := ind.Last(calculator.ColMACDSignal); ok2 {
			b.WriteString(fmt.Sprintf("  MACD: %.2f / signal %.2f\n", macd, sig))
		}
	}
	if k, ok := ind.Last(calculator.ColStochK); ok {
		if d, ok2 := ind.Last(calculator.ColStochD); ok2 {
			b.WriteString(fmt.Sprintf("  Stoch: K %.1f / D %.1f\n", k, d))
		}
	}
	for _, p := range f.Cfg.SMAPeriods {
		if v, ok := ind.Last(calculator.SMAName(p)); ok {
			b.WriteString(fmt.Sprintf("  SMA%d: %.2f\n", p, v))
		}
	}
	if v, ok := ind.Last(calculator.ATRName(f.Cfg.ATRPeriod)); ok {
		b.WriteString(fmt.Sprintf("  ATR(%d): %.2f\n", f.Cfg.ATRPeriod, v))
	}
	b.WriteString("\n")
	return b.String()
}

func (f *Formatter) formatLevelLines(lv model.LevelSet, price float64) string {
	var b strings.Builder
	if len(lv.Resistance) > 0 {
		b.WriteString("Resistance:")
		for _, l := range lv.Resistance {
			b.WriteString(fmt.Sprintf(" %.2f", l.Price))
		}
		b.WriteString("\n")
	}
	if len(lv.Support) > 0 {
		b.WriteString("Support:")
		for _, l := range lv.Support {
			b.WriteString(fmt.Sprintf(" %.2f", l.Price))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatLevels renders the nearest support and resistance levels.
func (f *Formatter) FormatLevels(lv model.LevelSet, price float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📐 <b>%s Levels</b> | price %.2f\n\n", f.Symbol, price))
	if len(lv.Support) == 0 && len(lv.Resistance) == 0 {
		b.WriteString("No levels detected.\n")
		return b.String()
	}
	for _, l := range lv.Resistance {
		b.WriteString(fmt.Sprintf("  🔺 %.2f (%+.2f%%)\n", l.Price, (l.Price-price)/price*100))
	}
	for _, l := range lv.Support {
		b.WriteString(fmt.Sprintf("  🔻 %.2f (%+.2f%%)\n", l.Price, (l.Price-price)/price*100))
	}
	return b.String()
}

// FormatPatterns renders detected candlestick and chart patterns.
func (f *Formatter) FormatPatterns(patterns []model.PatternMatch) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🕯 <b>%s Patterns</b>\n\n", f.Symbol))
	if len(patterns) == 0 {
		b.WriteString("No patterns in the recent window.\n")
		return b.String()
	}
	for _, p := range patterns {
		tag := "•"
		switch {
		case p.Polarity > 0:
			tag = "🟢"
		case p.Polarity < 0:
			tag = "🔴"
		}
		b.WriteString(fmt.Sprintf("  %s %s (bars %d-%d)\n", tag, p.Name, p.Start, p.End))
	}
	return b.String()
}

// FormatPrice renders a one-line quote.
func (f *Formatter) FormatPrice(price float64) string {
	return fmt.Sprintf("💰 <b>%s</b>: %.2f | %s", f.Symbol, price, time.Now().Format("15:04:05"))
}

// FormatHelp lists the available bot commands.
func (f *Formatter) FormatHelp() string {
	return strings.Join([]string{
		"<b>GoldSentinel commands:</b>",
		"/signal - latest analysis summary",
		"/levels - nearest support and resistance",
		"/patterns - recent candlestick and chart patterns",
		"/price - current price",
		"/help - this message",
	}, "\n")
}
