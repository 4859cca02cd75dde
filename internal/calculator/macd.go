package calculator

// MACDSeries computes the MACD line (fast EMA minus slow EMA), its signal
// line (EMA of the MACD line), and the histogram (MACD minus signal).
func MACDSeries(closes []float64, fast, slow, signal int) (macd, signalLine, hist []float64) {
	n := len(closes)
	macd = nanSlice(n)
	hist = nanSlice(n)
	if n == 0 || fast <= 0 || slow <= 0 || signal <= 0 {
		return macd, nanSlice(n), hist
	}

	fastEMA := EMASeries(closes, fast)
	slowEMA := EMASeries(closes, slow)
	for i := 0; i < n; i++ {
		macd[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine = EMASeries(macd, signal)
	for i := 0; i < n; i++ {
		hist[i] = macd[i] - signalLine[i]
	}
	return macd, signalLine, hist
}
