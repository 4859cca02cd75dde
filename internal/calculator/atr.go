package calculator

import "math"

// ATRSeries computes the average true range: a rolling mean of the true
// range over period bars. True range is the largest of high-low,
// |high-prevClose| and |low-prevClose|; the first bar uses high-low.
func ATRSeries(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if period <= 0 || n < period || len(highs) != n || len(lows) != n {
		return out
	}

	tr := make([]float64, n)
	for i := 0; i < n; i++ {
		hl := highs[i] - lows[i]
		if i == 0 {
			tr[i] = hl
			continue
		}
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	sum := 0.0
	for i, v := range tr {
		sum += v
		if i >= period {
			sum -= tr[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}
