package calculator

import "math"

// StochSeries computes the slow stochastic oscillator. Raw %K is
// 100*(close-lowestLow)/(highestHigh-lowestLow) over the fastK window,
// smoothed by an SMA of slowK bars to give %K and again by slowD bars to
// give %D. A flat window (highest == lowest) resolves to 50.
func StochSeries(highs, lows, closes []float64, fastK, slowK, slowD int) (k, d []float64) {
	n := len(closes)
	if fastK <= 0 || slowK <= 0 || slowD <= 0 || n == 0 || len(highs) != n || len(lows) != n {
		return nanSlice(n), nanSlice(n)
	}

	raw := nanSlice(n)
	for i := fastK - 1; i < n; i++ {
		hh := math.Inf(-1)
		ll := math.Inf(1)
		for j := i - fastK + 1; j <= i; j++ {
			if highs[j] > hh {
				hh = highs[j]
			}
			if lows[j] < ll {
				ll = lows[j]
			}
		}
		if hh == ll {
			raw[i] = 50
			continue
		}
		raw[i] = 100 * (closes[i] - ll) / (hh - ll)
	}

	k = smaSkipNaN(raw, slowK)
	d = smaSkipNaN(k, slowD)
	return k, d
}

// smaSkipNaN is a rolling mean that stays NaN until the window holds only
// defined values.
func smaSkipNaN(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(period)
		}
	}
	return out
}
