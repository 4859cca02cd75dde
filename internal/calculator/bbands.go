package calculator

import "github.com/montanaflynn/stats"

// BollingerSeries computes Bollinger Bands: the middle band is SMA(period),
// the upper and lower bands sit dev population standard deviations away.
// Indices with fewer than period closes are NaN on all three bands.
func BollingerSeries(closes []float64, period int, dev float64) (upper, middle, lower []float64) {
	n := len(closes)
	upper = nanSlice(n)
	middle = nanSlice(n)
	lower = nanSlice(n)
	if period <= 0 || n < period {
		return upper, middle, lower
	}
	for i := period - 1; i < n; i++ {
		window := closes[i-period+1 : i+1]
		mean, err := stats.Mean(window)
		if err != nil {
			continue
		}
		sd, err := stats.StandardDeviation(window)
		if err != nil {
			continue
		}
		middle[i] = mean
		upper[i] = mean + dev*sd
		lower[i] = mean - dev*sd
	}
	return upper, middle, lower
}
