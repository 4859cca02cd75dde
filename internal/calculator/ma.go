package calculator

import "math"

// SMASeries computes the simple moving average of values over period for
// every index. Indices with fewer than period values of history are NaN.
func SMASeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMASeries computes the exponential moving average with smoothing factor
// 2/(period+1), seeded by the first value. Defined from index 0 onward.
func EMASeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		out[i] = ema
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
