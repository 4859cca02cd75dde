package model

import (
	"errors"
	"time"
)

// Bar represents a single OHLCV candlestick bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a time-ordered sequence of bars. Timestamps must be strictly
// increasing. The analytical packages never mutate a Series; they only derive
// new data aligned to it by index.
type Series []Bar

func (s Series) Len() int { return len(s) }

func (s Series) Empty() bool { return len(s) == 0 }

// Last returns the most recent bar, if any.
func (s Series) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Tail returns the trailing n bars (the whole series when n exceeds its
// length). The returned slice shares backing storage with s.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return Series{}
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

func (s Series) Opens() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Open
	}
	return out
}

func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High
	}
	return out
}

func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}
	return out
}

func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}

// Validate checks the series invariant: strictly increasing timestamps.
func (s Series) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Time.After(s[i-1].Time) {
			return errors.New("series timestamps must be strictly increasing")
		}
	}
	return nil
}
