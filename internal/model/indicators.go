package model

import (
	"math"
	"sort"
)

// IndicatorSet holds named per-bar indicator columns aligned by index with
// the series they were computed from. Positions with insufficient history
// (or a missing input column) are stored as NaN and reported as undefined by
// the accessors.
type IndicatorSet struct {
	length int
	cols   map[string][]float64
}

// NewIndicatorSet creates an empty indicator set for a series of the given
// length.
func NewIndicatorSet(length int) *IndicatorSet {
	return &IndicatorSet{
		length: length,
		cols:   make(map[string][]float64),
	}
}

// Len returns the series length every column is aligned to.
func (s *IndicatorSet) Len() int { return s.length }

// SetColumn stores a column. Columns whose length does not match the set are
// ignored; misaligned data would break the by-index contract.
func (s *IndicatorSet) SetColumn(name string, values []float64) {
	if len(values) != s.length {
		return
	}
	s.cols[name] = values
}

// Column returns the raw column (NaN marks undefined positions).
func (s *IndicatorSet) Column(name string) ([]float64, bool) {
	col, ok := s.cols[name]
	return col, ok
}

// Value returns the indicator value at index i. ok is false when the column
// is absent, the index is out of range, or the position is undefined.
func (s *IndicatorSet) Value(name string, i int) (float64, bool) {
	col, ok := s.cols[name]
	if !ok || i < 0 || i >= len(col) {
		return 0, false
	}
	v := col[i]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Last returns the indicator value at the final index.
func (s *IndicatorSet) Last(name string) (float64, bool) {
	return s.Value(name, s.length-1)
}

// Names returns the stored column names in sorted order.
func (s *IndicatorSet) Names() []string {
	names := make([]string, 0, len(s.cols))
	for name := range s.cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
