package model

// Pattern polarity values.
const (
	Bullish         = 1
	Bearish         = -1
	NeutralPolarity = 0
)

// PatternMatch is a detected candlestick or chart pattern. Start and End are
// series indices of the first and last bar involved; single-bar patterns have
// Start == End.
type PatternMatch struct {
	Name     string
	Start    int
	End      int
	Polarity int
}
