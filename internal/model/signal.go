package model

// Direction of a single trading signal.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// Signal is one weighted, explained contribution to a recommendation.
type Signal struct {
	Direction Direction
	Weight    float64
	Reason    string
}

// Recommendation is the five-level classification of the aggregated signals.
type Recommendation string

const (
	StrongBuy  Recommendation = "Strong Buy"
	RecBuy     Recommendation = "Buy"
	RecNeutral Recommendation = "Neutral"
	RecSell    Recommendation = "Sell"
	StrongSell Recommendation = "Strong Sell"
)

// SignalSummary is the final output of signal aggregation. Signals preserve
// rule evaluation order so explanations are reproducible.
type SignalSummary struct {
	BuyStrength    float64
	SellStrength   float64
	Recommendation Recommendation
	Signals        []Signal
}
