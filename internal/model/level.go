package model

// LevelKind distinguishes support from resistance.
type LevelKind string

const (
	LevelSupport    LevelKind = "support"
	LevelResistance LevelKind = "resistance"
)

// Level is a detected horizontal price level. Levels are produced fresh on
// each detection call and carry no identity across calls.
type Level struct {
	Price float64
	Kind  LevelKind
}

// LevelSet groups the detected levels, each list ordered by price ascending.
type LevelSet struct {
	Support    []Level
	Resistance []Level
}
