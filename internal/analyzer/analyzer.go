// Package analyzer orchestrates one full analysis pass over a series.
package analyzer

import (
	"context"
	"sync"
	"time"

	"GoldSentinel/internal/calculator"
	"GoldSentinel/internal/config"
	"GoldSentinel/internal/levels"
	"GoldSentinel/internal/model"
	"GoldSentinel/internal/pattern"
	"GoldSentinel/internal/strategy"
)

// Result is one complete analysis of a series. All fields are freshly
// allocated per call; nothing is shared with previous results.
type Result struct {
	Series     model.Series
	Indicators *model.IndicatorSet
	Levels     model.LevelSet
	Patterns   []model.PatternMatch
	Summary    *model.SignalSummary
	At         time.Time
}

// Analyzer runs the indicator engine, level detector, and pattern detector
// concurrently over an immutable series, then aggregates their outputs into
// a SignalSummary.
type Analyzer struct {
	engine    calculator.Engine
	levels    *levels.Detector
	patterns  pattern.Detector
	agg       *strategy.Aggregator
	lookback  int
	maxLevels int
}

// New builds an Analyzer from the analysis configuration.
func New(cfg config.Analysis) *Analyzer {
	return &Analyzer{
		engine:    calculator.NewEngine(cfg),
		levels:    levels.NewDetector(levels.Strategy(cfg.SRStrategy), cfg.SRWindow, cfg.SRThreshold),
		patterns:  pattern.NewDetector(),
		agg:       strategy.NewAggregator(cfg),
		lookback:  cfg.PatternLookback,
		maxLevels: cfg.MaxLevels,
	}
}

// Analyze runs one full pass. The three detection stages have no data
// dependency on each other and run in parallel; aggregation starts only
// after all three complete. Cancellation aborts before the summary is
// built, so a previously published Result is never affected.
func (a *Analyzer) Analyze(ctx context.Context, series model.Series) (*Result, error) {
	res := &Result{Series: series, At: time.Now()}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		res.Indicators = a.engine.Compute(series)
	}()
	go func() {
		defer wg.Done()
		res.Levels = a.levels.Detect(series)
	}()
	go func() {
		defer wg.Done()
		res.Patterns = a.patterns.Detect(series, a.lookback)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Summary = a.agg.Aggregate(series, res.Indicators, res.Levels, res.Patterns)
	return res, nil
}

// NearestLevels truncates the result's level lists to the configured number
// of levels closest to the current price, for reports and chart overlays.
func (a *Analyzer) NearestLevels(res *Result) model.LevelSet {
	bar, ok := res.Series.Last()
	if !ok {
		return res.Levels
	}
	return model.LevelSet{
		Support:    levels.Nearest(res.Levels.Support, bar.Close, a.maxLevels),
		Resistance: levels.Nearest(res.Levels.Resistance, bar.Close, a.maxLevels),
	}
}
