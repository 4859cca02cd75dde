package analyzer

import (
	"context"
	"testing"
	"time"

	"GoldSentinel/internal/config"
	"GoldSentinel/internal/model"
)

func testCfg() config.Analysis {
	return config.Analysis{
		Engine:            "builtin",
		SMAPeriods:        []int{3, 5},
		EMAPeriods:        []int{3},
		RSIPeriod:         5,
		MACDFast:          3,
		MACDSlow:          6,
		MACDSignal:        3,
		BBandsPeriod:      4,
		BBandsDev:         2.0,
		ATRPeriod:         3,
		StochFastK:        4,
		StochSlowK:        2,
		StochSlowD:        2,
		SRWindow:          3,
		SRThreshold:       0.02,
		SRStrategy:        "swing",
		PatternLookback:   10,
		RSIOversold:       30,
		RSIOverbought:     70,
		StochOversold:     20,
		StochOverbought:   80,
		BBandsTouchPct:    0.01,
		LevelProximityPct: 0.01,
		MaxLevels:         2,
	}
}

func makeSeries(closes []float64) model.Series {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, len(closes))
	for i, c := range closes {
		s[i] = model.Bar{
			Time: start.Add(time.Duration(i) * time.Hour),
			Open: c, High: c * 1.01, Low: c * 0.99, Close: c,
			Volume: 1000,
		}
	}
	return s
}

func TestAnalyze_EmptySeries(t *testing.T) {
	a := New(testCfg())
	res, err := a.Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary == nil || res.Summary.Recommendation != model.RecNeutral {
		t.Errorf("expected Neutral summary, got %+v", res.Summary)
	}
	if res.Indicators == nil {
		t.Error("expected non-nil indicator set")
	}
}

func TestAnalyze_FullPipeline(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7) + float64(i)*0.1
	}
	a := New(testCfg())

	res, err := a.Analyze(context.Background(), makeSeries(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Indicators.Len() != 60 {
		t.Errorf("indicator set length: expected 60, got %d", res.Indicators.Len())
	}
	if res.Summary == nil {
		t.Fatal("expected a summary")
	}
	if res.At.IsZero() {
		t.Error("expected a result timestamp")
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(testCfg())
	res, err := a.Analyze(ctx, makeSeries([]float64{100, 101, 102}))
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
	if res != nil {
		t.Error("cancelled analysis must not return a result")
	}
}

func TestNearestLevels_Truncation(t *testing.T) {
	a := New(testCfg())
	res := &Result{
		Series: makeSeries([]float64{100}),
		Levels: model.LevelSet{
			Support: []model.Level{
				{Price: 90}, {Price: 95}, {Price: 99},
			},
			Resistance: []model.Level{
				{Price: 101}, {Price: 105}, {Price: 120},
			},
		},
	}

	lv := a.NearestLevels(res)
	if len(lv.Support) != 2 || len(lv.Resistance) != 2 {
		t.Fatalf("expected 2+2 levels, got %d+%d", len(lv.Support), len(lv.Resistance))
	}
	if lv.Support[0].Price != 95 || lv.Support[1].Price != 99 {
		t.Errorf("unexpected support truncation: %+v", lv.Support)
	}
	if lv.Resistance[0].Price != 101 || lv.Resistance[1].Price != 105 {
		t.Errorf("unexpected resistance truncation: %+v", lv.Resistance)
	}
}

func TestStore_PublishLatest(t *testing.T) {
	var s Store
	if s.Latest() != nil {
		t.Error("expected nil before first publication")
	}

	r := &Result{At: time.Now()}
	s.Publish(r)
	if s.Latest() != r {
		t.Error("expected the published result")
	}

	r2 := &Result{At: time.Now()}
	s.Publish(r2)
	if s.Latest() != r2 {
		t.Error("expected the newest result")
	}
}
