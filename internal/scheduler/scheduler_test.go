package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"GoldSentinel/internal/analyzer"
	"GoldSentinel/internal/collector"
	"GoldSentinel/internal/config"
	"GoldSentinel/internal/model"
	"GoldSentinel/internal/notifier"
	"GoldSentinel/internal/store"
)

type stubNotifier struct {
	sent []string
}

func (s *stubNotifier) Send(text string) error {
	s.sent = append(s.sent, text)
	return nil
}

func (s *stubNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	return s.Send(text)
}

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
		MaxLevels:         3,
	}
}

func newTestScheduler(t *testing.T, alert config.Alert) (*Scheduler, *stubNotifier) {
	t.Helper()
	cfg := testCfg()
	col := collector.NewCollector(&collector.MockFetcher{Price: 2400}, store.NewNoopStore(), "XAUUSD", "1h", 60)
	an := analyzer.New(cfg)
	sn := &stubNotifier{}
	fm := &notifier.Formatter{Cfg: cfg, Symbol: "XAUUSD"}
	return NewScheduler(context.Background(), col, an, sn, fm, alert), sn
}

func buyResult(buy float64) *analyzer.Result {
	return &analyzer.Result{
		Indicators: model.NewIndicatorSet(0),
		Summary: &model.SignalSummary{
			BuyStrength:    buy,
			Recommendation: model.RecBuy,
		},
		At: time.Now(),
	}
}

func TestAnalysisTask_PublishesResult(t *testing.T) {
	s, _ := newTestScheduler(t, config.Alert{})

	s.RunNow()

	res := s.Results.Latest()
	if res == nil {
		t.Fatal("expected a published result")
	}
	if res.Summary == nil {
		t.Fatal("expected a summary on the published result")
	}
	if res.Series.Len() != 60 {
		t.Errorf("expected 60 bars, got %d", res.Series.Len())
	}
}

func TestMaybeAlert_OnRecommendationChange(t *testing.T) {
	s, sn := newTestScheduler(t, config.Alert{Enabled: true, StrengthThreshold: 2})

	s.maybeAlert(buyResult(1.0), 2400)
	if len(sn.sent) != 1 {
		t.Fatalf("expected 1 alert on recommendation change, got %d", len(sn.sent))
	}

	// Same recommendation below threshold: stay silent.
	s.maybeAlert(buyResult(1.0), 2400)
	if len(sn.sent) != 1 {
		t.Errorf("expected no repeat alert, got %d", len(sn.sent))
	}
}

func TestMaybeAlert_NeutralNeverAlerts(t *testing.T) {
	s, sn := newTestScheduler(t, config.Alert{Enabled: true, StrengthThreshold: 2})

	res := buyResult(0)
	res.Summary.Recommendation = model.RecNeutral
	s.maybeAlert(res, 2400)
	if len(sn.sent) != 0 {
		t.Errorf("neutral must not alert, got %d messages", len(sn.sent))
	}
}

func TestMaybeAlert_Disabled(t *testing.T) {
	s, sn := newTestScheduler(t, config.Alert{Enabled: false})

	s.maybeAlert(buyResult(5), 2400)
	if len(sn.sent) != 0 {
		t.Errorf("disabled alerts must not send, got %d messages", len(sn.sent))
	}
}

func TestHandleCommand(t *testing.T) {
	s, _ := newTestScheduler(t, config.Alert{})

	if out := s.HandleCommand("/levels"); !strings.Contains(out, "No analysis yet") {
		t.Errorf("expected the no-analysis notice, got %q", out)
	}

	out := s.HandleCommand("/signal")
	if !strings.Contains(out, "XAUUSD") {
		t.Errorf("expected a signal report, got %q", out)
	}

	if out := s.HandleCommand("/help"); !strings.Contains(out, "/signal") {
		t.Errorf("expected the command list, got %q", out)
	}
	if out := s.HandleCommand("garbage"); !strings.Contains(out, "/signal") {
		t.Errorf("unknown commands should return help, got %q", out)
	}
}
