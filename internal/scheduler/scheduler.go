// Package scheduler runs the periodic analysis cycle and serves bot
// commands from the latest published result.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"GoldSentinel/internal/analyzer"
	"GoldSentinel/internal/collector"
	"GoldSentinel/internal/config"
	"GoldSentinel/internal/model"
	"GoldSentinel/internal/notifier"
)

// Scheduler ties the collector, analyzer, and notifier together on a cron
// cadence.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Analyzer  *analyzer.Analyzer
	Results   *analyzer.Store
	Notifier  notifier.Notifier
	Formatter *notifier.Formatter
	Alert     config.Alert
	Ctx       context.Context

	mu        sync.Mutex
	lastPrice float64
	lastRec   model.Recommendation
	alertSent bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, an *analyzer.Analyzer, tn notifier.Notifier, fm *notifier.Formatter, alert config.Alert) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Analyzer:  an,
		Results:   &analyzer.Store{},
		Notifier:  tn,
		Formatter: fm,
		Alert:     alert,
		Ctx:       ctx,
	}
}

// Register registers the analysis task.
func (s *Scheduler) Register(analysisCron string) error {
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info("scheduler stopped")
}

// RunNow executes the analysis task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.analysisTask()
}

func (s *Scheduler) analysisTask() {
	log.Info("running analysis cycle")

	series, price, err := s.Collector.Collect()
	if err != nil {
		log.Errorf("collect: %v", err)
		return
	}

	res, err := s.Analyzer.Analyze(s.Ctx, series)
	if err != nil {
		log.Errorf("analyze: %v", err)
		return
	}

	s.Results.Publish(res)
	s.mu.Lock()
	s.lastPrice = price
	s.mu.Unlock()

	log.Infof("analysis done: %s (buy %.1f / sell %.1f, %d signals, %d patterns)",
		res.Summary.Recommendation, res.Summary.BuyStrength, res.Summary.SellStrength,
		len(res.Summary.Signals), len(res.Patterns))

	s.maybeAlert(res, price)
}

// maybeAlert pushes a report when the recommendation changes or when a
// non-neutral recommendation reaches the strength threshold. The sent flag
// suppresses repeats of the same state until it changes again.
func (s *Scheduler) maybeAlert(res *analyzer.Result, price float64) {
	if !s.Alert.Enabled {
		return
	}
	sum := res.Summary

	s.mu.Lock()
	changed := sum.Recommendation != s.lastRec
	if changed {
		s.lastRec = sum.Recommendation
		s.alertSent = false
	}
	strong := sum.Recommendation != model.RecNeutral &&
		(sum.BuyStrength >= s.Alert.StrengthThreshold || sum.SellStrength >= s.Alert.StrengthThreshold)
	shouldSend := (changed || strong) && !s.alertSent && sum.Recommendation != model.RecNeutral
	if shouldSend {
		s.alertSent = true
	}
	s.mu.Unlock()

	if !shouldSend {
		return
	}
	report := s.Formatter.FormatSignalReport(res, s.Analyzer.NearestLevels(res), price)
	s.trySend(report)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/signal", "/analyze":
		s.analysisTask()
		res := s.Results.Latest()
		if res == nil {
			return "❌ Analysis unavailable, try again later."
		}
		return s.Formatter.FormatSignalReport(res, s.Analyzer.NearestLevels(res), s.currentPrice(res))
	case "/levels":
		res := s.Results.Latest()
		if res == nil {
			return "No analysis yet, run /signal first."
		}
		return s.Formatter.FormatLevels(s.Analyzer.NearestLevels(res), s.currentPrice(res))
	case "/patterns":
		res := s.Results.Latest()
		if res == nil {
			return "No analysis yet, run /signal first."
		}
		return s.Formatter.FormatPatterns(res.Patterns)
	case "/price":
		price, err := s.Collector.Fetcher.FetchCurrentPrice(s.Collector.Symbol)
		if err != nil {
			return fmt.Sprintf("❌ fetch price: %v", err)
		}
		return s.Formatter.FormatPrice(price)
	case "/help", "/start":
		return s.Formatter.FormatHelp()
	default:
		return s.Formatter.FormatHelp()
	}
}

func (s *Scheduler) currentPrice(res *analyzer.Result) float64 {
	s.mu.Lock()
	price := s.lastPrice
	s.mu.Unlock()
	if price > 0 {
		return price
	}
	if bar, ok := res.Series.Last(); ok {
		return bar.Close
	}
	return 0
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Errorf("send notification: %v", err)
	}
}
