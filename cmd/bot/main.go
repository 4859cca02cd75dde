package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"GoldSentinel/internal/analyzer"
	"GoldSentinel/internal/collector"
	"GoldSentinel/internal/config"
	"GoldSentinel/internal/notifier"
	"GoldSentinel/internal/scheduler"
	"GoldSentinel/internal/store"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("GoldSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Provider == "mock" {
		fetcher = &collector.MockFetcher{Price: 2400}
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Infof("data source: %s (%s %s)", fetcher.Name(), cfg.DataSource.Symbol, cfg.DataSource.Interval)

	// Init bar cache
	var barStore store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Warnf("init sqlite bar cache failed, using noop: %v", err)
			barStore = store.NewNoopStore()
		} else {
			barStore = ss
			defer ss.Close()
		}
	} else {
		barStore = store.NewNoopStore()
	}

	// Init collector and analyzer
	col := collector.NewCollector(fetcher, barStore,
		cfg.DataSource.Symbol, cfg.DataSource.Interval, cfg.DataSource.Bars)
	an := analyzer.New(cfg.Analysis)
	log.Infof("indicator engine: %s, s/r strategy: %s", cfg.Analysis.Engine, cfg.Analysis.SRStrategy)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	fm := &notifier.Formatter{Cfg: cfg.Analysis, Symbol: cfg.DataSource.Symbol}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, an, tn, fm, cfg.Alert)
	if err := sched.Register(cfg.Schedule.AnalysisCron); err != nil {
		log.Fatalf("register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info("telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, executing analysis now")
		go sched.RunNow()
	}

	log.Info("GoldSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()
	log.Info("GoldSentinel stopped")
}
