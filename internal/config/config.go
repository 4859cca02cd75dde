package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Analysis holds every tunable of the analytical core.
type Analysis struct {
	// Engine selects the indicator implementation: "builtin" or "talib".
	Engine string `yaml:"engine"`

	SMAPeriods []int `yaml:"sma_periods"`
	EMAPeriods []int `yaml:"ema_periods"`
	RSIPeriod  int   `yaml:"rsi_period"`
	MACDFast   int   `yaml:"macd_fast"`
	MACDSlow   int   `yaml:"macd_slow"`
	MACDSignal int   `yaml:"macd_signal"`

	BBandsPeriod int     `yaml:"bbands_period"`
	BBandsDev    float64 `yaml:"bbands_dev"`
	ATRPeriod    int     `yaml:"atr_period"`

	StochFastK int `yaml:"stoch_fastk"`
	StochSlowK int `yaml:"stoch_slowk"`
	StochSlowD int `yaml:"stoch_slowd"`

	// Support/resistance detection. Strategy is "swing" or "rolling";
	// Threshold is the relative clustering distance (0.02 = 2%).
	SRWindow    int     `yaml:"sr_window"`
	SRThreshold float64 `yaml:"sr_threshold"`
	SRStrategy  string  `yaml:"sr_strategy"`

	PatternLookback int `yaml:"pattern_lookback"`

	RSIOversold     float64 `yaml:"rsi_oversold"`
	RSIOverbought   float64 `yaml:"rsi_overbought"`
	StochOversold   float64 `yaml:"stoch_oversold"`
	StochOverbought float64 `yaml:"stoch_overbought"`

	// BBandsTouchPct is how close (relative) the close must be to a band to
	// count as a touch; LevelProximityPct the same for support/resistance.
	BBandsTouchPct    float64 `yaml:"bbands_touch_pct"`
	LevelProximityPct float64 `yaml:"level_proximity_pct"`

	// MaxLevels truncates level lists to the N nearest to the current price
	// for reports. Zero keeps all.
	MaxLevels int `yaml:"max_levels"`
}

// Alert controls when the scheduler pushes unsolicited reports.
type Alert struct {
	Enabled           bool    `yaml:"enabled"`
	StrengthThreshold float64 `yaml:"strength_threshold"`
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "mock"
		Symbol   string `yaml:"symbol"`
		Interval string `yaml:"interval"`
		Bars     int    `yaml:"bars"`
	} `yaml:"data_source"`
	Schedule struct {
		AnalysisCron string `yaml:"analysis_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Alert    Alert    `yaml:"alert"`
	Analysis Analysis `yaml:"analysis"`
	Proxy    string   `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("ANALYSIS_CRON"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("ALERT_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alert.StrengthThreshold = t
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.DataSource.Symbol == "" {
		c.DataSource.Symbol = "XAUUSD"
	}
	if c.DataSource.Interval == "" {
		c.DataSource.Interval = "1h"
	}
	if c.DataSource.Bars == 0 {
		c.DataSource.Bars = 500
	}
	if c.Schedule.AnalysisCron == "" {
		c.Schedule.AnalysisCron = "0 */5 * * * *" // every 5 minutes
	}
	if c.Alert.StrengthThreshold == 0 {
		c.Alert.StrengthThreshold = 2
	}

	a := &c.Analysis
	if a.Engine == "" {
		a.Engine = "builtin"
	}
	if len(a.SMAPeriods) == 0 {
		a.SMAPeriods = []int{20, 50, 200}
	}
	if len(a.EMAPeriods) == 0 {
		a.EMAPeriods = []int{9, 21}
	}
	if a.RSIPeriod == 0 {
		a.RSIPeriod = 14
	}
	if a.MACDFast == 0 {
		a.MACDFast = 12
	}
	if a.MACDSlow == 0 {
		a.MACDSlow = 26
	}
	if a.MACDSignal == 0 {
		a.MACDSignal = 9
	}
	if a.BBandsPeriod == 0 {
		a.BBandsPeriod = 20
	}
	if a.BBandsDev == 0 {
		a.BBandsDev = 2.0
	}
	if a.ATRPeriod == 0 {
		a.ATRPeriod = 14
	}
	if a.StochFastK == 0 {
		a.StochFastK = 14
	}
	if a.StochSlowK == 0 {
		a.StochSlowK = 3
	}
	if a.StochSlowD == 0 {
		a.StochSlowD = 3
	}
	if a.SRWindow == 0 {
		a.SRWindow = 10
	}
	if a.SRThreshold == 0 {
		a.SRThreshold = 0.02
	}
	if a.SRStrategy == "" {
		a.SRStrategy = "swing"
	}
	if a.PatternLookback == 0 {
		a.PatternLookback = 20
	}
	if a.RSIOversold == 0 {
		a.RSIOversold = 30
	}
	if a.RSIOverbought == 0 {
		a.RSIOverbought = 70
	}
	if a.StochOversold == 0 {
		a.StochOversold = 20
	}
	if a.StochOverbought == 0 {
		a.StochOverbought = 80
	}
	if a.BBandsTouchPct == 0 {
		a.BBandsTouchPct = 0.01
	}
	if a.LevelProximityPct == 0 {
		a.LevelProximityPct = 0.01
	}
	if a.MaxLevels == 0 {
		a.MaxLevels = 3
	}
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	a := &c.Analysis
	if a.Engine != "builtin" && a.Engine != "talib" {
		return fmt.Errorf("analysis.engine must be builtin or talib, got %q", a.Engine)
	}
	if a.SRStrategy != "swing" && a.SRStrategy != "rolling" {
		return fmt.Errorf("analysis.sr_strategy must be swing or rolling, got %q", a.SRStrategy)
	}
	if len(a.SMAPeriods) < 2 {
		return fmt.Errorf("analysis.sma_periods needs at least fast and slow periods")
	}
	if a.MACDFast >= a.MACDSlow {
		return fmt.Errorf("analysis.macd_fast must be below macd_slow")
	}
	if a.SRThreshold <= 0 || a.SRThreshold >= 1 {
		return fmt.Errorf("analysis.sr_threshold must be in (0, 1)")
	}
	return nil
}
