package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"DivergenceSentinel/internal/calculator"
	"DivergenceSentinel/internal/model"
	"DivergenceSentinel/internal/strategy"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Interval names a bar resolution produced by the fetch job.
const (
	IntervalDaily  = "daily"
	IntervalHourly = "hourly"
)

// Analysis holds the pivot analysis settings.
type Analysis struct {
	Lookback        int    `yaml:"lookback"`
	LookbackChoices []int  `yaml:"lookback_choices"`
	Policy          string `yaml:"policy"`
	Window          int    `yaml:"window"` // 0 = auto from lookback
	StateFile       string `yaml:"state_file"`
}

// Config holds all application configuration.
type Config struct {
	Data struct {
		Dir      string        `yaml:"dir"`
		BaseURL  string        `yaml:"base_url"`
		Symbols  []string      `yaml:"symbols"`
		Interval string        `yaml:"interval"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"data"`
	Analysis Analysis        `yaml:"analysis"`
	Pairs    []strategy.Pair `yaml:"pairs"`
	Schedule struct {
		FetchCron  string `yaml:"fetch_cron"`
		ReportCron string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// DefaultPairs pairs equity ETFs (risk) against high-yield credit (confirmation).
var DefaultPairs = []strategy.Pair{
	{A: "SPY", B: "HYG"},
	{A: "QQQ", B: "HYG"},
	{A: "IWM", B: "HYG"},
}

// DefaultSymbols are fetched when data.symbols is empty.
var DefaultSymbols = []string{"SPY", "HYG", "QQQ", "TLT", "GLD", "IWM", "BTC"}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

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

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		c.Data.BaseURL = v
	}
	if v := os.Getenv("DATA_INTERVAL"); v != "" {
		c.Data.Interval = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("LOOKBACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Analysis.Lookback = n
		} else {
			log.Printf("[WARN] ignoring LOOKBACK=%q: %v", v, err)
		}
	}
	if v := os.Getenv("PIVOT_POLICY"); v != "" {
		c.Analysis.Policy = v
	}
	if v := os.Getenv("PIVOT_WINDOW"); v != "" {
		if n, err := ParseWindow(v); err == nil {
			c.Analysis.Window = n
		} else {
			log.Printf("[WARN] ignoring PIVOT_WINDOW=%q: %v", v, err)
		}
	}
	if v := os.Getenv("SETTINGS_FILE"); v != "" {
		c.Analysis.StateFile = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("CRON_FETCH"); v != "" {
		c.Schedule.FetchCron = v
	}
	if v := os.Getenv("CRON_REPORT"); v != "" {
		c.Schedule.ReportCron = v
	}
}

func (c *Config) applyDefaults() {
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if len(c.Data.Symbols) == 0 {
		c.Data.Symbols = slices.Clone(DefaultSymbols)
	}
	if c.Data.Interval == "" {
		c.Data.Interval = IntervalDaily
	}
	if c.Data.CacheTTL == 0 {
		c.Data.CacheTTL = 5 * time.Minute
	}
	if len(c.Analysis.LookbackChoices) == 0 {
		c.Analysis.LookbackChoices = []int{20, 50, 100}
	}
	if c.Analysis.Lookback == 0 {
		c.Analysis.Lookback = 50
	}
	if c.Analysis.Policy == "" {
		c.Analysis.Policy = string(model.PolicyRecent)
	}
	if len(c.Pairs) == 0 {
		c.Pairs = slices.Clone(DefaultPairs)
	}
	// Weekdays after the US close, matching the fetch job's daily bars.
	if c.Schedule.FetchCron == "" {
		c.Schedule.FetchCron = "0 30 22 * * 1-5"
	}
	if c.Schedule.ReportCron == "" {
		c.Schedule.ReportCron = "0 0 23 * * 1-5"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// Validate checks that the analysis settings and pairs are usable.
func (c *Config) Validate() error {
	if _, err := c.Analysis.Snapshot(); err != nil {
		return err
	}
	if len(c.Pairs) == 0 {
		return errors.New("at least one pair is required")
	}
	for i, p := range c.Pairs {
		if p.A == "" || p.B == "" {
			return fmt.Errorf("pairs[%d]: both a and b are required", i)
		}
	}
	if c.Data.Interval != IntervalDaily && c.Data.Interval != IntervalHourly {
		return fmt.Errorf("data.interval must be %q or %q", IntervalDaily, IntervalHourly)
	}
	return nil
}

// Snapshot validates the settings and returns them as an immutable value.
func (a Analysis) Snapshot() (model.AnalysisConfig, error) {
	if !slices.Contains(a.LookbackChoices, a.Lookback) {
		return model.AnalysisConfig{}, fmt.Errorf("analysis.lookback %d not in %v", a.Lookback, a.LookbackChoices)
	}
	policy, err := calculator.ParsePolicy(a.Policy)
	if err != nil {
		return model.AnalysisConfig{}, fmt.Errorf("analysis.policy: %w", err)
	}
	if a.Window < 0 {
		return model.AnalysisConfig{}, errors.New("analysis.window must be >= 0")
	}
	return model.AnalysisConfig{Lookback: a.Lookback, Policy: policy, Window: a.Window}, nil
}

// ParseWindow accepts "auto" (0) or a non-negative integer.
func ParseWindow(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "auto" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("window must be \"auto\" or an integer: %w", err)
	}
	if n < 0 {
		return 0, errors.New("window must be >= 0")
	}
	return n, nil
}

// Symbols returns the configured symbols plus every symbol named by a pair.
func (c *Config) Symbols() []string {
	out := slices.Clone(c.Data.Symbols)
	for _, p := range c.Pairs {
		for _, s := range []string{p.A, p.B} {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}
