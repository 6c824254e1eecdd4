// Package config loads runtime settings for the server and the CLI.
//
// Sources, lowest to highest priority:
//
//  1. built-in defaults
//  2. an optional YAML file; ${VAR} references inside it are expanded
//     from the environment before parsing
//  3. environment variables (PORT, DB_PATH, HABITLOOP_TZ, LOG_LEVEL,
//     STREAK_LOOKBACK, RATE_POLICY)
//
// HABITLOOP_CONFIG names the YAML file when the caller does not.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sakif/habitloop/internal/analytics"
)

// Rate policy names accepted in config.
const (
	RatePolicyCalendar   = "calendar"
	RatePolicyApplicable = "applicable"
)

// Config holds every tunable setting.
type Config struct {
	Port      int       `yaml:"port"`
	DBPath    string    `yaml:"db_path"`
	Timezone  string    `yaml:"timezone"` // IANA name; "" or "Local" means the host zone
	LogLevel  string    `yaml:"log_level"`
	Analytics Analytics `yaml:"analytics"`
}

// Analytics tunes the analytics engine.
type Analytics struct {
	StreakLookback int    `yaml:"streak_lookback"`
	RatePolicy     string `yaml:"rate_policy"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Port:     8080,
		DBPath:   "data/habitloop.db",
		Timezone: "Local",
		LogLevel: "info",
		Analytics: Analytics{
			StreakLookback: analytics.DefaultLookback,
			RatePolicy:     RatePolicyCalendar,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment read through getenv. An empty path falls back to
// $HABITLOOP_CONFIG; if that is empty too, no file is read. A named file
// that does not exist is an error.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = getenv("HABITLOOP_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path, getenv); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, getenv func(string) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: file %s does not exist", path)
		}
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	expanded := os.Expand(string(data), getenv)
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := getenv("HABITLOOP_TZ"); v != "" {
		c.Timezone = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("STREAK_LOOKBACK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid STREAK_LOOKBACK %q: %w", v, err)
		}
		c.Analytics.StreakLookback = n
	}
	if v := getenv("RATE_POLICY"); v != "" {
		c.Analytics.RatePolicy = v
	}
	return nil
}

// Validate checks ranges and names. Load calls it; callers that build a
// Config by hand should too.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, err := c.AnalyticsOptions(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. "" and "Local" mean time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return level, nil
}

// AnalyticsOptions converts the analytics section into engine options.
func (c Config) AnalyticsOptions() (analytics.Options, error) {
	if c.Analytics.StreakLookback < 1 {
		return analytics.Options{}, fmt.Errorf("config: streak_lookback must be positive, got %d", c.Analytics.StreakLookback)
	}
	opts := analytics.Options{Lookback: c.Analytics.StreakLookback}
	switch strings.ToLower(c.Analytics.RatePolicy) {
	case "", RatePolicyCalendar:
		opts.RatePolicy = analytics.RateCalendarDays
	case RatePolicyApplicable:
		opts.RatePolicy = analytics.RateApplicableDays
	default:
		return analytics.Options{}, fmt.Errorf("config: rate_policy must be %q or %q, got %q",
			RatePolicyCalendar, RatePolicyApplicable, c.Analytics.RatePolicy)
	}
	return opts, nil
}
