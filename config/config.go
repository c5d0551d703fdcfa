// Package config reads the bandchart runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	bandchart "github.com/aouyang1/go-bandchart"
	"github.com/caarlos0/env/v11"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Config holds every setting the CLI and server accept from the environment. Flags
// passed to the CLI override these values.
type Config struct {
	ForecastPath string `env:"BANDCHART_FORECAST_PATH" envDefault:"forecast_data.xlsx"`
	Addr         string `env:"BANDCHART_ADDR" envDefault:":8050"`
	LogLevel     string `env:"BANDCHART_LOG_LEVEL" envDefault:"info"`

	HistoryStart string `env:"BANDCHART_HISTORY_START" envDefault:"1960-01-01"`
	HistoryEnd   string `env:"BANDCHART_HISTORY_END" envDefault:"2024-01-01"`
	Seed         uint64 `env:"BANDCHART_SEED"`

	PadMonths    int `env:"BANDCHART_PAD_MONTHS" envDefault:"18"`
	WindowPoints int `env:"BANDCHART_WINDOW_POINTS" envDefault:"16"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses a Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options converts the configuration into bandchart options, keeping the defaults for
// every setting the environment cannot express.
func (c Config) Options() (*bandchart.Options, error) {
	start, err := parseDate(c.HistoryStart)
	if err != nil {
		return nil, fmt.Errorf("history start, %w", err)
	}
	end, err := parseDate(c.HistoryEnd)
	if err != nil {
		return nil, fmt.Errorf("history end, %w", err)
	}

	opt := bandchart.NewDefaultOptions()
	opt.ForecastPath = c.ForecastPath
	opt.SeriesOptions.HistoryStart = start
	opt.SeriesOptions.HistoryEnd = end
	opt.SeriesOptions.Seed = c.Seed
	opt.RangeOptions.PadMonths = c.PadMonths
	opt.RangeOptions.WindowPoints = c.WindowPoints
	return opt, nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q, %w", c.LogLevel, err)
	}
	return lvl, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q, %w", s, ErrInvalidDate)
	}
	return t, nil
}
