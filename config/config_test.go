package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "forecast_data.xlsx", cfg.ForecastPath)
	assert.Equal(t, ":8050", cfg.Addr)
	assert.Equal(t, uint64(0), cfg.Seed)

	opt, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), opt.SeriesOptions.HistoryStart)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), opt.SeriesOptions.HistoryEnd)
	assert.Equal(t, 18, opt.RangeOptions.PadMonths)
	assert.Equal(t, 16, opt.RangeOptions.WindowPoints)
	assert.Equal(t, []int{5, 10}, opt.RangeOptions.QuickRangeYears)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BANDCHART_FORECAST_PATH", "fan.csv")
	t.Setenv("BANDCHART_HISTORY_START", "2000-01-01")
	t.Setenv("BANDCHART_SEED", "7")
	t.Setenv("BANDCHART_PAD_MONTHS", "6")
	t.Setenv("BANDCHART_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	opt, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, "fan.csv", opt.ForecastPath)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), opt.SeriesOptions.HistoryStart)
	assert.Equal(t, uint64(7), opt.SeriesOptions.Seed)
	assert.Equal(t, 6, opt.RangeOptions.PadMonths)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("BANDCHART_PAD_MONTHS", "not-an-int")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestConfigErrors(t *testing.T) {
	testData := map[string]struct {
		cfg      Config
		optErr   bool
		levelErr bool
	}{
		"bad start": {
			cfg:    Config{HistoryStart: "01/01/1960", HistoryEnd: "2024-01-01", LogLevel: "info"},
			optErr: true,
		},
		"bad end": {
			cfg:    Config{HistoryStart: "1960-01-01", HistoryEnd: "soon", LogLevel: "info"},
			optErr: true,
		},
		"bad level": {
			cfg:      Config{HistoryStart: "1960-01-01", HistoryEnd: "2024-01-01", LogLevel: "loud"},
			levelErr: true,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := td.cfg.Options()
			if td.optErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
			} else {
				assert.NoError(t, err)
			}

			_, err = td.cfg.Level()
			if td.levelErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
