package bandchart

import (
	"time"
)

const (
	DefaultForecastPath        = "forecast_data.xlsx"
	DefaultPadMonths           = 18
	DefaultWindowPoints        = 16
	DefaultNoiseMin            = -8
	DefaultNoiseMax            = 8
	DefaultAmplitude           = 5.0
	DefaultAngularStep         = 0.2
	DefaultFigureWidth         = 1200
	DefaultFigureHeight        = 800
	DefaultQuickRangeShortYrs  = 5
	DefaultQuickRangeMediumYrs = 10
)

// SeriesOptions configures the synthetic baseline. Values are generated at every month
// end inside [HistoryStart, HistoryEnd] as a damped sine of the point index plus uniform
// integer noise in [NoiseMin, NoiseMax].
type SeriesOptions struct {
	HistoryStart time.Time `json:"history_start"`
	HistoryEnd   time.Time `json:"history_end"`

	Amplitude   float64 `json:"amplitude"`
	AngularStep float64 `json:"angular_step"`
	Damping     float64 `json:"damping"`

	NoiseMin int `json:"noise_min"`
	NoiseMax int `json:"noise_max"`

	// Seed fixes the noise source. Zero draws a random seed.
	Seed uint64 `json:"seed"`
}

// NewDefaultSeriesOptions returns monthly history from 1960 through 2023.
func NewDefaultSeriesOptions() *SeriesOptions {
	return &SeriesOptions{
		HistoryStart: time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
		HistoryEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amplitude:    DefaultAmplitude,
		AngularStep:  DefaultAngularStep,
		NoiseMin:     DefaultNoiseMin,
		NoiseMax:     DefaultNoiseMax,
	}
}

// RangeOptions configures the view windows of the x axis.
type RangeOptions struct {
	// PadMonths extends the axis past the last baseline date to leave room for the forecast.
	PadMonths int `json:"pad_months"`

	// WindowPoints is the number of trailing baseline points in the default view.
	WindowPoints int `json:"window_points"`

	// QuickRangeYears are the look-back buttons in years, shown before the "All" button.
	QuickRangeYears []int `json:"quick_range_years"`
}

func NewDefaultRangeOptions() *RangeOptions {
	return &RangeOptions{
		PadMonths:       DefaultPadMonths,
		WindowPoints:    DefaultWindowPoints,
		QuickRangeYears: []int{DefaultQuickRangeShortYrs, DefaultQuickRangeMediumYrs},
	}
}

type Options struct {
	ForecastPath string `json:"forecast_path"`

	SeriesOptions *SeriesOptions `json:"series_options"`
	RangeOptions  *RangeOptions  `json:"range_options"`
}

func NewDefaultOptions() *Options {
	return &Options{
		ForecastPath:  DefaultForecastPath,
		SeriesOptions: NewDefaultSeriesOptions(),
		RangeOptions:  NewDefaultRangeOptions(),
	}
}
