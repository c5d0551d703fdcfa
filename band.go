package bandchart

import (
	"fmt"

	"github.com/aouyang1/go-bandchart/forecast"
	"github.com/aouyang1/go-bandchart/timedataset"
	"gonum.org/v1/gonum/floats"
)

var bandFillColors = map[forecast.Level]string{
	forecast.Level50: "rgba(226, 87, 78, 1)",
	forecast.Level75: "rgba(0, 0, 255, 1)",
	forecast.Level95: "rgba(0, 100, 78, 1)",
}

// Band is a closed polygon for one confidence level. T holds the forecast dates forward
// then backward, Y holds the upper bounds forward then the lower bounds backward, so the
// fill is bounded by the two curves rather than by the axis.
type Band struct {
	Level     forecast.Level        `json:"level"`
	Name      string                `json:"name"`
	FillColor string                `json:"fill_color"`
	T         timedataset.TimeSlice `json:"t"`
	Y         []float64             `json:"y"`
}

// BuildBand converts the forecast bounds at a confidence level into a polygon.
func BuildBand(table *forecast.Table, level forecast.Level) (Band, error) {
	if table.Len() == 0 {
		return Band{}, fmt.Errorf("%w, %w", ErrRender, forecast.ErrEmptyTable)
	}
	lower, upper, err := table.Bounds(level)
	if err != nil {
		return Band{}, fmt.Errorf("%w, %w", ErrRender, err)
	}

	dates := table.Dates()
	t := make(timedataset.TimeSlice, 0, 2*len(dates))
	t = append(t, dates...)
	t = append(t, dates.Reversed()...)

	floats.Reverse(lower)
	y := make([]float64, 0, 2*len(upper))
	y = append(y, upper...)
	y = append(y, lower...)

	return Band{
		Level:     level,
		Name:      level.Label(),
		FillColor: bandFillColors[level],
		T:         t,
		Y:         y,
	}, nil
}

// BuildBands returns one band per confidence level ordered widest first so narrower
// bands are drawn on top.
func BuildBands(table *forecast.Table) ([]Band, error) {
	bands := make([]Band, 0, len(forecast.LevelsWidestFirst))
	for _, level := range forecast.LevelsWidestFirst {
		band, err := BuildBand(table, level)
		if err != nil {
			return nil, err
		}
		bands = append(bands, band)
	}
	return bands, nil
}

// Edges splits the polygon back into forward dates with their lower and upper bounds.
func (b Band) Edges() (timedataset.TimeSlice, []float64, []float64, error) {
	if len(b.T) == 0 || len(b.T) != len(b.Y) || len(b.T)%2 != 0 {
		return nil, nil, nil, fmt.Errorf("%s has %d dates and %d values, %w", b.Name, len(b.T), len(b.Y), ErrRender)
	}
	n := len(b.T) / 2
	upper := make([]float64, n)
	lower := make([]float64, n)
	copy(upper, b.Y[:n])
	copy(lower, b.Y[n:])
	floats.Reverse(lower)
	return b.T[:n], lower, upper, nil
}
