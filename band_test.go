package bandchart

import (
	"testing"
	"time"

	"github.com/aouyang1/go-bandchart/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBand(t *testing.T) {
	tbl := scenarioTable(t)
	dates := []time.Time{
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	polygonDates := []time.Time{dates[0], dates[1], dates[2], dates[2], dates[1], dates[0]}

	testData := map[string]struct {
		level     forecast.Level
		expectedY []float64
		name      string
		color     string
	}{
		"50": {
			level:     forecast.Level50,
			expectedY: []float64{2.0, 2.5, 3.0, 1.4, 1.2, 1.0},
			name:      "50% CI",
			color:     "rgba(226, 87, 78, 1)",
		},
		"75": {
			level:     forecast.Level75,
			expectedY: []float64{2.4, 3.0, 3.5, 0.8, 0.7, 0.6},
			name:      "75% CI",
			color:     "rgba(0, 0, 255, 1)",
		},
		"95": {
			level:     forecast.Level95,
			expectedY: []float64{2.9, 3.6, 4.4, 0.0, 0.1, 0.2},
			name:      "95% CI",
			color:     "rgba(0, 100, 78, 1)",
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			band, err := BuildBand(tbl, td.level)
			require.NoError(t, err)
			assert.Equal(t, td.expectedY, band.Y)
			assert.Equal(t, polygonDates, []time.Time(band.T))
			assert.Len(t, band.T, 2*tbl.Len())
			assert.Equal(t, td.name, band.Name)
			assert.Equal(t, td.color, band.FillColor)
		})
	}
}

func TestBuildBandErrors(t *testing.T) {
	_, err := BuildBand(&forecast.Table{}, forecast.Level50)
	assert.ErrorIs(t, err, ErrRender)

	_, err = BuildBand(nil, forecast.Level50)
	assert.ErrorIs(t, err, ErrRender)

	_, err = BuildBand(scenarioTable(t), forecast.Level(90))
	assert.ErrorIs(t, err, ErrRender)
	assert.ErrorIs(t, err, forecast.ErrUnknownLevel)
}

func TestBuildBandsOrderAndNesting(t *testing.T) {
	tbl := scenarioTable(t)
	bands, err := BuildBands(tbl)
	require.NoError(t, err)
	require.Len(t, bands, 3)

	assert.Equal(t, forecast.Level95, bands[0].Level)
	assert.Equal(t, forecast.Level75, bands[1].Level)
	assert.Equal(t, forecast.Level50, bands[2].Level)

	// each narrower band sits inside the wider band drawn before it
	for i := 1; i < len(bands); i++ {
		_, wideLower, wideUpper, err := bands[i-1].Edges()
		require.NoError(t, err)
		_, lower, upper, err := bands[i].Edges()
		require.NoError(t, err)
		for j := range lower {
			assert.LessOrEqual(t, wideLower[j], lower[j])
			assert.LessOrEqual(t, lower[j], upper[j])
			assert.LessOrEqual(t, upper[j], wideUpper[j])
		}
		assert.Len(t, bands[i].T, 2*tbl.Len())
	}
}

func TestBandEdges(t *testing.T) {
	band, err := BuildBand(scenarioTable(t), forecast.Level50)
	require.NoError(t, err)

	dates, lower, upper, err := band.Edges()
	require.NoError(t, err)
	assert.Equal(t, scenarioTable(t).Dates(), dates)
	assert.Equal(t, []float64{1.0, 1.2, 1.4}, lower)
	assert.Equal(t, []float64{2.0, 2.5, 3.0}, upper)

	// edges are copies of the polygon
	lower[0] = 10
	assert.Equal(t, 1.0, band.Y[5])

	_, _, _, err = Band{Name: "odd", T: band.T[:3], Y: band.Y[:3]}.Edges()
	assert.ErrorIs(t, err, ErrRender)
}
