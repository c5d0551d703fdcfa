package bandchart

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/aouyang1/go-bandchart/forecast"
	"github.com/aouyang1/go-bandchart/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBaseline(t *testing.T) {
	baseline := defaultBaseline(t)
	require.Equal(t, 768, baseline.Len())
	assert.Equal(t, time.Date(1960, 1, 31, 0, 0, 0, 0, time.UTC), baseline.T[0])
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), baseline.T[767])

	// wave plus integer noise stays within amplitude + max noise
	for i, v := range baseline.Y {
		wave := DefaultAmplitude * math.Sin(DefaultAngularStep*float64(i))
		noise := v - wave
		assert.InDelta(t, math.Round(noise), noise, 1e-9)
		assert.LessOrEqual(t, math.Abs(noise), float64(DefaultNoiseMax)+1e-9)
	}

	again, err := GenerateBaseline(seededSeriesOptions())
	require.NoError(t, err)
	assert.Equal(t, baseline, again)
}

func TestGenerateBaselineInvalidSpan(t *testing.T) {
	opt := seededSeriesOptions()
	opt.HistoryStart, opt.HistoryEnd = opt.HistoryEnd, opt.HistoryStart
	_, err := GenerateBaseline(opt)
	assert.ErrorIs(t, err, timedataset.ErrInvalidSpan)
}

func TestNewSeriesStoreSeam(t *testing.T) {
	baseline := defaultBaseline(t)
	original := baseline.Y[767]
	tbl := scenarioTable(t)

	store, err := NewSeriesStore(baseline, tbl)
	require.NoError(t, err)

	reconciled := store.Baseline()
	assert.Equal(t, 2.0, reconciled.Y[767])
	assert.Equal(t, tbl.Rows[0].UB50, reconciled.Y[767])
	assert.Equal(t, baseline.Y[:767], reconciled.Y[:767])
	assert.Equal(t, baseline.T, reconciled.T)

	// the caller's baseline is never mutated
	assert.Equal(t, original, baseline.Y[767])

	assert.Equal(t, Seam{
		Date:     time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Replaced: original,
		Value:    2.0,
	}, store.Seam())
}

func TestSeriesStoreAccessorsAreCopies(t *testing.T) {
	store := scenarioStore(t)

	b := store.Baseline()
	b.Y[767] = 99
	assert.Equal(t, 2.0, store.Baseline().Y[767])

	f := store.Forecast()
	f.Rows[0].UB50 = 99
	assert.Equal(t, 2.0, store.Forecast().Rows[0].UB50)
}

func TestNewSeriesStoreErrors(t *testing.T) {
	testData := map[string]struct {
		baseline *timedataset.TimeDataset
		table    *forecast.Table
	}{
		"nil baseline":   {table: &forecast.Table{Rows: []forecast.Row{{}}}},
		"empty baseline": {baseline: &timedataset.TimeDataset{}, table: &forecast.Table{Rows: []forecast.Row{{}}}},
		"nil table":      {baseline: &timedataset.TimeDataset{T: []time.Time{time.Now()}, Y: []float64{1}}},
		"empty table":    {baseline: &timedataset.TimeDataset{T: []time.Time{time.Now()}, Y: []float64{1}}, table: &forecast.Table{}},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := NewSeriesStore(td.baseline, td.table)
			assert.ErrorIs(t, err, ErrDataLoad)
		})
	}
}

func TestLoadSeriesStore(t *testing.T) {
	sample, err := forecast.SampleTable(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 18, 2.0)
	require.NoError(t, err)

	opt := NewDefaultOptions()
	opt.SeriesOptions = seededSeriesOptions()
	opt.ForecastPath = writeForecastWorkbook(t, sample)

	store, err := LoadSeriesStore(opt)
	require.NoError(t, err)

	first, err := store.Forecast().First()
	require.NoError(t, err)
	assert.Equal(t, first.UB50, store.Baseline().Y[767])
	assert.Equal(t, 18, store.Forecast().Len())
}

func TestLoadSeriesStoreErrors(t *testing.T) {
	testData := map[string]struct {
		path string
		err  error
	}{
		"missing file": {
			path: filepath.Join(t.TempDir(), "missing.xlsx"),
			err:  ErrDataLoad,
		},
		"unsupported extension": {
			path: filepath.Join(t.TempDir(), "forecast.txt"),
			err:  ErrDataLoad,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt := NewDefaultOptions()
			opt.SeriesOptions = seededSeriesOptions()
			opt.ForecastPath = td.path

			store, err := LoadSeriesStore(opt)
			assert.ErrorIs(t, err, td.err)
			assert.Nil(t, store)
		})
	}
}

func TestSeriesStoreTablePrint(t *testing.T) {
	store := scenarioStore(t)

	var buf bytes.Buffer
	require.NoError(t, store.TablePrint(&buf, "", "  "))
	out := buf.String()
	assert.Contains(t, out, "Points: 768")
	assert.Contains(t, out, "Span: 1960-01-31 to 2023-12-31")
	assert.Contains(t, out, "-> 2.000")
	assert.Contains(t, out, "Forecast:")
}
