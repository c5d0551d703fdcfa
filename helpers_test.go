package bandchart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aouyang1/go-bandchart/forecast"
	"github.com/aouyang1/go-bandchart/timedataset"
	"github.com/stretchr/testify/require"
)

func scenarioTable(t *testing.T) *forecast.Table {
	t.Helper()
	tbl, err := forecast.NewTable([]forecast.Row{
		{Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), LB95: 0.2, LB75: 0.6, LB50: 1.0, UB50: 2.0, UB75: 2.4, UB95: 2.9},
		{Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), LB95: 0.1, LB75: 0.7, LB50: 1.2, UB50: 2.5, UB75: 3.0, UB95: 3.6},
		{Date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), LB95: 0.0, LB75: 0.8, LB50: 1.4, UB50: 3.0, UB75: 3.5, UB95: 4.4},
	})
	require.NoError(t, err)
	return tbl
}

func seededSeriesOptions() *SeriesOptions {
	opt := NewDefaultSeriesOptions()
	opt.Seed = 42
	return opt
}

func defaultBaseline(t *testing.T) *timedataset.TimeDataset {
	t.Helper()
	baseline, err := GenerateBaseline(seededSeriesOptions())
	require.NoError(t, err)
	return baseline
}

func scenarioStore(t *testing.T) *SeriesStore {
	t.Helper()
	store, err := NewSeriesStore(defaultBaseline(t), scenarioTable(t))
	require.NoError(t, err)
	return store
}

func writeForecastWorkbook(t *testing.T, tbl *forecast.Table) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forecast_data.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, forecast.WriteXLSX(f, tbl))
	return path
}
