package bandchart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartRebuild(t *testing.T) {
	chart := NewChart(scenarioStore(t), nil)

	first, err := chart.Rebuild(context.Background(), nil)
	require.NoError(t, err)

	sel := &Selection{Points: []SelectedPoint{{CurveNumber: 0, PointIndex: 10, X: "1960-11-30", Y: 3}}}
	second, err := chart.Rebuild(context.Background(), sel)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	ranges, err := chart.Ranges()
	require.NoError(t, err)
	assert.Equal(t, ranges.Default, first.Layout.XAxis.Range.Window())
}

func TestChartRebuildConcurrent(t *testing.T) {
	chart := NewChart(scenarioStore(t), nil)
	expected, err := chart.Rebuild(context.Background(), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	figs := make([]*Figure, 8)
	errs := make([]error, 8)
	for i := range figs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			figs[i], errs[i] = chart.Rebuild(context.Background(), nil)
		}(i)
	}
	wg.Wait()

	for i := range figs {
		require.NoError(t, errs[i])
		assert.Equal(t, expected, figs[i])
	}
}

func TestChartRebuildCanceled(t *testing.T) {
	chart := NewChart(scenarioStore(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chart.Rebuild(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
