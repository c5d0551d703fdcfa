package bandchart

import (
	"context"
	"log/slog"
)

// SelectedPoint is one point of a selection event raised by the rendering surface.
type SelectedPoint struct {
	CurveNumber int     `json:"curveNumber"`
	PointIndex  int     `json:"pointIndex"`
	X           string  `json:"x"`
	Y           float64 `json:"y"`
}

// Selection is the optional payload of a selection event.
type Selection struct {
	Points []SelectedPoint `json:"points"`
}

// Chart rebuilds the figure from a loaded SeriesStore. It holds no mutable state and is
// safe for concurrent use.
type Chart struct {
	store *SeriesStore
	opt   *RangeOptions
}

func NewChart(store *SeriesStore, opt *RangeOptions) *Chart {
	if opt == nil {
		opt = NewDefaultRangeOptions()
	}
	return &Chart{
		store: store,
		opt:   opt,
	}
}

// Rebuild assembles a complete figure. The selection is accepted so every interaction
// can trigger a rebuild, but it does not change the resulting figure.
func (c *Chart) Rebuild(ctx context.Context, sel *Selection) (*Figure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sel != nil {
		slog.Debug("rebuilding figure for selection", "points", len(sel.Points))
	}

	baseline := c.store.Baseline()
	table := c.store.Forecast()

	bands, err := BuildBands(table)
	if err != nil {
		return nil, err
	}

	ranges, err := ComputeRanges(baseline, table, c.opt)
	if err != nil {
		return nil, err
	}

	return Assemble(baseline, bands, ranges.Default, ranges.Quick, ranges.Slider)
}

// Ranges returns the view windows of the loaded data.
func (c *Chart) Ranges() (Ranges, error) {
	return ComputeRanges(c.store.Baseline(), c.store.Forecast(), c.opt)
}
