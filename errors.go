package bandchart

import "errors"

var (
	// ErrDataLoad is returned when the baseline or forecast cannot be loaded. No chart is
	// produced after this error.
	ErrDataLoad = errors.New("unable to load chart data")

	// ErrRender is returned when a chart stage receives empty or structurally invalid
	// input. No partial figure is returned alongside it.
	ErrRender = errors.New("unable to render chart")
)
