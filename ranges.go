package bandchart

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aouyang1/go-bandchart/forecast"
	"github.com/aouyang1/go-bandchart/timedataset"
)

const (
	StepYear = "year"
	StepDay  = "day"

	StepModeBackward = "backward"

	QuickRangeAllLabel = "All"
)

// ViewWindow is a displayed span of the date axis.
type ViewWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (v ViewWindow) Valid() bool {
	return !v.Start.IsZero() && v.End.After(v.Start)
}

// Days returns the whole number of days in the window.
func (v ViewWindow) Days() int {
	return int(v.End.Sub(v.Start) / (24 * time.Hour))
}

// QuickRange is a preset button that looks back Count steps from the end of the axis.
type QuickRange struct {
	Count    int    `json:"count"`
	Label    string `json:"label"`
	Step     string `json:"step"`
	StepMode string `json:"stepmode"`
}

// SliderBounds is the draggable extent of the range slider.
type SliderBounds struct {
	Visible   bool       `json:"visible"`
	AutoRange bool       `json:"autorange"`
	Range     ViewWindow `json:"range"`
}

// Ranges groups every window the axis needs.
type Ranges struct {
	Extent  ViewWindow   `json:"extent"`
	Default ViewWindow   `json:"default"`
	Quick   []QuickRange `json:"quick"`
	Slider  SliderBounds `json:"slider"`
}

// ComputeRanges derives the full extent, the default recent window, the quick range
// buttons and the slider bounds from the baseline dates. The extent runs from the first
// baseline date to the last baseline date plus the padding months, which leaves room for
// the forecast.
func ComputeRanges(baseline *timedataset.TimeDataset, table *forecast.Table, opt *RangeOptions) (Ranges, error) {
	if opt == nil {
		opt = NewDefaultRangeOptions()
	}
	if baseline.Len() == 0 {
		return Ranges{}, fmt.Errorf("%w, %w", ErrRender, timedataset.ErrNoData)
	}
	if table.Len() == 0 {
		return Ranges{}, fmt.Errorf("%w, %w", ErrRender, forecast.ErrEmptyTable)
	}

	tSlice := timedataset.TimeSlice(baseline.T)
	extent := ViewWindow{
		Start: tSlice.StartTime(),
		End:   timedataset.AddMonths(tSlice.EndTime(), opt.PadMonths),
	}
	if !extent.Valid() {
		return Ranges{}, fmt.Errorf("%w, extent %s to %s is empty", ErrRender,
			extent.Start.Format(time.DateOnly), extent.End.Format(time.DateOnly))
	}

	lookback := min(max(opt.WindowPoints, 1), len(tSlice))
	windowStart, err := tSlice.Lookback(lookback)
	if err != nil {
		return Ranges{}, fmt.Errorf("%w, %w", ErrRender, err)
	}

	quick := make([]QuickRange, 0, len(opt.QuickRangeYears)+1)
	for _, years := range opt.QuickRangeYears {
		quick = append(quick, QuickRange{
			Count:    years,
			Label:    strconv.Itoa(years) + "y",
			Step:     StepYear,
			StepMode: StepModeBackward,
		})
	}
	quick = append(quick, QuickRange{
		Count:    extent.Days(),
		Label:    QuickRangeAllLabel,
		Step:     StepDay,
		StepMode: StepModeBackward,
	})

	return Ranges{
		Extent:  extent,
		Default: ViewWindow{Start: windowStart, End: extent.End},
		Quick:   quick,
		Slider: SliderBounds{
			Visible:   true,
			AutoRange: false,
			Range:     extent,
		},
	}, nil
}
