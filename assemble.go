package bandchart

import (
	"fmt"

	"github.com/aouyang1/go-bandchart/timedataset"
)

const (
	FigureTitle     = "US Inflation"
	BaselineColor   = "black"
	transparentLine = "rgba(255,255,255,0)"
)

// Assemble composes the baseline trace, the confidence band overlays and the axis
// configuration into one figure. Bands must already be ordered widest first. Empty or
// inconsistent inputs return ErrRender and no figure.
func Assemble(baseline *timedataset.TimeDataset, bands []Band, window ViewWindow, quick []QuickRange, slider SliderBounds) (*Figure, error) {
	if baseline.Len() == 0 {
		return nil, fmt.Errorf("%w, %w", ErrRender, timedataset.ErrNoData)
	}
	if len(baseline.T) != len(baseline.Y) {
		return nil, fmt.Errorf("%w, %w", ErrRender, timedataset.ErrDatasetLenMismatch)
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w, no confidence bands", ErrRender)
	}
	if !window.Valid() {
		return nil, fmt.Errorf("%w, invalid view window", ErrRender)
	}
	if !slider.Range.Valid() {
		return nil, fmt.Errorf("%w, invalid slider bounds", ErrRender)
	}
	if len(quick) == 0 {
		return nil, fmt.Errorf("%w, no quick ranges", ErrRender)
	}

	y := make([]float64, len(baseline.Y))
	copy(y, baseline.Y)

	data := make([]Trace, 0, len(bands)+1)
	data = append(data, Trace{
		Type:       TraceTypeScatter,
		Mode:       ModeLinesMarkers,
		Name:       FigureTitle,
		X:          toDates(baseline.T),
		Y:          y,
		Line:       LineStyle{Color: BaselineColor},
		Marker:     &Marker{Color: BaselineColor},
		ShowLegend: true,
	})

	for i, band := range bands {
		if _, _, _, err := band.Edges(); err != nil {
			return nil, err
		}
		if i > 0 && band.Level >= bands[i-1].Level {
			return nil, fmt.Errorf("%w, %s drawn after %s is not narrower", ErrRender, band.Name, bands[i-1].Name)
		}

		bandY := make([]float64, len(band.Y))
		copy(bandY, band.Y)
		data = append(data, Trace{
			Type:       TraceTypeScatter,
			Mode:       ModeLines,
			Name:       band.Name,
			X:          toDates(band.T),
			Y:          bandY,
			Fill:       FillToSelf,
			FillColor:  band.FillColor,
			Line:       LineStyle{Color: transparentLine},
			ShowLegend: true,
		})
	}

	buttons := make([]QuickRange, len(quick))
	copy(buttons, quick)

	return &Figure{
		Data: data,
		Layout: Layout{
			Title: Title{Text: FigureTitle, X: 0.5},
			XAxis: XAxis{
				Type:          AxisTypeDate,
				Range:         NewDateRange(window),
				RangeSelector: RangeSelector{Buttons: buttons},
				RangeSlider: RangeSlider{
					Visible:   slider.Visible,
					AutoRange: slider.AutoRange,
					Range:     NewDateRange(slider.Range),
				},
			},
			Width:  DefaultFigureWidth,
			Height: DefaultFigureHeight,
		},
	}, nil
}
