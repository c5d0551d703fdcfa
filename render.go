package bandchart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
)

var ErrEmptyFigure = errors.New("figure has no traces")

const axisLabelFormatter = `function (value) { return +(value - %g).toFixed(2); }`

// tooltipFormatter pairs each band's lower edge series with the width series after it.
const tooltipFormatter = `function (params) {
	var offset = %g, byIndex = {}, lines = [params[0].axisValueLabel];
	params.forEach(function (p) { byIndex[p.seriesIndex] = p; });
	params.forEach(function (p) {
		var v = p.value[1];
		if (p.seriesIndex === 0) {
			lines.push(p.marker + p.seriesName + ': ' + (v - offset).toFixed(2));
		} else if (p.seriesIndex %% 2 === 1 && byIndex[p.seriesIndex + 1]) {
			var lower = v - offset, upper = lower + byIndex[p.seriesIndex + 1].value[1];
			lines.push(p.marker + p.seriesName + ': ' + lower.toFixed(2) + ' to ' + upper.toFixed(2));
		}
	});
	return lines.join('<br/>');
}`

// LineFigure converts a figure into an echarts line chart. The first trace is drawn as
// the marked baseline. Every polygon trace after it is split into an invisible lower edge
// and a stacked width series with an area fill, which echarts shades between the edges.
//
// echarts only stacks values of the same sign, so every plotted value is raised by
// stackOffset and the axis labels and tooltip subtract it again.
func LineFigure(fig *Figure) (*charts.Line, error) {
	if fig == nil || len(fig.Data) == 0 {
		return nil, ErrEmptyFigure
	}
	base := fig.Data[0]
	if len(base.X) == 0 || len(base.X) != len(base.Y) {
		return nil, fmt.Errorf("%s has %d dates and %d values, %w", base.Name, len(base.X), len(base.Y), ErrRender)
	}
	offset := stackOffset(fig.Data)

	xaxis := fig.Layout.XAxis
	extent := xaxis.RangeSlider.Range.Window()
	window := xaxis.Range.Window()

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(
			opts.Initialization{
				PageTitle: fig.Layout.Title.Text,
				Width:     strconv.Itoa(fig.Layout.Width) + "px",
				Height:    strconv.Itoa(fig.Layout.Height) + "px",
			},
		),
		charts.WithTitleOpts(
			opts.Title{
				Title: fig.Layout.Title.Text,
				Left:  "center",
			},
		),
		charts.WithLegendOpts(
			opts.Legend{
				Show: opts.Bool(true),
				Top:  "bottom",
			},
		),
		charts.WithTooltipOpts(
			opts.Tooltip{
				Show:      opts.Bool(true),
				Trigger:   "axis",
				Formatter: opts.FuncOpts(fmt.Sprintf(tooltipFormatter, offset)),
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Type: "value",
				AxisLabel: &opts.AxisLabel{
					Formatter: opts.FuncOpts(fmt.Sprintf(axisLabelFormatter, offset)),
				},
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Type: "time",
				Min:  extent.Start.Format(time.DateOnly),
				Max:  extent.End.Format(time.DateOnly),
			},
		),
		charts.WithDataZoomOpts(
			opts.DataZoom{
				Type:  "slider",
				Start: windowPercent(extent, window.Start),
				End:   windowPercent(extent, window.End),
			},
			opts.DataZoom{
				Type:  "inside",
				Start: windowPercent(extent, window.Start),
				End:   windowPercent(extent, window.End),
			},
		),
	)

	baseData := make([]opts.LineData, 0, len(base.X))
	for i := range base.X {
		baseData = append(baseData, opts.LineData{Value: datePoint(base.X[i], base.Y[i]+offset)})
	}
	line.AddSeries(base.Name, baseData,
		charts.WithLineChartOpts(opts.LineChart{
			Symbol:     "circle",
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: base.Line.Color}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: base.Line.Color}),
	)

	for _, trace := range fig.Data[1:] {
		if err := addBandSeries(line, trace, offset); err != nil {
			return nil, err
		}
	}
	return line, nil
}

func addBandSeries(line *charts.Line, trace Trace, offset float64) error {
	if len(trace.X) == 0 || len(trace.X) != len(trace.Y) || len(trace.X)%2 != 0 {
		return fmt.Errorf("%s is not a closed polygon, %w", trace.Name, ErrRender)
	}
	n := len(trace.X) / 2
	lowerData := make([]opts.LineData, 0, n)
	widthData := make([]opts.LineData, 0, n)
	for i := 0; i < n; i++ {
		upper := trace.Y[i]
		lower := trace.Y[len(trace.Y)-1-i]
		lowerData = append(lowerData, opts.LineData{Value: datePoint(trace.X[i], lower+offset)})
		widthData = append(widthData, opts.LineData{Value: datePoint(trace.X[i], upper-lower)})
	}

	// both halves share the trace name so the legend toggles them together
	stack := "band-" + trace.Name
	line.AddSeries(trace.Name, lowerData,
		charts.WithLineChartOpts(opts.LineChart{
			Stack:      stack,
			ShowSymbol: opts.Bool(false),
		}),
		charts.WithLineStyleOpts(opts.LineStyle{Opacity: opts.Float(0)}),
	)
	line.AddSeries(trace.Name, widthData,
		charts.WithLineChartOpts(opts.LineChart{
			Stack:      stack,
			ShowSymbol: opts.Bool(false),
		}),
		charts.WithLineStyleOpts(opts.LineStyle{Opacity: opts.Float(0)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: trace.FillColor}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: trace.FillColor, Opacity: opts.Float(1)}),
	)
	return nil
}

// stackOffset returns the shift that makes every plotted value non-negative.
func stackOffset(traces []Trace) float64 {
	lowest := 0.0
	for _, trace := range traces {
		if len(trace.Y) > 0 {
			lowest = min(lowest, floats.Min(trace.Y))
		}
	}
	if lowest >= 0 {
		return 0
	}
	return math.Ceil(-lowest)
}

func datePoint(d Date, v float64) []interface{} {
	return []interface{}{d.Time().Format(time.DateOnly), v}
}

func windowPercent(extent ViewWindow, t time.Time) float32 {
	total := extent.End.Sub(extent.Start)
	if total <= 0 {
		return 0
	}
	pct := 100 * float64(t.Sub(extent.Start)) / float64(total)
	return float32(min(max(pct, 0), 100))
}

// RenderHTML uses the Apache Echarts library to write an html page of the figure.
func RenderHTML(w io.Writer, fig *Figure) error {
	line, err := LineFigure(fig)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.SetPageTitle(fig.Layout.Title.Text)
	page.AddCharts(line)
	return page.Render(w)
}
