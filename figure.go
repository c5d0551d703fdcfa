package bandchart

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
)

const (
	TraceTypeScatter = "scatter"

	ModeLinesMarkers = "lines+markers"
	ModeLines        = "lines"

	// FillToSelf closes the trace onto itself so the shading stays inside the polygon.
	FillToSelf = "toself"

	AxisTypeDate = "date"
)

// Date is a calendar date that serializes as YYYY-MM-DD.
type Date time.Time

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("unable to parse date %q, %w", s, err)
	}
	*d = Date(t)
	return nil
}

func toDates(t []time.Time) []Date {
	out := make([]Date, 0, len(t))
	for _, tPnt := range t {
		out = append(out, Date(tPnt))
	}
	return out
}

// DateRange is a [start, end] pair on the date axis.
type DateRange [2]Date

func NewDateRange(v ViewWindow) DateRange {
	return DateRange{Date(v.Start), Date(v.End)}
}

func (r DateRange) Window() ViewWindow {
	return ViewWindow{Start: r[0].Time(), End: r[1].Time()}
}

type LineStyle struct {
	Color string  `json:"color"`
	Width float64 `json:"width,omitempty"`
}

type Marker struct {
	Color string `json:"color"`
}

// Trace is a single drawable series of a figure.
type Trace struct {
	Type       string    `json:"type"`
	Mode       string    `json:"mode,omitempty"`
	Name       string    `json:"name"`
	X          []Date    `json:"x"`
	Y          []float64 `json:"y"`
	Fill       string    `json:"fill,omitempty"`
	FillColor  string    `json:"fillcolor,omitempty"`
	Line       LineStyle `json:"line"`
	Marker     *Marker   `json:"marker,omitempty"`
	ShowLegend bool      `json:"showlegend"`
}

type Title struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
}

type RangeSelector struct {
	Buttons []QuickRange `json:"buttons"`
}

type RangeSlider struct {
	Visible   bool      `json:"visible"`
	AutoRange bool      `json:"autorange"`
	Range     DateRange `json:"range"`
}

type XAxis struct {
	Type          string        `json:"type"`
	Range         DateRange     `json:"range"`
	RangeSelector RangeSelector `json:"rangeselector"`
	RangeSlider   RangeSlider   `json:"rangeslider"`
}

type Layout struct {
	Title  Title `json:"title"`
	XAxis  XAxis `json:"xaxis"`
	Width  int   `json:"width"`
	Height int   `json:"height"`
}

// Figure is a renderable chart description in the shape generic chart containers accept:
// a list of traces and a layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// WriteJSON encodes the figure to w.
func (f *Figure) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(f)
}
