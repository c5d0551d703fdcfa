package bandchart

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aouyang1/go-bandchart/forecast"
	"github.com/aouyang1/go-bandchart/timedataset"
)

// Seam records the one-time adjustment that joins the baseline to the forecast.
type Seam struct {
	Date     time.Time `json:"date"`
	Replaced float64   `json:"replaced"`
	Value    float64   `json:"value"`
}

// SeriesStore owns the baseline series and the forecast table. It is built once at
// startup and is read-only afterwards, so it can be shared across concurrent rebuilds.
type SeriesStore struct {
	baseline *timedataset.TimeDataset
	forecast *forecast.Table
	seam     Seam
}

// LoadSeriesStore generates the baseline, reads the forecast source named in the options
// and reconciles the seam between them. Any failure is reported as ErrDataLoad.
func LoadSeriesStore(opt *Options) (*SeriesStore, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}

	baseline, err := GenerateBaseline(opt.SeriesOptions)
	if err != nil {
		return nil, fmt.Errorf("%w, unable to generate baseline, %w", ErrDataLoad, err)
	}

	table, err := forecast.Load(opt.ForecastPath)
	if err != nil {
		return nil, fmt.Errorf("%w, unable to read forecast %s, %w", ErrDataLoad, opt.ForecastPath, err)
	}

	return NewSeriesStore(baseline, table)
}

// NewSeriesStore builds a store from an existing baseline and forecast. Both are copied
// before the last baseline value is overwritten by the seam.
func NewSeriesStore(baseline *timedataset.TimeDataset, table *forecast.Table) (*SeriesStore, error) {
	if baseline.Len() == 0 {
		return nil, fmt.Errorf("%w, %w", ErrDataLoad, timedataset.ErrNoData)
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("%w, %w", ErrDataLoad, forecast.ErrEmptyTable)
	}

	rows := make([]forecast.Row, table.Len())
	copy(rows, table.Rows)
	s := &SeriesStore{
		baseline: baseline.Copy(),
		forecast: &forecast.Table{Rows: rows},
	}
	if err := s.reconcileSeam(); err != nil {
		return nil, fmt.Errorf("%w, %w", ErrDataLoad, err)
	}
	return s, nil
}

// reconcileSeam overwrites the final baseline value with the first forecast row's 50%
// upper bound so the historical line meets the upper edge of the narrowest band. It runs
// exactly once, from NewSeriesStore.
func (s *SeriesStore) reconcileSeam() error {
	first, err := s.forecast.First()
	if err != nil {
		return err
	}
	replaced, err := s.baseline.SetLast(first.UB50)
	if err != nil {
		return err
	}
	s.seam = Seam{
		Date:     timedataset.TimeSlice(s.baseline.T).EndTime(),
		Replaced: replaced,
		Value:    first.UB50,
	}
	slog.Debug("reconciled baseline seam",
		"date", s.seam.Date.Format(time.DateOnly),
		"replaced", replaced,
		"value", first.UB50,
	)
	return nil
}

// Baseline returns a copy of the reconciled baseline series.
func (s *SeriesStore) Baseline() *timedataset.TimeDataset {
	return s.baseline.Copy()
}

// Forecast returns a copy of the forecast table.
func (s *SeriesStore) Forecast() *forecast.Table {
	rows := make([]forecast.Row, len(s.forecast.Rows))
	copy(rows, s.forecast.Rows)
	return &forecast.Table{Rows: rows}
}

func (s *SeriesStore) Seam() Seam {
	return s.seam
}

// TablePrint summarizes the baseline span, the seam and the forecast rows.
func (s *SeriesStore) TablePrint(w io.Writer, prefix, indent string) error {
	tSlice := timedataset.TimeSlice(s.baseline.T)
	if _, err := fmt.Fprintf(w, "%sBaseline:\n", prefix); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sPoints: %d\n", prefix, forecast.IndentExpand(indent, 1), s.baseline.Len()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sSpan: %s to %s\n",
		prefix, forecast.IndentExpand(indent, 1),
		tSlice.StartTime().Format(time.DateOnly), tSlice.EndTime().Format(time.DateOnly)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sSeam: %s %.3f -> %.3f\n",
		prefix, forecast.IndentExpand(indent, 1),
		s.seam.Date.Format(time.DateOnly), s.seam.Replaced, s.seam.Value); err != nil {
		return err
	}
	return s.forecast.TablePrint(w, prefix, indent, 0)
}

// GenerateBaseline builds the synthetic monthly history described by the options.
func GenerateBaseline(opt *SeriesOptions) (*timedataset.TimeDataset, error) {
	if opt == nil {
		opt = NewDefaultSeriesOptions()
	}

	t, err := timedataset.GenerateMonthEnds(opt.HistoryStart, opt.HistoryEnd)
	if err != nil {
		return nil, err
	}

	seed := opt.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	n := len(t)
	y := make(timedataset.Series, n)
	y.Add(timedataset.GenerateDampedWaveY(n, opt.Amplitude, opt.AngularStep, opt.Damping)).
		Add(timedataset.GenerateIntNoise(n, opt.NoiseMin, opt.NoiseMax, rng))

	return timedataset.NewUnivariateDataset(t, y)
}
