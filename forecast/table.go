// Package forecast holds the pre-computed forecast table of nested confidence bounds
// and the readers and writers for its tabular sources.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/aouyang1/go-bandchart/timedataset"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrEmptyTable      = errors.New("forecast table has no rows")
	ErrNonMonotonic    = errors.New("forecast dates are not strictly increasing")
	ErrBoundsNotNested = errors.New("forecast bounds are not nested")
	ErrNaNBound        = errors.New("forecast bound is NaN")
)

// Row is a single forecast period with lower and upper bounds at every confidence level.
type Row struct {
	Date time.Time `json:"date"`
	LB50 float64   `json:"lb_50"`
	UB50 float64   `json:"ub_50"`
	LB75 float64   `json:"lb_75"`
	UB75 float64   `json:"ub_75"`
	LB95 float64   `json:"lb_95"`
	UB95 float64   `json:"ub_95"`
}

// ordered returns the bounds from the widest lower bound to the widest upper bound.
func (r Row) ordered() []float64 {
	return []float64{r.LB95, r.LB75, r.LB50, r.UB50, r.UB75, r.UB95}
}

// Validate reports whether LB_95 <= LB_75 <= LB_50 <= UB_50 <= UB_75 <= UB_95 holds.
func (r Row) Validate() error {
	bounds := r.ordered()
	if floats.HasNaN(bounds) {
		return ErrNaNBound
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] < bounds[i-1] {
			return fmt.Errorf("%s: %v, %w", r.Date.Format(time.DateOnly), bounds, ErrBoundsNotNested)
		}
	}
	return nil
}

// Table is an ordered, read-only sequence of forecast rows.
type Table struct {
	Rows []Row `json:"rows"`
}

// NewTable validates the rows and returns a table holding a copy of them.
func NewTable(rows []Row) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	for i, row := range rows {
		if i > 0 && !row.Date.After(rows[i-1].Date) {
			return nil, fmt.Errorf("row %d, %w", i, ErrNonMonotonic)
		}
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("row %d, %w", i, err)
		}
	}

	rowsCopy := make([]Row, len(rows))
	copy(rowsCopy, rows)
	return &Table{Rows: rowsCopy}, nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// First returns the earliest forecast row.
func (t *Table) First() (Row, error) {
	if t.Len() == 0 {
		return Row{}, ErrEmptyTable
	}
	return t.Rows[0], nil
}

// Dates returns the forecast dates in their original order.
func (t *Table) Dates() timedataset.TimeSlice {
	dates := make(timedataset.TimeSlice, 0, t.Len())
	for _, row := range t.Rows {
		dates = append(dates, row.Date)
	}
	return dates
}

// Bounds returns the lower and upper bound series for the confidence level.
func (t *Table) Bounds(level Level) ([]float64, []float64, error) {
	if !level.Valid() {
		return nil, nil, fmt.Errorf("%d, %w", level, ErrUnknownLevel)
	}
	lower := make([]float64, 0, t.Len())
	upper := make([]float64, 0, t.Len())
	for _, row := range t.Rows {
		lb, ub := level.Bounds(row)
		lower = append(lower, lb)
		upper = append(upper, ub)
	}
	return lower, upper, nil
}
