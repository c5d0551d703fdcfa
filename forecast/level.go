package forecast

import (
	"errors"
	"fmt"
)

var ErrUnknownLevel = errors.New("unknown confidence level")

// Level is a confidence interval percentage.
type Level int

const (
	Level50 Level = 50
	Level75 Level = 75
	Level95 Level = 95
)

// LevelsWidestFirst lists the confidence levels in draw order so narrower bands are
// painted over wider ones.
var LevelsWidestFirst = []Level{Level95, Level75, Level50}

// levelsNarrowestFirst is the column order of a forecast workbook.
var levelsNarrowestFirst = []Level{Level50, Level75, Level95}

func (l Level) Valid() bool {
	switch l {
	case Level50, Level75, Level95:
		return true
	default:
		return false
	}
}

// Label returns the legend name of the level, e.g. "95% CI".
func (l Level) Label() string {
	return fmt.Sprintf("%d%% CI", int(l))
}

// Bounds returns the lower and upper bound of the row at this level.
func (l Level) Bounds(r Row) (float64, float64) {
	switch l {
	case Level50:
		return r.LB50, r.UB50
	case Level75:
		return r.LB75, r.UB75
	default:
		return r.LB95, r.UB95
	}
}

func (l Level) setBounds(r *Row, lower, upper float64) {
	switch l {
	case Level50:
		r.LB50, r.UB50 = lower, upper
	case Level75:
		r.LB75, r.UB75 = lower, upper
	default:
		r.LB95, r.UB95 = lower, upper
	}
}

// Columns returns the lower and upper bound column names of the level.
func (l Level) Columns() (string, string) {
	return fmt.Sprintf("LB_%d", int(l)), fmt.Sprintf("UB_%d", int(l))
}
