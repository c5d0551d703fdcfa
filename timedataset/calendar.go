package timedataset

import (
	"errors"
	"time"

	"github.com/rickar/cal/v2"
)

var ErrInvalidSpan = errors.New("span end is before span start")

// Date truncates t to a calendar date at midnight UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts t by the given number of calendar months. When the target month is
// shorter than the day of t, the day is clamped to the last day of the target month so
// 2023-12-31 + 18 months lands on 2025-06-30 rather than rolling into July.
func AddMonths(t time.Time, months int) time.Time {
	target := cal.MonthStart(t).AddDate(0, months, 0)
	lastDay := cal.MonthEnd(target)
	if t.Day() > lastDay.Day() {
		return lastDay
	}
	return target.AddDate(0, 0, t.Day()-1)
}

// GenerateMonthEnds returns the last calendar day of every month whose month end falls
// within [start, end]. An end that lands before its own month end excludes that month.
func GenerateMonthEnds(start, end time.Time) ([]time.Time, error) {
	start, end = Date(start), Date(end)
	if end.Before(start) {
		return nil, ErrInvalidSpan
	}

	var t []time.Time
	for ct := cal.MonthEnd(start); !ct.After(end); ct = cal.MonthEnd(AddMonths(cal.MonthStart(ct), 1)) {
		t = append(t, ct)
	}
	return t, nil
}
