package timedataset

import (
	"errors"
	"time"
)

var ErrLookbackOutOfRange = errors.New("lookback exceeds number of time points")

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}
	return t[len(t)-1]
}

// Lookback returns the time point n positions from the end, counting the last point
// as 1. A lookback of len(t) returns the first point.
func (t TimeSlice) Lookback(n int) (time.Time, error) {
	if n < 1 || n > len(t) {
		return time.Time{}, ErrLookbackOutOfRange
	}
	return t[len(t)-n], nil
}

// Reversed returns a copy of the time slice in reverse order.
func (t TimeSlice) Reversed() TimeSlice {
	out := make(TimeSlice, len(t))
	for i, tPnt := range t {
		out[len(t)-1-i] = tPnt
	}
	return out
}
