package calendar

import "time"

// Clock is the source of "today". It is injected everywhere a query is
// anchored at the current day so tests can pin it.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock and converts it to the viewer's zone.
// A nil Location means time.Local.
type SystemClock struct {
	Location *time.Location
}

// Today returns the current local calendar day.
func (c SystemClock) Today() Date {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// FixedClock always reports the same day.
type FixedClock Date

// Today returns the fixed day.
func (c FixedClock) Today() Date { return Date(c) }
