package domain

import "time"

// Calendar dates are carried as time.Time at UTC midnight.

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping its calendar day
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// DateRange is an inclusive range of calendar days
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DateOf(start), End: DateOf(end)}
}

// Ordered reports Start <= End
func (r DateRange) Ordered() bool {
	return !r.Start.After(r.End)
}

// Contains reports whether d falls inside the range, bounds included
func (r DateRange) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(r.Start) && !d.After(r.End)
}
