package clock

import "time"

// Clock supplies the current instant to the ledger.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant. Used by tests and by CLI commands
// that evaluate the ledger as of a given date.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

// Date returns midnight UTC of the calendar day t falls on in loc.
func Date(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is Date applied to c.Now().
func Today(c Clock, loc *time.Location) time.Time {
	return Date(c.Now(), loc)
}

// AddDays moves a calendar date by n whole days.
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}
