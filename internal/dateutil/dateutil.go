// Package dateutil holds the calendar arithmetic shared by the lifecycle
// and amendment-chain calculations. All functions work on day granularity
// in UTC and are pure.
package dateutil

import (
	"time"

	"github.com/ataliba/contratos-service/internal/model"
)

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDuration adds amount units to date. Month and year additions keep
// the day of month, clamping to the last day of the target month when it
// is shorter (Jan 31 + 1 month = Feb 28/29, never Mar 3). Unknown units
// and zero amounts return the date unchanged; this sits on a render path
// and must not fail.
func AddDuration(date time.Time, amount int, unit model.DurationUnit) time.Time {
	if amount == 0 {
		return DateOnly(date)
	}
	switch unit {
	case model.UnitDays:
		return DateOnly(date).AddDate(0, 0, amount)
	case model.UnitMonths:
		return addMonths(date, amount)
	case model.UnitYears:
		return addMonths(date, amount*12)
	default:
		return DateOnly(date)
	}
}

func addMonths(date time.Time, months int) time.Time {
	d := DateOnly(date)
	year, month, day := d.Date()

	// Anchor on the first of the target month so time.Date never
	// overflows into the following month, then clamp the day.
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	last := daysIn(anchor.Year(), anchor.Month())
	if day > last {
		day = last
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ElapsedMonths counts whole calendar months from start to end. A month
// is only complete once the anniversary day is reached, so an end day of
// month earlier than the start day subtracts one. Never negative.
func ElapsedMonths(start, end time.Time) int {
	s := DateOnly(start)
	e := DateOnly(end)

	months := (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
	if e.Day() < s.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// DaysBetween returns the whole days from a to b, negative when b is
// before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
