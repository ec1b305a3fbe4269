package culture

import (
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
)

// Holiday computes the date of a named holiday in a given year.
type Holiday interface {
	// Date returns the holiday in year, or false when it does not occur.
	Date(year int) (time.Time, bool)
}

// FixedHoliday falls on the same calendar day each year.
type FixedHoliday struct {
	Month time.Month
	Day   int
}

func (h FixedHoliday) Date(year int) (time.Time, bool) {
	if !dateutil.ValidDate(year, int(h.Month), h.Day) {
		return time.Time{}, false
	}
	return time.Date(year, h.Month, h.Day, 0, 0, 0, 0, time.UTC), true
}

// NthWeekdayHoliday is the Nth weekday of a month; a negative N counts
// from the end of the month.
type NthWeekdayHoliday struct {
	Month   time.Month
	Weekday time.Weekday
	N       int
}

func (h NthWeekdayHoliday) Date(year int) (time.Time, bool) {
	return dateutil.NthWeekdayOfMonth(year, h.Month, h.Weekday, h.N, time.UTC)
}

// EasterHoliday is a fixed offset in days from Western Easter Sunday.
type EasterHoliday struct {
	Offset int
}

func (h EasterHoliday) Date(year int) (time.Time, bool) {
	return dateutil.Easter(year, time.UTC).AddDate(0, 0, h.Offset), true
}

// ShiftedHoliday is another holiday moved by a number of days.
type ShiftedHoliday struct {
	Base Holiday
	Days int
}

func (h ShiftedHoliday) Date(year int) (time.Time, bool) {
	d, ok := h.Base.Date(year)
	if !ok {
		return time.Time{}, false
	}
	return d.AddDate(0, 0, h.Days), true
}
