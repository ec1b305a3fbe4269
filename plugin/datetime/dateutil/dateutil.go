// Package dateutil provides calendar arithmetic and timex formatting helpers
// shared by the datetime extractors and parsers.
//
// All helpers keep the location of their input. Weeks start on Monday.
package dateutil

import (
	"fmt"
	"time"
)

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 30
}

// SafeDate builds a date at midnight. Months outside 1..12 carry into the year.
// A day past the end of the month is clamped to the last day of that month
// instead of rolling into the next one.
func SafeDate(year, month, day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	year, month = normalizeMonth(year, month)
	if day < 1 {
		day = 1
	}
	if maxDay := DaysInMonth(year, time.Month(month)); day > maxDay {
		day = maxDay
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// ValidDate reports whether (year, month, day) names an existing calendar day.
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= DaysInMonth(year, time.Month(month))
}

func normalizeMonth(year, month int) (int, int) {
	m := month - 1
	year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	return year, m + 1
}

// AddMonths shifts t by n months keeping the time of day, clamping the day
// to the end of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	d := SafeDate(t.Year(), int(t.Month())+n, t.Day(), t.Location())
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears shifts t by n years with the same clamping as AddMonths.
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

// StartOfDay returns midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last second of t's day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// StartOfWeek returns the Monday of t's week at midnight.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -isoWeekdayIndex(t.Weekday()))
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ISOWeekday returns the ISO-8601 weekday number, Monday=1 ... Sunday=7.
func ISOWeekday(wd time.Weekday) int {
	return isoWeekdayIndex(wd) + 1
}

func isoWeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// This returns weekday wd inside the Monday-based week containing from.
func This(from time.Time, wd time.Weekday) time.Time {
	return StartOfWeek(from).AddDate(0, 0, isoWeekdayIndex(wd))
}

// Next returns weekday wd of the week after from's week.
func Next(from time.Time, wd time.Weekday) time.Time {
	return This(from, wd).AddDate(0, 0, 7)
}

// Last returns weekday wd of the week before from's week.
func Last(from time.Time, wd time.Weekday) time.Time {
	return This(from, wd).AddDate(0, 0, -7)
}

// OnOrBefore returns the latest date not after from that falls on wd.
func OnOrBefore(from time.Time, wd time.Weekday) time.Time {
	day := StartOfDay(from)
	diff := (int(day.Weekday()) - int(wd) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// After returns the earliest date strictly after from that falls on wd.
func After(from time.Time, wd time.Weekday) time.Time {
	day := StartOfDay(from)
	diff := (int(wd) - int(day.Weekday()) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return day.AddDate(0, 0, diff)
}

// NthWeekdayOfMonth returns the n-th wd of the month (n starts at 1).
// A negative n counts from the end of the month, -1 being the last one.
// ok is false when the month has no such day.
func NthWeekdayOfMonth(year int, month time.Month, wd time.Weekday, n int, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if n == 0 {
		return time.Time{}, false
	}
	if n < 0 {
		last := time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, loc)
		day := OnOrBefore(last, wd).AddDate(0, 0, 7*(n+1))
		if day.Month() != month {
			return time.Time{}, false
		}
		return day, true
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	day := first.AddDate(0, 0, offset+7*(n-1))
	if day.Month() != month {
		return time.Time{}, false
	}
	return day, true
}

// ISOWeek returns the ISO-8601 year and week number of t.
func ISOWeek(t time.Time) (year, week int) {
	return t.ISOWeek()
}

// ISOWeekStart returns the Monday that starts ISO week `week` of year.
func ISOWeekStart(year, week int, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if week < 1 || week > 53 {
		return time.Time{}, false
	}
	// January 4th is always in week 1.
	start := StartOfWeek(time.Date(year, time.January, 4, 0, 0, 0, 0, loc)).AddDate(0, 0, 7*(week-1))
	if y, w := start.ISOWeek(); y != year || w != week {
		return time.Time{}, false
	}
	return start, true
}

// Easter returns Western Easter Sunday of year (anonymous Gregorian algorithm).
func Easter(year int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// DiffDays returns the number of calendar days from a to b.
func DiffDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// DiffHours returns the whole hours from a to b.
func DiffHours(a, b time.Time) int64 {
	return int64(b.Sub(a) / time.Hour)
}

// DiffMinutes returns the whole minutes from a to b.
func DiffMinutes(a, b time.Time) int64 {
	return int64(b.Sub(a) / time.Minute)
}

// DiffSeconds returns the whole seconds from a to b.
func DiffSeconds(a, b time.Time) int64 {
	return int64(b.Sub(a) / time.Second)
}

// LoadLocation parses an IANA timezone identifier. An empty value or "UTC"
// yields UTC, "Local" the process location.
func LoadLocation(tz string) (*time.Location, error) {
	switch tz {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

var referenceLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseReference parses a reference instant. RFC 3339 values keep their
// offset; local layouts are read in loc. An empty value is zero.
func ParseReference(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range referenceLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid reference time %q", s)
}
