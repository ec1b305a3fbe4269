package dateutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Unit is a canonical duration unit.
type Unit string

const (
	UnitYear   Unit = "year"
	UnitMonth  Unit = "month"
	UnitWeek   Unit = "week"
	UnitDay    Unit = "day"
	UnitHour   Unit = "hour"
	UnitMinute Unit = "minute"
	UnitSecond Unit = "second"
)

// unitOrder is the order in which units appear in a duration timex.
var unitOrder = []Unit{UnitYear, UnitMonth, UnitWeek, UnitDay, UnitHour, UnitMinute, UnitSecond}

var unitSeconds = map[Unit]float64{
	UnitYear:   31536000,
	UnitMonth:  2592000,
	UnitWeek:   604800,
	UnitDay:    86400,
	UnitHour:   3600,
	UnitMinute: 60,
	UnitSecond: 1,
}

// Valid reports whether u is one of the canonical units.
func (u Unit) Valid() bool {
	_, ok := unitSeconds[u]
	return ok
}

// IsTime reports whether u is written after the "T" designator.
func (u Unit) IsTime() bool {
	return u == UnitHour || u == UnitMinute || u == UnitSecond
}

// Seconds returns the nominal length of one u in seconds.
func (u Unit) Seconds() float64 {
	return unitSeconds[u]
}

// Letter returns the timex designator of u.
func (u Unit) Letter() string {
	switch u {
	case UnitYear:
		return "Y"
	case UnitMonth, UnitMinute:
		return "M"
	case UnitWeek:
		return "W"
	case UnitDay:
		return "D"
	case UnitHour:
		return "H"
	case UnitSecond:
		return "S"
	}
	return ""
}

// DurationPart is one "<value> <unit>" component of a duration.
type DurationPart struct {
	Value float64
	Unit  Unit
}

// TotalSeconds sums the nominal length of parts.
func TotalSeconds(parts []DurationPart) float64 {
	var total float64
	for _, p := range parts {
		total += p.Value * p.Unit.Seconds()
	}
	return total
}

// carries maps a unit to the next smaller one and how many of those make
// it up. Seconds keep their fraction.
var carries = map[Unit]struct {
	to     Unit
	factor float64
}{
	UnitYear:   {UnitMonth, 12},
	UnitMonth:  {UnitDay, 30},
	UnitWeek:   {UnitDay, 7},
	UnitDay:    {UnitHour, 24},
	UnitHour:   {UnitMinute, 60},
	UnitMinute: {UnitSecond, 60},
}

// FormatDuration renders parts as an ISO-8601 duration timex, e.g. P3D,
// PT1H30M or P1DT2H. Repeated units are summed and a fraction carries into
// the next smaller unit, so half an hour is PT30M and 1.5 days P1DT12H.
func FormatDuration(parts []DurationPart) string {
	sums := make(map[Unit]float64, len(parts))
	for _, p := range parts {
		sums[p.Unit] += p.Value
	}
	for _, u := range unitOrder {
		v, ok := sums[u]
		c, carried := carries[u]
		if !ok || !carried {
			continue
		}
		whole, frac := math.Modf(v)
		if frac == 0 {
			continue
		}
		sums[c.to] += math.Round(frac*c.factor*1e6) / 1e6
		if whole == 0 {
			delete(sums, u)
		} else {
			sums[u] = whole
		}
	}

	var date, clock strings.Builder
	for _, u := range unitOrder {
		v, ok := sums[u]
		if !ok {
			continue
		}
		b := &date
		if u.IsTime() {
			b = &clock
		}
		b.WriteString(formatNumber(v))
		b.WriteString(u.Letter())
	}

	if date.Len() == 0 && clock.Len() == 0 {
		return "PT0S"
	}
	out := "P" + date.String()
	if clock.Len() > 0 {
		out += "T" + clock.String()
	}
	return out
}

// ParseDuration decodes a duration timex produced by FormatDuration. A
// leading "-" negates every part.
func ParseDuration(timex string) ([]DurationPart, error) {
	s := strings.TrimSpace(timex)
	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") || len(s) < 2 {
		return nil, fmt.Errorf("invalid duration timex %q", timex)
	}

	var parts []DurationPart
	inTime := false
	num := ""
	for _, r := range s[1:] {
		switch {
		case r == 'T':
			if num != "" {
				return nil, fmt.Errorf("invalid duration timex %q", timex)
			}
			inTime = true
		case (r >= '0' && r <= '9') || r == '.':
			num += string(r)
		default:
			if num == "" {
				return nil, fmt.Errorf("invalid duration timex %q", timex)
			}
			unit, ok := unitForLetter(r, inTime)
			if !ok {
				return nil, fmt.Errorf("invalid duration unit %q in %q", r, timex)
			}
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid duration value in %q: %w", timex, err)
			}
			parts = append(parts, DurationPart{Value: sign * v, Unit: unit})
			num = ""
		}
	}
	if num != "" || len(parts) == 0 {
		return nil, fmt.Errorf("invalid duration timex %q", timex)
	}
	return parts, nil
}

func unitForLetter(r rune, inTime bool) (Unit, bool) {
	if inTime {
		switch r {
		case 'H':
			return UnitHour, true
		case 'M':
			return UnitMinute, true
		case 'S':
			return UnitSecond, true
		}
		return "", false
	}
	switch r {
	case 'Y':
		return UnitYear, true
	case 'M':
		return UnitMonth, true
	case 'W':
		return UnitWeek, true
	case 'D':
		return UnitDay, true
	}
	return "", false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDate renders t as a fully specified date timex (2024-03-05).
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateTimex renders a possibly partial date. Non-positive fields are
// written as X placeholders, e.g. XXXX-03-05 or XXXX-XX-05.
func FormatDateTimex(year, month, day int) string {
	y, m, d := "XXXX", "XX", "XX"
	if year > 0 {
		y = fmt.Sprintf("%04d", year)
	}
	if month > 0 {
		m = fmt.Sprintf("%02d", month)
	}
	if day > 0 {
		d = fmt.Sprintf("%02d", day)
	}
	return y + "-" + m + "-" + d
}

// FormatMonthTimex renders a month, e.g. 2024-03 or XXXX-03.
func FormatMonthTimex(year, month int) string {
	if year > 0 {
		return fmt.Sprintf("%04d-%02d", year, month)
	}
	return fmt.Sprintf("XXXX-%02d", month)
}

// FormatWeekdayTimex renders a weekday of an unknown week, e.g. XXXX-WXX-5.
func FormatWeekdayTimex(wd time.Weekday) string {
	return fmt.Sprintf("XXXX-WXX-%d", ISOWeekday(wd))
}

// FormatWeekTimex renders an ISO week, e.g. 2024-W05.
func FormatWeekTimex(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// FormatTime renders a time-of-day timex: T15, T15:30 or T15:30:20.
func FormatTime(hour, minute, second int) string {
	out := fmt.Sprintf("T%02d", hour)
	if minute != 0 || second != 0 {
		out += fmt.Sprintf(":%02d", minute)
	}
	if second != 0 {
		out += fmt.Sprintf(":%02d", second)
	}
	return out
}

// FormatDateTime renders an absolute instant timex (2024-06-10T13:00:00).
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

// FormatRange renders a period timex "(start,end,duration)".
func FormatRange(start, end, duration string) string {
	return "(" + start + "," + end + "," + duration + ")"
}

// DurationTimexBetween renders the length of [start, end). Date granular
// ranges are counted in whole days, others in hours, minutes and seconds.
func DurationTimexBetween(start, end time.Time, dateGranular bool) string {
	if dateGranular {
		return FormatDuration([]DurationPart{{Value: float64(DiffDays(start, end)), Unit: UnitDay}})
	}
	secs := DiffSeconds(start, end)
	if secs < 0 {
		secs = -secs
	}
	var parts []DurationPart
	if h := secs / 3600; h > 0 {
		parts = append(parts, DurationPart{Value: float64(h), Unit: UnitHour})
	}
	if m := secs % 3600 / 60; m > 0 {
		parts = append(parts, DurationPart{Value: float64(m), Unit: UnitMinute})
	}
	if s := secs % 60; s > 0 {
		parts = append(parts, DurationPart{Value: float64(s), Unit: UnitSecond})
	}
	return FormatDuration(parts)
}

// ResolveDate formats the resolution value of a date.
func ResolveDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ResolveTime formats the resolution value of a time of day.
func ResolveTime(t time.Time) string {
	return t.Format("15:04:05")
}

// ResolveDateTime formats the resolution value of a date and time.
func ResolveDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
