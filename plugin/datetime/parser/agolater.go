package parser

import (
	"math"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
)

// AgoLater moves ref by the duration parts, backwards when direction is
// negative. It returns the resulting instant, its timex and the signed
// duration timex (-P3D for "3 days ago"). Durations made of days or larger
// units resolve to a calendar day.
func AgoLater(parts []dateutil.DurationPart, ref time.Time, direction int) (time.Time, string, string) {
	sign := 1
	if direction < 0 {
		sign = -1
	}
	t := ref
	dateOnly := true
	for _, p := range parts {
		if p.Unit.IsTime() {
			dateOnly = false
		}
		t = shift(t, p, sign)
	}

	duration := dateutil.FormatDuration(parts)
	if sign < 0 {
		duration = "-" + duration
	}
	if dateOnly {
		t = dateutil.StartOfDay(t)
		return t, dateutil.FormatDate(t), duration
	}
	return t, dateutil.FormatDateTime(t), duration
}

// shift applies one part. Calendar units move by whole months or days; a
// fractional remainder carries into the next smaller unit.
func shift(t time.Time, p dateutil.DurationPart, sign int) time.Time {
	whole, frac := math.Modf(p.Value)
	n := sign * int(whole)
	switch p.Unit {
	case dateutil.UnitYear:
		return shiftMonths(t, p.Value*12, sign)
	case dateutil.UnitMonth:
		return shiftMonths(t, p.Value, sign)
	case dateutil.UnitWeek:
		return shiftDays(t, p.Value*7, sign)
	case dateutil.UnitDay:
		return shiftDays(t, p.Value, sign)
	}
	t = t.Add(time.Duration(n) * time.Duration(p.Unit.Seconds()) * time.Second)
	return t.Add(time.Duration(float64(sign) * frac * p.Unit.Seconds() * float64(time.Second)))
}

func shiftMonths(t time.Time, months float64, sign int) time.Time {
	whole, frac := math.Modf(months)
	t = dateutil.AddMonths(t, sign*int(whole))
	return shiftDays(t, frac*30, sign)
}

func shiftDays(t time.Time, days float64, sign int) time.Time {
	whole, frac := math.Modf(days)
	t = t.AddDate(0, 0, sign*int(whole))
	return t.Add(time.Duration(float64(sign) * frac * 24 * float64(time.Hour)))
}
