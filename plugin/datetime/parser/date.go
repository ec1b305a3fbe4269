package parser

import (
	"fmt"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// DateParser resolves calendar days.
//
// A date without a year keeps both branches: the past branch is the last
// occurrence on or before the reference day, the future branch the first
// one on or after it. A bare weekday resolves strictly after the reference
// day in the future branch.
type DateParser struct{ *base }

func (p *DateParser) Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	d := extractor.DataOf(er)
	g := d.Groups
	today := dateutil.StartOfDay(ref)

	switch d.Pattern {
	case extractor.PatternComposite:
		return p.composite(er, ref)
	case extractor.PatternAgoLater:
		return p.agoLater(er, d, ref)
	case extractor.PatternRelative:
		return p.relative(er, d, ref)

	case "relativeDay":
		n, ok := p.cfg.SwiftDay(g["relday"])
		if !ok {
			return nil, false
		}
		t := today.AddDate(0, 0, n)
		return single(er, dateutil.FormatDate(t), t), true

	case "weekday":
		wd, ok := p.cfg.Weekday(g["weekday"])
		if !ok {
			return nil, false
		}
		return point(er, dateutil.FormatWeekdayTimex(wd), dateutil.OnOrBefore(ref, wd), dateutil.After(ref, wd)), true

	case "relativeWeekday", "weekdayOfWeek":
		wd, ok1 := p.cfg.Weekday(g["weekday"])
		swift, ok2 := p.cfg.Swift(g["order"])
		if !ok1 || !ok2 {
			return nil, false
		}
		t := dateutil.This(ref, wd).AddDate(0, 0, 7*swift)
		return single(er, dateutil.FormatDate(t), t), true

	case "dayOfMonth":
		day, ok1 := p.cfg.Int(g["day"])
		swift, ok2 := p.cfg.Swift(g["order"])
		if !ok1 || !ok2 || day < 1 || day > 31 {
			return nil, false
		}
		t := dateutil.SafeDate(ref.Year(), int(ref.Month())+swift, day, ref.Location())
		return single(er, dateutil.FormatDate(t), t), true

	case "ordinalDay":
		return p.ordinalDay(er, g, ref)
	case "nthWeekday":
		return p.nthWeekday(er, g, ref)
	case "numeric":
		n1, ok1 := p.cfg.Int(g["num1"])
		n2, ok2 := p.cfg.Int(g["num2"])
		if !ok1 || !ok2 {
			return nil, false
		}
		month, day := n1, n2
		if p.cfg.DayFirst {
			month, day = n2, n1
		}
		return p.calendarDay(er, g["year"], month, day, ref)
	}

	month, ok1 := p.cfg.Month(g["month"])
	day, ok2 := p.cfg.Int(g["day"])
	if !ok1 || !ok2 {
		return nil, false
	}
	return p.calendarDay(er, g["year"], int(month), day, ref)
}

// calendarDay builds month/day with an explicit or implied year. A month
// outside 1..12 fails; a day past the end of the month is clamped.
func (p *DateParser) calendarDay(er recognizer.ExtractResult, yearText string, month, day int, ref time.Time) (*DateTimeParseResult, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil, false
	}
	loc := ref.Location()
	if yearText != "" {
		year, ok := p.year(yearText)
		if !ok {
			return nil, false
		}
		t := dateutil.SafeDate(year, month, day, loc)
		return single(er, dateutil.FormatDate(t), t), true
	}
	// Year-less dates clamp against a leap year so February 29 survives.
	day = min(day, dateutil.DaysInMonth(2000, time.Month(month)))
	past, future := yearless(ref, func(year int) (time.Time, bool) {
		return dateutil.SafeDate(year, month, day, loc), true
	})
	return point(er, dateutil.FormatDateTimex(0, month, day), past, future), true
}

// yearless picks the occurrences of a yearly date around ref.
func yearless(ref time.Time, at func(year int) (time.Time, bool)) (past, future time.Time) {
	today := dateutil.StartOfDay(ref)
	this, ok := at(ref.Year())
	if !ok {
		prev, _ := at(ref.Year() - 1)
		next, _ := at(ref.Year() + 1)
		return prev, next
	}
	past, future = this, this
	if this.Before(today) {
		if next, ok := at(ref.Year() + 1); ok {
			future = next
		}
	}
	if this.After(today) {
		if prev, ok := at(ref.Year() - 1); ok {
			past = prev
		}
	}
	return past, future
}

func (p *DateParser) ordinalDay(er recognizer.ExtractResult, g map[string]string, ref time.Time) (*DateTimeParseResult, bool) {
	day, ok := p.cfg.Int(g["day"])
	if !ok || day < 1 || day > 31 {
		return nil, false
	}
	today := dateutil.StartOfDay(ref)
	at := func(offset int) time.Time {
		return dateutil.SafeDate(ref.Year(), int(ref.Month())+offset, day, ref.Location())
	}
	this := at(0)
	past, future := this, this
	if this.Before(today) {
		future = at(1)
	}
	if this.After(today) {
		past = at(-1)
	}
	return point(er, dateutil.FormatDateTimex(0, 0, day), past, future), true
}

func (p *DateParser) nthWeekday(er recognizer.ExtractResult, g map[string]string, ref time.Time) (*DateTimeParseResult, bool) {
	n, ok1 := p.ordinal(g["ordinal"])
	wd, ok2 := p.cfg.Weekday(g["weekday"])
	if !ok1 || !ok2 {
		return nil, false
	}
	loc := ref.Location()

	if g["order"] != "" {
		swift, ok := p.cfg.Swift(g["order"])
		if !ok {
			return nil, false
		}
		month := dateutil.AddMonths(dateutil.StartOfMonth(ref), swift)
		t, ok := dateutil.NthWeekdayOfMonth(month.Year(), month.Month(), wd, n, loc)
		if !ok {
			return nil, false
		}
		return single(er, dateutil.FormatDate(t), t), true
	}

	month, ok := p.cfg.Month(g["month"])
	if !ok {
		return nil, false
	}
	if g["year"] != "" {
		year, ok := p.year(g["year"])
		if !ok {
			return nil, false
		}
		t, ok := dateutil.NthWeekdayOfMonth(year, month, wd, n, loc)
		if !ok {
			return nil, false
		}
		return single(er, dateutil.FormatDate(t), t), true
	}
	past, future := yearless(ref, func(year int) (time.Time, bool) {
		return dateutil.NthWeekdayOfMonth(year, month, wd, n, loc)
	})
	if past.IsZero() || future.IsZero() {
		return nil, false
	}
	timex := fmt.Sprintf("XXXX-%02d-WXX-%d-#%d", int(month), dateutil.ISOWeekday(wd), n)
	return point(er, timex, past, future), true
}

// agoLater resolves "3 days ago" and "in 2 weeks" against the reference day.
func (p *DateParser) agoLater(er recognizer.ExtractResult, d *extractor.Data, ref time.Time) (*DateTimeParseResult, bool) {
	if len(d.Subs) == 0 {
		return nil, false
	}
	sub, ok := p.all.Duration.Parse(d.Subs[0], ref)
	if !ok {
		return nil, false
	}
	parts, _ := p.all.Duration.Parts(d.Subs[0])
	t, _, _ := AgoLater(parts, ref, d.Direction)
	t = dateutil.StartOfDay(t)
	r := single(er, dateutil.FormatDate(t), t)
	r.SubDateTimeEntities = []*DateTimeParseResult{sub}
	return r, true
}

// relative resolves "3 days after tomorrow": the duration is applied to
// both branches of the anchor.
func (p *DateParser) relative(er recognizer.ExtractResult, d *extractor.Data, ref time.Time) (*DateTimeParseResult, bool) {
	if len(d.Subs) != 2 {
		return nil, false
	}
	parts, ok := p.all.Duration.Parts(d.Subs[0])
	if !ok {
		return nil, false
	}
	anchor, ok := p.all.Parse(d.Subs[1], ref)
	if !ok || anchor.FutureValue.Kind != KindPoint {
		return nil, false
	}
	past, _, _ := AgoLater(parts, anchor.PastValue.Time, d.Direction)
	future, _, _ := AgoLater(parts, anchor.FutureValue.Time, d.Direction)
	r := point(er, dateutil.FormatDate(future), dateutil.StartOfDay(past), dateutil.StartOfDay(future))
	r.SubDateTimeEntities = []*DateTimeParseResult{anchor}
	return r, true
}

// HolidayParser resolves named holidays. Without a year or an order word
// a holiday still ahead in the reference year is the only candidate;
// otherwise the past branch is this year's and the future branch next
// year's occurrence. The timex of a year-less holiday keeps the month and
// day of the future branch.
type HolidayParser struct{ *base }

func (p *HolidayParser) Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	d := extractor.DataOf(er)
	if d.Pattern == extractor.PatternComposite {
		return p.composite(er, ref)
	}
	g := d.Groups
	h, ok := p.cfg.Holiday(g["holiday"])
	if !ok {
		return nil, false
	}
	at := func(year int) (time.Time, bool) {
		t, ok := h.Date(year)
		if !ok {
			return time.Time{}, false
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ref.Location()), true
	}

	year := 0
	switch {
	case g["year"] != "":
		year, ok = p.year(g["year"])
	case g["order"] != "":
		var swift int
		swift, ok = p.cfg.Swift(g["order"])
		year = ref.Year() + swift
	}
	if !ok {
		return nil, false
	}
	if year != 0 {
		t, ok := at(year)
		if !ok {
			return nil, false
		}
		return single(er, dateutil.FormatDate(t), t), true
	}

	this, ok := at(ref.Year())
	past, future := this, this
	if !ok || this.Before(dateutil.StartOfDay(ref)) {
		next, okNext := at(ref.Year() + 1)
		if !okNext {
			return nil, false
		}
		future = next
		if !ok {
			past = next
			if prev, okPrev := at(ref.Year() - 1); okPrev {
				past = prev
			}
		}
	}
	return point(er, dateutil.FormatDateTimex(0, int(future.Month()), future.Day()), past, future), true
}
