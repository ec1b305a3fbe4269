package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// seasons maps a season timex onto its meteorological start month.
var seasons = map[string]time.Month{
	"SP": time.March,
	"SU": time.June,
	"FA": time.September,
	"WI": time.December,
}

// DatePeriodParser resolves spans of days. Ranges are half-open: "next
// week" ends on the Monday after it.
type DatePeriodParser struct{ *base }

func (p *DatePeriodParser) Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	d := extractor.DataOf(er)
	g := d.Groups
	loc := ref.Location()
	today := dateutil.StartOfDay(ref)

	switch d.Pattern {
	case extractor.PatternComposite:
		return p.composite(er, ref)
	case extractor.PatternRange:
		return p.between(er, d, ref)

	case "relativeUnit":
		swift, ok := p.cfg.Swift(g["order"])
		if !ok {
			return nil, false
		}
		if g["weekend"] != "" {
			start := dateutil.StartOfWeek(today).AddDate(0, 0, 7*swift+5)
			year, week := dateutil.ISOWeek(start)
			return p.fixed(er, dateutil.FormatWeekTimex(year, week)+"-WE", start, start.AddDate(0, 0, 2)), true
		}
		unit, ok := p.cfg.Unit(g["unit"])
		if !ok {
			return nil, false
		}
		return p.unitPeriod(er, unit, today, swift)

	case "nextN":
		swift, ok1 := p.cfg.Swift(g["order"])
		n, ok2 := p.cfg.Int(g["num"])
		unit, ok3 := p.cfg.Unit(g["unit"])
		if !ok1 || !ok2 || !ok3 || n < 1 || unit.IsTime() {
			return nil, false
		}
		var start, end time.Time
		if swift > 0 {
			start = today.AddDate(0, 0, 1)
			end, _, _ = AgoLater([]dateutil.DurationPart{{Value: float64(n), Unit: unit}}, start, 1)
		} else {
			end = today
			start, _, _ = AgoLater([]dateutil.DurationPart{{Value: float64(n), Unit: unit}}, end, -1)
		}
		return p.dayRange(er, start, end), true

	case "year":
		year, ok := p.year(g["year"])
		if !ok {
			return nil, false
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return p.fixed(er, fmt.Sprintf("%04d", year), start, start.AddDate(1, 0, 0)), true

	case "month", "monthYear", "monthRelative":
		return p.month(er, g, ref)

	case "monthDayRange":
		return p.monthDayRange(er, g, ref)

	case "weekOfMonth":
		return p.weekOfMonth(er, g, ref)

	case "isoWeek":
		week, ok := p.cfg.Int(g["week"])
		if !ok {
			return nil, false
		}
		year := ref.Year()
		if g["year"] != "" {
			if year, ok = p.year(g["year"]); !ok {
				return nil, false
			}
		}
		start, ok := dateutil.ISOWeekStart(year, week, loc)
		if !ok {
			return nil, false
		}
		return p.fixed(er, dateutil.FormatWeekTimex(year, week), start, start.AddDate(0, 0, 7)), true

	case "quarter", "relativeQuarter":
		return p.quarter(er, g, ref)

	case "season":
		return p.season(er, g, ref)
	}
	return nil, false
}

func (p *DatePeriodParser) fixed(er recognizer.ExtractResult, timex string, start, end time.Time) *DateTimeParseResult {
	v := rangeValue(start, end)
	return newResult(er, timex, v, v)
}

// dayRange renders [start, end) as a "(start,end,PnD)" timex.
func (p *DatePeriodParser) dayRange(er recognizer.ExtractResult, start, end time.Time) *DateTimeParseResult {
	timex := dateutil.FormatRange(dateutil.FormatDate(start), dateutil.FormatDate(end), dateutil.DurationTimexBetween(start, end, true))
	return p.fixed(er, timex, start, end)
}

func (p *DatePeriodParser) unitPeriod(er recognizer.ExtractResult, unit dateutil.Unit, today time.Time, swift int) (*DateTimeParseResult, bool) {
	switch unit {
	case dateutil.UnitWeek:
		start := dateutil.StartOfWeek(today).AddDate(0, 0, 7*swift)
		year, week := dateutil.ISOWeek(start)
		return p.fixed(er, dateutil.FormatWeekTimex(year, week), start, start.AddDate(0, 0, 7)), true
	case dateutil.UnitMonth:
		start := dateutil.AddMonths(dateutil.StartOfMonth(today), swift)
		return p.fixed(er, dateutil.FormatMonthTimex(start.Year(), int(start.Month())), start, start.AddDate(0, 1, 0)), true
	case dateutil.UnitYear:
		start := time.Date(today.Year()+swift, time.January, 1, 0, 0, 0, 0, today.Location())
		return p.fixed(er, fmt.Sprintf("%04d", start.Year()), start, start.AddDate(1, 0, 0)), true
	case dateutil.UnitDay:
		start := today.AddDate(0, 0, swift)
		return p.fixed(er, dateutil.FormatDate(start), start, start.AddDate(0, 0, 1)), true
	}
	return nil, false
}

// month resolves a month with an explicit year, a relative year or none.
func (p *DatePeriodParser) month(er recognizer.ExtractResult, g map[string]string, ref time.Time) (*DateTimeParseResult, bool) {
	m, ok := p.cfg.Month(g["month"])
	if !ok {
		return nil, false
	}
	loc := ref.Location()
	at := func(year int) time.Time { return time.Date(year, m, 1, 0, 0, 0, 0, loc) }
	var year int
	switch {
	case g["year"] != "":
		if year, ok = p.year(g["year"]); !ok {
			return nil, false
		}
	case g["order"] != "":
		swift, ok := p.cfg.Swift(g["order"])
		if !ok {
			return nil, false
		}
		year = ref.Year() + swift
	}
	if year != 0 {
		start := at(year)
		return p.fixed(er, dateutil.FormatMonthTimex(year, int(m)), start, start.AddDate(0, 1, 0)), true
	}

	past, future := at(ref.Year()), at(ref.Year())
	if m < ref.Month() {
		future = at(ref.Year() + 1)
	}
	if m > ref.Month() {
		past = at(ref.Year() - 1)
	}
	return newResult(er, dateutil.FormatMonthTimex(0, int(m)),
		rangeValue(past, past.AddDate(0, 1, 0)), rangeValue(future, future.AddDate(0, 1, 0))), true
}

// monthDayRange resolves "June 1-7" to [June 1, June 8).
func (p *DatePeriodParser) monthDayRange(er recognizer.ExtractResult, g map[string]string, ref time.Time) (*DateTimeParseResult, bool) {
	m, ok1 := p.cfg.Month(g["month"])
	d1, ok2 := p.cfg.Int(g["day1"])
	d2, ok3 := p.cfg.Int(g["day2"])
	if !ok1 || !ok2 || !ok3 || d1 < 1 || d2 < d1 || d2 > 31 {
		return nil, false
	}
	loc := ref.Location()
	at := func(year int) (time.Time, bool) { return dateutil.SafeDate(year, int(m), d1, loc), true }

	year := 0
	if g["year"] != "" {
		var ok bool
		if year, ok = p.year(g["year"]); !ok {
			return nil, false
		}
	}
	length := d2 - d1 + 1
	if year != 0 {
		start, _ := at(year)
		end := dateutil.SafeDate(year, int(m), d2, loc).AddDate(0, 0, 1)
		return p.dayRange(er, start, end), true
	}
	past, future := yearless(ref, at)
	after := dateutil.SafeDate(2000, int(m), d2, time.UTC).AddDate(0, 0, 1)
	timex := dateutil.FormatRange(dateutil.FormatDateTimex(0, int(m), d1), dateutil.FormatDateTimex(0, int(after.Month()), after.Day()),
		fmt.Sprintf("P%dD", length))
	return newResult(er, timex,
		rangeValue(past, past.AddDate(0, 0, length)), rangeValue(future, future.AddDate(0, 0, length))), true
}

// weekOfMonth resolves "the first week of May" to the Monday based week
// holding the first day of that week of the month.
func (p *DatePeriodParser) weekOfMonth(er recognizer.ExtractResult, g map[string]string, ref time.Time) (*DateTimeParseResult, bool) {
	n, ok := p.ordinal(g["ordinal"])
	if !ok || n == 0 || n > 5 {
		return nil, false
	}
	loc := ref.Location()
	var month time.Time
	switch {
	case g["order"] != "":
		swift, ok := p.cfg.Swift(g["order"])
		if !ok {
			return nil, false
		}
		month = dateutil.AddMonths(dateutil.StartOfMonth(ref), swift)
	default:
		m, ok := p.cfg.Month(g["month"])
		if !ok {
			return nil, false
		}
		year := ref.Year()
		if g["year"] != "" {
			if year, ok = p.year(g["year"]); !ok {
				return nil, false
			}
		}
		month = time.Date(year, m, 1, 0, 0, 0, 0, loc)
	}
	day := month.AddDate(0, 0, 7*(n-1))
	if n < 0 {
		day = month.AddDate(0, 1, -1)
	}
	if day.Month() != month.Month() {
		return nil, false
	}
	start := dateutil.StartOfWeek(day)
	timex := fmt.Sprintf("%04d-%02d-W%02d", month.Year(), int(month.Month()), (day.Day()-1)/7+1)
	return p.fixed(er, timex, start, start.AddDate(0, 0, 7)), true
}

func (p *DatePeriodParser) quarter(er recognizer.ExtractResult, g map[string]string, ref time.Time) (*DateTimeParseResult, bool) {
	loc := ref.Location()
	year := ref.Year()
	current := (int(ref.Month())-1)/3 + 1
	var q int
	var ok bool
	switch {
	case g["quarter"] != "":
		q, ok = p.cfg.Int(strings.TrimPrefix(strings.ToLower(g["quarter"]), "q"))
	case g["ordinal"] != "":
		q, ok = p.ordinal(g["ordinal"])
		if q == -1 {
			q = 4
		}
	case g["order"] != "":
		var swift int
		swift, ok = p.cfg.Swift(g["order"])
		q = current + swift
		for q < 1 {
			q += 4
			year--
		}
		for q > 4 {
			q -= 4
			year++
		}
	}
	if !ok || q < 1 || q > 4 {
		return nil, false
	}
	if g["year"] != "" {
		if year, ok = p.year(g["year"]); !ok {
			return nil, false
		}
	}
	start := time.Date(year, time.Month(3*(q-1)+1), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 3, 0)
	timex := dateutil.FormatRange(dateutil.FormatDate(start), dateutil.FormatDate(end), "P3M")
	return p.fixed(er, timex, start, end), true
}

func (p *DatePeriodParser) season(er recognizer.ExtractResult, g map[string]string, ref time.Time) (*DateTimeParseResult, bool) {
	code, ok := p.cfg.Seasons[culture.Normalize(g["season"])]
	if !ok {
		return nil, false
	}
	loc := ref.Location()
	at := func(year int) time.Time { return time.Date(year, seasons[code], 1, 0, 0, 0, 0, loc) }

	year := 0
	switch {
	case g["year"] != "":
		if year, ok = p.year(g["year"]); !ok {
			return nil, false
		}
	case g["order"] != "":
		swift, ok := p.cfg.Swift(g["order"])
		if !ok {
			return nil, false
		}
		year = ref.Year() + swift
	}
	if year != 0 {
		start := at(year)
		return p.fixed(er, fmt.Sprintf("%04d-%s", year, code), start, start.AddDate(0, 3, 0)), true
	}

	this := at(ref.Year())
	past, future := this, this
	if !this.AddDate(0, 3, 0).After(ref) {
		future = at(ref.Year() + 1)
	}
	if this.After(ref) {
		past = at(ref.Year() - 1)
	}
	return newResult(er, code,
		rangeValue(past, past.AddDate(0, 3, 0)), rangeValue(future, future.AddDate(0, 3, 0))), true
}

// between resolves a range of two dates or date periods. A date endpoint
// closes the range on that day.
func (p *DatePeriodParser) between(er recognizer.ExtractResult, d *extractor.Data, ref time.Time) (*DateTimeParseResult, bool) {
	a, b, ok := p.endpoints(d, ref)
	if !ok {
		return nil, false
	}
	past, ok1 := joinRange(a.PastValue, b.PastValue)
	future, ok2 := joinRange(a.FutureValue, b.FutureValue)
	if !ok1 || !ok2 {
		return nil, false
	}
	duration := dateutil.DurationTimexBetween(future.Start, future.End, true)
	r := newResult(er, dateutil.FormatRange(a.Timex, b.Timex, duration), past, future)
	r.SubDateTimeEntities = []*DateTimeParseResult{a, b}
	return r, true
}

func (b *base) endpoints(d *extractor.Data, ref time.Time) (*DateTimeParseResult, *DateTimeParseResult, bool) {
	if len(d.Subs) != 2 {
		return nil, nil, false
	}
	first, ok := b.all.Parse(d.Subs[0], ref)
	if !ok {
		return nil, nil, false
	}
	second, ok := b.all.Parse(d.Subs[1], ref)
	if !ok {
		return nil, nil, false
	}
	return first, second, true
}

// joinRange spans from the start of a to the end of b. A point endpoint
// contributes its instant.
func joinRange(a, b Value) (Value, bool) {
	start, end := a.Time, b.Time
	if a.Kind == KindRange {
		start = a.Start
	}
	if b.Kind == KindRange {
		end = b.End
	}
	if (a.Kind != KindPoint && a.Kind != KindRange) || (b.Kind != KindPoint && b.Kind != KindRange) || end.Before(start) {
		return Value{}, false
	}
	return rangeValue(start, end), true
}

// TimePeriodParser resolves spans within the reference day.
type TimePeriodParser struct{ *base }

func (p *TimePeriodParser) Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	d := extractor.DataOf(er)
	if d.Pattern == extractor.PatternComposite {
		return p.composite(er, ref)
	}
	start, end, timex, ok := p.clockRange(d, ref)
	if !ok {
		return nil, false
	}
	day := dateutil.StartOfDay(ref)
	v := rangeValue(day.Add(start), day.Add(end))
	r := newResult(er, timex, v, v)
	if d.Pattern == extractor.PatternRange {
		for _, sub := range d.Subs {
			if s, ok := p.all.Time.Parse(sub, ref); ok {
				r.SubDateTimeEntities = append(r.SubDateTimeEntities, s)
			}
		}
	}
	return r, true
}

// clockRange returns the offsets from midnight of a time period and its
// timex.
func (p *TimePeriodParser) clockRange(d *extractor.Data, ref time.Time) (start, end time.Duration, timex string, ok bool) {
	g := d.Groups
	switch d.Pattern {
	case "timeOfDay":
		tod, ok := p.cfg.TimeOfDay(g["tod"])
		if !ok {
			return 0, 0, "", false
		}
		return tod.Start, tod.End, tod.Timex, true

	case "hourRange":
		tp := p.all.Time
		ampm1 := g["ampm1"]
		if ampm1 == "" {
			ampm1 = g["ampm2"]
		}
		c1, ok1 := tp.clock("", map[string]string{"hour": g["hour1"], "minute": g["minute1"], "ampm": ampm1, "desc": g["desc"]})
		c2, ok2 := tp.clock("", map[string]string{"hour": g["hour2"], "minute": g["minute2"], "ampm": g["ampm2"], "desc": g["desc"]})
		if !ok1 || !ok2 {
			return 0, 0, "", false
		}
		// "11-1pm" starts in the morning.
		if g["ampm1"] == "" && c1.hour >= 12 && c1.hour > c2.hour {
			c1.hour -= 12
		}
		return clockSpan(c1, c2)

	case extractor.PatternRange:
		if len(d.Subs) != 2 {
			return 0, 0, "", false
		}
		a, ok1 := p.all.Time.Parse(d.Subs[0], ref)
		b, ok2 := p.all.Time.Parse(d.Subs[1], ref)
		if !ok1 || !ok2 {
			return 0, 0, "", false
		}
		ta, tb := a.FutureValue.Time, b.FutureValue.Time
		return clockSpan(clock{hour: ta.Hour(), minute: ta.Minute(), second: ta.Second()},
			clock{hour: tb.Hour(), minute: tb.Minute(), second: tb.Second()})
	}
	return 0, 0, "", false
}

// clockSpan renders [a, b) as "(T05,T07,PT2H)". An end before the start
// rolls over midnight.
func clockSpan(a, b clock) (time.Duration, time.Duration, string, bool) {
	start := time.Duration(a.hour)*time.Hour + time.Duration(a.minute)*time.Minute + time.Duration(a.second)*time.Second
	end := time.Duration(b.hour)*time.Hour + time.Duration(b.minute)*time.Minute + time.Duration(b.second)*time.Second
	if end <= start {
		end += 24 * time.Hour
	}
	ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	duration := dateutil.DurationTimexBetween(ref.Add(start), ref.Add(end), false)
	return start, end, dateutil.FormatRange(a.timex(), b.timex(), duration), true
}

// DateTimePeriodParser resolves spans anchored to a day and a clock.
type DateTimePeriodParser struct{ *base }

func (p *DateTimePeriodParser) Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	d := extractor.DataOf(er)
	g := d.Groups
	today := dateutil.StartOfDay(ref)

	switch d.Pattern {
	case extractor.PatternComposite:
		return p.composite(er, ref)
	case extractor.PatternRange:
		return p.between(er, d, ref)
	case extractor.PatternDatePeriod:
		return p.dateWithPeriod(er, d, ref)

	case "relativeDayTod", "orderTod", "tonight":
		n := 0
		ok := true
		switch {
		case g["relday"] != "":
			n, ok = p.cfg.SwiftDay(g["relday"])
		case g["order"] != "":
			n, ok = p.cfg.Swift(g["order"])
		}
		name := g["tod"]
		if d.Pattern == "tonight" {
			name = "night"
		}
		tod, okTod := p.cfg.TimeOfDay(name)
		if !ok || !okTod {
			return nil, false
		}
		day := today.AddDate(0, 0, n)
		v := rangeValue(day.Add(tod.Start), day.Add(tod.End))
		return newResult(er, dateutil.FormatDate(day)+tod.Timex, v, v), true

	case "nextNTime":
		swift, ok := p.cfg.Swift(g["order"])
		unit, okUnit := p.cfg.Unit(g["unit"])
		if !ok || !okUnit || !unit.IsTime() {
			return nil, false
		}
		n := 1.0
		if g["num"] != "" {
			if n, ok = p.cfg.Number(g["num"]); !ok || n <= 0 {
				return nil, false
			}
		}
		parts := []dateutil.DurationPart{{Value: n, Unit: unit}}
		start, end := ref, ref
		if swift > 0 {
			end, _, _ = AgoLater(parts, ref, 1)
		} else {
			start, _, _ = AgoLater(parts, ref, -1)
		}
		timex := dateutil.FormatRange(dateutil.FormatDateTime(start), dateutil.FormatDateTime(end), dateutil.FormatDuration(parts))
		v := rangeValue(start, end)
		return newResult(er, timex, v, v), true
	}
	return nil, false
}

// dateWithPeriod puts a time period on the day of the date part.
func (p *DateTimePeriodParser) dateWithPeriod(er recognizer.ExtractResult, d *extractor.Data, ref time.Time) (*DateTimeParseResult, bool) {
	var date *DateTimeParseResult
	var period *extractor.Data
	var periodER recognizer.ExtractResult
	for _, sub := range d.Subs {
		switch sub.Type {
		case extractor.TypeDate:
			r, ok := p.all.Date.Parse(sub, ref)
			if !ok {
				return nil, false
			}
			date = r
		case extractor.TypeTimePeriod:
			period, periodER = extractor.DataOf(sub), sub
		}
	}
	if date == nil || period == nil || date.FutureValue.Kind != KindPoint {
		return nil, false
	}
	start, end, timex, ok := p.all.TimePeriod.clockRange(period, ref)
	if !ok {
		return nil, false
	}
	if strings.HasPrefix(timex, "(") {
		inner := strings.Split(strings.Trim(timex, "()"), ",")
		timex = dateutil.FormatRange(date.Timex+inner[0], date.Timex+inner[1], inner[2])
	} else {
		timex = date.Timex + timex
	}
	past := dateutil.StartOfDay(date.PastValue.Time)
	future := dateutil.StartOfDay(date.FutureValue.Time)
	r := newResult(er, timex, rangeValue(past.Add(start), past.Add(end)), rangeValue(future.Add(start), future.Add(end)))
	if tp, ok := p.all.TimePeriod.Parse(periodER, ref); ok {
		r.SubDateTimeEntities = []*DateTimeParseResult{date, tp}
	}
	return r, true
}

// between resolves datetime-to-datetime ranges. A bare time endpoint takes
// the day of the other endpoint.
func (p *DateTimePeriodParser) between(er recognizer.ExtractResult, d *extractor.Data, ref time.Time) (*DateTimeParseResult, bool) {
	a, b, ok := p.endpoints(d, ref)
	if !ok {
		return nil, false
	}
	branch := func(av, bv Value, aTime, bTime bool) (Value, bool) {
		if av.Kind != KindPoint || bv.Kind != KindPoint {
			return Value{}, false
		}
		start, end := av.Time, bv.Time
		switch {
		case aTime && !bTime:
			start = withClock(end, start)
		case bTime && !aTime:
			end = withClock(start, end)
		}
		if !end.After(start) {
			return Value{}, false
		}
		return rangeValue(start, end), true
	}
	aTime := d.Subs[0].Type == extractor.TypeTime
	bTime := d.Subs[1].Type == extractor.TypeTime
	past, ok1 := branch(a.PastValue, b.PastValue, aTime, bTime)
	future, ok2 := branch(a.FutureValue, b.FutureValue, aTime, bTime)
	if !ok1 || !ok2 {
		return nil, false
	}
	timex := dateutil.FormatRange(dateutil.FormatDateTime(future.Start), dateutil.FormatDateTime(future.End),
		dateutil.DurationTimexBetween(future.Start, future.End, false))
	r := newResult(er, timex, past, future)
	r.SubDateTimeEntities = []*DateTimeParseResult{a, b}
	return r, true
}
