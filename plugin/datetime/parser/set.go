package parser

import (
	"strings"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/datetime/rrule"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

var frequencies = map[dateutil.Unit]rrule.Frequency{
	dateutil.UnitYear:   rrule.Yearly,
	dateutil.UnitMonth:  rrule.Monthly,
	dateutil.UnitWeek:   rrule.Weekly,
	dateutil.UnitDay:    rrule.Daily,
	dateutil.UnitHour:   rrule.Hourly,
	dateutil.UnitMinute: rrule.Minutely,
	dateutil.UnitSecond: rrule.Secondly,
}

// SetParser resolves recurrences. The value reads "Set: <timex>" and the
// result carries the equivalent RRULE.
type SetParser struct{ *base }

func (p *SetParser) Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	d := extractor.DataOf(er)
	if d.Pattern == extractor.PatternComposite {
		return p.composite(er, ref)
	}
	timex, rule, ok := p.rule(d, ref)
	if !ok {
		return nil, false
	}
	v := Value{Kind: KindSet, Text: "Set: " + timex}
	r := newResult(er, timex, v, v)
	r.RRule = rule.String()
	return r, true
}

func (p *SetParser) rule(d *extractor.Data, ref time.Time) (string, *rrule.Rule, bool) {
	g := d.Groups
	switch d.Pattern {
	case "everyN", "eachUnit":
		unit, ok := p.cfg.Unit(g["unit"])
		if !ok {
			return "", nil, false
		}
		n := 1
		switch num := culture.Normalize(g["num"]); num {
		case "":
		case "other":
			n = 2
		default:
			if n, ok = p.cfg.Int(num); !ok || n < 1 {
				return "", nil, false
			}
		}
		timex := dateutil.FormatDuration([]dateutil.DurationPart{{Value: float64(n), Unit: unit}})
		return timex, &rrule.Rule{Frequency: frequencies[unit], Interval: n}, true

	case "eachTod":
		tod, ok := p.cfg.TimeOfDay(g["tod"])
		if !ok {
			return "", nil, false
		}
		hour := int(tod.Start / time.Hour)
		return tod.Timex, &rrule.Rule{Frequency: rrule.Daily, Interval: 1, ByHour: []int{hour}}, true

	case "eachWeekend":
		return "XXXX-WXX-WE", &rrule.Rule{Frequency: rrule.Weekly, Interval: 1, ByDay: []rrule.Weekday{rrule.Saturday, rrule.Sunday}}, true

	case "eachWeekday", "pluralWeekday":
		name := g["weekday"]
		wd, ok := p.cfg.Weekday(name)
		if !ok {
			wd, ok = p.cfg.Weekday(strings.TrimSuffix(strings.ToLower(name), "s"))
		}
		if !ok {
			return "", nil, false
		}
		return dateutil.FormatWeekdayTimex(wd), &rrule.Rule{Frequency: rrule.Weekly, Interval: 1, ByDay: []rrule.Weekday{rrule.WeekdayOf(wd)}}, true

	case "periodic":
		timex, ok := p.cfg.Periodic[culture.Normalize(g["periodic"])]
		if !ok {
			return "", nil, false
		}
		parts, err := dateutil.ParseDuration(timex)
		if err != nil || len(parts) != 1 {
			return "", nil, false
		}
		return timex, &rrule.Rule{Frequency: frequencies[parts[0].Unit], Interval: int(parts[0].Value)}, true

	case extractor.PatternSetTime:
		return p.withTime(d, ref)
	}
	return "", nil, false
}

// withTime binds a recurrence to a time or a time period ("every day at
// 5pm", "every Monday morning").
func (p *SetParser) withTime(d *extractor.Data, ref time.Time) (string, *rrule.Rule, bool) {
	var setTimex, clockTimex string
	var rule *rrule.Rule
	var at *DateTimeParseResult
	for _, sub := range d.Subs {
		switch sub.Type {
		case extractor.TypeSet:
			var ok bool
			if setTimex, rule, ok = p.rule(extractor.DataOf(sub), ref); !ok {
				return "", nil, false
			}
		case extractor.TypeTime, extractor.TypeTimePeriod:
			r, ok := p.all.Parse(sub, ref)
			if !ok {
				return "", nil, false
			}
			at, clockTimex = r, r.Timex
		}
	}
	if rule == nil || at == nil {
		return "", nil, false
	}

	start := at.FutureValue.Time
	if at.FutureValue.Kind == KindRange {
		start = at.FutureValue.Start
	}
	rule.ByHour = []int{start.Hour()}
	if start.Minute() != 0 {
		rule.ByMinute = []int{start.Minute()}
	}

	if setTimex == "P1D" {
		return clockTimex, rule, true
	}
	return setTimex + clockTimex, rule, true
}
