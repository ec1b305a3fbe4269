package parser

import (
	"strings"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// clock is a time of day read from pattern groups.
type clock struct {
	hour, minute, second int
	ambiguous            bool
}

func (c clock) timex() string { return dateutil.FormatTime(c.hour, c.minute, c.second) }

func (c clock) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, c.second, 0, day.Location())
}

// TimeParser resolves clock times on the reference day. An hour that may
// be read either way is flagged with CommentAmPm and resolved as am.
type TimeParser struct{ *base }

func (p *TimeParser) Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	d := extractor.DataOf(er)
	if d.Pattern == extractor.PatternComposite {
		return p.composite(er, ref)
	}
	c, ok := p.clock(d.Pattern, d.Groups)
	if !ok {
		return nil, false
	}
	r := single(er, c.timex(), c.on(ref))
	if c.ambiguous {
		r.Comment = CommentAmPm
	}
	return r, true
}

func (p *TimeParser) clock(pattern string, g map[string]string) (clock, bool) {
	if s := g["special"]; s != "" {
		h, ok := p.cfg.SpecialTimes[culture.Normalize(s)]
		return clock{hour: h}, ok
	}

	hourText := strings.TrimSpace(g["hour"])
	hour, ok := p.cfg.Int(hourText)
	if !ok {
		return clock{}, false
	}
	var c clock
	switch {
	case g["half"] != "":
		c.minute = 30
	case g["quarter"] != "":
		q, ok := p.cfg.Int(g["quarter"])
		if !ok {
			return clock{}, false
		}
		c.minute = 15 * q
	case g["minute"] != "":
		if c.minute, ok = p.minutes(g["minute"]); !ok {
			return clock{}, false
		}
	}
	if g["second"] != "" {
		if c.second, ok = p.cfg.Int(g["second"]); !ok {
			return clock{}, false
		}
	}

	if hour == 24 {
		hour = 0
	}
	explicit := hour == 0 || hour > 12 || (len(hourText) == 2 && hourText[0] == '0')
	c.hour, c.ambiguous = p.cfg.ResolveHour(hour, g["ampm"], g["desc"], explicit)

	if pattern == "toHour" {
		total := c.hour*60 - c.minute
		if total < 0 {
			total += 24 * 60
		}
		c.hour, c.minute = total/60, total%60
	}
	if c.hour < 0 || c.hour > 23 || c.minute < 0 || c.minute > 59 || c.second < 0 || c.second > 59 {
		return clock{}, false
	}
	return c, true
}

// minutes reads "half", "quarter", "20" or "20 minutes".
func (p *TimeParser) minutes(s string) (int, bool) {
	s = culture.Normalize(s)
	switch s {
	case "half":
		return 30, true
	case "quarter", "a quarter":
		return 15, true
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, " minutes"), " minute")
	return p.cfg.Int(s)
}

// DateTimeParser resolves instants: a date with a time, "now", end of day
// and durations of hours or less counted from the reference instant.
type DateTimeParser struct{ *base }

func (p *DateTimeParser) Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	d := extractor.DataOf(er)
	g := d.Groups
	today := dateutil.StartOfDay(ref)

	switch d.Pattern {
	case extractor.PatternComposite:
		return p.composite(er, ref)

	case "now":
		return single(er, "PRESENT_REF", ref), true

	case "endOfDay":
		n := 0
		if g["relday"] != "" {
			var ok bool
			if n, ok = p.cfg.SwiftDay(g["relday"]); !ok {
				return nil, false
			}
		}
		t := dateutil.EndOfDay(today.AddDate(0, 0, n))
		return single(er, dateutil.FormatDate(t)+"T23:59:59", t), true

	case "relativeDayTime":
		n, ok := p.cfg.SwiftDay(g["relday"])
		if !ok {
			return nil, false
		}
		c, ok := p.all.Time.clock(d.Pattern, g)
		if !ok {
			return nil, false
		}
		day := today.AddDate(0, 0, n)
		return single(er, dateutil.FormatDate(day)+c.timex(), c.on(day)), true

	case extractor.PatternAgoLater:
		if len(d.Subs) == 0 {
			return nil, false
		}
		parts, ok := p.all.Duration.Parts(d.Subs[0])
		if !ok {
			return nil, false
		}
		t, timex, _ := AgoLater(parts, ref, d.Direction)
		return single(er, timex, t), true

	case extractor.PatternDateTime:
		return p.join(er, d, ref)
	}
	return nil, false
}

// join combines a date part and a time part in either order.
func (p *DateTimeParser) join(er recognizer.ExtractResult, d *extractor.Data, ref time.Time) (*DateTimeParseResult, bool) {
	var date, clk *DateTimeParseResult
	for _, sub := range d.Subs {
		r, ok := p.all.Parse(sub, ref)
		if !ok {
			return nil, false
		}
		switch sub.Type {
		case extractor.TypeDate, extractor.TypeHoliday:
			date = r
		case extractor.TypeTime:
			clk = r
		}
	}
	if date == nil || clk == nil || date.FutureValue.Kind != KindPoint {
		return nil, false
	}
	t := clk.FutureValue.Time
	r := point(er, date.Timex+clk.Timex, withClock(date.PastValue.Time, t), withClock(date.FutureValue.Time, t))
	r.Comment = clk.Comment
	r.SubDateTimeEntities = []*DateTimeParseResult{date, clk}
	return r, true
}
