package extractor

import (
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// DurationExtractor finds lengths of time and joins adjacent ones
// ("1 hour 30 minutes") into composites.
type DurationExtractor struct {
	cfg *culture.Config
}

func (e *DurationExtractor) Extract(text string, _ time.Time) []recognizer.ExtractResult {
	if blank(text) {
		return nil
	}
	ers := finalize(text, TypeDuration, matchPatterns(text, e.cfg.Patterns.Duration))
	return e.joinComposite(text, ers)
}

func (e *DurationExtractor) joinComposite(text string, ers []recognizer.ExtractResult) []recognizer.ExtractResult {
	if len(ers) < 2 || e.cfg.DurationJoiner == nil {
		return ers
	}
	var out []recognizer.ExtractResult
	for i := 0; i < len(ers); {
		j := i
		for j+1 < len(ers) && connects(e.cfg.DurationJoiner, text[ers[j].End():ers[j+1].Start]) &&
			e.smallerUnit(ers[j], ers[j+1]) {
			j++
		}
		if j == i {
			out = append(out, ers[i])
			i++
			continue
		}
		start, end := ers[i].Start, ers[j].End()
		subs := append([]recognizer.ExtractResult(nil), ers[i:j+1]...)
		out = append(out, recognizer.ExtractResult{
			Start:  start,
			Length: end - start,
			Text:   text[start:end],
			Type:   TypeDuration,
			Data:   &Data{Pattern: PatternComposite, Groups: map[string]string{}, Subs: subs},
		})
		i = j + 1
	}
	return out
}

// smallerUnit reports whether b is stated in a strictly smaller unit than a,
// so "2 days 3 hours" joins while "3 hours 3 hours" does not.
func (e *DurationExtractor) smallerUnit(a, b recognizer.ExtractResult) bool {
	ua, ok1 := e.units(a)
	ub, ok2 := e.units(b)
	if !ok1 || !ok2 || len(ua) == 0 || len(ub) == 0 {
		return false
	}
	return ua[len(ua)-1].Seconds() > ub[0].Seconds()
}

// units returns the units a duration result is stated in, largest first.
func (e *DurationExtractor) units(er recognizer.ExtractResult) ([]dateutil.Unit, bool) {
	d := DataOf(er)
	if d.Pattern == PatternComposite {
		var out []dateutil.Unit
		for _, sub := range d.Subs {
			u, ok := e.units(sub)
			if !ok {
				return nil, false
			}
			out = append(out, u...)
		}
		return out, true
	}
	u, ok := e.cfg.Unit(d.Groups["unit"])
	if !ok {
		return nil, false
	}
	return []dateutil.Unit{u}, true
}

// filterUnits keeps durations whose list of units satisfies keep.
func (e *DurationExtractor) filterUnits(ers []recognizer.ExtractResult, keep func([]dateutil.Unit) bool) []recognizer.ExtractResult {
	var out []recognizer.ExtractResult
	for _, er := range ers {
		if units, ok := e.units(er); ok && len(units) > 0 && keep(units) {
			out = append(out, er)
		}
	}
	return out
}

// dateUnits holds for durations measured in days or larger units only.
func dateUnits(units []dateutil.Unit) bool {
	for _, u := range units {
		if u.IsTime() {
			return false
		}
	}
	return true
}

func timeUnits(units []dateutil.Unit) bool { return !dateUnits(units) }

// DateExtractor finds calendar days, including durations anchored to the
// reference date ("3 days ago", "in 2 weeks") or to another date
// ("3 days after tomorrow").
type DateExtractor struct {
	cfg      *culture.Config
	duration *DurationExtractor
	holiday  *HolidayExtractor
}

func (e *DateExtractor) Extract(text string, ref time.Time) []recognizer.ExtractResult {
	if blank(text) {
		return nil
	}
	return e.extend(text, ref, e.basic(text))
}

// basic returns calendar days matched by patterns alone.
func (e *DateExtractor) basic(text string) []recognizer.ExtractResult {
	return finalize(text, TypeDate, matchPatterns(text, e.cfg.Patterns.Date))
}

func (e *DateExtractor) extend(text string, ref time.Time, base []recognizer.ExtractResult) []recognizer.ExtractResult {
	durations := e.duration.filterUnits(e.duration.Extract(text, ref), dateUnits)
	if len(durations) == 0 {
		return base
	}
	anchors := append(append([]recognizer.ExtractResult(nil), base...), e.holiday.Extract(text, ref)...)
	sortByStart(anchors)

	ms := baseMatches(base)
	ms = append(ms, relativeToDuration(text, e.cfg, durations, anchors)...)
	return finalize(text, TypeDate, ms)
}

// baseMatches turns finalized results back into matches so they can be
// merged with composed spans.
func baseMatches(ers []recognizer.ExtractResult) []match {
	out := make([]match, 0, len(ers))
	for _, er := range ers {
		out = append(out, match{start: er.Start, end: er.End(), data: DataOf(er)})
	}
	return out
}

// TimeExtractor finds clock times.
type TimeExtractor struct {
	cfg *culture.Config
}

func (e *TimeExtractor) Extract(text string, _ time.Time) []recognizer.ExtractResult {
	if blank(text) {
		return nil
	}
	return finalize(text, TypeTime, matchPatterns(text, e.cfg.Patterns.Time))
}

// DateTimeExtractor finds instants: a date joined to a time, "now", and
// durations of hours or less anchored to the reference instant.
type DateTimeExtractor struct {
	cfg      *culture.Config
	flags    Flags
	date     *DateExtractor
	time     *TimeExtractor
	duration *DurationExtractor
}

func (e *DateTimeExtractor) Extract(text string, ref time.Time) []recognizer.ExtractResult {
	if blank(text) {
		return nil
	}
	ms := matchPatterns(text, e.cfg.Patterns.DateTime)

	durations := e.duration.filterUnits(e.duration.Extract(text, ref), timeUnits)
	ms = append(ms, relativeToDuration(text, e.cfg, durations, nil)...)

	if !e.flags.SplitDateAndTime {
		dates := e.date.Extract(text, ref)
		times := e.time.Extract(text, ref)
		ms = append(ms, joinPairs(text, dates, times, e.cfg.DateTimeConnector, PatternDateTime)...)
		ms = append(ms, joinPairs(text, times, dates, e.cfg.TimeDateConnector, PatternDateTime)...)
	}
	return finalize(text, TypeDateTime, ms)
}
