// Package parser resolves extracted datetime spans into timex strings and
// concrete values. Every category parser keeps a past and a future branch;
// when the text pins a single instant both branches hold the same value.
package parser

import (
	"strconv"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// Kind tells which fields of a Value are meaningful.
type Kind int

const (
	KindUnresolved Kind = iota
	KindPoint
	KindRange
	KindDuration
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindRange:
		return "range"
	case KindDuration:
		return "duration"
	case KindSet:
		return "set"
	}
	return "unresolved"
}

// Value is a resolved datetime: an instant, a half-open range, a length in
// seconds or a recurrence description.
type Value struct {
	Kind    Kind
	Time    time.Time
	Start   time.Time
	End     time.Time
	Seconds float64
	Text    string
}

func pointValue(t time.Time) Value { return Value{Kind: KindPoint, Time: t} }
func rangeValue(start, end time.Time) Value { return Value{Kind: KindRange, Start: start, End: end} }

// CommentAmPm marks a clock reading that may be either am or pm.
const CommentAmPm = "ampm"

// ValueNotResolved is the resolution value of a result without a concrete
// value.
const ValueNotResolved = "not resolved"

// DateTimeParseResult is an ExtractResult with its resolution.
type DateTimeParseResult struct {
	recognizer.ExtractResult

	Timex   string
	Success bool
	Mod     string
	Comment string

	FutureResolution *recognizer.OrderedMap
	PastResolution   *recognizer.OrderedMap
	FutureValue      Value
	PastValue        Value

	// RRule is the recurrence rule of a set.
	RRule string

	SubDateTimeEntities []*DateTimeParseResult

	// Values holds the boundary entries; it is filled by the merged parser.
	Values []*recognizer.OrderedMap
}

// Parser resolves one extracted span. ok is false when the span was
// recognized but cannot be resolved.
type Parser interface {
	Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool)
}

// Parsers bundles the category parsers of one culture.
type Parsers struct {
	Date           *DateParser
	Time           *TimeParser
	DateTime       *DateTimeParser
	Duration       *DurationParser
	DatePeriod     *DatePeriodParser
	TimePeriod     *TimePeriodParser
	DateTimePeriod *DateTimePeriodParser
	Holiday        *HolidayParser
	Set            *SetParser
}

// base is shared by the category parsers. all lets composed spans hand
// their parts to the parser of the part's category.
type base struct {
	cfg *culture.Config
	all *Parsers
}

// New wires all category parsers for cfg.
func New(cfg *culture.Config) *Parsers {
	p := &Parsers{}
	b := &base{cfg: cfg, all: p}
	p.Date = &DateParser{b}
	p.Time = &TimeParser{b}
	p.DateTime = &DateTimeParser{b}
	p.Duration = &DurationParser{b}
	p.DatePeriod = &DatePeriodParser{b}
	p.TimePeriod = &TimePeriodParser{b}
	p.DateTimePeriod = &DateTimePeriodParser{b}
	p.Holiday = &HolidayParser{b}
	p.Set = &SetParser{b}
	return p
}

// For returns the parser of an extraction type.
func (p *Parsers) For(typ string) (Parser, bool) {
	switch typ {
	case extractor.TypeDate:
		return p.Date, true
	case extractor.TypeTime:
		return p.Time, true
	case extractor.TypeDateTime:
		return p.DateTime, true
	case extractor.TypeDuration:
		return p.Duration, true
	case extractor.TypeDatePeriod:
		return p.DatePeriod, true
	case extractor.TypeTimePeriod:
		return p.TimePeriod, true
	case extractor.TypeDateTimePeriod:
		return p.DateTimePeriod, true
	case extractor.TypeHoliday:
		return p.Holiday, true
	case extractor.TypeSet:
		return p.Set, true
	}
	return nil, false
}

// Parse dispatches er to the parser of its type.
func (p *Parsers) Parse(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	cp, ok := p.For(er.Type)
	if !ok {
		return nil, false
	}
	return cp.Parse(er, ref)
}

// composite parses the longest part of a span stitched from side-by-side
// matches and reports the result over the whole span.
func (b *base) composite(er recognizer.ExtractResult, ref time.Time) (*DateTimeParseResult, bool) {
	subs := extractor.DataOf(er).Subs
	if len(subs) == 0 {
		return nil, false
	}
	longest := subs[0]
	for _, s := range subs[1:] {
		if s.Length > longest.Length {
			longest = s
		}
	}
	r, ok := b.all.Parse(longest, ref)
	if !ok {
		return nil, false
	}
	out := *r
	out.ExtractResult = er
	out.SubDateTimeEntities = []*DateTimeParseResult{r}
	return &out, true
}

func (b *base) year(s string) (int, bool) {
	y, ok := b.cfg.Int(s)
	if !ok || y < 0 {
		return 0, false
	}
	if y < 100 && len(s) == 2 {
		y += 2000
	}
	return y, true
}

// ordinal reads an ordinal word, falling back to a plain number.
func (b *base) ordinal(s string) (int, bool) {
	if n, ok := b.cfg.Ordinal(s); ok {
		return n, true
	}
	return b.cfg.Int(s)
}

func newResult(er recognizer.ExtractResult, timex string, past, future Value) *DateTimeParseResult {
	return &DateTimeParseResult{
		ExtractResult:    er,
		Timex:            timex,
		Success:          true,
		Mod:              extractor.DataOf(er).Mod,
		PastValue:        past,
		FutureValue:      future,
		PastResolution:   Resolution(er.Type, past),
		FutureResolution: Resolution(er.Type, future),
	}
}

func point(er recognizer.ExtractResult, timex string, past, future time.Time) *DateTimeParseResult {
	return newResult(er, timex, pointValue(past), pointValue(future))
}

func single(er recognizer.ExtractResult, timex string, t time.Time) *DateTimeParseResult {
	return point(er, timex, t, t)
}

// Resolution renders v as the ordered map of a result of type typ.
func Resolution(typ string, v Value) *recognizer.OrderedMap {
	m := recognizer.NewOrderedMap()
	switch v.Kind {
	case KindPoint:
		m.Set("value", Format(typ, v.Time))
	case KindRange:
		m.Set("start", Format(typ, v.Start)).Set("end", Format(typ, v.End))
	case KindDuration:
		m.Set("value", strconv.FormatFloat(v.Seconds, 'f', -1, 64))
	case KindSet:
		m.Set("value", v.Text)
	default:
		m.Set("value", ValueNotResolved)
	}
	return m
}

// Format renders t at the granularity of type typ.
func Format(typ string, t time.Time) string {
	switch typ {
	case extractor.TypeTime, extractor.TypeTimePeriod:
		return dateutil.ResolveTime(t)
	case extractor.TypeDateTime, extractor.TypeDateTimePeriod:
		return dateutil.ResolveDateTime(t)
	}
	return dateutil.ResolveDate(t)
}

// withClock puts the time of day of clock on the calendar day of day.
func withClock(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, day.Location())
}
