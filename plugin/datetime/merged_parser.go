package datetime

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hrygo/chronoparse/internal/observability"
	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/datetime/parser"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// Modifiers recorded by the merged extractor.
const (
	ModBefore = "before"
	ModAfter  = "after"
	ModSince  = "since"
	ModUntil  = "until"
	ModMore   = "more"
	ModLess   = "less"
)

const valueNotApplicable = "not applicable"

// MergedParser dispatches extraction results to the category parsers and
// assembles the boundary entries of each result.
type MergedParser struct {
	parsers *parser.Parsers
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewMergedParser builds the merged parser of cfg. A nil metrics disables
// failure counting.
func NewMergedParser(cfg *culture.Config, logger *slog.Logger, metrics *observability.Metrics) *MergedParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &MergedParser{parsers: parser.New(cfg), logger: logger, metrics: metrics}
}

// Parse resolves er and fills its Values. It returns false when the
// category parser could not resolve the span.
func (p *MergedParser) Parse(er recognizer.ExtractResult, ref time.Time) (*parser.DateTimeParseResult, bool) {
	r, ok := p.parsers.Parse(er, ref)
	if !ok || r == nil {
		p.logger.Debug("datetime span not resolved",
			slog.String(observability.LogFieldEntityType, er.Type),
			slog.String("text", er.Text),
			slog.Int("start", er.Start),
		)
		if p.metrics != nil {
			p.metrics.RecordParseFailure(er.Type)
		}
		return nil, false
	}
	r.Values = entries(r)
	return r, true
}

// TypeName returns the boundary type name of an extraction type.
func TypeName(typ string) string {
	if typ == extractor.TypeHoliday {
		return extractor.TypeDate
	}
	return typ
}

func rangeTypeOf(typ string) string {
	switch typ {
	case extractor.TypeDate:
		return extractor.TypeDatePeriod
	case extractor.TypeTime:
		return extractor.TypeTimePeriod
	case extractor.TypeDateTime:
		return extractor.TypeDateTimePeriod
	}
	return typ
}

// entries builds one entry per distinct branch, past first. The mod picks
// a single branch: since reads the past, before, after and until read the
// future. An hour that may be am or pm adds a pm entry after each point.
func entries(r *parser.DateTimeParseResult) []*recognizer.OrderedMap {
	typ := TypeName(r.Type)
	var branches []parser.Value
	switch r.Mod {
	case ModSince:
		branches = []parser.Value{r.PastValue}
	case ModBefore, ModAfter, ModUntil:
		branches = []parser.Value{r.FutureValue}
	default:
		branches = []parser.Value{r.PastValue, r.FutureValue}
	}

	var out []*recognizer.OrderedMap
	seen := make(map[string]bool)
	add := func(m *recognizer.OrderedMap) {
		key := entryKey(m)
		if !seen[key] {
			seen[key] = true
			out = append(out, m)
		}
	}
	for _, v := range branches {
		add(entry(r, typ, r.Timex, v))
		if r.Comment == parser.CommentAmPm && v.Kind == parser.KindPoint {
			if timex, ok := pmTimex(r.Timex); ok {
				pm := v
				pm.Time = v.Time.Add(12 * time.Hour)
				add(entry(r, typ, timex, pm))
			}
		}
	}
	return out
}

func entry(r *parser.DateTimeParseResult, typ, timex string, v parser.Value) *recognizer.OrderedMap {
	m := recognizer.NewOrderedMap().Set("timex", timex)
	switch v.Kind {
	case parser.KindPoint:
		value := parser.Format(r.Type, v.Time)
		switch r.Mod {
		case ModBefore, ModUntil:
			return m.Set("type", rangeTypeOf(typ)).Set("mod", r.Mod).Set("end", value)
		case ModAfter, ModSince:
			return m.Set("type", rangeTypeOf(typ)).Set("mod", r.Mod).Set("start", value)
		}
		return m.Set("type", typ).Set("value", value)

	case parser.KindRange:
		start, end := parser.Format(r.Type, v.Start), parser.Format(r.Type, v.End)
		m.Set("type", typ)
		switch r.Mod {
		case ModBefore:
			return m.Set("mod", r.Mod).Set("end", start)
		case ModAfter:
			return m.Set("mod", r.Mod).Set("start", end)
		case ModSince:
			return m.Set("mod", r.Mod).Set("start", start)
		case ModUntil:
			return m.Set("mod", r.Mod).Set("end", end)
		}
		return m.Set("start", start).Set("end", end)

	case parser.KindDuration:
		m.Set("type", typ)
		if r.Mod != "" {
			m.Set("mod", r.Mod)
		}
		return m.Set("value", strconv.FormatFloat(v.Seconds, 'f', -1, 64))

	case parser.KindSet:
		m.Set("type", typ).Set("value", valueNotApplicable)
		if r.RRule != "" {
			m.Set("rrule", r.RRule)
		}
		return m
	}
	return m.Set("type", typ).Set("value", parser.ValueNotResolved)
}

// pmTimex moves the hour of the last clock part of timex by 12 hours.
func pmTimex(timex string) (string, bool) {
	i := strings.LastIndex(timex, "T")
	if i < 0 || len(timex) < i+3 {
		return "", false
	}
	hour, err := strconv.Atoi(timex[i+1 : i+3])
	if err != nil || hour >= 12 {
		return "", false
	}
	return timex[:i+1] + fmt.Sprintf("%02d", hour+12) + timex[i+3:], true
}

func entryKey(m *recognizer.OrderedMap) string {
	var b strings.Builder
	for _, k := range m.Keys() {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m.String(k))
		b.WriteByte(';')
	}
	return b.String()
}
