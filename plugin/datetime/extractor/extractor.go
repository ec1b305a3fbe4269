// Package extractor finds datetime spans in text. There is one extractor
// per category; all of them are driven by the pattern lists and connector
// expressions of a culture.Config.
package extractor

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// Category types carried in ExtractResult.Type.
const (
	TypeDate           = "date"
	TypeTime           = "time"
	TypeDateTime       = "datetime"
	TypeDuration       = "duration"
	TypeDatePeriod     = "daterange"
	TypeTimePeriod     = "timerange"
	TypeDateTimePeriod = "datetimerange"
	TypeHoliday        = "holiday"
	TypeSet            = "set"
)

// Names of spans assembled from other results rather than a single pattern.
const (
	PatternComposite  = "composite"
	PatternAgoLater   = "agoLater"
	PatternRelative   = "relativeToDate"
	PatternDateTime   = "dateTime"
	PatternRange      = "range"
	PatternDatePeriod = "dateWithPeriod"
	PatternSetTime    = "setWithTime"
)

// Data is the payload of every ExtractResult produced by this package.
type Data struct {
	// Pattern names the winning pattern or one of the Pattern* constants.
	Pattern string
	// Groups holds the named sub-matches of the winning pattern.
	Groups map[string]string
	// Subs are the results the span was composed of, in text order.
	Subs []recognizer.ExtractResult
	// Direction is -1 (ago, before) or 1 (later, after) for relative spans.
	Direction int
	// Mod is the modifier detected around the span by the merged extractor.
	Mod string
}

// DataOf returns the payload of er, or an empty Data.
func DataOf(er recognizer.ExtractResult) *Data {
	if d, ok := er.Data.(*Data); ok && d != nil {
		return d
	}
	return &Data{Groups: map[string]string{}}
}

// Flags toggles optional merge steps.
type Flags struct {
	SkipFromToMerge  bool
	SplitDateAndTime bool
}

// Extractors bundles the category extractors of one culture.
type Extractors struct {
	Date           *DateExtractor
	Time           *TimeExtractor
	DateTime       *DateTimeExtractor
	Duration       *DurationExtractor
	DatePeriod     *DatePeriodExtractor
	TimePeriod     *TimePeriodExtractor
	DateTimePeriod *DateTimePeriodExtractor
	Holiday        *HolidayExtractor
	Set            *SetExtractor
}

// New wires all category extractors for cfg.
func New(cfg *culture.Config, flags Flags) *Extractors {
	e := &Extractors{}
	e.Duration = &DurationExtractor{cfg: cfg}
	e.Holiday = &HolidayExtractor{cfg: cfg}
	e.Time = &TimeExtractor{cfg: cfg}
	e.Date = &DateExtractor{cfg: cfg, duration: e.Duration, holiday: e.Holiday}
	e.DateTime = &DateTimeExtractor{cfg: cfg, flags: flags, date: e.Date, time: e.Time, duration: e.Duration}
	e.DatePeriod = &DatePeriodExtractor{cfg: cfg, flags: flags, date: e.Date}
	e.TimePeriod = &TimePeriodExtractor{cfg: cfg, flags: flags, time: e.Time}
	e.DateTimePeriod = &DateTimePeriodExtractor{
		cfg:        cfg,
		flags:      flags,
		date:       e.Date,
		time:       e.Time,
		dateTime:   e.DateTime,
		timePeriod: e.TimePeriod,
	}
	e.Set = &SetExtractor{cfg: cfg, time: e.Time, timePeriod: e.TimePeriod}
	return e
}

// All returns the extractors in merge priority order.
func (e *Extractors) All() []recognizer.Extractor {
	return []recognizer.Extractor{
		e.DateTime, e.Date, e.Time, e.Holiday, e.DatePeriod,
		e.DateTimePeriod, e.TimePeriod, e.Set, e.Duration,
	}
}

// match is a raw pattern hit before token merging.
type match struct {
	start, end int
	data       *Data
}

func (m match) length() int { return m.end - m.start }

// ContextWindow bounds, in bytes, the text inspected around a span for
// prefixes, suffixes, modifiers and connectors.
const ContextWindow = 64

// LeadingContext returns at most ContextWindow bytes of text ending at
// offset, and the offset the returned slice starts at. The cut never
// splits a rune or an ASCII word.
func LeadingContext(text string, offset int) (string, int) {
	lo := offset - ContextWindow
	if lo <= 0 {
		return text[:offset], 0
	}
	for lo < offset && !utf8.RuneStart(text[lo]) {
		lo++
	}
	if isWordByte(text[lo-1]) {
		for lo < offset && isWordByte(text[lo]) {
			lo++
		}
	}
	return text[lo:offset], lo
}

// TrailingContext returns at most ContextWindow bytes of text starting at
// offset, cut like LeadingContext.
func TrailingContext(text string, offset int) string {
	hi := offset + ContextWindow
	if hi >= len(text) {
		return text[offset:]
	}
	for hi > offset && !utf8.RuneStart(text[hi]) {
		hi--
	}
	if isWordByte(text[hi]) {
		for hi > offset && isWordByte(text[hi-1]) {
			hi--
		}
	}
	return text[offset:hi]
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func matchPatterns(text string, patterns []culture.Pattern) []match {
	var out []match
	for _, p := range patterns {
		names := p.Regexp.SubexpNames()
		for _, loc := range p.Regexp.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[0], loc[1]
			groups := make(map[string]string, len(names))
			for i, name := range names {
				if i == 0 || name == "" || loc[2*i] < 0 {
					continue
				}
				if name == "value" {
					start, end = loc[2*i], loc[2*i+1]
					continue
				}
				groups[name] = text[loc[2*i]:loc[2*i+1]]
			}
			start, end = trimSpan(text, start, end)
			if end <= start {
				continue
			}
			out = append(out, match{start: start, end: end, data: &Data{Pattern: p.Name, Groups: groups}})
		}
	}
	return out
}

func trimSpan(text string, start, end int) (int, int) {
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// finalize merges raw matches into maximal spans of type typ. A span
// covered by one match takes that match's data; a span stitched from
// side-by-side matches becomes a composite. Otherwise the longest match
// wins, earlier patterns breaking ties.
func finalize(text, typ string, ms []match) []recognizer.ExtractResult {
	if len(ms) == 0 {
		return nil
	}
	tokens := make([]recognizer.Token, len(ms))
	for i, m := range ms {
		tokens[i] = recognizer.Token{Start: m.start, End: m.end}
	}
	results := recognizer.MergeAllTokens(tokens, text, typ)

	// Results are disjoint and ordered, so one pass over the matches in
	// start order hands every match to the result containing it.
	order := make([]int, len(ms))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return ms[order[a]].start < ms[order[b]].start })

	k := 0
	inside := make([]match, 0, 8)
	for i := range results {
		er := &results[i]
		for k < len(order) && ms[order[k]].start < er.Start {
			k++
		}
		inside = inside[:0]
		best := -1
		for ; k < len(order) && ms[order[k]].start < er.End(); k++ {
			j := order[k]
			m := ms[j]
			if m.end > er.End() || m.end <= m.start {
				continue
			}
			inside = append(inside, m)
			if best < 0 || m.length() > ms[best].length() || (m.length() == ms[best].length() && j < best) {
				best = j
			}
		}
		if best < 0 {
			er.Data = &Data{Groups: map[string]string{}}
			continue
		}
		b := ms[best]
		if b.start == er.Start && b.end == er.End() {
			er.Data = b.data
			continue
		}
		if chain := tile(inside, er.Start, er.End()); len(chain) > 1 {
			subs := make([]recognizer.ExtractResult, len(chain))
			for j, m := range chain {
				subs[j] = result(text, typ, m)
			}
			er.Data = &Data{Pattern: PatternComposite, Groups: b.data.Groups, Subs: subs}
			continue
		}
		er.Data = b.data
	}
	return results
}

// tile picks longest matches left to right that exactly tile [start, end)
// without overlapping. ms must be ordered by start. It returns nil when no
// such tiling exists.
func tile(ms []match, start, end int) []match {
	var chain []match
	pos, i := start, 0
	for pos < end {
		for i < len(ms) && ms[i].start < pos {
			i++
		}
		next := -1
		for ; i < len(ms) && ms[i].start == pos; i++ {
			if next < 0 || ms[i].length() > ms[next].length() {
				next = i
			}
		}
		if next < 0 {
			return nil
		}
		chain = append(chain, ms[next])
		pos = ms[next].end
	}
	return chain
}

func result(text, typ string, m match) recognizer.ExtractResult {
	return recognizer.ExtractResult{
		Start:  m.start,
		Length: m.length(),
		Text:   text[m.start:m.end],
		Type:   typ,
		Data:   m.data,
	}
}

func blank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// connects reports whether gap, which must be short, matches re.
func connects(re *regexp.Regexp, gap string) bool {
	return re != nil && len(gap) <= ContextWindow && re.MatchString(gap)
}

func sortByStart(ers []recognizer.ExtractResult) {
	sort.SliceStable(ers, func(i, j int) bool {
		if ers[i].Start != ers[j].Start {
			return ers[i].Start < ers[j].Start
		}
		return ers[i].Length > ers[j].Length
	})
}

// nextAfter returns the result closest to offset that starts at or after
// it, the longest one on ties. ers must be ordered as sortByStart leaves
// them.
func nextAfter(ers []recognizer.ExtractResult, offset int) (recognizer.ExtractResult, bool) {
	i := sort.Search(len(ers), func(i int) bool { return ers[i].Start >= offset })
	if i == len(ers) {
		return recognizer.ExtractResult{}, false
	}
	return ers[i], true
}

// joinPairs joins every left result with the nearest right result that
// follows it through a gap accepted by connector.
func joinPairs(text string, left, right []recognizer.ExtractResult, connector *regexp.Regexp, pattern string) []match {
	if connector == nil || len(right) == 0 {
		return nil
	}
	var out []match
	for _, l := range left {
		r, ok := nextAfter(right, l.End())
		if !ok || !connects(connector, text[l.End():r.Start]) {
			continue
		}
		out = append(out, match{
			start: l.Start,
			end:   r.End(),
			data:  &Data{Pattern: pattern, Groups: map[string]string{}, Subs: []recognizer.ExtractResult{l, r}},
		})
	}
	return out
}

// rangeMatches joins consecutive endpoints separated by a range connector
// ("from X to Y", "X - Y") or by the between connector when the first
// endpoint is preceded by the between prefix.
func rangeMatches(text string, cfg *culture.Config, points []recognizer.ExtractResult) []match {
	var out []match
	for _, a := range points {
		b, ok := nextAfter(points, a.End())
		if !ok {
			continue
		}
		gap := text[a.End():b.Start]
		before, lo := LeadingContext(text, a.Start)
		start := a.Start
		switch {
		case connects(cfg.RangeConnector, gap):
			if cfg.RangeFromPrefix != nil {
				if loc := cfg.RangeFromPrefix.FindStringIndex(before); loc != nil {
					start = lo + loc[0]
				}
			}
		case connects(cfg.BetweenConnector, gap) && cfg.BetweenPrefix != nil:
			loc := cfg.BetweenPrefix.FindStringIndex(before)
			if loc == nil {
				continue
			}
			start = lo + loc[0]
		default:
			continue
		}
		out = append(out, match{
			start: start,
			end:   b.End(),
			data:  &Data{Pattern: PatternRange, Groups: map[string]string{}, Subs: []recognizer.ExtractResult{a, b}},
		})
	}
	return out
}

// relativeToDuration finds durations qualified by an ago/later suffix or a
// later prefix, and durations placed before or after an anchor result.
func relativeToDuration(text string, cfg *culture.Config, durations, anchors []recognizer.ExtractResult) []match {
	var out []match
	for _, d := range durations {
		if cfg.AgoLaterSuffix != nil {
			after := TrailingContext(text, d.End())
			if loc := cfg.AgoLaterSuffix.FindStringSubmatchIndex(after); loc != nil {
				dir := direction(cfg, cfg.AgoLaterSuffix, after, loc)
				out = append(out, agoLater(d, d.Start, d.End()+loc[1], dir))
				continue
			}
		}
		if cfg.LaterPrefix != nil {
			before, lo := LeadingContext(text, d.Start)
			if loc := cfg.LaterPrefix.FindStringSubmatchIndex(before); loc != nil {
				dir := direction(cfg, cfg.LaterPrefix, before, loc)
				out = append(out, agoLater(d, lo+loc[0], d.End(), dir))
				continue
			}
		}
		if cfg.RelativeConnector == nil {
			continue
		}
		anchor, ok := nextAfter(anchors, d.End())
		if !ok {
			continue
		}
		gap := text[d.End():anchor.Start]
		if len(gap) > ContextWindow {
			continue
		}
		loc := cfg.RelativeConnector.FindStringSubmatchIndex(gap)
		if loc == nil {
			continue
		}
		out = append(out, match{
			start: d.Start,
			end:   anchor.End(),
			data: &Data{
				Pattern:   PatternRelative,
				Groups:    map[string]string{},
				Subs:      []recognizer.ExtractResult{d, anchor},
				Direction: direction(cfg, cfg.RelativeConnector, gap, loc),
			},
		})
	}
	return out
}

func agoLater(d recognizer.ExtractResult, start, end, dir int) match {
	return match{
		start: start,
		end:   end,
		data: &Data{
			Pattern:   PatternAgoLater,
			Groups:    map[string]string{},
			Subs:      []recognizer.ExtractResult{d},
			Direction: dir,
		},
	}
}

func direction(cfg *culture.Config, re *regexp.Regexp, s string, loc []int) int {
	idx := re.SubexpIndex("direction")
	if idx < 0 || loc[2*idx] < 0 {
		return 1
	}
	if dir, ok := cfg.Direction(s[loc[2*idx]:loc[2*idx+1]]); ok {
		return dir
	}
	return 1
}
