// Package culture holds the per-culture grammar of the datetime recognizer:
// ordered pattern lists, lexicons and small locale hooks. A Config is built
// once per culture and never mutated afterwards, so it is shared freely
// between goroutines.
package culture

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
)

// Pattern is a named regular expression. Sub-matches are read through
// named groups; a group called "value" narrows the reported span.
type Pattern struct {
	Name   string
	Regexp *regexp.Regexp
}

// Patterns lists the grammar of each datetime category in priority order.
type Patterns struct {
	Date           []Pattern
	Time           []Pattern
	DateTime       []Pattern
	Duration       []Pattern
	DatePeriod     []Pattern
	TimePeriod     []Pattern
	DateTimePeriod []Pattern
	Holiday        []Pattern
	Set            []Pattern
}

// TimeOfDay is a named part of the day mapped to a fixed clock range.
type TimeOfDay struct {
	Timex string
	Start time.Duration
	End   time.Duration
}

// Modifier attaches a modifier (before, after, since, until, more, less)
// to a span preceded by Leading or followed by Trailing.
type Modifier struct {
	Mod       string
	Leading   *regexp.Regexp
	Trailing  *regexp.Regexp
	Durations bool
}

// Config is the immutable grammar of one culture.
type Config struct {
	Code string

	Patterns Patterns

	DayOfWeek    map[string]time.Weekday
	MonthOfYear  map[string]time.Month
	Numbers      map[string]float64
	Ordinals     map[string]int
	Units        map[string]dateutil.Unit
	Order        map[string]int
	RelativeDays map[string]int
	Directions   map[string]int
	TimesOfDay   map[string]TimeOfDay
	SpecialTimes map[string]int
	Holidays     map[string]Holiday
	Seasons      map[string]string
	Inexact      map[string]float64
	Periodic     map[string]string

	// RangeConnector matches the whole gap between two range endpoints.
	RangeConnector *regexp.Regexp
	// RangeFromPrefix optionally precedes the first endpoint.
	RangeFromPrefix *regexp.Regexp
	// BetweenPrefix must precede the first endpoint when BetweenConnector joins them.
	BetweenPrefix    *regexp.Regexp
	BetweenConnector *regexp.Regexp

	DateTimeConnector *regexp.Regexp
	TimeDateConnector *regexp.Regexp
	SetTimeConnector  *regexp.Regexp
	DurationJoiner    *regexp.Regexp

	// AgoLaterSuffix follows a duration; LaterPrefix precedes one.
	AgoLaterSuffix *regexp.Regexp
	LaterPrefix    *regexp.Regexp
	// RelativeConnector joins a duration and a date ("3 days after tomorrow").
	RelativeConnector *regexp.Regexp

	Modifiers       []Modifier
	AmbiguousWords  map[string]bool
	AmbiguityRescue *regexp.Regexp

	// DayFirst reads numeric dates as day/month.
	DayFirst bool

	// ParseNumber converts a digit or word number.
	ParseNumber func(s string) (float64, bool)
	// ResolveHour turns a 12 hour clock reading into 0..23 using an am/pm
	// marker or a part-of-day word. explicit is set when the written form
	// is unambiguous on its own. ambiguous reports that both am and pm
	// readings stay possible.
	ResolveHour func(hour int, ampm, desc string, explicit bool) (resolved int, ambiguous bool)
}

// Normalize lower-cases s and collapses inner whitespace, the form in
// which lexicon keys are stored.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Weekday looks up a weekday name.
func (c *Config) Weekday(s string) (time.Weekday, bool) {
	wd, ok := c.DayOfWeek[Normalize(s)]
	return wd, ok
}

// Month looks up a month name, or a month number 1..12.
func (c *Config) Month(s string) (time.Month, bool) {
	if m, ok := c.MonthOfYear[Normalize(s)]; ok {
		return m, true
	}
	if n, ok := c.Number(s); ok && n >= 1 && n <= 12 && n == float64(int(n)) {
		return time.Month(int(n)), true
	}
	return 0, false
}

// Number parses a number written with digits or words.
func (c *Config) Number(s string) (float64, bool) {
	if c.ParseNumber == nil {
		return 0, false
	}
	return c.ParseNumber(strings.TrimSpace(s))
}

// Int parses a whole number.
func (c *Config) Int(s string) (int, bool) {
	n, ok := c.Number(s)
	if !ok || n != float64(int(n)) {
		return 0, false
	}
	return int(n), true
}

// Ordinal looks up an ordinal word ("first", "last").
func (c *Config) Ordinal(s string) (int, bool) {
	n, ok := c.Ordinals[Normalize(s)]
	return n, ok
}

// Unit maps a unit word onto its canonical unit.
func (c *Config) Unit(s string) (dateutil.Unit, bool) {
	u, ok := c.Units[Normalize(s)]
	return u, ok
}

// Swift returns the relative offset of an order word ("next" = 1).
func (c *Config) Swift(s string) (int, bool) {
	n, ok := c.Order[Normalize(s)]
	return n, ok
}

// SwiftDay returns the day offset of a relative day word ("tomorrow" = 1).
func (c *Config) SwiftDay(s string) (int, bool) {
	n, ok := c.RelativeDays[Normalize(s)]
	return n, ok
}

// Direction returns -1 for an "ago" word and 1 for a "later" word.
func (c *Config) Direction(s string) (int, bool) {
	n, ok := c.Directions[Normalize(s)]
	return n, ok
}

// TimeOfDay looks up a part of the day.
func (c *Config) TimeOfDay(s string) (TimeOfDay, bool) {
	t, ok := c.TimesOfDay[Normalize(s)]
	return t, ok
}

// Holiday looks up a holiday name.
func (c *Config) Holiday(s string) (Holiday, bool) {
	h, ok := c.Holidays[Normalize(s)]
	return h, ok
}

// IsAmbiguous reports whether s alone is too ambiguous to be a datetime.
func (c *Config) IsAmbiguous(s string) bool {
	return c.AmbiguousWords[Normalize(s)]
}

// builder expands {name} placeholders in pattern templates.
type builder struct {
	replacer *strings.Replacer
	flags    string
}

func newBuilder(flags string, vars map[string]string) *builder {
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return &builder{replacer: strings.NewReplacer(pairs...), flags: flags}
}

func (b *builder) expand(tmpl string) string {
	return b.flags + b.replacer.Replace(tmpl)
}

func (b *builder) pattern(name, tmpl string) Pattern {
	return Pattern{Name: name, Regexp: regexp.MustCompile(b.expand(tmpl))}
}

func (b *builder) regexp(tmpl string) *regexp.Regexp {
	return regexp.MustCompile(b.expand(tmpl))
}

// alternation builds a non-capturing alternation of words, longest first
// so the leftmost-first regexp engine prefers the longest spelling.
// Spaces inside a word match any run of whitespace.
func alternation(words ...string) string {
	uniq := make(map[string]struct{}, len(words))
	list := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := uniq[w]; ok || w == "" {
			continue
		}
		uniq[w] = struct{}{}
		list = append(list, w)
	}
	sort.Slice(list, func(i, j int) bool {
		if len(list[i]) != len(list[j]) {
			return len(list[i]) > len(list[j])
		}
		return list[i] < list[j]
	})
	for i, w := range list {
		list[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return "(?:" + strings.Join(list, "|") + ")"
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// invert flattens a table of canonical value → spellings into a lookup.
func invert[K comparable](table map[K][]string) map[string]K {
	out := make(map[string]K)
	for k, words := range table {
		for _, w := range words {
			out[w] = k
		}
	}
	return out
}

func wordSet(words ...string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[w] = true
	}
	return out
}
