package datetime

import (
	"strings"

	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
)

// Options is the option bitmask of the datetime recognizer.
type Options int

const (
	// None selects the default behaviour.
	None Options = 0
	// SkipFromToMerge keeps the endpoints of "from X to Y" as separate entities.
	SkipFromToMerge Options = 1
	// SplitDateAndTime reports a date and a time side by side instead of one datetime.
	SplitDateAndTime Options = 2
	// CalendarMode keeps single words such as "may" or "sun" that are
	// dropped as ambiguous otherwise.
	CalendarMode Options = 4

	allOptions = SkipFromToMerge | SplitDateAndTime | CalendarMode
)

var optionNames = []struct {
	name string
	flag Options
}{
	{"SkipFromToMerge", SkipFromToMerge},
	{"SplitDateAndTime", SplitDateAndTime},
	{"CalendarMode", CalendarMode},
}

// Valid reports whether o only sets known bits.
func (o Options) Valid() bool {
	return o >= 0 && o&^allOptions == 0
}

// Has reports whether flag is set.
func (o Options) Has(flag Options) bool {
	return o&flag != 0
}

func (o Options) String() string {
	if o == None {
		return "None"
	}
	var names []string
	for _, n := range optionNames {
		if o.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	if rest := o &^ allOptions; rest != 0 {
		names = append(names, "Invalid")
	}
	return strings.Join(names, "|")
}

// ParseOptions reads a "|" or "," separated list of option names.
func ParseOptions(s string) (Options, bool) {
	var o Options
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		field = strings.TrimSpace(field)
		if strings.EqualFold(field, "None") {
			continue
		}
		found := false
		for _, n := range optionNames {
			if strings.EqualFold(field, n.name) {
				o |= n.flag
				found = true
			}
		}
		if !found {
			return 0, false
		}
	}
	return o, true
}

func (o Options) flags() extractor.Flags {
	return extractor.Flags{
		SkipFromToMerge:  o.Has(SkipFromToMerge),
		SplitDateAndTime: o.Has(SplitDateAndTime),
	}
}
