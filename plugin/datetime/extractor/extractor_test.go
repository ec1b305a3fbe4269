package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

var ref = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

func newExtractors(t *testing.T, code string, flags Flags) *Extractors {
	t.Helper()
	cfg, ok := culture.Lookup(code)
	require.True(t, ok)
	return New(cfg, flags)
}

func texts(ers []recognizer.ExtractResult) []string {
	var out []string
	for _, er := range ers {
		out = append(out, er.Text)
	}
	return out
}

func TestEnglishExtractors(t *testing.T) {
	e := newExtractors(t, culture.English, Flags{})

	tests := []struct {
		name      string
		extractor recognizer.Extractor
		text      string
		want      []string
		pattern   string
	}{
		{"absolute date", e.Date, "I'll see you on March 5, 2024.", []string{"March 5, 2024"}, "monthDayYear"},
		{"iso date", e.Date, "due 2024-07-01 at the latest", []string{"2024-07-01"}, "iso"},
		{"ago", e.Date, "it was 3 days ago", []string{"3 days ago"}, PatternAgoLater},
		{"in duration", e.Date, "back in 2 weeks", []string{"in 2 weeks"}, PatternAgoLater},
		{"relative to date", e.Date, "3 days after tomorrow", []string{"3 days after tomorrow"}, PatternRelative},
		{"relative weekday", e.Date, "see you next Monday", []string{"next Monday"}, "relativeWeekday"},
		{"relative day", e.Date, "call me tomorrow", []string{"tomorrow"}, "relativeDay"},
		{"nth weekday", e.Date, "the first Friday of May", []string{"the first Friday of May"}, "nthWeekday"},
		{"ampm time", e.Time, "meet at 5pm", []string{"5pm"}, "ampm"},
		{"clock time", e.Time, "the train leaves at 17:45", []string{"17:45"}, "clock"},
		{"past hour", e.Time, "half past five", []string{"half past five"}, "pastHour"},
		{"special time", e.Time, "lunch at noon", []string{"noon"}, "special"},
		{"at hour", e.Time, "wake me at 7", []string{"7"}, "atHour"},
		{"duration", e.Duration, "it takes 3 days", []string{"3 days"}, "numberUnit"},
		{"composite duration", e.Duration, "for 1 hour 30 minutes", []string{"1 hour 30 minutes"}, PatternComposite},
		{"article duration", e.Duration, "wait an hour", []string{"an hour"}, "numberUnit"},
		{"inexact duration", e.Duration, "a few days", []string{"a few days"}, "inexact"},
		{"datetime", e.DateTime, "tomorrow at 5pm works", []string{"tomorrow at 5pm"}, PatternDateTime},
		{"datetime later", e.DateTime, "in 3 hours", []string{"in 3 hours"}, PatternAgoLater},
		{"now", e.DateTime, "right now", []string{"right now"}, "now"},
		{"relative unit", e.DatePeriod, "plans for next week", []string{"next week"}, "relativeUnit"},
		{"date range", e.DatePeriod, "from June 1 to June 7", []string{"from June 1 to June 7"}, PatternRange},
		{"day range", e.DatePeriod, "June 1-7, 2024", []string{"June 1-7, 2024"}, "monthDayRange"},
		{"iso week", e.DatePeriod, "week 23 of 2024", []string{"week 23 of 2024"}, "isoWeek"},
		{"year narrowed", e.DatePeriod, "since 2020", []string{"2020"}, "year"},
		{"hour range", e.TimePeriod, "free 5-6pm", []string{"5-6pm"}, "hourRange"},
		{"time of day", e.TimePeriod, "in the morning", []string{"in the morning"}, "timeOfDay"},
		{"tonight", e.DateTimePeriod, "party tonight", []string{"tonight"}, "tonight"},
		{"relative day tod", e.DateTimePeriod, "tomorrow morning", []string{"tomorrow morning"}, "relativeDayTod"},
		{"date with period", e.DateTimePeriod, "March 5 from 5pm to 7pm", []string{"March 5 from 5pm to 7pm"}, PatternDatePeriod},
		{"holiday", e.Holiday, "Christmas is coming", []string{"Christmas"}, "holiday"},
		{"each weekday", e.Set, "every Monday", []string{"every Monday"}, "eachWeekday"},
		{"set with time", e.Set, "every day at 5pm", []string{"every day at 5pm"}, PatternSetTime},
		{"periodic", e.Set, "we meet weekly", []string{"weekly"}, "periodic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ers := tt.extractor.Extract(tt.text, ref)
			require.Equal(t, tt.want, texts(ers))
			assert.Equal(t, tt.pattern, DataOf(ers[0]).Pattern)
			for _, er := range ers {
				assert.Equal(t, tt.text[er.Start:er.End()], er.Text)
			}
		})
	}
}

func TestChineseExtractors(t *testing.T) {
	e := newExtractors(t, culture.Chinese, Flags{})

	tests := []struct {
		name      string
		extractor recognizer.Extractor
		text      string
		want      []string
	}{
		{"ago", e.Date, "3天前", []string{"3天前"}},
		{"relative weekday", e.Date, "下周一开会", []string{"下周一"}},
		{"full date", e.Date, "2024年3月5日", []string{"2024年3月5日"}},
		{"time", e.Time, "下午3点半", []string{"下午3点半"}},
		{"datetime", e.DateTime, "明天下午3点", []string{"明天下午3点"}},
		{"duration", e.Duration, "两个小时", []string{"两个小时"}},
		{"relative unit", e.DatePeriod, "下个月", []string{"下个月"}},
		{"holiday", e.Holiday, "国庆节快乐", []string{"国庆节"}},
		{"set", e.Set, "每周一", []string{"每周一"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(tt.extractor.Extract(tt.text, ref)))
		})
	}
}

func TestFlags(t *testing.T) {
	split := newExtractors(t, culture.English, Flags{SplitDateAndTime: true})
	assert.Empty(t, split.DateTime.Extract("tomorrow at 5pm", ref))

	skip := newExtractors(t, culture.English, Flags{SkipFromToMerge: true})
	got := texts(skip.DatePeriod.Extract("from June 1 to June 7", ref))
	assert.Equal(t, []string{"June", "June"}, got)
}

func TestEmptyInput(t *testing.T) {
	e := newExtractors(t, culture.English, Flags{})
	for _, x := range e.All() {
		assert.Empty(t, x.Extract("", ref))
		assert.Empty(t, x.Extract("   ", ref))
	}
}

func TestExtractIsStable(t *testing.T) {
	e := newExtractors(t, culture.English, Flags{})
	text := "lunch next Friday at noon, then a few days off from June 1 to June 7"
	for _, x := range e.All() {
		first := x.Extract(text, ref)
		assert.Equal(t, first, x.Extract(text, ref))
		for i := 1; i < len(first); i++ {
			assert.LessOrEqual(t, first[i-1].End(), first[i].Start, "spans of one category never overlap")
		}
	}
}

func TestContextWindows(t *testing.T) {
	long := strings.Repeat("abcdefgh ", 10) // 90 bytes
	tests := []struct {
		name      string
		text      string
		offset    int
		wantLead  string
		wantStart int
		wantTrail string
	}{
		{"short text", "due by tomorrow", 7, "due by ", 0, "tomorrow"},
		{"cut skips a partial word", long, 89, " " + strings.Repeat("abcdefgh ", 6) + "abcdefgh", 26, " "},
		{"cut at a word start", long, 82, strings.Repeat("abcdefgh ", 7) + "a", 18, "bcdefgh "},
		{"cut keeps runes whole", strings.Repeat("明天", 20), 120, "天" + strings.Repeat("明天", 10), 57, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead, start := LeadingContext(tt.text, tt.offset)
			assert.Equal(t, tt.wantLead, lead)
			assert.Equal(t, tt.wantStart, start)
			assert.LessOrEqual(t, len(lead), ContextWindow)
			assert.Equal(t, tt.text[start:tt.offset], lead)
			assert.Equal(t, tt.wantTrail, TrailingContext(tt.text, tt.offset))
		})
	}

	trail := TrailingContext(long, 0)
	assert.Equal(t, strings.Repeat("abcdefgh ", 7), trail)
}
