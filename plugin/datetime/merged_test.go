package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/chronoparse/internal/observability"
	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// Monday.
var ref = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

func mergedExtract(t *testing.T, code, text string, options Options) []recognizer.ExtractResult {
	t.Helper()
	cfg, ok := culture.Lookup(code)
	require.True(t, ok)
	return NewMergedExtractor(cfg, options).Extract(text, ref)
}

func TestOptions(t *testing.T) {
	assert.True(t, None.Valid())
	assert.True(t, (SkipFromToMerge | SplitDateAndTime | CalendarMode).Valid())
	assert.False(t, Options(8).Valid())
	assert.False(t, Options(-1).Valid())

	assert.Equal(t, "None", None.String())
	assert.Equal(t, "SkipFromToMerge|CalendarMode", (SkipFromToMerge | CalendarMode).String())

	o, ok := ParseOptions("splitdateandtime, CalendarMode")
	require.True(t, ok)
	assert.Equal(t, SplitDateAndTime|CalendarMode, o)
	o, ok = ParseOptions("")
	require.True(t, ok)
	assert.Equal(t, None, o)
	_, ok = ParseOptions("Bogus")
	assert.False(t, ok)
}

func TestMergedExtractor(t *testing.T) {
	type span struct {
		text string
		typ  string
	}
	tests := []struct {
		name    string
		code    string
		text    string
		options Options
		want    []span
	}{
		{"datetime covers date and time", culture.English, "I'll be there tomorrow at 5pm", None, []span{{"tomorrow at 5pm", extractor.TypeDateTime}}},
		{"split date and time", culture.English, "I'll be there tomorrow at 5pm", SplitDateAndTime, []span{{"tomorrow", extractor.TypeDate}, {"5pm", extractor.TypeTime}}},
		{"range", culture.English, "from June 1 to June 7", None, []span{{"from June 1 to June 7", extractor.TypeDatePeriod}}},
		{"skip range merge", culture.English, "from June 1 to June 7", SkipFromToMerge, []span{{"June 1", extractor.TypeDate}, {"June 7", extractor.TypeDate}}},
		{"ambiguous word dropped", culture.English, "I may go", None, nil},
		{"ambiguous word in calendar mode", culture.English, "I may go", CalendarMode, []span{{"may", extractor.TypeDatePeriod}}},
		{"ambiguous word rescued", culture.English, "see you in may", None, []span{{"may", extractor.TypeDatePeriod}}},
		{"month name beside a day", culture.English, "may I see you on May 5", None, []span{{"May 5", extractor.TypeDate}}},
		{"weekday abbreviation", culture.English, "I sat down on Sunday", None, []span{{"Sunday", extractor.TypeDate}}},
		{"set covers weekday", culture.English, "we meet every Monday", None, []span{{"every Monday", extractor.TypeSet}}},
		{"two entities", culture.English, "3 days ago and next week", None, []span{{"3 days ago", extractor.TypeDate}, {"next week", extractor.TypeDatePeriod}}},
		{"chinese datetime", culture.Chinese, "明天下午3点开会", None, []span{{"明天下午3点", extractor.TypeDateTime}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ers := mergedExtract(t, tt.code, tt.text, tt.options)
			var got []span
			for _, er := range ers {
				assert.Equal(t, tt.text[er.Start:er.End()], er.Text)
				got = append(got, span{er.Text, er.Type})
			}
			assert.Equal(t, tt.want, got)
			for i := 1; i < len(ers); i++ {
				assert.False(t, recognizer.IsOverlap(ers[i-1], ers[i]))
			}
		})
	}
}

func TestModifiers(t *testing.T) {
	tests := []struct {
		text     string
		wantText string
		wantMod  string
	}{
		{"before Christmas", "Christmas", ModBefore},
		{"after 5pm", "5pm", ModAfter},
		{"since 2020", "2020", ModSince},
		{"until next Friday", "next Friday", ModUntil},
		{"more than 3 hours", "3 hours", ModMore},
		{"less than 2 days", "2 days", ModLess},
		{"3 hours or more", "3 hours", ModMore},
		{"next Friday", "next Friday", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ers := mergedExtract(t, culture.English, tt.text, None)
			require.Len(t, ers, 1)
			assert.Equal(t, tt.wantText, ers[0].Text)
			assert.Equal(t, tt.wantMod, extractor.DataOf(ers[0]).Mod)
		})
	}
}

func TestMergedParserFailure(t *testing.T) {
	cfg, _ := culture.Lookup(culture.English)
	metrics := observability.NewMetrics(0)
	p := NewMergedParser(cfg, nil, metrics)

	ers := NewMergedExtractor(cfg, None).Extract("13/5/2024", ref)
	require.Len(t, ers, 1)
	_, ok := p.Parse(ers[0], ref)
	assert.False(t, ok)
	assert.Equal(t, int64(1), metrics.Snapshot().ParseFailed)
}

func TestPmTimex(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"T05", "T17", true},
		{"T05:30", "T17:30", true},
		{"2024-06-11T07", "2024-06-11T19", true},
		{"T13", "", false},
		{"2024-06-11", "", false},
	}
	for _, tt := range tests {
		got, ok := pmTimex(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
