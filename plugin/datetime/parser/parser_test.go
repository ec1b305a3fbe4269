package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// Monday.
var ref = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

func parse(t *testing.T, code, typ, text string, ref time.Time) (*DateTimeParseResult, bool) {
	t.Helper()
	cfg, ok := culture.Lookup(code)
	require.True(t, ok)
	ex := extractor.New(cfg, extractor.Flags{})
	extractors := map[string]recognizer.Extractor{
		extractor.TypeDate:           ex.Date,
		extractor.TypeTime:           ex.Time,
		extractor.TypeDateTime:       ex.DateTime,
		extractor.TypeDuration:       ex.Duration,
		extractor.TypeDatePeriod:     ex.DatePeriod,
		extractor.TypeTimePeriod:     ex.TimePeriod,
		extractor.TypeDateTimePeriod: ex.DateTimePeriod,
		extractor.TypeHoliday:        ex.Holiday,
		extractor.TypeSet:            ex.Set,
	}
	ers := extractors[typ].Extract(text, ref)
	require.Len(t, ers, 1, text)
	return New(cfg).Parse(ers[0], ref)
}

func TestPointParsers(t *testing.T) {
	noon := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		code       string
		typ        string
		text       string
		ref        time.Time
		wantTimex  string
		wantPast   string
		wantFuture string
	}{
		{"absolute", culture.English, extractor.TypeDate, "March 5, 2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-03-05", "2024-03-05", "2024-03-05"},
		{"clamped day", culture.English, extractor.TypeDate, "February 30, 2024", ref, "2024-02-29", "2024-02-29", "2024-02-29"},
		{"year-less", culture.English, extractor.TypeDate, "March 5", ref, "XXXX-03-05", "2024-03-05", "2025-03-05"},
		{"day first", culture.EnglishBritish, extractor.TypeDate, "13/5/2024", ref, "2024-05-13", "2024-05-13", "2024-05-13"},
		{"ago", culture.English, extractor.TypeDate, "3 days ago", ref, "2024-06-07", "2024-06-07", "2024-06-07"},
		{"in weeks", culture.English, extractor.TypeDate, "in 2 weeks", ref, "2024-06-24", "2024-06-24", "2024-06-24"},
		{"after anchor", culture.English, extractor.TypeDate, "3 days after tomorrow", ref, "2024-06-14", "2024-06-14", "2024-06-14"},
		{"next weekday", culture.English, extractor.TypeDate, "next Monday", ref, "2024-06-17", "2024-06-17", "2024-06-17"},
		{"last weekday", culture.English, extractor.TypeDate, "last Friday", ref, "2024-06-07", "2024-06-07", "2024-06-07"},
		{"bare weekday", culture.English, extractor.TypeDate, "Friday", ref, "XXXX-WXX-5", "2024-06-07", "2024-06-14"},
		{"relative day", culture.English, extractor.TypeDate, "tomorrow", ref, "2024-06-11", "2024-06-11", "2024-06-11"},
		{"nth weekday", culture.English, extractor.TypeDate, "the first Friday of May", ref, "XXXX-05-WXX-5-#1", "2024-05-03", "2025-05-02"},
		{"chinese ago", culture.Chinese, extractor.TypeDate, "3天前", ref, "2024-06-07", "2024-06-07", "2024-06-07"},
		{"chinese next weekday", culture.Chinese, extractor.TypeDate, "下周一", ref, "2024-06-17", "2024-06-17", "2024-06-17"},
		{"chinese full date", culture.Chinese, extractor.TypeDate, "2024年3月5日", ref, "2024-03-05", "2024-03-05", "2024-03-05"},

		{"pm", culture.English, extractor.TypeTime, "5pm", ref, "T17", "17:00:00", "17:00:00"},
		{"noon", culture.English, extractor.TypeTime, "noon", ref, "T12", "12:00:00", "12:00:00"},
		{"to hour", culture.English, extractor.TypeTime, "quarter to six pm", ref, "T17:45", "17:45:00", "17:45:00"},
		{"chinese half hour", culture.Chinese, extractor.TypeTime, "下午3点半", ref, "T15:30", "15:30:00", "15:30:00"},

		{"date and time", culture.English, extractor.TypeDateTime, "tomorrow at 5pm", ref, "2024-06-11T17", "2024-06-11 17:00:00", "2024-06-11 17:00:00"},
		{"hours later", culture.English, extractor.TypeDateTime, "in 3 hours", ref, "2024-06-10T12:00:00", "2024-06-10 12:00:00", "2024-06-10 12:00:00"},
		{"end of day", culture.English, extractor.TypeDateTime, "end of day", noon, "2024-06-10T23:59:59", "2024-06-10 23:59:59", "2024-06-10 23:59:59"},
		{"end of the day", culture.English, extractor.TypeDateTime, "end of the day", noon, "2024-06-10T23:59:59", "2024-06-10 23:59:59", "2024-06-10 23:59:59"},
		{"end of tomorrow", culture.English, extractor.TypeDateTime, "end of tomorrow", noon, "2024-06-11T23:59:59", "2024-06-11 23:59:59", "2024-06-11 23:59:59"},
		{"chinese datetime", culture.Chinese, extractor.TypeDateTime, "明天下午3点", ref, "2024-06-11T15", "2024-06-11 15:00:00", "2024-06-11 15:00:00"},

		{"holiday ahead", culture.English, extractor.TypeHoliday, "Christmas", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "XXXX-12-25", "2024-12-25", "2024-12-25"},
		{"holiday passed", culture.English, extractor.TypeHoliday, "Christmas", time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC), "XXXX-12-25", "2024-12-25", "2025-12-25"},
		{"holiday with year", culture.English, extractor.TypeHoliday, "Easter 2025", ref, "2025-04-20", "2025-04-20", "2025-04-20"},
		{"floating holiday", culture.English, extractor.TypeHoliday, "thanksgiving", ref, "XXXX-11-28", "2024-11-28", "2024-11-28"},
		{"easter passed", culture.English, extractor.TypeHoliday, "Easter", ref, "XXXX-04-20", "2024-03-31", "2025-04-20"},
		{"memorial day passed", culture.English, extractor.TypeHoliday, "Memorial Day", ref, "XXXX-05-26", "2024-05-27", "2025-05-26"},
		{"easter next year", culture.English, extractor.TypeHoliday, "next Easter", ref, "2025-04-20", "2025-04-20", "2025-04-20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := parse(t, tt.code, tt.typ, tt.text, tt.ref)
			require.True(t, ok)
			assert.True(t, r.Success)
			assert.Equal(t, tt.wantTimex, r.Timex)
			assert.Equal(t, tt.wantPast, r.PastResolution.String("value"))
			assert.Equal(t, tt.wantFuture, r.FutureResolution.String("value"))
		})
	}
}

func TestRangeParsers(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		typ       string
		text      string
		wantTimex string
		wantStart string
		wantEnd   string
	}{
		{"next week", culture.English, extractor.TypeDatePeriod, "next week", "2024-W25", "2024-06-17", "2024-06-24"},
		{"from to", culture.English, extractor.TypeDatePeriod, "from June 1 to June 7", "(XXXX-06-01,XXXX-06-07,P6D)", "2025-06-01", "2025-06-07"},
		{"day range", culture.English, extractor.TypeDatePeriod, "June 1-7, 2024", "(2024-06-01,2024-06-08,P7D)", "2024-06-01", "2024-06-08"},
		{"iso week", culture.English, extractor.TypeDatePeriod, "week 23 of 2024", "2024-W23", "2024-06-03", "2024-06-10"},
		{"quarter", culture.English, extractor.TypeDatePeriod, "Q3 2024", "(2024-07-01,2024-10-01,P3M)", "2024-07-01", "2024-10-01"},
		{"season", culture.English, extractor.TypeDatePeriod, "this summer", "2024-SU", "2024-06-01", "2024-09-01"},
		{"chinese month", culture.Chinese, extractor.TypeDatePeriod, "下个月", "2024-07", "2024-07-01", "2024-08-01"},
		{"hour range", culture.English, extractor.TypeTimePeriod, "5-6pm", "(T17,T18,PT1H)", "17:00:00", "18:00:00"},
		{"time of day", culture.English, extractor.TypeTimePeriod, "in the morning", "TMO", "08:00:00", "12:00:00"},
		{"day and part", culture.English, extractor.TypeDateTimePeriod, "tomorrow morning", "2024-06-11TMO", "2024-06-11 08:00:00", "2024-06-11 12:00:00"},
		{"next hours", culture.English, extractor.TypeDateTimePeriod, "next 3 hours", "(2024-06-10T09:00:00,2024-06-10T12:00:00,PT3H)", "2024-06-10 09:00:00", "2024-06-10 12:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := parse(t, tt.code, tt.typ, tt.text, ref)
			require.True(t, ok)
			assert.Equal(t, tt.wantTimex, r.Timex)
			assert.Equal(t, KindRange, r.FutureValue.Kind)
			assert.Equal(t, tt.wantStart, r.FutureResolution.String("start"))
			assert.Equal(t, tt.wantEnd, r.FutureResolution.String("end"))
		})
	}
}

func TestDurationParser(t *testing.T) {
	tests := []struct {
		code      string
		text      string
		wantTimex string
		wantValue string
	}{
		{culture.English, "3 days", "P3D", "259200"},
		{culture.English, "1 hour 30 minutes", "PT1H30M", "5400"},
		{culture.English, "an hour", "PT1H", "3600"},
		{culture.English, "half an hour", "PT30M", "1800"},
		{culture.English, "2 days and 3 hours", "P2DT3H", "183600"},
		{culture.Chinese, "两个小时", "PT2H", "7200"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r, ok := parse(t, tt.code, extractor.TypeDuration, tt.text, ref)
			require.True(t, ok)
			assert.Equal(t, tt.wantTimex, r.Timex)
			assert.Equal(t, tt.wantValue, r.FutureResolution.String("value"))
		})
	}

	r, ok := parse(t, culture.English, extractor.TypeDuration, "3 days", ref)
	require.True(t, ok)
	parts, err := dateutil.ParseDuration(r.Timex)
	require.NoError(t, err)
	assert.Equal(t, []dateutil.DurationPart{{Value: 3, Unit: dateutil.UnitDay}}, parts)
}

func TestSetParser(t *testing.T) {
	tests := []struct {
		code      string
		text      string
		wantTimex string
		wantRule  string
	}{
		{culture.English, "every Monday", "XXXX-WXX-1", "FREQ=WEEKLY;BYDAY=MO"},
		{culture.English, "every other week", "P2W", "FREQ=WEEKLY;INTERVAL=2"},
		{culture.English, "every day at 5pm", "T17", "FREQ=DAILY;BYHOUR=17"},
		{culture.English, "weekly", "P1W", "FREQ=WEEKLY"},
		{culture.English, "mondays", "XXXX-WXX-1", "FREQ=WEEKLY;BYDAY=MO"},
		{culture.Chinese, "每周一", "XXXX-WXX-1", "FREQ=WEEKLY;BYDAY=MO"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r, ok := parse(t, tt.code, extractor.TypeSet, tt.text, ref)
			require.True(t, ok)
			assert.Equal(t, tt.wantTimex, r.Timex)
			assert.Equal(t, tt.wantRule, r.RRule)
			assert.Equal(t, "Set: "+tt.wantTimex, r.FutureResolution.String("value"))
		})
	}
}

func TestUnresolvable(t *testing.T) {
	_, ok := parse(t, culture.English, extractor.TypeDate, "13/5/2024", ref)
	assert.False(t, ok)
}

func TestAmbiguousHour(t *testing.T) {
	r, ok := parse(t, culture.English, extractor.TypeTime, "half past five", ref)
	require.True(t, ok)
	assert.Equal(t, "T05:30", r.Timex)
	assert.Equal(t, CommentAmPm, r.Comment)

	r, ok = parse(t, culture.English, extractor.TypeTime, "17:45", ref)
	require.True(t, ok)
	assert.Empty(t, r.Comment)
}

func TestWeekdayBranches(t *testing.T) {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	today := dateutil.StartOfDay(ref)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			r, ok := parse(t, culture.English, extractor.TypeDate, name, ref)
			require.True(t, ok)
			past, future := r.PastValue.Time, r.FutureValue.Time
			assert.False(t, past.After(today))
			assert.True(t, future.After(today))
			assert.Equal(t, past.Weekday(), future.Weekday())
		})
	}
}

func TestParseIsPure(t *testing.T) {
	cfg, _ := culture.Lookup(culture.English)
	ex := extractor.New(cfg, extractor.Flags{})
	p := New(cfg)
	for _, er := range ex.Date.Extract("see you next Friday or March 5", ref) {
		a, okA := p.Parse(er, ref)
		b, okB := p.Parse(er, ref)
		require.Equal(t, okA, okB)
		assert.Equal(t, a, b)
	}
}

func TestAgoLater(t *testing.T) {
	tests := []struct {
		name         string
		parts        []dateutil.DurationPart
		direction    int
		want         time.Time
		wantTimex    string
		wantDuration string
	}{
		{"days ago", []dateutil.DurationPart{{Value: 3, Unit: dateutil.UnitDay}}, -1, time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), "2024-06-07", "-P3D"},
		{"month later", []dateutil.DurationPart{{Value: 1, Unit: dateutil.UnitMonth}}, 1, time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), "2024-07-10", "P1M"},
		{"hours later", []dateutil.DurationPart{{Value: 1.5, Unit: dateutil.UnitHour}}, 1, time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC), "2024-06-10T10:30:00", "PT1H30M"},
		{"mixed ago", []dateutil.DurationPart{{Value: 1, Unit: dateutil.UnitDay}, {Value: 2, Unit: dateutil.UnitHour}}, -1, time.Date(2024, 6, 9, 7, 0, 0, 0, time.UTC), "2024-06-09T07:00:00", "-P1DT2H"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, timex, duration := AgoLater(tt.parts, ref, tt.direction)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTimex, timex)
			assert.Equal(t, tt.wantDuration, duration)
		})
	}
}
