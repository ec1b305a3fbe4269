package culture

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
)

func TestLookup(t *testing.T) {
	for _, code := range []string{"en-us", "EN-GB", " zh-cn "} {
		cfg, ok := Lookup(code)
		require.True(t, ok, code)
		assert.NotEmpty(t, cfg.Patterns.Date)
		assert.NotNil(t, cfg.ParseNumber)
		assert.NotNil(t, cfg.ResolveHour)
	}

	_, ok := Lookup("fr-fr")
	assert.False(t, ok)
	assert.Equal(t, []string{"en-gb", "en-us", "zh-cn"}, Supported())

	a, _ := Lookup(English)
	b, _ := Lookup(English)
	assert.Same(t, a, b)

	gb, _ := Lookup(EnglishBritish)
	assert.True(t, gb.DayFirst)
	assert.False(t, a.DayFirst)
	_, ok = gb.Holiday("bonfire night")
	assert.True(t, ok)
	_, ok = a.Holiday("bonfire night")
	assert.False(t, ok)
}

func TestParseEnglishNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3", 3, true},
		{"1.5", 1.5, true},
		{"a", 1, true},
		{"twelve", 12, true},
		{"Twenty", 20, true},
		{"twenty five", 25, true},
		{"forty-two", 42, true},
		{"eleven five", 0, false},
		{"dozen", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseEnglishNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChineseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3", 3, true},
		{"三", 3, true},
		{"两", 2, true},
		{"十", 10, true},
		{"十五", 15, true},
		{"二十三", 23, true},
		{"一百零五", 105, true},
		{"二〇二四", 2024, true},
		{"三天", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseChineseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEnglishHour(t *testing.T) {
	tests := []struct {
		name          string
		hour          int
		ampm, desc    string
		explicit      bool
		want          int
		wantAmbiguous bool
	}{
		{"pm", 3, "pm", "", false, 15, false},
		{"p.m.", 3, "P.M.", "", false, 15, false},
		{"noon pm", 12, "pm", "", false, 12, false},
		{"midnight am", 12, "am", "", false, 0, false},
		{"morning", 9, "", "morning", false, 9, false},
		{"evening", 7, "", "evening", false, 19, false},
		{"night late", 2, "", "night", false, 2, false},
		{"night", 10, "", "night", false, 22, false},
		{"bare", 5, "", "", false, 5, true},
		{"24h", 17, "", "", false, 17, false},
		{"leading zero", 5, "", "", true, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ambiguous := resolveEnglishHour(tt.hour, tt.ampm, tt.desc, tt.explicit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantAmbiguous, ambiguous)
		})
	}
}

func TestResolveChineseHour(t *testing.T) {
	tests := []struct {
		hour int
		desc string
		want int
	}{
		{3, "下午", 15},
		{8, "晚上", 20},
		{1, "中午", 13},
		{12, "中午", 12},
		{2, "凌晨", 2},
		{9, "上午", 9},
		{3, "", 15},
		{9, "", 9},
	}
	for _, tt := range tests {
		got, ambiguous := resolveChineseHour(tt.hour, "", tt.desc, false)
		assert.Equal(t, tt.want, got, "%d%s", tt.hour, tt.desc)
		assert.False(t, ambiguous)
	}
}

func TestHolidayRules(t *testing.T) {
	cfg, _ := Lookup(English)

	tests := []struct {
		name string
		year int
		want string
	}{
		{"christmas", 2024, "2024-12-25"},
		{"easter", 2024, "2024-03-31"},
		{"good friday", 2024, "2024-03-29"},
		{"thanksgiving", 2024, "2024-11-28"},
		{"black friday", 2024, "2024-11-29"},
		{"memorial day", 2024, "2024-05-27"},
		{"labor day", 2025, "2025-09-01"},
		{"mother's day", 2024, "2024-05-12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := cfg.Holiday(tt.name)
			require.True(t, ok)
			d, ok := h.Date(tt.year)
			require.True(t, ok)
			assert.Equal(t, tt.want, dateutil.FormatDate(d))
		})
	}

	_, ok := FixedHoliday{time.February, 29}.Date(2023)
	assert.False(t, ok)
}

func TestLexicons(t *testing.T) {
	en, _ := Lookup(English)
	zh, _ := Lookup(Chinese)

	wd, ok := en.Weekday("Fri")
	assert.True(t, ok)
	assert.Equal(t, time.Friday, wd)

	m, ok := en.Month("Sept")
	assert.True(t, ok)
	assert.Equal(t, time.September, m)
	m, ok = zh.Month("十二")
	assert.True(t, ok)
	assert.Equal(t, time.December, m)
	_, ok = zh.Month("十三")
	assert.False(t, ok)

	u, ok := en.Unit("Hrs")
	assert.True(t, ok)
	assert.Equal(t, dateutil.UnitHour, u)
	u, ok = zh.Unit("个月")
	assert.True(t, ok)
	assert.Equal(t, dateutil.UnitMonth, u)

	n, _ := en.SwiftDay("the  day after tomorrow")
	assert.Equal(t, 2, n)
	n, _ = zh.Swift("下")
	assert.Equal(t, 1, n)
	n, _ = en.Direction("ago")
	assert.Equal(t, -1, n)

	tod, ok := en.TimeOfDay("night")
	assert.True(t, ok)
	assert.Equal(t, "TNI", tod.Timex)
	assert.Equal(t, 24*time.Hour-time.Second, tod.End)

	assert.True(t, en.IsAmbiguous("May"))
	assert.False(t, zh.IsAmbiguous("五月"))
}

func TestAlternationPrefersLongest(t *testing.T) {
	re := regexp.MustCompile(`^` + alternation("new year", "new year's eve", "new year's") + `$`)
	assert.True(t, re.MatchString("new year's eve"))
	assert.True(t, re.MatchString("new   year"))

	first := regexp.MustCompile(alternation("sun", "sunday"))
	assert.Equal(t, "sunday", first.FindString("sunday"))
}

func TestPatternsMatch(t *testing.T) {
	en, _ := Lookup(English)
	zh, _ := Lookup(Chinese)

	find := func(list []Pattern, name, text string) bool {
		for _, p := range list {
			if p.Name == name && p.Regexp.MatchString(text) {
				return true
			}
		}
		return false
	}

	assert.True(t, find(en.Patterns.Date, "monthDayYear", "March 5, 2024"))
	assert.True(t, find(en.Patterns.Date, "relativeWeekday", "next Monday"))
	assert.True(t, find(en.Patterns.Time, "ampm", "5:30 p.m."))
	assert.True(t, find(en.Patterns.Duration, "numberUnit", "twenty five minutes"))
	assert.True(t, find(en.Patterns.Holiday, "holiday", "Christmas"))
	assert.True(t, find(en.Patterns.Set, "eachWeekday", "every Monday"))
	assert.False(t, find(en.Patterns.Date, "monthDay", "march2024"))

	assert.True(t, find(zh.Patterns.Time, "hourDesc", "下午3点半"))
	assert.True(t, find(zh.Patterns.Date, "relativeWeekday", "下周一"))
	assert.True(t, find(zh.Patterns.Duration, "numberUnit", "3天"))
	assert.True(t, zh.AgoLaterSuffix.MatchString("前"))
}
