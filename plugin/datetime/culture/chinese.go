package culture

import (
	"strconv"
	"strings"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
)

var chineseDigits = map[rune]int{
	'零': 0, '〇': 0, '一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

var chineseMultipliers = map[rune]int{'十': 10, '百': 100, '千': 1000}

// parseChineseNumber reads Arabic digits, positional numerals (二〇二四)
// and numerals with multipliers (二十三, 一百零五).
func parseChineseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if !strings.ContainsAny(s, "十百千") {
		v := 0
		for _, r := range s {
			d, ok := chineseDigits[r]
			if !ok {
				return 0, false
			}
			v = v*10 + d
		}
		return float64(v), true
	}
	total, digit := 0, 0
	for _, r := range s {
		if d, ok := chineseDigits[r]; ok {
			digit = d
			continue
		}
		m, ok := chineseMultipliers[r]
		if !ok {
			return 0, false
		}
		if digit == 0 {
			digit = 1
		}
		total += digit * m
		digit = 0
	}
	return float64(total + digit), true
}

// resolveChineseHour follows the period words of the day. Without one,
// 1..6 o'clock is read as afternoon.
func resolveChineseHour(hour int, _, desc string, explicit bool) (int, bool) {
	switch desc {
	case "下午", "傍晚", "晚上", "晚":
		if hour < 12 {
			hour += 12
		}
	case "夜里", "夜间":
		if hour >= 6 && hour < 12 {
			hour += 12
		}
	case "中午":
		if hour < 6 {
			hour += 12
		}
	case "凌晨", "早上", "早晨", "早", "上午":
		if hour == 12 {
			hour = 0
		}
	case "":
		if !explicit && hour >= 1 && hour <= 6 {
			hour += 12
		}
	}
	return hour, false
}

var chineseHolidays = map[string]Holiday{
	"元旦":  FixedHoliday{time.January, 1},
	"情人节": FixedHoliday{time.February, 14},
	"妇女节": FixedHoliday{time.March, 8},
	"植树节": FixedHoliday{time.March, 12},
	"愚人节": FixedHoliday{time.April, 1},
	"劳动节": FixedHoliday{time.May, 1},
	"五一":  FixedHoliday{time.May, 1},
	"青年节": FixedHoliday{time.May, 4},
	"儿童节": FixedHoliday{time.June, 1},
	"建党节": FixedHoliday{time.July, 1},
	"建军节": FixedHoliday{time.August, 1},
	"教师节": FixedHoliday{time.September, 10},
	"国庆节": FixedHoliday{time.October, 1},
	"国庆":  FixedHoliday{time.October, 1},
	"万圣节": FixedHoliday{time.October, 31},
	"平安夜": FixedHoliday{time.December, 24},
	"圣诞节": FixedHoliday{time.December, 25},
	"圣诞":  FixedHoliday{time.December, 25},
	"母亲节": NthWeekdayHoliday{time.May, time.Sunday, 2},
	"父亲节": NthWeekdayHoliday{time.June, time.Sunday, 3},
	"感恩节": NthWeekdayHoliday{time.November, time.Thursday, 4},
	"复活节": EasterHoliday{},
}

func chineseConfig() *Config {
	days := invert(map[time.Weekday][]string{
		time.Monday:    {"一"},
		time.Tuesday:   {"二"},
		time.Wednesday: {"三"},
		time.Thursday:  {"四"},
		time.Friday:    {"五"},
		time.Saturday:  {"六"},
		time.Sunday:    {"日", "天"},
	})
	units := invert(map[dateutil.Unit][]string{
		dateutil.UnitYear:   {"年"},
		dateutil.UnitMonth:  {"个月", "月"},
		dateutil.UnitWeek:   {"周", "星期", "个星期", "礼拜", "个礼拜"},
		dateutil.UnitDay:    {"天", "日"},
		dateutil.UnitHour:   {"小时", "个小时", "钟头", "个钟头"},
		dateutil.UnitMinute: {"分钟", "分"},
		dateutil.UnitSecond: {"秒", "秒钟"},
	})
	order := invert(map[int][]string{
		1:  {"下", "明", "未来", "接下来"},
		0:  {"这", "本", "今"},
		-1: {"上", "去", "过去", "最近"},
		-2: {"前"},
		2:  {"后"},
	})
	relDays := invert(map[int][]string{
		0:  {"今天", "今日", "今"},
		1:  {"明天", "明日", "明"},
		2:  {"后天"},
		3:  {"大后天"},
		-1: {"昨天", "昨日", "昨"},
		-2: {"前天"},
		-3: {"大前天"},
	})
	directions := invert(map[int][]string{
		-1: {"以前", "之前", "前"},
		1:  {"以后", "之后", "后", "过", "再过"},
	})
	ordinals := invert(map[int][]string{
		1:  {"一", "1"},
		2:  {"二", "2"},
		3:  {"三", "3"},
		4:  {"四", "4"},
		5:  {"五", "5"},
		-1: {"最后"},
	})
	morning := TimeOfDay{Timex: "TMO", Start: 6 * time.Hour, End: 9 * time.Hour}
	evening := TimeOfDay{Timex: "TNI", Start: 18 * time.Hour, End: 24*time.Hour - time.Second}
	tods := map[string]TimeOfDay{
		"凌晨": {Timex: "TMO", Start: 0, End: 6 * time.Hour},
		"早上": morning,
		"早晨": morning,
		"早":  morning,
		"上午": {Timex: "TMO", Start: 8 * time.Hour, End: 12 * time.Hour},
		"中午": {Timex: "TMI", Start: 11 * time.Hour, End: 13 * time.Hour},
		"下午": {Timex: "TAF", Start: 12 * time.Hour, End: 18 * time.Hour},
		"傍晚": {Timex: "TEV", Start: 17 * time.Hour, End: 19 * time.Hour},
		"晚上": evening,
		"晚":  evening,
		"夜里": {Timex: "TNI", Start: 22 * time.Hour, End: 24*time.Hour - time.Second},
		"夜间": {Timex: "TNI", Start: 22 * time.Hour, End: 24*time.Hour - time.Second},
	}
	numbers := make(map[string]float64, len(chineseDigits))
	for r, v := range chineseDigits {
		numbers[string(r)] = float64(v)
	}

	b := newBuilder("", map[string]string{
		"num":     `(?:\b\d{1,3}(?:\.\d+)?|[零〇一二两三四五六七八九十百千]+)`,
		"year":    `(?:\b\d{4}|[零〇一二三四五六七八九]{4})`,
		"month":   `(?:1[0-2]|0?[1-9]|十[一二]?|[一二三四五六七八九])`,
		"day":     `(?:3[01]|[12]\d|0?[1-9]|[一二三]?十[一二三四五六七八九]?|[一二三四五六七八九])`,
		"hour":    `(?:2[0-4]|[01]?\d|[一二]?十[一二三四]?|[零一二两三四五六七八九])`,
		"minute":  `(?:[0-5]?\d|[一二三四五]?十[一二三四五六七八九]?|[零一二三四五六七八九])`,
		"weekday": `(?:周|星期|礼拜)(?P<weekday>[一二三四五六日天])`,
		"unit":    `(?:个小时|小时|个钟头|钟头|分钟|秒钟|个星期|星期|个礼拜|礼拜|个月|年|周|天|秒)`,
		"desc":    alternation("凌晨", "早上", "早晨", "上午", "中午", "下午", "傍晚", "晚上", "夜里", "夜间", "早", "晚"),
		"tod":     alternation("凌晨", "早上", "早晨", "上午", "中午", "下午", "傍晚", "晚上", "夜里", "夜间"),
		"holiday": alternation(keys(chineseHolidays)...),
		"to":      `(?:到|至|-|~|—)`,
	})

	hourClause := `(?P<hour>{hour})\s*[点时](?:\s*(?P<half>半)|\s*(?P<quarter>[一三])刻|\s*(?P<minute>{minute})\s*分?)?`

	p := Patterns{
		Date: []Pattern{
			b.pattern("ymd", `(?P<year>{year})\s*年\s*(?P<month>{month})\s*月\s*(?P<day>{day})\s*[日号]`),
			b.pattern("iso", `\b(?P<year>\d{4})[-/.](?P<month>1[0-2]|0?[1-9])[-/.](?P<day>3[01]|[12]\d|0?[1-9])\b`),
			b.pattern("monthDay", `(?P<month>{month})\s*月\s*(?P<day>{day})\s*[日号]`),
			b.pattern("dayOfMonth", `(?P<order>下|上|这|本)\s*(?:个\s*)?月\s*(?P<day>{day})\s*[日号]`),
			b.pattern("relativeWeekday", `(?P<order>下|上|这|本)\s*(?:个\s*)?{weekday}`),
			b.pattern("weekday", `{weekday}`),
			b.pattern("relativeDay", `(?P<relday>大后天|大前天|今天|今日|明天|明日|后天|昨天|昨日|前天)`),
			b.pattern("ordinalDay", `(?P<day>{day})\s*[日号]`),
		},
		Time: []Pattern{
			b.pattern("clock", `(?:(?P<desc>{desc})\s*)?\b(?P<hour>2[0-3]|[01]?\d):(?P<minute>[0-5]\d)(?::(?P<second>[0-5]\d))?\b`),
			b.pattern("hourDesc", `(?:(?P<desc>{desc})\s*)?`+hourClause),
			b.pattern("special", `(?P<special>正午|午夜|半夜)`),
		},
		DateTime: []Pattern{
			b.pattern("now", `(?:现在|此刻|当前|目前|眼下)`),
			b.pattern("relativeDayTime", `(?P<relday>今|明|昨)\s*(?P<desc>早|晚)\s*`+hourClause),
		},
		Duration: []Pattern{
			b.pattern("andHalf", `(?P<num>{num})\s*个半\s*(?P<unit>小时|钟头|月|星期|礼拜)`),
			b.pattern("andHalf", `(?P<num>{num})\s*(?P<unit>{unit})半`),
			b.pattern("numberUnit", `(?P<num>{num})\s*(?P<unit>{unit})`),
			b.pattern("half", `半\s*(?:个\s*)?(?P<unit>小时|钟头|天|年|月)`),
			b.pattern("inexact", `(?P<inexact>好几|几|数)\s*(?P<unit>{unit})`),
			b.pattern("whole", `(?:一整|整整一|全)\s*(?P<unit>天|周|年|个月)`),
		},
		DatePeriod: []Pattern{
			b.pattern("monthDayRange", `(?P<month>{month})\s*月\s*(?P<day1>{day})\s*[日号]?\s*{to}\s*(?P<day2>{day})\s*[日号]`),
			b.pattern("weekOfMonth", `(?P<month>{month})\s*月\s*(?:的\s*)?第\s*(?P<ordinal>[一二三四五1-5])\s*(?:个\s*)?(?:周|星期|礼拜)`),
			b.pattern("quarter", `(?:(?P<year>{year})\s*年\s*)?第\s*(?P<quarter>[一二三四1-4])\s*季度`),
			b.pattern("season", `(?:(?P<order>今|明|去)\s*年\s*)?(?P<season>春天|春季|夏天|夏季|秋天|秋季|冬天|冬季)`),
			b.pattern("nextN", `(?P<order>未来|接下来|过去|最近)\s*(?P<num>{num})\s*(?P<unit>个月|个星期|星期|周|天|年)`),
			b.pattern("relativeUnit", `(?P<order>下|上|这|本)\s*(?:个\s*)?(?:(?P<weekend>周末)|(?P<unit>周|星期|礼拜|月|年))`),
			b.pattern("relativeUnit", `(?P<order>今|明|去|前|后)\s*(?P<unit>年)`),
			b.pattern("monthYear", `(?P<year>{year})\s*年\s*(?P<month>{month})\s*月(?:份)?`),
			b.pattern("monthRelative", `(?P<order>今|明|去)\s*年\s*(?P<month>{month})\s*月(?:份)?`),
			b.pattern("year", `(?P<year>{year})\s*年`),
			b.pattern("month", `(?P<month>{month})\s*月(?:份)?`),
		},
		TimePeriod: []Pattern{
			b.pattern("hourRange", `(?:从\s*)?(?:(?P<desc>{desc})\s*)?(?P<hour1>{hour})\s*[点时]?\s*{to}\s*(?P<hour2>{hour})\s*[点时]`),
			b.pattern("timeOfDay", `(?P<tod>{tod})`),
		},
		DateTimePeriod: []Pattern{
			b.pattern("relativeDayTod", `(?P<relday>今天|明天|后天|昨天|前天|今|明|昨)\s*(?P<tod>{tod}|早|晚)`),
			b.pattern("nextNTime", `(?P<order>未来|接下来|过去|最近)\s*(?P<num>{num})\s*(?P<unit>个小时|小时|个钟头|钟头|分钟)`),
		},
		Holiday: []Pattern{
			b.pattern("holiday", `(?:(?:(?P<year>{year})|(?P<order>今|明|去))\s*年\s*(?:的\s*)?)?(?P<holiday>{holiday})`),
		},
		Set: []Pattern{
			b.pattern("eachWeekday", `每\s*(?:个\s*)?{weekday}`),
			b.pattern("everyN", `每\s*(?:隔\s*)?(?P<num>{num})\s*(?P<unit>{unit})`),
			b.pattern("eachTod", `每\s*(?:天\s*)?(?P<tod>早上|早晨|上午|中午|下午|傍晚|晚上)`),
			b.pattern("eachUnit", `每\s*(?:一\s*)?(?:个\s*)?(?P<unit>天|日|周|星期|礼拜|月|年|小时|分钟)`),
			b.pattern("periodic", `(?P<periodic>天天|每日)`),
		},
	}

	return &Config{
		Code:         Chinese,
		Patterns:     p,
		DayOfWeek:    days,
		MonthOfYear:  map[string]time.Month{},
		Numbers:      numbers,
		Ordinals:     ordinals,
		Units:        units,
		Order:        order,
		RelativeDays: relDays,
		Directions:   directions,
		TimesOfDay:   tods,
		SpecialTimes: map[string]int{"正午": 12, "午夜": 0, "半夜": 0},
		Holidays:     chineseHolidays,
		Seasons: invert(map[string][]string{
			"SP": {"春天", "春季"},
			"SU": {"夏天", "夏季"},
			"FA": {"秋天", "秋季"},
			"WI": {"冬天", "冬季"},
		}),
		Inexact:  map[string]float64{"几": 3, "好几": 3, "数": 3},
		Periodic: map[string]string{"天天": "P1D", "每日": "P1D"},

		RangeConnector:    b.regexp(`^\s*{to}\s*$`),
		RangeFromPrefix:   b.regexp(`(?:从|自)\s*$`),
		BetweenPrefix:     b.regexp(`(?:在|介于)\s*$`),
		BetweenConnector:  b.regexp(`^\s*(?:和|与)\s*$`),
		DateTimeConnector: b.regexp(`^\s*(?:的)?\s*$`),
		SetTimeConnector:  b.regexp(`^\s*(?:的)?\s*$`),
		DurationJoiner:    b.regexp(`^\s*(?:零|又)?\s*$`),
		AgoLaterSuffix:    b.regexp(`^\s*(?P<direction>以前|之前|前|以后|之后|后)`),
		LaterPrefix:       b.regexp(`(?P<direction>再过|过)\s*$`),

		Modifiers: []Modifier{
			{
				Mod:       "less",
				Durations: true,
				Leading:   b.regexp(`(?:不到|少于|不超过|至多|小于)\s*$`),
				Trailing:  b.regexp(`^\s*(?:以内|之内|内)`),
			},
			{
				Mod:       "more",
				Durations: true,
				Leading:   b.regexp(`(?:超过|多于|至少|大于)\s*$`),
				Trailing:  b.regexp(`^\s*(?:以上|多)`),
			},
			{
				Mod:      "before",
				Trailing: b.regexp(`^\s*(?:之前|以前|前)`),
			},
			{
				Mod:      "after",
				Trailing: b.regexp(`^\s*(?:之后|以后|后)`),
			},
			{
				Mod:      "since",
				Leading:  b.regexp(`(?:自从|自|从)\s*$`),
				Trailing: b.regexp(`^\s*(?:开始|起)`),
			},
			{
				Mod:      "until",
				Leading:  b.regexp(`(?:直到|截止到|截止|到)\s*$`),
				Trailing: b.regexp(`^\s*(?:为止|截止)`),
			},
		},

		ParseNumber: parseChineseNumber,
		ResolveHour: resolveChineseHour,
	}
}
