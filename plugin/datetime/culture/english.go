package culture

import (
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
)

var englishDays = invert(map[time.Weekday][]string{
	time.Monday:    {"monday", "mon"},
	time.Tuesday:   {"tuesday", "tues", "tue"},
	time.Wednesday: {"wednesday", "wed"},
	time.Thursday:  {"thursday", "thurs", "thur", "thu"},
	time.Friday:    {"friday", "fri"},
	time.Saturday:  {"saturday", "sat"},
	time.Sunday:    {"sunday", "sun"},
})

var englishMonths = invert(map[time.Month][]string{
	time.January:   {"january", "jan"},
	time.February:  {"february", "feb"},
	time.March:     {"march", "mar"},
	time.April:     {"april", "apr"},
	time.May:       {"may"},
	time.June:      {"june", "jun"},
	time.July:      {"july", "jul"},
	time.August:    {"august", "aug"},
	time.September: {"september", "sept", "sep"},
	time.October:   {"october", "oct"},
	time.November:  {"november", "nov"},
	time.December:  {"december", "dec"},
})

var englishUnitWords = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var englishTens = []string{"twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

func englishNumberTable() map[string]float64 {
	m := map[string]float64{"a": 1, "an": 1}
	for i, w := range englishUnitWords {
		m[w] = float64(i)
	}
	for i, w := range englishTens {
		m[w] = float64(20 + 10*i)
	}
	return m
}

var englishNumbers = englishNumberTable()

func parseEnglishNumber(s string) (float64, bool) {
	s = Normalize(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if v, ok := englishNumbers[s]; ok {
		return v, true
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' })
	if len(parts) != 2 {
		return 0, false
	}
	tens, ok1 := englishNumbers[parts[0]]
	ones, ok2 := englishNumbers[parts[1]]
	if !ok1 || !ok2 || tens < 20 || int(tens)%10 != 0 || ones < 1 || ones > 9 {
		return 0, false
	}
	return tens + ones, true
}

// resolveEnglishHour applies am/pm markers and part-of-day words.
func resolveEnglishHour(hour int, ampm, desc string, explicit bool) (int, bool) {
	marker := strings.ToLower(strings.NewReplacer(".", "", " ", "").Replace(ampm))
	switch {
	case strings.HasPrefix(marker, "p"):
		if hour < 12 {
			hour += 12
		}
		return hour, false
	case strings.HasPrefix(marker, "a"):
		if hour == 12 {
			hour = 0
		}
		return hour, false
	}
	switch Normalize(desc) {
	case "morning":
		if hour == 12 {
			hour = 0
		}
		return hour, false
	case "afternoon", "evening":
		if hour < 12 {
			hour += 12
		}
		return hour, false
	case "night":
		if hour == 12 {
			return 0, false
		}
		if hour >= 5 && hour < 12 {
			hour += 12
		}
		return hour, false
	}
	if explicit || hour == 0 || hour > 12 {
		return hour, false
	}
	return hour, true
}

var englishHolidays = func() map[string]Holiday {
	thanksgiving := NthWeekdayHoliday{Month: time.November, Weekday: time.Thursday, N: 4}
	table := map[string]Holiday{
		"new year's eve":            FixedHoliday{time.December, 31},
		"new years eve":             FixedHoliday{time.December, 31},
		"new year's day":            FixedHoliday{time.January, 1},
		"new years day":             FixedHoliday{time.January, 1},
		"new year day":              FixedHoliday{time.January, 1},
		"new year's":                FixedHoliday{time.January, 1},
		"new years":                 FixedHoliday{time.January, 1},
		"martin luther king day":    NthWeekdayHoliday{time.January, time.Monday, 3},
		"martin luther king jr day": NthWeekdayHoliday{time.January, time.Monday, 3},
		"mlk day":                   NthWeekdayHoliday{time.January, time.Monday, 3},
		"groundhog day":             FixedHoliday{time.February, 2},
		"valentine's day":           FixedHoliday{time.February, 14},
		"valentines day":            FixedHoliday{time.February, 14},
		"valentine day":             FixedHoliday{time.February, 14},
		"presidents day":            NthWeekdayHoliday{time.February, time.Monday, 3},
		"presidents' day":           NthWeekdayHoliday{time.February, time.Monday, 3},
		"president's day":           NthWeekdayHoliday{time.February, time.Monday, 3},
		"washington's birthday":     NthWeekdayHoliday{time.February, time.Monday, 3},
		"st patrick's day":          FixedHoliday{time.March, 17},
		"st. patrick's day":         FixedHoliday{time.March, 17},
		"saint patrick's day":       FixedHoliday{time.March, 17},
		"st patricks day":           FixedHoliday{time.March, 17},
		"april fools day":           FixedHoliday{time.April, 1},
		"april fool's day":          FixedHoliday{time.April, 1},
		"april fools' day":          FixedHoliday{time.April, 1},
		"earth day":                 FixedHoliday{time.April, 22},
		"ash wednesday":             EasterHoliday{Offset: -46},
		"good friday":               EasterHoliday{Offset: -2},
		"easter":                    EasterHoliday{},
		"easter sunday":             EasterHoliday{},
		"easter monday":             EasterHoliday{Offset: 1},
		"mother's day":              NthWeekdayHoliday{time.May, time.Sunday, 2},
		"mothers day":               NthWeekdayHoliday{time.May, time.Sunday, 2},
		"memorial day":              NthWeekdayHoliday{time.May, time.Monday, -1},
		"flag day":                  FixedHoliday{time.June, 14},
		"father's day":              NthWeekdayHoliday{time.June, time.Sunday, 3},
		"fathers day":               NthWeekdayHoliday{time.June, time.Sunday, 3},
		"juneteenth":                FixedHoliday{time.June, 19},
		"independence day":          FixedHoliday{time.July, 4},
		"fourth of july":            FixedHoliday{time.July, 4},
		"labor day":                 NthWeekdayHoliday{time.September, time.Monday, 1},
		"labour day":                NthWeekdayHoliday{time.September, time.Monday, 1},
		"columbus day":              NthWeekdayHoliday{time.October, time.Monday, 2},
		"halloween":                 FixedHoliday{time.October, 31},
		"veterans day":              FixedHoliday{time.November, 11},
		"veteran's day":             FixedHoliday{time.November, 11},
		"thanksgiving":              thanksgiving,
		"thanksgiving day":          thanksgiving,
		"black friday":              ShiftedHoliday{Base: thanksgiving, Days: 1},
		"cyber monday":              ShiftedHoliday{Base: thanksgiving, Days: 4},
		"christmas eve":             FixedHoliday{time.December, 24},
		"christmas":                 FixedHoliday{time.December, 25},
		"christmas day":             FixedHoliday{time.December, 25},
		"xmas":                      FixedHoliday{time.December, 25},
		"boxing day":                FixedHoliday{time.December, 26},
	}
	return table
}()

func englishConfig(code string, dayFirst bool, extraHolidays map[string]Holiday) *Config {
	ordinals := invert(map[int][]string{
		1:  {"first", "1st"},
		2:  {"second", "2nd"},
		3:  {"third", "3rd"},
		4:  {"fourth", "4th"},
		5:  {"fifth", "5th"},
		-1: {"last"},
	})
	units := invert(map[dateutil.Unit][]string{
		dateutil.UnitYear:   {"years", "year", "yrs", "yr"},
		dateutil.UnitMonth:  {"months", "month"},
		dateutil.UnitWeek:   {"weeks", "week", "wks", "wk"},
		dateutil.UnitDay:    {"days", "day"},
		dateutil.UnitHour:   {"hours", "hour", "hrs", "hr", "h"},
		dateutil.UnitMinute: {"minutes", "minute", "mins", "min"},
		dateutil.UnitSecond: {"seconds", "second", "secs", "sec"},
	})
	order := invert(map[int][]string{
		1:  {"next", "coming", "upcoming", "following"},
		0:  {"this", "current"},
		-1: {"last", "previous", "past"},
	})
	relDays := invert(map[int][]string{
		0:  {"today"},
		1:  {"tomorrow", "tmr", "tmrw"},
		2:  {"the day after tomorrow", "day after tomorrow"},
		-1: {"yesterday"},
		-2: {"the day before yesterday", "day before yesterday"},
	})
	directions := invert(map[int][]string{
		-1: {"ago", "before now", "earlier", "back", "before"},
		1:  {"later", "from now", "after now", "hence", "from today", "in", "after", "from"},
	})
	tods := map[string]TimeOfDay{
		"morning":        {Timex: "TMO", Start: 8 * time.Hour, End: 12 * time.Hour},
		"afternoon":      {Timex: "TAF", Start: 12 * time.Hour, End: 16 * time.Hour},
		"evening":        {Timex: "TEV", Start: 16 * time.Hour, End: 20 * time.Hour},
		"night":          {Timex: "TNI", Start: 20 * time.Hour, End: 24*time.Hour - time.Second},
		"daytime":        {Timex: "TDT", Start: 8 * time.Hour, End: 18 * time.Hour},
		"business hours": {Timex: "TBH", Start: 8 * time.Hour, End: 18 * time.Hour},
		"working hours":  {Timex: "TBH", Start: 8 * time.Hour, End: 18 * time.Hour},
	}
	special := map[string]int{"noon": 12, "midday": 12, "midnight": 0}
	seasons := invert(map[string][]string{
		"SP": {"spring"},
		"SU": {"summer"},
		"FA": {"fall", "autumn"},
		"WI": {"winter"},
	})
	inexact := invert(map[float64][]string{
		3: {"a few", "few", "several", "some"},
		2: {"a couple of", "couple of", "a couple"},
	})
	periodic := invert(map[string][]string{
		"PT1H": {"hourly"},
		"P1D":  {"daily"},
		"P1W":  {"weekly"},
		"P2W":  {"biweekly", "fortnightly"},
		"P1M":  {"monthly"},
		"P3M":  {"quarterly"},
		"P1Y":  {"yearly", "annually"},
	})
	holidays := maps.Clone(englishHolidays)
	maps.Copy(holidays, extraHolidays)

	num := `(?:\d+(?:\.\d+)?|` + alternation(englishTens...) + `[\s-]+` + alternation(englishUnitWords[1:10]...) +
		`|` + alternation(append(append([]string{}, englishUnitWords...), englishTens...)...) + `)`

	b := newBuilder("(?i)", map[string]string{
		"weekday":  alternation(keys(englishDays)...),
		"month":    alternation(keys(englishMonths)...),
		"num":      num,
		"hourword": alternation(englishUnitWords[1:13]...),
		"hour":     `(?:1[0-2]|0?[1-9])`,
		"unit":     alternation(keys(units)...),
		"dateunit": `(?:years?|months?|weeks?|days?)`,
		"timeunit": `(?:hours?|hrs?|minutes?|mins?|seconds?|secs?)`,
		"order":    alternation(keys(order)...),
		"ordinal":  alternation(keys(ordinals)...),
		"relday":   alternation(keys(relDays)...),
		"tod":      alternation(keys(tods)...),
		"desc":     `(?:morning|afternoon|evening|night)`,
		"special":  alternation(keys(special)...),
		"holiday":  alternation(keys(holidays)...),
		"season":   alternation(keys(seasons)...),
		"inexact":  alternation(keys(inexact)...),
		"periodic": alternation(keys(periodic)...),
		"ampm":     `(?:[ap]\.\s?m\.?|[ap]m\b)`,
		"day":      `(?:3[01]|[12]\d|0?[1-9])`,
		"suffix":   `(?:st|nd|rd|th)`,
		"sep":      `(?:\s*,\s*|\s+)`,
		"to":       `(?:-|–|~|to|till|til|until|through|thru)`,
	})

	p := Patterns{
		Date: []Pattern{
			b.pattern("monthDayYear", `\b(?:(?P<weekday>{weekday}),?\s+)?(?P<month>{month})\.?\s+(?:the\s+)?(?P<day>{day}){suffix}?{sep}(?P<year>\d{4})\b`),
			b.pattern("dayMonthYear", `\b(?:(?P<weekday>{weekday}),?\s+)?(?:the\s+)?(?P<day>{day}){suffix}?\s+(?:of\s+)?(?P<month>{month})\.?{sep}(?P<year>\d{4})\b`),
			b.pattern("iso", `\b(?P<year>\d{4})[-/.](?P<month>1[0-2]|0?[1-9])[-/.](?P<day>{day})\b`),
			b.pattern("numeric", `\b(?P<num1>\d{1,2})/(?P<num2>\d{1,2})(?:/(?P<year>\d{4}|\d{2}))?\b`),
			b.pattern("numeric", `\b(?P<num1>\d{1,2})[.-](?P<num2>\d{1,2})[.-](?P<year>\d{4})\b`),
			b.pattern("nthWeekday", `\b(?:the\s+)?(?P<ordinal>{ordinal})\s+(?P<weekday>{weekday})\s+(?:of|in)\s+(?:(?P<order>{order})\s+month|(?P<month>{month})(?:\s+(?P<year>\d{4}))?)\b`),
			b.pattern("monthDay", `\b(?:(?P<weekday>{weekday}),?\s+)?(?P<month>{month})\.?\s+(?:the\s+)?(?P<day>{day}){suffix}?\b`),
			b.pattern("dayMonth", `\b(?:(?P<weekday>{weekday}),?\s+)?(?:the\s+)?(?P<day>{day}){suffix}?\s+(?:of\s+)?(?P<month>{month})\b`),
			b.pattern("weekdayOfWeek", `\b(?P<weekday>{weekday})\s+(?:of\s+)?(?P<order>{order})\s+week\b`),
			b.pattern("weekdayOfWeek", `\b(?P<order>{order})\s+week(?:'s)?\s+(?P<weekday>{weekday})\b`),
			b.pattern("dayOfMonth", `\b(?:the\s+)?(?P<day>{day}){suffix}\s+(?:of\s+)?(?P<order>{order})\s+month\b`),
			b.pattern("relativeWeekday", `\b(?P<order>{order})\s+(?P<weekday>{weekday})\b`),
			b.pattern("relativeDay", `\b(?P<relday>{relday})\b`),
			b.pattern("weekday", `\b(?P<weekday>{weekday})\b`),
			b.pattern("ordinalDay", `\bthe\s+(?P<day>{day}){suffix}\b`),
		},
		Time: []Pattern{
			b.pattern("ampm", `\b(?P<hour>{hour})(?::(?P<minute>[0-5]\d)(?::(?P<second>[0-5]\d))?)?\s*(?P<ampm>{ampm})`),
			b.pattern("clock", `\b(?P<hour>2[0-3]|[01]?\d):(?P<minute>[0-5]\d)(?::(?P<second>[0-5]\d))?\b(?:\s+(?:in\s+the|at)\s+(?P<desc>{desc})\b)?`),
			b.pattern("ampm", `\b(?P<hour>{hourword})\s*(?P<ampm>{ampm})`),
			b.pattern("oclock", `\b(?P<hour>{hourword}|{hour})\s*o'?\s?clock\b(?:\s+(?:in\s+the|at)\s+(?P<desc>{desc})\b)?`),
			b.pattern("pastHour", `\b(?P<minute>half|(?:a\s+)?quarter|{num}(?:\s+minutes?)?)\s+(?:past|after)\s+(?P<hour>{hourword}|{hour})(?:\s*(?P<ampm>{ampm})|\b)`),
			b.pattern("toHour", `\b(?P<minute>half|(?:a\s+)?quarter|{num}\s+minutes?)\s+(?:to|before|till|til)\s+(?P<hour>{hourword}|{hour})(?:\s*(?P<ampm>{ampm})|\b)`),
			b.pattern("hourDesc", `\b(?P<hour>{hourword}|{hour})\s+(?:in\s+the|at)\s+(?P<desc>{desc})\b`),
			b.pattern("atHour", `\b(?:at|around|about)\s+(?P<value>(?P<hour>{hourword}|{hour}))\b`),
			b.pattern("special", `\b(?P<special>{special})\b`),
		},
		DateTime: []Pattern{
			b.pattern("now", `\b(?:right\s+now|now|at\s+the\s+moment|currently|at\s+present)\b`),
			b.pattern("endOfDay", `\b(?:(?:the\s+)?end\s+of\s+(?:(?:the\s+)?day|(?P<relday>today|tomorrow|yesterday))|eod)\b`),
		},
		Duration: []Pattern{
			b.pattern("andHalf", `\b(?P<num>{num}|an?)\s+and\s+a\s+half\s+(?P<unit>{unit})\b`),
			b.pattern("andHalf", `\b(?P<num>{num}|an?)\s+(?P<unit>{unit})\s+and\s+a\s+half\b`),
			b.pattern("numberUnit", `\b(?P<num>{num})\s*-?\s*(?P<unit>{unit})\b`),
			b.pattern("numberUnit", `\b(?P<num>an?)\s+(?P<unit>{unit})\b`),
			b.pattern("half", `\bhalf\s+(?:an?\s+)?(?P<unit>{unit})\b`),
			b.pattern("inexact", `\b(?P<inexact>{inexact})\s+(?P<unit>{unit})\b`),
			b.pattern("whole", `\b(?:(?:the\s+)?(?:whole|entire)|all(?:\s+the)?)\s+(?P<unit>day|week|month|year)\b`),
		},
		DatePeriod: []Pattern{
			b.pattern("monthDayRange", `\b(?:from\s+)?(?P<month>{month})\.?\s+(?P<day1>{day}){suffix}?\s*{to}\s*(?P<day2>{day}){suffix}?(?:{sep}(?P<year>\d{4}))?\b`),
			b.pattern("monthDayRange", `\bbetween\s+(?P<month>{month})\.?\s+(?P<day1>{day}){suffix}?\s+and\s+(?P<day2>{day}){suffix}?(?:{sep}(?P<year>\d{4}))?\b`),
			b.pattern("monthDayRange", `\b(?:from\s+)?(?:the\s+)?(?P<day1>{day}){suffix}?\s*{to}\s*(?:the\s+)?(?P<day2>{day}){suffix}?\s+(?:of\s+)?(?P<month>{month})(?:{sep}(?P<year>\d{4}))?\b`),
			b.pattern("weekOfMonth", `\b(?:the\s+)?(?P<ordinal>{ordinal})\s+week\s+(?:of|in)\s+(?:(?P<order>{order})\s+month|(?P<month>{month})(?:\s+(?P<year>\d{4}))?)\b`),
			b.pattern("isoWeek", `\bweek\s+(?:#|no\.?\s*|number\s+)?(?P<week>5[0-3]|[1-4]\d|0?[1-9])(?:\s*,?\s*(?:of\s+|in\s+)?(?P<year>\d{4}))?\b`),
			b.pattern("quarter", `\b(?:(?P<quarter>q[1-4])|(?:the\s+)?(?P<ordinal>first|second|third|fourth|1st|2nd|3rd|4th|last)\s+quarter)(?:\s*,?\s*(?:of\s+|in\s+)?(?P<year>\d{4}))?\b`),
			b.pattern("relativeQuarter", `\b(?P<order>{order})\s+quarter\b`),
			b.pattern("season", `\b(?:(?P<order>{order})\s+)?(?P<season>{season})(?:\s+(?:of\s+)?(?P<year>\d{4}))?\b`),
			b.pattern("nextN", `\b(?:the\s+)?(?P<order>next|last|past|previous|coming|upcoming)\s+(?P<num>{num})\s+(?P<unit>{dateunit})\b`),
			b.pattern("relativeUnit", `\b(?P<order>{order})\s+(?:(?P<unit>week|month|year)|(?P<weekend>weekend))\b`),
			b.pattern("monthYear", `\b(?P<month>{month})\.?{sep}(?:of\s+)?(?P<year>\d{4})\b`),
			b.pattern("monthRelative", `\b(?P<month>{month})\s+(?:of\s+)?(?P<order>{order})\s+year\b`),
			b.pattern("year", `\b(?:in|during|for|since|by|before|after|until|till|throughout|the\s+year(?:\s+of)?|year)\s+(?P<value>(?P<year>(?:19|20)\d{2}))\b`),
			b.pattern("month", `\b(?:(?P<order>{order})\s+)?(?P<month>{month})\b`),
		},
		TimePeriod: []Pattern{
			b.pattern("hourRange", `\b(?:from\s+|between\s+)?(?P<hour1>{hour})(?::(?P<minute1>[0-5]\d))?\s*(?P<ampm1>{ampm})?\s*(?:-|–|~|to|till|til|until|and)\s*(?P<hour2>{hour})(?::(?P<minute2>[0-5]\d))?\s*(?P<ampm2>{ampm})`),
			b.pattern("timeOfDay", `\b(?:in\s+the\s+)?(?P<tod>{tod})\b`),
		},
		DateTimePeriod: []Pattern{
			b.pattern("relativeDayTod", `\b(?P<relday>today|tomorrow|tmr|yesterday)\s+(?:in\s+the\s+)?(?P<tod>{tod})\b`),
			b.pattern("orderTod", `\b(?P<order>this|last|next)\s+(?P<tod>morning|afternoon|evening|night)\b`),
			b.pattern("tonight", `\b(?:tonight|tonite)\b`),
			b.pattern("nextNTime", `\b(?:the\s+)?(?P<order>next|last|past|previous|coming|upcoming)\s+(?:(?P<num>{num})\s+)?(?P<unit>{timeunit})\b`),
		},
		Holiday: []Pattern{
			b.pattern("holiday", `\b(?P<holiday>{holiday})\s+(?P<order>{order})\s+year\b`),
			b.pattern("holiday", `\b(?:(?P<order>{order})\s+)?(?P<holiday>{holiday})(?:\s+(?:of\s+)?(?P<year>\d{4}))?\b`),
		},
		Set: []Pattern{
			b.pattern("everyN", `\b(?:every|each)\s+(?P<num>{num}|other)\s+(?P<unit>{unit})\b`),
			b.pattern("eachUnit", `\b(?:every|each)\s+(?P<unit>day|week|month|year|hour|minute|second)\b`),
			b.pattern("eachTod", `\b(?:every|each)\s+(?P<tod>morning|afternoon|evening|night)\b`),
			b.pattern("eachWeekend", `\b(?:every|each)\s+weekend\b`),
			b.pattern("eachWeekday", `\b(?:every|each)\s+(?P<weekday>{weekday})\b`),
			b.pattern("periodic", `\b(?P<periodic>{periodic})\b`),
			b.pattern("pluralWeekday", `\b(?P<weekday>mondays|tuesdays|wednesdays|thursdays|fridays|saturdays|sundays)\b`),
		},
	}

	return &Config{
		Code:         code,
		Patterns:     p,
		DayOfWeek:    englishDays,
		MonthOfYear:  englishMonths,
		Numbers:      englishNumbers,
		Ordinals:     ordinals,
		Units:        units,
		Order:        order,
		RelativeDays: relDays,
		Directions:   directions,
		TimesOfDay:   tods,
		SpecialTimes: special,
		Holidays:     holidays,
		Seasons:      seasons,
		Inexact:      inexact,
		Periodic:     periodic,

		RangeConnector:    b.regexp(`^\s*{to}\s*$`),
		RangeFromPrefix:   b.regexp(`\bfrom\s+$`),
		BetweenPrefix:     b.regexp(`\bbetween\s+$`),
		BetweenConnector:  b.regexp(`^\s+and\s+$`),
		DateTimeConnector: b.regexp(`^\s*(?:,\s*)?(?:(?:at|@|around|on|in\s+the)\s*)?$`),
		TimeDateConnector: b.regexp(`^\s*(?:,\s*)?(?:(?:on|of)\s*)?$`),
		SetTimeConnector:  b.regexp(`^\s*(?:(?:at|@|in\s+the|on)\s*)?$`),
		DurationJoiner:    b.regexp(`^\s*(?:,\s*)?(?:and\s+)?$`),
		AgoLaterSuffix:    b.regexp(`^\s*(?P<direction>ago|before\s+now|earlier|back|later|from\s+now|after\s+now|hence|from\s+today)\b`),
		LaterPrefix:       b.regexp(`\b(?P<direction>in)\s+$`),
		RelativeConnector: b.regexp(`^\s+(?P<direction>before|after|from)\s+$`),

		Modifiers: []Modifier{
			{
				Mod:       "less",
				Durations: true,
				Leading:   b.regexp(`\b(?:less\s+than|under|at\s+most|within|shorter\s+than|fewer\s+than|up\s+to|no\s+more\s+than)\s+$`),
				Trailing:  b.regexp(`^\s+or\s+less\b`),
			},
			{
				Mod:       "more",
				Durations: true,
				Leading:   b.regexp(`\b(?:more\s+than|over|at\s+least|longer\s+than|above)\s+$`),
				Trailing:  b.regexp(`^\s+or\s+more\b`),
			},
			{
				Mod:      "before",
				Leading:  b.regexp(`\b(?:before|prior\s+to|earlier\s+than|no\s+later\s+than|by)\s+$`),
				Trailing: b.regexp(`^\s+or\s+(?:earlier|before)\b`),
			},
			{
				Mod:     "after",
				Leading: b.regexp(`\b(?:after|later\s+than)\s+$`),
			},
			{
				Mod:      "since",
				Leading:  b.regexp(`\b(?:since|starting(?:\s+(?:from|on|at))?|beginning(?:\s+(?:from|on|at))?|as\s+of|from)\s+$`),
				Trailing: b.regexp(`^\s+(?:or\s+later|or\s+after|and\s+after|onwards?)\b`),
			},
			{
				Mod:     "until",
				Leading: b.regexp(`\b(?:until|till|til|up\s+until|through)\s+$`),
			},
		},
		AmbiguousWords:  wordSet("may", "march", "mar", "sun", "sat", "wed", "fall", "spring", "jan", "jun"),
		AmbiguityRescue: b.regexp(`\b(?:in|on|of|this|next|last|early|late|mid|during|every|each|until|till|since|by|before|after|from|through)\s+$`),

		DayFirst:    dayFirst,
		ParseNumber: parseEnglishNumber,
		ResolveHour: resolveEnglishHour,
	}
}

var britishHolidays = map[string]Holiday{
	"bonfire night":          FixedHoliday{time.November, 5},
	"guy fawkes night":       FixedHoliday{time.November, 5},
	"remembrance day":        FixedHoliday{time.November, 11},
	"st george's day":        FixedHoliday{time.April, 23},
	"st. george's day":       FixedHoliday{time.April, 23},
	"early may bank holiday": NthWeekdayHoliday{time.May, time.Monday, 1},
	"spring bank holiday":    NthWeekdayHoliday{time.May, time.Monday, -1},
	"summer bank holiday":    NthWeekdayHoliday{time.August, time.Monday, -1},
}
