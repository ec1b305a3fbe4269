package extractor

import (
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// DatePeriodExtractor finds spans of days: weeks, months, years, seasons,
// day ranges and date-to-date ranges.
type DatePeriodExtractor struct {
	cfg   *culture.Config
	flags Flags
	date  *DateExtractor
}

func (e *DatePeriodExtractor) Extract(text string, ref time.Time) []recognizer.ExtractResult {
	if blank(text) {
		return nil
	}
	ms := matchPatterns(text, e.cfg.Patterns.DatePeriod)
	if !e.flags.SkipFromToMerge {
		points := append(e.date.Extract(text, ref), finalize(text, TypeDatePeriod, ms)...)
		sortByStart(points)
		ms = append(ms, rangeMatches(text, e.cfg, points)...)
	}
	return finalize(text, TypeDatePeriod, ms)
}

// TimePeriodExtractor finds spans within a day: named parts of the day,
// hour ranges and time-to-time ranges.
type TimePeriodExtractor struct {
	cfg   *culture.Config
	flags Flags
	time  *TimeExtractor
}

func (e *TimePeriodExtractor) Extract(text string, ref time.Time) []recognizer.ExtractResult {
	if blank(text) {
		return nil
	}
	ms := matchPatterns(text, e.cfg.Patterns.TimePeriod)
	if !e.flags.SkipFromToMerge {
		ms = append(ms, rangeMatches(text, e.cfg, e.time.Extract(text, ref))...)
	}
	return finalize(text, TypeTimePeriod, ms)
}

// DateTimePeriodExtractor finds spans anchored to a day and a clock:
// "tomorrow morning", "tonight", "next 3 hours", a date followed by a time
// period, and datetime-to-datetime ranges.
type DateTimePeriodExtractor struct {
	cfg        *culture.Config
	flags      Flags
	date       *DateExtractor
	time       *TimeExtractor
	dateTime   *DateTimeExtractor
	timePeriod *TimePeriodExtractor
}

func (e *DateTimePeriodExtractor) Extract(text string, ref time.Time) []recognizer.ExtractResult {
	if blank(text) {
		return nil
	}
	ms := matchPatterns(text, e.cfg.Patterns.DateTimePeriod)

	dates := e.date.Extract(text, ref)
	periods := e.timePeriod.Extract(text, ref)
	ms = append(ms, joinPairs(text, dates, periods, e.cfg.DateTimeConnector, PatternDatePeriod)...)
	ms = append(ms, joinPairs(text, periods, dates, e.cfg.TimeDateConnector, PatternDatePeriod)...)

	if !e.flags.SkipFromToMerge {
		points := append(e.dateTime.Extract(text, ref), e.time.Extract(text, ref)...)
		sortByStart(points)
		for _, m := range rangeMatches(text, e.cfg, points) {
			if m.data.Subs[0].Type == TypeDateTime || m.data.Subs[1].Type == TypeDateTime {
				ms = append(ms, m)
			}
		}
	}
	return finalize(text, TypeDateTimePeriod, ms)
}

// HolidayExtractor finds named holidays.
type HolidayExtractor struct {
	cfg *culture.Config
}

func (e *HolidayExtractor) Extract(text string, _ time.Time) []recognizer.ExtractResult {
	if blank(text) {
		return nil
	}
	return finalize(text, TypeHoliday, matchPatterns(text, e.cfg.Patterns.Holiday))
}

// SetExtractor finds recurrences, optionally bound to a time of day
// ("every day at 5pm").
type SetExtractor struct {
	cfg        *culture.Config
	time       *TimeExtractor
	timePeriod *TimePeriodExtractor
}

func (e *SetExtractor) Extract(text string, ref time.Time) []recognizer.ExtractResult {
	if blank(text) {
		return nil
	}
	ms := matchPatterns(text, e.cfg.Patterns.Set)
	sets := finalize(text, TypeSet, ms)
	if len(sets) == 0 {
		return nil
	}
	clocks := append(e.time.Extract(text, ref), e.timePeriod.Extract(text, ref)...)
	sortByStart(clocks)
	ms = append(ms, joinPairs(text, sets, clocks, e.cfg.SetTimeConnector, PatternSetTime)...)
	ms = append(ms, joinPairs(text, clocks, sets, e.cfg.SetTimeConnector, PatternSetTime)...)
	return finalize(text, TypeSet, ms)
}
