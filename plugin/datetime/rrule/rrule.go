// Package rrule renders recurring datetime expressions as iCalendar
// RFC 5545 recurrence rules.
package rrule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frequency represents the recurrence frequency.
type Frequency string

const (
	Secondly Frequency = "SECONDLY"
	Minutely Frequency = "MINUTELY"
	Hourly   Frequency = "HOURLY"
	Daily    Frequency = "DAILY"
	Weekly   Frequency = "WEEKLY"
	Monthly  Frequency = "MONTHLY"
	Yearly   Frequency = "YEARLY"
)

// Weekday represents the day of week for recurrence.
type Weekday string

const (
	Sunday    Weekday = "SU"
	Monday    Weekday = "MO"
	Tuesday   Weekday = "TU"
	Wednesday Weekday = "WE"
	Thursday  Weekday = "TH"
	Friday    Weekday = "FR"
	Saturday  Weekday = "SA"
)

var weekdays = [...]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf converts a time.Weekday to its RRULE code.
func WeekdayOf(wd time.Weekday) Weekday {
	return weekdays[wd]
}

// Rule is the subset of RFC 5545 fields a recurring expression can carry.
type Rule struct {
	Frequency  Frequency // FREQ
	Interval   int       // INTERVAL (default 1)
	ByDay      []Weekday // BYDAY
	ByMonthDay []int     // BYMONTHDAY
	ByMonth    []int     // BYMONTH
	ByHour     []int     // BYHOUR
	ByMinute   []int     // BYMINUTE
}

// String returns the RRULE string representation.
func (r *Rule) String() string {
	parts := []string{"FREQ=" + string(r.Frequency)}
	if r.Interval > 1 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(r.Interval))
	}
	if len(r.ByDay) > 0 {
		days := make([]string, len(r.ByDay))
		for i, day := range r.ByDay {
			days[i] = string(day)
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}
	if len(r.ByMonth) > 0 {
		parts = append(parts, "BYMONTH="+joinInts(r.ByMonth))
	}
	if len(r.ByMonthDay) > 0 {
		parts = append(parts, "BYMONTHDAY="+joinInts(r.ByMonthDay))
	}
	if len(r.ByHour) > 0 {
		parts = append(parts, "BYHOUR="+joinInts(r.ByHour))
	}
	if len(r.ByMinute) > 0 {
		parts = append(parts, "BYMINUTE="+joinInts(r.ByMinute))
	}
	return strings.Join(parts, ";")
}

// Parse parses an RRULE string such as "FREQ=WEEKLY;BYDAY=MO,WE".
func Parse(s string) (*Rule, error) {
	rule := &Rule{Interval: 1}
	for _, part := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		var err error
		switch key {
		case "FREQ":
			rule.Frequency = Frequency(value)
		case "INTERVAL":
			rule.Interval, err = strconv.Atoi(value)
		case "BYDAY":
			for _, day := range strings.Split(value, ",") {
				if day = strings.TrimSpace(day); day != "" {
					rule.ByDay = append(rule.ByDay, Weekday(day))
				}
			}
		case "BYMONTH":
			rule.ByMonth, err = parseInts(value)
		case "BYMONTHDAY":
			rule.ByMonthDay, err = parseInts(value)
		case "BYHOUR":
			rule.ByHour, err = parseInts(value)
		case "BYMINUTE":
			rule.ByMinute, err = parseInts(value)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid %s in RRULE %q: %w", key, s, err)
		}
	}

	if rule.Frequency == "" {
		return nil, fmt.Errorf("missing required FREQ in RRULE")
	}
	if rule.Interval < 1 {
		rule.Interval = 1
	}
	return rule, nil
}

func parseInts(value string) ([]int, error) {
	var nums []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func joinInts(nums []int) string {
	strs := make([]string, len(nums))
	for i, n := range nums {
		strs[i] = strconv.Itoa(n)
	}
	return strings.Join(strs, ",")
}
