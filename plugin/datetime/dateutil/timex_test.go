package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name  string
		parts []DurationPart
		want  string
	}{
		{"days", []DurationPart{{3, UnitDay}}, "P3D"},
		{"hours and minutes", []DurationPart{{1, UnitHour}, {30, UnitMinute}}, "PT1H30M"},
		{"date and time", []DurationPart{{2, UnitHour}, {1, UnitDay}}, "P1DT2H"},
		{"fraction", []DurationPart{{1.5, UnitHour}}, "PT1H30M"},
		{"half hour", []DurationPart{{0.5, UnitHour}}, "PT30M"},
		{"fraction of a day", []DurationPart{{1.5, UnitDay}}, "P1DT12H"},
		{"fraction of a week carries twice", []DurationPart{{1.5, UnitWeek}}, "P1W3DT12H"},
		{"fraction of a year", []DurationPart{{2.5, UnitYear}}, "P2Y6M"},
		{"fraction of a second", []DurationPart{{1.5, UnitSecond}}, "PT1.5S"},
		{"carry into present unit", []DurationPart{{1.5, UnitHour}, {15, UnitMinute}}, "PT1H45M"},
		{"months vs minutes", []DurationPart{{2, UnitMonth}, {5, UnitMinute}}, "P2MT5M"},
		{"repeated units summed", []DurationPart{{1, UnitWeek}, {1, UnitWeek}}, "P2W"},
		{"empty", nil, "PT0S"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.parts))
		})
	}
}

func TestParseDuration(t *testing.T) {
	parts, err := ParseDuration("P3D")
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, 3.0, parts[0].Value)
	assert.Equal(t, UnitDay, parts[0].Unit)
	assert.Equal(t, "day", string(parts[0].Unit))

	parts, err = ParseDuration("P1DT2H30M")
	require.NoError(t, err)
	assert.Equal(t, []DurationPart{{1, UnitDay}, {2, UnitHour}, {30, UnitMinute}}, parts)
	assert.Equal(t, 86400.0+2*3600+30*60, TotalSeconds(parts))

	parts, err = ParseDuration("-P2M")
	require.NoError(t, err)
	assert.Equal(t, []DurationPart{{-2, UnitMonth}}, parts)

	for _, bad := range []string{"", "3D", "P", "PD", "P3", "P3X", "PT3D"} {
		_, err := ParseDuration(bad)
		assert.Error(t, err, bad)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	for _, timex := range []string{"P3D", "PT1H30M", "P1Y", "P2W", "P1DT2H", "PT1.5S"} {
		parts, err := ParseDuration(timex)
		require.NoError(t, err, timex)
		assert.Equal(t, timex, FormatDuration(parts))
	}
}

func TestDateTimexFormatting(t *testing.T) {
	assert.Equal(t, "2024-03-05", FormatDateTimex(2024, 3, 5))
	assert.Equal(t, "XXXX-03-05", FormatDateTimex(0, 3, 5))
	assert.Equal(t, "XXXX-XX-05", FormatDateTimex(-1, -1, 5))
	assert.Equal(t, "XXXX-03", FormatMonthTimex(0, 3))
	assert.Equal(t, "2024-11", FormatMonthTimex(2024, 11))
	assert.Equal(t, "XXXX-WXX-5", FormatWeekdayTimex(time.Friday))
	assert.Equal(t, "XXXX-WXX-7", FormatWeekdayTimex(time.Sunday))
	assert.Equal(t, "2024-W05", FormatWeekTimex(2024, 5))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "T15", FormatTime(15, 0, 0))
	assert.Equal(t, "T05:30", FormatTime(5, 30, 0))
	assert.Equal(t, "T05:00:20", FormatTime(5, 0, 20))
}

func TestRangeTimex(t *testing.T) {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "P7D", DurationTimexBetween(start, end, true))
	assert.Equal(t, "(2024-06-01,2024-06-08,P7D)", FormatRange(FormatDate(start), FormatDate(end), "P7D"))

	from := time.Date(2024, time.June, 1, 17, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 1, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, "PT2H30M", DurationTimexBetween(from, to, false))
	assert.Equal(t, "2024-06-01T17:00:00", FormatDateTime(from))
}

func TestResolveFormats(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2024-03-05", ResolveDate(ts))
	assert.Equal(t, "15:04:05", ResolveTime(ts))
	assert.Equal(t, "2024-03-05 15:04:05", ResolveDateTime(ts))
}
