package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRRuleString(t *testing.T) {
	rule := Rule{
		Frequency: Weekly,
		Interval:  2,
		End:       AfterCount(10),
		ByWeekday: []int{1, 3, 5},
	}

	value, err := RRuleString(rule)
	require.NoError(t, err)

	assert.Contains(t, value, "FREQ=WEEKLY")
	assert.Contains(t, value, "INTERVAL=2")
	assert.Contains(t, value, "COUNT=10")
	assert.Contains(t, value, "BYDAY=MO,WE,FR")
	assert.NotContains(t, value, "RRULE:")
}

func TestRRuleString_InvalidRule(t *testing.T) {
	_, err := RRuleString(Rule{Frequency: Daily, Interval: 0, End: Never()})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestParseRRule(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  Rule
	}{
		{
			name:  "daily with count",
			value: "FREQ=DAILY;COUNT=7",
			want:  Rule{Frequency: Daily, Interval: 1, End: AfterCount(7)},
		},
		{
			name:  "weekly with weekdays",
			value: "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE,FR",
			want: Rule{
				Frequency: Weekly,
				Interval:  2,
				End:       Never(),
				ByWeekday: []int{1, 3, 5},
			},
		},
		{
			name:  "monthly by month day",
			value: "FREQ=MONTHLY;BYMONTHDAY=15",
			want: Rule{
				Frequency:  Monthly,
				Interval:   1,
				End:        Never(),
				ByMonthDay: []int{15},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := ParseRRule(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rule)
		})
	}
}

func TestParseRRule_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "hourly frequency", value: "FREQ=HOURLY"},
		{name: "bysetpos", value: "FREQ=MONTHLY;BYDAY=MO;BYSETPOS=1"},
		{name: "positional weekday", value: "FREQ=MONTHLY;BYDAY=2MO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRRule(tt.value)
			assert.ErrorIs(t, err, ErrUnsupportedRRule)
		})
	}
}

func TestRRuleRoundTrip(t *testing.T) {
	original := Rule{
		Frequency: Weekly,
		Interval:  2,
		End:       AfterCount(12),
		ByWeekday: []int{1, 3, 5},
	}

	value, err := RRuleString(original)
	require.NoError(t, err)

	parsed, err := ParseRRule(value)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestEventICS(t *testing.T) {
	anchor := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	rule := Rule{
		Frequency:  Daily,
		Interval:   1,
		End:        AfterCount(5),
		Exceptions: []time.Time{time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)},
	}

	ics, err := EventICS("Team sync", anchor, 30*time.Minute, rule)
	require.NoError(t, err)

	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "BEGIN:VEVENT")
	assert.Contains(t, ics, "SUMMARY:Team sync")
	assert.Contains(t, ics, "FREQ=DAILY")
	assert.Contains(t, ics, "COUNT=5")
	assert.Contains(t, ics, "EXDATE;VALUE=DATE:20240103")
	assert.Contains(t, ics, "UID:")
}

func TestEventICS_InvalidRule(t *testing.T) {
	anchor := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	_, err := EventICS("Broken", anchor, time.Hour, Rule{Frequency: Daily, End: Never()})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
