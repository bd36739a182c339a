package recurrence

import (
	"errors"
	"time"
)

// Frequency is the calendar unit a Rule steps by.
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Yearly
	// Custom steps by Interval days. Kept distinct from Daily so callers can
	// round-trip user input that selected a custom pattern.
	Custom
)

// String provides a human-readable representation of the Frequency.
func (f Frequency) String() string {
	switch f {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// EndType selects how a Rule stops producing occurrences.
type EndType int

const (
	// EndNever relies solely on the expansion cap.
	EndNever EndType = iota
	// EndOnDate stops once the cursor passes a calendar date.
	EndOnDate
	// EndAfterCount stops after a number of emitted occurrences.
	EndAfterCount
)

// EndCondition terminates expansion. Exactly one variant applies; only the
// selected variant's payload is read.
type EndCondition struct {
	Type EndType
	// Date is the last calendar date an occurrence may fall on. EndOnDate only.
	Date time.Time
	// Count is the number of emitted occurrences to stop after. EndAfterCount only.
	Count int
}

// Never returns an EndCondition that only the expansion cap bounds.
func Never() EndCondition {
	return EndCondition{Type: EndNever}
}

// OnDate returns an EndCondition that stops past the given calendar date.
func OnDate(date time.Time) EndCondition {
	return EndCondition{Type: EndOnDate, Date: date}
}

// AfterCount returns an EndCondition that stops after n emitted occurrences.
func AfterCount(n int) EndCondition {
	return EndCondition{Type: EndAfterCount, Count: n}
}

// Rule describes how an event repeats, starting from an anchor date.
//
// The ByWeekday, ByMonthDay and ByMonth filters are advisory and apply only
// to the matching frequency (weekly, monthly, yearly respectively). A filter
// set on another frequency is ignored, not rejected. An absent filter means
// the stepping arithmetic alone decides which dates occur - a weekly rule
// without ByWeekday repeats on the anchor's weekday.
type Rule struct {
	Frequency Frequency
	// Interval is the step count: every N days/weeks/months/years. Must be >= 1.
	Interval int
	End      EndCondition
	// ByWeekday restricts weekly occurrences to these weekdays, 0=Sunday..6=Saturday.
	ByWeekday []int
	// ByMonthDay restricts monthly occurrences to these days of month, 1..31.
	ByMonthDay []int
	// ByMonth restricts yearly occurrences to these months, 1..12.
	ByMonth []int
	// Exceptions are calendar dates to skip, matched by year/month/day.
	Exceptions []time.Time
}

var (
	// ErrInvalidFrequency is returned when a rule's frequency is not one of the
	// defined enum values.
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")
	// ErrInvalidInterval is returned when a rule's interval is below 1.
	ErrInvalidInterval = errors.New("recurrence interval must be at least 1")
	// ErrInvalidEndCondition is returned when the selected end condition's
	// payload is unusable (zero date, non-positive count).
	ErrInvalidEndCondition = errors.New("invalid recurrence end condition")
	// ErrInvalidFilter is returned when a ByWeekday/ByMonthDay/ByMonth value
	// falls outside its legal range.
	ErrInvalidFilter = errors.New("recurrence filter value out of range")
)

// Validate checks the rule's shape before expansion. It fails fast so callers
// see malformed input as an error instead of a silently corrected rule.
func (r Rule) Validate() error {
	switch r.Frequency {
	case Daily, Weekly, Monthly, Yearly, Custom:
	default:
		return ErrInvalidFrequency
	}

	if r.Interval < 1 {
		return ErrInvalidInterval
	}

	switch r.End.Type {
	case EndNever:
	case EndOnDate:
		if r.End.Date.IsZero() {
			return ErrInvalidEndCondition
		}
	case EndAfterCount:
		if r.End.Count < 1 {
			return ErrInvalidEndCondition
		}
	default:
		return ErrInvalidEndCondition
	}

	for _, wd := range r.ByWeekday {
		if wd < 0 || wd > 6 {
			return ErrInvalidFilter
		}
	}
	for _, md := range r.ByMonthDay {
		if md < 1 || md > 31 {
			return ErrInvalidFilter
		}
	}
	for _, m := range r.ByMonth {
		if m < 1 || m > 12 {
			return ErrInvalidFilter
		}
	}

	return nil
}

// matches tests the cursor against the frequency-specific filter. An absent
// filter always passes.
func (r Rule) matches(cursor time.Time) bool {
	switch r.Frequency {
	case Weekly:
		if len(r.ByWeekday) == 0 {
			return true
		}
		return containsInt(r.ByWeekday, int(cursor.Weekday()))
	case Monthly:
		if len(r.ByMonthDay) == 0 {
			return true
		}
		return containsInt(r.ByMonthDay, cursor.Day())
	case Yearly:
		if len(r.ByMonth) == 0 {
			return true
		}
		return containsInt(r.ByMonth, int(cursor.Month()))
	default:
		return true
	}
}

// isException reports whether the cursor falls on an exception date.
// Comparison is by calendar day; the time-of-day parts are ignored.
func (r Rule) isException(cursor time.Time) bool {
	for _, ex := range r.Exceptions {
		if sameDay(cursor, ex) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
