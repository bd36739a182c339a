package recurrence

import "time"

// DefaultMaxOccurrences bounds expansion when the caller passes no cap of its
// own. It keeps rules with EndNever from iterating forever.
const DefaultMaxOccurrences = 100

// Expand materializes the occurrence dates of rule, starting at anchor.
//
// The anchor is the first candidate occurrence. Each iteration checks the end
// condition, skips exception dates, applies the frequency filter and advances
// the cursor by the rule's interval. Skipped cursor positions (exceptions,
// filter misses) consume an iteration but do not count toward an
// EndAfterCount total - the count applies to emitted occurrences only.
//
// maxOccurrences caps the number of iterations regardless of the end
// condition; values below 1 select DefaultMaxOccurrences. The returned dates
// are strictly increasing.
//
// A weekly rule without ByWeekday repeats on the anchor's weekday, stepping
// whole weeks. With ByWeekday set the cursor walks individual days inside
// each kept week, so every listed weekday occurs; each day visited consumes
// one iteration of the cap.
//
// Monthly and yearly stepping clamps to the last valid day of the target
// month: Jan 31 plus one month is Feb 28 (or 29). The clamp is computed from
// the anchor each step, so the anchor's day of month is not lost - Jan 31
// stepping monthly visits Feb 28, Mar 31, Apr 30 and so on.
func Expand(anchor time.Time, rule Rule, maxOccurrences int) ([]time.Time, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if maxOccurrences < 1 {
		maxOccurrences = DefaultMaxOccurrences
	}

	var dates []time.Time
	for step := 0; step < maxOccurrences; step++ {
		cursor := cursorAt(anchor, rule, step)

		if rule.End.Type == EndOnDate && dayAfter(cursor, rule.End.Date) {
			break
		}
		if rule.End.Type == EndAfterCount && len(dates) >= rule.End.Count {
			break
		}
		if rule.isException(cursor) {
			continue
		}
		if rule.matches(cursor) {
			dates = append(dates, cursor)
		}
	}

	return dates, nil
}

// cursorAt computes the cursor for the given step directly from the anchor
// rather than from the previous cursor, so month-end clamping never
// accumulates.
func cursorAt(anchor time.Time, rule Rule, step int) time.Time {
	n := step * rule.Interval
	switch rule.Frequency {
	case Weekly:
		if len(rule.ByWeekday) > 0 {
			// With a weekday filter the cursor walks individual days so a
			// Mon/Wed/Fri rule emits three dates a week, jumping ahead at
			// anchor-aligned week boundaries so interval weeks are skipped.
			week := step / 7
			day := step % 7
			return anchor.AddDate(0, 0, week*rule.Interval*7+day)
		}
		return anchor.AddDate(0, 0, n*7)
	case Monthly:
		return addMonthsClamped(anchor, n)
	case Yearly:
		return addMonthsClamped(anchor, n*12)
	default:
		// Daily, and Custom's defined fallback of stepping by days.
		return anchor.AddDate(0, 0, n)
	}
}

// addMonthsClamped adds months to t, clamping the day of month to the last
// valid day of the target month instead of rolling into the next one.
func addMonthsClamped(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) - 1 + months
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}

	day := t.Day()
	if last := daysInMonth(year, time.Month(month+1)); day > last {
		day = last
	}

	hour, minute, sec := t.Clock()
	return time.Date(year, time.Month(month+1), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dayAfter reports whether a falls on a later calendar day than b. The end
// date is a calendar date, so an occurrence at 09:00 on the end date itself
// still counts.
func dayAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}
