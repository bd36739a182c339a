// Package availability enumerates open meeting slots inside a day's
// working-hours window, given the busy intervals already booked. All
// functions are pure; callers resolve timezones and fetch busy data
// themselves.
package availability

import "time"

// DefaultGranularity is the step between candidate slot starts.
const DefaultGranularity = 15 * time.Minute

type options struct {
	granularity time.Duration
}

// Option adjusts slot search behaviour.
type Option func(*options)

// WithGranularity overrides the candidate step size.
func WithGranularity(granularity time.Duration) Option {
	return func(o *options) {
		o.granularity = granularity
	}
}

// FindOpenSlots enumerates the free slots of the given duration on day,
// walking candidate starts from the opening to the closing time in
// granularity steps. A slot is kept when it ends by closing time and
// overlaps no busy interval under the half-open rule, so a slot may begin
// exactly when a busy interval ends. Slots are returned in chronological
// order.
//
// A day whose weekday is not active yields an empty, non-error result.
func FindOpenSlots(day time.Time, duration time.Duration, busy []Interval, hours WorkingHours, opts ...Option) ([]Slot, error) {
	o := options{granularity: DefaultGranularity}
	for _, opt := range opts {
		opt(&o)
	}

	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if o.granularity <= 0 {
		return nil, ErrInvalidGranularity
	}
	if err := hours.Validate(); err != nil {
		return nil, err
	}

	if !hours.activeOn(day.Weekday()) {
		return nil, nil
	}

	windowEnd := hours.End.On(day)

	var slots []Slot
	for start := hours.Start.On(day); start.Before(windowEnd); start = start.Add(o.granularity) {
		end := start.Add(duration)
		if end.After(windowEnd) {
			// Later candidates only end later; nothing further fits.
			break
		}

		candidate := Interval{Start: start, End: end}
		if conflictsAny(candidate, busy) {
			continue
		}
		slots = append(slots, Slot{Start: start, End: end})
	}

	return slots, nil
}

func conflictsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// IsWorkingTime reports whether t falls on an active weekday and within the
// working-hours window. Both window boundaries count as working time.
func IsWorkingTime(t time.Time, hours WorkingHours) bool {
	if !hours.activeOn(t.Weekday()) {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= hours.Start.Minutes() && minutes <= hours.End.Minutes()
}
