package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidDuration is returned when a requested duration is not positive.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrInvalidGranularity is returned when a granularity override is not positive.
	ErrInvalidGranularity = errors.New("granularity must be positive")
	// ErrInvalidWorkingHours is returned when a working-hours window is malformed.
	ErrInvalidWorkingHours = errors.New("invalid working hours")
	// ErrMalformedTimeOfDay is returned when a clock string is not "HH:MM".
	ErrMalformedTimeOfDay = errors.New("malformed time of day")
)

// TimeOfDay is a wall-clock time within a day, independent of any date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:MM" clock string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTimeOfDay, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTimeOfDay, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTimeOfDay, s)
	}

	tod := TimeOfDay{Hour: hour, Minute: minute}
	if err := tod.validate(); err != nil {
		return TimeOfDay{}, err
	}
	return tod, nil
}

func (t TimeOfDay) validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrMalformedTimeOfDay, t.Hour, t.Minute)
	}
	return nil
}

// Minutes returns the clock time as minutes from midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// On places the clock time on the given day, in the day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// String renders the clock time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Interval is a half-open busy time range [Start, End), typically an existing
// commitment. Intervals are inputs and never mutated.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Intervals that
// merely touch do not overlap, which is what allows back-to-back bookings.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Duration returns the interval's length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// WorkingHours defines the window within a calendar day that is eligible for
// slot search, plus the weekdays the window applies to.
type WorkingHours struct {
	Start TimeOfDay
	End   TimeOfDay
	// ActiveWeekdays lists working weekdays, 0=Sunday..6=Saturday.
	ActiveWeekdays []int
}

// Validate checks the window's shape.
func (wh WorkingHours) Validate() error {
	if err := wh.Start.validate(); err != nil {
		return err
	}
	if err := wh.End.validate(); err != nil {
		return err
	}
	if wh.Start.Minutes() >= wh.End.Minutes() {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidWorkingHours, wh.Start, wh.End)
	}
	for _, wd := range wh.ActiveWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: weekday %d", ErrInvalidWorkingHours, wd)
		}
	}
	return nil
}

func (wh WorkingHours) activeOn(weekday time.Weekday) bool {
	for _, wd := range wh.ActiveWeekdays {
		if wd == int(weekday) {
			return true
		}
	}
	return false
}

// Slot is a candidate booking of exactly the requested duration, fully
// contained in a day's working-hours window.
type Slot struct {
	Start time.Time
	End   time.Time
}
