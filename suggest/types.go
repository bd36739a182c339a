package suggest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/plannerkit/schedcore/availability"
)

var (
	// ErrInvalidDuration is returned when a requested meeting duration is not positive.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrMalformedWindow is returned when a time-range boundary cannot be parsed
	// or the window is empty.
	ErrMalformedWindow = errors.New("malformed time range")
	// ErrNoConflictSource is returned when a Scheduler is built without a source.
	ErrNoConflictSource = errors.New("conflict source is required")
)

// HourWindow bounds candidate generation to whole hours in
// [StartHour, EndHour).
type HourWindow struct {
	StartHour int
	EndHour   int
}

// DefaultWindow is the 9-to-5 business window used when the caller supplies
// no range.
var DefaultWindow = HourWindow{StartHour: 9, EndHour: 17}

// ParseHourWindow converts "HH:MM" boundary strings into an HourWindow.
// Minutes are truncated at the hour boundary: "09:30" starts the window at
// hour 9. Minutes within boundary hours are not supported.
func ParseHourWindow(start, end string) (HourWindow, error) {
	startHour, err := parseHour(start)
	if err != nil {
		return HourWindow{}, err
	}
	endHour, err := parseHour(end)
	if err != nil {
		return HourWindow{}, err
	}

	w := HourWindow{StartHour: startHour, EndHour: endHour}
	if err := w.Validate(); err != nil {
		return HourWindow{}, err
	}
	return w, nil
}

func parseHour(s string) (int, error) {
	hourPart, _, _ := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedWindow, s)
	}
	if hour < 0 || hour > 24 {
		return 0, fmt.Errorf("%w: hour %d out of range", ErrMalformedWindow, hour)
	}
	return hour, nil
}

// Validate checks that the window is non-empty.
func (w HourWindow) Validate() error {
	if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
		return fmt.Errorf("%w: [%d, %d)", ErrMalformedWindow, w.StartHour, w.EndHour)
	}
	return nil
}

// Suggestion is one ranked candidate meeting time. Suggestions are built
// fresh per call and never mutated afterwards.
type Suggestion struct {
	// Time is the proposed meeting start.
	Time time.Time
	// Confidence scores the proposal in [0, 1]; higher is better.
	Confidence float64
	// Reason is a short human-readable explanation for the score.
	Reason string
	// Alternatives lists up to six nearby start times, in generation order.
	Alternatives []time.Time
	// Conflicts carries the busy intervals that overlap the proposal, for display.
	Conflicts []availability.Interval
}
