// Package suggest ranks candidate meeting times for a participant set using
// a deterministic conflict-and-preference heuristic. It is intentionally
// simple: the exact arithmetic is the compatibility contract, not a model to
// improve on.
package suggest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/samber/mo"

	"github.com/plannerkit/schedcore/availability"
)

// ConflictSource supplies the busy intervals of a participant set that
// overlap a candidate meeting window. Implementations typically query an
// event store; the memory subpackage provides a self-contained one.
type ConflictSource interface {
	Conflicts(ctx context.Context, participants []string, start time.Time, duration time.Duration) ([]availability.Interval, error)
}

// Scheduler ranks candidate meeting times for a participant set.
type Scheduler struct {
	source ConflictSource
}

// NewScheduler creates a Scheduler backed by the given conflict source.
func NewScheduler(source ConflictSource) (*Scheduler, error) {
	if source == nil {
		return nil, ErrNoConflictSource
	}
	return &Scheduler{source: source}, nil
}

// acceptanceThreshold filters candidates; only scores strictly above it are
// returned.
const acceptanceThreshold = 0.5

// Suggest proposes meeting start times on preferredDate for the given
// participants, one candidate per whole hour of the window (DefaultWindow
// when none is supplied). Candidates scoring at or below the acceptance
// threshold are dropped; the rest are sorted by descending confidence, ties
// keeping ascending-hour order. An empty result is a valid outcome, not an
// error.
//
// A failed conflict lookup degrades that candidate to "no known conflicts"
// instead of failing the whole run; logging the failure is the caller's
// responsibility.
func (s *Scheduler) Suggest(ctx context.Context, participants []string, duration time.Duration, preferredDate time.Time, window mo.Option[HourWindow]) ([]Suggestion, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	w := window.OrElse(DefaultWindow)
	if err := w.Validate(); err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	for hour := w.StartHour; hour < w.EndHour; hour++ {
		start := atHour(preferredDate, hour)

		conflicts, err := s.source.Conflicts(ctx, participants, start, duration)
		if err != nil {
			// Fail open: one broken lookup should not sink the whole list.
			conflicts = nil
		}

		confidence := Confidence(hour, len(conflicts))
		if confidence <= acceptanceThreshold {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			Time:         start,
			Confidence:   confidence,
			Reason:       reason(hour, len(conflicts)),
			Alternatives: alternatives(start),
			Conflicts:    conflicts,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	return suggestions, nil
}

// Confidence scores a candidate hour. Mid-morning is preferred, early
// afternoon mildly so, lunch and out-of-office hours are penalized, and each
// conflicting interval costs 0.3. The result is clamped to [0, 1].
func Confidence(hour, conflictCount int) float64 {
	confidence := 1.0

	confidence -= float64(conflictCount) * 0.3

	if hour >= 10 && hour <= 11 {
		confidence += 0.2
	}
	if hour >= 14 && hour <= 15 {
		confidence += 0.1
	}
	if hour == 12 {
		confidence -= 0.4
	}
	if hour < 9 || hour > 17 {
		confidence -= 0.5
	}

	return math.Max(0, math.Min(1, confidence))
}

func reason(hour, conflictCount int) string {
	if conflictCount > 0 {
		if conflictCount == 1 {
			return "1 potential conflict detected"
		}
		return fmt.Sprintf("%d potential conflicts detected", conflictCount)
	}

	if hour >= 10 && hour <= 11 {
		return "Optimal morning slot - high productivity period"
	}
	if hour >= 14 && hour <= 15 {
		return "Good afternoon slot - post-lunch energy"
	}

	return "Available time slot"
}

// alternatives generates up to six nearby start times at +-30/60/90 minutes,
// keeping only those whose hour of day stays within 9..17. The generation
// order (+30, -30, +60, -60, +90, -90) is preserved, not re-sorted.
func alternatives(candidate time.Time) []time.Time {
	var alts []time.Time
	for i := 1; i <= 3; i++ {
		offset := time.Duration(i) * 30 * time.Minute

		later := candidate.Add(offset)
		if h := later.Hour(); h >= 9 && h <= 17 {
			alts = append(alts, later)
		}

		earlier := candidate.Add(-offset)
		if h := earlier.Hour(); h >= 9 && h <= 17 {
			alts = append(alts, earlier)
		}
	}
	return alts
}

func atHour(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}
