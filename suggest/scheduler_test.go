package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerkit/schedcore/availability"
)

// conflictFunc adapts a function to the ConflictSource interface.
type conflictFunc func(ctx context.Context, participants []string, start time.Time, duration time.Duration) ([]availability.Interval, error)

func (f conflictFunc) Conflicts(ctx context.Context, participants []string, start time.Time, duration time.Duration) ([]availability.Interval, error) {
	return f(ctx, participants, start, duration)
}

var noConflicts = conflictFunc(func(context.Context, []string, time.Time, time.Duration) ([]availability.Interval, error) {
	return nil, nil
})

// lunchConflicts books 12:00-13:00 for everyone.
var lunchConflicts = conflictFunc(func(_ context.Context, _ []string, start time.Time, duration time.Duration) ([]availability.Interval, error) {
	lunch := availability.Interval{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 12, 0, 0, 0, start.Location()),
		End:   time.Date(start.Year(), start.Month(), start.Day(), 13, 0, 0, 0, start.Location()),
	}
	window := availability.Interval{Start: start, End: start.Add(duration)}
	if lunch.Overlaps(window) {
		return []availability.Interval{lunch}, nil
	}
	return nil, nil
})

var tuesday = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

func TestNewScheduler_RequiresSource(t *testing.T) {
	_, err := NewScheduler(nil)
	assert.ErrorIs(t, err, ErrNoConflictSource)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name          string
		hour          int
		conflictCount int
		want          float64
	}{
		{name: "preferred morning clamps to one", hour: 10, conflictCount: 0, want: 1.0},
		{name: "late morning", hour: 11, conflictCount: 0, want: 1.0},
		{name: "lunch penalty", hour: 12, conflictCount: 0, want: 0.6},
		{name: "plain working hour", hour: 9, conflictCount: 0, want: 1.0},
		{name: "early afternoon bonus", hour: 14, conflictCount: 0, want: 1.0},
		{name: "one conflict", hour: 13, conflictCount: 1, want: 0.7},
		{name: "two conflicts", hour: 13, conflictCount: 2, want: 0.4},
		{name: "before hours with conflict", hour: 8, conflictCount: 1, want: 0.2},
		{name: "clamped to zero", hour: 8, conflictCount: 2, want: 0.0},
		{name: "after hours", hour: 18, conflictCount: 0, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Confidence(tt.hour, tt.conflictCount), 1e-9)
		})
	}
}

func TestSuggest_Validation(t *testing.T) {
	scheduler, err := NewScheduler(noConflicts)
	require.NoError(t, err)

	_, err = scheduler.Suggest(context.Background(), nil, 0, tuesday, mo.None[HourWindow]())
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = scheduler.Suggest(context.Background(), nil, time.Hour, tuesday,
		mo.Some(HourWindow{StartHour: 17, EndHour: 9}))
	assert.ErrorIs(t, err, ErrMalformedWindow)
}

func TestSuggest_DefaultWindowOrdering(t *testing.T) {
	scheduler, err := NewScheduler(noConflicts)
	require.NoError(t, err)

	suggestions, err := scheduler.Suggest(context.Background(), []string{"alice@example.com"},
		30*time.Minute, tuesday, mo.None[HourWindow]())
	require.NoError(t, err)

	// Hours 9..16 all pass the threshold on an empty calendar; every hour but
	// 12 clamps to 1.0, so the stable sort keeps ascending order with 12 last.
	require.Len(t, suggestions, 8)
	wantHours := []int{9, 10, 11, 13, 14, 15, 16, 12}
	for i, s := range suggestions {
		assert.Equal(t, wantHours[i], s.Time.Hour())
		assert.Equal(t, 0, s.Time.Minute())
	}
	assert.InDelta(t, 0.6, suggestions[7].Confidence, 1e-9)
}

func TestSuggest_ConflictsLowerScoreAndExplain(t *testing.T) {
	scheduler, err := NewScheduler(lunchConflicts)
	require.NoError(t, err)

	suggestions, err := scheduler.Suggest(context.Background(), []string{"alice@example.com"},
		30*time.Minute, tuesday, mo.None[HourWindow]())
	require.NoError(t, err)

	// Hour 12 now scores 1.0 - 0.3 - 0.4 = 0.3 and drops below the threshold.
	require.Len(t, suggestions, 7)
	for _, s := range suggestions {
		assert.NotEqual(t, 12, s.Time.Hour())
		assert.Greater(t, s.Confidence, 0.5)
		assert.Empty(t, s.Conflicts)
	}
}

func TestSuggest_ReasonTexts(t *testing.T) {
	scheduler, err := NewScheduler(noConflicts)
	require.NoError(t, err)

	suggestions, err := scheduler.Suggest(context.Background(), nil, 30*time.Minute, tuesday,
		mo.None[HourWindow]())
	require.NoError(t, err)

	byHour := make(map[int]Suggestion)
	for _, s := range suggestions {
		byHour[s.Time.Hour()] = s
	}

	assert.Equal(t, "Optimal morning slot - high productivity period", byHour[10].Reason)
	assert.Equal(t, "Good afternoon slot - post-lunch energy", byHour[14].Reason)
	assert.Equal(t, "Available time slot", byHour[9].Reason)
}

func TestSuggest_ConflictReasonCounts(t *testing.T) {
	assert.Equal(t, "1 potential conflict detected", reason(10, 1))
	assert.Equal(t, "3 potential conflicts detected", reason(10, 3))
}

func TestSuggest_CustomWindow(t *testing.T) {
	scheduler, err := NewScheduler(noConflicts)
	require.NoError(t, err)

	suggestions, err := scheduler.Suggest(context.Background(), nil, time.Hour, tuesday,
		mo.Some(HourWindow{StartHour: 10, EndHour: 12}))
	require.NoError(t, err)

	require.Len(t, suggestions, 2)
	assert.Equal(t, 10, suggestions[0].Time.Hour())
	assert.Equal(t, 11, suggestions[1].Time.Hour())
}

func TestSuggest_FailOpenOnLookupError(t *testing.T) {
	failing := conflictFunc(func(context.Context, []string, time.Time, time.Duration) ([]availability.Interval, error) {
		return nil, errors.New("store unavailable")
	})

	scheduler, err := NewScheduler(failing)
	require.NoError(t, err)

	suggestions, err := scheduler.Suggest(context.Background(), nil, 30*time.Minute, tuesday,
		mo.None[HourWindow]())
	require.NoError(t, err)

	// Lookup failures degrade to "no known conflicts" per candidate.
	require.Len(t, suggestions, 8)
	for _, s := range suggestions {
		assert.Empty(t, s.Conflicts)
	}
}

func TestSuggest_NeverBelowThreshold(t *testing.T) {
	everyoneBusy := conflictFunc(func(_ context.Context, _ []string, start time.Time, duration time.Duration) ([]availability.Interval, error) {
		return []availability.Interval{
			{Start: start, End: start.Add(duration)},
			{Start: start, End: start.Add(duration)},
		}, nil
	})

	scheduler, err := NewScheduler(everyoneBusy)
	require.NoError(t, err)

	suggestions, err := scheduler.Suggest(context.Background(), nil, 30*time.Minute, tuesday,
		mo.None[HourWindow]())
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestAlternatives(t *testing.T) {
	t.Run("mid day generates all six", func(t *testing.T) {
		candidate := time.Date(2024, time.January, 2, 13, 0, 0, 0, time.UTC)
		alts := alternatives(candidate)

		wantOffsets := []time.Duration{
			30 * time.Minute, -30 * time.Minute,
			60 * time.Minute, -60 * time.Minute,
			90 * time.Minute, -90 * time.Minute,
		}
		require.Len(t, alts, 6)
		for i, offset := range wantOffsets {
			assert.Equal(t, candidate.Add(offset), alts[i])
		}
	})

	t.Run("early candidate drops pre-nine alternatives", func(t *testing.T) {
		candidate := time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)
		alts := alternatives(candidate)

		want := []time.Time{
			candidate.Add(30 * time.Minute),
			candidate.Add(60 * time.Minute),
			candidate.Add(90 * time.Minute),
		}
		assert.Equal(t, want, alts)
	})
}
