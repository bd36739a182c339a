package memory

import (
	"context"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerkit/schedcore/suggest"
)

var day = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func TestStore_Conflicts(t *testing.T) {
	store := New()
	store.Add("Standup", []string{"alice@example.com", "bob@example.com"}, at(10, 0), at(10, 30))
	store.Add("1:1", []string{"carol@example.com"}, at(10, 0), at(11, 0))

	conflicts, err := store.Conflicts(context.Background(), []string{"alice@example.com"}, at(10, 0), time.Hour)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, at(10, 0), conflicts[0].Start)
	assert.Equal(t, at(10, 30), conflicts[0].End)

	// Back-to-back is not a conflict.
	conflicts, err = store.Conflicts(context.Background(), []string{"alice@example.com"}, at(10, 30), time.Hour)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// Unknown participants have no conflicts.
	conflicts, err = store.Conflicts(context.Background(), []string{"dave@example.com"}, at(10, 0), time.Hour)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestStore_Remove(t *testing.T) {
	store := New()
	ev := store.Add("Standup", []string{"alice@example.com"}, at(10, 0), at(10, 30))

	assert.True(t, store.Remove(ev.ID))
	assert.False(t, store.Remove(ev.ID))

	conflicts, err := store.Conflicts(context.Background(), []string{"alice@example.com"}, at(10, 0), time.Hour)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestStore_BusyIntervalsSorted(t *testing.T) {
	store := New()
	store.Add("Late", []string{"alice@example.com"}, at(15, 0), at(16, 0))
	store.Add("Early", []string{"alice@example.com"}, at(9, 0), at(9, 30))
	store.Add("Other person", []string{"bob@example.com"}, at(11, 0), at(12, 0))

	intervals := store.BusyIntervals([]string{"alice@example.com"})
	require.Len(t, intervals, 2)
	assert.Equal(t, at(9, 0), intervals[0].Start)
	assert.Equal(t, at(15, 0), intervals[1].Start)
}

func TestStore_DrivesScheduler(t *testing.T) {
	store := New()
	store.Add("Lunch", []string{"alice@example.com"}, at(12, 0), at(13, 0))

	scheduler, err := suggest.NewScheduler(store)
	require.NoError(t, err)

	suggestions, err := scheduler.Suggest(context.Background(), []string{"alice@example.com"},
		30*time.Minute, day, mo.None[suggest.HourWindow]())
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	for _, s := range suggestions {
		assert.NotEqual(t, 12, s.Time.Hour())
	}
}
