// Package memory provides an in-memory conflict source for testing and
// examples.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plannerkit/schedcore/availability"
)

// Event is one stored commitment for a set of participants.
type Event struct {
	ID           uuid.UUID
	Title        string
	Participants []string
	Interval     availability.Interval
}

// Store implements suggest.ConflictSource using an in-memory event list.
type Store struct {
	mu     sync.RWMutex
	events map[uuid.UUID]Event
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		events: make(map[uuid.UUID]Event),
	}
}

// Add records an event and returns it with its generated ID.
func (s *Store) Add(title string, participants []string, start, end time.Time) Event {
	ev := Event{
		ID:           uuid.New(),
		Title:        title,
		Participants: participants,
		Interval:     availability.Interval{Start: start, End: end},
	}

	s.mu.Lock()
	s.events[ev.ID] = ev
	s.mu.Unlock()

	return ev
}

// Remove deletes an event by ID and reports whether it existed.
func (s *Store) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.events[id]
	delete(s.events, id)
	return ok
}

// BusyIntervals returns every interval involving any of the participants,
// sorted by start time.
func (s *Store) BusyIntervals(participants []string) []availability.Interval {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var intervals []availability.Interval
	for _, ev := range s.events {
		if involvesAny(ev, participants) {
			intervals = append(intervals, ev.Interval)
		}
	}

	sortIntervals(intervals)
	return intervals
}

// Conflicts returns the stored intervals of the given participants that
// overlap [start, start+duration), sorted by start time.
func (s *Store) Conflicts(_ context.Context, participants []string, start time.Time, duration time.Duration) ([]availability.Interval, error) {
	window := availability.Interval{Start: start, End: start.Add(duration)}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var conflicts []availability.Interval
	for _, ev := range s.events {
		if involvesAny(ev, participants) && ev.Interval.Overlaps(window) {
			conflicts = append(conflicts, ev.Interval)
		}
	}

	sortIntervals(conflicts)
	return conflicts, nil
}

func involvesAny(ev Event, participants []string) bool {
	for _, p := range participants {
		for _, member := range ev.Participants {
			if p == member {
				return true
			}
		}
	}
	return false
}

func sortIntervals(intervals []availability.Interval) {
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
}
