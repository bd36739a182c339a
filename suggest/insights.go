package suggest

import (
	"sort"
	"time"

	"github.com/plannerkit/schedcore/availability"
)

// Insights summarizes scheduling habits derived from past commitments.
type Insights struct {
	// BusyHours lists the start hours with the most bookings, busiest first,
	// at most four entries.
	BusyHours []int
	// PreferredWeekdays lists the weekdays (0=Sunday..6=Saturday) with the
	// most bookings, busiest first, at most four entries.
	PreferredWeekdays []int
	// AverageMeetingDuration is the mean length of the supplied intervals.
	AverageMeetingDuration time.Duration
}

// AnalyzePatterns derives Insights from a set of past busy intervals. Ties
// are broken by ascending hour/weekday so results are deterministic.
func AnalyzePatterns(events []availability.Interval) Insights {
	if len(events) == 0 {
		return Insights{}
	}

	hourCounts := make(map[int]int)
	weekdayCounts := make(map[int]int)
	var total time.Duration

	for _, ev := range events {
		hourCounts[ev.Start.Hour()]++
		weekdayCounts[int(ev.Start.Weekday())]++
		total += ev.Duration()
	}

	return Insights{
		BusyHours:              topKeys(hourCounts, 4),
		PreferredWeekdays:      topKeys(weekdayCounts, 4),
		AverageMeetingDuration: total / time.Duration(len(events)),
	}
}

// topKeys returns up to limit keys ordered by descending count, ascending
// key on ties.
func topKeys(counts map[int]int, limit int) []int {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
