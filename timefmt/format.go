// Package timefmt renders event times, durations and relative offsets the
// way the calendar UI displays them.
package timefmt

import (
	"fmt"
	"math"
	"time"
)

// EventTime renders an event's time span for display. All-day events show
// dates only; timed events on a single day share the date prefix.
func EventTime(start, end time.Time, allDay bool) string {
	if allDay {
		if sameDay(start, end) {
			return start.Format("Jan 2, 2006")
		}
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}

	if sameDay(start, end) {
		return fmt.Sprintf("%s • %s - %s",
			start.Format("Jan 2, 2006"), start.Format("15:04"), end.Format("15:04"))
	}

	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 15:04"), end.Format("Jan 2, 15:04, 2006"))
}

// Duration renders the span between start and end as "2h", "45m" or "1h 30m".
func Duration(start, end time.Time) string {
	d := end.Sub(start)
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// Relative renders t relative to now: "now", "in 5m", "2h ago", "in 3d", or
// the plain date once it is a week or more away.
func Relative(now, t time.Time) string {
	diff := t.Sub(now)
	minutes := int(math.Round(diff.Minutes()))
	hours := int(math.Round(diff.Hours()))
	days := int(math.Round(diff.Hours() / 24))

	if abs(minutes) < 60 {
		if minutes == 0 {
			return "now"
		}
		if minutes > 0 {
			return fmt.Sprintf("in %dm", minutes)
		}
		return fmt.Sprintf("%dm ago", -minutes)
	}

	if abs(hours) < 24 {
		if hours > 0 {
			return fmt.Sprintf("in %dh", hours)
		}
		return fmt.Sprintf("%dh ago", -hours)
	}

	if abs(days) < 7 {
		if days > 0 {
			return fmt.Sprintf("in %dd", days)
		}
		return fmt.Sprintf("%dd ago", -days)
	}

	return t.Format("Jan 2, 2006")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
