package contrib

import (
	"sort"
	"time"
)

// CurrentStreak counts the consecutive run of days with at least one
// contribution ending at "now"'s calendar date. A zero-count entry for
// today does not break an existing streak while the day is still in
// progress; the walk then starts from yesterday instead. A missing
// observation for an expected day ends the walk.
func (s *Snapshot) CurrentStreak(now time.Time) int {
	days := make([]Day, len(s.Days))
	copy(days, s.Days)
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})

	expected := DateOf(now)
	if d, ok := s.DayOn(expected); ok && d.Count == 0 {
		expected = expected.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range days {
		if d.Date.After(expected) {
			// today's zero entry when the walk starts at yesterday
			continue
		}
		if d.Date.Equal(expected) {
			if d.Count == 0 {
				break
			}
			streak++
			expected = expected.AddDate(0, 0, -1)
			continue
		}
		// d.Date before expected: a gap in the observations
		break
	}
	return streak
}

// LongestStreak returns the length of the longest run of consecutive
// calendar dates each with at least one contribution. A zero-count day
// always breaks the chain; nonzero days separated by a zero day never
// join, even when their dates are adjacent to other runs.
func (s *Snapshot) LongestStreak() int {
	days := s.sortedAscending()

	var current, longest int
	var prev time.Time
	hasPrev := false
	for _, d := range days {
		if d.Count == 0 {
			current = 0
			hasPrev = false
			continue
		}
		if hasPrev && prev.AddDate(0, 0, 1).Equal(d.Date) {
			current++
		} else {
			current = 1
		}
		prev = d.Date
		hasPrev = true
		if current > longest {
			longest = current
		}
	}
	return longest
}
