package contrib

import (
	"sort"
	"time"
)

// Day is one calendar date's contribution activity. Dates are always
// normalized to midnight UTC so that comparisons never drift across
// local offsets. The intensity level is deliberately not stored; it is
// recomputed from Count on demand (see AbsoluteLevel / RelativeLevel).
type Day struct {
	Date  time.Time
	Count int
}

// Week is a contiguous Sunday-to-Saturday run of days in ascending
// date order. Weeks are derived from a snapshot, never persisted.
type Week []Day

// Snapshot is the immutable result of one fetch-and-parse for a single
// username. It is superseded by a newer snapshot on refresh, never
// mutated in place.
type Snapshot struct {
	Username           string
	TotalContributions int
	// TotalIsExplicit reports whether TotalContributions came from a
	// page-level total rather than the sum of the parsed days. When the
	// parser had to estimate counts from intensity levels, a summed
	// total is an approximation.
	TotalIsExplicit bool
	Days            []Day
	FetchedAt       time.Time
}

// NewDate returns midnight UTC for the given calendar date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Fresh reports whether the snapshot is still within its time-to-live.
func (s *Snapshot) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.FetchedAt) < ttl
}

// Age returns how long ago the snapshot was fetched.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// MaxCount returns the highest daily count in the snapshot.
func (s *Snapshot) MaxCount() int {
	max := 0
	for _, d := range s.Days {
		if d.Count > max {
			max = d.Count
		}
	}
	return max
}

// DayOn returns the observation for the given calendar date, if any.
func (s *Snapshot) DayOn(date time.Time) (Day, bool) {
	date = DateOf(date)
	for _, d := range s.Days {
		if d.Date.Equal(date) {
			return d, true
		}
	}
	return Day{}, false
}

// Weeks groups the snapshot's days into Sunday-to-Saturday buckets in
// ascending date order. A new bucket starts whenever a Sunday is seen;
// the leading and trailing buckets may be partial.
func (s *Snapshot) Weeks() []Week {
	days := s.sortedAscending()
	if len(days) == 0 {
		return nil
	}

	var weeks []Week
	var current Week
	for _, d := range days {
		if d.Date.Weekday() == time.Sunday && len(current) > 0 {
			weeks = append(weeks, current)
			current = nil
		}
		current = append(current, d)
	}
	if len(current) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}

func (s *Snapshot) sortedAscending() []Day {
	days := make([]Day, len(s.Days))
	copy(days, s.Days)
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}
