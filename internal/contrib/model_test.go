package contrib

import (
	"testing"
	"time"
)

func TestWeeksPartialLeadingBucket(t *testing.T) {
	// 2024-10-03 is a Thursday; ten consecutive days span Thu-Sat plus
	// a full Sunday-to-Saturday week.
	start := NewDate(2024, time.October, 3)
	days := make([]Day, 10)
	for i := range days {
		days[i] = Day{Date: start.AddDate(0, 0, i), Count: i}
	}
	s := &Snapshot{Days: days}

	weeks := s.Weeks()
	if len(weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(weeks))
	}
	if len(weeks[0]) != 3 {
		t.Errorf("first bucket has %d days, want 3", len(weeks[0]))
	}
	if len(weeks[1]) != 7 {
		t.Errorf("second bucket has %d days, want 7", len(weeks[1]))
	}
	if !weeks[1][0].Date.Equal(NewDate(2024, time.October, 6)) {
		t.Errorf("second bucket starts on %s, want Sunday 2024-10-06", weeks[1][0].Date)
	}
	for _, w := range weeks {
		for i := 1; i < len(w); i++ {
			if !w[i-1].Date.Before(w[i].Date) {
				t.Errorf("week days not in ascending order: %s before %s", w[i-1].Date, w[i].Date)
			}
		}
	}
}

func TestWeeksUnsortedInput(t *testing.T) {
	s := &Snapshot{Days: []Day{
		{Date: NewDate(2024, time.October, 7), Count: 1},
		{Date: NewDate(2024, time.October, 5), Count: 1},
		{Date: NewDate(2024, time.October, 6), Count: 1},
	}}

	weeks := s.Weeks()
	if len(weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(weeks))
	}
	if len(weeks[0]) != 1 || len(weeks[1]) != 2 {
		t.Errorf("bucket sizes = %d,%d, want 1,2", len(weeks[0]), len(weeks[1]))
	}
}

func TestWeeksEmpty(t *testing.T) {
	s := &Snapshot{}
	if weeks := s.Weeks(); weeks != nil {
		t.Errorf("expected nil weeks for empty snapshot, got %v", weeks)
	}
}

func TestFresh(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	ttl := 30 * time.Minute

	fresh := &Snapshot{FetchedAt: now.Add(-29 * time.Minute)}
	if !fresh.Fresh(now, ttl) {
		t.Error("snapshot fetched 29m ago should be fresh")
	}

	stale := &Snapshot{FetchedAt: now.Add(-31 * time.Minute)}
	if stale.Fresh(now, ttl) {
		t.Error("snapshot fetched 31m ago should be stale")
	}
}

func TestMaxCount(t *testing.T) {
	s := &Snapshot{Days: []Day{
		{Date: NewDate(2025, time.January, 1), Count: 2},
		{Date: NewDate(2025, time.January, 2), Count: 9},
		{Date: NewDate(2025, time.January, 3), Count: 4},
	}}
	if got := s.MaxCount(); got != 9 {
		t.Errorf("max count = %d, want 9", got)
	}
	if got := (&Snapshot{}).MaxCount(); got != 0 {
		t.Errorf("max count of empty snapshot = %d, want 0", got)
	}
}

func TestDateOf(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("EST", -5*3600)
	local := time.Date(2025, time.February, 28, 23, 30, 0, 0, loc)

	got := DateOf(local)
	want := NewDate(2025, time.March, 1)
	if !got.Equal(want) {
		t.Errorf("DateOf(%s) = %s, want %s", local, got, want)
	}
}

func TestDayOn(t *testing.T) {
	s := &Snapshot{Days: []Day{{Date: NewDate(2025, time.April, 10), Count: 3}}}

	if d, ok := s.DayOn(time.Date(2025, time.April, 10, 18, 45, 0, 0, time.UTC)); !ok || d.Count != 3 {
		t.Errorf("DayOn should match by calendar date, got %v %v", d, ok)
	}
	if _, ok := s.DayOn(NewDate(2025, time.April, 11)); ok {
		t.Error("DayOn should miss for an unobserved date")
	}
}
