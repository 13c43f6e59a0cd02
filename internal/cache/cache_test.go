package cache

import (
	"testing"
	"time"

	"github.com/vanschouwen/streakline/internal/contrib"
	"github.com/vanschouwen/streakline/internal/testutil"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(testutil.NewStore(t), DefaultTTL)
}

func sampleSnapshot(username string, fetchedAt time.Time) *contrib.Snapshot {
	return &contrib.Snapshot{
		Username:           username,
		TotalContributions: 42,
		TotalIsExplicit:    true,
		FetchedAt:          fetchedAt,
		Days: []contrib.Day{
			{Date: contrib.NewDate(2025, time.January, 1), Count: 3},
			{Date: contrib.NewDate(2025, time.January, 2), Count: 0},
			{Date: contrib.NewDate(2025, time.December, 31), Count: 7},
		},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	now := time.Now().UTC()

	if err := c.Put(sampleSnapshot("octocat", now)); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok := c.Get("octocat", now)
	if !ok {
		t.Fatal("expected a fresh cached snapshot")
	}
	if got.Username != "octocat" || got.TotalContributions != 42 || !got.TotalIsExplicit {
		t.Errorf("snapshot fields did not round-trip: %+v", got)
	}
	if len(got.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(got.Days))
	}

	// dates must round-trip exactly, midnight UTC
	want := contrib.NewDate(2025, time.December, 31)
	if !got.Days[2].Date.Equal(want) {
		t.Errorf("date round-trip drifted: %s != %s", got.Days[2].Date, want)
	}
	if got.Days[2].Date.Location() != time.UTC {
		t.Errorf("decoded date not UTC: %s", got.Days[2].Date)
	}
}

func TestCacheTTL(t *testing.T) {
	c := newTestCache(t)
	now := time.Now().UTC()

	if err := c.Put(sampleSnapshot("octocat", now.Add(-29*time.Minute))); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, ok := c.Get("octocat", now); !ok {
		t.Error("29 minute old snapshot should be served")
	}

	if err := c.Put(sampleSnapshot("octocat", now.Add(-31*time.Minute))); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, ok := c.Get("octocat", now); ok {
		t.Error("31 minute old snapshot should be stale")
	}

	// Last still serves stale data for degraded display.
	if _, ok := c.Last("octocat"); !ok {
		t.Error("Last should return the stale snapshot")
	}
}

func TestCacheDecodeFailureIsMiss(t *testing.T) {
	s := testutil.NewStore(t)
	c := New(s, DefaultTTL)

	if err := s.Put("snapshot/octocat", []byte("not json at all")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	if _, ok := c.Get("octocat", time.Now()); ok {
		t.Error("corrupt value must read as a miss")
	}
	if _, ok := c.Last("octocat"); ok {
		t.Error("corrupt value must read as a miss from Last too")
	}
}

func TestCacheUnknownFieldsTolerated(t *testing.T) {
	s := testutil.NewStore(t)
	c := New(s, DefaultTTL)

	record := `{"username":"octocat","total_contributions":5,"fetched_at":"2025-06-01T10:00:00Z",` +
		`"days":[{"date":"2025-06-01","count":5,"color":"#216e39"}],"schema_version":9}`
	if err := s.Put("snapshot/octocat", []byte(record)); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	snap, ok := c.Last("octocat")
	if !ok {
		t.Fatal("record with extra fields should still decode")
	}
	if snap.TotalContributions != 5 || len(snap.Days) != 1 {
		t.Errorf("unexpected decode result: %+v", snap)
	}
}

func TestCacheLatestWriteWins(t *testing.T) {
	c := newTestCache(t)
	now := time.Now().UTC()

	first := sampleSnapshot("octocat", now)
	first.TotalContributions = 1
	second := sampleSnapshot("octocat", now)
	second.TotalContributions = 2

	if err := c.Put(first); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := c.Put(second); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok := c.Get("octocat", now)
	if !ok || got.TotalContributions != 2 {
		t.Errorf("expected latest write to win, got %+v", got)
	}
}

func TestCacheClearAndUsernames(t *testing.T) {
	c := newTestCache(t)
	now := time.Now().UTC()

	for _, u := range []string{"alice", "bob"} {
		if err := c.Put(sampleSnapshot(u, now)); err != nil {
			t.Fatalf("put %s failed: %v", u, err)
		}
	}

	users := c.Usernames()
	if len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
		t.Fatalf("usernames = %v, want [alice bob]", users)
	}

	if err := c.Clear("alice"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok := c.Get("alice", now); ok {
		t.Error("cleared snapshot should be gone")
	}
	if _, ok := c.Get("bob", now); !ok {
		t.Error("other users should be untouched")
	}
}

func TestCacheKeyNormalization(t *testing.T) {
	c := newTestCache(t)
	now := time.Now().UTC()

	if err := c.Put(sampleSnapshot("OctoCat", now)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, ok := c.Get("  octocat ", now); !ok {
		t.Error("lookups should be case-insensitive and trimmed")
	}
}
