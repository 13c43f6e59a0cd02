// Package cache keeps the most recent contribution snapshot per
// username with a time-to-live. The cache owns TTL policy and the key
// scheme; the bytes live in a store.Store collaborator.
package cache

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vanschouwen/streakline/internal/contrib"
	"github.com/vanschouwen/streakline/internal/store"
)

// DefaultTTL is how long a snapshot counts as fresh.
const DefaultTTL = 30 * time.Minute

const keyPrefix = "snapshot/"

// Cache holds at most one snapshot per username; the latest write wins.
type Cache struct {
	store store.Store
	ttl   time.Duration
}

func New(s store.Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: s, ttl: ttl}
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func key(username string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(username))
}

// Get returns the cached snapshot only while it is still fresh.
func (c *Cache) Get(username string, now time.Time) (*contrib.Snapshot, bool) {
	snap, ok := c.Last(username)
	if !ok || !snap.Fresh(now, c.ttl) {
		return nil, false
	}
	return snap, true
}

// Last returns the most recently stored snapshot regardless of age,
// for degraded display after a failed refresh. A value that fails to
// decode is a miss, never an error.
func (c *Cache) Last(username string) (*contrib.Snapshot, bool) {
	data, err := c.store.Get(key(username))
	if err != nil {
		return nil, false
	}
	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, false
	}
	return snap, true
}

// Put stores the snapshot, replacing any previous one for the user.
func (c *Cache) Put(snap *contrib.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot for %s: %w", snap.Username, err)
	}
	if err := c.store.Put(key(snap.Username), data); err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", snap.Username, err)
	}
	return nil
}

// Clear drops the cached snapshot for the user, if any.
func (c *Cache) Clear(username string) error {
	return c.store.Delete(key(username))
}

// Usernames lists every user with a stored snapshot.
func (c *Cache) Usernames() []string {
	keys, err := c.store.Keys()
	if err != nil {
		return nil
	}
	var users []string
	for _, k := range keys {
		if strings.HasPrefix(k, keyPrefix) {
			users = append(users, strings.TrimPrefix(k, keyPrefix))
		}
	}
	sort.Strings(users)
	return users
}
