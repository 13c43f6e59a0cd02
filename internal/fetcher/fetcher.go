// Package fetcher orchestrates cache lookups, network fetches and
// parsing into contribution snapshots.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vanschouwen/streakline/internal/cache"
	"github.com/vanschouwen/streakline/internal/contrib"
	"github.com/vanschouwen/streakline/internal/parser"
	"github.com/vanschouwen/streakline/internal/source"
)

// ErrInvalidUsername rejects empty usernames before any lookup.
var ErrInvalidUsername = errors.New("username must not be empty")

// Error kinds surfaced by sources, re-exported so callers only need
// this package for errors.Is checks.
var (
	ErrUserNotFound = source.ErrUserNotFound
	ErrRateLimited  = source.ErrRateLimited
	ErrUnparseable  = parser.ErrUnparseable
)

// Fetcher is safe for concurrent use. Fetches for different usernames
// are independent; concurrent fetches for the same username are merely
// wasteful, the cache's last-write-wins semantics keep them safe.
type Fetcher struct {
	source source.Source
	cache  *cache.Cache
	now    func() time.Time
}

func New(src source.Source, c *cache.Cache) *Fetcher {
	return &Fetcher{source: src, cache: c, now: time.Now}
}

// Fetch returns the snapshot for the username, from cache when fresh
// and not forced, otherwise from the source. On failure, if any
// previous snapshot exists (fresh or stale) it is returned alongside
// the error so callers can show degraded data instead of nothing:
// check snap != nil even when err != nil.
func (f *Fetcher) Fetch(ctx context.Context, username string, forceRefresh bool) (*contrib.Snapshot, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}

	if !forceRefresh {
		if snap, ok := f.cache.Get(username, f.now()); ok {
			return snap, nil
		}
	}

	payload, err := f.source.Fetch(ctx, username)
	if err != nil {
		err = fmt.Errorf("fetch contributions for %s: %w", username, err)
		if last, ok := f.cache.Last(username); ok {
			return last, err
		}
		return nil, err
	}

	snap := &contrib.Snapshot{
		Username:           username,
		TotalContributions: payload.Total,
		TotalIsExplicit:    payload.TotalExplicit,
		Days:               payload.Days,
		FetchedAt:          f.now(),
	}

	// The cache is only touched after a fully completed fetch, so an
	// abandoned refresh can never corrupt stored state.
	if err := f.cache.Put(snap); err != nil {
		return snap, fmt.Errorf("cache snapshot for %s: %w", username, err)
	}
	return snap, nil
}

// LastKnown returns the most recently cached snapshot regardless of
// freshness, distinguishing "no data ever fetched" from "stale data
// available".
func (f *Fetcher) LastKnown(username string) (*contrib.Snapshot, bool) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false
	}
	return f.cache.Last(username)
}
