// Package source obtains raw contribution data for a username. The
// primary source scrapes the public contributions page; an alternate
// source speaks the authenticated GraphQL API. Both produce the same
// payload shape.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanschouwen/streakline/internal/contrib"
)

// DefaultHost serves the public contribution pages.
const DefaultHost = "github.com"

var (
	// ErrUserNotFound maps HTTP 404 for the requested username.
	ErrUserNotFound = errors.New("user not found")
	// ErrRateLimited maps HTTP 429.
	ErrRateLimited = errors.New("rate limited")
)

// NetworkError wraps a transport-level failure, including timeouts.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Payload is the raw day series plus the reported total, before it is
// stamped into a snapshot.
type Payload struct {
	Days          []contrib.Day
	Total         int
	TotalExplicit bool
}

// Source fetches the contribution payload for one username.
type Source interface {
	Name() string
	Fetch(ctx context.Context, username string) (Payload, error)
}
