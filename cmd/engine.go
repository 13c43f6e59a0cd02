package cmd

import (
	"fmt"
	"io"

	"github.com/vanschouwen/streakline/internal/cache"
	"github.com/vanschouwen/streakline/internal/config"
	"github.com/vanschouwen/streakline/internal/contrib"
	"github.com/vanschouwen/streakline/internal/fetcher"
	"github.com/vanschouwen/streakline/internal/source"
	"github.com/vanschouwen/streakline/internal/store"
)

// newCache builds the snapshot cache backed by the configured directory.
func newCache() (*cache.Cache, error) {
	fs, err := store.NewFileStore(config.GetCacheDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return cache.New(fs, config.GetCacheTTL()), nil
}

// newFetcher wires the orchestrator with the configured source: the
// GraphQL API when a token is set, the public page scraper otherwise.
func newFetcher() (*fetcher.Fetcher, error) {
	c, err := newCache()
	if err != nil {
		return nil, err
	}

	var src source.Source
	if token := config.GetToken(); token != "" {
		src = source.NewGraphQL("", token, config.GetNetworkTimeout())
	} else {
		src = source.NewHTML(config.GetHost(), config.GetNetworkTimeout())
	}
	return fetcher.New(src, c), nil
}

// reportFetch applies the degraded-display contract for one-shot
// commands: a failure with no data at all is fatal, a failure with a
// previous snapshot available only warns so the caller can still show
// the last-known numbers.
func reportFetch(w io.Writer, snap *contrib.Snapshot, err error) error {
	if snap == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(w, "warning: refresh failed, showing last-known data: %v\n", err)
	}
	return nil
}

// resolveUsername picks the positional argument over the configured
// default.
func resolveUsername(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if u := config.GetUsername(); u != "" {
		return u, nil
	}
	return "", fmt.Errorf("username is required (provide as argument or set username in config)")
}
