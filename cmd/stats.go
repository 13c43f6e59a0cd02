package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/vanschouwen/streakline/internal/config"
	"github.com/vanschouwen/streakline/internal/contrib"
)

var (
	statsForce bool
	statsJSON  bool
	statsToon  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [username]",
	Short: "Show streak statistics for a user",
	Long: `Fetch the user's contribution calendar and print total
contributions plus current and longest streaks.

Fresh cached snapshots are served without touching the network; use
--force to refetch. If a refresh fails and an older snapshot exists,
the stale numbers are shown with a warning instead of nothing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsForce, "force", false, "Refetch even when the cache is fresh")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

type statsView struct {
	Username           string    `json:"username"`
	TotalContributions int       `json:"total_contributions"`
	TotalIsEstimate    bool      `json:"total_is_estimate,omitempty"`
	CurrentStreak      int       `json:"current_streak"`
	LongestStreak      int       `json:"longest_streak"`
	FetchedAt          time.Time `json:"fetched_at"`
	Stale              bool      `json:"stale,omitempty"`
}

func newStatsView(snap *contrib.Snapshot, now time.Time) statsView {
	return statsView{
		Username:           snap.Username,
		TotalContributions: snap.TotalContributions,
		TotalIsEstimate:    !snap.TotalIsExplicit,
		CurrentStreak:      snap.CurrentStreak(now),
		LongestStreak:      snap.LongestStreak(),
		FetchedAt:          snap.FetchedAt,
		Stale:              !snap.Fresh(now, config.GetCacheTTL()),
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	username, err := resolveUsername(args)
	if err != nil {
		return err
	}

	f, err := newFetcher()
	if err != nil {
		return err
	}

	snap, err := f.Fetch(context.Background(), username, statsForce)
	if err := reportFetch(os.Stderr, snap, err); err != nil {
		return err
	}

	now := time.Now()
	view := newStatsView(snap, now)

	// Output JSON if requested
	if statsJSON {
		output, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	// Output Toon if requested
	if statsToon {
		output, err := gotoon.Encode(view)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("User:            %s\n", view.Username)
	if view.TotalIsEstimate {
		// summed counts may be estimates when the page format degraded
		fmt.Printf("Contributions:   ~%d\n", view.TotalContributions)
	} else {
		fmt.Printf("Contributions:   %d\n", view.TotalContributions)
	}
	fmt.Printf("Current streak:  %d days\n", view.CurrentStreak)
	fmt.Printf("Longest streak:  %d days\n", view.LongestStreak)

	age := snap.Age(now).Round(time.Second)
	if view.Stale {
		fmt.Printf("Fetched:         %s ago (stale)\n", age)
	} else {
		fmt.Printf("Fetched:         %s ago\n", age)
	}
	return nil
}
