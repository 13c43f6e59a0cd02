package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanschouwen/streakline/internal/config"
	"github.com/vanschouwen/streakline/internal/logging"
)

var watchVerbose bool

var watchCmd = &cobra.Command{
	Use:   "watch [username]",
	Short: "Periodically refresh a user's snapshot in the background",
	Long: `Refresh the user's snapshot on a fixed interval (default every 30
minutes) so that other commands always find warm data. An interrupted
refresh leaves the cache untouched; the previous snapshot stays valid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchVerbose, "verbose", false, "Enable debug logging")
}

func runWatch(cmd *cobra.Command, args []string) error {
	username, err := resolveUsername(args)
	if err != nil {
		return err
	}

	logger := logging.New(watchVerbose)

	f, err := newFetcher()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := config.GetRefreshInterval()
	logger.Info("watching", "username", username, "interval", interval)

	refresh := func() {
		snap, err := f.Fetch(ctx, username, true)
		if err != nil {
			if snap != nil {
				logger.Warn("refresh failed, stale snapshot still available", "username", username, "error", err)
			} else {
				logger.Error("refresh failed", "username", username, "error", err)
			}
			return
		}
		logger.Info("refreshed",
			"username", snap.Username,
			"total", snap.TotalContributions,
			"current_streak", snap.CurrentStreak(time.Now()),
			"longest_streak", snap.LongestStreak())
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			refresh()
		case <-ctx.Done():
			logger.Info("stopping")
			return nil
		}
	}
}
