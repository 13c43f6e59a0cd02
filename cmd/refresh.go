package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [username]",
	Short: "Force a fresh fetch, bypassing the cache",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	username, err := resolveUsername(args)
	if err != nil {
		return err
	}

	f, err := newFetcher()
	if err != nil {
		return err
	}

	snap, err := f.Fetch(context.Background(), username, true)
	if err := reportFetch(os.Stderr, snap, err); err != nil {
		return err
	}

	fmt.Printf("%s: %d contributions across %d days\n",
		snap.Username, snap.TotalContributions, len(snap.Days))
	return nil
}
