package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanschouwen/streakline/internal/config"
)

var cacheClearAll bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear cached snapshots",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached snapshots",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [username]",
	Short: "Drop the cached snapshot for a user (or all with --all)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().BoolVar(&cacheClearAll, "all", false, "Clear every cached snapshot")
}

func runCacheList(cmd *cobra.Command, args []string) error {
	c, err := newCache()
	if err != nil {
		return err
	}

	users := c.Usernames()
	if len(users) == 0 {
		fmt.Println("cache is empty")
		return nil
	}

	now := time.Now()
	ttl := config.GetCacheTTL()
	for _, u := range users {
		snap, ok := c.Last(u)
		if !ok {
			continue
		}
		state := "fresh"
		if !snap.Fresh(now, ttl) {
			state = "stale"
		}
		fmt.Printf("%-20s %d contributions, fetched %s ago (%s)\n",
			u, snap.TotalContributions, snap.Age(now).Round(time.Second), state)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := newCache()
	if err != nil {
		return err
	}

	if cacheClearAll {
		for _, u := range c.Usernames() {
			if err := c.Clear(u); err != nil {
				return err
			}
		}
		fmt.Println("cleared all cached snapshots")
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a username or --all")
	}
	if err := c.Clear(args[0]); err != nil {
		return err
	}
	fmt.Printf("cleared cached snapshot for %s\n", args[0])
	return nil
}
