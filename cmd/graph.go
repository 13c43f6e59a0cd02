package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanschouwen/streakline/internal/contrib"
)

var (
	graphForce    bool
	graphAbsolute bool
)

var graphCmd = &cobra.Command{
	Use:   "graph [username]",
	Short: "Print the contribution calendar as a terminal grid",
	Long: `Print the familiar calendar grid, one column per week, one row per
weekday. Cell shading scales to the user's own activity range by
default; --absolute uses the fixed count thresholds instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().BoolVar(&graphForce, "force", false, "Refetch even when the cache is fresh")
	graphCmd.Flags().BoolVar(&graphAbsolute, "absolute", false, "Shade with fixed thresholds instead of relative intensity")
}

var levelRunes = map[contrib.Level]rune{
	contrib.LevelNone:     '·',
	contrib.LevelLow:      '░',
	contrib.LevelMedium:   '▒',
	contrib.LevelHigh:     '▓',
	contrib.LevelVeryHigh: '█',
}

func runGraph(cmd *cobra.Command, args []string) error {
	username, err := resolveUsername(args)
	if err != nil {
		return err
	}

	f, err := newFetcher()
	if err != nil {
		return err
	}

	snap, err := f.Fetch(context.Background(), username, graphForce)
	if err := reportFetch(os.Stderr, snap, err); err != nil {
		return err
	}

	fmt.Println(renderGrid(snap))
	fmt.Printf("%s: %d contributions, current streak %d, longest %d\n",
		snap.Username, snap.TotalContributions,
		snap.CurrentStreak(time.Now()), snap.LongestStreak())
	return nil
}

func renderGrid(snap *contrib.Snapshot) string {
	weeks := snap.Weeks()
	max := snap.MaxCount()

	var b strings.Builder
	labels := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for row := 0; row < 7; row++ {
		b.WriteString(labels[row])
		b.WriteByte(' ')
		for _, week := range weeks {
			r := ' '
			for _, day := range week {
				if int(day.Date.Weekday()) == row {
					r = cellRune(day.Count, max)
					break
				}
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func cellRune(count, max int) rune {
	if graphAbsolute {
		return levelRunes[contrib.AbsoluteLevel(count)]
	}
	return levelRunes[contrib.RelativeLevel(count, max)]
}
