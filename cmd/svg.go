package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanschouwen/streakline/internal/render"
)

var (
	svgOut   string
	svgForce bool
)

var svgCmd = &cobra.Command{
	Use:   "svg [username]",
	Short: "Render the contribution calendar as an SVG card",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSvg,
}

func init() {
	rootCmd.AddCommand(svgCmd)

	svgCmd.Flags().StringVar(&svgOut, "out", "", "Output file (default <username>.svg)")
	svgCmd.Flags().BoolVar(&svgForce, "force", false, "Refetch even when the cache is fresh")
}

func runSvg(cmd *cobra.Command, args []string) error {
	username, err := resolveUsername(args)
	if err != nil {
		return err
	}

	f, err := newFetcher()
	if err != nil {
		return err
	}

	snap, err := f.Fetch(context.Background(), username, svgForce)
	if err := reportFetch(os.Stderr, snap, err); err != nil {
		return err
	}

	data, err := render.SVG(snap, time.Now())
	if err != nil {
		return err
	}

	out := svgOut
	if out == "" {
		out = snap.Username + ".svg"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("Wrote %s\n", out)
	return nil
}
