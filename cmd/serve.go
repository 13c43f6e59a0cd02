package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"

	"github.com/vanschouwen/streakline/internal/config"
	"github.com/vanschouwen/streakline/internal/logging"
	"github.com/vanschouwen/streakline/internal/server"
)

var serveVerbose bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve contribution data over HTTP",
	Long: `Expose snapshots and streak statistics as a small JSON API:

  GET /api/v1/users/{username}/contributions
  GET /api/v1/users/{username}/streaks
  GET /healthz

Responses come from the snapshot cache; add ?force=1 to refetch.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Enable debug logging")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.New(serveVerbose)

	f, err := newFetcher()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    config.GetServeAddr(),
		Handler: handlers.CombinedLoggingHandler(os.Stdout, server.New(f, logger).Router()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
