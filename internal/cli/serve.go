package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seuros/lpexplorer/internal/config"
	"github.com/seuros/lpexplorer/internal/loader"
	"github.com/seuros/lpexplorer/internal/logging"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LP Explorer API server",
	Long: `Start the LP Explorer API server.

The sheet is loaded once at startup; POST /api/reload fetches it again.
When the sheet cannot be fetched the server keeps running on demo data.

Environment variables:
  SHEET_URL        Published Google Sheet CSV URL
  BASE_URL         Prefix for landing page paths (default: https://firstday.com)
  PORT             Server port (default: 3000)
  FETCH_TIMEOUT    Sheet fetch timeout (default: 30s)
  ACCESS_PASSWORD  Require X-Access-Password on /api routes

Example:
  SHEET_URL="https://docs.google.com/.../pub?output=csv" lpexplorer serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), servePort)
	},
}

const shutdownTimeout = 10 * time.Second

// runServe loads the first snapshot and serves until interrupted.
func runServe(parent context.Context, port string) error {
	cfg, err := config.LoadWithOverrides("", port)
	if err != nil {
		return err
	}

	store := loader.NewStore(loader.New(cfg))

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap := store.Reload(ctx)
	logging.L().Info("initial snapshot ready",
		zap.String("source", string(snap.Source)),
		zap.Int("pages", len(snap.Pages)),
		zap.String("notice", snap.Notice),
	)

	app := newApp(cfg, store)

	errCh := make(chan error, 1)
	go func() {
		logging.L().Info("LP Explorer starting", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides config)")
}
