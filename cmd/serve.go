package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deployctx/deployctx/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the deployment knowledge index over HTTP",
	Long: `Starts an HTTP API over the ingested record catalog: category listings,
record retrieval, and keyword or semantic search.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	if port > 0 {
		cfg.Server.Port = port
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	vectors, err := openVectors(cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:            cfg.Server.Port,
		AllowAllOrigins: cfg.Server.AllowAllOrigins,
	}, catalog, vectors)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(os.Stderr, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
