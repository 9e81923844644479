package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rajlabs/route-sitemap/internal/api"
	"github.com/rajlabs/route-sitemap/internal/generator"
	"github.com/rajlabs/route-sitemap/internal/utils"
	"github.com/spf13/cobra"
)

func (c *cli) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Generate the sitemaps in memory and serve them over HTTP",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	return cmd
}

func (c *cli) runServe(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := c.newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	result, err := generator.New(generator.OptionsFromConfig(cfg), store, logger).Build()
	if err != nil {
		return err
	}

	server := api.NewServer(cfg.Server.Port, result, store)

	errCh := make(chan error, 1)
	go func() {
		logger.LogInfo("Starting API server on port %d", cfg.Server.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(cmd.Context(), server, errCh, logger)
}

func waitForShutdown(ctx context.Context, server *api.Server, errCh <-chan error, logger *utils.RunLogger) error {
	// Handle system signals for shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.LogInfo("Shutting down...")

	// Graceful server shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError("Error shutting down server: %v", err)
		return err
	}
	logger.LogInfo("Server shut down gracefully")
	return nil
}
