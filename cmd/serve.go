package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/brandstudio/promptdesk/internal/config"
	"github.com/brandstudio/promptdesk/internal/handlers"
	"github.com/brandstudio/promptdesk/internal/storage"
	"github.com/brandstudio/promptdesk/internal/workflow"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the normalization API",
		Long: `Starts the Promptdesk HTTP API on the specified port.

The API normalizes workflow replies into canonical prompt records and image
links, forwards generate/edit requests to the workflow backend, and serves the
reference catalog for a brand.`,
		Example: `  # Start server on default port 8888
  promptdesk serve

  # Start server on custom port
  promptdesk serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			source, err := newCatalogSource(cfg)
			if err != nil {
				return fmt.Errorf("catalog configuration: %w", err)
			}

			var backend workflow.Backend
			if b, err := newBackend(cfg); err != nil {
				slog.Warn("Workflow backend disabled", "err", err)
			} else {
				backend = b
			}

			handler := handlers.New(storage.New(source), backend)

			// Set up routes
			mux := http.NewServeMux()
			handler.Routes(mux)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Promptdesk API available", "addr", addr, "url", "http://localhost"+addr, "workflow_provider", cfg.WorkflowProvider)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
