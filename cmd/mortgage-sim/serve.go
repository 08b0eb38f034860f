package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iwvelando/mortgage-engine/internal/server"
	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		serverConfig string
		address      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfig)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}

			logger, err := initializeLogger(cfg.Logging, opts.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			srv := &http.Server{
				Addr:              cfg.Address,
				Handler:           server.NewHandler(logger, cfg, version),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting server",
					zap.String("op", "main.serve"),
					zap.String("address", cfg.Address),
					zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-cmd.Context().Done():
			}

			logger.Info("shutting down server", zap.String("op", "main.serve"))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "mortgage-sim %s\n", version)
			return err
		},
	}
}
