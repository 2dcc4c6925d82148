// cmd/report-writer/serve.go
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"report-writer/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log, sync := opts.logger(cfg, "")
			defer sync()

			log.Info("Starting report writer...", map[string]interface{}{
				"version":     cfg.App.Version,
				"environment": cfg.App.Environment,
				"generator":   cfg.Generator.Mode,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, log)
			if err != nil {
				log.Error("startup failed", map[string]interface{}{"error": err})
				return err
			}
			defer a.Close(context.Background())

			if err := a.Run(ctx); err != nil {
				log.Error("server stopped with error", map[string]interface{}{"error": err})
				return err
			}
			log.Info("Report writer stopped gracefully", nil)
			return nil
		},
	}
}
