package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-serializer/framework/app"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve every schema in SCHEMA_DIR over HTTP",
		Long: `Starts the validation server. Each schema file in SCHEMA_DIR is exposed at
GET|POST /validate/{name}; prometheus metrics are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.Bootstrap(envFiles(cmd)...)
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger.Sync() }()

			if port, _ := cmd.Flags().GetString("port"); port != "" {
				a.Config.App.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides APP_PORT)")
	return cmd
}
