package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "serializer",
		Short: "Validate and coerce flat key/value input against declared schemas",
		Long: `serializer checks flat input (query strings, forms, JSON objects) against
schemas declared in YAML files, and either returns the typed values or the
first field that failed.`,
		SilenceUsage: true,
	}
	// Persistent flags (available to all commands)
	root.PersistentFlags().StringSlice("env-file", nil, "dotenv files to load (default .env)")

	root.AddCommand(newServeCmd(), newValidateCmd(), newSchemasCmd())
	return root
}

func envFiles(cmd *cobra.Command) []string {
	files, _ := cmd.Flags().GetStringSlice("env-file")
	return files
}
