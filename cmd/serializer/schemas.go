package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-serializer/framework/config"
	"github.com/km-arc/go-serializer/framework/serializer"
)

func newSchemasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List the schemas in a directory and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = config.Load(envFiles(cmd)...).Schema.Dir
			}
			schemas, err := serializer.LoadDir(dir)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range schemas {
				fmt.Fprintf(tw, "%s\n", s.Name())
				for _, name := range s.Names() {
					f, _ := s.Field(name)
					req := ""
					if f.Required() {
						req = "required"
					}
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", name, f.Kind(), req)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("dir", "", "Schema directory (default SCHEMA_DIR)")
	return cmd
}
