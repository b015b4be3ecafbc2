package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nutri-dash/internal/config"
)

func newInitConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file",
		Long: `Write the default configuration to nutri-dash.yaml (or the --config path).
An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.ConfigFileName
			}
			if err := config.SaveDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}
