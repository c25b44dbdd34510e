package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/bawdo/gosequel/database"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	var source bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  `Show the effective configuration after merging defaults, config file, environment variables and flags.`,
		Example: `  gosequel config show
  gosequel config show --source`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if source {
				if rootOpts.ConfigPath != "" {
					_, _ = fmt.Fprintf(out, "Config file: %s\n\n", rootOpts.ConfigPath)
				} else {
					_, _ = fmt.Fprint(out, "Config file: (none, using defaults)\n\n")
				}
			}

			cfg := *rootOpts.Config
			cfg.Database.URL = database.SanitizeDSN(cfg.Database.URL)
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(out, string(data))
			return nil
		},
	}
	show.Flags().BoolVar(&source, "source", false, "show config file source")
	cmd.AddCommand(show)

	return cmd
}
