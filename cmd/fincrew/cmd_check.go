package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fincrew/fincrew/internal/crew"
	"github.com/fincrew/fincrew/internal/crewconfig"
)

func newCheckCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the agent configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := crewconfig.Load(configPath, crew.ToolNames())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d agents)\n", configPath, len(cfg.Agents))
			for _, a := range cfg.Agents {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-15s %s (tools: %d)\n", a.Name, a.Role, len(a.Tools))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", DefaultConfigPath, "Path to the agent configuration file")
	return cmd
}
