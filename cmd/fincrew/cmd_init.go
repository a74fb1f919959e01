package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fincrew/fincrew/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var configPath string
	var useDefaults bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter agent configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			}

			spec := wizard.DefaultCrewSpec()
			if !useDefaults {
				var err error
				spec, err = wizard.RunCrewWizard(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			content, err := wizard.GenerateConfigYAML(spec)
			if err != nil {
				return err
			}
			if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", configPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", DefaultConfigPath, "Path of the configuration file to create")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Skip the wizard and write the default roles")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}
