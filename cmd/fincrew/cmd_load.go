package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newLoadCommand() *cobra.Command {
	var flags appFlags

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Import the CSV into the SQLite database",
		Long: `Import the CSV into the SQLite database.

The import is idempotent: when the table already exists the command is a
no-op, so it is safe to run on every startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openAndImport(cmd.Context(), flags, slog.Default())
			if err != nil {
				return err
			}
			defer s.Close() //nolint:errcheck

			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", flags.dbPath)
			fmt.Fprintln(cmd.OutOrStdout(), s.TableSchema(cmd.Context(), DefaultTableName))
			return nil
		},
	}

	addAppFlags(cmd, &flags)
	return cmd
}
