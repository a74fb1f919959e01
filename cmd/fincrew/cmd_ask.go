package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCommand() *cobra.Command {
	var flags appFlags

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Run the pipeline once and print the markdown report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))

			application, err := setupApp(cmd.Context(), flags, slog.Default())
			if err != nil {
				return err
			}
			defer application.Close()

			report, err := application.crew.Kickoff(cmd.Context(), question)
			if err != nil {
				return &RequestFailureError{Message: err.Error()}
			}

			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	addAppFlags(cmd, &flags)
	return cmd
}
