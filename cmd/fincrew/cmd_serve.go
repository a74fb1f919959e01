package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fincrew/fincrew/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var flags appFlags
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web front end",
		Long: `Start the web front end.

GET / shows the question form; POST / runs the pipeline and renders the
markdown report. The CSV is imported into the SQLite database on startup
(skipped when the table already exists).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := slog.Default()

			application, err := setupApp(ctx, flags, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			srv, err := webserver.New(webserver.Config{
				Addr:   addr,
				Crew:   application.crew,
				Logger: logger,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}

	addAppFlags(cmd, &flags)
	cmd.Flags().StringVar(&addr, "addr", DefaultAddr, "Address to listen on")

	return cmd
}
