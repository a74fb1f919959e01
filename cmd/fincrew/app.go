package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fincrew/fincrew/internal/crew"
	"github.com/fincrew/fincrew/internal/crewconfig"
	"github.com/fincrew/fincrew/internal/dataset"
	"github.com/fincrew/fincrew/internal/execution"
	"github.com/fincrew/fincrew/internal/llm"
	"github.com/fincrew/fincrew/internal/store"
	"github.com/fincrew/fincrew/internal/tools"
)

// Defaults shared by the subcommand flags.
const (
	DefaultConfigPath = "config.yaml"
	DefaultCSVPath    = "Financial Statements.csv"
	DefaultDBPath     = "finance.db"
	DefaultTableName  = "finance"
	DefaultAddr       = "127.0.0.1:8000"

	// APIKeyEnvVar holds the language-model provider credential.
	APIKeyEnvVar = "GROQ_API_KEY"
)

// appFlags are the common flags for commands that run the pipeline.
type appFlags struct {
	configPath string
	csvPath    string
	dbPath     string
	model      string
}

// app is the process-wide state assembled once at startup and passed
// explicitly into the handlers: the shared store, the validated agent
// roster and the crew built from them.
type app struct {
	store *store.Store
	cfg   *crewconfig.CrewConfig
	crew  *crew.Crew
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close() //nolint:errcheck
	}
}

// setupApp performs the one-time startup sequence: .env, credential,
// config validation, CSV import, and crew assembly. Any failure here is
// startup-fatal.
func setupApp(ctx context.Context, flags appFlags, logger *slog.Logger) (*app, error) {
	// A missing .env file is fine; the variable may come from the
	// environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	apiKey := os.Getenv(APIKeyEnvVar)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable not set; add it to the environment or a .env file", APIKeyEnvVar)
	}

	cfg, err := crewconfig.Load(flags.configPath, crew.ToolNames())
	if err != nil {
		return nil, err
	}

	s, err := openAndImport(ctx, flags, logger)
	if err != nil {
		return nil, err
	}

	registry := tools.NewRegistry(s)
	engine := execution.NewChatEngine(llm.NewClient(apiKey), registry, flags.model, logger)

	return &app{
		store: s,
		cfg:   cfg,
		crew:  crew.New(cfg, engine, logger),
	}, nil
}

// openAndImport opens the database and runs the idempotent CSV import.
func openAndImport(ctx context.Context, flags appFlags, logger *slog.Logger) (*store.Store, error) {
	data, err := dataset.LoadCSV(flags.csvPath)
	if err != nil {
		return nil, fmt.Errorf("loading financial data: %w", err)
	}

	s, err := store.Open(flags.dbPath, logger)
	if err != nil {
		return nil, err
	}

	if err := s.ImportCSV(ctx, DefaultTableName, data); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

func addAppFlags(cmd *cobra.Command, flags *appFlags) {
	cmd.Flags().StringVar(&flags.configPath, "config", DefaultConfigPath, "Path to the agent configuration file")
	cmd.Flags().StringVar(&flags.csvPath, "data", DefaultCSVPath, "Path to the source CSV file")
	cmd.Flags().StringVar(&flags.dbPath, "db", DefaultDBPath, "Path to the SQLite database file")
	cmd.Flags().StringVar(&flags.model, "model", "", "Model ID to use (defaults to "+llm.DefaultModel+")")
}
