// Package store owns the local SQLite database that holds the imported
// financial data. The Store has two audiences: startup code, which imports
// the CSV and gets real errors back, and the agent tools, which always get
// a string — failures included — so the model can read them and retry.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fincrew/fincrew/internal/dataset"
)

// Store wraps the shared SQLite handle. It is opened once at startup and
// read-only for the rest of the process lifetime, so it is safe to share
// across concurrent requests without extra locking.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// HasTable reports whether the named table exists.
func (s *Store) HasTable(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("store: checking table %s: %w", name, err)
	}
	return n > 0, nil
}

// ImportCSV creates the named table from the dataset and inserts every row
// in a single transaction. If the table already exists the import is
// skipped, which makes repeated startups a no-op.
func (s *Store) ImportCSV(ctx context.Context, table string, data *dataset.Table) error {
	exists, err := s.HasTable(ctx, table)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Info("table already present, skipping import", "table", table)
		return nil
	}

	types := inferColumnTypes(data)

	cols := make([]string, len(data.Columns))
	for i, c := range data.Columns {
		cols[i] = fmt.Sprintf("%s %s", quoteIdent(c), types[i])
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(cols, ", "))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("store: create table %s: %w", table, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(data.Columns)), ",")
	insertStmt := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(table), placeholders)
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck

	for i, row := range data.Rows {
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = typedValue(v, types[j])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("store: insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit import: %w", err)
	}

	s.logger.Info("imported CSV data", "table", table, "rows", len(data.Rows), "columns", len(data.Columns))
	return nil
}

// inferColumnTypes picks REAL for columns whose every non-empty value
// parses as a number, TEXT otherwise.
func inferColumnTypes(data *dataset.Table) []string {
	types := make([]string, len(data.Columns))
	for i := range data.Columns {
		numeric := false
		for _, row := range data.Rows {
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err != nil {
				numeric = false
				break
			}
			numeric = true
		}
		if numeric {
			types[i] = "REAL"
		} else {
			types[i] = "TEXT"
		}
	}
	return types
}

func typedValue(v, sqlType string) any {
	if sqlType != "REAL" {
		return v
	}
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return v
	}
	return f
}

// quoteIdent wraps an identifier in double quotes, escaping embedded ones.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
