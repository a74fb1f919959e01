// Package dataset reads the source CSV file that seeds the financial
// database. Column names are normalized so they can be used verbatim as
// SQL identifiers.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table holds the parsed CSV contents with column order preserved.
type Table struct {
	// Columns are the normalized header names, in file order.
	Columns []string
	// Rows hold the raw string values, one slice per data row, aligned
	// with Columns.
	Rows [][]string
}

// LoadCSV reads a CSV file and returns its contents as a Table.
// The first row is treated as headers and normalized via NormalizeHeader.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := make([]string, len(records[0]))
	seen := make(map[string]bool, len(records[0]))
	for i, h := range records[0] {
		name := NormalizeHeader(h)
		if name == "" {
			return nil, fmt.Errorf("csv: column %d has an empty header", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("csv: duplicate column %q after normalization", name)
		}
		seen[name] = true
		headers[i] = name
	}

	rows := make([][]string, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		rows = append(rows, record)
	}

	return &Table{Columns: headers, Rows: rows}, nil
}

// NormalizeHeader converts a raw CSV header into a SQL-safe column name:
// surrounding whitespace is trimmed, spaces become underscores, parentheses
// are removed, and slashes become underscores.
func NormalizeHeader(h string) string {
	r := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"/", "_",
	)
	return r.Replace(strings.TrimSpace(h))
}
