package store

import (
	"context"
	"fmt"
	"strings"
)

// The methods in this file back the agent-facing tools. They fold every
// failure into the returned string: the model reads the message, fixes its
// SQL and tries again, so a bad query must never abort the request.

// ListTables returns the names of all user tables, one per line.
func (s *Store) ListTables(ctx context.Context) string {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return fmt.Sprintf("Error listing tables: %v", err)
	}
	defer rows.Close() //nolint:errcheck

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Sprintf("Error listing tables: %v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Sprintf("Error listing tables: %v", err)
	}
	if len(names) == 0 {
		return "No tables found."
	}
	return strings.Join(names, "\n")
}

// TableSchema returns the CREATE statement and up to three sample rows for
// each of the comma-separated table names. A table that does not exist is
// reported inline rather than failing the whole call.
func (s *Store) TableSchema(ctx context.Context, tables string) string {
	var b strings.Builder
	for _, raw := range strings.Split(tables, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}

		var createStmt string
		err := s.db.QueryRowContext(ctx,
			`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&createStmt)
		if err != nil {
			fmt.Fprintf(&b, "Table %q does not exist. Use list_tables to see available tables.", name)
			continue
		}

		b.WriteString(createStmt)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "Sample rows from %s:\n", name)
		b.WriteString(s.runQuery(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 3", quoteIdent(name))))
	}
	if b.Len() == 0 {
		return "No table names were provided."
	}
	return b.String()
}

// Query runs a read-only SQL query and returns the results as delimited
// text (header line, then one line per row). Syntax and execution errors
// come back as descriptive text, never as a Go error.
func (s *Store) Query(ctx context.Context, query string) string {
	if !isReadQuery(query) {
		return "Error: only read queries (SELECT) are allowed. The database is read-only."
	}
	if !isSingleStatement(query) {
		return "Error: only a single SQL statement is allowed per query."
	}
	return s.runQuery(ctx, query)
}

// Check validates a query without running it: the statement must be a read
// query and must compile. Nothing is executed, so there is no effect to
// roll back.
func (s *Store) Check(ctx context.Context, query string) string {
	if strings.TrimSpace(query) == "" {
		return "Error: empty query."
	}
	if !isReadQuery(query) {
		return "Error: only read queries (SELECT) are allowed. The database is read-only."
	}
	if !isSingleStatement(query) {
		return "Error: only a single SQL statement is allowed per query."
	}

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Sprintf("Query is invalid: %v", err)
	}
	stmt.Close() //nolint:errcheck
	return "The query is valid and can be executed."
}

func (s *Store) runQuery(ctx context.Context, query string) string {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Sprintf("Error executing query: %v", err)
	}
	defer rows.Close() //nolint:errcheck

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Sprintf("Error reading result columns: %v", err)
	}

	var b strings.Builder
	b.WriteString(strings.Join(cols, " | "))
	b.WriteString("\n")

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	count := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Sprintf("Error scanning row: %v", err)
		}
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = formatValue(v)
		}
		b.WriteString(strings.Join(fields, " | "))
		b.WriteString("\n")
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Sprintf("Error iterating rows: %v", err)
	}
	if count == 0 {
		b.WriteString("(no rows)\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case float64:
		// Whole numbers read better without a trailing ".000000".
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// isSingleStatement reports whether the query contains at most one SQL
// statement. The driver executes trailing statements in a multi-statement
// string, so a write smuggled after a leading SELECT would bypass the
// keyword gate; anything past the first top-level semicolon other than
// whitespace and comments is rejected. Semicolons inside string literals,
// quoted identifiers and comments do not count.
func isSingleStatement(query string) bool {
	n := len(query)
	for i := 0; i < n; i++ {
		switch c := query[i]; {
		case c == '\'' || c == '"' || c == '`':
			// Quoted literal or identifier; a doubled quote is an escape.
			for i++; i < n; i++ {
				if query[i] == c {
					if i+1 < n && query[i+1] == c {
						i++
						continue
					}
					break
				}
			}
		case c == '[':
			for i++; i < n && query[i] != ']'; i++ {
			}
		case c == '-' && i+1 < n && query[i+1] == '-':
			for i += 2; i < n && query[i] != '\n'; i++ {
			}
		case c == '/' && i+1 < n && query[i+1] == '*':
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				return true
			}
			i += 2 + end + 1
		case c == ';':
			return tailIsBlank(query[i+1:])
		}
	}
	return true
}

// tailIsBlank reports whether s holds only whitespace and SQL comments,
// such as the tail after a trailing semicolon.
func tailIsBlank(s string) bool {
	for {
		s = strings.TrimSpace(s)
		switch {
		case s == "":
			return true
		case strings.HasPrefix(s, "--"):
			idx := strings.IndexByte(s, '\n')
			if idx < 0 {
				return true
			}
			s = s[idx+1:]
		case strings.HasPrefix(s, "/*"):
			idx := strings.Index(s, "*/")
			if idx < 0 {
				return true
			}
			s = s[idx+2:]
		default:
			return false
		}
	}
}

// isReadQuery reports whether the statement starts with SELECT or WITH.
// A keyword check alone is not enough against multi-statement strings;
// isSingleStatement closes that hole.
func isReadQuery(query string) bool {
	trimmed := strings.TrimSpace(query)
	// Strip leading SQL comments.
	for strings.HasPrefix(trimmed, "--") {
		idx := strings.IndexByte(trimmed, '\n')
		if idx < 0 {
			return false
		}
		trimmed = strings.TrimSpace(trimmed[idx+1:])
	}
	first := strings.ToUpper(firstWord(trimmed))
	return first == "SELECT" || first == "WITH"
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '(' {
			return s[:i]
		}
	}
	return s
}
