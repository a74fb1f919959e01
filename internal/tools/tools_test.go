package tools

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincrew/fincrew/internal/dataset"
	"github.com/fincrew/fincrew/internal/store"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "finance.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() }) //nolint:errcheck

	err = s.ImportCSV(context.Background(), "finance", &dataset.Table{
		Columns: []string{"Year", "Company", "Revenue"},
		Rows: [][]string{
			{"2023", "AAPL", "383285"},
			{"2022", "AAPL", "394328"},
		},
	})
	require.NoError(t, err)

	return NewRegistry(s)
}

func TestRegistryNames(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, []string{NameCheckSQL, NameExecuteSQL, NameListTables, NameTablesSchema}, r.Names())
}

func TestRegistryDefinitions(t *testing.T) {
	r := newTestRegistry(t)

	defs := r.Definitions([]string{NameListTables, NameExecuteSQL})
	require.Len(t, defs, 2)
	assert.Equal(t, "function", defs[0].Type)
	assert.Equal(t, NameListTables, defs[0].Function.Name)
	assert.Equal(t, NameExecuteSQL, defs[1].Function.Name)

	// Unknown names are skipped, not fatal.
	assert.Empty(t, r.Definitions([]string{"nope"}))
}

func TestListTablesTool(t *testing.T) {
	r := newTestRegistry(t)
	out := r.Call(context.Background(), NameListTables, nil)
	assert.Equal(t, "finance", out)
}

func TestTablesSchemaTool(t *testing.T) {
	r := newTestRegistry(t)
	out := r.Call(context.Background(), NameTablesSchema, map[string]any{"tables": "finance"})
	assert.Contains(t, out, "CREATE TABLE")
	assert.Contains(t, out, "Revenue")
}

func TestTablesSchemaToolUnknownTable(t *testing.T) {
	r := newTestRegistry(t)
	out := r.Call(context.Background(), NameTablesSchema, map[string]any{"tables": "ghost"})
	assert.Contains(t, out, "does not exist")
}

func TestExecuteSQLTool(t *testing.T) {
	r := newTestRegistry(t)
	out := r.Call(context.Background(), NameExecuteSQL,
		map[string]any{"sql_query": "SELECT SUM(Revenue) FROM finance"})
	assert.Contains(t, out, "777613")
}

func TestExecuteSQLToolInvalidQuery(t *testing.T) {
	r := newTestRegistry(t)
	out := r.Call(context.Background(), NameExecuteSQL,
		map[string]any{"sql_query": "SELEC broken"})
	assert.Contains(t, out, "Error")
}

func TestExecuteSQLToolBadArguments(t *testing.T) {
	r := newTestRegistry(t)
	out := r.Call(context.Background(), NameExecuteSQL,
		map[string]any{"sql_query": map[string]any{"not": "a string"}})
	assert.Contains(t, out, "invalid arguments")
}

func TestCheckSQLTool(t *testing.T) {
	r := newTestRegistry(t)

	ok := r.Call(context.Background(), NameCheckSQL,
		map[string]any{"sql_query": "SELECT Revenue FROM finance"})
	assert.Contains(t, ok, "valid")

	bad := r.Call(context.Background(), NameCheckSQL,
		map[string]any{"sql_query": "DELETE FROM finance"})
	assert.Contains(t, bad, "read queries")
}

func TestRegistryUnknownTool(t *testing.T) {
	r := newTestRegistry(t)
	out := r.Call(context.Background(), "drop_database", nil)
	assert.Contains(t, out, `unknown tool "drop_database"`)
}
