// Package tools exposes the database operations the agents are allowed to
// call. Tools take a decoded argument map and always return a string: any
// failure is described in the result so the model can correct itself, and
// no tool call can crash a request.
package tools

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/fincrew/fincrew/internal/store"
)

// Tool names. These are the only operations that can reach the store
// during a request.
const (
	NameListTables   = "list_tables"
	NameTablesSchema = "tables_schema"
	NameExecuteSQL   = "execute_sql"
	NameCheckSQL     = "check_sql"
)

// Tool is a named operation callable by an agent.
type Tool interface {
	// Name is the identifier the model uses to invoke the tool.
	Name() string
	// Description tells the model what the tool does.
	Description() string
	// Parameters is the JSON Schema for the tool's arguments.
	Parameters() map[string]any
	// Call executes the tool. Errors are folded into the returned string.
	Call(ctx context.Context, args map[string]any) string
}

// listTablesTool lists the tables in the store.
type listTablesTool struct{ store *store.Store }

func (t *listTablesTool) Name() string { return NameListTables }

func (t *listTablesTool) Description() string {
	return "List the available tables in the database."
}

func (t *listTablesTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t *listTablesTool) Call(ctx context.Context, _ map[string]any) string {
	return t.store.ListTables(ctx)
}

// tablesSchemaTool describes table schemas with sample rows.
type tablesSchemaTool struct{ store *store.Store }

type tablesSchemaArgs struct {
	Tables string `mapstructure:"tables"`
}

func (t *tablesSchemaTool) Name() string { return NameTablesSchema }

func (t *tablesSchemaTool) Description() string {
	return "Input is a comma-separated list of tables, output is the schema and sample rows for those tables."
}

func (t *tablesSchemaTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tables": map[string]any{
				"type":        "string",
				"description": "Comma-separated table names",
			},
		},
		"required": []string{"tables"},
	}
}

func (t *tablesSchemaTool) Call(ctx context.Context, args map[string]any) string {
	var decoded tablesSchemaArgs
	if err := mapstructure.Decode(args, &decoded); err != nil {
		return fmt.Sprintf("Error: invalid arguments for %s: %v", t.Name(), err)
	}
	return t.store.TableSchema(ctx, decoded.Tables)
}

// executeSQLTool runs a read query.
type executeSQLTool struct{ store *store.Store }

type sqlQueryArgs struct {
	SQLQuery string `mapstructure:"sql_query"`
}

func (t *executeSQLTool) Name() string { return NameExecuteSQL }

func (t *executeSQLTool) Description() string {
	return "Execute a SQL query against the database. Returns the result."
}

func (t *executeSQLTool) Parameters() map[string]any {
	return sqlQueryParameters()
}

func (t *executeSQLTool) Call(ctx context.Context, args map[string]any) string {
	var decoded sqlQueryArgs
	if err := mapstructure.Decode(args, &decoded); err != nil {
		return fmt.Sprintf("Error: invalid arguments for %s: %v", t.Name(), err)
	}
	return t.store.Query(ctx, decoded.SQLQuery)
}

// checkSQLTool validates a query without executing it.
type checkSQLTool struct{ store *store.Store }

func (t *checkSQLTool) Name() string { return NameCheckSQL }

func (t *checkSQLTool) Description() string {
	return "Use this tool to double check if your query is correct before executing it."
}

func (t *checkSQLTool) Parameters() map[string]any {
	return sqlQueryParameters()
}

func (t *checkSQLTool) Call(ctx context.Context, args map[string]any) string {
	var decoded sqlQueryArgs
	if err := mapstructure.Decode(args, &decoded); err != nil {
		return fmt.Sprintf("Error: invalid arguments for %s: %v", t.Name(), err)
	}
	return t.store.Check(ctx, decoded.SQLQuery)
}

func sqlQueryParameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sql_query": map[string]any{
				"type":        "string",
				"description": "The SQL query to run",
			},
		},
		"required": []string{"sql_query"},
	}
}
