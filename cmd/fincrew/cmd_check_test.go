package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `agents:
  - name: sql_dev
    role: Senior Database Developer
    goal: Construct and execute SQL queries
    backstory: An experienced database engineer.
    tools: [list_tables, tables_schema, check_sql, execute_sql]
  - name: data_analyst
    role: Senior Data Analyst
    goal: Analyze data
    backstory: A meticulous analyst.
  - name: report_writer
    role: Senior Report Editor
    goal: Write summaries
    backstory: A concise writer.
`

func TestCheckCommandValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))

	cmd := newCheckCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "is valid (3 agents)")
	assert.Contains(t, out.String(), "sql_dev")
}

func TestCheckCommandInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agents:\n  - name: sql_dev\n"), 0o644))

	cmd := newCheckCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--config", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestInitCommandWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cmd := newInitCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "--defaults"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sql_dev")

	// The generated file passes its own validation.
	check := newCheckCommand()
	check.SetOut(new(bytes.Buffer))
	check.SetArgs([]string{"--config", path})
	require.NoError(t, check.Execute())
}

func TestInitCommandRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agents: []\n"), 0o644))

	cmd := newInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--config", path, "--defaults"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoadCommand(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath,
		[]byte("Year,Company,Revenue\n2023,AAPL,383285\n"), 0o644))

	cmd := newLoadCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--data", csvPath, "--db", filepath.Join(dir, "finance.db")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Database ready")
	assert.Contains(t, out.String(), "CREATE TABLE")
}

func TestLoadCommandMissingCSV(t *testing.T) {
	dir := t.TempDir()

	cmd := newLoadCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--data", filepath.Join(dir, "nope.csv"), "--db", filepath.Join(dir, "finance.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "financial data")
}
