package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "Year,Company ,Revenue\n2023,AAPL,383285\n2022,AAPL,394328\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Year", "Company", "Revenue"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2023", "AAPL", "383285"}, table.Rows[0])
}

func TestLoadCSVNormalizesHeaders(t *testing.T) {
	path := writeCSV(t, "Market Cap(in B USD),Debt/Equity Ratio\n2913.3,1.76\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)

	for _, col := range table.Columns {
		assert.NotContains(t, col, " ")
		assert.NotContains(t, col, "(")
		assert.NotContains(t, col, ")")
		assert.NotContains(t, col, "/")
	}
	assert.Equal(t, []string{"Market_Capin_B_USD", "Debt_Equity_Ratio"}, table.Columns)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestLoadCSVRaggedRow(t *testing.T) {
	// encoding/csv reports inconsistent field counts itself.
	path := writeCSV(t, "a,b\n1,2,3\n")
	_, err := LoadCSV(path)
	require.Error(t, err)
}

func TestLoadCSVDuplicateColumnAfterNormalization(t *testing.T) {
	path := writeCSV(t, "Net Income,Net_Income\n1,2\n")
	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"  Revenue  ":          "Revenue",
		"Market Cap(in B USD)": "Market_Capin_B_USD",
		"Debt/Equity Ratio":    "Debt_Equity_Ratio",
		"EBITDA":               "EBITDA",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHeader(in), "input %q", in)
	}
}
