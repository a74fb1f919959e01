package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincrew/fincrew/internal/crewconfig"
	"gopkg.in/yaml.v3"
)

func TestGenerateConfigYAML(t *testing.T) {
	out, err := GenerateConfigYAML(DefaultCrewSpec())
	require.NoError(t, err)

	// The scaffold must be valid YAML with the three required agents.
	var cfg crewconfig.CrewConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	require.Len(t, cfg.Agents, 3)

	dev := cfg.Agent(crewconfig.AgentSQLDev)
	require.NotNil(t, dev)
	assert.Equal(t, "Senior Database Developer", dev.Role)
	assert.Len(t, dev.Tools, 4)

	assert.NotNil(t, cfg.Agent(crewconfig.AgentDataAnalyst))
	assert.NotNil(t, cfg.Agent(crewconfig.AgentReportWriter))
}

func TestGenerateConfigYAMLCustomRoles(t *testing.T) {
	out, err := GenerateConfigYAML(&CrewSpec{
		SQLDevRole:  "SQLite Specialist",
		AnalystRole: "Quant",
		WriterRole:  "Editor",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "SQLite Specialist")
	assert.Contains(t, out, "Quant")
	assert.Contains(t, out, "Editor")
}
