// Package crewconfig loads and validates the YAML file that defines the
// crew's agents. Validation happens once at startup: a configuration with
// any violation refuses to load, so no HTTP route ever becomes reachable
// with a partially valid crew.
package crewconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Agent names the pipeline stages bind to. Each must be present in the
// configuration file.
const (
	AgentSQLDev       = "sql_dev"
	AgentDataAnalyst  = "data_analyst"
	AgentReportWriter = "report_writer"
)

// AgentConfig describes one agent: who it is, what it is trying to do, and
// which tools it may call.
type AgentConfig struct {
	Name            string   `yaml:"name"`
	Role            string   `yaml:"role"`
	Goal            string   `yaml:"goal"`
	Backstory       string   `yaml:"backstory"`
	Tools           []string `yaml:"tools,omitempty"`
	AllowDelegation bool     `yaml:"allow_delegation,omitempty"`
	Verbose         *bool    `yaml:"verbose,omitempty"`
}

// IsVerbose returns the verbosity flag, defaulting to true when unset.
func (a *AgentConfig) IsVerbose() bool {
	if a.Verbose == nil {
		return true
	}
	return *a.Verbose
}

// CrewConfig is the top-level configuration: the full agent roster.
type CrewConfig struct {
	Agents []AgentConfig `yaml:"agents"`
}

// Agent returns the agent with the given name, or nil.
func (c *CrewConfig) Agent(name string) *AgentConfig {
	for i := range c.Agents {
		if c.Agents[i].Name == name {
			return &c.Agents[i]
		}
	}
	return nil
}

// ValidationError aggregates every violation found in a configuration
// file, not just the first one.
type ValidationError struct {
	Path       string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration %s:\n  - %s",
		e.Path, strings.Join(e.Violations, "\n  - "))
}

// Load reads, schema-validates and decodes the crew configuration. The
// knownTools list is used to reject agents that reference tools that do
// not exist.
func Load(path string, knownTools []string) (*CrewConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("crewconfig: reading %s: %w", path, err)
	}

	if violations := validateBytes(data); len(violations) > 0 {
		return nil, &ValidationError{Path: path, Violations: violations}
	}

	var cfg CrewConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("crewconfig: parsing %s: %w", path, err)
	}

	if violations := checkRoster(&cfg, knownTools); len(violations) > 0 {
		return nil, &ValidationError{Path: path, Violations: violations}
	}

	return &cfg, nil
}

// checkRoster enforces the rules the JSON schema cannot express: required
// agent names, unique names, and known tool references.
func checkRoster(cfg *CrewConfig, knownTools []string) []string {
	var violations []string

	known := make(map[string]bool, len(knownTools))
	for _, t := range knownTools {
		known[t] = true
	}

	seen := make(map[string]bool, len(cfg.Agents))
	for _, a := range cfg.Agents {
		if seen[a.Name] {
			violations = append(violations, fmt.Sprintf("duplicate agent name %q", a.Name))
		}
		seen[a.Name] = true

		for _, tool := range a.Tools {
			if !known[tool] {
				violations = append(violations,
					fmt.Sprintf("agent %q references unknown tool %q", a.Name, tool))
			}
		}
	}

	for _, required := range []string{AgentSQLDev, AgentDataAnalyst, AgentReportWriter} {
		if !seen[required] {
			violations = append(violations, fmt.Sprintf("missing required agent %q", required))
		}
	}

	return violations
}
