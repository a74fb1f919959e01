// Package wizard scaffolds a starter config.yaml through an interactive
// form. Only the role lines are asked for; goals and backstories start
// from sensible defaults and are meant to be edited in the file.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// CrewSpec holds the fields collected during the interactive wizard.
type CrewSpec struct {
	SQLDevRole  string
	AnalystRole string
	WriterRole  string
}

// DefaultCrewSpec returns the roles used when the wizard cannot run
// interactively.
func DefaultCrewSpec() *CrewSpec {
	return &CrewSpec{
		SQLDevRole:  "Senior Database Developer",
		AnalystRole: "Senior Data Analyst",
		WriterRole:  "Senior Report Editor",
	}
}

const configTemplate = `agents:
  - name: sql_dev
    role: {{ .SQLDevRole }}
    goal: Construct and execute SQL queries that extract the data needed to answer a question
    backstory: >
      An experienced database engineer who writes efficient, correct SQL and
      always validates a query before running it.
    tools:
      - list_tables
      - tables_schema
      - check_sql
      - execute_sql

  - name: data_analyst
    role: {{ .AnalystRole }}
    goal: Analyze the data returned by the database developer and explain what it means
    backstory: >
      A meticulous analyst who turns raw query output into short, clear
      findings that a non-technical reader can follow.

  - name: report_writer
    role: {{ .WriterRole }}
    goal: Summarize the analysis as a markdown executive summary under 50 words
    backstory: >
      A concise editor who distills analysis into the few sentences that
      matter.
`

// RunCrewWizard runs an interactive huh form to collect crew roles.
func RunCrewWizard(in io.Reader, out io.Writer) (*CrewSpec, error) {
	spec := DefaultCrewSpec()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("SQL developer role").
				Description("Shown to the model as the extraction agent's identity").
				Value(&spec.SQLDevRole).
				Validate(requireNonEmpty),
			huh.NewInput().
				Title("Data analyst role").
				Value(&spec.AnalystRole).
				Validate(requireNonEmpty),
			huh.NewInput().
				Title("Report writer role").
				Value(&spec.WriterRole).
				Validate(requireNonEmpty),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	spec.SQLDevRole = strings.TrimSpace(spec.SQLDevRole)
	spec.AnalystRole = strings.TrimSpace(spec.AnalystRole)
	spec.WriterRole = strings.TrimSpace(spec.WriterRole)
	return spec, nil
}

// GenerateConfigYAML renders a config.yaml from the given spec.
func GenerateConfigYAML(spec *CrewSpec) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func requireNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a value is required")
	}
	return nil
}
