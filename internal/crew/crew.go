// Package crew assembles the three-agent pipeline that turns a question
// into a report: a SQL developer extracts data, an analyst interprets it,
// and a report writer summarizes the analysis as markdown. The stages run
// strictly in order, each consuming the previous stage's text.
package crew

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fincrew/fincrew/internal/crewconfig"
	"github.com/fincrew/fincrew/internal/execution"
	"github.com/fincrew/fincrew/internal/tools"
)

// ErrEmptyQuestion is returned when Kickoff is given a blank question.
var ErrEmptyQuestion = fmt.Errorf("crew: question must not be empty")

// Agent is a configured role bound to the tools it may use.
type Agent struct {
	Name      string
	Role      string
	Goal      string
	Backstory string
	Tools     []string
	Verbose   bool
}

// SystemPrompt renders the agent definition as the model's system prompt.
func (a *Agent) SystemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.\n", a.Role)
	fmt.Fprintf(&b, "Your goal: %s\n", a.Goal)
	fmt.Fprintf(&b, "Backstory: %s\n", strings.TrimSpace(a.Backstory))
	if len(a.Tools) > 0 {
		fmt.Fprintf(&b, "Use the provided tools to inspect the database and run queries. Always check a query before executing it.\n")
	}
	return b.String()
}

// Task is one pipeline stage.
type Task struct {
	Name string
	// Description is the stage instruction. A {query} placeholder is
	// replaced with the user's question; any prior stage output is
	// appended as context.
	Description    string
	ExpectedOutput string
	Agent          *Agent
}

// Crew runs the fixed extract → analyze → report pipeline.
type Crew struct {
	engine execution.Engine
	tasks  []Task
	logger *slog.Logger
}

// New builds the crew from a validated configuration. The required agents
// are guaranteed to exist; crewconfig rejects configurations without them.
func New(cfg *crewconfig.CrewConfig, engine execution.Engine, logger *slog.Logger) *Crew {
	if logger == nil {
		logger = slog.Default()
	}

	sqlDev := newAgent(cfg.Agent(crewconfig.AgentSQLDev))
	analyst := newAgent(cfg.Agent(crewconfig.AgentDataAnalyst))
	writer := newAgent(cfg.Agent(crewconfig.AgentReportWriter))

	tasks := []Task{
		{
			Name:           "extract_data",
			Description:    "Extract the data required to answer the question: {query}.",
			ExpectedOutput: "A list of data from the database that answers the question.",
			Agent:          sqlDev,
		},
		{
			Name:           "analyze_data",
			Description:    "Analyze the data provided and write a brief analysis for the question: {query}.",
			ExpectedOutput: "A short, easy-to-understand text analyzing the provided data.",
			Agent:          analyst,
		},
		{
			Name:           "write_report",
			Description:    "Write an executive summary of the report from the analysis. The report must be less than 50 words and presented in markdown.",
			ExpectedOutput: "A markdown report summarizing the analysis.",
			Agent:          writer,
		},
	}

	return &Crew{engine: engine, tasks: tasks, logger: logger}
}

func newAgent(cfg *crewconfig.AgentConfig) *Agent {
	return &Agent{
		Name:      cfg.Name,
		Role:      cfg.Role,
		Goal:      cfg.Goal,
		Backstory: cfg.Backstory,
		Tools:     cfg.Tools,
		Verbose:   cfg.IsVerbose(),
	}
}

// Kickoff runs the pipeline for one question and returns the final
// markdown report. The first stage failure aborts the run.
func (c *Crew) Kickoff(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	var priorOutput string
	for i, task := range c.tasks {
		c.logger.Info("starting task", "task", task.Name, "agent", task.Agent.Name)

		resp, err := c.engine.Execute(ctx, &execution.Request{
			SystemPrompt: task.Agent.SystemPrompt(),
			Message:      buildMessage(task, question, priorOutput),
			ToolNames:    task.Agent.Tools,
		})
		if err != nil {
			return "", fmt.Errorf("crew: task %s (stage %d/%d): %w", task.Name, i+1, len(c.tasks), err)
		}

		if task.Agent.Verbose {
			c.logger.Info("task finished", "task", task.Name,
				"tool_calls", len(resp.ToolCalls),
				"tokens", resp.Usage.TotalTokens,
				"duration_ms", resp.DurationMs)
		}
		priorOutput = resp.FinalOutput
	}

	return priorOutput, nil
}

// ToolNames returns the tools the pipeline can use, for configuration
// validation at startup.
func ToolNames() []string {
	return []string{tools.NameListTables, tools.NameTablesSchema, tools.NameExecuteSQL, tools.NameCheckSQL}
}

func buildMessage(task Task, question, priorOutput string) string {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(task.Description, "{query}", question))
	b.WriteString("\n\nExpected output: ")
	b.WriteString(task.ExpectedOutput)
	if priorOutput != "" {
		b.WriteString("\n\nContext from the previous stage:\n")
		b.WriteString(priorOutput)
	}
	return b.String()
}
