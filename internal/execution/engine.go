// Package execution runs a single agent turn against the language model,
// including the tool-calling loop. The loop is explicit and bounded: the
// engine owns dispatch and retry limits instead of trusting a framework
// to behave.
package execution

import (
	"context"
	"strings"

	"github.com/fincrew/fincrew/internal/llm"
)

// Engine executes one agent prompt and returns its final text output.
type Engine interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Request describes a single agent turn.
type Request struct {
	// SystemPrompt sets the agent's role, goal and backstory.
	SystemPrompt string
	// Message is the user-visible instruction for this turn.
	Message string
	// ToolNames restricts which registered tools the model may call.
	// Empty means no tools are offered and the turn is a single round.
	ToolNames []string
	// Model overrides the engine's default model when non-empty.
	Model string
}

// ToolCallRecord traces one tool invocation made during a turn.
type ToolCallRecord struct {
	Name      string
	Arguments string
	Result    string
}

// Response is the outcome of one agent turn.
type Response struct {
	FinalOutput string
	ToolCalls   []ToolCallRecord
	ModelID     string
	DurationMs  int64
	Usage       llm.Usage
}

// ContainsText checks if the output contains text (case-insensitive).
func (r *Response) ContainsText(text string) bool {
	return contains(r.FinalOutput, text)
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
