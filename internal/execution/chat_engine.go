package execution

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fincrew/fincrew/internal/llm"
	"github.com/fincrew/fincrew/internal/tools"
)

const (
	// maxToolRounds caps how many times the model may come back with tool
	// calls in a single turn before the request fails.
	maxToolRounds = 10
	// maxMalformedArgs is how many non-JSON tool-call argument payloads
	// get handed back to the model as parse errors; the next one fails
	// the turn.
	maxMalformedArgs = 3
)

// ChatEngine drives an OpenAI-compatible chat model through a bounded
// tool-calling loop. Tool results, including errors folded into strings,
// are appended to the conversation so the model can correct its SQL.
type ChatEngine struct {
	client   llm.ChatClient
	registry *tools.Registry
	modelID  string
	logger   *slog.Logger
}

// NewChatEngine creates a ChatEngine. modelID is used when the request
// does not name its own model.
func NewChatEngine(client llm.ChatClient, registry *tools.Registry, modelID string, logger *slog.Logger) *ChatEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if modelID == "" {
		modelID = llm.DefaultModel
	}
	return &ChatEngine{client: client, registry: registry, modelID: modelID, logger: logger}
}

// Execute runs one agent turn to completion.
func (e *ChatEngine) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("execution: nil request")
	}

	modelID := e.modelID
	if req.Model != "" {
		modelID = req.Model
	}

	messages := []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: req.SystemPrompt},
		{Role: llm.RoleUser, Content: req.Message},
	}
	toolDefs := e.registry.Definitions(req.ToolNames)

	start := time.Now()
	resp := &Response{ModelID: modelID}
	malformed := 0

	for round := 0; round < maxToolRounds; round++ {
		completion, err := e.client.CreateChatCompletion(ctx, llm.ChatCompletionRequest{
			Model:    modelID,
			Messages: messages,
			Tools:    toolDefs,
		})
		if err != nil {
			return nil, fmt.Errorf("execution: chat completion: %w", err)
		}

		if completion.Usage != nil {
			resp.Usage.PromptTokens += completion.Usage.PromptTokens
			resp.Usage.CompletionTokens += completion.Usage.CompletionTokens
			resp.Usage.TotalTokens += completion.Usage.TotalTokens
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			resp.FinalOutput = msg.Content
			resp.DurationMs = time.Since(start).Milliseconds()
			return resp, nil
		}

		messages = append(messages, msg)

		for _, tc := range msg.ToolCalls {
			result, ok := e.invokeTool(ctx, tc)
			if !ok {
				malformed++
				if malformed > maxMalformedArgs {
					return nil, fmt.Errorf("execution: model produced malformed tool arguments %d times, giving up", malformed)
				}
			}

			resp.ToolCalls = append(resp.ToolCalls, ToolCallRecord{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
				Result:    result,
			})

			messages = append(messages, llm.ChatMessage{
				Role:       llm.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Function.Name,
				Content:    result,
			})
		}
	}

	return nil, fmt.Errorf("execution: tool loop did not settle within %d rounds", maxToolRounds)
}

// invokeTool parses the call's arguments and dispatches it. The second
// return value is false when the arguments were not valid JSON; the parse
// error is still returned as the tool result so the model sees it.
func (e *ChatEngine) invokeTool(ctx context.Context, tc llm.ToolCall) (string, bool) {
	var args map[string]any
	raw := tc.Function.Arguments
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			e.logger.Warn("malformed tool arguments", "tool", tc.Function.Name, "error", err)
			return fmt.Sprintf("Error: tool arguments are not valid JSON: %v. Retry with a JSON object.", err), false
		}
	}

	e.logger.Debug("tool call", "tool", tc.Function.Name, "arguments", raw)
	result := e.registry.Call(ctx, tc.Function.Name, args)
	e.logger.Debug("tool result", "tool", tc.Function.Name, "bytes", len(result))
	return result, true
}
