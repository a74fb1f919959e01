package execution

import (
	"context"
	"fmt"
	"time"
)

// MockEngine is a canned-response engine for tests and offline runs.
type MockEngine struct {
	modelID string
	// Outputs maps a substring of the request message to the response
	// text. The first matching entry wins; otherwise a generic echo is
	// returned.
	Outputs map[string]string
	// Err, when set, is returned from every Execute call.
	Err error

	// Requests records every request seen, in order.
	Requests []*Request
}

// NewMockEngine creates a MockEngine.
func NewMockEngine(modelID string) *MockEngine {
	return &MockEngine{modelID: modelID}
}

func (m *MockEngine) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.Requests = append(m.Requests, req)

	if m.Err != nil {
		return nil, m.Err
	}

	start := time.Now()
	output := fmt.Sprintf("Mock response for: %s", req.Message)
	for needle, canned := range m.Outputs {
		if needle != "" && contains(req.Message, needle) {
			output = canned
			break
		}
	}

	return &Response{
		FinalOutput: output,
		ModelID:     m.modelID,
		DurationMs:  time.Since(start).Milliseconds(),
	}, nil
}
