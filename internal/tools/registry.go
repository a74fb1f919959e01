package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/fincrew/fincrew/internal/llm"
	"github.com/fincrew/fincrew/internal/store"
)

// Registry maps tool names to implementations and produces the wire-format
// tool definitions the model sees.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds the registry with the four database tools bound to
// the given store.
func NewRegistry(s *store.Store) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range []Tool{
		&listTablesTool{store: s},
		&tablesSchemaTool{store: s},
		&executeSQLTool{store: s},
		&checkSQLTool{store: s},
	} {
		r.tools[t.Name()] = t
	}
	return r
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns the OpenAI-style tool definitions for the given tool
// names. Unknown names are skipped; configuration validation has already
// rejected them at startup.
func (r *Registry) Definitions(names []string) []llm.Tool {
	var defs []llm.Tool
	for _, name := range names {
		t, ok := r.tools[name]
		if !ok {
			continue
		}
		defs = append(defs, llm.Tool{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}

// Call dispatches a tool invocation by name. An unknown name comes back as
// a descriptive string like any other tool failure.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) string {
	t, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q. Available tools: %v", name, r.Names())
	}
	return t.Call(ctx, args)
}
