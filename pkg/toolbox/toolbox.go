// Package toolbox defines the Tool type and the ToolBox registry that
// dispatches tool calls by name. The registry is populated once at startup
// and read-only afterwards; Tools() reports tools in registration order so
// listings are stable across calls.
package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
)

// ToolBox holds a fixed set of tools keyed by name. It dispatches Call
// invocations to the matching handler.
type ToolBox struct {
	order []string
	tools map[string]Tool
}

// New creates an empty ToolBox.
func New() *ToolBox {
	return &ToolBox{
		tools: make(map[string]Tool),
	}
}

// Register adds one or more tools. Registering a name twice replaces the
// handler but keeps the original position in the listing order.
func (tb *ToolBox) Register(tools ...Tool) {
	for _, t := range tools {
		if _, exists := tb.tools[t.Name]; !exists {
			tb.order = append(tb.order, t.Name)
		}
		tb.tools[t.Name] = t
	}
}

// Get returns a tool by name and whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Tools returns all registered tools in registration order.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.order))
	for _, name := range tb.order {
		result = append(result, tb.tools[name])
	}
	return result
}

// Call dispatches to the named tool's handler. An unregistered name is a
// protocol error and fails before any handler logic runs.
func (tb *ToolBox) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	t, ok := tb.tools[name]
	if !ok {
		return "", fmt.Errorf("toolbox: unknown tool: %s", name)
	}

	return t.Handler(ctx, args)
}
