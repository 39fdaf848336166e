package toolbox

import (
	"context"
	"encoding/json"
)

// Handler executes a tool with the given JSON arguments and returns a text
// result. Handlers report environment and validation problems as text in the
// result; an error return is reserved for malformed input.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool is a named, remotely invokable operation with a JSON Schema describing
// its arguments.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}
