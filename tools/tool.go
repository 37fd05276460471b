// Package tools defines the callable tool abstraction exposed over the
// protocol surface, a registry for dispatch, and middleware for cross-cutting
// behavior around tool calls.
package tools

import (
	"context"
	"encoding/json"
)

// Tool defines the interface for protocol-callable tools.
// Tools provide a schema for argument validation and a Call method for execution.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool does.
	// This is provided to the client to help it decide when to use the tool.
	Description() string

	// Schema returns the JSON Schema that describes the tool's parameters.
	Schema() ToolSchema

	// Call executes the tool with the given arguments.
	// The args parameter contains the raw JSON arguments from the client.
	// Returns the tool's result or an error if execution fails.
	Call(ctx context.Context, args json.RawMessage) (any, error)
}

// ToolSchema describes the parameters a tool accepts.
// JSONSchema must be a valid JSON Schema object.
type ToolSchema struct {
	// JSONSchema is a valid JSON Schema object describing the tool's parameters.
	// Example: {"type": "object", "properties": {"prompt": {"type": "string"}}}
	JSONSchema json.RawMessage `json:"json_schema"`
}
