package tools

import (
	"encoding/json"
)

// ParseArgs parses tool call arguments into a typed struct.
// A nil or empty argument blob yields the zero value.
//
// Example:
//
//	type GenerateArgs struct {
//	    Prompt string `json:"prompt"`
//	}
//
//	args, err := tools.ParseArgs[GenerateArgs](raw)
//	if err != nil {
//	    return nil, err
//	}
//	// Use args.Prompt
func ParseArgs[T any](args json.RawMessage) (*T, error) {
	var result T
	if len(args) == 0 {
		return &result, nil
	}
	if err := json.Unmarshal(args, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
