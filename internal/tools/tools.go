// ABOUTME: Core types for tool definitions, packs, and call results.
// ABOUTME: Shared by the registry, router, and the MCP HTTP surface.

package tools

import (
	"context"
	"encoding/json"
)

// Definition describes a callable tool: its name, human description,
// and the JSON schema of its input object.
type Definition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// Handler executes a tool call. Input is the raw JSON argument object;
// the returned value is the JSON-serializable success payload.
type Handler func(ctx context.Context, input json.RawMessage) (json.RawMessage, error)

// Tool binds a definition to its handler.
type Tool struct {
	Definition Definition
	Handler    Handler
}

// Pack is a named group of tools registered together.
type Pack struct {
	ID    string
	Tools []Tool
}

// Content is a single content block in a tool call result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the caller-facing outcome of a tool call. Failures are
// carried as text content with IsError set, never as a transport fault.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// TextResult wraps a plain string as a successful result.
func TextResult(text string) *Result {
	return &Result{Content: []Content{{Type: "text", Text: text}}}
}

// ErrorResult wraps an error message as a failed result.
func ErrorResult(text string) *Result {
	return &Result{
		Content: []Content{{Type: "text", Text: text}},
		IsError: true,
	}
}
