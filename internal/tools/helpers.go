// Package tools implements the MCP tool handlers.
//
// Each tool is a struct that receives its dependencies through its
// constructor and exposes:
// - Definition() returning the mcp.Tool schema
// - Handle() processing a CallToolRequest
//
// Handlers never return a Go error for bad input: failures are reported
// back to the agent as tool error results so the session carries on.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/hoofy-todo/internal/events"
	"github.com/HendryAvila/hoofy-todo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Sessions resolves the session that issued a request.
type Sessions interface {
	FromContext(ctx context.Context) *session.Context
}

// Emitter accepts observability events. Emit must not block.
type Emitter interface {
	Emit(ev events.Event) bool
}

// nopEmitter is used when a tool is built without an event sink.
type nopEmitter struct{}

func (nopEmitter) Emit(events.Event) bool { return false }

// jsonResult marshals v as the text content of a successful tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
