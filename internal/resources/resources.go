// Package resources implements MCP resource handlers.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (todo://...) following MCP conventions and
// always describe the session that reads them.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/hoofy-todo/internal/journal"
	"github.com/HendryAvila/hoofy-todo/internal/session"
	"github.com/HendryAvila/hoofy-todo/internal/todo"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	TodosURI    = "todo://session/todos"
	ReminderURI = "todo://session/reminder"
	JournalURI  = "todo://journal/recent"
)

// Lists returns the todo list of a session without starting it.
type Lists interface {
	Todos(ctx context.Context, sessionID string) []todo.Item
}

// Reminder builds the reminder text for a session.
type Reminder interface {
	Reminder(ctx context.Context, sessionID string) string
}

// Recorder reads back journaled events.
type Recorder interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]journal.Entry, error)
}

// Handler manages todo resource endpoints.
type Handler struct {
	lists    Lists
	reminder Reminder
	journal  Recorder
}

// NewHandler creates a resource Handler with its dependencies.
// rec may be nil when the journal is disabled.
func NewHandler(lists Lists, reminder Reminder, rec Recorder) *Handler {
	return &Handler{lists: lists, reminder: reminder, journal: rec}
}

// HasJournal reports whether the journal resource should be registered.
func (h *Handler) HasJournal() bool {
	return h.journal != nil
}

// TodosResource returns the MCP resource definition for the session list.
func (h *Handler) TodosResource() mcp.Resource {
	return mcp.NewResource(
		TodosURI,
		"Session Todo List",
		mcp.WithResourceDescription("The current todo list of this session with per-status counts"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleTodos returns the session's list in the same shape as the list action.
func (h *Handler) HandleTodos(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, todo.Listed(h.lists.Todos(ctx, session.IDFromContext(ctx))))
}

// ReminderResource returns the MCP resource definition for the reminder text.
func (h *Handler) ReminderResource() mcp.Resource {
	return mcp.NewResource(
		ReminderURI,
		"Todo Reminder",
		mcp.WithResourceDescription("The formatted todo reminder injected ahead of the agent's next turn"),
		mcp.WithMIMEType("text/plain"),
	)
}

// HandleReminder returns the reminder text for the reading session.
func (h *Handler) HandleReminder(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     h.reminder.Reminder(ctx, session.IDFromContext(ctx)),
		},
	}, nil
}

// JournalResource returns the MCP resource definition for recent events.
func (h *Handler) JournalResource() mcp.Resource {
	return mcp.NewResource(
		JournalURI,
		"Todo Event Journal",
		mcp.WithResourceDescription("Most recent todo tool events recorded for this session"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleJournal returns the newest journal entries for the reading session.
func (h *Handler) HandleJournal(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.journal == nil {
		return errorResource(req.Params.URI, "journal is disabled"), nil
	}
	entries, err := h.journal.Recent(ctx, session.IDFromContext(ctx), journal.DefaultRecentLimit)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, entries)
}

// jsonResource marshals v into a single JSON resource.
func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
