// Package reminder renders the session todo list into the compact status
// block a host injects into the agent's context before its next turn.
//
// Render is pure: it never mutates its input and always returns the same
// text for the same list. Hook adds the session lookup and the wrapping tag.
package reminder

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/hoofy-todo/internal/todo"
)

const (
	// DefaultTag wraps the injected block so the agent can tell it apart
	// from user text.
	DefaultTag = "system-reminder"

	// EmptyMessage is rendered when the list has no items.
	EmptyMessage = "No active todos."

	doneMarker    = "[x]"
	pendingMarker = "[ ]"
	activeLabel   = "(in progress)"
)

// Render returns one line per item in list order:
//
//	[x] 1. Write parser
//	[ ] 2. Running tests (in progress)
//	[ ] 3. Build project
//
// In-progress items share the pending marker and show their active form
// with a label. An empty list renders EmptyMessage.
func Render(todos []todo.Item) string {
	if len(todos) == 0 {
		return EmptyMessage
	}

	var b strings.Builder
	for i, t := range todos {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderLine(i+1, t))
	}
	return b.String()
}

func renderLine(n int, t todo.Item) string {
	switch t.Status {
	case todo.StatusCompleted:
		return fmt.Sprintf("%s %d. %s", doneMarker, n, t.Content)
	case todo.StatusInProgress:
		text := t.ActiveForm
		if text == "" {
			text = t.Content
		}
		return fmt.Sprintf("%s %d. %s %s", pendingMarker, n, text, activeLabel)
	default:
		return fmt.Sprintf("%s %d. %s", pendingMarker, n, t.Content)
	}
}

// Summary returns a one-line progress summary such as
// "1/3 completed, 1 in progress".
func Summary(todos []todo.Item) string {
	c := todo.CountStatuses(todos)
	return fmt.Sprintf("%d/%d completed, %d in progress", c.Completed, len(todos), c.InProgress)
}

// --- Hook ---

// Source resolves the current todo list for a session.
type Source interface {
	Todos(ctx context.Context, sessionID string) []todo.Item
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, sessionID string) []todo.Item

// Todos calls f.
func (f SourceFunc) Todos(ctx context.Context, sessionID string) []todo.Item {
	return f(ctx, sessionID)
}

// Hook builds the reminder block injected on prompt submit.
type Hook struct {
	source Source
	tag    string
}

// NewHook creates a Hook. An empty tag disables wrapping.
func NewHook(source Source, tag string) *Hook {
	return &Hook{source: source, tag: tag}
}

// Reminder returns the injection text for a session.
func (h *Hook) Reminder(ctx context.Context, sessionID string) string {
	todos := h.source.Todos(ctx, sessionID)
	return h.Format(todos)
}

// Format wraps Render output with a header and the configured tag.
func (h *Hook) Format(todos []todo.Item) string {
	var b strings.Builder
	if h.tag != "" {
		fmt.Fprintf(&b, "<%s>\n", h.tag)
	}
	if len(todos) == 0 {
		b.WriteString("Todo list: empty.\n")
	} else {
		fmt.Fprintf(&b, "Todo list (%s):\n", Summary(todos))
	}
	b.WriteString(Render(todos))
	b.WriteByte('\n')
	if h.tag != "" {
		fmt.Fprintf(&b, "</%s>", h.tag)
	}
	return strings.TrimRight(b.String(), "\n")
}
