package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/hoofy-todo/internal/events"
	"github.com/HendryAvila/hoofy-todo/internal/todo"
	"github.com/mark3labs/mcp-go/mcp"
)

// TodoToolName is the name the agent calls the tool by.
const TodoToolName = "todo"

const todoDescription = `Manage your todo list for tracking multi-step tasks.

Use this tool to:
- Create a todo list when starting complex multi-step work
- Update the list as you complete each step
- Stay accountable and focused through long turns

Todo items have:
- content: Imperative description (e.g., "Run tests", "Build project")
- activeForm: Present continuous (e.g., "Running tests", "Building project")
- status: "pending" | "in_progress" | "completed"

Recommended pattern:
1. Create list when you start multi-step work
2. Update after completing each step
3. Keep exactly ONE item as "in_progress" at a time
4. Mark items "completed" immediately after finishing

Both create and update REPLACE the whole list: always send every item,
including the ones that did not change.`

// TodoTool handles the todo MCP tool.
// It dispatches create, update and list to the calling session's store
// and emits a before and an after event for every call.
type TodoTool struct {
	sessions Sessions
	events   Emitter
}

// NewTodoTool creates a TodoTool. emitter may be nil.
func NewTodoTool(sessions Sessions, emitter Emitter) *TodoTool {
	if emitter == nil {
		emitter = nopEmitter{}
	}
	return &TodoTool{sessions: sessions, events: emitter}
}

// Definition returns the MCP tool definition for todo.
func (t *TodoTool) Definition() mcp.Tool {
	actions := make([]string, len(todo.ActionValues))
	for i, a := range todo.ActionValues {
		actions[i] = string(a)
	}

	return mcp.NewTool(TodoToolName,
		mcp.WithDescription(todoDescription),
		mcp.WithTitleAnnotation("Todo List"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Enum(actions...),
			mcp.Description("Action to perform: create (replace all), update (replace all), list (read current)"),
		),
		mcp.WithArray("todos",
			mcp.Description("List of todos (required for create/update, ignored for list)"),
			mcp.Items(todo.ItemSchema()),
		),
	)
}

// Handle processes the todo tool call.
func (t *TodoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.sessions.FromContext(ctx)
	args := req.GetArguments()
	actionName := req.GetString("action", "")

	t.events.Emit(events.Event{
		Phase:     events.PhaseBefore,
		Tool:      TodoToolName,
		Action:    actionName,
		SessionID: sess.ID,
		Input:     args,
	})

	after := events.Event{
		Phase:     events.PhaseAfter,
		Tool:      TodoToolName,
		Action:    actionName,
		SessionID: sess.ID,
	}

	res, err := t.dispatch(sess.Todos, actionName, args)
	if err != nil {
		after.Err = err.Error()
		t.events.Emit(after)
		return mcp.NewToolResultError(err.Error()), nil
	}

	after.Summary = res.Summary()
	t.events.Emit(after)
	return jsonResult(res)
}

// dispatch runs one action against store. The store is only touched once
// the action and its input are known to be valid.
func (t *TodoTool) dispatch(store *todo.Store, actionName string, args map[string]any) (*todo.Result, error) {
	if strings.TrimSpace(actionName) == "" {
		return nil, errors.New("'action' is required. Valid actions: create, update, list")
	}
	action, err := todo.ParseAction(actionName)
	if err != nil {
		return nil, err
	}

	if action == todo.ActionList {
		return store.List(), nil
	}

	raw, ok := args["todos"]
	if !ok || raw == nil {
		return nil, &todo.ValidationError{Index: -1, Field: "todos", Reason: fmt.Sprintf("is required for %s", action)}
	}
	items, err := todo.DecodeItems(raw)
	if err != nil {
		return nil, err
	}

	if action == todo.ActionCreate {
		return store.Create(items)
	}
	return store.Update(items)
}
