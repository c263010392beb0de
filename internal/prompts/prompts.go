// Package prompts implements the MCP prompt handlers.
//
// todo-reminder is the injection point for hosts: on prompt submit the host
// fetches it and places the returned text ahead of the agent's next turn.
// todo-status is user-triggered, like a slash command.
package prompts

import (
	"context"

	"github.com/HendryAvila/hoofy-todo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Reminder builds the reminder text for a session.
type Reminder interface {
	Reminder(ctx context.Context, sessionID string) string
}

// ReminderPrompt handles the todo-reminder MCP prompt.
type ReminderPrompt struct {
	reminder Reminder
}

// NewReminderPrompt creates a ReminderPrompt.
func NewReminderPrompt(reminder Reminder) *ReminderPrompt {
	return &ReminderPrompt{reminder: reminder}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReminderPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("todo-reminder",
		mcp.WithPromptDescription(
			"Current todo list of this session, formatted for injection into "+
				"the agent's context before its next response.",
		),
	)
}

// Handle processes the todo-reminder prompt request.
func (p *ReminderPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := p.reminder.Reminder(ctx, session.IDFromContext(ctx))
	return &mcp.GetPromptResult{
		Description: "Todo reminder",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}

// StatusPrompt handles the todo-status MCP prompt.
// It asks the AI to read back and present its own todo list.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("todo-status",
		mcp.WithPromptDescription(
			"Show the agent's current todo list: what is done, what is in "+
				"progress and what comes next.",
		),
	)
}

// Handle processes the todo-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Todo Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run the `todo` tool with action `list` to check your todo list.\n\n" +
						"Then:\n" +
						"1. Show completed, in-progress and pending items in order\n" +
						"2. Say which item you are working on right now\n" +
						"3. If the list is stale, update it with the full current list",
				),
			},
		},
	}, nil
}
