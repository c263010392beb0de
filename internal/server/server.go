// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here, only wiring.
package server

import (
	"context"

	"github.com/HendryAvila/hoofy-todo/internal/config"
	"github.com/HendryAvila/hoofy-todo/internal/events"
	"github.com/HendryAvila/hoofy-todo/internal/journal"
	"github.com/HendryAvila/hoofy-todo/internal/logging"
	"github.com/HendryAvila/hoofy-todo/internal/prompts"
	"github.com/HendryAvila/hoofy-todo/internal/reminder"
	"github.com/HendryAvila/hoofy-todo/internal/resources"
	"github.com/HendryAvila/hoofy-todo/internal/session"
	"github.com/HendryAvila/hoofy-todo/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Name is the server name announced during MCP initialization.
const Name = "hoofy-todo"

// Components exposes the wired dependencies so callers and tests can reach
// them without going through the protocol.
type Components struct {
	Sessions *session.Registry
	Events   *events.Bus
	Journal  *journal.Journal // nil when disabled or failed to open
	Reminder *reminder.Hook
	Todo     *tools.TodoTool
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function drains the event bus and closes the
// journal. It is always non-nil and must be called on shutdown.
func New(cfg *config.Config) (*server.MCPServer, func(), error) {
	s, _, cleanup, err := Build(cfg)
	return s, cleanup, err
}

// Build is New plus the wired components.
func Build(cfg *config.Config) (*server.MCPServer, *Components, func(), error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, noop, err
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format, nil)

	// --- Create shared dependencies ---

	registry := session.NewRegistry()

	bus := events.NewBus(cfg.Events.Buffer, logging.EventErrorHandler)
	bus.Subscribe(logging.EventListener())

	c := &Components{
		Sessions: registry,
		Events:   bus,
		Reminder: reminder.NewHook(registry, cfg.Reminder.TagOrDefault()),
	}

	// --- Optional journal ---
	//
	// The journal is an independent subsystem: if it fails to open, the
	// todo tool keeps working and only the audit trail is lost.

	if cfg.Journal.Enabled {
		j, err := journal.New(journal.Config{DataDir: cfg.Journal.DataDir})
		if err != nil {
			logging.Warn().Err(err).Msg("journal disabled")
		} else {
			c.Journal = j
			bus.Subscribe(j)
		}
	}

	cleanup := func() {
		bus.Close()
		if c.Journal != nil {
			if err := c.Journal.Close(); err != nil {
				logging.Warn().Err(err).Msg("journal close")
			}
		}
	}

	// --- Session lifecycle ---

	hooks := &server.Hooks{}
	hooks.AddOnRegisterSession(func(ctx context.Context, cs server.ClientSession) {
		registry.Start(cs.SessionID())
		logging.Debug().Str("session", cs.SessionID()).Msg("session started")
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, cs server.ClientSession) {
		if registry.End(cs.SessionID()) {
			logging.Debug().Str("session", cs.SessionID()).Msg("session ended")
		}
	})

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithHooks(hooks),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	c.Todo = tools.NewTodoTool(registry, bus)
	s.AddTool(c.Todo.Definition(), c.Todo.Handle)

	// --- Register prompts ---

	reminderPrompt := prompts.NewReminderPrompt(c.Reminder)
	s.AddPrompt(reminderPrompt.Definition(), reminderPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	var rec resources.Recorder
	if c.Journal != nil {
		rec = c.Journal
	}
	resourceHandler := resources.NewHandler(registry, c.Reminder, rec)
	s.AddResource(resourceHandler.TodosResource(), resourceHandler.HandleTodos)
	s.AddResource(resourceHandler.ReminderResource(), resourceHandler.HandleReminder)
	if resourceHandler.HasJournal() {
		s.AddResource(resourceHandler.JournalResource(), resourceHandler.HandleJournal)
	}

	logging.Info().
		Str("version", Version).
		Bool("journal", c.Journal != nil).
		Msg("server ready")

	return s, c, cleanup, nil
}

// noop is the cleanup returned when construction fails.
func noop() {}

func serverInstructions() string {
	return `You have access to a session todo list through the "todo" tool.

## WHEN TO USE IT

Use the todo list proactively for:
- Complex multi-step tasks (3 or more distinct steps)
- Work the user hands you as a list of things to do
- Any task where tracking progress helps the user follow along

Skip it for a single trivial step or a purely conversational request.

## HOW IT WORKS

- action "create" or "update" REPLACES the whole list with the todos you
  send. Always send every item, including unchanged ones.
- action "list" returns the current list with per-status counts.
- Each todo needs "content" (imperative, e.g. "Run tests"), "activeForm"
  (present continuous, e.g. "Running tests") and "status"
  (pending, in_progress or completed).

## DISCIPLINE

- Keep exactly one item in_progress while you work.
- Mark an item completed as soon as it is done. Do not batch completions.
- Only mark an item completed when it is fully done; if you hit a blocker,
  keep it in_progress and add a new item describing the blocker.

The list lives only for this session. Before each of your turns the host
may inject a reminder with the current list (prompt "todo-reminder").`
}
