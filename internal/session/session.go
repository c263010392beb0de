// Package session owns the per-session state of the server.
//
// Each client session gets a Context holding its own todo list. Contexts
// are created when the host registers a session and discarded when it
// unregisters. Hosts that never announce sessions share DefaultID.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/HendryAvila/hoofy-todo/internal/todo"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultID is used when a request carries no client session.
const DefaultID = "default"

// Context is the state owned by one session.
type Context struct {
	ID        string
	StartedAt time.Time
	Todos     *todo.Store
}

// Registry maps session IDs to their contexts.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Context
	now      func() time.Time
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Context),
		now:      time.Now,
	}
}

// Start creates the context for id with an empty todo list. Starting an
// already started session returns the existing context unchanged.
func (r *Registry) Start(id string) (*Context, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startLocked(id)
}

func (r *Registry) startLocked(id string) (*Context, bool) {
	if c, ok := r.sessions[id]; ok {
		return c, false
	}
	c := &Context{ID: id, StartedAt: r.now().UTC(), Todos: todo.NewStore()}
	r.sessions[id] = c
	return c, true
}

// End clears and discards the context for id. It reports whether the
// session existed.
func (r *Registry) End(id string) bool {
	r.mu.Lock()
	c, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		c.Todos.Reset()
	}
	return ok
}

// Get returns the context for id, starting it if the host never did.
func (r *Registry) Get(id string) *Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, _ := r.startLocked(id)
	return c
}

// Lookup returns the context for id without starting it.
func (r *Registry) Lookup(id string) (*Context, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.sessions[id]
	return c, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Todos returns a snapshot of a session's list. It does not start the
// session, so reading a reminder for an unknown session yields nothing.
func (r *Registry) Todos(_ context.Context, id string) []todo.Item {
	c, ok := r.Lookup(id)
	if !ok {
		return []todo.Item{}
	}
	return c.Todos.Snapshot()
}

// IDFromContext returns the client session ID carried by ctx, or DefaultID.
func IDFromContext(ctx context.Context) string {
	if cs := server.ClientSessionFromContext(ctx); cs != nil {
		if id := cs.SessionID(); id != "" {
			return id
		}
	}
	return DefaultID
}

// FromContext returns the session context for the request in ctx.
func (r *Registry) FromContext(ctx context.Context) *Context {
	return r.Get(IDFromContext(ctx))
}
