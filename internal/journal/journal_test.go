package journal

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/hoofy-todo/internal/events"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := New(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create test journal: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func testEvent(id, session string, phase events.Phase, at time.Time) events.Event {
	return events.Event{
		ID:        id,
		Phase:     phase,
		Tool:      "todo",
		Action:    "create",
		SessionID: session,
		Time:      at,
	}
}

func TestNew_CreatesDatabaseFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	j, err := New(Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer j.Close()

	if _, err := os.Stat(filepath.Join(dir, DBFileName)); err != nil {
		t.Errorf("journal file not created: %v", err)
	}
}

func TestNew_OpenFailure(t *testing.T) {
	orig := openDB
	openDB = func(driver, dsn string) (*sql.DB, error) {
		return nil, errors.New("no driver")
	}
	t.Cleanup(func() { openDB = orig })

	_, err := New(Config{DataDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "open database") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestHandleAndRecent(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

	before := testEvent("ev-1", "s1", events.PhaseBefore, base)
	before.Input = map[string]any{"action": "create", "todos": []any{}}
	after := testEvent("ev-2", "s1", events.PhaseAfter, base.Add(time.Millisecond))
	after.Summary = "created: 0 todos (0 pending, 0 in progress, 0 completed)"
	other := testEvent("ev-3", "s2", events.PhaseAfter, base.Add(2*time.Millisecond))
	other.Err = "Todo 0 field 'content' is required"

	for _, ev := range []events.Event{before, after, other} {
		if err := j.Handle(ctx, ev); err != nil {
			t.Fatalf("Handle(%s): %v", ev.ID, err)
		}
	}

	all, err := j.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}
	if all[0].EventID != "ev-3" || all[2].EventID != "ev-1" {
		t.Errorf("entries not newest-first: %s, %s", all[0].EventID, all[2].EventID)
	}
	if all[0].Error == "" {
		t.Error("error text should be recorded")
	}
	if !strings.Contains(all[2].Input, `"action":"create"`) {
		t.Errorf("input = %q, want JSON of the request", all[2].Input)
	}
	if !all[2].At.Equal(base) {
		t.Errorf("At = %v, want %v", all[2].At, base)
	}

	s1, err := j.Recent(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("Recent(s1): %v", err)
	}
	if len(s1) != 2 {
		t.Errorf("session filter returned %d entries, want 2", len(s1))
	}
	if s1[0].Summary == "" {
		t.Error("summary should be recorded")
	}
}

func TestRecent_Limit(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ev := testEvent(string(rune('a'+i)), "s1", events.PhaseAfter, base.Add(time.Duration(i)*time.Second))
		if err := j.Handle(ctx, ev); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}

	got, err := j.Recent(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "e" {
		t.Errorf("got %+v", got)
	}
}

func TestRecent_EmptyIsNotNil(t *testing.T) {
	j := newTestJournal(t)
	got, err := j.Recent(context.Background(), "nobody", 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if got == nil {
		t.Error("Recent should return an empty slice, not nil")
	}
}

func TestHandle_DuplicateEventID(t *testing.T) {
	j := newTestJournal(t)
	ev := testEvent("dup", "s1", events.PhaseBefore, time.Now())
	if err := j.Handle(context.Background(), ev); err != nil {
		t.Fatalf("first Handle: %v", err)
	}
	if err := j.Handle(context.Background(), ev); err == nil {
		t.Error("duplicate event IDs should be rejected")
	}
}

func TestJournal_AsBusListener(t *testing.T) {
	j := newTestJournal(t)
	bus := events.NewBus(4, nil)
	bus.Subscribe(j)

	bus.Emit(events.Event{Phase: events.PhaseBefore, Tool: "todo", Action: "list", SessionID: "s1"})
	bus.Close()

	got, err := j.Recent(context.Background(), "s1", 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].EventID == "" {
		t.Errorf("bus event not journaled: %+v", got)
	}
}
