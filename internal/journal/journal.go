// Package journal records todo tool events in SQLite for later audit.
//
// The journal is an event listener, not a store for todo lists: lists are
// never read back from it, and a new session always starts empty.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/HendryAvila/hoofy-todo/internal/events"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// DBFileName is the journal database inside the data directory.
const DBFileName = "journal.db"

// DefaultRecentLimit caps Recent when called with a non-positive limit.
const DefaultRecentLimit = 20

// Config controls where the journal lives.
type Config struct {
	DataDir string
}

// Entry is one recorded event.
type Entry struct {
	ID        int64     `json:"id"`
	EventID   string    `json:"event_id"`
	Phase     string    `json:"phase"`
	Tool      string    `json:"tool"`
	Action    string    `json:"action"`
	SessionID string    `json:"session_id"`
	Input     string    `json:"input,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Error     string    `json:"error,omitempty"`
	At        time.Time `json:"at"`
}

// Journal is the SQLite-backed event log.
type Journal struct {
	db *sql.DB
}

// New opens (creating if needed) the journal database under cfg.DataDir.
func New(cfg Config) (*Journal, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, DBFileName)
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return j, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id   TEXT NOT NULL UNIQUE,
			phase      TEXT NOT NULL,
			tool       TEXT NOT NULL,
			action     TEXT NOT NULL,
			session_id TEXT NOT NULL,
			input      TEXT,
			summary    TEXT,
			error      TEXT,
			at         TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, id DESC);
	`)
	return err
}

// Handle records ev. It satisfies events.Listener.
func (j *Journal) Handle(ctx context.Context, ev events.Event) error {
	var input sql.NullString
	if ev.Input != nil {
		data, err := json.Marshal(ev.Input)
		if err != nil {
			return fmt.Errorf("journal: marshal input: %w", err)
		}
		input = sql.NullString{String: string(data), Valid: true}
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events (event_id, phase, tool, action, session_id, input, summary, error, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, string(ev.Phase), ev.Tool, ev.Action, ev.SessionID,
		input, nullable(ev.Summary), nullable(ev.Err),
		ev.Time.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("journal: insert event %s: %w", ev.ID, err)
	}
	return nil
}

// Recent returns the newest entries first. An empty sessionID matches all
// sessions.
func (j *Journal) Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `SELECT id, event_id, phase, tool, action, session_id,
	                 COALESCE(input, ''), COALESCE(summary, ''), COALESCE(error, ''), at
	          FROM events`
	args := []any{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: query recent: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &e.EventID, &e.Phase, &e.Tool, &e.Action, &e.SessionID,
			&e.Input, &e.Summary, &e.Error, &at); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("journal: parse time %q: %w", at, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate: %w", err)
	}
	return entries, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
