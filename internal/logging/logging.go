// Package logging provides the process-wide zerolog logger.
//
// Output always goes to stderr: stdout carries the MCP stdio transport and
// must only ever contain protocol messages.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/HendryAvila/hoofy-todo/internal/events"
	"github.com/rs/zerolog"
)

// Output formats accepted by Setup.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	logger     zerolog.Logger
	loggerLock sync.RWMutex
)

func init() {
	logger = zerolog.New(os.Stderr).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

// Setup replaces the global logger. A nil out means stderr.
func Setup(level, format string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	if format == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    true,
		}
	}

	l := zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()

	loggerLock.Lock()
	logger = l
	loggerLock.Unlock()
}

// ParseLevel converts a level name to a zerolog.Level, defaulting to info.
func ParseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func current() zerolog.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	l := current()
	return l.Debug()
}

// Info logs an info message
func Info() *zerolog.Event {
	l := current()
	return l.Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	l := current()
	return l.Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	l := current()
	return l.Error()
}

// Logger returns the underlying zerolog.Logger for integrations.
func Logger() zerolog.Logger {
	return current()
}

// EventListener logs every tool event. Successful invocations log at debug,
// failed ones at warn.
func EventListener() events.Listener {
	return events.ListenerFunc(func(_ context.Context, ev events.Event) error {
		var e *zerolog.Event
		if ev.Failed() {
			e = Warn().Str("error", ev.Err)
		} else {
			e = Debug()
		}
		e.Str("event_id", ev.ID).
			Str("phase", string(ev.Phase)).
			Str("tool", ev.Tool).
			Str("action", ev.Action).
			Str("session", ev.SessionID)
		if ev.Summary != "" {
			e.Str("summary", ev.Summary)
		}
		e.Msg("tool event")
		return nil
	})
}

// EventErrorHandler reports listener failures from the event bus.
func EventErrorHandler(ev events.Event, err error) {
	Warn().
		Err(err).
		Str("event_id", ev.ID).
		Str("action", ev.Action).
		Msg("event listener failed")
}
