package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolateHome points $HOME at an empty temp dir so no real user config leaks in.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HOOFY_TODO_LOG_LEVEL", "")
	t.Setenv("HOOFY_TODO_LOG_FORMAT", "")
	t.Setenv("HOOFY_TODO_DATA_DIR", "")
	t.Setenv("HOOFY_TODO_JOURNAL", "")
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Events.Buffer != DefaultEventBuffer {
		t.Errorf("Events.Buffer = %d", cfg.Events.Buffer)
	}
	if cfg.Journal.Enabled {
		t.Error("journal should be disabled by default")
	}
	if want := filepath.Join(home, DefaultDirName); cfg.Journal.DataDir != want {
		t.Errorf("Journal.DataDir = %q, want %q", cfg.Journal.DataDir, want)
	}
	if cfg.Reminder.TagOrDefault() != DefaultReminderTag {
		t.Errorf("reminder tag = %q", cfg.Reminder.TagOrDefault())
	}
}

func TestLoad_UserThenExplicitFile(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, DefaultDirName, ConfigFileName), `
[log]
level = "debug"
format = "console"

[events]
buffer = 8
`)
	explicit := filepath.Join(t.TempDir(), "todo.toml")
	writeFile(t, explicit, `
[log]
level = "warn"

[reminder]
tag = ""
`)

	cfg, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("explicit file should override user level, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("user file format should survive, got %q", cfg.Log.Format)
	}
	if cfg.Events.Buffer != 8 {
		t.Errorf("Events.Buffer = %d, want 8", cfg.Events.Buffer)
	}
	if cfg.Reminder.TagOrDefault() != "" {
		t.Errorf("explicit empty tag should disable wrapping, got %q", cfg.Reminder.TagOrDefault())
	}
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	isolateHome(t)
	explicit := filepath.Join(t.TempDir(), "todo.toml")
	writeFile(t, explicit, "[log]\nlevel = \"warn\"\n")
	dataDir := t.TempDir()

	t.Setenv("HOOFY_TODO_LOG_LEVEL", "error")
	t.Setenv("HOOFY_TODO_JOURNAL", "true")
	t.Setenv("HOOFY_TODO_DATA_DIR", dataDir)

	cfg, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want error", cfg.Log.Level)
	}
	if !cfg.Journal.Enabled || cfg.Journal.DataDir != dataDir {
		t.Errorf("Journal = %+v", cfg.Journal)
	}
}

func TestLoad_BadEnvBool(t *testing.T) {
	isolateHome(t)
	t.Setenv("HOOFY_TODO_JOURNAL", "maybe")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-boolean HOOFY_TODO_JOURNAL")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolateHome(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	isolateHome(t)
	explicit := filepath.Join(t.TempDir(), "todo.toml")
	writeFile(t, explicit, "[log]\nlevl = \"debug\"\n")

	_, err := Load(explicit)
	if err == nil || !strings.Contains(err.Error(), "log.levl") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults ok", func(*Config) {}, ""},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"zero buffer", func(c *Config) { c.Events.Buffer = 0 }, "events.buffer"},
		{"journal without dir", func(c *Config) { c.Journal.Enabled = true; c.Journal.DataDir = "" }, "journal.data_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("TODO_TEST_DIR", "/var/tmp/x")

	tests := map[string]string{
		"":                  "",
		"~":                 home,
		"~/data":            filepath.Join(home, "data"),
		"$TODO_TEST_DIR/db": "/var/tmp/x/db",
		"/absolute/path":    "/absolute/path",
	}
	for in, want := range tests {
		if got := expandPath(in); got != want {
			t.Errorf("expandPath(%q) = %q, want %q", in, got, want)
		}
	}
}
