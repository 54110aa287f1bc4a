// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, payload string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad checks that a valid file loads with its tool schemas intact and
// that invalid JSON, invalid tool lists and missing files are rejected.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	validConfig := `{
        "debug": true,
        "logFile": "logs/toolstream.log",
        "tools": [
            {
                "name": "deploy",
                "description": "Ship a build",
                "parameters": {"type": "object", "required": ["env"], "properties": {"env": {"type": "string", "minLength": 2}}}
            }
        ],
        "aliases": {"Ship": "deploy"},
        "dialoguePatterns": ["\\nAnyway"]
    }`
	path := writeConfig(t, dir, validConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected ConfigPath %q, got %q", path, cfg.ConfigPath)
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0].Name != "deploy" {
		t.Fatalf("expected one deploy tool, got %+v", cfg.Tools)
	}
	props := cfg.Tools[0].Parameters["properties"].(map[string]any)
	env := props["env"].(map[string]any)
	if _, ok := env["minLength"]; !ok {
		t.Fatalf("schema keyword case not preserved: %v", env)
	}
	if cfg.Aliases["Ship"] != "deploy" {
		t.Fatalf("expected alias Ship, got %v", cfg.Aliases)
	}
	if cfg.ReplayChunk() != 8 {
		t.Fatalf("expected default replay chunk of 8, got %d", cfg.ReplayChunk())
	}
	if cfg.ReplayDelay() != 30*time.Millisecond {
		t.Fatalf("expected default replay delay of 30ms, got %v", cfg.ReplayDelay())
	}
	if cfg.LogLevelName() != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.LogLevelName())
	}

	invalidJSON := writeConfig(t, t.TempDir(), `{ "tools": [`)
	if _, err := Load(invalidJSON); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	unnamed := writeConfig(t, t.TempDir(), `{ "tools": [{"description": "no name"}] }`)
	if _, err := Load(unnamed); err == nil {
		t.Fatal("Load() with an unnamed tool should have failed")
	}

	duplicate := writeConfig(t, t.TempDir(), `{ "tools": [{"name": "a"}, {"name": "A"}] }`)
	if _, err := Load(duplicate); err == nil {
		t.Fatal("Load() with duplicate tools should have failed")
	}

	if _, err := Load(filepath.Join(dir, "nonexistent.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() with nonexistent file should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadDefaultPathFallsBackToLegacy(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, legacyConfigPath), []byte(`{"jsonMode": true}`), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}

	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.JSONMode || cfg.ConfigPath != legacyConfigPath {
		t.Fatalf("expected legacy config to load, got %+v", cfg)
	}
}

func TestReplaySettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       Config
		wantChunk int
		wantDelay time.Duration
	}{
		{name: "defaults", cfg: Config{}, wantChunk: 8, wantDelay: 30 * time.Millisecond},
		{name: "explicit", cfg: Config{ReplayChunkSize: 3, ReplayDelayMs: 5}, wantChunk: 3, wantDelay: 5 * time.Millisecond},
		{name: "no delay", cfg: Config{ReplayChunkSize: -1, ReplayDelayMs: -1}, wantChunk: 8, wantDelay: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cfg.ReplayChunk(); got != tt.wantChunk {
				t.Fatalf("ReplayChunk()=%d want %d", got, tt.wantChunk)
			}
			if got := tt.cfg.ReplayDelay(); got != tt.wantDelay {
				t.Fatalf("ReplayDelay()=%v want %v", got, tt.wantDelay)
			}
		})
	}
}

func TestShowConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := &Config{JSONMode: true, Tools: []Tool{{Name: "deploy"}}, DialoguePatterns: []string{"x"}}
	ShowConfig(&buf, "config/config.json", cfg, Config{})
	out := buf.String()
	for _, want := range []string{"Config file: config/config.json", "JSON Mode:         true", "Declared Tools:    1", "Dialogue Patterns: 1", "Log File:          (disabled)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	ShowConfig(&buf, "", nil, Config{Debug: true})
	out = buf.String()
	if !strings.Contains(out, "No config file loaded") || !strings.Contains(out, "Log Level:         debug") {
		t.Fatalf("unexpected fallback output:\n%s", out)
	}
}
