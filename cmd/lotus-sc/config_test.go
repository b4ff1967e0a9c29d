package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	cfg, err := loadProjectConfig(filepath.Join(t.TempDir(), configFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HasID {
		t.Error("HasID should be false without a file")
	}
	if cfg.Package != "." {
		t.Errorf("Package = %q, want .", cfg.Package)
	}
	if cfg.Host.Delta != 1.0/60 {
		t.Errorf("Delta = %v, want 1/60", cfg.Host.Delta)
	}
}

func TestLoadProjectConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
user_id = 12
sub_id = 3
package = "./cmd/door"
tags = ["lotus", "debug"]

[host]
delta = "20ms"
seed = 99
stub_unknown_imports = true
start_time = 2025-01-02T03:04:05Z
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.HasID || cfg.UserID != 12 || cfg.SubID != 3 {
		t.Errorf("id = %v %d:%d, want 12:3", cfg.HasID, cfg.UserID, cfg.SubID)
	}
	if cfg.Package != "./cmd/door" {
		t.Errorf("Package = %q", cfg.Package)
	}
	if cfg.Tags != "lotus,debug" {
		t.Errorf("Tags = %q", cfg.Tags)
	}
	if cfg.Host.Delta != 0.02 {
		t.Errorf("Delta = %v, want 0.02", cfg.Host.Delta)
	}
	if cfg.Host.Seed != 99 || !cfg.Host.StubUnknownImports {
		t.Errorf("host = %+v", cfg.Host)
	}
	if want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC); !cfg.Host.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", cfg.Host.StartTime, want)
	}
	if cfg.Host.LoopbackPages != 1 {
		t.Errorf("LoopbackPages = %d, want default 1", cfg.Host.LoopbackPages)
	}
}

func TestLoadProjectConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"user without sub", "user_id = 1\n"},
		{"bad delta", "[host]\ndelta = \"soon\"\n"},
		{"negative delta", "[host]\ndelta = \"-1s\"\n"},
		{"syntax", "user_id = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadProjectConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
