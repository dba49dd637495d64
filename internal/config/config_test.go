package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Git.Binary != "git" {
		t.Errorf("expected git binary, got %q", cfg.Git.Binary)
	}
	if !cfg.Git.CommitOnRecord {
		t.Error("record should commit by default")
	}
	if cfg.Git.CommitOnStart {
		t.Error("start should not commit by default")
	}
	if cfg.Output.Color != ColorAuto {
		t.Errorf("expected auto color, got %q", cfg.Output.Color)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "git:\n  commit_on_start: true\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.Git.CommitOnStart {
		t.Error("expected commit_on_start from file")
	}
	if !cfg.Git.CommitOnRecord {
		t.Error("commit_on_record should keep its default")
	}
	if cfg.Git.Binary != "git" {
		t.Errorf("binary should keep its default, got %q", cfg.Git.Binary)
	}
	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, %v; want debug", level, err)
	}
}

func TestSaveConfig_RoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Git.AllowEmpty = true
	cfg.Output.Color = ColorNever

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", *loaded, *cfg)
	}
}

func TestEnsureConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	wrote, err := EnsureConfig(path)
	if err != nil || !wrote {
		t.Fatalf("first EnsureConfig = %v, %v; want true, nil", wrote, err)
	}

	if err := os.WriteFile(path, []byte("log:\n  level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	wrote, err = EnsureConfig(path)
	if err != nil || wrote {
		t.Fatalf("second EnsureConfig = %v, %v; want false, nil", wrote, err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "log:\n  level: warn\n" {
		t.Errorf("EnsureConfig overwrote an existing file: %q", data)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "always color", mutate: func(c *Config) { c.Output.Color = ColorAlways }},
		{name: "unknown color", mutate: func(c *Config) { c.Output.Color = "rainbow" }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "empty binary", mutate: func(c *Config) { c.Git.Binary = " " }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output:\n  color: rainbow\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for an unknown color mode")
	}
}
