package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := DefaultConfig()
	if cfg.LogLevel != want.LogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, want.LogLevel)
	}
	if cfg.Scenario.Printers != want.Scenario.Printers {
		t.Errorf("Scenario.Printers = %d, want %d", cfg.Scenario.Printers, want.Scenario.Printers)
	}
}

func TestLoadAppliesDefaultsToMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uthreadctl.yaml")
	if err := os.WriteFile(path, []byte("logLevel: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Scenario.Printers != DefaultConfig().Scenario.Printers {
		t.Errorf("Scenario.Printers = %d, want default %d", cfg.Scenario.Printers, DefaultConfig().Scenario.Printers)
	}
}

func TestLoadHonorsExplicitScenarioOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uthreadctl.yaml")
	body := "scenario:\n  printers: 20\n  recursiveMutexDepth: 7\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Scenario.Printers != 20 {
		t.Errorf("Scenario.Printers = %d, want 20", cfg.Scenario.Printers)
	}
	if cfg.Scenario.RecursiveMutexDepth != 7 {
		t.Errorf("Scenario.RecursiveMutexDepth = %d, want 7", cfg.Scenario.RecursiveMutexDepth)
	}
	if cfg.Scenario.MailboxConsumers != DefaultConfig().Scenario.MailboxConsumers {
		t.Errorf("Scenario.MailboxConsumers = %d, want default", cfg.Scenario.MailboxConsumers)
	}
}
