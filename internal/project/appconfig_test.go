package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Defaults.OutputDir = "/tmp/out"
	cfg.Defaults.UseLatex = true
	cfg.Theme = "dark"
	cfg.RecentWorkbooks = []string{"/tmp/panels.xlsx", "/tmp/2026.xlsx"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Defaults.OutputDir != "/tmp/out" {
		t.Errorf("expected OutputDir=/tmp/out, got %s", loaded.Defaults.OutputDir)
	}
	if !loaded.Defaults.UseLatex {
		t.Error("expected UseLatex=true")
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if len(loaded.RecentWorkbooks) != 2 {
		t.Errorf("expected 2 recent workbooks, got %d", len(loaded.RecentWorkbooks))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Defaults.LatexBinary != defaults.Defaults.LatexBinary {
		t.Errorf("expected default latex binary %s, got %s", defaults.Defaults.LatexBinary, cfg.Defaults.LatexBinary)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentWorkbooks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// Write config with null recent_workbooks
	data := []byte(`{"theme":"light","recent_workbooks":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentWorkbooks == nil {
		t.Error("RecentWorkbooks should not be nil after loading")
	}
}

func TestRememberWorkbook(t *testing.T) {
	cfg := model.DefaultAppConfig()
	RememberWorkbook(&cfg, "/tmp/a.xlsx")
	RememberWorkbook(&cfg, "/tmp/b.xlsx")
	RememberWorkbook(&cfg, "/tmp/a.xlsx")

	if len(cfg.RecentWorkbooks) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(cfg.RecentWorkbooks))
	}
	if cfg.RecentWorkbooks[0] != "/tmp/a.xlsx" {
		t.Errorf("most recent workbook should be first, got %s", cfg.RecentWorkbooks[0])
	}
}
