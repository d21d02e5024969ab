package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfigFile tests loading the YAML configuration file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads all fields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := "map_file: out/kernel.map\npage_size: 8192\njobs: 8\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.MapFile == nil || *cf.MapFile != "out/kernel.map" {
			t.Errorf("unexpected map_file: %v", cf.MapFile)
		}
		if cf.PageSize != 8192 {
			t.Errorf("expected page_size 8192, got %d", cf.PageSize)
		}
		if cf.Jobs != 8 {
			t.Errorf("expected jobs 8, got %d", cf.Jobs)
		}
	})

	t.Run("distinguishes unset from explicitly empty map_file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		unset := filepath.Join(dir, "unset.yaml")
		if err := os.WriteFile(unset, []byte("jobs: 2\n"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		cf, err := LoadConfigFile(unset)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.MapFile != nil {
			t.Errorf("expected nil map_file when key absent, got %q", *cf.MapFile)
		}

		empty := filepath.Join(dir, "empty.yaml")
		if err := os.WriteFile(empty, []byte("map_file: \"\"\n"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		cf, err = LoadConfigFile(empty)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.MapFile == nil || *cf.MapFile != "" {
			t.Errorf("expected explicitly empty map_file, got %v", cf.MapFile)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed YAML returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("jobs: [not an int"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

// TestFindConfigFile tests configuration file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("jobs: 1\n"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "missing.yaml")
		if got := FindConfigFile(missing); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})
}
