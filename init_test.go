package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirlanci/FuncSelector/internal/config"
)

func TestRunInitWritesDefault(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "funcselector.toml")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"init", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, config.DefaultTOML()) {
		t.Error("written file differs from the default configuration")
	}
	if !strings.Contains(stderr.String(), "wrote default configuration to "+path) {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}

	// The written file must load back to the defaults.
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Unsafe.CountTerminated || len(cfg.Categories) == 0 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestRunInitRefusesOverwrite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "funcselector.toml")
	if err := os.WriteFile(path, []byte("[unsafe]\ncount_terminated = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	err := run([]string{"init", path}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "count_terminated = false") {
		t.Error("existing file should be preserved")
	}

	if err := run([]string{"init", "--force", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run --force: %v", err)
	}
	data, _ = os.ReadFile(path)
	if !bytes.Equal(data, config.DefaultTOML()) {
		t.Error("--force should overwrite with the default configuration")
	}
}

func TestRunInitDryRun(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "funcselector.toml")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"init", "--dry-run", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.String() != string(config.DefaultTOML()) {
		t.Error("dry run should print the default configuration")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("dry run should not create the file")
	}
}

func TestRunInitIgnoresBrokenConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("[scan\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	args := []string{"--config", broken, "init", filepath.Join(dir, "fresh.toml")}
	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("init should not load the current config: %v", err)
	}
}

func TestRunInitQuiet(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "funcselector.toml")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-q", "init", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("expected no output with -q, got %q", stderr.String())
	}
}
