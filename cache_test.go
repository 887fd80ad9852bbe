package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirlanci/FuncSelector/internal/config"
	"github.com/sirlanci/FuncSelector/internal/discover"
)

// backdate moves the mtime of paths an hour into the past so a cache written
// afterwards is considered fresh for them.
func backdate(t *testing.T, paths ...string) {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	for _, p := range paths {
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	flags := summaryFlags{format: formatTOON}
	files := []discover.FileEntry{{Path: "a.rs"}, {Path: "b.rs"}}

	base, err := cacheKey(cfg, flags, "/repo", files)
	if err != nil {
		t.Fatalf("cacheKey: %v", err)
	}

	reordered, _ := cacheKey(cfg, flags, "/repo", []discover.FileEntry{{Path: "b.rs"}, {Path: "a.rs"}})
	if reordered != base {
		t.Error("key should not depend on file order")
	}

	tests := []struct {
		name  string
		flags summaryFlags
		root  string
		files []discover.FileEntry
	}{
		{"other root", flags, "/other", files},
		{"file added", flags, "/repo", append(append([]discover.FileEntry{}, files...), discover.FileEntry{Path: "c.rs"})},
		{"file removed", flags, "/repo", files[:1]},
		{"file renamed", flags, "/repo", []discover.FileEntry{{Path: "a.rs"}, {Path: "c.rs"}}},
		{"format", summaryFlags{format: formatYAML}, "/repo", files},
		{"top", summaryFlags{format: formatTOON, top: 3}, "/repo", files},
		{"no tests", summaryFlags{format: formatTOON, noTests: true}, "/repo", files},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := cacheKey(cfg, tt.flags, tt.root, tt.files)
			if err != nil {
				t.Fatalf("cacheKey: %v", err)
			}
			if got == base {
				t.Errorf("key unchanged for %s", tt.name)
			}
		})
	}
}

func TestRunSummaryCacheSwitchTarget(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	one := writeTestFile(t, dir, "one.rs", "fn alpha() { unsafe { a(); } }\n")
	two := writeTestFile(t, dir, "two.rs", "fn beta() { unsafe { b(); } }\n")
	backdate(t, one, two)
	cachePath := filepath.Join(t.TempDir(), "summary.cache")

	var first, stderr bytes.Buffer
	if err := run([]string{"summary", "--cache", cachePath, one}, &first, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}
	if !strings.Contains(first.String(), "alpha") {
		t.Fatalf("expected alpha:\n%s", first.String())
	}

	var second bytes.Buffer
	if err := run([]string{"summary", "--cache", cachePath, two}, &second, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}
	out := second.String()
	if strings.Contains(out, "alpha") || !strings.Contains(out, "beta") {
		t.Errorf("second target served from the first target's cache:\n%s", out)
	}
}

func TestRunSummaryCacheFileAdded(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	old := writeTestFile(t, dir, "old.rs", "fn alpha() {}\n")
	backdate(t, old)
	cachePath := filepath.Join(t.TempDir(), "summary.cache")

	var first, stderr bytes.Buffer
	if err := run([]string{"summary", "--cache", cachePath, dir}, &first, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	// A file appearing with an mtime older than the cache must still count.
	added := writeTestFile(t, dir, "added.rs", "fn beta() {}\n")
	backdate(t, added)

	var second bytes.Buffer
	if err := run([]string{"summary", "--cache", cachePath, dir}, &second, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}
	out := second.String()
	if !strings.Contains(out, "files: 2") || !strings.Contains(out, "beta") {
		t.Errorf("added file missing from summary:\n%s", out)
	}
}
