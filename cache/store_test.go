package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zainokta/spectrum/logger"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestRememberHitsAndMisses(t *testing.T) {
	dir := t.TempDir()
	src := writeTempFile(t, dir, "handler.go", "package demo")

	store := NewStore(filepath.Join(dir, "cache"), &logger.NoOpLogger{})

	calls := 0
	compute := func() (string, error) {
		calls++
		return "computed-value", nil
	}

	v1, err := Remember(store, "route:/users", []string{src}, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1 != "computed-value" || calls != 1 {
		t.Fatalf("expected first call to compute, got value=%q calls=%d", v1, calls)
	}

	v2, err := Remember(store, "route:/users", []string{src}, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2 != "computed-value" || calls != 1 {
		t.Fatalf("expected second call to hit cache without recomputing, calls=%d", calls)
	}

	stats := store.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %+v", stats)
	}
}

func TestRememberInvalidatesOnFileChange(t *testing.T) {
	dir := t.TempDir()
	src := writeTempFile(t, dir, "handler.go", "package demo")

	store := NewStore(filepath.Join(dir, "cache"), &logger.NoOpLogger{})

	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	if _, err := Remember(store, "route:/users", []string{src}, compute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeTempFile(t, dir, "handler.go", "package demo // changed")

	if _, err := Remember(store, "route:/users", []string{src}, compute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Fatalf("expected recompute after file content changed, calls=%d", calls)
	}
}

func TestInvalidateFileCascades(t *testing.T) {
	dir := t.TempDir()
	src := writeTempFile(t, dir, "handler.go", "package demo")

	store := NewStore(filepath.Join(dir, "cache"), &logger.NoOpLogger{})

	if _, err := Remember(store, "route:/a", []string{src}, func() (string, error) { return "a", nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Remember(store, "route:/b", []string{src}, func() (string, error) { return "b", nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invalidated := store.InvalidateFile(src)
	if len(invalidated) != 2 {
		t.Fatalf("expected both entries invalidated, got %v", invalidated)
	}

	calls := 0
	if _, err := Remember(store, "route:/a", []string{src}, func() (string, error) { calls++; return "a2", nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatal("expected route:/a to recompute after cascading invalidation")
	}
}

func TestClearRemovesDiskEntries(t *testing.T) {
	dir := t.TempDir()
	src := writeTempFile(t, dir, "handler.go", "package demo")
	cacheDir := filepath.Join(dir, "cache")

	store := NewStore(cacheDir, &logger.NoOpLogger{})
	if _, err := Remember(store, "route:/a", []string{src}, func() (string, error) { return "a", nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("unexpected error clearing cache: %v", err)
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatalf("unexpected error reading cache dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected cache directory to be empty, found %d entries", len(entries))
	}
	if store.Stats().Entries != 0 {
		t.Fatal("expected in-memory entries to be cleared")
	}
}
