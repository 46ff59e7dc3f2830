package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveStorePath_File(t *testing.T) {
	tmpDir := t.TempDir()
	storeFile := filepath.Join(tmpDir, "Photos.sqlite")
	if err := os.WriteFile(storeFile, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveStorePath(storeFile)
	if err != nil {
		t.Fatalf("ResolveStorePath failed: %v", err)
	}
	if got != storeFile {
		t.Errorf("got %q, want %q", got, storeFile)
	}
}

func TestResolveStorePath_ModernBundle(t *testing.T) {
	tmpDir := t.TempDir()
	dbDir := filepath.Join(tmpDir, "database")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		t.Fatal(err)
	}
	modern := filepath.Join(dbDir, ModernStoreName)
	if err := os.WriteFile(modern, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A legacy store alongside must not win.
	if err := os.WriteFile(filepath.Join(dbDir, LegacyStoreName), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveStorePath(tmpDir)
	if err != nil {
		t.Fatalf("ResolveStorePath failed: %v", err)
	}
	if got != modern {
		t.Errorf("got %q, want modern store %q", got, modern)
	}
}

func TestResolveStorePath_LegacyBundle(t *testing.T) {
	tmpDir := t.TempDir()
	dbDir := filepath.Join(tmpDir, "database")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		t.Fatal(err)
	}
	legacy := filepath.Join(dbDir, LegacyStoreName)
	if err := os.WriteFile(legacy, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveStorePath(tmpDir)
	if err != nil {
		t.Fatalf("ResolveStorePath failed: %v", err)
	}
	if got != legacy {
		t.Errorf("got %q, want legacy store %q", got, legacy)
	}
}

func TestResolveStorePath_Missing(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := ResolveStorePath(filepath.Join(tmpDir, "nope")); err == nil {
		t.Error("expected error for nonexistent path")
	}

	// Bundle directory with no database dir at all.
	if _, err := ResolveStorePath(tmpDir); err == nil {
		t.Error("expected error for bundle without store")
	}
}
