package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// newTestStore creates a minimal SQLite file with one table and one row.
func newTestStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.sqlite")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE t (v TEXT); INSERT INTO t VALUES ('hello')"); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen_ReadOnly(t *testing.T) {
	path := newTestStore(t)

	c, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	if c.Scratch() {
		t.Error("clean open should not use a scratch copy")
	}

	rows, err := c.Execute("SELECT v FROM t")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	defer rows.Close()

	var v string
	if !rows.Next() {
		t.Fatal("expected one row")
	}
	if err := rows.Scan(&v); err != nil {
		t.Fatal(err)
	}
	if v != "hello" {
		t.Errorf("got %q", v)
	}
}

func TestOpen_RejectsWrites(t *testing.T) {
	path := newTestStore(t)

	c, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	rows, err := c.Execute("INSERT INTO t VALUES ('nope')")
	if rows != nil {
		rows.Close()
	}
	if err == nil {
		t.Error("write through a read-only connection should fail")
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.sqlite"), Options{})
	if !errors.Is(err, types.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestOpen_CorruptFallsThrough(t *testing.T) {
	// Not a SQLite file at all: direct open fails, the scratch copy is made
	// and fails too, and the combined failure is ErrStoreUnavailable.
	path := filepath.Join(t.TempDir(), "garbage.sqlite")
	if err := os.WriteFile(path, []byte("this is not a database"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path, Options{ScratchDir: t.TempDir()})
	if !errors.Is(err, types.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestConn_CloseIdempotent(t *testing.T) {
	path := newTestStore(t)

	c, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close should not error, got %v", err)
	}

	rows, err := c.Execute("SELECT 1")
	if rows != nil {
		rows.Close()
	}
	if err != types.ErrClosed {
		t.Errorf("Execute after Close: expected ErrClosed, got %v", err)
	}
}

func TestCopyToScratch(t *testing.T) {
	path := newTestStore(t)
	// Fake WAL side file; -shm intentionally absent.
	if err := os.WriteFile(path+"-wal", []byte{}, 0o644); err != nil {
		t.Fatal(err)
	}

	scratch, copyPath, err := copyToScratch(path, t.TempDir())
	if err != nil {
		t.Fatalf("copyToScratch failed: %v", err)
	}
	defer os.RemoveAll(scratch)

	if _, err := os.Stat(copyPath); err != nil {
		t.Errorf("copied store missing: %v", err)
	}
	if _, err := os.Stat(copyPath + "-wal"); err != nil {
		t.Errorf("copied wal missing: %v", err)
	}
	if _, err := os.Stat(copyPath + "-shm"); err == nil {
		t.Error("shm copy should not exist when source had none")
	}
}
