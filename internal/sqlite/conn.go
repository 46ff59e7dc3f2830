// Package sqlite provides scoped, read-only access to a Photos library store.
//
// All store access in the engine funnels through a single Conn and its
// Execute primitive; no other package opens its own connection. The store is
// opened read-only by URI mode where possible, and copied to a scratch
// location when the live application holds it exclusively.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// Conn is a read-only connection to a store file. It is safe for concurrent
// queries after Open returns; Close is idempotent and releases the scratch
// copy if one was made.
type Conn struct {
	mu      sync.Mutex
	db      *sql.DB
	path    string // store file actually opened (original or scratch copy)
	scratch string // scratch directory, "" when the original opened cleanly
	closed  bool
	log     *zap.Logger
}

// Options tunes how the store is opened.
type Options struct {
	// ScratchDir receives the fallback copy of a locked store. Defaults to
	// the system temp directory.
	ScratchDir string
	// Logger receives open/close and fallback events. Defaults to a nop
	// logger.
	Logger *zap.Logger
}

// Open opens the store at path read-only. If the direct read-only open fails
// (the live application can hold the store exclusively, or a WAL file may be
// unreadable), the store and its -wal/-shm side files are copied to a scratch
// directory and the copy is opened instead. Both paths failing is fatal:
// types.ErrStoreUnavailable.
func Open(path string, opts Options) (*Conn, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrStoreUnavailable, path, err)
	}

	db, err := openReadOnly(path)
	if err == nil {
		log.Debug("store opened read-only", zap.String("path", path))
		return &Conn{db: db, path: path, log: log}, nil
	}
	log.Warn("direct read-only open failed, copying store to scratch",
		zap.String("path", path), zap.Error(err))

	scratch, copyPath, copyErr := copyToScratch(path, opts.ScratchDir)
	if copyErr != nil {
		return nil, fmt.Errorf("%w: %s: direct open failed (%v) and scratch copy failed (%v)",
			types.ErrStoreUnavailable, path, err, copyErr)
	}

	db, err = openReadOnly(copyPath)
	if err != nil {
		os.RemoveAll(scratch)
		return nil, fmt.Errorf("%w: %s: scratch copy unreadable: %v",
			types.ErrStoreUnavailable, path, err)
	}

	log.Debug("store opened from scratch copy", zap.String("copy", copyPath))
	return &Conn{db: db, path: copyPath, scratch: scratch, log: log}, nil
}

// openReadOnly opens a store file with mode=ro and verifies it is actually
// queryable. sql.Open alone does not touch the file, so the probe matters.
func openReadOnly(path string) (*sql.DB, error) {
	dsn := "file:" + path + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	var n int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("probing store: %w", err)
	}
	return db, nil
}

// copyToScratch copies the store and its WAL side files to a fresh scratch
// directory. Missing side files are not an error; a missing main file is.
func copyToScratch(path, scratchBase string) (scratchDir, copyPath string, err error) {
	scratchDir, err = os.MkdirTemp(scratchBase, "shoebox-store-")
	if err != nil {
		return "", "", err
	}

	base := filepath.Base(path)
	copyPath = filepath.Join(scratchDir, base)
	if err := copyFile(path, copyPath); err != nil {
		os.RemoveAll(scratchDir)
		return "", "", err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		src := path + suffix
		if _, statErr := os.Stat(src); statErr != nil {
			continue
		}
		if err := copyFile(src, copyPath+suffix); err != nil {
			os.RemoveAll(scratchDir)
			return "", "", err
		}
	}
	return scratchDir, copyPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Execute runs a query against the store and returns its rows. This is the
// single query primitive every loader and the query engine use. The caller
// must close the returned rows.
func (c *Conn) Execute(query string, args ...any) (*sql.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, types.ErrClosed
	}
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return rows, nil
}

// QueryRow runs a single-row probe. Scan on the returned row surfaces errors.
func (c *Conn) QueryRow(query string, args ...any) *sql.Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.QueryRow(query, args...)
}

// Path returns the path of the store file actually being read (the scratch
// copy when the fallback was taken).
func (c *Conn) Path() string { return c.path }

// Scratch reports whether the connection reads a scratch copy.
func (c *Conn) Scratch() bool { return c.scratch != "" }

// Close releases the connection and removes the scratch copy if one was
// made. Close is idempotent and runs on every engine exit path, including
// construction failure.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	err := c.db.Close()
	if c.scratch != "" {
		if rmErr := os.RemoveAll(c.scratch); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}
