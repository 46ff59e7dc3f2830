// Package integration exercises the full engine end to end: fixture store
// on disk, open, load, index, query.
package integration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shoebox/internal/fixture"
	"github.com/mesh-intelligence/shoebox/internal/schema"
	"github.com/mesh-intelligence/shoebox/pkg/shoebox"
)

// buildLibrary writes a fixture store and returns its path.
func buildLibrary(t *testing.T, v schema.Version, spec fixture.Spec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Photos.sqlite")
	require.NoError(t, fixture.Build(path, v, spec))
	return path
}

// openLibrary opens the store and registers its cleanup.
func openLibrary(t *testing.T, path string) *shoebox.Library {
	t.Helper()
	lib, err := shoebox.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, lib.Close()) })
	return lib
}
