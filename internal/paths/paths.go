// Package paths resolves Photos library locations to the concrete store file
// inside the bundle. The store path differs by library generation: legacy
// bundles keep a flat database/photos.db, modern bundles a nested
// database/Photos.sqlite.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store file names inside a library bundle's database directory.
const (
	ModernStoreName = "Photos.sqlite"
	LegacyStoreName = "photos.db"

	databaseDir = "database"
)

// ResolveStorePath maps a user-supplied library path to the store file.
//
// A path to an existing regular file is returned as-is (the caller may point
// directly at a store file, or at a copy made elsewhere). A directory is
// treated as a library bundle: the modern nested store wins when present,
// otherwise the legacy flat store is returned and schema detection rejects it
// with the legacy-format error downstream.
func ResolveStorePath(libraryPath string) (string, error) {
	info, err := os.Stat(libraryPath)
	if err != nil {
		return "", fmt.Errorf("resolving library path %s: %w", libraryPath, err)
	}

	if !info.IsDir() {
		return libraryPath, nil
	}

	modern := filepath.Join(libraryPath, databaseDir, ModernStoreName)
	if _, err := os.Stat(modern); err == nil {
		return modern, nil
	}

	legacy := filepath.Join(libraryPath, databaseDir, LegacyStoreName)
	if _, err := os.Stat(legacy); err == nil {
		return legacy, nil
	}

	return "", fmt.Errorf("no store file found under %s", filepath.Join(libraryPath, databaseDir))
}

// DefaultLibraryPath returns the conventional location of the system photo
// library for the current user, or "" when it cannot be determined. The CLI
// uses this as a last-resort default; the engine itself never guesses.
func DefaultLibraryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Pictures", "Photos Library.photoslibrary")
}
