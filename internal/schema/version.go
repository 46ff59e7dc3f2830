// Package schema detects the store's schema generation and maps it to the
// concrete table and column names every loader needs. Detection is fatal on
// failure and runs before any loader, so partial state is never exposed.
//
// The set of version boundaries is determined empirically from observed
// vendor releases. New generations are added as new Version variants; an
// existing variant is never mutated.
package schema

import (
	"fmt"

	"howett.net/plist"

	"github.com/mesh-intelligence/shoebox/internal/sqlite"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// Version is a tagged variant over known schema generations of the modern
// Core-Data-backed store.
type Version int

const (
	VersionUnknown Version = iota
	V5
	V6
	V7
	V8
	V9
	V10
)

// String returns the generation name.
func (v Version) String() string {
	switch v {
	case V5:
		return "v5"
	case V6:
		return "v6"
	case V7:
		return "v7"
	case V8:
		return "v8"
	case V9:
		return "v9"
	case V10:
		return "v10"
	default:
		return "unknown"
	}
}

// modelRange maps a model-version interval to a generation. Boundaries come
// from observed vendor releases.
type modelRange struct {
	lo, hi  int64
	version Version
}

var modelRanges = []modelRange{
	{13000, 13999, V5},
	{14000, 14999, V6},
	{15000, 15999, V7},
	{16000, 16999, V8},
	{17000, 17999, V9},
	{18000, 18999, V10},
}

// VersionForModel maps a raw model version to its generation, or
// VersionUnknown when no range matches.
func VersionForModel(model int64) Version {
	for _, r := range modelRanges {
		if model >= r.lo && model <= r.hi {
			return r.version
		}
	}
	return VersionUnknown
}

// metadataPlist is the decoded shape of the store's Z_PLIST blob. Only the
// model version matters here; unknown keys are ignored.
type metadataPlist struct {
	ModelVersion int64 `plist:"PLModelVersion"`
}

// Detect determines the store's schema generation.
//
// A modern store carries a Z_METADATA table whose Z_PLIST blob holds the
// model version; a legacy store carries LiGlobals instead and is rejected,
// as is any store whose model version matches no known range. All failures
// wrap types.ErrUnsupportedSchemaVersion and abort construction.
func Detect(conn *sqlite.Conn) (Version, error) {
	tables, err := tableNames(conn)
	if err != nil {
		return VersionUnknown, fmt.Errorf("probing store tables: %w", err)
	}

	if tables["Z_METADATA"] {
		return detectModern(conn)
	}

	if tables["LiGlobals"] {
		var libVersion string
		row := conn.QueryRow("SELECT value FROM LiGlobals WHERE keyPath = 'libraryVersion'")
		if err := row.Scan(&libVersion); err != nil {
			libVersion = "?"
		}
		return VersionUnknown, fmt.Errorf("%w: legacy store (library version %s)",
			types.ErrUnsupportedSchemaVersion, libVersion)
	}

	return VersionUnknown, fmt.Errorf("%w: unrecognized store format",
		types.ErrUnsupportedSchemaVersion)
}

func detectModern(conn *sqlite.Conn) (Version, error) {
	var maxVersion int64
	var blob []byte
	row := conn.QueryRow("SELECT MAX(Z_VERSION), Z_PLIST FROM Z_METADATA")
	if err := row.Scan(&maxVersion, &blob); err != nil {
		return VersionUnknown, fmt.Errorf("%w: reading Z_METADATA: %v",
			types.ErrUnsupportedSchemaVersion, err)
	}

	var meta metadataPlist
	if _, err := plist.Unmarshal(blob, &meta); err != nil {
		return VersionUnknown, fmt.Errorf("%w: decoding metadata plist: %v",
			types.ErrUnsupportedSchemaVersion, err)
	}

	v := VersionForModel(meta.ModelVersion)
	if v == VersionUnknown {
		return VersionUnknown, fmt.Errorf("%w: model version %d matches no known range",
			types.ErrUnsupportedSchemaVersion, meta.ModelVersion)
	}
	return v, nil
}

// tableNames returns the set of user table names in the store.
func tableNames(conn *sqlite.Conn) (map[string]bool, error) {
	rows, err := conn.Execute(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, rows.Err()
}
