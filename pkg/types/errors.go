package types

import "errors"

// Fatal errors: these abort library construction before any record is
// exposed. A caller never observes a half-built model.
var (
	// ErrUnsupportedSchemaVersion indicates the store's model version does
	// not match any known schema generation.
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")

	// ErrStoreUnavailable indicates the store file is absent or could not be
	// opened, even via a scratch copy.
	ErrStoreUnavailable = errors.New("store missing or locked")
)

// Recoverable errors: these affect a single record or lookup, never the
// whole load.
var (
	// ErrCycleDetected indicates a folder parent chain loops back on itself.
	// It fails the individual chain, not the load.
	ErrCycleDetected = errors.New("cycle in folder hierarchy")

	// ErrNotFound indicates a lookup by UUID or key matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrClosed indicates an operation on a closed library.
	ErrClosed = errors.New("library is closed")
)
