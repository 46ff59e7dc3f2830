// Package types defines the version-independent record model reconstructed
// from a Photos library store: assets, albums, folders, persons, faces,
// keywords, and shared albums, plus the query filter and the standard errors
// shared by every component.
//
// Records are built once when a library is opened and are never mutated
// afterward. Consumers treat every exported slice and map as read-only.
package types
