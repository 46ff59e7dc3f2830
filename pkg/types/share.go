package types

import "time"

// SharedAlbum is a share scope reconstructed from the store's generic share
// table. ScopeType is the entity-type discriminator distinguishing what kind
// of share the row represents (moment share vs. shared library); rows of
// either kind live in the same table.
type SharedAlbum struct {
	UUID      string
	PK        int64
	Title     string
	ScopeType int64
	Trashed   bool

	CreationDate time.Time
	ExpiryDate   time.Time

	// AssetUUIDs is the resolved membership. Empty with Degraded set means
	// every candidate join strategy came back empty while share rows exist.
	AssetUUIDs []string

	// Strategy names the join strategy whose result was accepted, for
	// auditing when a new store generation breaks the ordering. Empty when
	// membership resolution degraded.
	Strategy string

	// Degraded is set when membership could not be resolved by any strategy.
	Degraded bool
}
