package types

// AlbumMember is one asset's membership in an album, carrying the explicit
// user-visible sort position. Default row order from the store is not
// guaranteed to match what the user sees.
type AlbumMember struct {
	AssetUUID string
	SortOrder int64

	// Unresolved is set when the membership row referenced an asset that was
	// never loaded. The entry is kept, never silently dropped.
	Unresolved bool
}

// Album is a user album. Titles are Unicode-normalized (NFC) at load time;
// skipping normalization silently creates duplicate albums downstream.
type Album struct {
	UUID     string
	PK       int64
	Title    string
	ParentPK int64 // pk of the containing folder, 0 if top-level
	Trashed  bool

	// CloudLocalState distinguishes local-only albums from synced ones.
	CloudLocalState int64
	CloudOwner      string // hashed owner id for albums shared into this library

	Members []AlbumMember

	// FolderPath is the titles of the enclosing folders, outermost first.
	// Empty when the parent chain was cyclic (recorded as a diagnostic).
	FolderPath []string
}

// Shared reports whether the album was shared into this library by another
// user (classic shared album).
func (a *Album) Shared() bool { return a.CloudOwner != "" }

// Folder is a node in the folder tree. The tree is acyclic by construction:
// a cycle found while resolving parent chains fails the chain, not the load.
type Folder struct {
	UUID     string
	PK       int64
	Title    string
	ParentPK int64 // 0 for the root folder

	ChildFolderPKs []int64
	ChildAlbumPKs  []int64
}
