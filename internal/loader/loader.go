// Package loader reconstructs typed records from the raw store. Each entity
// loader turns one or two queries into records; failures that affect a single
// row are recorded as diagnostics and never abort the load, while failures
// that affect every row of an entity are returned as errors.
//
// Load order is fixed: assets first (every other loader references them by
// UUID), then keywords, persons and faces, albums and folders, and finally
// shared albums, which need both asset and share data.
package loader

import (
	"fmt"

	// Stores name IANA zones; embed the zone database so named-zone
	// resolution does not depend on host zoneinfo files.
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shoebox/internal/schema"
	"github.com/mesh-intelligence/shoebox/internal/sqlite"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// Result is the complete output of one load pass. All slices are in load
// order and immutable once Load returns.
type Result struct {
	Version schema.Version

	Assets      []*types.Asset
	AssetByUUID map[string]*types.Asset

	Keywords []*types.Keyword

	Persons []*types.Person
	Faces   []*types.Face

	Albums       []*types.Album
	Folders      []*types.Folder
	RootFolderPK int64

	SharedAlbums []*types.SharedAlbum

	Diagnostics []types.Diagnostic
}

// Loader runs the load pass against one store connection.
type Loader struct {
	conn    *sqlite.Conn
	version schema.Version
	tm      schema.TableMap
	log     *zap.Logger
	diags   []types.Diagnostic
}

// New returns a Loader for the detected schema generation.
func New(conn *sqlite.Conn, version schema.Version, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		conn:    conn,
		version: version,
		tm:      version.TableMap(),
		log:     log,
	}
}

// Load runs every entity loader in dependency order and returns the
// assembled result. An error means the whole load failed; per-row problems
// surface in Result.Diagnostics instead.
func (l *Loader) Load() (*Result, error) {
	res := &Result{Version: l.version}

	if err := l.loadAssets(res); err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	if err := l.loadKeywords(res); err != nil {
		return nil, fmt.Errorf("loading keywords: %w", err)
	}
	if err := l.loadPersonsAndFaces(res); err != nil {
		return nil, fmt.Errorf("loading persons and faces: %w", err)
	}
	if err := l.loadAlbumsAndFolders(res); err != nil {
		return nil, fmt.Errorf("loading albums and folders: %w", err)
	}
	if err := l.loadSharedAlbums(res); err != nil {
		return nil, fmt.Errorf("loading shared albums: %w", err)
	}

	res.Diagnostics = l.diags
	l.log.Info("load pass complete",
		zap.Stringer("version", l.version),
		zap.Int("assets", len(res.Assets)),
		zap.Int("albums", len(res.Albums)),
		zap.Int("folders", len(res.Folders)),
		zap.Int("persons", len(res.Persons)),
		zap.Int("keywords", len(res.Keywords)),
		zap.Int("shared_albums", len(res.SharedAlbums)),
		zap.Int("diagnostics", len(l.diags)))
	return res, nil
}

// diag records one recoverable problem and logs it.
func (l *Loader) diag(kind types.DiagnosticKind, entity, detail string) {
	l.diags = append(l.diags, types.Diagnostic{Kind: kind, Entity: entity, Detail: detail})
	l.log.Debug("load diagnostic",
		zap.String("kind", string(kind)),
		zap.String("entity", entity),
		zap.String("detail", detail))
}
