// Package shoebox opens a Photos library store read-only and exposes its
// object model: assets, albums, folders, people, faces, keywords, and
// shared albums, with a declarative query layer on top.
package shoebox

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shoebox/internal/index"
	"github.com/mesh-intelligence/shoebox/internal/loader"
	"github.com/mesh-intelligence/shoebox/internal/paths"
	"github.com/mesh-intelligence/shoebox/internal/query"
	"github.com/mesh-intelligence/shoebox/internal/schema"
	"github.com/mesh-intelligence/shoebox/internal/sqlite"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// Option configures Open.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	scratchDir string
}

// WithLogger routes the library's structured logs to the given logger.
// The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithScratchDir places the fallback store copy under dir instead of the
// system temp directory.
func WithScratchDir(dir string) Option {
	return func(o *options) { o.scratchDir = dir }
}

// Library is a fully loaded, read-only view of one Photos store. All views
// are safe for concurrent use once Open returns.
type Library struct {
	conn    *sqlite.Conn
	version schema.Version
	res     *loader.Result
	ix      *index.Index
	engine  *query.Engine
	diags   []types.Diagnostic
	log     *zap.Logger

	summaryMu sync.Mutex
	summary   map[string]int
}

// Open loads the library at path, which may be the store file itself or a
// `.photoslibrary` bundle directory. Everything is loaded eagerly; a fatal
// error during any phase closes the connection and returns no model.
func Open(path string, opts ...Option) (*Library, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = zap.NewNop()
	}

	storePath, err := paths.ResolveStorePath(path)
	if err != nil {
		return nil, err
	}

	conn, err := sqlite.Open(storePath, sqlite.Options{
		ScratchDir: o.scratchDir,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	version, err := schema.Detect(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	log.Info("store opened",
		zap.String("path", storePath),
		zap.String("version", version.String()))

	res, err := loader.New(conn, version, log).Load()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("loading store: %w", err)
	}

	ix := index.Build(res)

	lib := &Library{
		conn:    conn,
		version: version,
		res:     res,
		ix:      ix,
		engine:  query.New(conn, version, ix, res.Assets, log),
		log:     log,
	}
	lib.diags = append(lib.diags, res.Diagnostics...)
	lib.diags = append(lib.diags, ix.Diagnostics()...)
	return lib, nil
}

// Version reports the store's schema generation.
func (l *Library) Version() schema.Version {
	return l.version
}

// Assets returns the assets matching the filter in load order. A nil
// filter returns every asset.
func (l *Library) Assets(filter *types.Filter) ([]*types.Asset, error) {
	return l.engine.Select(filter, types.SortNone)
}

// AssetsSorted is Assets with an explicit result ordering.
func (l *Library) AssetsSorted(filter *types.Filter, key types.SortKey) ([]*types.Asset, error) {
	return l.engine.Select(filter, key)
}

// Asset returns the asset with the given UUID, or ErrNotFound.
func (l *Library) Asset(uuid string) (*types.Asset, error) {
	if a, ok := l.ix.AssetByUUID[uuid]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("asset %s: %w", uuid, types.ErrNotFound)
}

// Albums returns every user album, including classic shared albums.
func (l *Library) Albums() []*types.Album {
	return l.res.Albums
}

// Folders returns every folder, root included.
func (l *Library) Folders() []*types.Folder {
	return l.res.Folders
}

// Persons returns every person cluster, the unknown sentinel included.
func (l *Library) Persons() []*types.Person {
	return l.res.Persons
}

// SharedAlbums returns the cloud share records.
func (l *Library) SharedAlbums() []*types.SharedAlbum {
	return l.res.SharedAlbums
}

// Keywords returns the distinct keyword titles, sorted.
func (l *Library) Keywords() []string {
	out := make([]string, 0, len(l.res.Keywords))
	for _, k := range l.res.Keywords {
		out = append(out, k.Title)
	}
	sort.Strings(out)
	return out
}

// KeywordAssets returns the UUIDs of assets tagged with the keyword.
func (l *Library) KeywordAssets(title string) []string {
	return l.ix.KeywordAsset[types.NormalizeUnicode(title)]
}

// ManualUnnamedFaces returns faces drawn by hand that were never linked
// to a person.
func (l *Library) ManualUnnamedFaces() []*types.Face {
	var out []*types.Face
	for _, f := range l.res.Faces {
		if f.State == types.FaceManualUnnamed {
			out = append(out, f)
		}
	}
	return out
}

// AlbumSummary returns album title -> resolved member count. Albums that
// share a title contribute to the same entry. The map is computed once and
// shared; callers must not modify it.
func (l *Library) AlbumSummary() map[string]int {
	l.summaryMu.Lock()
	defer l.summaryMu.Unlock()

	if l.summary == nil {
		l.summary = make(map[string]int, len(l.res.Albums))
		for _, a := range l.res.Albums {
			n := 0
			for _, m := range a.Members {
				if !m.Unresolved {
					n++
				}
			}
			l.summary[a.Title] += n
		}
	}
	return l.summary
}

// Diagnostics returns every non-fatal finding recorded while loading and
// indexing the store.
func (l *Library) Diagnostics() []types.Diagnostic {
	return l.diags
}

// Close releases the store connection and any scratch copy. Idempotent;
// views built before Close stay readable, only store-backed queries fail.
func (l *Library) Close() error {
	return l.conn.Close()
}
