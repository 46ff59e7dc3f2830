// Package query evaluates declarative asset filters over a built index,
// pushing the UUID membership field down to the store when possible.
package query

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shoebox/internal/index"
	"github.com/mesh-intelligence/shoebox/internal/schema"
	"github.com/mesh-intelligence/shoebox/internal/sqlite"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// Engine answers filter queries over the loaded record set. It never
// mutates the index; a single Engine is safe for concurrent use.
type Engine struct {
	conn   *sqlite.Conn
	tm     schema.TableMap
	ix     *index.Index
	assets []*types.Asset // load order
	log    *zap.Logger
}

// New builds an engine over the index. conn may be nil, in which case the
// UUID pushdown is skipped and everything is evaluated in memory; the
// results are identical either way.
func New(conn *sqlite.Conn, version schema.Version, ix *index.Index, assets []*types.Asset, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		conn:   conn,
		tm:     version.TableMap(),
		ix:     ix,
		assets: assets,
		log:    log,
	}
}

// Select returns the assets matching the filter, in load order unless an
// explicit sort key is given. A nil or zero filter matches everything.
func (e *Engine) Select(f *types.Filter, key types.SortKey) ([]*types.Asset, error) {
	candidates := e.assets
	if f != nil && len(f.UUIDs) > 0 && e.conn != nil {
		narrowed, err := e.pushdownUUIDs(f.UUIDs)
		if err != nil {
			return nil, fmt.Errorf("uuid pushdown: %w", err)
		}
		candidates = narrowed
	}

	var out []*types.Asset
	for _, a := range candidates {
		if e.matches(f, a) {
			out = append(out, a)
		}
	}
	sortAssets(out, key)
	return out, nil
}

// pushdownUUIDs narrows the candidate set with a single IN query against
// the store. Values that are not well-formed UUIDs are dropped before the
// query, and the comparison is collated case-insensitively to mirror the
// in-memory UUID check, so pushdown never changes the result.
func (e *Engine) pushdownUUIDs(values []string) ([]*types.Asset, error) {
	valid := make([]any, 0, len(values))
	for _, v := range values {
		if _, err := uuid.Parse(v); err != nil {
			continue
		}
		valid = append(valid, v)
	}
	if len(valid) == 0 {
		return nil, nil
	}

	q := fmt.Sprintf("SELECT ZUUID FROM %s WHERE ZUUID COLLATE NOCASE IN (%s)",
		e.tm.AssetTable, placeholders(len(valid)))
	rows, err := e.conn.Execute(q, valid...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hit := make(map[string]bool, len(valid))
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		hit[u] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	e.log.Debug("uuid pushdown", zap.Int("requested", len(values)), zap.Int("hits", len(hit)))

	// Preserve load order.
	var out []*types.Asset
	for _, a := range e.assets {
		if hit[a.UUID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// matches evaluates the full filter against one asset. Values within a
// field are OR'd, distinct fields AND'd.
func (e *Engine) matches(f *types.Filter, a *types.Asset) bool {
	if f.IsZero() {
		return true
	}

	if len(f.UUIDs) > 0 && !matchUUID(f.UUIDs, a.UUID) {
		return false
	}
	if len(f.Keywords) > 0 && !anyEqualFold(f.Keywords, e.ix.KeywordsOfAsset(a.UUID)) {
		return false
	}
	if len(f.Persons) > 0 && !anyEqualFold(f.Persons, e.personNames(a)) {
		return false
	}
	if len(f.Albums) > 0 && !anyEqualFold(f.Albums, e.albumTitles(a)) {
		return false
	}
	if len(f.NamePatterns) > 0 && !matchName(f.NamePatterns, a) {
		return false
	}

	if !flagMatch(f.Favorite, a.Favorite) ||
		!flagMatch(f.Hidden, a.Hidden) ||
		!flagMatch(f.Missing, a.Missing) ||
		!flagMatch(f.Burst, a.Burst) ||
		!flagMatch(f.Live, a.Live) ||
		!flagMatch(f.Screenshot, a.Screenshot) ||
		!flagMatch(f.Raw, a.Raw) ||
		!flagMatch(f.HDR, a.HDR) ||
		!flagMatch(f.Portrait, a.Portrait) ||
		!flagMatch(f.Shared, a.Shared) ||
		!flagMatch(f.Trashed, a.Trashed) {
		return false
	}

	if f.FromDate != nil && a.Date.Before(*f.FromDate) {
		return false
	}
	if f.ToDate != nil && !a.Date.Before(*f.ToDate) {
		return false
	}

	for _, pred := range f.Predicates {
		if !pred(a) {
			return false
		}
	}
	return true
}

func matchUUID(values []string, assetUUID string) bool {
	for _, v := range values {
		if _, err := uuid.Parse(v); err != nil {
			continue
		}
		if strings.EqualFold(v, assetUUID) {
			return true
		}
	}
	return false
}

func anyEqualFold(wanted, have []string) bool {
	for _, w := range wanted {
		w = types.NormalizeUnicode(w)
		for _, h := range have {
			if strings.EqualFold(w, h) {
				return true
			}
		}
	}
	return false
}

// matchName matches shell-style patterns case-insensitively against both
// the store filename and the original filename.
func matchName(patterns []string, a *types.Asset) bool {
	names := []string{strings.ToLower(a.Filename), strings.ToLower(a.OriginalFilename)}
	for _, p := range patterns {
		p = strings.ToLower(p)
		for _, name := range names {
			if ok, err := path.Match(p, name); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func flagMatch(want *bool, have bool) bool {
	return want == nil || *want == have
}

func (e *Engine) personNames(a *types.Asset) []string {
	var names []string
	for _, f := range e.ix.FacesOfAsset(a.UUID) {
		if f.PersonPK == 0 {
			continue
		}
		if p, ok := e.ix.PersonByPK[f.PersonPK]; ok {
			names = append(names, p.Name)
		}
	}
	return names
}

func (e *Engine) albumTitles(a *types.Asset) []string {
	var titles []string
	for _, album := range e.ix.AlbumsOfAsset(a.UUID) {
		titles = append(titles, album.Title)
	}
	return titles
}

func sortAssets(assets []*types.Asset, key types.SortKey) {
	switch key {
	case types.SortFilename:
		sort.SliceStable(assets, func(i, j int) bool {
			if assets[i].Filename != assets[j].Filename {
				return assets[i].Filename < assets[j].Filename
			}
			return assets[i].UUID < assets[j].UUID
		})
	case types.SortDate:
		sort.SliceStable(assets, func(i, j int) bool {
			if !assets[i].Date.Equal(assets[j].Date) {
				return assets[i].Date.Before(assets[j].Date)
			}
			return assets[i].UUID < assets[j].UUID
		})
	}
}
