package loader

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shoebox/internal/schema"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// joinStrategy is one candidate relationship path hypothesized to connect
// assets to a share row. The schema's apparent structure does not guarantee
// any single path is right; each candidate is tried in order and validated
// empirically by a non-empty result.
type joinStrategy struct {
	name string
	// applies gates the strategy on the share row's entity-type
	// discriminator and the schema generation.
	applies func(scopeType int64, tm schema.TableMap) bool
	query   func(tm schema.TableMap) string
}

// shareStrategies is the priority-ordered candidate list. The first strategy
// returning rows wins; the selection is logged for auditing when a new store
// generation breaks the ordering.
var shareStrategies = []joinStrategy{
	{
		name: "asset-moment-share-fk",
		applies: func(scopeType int64, _ schema.TableMap) bool {
			return scopeType == schema.ScopeMomentShare
		},
		query: func(tm schema.TableMap) string {
			return fmt.Sprintf(
				"SELECT %[1]s.ZUUID FROM %[1]s WHERE %[1]s.ZMOMENTSHARE = ? ORDER BY %[1]s.Z_PK",
				tm.AssetTable)
		},
	},
	{
		name: "asset-library-scope-fk",
		applies: func(scopeType int64, tm schema.TableMap) bool {
			return tm.HasLibraryScope && scopeType == schema.ScopeSharedLibrary
		},
		query: func(tm schema.TableMap) string {
			return fmt.Sprintf(
				"SELECT %[1]s.ZUUID FROM %[1]s WHERE %[1]s.ZLIBRARYSCOPE = ? ORDER BY %[1]s.Z_PK",
				tm.AssetTable)
		},
	},
	{
		name: "cloud-master-indirect",
		applies: func(scopeType int64, _ schema.TableMap) bool {
			return scopeType == schema.ScopeMomentShare
		},
		query: func(tm schema.TableMap) string {
			return fmt.Sprintf(
				`SELECT %[1]s.ZUUID FROM %[1]s
				JOIN ZCLOUDMASTER ON %[1]s.ZMASTER = ZCLOUDMASTER.Z_PK
				WHERE ZCLOUDMASTER.ZMOMENTSHARE = ? ORDER BY %[1]s.Z_PK`,
				tm.AssetTable)
		},
	},
}

// loadSharedAlbums loads share rows and resolves their membership through
// the ordered strategy list. A share whose strategies all come back empty is
// reported degraded with a diagnostic, never asserted successful.
func (l *Loader) loadSharedAlbums(res *Result) error {
	rows, err := l.conn.Execute(`SELECT
		Z_PK, ZUUID, ZTITLE, ZSCOPETYPE, ZTRASHEDSTATE, ZCREATIONDATE, ZEXPIRYDATE
		FROM ZSHARE ORDER BY Z_PK`)
	if err != nil {
		return err
	}

	type shareRow struct {
		pk                 int64
		uuid, title        sql.NullString
		scopeType, trashed sql.NullInt64
		creation, expiry   sql.NullFloat64
	}
	var shares []shareRow
	for rows.Next() {
		var s shareRow
		if err := rows.Scan(&s.pk, &s.uuid, &s.title, &s.scopeType, &s.trashed, &s.creation, &s.expiry); err != nil {
			l.diag(types.DiagCorruptRow, fmt.Sprintf("share pk=%d", s.pk), err.Error())
			continue
		}
		shares = append(shares, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, s := range shares {
		share := &types.SharedAlbum{
			UUID:         s.uuid.String,
			PK:           s.pk,
			Title:        types.NormalizeUnicode(s.title.String),
			ScopeType:    s.scopeType.Int64,
			Trashed:      s.trashed.Int64 != 0,
			CreationDate: optionalStoreTime(s.creation, time.UTC),
			ExpiryDate:   optionalStoreTime(s.expiry, time.UTC),
		}

		// Trashed shares keep their record but membership is not resolved.
		if !share.Trashed {
			l.resolveShareMembership(share)
		}
		res.SharedAlbums = append(res.SharedAlbums, share)
	}
	return nil
}

// resolveShareMembership tries each applicable strategy in priority order
// and accepts the first non-empty result.
func (l *Loader) resolveShareMembership(share *types.SharedAlbum) {
	tried := 0
	for _, strat := range shareStrategies {
		if !strat.applies(share.ScopeType, l.tm) {
			continue
		}
		tried++

		uuids, err := l.runShareStrategy(strat, share.PK)
		if err != nil {
			// A failing candidate join (missing column in this generation,
			// for example) counts as empty; later strategies may still work.
			l.log.Debug("share join strategy failed",
				zap.String("strategy", strat.name),
				zap.String("share", share.UUID),
				zap.Error(err))
			continue
		}
		if len(uuids) > 0 {
			share.AssetUUIDs = uuids
			share.Strategy = strat.name
			l.log.Debug("share join strategy selected",
				zap.String("strategy", strat.name),
				zap.String("share", share.UUID),
				zap.Int("assets", len(uuids)))
			return
		}
	}

	if tried > 0 {
		share.Degraded = true
		l.diag(types.DiagAmbiguousJoinPath, share.UUID,
			fmt.Sprintf("all %d applicable join strategies returned empty", tried))
	}
}

func (l *Loader) runShareStrategy(strat joinStrategy, sharePK int64) ([]string, error) {
	rows, err := l.conn.Execute(strat.query(l.tm), sharePK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uuids []string
	for rows.Next() {
		var uuid sql.NullString
		if err := rows.Scan(&uuid); err != nil {
			return nil, err
		}
		if uuid.Valid && uuid.String != "" {
			uuids = append(uuids, uuid.String)
		}
	}
	return uuids, rows.Err()
}
