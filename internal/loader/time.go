package loader

import (
	"database/sql"
	"time"

	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// The store counts seconds from 2001-01-01 UTC; Unix time counts from
// 1970-01-01. The delta is fixed across all supported generations.
const storeEpochDelta int64 = 978307200

// resolveZone applies the timezone fallback chain: explicit named zone, then
// explicit numeric offset, then UTC. A name that fails to load falls through
// to the next link rather than erroring.
func resolveZone(name sql.NullString, offsetSec sql.NullInt64) (*time.Location, string, int) {
	if name.Valid && name.String != "" {
		if loc, err := time.LoadLocation(name.String); err == nil {
			off := 0
			if offsetSec.Valid {
				off = int(offsetSec.Int64)
			}
			return loc, name.String, off
		}
	}
	if offsetSec.Valid {
		off := int(offsetSec.Int64)
		return time.FixedZone("", off), "", off
	}
	return time.UTC, "", 0
}

// storeTime converts a store timestamp to a zoned time. ok is false when the
// value is null or undecodable; the caller substitutes the default sentinel
// and records a diagnostic instead of failing the row.
func storeTime(ts sql.NullFloat64, loc *time.Location) (t time.Time, ok bool) {
	if !ts.Valid {
		return types.DefaultTimestamp, false
	}
	sec := int64(ts.Float64)
	nsec := int64((ts.Float64 - float64(sec)) * 1e9)
	unix := sec + storeEpochDelta
	// Reject timestamps that cannot be real capture dates (before the Unix
	// epoch or absurdly far in the future); these show up in damaged rows.
	if unix < 0 || unix > 1<<33 {
		return types.DefaultTimestamp, false
	}
	return time.Unix(unix, nsec).In(loc), true
}

// optionalStoreTime is storeTime for secondary dates (modification, added,
// trashed) where a null is ordinary and needs no diagnostic: the zero time
// stands for "not set".
func optionalStoreTime(ts sql.NullFloat64, loc *time.Location) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	t, ok := storeTime(ts, loc)
	if !ok {
		return time.Time{}
	}
	return t
}
