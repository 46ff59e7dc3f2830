package types

import "time"

// DefaultTimestamp is the sentinel value recorded for an asset whose stored
// timestamp is null or undecodable. The load succeeds and the asset stays
// present; only its date degrades to this value.
var DefaultTimestamp = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Location is a decoded latitude/longitude pair. The store's missing-location
// marker (-180/-180) is mapped to a nil *Location, never to this struct.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Asset is a single photo or video reconstructed from the store.
//
// UUID is globally unique and immutable for the asset's lifetime. PK is the
// store-local numeric key; it is only meaningful for the store generation it
// was loaded from and must never be persisted across loads.
type Asset struct {
	UUID             string
	PK               int64
	Filename         string
	OriginalFilename string
	Directory        string
	Title            string

	Date         time.Time // creation date, zone-resolved
	ModDate      time.Time
	AddedDate    time.Time
	TrashedDate  time.Time
	TimezoneName string // named zone if the store carried one, else ""
	TZOffsetSec  int    // seconds east of UTC actually applied

	Height      int64
	Width       int64
	Orientation int64
	SizeBytes   int64
	UTI         string

	Favorite       bool
	Hidden         bool
	Trashed        bool
	Missing        bool
	Burst          bool
	BurstUUID      string
	Live           bool
	Screenshot     bool
	Raw            bool
	HDR            bool
	Portrait       bool
	Shared         bool
	HasAdjustments bool

	Location *Location
}

// Path returns the library-relative path of the asset's original file, or ""
// when the directory is unknown.
func (a *Asset) Path() string {
	if a.Directory == "" || a.Filename == "" {
		return ""
	}
	return a.Directory + "/" + a.Filename
}
