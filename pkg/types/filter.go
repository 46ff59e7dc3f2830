package types

import "time"

// Filter is the declarative asset predicate evaluated by the query engine.
//
// Multiple values within one field are OR'd; distinct non-empty fields are
// AND'd. A nil or zero Filter matches every asset.
type Filter struct {
	// Membership fields. UUIDs is eligible for pushdown to the store.
	UUIDs    []string
	Keywords []string
	Persons  []string
	Albums   []string // album titles

	// NamePatterns are shell-style patterns matched against the filename and
	// the original filename.
	NamePatterns []string

	// Boolean flags. nil means "don't care".
	Favorite   *bool
	Hidden     *bool
	Missing    *bool
	Burst      *bool
	Live       *bool
	Screenshot *bool
	Raw        *bool
	HDR        *bool
	Portrait   *bool
	Shared     *bool
	Trashed    *bool

	// Date range over the asset creation date. Either side may be nil.
	FromDate *time.Time
	ToDate   *time.Time

	// Predicates are opaque custom predicates, each of which must hold.
	Predicates []func(*Asset) bool
}

// IsZero reports whether the filter constrains nothing.
func (f *Filter) IsZero() bool {
	if f == nil {
		return true
	}
	return len(f.UUIDs) == 0 && len(f.Keywords) == 0 && len(f.Persons) == 0 &&
		len(f.Albums) == 0 && len(f.NamePatterns) == 0 &&
		f.Favorite == nil && f.Hidden == nil && f.Missing == nil &&
		f.Burst == nil && f.Live == nil && f.Screenshot == nil &&
		f.Raw == nil && f.HDR == nil && f.Portrait == nil &&
		f.Shared == nil && f.Trashed == nil &&
		f.FromDate == nil && f.ToDate == nil && len(f.Predicates) == 0
}

// SortKey selects an explicit result ordering. The default is load order.
type SortKey int

const (
	SortNone SortKey = iota // stable load order
	SortFilename
	SortDate
)
