// End-to-end tests over the standard fixture: every schema generation is
// opened through the public facade and its object model checked.
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shoebox/internal/fixture"
	"github.com/mesh-intelligence/shoebox/internal/schema"
	"github.com/mesh-intelligence/shoebox/pkg/shoebox"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

func TestLibrary_AllGenerations(t *testing.T) {
	for _, v := range schema.Versions() {
		t.Run(v.String(), func(t *testing.T) {
			lib := openLibrary(t, buildLibrary(t, v, fixture.Standard()))

			require.Equal(t, v, lib.Version())

			assets, err := lib.Assets(nil)
			require.NoError(t, err)
			assert.Len(t, assets, 6)
			assert.Len(t, lib.Albums(), 3)
			assert.Len(t, lib.Persons(), 2)
			assert.Len(t, lib.SharedAlbums(), 1)
			assert.Equal(t, []string{"Beach", "City"}, lib.Keywords())
		})
	}
}

// Every cross-reference resolves to a loaded record: member UUIDs, face
// asset/person links, keyword targets.
func TestLibrary_ReferentialIntegrity(t *testing.T) {
	for _, v := range schema.Versions() {
		t.Run(v.String(), func(t *testing.T) {
			checkReferentialIntegrity(t, v)
		})
	}
}

func checkReferentialIntegrity(t *testing.T, v schema.Version) {
	lib := openLibrary(t, buildLibrary(t, v, fixture.Standard()))

	assets, err := lib.Assets(nil)
	require.NoError(t, err)
	known := make(map[string]bool, len(assets))
	for _, a := range assets {
		known[a.UUID] = true
	}

	for _, album := range lib.Albums() {
		for _, m := range album.Members {
			assert.False(t, m.Unresolved, "album %s member %s", album.Title, m.AssetUUID)
			assert.True(t, known[m.AssetUUID], "album %s member %s", album.Title, m.AssetUUID)
		}
	}
	for _, title := range lib.Keywords() {
		for _, uuid := range lib.KeywordAssets(title) {
			assert.True(t, known[uuid], "keyword %s asset %s", title, uuid)
		}
	}
	for _, share := range lib.SharedAlbums() {
		for _, uuid := range share.AssetUUIDs {
			assert.True(t, known[uuid], "share %s asset %s", share.Title, uuid)
		}
	}

	for _, d := range lib.Diagnostics() {
		assert.NotEqual(t, types.DiagReferentialInconsistency, d.Kind,
			"unexpected inconsistency: %+v", d)
	}
}

// Loading the same fixture twice yields identical entity counts.
func TestLibrary_Determinism(t *testing.T) {
	path := buildLibrary(t, schema.V8, fixture.Standard())

	first := openLibrary(t, path)
	second := openLibrary(t, path)

	assert.Equal(t, len(first.Albums()), len(second.Albums()))
	assert.Equal(t, len(first.Persons()), len(second.Persons()))
	assert.Equal(t, first.Keywords(), second.Keywords())
	assert.Equal(t, len(first.SharedAlbums()), len(second.SharedAlbums()))
	assert.Equal(t, first.AlbumSummary(), second.AlbumSummary())
}

// The folder graph is a bounded tree: every album path terminates and no
// cycle diagnostics appear for a well-formed store.
func TestLibrary_FolderGraphAcyclic(t *testing.T) {
	lib := openLibrary(t, buildLibrary(t, schema.V9, fixture.Standard()))

	for _, album := range lib.Albums() {
		require.NotNil(t, album.FolderPath, "album %s path unresolved", album.Title)
		assert.Less(t, len(album.FolderPath), len(lib.Folders()),
			"path longer than the folder count is impossible without a cycle")
	}
	for _, d := range lib.Diagnostics() {
		assert.NotEqual(t, types.DiagFolderCycle, d.Kind)
	}
}

func TestLibrary_AlbumSummary(t *testing.T) {
	lib := openLibrary(t, buildLibrary(t, schema.V10, fixture.Standard()))

	assert.Equal(t, map[string]int{
		"Vacation": 2,
		"Misc":     1,
		"Family":   2,
	}, lib.AlbumSummary())
}

func TestLibrary_QuerySemantics(t *testing.T) {
	lib := openLibrary(t, buildLibrary(t, schema.V8, fixture.Standard()))

	// Values within one field are alternatives.
	assets, err := lib.Assets(&types.Filter{Keywords: []string{"Beach", "City"}})
	require.NoError(t, err)
	assert.Len(t, assets, 3)

	// Distinct fields must all hold.
	assets, err = lib.Assets(&types.Filter{
		Keywords: []string{"Beach"},
		Persons:  []string{"Maria Soto"},
	})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, fixture.AssetBeach1, assets[0].UUID)
}

func TestLibrary_NullTimestampAssetPresent(t *testing.T) {
	lib := openLibrary(t, buildLibrary(t, schema.V7, fixture.Standard()))

	a, err := lib.Asset(fixture.AssetNoDate)
	require.NoError(t, err)
	assert.True(t, a.Date.Equal(types.DefaultTimestamp))

	kinds := make(map[types.DiagnosticKind]int)
	for _, d := range lib.Diagnostics() {
		kinds[d.Kind]++
	}
	assert.Equal(t, 1, kinds[types.DiagInvalidTimestamp])
}

// A share reachable only through the cloud-master indirection resolves via
// the lower-priority strategy, not the empty direct FK.
func TestLibrary_ShareStrategyFallback(t *testing.T) {
	spec := fixture.Standard()
	for i := range spec.Assets {
		if spec.Assets[i].UUID == fixture.AssetShared {
			spec.Assets[i].MomentSharePK = 0
			spec.Assets[i].CloudMasterPK = 601
		}
	}
	spec.CloudMasters = []fixture.CloudMaster{{PK: 601, MomentSharePK: fixture.SharePK}}

	lib := openLibrary(t, buildLibrary(t, schema.V6, spec))

	require.Len(t, lib.SharedAlbums(), 1)
	share := lib.SharedAlbums()[0]
	assert.Equal(t, "cloud-master-indirect", share.Strategy)
	assert.Equal(t, []string{fixture.AssetShared}, share.AssetUUIDs)
	assert.False(t, share.Degraded)
}

func TestLibrary_LegacyStoreRejected(t *testing.T) {
	path := buildLibrary(t, schema.V5, fixture.Spec{ModelVersion: 12000})

	_, err := shoebox.Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnsupportedSchemaVersion)
}
