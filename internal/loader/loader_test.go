package loader

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mesh-intelligence/shoebox/internal/fixture"
	"github.com/mesh-intelligence/shoebox/internal/schema"
	"github.com/mesh-intelligence/shoebox/internal/sqlite"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// loadFixture builds a fixture store, opens it, and runs a full load pass.
func loadFixture(t *testing.T, v schema.Version, spec fixture.Spec) *Result {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Photos.sqlite")
	if err := fixture.Build(path, v, spec); err != nil {
		t.Fatalf("building fixture: %v", err)
	}

	conn, err := sqlite.Open(path, sqlite.Options{})
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	res, err := New(conn, v, nil).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return res
}

func TestLoad_AssetsAllVersions(t *testing.T) {
	for _, v := range schema.Versions() {
		t.Run(v.String(), func(t *testing.T) {
			res := loadFixture(t, v, fixture.Standard())

			if len(res.Assets) != 6 {
				t.Fatalf("got %d assets, want 6", len(res.Assets))
			}

			beach := res.AssetByUUID[fixture.AssetBeach1]
			if beach == nil {
				t.Fatal("beach asset not loaded")
			}
			if !beach.Favorite {
				t.Error("favorite flag lost")
			}
			if !beach.Portrait {
				t.Error("portrait flag lost")
			}
			if beach.TimezoneName != "America/Los_Angeles" {
				t.Errorf("timezone name = %q", beach.TimezoneName)
			}
			// Store epoch 600000000 is 2020-01-06T10:40:00Z.
			want := time.Date(2020, 1, 6, 10, 40, 0, 0, time.UTC)
			if !beach.Date.Equal(want) {
				t.Errorf("date = %v, want %v", beach.Date.UTC(), want)
			}
			if beach.Location == nil || beach.Location.Latitude != 36.6 {
				t.Errorf("location = %+v", beach.Location)
			}

			live := res.AssetByUUID[fixture.AssetBeach2]
			if !live.Live {
				t.Error("live flag lost")
			}
			if live.Portrait {
				t.Error("zero depth decoded as portrait")
			}
			if live.Location != nil {
				t.Error("null coordinates should map to nil location")
			}
			if live.TimezoneName != "" || live.TZOffsetSec != -28800 {
				t.Errorf("offset-only zone: name=%q offset=%d", live.TimezoneName, live.TZOffsetSec)
			}

			raw := res.AssetByUUID[fixture.AssetCity]
			if !raw.Raw || !raw.Hidden {
				t.Error("raw/hidden flags lost")
			}

			shared := res.AssetByUUID[fixture.AssetShared]
			if !shared.Burst || !shared.Shared {
				t.Error("burst/shared flags lost")
			}

			trashed := res.AssetByUUID[fixture.AssetTrashed]
			if !trashed.Trashed || trashed.TrashedDate.IsZero() {
				t.Error("trashed state lost")
			}
		})
	}
}

func TestLoad_NullTimestampUsesDefault(t *testing.T) {
	res := loadFixture(t, schema.V8, fixture.Standard())

	a := res.AssetByUUID[fixture.AssetNoDate]
	if a == nil {
		t.Fatal("asset with null date must still load")
	}
	if !a.Date.Equal(types.DefaultTimestamp) {
		t.Errorf("date = %v, want default sentinel", a.Date)
	}

	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == types.DiagInvalidTimestamp && d.Entity == fixture.AssetNoDate {
			found = true
		}
	}
	if !found {
		t.Error("expected an invalid-timestamp diagnostic")
	}
}

func TestLoad_CorruptAssetRowSkipped(t *testing.T) {
	spec := fixture.Standard()
	// Asset with no UUID: skipped with a diagnostic, load continues.
	spec.Assets = append(spec.Assets, fixture.Asset{
		PK: 199, Filename: "IMG_9999.JPG", Date: fixture.Float(600000000),
	})

	res := loadFixture(t, schema.V7, spec)
	if len(res.Assets) != 6 {
		t.Errorf("got %d assets, want 6 (corrupt row skipped)", len(res.Assets))
	}

	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == types.DiagCorruptRow {
			found = true
		}
	}
	if !found {
		t.Error("expected a corrupt-row diagnostic")
	}
}

func TestLoad_Keywords(t *testing.T) {
	res := loadFixture(t, schema.V6, fixture.Standard())

	byTitle := make(map[string]*types.Keyword)
	for _, k := range res.Keywords {
		byTitle[k.Title] = k
	}

	beach := byTitle["Beach"]
	if beach == nil || len(beach.AssetUUIDs) != 2 {
		t.Fatalf("Beach keyword = %+v, want 2 assets", beach)
	}
	city := byTitle["City"]
	if city == nil || len(city.AssetUUIDs) != 1 || city.AssetUUIDs[0] != fixture.AssetCity {
		t.Errorf("City keyword = %+v", city)
	}
}

func TestLoad_PersonsAndFaceStates(t *testing.T) {
	for _, v := range []schema.Version{schema.V5, schema.V9} {
		t.Run(v.String(), func(t *testing.T) {
			res := loadFixture(t, v, fixture.Standard())

			if len(res.Persons) != 2 {
				t.Fatalf("got %d persons, want 2", len(res.Persons))
			}
			var unknown *types.Person
			for _, p := range res.Persons {
				if p.Unknown() {
					unknown = p
				}
			}
			if unknown == nil || unknown.PK != fixture.PersonUnknownPK {
				t.Fatalf("unknown-person sentinel not mapped: %+v", res.Persons)
			}

			states := make(map[types.FaceState]int)
			for _, f := range res.Faces {
				states[f.State]++
			}
			if states[types.FaceIdentified] != 1 ||
				states[types.FaceUnidentified] != 1 ||
				states[types.FaceManualUnnamed] != 1 {
				t.Errorf("face states = %v, want one of each", states)
			}

			for _, f := range res.Faces {
				if f.State == types.FaceManualUnnamed {
					if !f.Manual || f.PersonPK != 0 || f.AssetUUID != fixture.AssetShared {
						t.Errorf("manual unnamed face = %+v", f)
					}
				}
			}
		})
	}
}

func TestLoad_AlbumMembershipOrder(t *testing.T) {
	res := loadFixture(t, schema.V10, fixture.Standard())

	var vacation *types.Album
	for _, a := range res.Albums {
		if a.UUID == fixture.AlbumVacation {
			vacation = a
		}
	}
	if vacation == nil {
		t.Fatal("vacation album not loaded")
	}

	// Sort orders disagree with insertion order; the explicit order wins.
	if len(vacation.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(vacation.Members))
	}
	if vacation.Members[0].AssetUUID != fixture.AssetBeach2 ||
		vacation.Members[1].AssetUUID != fixture.AssetBeach1 {
		t.Errorf("member order = %v", vacation.Members)
	}

	if len(vacation.FolderPath) != 1 || vacation.FolderPath[0] != "Trips" {
		t.Errorf("folder path = %v, want [Trips]", vacation.FolderPath)
	}
}

func TestLoad_ImportSessionsExcluded(t *testing.T) {
	res := loadFixture(t, schema.V8, fixture.Standard())

	// Standard fixture has 3 album-kind rows (two plain, one classic
	// shared); the import session must not appear.
	if len(res.Albums) != 3 {
		t.Errorf("got %d albums, want 3", len(res.Albums))
	}
	for _, a := range res.Albums {
		if a.UUID == "fixture-import-session" {
			t.Error("import session leaked into the album list")
		}
	}
}

func TestLoad_FolderCycleFailsChainNotLoad(t *testing.T) {
	spec := fixture.Standard()
	// Two folders pointing at each other, and an album inside the loop.
	spec.Albums = append(spec.Albums,
		fixture.Album{PK: 310, UUID: "cycle-folder-a", Title: "A", Kind: schema.KindFolder, ParentPK: 311},
		fixture.Album{PK: 311, UUID: "cycle-folder-b", Title: "B", Kind: schema.KindFolder, ParentPK: 310},
		fixture.Album{PK: 210, UUID: "cycle-album", Title: "Looped", Kind: schema.KindAlbum, ParentPK: 310},
	)

	res := loadFixture(t, schema.V6, spec)

	var looped *types.Album
	for _, a := range res.Albums {
		if a.UUID == "cycle-album" {
			looped = a
		}
	}
	if looped == nil {
		t.Fatal("album inside cycle must still load")
	}
	if looped.FolderPath != nil {
		t.Errorf("cyclic chain should leave nil folder path, got %v", looped.FolderPath)
	}

	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == types.DiagFolderCycle && d.Entity == "cycle-album" {
			found = true
		}
	}
	if !found {
		t.Error("expected a folder-cycle diagnostic")
	}

	// The rest of the load is intact.
	var vacation *types.Album
	for _, a := range res.Albums {
		if a.UUID == fixture.AlbumVacation {
			vacation = a
		}
	}
	if vacation == nil || len(vacation.FolderPath) != 1 {
		t.Error("unrelated album chains must resolve normally")
	}
}

func TestLoad_MissingRootFolderFatal(t *testing.T) {
	spec := fixture.Standard()
	spec.OmitRootFolder = true
	// Detach fixtures from the now-absent root so only the root is missing.
	for i := range spec.Albums {
		if spec.Albums[i].ParentPK == fixture.RootFolderPK {
			spec.Albums[i].ParentPK = 0
		}
	}

	path := filepath.Join(t.TempDir(), "Photos.sqlite")
	if err := fixture.Build(path, schema.V8, spec); err != nil {
		t.Fatal(err)
	}
	conn, err := sqlite.Open(path, sqlite.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if _, err := New(conn, schema.V8, nil).Load(); err == nil {
		t.Error("load without a root folder should fail")
	}
}

func findShare(res *Result, uuid string) *types.SharedAlbum {
	for _, s := range res.SharedAlbums {
		if s.UUID == uuid {
			return s
		}
	}
	return nil
}

func TestLoad_ShareDirectMomentFK(t *testing.T) {
	res := loadFixture(t, schema.V5, fixture.Standard())

	share := findShare(res, fixture.ShareTrip)
	if share == nil {
		t.Fatal("share not loaded")
	}
	if share.Strategy != "asset-moment-share-fk" {
		t.Errorf("strategy = %q, want asset-moment-share-fk", share.Strategy)
	}
	if len(share.AssetUUIDs) != 1 || share.AssetUUIDs[0] != fixture.AssetShared {
		t.Errorf("members = %v", share.AssetUUIDs)
	}
	if share.Degraded {
		t.Error("resolved share must not be degraded")
	}
}

func TestLoad_ShareFallsBackToCloudMaster(t *testing.T) {
	// The direct FK path is empty; only the cloud-master indirection
	// reaches the share. The lower-priority strategy must win.
	spec := fixture.Standard()
	for i := range spec.Assets {
		if spec.Assets[i].UUID == fixture.AssetShared {
			spec.Assets[i].MomentSharePK = 0
			spec.Assets[i].CloudMasterPK = 601
		}
	}
	spec.CloudMasters = []fixture.CloudMaster{{PK: 601, MomentSharePK: fixture.SharePK}}

	res := loadFixture(t, schema.V7, spec)

	share := findShare(res, fixture.ShareTrip)
	if share == nil {
		t.Fatal("share not loaded")
	}
	if share.Strategy != "cloud-master-indirect" {
		t.Errorf("strategy = %q, want cloud-master-indirect", share.Strategy)
	}
	if len(share.AssetUUIDs) != 1 || share.AssetUUIDs[0] != fixture.AssetShared {
		t.Errorf("members = %v", share.AssetUUIDs)
	}
}

func TestLoad_ShareLibraryScope(t *testing.T) {
	spec := fixture.Standard()
	spec.Shares = append(spec.Shares, fixture.Share{
		PK: 502, UUID: "fixture-share-library", Title: "Shared Library",
		ScopeType: schema.ScopeSharedLibrary,
	})
	for i := range spec.Assets {
		if spec.Assets[i].UUID == fixture.AssetBeach1 {
			spec.Assets[i].LibraryScopePK = 502
		}
	}

	res := loadFixture(t, schema.V8, spec)

	share := findShare(res, "fixture-share-library")
	if share == nil {
		t.Fatal("library share not loaded")
	}
	if share.Strategy != "asset-library-scope-fk" {
		t.Errorf("strategy = %q, want asset-library-scope-fk", share.Strategy)
	}
	if len(share.AssetUUIDs) != 1 || share.AssetUUIDs[0] != fixture.AssetBeach1 {
		t.Errorf("members = %v", share.AssetUUIDs)
	}
}

func TestLoad_ShareAllStrategiesEmptyDegrades(t *testing.T) {
	spec := fixture.Standard()
	spec.Shares = append(spec.Shares, fixture.Share{
		PK: 503, UUID: "fixture-share-orphan", Title: "Orphan",
		ScopeType: schema.ScopeMomentShare,
	})

	res := loadFixture(t, schema.V9, spec)

	share := findShare(res, "fixture-share-orphan")
	if share == nil {
		t.Fatal("share not loaded")
	}
	if !share.Degraded || share.Strategy != "" {
		t.Errorf("share = %+v, want degraded with no strategy", share)
	}
	if len(share.AssetUUIDs) != 0 {
		t.Errorf("members = %v, want none", share.AssetUUIDs)
	}

	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == types.DiagAmbiguousJoinPath && d.Entity == "fixture-share-orphan" {
			found = true
		}
	}
	if !found {
		t.Error("expected an ambiguous-join-path diagnostic")
	}
}

func TestLoad_TrashedShareSkipsResolution(t *testing.T) {
	spec := fixture.Standard()
	for i := range spec.Shares {
		spec.Shares[i].Trashed = true
	}

	res := loadFixture(t, schema.V6, spec)

	share := findShare(res, fixture.ShareTrip)
	if share == nil {
		t.Fatal("trashed share must keep its record")
	}
	if !share.Trashed || len(share.AssetUUIDs) != 0 || share.Strategy != "" {
		t.Errorf("share = %+v, want unresolved trashed record", share)
	}
	if share.Degraded {
		t.Error("skipped resolution must not mark the share degraded")
	}

	// No diagnostic either: nothing was tried.
	for _, d := range res.Diagnostics {
		if d.Kind == types.DiagAmbiguousJoinPath {
			t.Error("trashed share must not produce a join diagnostic")
		}
	}
}
