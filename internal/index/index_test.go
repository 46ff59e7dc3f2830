package index

import (
	"testing"

	"github.com/mesh-intelligence/shoebox/internal/loader"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// smallResult builds a load result by hand so index behavior is tested
// without a store.
func smallResult() *loader.Result {
	a1 := &types.Asset{PK: 1, UUID: "asset-1"}
	a2 := &types.Asset{PK: 2, UUID: "asset-2"}

	folder := &types.Folder{PK: 10, UUID: "folder-1", Title: "Trips",
		ChildAlbumPKs: []int64{20}}
	album := &types.Album{PK: 20, UUID: "album-1", Title: "Vacation", ParentPK: 10,
		Members: []types.AlbumMember{
			{AssetUUID: "asset-2", SortOrder: 1},
			{AssetUUID: "asset-1", SortOrder: 2},
			{AssetUUID: "asset-gone", SortOrder: 3},
		}}

	maria := &types.Person{PK: 30, UUID: "person-1", Name: "Maria"}

	return &loader.Result{
		Assets:      []*types.Asset{a1, a2},
		AssetByUUID: map[string]*types.Asset{"asset-1": a1, "asset-2": a2},
		Albums:      []*types.Album{album},
		Folders:     []*types.Folder{folder},
		Persons:     []*types.Person{maria},
		Faces: []*types.Face{
			{PK: 40, UUID: "face-1", AssetUUID: "asset-1", PersonPK: 30, State: types.FaceIdentified},
			{PK: 41, UUID: "face-2", AssetUUID: "asset-1", Manual: true, State: types.FaceManualUnnamed},
		},
		Keywords: []*types.Keyword{
			{Title: "Beach", AssetUUIDs: []string{"asset-1", "asset-gone"}},
		},
	}
}

func TestBuild_UnresolvedMemberKeptWithDiagnostic(t *testing.T) {
	ix := Build(smallResult())

	album := ix.AlbumByUUID["album-1"]
	if album == nil {
		t.Fatal("album not indexed")
	}
	if len(album.Members) != 3 {
		t.Fatalf("got %d members, want 3 (unresolved entry kept)", len(album.Members))
	}
	if album.Members[0].Unresolved || album.Members[1].Unresolved {
		t.Error("resolved members wrongly marked")
	}
	if !album.Members[2].Unresolved {
		t.Error("dangling member not marked unresolved")
	}

	count := 0
	for _, d := range ix.Diagnostics() {
		if d.Kind == types.DiagReferentialInconsistency {
			count++
		}
	}
	// One from the album member, one from the keyword.
	if count != 2 {
		t.Errorf("got %d inconsistency diagnostics, want 2", count)
	}
}

func TestBuild_ReverseAssetLookups(t *testing.T) {
	ix := Build(smallResult())

	albums := ix.AlbumsOfAsset("asset-1")
	if len(albums) != 1 || albums[0].UUID != "album-1" {
		t.Errorf("albums of asset-1 = %v", albums)
	}
	if got := ix.AlbumsOfAsset("asset-gone"); got != nil {
		t.Errorf("unloaded asset should have no album list, got %v", got)
	}

	faces := ix.FacesOfAsset("asset-1")
	if len(faces) != 2 {
		t.Fatalf("got %d faces, want 2", len(faces))
	}

	personFaces := ix.FacesOfPerson(30)
	if len(personFaces) != 1 || personFaces[0].UUID != "face-1" {
		t.Errorf("faces of person = %v", personFaces)
	}

	kws := ix.KeywordsOfAsset("asset-1")
	if len(kws) != 1 || kws[0] != "Beach" {
		t.Errorf("keywords of asset-1 = %v", kws)
	}
}

func TestBuild_KeywordDropsUnloadedAssets(t *testing.T) {
	ix := Build(smallResult())

	uuids := ix.KeywordAsset["Beach"]
	if len(uuids) != 1 || uuids[0] != "asset-1" {
		t.Errorf("Beach assets = %v, want only the loaded one", uuids)
	}
}

func TestBuild_FolderChildren(t *testing.T) {
	ix := Build(smallResult())

	albums := ix.ChildAlbums(10)
	if len(albums) != 1 || albums[0].UUID != "album-1" {
		t.Errorf("child albums = %v", albums)
	}
	if got := ix.ChildFolders(10); len(got) != 0 {
		t.Errorf("child folders = %v, want none", got)
	}
	if got := ix.ChildAlbums(999); got != nil {
		t.Errorf("unknown folder should return nil, got %v", got)
	}
}

func TestBuild_PKLookups(t *testing.T) {
	ix := Build(smallResult())

	if ix.AssetByPK[2] == nil || ix.AssetByPK[2].UUID != "asset-2" {
		t.Error("asset pk lookup broken")
	}
	if ix.AlbumByPK[20] == nil || ix.FolderByPK[10] == nil {
		t.Error("album/folder pk lookup broken")
	}
	if ix.PersonByPK[30] == nil {
		t.Error("person pk lookup broken")
	}
}
