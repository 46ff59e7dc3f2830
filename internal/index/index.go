// Package index builds the cross-reference views over a fully loaded record
// set. The index owns its maps; nothing mutates them after Build returns, so
// every consumer can read them concurrently without locks.
package index

import (
	"fmt"

	"github.com/mesh-intelligence/shoebox/internal/loader"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// Index is the read-only cross-reference layer over a load result. Slices
// returned by lookups are the index's own; callers must not modify them.
type Index struct {
	AssetByUUID map[string]*types.Asset
	AssetByPK   map[int64]*types.Asset

	AlbumByUUID  map[string]*types.Album
	AlbumByPK    map[int64]*types.Album
	FolderByUUID map[string]*types.Folder
	FolderByPK   map[int64]*types.Folder

	PersonByPK   map[int64]*types.Person
	ShareByUUID  map[string]*types.SharedAlbum
	KeywordAsset map[string][]string // keyword title -> asset UUIDs

	albumsOfAsset map[string][]*types.Album
	facesOfAsset  map[string][]*types.Face
	facesOfPerson map[int64][]*types.Face
	keywordsOf    map[string][]string // asset UUID -> keyword titles

	diags []types.Diagnostic
}

// Build wires the cross-reference maps from a load result. Membership and
// face references to entities that never loaded are kept as unresolved
// entries with a diagnostic each; a dangling reference is data to report,
// not a reason to drop the row.
func Build(res *loader.Result) *Index {
	ix := &Index{
		AssetByUUID:  res.AssetByUUID,
		AssetByPK:    make(map[int64]*types.Asset, len(res.Assets)),
		AlbumByUUID:  make(map[string]*types.Album, len(res.Albums)),
		AlbumByPK:    make(map[int64]*types.Album, len(res.Albums)),
		FolderByUUID: make(map[string]*types.Folder, len(res.Folders)),
		FolderByPK:   make(map[int64]*types.Folder, len(res.Folders)),
		PersonByPK:   make(map[int64]*types.Person, len(res.Persons)),
		ShareByUUID:  make(map[string]*types.SharedAlbum, len(res.SharedAlbums)),
		KeywordAsset: make(map[string][]string, len(res.Keywords)),

		albumsOfAsset: make(map[string][]*types.Album),
		facesOfAsset:  make(map[string][]*types.Face),
		facesOfPerson: make(map[int64][]*types.Face),
		keywordsOf:    make(map[string][]string),
	}

	for _, a := range res.Assets {
		ix.AssetByPK[a.PK] = a
	}
	for _, f := range res.Folders {
		ix.FolderByPK[f.PK] = f
		ix.FolderByUUID[f.UUID] = f
	}
	for _, p := range res.Persons {
		ix.PersonByPK[p.PK] = p
	}
	for _, s := range res.SharedAlbums {
		ix.ShareByUUID[s.UUID] = s
	}

	ix.indexAlbums(res)
	ix.indexFaces(res)
	ix.indexKeywords(res)
	return ix
}

func (ix *Index) indexAlbums(res *loader.Result) {
	for _, album := range res.Albums {
		ix.AlbumByPK[album.PK] = album
		ix.AlbumByUUID[album.UUID] = album

		for i := range album.Members {
			m := &album.Members[i]
			if _, ok := ix.AssetByUUID[m.AssetUUID]; !ok {
				m.Unresolved = true
				ix.diag(types.DiagReferentialInconsistency, album.UUID,
					fmt.Sprintf("member asset %s not loaded", m.AssetUUID))
				continue
			}
			ix.albumsOfAsset[m.AssetUUID] = append(ix.albumsOfAsset[m.AssetUUID], album)
		}
	}
}

func (ix *Index) indexFaces(res *loader.Result) {
	for _, f := range res.Faces {
		if f.AssetUUID != "" {
			ix.facesOfAsset[f.AssetUUID] = append(ix.facesOfAsset[f.AssetUUID], f)
		}
		if f.PersonPK != 0 {
			if _, ok := ix.PersonByPK[f.PersonPK]; ok {
				ix.facesOfPerson[f.PersonPK] = append(ix.facesOfPerson[f.PersonPK], f)
			}
		}
	}
}

func (ix *Index) indexKeywords(res *loader.Result) {
	for _, k := range res.Keywords {
		uuids := make([]string, 0, len(k.AssetUUIDs))
		for _, uuid := range k.AssetUUIDs {
			if _, ok := ix.AssetByUUID[uuid]; !ok {
				ix.diag(types.DiagReferentialInconsistency, k.Title,
					fmt.Sprintf("tagged asset %s not loaded", uuid))
				continue
			}
			uuids = append(uuids, uuid)
			ix.keywordsOf[uuid] = append(ix.keywordsOf[uuid], k.Title)
		}
		ix.KeywordAsset[k.Title] = uuids
	}
}

// AlbumsOfAsset returns the albums an asset is a resolved member of.
func (ix *Index) AlbumsOfAsset(uuid string) []*types.Album {
	return ix.albumsOfAsset[uuid]
}

// FacesOfAsset returns the faces detected in an asset.
func (ix *Index) FacesOfAsset(uuid string) []*types.Face {
	return ix.facesOfAsset[uuid]
}

// FacesOfPerson returns the faces linked to a person pk.
func (ix *Index) FacesOfPerson(pk int64) []*types.Face {
	return ix.facesOfPerson[pk]
}

// KeywordsOfAsset returns the keyword titles tagged on an asset.
func (ix *Index) KeywordsOfAsset(uuid string) []string {
	return ix.keywordsOf[uuid]
}

// ChildFolders returns the folders directly under the given folder.
func (ix *Index) ChildFolders(pk int64) []*types.Folder {
	f := ix.FolderByPK[pk]
	if f == nil {
		return nil
	}
	out := make([]*types.Folder, 0, len(f.ChildFolderPKs))
	for _, child := range f.ChildFolderPKs {
		if c := ix.FolderByPK[child]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ChildAlbums returns the albums directly under the given folder.
func (ix *Index) ChildAlbums(pk int64) []*types.Album {
	f := ix.FolderByPK[pk]
	if f == nil {
		return nil
	}
	out := make([]*types.Album, 0, len(f.ChildAlbumPKs))
	for _, child := range f.ChildAlbumPKs {
		if a := ix.AlbumByPK[child]; a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Diagnostics returns the referential findings recorded during the build.
func (ix *Index) Diagnostics() []types.Diagnostic {
	return ix.diags
}

func (ix *Index) diag(kind types.DiagnosticKind, entity, detail string) {
	ix.diags = append(ix.diags, types.Diagnostic{Kind: kind, Entity: entity, Detail: detail})
}
