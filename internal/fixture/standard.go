package fixture

import "github.com/mesh-intelligence/shoebox/internal/schema"

// Well-known pks and UUIDs of the standard fixture, for test assertions.
const (
	AssetBeach1  = "fixture-asset-beach-1"
	AssetBeach2  = "fixture-asset-beach-2"
	AssetCity    = "fixture-asset-city"
	AssetNoDate  = "fixture-asset-nodate"
	AssetShared  = "fixture-asset-shared"
	AssetTrashed = "fixture-asset-trashed"

	AlbumVacation = "fixture-album-vacation"
	AlbumMisc     = "fixture-album-misc"
	AlbumFamily   = "fixture-album-family-shared"
	FolderTrips   = "fixture-folder-trips"

	ShareTrip = "fixture-share-trip"

	PersonMariaPK   int64 = 401
	PersonUnknownPK int64 = 402

	SharePK int64 = 501
)

// Standard returns a fixture exercising every loader: six assets (one with a
// null date, one trashed, one burst member of a moment share), a folder tree,
// a classic shared album, the unknown-person sentinel, a manual unnamed face,
// and two keywords.
func Standard() Spec {
	return Spec{
		Assets: []Asset{
			{
				PK: 101, UUID: AssetBeach1, Filename: "IMG_0001.HEIC",
				OriginalFilename: "IMG_0001.HEIC", Directory: "0/10",
				Date: Float(600000000), ModDate: Float(600000100), AddedDate: Float(600000200),
				TimezoneName: "America/Los_Angeles", TZOffset: Int(-28800),
				Height: 3024, Width: 4032, SizeBytes: 2400000,
				UTI: "public.heic", Favorite: true, Depth: 1,
				Latitude: Float(36.6), Longitude: Float(-121.9),
			},
			{
				PK: 102, UUID: AssetBeach2, Filename: "IMG_0002.JPG",
				OriginalFilename: "IMG_0002.JPG", Directory: "0/10",
				Date: Float(600010000), TZOffset: Int(-28800),
				Height: 3024, Width: 4032, SizeBytes: 3100000,
				UTI: "public.jpeg", KindSubtype: 2, // live photo
			},
			{
				PK: 103, UUID: AssetCity, Filename: "IMG_0003.CR2",
				OriginalFilename: "IMG_0003.CR2", Directory: "0/11",
				Date:   Float(610000000),
				Height: 4000, Width: 6000, SizeBytes: 25000000,
				UTI: "com.canon.cr2-raw-image", Hidden: true,
			},
			{
				// Null creation date: must load with the default sentinel.
				PK: 104, UUID: AssetNoDate, Filename: "IMG_0004.PNG",
				OriginalFilename: "Screenshot.PNG", Directory: "0/12",
				Height: 1170, Width: 2532, SizeBytes: 400000,
				UTI: "public.png", KindSubtype: 10, // screenshot
			},
			{
				PK: 105, UUID: AssetShared, Filename: "IMG_0005.HEIC",
				OriginalFilename: "IMG_0005.HEIC", Directory: "0/13",
				Date:   Float(620000000),
				Height: 3024, Width: 4032, SizeBytes: 1900000,
				UTI: "public.heic", AvalancheUUID: "fixture-burst-1",
				MomentSharePK: SharePK,
			},
			{
				PK: 106, UUID: AssetTrashed, Filename: "IMG_0006.JPG",
				OriginalFilename: "IMG_0006.JPG", Directory: "0/14",
				Date: Float(630000000), Trashed: true, TrashedDate: Float(631000000),
				Height: 3024, Width: 4032, SizeBytes: 2000000,
				UTI: "public.jpeg",
			},
		},
		Albums: []Album{
			{PK: 301, UUID: FolderTrips, Title: "Trips", Kind: schema.KindFolder, ParentPK: RootFolderPK},
			{PK: 201, UUID: AlbumVacation, Title: "Vacation", Kind: schema.KindAlbum, ParentPK: 301},
			{PK: 202, UUID: AlbumMisc, Title: "Misc", Kind: schema.KindAlbum, ParentPK: RootFolderPK},
			{PK: 203, UUID: AlbumFamily, Title: "Family", Kind: schema.KindSharedAlbum,
				CloudOwner: "owner-hash-1", CloudLocalState: 1},
			{PK: 204, UUID: "fixture-import-session", Title: "Import 2020", Kind: schema.KindImportSession,
				ParentPK: RootFolderPK},
		},
		Members: []Member{
			// Sort orders deliberately disagree with insertion order.
			{AlbumPK: 201, AssetPK: 101, SortOrder: 2},
			{AlbumPK: 201, AssetPK: 102, SortOrder: 1},
			{AlbumPK: 202, AssetPK: 104, SortOrder: 1},
			{AlbumPK: 203, AssetPK: 105, SortOrder: 1},
			{AlbumPK: 203, AssetPK: 101, SortOrder: 2},
		},
		Persons: []Person{
			{PK: PersonMariaPK, UUID: "fixture-person-maria", Name: "Maria Soto",
				DisplayName: "Maria", FaceCount: 1, KeyFacePK: 451, Favorite: true},
			{PK: PersonUnknownPK, UUID: "fixture-person-unknown", FaceCount: 1},
		},
		Faces: []Face{
			{PK: 451, UUID: "fixture-face-1", AssetPK: 101, PersonPK: PersonMariaPK,
				CenterX: 0.4, CenterY: 0.5, Size: 0.1, Quality: 0.9},
			{PK: 452, UUID: "fixture-face-2", AssetPK: 103, PersonPK: PersonUnknownPK,
				CenterX: 0.6, CenterY: 0.3, Size: 0.08, Quality: 0.7},
			{PK: 453, UUID: "fixture-face-3", AssetPK: 105, Manual: true,
				CenterX: 0.5, CenterY: 0.5, Size: 0.2, Quality: 0.0},
		},
		Keywords: []Keyword{
			{PK: 461, Title: "Beach", AssetPKs: []int64{101, 102}},
			{PK: 462, Title: "City", AssetPKs: []int64{103}},
		},
		Shares: []Share{
			{PK: SharePK, UUID: ShareTrip, Title: "Trip Share",
				ScopeType: schema.ScopeMomentShare, CreationDate: Float(620000000)},
		},
	}
}
