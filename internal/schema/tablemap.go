package schema

// TableMap carries every version-dependent table and column name used by the
// loaders. Join columns are qualified (table.column) so they can be dropped
// straight into query text.
//
// The join-table numbering (Z_26ASSETS and friends) is Core Data's generated
// naming and shifts between generations; the values here are taken from
// observed stores of each generation.
type TableMap struct {
	AssetTable string // ZGENERICASSET through v5, ZASSET after

	AssetAlbumTable string // album membership join table
	AlbumAssetFK    string // join-table column referencing the asset pk
	AlbumFK         string // join-table column referencing the album pk
	AlbumSortOrder  string // join-table Z_FOK_* column with the user-visible order

	KeywordFK string // Z_1KEYWORDS column referencing the keyword pk

	FaceAssetFK  string // detected-face column referencing the asset pk
	FacePersonFK string // detected-face column referencing the person pk

	UTIColumn   string // uniform type identifier column on the asset table
	HDRColumn   string // HDR marker column; renamed after v5
	DepthColumn string // portrait depth marker column; renamed after v5

	// HasLibraryScope marks generations whose asset rows carry a library
	// scope foreign key into the share table.
	HasLibraryScope bool
}

// TableMap returns the mapping for the generation. The switch is exhaustive
// over the declared variants; VersionUnknown has no mapping and panics, which
// is unreachable because Detect fails before any loader runs.
func (v Version) TableMap() TableMap {
	switch v {
	case V5:
		return TableMap{
			AssetTable:      "ZGENERICASSET",
			AssetAlbumTable: "Z_26ASSETS",
			AlbumAssetFK:    "Z_26ASSETS.Z_34ASSETS",
			AlbumFK:         "Z_26ASSETS.Z_26ALBUMS",
			AlbumSortOrder:  "Z_26ASSETS.Z_FOK_34ASSETS",
			KeywordFK:       "Z_1KEYWORDS.Z_37KEYWORDS",
			FaceAssetFK:     "ZDETECTEDFACE.ZASSET",
			FacePersonFK:    "ZDETECTEDFACE.ZPERSON",
			UTIColumn:       "ZUNIFORMTYPEIDENTIFIER",
			HDRColumn:       "ZCUSTOMRENDEREDVALUE",
			DepthColumn:     "ZDEPTHSTATES",
		}
	case V6:
		return TableMap{
			AssetTable:      "ZASSET",
			AssetAlbumTable: "Z_26ASSETS",
			AlbumAssetFK:    "Z_26ASSETS.Z_3ASSETS",
			AlbumFK:         "Z_26ASSETS.Z_26ALBUMS",
			AlbumSortOrder:  "Z_26ASSETS.Z_FOK_3ASSETS",
			KeywordFK:       "Z_1KEYWORDS.Z_38KEYWORDS",
			FaceAssetFK:     "ZDETECTEDFACE.ZASSET",
			FacePersonFK:    "ZDETECTEDFACE.ZPERSON",
			UTIColumn:       "ZUNIFORMTYPEIDENTIFIER",
			HDRColumn:       "ZHDRTYPE",
			DepthColumn:     "ZDEPTHTYPE",
		}
	case V7:
		return TableMap{
			AssetTable:      "ZASSET",
			AssetAlbumTable: "Z_27ASSETS",
			AlbumAssetFK:    "Z_27ASSETS.Z_3ASSETS",
			AlbumFK:         "Z_27ASSETS.Z_27ALBUMS",
			AlbumSortOrder:  "Z_27ASSETS.Z_FOK_3ASSETS",
			KeywordFK:       "Z_1KEYWORDS.Z_40KEYWORDS",
			FaceAssetFK:     "ZDETECTEDFACE.ZASSET",
			FacePersonFK:    "ZDETECTEDFACE.ZPERSON",
			UTIColumn:       "ZUNIFORMTYPEIDENTIFIER",
			HDRColumn:       "ZHDRTYPE",
			DepthColumn:     "ZDEPTHTYPE",
		}
	case V8:
		return TableMap{
			AssetTable:      "ZASSET",
			AssetAlbumTable: "Z_28ASSETS",
			AlbumAssetFK:    "Z_28ASSETS.Z_3ASSETS",
			AlbumFK:         "Z_28ASSETS.Z_28ALBUMS",
			AlbumSortOrder:  "Z_28ASSETS.Z_FOK_3ASSETS",
			KeywordFK:       "Z_1KEYWORDS.Z_41KEYWORDS",
			FaceAssetFK:     "ZDETECTEDFACE.ZASSETFORFACE",
			FacePersonFK:    "ZDETECTEDFACE.ZPERSONFORFACE",
			UTIColumn:       "ZUNIFORMTYPEIDENTIFIER",
			HDRColumn:       "ZHDRTYPE",
			DepthColumn:     "ZDEPTHTYPE",
			HasLibraryScope: true,
		}
	case V9:
		return TableMap{
			AssetTable:      "ZASSET",
			AssetAlbumTable: "Z_28ASSETS",
			AlbumAssetFK:    "Z_28ASSETS.Z_3ASSETS",
			AlbumFK:         "Z_28ASSETS.Z_28ALBUMS",
			AlbumSortOrder:  "Z_28ASSETS.Z_FOK_3ASSETS",
			KeywordFK:       "Z_1KEYWORDS.Z_47KEYWORDS",
			FaceAssetFK:     "ZDETECTEDFACE.ZASSETFORFACE",
			FacePersonFK:    "ZDETECTEDFACE.ZPERSONFORFACE",
			UTIColumn:       "ZUNIFORMTYPEIDENTIFIER",
			HDRColumn:       "ZHDRTYPE",
			DepthColumn:     "ZDEPTHTYPE",
			HasLibraryScope: true,
		}
	case V10:
		return TableMap{
			AssetTable:      "ZASSET",
			AssetAlbumTable: "Z_30ASSETS",
			AlbumAssetFK:    "Z_30ASSETS.Z_3ASSETS",
			AlbumFK:         "Z_30ASSETS.Z_30ALBUMS",
			AlbumSortOrder:  "Z_30ASSETS.Z_FOK_3ASSETS",
			KeywordFK:       "Z_1KEYWORDS.Z_48KEYWORDS",
			FaceAssetFK:     "ZDETECTEDFACE.ZASSETFORFACE",
			FacePersonFK:    "ZDETECTEDFACE.ZPERSONFORFACE",
			UTIColumn:       "ZUNIFORMTYPEIDENTIFIER",
			HDRColumn:       "ZHDRTYPE",
			DepthColumn:     "ZDEPTHTYPE",
			HasLibraryScope: true,
		}
	default:
		panic("schema: no table map for " + v.String())
	}
}

// Versions lists every supported generation, oldest first.
func Versions() []Version {
	return []Version{V5, V6, V7, V8, V9, V10}
}
