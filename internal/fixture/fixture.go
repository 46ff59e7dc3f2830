// Package fixture builds synthetic Photos library stores for tests. A Spec
// declares records version-independently; Build materializes them with the
// table and column names of the requested schema generation, so the same
// fixture exercises every supported version.
package fixture

import (
	"database/sql"
	"fmt"
	"strings"

	"howett.net/plist"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shoebox/internal/schema"
)

// Asset declares one asset row (plus its additional-attributes side row).
// Pointer fields map nil to NULL.
type Asset struct {
	PK               int64
	UUID             string
	Filename         string
	OriginalFilename string
	Directory        string
	Title            string

	Date      *float64 // store epoch seconds (2001-01-01 based)
	ModDate   *float64
	AddedDate *float64

	TimezoneName string
	TZOffset     *int64

	Height    int64
	Width     int64
	SizeBytes int64
	UTI       string

	Favorite       bool
	Hidden         bool
	Trashed        bool
	TrashedDate    *float64
	KindSubtype    int64
	HDR            int64
	Depth          int64
	AvalancheUUID  string
	SavedAssetType int64
	HasAdjustments bool

	Latitude  *float64 // nil → the -180 missing marker
	Longitude *float64

	MomentSharePK  int64 // 0 → NULL
	LibraryScopePK int64 // 0 → NULL; only written for generations that have the column
	CloudMasterPK  int64 // 0 → NULL
}

// Album declares one ZGENERICALBUM row. Kind selects the multiplexed entity:
// album, folder, shared album, and so on. The root folder (kind 3999, pk 1)
// is inserted automatically unless OmitRootFolder is set.
type Album struct {
	PK              int64
	UUID            string
	Title           string
	Kind            int64
	ParentPK        int64 // 0 → NULL
	Trashed         bool
	CloudLocalState int64
	CloudOwner      string
}

// Member declares one album-membership join row.
type Member struct {
	AlbumPK   int64
	AssetPK   int64
	SortOrder int64
}

// Person declares one ZPERSON row. An empty Name produces the unnamed
// cluster the loader maps to the unknown-person sentinel.
type Person struct {
	PK          int64
	UUID        string
	Name        string
	DisplayName string
	FaceCount   int64
	KeyFacePK   int64
	Favorite    bool
}

// Face declares one ZDETECTEDFACE row. PersonPK 0 means no person link
// (the manual-unnamed case when Manual is set).
type Face struct {
	PK       int64
	UUID     string
	AssetPK  int64
	PersonPK int64
	Manual   bool
	CenterX  float64
	CenterY  float64
	Size     float64
	Quality  float64
}

// Keyword declares one keyword and the assets tagged with it.
type Keyword struct {
	PK       int64
	Title    string
	AssetPKs []int64
}

// Share declares one ZSHARE row.
type Share struct {
	PK           int64
	UUID         string
	Title        string
	ScopeType    int64
	Trashed      bool
	CreationDate *float64
	ExpiryDate   *float64
}

// CloudMaster declares one ZCLOUDMASTER row for the indirect share join.
type CloudMaster struct {
	PK            int64
	MomentSharePK int64
}

// Spec declares a complete fixture store.
type Spec struct {
	// ModelVersion overrides the generation's default model version when
	// non-zero (used to fabricate unsupported stores).
	ModelVersion int64

	Assets       []Asset
	Albums       []Album
	Members      []Member
	Persons      []Person
	Faces        []Face
	Keywords     []Keyword
	Shares       []Share
	CloudMasters []CloudMaster

	// OmitRootFolder leaves out the implicit root folder row.
	OmitRootFolder bool
}

// DefaultModelVersion returns a model version inside the generation's range.
func DefaultModelVersion(v schema.Version) int64 {
	switch v {
	case schema.V5:
		return 13537
	case schema.V6:
		return 14064
	case schema.V7:
		return 15331
	case schema.V8:
		return 16320
	case schema.V9:
		return 17120
	case schema.V10:
		return 18131
	default:
		return 0
	}
}

// RootFolderPK is the pk of the implicit root folder.
const RootFolderPK int64 = 1

// Build writes a fixture store for the given generation to path.
func Build(path string, v schema.Version, spec Spec) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("creating fixture store: %w", err)
	}
	defer db.Close()

	tm := v.TableMap()

	if err := createTables(db, v, tm); err != nil {
		return err
	}
	if err := writeMetadata(db, v, spec.ModelVersion); err != nil {
		return err
	}
	if err := insertAssets(db, v, tm, spec.Assets); err != nil {
		return err
	}
	if err := insertAlbums(db, spec); err != nil {
		return err
	}
	if err := insertMembers(db, tm, spec.Members); err != nil {
		return err
	}
	if err := insertPersonsAndFaces(db, tm, spec.Persons, spec.Faces); err != nil {
		return err
	}
	if err := insertKeywords(db, tm, spec.Keywords); err != nil {
		return err
	}
	if err := insertShares(db, spec.Shares, spec.CloudMasters); err != nil {
		return err
	}
	return nil
}

// col returns the column part of a qualified table.column name.
func col(qualified string) string {
	if i := strings.IndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func createTables(db *sql.DB, v schema.Version, tm schema.TableMap) error {
	libraryScope := ""
	if tm.HasLibraryScope {
		libraryScope = "ZLIBRARYSCOPE INTEGER,"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE %s (
			Z_PK INTEGER PRIMARY KEY,
			ZUUID TEXT,
			ZFILENAME TEXT,
			ZDIRECTORY TEXT,
			ZDATECREATED REAL,
			ZMODIFICATIONDATE REAL,
			ZADDEDDATE REAL,
			ZTRASHEDDATE REAL,
			ZTRASHEDSTATE INTEGER DEFAULT 0,
			ZHIDDEN INTEGER DEFAULT 0,
			ZFAVORITE INTEGER DEFAULT 0,
			ZHEIGHT INTEGER,
			ZWIDTH INTEGER,
			ZORIENTATION INTEGER DEFAULT 1,
			%s TEXT,
			ZLATITUDE REAL DEFAULT -180.0,
			ZLONGITUDE REAL DEFAULT -180.0,
			ZKINDSUBTYPE INTEGER DEFAULT 0,
			%s INTEGER DEFAULT 0,
			%s INTEGER DEFAULT 0,
			ZAVALANCHEUUID TEXT,
			ZAVALANCHEPICKTYPE INTEGER DEFAULT 0,
			ZVISIBILITYSTATE INTEGER DEFAULT 0,
			ZSAVEDASSETTYPE INTEGER DEFAULT 3,
			ZHASADJUSTMENTS INTEGER DEFAULT 0,
			ZCLOUDASSETGUID TEXT,
			%s
			ZMOMENTSHARE INTEGER,
			ZMASTER INTEGER
		)`, tm.AssetTable, tm.UTIColumn, tm.HDRColumn, tm.DepthColumn, libraryScope),
		`CREATE TABLE ZADDITIONALASSETATTRIBUTES (
			Z_PK INTEGER PRIMARY KEY,
			ZASSET INTEGER,
			ZORIGINALFILENAME TEXT,
			ZTITLE TEXT,
			ZTIMEZONENAME TEXT,
			ZTIMEZONEOFFSET INTEGER,
			ZINFERREDTIMEZONEOFFSET INTEGER,
			ZORIGINALFILESIZE INTEGER,
			ZORIGINALHEIGHT INTEGER,
			ZORIGINALWIDTH INTEGER
		)`,
		`CREATE TABLE ZGENERICALBUM (
			Z_PK INTEGER PRIMARY KEY,
			ZUUID TEXT,
			ZTITLE TEXT,
			ZKIND INTEGER,
			ZPARENTFOLDER INTEGER,
			ZTRASHEDSTATE INTEGER DEFAULT 0,
			ZCLOUDLOCALSTATE INTEGER DEFAULT 0,
			ZCLOUDOWNERHASHEDPERSONID TEXT,
			ZCREATIONDATE REAL,
			ZSTARTDATE REAL,
			ZENDDATE REAL,
			ZCUSTOMSORTASCENDING INTEGER DEFAULT 1,
			ZCUSTOMSORTKEY INTEGER DEFAULT 0
		)`,
		fmt.Sprintf(`CREATE TABLE %s (
			%s INTEGER,
			%s INTEGER,
			%s INTEGER
		)`, tm.AssetAlbumTable, col(tm.AlbumFK), col(tm.AlbumAssetFK), col(tm.AlbumSortOrder)),
		`CREATE TABLE ZKEYWORD (
			Z_PK INTEGER PRIMARY KEY,
			ZTITLE TEXT
		)`,
		fmt.Sprintf(`CREATE TABLE Z_1KEYWORDS (
			Z_1ASSETATTRIBUTES INTEGER,
			%s INTEGER
		)`, col(tm.KeywordFK)),
		`CREATE TABLE ZPERSON (
			Z_PK INTEGER PRIMARY KEY,
			ZPERSONUUID TEXT,
			ZFULLNAME TEXT,
			ZDISPLAYNAME TEXT,
			ZFACECOUNT INTEGER DEFAULT 0,
			ZKEYFACE INTEGER,
			ZTYPE INTEGER DEFAULT 0,
			ZMANUALORDER INTEGER DEFAULT 0
		)`,
		fmt.Sprintf(`CREATE TABLE ZDETECTEDFACE (
			Z_PK INTEGER PRIMARY KEY,
			ZUUID TEXT,
			%s INTEGER,
			%s INTEGER,
			ZMANUAL INTEGER DEFAULT 0,
			ZCENTERX REAL,
			ZCENTERY REAL,
			ZSIZE REAL,
			ZQUALITY REAL,
			ZISINTRASH INTEGER DEFAULT 0,
			ZHIDDEN INTEGER DEFAULT 0
		)`, col(tm.FaceAssetFK), col(tm.FacePersonFK)),
		`CREATE TABLE ZSHARE (
			Z_PK INTEGER PRIMARY KEY,
			ZUUID TEXT,
			ZTITLE TEXT,
			ZSCOPETYPE INTEGER,
			ZTRASHEDSTATE INTEGER DEFAULT 0,
			ZCREATIONDATE REAL,
			ZEXPIRYDATE REAL
		)`,
		`CREATE TABLE ZCLOUDMASTER (
			Z_PK INTEGER PRIMARY KEY,
			ZMOMENTSHARE INTEGER
		)`,
		`CREATE TABLE Z_METADATA (
			Z_VERSION INTEGER,
			Z_UUID TEXT,
			Z_PLIST BLOB
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating fixture tables for %v: %w", v, err)
		}
	}
	return nil
}

func writeMetadata(db *sql.DB, v schema.Version, override int64) error {
	model := override
	if model == 0 {
		model = DefaultModelVersion(v)
	}
	blob, err := plist.Marshal(map[string]any{"PLModelVersion": model}, plist.BinaryFormat)
	if err != nil {
		return fmt.Errorf("encoding metadata plist: %w", err)
	}
	_, err = db.Exec("INSERT INTO Z_METADATA (Z_VERSION, Z_UUID, Z_PLIST) VALUES (1, 'fixture', ?)", blob)
	return err
}

func insertAssets(db *sql.DB, v schema.Version, tm schema.TableMap, assets []Asset) error {
	libraryScopeCol, libraryScopePlaceholder := "", ""
	if tm.HasLibraryScope {
		libraryScopeCol = "ZLIBRARYSCOPE,"
		libraryScopePlaceholder = "?,"
	}

	assetSQL := fmt.Sprintf(`INSERT INTO %s (
		Z_PK, ZUUID, ZFILENAME, ZDIRECTORY,
		ZDATECREATED, ZMODIFICATIONDATE, ZADDEDDATE, ZTRASHEDDATE, ZTRASHEDSTATE,
		ZHIDDEN, ZFAVORITE, ZHEIGHT, ZWIDTH, %s,
		ZLATITUDE, ZLONGITUDE, ZKINDSUBTYPE, %s, %s, ZAVALANCHEUUID,
		ZSAVEDASSETTYPE, ZHASADJUSTMENTS, %s ZMOMENTSHARE, ZMASTER
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, %s ?, ?)`,
		tm.AssetTable, tm.UTIColumn, tm.HDRColumn, tm.DepthColumn, libraryScopeCol, libraryScopePlaceholder)

	for _, a := range assets {
		lat, lon := -180.0, -180.0
		if a.Latitude != nil {
			lat = *a.Latitude
		}
		if a.Longitude != nil {
			lon = *a.Longitude
		}

		args := []any{
			a.PK, a.UUID, a.Filename, a.Directory,
			nullFloat(a.Date), nullFloat(a.ModDate), nullFloat(a.AddedDate),
			nullFloat(a.TrashedDate), boolInt(a.Trashed),
			boolInt(a.Hidden), boolInt(a.Favorite), a.Height, a.Width, a.UTI,
			lat, lon, a.KindSubtype, a.HDR, a.Depth, nullString(a.AvalancheUUID),
			a.SavedAssetType, boolInt(a.HasAdjustments),
		}
		if tm.HasLibraryScope {
			args = append(args, nullInt(a.LibraryScopePK))
		}
		args = append(args, nullInt(a.MomentSharePK), nullInt(a.CloudMasterPK))

		if _, err := db.Exec(assetSQL, args...); err != nil {
			return fmt.Errorf("inserting fixture asset %s: %w", a.UUID, err)
		}

		// Side row shares the asset pk; the keyword join below relies on it.
		if _, err := db.Exec(`INSERT INTO ZADDITIONALASSETATTRIBUTES (
			Z_PK, ZASSET, ZORIGINALFILENAME, ZTITLE,
			ZTIMEZONENAME, ZTIMEZONEOFFSET, ZORIGINALFILESIZE
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.PK, a.PK, nullString(a.OriginalFilename), nullString(a.Title),
			nullString(a.TimezoneName), nullIntPtr(a.TZOffset), a.SizeBytes); err != nil {
			return fmt.Errorf("inserting fixture attributes for %s: %w", a.UUID, err)
		}
	}
	return nil
}

func insertAlbums(db *sql.DB, spec Spec) error {
	albums := spec.Albums
	if !spec.OmitRootFolder {
		hasRoot := false
		for _, a := range albums {
			if a.Kind == schema.KindRootFolder {
				hasRoot = true
				break
			}
		}
		if !hasRoot {
			albums = append([]Album{{
				PK: RootFolderPK, UUID: "fixture-root-folder", Kind: schema.KindRootFolder,
			}}, albums...)
		}
	}

	for _, a := range albums {
		if _, err := db.Exec(`INSERT INTO ZGENERICALBUM (
			Z_PK, ZUUID, ZTITLE, ZKIND, ZPARENTFOLDER, ZTRASHEDSTATE,
			ZCLOUDLOCALSTATE, ZCLOUDOWNERHASHEDPERSONID
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.PK, a.UUID, nullString(a.Title), a.Kind, nullInt(a.ParentPK),
			boolInt(a.Trashed), a.CloudLocalState, nullString(a.CloudOwner)); err != nil {
			return fmt.Errorf("inserting fixture album %s: %w", a.UUID, err)
		}
	}
	return nil
}

func insertMembers(db *sql.DB, tm schema.TableMap, members []Member) error {
	memberSQL := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)",
		tm.AssetAlbumTable, col(tm.AlbumFK), col(tm.AlbumAssetFK), col(tm.AlbumSortOrder))
	for _, m := range members {
		if _, err := db.Exec(memberSQL, m.AlbumPK, m.AssetPK, m.SortOrder); err != nil {
			return fmt.Errorf("inserting fixture membership: %w", err)
		}
	}
	return nil
}

func insertPersonsAndFaces(db *sql.DB, tm schema.TableMap, persons []Person, faces []Face) error {
	for _, p := range persons {
		if _, err := db.Exec(`INSERT INTO ZPERSON (
			Z_PK, ZPERSONUUID, ZFULLNAME, ZDISPLAYNAME, ZFACECOUNT, ZKEYFACE, ZTYPE
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.PK, p.UUID, nullString(p.Name), nullString(p.DisplayName),
			p.FaceCount, nullInt(p.KeyFacePK), boolInt(p.Favorite)); err != nil {
			return fmt.Errorf("inserting fixture person %d: %w", p.PK, err)
		}
	}

	faceSQL := fmt.Sprintf(`INSERT INTO ZDETECTEDFACE (
		Z_PK, ZUUID, %s, %s, ZMANUAL, ZCENTERX, ZCENTERY, ZSIZE, ZQUALITY
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, col(tm.FaceAssetFK), col(tm.FacePersonFK))
	for _, f := range faces {
		if _, err := db.Exec(faceSQL,
			f.PK, f.UUID, f.AssetPK, nullInt(f.PersonPK), boolInt(f.Manual),
			f.CenterX, f.CenterY, f.Size, f.Quality); err != nil {
			return fmt.Errorf("inserting fixture face %d: %w", f.PK, err)
		}
	}
	return nil
}

func insertKeywords(db *sql.DB, tm schema.TableMap, keywords []Keyword) error {
	joinSQL := fmt.Sprintf("INSERT INTO Z_1KEYWORDS (Z_1ASSETATTRIBUTES, %s) VALUES (?, ?)",
		col(tm.KeywordFK))
	for _, k := range keywords {
		if _, err := db.Exec("INSERT INTO ZKEYWORD (Z_PK, ZTITLE) VALUES (?, ?)", k.PK, k.Title); err != nil {
			return fmt.Errorf("inserting fixture keyword %q: %w", k.Title, err)
		}
		for _, assetPK := range k.AssetPKs {
			if _, err := db.Exec(joinSQL, assetPK, k.PK); err != nil {
				return fmt.Errorf("tagging fixture asset %d with %q: %w", assetPK, k.Title, err)
			}
		}
	}
	return nil
}

func insertShares(db *sql.DB, shares []Share, masters []CloudMaster) error {
	for _, s := range shares {
		if _, err := db.Exec(`INSERT INTO ZSHARE (
			Z_PK, ZUUID, ZTITLE, ZSCOPETYPE, ZTRASHEDSTATE, ZCREATIONDATE, ZEXPIRYDATE
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.PK, s.UUID, nullString(s.Title), s.ScopeType, boolInt(s.Trashed),
			nullFloat(s.CreationDate), nullFloat(s.ExpiryDate)); err != nil {
			return fmt.Errorf("inserting fixture share %s: %w", s.UUID, err)
		}
	}
	for _, m := range masters {
		if _, err := db.Exec("INSERT INTO ZCLOUDMASTER (Z_PK, ZMOMENTSHARE) VALUES (?, ?)",
			m.PK, nullInt(m.MomentSharePK)); err != nil {
			return fmt.Errorf("inserting fixture cloud master %d: %w", m.PK, err)
		}
	}
	return nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullIntPtr(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Float returns a pointer to f, for Spec literals.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n, for Spec literals.
func Int(n int64) *int64 { return &n }
