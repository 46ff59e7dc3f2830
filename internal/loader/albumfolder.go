package loader

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/mesh-intelligence/shoebox/internal/schema"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// loadAlbumsAndFolders is the two-pass album/folder load.
//
// Pass 1 reads the multiplexed generic-album table flat, splitting rows by
// their kind discriminator, and attaches album membership with explicit sort
// orders. Pass 2 resolves parent chains into folder paths; a cycle fails the
// individual chain with a diagnostic, never the load.
func (l *Loader) loadAlbumsAndFolders(res *Result) error {
	if err := l.loadGenericAlbumRows(res); err != nil {
		return err
	}
	if err := l.loadAlbumMembership(res); err != nil {
		return err
	}
	l.resolveFolderPaths(res)
	l.buildFolderChildren(res)
	return nil
}

func (l *Loader) loadGenericAlbumRows(res *Result) error {
	rows, err := l.conn.Execute(`SELECT
		Z_PK, ZUUID, ZTITLE, ZKIND, ZPARENTFOLDER, ZTRASHEDSTATE,
		ZCLOUDLOCALSTATE, ZCLOUDOWNERHASHEDPERSONID
		FROM ZGENERICALBUM ORDER BY Z_PK`)
	if err != nil {
		return err
	}
	defer rows.Close()

	rootCount := 0
	for rows.Next() {
		var (
			pk                      int64
			uuid, title             sql.NullString
			kind                    sql.NullInt64
			parent, trashed, cloudL sql.NullInt64
			cloudOwner              sql.NullString
		)
		if err := rows.Scan(&pk, &uuid, &title, &kind, &parent, &trashed, &cloudL, &cloudOwner); err != nil {
			l.diag(types.DiagCorruptRow, fmt.Sprintf("album pk=%d", pk), err.Error())
			continue
		}
		if !uuid.Valid || uuid.String == "" {
			l.diag(types.DiagCorruptRow, fmt.Sprintf("album pk=%d", pk), "missing UUID")
			continue
		}

		switch kind.Int64 {
		case schema.KindAlbum, schema.KindSharedAlbum:
			res.Albums = append(res.Albums, &types.Album{
				UUID:            uuid.String,
				PK:              pk,
				Title:           types.NormalizeUnicode(title.String),
				ParentPK:        parent.Int64,
				Trashed:         trashed.Int64 != 0,
				CloudLocalState: cloudL.Int64,
				CloudOwner:      cloudOwner.String,
			})
		case schema.KindFolder:
			res.Folders = append(res.Folders, &types.Folder{
				UUID:     uuid.String,
				PK:       pk,
				Title:    types.NormalizeUnicode(title.String),
				ParentPK: parent.Int64,
			})
		case schema.KindRootFolder:
			rootCount++
			res.RootFolderPK = pk
			res.Folders = append(res.Folders, &types.Folder{
				UUID:  uuid.String,
				PK:    pk,
				Title: types.NormalizeUnicode(title.String),
			})
		default:
			// Import sessions, projects, and future kinds are not part of
			// the reconstructed model.
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if rootCount != 1 {
		return fmt.Errorf("expected exactly one root folder, found %d", rootCount)
	}
	return nil
}

// loadAlbumMembership attaches (asset UUID, sort order) pairs to every album
// through the version-mapped join table, sorted by the explicit order key.
// Default row order is not the user-visible order.
func (l *Loader) loadAlbumMembership(res *Result) error {
	query := fmt.Sprintf(`SELECT
		ZGENERICALBUM.ZUUID, %[1]s.ZUUID, %[4]s
		FROM %[1]s
		JOIN %[2]s ON %[3]s = %[1]s.Z_PK
		JOIN ZGENERICALBUM ON ZGENERICALBUM.Z_PK = %[5]s`,
		l.tm.AssetTable, l.tm.AssetAlbumTable, l.tm.AlbumAssetFK,
		l.tm.AlbumSortOrder, l.tm.AlbumFK)

	rows, err := l.conn.Execute(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	albumByUUID := make(map[string]*types.Album, len(res.Albums))
	for _, a := range res.Albums {
		albumByUUID[a.UUID] = a
	}

	for rows.Next() {
		var albumUUID, assetUUID sql.NullString
		var sortOrder sql.NullInt64
		if err := rows.Scan(&albumUUID, &assetUUID, &sortOrder); err != nil {
			l.diag(types.DiagCorruptRow, "album membership", err.Error())
			continue
		}

		album, ok := albumByUUID[albumUUID.String]
		if !ok {
			// Membership for folders, import sessions, and other kinds that
			// are not reconstructed albums is not an inconsistency.
			continue
		}
		album.Members = append(album.Members, types.AlbumMember{
			AssetUUID: assetUUID.String,
			SortOrder: sortOrder.Int64,
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, a := range res.Albums {
		members := a.Members
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].SortOrder < members[j].SortOrder
		})
	}
	return nil
}

// resolveFolderPaths walks each album's parent chain to the root, tracking
// visited keys. A cycle fails the single chain: the album keeps a nil path
// and a diagnostic records the loop.
func (l *Loader) resolveFolderPaths(res *Result) {
	folderByPK := make(map[int64]*types.Folder, len(res.Folders))
	for _, f := range res.Folders {
		folderByPK[f.PK] = f
	}

	for _, album := range res.Albums {
		if album.CloudOwner != "" {
			// Shared albums cannot live in folders.
			album.FolderPath = []string{}
			continue
		}

		path, err := l.walkParentChain(album.ParentPK, res.RootFolderPK, folderByPK)
		if err != nil {
			l.diag(types.DiagFolderCycle, album.UUID, err.Error())
			continue
		}
		album.FolderPath = path
	}
}

func (l *Loader) walkParentChain(startPK, rootPK int64, folderByPK map[int64]*types.Folder) ([]string, error) {
	path := []string{}
	visited := make(map[int64]bool)
	pk := startPK

	for pk != 0 && pk != rootPK {
		if visited[pk] {
			return nil, fmt.Errorf("%w: folder pk=%d revisited", types.ErrCycleDetected, pk)
		}
		visited[pk] = true

		folder, ok := folderByPK[pk]
		if !ok {
			// Chain points outside the loaded folder set; treat the walk as
			// ended rather than failing the album.
			l.diag(types.DiagReferentialInconsistency, fmt.Sprintf("folder pk=%d", pk),
				"parent chain references unloaded folder")
			break
		}
		path = append([]string{folder.Title}, path...)
		pk = folder.ParentPK
	}
	return path, nil
}

// buildFolderChildren fills each folder's child key lists.
func (l *Loader) buildFolderChildren(res *Result) {
	folderByPK := make(map[int64]*types.Folder, len(res.Folders))
	for _, f := range res.Folders {
		folderByPK[f.PK] = f
	}

	for _, f := range res.Folders {
		if f.PK == res.RootFolderPK || f.ParentPK == 0 {
			continue
		}
		if parent, ok := folderByPK[f.ParentPK]; ok {
			parent.ChildFolderPKs = append(parent.ChildFolderPKs, f.PK)
		}
	}
	for _, a := range res.Albums {
		if a.ParentPK == 0 {
			continue
		}
		if parent, ok := folderByPK[a.ParentPK]; ok {
			parent.ChildAlbumPKs = append(parent.ChildAlbumPKs, a.PK)
		}
	}
}
