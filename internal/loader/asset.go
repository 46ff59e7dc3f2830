package loader

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// Kind subtypes on the asset row.
const (
	subtypeLivePhoto  int64 = 2
	subtypeScreenshot int64 = 10
)

// savedAssetTypeCloudOnly marks an asset whose original was never downloaded
// to this library; its file is not present locally.
const savedAssetTypeCloudOnly int64 = 6

// missingCoordinate is the store's marker for "no location".
const missingCoordinate = -180.0

// loadAssets runs the single joined query over the asset table and its
// additional-attributes side table and produces the canonical UUID-keyed
// asset sequence every other loader references.
func (l *Loader) loadAssets(res *Result) error {
	libraryScope := "NULL"
	if l.tm.HasLibraryScope {
		libraryScope = l.tm.AssetTable + ".ZLIBRARYSCOPE"
	}

	query := fmt.Sprintf(`SELECT
		%[1]s.Z_PK,
		%[1]s.ZUUID,
		%[1]s.ZFILENAME,
		%[1]s.ZDIRECTORY,
		%[1]s.ZDATECREATED,
		%[1]s.ZMODIFICATIONDATE,
		%[1]s.ZADDEDDATE,
		%[1]s.ZTRASHEDDATE,
		%[1]s.ZTRASHEDSTATE,
		%[1]s.ZHIDDEN,
		%[1]s.ZFAVORITE,
		%[1]s.ZHEIGHT,
		%[1]s.ZWIDTH,
		%[1]s.ZORIENTATION,
		%[1]s.%[2]s,
		%[1]s.ZLATITUDE,
		%[1]s.ZLONGITUDE,
		%[1]s.ZKINDSUBTYPE,
		%[1]s.%[3]s,
		%[1]s.%[4]s,
		%[1]s.ZAVALANCHEUUID,
		%[1]s.ZSAVEDASSETTYPE,
		%[1]s.ZHASADJUSTMENTS,
		%[1]s.ZMOMENTSHARE,
		%[5]s,
		ZADDITIONALASSETATTRIBUTES.ZORIGINALFILENAME,
		ZADDITIONALASSETATTRIBUTES.ZTITLE,
		ZADDITIONALASSETATTRIBUTES.ZTIMEZONENAME,
		ZADDITIONALASSETATTRIBUTES.ZTIMEZONEOFFSET,
		ZADDITIONALASSETATTRIBUTES.ZORIGINALFILESIZE
		FROM %[1]s
		JOIN ZADDITIONALASSETATTRIBUTES ON ZADDITIONALASSETATTRIBUTES.ZASSET = %[1]s.Z_PK
		ORDER BY %[1]s.Z_PK`,
		l.tm.AssetTable, l.tm.UTIColumn, l.tm.HDRColumn, l.tm.DepthColumn, libraryScope)

	rows, err := l.conn.Execute(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	res.AssetByUUID = make(map[string]*types.Asset)

	for rows.Next() {
		var (
			pk                                      int64
			uuid, filename, directory               sql.NullString
			dateCreated, modDate, added, trashedAt  sql.NullFloat64
			trashedState, hidden, favorite          sql.NullInt64
			height, width, orientation              sql.NullInt64
			uti                                     sql.NullString
			lat, lon                                sql.NullFloat64
			kindSubtype, hdr, depth                 sql.NullInt64
			avalancheUUID                           sql.NullString
			savedAssetType, hasAdjustments          sql.NullInt64
			momentShare, libScope                   sql.NullInt64
			originalFilename, title, tzName         sql.NullString
			tzOffset                                sql.NullInt64
			sizeBytes                               sql.NullInt64
		)
		if err := rows.Scan(&pk, &uuid, &filename, &directory,
			&dateCreated, &modDate, &added, &trashedAt,
			&trashedState, &hidden, &favorite,
			&height, &width, &orientation, &uti, &lat, &lon,
			&kindSubtype, &hdr, &depth, &avalancheUUID,
			&savedAssetType, &hasAdjustments, &momentShare, &libScope,
			&originalFilename, &title, &tzName, &tzOffset, &sizeBytes); err != nil {
			l.diag(types.DiagCorruptRow, fmt.Sprintf("asset pk=%d", pk), err.Error())
			continue
		}

		if !uuid.Valid || uuid.String == "" {
			l.diag(types.DiagCorruptRow, fmt.Sprintf("asset pk=%d", pk), "missing UUID")
			continue
		}

		loc, zoneName, offset := resolveZone(tzName, tzOffset)
		date, ok := storeTime(dateCreated, loc)
		if !ok {
			l.diag(types.DiagInvalidTimestamp, uuid.String,
				"creation date null or undecodable, using default")
		}

		a := &types.Asset{
			UUID:             uuid.String,
			PK:               pk,
			Filename:         filename.String,
			OriginalFilename: originalFilename.String,
			Directory:        directory.String,
			Title:            types.NormalizeUnicode(title.String),
			Date:             date,
			ModDate:          optionalStoreTime(modDate, loc),
			AddedDate:        optionalStoreTime(added, loc),
			TrashedDate:      optionalStoreTime(trashedAt, loc),
			TimezoneName:     zoneName,
			TZOffsetSec:      offset,
			Height:           height.Int64,
			Width:            width.Int64,
			Orientation:      orientation.Int64,
			SizeBytes:        sizeBytes.Int64,
			UTI:              uti.String,
			Favorite:         favorite.Int64 != 0,
			Hidden:           hidden.Int64 != 0,
			Trashed:          trashedState.Int64 != 0,
			Missing:          savedAssetType.Int64 == savedAssetTypeCloudOnly,
			Burst:            avalancheUUID.Valid && avalancheUUID.String != "",
			BurstUUID:        avalancheUUID.String,
			Live:             kindSubtype.Int64 == subtypeLivePhoto,
			Screenshot:       kindSubtype.Int64 == subtypeScreenshot,
			Raw:              isRawUTI(uti.String),
			HDR:              hdr.Int64 != 0,
			Portrait:         depth.Int64 != 0,
			Shared:           momentShare.Valid || libScope.Valid,
			HasAdjustments:   hasAdjustments.Int64 != 0,
		}

		if lat.Valid && lon.Valid && lat.Float64 != missingCoordinate && lon.Float64 != missingCoordinate {
			a.Location = &types.Location{Latitude: lat.Float64, Longitude: lon.Float64}
		}

		res.Assets = append(res.Assets, a)
		res.AssetByUUID[a.UUID] = a
	}
	return rows.Err()
}

// isRawUTI reports whether a uniform type identifier names a camera raw
// format.
func isRawUTI(uti string) bool {
	return strings.HasSuffix(uti, "raw-image") || uti == "com.adobe.raw-image"
}
