package loader

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// loadPersonsAndFaces loads person clusters and per-asset face regions.
//
// Three face states must survive the load: identified (linked to a named
// person), automatically detected but unidentified (linked to the unnamed
// cluster), and manually added with no person link at all. The last state is
// invisible to the plain person join and needs its own query.
func (l *Loader) loadPersonsAndFaces(res *Result) error {
	if err := l.loadPersons(res); err != nil {
		return err
	}

	personByPK := make(map[int64]*types.Person, len(res.Persons))
	for _, p := range res.Persons {
		personByPK[p.PK] = p
	}

	if err := l.loadLinkedFaces(res, personByPK); err != nil {
		return err
	}
	return l.loadManualUnnamedFaces(res)
}

func (l *Loader) loadPersons(res *Result) error {
	rows, err := l.conn.Execute(`SELECT
		Z_PK, ZPERSONUUID, ZFULLNAME, ZDISPLAYNAME, ZFACECOUNT, ZKEYFACE, ZTYPE
		FROM ZPERSON ORDER BY Z_PK`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pk                          int64
			uuid, fullname, displayName sql.NullString
			faceCount, keyFace, ptype   sql.NullInt64
		)
		if err := rows.Scan(&pk, &uuid, &fullname, &displayName, &faceCount, &keyFace, &ptype); err != nil {
			l.diag(types.DiagCorruptRow, fmt.Sprintf("person pk=%d", pk), err.Error())
			continue
		}

		// A cluster with no name is a detected-but-unidentified person, not
		// a decoding failure.
		name := types.UnknownPerson
		if fullname.Valid && fullname.String != "" {
			name = types.NormalizeUnicode(fullname.String)
		}

		res.Persons = append(res.Persons, &types.Person{
			PK:          pk,
			UUID:        uuid.String,
			Name:        name,
			DisplayName: types.NormalizeUnicode(displayName.String),
			FaceCount:   faceCount.Int64,
			KeyFacePK:   keyFace.Int64,
			Favorite:    ptype.Int64 == 1,
		})
	}
	return rows.Err()
}

// loadLinkedFaces loads every face with a person link. The asset reference
// is resolved against the already-loaded asset set; a face pointing at an
// asset that was skipped keeps an empty AssetUUID and gets a diagnostic.
func (l *Loader) loadLinkedFaces(res *Result, personByPK map[int64]*types.Person) error {
	query := fmt.Sprintf(`SELECT
		ZDETECTEDFACE.Z_PK, ZDETECTEDFACE.ZUUID, %s, %s,
		ZDETECTEDFACE.ZMANUAL,
		ZDETECTEDFACE.ZCENTERX, ZDETECTEDFACE.ZCENTERY,
		ZDETECTEDFACE.ZSIZE, ZDETECTEDFACE.ZQUALITY
		FROM ZDETECTEDFACE
		WHERE %s IS NOT NULL
		ORDER BY ZDETECTEDFACE.Z_PK`,
		l.tm.FaceAssetFK, l.tm.FacePersonFK, l.tm.FacePersonFK)

	return l.scanFaces(res, query, func(f *types.Face) {
		person, known := personByPK[f.PersonPK]
		switch {
		case !known:
			// Person row never loaded: keep the face, mark the relation.
			l.diag(types.DiagReferentialInconsistency, f.UUID,
				fmt.Sprintf("face references unloaded person pk=%d", f.PersonPK))
			f.State = types.FaceUnidentified
		case person.Unknown():
			f.State = types.FaceUnidentified
		default:
			f.State = types.FaceIdentified
		}
	})
}

// loadManualUnnamedFaces is the targeted query for manually added faces with
// no person link; the default relation never surfaces them.
func (l *Loader) loadManualUnnamedFaces(res *Result) error {
	query := fmt.Sprintf(`SELECT
		ZDETECTEDFACE.Z_PK, ZDETECTEDFACE.ZUUID, %s, %s,
		ZDETECTEDFACE.ZMANUAL,
		ZDETECTEDFACE.ZCENTERX, ZDETECTEDFACE.ZCENTERY,
		ZDETECTEDFACE.ZSIZE, ZDETECTEDFACE.ZQUALITY
		FROM ZDETECTEDFACE
		WHERE %s IS NULL AND ZDETECTEDFACE.ZMANUAL = 1
		ORDER BY ZDETECTEDFACE.Z_PK`,
		l.tm.FaceAssetFK, l.tm.FacePersonFK, l.tm.FacePersonFK)

	return l.scanFaces(res, query, func(f *types.Face) {
		f.State = types.FaceManualUnnamed
	})
}

func (l *Loader) scanFaces(res *Result, query string, classify func(*types.Face)) error {
	rows, err := l.conn.Execute(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	assetUUIDByPK := make(map[int64]string, len(res.Assets))
	for _, a := range res.Assets {
		assetUUIDByPK[a.PK] = a.UUID
	}

	for rows.Next() {
		var (
			pk                             int64
			uuid                           sql.NullString
			assetPK, personPK, manual      sql.NullInt64
			centerX, centerY, size, quality sql.NullFloat64
		)
		if err := rows.Scan(&pk, &uuid, &assetPK, &personPK, &manual,
			&centerX, &centerY, &size, &quality); err != nil {
			l.diag(types.DiagCorruptRow, fmt.Sprintf("face pk=%d", pk), err.Error())
			continue
		}

		f := &types.Face{
			PK:       pk,
			UUID:     uuid.String,
			PersonPK: personPK.Int64,
			Manual:   manual.Int64 != 0,
			CenterX:  centerX.Float64,
			CenterY:  centerY.Float64,
			Size:     size.Float64,
			Quality:  quality.Float64,
		}

		if au, ok := assetUUIDByPK[assetPK.Int64]; ok {
			f.AssetUUID = au
		} else {
			l.diag(types.DiagReferentialInconsistency, f.UUID,
				fmt.Sprintf("face references unloaded asset pk=%d", assetPK.Int64))
		}

		classify(f)
		res.Faces = append(res.Faces, f)
	}
	return rows.Err()
}
