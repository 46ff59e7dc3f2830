package loader

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// loadKeywords builds the keyword → asset UUID reverse index through the
// version-mapped keyword join.
func (l *Loader) loadKeywords(res *Result) error {
	query := fmt.Sprintf(`SELECT ZKEYWORD.ZTITLE, %[1]s.ZUUID
		FROM %[1]s
		JOIN ZADDITIONALASSETATTRIBUTES ON ZADDITIONALASSETATTRIBUTES.ZASSET = %[1]s.Z_PK
		JOIN Z_1KEYWORDS ON Z_1KEYWORDS.Z_1ASSETATTRIBUTES = ZADDITIONALASSETATTRIBUTES.Z_PK
		JOIN ZKEYWORD ON ZKEYWORD.Z_PK = %[2]s
		ORDER BY ZKEYWORD.ZTITLE, %[1]s.Z_PK`,
		l.tm.AssetTable, l.tm.KeywordFK)

	rows, err := l.conn.Execute(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	byTitle := make(map[string]*types.Keyword)
	for rows.Next() {
		var title, assetUUID sql.NullString
		if err := rows.Scan(&title, &assetUUID); err != nil {
			l.diag(types.DiagCorruptRow, "keyword", err.Error())
			continue
		}
		if !title.Valid || title.String == "" || !assetUUID.Valid {
			l.diag(types.DiagCorruptRow, "keyword", "null title or asset UUID")
			continue
		}

		normalized := types.NormalizeUnicode(title.String)
		kw, exists := byTitle[normalized]
		if !exists {
			kw = &types.Keyword{Title: normalized}
			byTitle[normalized] = kw
			res.Keywords = append(res.Keywords, kw)
		}
		kw.AssetUUIDs = append(kw.AssetUUIDs, assetUUID.String)
	}
	return rows.Err()
}
