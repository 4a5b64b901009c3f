package service

import (
	"context"
	"database/sql"
	"fmt"
)

// SearchResult is one name match. A name referenced by several points
// yields one row per distinct (name, point) combination.
type SearchResult struct {
	Nid          int      `json:"nid" doc:"Name id"`
	Name         string   `json:"name"`
	OfficialName *string  `json:"officialname"`
	Lon          *float64 `json:"lon"`
	Lat          *float64 `json:"lat"`
	Type         *string  `json:"type" doc:"Subtype description of the matched point"`
}

// SearchLocations finds names containing the given text,
// case-insensitively. Only names resolving to at least one point with valid
// geometry are returned. The minimum query length is enforced at the
// boundary, not here.
func (s *Service) SearchLocations(ctx context.Context, text string, limit int) ([]SearchResult, error) {
	query := `
		SELECT DISTINCT
			n.nid,
			n.name,
			n.officialname,
			p.lon,
			p.lat,
			s.sdesc AS type
		FROM names n
		JOIN points p ON n.nid = p.n1id
		LEFT JOIN subtypes s ON p.class = s.class AND p.tcd = s.tcd AND p.stcd = s.stcd
		WHERE LOWER(n.name) LIKE LOWER(?)
			AND p.lon IS NOT NULL AND p.lat IS NOT NULL
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, "%"+text+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var official, typ sql.NullString
		var lon, lat sql.NullFloat64

		if err := rows.Scan(&r.Nid, &r.Name, &official, &lon, &lat, &typ); err != nil {
			return nil, fmt.Errorf("search query failed: %w", err)
		}

		r.OfficialName = nullString(official)
		r.Lon = nullFloat(lon)
		r.Lat = nullFloat(lat)
		r.Type = nullString(typ)

		results = append(results, r)
	}

	return results, rows.Err()
}
