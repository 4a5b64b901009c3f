package service

import (
	"context"
	"database/sql"
	"fmt"
)

// PointFeature is one point of interest matched by a bounding box query.
type PointFeature struct {
	Lcd            int     `json:"lcd" doc:"Local code of the point"`
	Lon            float64 `json:"lon"`
	Lat            float64 `json:"lat"`
	Tcd            int     `json:"tcd" doc:"Taxonomy type code"`
	Stcd           int     `json:"stcd" doc:"Taxonomy subtype code"`
	PointType      *string `json:"point_type" doc:"Subtype description"`
	Name           *string `json:"name"`
	JunctionNumber *string `json:"junction_number"`
	Urban          *int    `json:"urban"`
}

// PointsInBBox returns every point whose own coordinates fall inside the
// box (inclusive bounds). Only points with a valid geometry are eligible.
// categories optionally restricts by subtype code.
func (s *Service) PointsInBBox(ctx context.Context, west, south, east, north float64, categories []int) ([]PointFeature, error) {
	filter, filterArgs := inFilter("p.stcd", categories)

	query := fmt.Sprintf(`
		SELECT
			p.lcd,
			p.lon,
			p.lat,
			p.tcd,
			p.stcd,
			s.sdesc AS point_type,
			n.name,
			p.junctionnumber AS junction_number,
			p.urban
		FROM points p
		LEFT JOIN subtypes s ON p.class = s.class AND p.tcd = s.tcd AND p.stcd = s.stcd
		LEFT JOIN names n ON p.n1id = n.nid AND n.lid = 1
		WHERE p.lon BETWEEN ? AND ?
			AND p.lat BETWEEN ? AND ?
			AND p.lon IS NOT NULL AND p.lat IS NOT NULL%s
		LIMIT %d`, filter, maxPointResults)

	args := append([]any{west, east, south, north}, filterArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("points query failed: %w", err)
	}
	defer rows.Close()

	var features []PointFeature
	for rows.Next() {
		var f PointFeature
		var pointType, name, junction sql.NullString
		var urban sql.NullInt64

		if err := rows.Scan(&f.Lcd, &f.Lon, &f.Lat, &f.Tcd, &f.Stcd,
			&pointType, &name, &junction, &urban); err != nil {
			return nil, fmt.Errorf("points query failed: %w", err)
		}

		f.PointType = nullString(pointType)
		f.Name = nullString(name)
		f.JunctionNumber = nullString(junction)
		f.Urban = nullInt(urban)

		features = append(features, f)
	}

	return features, rows.Err()
}
