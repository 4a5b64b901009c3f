package service

import (
	"context"
	"database/sql"
	"fmt"
)

// RoadFeature is one road matched by a bounding box query. A road has no
// geometry of its own; start/end carry the min/max envelope over the road's
// points that fell inside the queried box, not the road's true shape.
type RoadFeature struct {
	Lcd        int      `json:"lcd" doc:"Local code of the road"`
	RoadNumber *string  `json:"roadnumber" doc:"Road number, e.g. M1"`
	Class      string   `json:"class" doc:"Taxonomy class"`
	Tcd        int      `json:"tcd" doc:"Taxonomy type code"`
	Stcd       int      `json:"stcd" doc:"Taxonomy subtype code"`
	RoadType   *string  `json:"road_type" doc:"Subtype description"`
	StartName  *string  `json:"start_name" doc:"Name of the first endpoint"`
	EndName    string   `json:"end_name" doc:"Always empty, kept for the response shape"`
	StartLon   *float64 `json:"start_lon"`
	StartLat   *float64 `json:"start_lat"`
	EndLon     *float64 `json:"end_lon"`
	EndLat     *float64 `json:"end_lat"`
}

// RoadsInBBox returns every distinct road with at least one associated
// point inside the box (inclusive bounds). An inverted or degenerate box
// simply matches nothing. roadTypes optionally restricts by subtype code.
func (s *Service) RoadsInBBox(ctx context.Context, west, south, east, north float64, roadTypes []int) ([]RoadFeature, error) {
	filter, filterArgs := inFilter("r.stcd", roadTypes)

	query := fmt.Sprintf(`
		SELECT
			r.lcd,
			r.roadnumber,
			r.class,
			r.tcd,
			r.stcd,
			s.sdesc AS road_type,
			n.name AS start_name,
			MIN(p.lon) AS start_lon,
			MIN(p.lat) AS start_lat,
			MAX(p.lon) AS end_lon,
			MAX(p.lat) AS end_lat
		FROM roads r
		JOIN points p ON r.lcd = p.roa_lcd
		LEFT JOIN subtypes s ON r.class = s.class AND r.tcd = s.tcd AND r.stcd = s.stcd
		LEFT JOIN names n ON r.n1id = n.nid AND n.lid = 1
		WHERE p.lon BETWEEN ? AND ?
			AND p.lat BETWEEN ? AND ?%s
		GROUP BY r.lcd, r.roadnumber, r.class, r.tcd, r.stcd, s.sdesc, n.name
		LIMIT %d`, filter, maxRoadResults)

	args := append([]any{west, east, south, north}, filterArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("roads query failed: %w", err)
	}
	defer rows.Close()

	var features []RoadFeature
	for rows.Next() {
		var f RoadFeature
		var roadNumber, roadType, startName sql.NullString
		var startLon, startLat, endLon, endLat sql.NullFloat64

		if err := rows.Scan(&f.Lcd, &roadNumber, &f.Class, &f.Tcd, &f.Stcd,
			&roadType, &startName, &startLon, &startLat, &endLon, &endLat); err != nil {
			return nil, fmt.Errorf("roads query failed: %w", err)
		}

		f.RoadNumber = nullString(roadNumber)
		f.RoadType = nullString(roadType)
		f.StartName = nullString(startName)
		f.StartLon = nullFloat(startLon)
		f.StartLat = nullFloat(startLat)
		f.EndLon = nullFloat(endLon)
		f.EndLat = nullFloat(endLat)

		features = append(features, f)
	}

	return features, rows.Err()
}
