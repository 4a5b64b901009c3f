package service

import (
	"context"
	"database/sql"
	"fmt"
)

type TypeCount struct {
	Type  string `json:"type" doc:"Subtype description"`
	Count int    `json:"count"`
}

type BBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

type Center struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type Statistics struct {
	TotalRoads         int         `json:"total_roads"`
	TotalPoints        int         `json:"total_points" doc:"Points with valid geometry"`
	TotalIntersections int         `json:"total_intersections"`
	RoadTypes          []TypeCount `json:"road_types"`
	PointTypes         []TypeCount `json:"point_types" doc:"Top 20 point types by count"`
	BBox               BBox        `json:"bbox" doc:"Envelope of all points with valid geometry"`
	Center             Center      `json:"center" doc:"Arithmetic midpoint of bbox"`
}

// GetStatistics computes totals, type breakdowns and the overall envelope
// of the dataset. It takes no parameters and is recomputed on every call.
func (s *Service) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM roads", &stats.TotalRoads},
		{"SELECT COUNT(*) FROM points WHERE lon IS NOT NULL AND lat IS NOT NULL", &stats.TotalPoints},
		{"SELECT COUNT(*) FROM intersections", &stats.TotalIntersections},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("statistics query failed: %w", err)
		}
	}

	roadTypes, err := s.typeCounts(ctx, `
		SELECT s.sdesc, COUNT(*) AS cnt
		FROM roads r
		JOIN subtypes s ON r.class = s.class AND r.tcd = s.tcd AND r.stcd = s.stcd
		GROUP BY s.sdesc
		ORDER BY cnt DESC, s.sdesc`)
	if err != nil {
		return nil, err
	}
	stats.RoadTypes = roadTypes

	pointTypes, err := s.typeCounts(ctx, `
		SELECT s.sdesc, COUNT(*) AS cnt
		FROM points p
		JOIN subtypes s ON p.class = s.class AND p.tcd = s.tcd AND p.stcd = s.stcd
		WHERE p.lon IS NOT NULL AND p.lat IS NOT NULL
		GROUP BY s.sdesc
		ORDER BY cnt DESC, s.sdesc
		LIMIT 20`)
	if err != nil {
		return nil, err
	}
	stats.PointTypes = pointTypes

	var west, south, east, north sql.NullFloat64
	err = s.db.QueryRowContext(ctx, `
		SELECT MIN(lon), MIN(lat), MAX(lon), MAX(lat)
		FROM points
		WHERE lon IS NOT NULL AND lat IS NOT NULL`).Scan(&west, &south, &east, &north)
	if err != nil {
		return nil, fmt.Errorf("statistics query failed: %w", err)
	}

	// An empty points table leaves the envelope at the zero value.
	if west.Valid && south.Valid && east.Valid && north.Valid {
		stats.BBox = BBox{West: west.Float64, South: south.Float64, East: east.Float64, North: north.Float64}
		stats.Center = Center{
			Lon: (west.Float64 + east.Float64) / 2,
			Lat: (south.Float64 + north.Float64) / 2,
		}
	}

	return stats, nil
}

func (s *Service) typeCounts(ctx context.Context, query string) ([]TypeCount, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("statistics query failed: %w", err)
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("statistics query failed: %w", err)
		}
		counts = append(counts, tc)
	}

	return counts, rows.Err()
}
