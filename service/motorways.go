package service

import (
	"context"
	"fmt"
)

type Motorway struct {
	Road     string `json:"road" doc:"Road number, e.g. M1"`
	Segments int    `json:"segments" doc:"Number of road segment rows sharing the number"`
}

// GetMotorways lists every distinct road number starting with M and how
// many segment rows share it, ordered ascending by road number.
func (s *Service) GetMotorways(ctx context.Context) ([]Motorway, error) {
	query := `
		SELECT r.roadnumber, COUNT(*) AS segment_count
		FROM roads r
		WHERE r.roadnumber LIKE 'M%'
		GROUP BY r.roadnumber
		ORDER BY r.roadnumber`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("motorways query failed: %w", err)
	}
	defer rows.Close()

	var motorways []Motorway
	for rows.Next() {
		var m Motorway
		if err := rows.Scan(&m.Road, &m.Segments); err != nil {
			return nil, fmt.Errorf("motorways query failed: %w", err)
		}
		motorways = append(motorways, m)
	}

	return motorways, rows.Err()
}
