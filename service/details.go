package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// RoadDetails carries every stored column of a road plus the resolved
// taxonomy description and both endpoint names.
type RoadDetails struct {
	Cid        int     `json:"cid"`
	Tabcd      int     `json:"tabcd"`
	Lcd        int     `json:"lcd"`
	Class      string  `json:"class"`
	Tcd        int     `json:"tcd"`
	Stcd       int     `json:"stcd"`
	RoadNumber *string `json:"roadnumber"`
	Rnid       *int    `json:"rnid"`
	N1id       *int    `json:"n1id"`
	N2id       *int    `json:"n2id"`
	PolLcd     *int    `json:"pol_lcd"`
	PesLev     *string `json:"pes_lev"`
	Rdid       *string `json:"rdid"`
	RoadType   *string `json:"road_type"`
	StartName  *string `json:"start_name"`
	EndName    *string `json:"end_name"`
}

// GetRoadDetails returns the single road with the given local code, or nil
// when no road has that key. An unknown key is a normal outcome, not an
// error.
func (s *Service) GetRoadDetails(ctx context.Context, lcd int) (*RoadDetails, error) {
	query := `
		SELECT
			r.cid, r.tabcd, r.lcd, r.class, r.tcd, r.stcd,
			r.roadnumber, r.rnid, r.n1id, r.n2id, r.pol_lcd, r.pes_lev, r.rdid,
			s.sdesc AS road_type,
			n1.name AS start_name,
			n2.name AS end_name
		FROM roads r
		LEFT JOIN subtypes s ON r.class = s.class AND r.tcd = s.tcd AND r.stcd = s.stcd
		LEFT JOIN names n1 ON r.n1id = n1.nid AND n1.lid = 1
		LEFT JOIN names n2 ON r.n2id = n2.nid AND n2.lid = 1
		WHERE r.lcd = ?
		LIMIT 1`

	var d RoadDetails
	var roadNumber, pesLev, rdid, roadType, startName, endName sql.NullString
	var rnid, n1id, n2id, polLcd sql.NullInt64

	err := s.db.QueryRowContext(ctx, query, lcd).Scan(
		&d.Cid, &d.Tabcd, &d.Lcd, &d.Class, &d.Tcd, &d.Stcd,
		&roadNumber, &rnid, &n1id, &n2id, &polLcd, &pesLev, &rdid,
		&roadType, &startName, &endName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("road details query failed: %w", err)
	}

	d.RoadNumber = nullString(roadNumber)
	d.Rnid = nullInt(rnid)
	d.N1id = nullInt(n1id)
	d.N2id = nullInt(n2id)
	d.PolLcd = nullInt(polLcd)
	d.PesLev = nullString(pesLev)
	d.Rdid = nullString(rdid)
	d.RoadType = nullString(roadType)
	d.StartName = nullString(startName)
	d.EndName = nullString(endName)

	return &d, nil
}
