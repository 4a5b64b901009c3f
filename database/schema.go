package database

import (
	"database/sql"

	log "github.com/sirupsen/logrus"
)

const (
	TableCountries     = "countries"
	TableTypes         = "types"
	TableSubtypes      = "subtypes"
	TableAdminAreas    = "administrative_areas"
	TableRoads         = "roads"
	TablePoints        = "points"
	TableIntersections = "intersections"
	TableNames         = "names"
)

// Columns lists the columns of every table in load order. The ingest
// command intersects these with the columns found in a source file, so a
// file carrying extra columns loads fine and a file missing optional
// columns leaves them NULL.
var Columns = map[string][]string{
	TableCountries:  {"cid", "ecc", "ccd", "cname"},
	TableTypes:      {"class", "tcd", "tdesc", "tnatcd", "tnatdesc"},
	TableSubtypes:   {"class", "tcd", "stcd", "sdesc", "snatcode", "snatdesc"},
	TableAdminAreas: {"cid", "tabcd", "lcd", "class", "tcd", "stcd", "nid", "pol_lcd"},
	TableRoads: {"cid", "tabcd", "lcd", "class", "tcd", "stcd", "roadnumber",
		"rnid", "n1id", "n2id", "pol_lcd", "pes_lev", "rdid"},
	TablePoints: {"cid", "tabcd", "lcd", "class", "tcd", "stcd", "junctionnumber",
		"rnid", "n1id", "n2id", "pol_lcd", "oth_lcd", "seg_lcd", "roa_lcd",
		"inpos", "inneg", "outpos", "outneg", "presentpos", "presentneg",
		"diversionpos", "diversionneg", "xcoord", "ycoord", "interruptsroad",
		"urban", "jnid", "eov_x", "eov_y", "lon", "lat"},
	TableIntersections: {"cid", "tabcd", "lcd", "int_cid", "int_tabcd", "int_lcd"},
	TableNames:         {"cid", "lid", "nid", "name", "ncomment", "officialname"},
}

// Composite primary keys match the natural keys of the source taxonomy, so
// duplicate rows in a source file are skipped instead of piling up.
var createTableStatements = []string{
	`CREATE TABLE IF NOT EXISTS countries (
		cid INTEGER,
		ecc VARCHAR,
		ccd VARCHAR,
		cname VARCHAR,
		PRIMARY KEY (cid)
	)`,
	`CREATE TABLE IF NOT EXISTS types (
		class VARCHAR,
		tcd INTEGER,
		tdesc VARCHAR,
		tnatcd VARCHAR,
		tnatdesc VARCHAR,
		PRIMARY KEY (class, tcd)
	)`,
	`CREATE TABLE IF NOT EXISTS subtypes (
		class VARCHAR,
		tcd INTEGER,
		stcd INTEGER,
		sdesc VARCHAR,
		snatcode VARCHAR,
		snatdesc VARCHAR,
		PRIMARY KEY (class, tcd, stcd)
	)`,
	`CREATE TABLE IF NOT EXISTS administrative_areas (
		cid INTEGER,
		tabcd INTEGER,
		lcd INTEGER,
		class VARCHAR,
		tcd INTEGER,
		stcd INTEGER,
		nid INTEGER,
		pol_lcd INTEGER,
		PRIMARY KEY (cid, tabcd, lcd)
	)`,
	`CREATE TABLE IF NOT EXISTS roads (
		cid INTEGER,
		tabcd INTEGER,
		lcd INTEGER,
		class VARCHAR,
		tcd INTEGER,
		stcd INTEGER,
		roadnumber VARCHAR,
		rnid INTEGER,
		n1id INTEGER,
		n2id INTEGER,
		pol_lcd INTEGER,
		pes_lev VARCHAR,
		rdid VARCHAR,
		PRIMARY KEY (cid, tabcd, lcd)
	)`,
	`CREATE TABLE IF NOT EXISTS points (
		cid INTEGER,
		tabcd INTEGER,
		lcd INTEGER,
		class VARCHAR,
		tcd INTEGER,
		stcd INTEGER,
		junctionnumber VARCHAR,
		rnid INTEGER,
		n1id INTEGER,
		n2id INTEGER,
		pol_lcd INTEGER,
		oth_lcd INTEGER,
		seg_lcd INTEGER,
		roa_lcd INTEGER,
		inpos INTEGER,
		inneg INTEGER,
		outpos INTEGER,
		outneg INTEGER,
		presentpos INTEGER,
		presentneg INTEGER,
		diversionpos VARCHAR,
		diversionneg VARCHAR,
		xcoord VARCHAR,
		ycoord VARCHAR,
		interruptsroad VARCHAR,
		urban INTEGER,
		jnid VARCHAR,
		eov_x DOUBLE,
		eov_y DOUBLE,
		lon DOUBLE,
		lat DOUBLE,
		PRIMARY KEY (cid, tabcd, lcd)
	)`,
	`CREATE TABLE IF NOT EXISTS intersections (
		cid INTEGER,
		tabcd INTEGER,
		lcd INTEGER,
		int_cid INTEGER,
		int_tabcd INTEGER,
		int_lcd INTEGER,
		PRIMARY KEY (cid, tabcd, lcd, int_cid, int_tabcd, int_lcd)
	)`,
	`CREATE TABLE IF NOT EXISTS names (
		cid INTEGER,
		lid INTEGER,
		nid INTEGER,
		name VARCHAR,
		ncomment VARCHAR,
		officialname VARCHAR,
		PRIMARY KEY (cid, lid, nid)
	)`,
}

var createIndexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_roads_roadnumber ON roads(roadnumber)`,
	`CREATE INDEX IF NOT EXISTS idx_roads_class ON roads(class, tcd, stcd)`,
	`CREATE INDEX IF NOT EXISTS idx_points_type ON points(class, tcd, stcd)`,
	`CREATE INDEX IF NOT EXISTS idx_points_road ON points(roa_lcd)`,
	`CREATE INDEX IF NOT EXISTS idx_names_nid ON names(nid)`,
}

// CreateTables creates all tables of the road-network schema.
func CreateTables(db *sql.DB) error {
	for _, stmt := range createTableStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	log.Info("Tables created successfully")
	return nil
}

// CreateIndexes creates the secondary indexes that keep the taxonomy joins
// and filters of the query layer cheap.
func CreateIndexes(db *sql.DB) error {
	for _, stmt := range createIndexStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	log.Info("Indexes created successfully")
	return nil
}

// CreateSpatialIndex loads the DuckDB spatial extension, derives the point
// geometry from the parsed WGS84 coordinates and builds an RTREE index over
// it. The geometry is computed once here, never at query time, and only for
// rows where both coordinates parsed.
func CreateSpatialIndex(db *sql.DB) error {
	// INSTALL is a no-op when the extension is already present.
	if _, err := db.Exec("INSTALL spatial"); err != nil {
		log.Warnf("Failed to install spatial extension: %v", err)
	}
	if _, err := db.Exec("LOAD spatial"); err != nil {
		return err
	}

	stmts := []string{
		`ALTER TABLE points ADD COLUMN IF NOT EXISTS geometry GEOMETRY`,
		`UPDATE points SET geometry = ST_Point(lon, lat)
			WHERE lon IS NOT NULL AND lat IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_points_geometry ON points USING RTREE (geometry)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	log.Info("Spatial index created successfully")
	return nil
}
