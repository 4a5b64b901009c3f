package ingest

import (
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/database"
)

// source files by table, loaded in this order. POINTS.DAT is handled
// separately because of the coordinate conversion.
var sourceFiles = []struct {
	filename string
	table    string
}{
	{"COUNTRIES.DAT", database.TableCountries},
	{"TYPES.DAT", database.TableTypes},
	{"SUBTYPES.DAT", database.TableSubtypes},
	{"ADMINISTRATIVEAREA.DAT", database.TableAdminAreas},
	{"ROADS.DAT", database.TableRoads},
	{"INTERSECTIONS.DAT", database.TableIntersections},
	{"NAMES.DAT", database.TableNames},
}

// Run loads a directory of source files into the store: tables, data,
// secondary indexes and the spatial index over point geometries. A file
// that is missing or fails to load leaves its table at its prior state and
// does not abort the batch; a failure to create the schema or the indexes
// does.
func Run(db *sql.DB, dataDir string) error {
	if err := database.CreateTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %v", err)
	}

	for _, f := range sourceFiles {
		count, err := loadTable(db, filepath.Join(dataDir, f.filename), f.table)
		if err != nil {
			log.Errorf("Error loading %s: %v", f.filename, err)
			continue
		}
		log.Infof("Loaded %d rows into %s", count, f.table)
	}

	if err := loadPoints(db, filepath.Join(dataDir, "POINTS.DAT")); err != nil {
		log.Errorf("Error loading POINTS.DAT: %v", err)
	}

	if err := database.CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %v", err)
	}
	if err := database.CreateSpatialIndex(db); err != nil {
		return fmt.Errorf("failed to create spatial index: %v", err)
	}

	ReportStats(db)
	return nil
}

// loadTable replaces the contents of a table with the records of one source
// file. Loading is delete-then-insert so re-running ingest is idempotent,
// and duplicate natural keys within a file are skipped rather than failing
// the load.
func loadTable(db *sql.DB, path, table string) (int, error) {
	r, err := OpenDAT(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	cols, idxs := insertableColumns(r.Columns(), database.Columns[table])
	if len(cols) == 0 {
		return 0, fmt.Errorf("no known columns in %s", path)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(insertStatement(table, cols))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		if _, err := stmt.Exec(recordValues(record, idxs)...); err != nil {
			return 0, err
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// loadPoints loads POINTS.DAT, decoding the fixed-point coordinate strings
// into WGS84 lon/lat. Rows where either coordinate fails to decode are
// dropped; they could never be returned by a spatial query anyway.
func loadPoints(db *sql.DB, path string) error {
	r, err := OpenDAT(path)
	if err != nil {
		return err
	}
	defer r.Close()

	xcoordIdx, ycoordIdx := -1, -1
	for i, col := range r.Columns() {
		switch col {
		case "xcoord":
			xcoordIdx = i
		case "ycoord":
			ycoordIdx = i
		}
	}
	if xcoordIdx < 0 || ycoordIdx < 0 {
		return fmt.Errorf("%s is missing coordinate columns", path)
	}

	schemaCols := make([]string, 0, len(database.Columns[database.TablePoints]))
	for _, col := range database.Columns[database.TablePoints] {
		if col != "lon" && col != "lat" {
			schemaCols = append(schemaCols, col)
		}
	}
	cols, idxs := insertableColumns(r.Columns(), schemaCols)
	cols = append(cols, "lon", "lat")

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM points"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(insertStatement(database.TablePoints, cols))
	if err != nil {
		return err
	}
	defer stmt.Close()

	total, valid := 0, 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		total++

		lon, lonOK := ParseCoordinate(record[xcoordIdx])
		lat, latOK := ParseCoordinate(record[ycoordIdx])
		if !lonOK || !latOK {
			continue
		}

		args := append(recordValues(record, idxs), lon, lat)
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
		valid++
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Infof("Valid coordinates: %d/%d points", valid, total)
	return nil
}

// insertableColumns intersects the columns found in a source file with the
// table schema, returning the column names to insert and their positions in
// the file record.
func insertableColumns(fileCols, schemaCols []string) ([]string, []int) {
	known := make(map[string]bool, len(schemaCols))
	for _, col := range schemaCols {
		known[col] = true
	}

	var cols []string
	var idxs []int
	for i, col := range fileCols {
		if known[col] {
			cols = append(cols, col)
			idxs = append(idxs, i)
		}
	}
	return cols, idxs
}

func insertStatement(table string, cols []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	return fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders)
}

// recordValues picks the insertable fields out of a record. Empty fields
// become NULL, everything else is passed as text and cast by the store.
func recordValues(record []string, idxs []int) []any {
	values := make([]any, 0, len(idxs))
	for _, idx := range idxs {
		if idx >= len(record) {
			values = append(values, nil)
			continue
		}
		v := strings.TrimSpace(record[idx])
		if v == "" {
			values = append(values, nil)
		} else {
			values = append(values, v)
		}
	}
	return values
}

// ReportStats logs row counts per table and the road type breakdown after a
// load, a quick sanity check on the ingested batch.
func ReportStats(db *sql.DB) {
	log.Info("Database statistics:")

	for _, table := range []string{
		database.TableCountries, database.TableTypes, database.TableSubtypes,
		database.TableAdminAreas, database.TableRoads, database.TablePoints,
		database.TableIntersections, database.TableNames,
	} {
		var count int
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			log.Errorf("Error counting %s: %v", table, err)
			continue
		}
		log.Infof("  %s: %d rows", table, count)
	}

	var geoCount int
	err := db.QueryRow("SELECT COUNT(*) FROM points WHERE lon IS NOT NULL AND lat IS NOT NULL").Scan(&geoCount)
	if err == nil {
		log.Infof("  points with geometry: %d", geoCount)
	}

	rows, err := db.Query(`
		SELECT s.sdesc, COUNT(*) AS cnt
		FROM roads r
		JOIN subtypes s ON r.class = s.class AND r.tcd = s.tcd AND r.stcd = s.stcd
		GROUP BY s.sdesc
		ORDER BY cnt DESC, s.sdesc`)
	if err != nil {
		log.Errorf("Error reading road types: %v", err)
		return
	}
	defer rows.Close()

	log.Info("Road types:")
	for rows.Next() {
		var desc string
		var cnt int
		if err := rows.Scan(&desc, &cnt); err != nil {
			log.Errorf("Error scanning road type: %v", err)
			return
		}
		log.Infof("  %s: %d", desc, cnt)
	}
}
