package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/marcboeker/go-duckdb"
	log "github.com/sirupsen/logrus"
)

// Open opens the DuckDB store at the given path in read-write mode. This is
// only used by the offline ingest batch, the serving process opens the
// store with OpenReadOnly.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %v", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error opening database %s: %v", path, err)
	}

	return db, nil
}

// OpenReadOnly opens an existing DuckDB store for serving. The handle is
// shared by all concurrent query operations for the lifetime of the
// process; there are no writers while the store is open read-only.
// A missing store is a configuration error, not a query error: run the
// ingest command first.
func OpenReadOnly(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found at %s, run the ingest command first: %v", path, err)
	}

	db, err := sql.Open("duckdb", fmt.Sprintf("%s?access_mode=read_only", path))
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %v", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error opening database %s: %v", path, err)
	}

	log.Infof("Connected to database: %s", path)
	return db, nil
}
