// Package export writes snapshots of the store to parquet files for
// downstream analytical use.
package export

import (
	"database/sql"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type PointRecord struct {
	Lcd   int64   `parquet:"name=lcd, type=INT64"`
	Lon   float64 `parquet:"name=lon, type=DOUBLE"`
	Lat   float64 `parquet:"name=lat, type=DOUBLE"`
	Class *string `parquet:"name=class, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	Tcd   *int32  `parquet:"name=tcd, type=INT32, repetitiontype=OPTIONAL"`
	Stcd  *int32  `parquet:"name=stcd, type=INT32, repetitiontype=OPTIONAL"`
	Name  *string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
}

// Points writes every point with valid geometry to a parquet file at the
// given path and returns the number of rows written.
func Points(db *sql.DB, path string) (int, error) {
	rows, err := db.Query(`
		SELECT p.lcd, p.lon, p.lat, p.class, p.tcd, p.stcd, n.name
		FROM points p
		LEFT JOIN names n ON p.n1id = n.nid AND n.lid = 1
		WHERE p.lon IS NOT NULL AND p.lat IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("export query failed: %w", err)
	}
	defer rows.Close()

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(PointRecord), 4)
	if err != nil {
		return 0, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	count := 0
	for rows.Next() {
		var rec PointRecord
		var class, name sql.NullString
		var tcd, stcd sql.NullInt32

		if err := rows.Scan(&rec.Lcd, &rec.Lon, &rec.Lat, &class, &tcd, &stcd, &name); err != nil {
			return 0, fmt.Errorf("export scan failed: %w", err)
		}

		if class.Valid {
			rec.Class = &class.String
		}
		if tcd.Valid {
			rec.Tcd = &tcd.Int32
		}
		if stcd.Valid {
			rec.Stcd = &stcd.Int32
		}
		if name.Valid {
			rec.Name = &name.String
		}

		if err := pw.Write(rec); err != nil {
			return 0, fmt.Errorf("export write failed: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if err := pw.WriteStop(); err != nil {
		return 0, fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return count, nil
}
