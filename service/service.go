// Package service implements the read-only query layer over the road
// network store. All operations are independent point-in-time reads against
// a store opened read-only at process start; they are safe to run
// concurrently without coordination.
package service

import (
	"database/sql"
	"fmt"
	"strings"
)

// Result caps for the bounding box queries. When a cap is hit the dropped
// rows are unspecified, callers must not rely on which rows survive.
const (
	maxRoadResults  = 5000
	maxPointResults = 10000
)

// Service executes the query operations against a shared store handle.
type Service struct {
	db *sql.DB
}

// New wraps a store handle. The handle is expected to stay open for the
// lifetime of the service.
func New(db *sql.DB) *Service {
	return &Service{db: db}
}

// inFilter renders an optional "col IN (...)" predicate with one
// placeholder per code. Values always travel as parameters, never as query
// text.
func inFilter(column string, codes []int) (string, []any) {
	if len(codes) == 0 {
		return "", nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(codes)), ",")
	args := make([]any, len(codes))
	for i, c := range codes {
		args[i] = c
	}
	return fmt.Sprintf(" AND %s IN (%s)", column, placeholders), args
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
