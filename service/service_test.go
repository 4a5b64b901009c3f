package service

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunmap/roadnet/database"
)

// newTestService seeds an in-memory store with a small road network:
// motorway M1 (two segments), motorway M7 and main road 4, with points
// around Budapest, Szeged and one point without usable coordinates.
func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateTables(db))
	require.NoError(t, database.CreateIndexes(db))

	stmts := []string{
		`INSERT INTO subtypes (class, tcd, stcd, sdesc) VALUES
			('L', 1, 1, 'Motorway'),
			('L', 1, 2, '1st class road'),
			('P', 1, 3, 'Motorway junction'),
			('P', 1, 12, 'Cross-roads')`,
		`INSERT INTO names (cid, lid, nid, name, officialname) VALUES
			(8, 1, 100, 'Budapest kelet', 'Budapest'),
			(8, 2, 100, 'Budapest East', NULL),
			(8, 1, 101, 'Szeged', NULL),
			(8, 1, 102, 'Debrecen', NULL)`,
		`INSERT INTO roads (cid, tabcd, lcd, class, tcd, stcd, roadnumber, n1id, n2id) VALUES
			(8, 40, 29, 'L', 1, 1, 'M1', 100, 101),
			(8, 40, 30, 'L', 1, 2, '4', 102, NULL),
			(8, 40, 31, 'L', 1, 1, 'M1', NULL, NULL),
			(8, 40, 32, 'L', 1, 1, 'M7', NULL, NULL)`,
		`INSERT INTO points (cid, tabcd, lcd, class, tcd, stcd, junctionnumber, n1id, roa_lcd, urban, lon, lat) VALUES
			(8, 40, 1000, 'P', 1, 3, '12', 100, 29, 1, 18.5, 47.2),
			(8, 40, 1001, 'P', 1, 3, NULL, NULL, 29, 0, 19.0, 47.5),
			(8, 40, 1002, 'P', 1, 12, NULL, 101, 30, 1, 20.1, 46.3),
			(8, 40, 1003, 'P', 1, 3, NULL, NULL, 31, 0, 17.0, 47.9),
			(8, 40, 1004, 'P', 1, 12, NULL, 102, NULL, 0, NULL, NULL),
			(8, 40, 1005, 'P', 1, 12, NULL, NULL, NULL, 1, 19.05, 47.5)`,
		`INSERT INTO intersections (cid, tabcd, lcd, int_cid, int_tabcd, int_lcd) VALUES
			(8, 40, 1000, 8, 40, 1001),
			(8, 40, 1001, 8, 40, 1002)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return New(db)
}

func TestPointsInBBoxInclusiveBounds(t *testing.T) {
	svc := newTestService(t)

	features, err := svc.PointsInBBox(context.Background(), 18.5, 47.2, 19.05, 47.5, nil)
	require.NoError(t, err)
	require.Len(t, features, 3)

	for _, f := range features {
		assert.GreaterOrEqual(t, f.Lon, 18.5)
		assert.LessOrEqual(t, f.Lon, 19.05)
		assert.GreaterOrEqual(t, f.Lat, 47.2)
		assert.LessOrEqual(t, f.Lat, 47.5)
	}
}

func TestPointsInBBoxExcludesMissingGeometry(t *testing.T) {
	svc := newTestService(t)

	// A box wide enough to cover everything never returns the point with
	// unparseable coordinates.
	features, err := svc.PointsInBBox(context.Background(), -180, -90, 180, 90, nil)
	require.NoError(t, err)
	assert.Len(t, features, 5)
	for _, f := range features {
		assert.NotEqual(t, 1004, f.Lcd)
	}
}

func TestPointsInBBoxCategoryFilter(t *testing.T) {
	svc := newTestService(t)

	features, err := svc.PointsInBBox(context.Background(), -180, -90, 180, 90, []int{12})
	require.NoError(t, err)
	require.Len(t, features, 2)
	for _, f := range features {
		assert.Equal(t, 12, f.Stcd)
	}
}

func TestPointsInBBoxInvertedBoxIsEmpty(t *testing.T) {
	svc := newTestService(t)

	features, err := svc.PointsInBBox(context.Background(), 19.05, 47.5, 18.5, 47.2, nil)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestPointsInBBoxResultShape(t *testing.T) {
	svc := newTestService(t)

	features, err := svc.PointsInBBox(context.Background(), 18.4, 47.1, 18.6, 47.3, nil)
	require.NoError(t, err)
	require.Len(t, features, 1)

	f := features[0]
	assert.Equal(t, 1000, f.Lcd)
	require.NotNil(t, f.PointType)
	assert.Equal(t, "Motorway junction", *f.PointType)
	require.NotNil(t, f.Name)
	assert.Equal(t, "Budapest kelet", *f.Name)
	require.NotNil(t, f.JunctionNumber)
	assert.Equal(t, "12", *f.JunctionNumber)
	require.NotNil(t, f.Urban)
	assert.Equal(t, 1, *f.Urban)
}

func TestRoadsInBBoxEnvelope(t *testing.T) {
	svc := newTestService(t)

	// Box covering both points of road 29 and nothing else.
	features, err := svc.RoadsInBBox(context.Background(), 18.0, 47.0, 19.0, 47.6, nil)
	require.NoError(t, err)
	require.Len(t, features, 1)

	f := features[0]
	assert.Equal(t, 29, f.Lcd)
	require.NotNil(t, f.RoadNumber)
	assert.Equal(t, "M1", *f.RoadNumber)
	require.NotNil(t, f.RoadType)
	assert.Equal(t, "Motorway", *f.RoadType)
	require.NotNil(t, f.StartName)
	assert.Equal(t, "Budapest kelet", *f.StartName, "start name resolves via language 1 only")
	assert.Equal(t, "", f.EndName)

	// Envelope is the min/max over the road's in-box points.
	require.NotNil(t, f.StartLon)
	assert.InDelta(t, 18.5, *f.StartLon, 1e-9)
	assert.InDelta(t, 47.2, *f.StartLat, 1e-9)
	assert.InDelta(t, 19.0, *f.EndLon, 1e-9)
	assert.InDelta(t, 47.5, *f.EndLat, 1e-9)
}

func TestRoadsInBBoxReturnsDistinctRoadsWithPointInBox(t *testing.T) {
	svc := newTestService(t)

	features, err := svc.RoadsInBBox(context.Background(), -180, -90, 180, 90, nil)
	require.NoError(t, err)

	// Roads 29, 30 and 31 have points with geometry; road 32 has none.
	require.Len(t, features, 3)
	seen := map[int]bool{}
	for _, f := range features {
		seen[f.Lcd] = true
	}
	assert.True(t, seen[29])
	assert.True(t, seen[30])
	assert.True(t, seen[31])
}

func TestRoadsInBBoxTypeFilter(t *testing.T) {
	svc := newTestService(t)

	features, err := svc.RoadsInBBox(context.Background(), -180, -90, 180, 90, []int{2})
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, 30, features[0].Lcd)

	features, err = svc.RoadsInBBox(context.Background(), -180, -90, 180, 90, []int{1, 2})
	require.NoError(t, err)
	assert.Len(t, features, 3)
}

func TestSearchLocationsCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	results, err := svc.SearchLocations(context.Background(), "BUDAPEST", 50)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.Contains(t, []string{"Budapest kelet", "Budapest East"}, r.Name)
		assert.NotNil(t, r.Lon)
		assert.NotNil(t, r.Lat)
	}
}

func TestSearchLocationsRequiresGeometry(t *testing.T) {
	svc := newTestService(t)

	// Debrecen only names a point without coordinates.
	results, err := svc.SearchLocations(context.Background(), "Debrecen", 50)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchLocationsLimit(t *testing.T) {
	svc := newTestService(t)

	results, err := svc.SearchLocations(context.Background(), "e", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestGetStatistics(t *testing.T) {
	svc := newTestService(t)

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalRoads)
	assert.Equal(t, 5, stats.TotalPoints, "only points with valid geometry count")
	assert.Equal(t, 2, stats.TotalIntersections)

	require.NotEmpty(t, stats.RoadTypes)
	assert.Equal(t, "Motorway", stats.RoadTypes[0].Type)
	assert.Equal(t, 3, stats.RoadTypes[0].Count)
	for i := 1; i < len(stats.RoadTypes); i++ {
		assert.LessOrEqual(t, stats.RoadTypes[i].Count, stats.RoadTypes[i-1].Count)
	}

	assert.LessOrEqual(t, len(stats.PointTypes), 20)

	assert.InDelta(t, 17.0, stats.BBox.West, 1e-9)
	assert.InDelta(t, 46.3, stats.BBox.South, 1e-9)
	assert.InDelta(t, 20.1, stats.BBox.East, 1e-9)
	assert.InDelta(t, 47.9, stats.BBox.North, 1e-9)

	assert.InDelta(t, (stats.BBox.West+stats.BBox.East)/2, stats.Center.Lon, 1e-9)
	assert.InDelta(t, (stats.BBox.South+stats.BBox.North)/2, stats.Center.Lat, 1e-9)
}

func TestGetMotorways(t *testing.T) {
	svc := newTestService(t)

	motorways, err := svc.GetMotorways(context.Background())
	require.NoError(t, err)
	require.Len(t, motorways, 2)

	assert.Equal(t, "M1", motorways[0].Road)
	assert.Equal(t, 2, motorways[0].Segments)
	assert.Equal(t, "M7", motorways[1].Road)
	assert.Equal(t, 1, motorways[1].Segments)
}

func TestGetRoadDetails(t *testing.T) {
	svc := newTestService(t)

	road, err := svc.GetRoadDetails(context.Background(), 29)
	require.NoError(t, err)
	require.NotNil(t, road)

	assert.Equal(t, 29, road.Lcd)
	assert.Equal(t, 8, road.Cid)
	assert.Equal(t, 40, road.Tabcd)
	require.NotNil(t, road.RoadNumber)
	assert.Equal(t, "M1", *road.RoadNumber)
	require.NotNil(t, road.RoadType)
	assert.Equal(t, "Motorway", *road.RoadType)
	require.NotNil(t, road.StartName)
	assert.Equal(t, "Budapest kelet", *road.StartName)
	require.NotNil(t, road.EndName)
	assert.Equal(t, "Szeged", *road.EndName)
}

func TestGetRoadDetailsNotFound(t *testing.T) {
	svc := newTestService(t)

	road, err := svc.GetRoadDetails(context.Background(), 99999)
	require.NoError(t, err, "an unknown key is not an error")
	assert.Nil(t, road)
}
