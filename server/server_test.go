package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunmap/roadnet/database"
	"github.com/hunmap/roadnet/service"
	"github.com/hunmap/roadnet/settings"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateTables(db))
	_, err = db.Exec(`INSERT INTO roads (cid, tabcd, lcd, class, tcd, stcd, roadnumber) VALUES
		(8, 40, 29, 'L', 1, 1, 'M1')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO points (cid, tabcd, lcd, class, tcd, stcd, roa_lcd, lon, lat) VALUES
		(8, 40, 1000, 'P', 1, 3, 29, 18.5, 47.2)`)
	require.NoError(t, err)

	config := settings.Config{
		Server: settings.ServerConfig{
			Port:                  0,
			Timeout:               5,
			MaxConcurrentRequests: 10,
			CORS: settings.CORSConfig{
				AllowOrigins: []string{"*"},
				AllowMethods: []string{"GET", "OPTIONS"},
				AllowHeaders: []string{"Accept", "Content-Type"},
			},
		},
	}

	ts := httptest.NewServer(createRouter(config, service.New(db)))
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRoadsRequiresBBox(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts, "/api/roads?west=18.0&south=47.0&east=19.0")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRoadsRejectsMalformedTypeCodes(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts, "/api/roads?west=18.0&south=47.0&east=19.0&north=48.0&types=1,x")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoadsReturnsMatches(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts, "/api/roads?west=18.0&south=47.0&east=19.0&north=48.0")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count    int               `json:"count"`
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Len(t, body.Features, 1)
}

func TestSearchRejectsShortQuery(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts, "/api/search?q=a")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSearchRejectsOutOfRangeLimit(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts, "/api/search?q=budapest&limit=500")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRoadDetailNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts, "/api/road/99999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownPathReturnsNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts, "/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusNotFound, body.Code)
}
