package openapi_server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/routing"
)

const serverMap = `5
3
..#..
..#..
.....
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	m, err := grid.ParseArrayMap(serverMap)
	require.NoError(t, err)

	service := NewDefaultApiService(routing.NewRouter(m, grid.MANHATTAN), true, nil)
	router := NewRouter(NewDefaultApiController(service))
	router.Handle("/metrics", promhttp.Handler())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func post(t *testing.T, server *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func get(t *testing.T, server *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestComputeRoute(t *testing.T) {
	server := newTestServer(t)

	resp, body := post(t, server, "/routes", `{"origin":{"x":0,"y":0},"destination":{"x":4,"y":0}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var result RouteResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Reachable)
	require.NotNil(t, result.Path)
	assert.Equal(t, int32(8), result.Path.Length)
	assert.Equal(t, 8.0, result.Path.Cost)
	require.Len(t, result.Path.Waypoints, 9)
	assert.Equal(t, Point{X: 0, Y: 0}, result.Path.Waypoints[0])
	assert.Equal(t, Point{X: 4, Y: 0}, result.Path.Waypoints[8])
	assert.NoError(t, AssertPathRequired(*result.Path))
}

func TestComputeRouteEndpointWalkability(t *testing.T) {
	server := newTestServer(t)

	resp, body := post(t, server, "/routes", `{"origin":{"x":0,"y":0},"destination":{"x":2,"y":0},"assumeEndpointsWalkable":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result RouteResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.Reachable)
	assert.Nil(t, result.Path)

	// the server default assumes walkable endpoints
	_, body = post(t, server, "/routes", `{"origin":{"x":0,"y":0},"destination":{"x":2,"y":0}}`)
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Reachable)
}

func TestComputeRouteBadRequests(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing destination", `{"origin":{"x":0,"y":0}}`},
		{"unknown field", `{"origin":{"x":0,"y":0},"destination":{"x":1,"y":0},"speed":3}`},
		{"malformed", `{"origin":`},
		{"outside of the map", `{"origin":{"x":0,"y":0},"destination":{"x":5,"y":0}}`},
	}
	for _, tt := range tests {
		resp, _ := post(t, server, "/routes", tt.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tt.name)
	}
}

func TestComputeRouteGeoJSON(t *testing.T) {
	server := newTestServer(t)

	resp, body := post(t, server, "/routes/geojson", `{"origin":{"x":0,"y":2},"destination":{"x":4,"y":2}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feature struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string       `json:"type"`
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(body, &feature))
	assert.Equal(t, "Feature", feature.Type)
	assert.Equal(t, "LineString", feature.Geometry.Type)
	assert.Len(t, feature.Geometry.Coordinates, 5)
	assert.Equal(t, [2]float64{0.5, 2.5}, feature.Geometry.Coordinates[0])
	assert.Equal(t, 4.0, feature.Properties["length"])

	resp, _ = post(t, server, "/routes/geojson", `{"origin":{"x":0,"y":0},"destination":{"x":2,"y":1},"assumeEndpointsWalkable":false}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMapAndNavigator(t *testing.T) {
	server := newTestServer(t)

	resp, body := get(t, server, "/map")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info MapInfo
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, MapInfo{Width: 5, Height: 3, Distance: "MANHATTAN", Store: "dense", WalkableCells: 13}, info)

	resp, body = post(t, server, "/navigator", `{"navigator":"coord-hash"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var navigator NavigatorResult
	require.NoError(t, json.Unmarshal(body, &navigator))
	assert.Equal(t, "coord-hash", navigator.Navigator)

	resp, _ = post(t, server, "/navigator", `{"navigator":"fibonacci"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = post(t, server, "/navigator", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body = get(t, server, "/map")
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, "coord-hash", info.Store)

	resp, _ = post(t, server, "/routes", `{"origin":{"x":0,"y":0},"destination":{"x":4,"y":2}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	server := newTestServer(t)
	post(t, server, "/routes", `{"origin":{"x":0,"y":0},"destination":{"x":4,"y":0}}`)

	resp, body := get(t, server, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `grid_astar_searches_total{result="found",store="dense"}`)
	assert.Contains(t, string(body), "grid_astar_search_duration_seconds_bucket")
	assert.Contains(t, string(body), "grid_astar_settled_nodes_bucket")
}

func TestIsZeroValue(t *testing.T) {
	assert.True(t, IsZeroValue(nil))
	assert.True(t, IsZeroValue(""))
	assert.True(t, IsZeroValue((*Point)(nil)))
	assert.False(t, IsZeroValue(&Point{}))
}
