package openapi_server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/routing"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	// the router keeps search state between requests, so every use is serialized
	mu     sync.Mutex
	router *routing.Router

	assumeEndpointsWalkable bool
	logger                  *slog.Logger
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(router *routing.Router, assumeEndpointsWalkable bool, logger *slog.Logger) DefaultApiServicer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultApiService{
		router:                  router,
		assumeEndpointsWalkable: assumeEndpointsWalkable,
		logger:                  logger,
	}
}

func (s *DefaultApiService) route(routeRequest RouteRequest) (routing.Route, *ImplResponse) {
	origin := grid.MakeCoord(int(routeRequest.Origin.X), int(routeRequest.Origin.Y))
	destination := grid.MakeCoord(int(routeRequest.Destination.X), int(routeRequest.Destination.Y))

	config := routing.RouteConfig{AssumeEndpointsWalkable: s.assumeEndpointsWalkable}
	if routeRequest.AssumeEndpointsWalkable != nil {
		config.AssumeEndpointsWalkable = *routeRequest.AssumeEndpointsWalkable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.router.Map()
	if !origin.InBounds(m.Width(), m.Height()) || !destination.InBounds(m.Width(), m.Height()) {
		response := Response(http.StatusBadRequest, "origin or destination outside of the map")
		return routing.Route{}, &response
	}

	store := s.router.Navigator().String()
	start := time.Now()
	route := s.router.ComputeRoute(origin, destination, config)
	elapsed := time.Since(start)

	result := "unreachable"
	if route.Exists {
		result = "found"
	}
	searchTotal.WithLabelValues(store, result).Inc()
	searchDuration.WithLabelValues(store).Observe(elapsed.Seconds())
	settledNodes.WithLabelValues(store).Observe(float64(route.KPIs.SettledNodes))

	s.logger.Debug("route computed",
		"origin", origin,
		"destination", destination,
		"store", store,
		"reachable", route.Exists,
		"cost", route.Cost,
		"settled", route.KPIs.SettledNodes,
		"duration", elapsed,
	)
	return route, nil
}

// ComputeRoute - Compute a new route
func (s *DefaultApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	route, failure := s.route(routeRequest)
	if failure != nil {
		return *failure, nil
	}

	routeResult := RouteResult{Origin: *routeRequest.Origin, Destination: *routeRequest.Destination}
	if route.Exists {
		routeResult.Reachable = true
		waypoints := make([]Point, 0, len(route.Waypoints))
		for _, waypoint := range route.Waypoints {
			waypoints = append(waypoints, Point{X: int32(waypoint.X), Y: int32(waypoint.Y)})
		}
		routeResult.Path = &Path{Length: int32(route.Length), Cost: route.Cost, Waypoints: waypoints}
	}

	return Response(http.StatusOK, routeResult), nil
}

// ComputeRouteGeoJSON - Compute a new route as GeoJSON feature in grid space
func (s *DefaultApiService) ComputeRouteGeoJSON(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	route, failure := s.route(routeRequest)
	if failure != nil {
		return *failure, nil
	}
	if !route.Exists {
		return Response(http.StatusNotFound, "No route"), nil
	}
	return Response(http.StatusOK, route.Path.Feature()), nil
}

func (s *DefaultApiService) GetMap(ctx context.Context) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.router.Map()
	info := MapInfo{
		Width:         int32(m.Width()),
		Height:        int32(m.Height()),
		Distance:      s.router.Distance().String(),
		Store:         s.router.Navigator().String(),
		WalkableCells: int32(walkableCells(m)),
	}
	return Response(http.StatusOK, info), nil
}

func walkableCells(m grid.Map) int {
	if counter, ok := m.(interface{ WalkableCount() int }); ok {
		return counter.WalkableCount()
	}
	count := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.IsWalkable(grid.Coord{X: x, Y: y}) {
				count++
			}
		}
	}
	return count
}

func (s *DefaultApiService) SetNavigator(ctx context.Context, navigatorRequest NavigatorRequest) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	success := s.router.SetNavigator(navigatorRequest.Navigator)
	if !success {
		return Response(http.StatusBadRequest, "Unknown Navigator"), nil
	}
	navigatorChanges.Inc()
	s.logger.Info("navigator changed", "store", s.router.Navigator())
	return Response(http.StatusOK, NavigatorResult{Navigator: s.router.Navigator().String()}), nil
}
