package routing

import (
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/path"
)

// RouteConfig holds per request options
type RouteConfig struct {
	AssumeEndpointsWalkable bool
}

// Route is the result of a routing request
type Route struct {
	Origin      grid.Coord
	Destination grid.Coord
	Exists      bool
	Waypoints   []grid.Coord // including origin and destination
	Length      int          // number of moves
	Cost        float64
	KPIs        path.SearchKPIs
	Path        *path.Path // nil if the route does not exist
}

// Router owns a map and one search engine for it. Not safe for concurrent use.
type Router struct {
	m         grid.Map
	distance  grid.Distance
	storeKind path.StoreKind
	options   []path.Option
	navigator *path.AStar
}

// NewRouter creates a router searching m with the dense store.
// options are applied to every engine the router creates.
func NewRouter(m grid.Map, distance grid.Distance, options ...path.Option) *Router {
	r := &Router{
		m:         m,
		distance:  distance,
		storeKind: path.DenseArray,
		options:   options,
	}
	r.rebuild()
	return r
}

func (r *Router) rebuild() {
	// the chosen store wins over one passed in the options
	options := append(append([]path.Option{}, r.options...), path.WithStore(r.storeKind))
	r.navigator = path.NewAStar(r.m, r.distance, options...)
}

// SetNavigator switches the node store, e.g. "dense", "coord-hash" or "index-hash".
// It reports false for unknown names and keeps the current engine.
func (r *Router) SetNavigator(navigatorType string) bool {
	kind, err := path.ParseStoreKind(navigatorType)
	if err != nil {
		return false
	}
	r.storeKind = kind
	r.rebuild()
	return true
}

func (r *Router) SetDistance(distance grid.Distance) {
	r.distance = distance
	r.rebuild()
}

// SetMap replaces the map; the engine is reused
func (r *Router) SetMap(m grid.Map) {
	r.m = m
	r.navigator.SetMap(m)
}

func (r *Router) Navigator() path.StoreKind { return r.storeKind }
func (r *Router) Distance() grid.Distance   { return r.distance }
func (r *Router) Map() grid.Map             { return r.m }

func (r *Router) ComputeRoute(origin, destination grid.Coord, config RouteConfig) Route {
	p := r.navigator.ShortestPath(origin, destination, config.AssumeEndpointsWalkable)
	route := Route{Origin: origin, Destination: destination, KPIs: r.navigator.KPIs()}
	if p == nil {
		return route
	}

	route.Exists = true
	route.Path = p
	route.Waypoints = p.Coords()
	route.Length = p.Length()
	route.Cost = p.Cost()
	return route
}
