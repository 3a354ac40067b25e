package path

import "github.com/natevvv/grid-astar/pkg/grid"

type Navigator interface {
	ShortestPath(start, end grid.Coord, assumeEndpointsWalkable bool) *Path // Compute the shortest path, nil if no path exists
	KPIs() SearchKPIs                                                       // Get the counters of the previous computation
	Map() grid.Map                                                          // Get the used map
}

// SearchKPIs are the counters of a single search.
type SearchKPIs struct {
	PqPops             int // amount of pops performed on the priority queue
	PqPushes           int // amount of pushes to the priority queue
	PqUpdates          int // amount of priority updates (decrease-key)
	RelaxationAttempts int // neighbors looked at
	RelaxedEdges       int // neighbors whose cost improved
	SettledNodes       int // nodes closed
	StoredNodes        int // nodes held by the node store after the search
}

// Reset the kpi
func (kpi *SearchKPIs) Reset() {
	*kpi = SearchKPIs{}
}

// Add accumulates other into kpi
func (kpi *SearchKPIs) Add(other SearchKPIs) {
	kpi.PqPops += other.PqPops
	kpi.PqPushes += other.PqPushes
	kpi.PqUpdates += other.PqUpdates
	kpi.RelaxationAttempts += other.RelaxationAttempts
	kpi.RelaxedEdges += other.RelaxedEdges
	kpi.SettledNodes += other.SettledNodes
	kpi.StoredNodes += other.StoredNodes
}
