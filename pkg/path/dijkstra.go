package path

import (
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/queue"
)

// Dijkstra is a plain uniform-cost search over the same grid rules as AStar.
// It allocates its state on every call and serves as reference for validating
// the results of AStar.
type Dijkstra struct {
	m          grid.Map
	distance   grid.Distance
	weights    grid.WeightMap
	searchKPIs SearchKPIs
}

func NewDijkstra(m grid.Map, distance grid.Distance, weights grid.WeightMap) *Dijkstra {
	return &Dijkstra{m: m, distance: distance, weights: weights}
}

func (d *Dijkstra) ShortestPath(start, end grid.Coord, assumeEndpointsWalkable bool) *Path {
	d.searchKPIs.Reset()

	width, height := d.m.Width(), d.m.Height()
	if !start.InBounds(width, height) || !end.InBounds(width, height) {
		return nil
	}
	if start == end {
		return newPath([]grid.Coord{start}, 0)
	}
	if !assumeEndpointsWalkable && (!d.m.IsWalkable(start) || !d.m.IsWalkable(end)) {
		return nil
	}

	// fresh state per call, nothing is shared with other searches
	nodes := NewDenseStore(width, height)
	pq := queue.NewMinHeap[*Node](64)

	origin := nodes.GetOrCreate(start)
	pq.Push(origin)
	d.searchKPIs.PqPushes++

	var goal *Node
	for pq.Len() > 0 {
		current := pq.Pop()
		d.searchKPIs.PqPops++
		current.closed = true
		d.searchKPIs.SettledNodes++

		if current.position == end {
			goal = current
			break
		}

		for _, dir := range d.distance.Neighbors() {
			successorPos := current.position.Add(dir)
			if !successorPos.InBounds(width, height) {
				continue
			}
			if !d.m.IsWalkable(successorPos) && !(assumeEndpointsWalkable && (successorPos == start || successorPos == end)) {
				continue
			}
			d.searchKPIs.RelaxationAttempts++

			successor, seen := nodes.Get(successorPos)
			if seen && successor.closed {
				continue
			}
			// the priority of a node is its cost from the origin
			newCost := current.g + d.distance.Calculate(current.position, successorPos)*d.weight(successorPos)
			if !seen {
				successor = nodes.GetOrCreate(successorPos)
				successor.g, successor.f, successor.parent = newCost, newCost, current
				pq.Push(successor)
				d.searchKPIs.PqPushes++
				d.searchKPIs.RelaxedEdges++
			} else if newCost < successor.g {
				successor.g, successor.f, successor.parent = newCost, newCost, current
				pq.Update(successor)
				d.searchKPIs.PqUpdates++
				d.searchKPIs.RelaxedEdges++
			}
		}
	}
	d.searchKPIs.StoredNodes = nodes.Len()

	if goal == nil {
		// no valid path found
		return nil
	}

	steps := make([]grid.Coord, 0)
	for node := goal; node != nil; node = node.parent {
		steps = append(steps, node.position)
	}
	return newPath(steps, goal.g)
}

func (d *Dijkstra) weight(c grid.Coord) float64 {
	if d.weights == nil {
		return 1
	}
	return d.weights.Weight(c)
}

func (d *Dijkstra) KPIs() SearchKPIs { return d.searchKPIs }
func (d *Dijkstra) Map() grid.Map    { return d.m }
