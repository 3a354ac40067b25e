package path

import (
	"log/slog"

	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/queue"
)

// AStar finds shortest paths on a grid map. The node store and the open set are
// kept between calls to avoid reallocation, which makes an AStar unsafe for
// concurrent use. Returned paths do not reference that state.
//
// Implements the Navigator interface.
type AStar struct {
	m         grid.Map
	distance  grid.Distance
	heuristic Heuristic
	weights   grid.WeightMap // nil means every cell has weight 1

	storeKind StoreKind
	nodes     NodeStore
	openNodes *queue.MinHeap[*Node]

	// dimensions of the map at the last search, used to detect when the store needs reallocation
	nodesWidth  int
	nodesHeight int

	maxPathMultiplier float64 // tie-breaking factor applied to the heuristic
	fixedMultiplier   float64 // overrides maxPathMultiplier when > 0

	searchKPIs SearchKPIs

	debugLevel int // debug level for logging purpose
	logger     *slog.Logger
}

type Option func(*AStar)

// WithHeuristic replaces the distance measurement as heuristic
func WithHeuristic(h Heuristic) Option {
	return func(a *AStar) { a.heuristic = h }
}

// WithWeights multiplies the cost of entering a cell by its weight
func WithWeights(w grid.WeightMap) Option {
	return func(a *AStar) { a.weights = w }
}

// WithStore selects the node store strategy, DenseArray by default
func WithStore(kind StoreKind) Option {
	return func(a *AStar) { a.storeKind = kind }
}

// WithTieBreaker fixes the heuristic multiplier instead of deriving it from the map size
func WithTieBreaker(multiplier float64) Option {
	return func(a *AStar) { a.fixedMultiplier = multiplier }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *AStar) { a.logger = logger }
}

// WithDebugLevel sets the amount of debug logging: 1 logs every search, 2 every settled node
func WithDebugLevel(level int) Option {
	return func(a *AStar) { a.debugLevel = level }
}

// Create a new AStar instance for the map m, using distance for connectivity and edge cost
func NewAStar(m grid.Map, distance grid.Distance, options ...Option) *AStar {
	a := &AStar{m: m, distance: distance, storeKind: DenseArray}
	for _, option := range options {
		option(a)
	}
	if a.heuristic == nil {
		a.heuristic = distance.Calculate
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	a.nodesWidth = m.Width()
	a.nodesHeight = m.Height()
	a.nodes = NewNodeStore(a.storeKind, a.nodesWidth, a.nodesHeight)
	a.openNodes = queue.NewMinHeap[*Node](a.nodesWidth * a.nodesHeight)
	a.maxPathMultiplier = a.multiplier()
	return a
}

func (a *AStar) multiplier() float64 {
	if a.fixedMultiplier > 0 {
		return a.fixedMultiplier
	}
	return TieBreaker(a.nodesWidth, a.nodesHeight)
}

// SetMap replaces the searched map. If its dimensions differ, the next search reallocates the node store.
func (a *AStar) SetMap(m grid.Map) { a.m = m }

func (a *AStar) SetDebugLevel(level int) { a.debugLevel = level }

func (a *AStar) Map() grid.Map             { return a.m }
func (a *AStar) Distance() grid.Distance   { return a.distance }
func (a *AStar) StoreKind() StoreKind      { return a.storeKind }
func (a *AStar) KPIs() SearchKPIs          { return a.searchKPIs }
func (a *AStar) TieBreakerFactor() float64 { return a.maxPathMultiplier }

// ShortestPathXY is ShortestPath for raw coordinates.
func (a *AStar) ShortestPathXY(startX, startY, endX, endY int, assumeEndpointsWalkable bool) *Path {
	return a.ShortestPath(grid.Coord{X: startX, Y: startY}, grid.Coord{X: endX, Y: endY}, assumeEndpointsWalkable)
}

// ShortestPath finds the shortest path from start to end.
// It returns nil if no path exists. If start equals end, the path only contains start.
// With assumeEndpointsWalkable, start and end are treated as walkable whatever the map reports.
func (a *AStar) ShortestPath(start, end grid.Coord, assumeEndpointsWalkable bool) *Path {
	a.searchKPIs.Reset()

	width, height := a.m.Width(), a.m.Height()
	if !start.InBounds(width, height) || !end.InBounds(width, height) {
		return nil
	}

	// If the path is simply the start, no search state is needed
	if start == end {
		return newPath([]grid.Coord{start}, 0)
	}

	// Don't waste initialization time if there is definitely no path
	if !assumeEndpointsWalkable && (!a.m.IsWalkable(start) || !a.m.IsWalkable(end)) {
		return nil
	}

	if a.debugLevel >= 1 {
		a.logger.Debug("new search", "origin", start, "destination", end, "store", a.storeKind, "distance", a.distance)
	}

	a.initializeSearch(width, height)

	startNode := a.nodes.GetOrCreate(start)
	startNode.g = 0
	startNode.f = a.heuristic(start, end) * a.maxPathMultiplier // completely heuristic for the first node
	startNode.parent = nil
	a.openNodes.Push(startNode)
	a.searchKPIs.PqPushes++

	for a.openNodes.Len() > 0 {
		current := a.openNodes.Pop()
		a.searchKPIs.PqPops++
		// never ends up in the open set again during this run
		current.closed = true
		a.searchKPIs.SettledNodes++

		if a.debugLevel >= 2 {
			a.logger.Debug("settling node", "position", current.position, "g", current.g, "f", current.f)
		}

		if current.position == end {
			path := a.reconstructPath(current, start)
			a.finishSearch()
			if a.debugLevel >= 1 {
				a.logger.Debug("found path", "origin", start, "destination", end, "cost", path.Cost(), "length", path.Length())
			}
			return path
		}

		a.relaxEdges(current, start, end, assumeEndpointsWalkable)
	}

	a.finishSearch()
	if a.debugLevel >= 1 {
		a.logger.Debug("no path found", "origin", start, "destination", end, "settled", a.searchKPIs.SettledNodes)
	}
	return nil
}

// initializeSearch brings the store and the open set to the beginning state.
func (a *AStar) initializeSearch(width, height int) {
	if width != a.nodesWidth || height != a.nodesHeight {
		a.nodesWidth = width
		a.nodesHeight = height
		a.openNodes = queue.NewMinHeap[*Node](width * height)
		a.maxPathMultiplier = a.multiplier()
	} else {
		a.openNodes.Clear()
	}
	a.nodes.Reset(width, height)
}

func (a *AStar) finishSearch() {
	a.openNodes.Clear()
	a.searchKPIs.StoredNodes = a.nodes.Len()
}

func (a *AStar) relaxEdges(current *Node, start, end grid.Coord, assumeEndpointsWalkable bool) {
	for _, dir := range a.distance.Neighbors() {
		neighborPos := current.position.Add(dir)

		// not a valid map position
		if !neighborPos.InBounds(a.nodesWidth, a.nodesHeight) {
			continue
		}
		if !a.checkWalkability(neighborPos, start, end, assumeEndpointsWalkable) {
			continue
		}
		a.searchKPIs.RelaxationAttempts++

		neighbor, visited := a.nodes.Get(neighborPos)
		if visited && neighbor.closed {
			// already evaluated at the shortest possible cost
			continue
		}
		if !visited {
			neighbor = a.nodes.GetOrCreate(neighborPos)
		}

		isOpen := a.openNodes.Contains(neighbor)
		newDistance := current.g + a.distance.Calculate(current.position, neighborPos)*a.weight(neighborPos)
		if isOpen && newDistance >= neighbor.g {
			// not a better path
			continue
		}

		neighbor.parent = current
		neighbor.g = newDistance
		neighbor.f = newDistance + a.heuristic(neighborPos, end)*a.maxPathMultiplier
		a.searchKPIs.RelaxedEdges++

		if isOpen {
			a.openNodes.Update(neighbor)
			a.searchKPIs.PqUpdates++
		} else {
			a.openNodes.Push(neighbor)
			a.searchKPIs.PqPushes++
		}
	}
}

func (a *AStar) weight(c grid.Coord) float64 {
	if a.weights == nil {
		return 1
	}
	return a.weights.Weight(c)
}

func (a *AStar) checkWalkability(pos, start, end grid.Coord, assumeEndpointsWalkable bool) bool {
	if !assumeEndpointsWalkable {
		return a.m.IsWalkable(pos)
	}
	return a.m.IsWalkable(pos) || pos == start || pos == end
}

// reconstructPath follows the parents from the goal back to start. The steps are
// stored goal first, the returned path presents them from start to goal.
func (a *AStar) reconstructPath(goal *Node, start grid.Coord) *Path {
	steps := make([]grid.Coord, 0, 32)
	for current := goal; current.position != start; current = current.parent {
		steps = append(steps, current.position)
	}
	steps = append(steps, start)
	return newPath(steps, goal.g)
}
