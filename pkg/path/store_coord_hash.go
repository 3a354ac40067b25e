package path

import "github.com/natevvv/grid-astar/pkg/grid"

// CoordHashStore keys nodes by their coordinate. Memory grows with the number
// of visited cells only.
type CoordHashStore struct {
	nodes map[grid.Coord]*Node
}

func NewCoordHashStore() *CoordHashStore {
	return &CoordHashStore{nodes: make(map[grid.Coord]*Node)}
}

func (s *CoordHashStore) GetOrCreate(c grid.Coord) *Node {
	node, ok := s.nodes[c]
	if !ok {
		node = NewNode(c)
		s.nodes[c] = node
	}
	return node
}

func (s *CoordHashStore) Get(c grid.Coord) (*Node, bool) {
	node, ok := s.nodes[c]
	return node, ok
}

// Reset drops every node, a new run starts from an empty map.
func (s *CoordHashStore) Reset(width, height int) {
	clear(s.nodes)
}

func (s *CoordHashStore) Len() int { return len(s.nodes) }
