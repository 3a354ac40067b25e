package path

import "github.com/natevvv/grid-astar/pkg/grid"

// IndexHashStore keys nodes by the flattened index y*width + x.
type IndexHashStore struct {
	nodes map[int]*Node
	width int
}

func NewIndexHashStore(width int) *IndexHashStore {
	return &IndexHashStore{nodes: make(map[int]*Node), width: width}
}

func (s *IndexHashStore) GetOrCreate(c grid.Coord) *Node {
	index := c.ToIndex(s.width)
	node, ok := s.nodes[index]
	if !ok {
		node = NewNode(c)
		s.nodes[index] = node
	}
	return node
}

func (s *IndexHashStore) Get(c grid.Coord) (*Node, bool) {
	node, ok := s.nodes[c.ToIndex(s.width)]
	return node, ok
}

func (s *IndexHashStore) Reset(width, height int) {
	clear(s.nodes)
	s.width = width
}

func (s *IndexHashStore) Len() int { return len(s.nodes) }
