package path

import "github.com/natevvv/grid-astar/pkg/grid"

// DenseStore holds one slot per map cell, indexed by the flattened coordinate.
// Nodes survive across runs on a map of the same size and only get their
// closed flag cleared.
type DenseStore struct {
	nodes  []*Node
	width  int
	height int
	count  int
}

func NewDenseStore(width, height int) *DenseStore {
	return &DenseStore{nodes: make([]*Node, width*height), width: width, height: height}
}

func (s *DenseStore) GetOrCreate(c grid.Coord) *Node {
	index := c.ToIndex(s.width)
	if s.nodes[index] == nil {
		s.nodes[index] = NewNode(c)
		s.count++
	}
	return s.nodes[index]
}

func (s *DenseStore) Get(c grid.Coord) (*Node, bool) {
	node := s.nodes[c.ToIndex(s.width)]
	return node, node != nil
}

func (s *DenseStore) Reset(width, height int) {
	if width != s.width || height != s.height {
		s.nodes = make([]*Node, width*height)
		s.width = width
		s.height = height
		s.count = 0
		return
	}
	for _, node := range s.nodes {
		if node != nil {
			node.closed = false
			node.index = -1
		}
	}
}

func (s *DenseStore) Len() int { return s.count }
