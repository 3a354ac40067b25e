package grid

import (
	"errors"
	"fmt"
)

var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Map is the walkability view a search runs on.
type Map interface {
	Width() int
	Height() int
	IsWalkable(c Coord) bool
}

// WeightMap supplies a traversal weight for entering a cell. Cells without
// explicit weight have weight 1.
type WeightMap interface {
	Weight(c Coord) float64
}

// ArrayMap is a dense Map backed by flat slices indexed by Coord.ToIndex.
// It implements Map and WeightMap.
type ArrayMap struct {
	width    int
	height   int
	walkable []bool
	weights  []float64 // nil until the first weight is set
}

// NewArrayMap creates a map of the given size with every cell blocked
func NewArrayMap(width, height int) *ArrayMap {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid map size %dx%d", width, height))
	}
	return &ArrayMap{width: width, height: height, walkable: make([]bool, width*height)}
}

// NewOpenArrayMap creates a map of the given size with every cell walkable
func NewOpenArrayMap(width, height int) *ArrayMap {
	m := NewArrayMap(width, height)
	m.Fill(true)
	return m
}

func (m *ArrayMap) Width() int  { return m.width }
func (m *ArrayMap) Height() int { return m.height }

// IsWalkable returns false for coordinates outside of the map.
func (m *ArrayMap) IsWalkable(c Coord) bool {
	if !c.InBounds(m.width, m.height) {
		return false
	}
	return m.walkable[c.ToIndex(m.width)]
}

func (m *ArrayMap) SetWalkable(c Coord, walkable bool) error {
	if !c.InBounds(m.width, m.height) {
		return fmt.Errorf("%w: %v on %dx%d map", ErrOutOfBounds, c, m.width, m.height)
	}
	m.walkable[c.ToIndex(m.width)] = walkable
	return nil
}

// Fill sets the walkability of every cell
func (m *ArrayMap) Fill(walkable bool) {
	for i := range m.walkable {
		m.walkable[i] = walkable
	}
}

// Weight returns 1 for cells without explicit weight.
func (m *ArrayMap) Weight(c Coord) float64 {
	if m.weights == nil || !c.InBounds(m.width, m.height) {
		return 1
	}
	return m.weights[c.ToIndex(m.width)]
}

func (m *ArrayMap) SetWeight(c Coord, weight float64) error {
	if !c.InBounds(m.width, m.height) {
		return fmt.Errorf("%w: %v on %dx%d map", ErrOutOfBounds, c, m.width, m.height)
	}
	if weight <= 0 {
		return fmt.Errorf("weight of %v must be positive, got %v", c, weight)
	}
	if m.weights == nil {
		if weight == 1 {
			return nil
		}
		m.weights = make([]float64, len(m.walkable))
		for i := range m.weights {
			m.weights[i] = 1
		}
	}
	m.weights[c.ToIndex(m.width)] = weight
	return nil
}

// HasWeights reports whether any cell carries a weight
func (m *ArrayMap) HasWeights() bool {
	return m.weights != nil
}

// WalkableCount returns the number of walkable cells
func (m *ArrayMap) WalkableCount() int {
	count := 0
	for _, w := range m.walkable {
		if w {
			count++
		}
	}
	return count
}

// Walkable returns all walkable positions in index order
func (m *ArrayMap) Walkable() []Coord {
	positions := make([]Coord, 0, m.WalkableCount())
	for i, w := range m.walkable {
		if w {
			positions = append(positions, FromIndex(i, m.width))
		}
	}
	return positions
}

func (m *ArrayMap) AsString() string {
	return MapAsString(m)
}
