package path

import (
	"iter"
	"strings"

	"github.com/natevvv/grid-astar/pkg/grid"
)

// Path is the result of a search.
//
// The steps are stored once and never modified. inOriginalOrder reports whether
// the storage order is the order the search produced them in, which is
// goal first and start last. Every accessor maps its index through that flag, so
// Reverse only toggles it.
type Path struct {
	steps           []grid.Coord
	inOriginalOrder bool
	cost            float64
}

// newPath wraps steps stored from goal to start.
func newPath(steps []grid.Coord, cost float64) *Path {
	return &Path{steps: steps, inOriginalOrder: true, cost: cost}
}

// CopyPath returns a path sharing the steps of p, optionally reversed.
func CopyPath(p *Path, reverse bool) *Path {
	return &Path{steps: p.steps, inOriginalOrder: p.inOriginalOrder != reverse, cost: p.cost}
}

// Start of the path
func (p *Path) Start() grid.Coord {
	if p.inOriginalOrder {
		return p.steps[len(p.steps)-1]
	}
	return p.steps[0]
}

// End of the path
func (p *Path) End() grid.Coord {
	if p.inOriginalOrder {
		return p.steps[0]
	}
	return p.steps[len(p.steps)-1]
}

// Length is the number of steps, not including the start.
func (p *Path) Length() int { return len(p.steps) - 1 }

// LengthWithStart is the number of coordinates including the start.
func (p *Path) LengthWithStart() int { return len(p.steps) }

// Cost is the total traversal cost of the path
func (p *Path) Cost() float64 { return p.cost }

// Step returns the i-th step after the start.
func (p *Path) Step(i int) grid.Coord {
	if p.inOriginalOrder {
		return p.steps[len(p.steps)-2-i]
	}
	return p.steps[i+1]
}

// StepWithStart returns the i-th coordinate, where 0 is the start.
func (p *Path) StepWithStart(i int) grid.Coord {
	if p.inOriginalOrder {
		return p.steps[len(p.steps)-1-i]
	}
	return p.steps[i]
}

// Steps yields the coordinates after the start, in order.
func (p *Path) Steps() iter.Seq[grid.Coord] {
	return p.sequence(1)
}

// StepsWithStart yields all coordinates, in order.
func (p *Path) StepsWithStart() iter.Seq[grid.Coord] {
	return p.sequence(0)
}

func (p *Path) sequence(skip int) iter.Seq[grid.Coord] {
	return func(yield func(grid.Coord) bool) {
		if p.inOriginalOrder {
			for i := len(p.steps) - 1 - skip; i >= 0; i-- {
				if !yield(p.steps[i]) {
					return
				}
			}
			return
		}
		for i := skip; i < len(p.steps); i++ {
			if !yield(p.steps[i]) {
				return
			}
		}
	}
}

// Coords returns a new slice of all coordinates including the start
func (p *Path) Coords() []grid.Coord {
	coords := make([]grid.Coord, 0, len(p.steps))
	for c := range p.StepsWithStart() {
		coords = append(coords, c)
	}
	return coords
}

// Reverse the path in constant time.
func (p *Path) Reverse() { p.inOriginalOrder = !p.inOriginalOrder }

// String renders every coordinate including the start, e.g. [(1,2) (3,4)]
func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for c := range p.StepsWithStart() {
		if !first {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
		first = false
	}
	sb.WriteByte(']')
	return sb.String()
}
