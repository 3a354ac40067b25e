package path

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/grid-astar/pkg/grid"
)

// threeCells goes from (0,0) to (2,0); steps are stored goal first as a search produces them.
func threeCells() *Path {
	return newPath([]grid.Coord{{X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}, 2)
}

func collect(p *Path, withStart bool) []grid.Coord {
	coords := []grid.Coord{}
	seq := p.Steps()
	if withStart {
		seq = p.StepsWithStart()
	}
	for c := range seq {
		coords = append(coords, c)
	}
	return coords
}

func TestPathAccessors(t *testing.T) {
	p := threeCells()

	assert.Equal(t, grid.Coord{X: 0, Y: 0}, p.Start())
	assert.Equal(t, grid.Coord{X: 2, Y: 0}, p.End())
	assert.Equal(t, 2, p.Length())
	assert.Equal(t, 3, p.LengthWithStart())
	assert.Equal(t, 2.0, p.Cost())

	assert.Equal(t, grid.Coord{X: 1, Y: 0}, p.Step(0))
	assert.Equal(t, grid.Coord{X: 2, Y: 0}, p.Step(1))
	assert.Equal(t, grid.Coord{X: 0, Y: 0}, p.StepWithStart(0))
	assert.Equal(t, grid.Coord{X: 2, Y: 0}, p.StepWithStart(2))

	assert.Equal(t, []grid.Coord{{X: 1, Y: 0}, {X: 2, Y: 0}}, collect(p, false))
	assert.Equal(t, []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, collect(p, true))
	assert.Equal(t, "[(0,0) (1,0) (2,0)]", p.String())
}

func TestPathReverse(t *testing.T) {
	p := threeCells()
	p.Reverse()

	assert.Equal(t, grid.Coord{X: 2, Y: 0}, p.Start())
	assert.Equal(t, grid.Coord{X: 0, Y: 0}, p.End())
	assert.Equal(t, 2, p.Length())
	assert.Equal(t, grid.Coord{X: 1, Y: 0}, p.Step(0))
	assert.Equal(t, grid.Coord{X: 0, Y: 0}, p.Step(1))
	assert.Equal(t, grid.Coord{X: 2, Y: 0}, p.StepWithStart(0))
	assert.Equal(t, []grid.Coord{{X: 1, Y: 0}, {X: 0, Y: 0}}, collect(p, false))
	assert.Equal(t, "[(2,0) (1,0) (0,0)]", p.String())

	p.Reverse()
	assert.Equal(t, threeCells().Coords(), p.Coords())
	assert.Equal(t, grid.Coord{X: 0, Y: 0}, p.Start())
}

func TestCopyPath(t *testing.T) {
	p := threeCells()

	reversed := CopyPath(p, true)
	assert.Equal(t, p.End(), reversed.Start())
	assert.Equal(t, p.Start(), reversed.End())
	assert.Equal(t, p.Cost(), reversed.Cost())
	assert.Equal(t, grid.Coord{X: 0, Y: 0}, p.Start(), "original keeps its orientation")
	assert.Same(t, &p.steps[0], &reversed.steps[0], "steps are shared")

	same := CopyPath(p, false)
	assert.Equal(t, p.Coords(), same.Coords())

	// copying a reversed path without reversing keeps the reversed orientation
	again := CopyPath(reversed, false)
	assert.Equal(t, reversed.Coords(), again.Coords())
}

func TestPathIterationStopsEarly(t *testing.T) {
	p := threeCells()
	var seen []grid.Coord
	for c := range p.StepsWithStart() {
		seen = append(seen, c)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}, seen)

	p.Reverse()
	seen = seen[:0]
	for c := range p.Steps() {
		seen = append(seen, c)
		break
	}
	assert.Equal(t, []grid.Coord{{X: 1, Y: 0}}, seen)
}

func TestSingleCellPath(t *testing.T) {
	p := newPath([]grid.Coord{{X: 3, Y: 4}}, 0)
	assert.Equal(t, 0, p.Length())
	assert.Equal(t, 1, p.LengthWithStart())
	assert.Empty(t, collect(p, false))
	assert.Equal(t, []grid.Coord{{X: 3, Y: 4}}, collect(p, true))
	p.Reverse()
	assert.Equal(t, p.Start(), p.End())
	assert.Equal(t, "[(3,4)]", p.String())
}

func TestPathFeature(t *testing.T) {
	p := threeCells()
	feature := p.Feature()
	require.NotNil(t, feature)

	ls, ok := feature.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, orb.LineString{{0.5, 0.5}, {1.5, 0.5}, {2.5, 0.5}}, ls)
	assert.Equal(t, 2, feature.Properties["length"])
	assert.Equal(t, 2.0, feature.Properties["cost"])
	assert.Equal(t, []int{0, 0}, feature.Properties["start"])
	assert.Equal(t, []int{2, 0}, feature.Properties["end"])

	point := newPath([]grid.Coord{{X: 1, Y: 1}}, 0).Feature()
	assert.Equal(t, orb.Point{1.5, 1.5}, point.Geometry)
}
