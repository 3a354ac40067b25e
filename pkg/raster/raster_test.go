package raster

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/grid-astar/pkg/grid"
)

var tenByTen = orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}

func square(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "Water", Water.String())
	assert.Equal(t, Water, ParseKind("water"))
	assert.Equal(t, Unknown, ParseKind("lava"))
	assert.Equal(t, "Unknown", Kind(42).String())
}

func TestMerger(t *testing.T) {
	obstacles := []*Obstacle{
		{ID: 1, Kind: Building, Geometry: orb.LineString{{0, 0}, {1, 0}}},
		{ID: 2, Kind: Building, Geometry: orb.LineString{{1, 0}, {1, 1}}},
		// touches with its end, gets reversed
		{ID: 3, Kind: Building, Geometry: orb.LineString{{0, 0}, {0, 1}, {1, 1}}},
		{ID: 4, Kind: Barrier, Geometry: orb.LineString{{5, 5}, {6, 5}}},
		{ID: 5, Kind: Cliff, Geometry: orb.LineString{{6, 5}, {7, 5}}},
		{ID: 6, Kind: Water, Geometry: orb.LineString{{9, 9}}},
		{ID: 7, Kind: Water, Geometry: square(2, 2, 3, 3)},
	}

	merger := NewMerger(obstacles)
	merger.Merge()
	merged := merger.Obstacles()

	assert.Equal(t, 2, merger.MergeCount())
	assert.Equal(t, 1, merger.UnmergableCount())
	assert.Equal(t, 1, merger.PolygonCount())
	require.Len(t, merged, 5)

	building := merged[0]
	assert.Equal(t, int64(1), building.ID)
	polygon, ok := building.Geometry.(orb.Polygon)
	require.True(t, ok, "closed building outline becomes a polygon")
	assert.Equal(t, orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}, polygon[0])

	assert.Equal(t, Barrier, merged[1].Kind, "different kinds are not merged")
	assert.Equal(t, Cliff, merged[2].Kind)
	assert.Equal(t, int64(6), merged[3].ID)
	assert.Equal(t, int64(7), merged[4].ID)

	// the source line was not modified by the reversal
	assert.Equal(t, orb.LineString{{0, 0}, {0, 1}, {1, 1}}, obstacles[2].Geometry)
}

func TestNewRasterizerValidation(t *testing.T) {
	_, err := NewRasterizer(tenByTen, 0, 5)
	assert.ErrorIs(t, err, ErrInvalidArea)
	_, err = NewRasterizer(orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{1, 5}}, 5, 5)
	assert.ErrorIs(t, err, ErrInvalidArea)
}

func TestRasterizerCells(t *testing.T) {
	r, err := NewRasterizer(tenByTen, 10, 5)
	require.NoError(t, err)

	c, ok := r.Cell(orb.Point{0.5, 9.9})
	assert.True(t, ok)
	assert.Equal(t, grid.Coord{X: 0, Y: 0}, c)

	c, ok = r.Cell(orb.Point{10, 0})
	assert.True(t, ok, "edge of the bound")
	assert.Equal(t, grid.Coord{X: 9, Y: 4}, c)

	_, ok = r.Cell(orb.Point{11, 5})
	assert.False(t, ok)

	assert.Equal(t, orb.Point{3.5, 5}, r.CellCenter(grid.Coord{X: 3, Y: 2}))
	assert.Equal(t, orb.LineString{{0, 10}, {2, 8}}, r.Project(orb.LineString{{0, 0}, {2, 1}}))
}

func TestRasterizePolygon(t *testing.T) {
	r, err := NewRasterizer(tenByTen, 10, 10)
	require.NoError(t, err)
	r.Add(&Obstacle{ID: 1, Kind: Building, Geometry: square(2, 2, 5, 5)})

	m, stats := r.Rasterize()
	assert.Equal(t, 1, stats.Polygons)
	assert.Equal(t, 16, stats.Blocked, "interior plus outline cells")
	assert.InDelta(t, 0.16, stats.Coverage, 1e-9)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x <= 5 && y >= 5 && y <= 8
			assert.Equal(t, !inside, m.IsWalkable(grid.Coord{X: x, Y: y}), "(%d,%d)", x, y)
		}
	}
}

func TestRasterizeLineAndWeights(t *testing.T) {
	r, err := NewRasterizer(tenByTen, 10, 10)
	require.NoError(t, err)
	r.SetWeight(Water, 5)
	r.Add(
		&Obstacle{ID: 1, Kind: Barrier, Geometry: orb.LineString{{0.5, 9.5}, {9.5, 9.5}}},
		&Obstacle{ID: 2, Kind: Water, Geometry: square(0, 0, 3, 3)},
		// partly outside the bound
		&Obstacle{ID: 3, Kind: Cliff, Geometry: orb.LineString{{9.5, 5.5}, {20, 5.5}}},
		&Obstacle{ID: 4, Kind: Cliff, Geometry: orb.LineString{{20, 20}, {30, 30}}},
	)

	m, stats := r.Rasterize()
	assert.Equal(t, 3, stats.Lines)
	assert.Equal(t, 11, stats.Blocked)
	assert.Equal(t, 12, stats.Weighted)

	for x := 0; x < 10; x++ {
		assert.False(t, m.IsWalkable(grid.Coord{X: x, Y: 0}))
	}
	assert.False(t, m.IsWalkable(grid.Coord{X: 9, Y: 4}))

	water := grid.Coord{X: 1, Y: 8}
	assert.True(t, m.IsWalkable(water))
	assert.Equal(t, 5.0, m.Weight(water))
	assert.Equal(t, 1.0, m.Weight(grid.Coord{X: 5, Y: 5}))

	r.SetWeight(Water, 0)
	_, stats = r.Rasterize()
	assert.Equal(t, 0, stats.Weighted)
	assert.Equal(t, 23, stats.Blocked)
}

func TestBresenham(t *testing.T) {
	var cells []grid.Coord
	bresenham(grid.Coord{X: 0, Y: 0}, grid.Coord{X: 3, Y: 1}, func(c grid.Coord) { cells = append(cells, c) })
	assert.Equal(t, grid.Coord{X: 0, Y: 0}, cells[0])
	assert.Equal(t, grid.Coord{X: 3, Y: 1}, cells[len(cells)-1])
	assert.Len(t, cells, 4)

	cells = cells[:0]
	bresenham(grid.Coord{X: 2, Y: 2}, grid.Coord{X: 2, Y: 2}, func(c grid.Coord) { cells = append(cells, c) })
	assert.Equal(t, []grid.Coord{{X: 2, Y: 2}}, cells)
}
