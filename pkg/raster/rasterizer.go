package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/slice"
)

var ErrInvalidArea = errors.New("invalid raster area")

// polygonEntry wraps a polygon obstacle for R-tree storage
type polygonEntry struct {
	obstacle *Obstacle
	polygon  orb.Polygon
	bbox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (p *polygonEntry) Bounds() rtreego.Rect {
	return p.bbox
}

// Rasterizer maps obstacles from a geographic bound onto a width x height grid.
// Row 0 of the grid is the northern edge of the bound.
type Rasterizer struct {
	bound      orb.Bound
	width      int
	height     int
	cellWidth  float64
	cellHeight float64

	weights map[Kind]float64 // kinds with a weight slow movement instead of blocking it

	index *rtreego.Rtree
	lines []*Obstacle
}

// Stats describe the result of a rasterization
type Stats struct {
	Polygons int
	Lines    int
	Blocked  int
	Weighted int
	Coverage float64 // share of blocked cells
}

func NewRasterizer(bound orb.Bound, width, height int) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidArea, width, height)
	}
	if bound.Right() <= bound.Left() || bound.Top() <= bound.Bottom() {
		return nil, fmt.Errorf("%w: empty bound %v", ErrInvalidArea, bound)
	}
	return &Rasterizer{
		bound:      bound,
		width:      width,
		height:     height,
		cellWidth:  (bound.Right() - bound.Left()) / float64(width),
		cellHeight: (bound.Top() - bound.Bottom()) / float64(height),
		weights:    make(map[Kind]float64),
		index:      rtreego.NewTree(2, 25, 50),
	}, nil
}

// SetWeight makes obstacles of kind cost weight to enter instead of blocking.
// A weight <= 0 restores blocking.
func (r *Rasterizer) SetWeight(kind Kind, weight float64) {
	if weight <= 0 {
		delete(r.weights, kind)
		return
	}
	r.weights[kind] = weight
}

func (r *Rasterizer) Add(obstacles ...*Obstacle) {
	for _, o := range obstacles {
		switch g := o.Geometry.(type) {
		case orb.Polygon:
			r.addPolygon(o, g)
		case orb.MultiPolygon:
			for _, p := range g {
				r.addPolygon(o, p)
			}
		case orb.LineString:
			r.lines = append(r.lines, o)
		case orb.Ring:
			r.addPolygon(o, orb.Polygon{g})
		}
	}
}

func (r *Rasterizer) addPolygon(o *Obstacle, p orb.Polygon) {
	if len(p) == 0 || len(p[0]) == 0 {
		return
	}
	b := p.Bound()
	bbox, err := rtreego.NewRect(
		rtreego.Point{b.Left(), b.Bottom()},
		[]float64{math.Max(b.Right()-b.Left(), 1e-12), math.Max(b.Top()-b.Bottom(), 1e-12)},
	)
	if err != nil {
		return
	}
	r.index.Insert(&polygonEntry{obstacle: o, polygon: p, bbox: bbox})
}

// Cell returns the grid cell containing p
func (r *Rasterizer) Cell(p orb.Point) (grid.Coord, bool) {
	c := grid.Coord{
		X: int(math.Floor((p.X() - r.bound.Left()) / r.cellWidth)),
		Y: int(math.Floor((r.bound.Top() - p.Y()) / r.cellHeight)),
	}
	// points on the southern or eastern edge belong to the last cell
	if c.X == r.width && p.X() == r.bound.Right() {
		c.X--
	}
	if c.Y == r.height && p.Y() == r.bound.Bottom() {
		c.Y--
	}
	return c, c.InBounds(r.width, r.height)
}

// CellCenter is the geographic centre of c
func (r *Rasterizer) CellCenter(c grid.Coord) orb.Point {
	return orb.Point{
		r.bound.Left() + (float64(c.X)+0.5)*r.cellWidth,
		r.bound.Top() - (float64(c.Y)+0.5)*r.cellHeight,
	}
}

// Project converts a line in grid space, as produced by path.Path.LineString, into the source coordinate system.
func (r *Rasterizer) Project(ls orb.LineString) orb.LineString {
	projected := make(orb.LineString, 0, len(ls))
	for _, p := range ls {
		projected = append(projected, orb.Point{
			r.bound.Left() + p.X()*r.cellWidth,
			r.bound.Top() - p.Y()*r.cellHeight,
		})
	}
	return projected
}

// Rasterize creates a map where every cell whose centre lies inside a polygon and every
// cell touched by a line or polygon outline is blocked or weighted.
func (r *Rasterizer) Rasterize() (*grid.ArrayMap, Stats) {
	stats := Stats{Polygons: r.index.Size(), Lines: len(r.lines)}
	blocked := slice.MakeFixedSizeSlice(r.width * r.height)
	weights := make([]float64, r.width*r.height)

	mark := func(c grid.Coord, kind Kind) {
		if !c.InBounds(r.width, r.height) {
			return
		}
		index := c.ToIndex(r.width)
		if w, ok := r.weights[kind]; ok {
			weights[index] = math.Max(weights[index], w)
			return
		}
		blocked.Add(index)
	}

	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			c := grid.Coord{X: x, Y: y}
			centre := r.CellCenter(c)
			cellRect, err := rtreego.NewRect(
				rtreego.Point{centre.X() - r.cellWidth/2, centre.Y() - r.cellHeight/2},
				[]float64{r.cellWidth, r.cellHeight},
			)
			if err != nil {
				continue
			}
			for _, item := range r.index.SearchIntersect(cellRect) {
				entry := item.(*polygonEntry)
				if planar.PolygonContains(entry.polygon, centre) {
					mark(c, entry.obstacle.Kind)
				}
			}
		}
	}

	for _, item := range r.index.SearchIntersect(r.indexBound()) {
		entry := item.(*polygonEntry)
		for _, ring := range entry.polygon {
			r.rasterizeLine(orb.LineString(ring), entry.obstacle.Kind, mark)
		}
	}
	for _, o := range r.lines {
		ls, _ := o.Line()
		r.rasterizeLine(ls, o.Kind, mark)
	}

	m := grid.NewOpenArrayMap(r.width, r.height)
	for index, isBlocked := range blocked.Get() {
		c := grid.FromIndex(index, r.width)
		if isBlocked {
			_ = m.SetWalkable(c, false)
			continue
		}
		if weights[index] > 0 {
			_ = m.SetWeight(c, weights[index])
			stats.Weighted++
		}
	}
	stats.Blocked = blocked.Len()
	stats.Coverage = blocked.Ratio()
	return m, stats
}

func (r *Rasterizer) indexBound() rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{r.bound.Left(), r.bound.Bottom()},
		[]float64{r.bound.Right() - r.bound.Left(), r.bound.Top() - r.bound.Bottom()},
	)
	return rect
}

func (r *Rasterizer) rasterizeLine(ls orb.LineString, kind Kind, mark func(grid.Coord, Kind)) {
	for i := 1; i < len(ls); i++ {
		segment := orb.LineString{ls[i-1], ls[i]}
		if !segment.Bound().Intersects(r.bound) {
			continue
		}
		from := r.unclampedCell(ls[i-1])
		to := r.unclampedCell(ls[i])
		bresenham(from, to, func(c grid.Coord) { mark(c, kind) })
	}
}

func (r *Rasterizer) unclampedCell(p orb.Point) grid.Coord {
	c, _ := r.Cell(p)
	return c
}

// bresenham visits every cell on the line from a to b, both included
func bresenham(a, b grid.Coord, visit func(grid.Coord)) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		visit(grid.Coord{X: x, Y: y})
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
