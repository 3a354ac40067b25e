package raster

import (
	"github.com/paulmach/orb"

	"github.com/natevvv/grid-astar/pkg/slice"
)

// areaKinds are the kinds whose closed outlines enclose a blocked area
var areaKinds = []Kind{Building, Water}

// Merger chains line obstacles of the same kind that share an end point.
// Lines of an area kind that end up closed are turned into polygons.
type Merger struct {
	obstacles       []*Obstacle
	mergeCount      int
	unmergableCount int
	polygonCount    int
}

func NewMerger(obstacles []*Obstacle) *Merger {
	return &Merger{
		obstacles: obstacles,
	}
}

func (m *Merger) Merge() {
	endpointToObstacles := make(map[orb.Point][]*Obstacle)

	for _, o := range m.obstacles {
		ls, ok := o.Line()
		if !ok {
			continue
		}
		if len(ls) < 2 {
			m.unmergableCount++
			continue
		}
		if o.IsClosed() {
			continue
		}
		endpointToObstacles[ls[0]] = append(endpointToObstacles[ls[0]], o)
		endpointToObstacles[ls[len(ls)-1]] = append(endpointToObstacles[ls[len(ls)-1]], o)
	}

	merged := make(map[*Obstacle]bool)
	var newObstacles []*Obstacle

	for _, o := range m.obstacles {
		if merged[o] {
			continue
		}
		ls, ok := o.Line()
		if !ok || len(ls) < 2 || o.IsClosed() {
			newObstacles = append(newObstacles, m.closeRing(o))
			continue
		}
		merged[o] = true

		current := o
		for {
			line, _ := current.Line()
			end := line[len(line)-1]

			foundNext := false
			for _, next := range endpointToObstacles[end] {
				if merged[next] || !canMerge(current, next) {
					continue
				}
				current = mergeTwoObstacles(current, next)
				merged[next] = true
				m.mergeCount++
				foundNext = true
				break
			}

			if !foundNext || current.IsClosed() {
				break
			}
		}

		newObstacles = append(newObstacles, m.closeRing(current))
	}

	m.obstacles = newObstacles
}

func (m *Merger) closeRing(o *Obstacle) *Obstacle {
	if !o.IsClosed() || !slice.Contains(areaKinds, o.Kind) {
		return o
	}
	ls, _ := o.Line()
	m.polygonCount++
	return &Obstacle{ID: o.ID, Kind: o.Kind, Tags: o.Tags, Geometry: orb.Polygon{orb.Ring(ls)}}
}

func canMerge(o1, o2 *Obstacle) bool {
	return o1.Kind == o2.Kind
}

// mergeTwoObstacles appends o2 to o1. o2 must touch the end of o1 with either of its ends.
func mergeTwoObstacles(o1, o2 *Obstacle) *Obstacle {
	first, _ := o1.Line()
	second, _ := o2.Line()

	points := make(orb.LineString, 0, len(first)+len(second)-1)
	points = append(points, first...)
	if second[0] != first[len(first)-1] {
		second = second.Clone()
		slice.ReverseInPlace(second)
	}
	points = append(points, second[1:]...) // first point equals the last point of o1

	return &Obstacle{ID: o1.ID, Kind: o1.Kind, Tags: o1.Tags, Geometry: points}
}

func (m *Merger) Obstacles() []*Obstacle {
	return m.obstacles
}

func (m *Merger) MergeCount() int {
	return m.mergeCount
}

func (m *Merger) UnmergableCount() int {
	return m.unmergableCount
}

// PolygonCount is the number of closed lines converted into polygons
func (m *Merger) PolygonCount() int {
	return m.polygonCount
}
