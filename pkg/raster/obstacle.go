package raster

import (
	"strings"

	"github.com/paulmach/orb"
)

type Kind int

const (
	Unknown Kind = iota
	Building
	Water
	Cliff
	Barrier
)

var kindNames = []string{"Unknown", "Building", "Water", "Cliff", "Barrier"}

func (k Kind) String() string {
	if k < Unknown || int(k) >= len(kindNames) {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

// ParseKind is case insensitive, unknown names give Unknown
func ParseKind(name string) Kind {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i)
		}
	}
	return Unknown
}

// Obstacle is something that blocks or slows movement on the rasterized map.
// Geometry is either an orb.LineString or an orb.Polygon in the source coordinate system.
type Obstacle struct {
	ID       int64
	Kind     Kind
	Geometry orb.Geometry
	Tags     map[string]string
}

func (o *Obstacle) Bound() orb.Bound { return o.Geometry.Bound() }

// Line returns the geometry as line string if it is one
func (o *Obstacle) Line() (orb.LineString, bool) {
	ls, ok := o.Geometry.(orb.LineString)
	return ls, ok
}

// IsClosed reports whether the obstacle is a line string whose ends meet
func (o *Obstacle) IsClosed() bool {
	ls, ok := o.Line()
	return ok && len(ls) >= 4 && ls[0] == ls[len(ls)-1]
}
