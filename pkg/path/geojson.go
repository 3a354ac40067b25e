package path

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LineString converts the path into grid space geometry, one vertex per cell
// centre, from start to end.
func (p *Path) LineString() orb.LineString {
	ls := make(orb.LineString, 0, p.LengthWithStart())
	for c := range p.StepsWithStart() {
		ls = append(ls, orb.Point{float64(c.X) + 0.5, float64(c.Y) + 0.5})
	}
	return ls
}

// Feature wraps the path into a GeoJSON feature carrying length and cost.
// A single cell path becomes a Point.
func (p *Path) Feature() *geojson.Feature {
	var feature *geojson.Feature
	if p.Length() == 0 {
		start := p.Start()
		feature = geojson.NewFeature(orb.Point{float64(start.X) + 0.5, float64(start.Y) + 0.5})
	} else {
		feature = geojson.NewFeature(p.LineString())
	}
	feature.Properties["length"] = p.Length()
	feature.Properties["cost"] = p.Cost()
	feature.Properties["start"] = []int{p.Start().X, p.Start().Y}
	feature.Properties["end"] = []int{p.End().X, p.End().Y}
	return feature
}
