package pbf

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/natevvv/grid-astar/pkg/raster"
)

func ExportObstaclesGeoJSON(obstacles []*raster.Obstacle, filename string) error {
	data, err := ObstacleCollection(obstacles).MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// ObstacleCollection converts obstacles into a feature collection with id, kind and tags as properties
func ObstacleCollection(obstacles []*raster.Obstacle) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, o := range obstacles {
		feature := geojson.NewFeature(o.Geometry)
		feature.ID = o.ID
		feature.Properties["id"] = o.ID
		feature.Properties["kind"] = o.Kind.String()
		if len(o.Tags) > 0 {
			feature.Properties["tags"] = o.Tags
		}
		fc.Append(feature)
	}
	return fc
}

func LoadGeoJSONObstacles(filename string) ([]*raster.Obstacle, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	obstacles, err := ParseGeoJSONObstacles(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return obstacles, nil
}

// ParseGeoJSONObstacles reads line and polygon features. Features without a known
// kind property block movement as Building. Multi geometries are split up.
func ParseGeoJSONObstacles(data []byte) ([]*raster.Obstacle, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	obstacles := make([]*raster.Obstacle, 0, len(fc.Features))
	for i, feature := range fc.Features {
		kind := raster.ParseKind(feature.Properties.MustString("kind", ""))
		if kind == raster.Unknown {
			kind = raster.Building
		}
		id := int64(feature.Properties.MustFloat64("id", float64(i)))

		add := func(g orb.Geometry) {
			obstacles = append(obstacles, &raster.Obstacle{ID: id, Kind: kind, Geometry: g})
		}
		switch g := feature.Geometry.(type) {
		case orb.Polygon, orb.LineString:
			add(g)
		case orb.MultiPolygon:
			for _, p := range g {
				add(p)
			}
		case orb.MultiLineString:
			for _, ls := range g {
				add(ls)
			}
		}
	}
	return obstacles, nil
}
