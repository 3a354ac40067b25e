package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/natevvv/grid-astar/internal/pbf"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/mapgen"
	"github.com/natevvv/grid-astar/pkg/raster"
)

var errNoInput = errors.New("nothing to build: use -generate or -f")

func main() {
	generate := flag.String("generate", "", "Generate a map: RECTANGLE, \"RAND ROOMS\" or \"CELL AUTO\"")
	size := flag.Int("size", 100, "Width and height of a generated map")
	seed := flag.Uint64("seed", 1, "Seed of a generated map")

	inputs := flag.String("f", "", "Comma separated obstacle sources (.osm.pbf, .osm or .geojson)")
	bbox := flag.String("bbox", "", "minLon,minLat,maxLon,maxLat of the rasterized area, defaults to the obstacles' bound")
	width := flag.Int("width", 500, "Width of a rasterized map")
	height := flag.Int("height", 500, "Height of a rasterized map")
	waterWeight := flag.Float64("water-weight", 0, "Weight of water cells instead of blocking them (0 blocks)")
	obstaclesOut := flag.String("obstacles-out", "", "Export the merged obstacles as GeoJSON")

	output := flag.String("o", "grid.map", "Output map file")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	var m *grid.ArrayMap
	var err error
	switch {
	case *generate != "":
		m, err = generateMap(*generate, *size, *seed)
	case *inputs != "":
		m, err = rasterizeSources(context.Background(), strings.Split(*inputs, ","), *bbox, *width, *height, *waterWeight, *obstaclesOut)
	default:
		err = errNoInput
	}
	if err != nil {
		slog.Error("building map failed", "err", err)
		os.Exit(1)
	}

	if err := grid.WriteArrayMapFile(m, *output); err != nil {
		slog.Error("writing map failed", "err", err)
		os.Exit(1)
	}
	slog.Info("map written", "file", *output, "width", m.Width(), "height", m.Height(), "walkable", m.WalkableCount())
}

func generateMap(name string, size int, seed uint64) (*grid.ArrayMap, error) {
	generator, err := mapgen.ByName(name, size)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	m := grid.NewArrayMap(size, size)
	generator(m, mapgen.NewRand(seed))
	slog.Info("map generated", "generator", name, "size", size, "seed", seed, "time", time.Since(start))
	return m, nil
}

func rasterizeSources(ctx context.Context, sources []string, bbox string, width, height int, waterWeight float64, obstaclesOut string) (*grid.ArrayMap, error) {
	start := time.Now()
	obstacles, err := importObstacles(ctx, sources)
	if err != nil {
		return nil, err
	}
	slog.Info("obstacles imported", "count", len(obstacles), "time", time.Since(start))

	start = time.Now()
	merger := raster.NewMerger(obstacles)
	merger.Merge()
	obstacles = merger.Obstacles()
	slog.Info("obstacles merged",
		"count", len(obstacles),
		"merges", merger.MergeCount(),
		"unmergable", merger.UnmergableCount(),
		"polygons", merger.PolygonCount(),
		"time", time.Since(start),
	)

	if obstaclesOut != "" {
		if err := pbf.ExportObstaclesGeoJSON(obstacles, obstaclesOut); err != nil {
			return nil, fmt.Errorf("exporting obstacles: %w", err)
		}
		slog.Info("obstacles exported", "file", obstaclesOut)
	}

	bound, err := parseBound(bbox)
	if err != nil {
		return nil, err
	}
	if bbox == "" {
		bound = obstaclesBound(obstacles)
	}

	r, err := raster.NewRasterizer(bound, width, height)
	if err != nil {
		return nil, err
	}
	r.SetWeight(raster.Water, waterWeight)
	r.Add(obstacles...)

	start = time.Now()
	m, stats := r.Rasterize()
	slog.Info("obstacles rasterized",
		"polygons", stats.Polygons,
		"lines", stats.Lines,
		"blocked", stats.Blocked,
		"weighted", stats.Weighted,
		"coverage", fmt.Sprintf("%.2f%%", stats.Coverage*100),
		"time", time.Since(start),
	)
	return m, nil
}

// importObstacles reads all sources in parallel
func importObstacles(ctx context.Context, sources []string) ([]*raster.Obstacle, error) {
	var mu sync.Mutex
	var obstacles []*raster.Obstacle

	g, _ := errgroup.WithContext(ctx)
	for _, source := range sources {
		source = strings.TrimSpace(source)
		g.Go(func() error {
			var imported []*raster.Obstacle
			if strings.EqualFold(filepath.Ext(source), ".geojson") || strings.EqualFold(filepath.Ext(source), ".json") {
				var err error
				imported, err = pbf.LoadGeoJSONObstacles(source)
				if err != nil {
					return err
				}
			} else {
				importer := pbf.NewObstacleImporter(source)
				if err := importer.Import(); err != nil {
					return fmt.Errorf("importing %s: %w", source, err)
				}
				imported = importer.Obstacles()
			}
			slog.Debug("source imported", "file", source, "obstacles", len(imported))

			mu.Lock()
			obstacles = append(obstacles, imported...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return obstacles, nil
}

// parseBound reads minLon,minLat,maxLon,maxLat. An empty string gives an empty bound.
func parseBound(bbox string) (orb.Bound, error) {
	if bbox == "" {
		return orb.Bound{}, nil
	}
	parts := strings.Split(bbox, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("bbox %q needs 4 values", bbox)
	}
	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("bbox %q: %w", bbox, err)
		}
		values[i] = v
	}
	return orb.Bound{Min: orb.Point{values[0], values[1]}, Max: orb.Point{values[2], values[3]}}, nil
}

func obstaclesBound(obstacles []*raster.Obstacle) orb.Bound {
	if len(obstacles) == 0 {
		return orb.Bound{}
	}
	bound := obstacles[0].Bound()
	for _, o := range obstacles[1:] {
		bound = bound.Union(o.Bound())
	}
	return bound
}
