package pbf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/qedus/osmpbf"

	"github.com/natevvv/grid-astar/pkg/raster"
)

// ObstacleImporter reads ways that block movement from an OSM extract.
// Files ending in .osm or .xml are read as OSM XML, everything else as PBF.
type ObstacleImporter struct {
	filename  string
	obstacles []*raster.Obstacle
	nodes     map[int64]orb.Point
}

func NewObstacleImporter(filename string) *ObstacleImporter {
	return &ObstacleImporter{
		filename:  filename,
		obstacles: make([]*raster.Obstacle, 0),
		nodes:     make(map[int64]orb.Point),
	}
}

func (oi *ObstacleImporter) Import() error {
	switch strings.ToLower(filepath.Ext(oi.filename)) {
	case ".osm", ".xml":
		file, err := os.Open(oi.filename)
		if err != nil {
			return err
		}
		defer file.Close()
		return oi.ImportXML(context.Background(), file)
	default:
		return oi.importPBF()
	}
}

// ImportXML reads OSM XML. Nodes precede ways in OSM XML, so a single pass is sufficient.
func (oi *ObstacleImporter) ImportXML(ctx context.Context, r io.Reader) error {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		switch v := scanner.Object().(type) {
		case *osm.Node:
			oi.nodes[int64(v.ID)] = orb.Point{v.Lon, v.Lat}
		case *osm.Way:
			nodeIDs := make([]int64, 0, len(v.Nodes))
			for _, wn := range v.Nodes {
				nodeIDs = append(nodeIDs, int64(wn.ID))
			}
			if obstacle := oi.makeObstacle(int64(v.ID), v.Tags.Map(), nodeIDs); obstacle != nil {
				oi.obstacles = append(oi.obstacles, obstacle)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning osm xml: %w", err)
	}
	return nil
}

func (oi *ObstacleImporter) importPBF() error {
	if err := oi.collectNodes(); err != nil {
		return err
	}

	file, err := os.Open(oi.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	err = decoder.Start(runtime.GOMAXPROCS(-1))
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	obstacleChan := make(chan *raster.Obstacle, 1000)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for obstacle := range obstacleChan {
			oi.obstacles = append(oi.obstacles, obstacle)
		}
	}()

	var decodeErr error
	for {
		v, err := decoder.Decode()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				decodeErr = fmt.Errorf("decoding ways: %w", err)
			}
			break
		}
		if way, ok := v.(*osmpbf.Way); ok {
			if obstacle := oi.makeObstacle(way.ID, way.Tags, way.NodeIDs); obstacle != nil {
				obstacleChan <- obstacle
			}
		}
	}
	close(obstacleChan)

	wg.Wait()
	return decodeErr
}

func (oi *ObstacleImporter) collectNodes() error {
	file, err := os.Open(oi.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	err = decoder.Start(runtime.GOMAXPROCS(-1))
	if err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decoding nodes: %w", err)
		}
		if node, ok := v.(*osmpbf.Node); ok {
			oi.nodes[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}
}

// makeObstacle returns nil if the way is no obstacle or none of its nodes is known
func (oi *ObstacleImporter) makeObstacle(id int64, tags map[string]string, nodeIDs []int64) *raster.Obstacle {
	kind := ObstacleKind(tags)
	if kind == raster.Unknown {
		return nil
	}
	line := make(orb.LineString, 0, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		if point, ok := oi.nodes[nodeID]; ok {
			line = append(line, point)
		}
	}
	if len(line) == 0 {
		return nil
	}
	return &raster.Obstacle{ID: id, Kind: kind, Tags: tags, Geometry: line}
}

// ObstacleKind classifies a way by its tags
func ObstacleKind(tags map[string]string) raster.Kind {
	if building, ok := tags["building"]; ok && building != "no" {
		return raster.Building
	}
	switch tags["natural"] {
	case "water", "coastline", "bay":
		return raster.Water
	case "cliff":
		return raster.Cliff
	}
	if _, ok := tags["waterway"]; ok {
		return raster.Water
	}
	if tags["landuse"] == "reservoir" {
		return raster.Water
	}
	if barrier, ok := tags["barrier"]; ok && barrier != "no" {
		return raster.Barrier
	}
	return raster.Unknown
}

func (oi *ObstacleImporter) Obstacles() []*raster.Obstacle {
	return oi.obstacles
}

// NodeCount is the number of node coordinates read
func (oi *ObstacleImporter) NodeCount() int {
	return len(oi.nodes)
}
