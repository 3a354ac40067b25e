package main

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/mapgen"
	p "github.com/natevvv/grid-astar/pkg/path"
)

// target is a benchmark case with its reference result. hops is the number of
// coordinates of the reference path including the start, -1 if unreachable.
type target struct {
	origin      grid.Coord
	destination grid.Coord
	cost        float64
	hops        int
}

const distanceHeader = "distance"

var (
	errMissingDistance = errors.New("targets file has no distance header")
	errTargetDistances = errors.New("targets file needs exactly one distance")
)

// readTargets reads the targets and the distance their reference results were
// computed with. The distance is given by a "distance <NAME>" line before the first target.
func readTargets(filename string) ([]target, grid.Distance, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	targets := make([]target, 0)
	var distance grid.Distance
	hasDistance := false
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}
		if name, ok := strings.CutPrefix(line, distanceHeader+" "); ok {
			if distance, err = grid.ParseDistance(name); err != nil {
				return nil, 0, fmt.Errorf("%s:%d: %w", filename, lineNumber, err)
			}
			hasDistance = true
			continue
		}
		if !hasDistance {
			return nil, 0, fmt.Errorf("%s:%d: %w", filename, lineNumber, errMissingDistance)
		}
		var t target
		if _, err := fmt.Sscanf(line, "%d %d %d %d %g %d", &t.origin.X, &t.origin.Y, &t.destination.X, &t.destination.Y, &t.cost, &t.hops); err != nil {
			return nil, 0, fmt.Errorf("%s:%d: %w", filename, lineNumber, err)
		}
		targets = append(targets, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	if !hasDistance {
		return nil, 0, fmt.Errorf("%s: %w", filename, errMissingDistance)
	}
	return targets, distance, nil
}

// targetDistances returns the distances a run over a targets file may use.
// Read targets only hold for the distance they were written with, stored
// targets can only be written for a single distance.
func targetDistances(configured []grid.Distance, fileDistance grid.Distance, readFromFile bool) ([]grid.Distance, error) {
	if readFromFile {
		if !slices.Contains(configured, fileDistance) {
			return nil, fmt.Errorf("%w: file has %v, configured %v", errTargetDistances, fileDistance, configured)
		}
		return []grid.Distance{fileDistance}, nil
	}
	if len(configured) != 1 {
		return nil, fmt.Errorf("%w: configured %v", errTargetDistances, configured)
	}
	return configured, nil
}

// createTargets picks n random walkable pairs and solves them with the reference Dijkstra
func createTargets(n int, m *grid.ArrayMap, distance grid.Distance, rng *rand.Rand) []target {
	reference := p.NewDijkstra(m, distance, nil)
	targets := make([]target, 0, n)
	for _, pair := range mapgen.RandomPairs(m, rng, n) {
		t := target{origin: pair[0], destination: pair[1], hops: -1}
		if path := reference.ShortestPath(t.origin, t.destination, true); path != nil {
			t.cost = path.Cost()
			t.hops = path.LengthWithStart()
		}
		targets = append(targets, t)
	}
	return targets
}

func writeTargets(targets []target, distance grid.Distance, targetFile string) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %v\n", distanceHeader, distance))
	sb.WriteString("# origin x, origin y, destination x, destination y, cost, hops\n")
	for _, t := range targets {
		sb.WriteString(fmt.Sprintf("%v %v %v %v %v %v\n", t.origin.X, t.origin.Y, t.destination.X, t.destination.Y, t.cost, t.hops))
	}

	file, err := os.Create(targetFile)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(sb.String()); err != nil {
		return err
	}
	return writer.Flush()
}
