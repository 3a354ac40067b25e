package path

import (
	"fmt"
	"strings"

	"github.com/natevvv/grid-astar/pkg/grid"
)

// Heuristic estimates the remaining cost from a cell to the goal
type Heuristic func(from, to grid.Coord) float64

// HeuristicByName resolves the heuristic names used in configuration.
// "default" uses the distance measurement of the map, "fast" always uses the
// manhattan distance, which overestimates on 8-way maps.
func HeuristicByName(name string, distance grid.Distance) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return distance.Calculate, nil
	case "fast", "manhattan":
		return grid.MANHATTAN.Calculate, nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}

// TieBreaker returns the heuristic multiplier for a map of the given size,
// 1 + 1/(width*height + 1).
func TieBreaker(width, height int) float64 {
	return 1.0 + 1.0/float64(width*height+1)
}
