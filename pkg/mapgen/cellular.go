package mapgen

import (
	"math/rand/v2"

	"github.com/natevvv/grid-astar/pkg/grid"
)

// CellularAutomata fills fillProbability percent of the interior with walls and
// smooths the result for totalIterations rounds. A cell becomes a wall when at
// least 5 cells of its 3x3 block are walls; during the first cutoffBigAreaFill
// rounds, cells with at most 2 walls in their 5x5 block become walls too, which
// breaks up large open areas. Disconnected caves are kept.
func CellularAutomata(m *grid.ArrayMap, rng *rand.Rand, fillProbability, totalIterations, cutoffBigAreaFill int) {
	width, height := m.Width(), m.Height()
	walls := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			walls[y*width+x] = onBorder(m, x, y) || rng.IntN(100) < fillProbability
		}
	}

	next := make([]bool, width*height)
	for i := 0; i < totalIterations; i++ {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				index := y*width + x
				if onBorder(m, x, y) {
					next[index] = true
					continue
				}
				wall := countWallsNear(walls, width, height, x, y, 1) >= 5
				if i < cutoffBigAreaFill && countWallsNear(walls, width, height, x, y, 2) <= 2 {
					wall = true
				}
				next[index] = wall
			}
		}
		walls, next = next, walls
	}

	for index, wall := range walls {
		m.SetWalkable(grid.FromIndex(index, width), !wall)
	}
}

// countWallsNear counts walls in the square of the given radius around (x, y),
// cells outside of the map count as walls.
func countWallsNear(walls []bool, width, height, x, y, radius int) int {
	count := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= width || ny >= height || walls[ny*width+nx] {
				count++
			}
		}
	}
	return count
}
