// Package mapgen produces walkability maps for benchmarks and tests.
package mapgen

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/natevvv/grid-astar/pkg/grid"
)

// Generator fills m with walkable and blocked cells
type Generator func(m *grid.ArrayMap, rng *rand.Rand)

const (
	RECTANGLE = "RECTANGLE"
	RANDROOMS = "RAND ROOMS"
	CELLAUTO  = "CELL AUTO"
)

// Names lists the generator names known to ByName
func Names() []string {
	return []string{RECTANGLE, RANDROOMS, CELLAUTO}
}

// random room parameters per map size: max rooms, min room size, max room size
var randomRoomParams = map[int][3]int{
	50:  {10, 3, 7},
	100: {20, 3, 10},
	250: {35, 3, 15},
	500: {100, 3, 15},
}

// NewRand returns a deterministic generator for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ByName resolves a generator name. size is the map width, which selects the
// room parameters of RAND ROOMS.
func ByName(name string, size int) (Generator, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case RECTANGLE:
		return func(m *grid.ArrayMap, rng *rand.Rand) { Rectangle(m) }, nil
	case RANDROOMS, "RAND-ROOMS", "ROOMS":
		params, ok := randomRoomParams[size]
		if !ok {
			params = [3]int{max(1, size/5), 3, max(3, size/15)}
		}
		return func(m *grid.ArrayMap, rng *rand.Rand) {
			RandomRooms(m, rng, params[0], params[1], params[2])
		}, nil
	case CELLAUTO, "CELL-AUTO", "CELLULAR":
		return func(m *grid.ArrayMap, rng *rand.Rand) {
			CellularAutomata(m, rng, 40, 7, 4)
		}, nil
	default:
		return nil, fmt.Errorf("unknown map generator %q", name)
	}
}

// Rectangle makes every cell walkable except the border
func Rectangle(m *grid.ArrayMap) {
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			m.SetWalkable(grid.Coord{X: x, Y: y}, !onBorder(m, x, y))
		}
	}
}

func onBorder(m grid.Map, x, y int) bool {
	return x == 0 || y == 0 || x == m.Width()-1 || y == m.Height()-1
}

// RandomWalkable picks a random walkable cell. It returns false if the map has none.
func RandomWalkable(m *grid.ArrayMap, rng *rand.Rand) (grid.Coord, bool) {
	// most generated maps are dense enough for rejection sampling
	for i := 0; i < 64; i++ {
		c := grid.Coord{X: rng.IntN(m.Width()), Y: rng.IntN(m.Height())}
		if m.IsWalkable(c) {
			return c, true
		}
	}
	walkable := m.Walkable()
	if len(walkable) == 0 {
		return grid.Coord{}, false
	}
	return walkable[rng.IntN(len(walkable))], true
}

// RandomPairs picks n start/end pairs of walkable cells
func RandomPairs(m *grid.ArrayMap, rng *rand.Rand, n int) [][2]grid.Coord {
	pairs := make([][2]grid.Coord, 0, n)
	for i := 0; i < n; i++ {
		start, ok := RandomWalkable(m, rng)
		if !ok {
			break
		}
		end, _ := RandomWalkable(m, rng)
		pairs = append(pairs, [2]grid.Coord{start, end})
	}
	return pairs
}
