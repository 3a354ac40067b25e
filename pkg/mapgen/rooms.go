package mapgen

import (
	"math/rand/v2"

	"github.com/natevvv/grid-astar/pkg/grid"
)

const roomPlacementAttempts = 10

type room struct {
	x, y, width, height int
}

func (r room) center() grid.Coord {
	return grid.Coord{X: r.x + r.width/2, Y: r.y + r.height/2}
}

// intersects with one cell of margin, so rooms never share walls
func (r room) intersects(other room) bool {
	return r.x-1 <= other.x+other.width && other.x-1 <= r.x+r.width &&
		r.y-1 <= other.y+other.height && other.y-1 <= r.y+r.height
}

// RandomRooms blocks the whole map and carves up to maxRooms non overlapping
// rooms, each connected to the previous one by an L-shaped tunnel.
func RandomRooms(m *grid.ArrayMap, rng *rand.Rand, maxRooms, minSize, maxSize int) {
	m.Fill(false)
	if minSize < 1 || maxSize < minSize {
		return
	}

	rooms := make([]room, 0, maxRooms)
	for i := 0; i < maxRooms; i++ {
		for attempt := 0; attempt < roomPlacementAttempts; attempt++ {
			width := minSize + rng.IntN(maxSize-minSize+1)
			height := minSize + rng.IntN(maxSize-minSize+1)
			if width > m.Width()-2 || height > m.Height()-2 {
				continue
			}
			candidate := room{
				x:      1 + rng.IntN(m.Width()-width-1),
				y:      1 + rng.IntN(m.Height()-height-1),
				width:  width,
				height: height,
			}
			overlaps := false
			for _, placed := range rooms {
				if candidate.intersects(placed) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				rooms = append(rooms, candidate)
				break
			}
		}
	}

	for i, r := range rooms {
		carveRect(m, r.x, r.y, r.width, r.height)
		if i == 0 {
			continue
		}
		from, to := rooms[i-1].center(), r.center()
		if rng.IntN(2) == 0 {
			carveHorizontal(m, from.X, to.X, from.Y)
			carveVertical(m, from.Y, to.Y, to.X)
		} else {
			carveVertical(m, from.Y, to.Y, from.X)
			carveHorizontal(m, from.X, to.X, to.Y)
		}
	}
}

func carveRect(m *grid.ArrayMap, x, y, width, height int) {
	for cy := y; cy < y+height; cy++ {
		for cx := x; cx < x+width; cx++ {
			m.SetWalkable(grid.Coord{X: cx, Y: cy}, true)
		}
	}
}

func carveHorizontal(m *grid.ArrayMap, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		m.SetWalkable(grid.Coord{X: x, Y: y}, true)
	}
}

func carveVertical(m *grid.ArrayMap, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		m.SetWalkable(grid.Coord{X: x, Y: y}, true)
	}
}
