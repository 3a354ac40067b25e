package grid

import "fmt"

// Coord is a cell position on a grid. X grows to the right, Y grows downwards.
type Coord struct {
	X int
	Y int
}

func MakeCoord(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// FromIndex converts a flattened index back into a coordinate for a grid of the given width.
func FromIndex(index, width int) Coord {
	return Coord{X: index % width, Y: index / width}
}

// ToIndex returns the flattened index y*width + x
func (c Coord) ToIndex(width int) int {
	return c.Y*width + c.X
}

func (c Coord) Add(offset Coord) Coord {
	return Coord{X: c.X + offset.X, Y: c.Y + offset.Y}
}

// InBounds reports whether the coordinate lies on a width x height grid
func (c Coord) InBounds(width, height int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < width && c.Y < height
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
