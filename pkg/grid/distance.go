package grid

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownDistance = errors.New("unknown distance measurement")

// Distance is the connectivity rule of a grid. MANHATTAN implies 4-way
// connectivity, CHEBYSHEV and EUCLIDEAN imply 8-way connectivity.
type Distance int

const (
	MANHATTAN Distance = iota
	CHEBYSHEV
	EUCLIDEAN
)

var (
	cardinals = []Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	eightWay  = []Coord{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

// Distances lists every supported connectivity rule
func Distances() []Distance {
	return []Distance{MANHATTAN, CHEBYSHEV, EUCLIDEAN}
}

// Neighbors returns the offsets of the adjacent cells.
// The returned slice is shared and must not be modified.
func (d Distance) Neighbors() []Coord {
	if d == MANHATTAN {
		return cardinals
	}
	return eightWay
}

// Calculate the distance between a and b according to the measurement
func (d Distance) Calculate(a, b Coord) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	switch d {
	case MANHATTAN:
		return dx + dy
	case CHEBYSHEV:
		return math.Max(dx, dy)
	case EUCLIDEAN:
		return math.Sqrt(dx*dx + dy*dy)
	default:
		panic(fmt.Sprintf("invalid distance measurement %d", int(d)))
	}
}

func (d Distance) String() string {
	switch d {
	case MANHATTAN:
		return "MANHATTAN"
	case CHEBYSHEV:
		return "CHEBYSHEV"
	case EUCLIDEAN:
		return "EUCLIDEAN"
	default:
		return "INVALID"
	}
}

// ParseDistance accepts the measurement name in any case.
func ParseDistance(name string) (Distance, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "MANHATTAN":
		return MANHATTAN, nil
	case "CHEBYSHEV":
		return CHEBYSHEV, nil
	case "EUCLIDEAN":
		return EUCLIDEAN, nil
	default:
		return MANHATTAN, fmt.Errorf("%w: %q", ErrUnknownDistance, name)
	}
}

func (d Distance) MarshalText() ([]byte, error) {
	if d < MANHATTAN || d > EUCLIDEAN {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDistance, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Distance) UnmarshalText(text []byte) error {
	parsed, err := ParseDistance(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
