package path

import (
	"errors"
	"fmt"
	"strings"

	"github.com/natevvv/grid-astar/pkg/grid"
)

var ErrUnknownStore = errors.New("unknown node store")

// NodeStore keeps the Node of every cell visited during a search.
// Nodes returned by a store are only valid until the next Reset.
type NodeStore interface {
	// GetOrCreate returns the node for c, creating it if the cell was not visited yet
	GetOrCreate(c grid.Coord) *Node
	// Get returns the node for c without creating it
	Get(c grid.Coord) (*Node, bool)
	// Reset prepares the store for a new run on a width x height map.
	// If the dimensions changed, all previous nodes are discarded.
	Reset(width, height int)
	// Len returns the number of nodes currently held
	Len() int
}

// StoreKind selects a NodeStore implementation
type StoreKind int

const (
	DenseArray StoreKind = iota
	CoordHash
	IndexHash
)

func StoreKinds() []StoreKind {
	return []StoreKind{DenseArray, CoordHash, IndexHash}
}

// NewNodeStore creates an empty store of the given kind for a width x height map
func NewNodeStore(kind StoreKind, width, height int) NodeStore {
	switch kind {
	case DenseArray:
		return NewDenseStore(width, height)
	case CoordHash:
		return NewCoordHashStore()
	case IndexHash:
		return NewIndexHashStore(width)
	default:
		panic(fmt.Sprintf("invalid store kind %d", int(kind)))
	}
}

func (k StoreKind) String() string {
	switch k {
	case DenseArray:
		return "dense"
	case CoordHash:
		return "coord-hash"
	case IndexHash:
		return "index-hash"
	default:
		return "invalid"
	}
}

func ParseStoreKind(name string) (StoreKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dense", "array":
		return DenseArray, nil
	case "coord-hash", "hash":
		return CoordHash, nil
	case "index-hash", "hash-int":
		return IndexHash, nil
	default:
		return DenseArray, fmt.Errorf("%w: %q", ErrUnknownStore, name)
	}
}

func (k StoreKind) MarshalText() ([]byte, error) {
	if k < DenseArray || k > IndexHash {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStore, int(k))
	}
	return []byte(k.String()), nil
}

func (k *StoreKind) UnmarshalText(text []byte) error {
	parsed, err := ParseStoreKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
