package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/grid-astar/pkg/grid"
)

func TestNodeStores(t *testing.T) {
	for _, kind := range StoreKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			store := NewNodeStore(kind, 4, 3)
			c := grid.Coord{X: 3, Y: 2}

			_, ok := store.Get(c)
			assert.False(t, ok)
			assert.Equal(t, 0, store.Len())

			node := store.GetOrCreate(c)
			require.NotNil(t, node)
			assert.Equal(t, c, node.Position())
			assert.Equal(t, -1, node.Index())
			assert.Same(t, node, store.GetOrCreate(c))
			assert.Equal(t, 1, store.Len())

			got, ok := store.Get(c)
			require.True(t, ok)
			assert.Same(t, node, got)

			other := store.GetOrCreate(grid.Coord{X: 0, Y: 0})
			assert.NotSame(t, node, other)
			assert.Equal(t, 2, store.Len())

			// different dimensions always start empty
			store.Reset(10, 10)
			_, ok = store.Get(grid.Coord{X: 0, Y: 0})
			assert.False(t, ok)
			assert.Equal(t, 0, store.Len())

			n := store.GetOrCreate(grid.Coord{X: 9, Y: 9})
			assert.Equal(t, grid.Coord{X: 9, Y: 9}, n.Position())
			n.closed = true
			n.index = 4

			// same dimensions: visited nodes are either dropped or reopened
			store.Reset(10, 10)
			if again, ok := store.Get(grid.Coord{X: 9, Y: 9}); ok {
				assert.False(t, again.Closed())
				assert.Equal(t, -1, again.Index())
			}
		})
	}
}

func TestDenseStoreKeepsNodes(t *testing.T) {
	store := NewDenseStore(3, 3)
	node := store.GetOrCreate(grid.Coord{X: 1, Y: 2})
	node.closed = true

	store.Reset(3, 3)
	again, ok := store.Get(grid.Coord{X: 1, Y: 2})
	require.True(t, ok)
	assert.Same(t, node, again)
	assert.False(t, again.Closed())
	assert.Equal(t, 1, store.Len())
}

func TestIndexHashStoreWidthChange(t *testing.T) {
	store := NewIndexHashStore(4)
	store.GetOrCreate(grid.Coord{X: 0, Y: 1}) // index 4

	store.Reset(5, 2)
	_, ok := store.Get(grid.Coord{X: 4, Y: 0}) // index 4 with the new width
	assert.False(t, ok)

	store.GetOrCreate(grid.Coord{X: 4, Y: 0})
	_, ok = store.Get(grid.Coord{X: 0, Y: 1})
	assert.False(t, ok, "coordinates map to distinct keys")
}

func TestParseStoreKind(t *testing.T) {
	for _, kind := range StoreKinds() {
		parsed, err := ParseStoreKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	aliases := map[string]StoreKind{"Array": DenseArray, "hash": CoordHash, " hash-int ": IndexHash}
	for name, expected := range aliases {
		parsed, err := ParseStoreKind(name)
		require.NoError(t, err)
		assert.Equal(t, expected, parsed)
	}

	_, err := ParseStoreKind("btree")
	assert.ErrorIs(t, err, ErrUnknownStore)

	var kind StoreKind
	require.NoError(t, kind.UnmarshalText([]byte("index-hash")))
	assert.Equal(t, IndexHash, kind)
	text, err := kind.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "index-hash", string(text))

	_, err = StoreKind(7).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownStore)
	assert.Panics(t, func() { NewNodeStore(StoreKind(7), 1, 1) })
}
