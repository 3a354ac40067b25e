package queue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testItem struct {
	name     string
	priority float64
	index    int
}

func newTestItem(name string, priority float64) *testItem {
	return &testItem{name: name, priority: priority, index: -1}
}

func (i *testItem) Priority() float64  { return i.priority }
func (i *testItem) Index() int         { return i.index }
func (i *testItem) SetIndex(index int) { i.index = index }
func (i *testItem) String() string     { return fmt.Sprintf("%v:%v ", i.name, i.priority) }

func popAll(h *MinHeap[*testItem]) []string {
	names := make([]string, 0, h.Len())
	for h.Len() > 0 {
		names = append(names, h.Pop().name)
	}
	return names
}

func TestMinHeapOrder(t *testing.T) {
	h := NewMinHeap[*testItem](4)
	for _, item := range []*testItem{
		newTestItem("c", 3), newTestItem("a", 1), newTestItem("d", 4), newTestItem("b", 2),
	} {
		h.Push(item)
	}
	assert.Equal(t, "a", h.Peek().name)
	assert.Equal(t, []string{"a", "b", "c", "d"}, popAll(h))
}

func TestMinHeapTiesPopInInsertionOrder(t *testing.T) {
	h := NewMinHeap[*testItem](0)
	for _, name := range []string{"first", "second", "third", "fourth"} {
		h.Push(newTestItem(name, 5))
	}
	h.Push(newTestItem("low", 1))
	assert.Equal(t, []string{"low", "first", "second", "third", "fourth"}, popAll(h))
}

func TestMinHeapContains(t *testing.T) {
	h := NewMinHeap[*testItem](2)
	queued := newTestItem("queued", 2)
	other := newTestItem("other", 1)

	assert.False(t, h.Contains(queued))
	h.Push(queued)
	assert.True(t, h.Contains(queued))
	assert.False(t, h.Contains(other))

	// an index pointing at another element's slot does not count
	other.index = queued.index
	assert.False(t, h.Contains(other))

	popped := h.Pop()
	assert.Same(t, queued, popped)
	assert.False(t, h.Contains(queued))
	assert.Equal(t, -1, queued.Index())
}

func TestMinHeapUpdate(t *testing.T) {
	h := NewMinHeap[*testItem](3)
	a, b, c := newTestItem("a", 1), newTestItem("b", 2), newTestItem("c", 3)
	h.Push(a)
	h.Push(b)
	h.Push(c)

	c.priority = 0
	h.Update(c)
	assert.Equal(t, "c", h.Peek().name)

	c.priority = 10
	h.Update(c)
	assert.Equal(t, []string{"a", "b", "c"}, popAll(h))
}

func TestMinHeapClear(t *testing.T) {
	h := NewMinHeap[*testItem](2)
	a, b := newTestItem("a", 1), newTestItem("b", 2)
	h.Push(a)
	h.Push(b)

	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.Contains(a))
	assert.False(t, h.Contains(b))
	assert.Equal(t, -1, a.Index())

	h.Push(b)
	assert.True(t, h.Contains(b))
}

func TestMinHeapRemove(t *testing.T) {
	h := NewMinHeap[*testItem](3)
	a, b, c := newTestItem("a", 1), newTestItem("b", 2), newTestItem("c", 3)
	h.Push(a)
	h.Push(b)
	h.Push(c)

	h.Remove(b.Index())
	assert.False(t, h.Contains(b))
	assert.Equal(t, []string{"a", "c"}, popAll(h))
	assert.Panics(t, func() { h.PeekAt(0) })
}

func TestMinHeapString(t *testing.T) {
	h := NewMinHeap[*testItem](1)
	h.Push(newTestItem("a", 1))
	assert.Equal(t, "a:1 ", h.String())
}
