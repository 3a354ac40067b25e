package queue

import (
	"container/heap"
	"strings"
)

// Priorizable is an element of a MinHeap. The heap stores the position of each
// element through SetIndex; -1 means the element is not queued.
type Priorizable interface {
	comparable
	Priority() float64
	Index() int
	SetIndex(index int)
	String() string
}

// MinHeap is an indexed binary min-heap. Elements with equal priority are
// popped in insertion order.
type MinHeap[T Priorizable] struct {
	Queue PriorityQueue[T] // hold the priority queue
}

func NewMinHeap[T Priorizable](capacity int) *MinHeap[T] {
	h := &MinHeap[T]{}
	h.Queue.items = make([]T, 0, capacity)
	h.Queue.sequence = make([]uint64, 0, capacity)
	return h
}

// Implements heap.Interface
type PriorityQueue[T Priorizable] struct {
	items    []T
	sequence []uint64 // insertion number per heap slot, breaks priority ties
	next     uint64
}

func (q *PriorityQueue[T]) Len() int { return len(q.items) }
func (q *PriorityQueue[T]) Less(i, j int) bool {
	pi, pj := q.items[i].Priority(), q.items[j].Priority()
	if pi != pj {
		return pi < pj
	}
	return q.sequence[i] < q.sequence[j]
}
func (q *PriorityQueue[T]) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.sequence[i], q.sequence[j] = q.sequence[j], q.sequence[i]
	q.items[i].SetIndex(i)
	q.items[j].SetIndex(j)
}
func (q *PriorityQueue[T]) Push(x any) {
	item := x.(T)
	item.SetIndex(len(q.items))
	q.items = append(q.items, item)
	q.sequence = append(q.sequence, q.next)
	q.next++
}
func (q *PriorityQueue[T]) Pop() any {
	n := len(q.items)
	item := q.items[n-1]
	var zero T
	q.items[n-1] = zero
	item.SetIndex(-1) // for safety
	q.items = q.items[:n-1]
	q.sequence = q.sequence[:n-1]
	return item
}

func (h *MinHeap[T]) Len() int    { return h.Queue.Len() }
func (h *MinHeap[T]) Push(item T) { heap.Push(&h.Queue, item) }
func (h *MinHeap[T]) Pop() T      { return heap.Pop(&h.Queue).(T) }
func (h *MinHeap[T]) Peek() T     { return h.Queue.items[0] }

// Update restores the heap order after the priority of item changed.
func (h *MinHeap[T]) Update(item T) { heap.Fix(&h.Queue, item.Index()) }

// Contains reports whether item is currently queued, using the index stored in the item.
func (h *MinHeap[T]) Contains(item T) bool {
	index := item.Index()
	return index >= 0 && index < len(h.Queue.items) && h.Queue.items[index] == item
}

// Clear removes all items, marking each of them as not queued.
func (h *MinHeap[T]) Clear() {
	var zero T
	for i, item := range h.Queue.items {
		item.SetIndex(-1)
		h.Queue.items[i] = zero
	}
	h.Queue.items = h.Queue.items[:0]
	h.Queue.sequence = h.Queue.sequence[:0]
	h.Queue.next = 0
}

func (h *MinHeap[T]) PeekAt(index int) T {
	if index >= h.Len() {
		panic("index out of bounds")
	}
	return h.Queue.items[index]
}
func (h *MinHeap[T]) Remove(index int) { heap.Remove(&h.Queue, index) }
func (h *MinHeap[T]) String() string {
	var sb strings.Builder
	for i := 0; i < h.Len(); i++ {
		item := h.PeekAt(i)
		sb.WriteString(item.String())
	}
	return sb.String()
}
