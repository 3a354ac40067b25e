package path

import (
	"fmt"

	"github.com/natevvv/grid-astar/pkg/grid"
)

// Node is the per-run search state of one cell.
// Once closed is set, g is final for the current run. Closed is only cleared
// by NodeStore.Reset before the next run.
//
// implements queue.Priorizable
type Node struct {
	position grid.Coord
	g        float64 // cost from the origin
	f        float64 // g + weighted heuristic
	parent   *Node   // predecessor on the best known path, stale until rediscovered in the current run
	closed   bool
	index    int // position in the open set, -1 if not queued
}

func NewNode(position grid.Coord) *Node {
	return &Node{position: position, index: -1}
}

func (n *Node) Position() grid.Coord { return n.position }
func (n *Node) G() float64           { return n.g }
func (n *Node) F() float64           { return n.f }
func (n *Node) Closed() bool         { return n.closed }
func (n *Node) Priority() float64    { return n.f }
func (n *Node) Index() int           { return n.index }
func (n *Node) SetIndex(index int)   { n.index = index }
func (n *Node) String() string {
	return fmt.Sprintf("%v: %v, %v\n", n.index, n.position, n.f)
}
