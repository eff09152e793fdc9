// Package floodfill implements the time-dependent multimodal shortest-path
// engine: a Dijkstra floodfill against a min-heap keyed on cumulative cost,
// with rules for walk relaxation, turn penalties, PT boarding, a rail
// time-discount, and an optional PT-node short-circuit.
//
// Every variant shares one generic Item[T], where T is whichever ancillary
// "trace" payload the variant needs; variant behavior lives in the runner,
// not the heap entry. Ordering is identical across every variant: min-heap
// by Cost, deterministic tie-break by NodeID.
package floodfill

import (
	"container/heap"

	"github.com/katalvlaran/reachscore/nodeid"
)

// Item is one priority-queue entry: a node and its cumulative admission
// cost, plus whatever trace payload the variant carries (predecessor,
// arrival angle/link, shadow cost, visited set).
type Item[T any] struct {
	Cost    nodeid.Cost
	Node    nodeid.ID
	Payload T
}

// queue is a min-heap of *Item[T], ordered by Cost ascending and tie-broken
// by Node ascending for determinism.
type queue[T any] []*Item[T]

func (q queue[T]) Len() int { return len(q) }

func (q queue[T]) Less(i, j int) bool {
	if q[i].Cost != q[j].Cost {
		return q[i].Cost < q[j].Cost
	}
	return q[i].Node < q[j].Node
}

func (q queue[T]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue[T]) Push(x any) { *q = append(*q, x.(*Item[T])) }

func (q *queue[T]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// newQueue returns an initialized, empty heap of *Item[T].
func newQueue[T any]() *queue[T] {
	q := make(queue[T], 0, 64)
	heap.Init(&q)
	return &q
}
