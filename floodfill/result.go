package floodfill

import (
	"github.com/katalvlaran/reachscore/intervals"
	"github.com/katalvlaran/reachscore/nodeid"
)

// DestinationReached is one settled node in the order nodes are first
// settled; entry 0 is always the origin. PreviousStepIndex
// indexes back into the same DestinationsReached slice, giving O(1) reverse
// traversal without heap-allocated back-pointers.
type DestinationReached struct {
	Node              nodeid.ID
	Cost              nodeid.Cost
	PreviousNode      nodeid.ID
	PreviousStepIndex int
	ArrivedByPT       bool
}

// ODPair is one origin-destination travel time collected when the caller
// supplies target nodes.
type ODPair struct {
	Node nodeid.ID
	Cost nodeid.Cost
}

// Result is everything one floodfill invocation produces. Sequence is only
// populated by the PT-node short-circuit (optimiser) variant when a target
// node was supplied: the discovered node sequence from origin to target.
type Result struct {
	DestinationsReached []DestinationReached
	ODPairs             []ODPair
	Intervals           []intervals.Snapshot
	Sequence            []nodeid.ID
	Iterations          int
}
