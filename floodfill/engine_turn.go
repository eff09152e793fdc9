package floodfill

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/reachscore/geo"
	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/intervals"
	"github.com/katalvlaran/reachscore/nodeid"
)

// turnTrace is the ancillary payload carried by car/bike/walk-with-turns
// queue items: the predecessor chain link, the bearing the item arrived on
// (needed to penalize the *next* turn), and, only when the PT-node
// short-circuit is enabled, the set of nodes visited along this item's
// discovered trajectory, guarding against cycles introduced by a locally
// decreasing cost.
type turnTrace struct {
	prevNode     nodeid.ID
	prevStep     int
	arrivedAngle geo.Angle
	hasArrival   bool
	link         nodeid.Link
	visited      map[nodeid.ID]struct{}
}

// RunTurnMode executes the car/bike/walk-with-turns floodfill variant:
// Dijkstra over the turn graph with a per-edge turn
// penalty computed from the bearings of the arriving and leaving edges,
// and an optional PT-node short-circuit ("optimiser mode") that subtracts
// a reclaim constant on arrival at nodes flagged nearest-to-PT, guarded by
// a per-trajectory visited set to prevent cycles.
func RunTurnMode(g *graphmodel.Graph, origin nodeid.ID, walkPrefix nodeid.Cost, opts Options) (*Result, error) {
	if g.Turn == nil {
		return nil, ErrNoTurnGraph
	}
	if !g.InRange(origin) {
		return nil, fmt.Errorf("%w: %d", ErrOriginOutOfRange, origin)
	}
	for _, target := range opts.TargetNodes {
		if !g.InRange(target) {
			return nil, fmt.Errorf("%w: %d", ErrTargetOutOfRange, target)
		}
	}

	// Sequence reconstruction walks PreviousStepIndex back-pointers, which
	// are only populated when StoreLinkTrace is set; a single-target query
	// needs that trace regardless of what the caller passed in, or
	// reconstructSequence would silently walk zero-valued back-pointers.
	if opts.PTShortCircuit && len(opts.TargetNodes) == 1 {
		opts.StoreLinkTrace = true
	}

	res := &Result{}
	if walkPrefix >= opts.Budget {
		return res, nil
	}

	n := g.NodeCount()
	settled := make([]bool, n)

	var isTarget []bool
	if len(opts.TargetNodes) > 0 {
		isTarget = make([]bool, n)
		for _, t := range opts.TargetNodes {
			isTarget[t] = true
		}
	}

	var tracker *intervals.Tracker
	if len(opts.IntervalThresholds) > 0 {
		tracker = intervals.NewTracker(opts.IntervalThresholds)
	}

	q := newQueue[turnTrace]()
	start := &Item[turnTrace]{
		Cost: walkPrefix,
		Node: origin,
		Payload: turnTrace{
			prevNode: origin,
			prevStep: 0,
		},
	}
	if opts.PTShortCircuit {
		start.Payload.visited = map[nodeid.ID]struct{}{origin: {}}
	}
	heap.Push(q, start)

	for q.Len() > 0 {
		res.Iterations++
		it := heap.Pop(q).(*Item[turnTrace])
		if settled[it.Node] {
			continue
		}
		settled[it.Node] = true

		step := len(res.DestinationsReached)
		entry := DestinationReached{Node: it.Node, Cost: it.Cost}
		if step == 0 {
			entry.PreviousNode = it.Node
			entry.PreviousStepIndex = 0
		} else if opts.StoreLinkTrace {
			entry.PreviousNode = it.Payload.prevNode
			entry.PreviousStepIndex = it.Payload.prevStep
		}
		res.DestinationsReached = append(res.DestinationsReached, entry)

		if isTarget != nil && isTarget[it.Node] {
			res.ODPairs = append(res.ODPairs, ODPair{Node: it.Node, Cost: it.Cost})
		}
		if tracker != nil {
			tracker.Add(g.DestinationCounts[it.Node])
			tracker.Observe(it.Cost)
		}

		relaxTurnEdges(g, q, it, step, opts)
	}

	if tracker != nil {
		res.Intervals = tracker.Snapshots
	}
	if opts.PTShortCircuit && len(opts.TargetNodes) == 1 {
		res.Sequence = reconstructSequence(res.DestinationsReached, opts.TargetNodes[0])
	}
	return res, nil
}

func relaxTurnEdges(g *graphmodel.Graph, q *queue[turnTrace], it *Item[turnTrace], step int, opts Options) {
	for _, e := range g.Turn[it.Node].Edges {
		var turnCost nodeid.Cost
		if it.Payload.hasArrival {
			turnCost = nodeid.Cost(opts.TurnPenalties.Cost(e.AngleLeaving, it.Payload.arrivedAngle))
		}

		newCost := it.Cost.Add(e.Cost).Add(turnCost)

		if opts.PTShortCircuit && g.NearestPT[e.To] {
			newCost = newCost.Sub(opts.ReclaimSeconds)
		}

		if newCost >= opts.Budget {
			continue
		}

		var visited map[nodeid.ID]struct{}
		if opts.PTShortCircuit {
			if _, seen := it.Payload.visited[e.To]; seen {
				continue
			}
			visited = make(map[nodeid.ID]struct{}, len(it.Payload.visited)+1)
			for k := range it.Payload.visited {
				visited[k] = struct{}{}
			}
			visited[e.To] = struct{}{}
		}

		heap.Push(q, &Item[turnTrace]{
			Cost: newCost,
			Node: e.To,
			Payload: turnTrace{
				prevNode:     it.Node,
				prevStep:     step,
				arrivedAngle: e.AngleArrived,
				hasArrival:   true,
				link:         e.LinkArrivedFrom,
				visited:      visited,
			},
		})
	}
}

// reconstructSequence walks the predecessor chain in destinationsReached
// from target back to the origin and returns it in forward (origin-first)
// order, the discovered-sequence output of the PT-node short-circuit /
// optimiser mode.
func reconstructSequence(dest []DestinationReached, target nodeid.ID) []nodeid.ID {
	idx := -1
	for i, d := range dest {
		if d.Node == target {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	var rev []nodeid.ID
	for i := idx; ; {
		rev = append(rev, dest[i].Node)
		if i == 0 {
			break
		}
		i = dest[i].PreviousStepIndex
	}
	seq := make([]nodeid.ID, len(rev))
	for i, n := range rev {
		seq[len(rev)-1-i] = n
	}
	return seq
}
