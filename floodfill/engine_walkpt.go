package floodfill

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/intervals"
	"github.com/katalvlaran/reachscore/nodeid"
)

// walkTrace is the ancillary payload carried by walk+PT queue items: the
// predecessor chain link, the arrival mode, and (when a rail discount is in
// effect) the shadow cost the rail discount expands against.
type walkTrace struct {
	prevNode    nodeid.ID
	prevStep    int
	arrivedByPT bool
	shadow      nodeid.Cost
}

// Run executes the walk+PT floodfill variant: a Dijkstra floodfill over
// the walk graph, with PT boarding at has_pt nodes and an
// optional rail time-discount. StoreLinkTrace controls whether predecessor
// bookkeeping is retained (planning-tool mode) or skipped (batch mode, which
// only needs the score aggregator's inputs).
func Run(g *graphmodel.Graph, origin nodeid.ID, walkPrefix nodeid.Cost, opts Options) (*Result, error) {
	if !g.InRange(origin) {
		return nil, fmt.Errorf("%w: %d", ErrOriginOutOfRange, origin)
	}
	for _, target := range opts.TargetNodes {
		if !g.InRange(target) {
			return nil, fmt.Errorf("%w: %d", ErrTargetOutOfRange, target)
		}
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

	q := newQueue[walkTrace]()
	heap.Push(q, &Item[walkTrace]{
		Cost: walkPrefix,
		Node: origin,
		Payload: walkTrace{
			prevNode: origin,
			prevStep: 0,
			shadow:   walkPrefix,
		},
	})

	for q.Len() > 0 {
		res.Iterations++
		it := heap.Pop(q).(*Item[walkTrace])
		if settled[it.Node] {
			continue
		}
		settled[it.Node] = true

		step := len(res.DestinationsReached)
		entry := DestinationReached{
			Node:        it.Node,
			Cost:        it.Cost,
			ArrivedByPT: it.Payload.arrivedByPT,
		}
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

		relaxWalkEdges(g, q, it, step, opts.Budget)

		if opts.EnablePT && g.Walk[it.Node].HasPT {
			relaxPTBoarding(g, q, it, step, opts)
		}
	}

	if tracker != nil {
		res.Intervals = tracker.Snapshots
	}
	return res, nil
}

func relaxWalkEdges(g *graphmodel.Graph, q *queue[walkTrace], it *Item[walkTrace], step int, budget nodeid.Cost) {
	for _, e := range g.Walk[it.Node].Edges {
		newShadow := it.Payload.shadow.Add(e.Cost)
		if newShadow >= budget {
			continue
		}
		heap.Push(q, &Item[walkTrace]{
			Cost: it.Cost.Add(e.Cost),
			Node: e.To,
			Payload: walkTrace{
				prevNode: it.Node,
				prevStep: step,
				shadow:   newShadow,
			},
		})
	}
}

// relaxPTBoarding implements the PT boarding and rail discount rules:
// find the earliest timetable entry whose leavetime is at
// or after the current wall clock, then push the route's next stop with
// wait+ride added to cost. A linear scan is correct and fast because
// timetables are sorted ascending and typically short; a binary search
// would be a correctness-preserving drop-in for longer timetables.
func relaxPTBoarding(g *graphmodel.Graph, q *queue[walkTrace], it *Item[walkTrace], step int, opts Options) {
	rn := g.Routes[it.Node]
	now := opts.TripStart + nodeid.SecondsPastMidnight(it.Cost)

	var entry graphmodel.TimetableEntry
	found := false
	for _, e := range rn.Timetable {
		if e.Leavetime >= now {
			entry = e
			found = true
			break
		}
	}
	if !found {
		return
	}

	wait := nodeid.Cost(entry.Leavetime - now)
	ride := entry.Cost
	nominalAdd := wait.Add(ride)

	shadowAdd := nominalAdd
	if opts.RailDiscountEnabled && g.IsRail[it.Node] && opts.RailDivisor > 0 {
		shadowAdd = nodeid.Cost(int64(nominalAdd) / int64(opts.RailDivisor))
	}

	newShadow := it.Payload.shadow.Add(shadowAdd)
	if newShadow >= opts.Budget {
		return
	}

	heap.Push(q, &Item[walkTrace]{
		Cost: it.Cost.Add(nominalAdd),
		Node: rn.NextStop,
		Payload: walkTrace{
			prevNode:    it.Node,
			prevStep:    step,
			arrivedByPT: true,
			shadow:      newShadow,
		},
	})
}
