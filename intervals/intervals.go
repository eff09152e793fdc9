// Package intervals implements the destination-count interval bookkeeping
// the floodfill engine uses when a caller supplies an ascending list of
// cost thresholds: a running per-subpurpose tally of
// reachable small/medium/large destinations, snapshotted the first time
// settled cost crosses each threshold.
package intervals

import (
	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
)

// Tally is the small/medium/large destination count for one subpurpose.
type Tally struct {
	Ix                   int
	Small, Medium, Large int32
}

// Snapshot is the tally state captured when one threshold first fires.
type Snapshot struct {
	ThresholdIndex int
	Threshold      nodeid.Cost
	Counts         []Tally
}

// Tracker accumulates per-subpurpose small/medium/large counts as nodes
// settle and snapshots them the first time cumulative cost crosses each of
// an ascending list of thresholds. Each threshold fires at most once.
type Tracker struct {
	thresholds []nodeid.Cost
	fired      []bool
	totals     [32]Tally
	touched    [32]bool
	order      []int
	Snapshots  []Snapshot
}

// NewTracker builds a Tracker for the given ascending threshold list. The
// caller is responsible for ensuring the list is ascending;
// Tracker does not re-sort it.
func NewTracker(thresholds []nodeid.Cost) *Tracker {
	t := &Tracker{
		thresholds: thresholds,
		fired:      make([]bool, len(thresholds)),
	}
	for ix := range t.totals {
		t.totals[ix].Ix = ix
	}
	return t
}

// Add accumulates one node's per-subpurpose destination counts into the
// running totals.
func (t *Tracker) Add(counts []graphmodel.DestinationCount) {
	for _, c := range counts {
		if !t.touched[c.Ix] {
			t.touched[c.Ix] = true
			t.order = append(t.order, c.Ix)
		}
		t.totals[c.Ix].Small += c.Small
		t.totals[c.Ix].Medium += c.Medium
		t.totals[c.Ix].Large += c.Large
	}
}

// Observe checks cost against every not-yet-fired threshold and appends a
// snapshot for each threshold crossed, in threshold order. Call after Add
// for the node currently being settled.
func (t *Tracker) Observe(cost nodeid.Cost) {
	for i, threshold := range t.thresholds {
		if t.fired[i] || cost < threshold {
			continue
		}
		t.fired[i] = true
		snap := Snapshot{ThresholdIndex: i, Threshold: threshold}
		for _, ix := range t.order {
			snap.Counts = append(snap.Counts, t.totals[ix])
		}
		t.Snapshots = append(t.Snapshots, snap)
	}
}
