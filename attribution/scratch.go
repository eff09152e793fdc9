// Package attribution implements the single-origin planning-tool
// postprocessor: per-link purpose-score attribution along the
// discovered shortest-path tree, and the top-K spatial cluster finder.
package attribution

import (
	"sync"

	"github.com/katalvlaran/reachscore/floodfill"
	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
)

// Contribution is a node's own per-purpose opportunity contribution: the
// travel-time-decayed, mode-scaled subpurpose fold projected onto the five
// purposes, read per node rather than summed across a whole query the way
// score.Aggregate does.
type Contribution [graphmodel.PurposesCount]nodeid.Score

// Scratch is the per-process, NodeID-indexed contribution buffer for the
// planning-tool postprocessor: allocated once to the graph's node count,
// guarded by a process-wide lock, and reset to zero only over the settled
// nodes of the query that just finished, never a full |V| sweep.
type Scratch struct {
	mu     sync.Mutex
	values []Contribution
}

// NewScratch allocates a scratch buffer sized to g. One Scratch may be
// shared across sequential planning-tool queries against the same graph.
func NewScratch(g *graphmodel.Graph) *Scratch {
	return &Scratch{values: make([]Contribution, g.NodeCount())}
}

// Fill computes and stores each settled node's own contribution vector.
// Callers must call Reset with the same destinations slice once the
// scratch's contents are no longer needed.
func (s *Scratch) Fill(g *graphmodel.Graph, destinations []floodfill.DestinationReached, mode graphmodel.Mode, bucket int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range destinations {
		s.values[d.Node] = nodeContribution(g, mode, bucket, d.Node, d.Cost)
	}
}

// Get returns the stored contribution for node n.
func (s *Scratch) Get(n nodeid.ID) Contribution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[n]
}

// Reset zeros exactly the scratch entries touched by destinations, avoiding
// the O(|V|) sweep a full reset would cost.
func (s *Scratch) Reset(destinations []floodfill.DestinationReached) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range destinations {
		s.values[d.Node] = Contribution{}
	}
}

func nodeContribution(g *graphmodel.Graph, mode graphmodel.Mode, bucket int, node nodeid.ID, cost nodeid.Cost) Contribution {
	var out Contribution
	curve := g.Decay[mode]
	mult := g.Multipliers[mode]
	for _, sp := range g.Subpurposes[node] {
		purpose := g.SubpurposeToPurpose[sp.Ix]
		m := curve.At(bucket, purpose, cost)
		out[purpose] += sp.Score * nodeid.Score(m) * nodeid.Score(mult[sp.Ix])
	}
	return out
}
