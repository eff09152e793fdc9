package overlay

import (
	"fmt"

	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
)

// Undo reverses the edits rb's Apply call made to g, in the opposite order
// they were applied: subtract new-build additions, trim appended outgoing
// edges, restore suppressed has_pt flags, then truncate every node-keyed
// slice back to its pre-call length. It asserts every node-keyed array is
// back to the length Apply recorded before returning: a mismatch means
// the Change passed to Apply referenced a node outside its own NewNodes, or
// some other caller bug, and surfaces as an error rather than leaving the
// graph silently corrupt.
func (rb *Rollback) Undo(g *graphmodel.Graph) error {
	for i := len(rb.newBuild) - 1; i >= 0; i-- {
		nb := rb.newBuild[i]
		sps := g.Subpurposes[nb.NearestNode]
		if nb.appended {
			for j := len(sps) - 1; j >= 0; j-- {
				if sps[j].Ix == nb.SubpurposeIx {
					g.Subpurposes[nb.NearestNode] = append(sps[:j], sps[j+1:]...)
					break
				}
			}
		} else {
			subtract(sps, nb.SubpurposeIx, nb.Value)
		}
	}

	perFrom := make(map[nodeid.ID]int, len(rb.edgeAdditions))
	for _, ea := range rb.edgeAdditions {
		perFrom[ea.From]++
	}
	for from, n := range perFrom {
		edges := g.Walk[from].Edges
		g.Walk[from].Edges = edges[:len(edges)-n]
	}

	for _, s := range rb.suppressedPT {
		g.Walk[s].HasPT = true
	}

	n0 := g.NodeCount() - rb.addedNodeCount
	g.Walk = g.Walk[:n0]
	g.Lon = g.Lon[:n0]
	g.Lat = g.Lat[:n0]
	g.IsRail = g.IsRail[:n0]
	g.NearestPT = g.NearestPT[:n0]
	g.Routes = g.Routes[:n0]
	g.RouteInfos = g.RouteInfos[:n0]
	g.Subpurposes = g.Subpurposes[:n0]
	g.DestinationCounts = g.DestinationCounts[:n0]
	g.Neighbourhoods = g.Neighbourhoods[:n0]

	if n0 != rb.preNodeCount {
		return fmt.Errorf("%w: want %d nodes, got %d", ErrRollbackLengthMismatch, rb.preNodeCount, n0)
	}
	for name, got := range map[string]int{
		"Walk": len(g.Walk), "Lon": len(g.Lon), "Lat": len(g.Lat),
		"IsRail": len(g.IsRail), "NearestPT": len(g.NearestPT),
		"Routes": len(g.Routes), "RouteInfos": len(g.RouteInfos),
		"Subpurposes": len(g.Subpurposes), "DestinationCounts": len(g.DestinationCounts),
		"Neighbourhoods": len(g.Neighbourhoods),
	} {
		if got != rb.preNodeCount {
			return fmt.Errorf("%w: %s has length %d, want %d", ErrRollbackLengthMismatch, name, got, rb.preNodeCount)
		}
	}

	return nil
}

func subtract(sps []graphmodel.SubpurposeScore, ix int, v nodeid.Score) {
	for i := range sps {
		if sps[i].Ix == ix {
			sps[i].Score -= v
			return
		}
	}
}
