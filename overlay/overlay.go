// Package overlay implements the reversible service-change overlay:
// before a batch that models timetable or infrastructure
// changes, the dispatcher extends the loaded graph in place, runs the
// batch, then rolls the extension back so the graph compares byte-equal to
// its pre-call state.
package overlay

import (
	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
)

// NewWalkNode describes one appended node: its coordinates, outgoing
// walk-edges, and flags.
type NewWalkNode struct {
	Lon, Lat  float64
	Edges     []graphmodel.WalkEdge
	HasPT     bool
	IsRail    bool
	NearestPT bool
}

// NewRoute attaches a route-node to one of this Change's appended nodes,
// identified by its position in NewNodes.
type NewRoute struct {
	NodeIndex int
	NextStop  nodeid.ID
	Timetable []graphmodel.TimetableEntry
	Info      graphmodel.RouteInfo
}

// EdgeAddition appends one outgoing edge to an existing walk-node, usually
// pointing at one of the Change's appended nodes.
type EdgeAddition struct {
	From nodeid.ID
	Edge graphmodel.WalkEdge
}

// NewBuildAddition is a new-build opportunity triple: add Value to the
// existing SubpurposeScore of SubpurposeIx on NearestNode, or append a new
// one if absent.
type NewBuildAddition struct {
	NearestNode  nodeid.ID
	SubpurposeIx int
	Value        nodeid.Score
}

// Change is one service-change batch's full set of edits.
type Change struct {
	NewNodes      []NewWalkNode
	NewRoutes     []NewRoute
	SuppressPT    []nodeid.ID
	EdgeAdditions []EdgeAddition
	NewBuild      []NewBuildAddition
}

// appliedNewBuild records whether one NewBuildAddition matched an existing
// SubpurposeScore (update, undone by subtracting) or appended a new one
// (undone by removing it outright); the two cases need different inverses
// for the graph to come back byte-equal.
type appliedNewBuild struct {
	NewBuildAddition
	appended bool
}

// Rollback records exactly what Apply did, enough to undo it and restore
// the graph to its pre-call state.
type Rollback struct {
	preNodeCount   int
	addedNodeCount int
	suppressedPT   []nodeid.ID
	edgeAdditions  []EdgeAddition
	newBuild       []appliedNewBuild
}

// Apply extends g in place per c and returns a Rollback that can restore g
// to its prior state. Node-keyed slices grow by len(c.NewNodes); appended
// nodes start with empty Routes/RouteInfos/Subpurposes/DestinationCounts/
// Neighbourhoods unless a NewRoute or NewBuildAddition targets them.
func Apply(g *graphmodel.Graph, c Change) *Rollback {
	rb := &Rollback{preNodeCount: g.NodeCount(), addedNodeCount: len(c.NewNodes)}
	base := nodeid.ID(g.NodeCount())

	for _, nn := range c.NewNodes {
		g.Walk = append(g.Walk, graphmodel.WalkNode{Edges: nn.Edges, HasPT: nn.HasPT})
		g.Lon = append(g.Lon, nn.Lon)
		g.Lat = append(g.Lat, nn.Lat)
		g.IsRail = append(g.IsRail, nn.IsRail)
		g.NearestPT = append(g.NearestPT, nn.NearestPT)
		g.Routes = append(g.Routes, graphmodel.RouteNode{})
		g.RouteInfos = append(g.RouteInfos, graphmodel.RouteInfo{})
		g.Subpurposes = append(g.Subpurposes, nil)
		g.DestinationCounts = append(g.DestinationCounts, nil)
		g.Neighbourhoods = append(g.Neighbourhoods, nil)
	}

	for _, nr := range c.NewRoutes {
		id := base + nodeid.ID(nr.NodeIndex)
		g.Routes[id] = graphmodel.RouteNode{NextStop: nr.NextStop, Timetable: nr.Timetable}
		g.RouteInfos[id] = nr.Info
		g.Walk[id].HasPT = true
	}

	for _, s := range c.SuppressPT {
		if g.Walk[s].HasPT {
			g.Walk[s].HasPT = false
			rb.suppressedPT = append(rb.suppressedPT, s)
		}
	}

	for _, ea := range c.EdgeAdditions {
		g.Walk[ea.From].Edges = append(g.Walk[ea.From].Edges, ea.Edge)
	}
	rb.edgeAdditions = c.EdgeAdditions

	for _, nb := range c.NewBuild {
		sps := g.Subpurposes[nb.NearestNode]
		appended := true
		for i := range sps {
			if sps[i].Ix == nb.SubpurposeIx {
				sps[i].Score += nb.Value
				appended = false
				break
			}
		}
		if appended {
			sps = append(sps, graphmodel.SubpurposeScore{Ix: nb.SubpurposeIx, Score: nb.Value})
		}
		g.Subpurposes[nb.NearestNode] = sps
		rb.newBuild = append(rb.newBuild, appliedNewBuild{NewBuildAddition: nb, appended: appended})
	}

	return rb
}
