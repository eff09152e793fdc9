package graphmodel

import "github.com/katalvlaran/reachscore/nodeid"

// ExampleGraph builds the 6-node end-to-end test graph:
// nodes 0..5; walk edges (0<->1 cost 60), (1<->2 cost 120),
// (2<->3 cost 30), (3<->4 cost 600), (1<->5 cost 30); has_pt on node 2; one
// route-node at 2 with next_stop_node=4 and timetable
// [(leavetime=28860, cost=200)]; opportunity vectors empty except node 3
// (subpurpose 5 -> purpose 0, score 1000) and node 4 (subpurpose 17 ->
// purpose 4, score 500); multipliers 0.01 uniform; decay 1.0 uniform.
//
// Exported (rather than test-only) so floodfill, score, attribution and
// dispatch tests can all exercise the same worked example instead of five
// copies drifting apart.
func ExampleGraph() *Graph {
	g := &Graph{
		Walk:              make([]WalkNode, 6),
		Routes:            make([]RouteNode, 6),
		RouteInfos:        make([]RouteInfo, 6),
		IsRail:            make([]bool, 6),
		NearestPT:         make([]bool, 6),
		Lon:               make([]float64, 6),
		Lat:               make([]float64, 6),
		Subpurposes:       make([][]SubpurposeScore, 6),
		DestinationCounts: make([][]DestinationCount, 6),
		Neighbourhoods:    make([][]nodeid.ID, 6),
	}
	add := func(a, b nodeid.ID, cost nodeid.Cost) {
		g.Walk[a].Edges = append(g.Walk[a].Edges, WalkEdge{To: b, Cost: cost})
		g.Walk[b].Edges = append(g.Walk[b].Edges, WalkEdge{To: a, Cost: cost})
	}
	add(0, 1, 60)
	add(1, 2, 120)
	add(2, 3, 30)
	add(3, 4, 600)
	add(1, 5, 30)

	g.Walk[2].HasPT = true
	g.Routes[2] = RouteNode{
		NextStop:  4,
		Timetable: []TimetableEntry{{Leavetime: 28860, Cost: 200}},
	}
	g.RouteInfos[2] = RouteInfo{RouteID: "R1", RouteName: "Test Route"}

	// Simple coordinates so link-attribution formatting has something to
	// print; values are arbitrary, not geographically meaningful.
	for n := 0; n < 6; n++ {
		g.Lon[n] = float64(n) * 0.01
		g.Lat[n] = 51.5 + float64(n)*0.01
	}

	g.Subpurposes[3] = []SubpurposeScore{{Ix: 5, Score: 1000.0}}
	g.Subpurposes[4] = []SubpurposeScore{{Ix: 17, Score: 500.0}}

	for n := 0; n < 6; n++ {
		g.Neighbourhoods[n] = []nodeid.ID{nodeid.ID(n)}
	}

	var toPurpose [SubpurposesCount]int
	toPurpose[5] = 0
	toPurpose[17] = 4
	g.SubpurposeToPurpose = toPurpose

	var mult [SubpurposesCount]nodeid.Multiplier
	for i := range mult {
		mult[i] = 0.01
	}
	g.Multipliers = map[Mode][SubpurposesCount]nodeid.Multiplier{
		ModeWalk: mult,
		ModePT:   mult,
	}

	flat := make([]nodeid.Multiplier, PurposesCount*DecayStride)
	for i := range flat {
		flat[i] = 1.0
	}
	curve := &DecayCurve{}
	for b := 0; b < TimeBuckets; b++ {
		curve[b] = flat
	}
	g.Decay = map[Mode]*DecayCurve{ModeWalk: curve, ModePT: curve}

	return g
}
