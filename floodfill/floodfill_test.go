package floodfill

import (
	"testing"

	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func costsByNode(res *Result) map[nodeid.ID]nodeid.Cost {
	m := make(map[nodeid.ID]nodeid.Cost, len(res.DestinationsReached))
	for _, d := range res.DestinationsReached {
		m[d.Node] = d.Cost
	}
	return m
}

func TestWalkOnlyFullBudgetSettlesAllNodes(t *testing.T) {
	g := graphmodel.ExampleGraph()
	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600, StoreLinkTrace: true})
	require.NoError(t, err)

	costs := costsByNode(res)
	assert.Len(t, res.DestinationsReached, 6)
	assert.Equal(t, nodeid.Cost(0), costs[0])
	assert.Equal(t, nodeid.Cost(60), costs[1])
	assert.Equal(t, nodeid.Cost(180), costs[2])
	assert.Equal(t, nodeid.Cost(210), costs[3])
	assert.Equal(t, nodeid.Cost(810), costs[4])
	assert.Equal(t, nodeid.Cost(90), costs[5])
}

// Budget 200 reaches only {0,1,5,2}.
func TestWalkOnlyNarrowBudget(t *testing.T) {
	g := graphmodel.ExampleGraph()
	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 200, StoreLinkTrace: true})
	require.NoError(t, err)

	costs := costsByNode(res)
	assert.Len(t, res.DestinationsReached, 4)
	_, has3 := costs[3]
	assert.False(t, has3, "node 3 must not be reached under budget 200")
}

// With PT enabled, node 4 settles via the route through node 2 at cost 380
// (60 + 120 walking, zero wait, 200 ride), not the 810 walking path, and
// its DestinationReached entry records arrival by PT with previous node 2.
// The timetable departs at t0 + the 180s it takes to walk to node 2, so the
// boarding waits zero seconds.
func TestPTBeatsWalk(t *testing.T) {
	g := graphmodel.ExampleGraph()
	g.Routes[2].Timetable = []graphmodel.TimetableEntry{{Leavetime: 28980, Cost: 200}}

	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600, EnablePT: true, StoreLinkTrace: true})
	require.NoError(t, err)

	costs := costsByNode(res)
	assert.Equal(t, nodeid.Cost(380), costs[4])

	var entry4 DestinationReached
	for _, d := range res.DestinationsReached {
		if d.Node == 4 {
			entry4 = d
		}
	}
	assert.True(t, entry4.ArrivedByPT)
	assert.Equal(t, nodeid.ID(2), entry4.PreviousNode)
}

func TestEmptyResultWhenPrefixReachesBudget(t *testing.T) {
	g := graphmodel.ExampleGraph()
	res, err := Run(g, 0, 200, Options{TripStart: 28800, Budget: 200})
	require.NoError(t, err)
	assert.Empty(t, res.DestinationsReached)
}

func TestPrefixEqualToBudgetMinusOneSettlesOrigin(t *testing.T) {
	g := graphmodel.ExampleGraph()
	res, err := Run(g, 0, 199, Options{TripStart: 28800, Budget: 200})
	require.NoError(t, err)
	require.Len(t, res.DestinationsReached, 1)
	assert.Equal(t, nodeid.ID(0), res.DestinationsReached[0].Node)
}

func TestOriginAlwaysFirstWithZeroCostWhenNoPrefix(t *testing.T) {
	g := graphmodel.ExampleGraph()
	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600})
	require.NoError(t, err)
	require.NotEmpty(t, res.DestinationsReached)
	assert.Equal(t, nodeid.ID(0), res.DestinationsReached[0].Node)
	assert.Equal(t, nodeid.Cost(0), res.DestinationsReached[0].Cost)
}

func TestCostsAreMonotonicNonDecreasing(t *testing.T) {
	g := graphmodel.ExampleGraph()
	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600, EnablePT: true, StoreLinkTrace: true})
	require.NoError(t, err)
	for i := 1; i < len(res.DestinationsReached); i++ {
		assert.LessOrEqual(t, int(res.DestinationsReached[i-1].Cost), int(res.DestinationsReached[i].Cost))
	}
}

func TestEachNodeSettledAtMostOnce(t *testing.T) {
	g := graphmodel.ExampleGraph()
	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600, EnablePT: true, StoreLinkTrace: true})
	require.NoError(t, err)
	seen := map[nodeid.ID]bool{}
	for _, d := range res.DestinationsReached {
		assert.False(t, seen[d.Node], "node %d settled twice", d.Node)
		seen[d.Node] = true
	}
}

func TestPredecessorStepIndexPrecedesCurrent(t *testing.T) {
	g := graphmodel.ExampleGraph()
	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600, EnablePT: true, StoreLinkTrace: true})
	require.NoError(t, err)
	for i, d := range res.DestinationsReached {
		if i == 0 {
			continue
		}
		assert.Less(t, d.PreviousStepIndex, i)
		assert.Equal(t, d.PreviousNode, res.DestinationsReached[d.PreviousStepIndex].Node)
	}
}

func TestOriginOutOfRangeIsError(t *testing.T) {
	g := graphmodel.ExampleGraph()
	_, err := Run(g, 99, 0, Options{Budget: 3600})
	assert.ErrorIs(t, err, ErrOriginOutOfRange)
}

func TestTimetableAdmitsEqualLeavetime(t *testing.T) {
	// A timetable entry at leavetime = t0+cost is admitted (comparison is
	// <=, i.e. >= from the service's perspective).
	g := graphmodel.ExampleGraph()
	g.Routes[2].Timetable = []graphmodel.TimetableEntry{{Leavetime: 28980, Cost: 5}}
	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600, EnablePT: true})
	require.NoError(t, err)
	costs := costsByNode(res)
	assert.Equal(t, nodeid.Cost(185), costs[4]) // 180 + 0 wait + 5 ride
}

func TestBudgetSubsequenceLaw(t *testing.T) {
	// Running with a budget B then with B' > B yields a settle-order
	// prefix restricted to nodes with cost < B.
	g := graphmodel.ExampleGraph()
	small, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 200})
	require.NoError(t, err)
	big, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600})
	require.NoError(t, err)

	bigPrefix := make([]nodeid.ID, 0, len(small.DestinationsReached))
	for _, d := range big.DestinationsReached {
		if d.Cost < 200 {
			bigPrefix = append(bigPrefix, d.Node)
		}
	}
	smallNodes := make([]nodeid.ID, 0, len(small.DestinationsReached))
	for _, d := range small.DestinationsReached {
		smallNodes = append(smallNodes, d.Node)
	}
	assert.Equal(t, bigPrefix, smallNodes)
}

func TestODPairsCollectedForTargets(t *testing.T) {
	g := graphmodel.ExampleGraph()
	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600, TargetNodes: []nodeid.ID{3, 5}})
	require.NoError(t, err)
	require.Len(t, res.ODPairs, 2)
	// Settle order: node 5 at 90s, then node 3 at 210s.
	assert.Equal(t, ODPair{Node: 5, Cost: 90}, res.ODPairs[0])
	assert.Equal(t, ODPair{Node: 3, Cost: 210}, res.ODPairs[1])
}

func TestTargetOutOfRangeIsError(t *testing.T) {
	g := graphmodel.ExampleGraph()
	_, err := Run(g, 0, 0, Options{Budget: 3600, TargetNodes: []nodeid.ID{42}})
	assert.ErrorIs(t, err, ErrTargetOutOfRange)
}

// A rail boarding whose nominal wait+ride (1000s) exceeds the 600s budget
// is still admitted because the shadow cost divides the leg by the rail
// divisor; the reported cost stays the true 1000 elapsed seconds.
func TestRailDiscountExpandsFrontierNotReportedCost(t *testing.T) {
	g := &graphmodel.Graph{
		Walk:   make([]graphmodel.WalkNode, 2),
		Routes: make([]graphmodel.RouteNode, 2),
		IsRail: []bool{true, false},
	}
	g.Walk[0].HasPT = true
	g.Routes[0] = graphmodel.RouteNode{
		NextStop:  1,
		Timetable: []graphmodel.TimetableEntry{{Leavetime: 28800, Cost: 1000}},
	}

	opts := Options{TripStart: 28800, Budget: 600, EnablePT: true, RailDiscountEnabled: true, RailDivisor: 2}
	res, err := Run(g, 0, 0, opts)
	require.NoError(t, err)
	costs := costsByNode(res)
	assert.Equal(t, nodeid.Cost(1000), costs[1])

	opts.RailDiscountEnabled = false
	res, err = Run(g, 0, 0, opts)
	require.NoError(t, err)
	assert.Len(t, res.DestinationsReached, 1, "without the discount the leg exceeds the budget")
}

func TestIntervalSnapshotsFireOncePerThreshold(t *testing.T) {
	g := graphmodel.ExampleGraph()
	g.DestinationCounts[3] = []graphmodel.DestinationCount{{Ix: 5, Small: 2}}
	res, err := Run(g, 0, 0, Options{TripStart: 28800, Budget: 3600, IntervalThresholds: []nodeid.Cost{100, 500}})
	require.NoError(t, err)

	require.Len(t, res.Intervals, 2)
	// Threshold 100 fires on the first settle at or past 100s (node 2 at
	// 180s), before node 3's counts have been added.
	assert.Equal(t, nodeid.Cost(100), res.Intervals[0].Threshold)
	assert.Empty(t, res.Intervals[0].Counts)
	// Threshold 500 fires at node 4 (810s), after node 3 settled.
	assert.Equal(t, nodeid.Cost(500), res.Intervals[1].Threshold)
	require.Len(t, res.Intervals[1].Counts, 1)
	assert.Equal(t, int32(2), res.Intervals[1].Counts[0].Small)
}
