package score

import (
	"math"
	"testing"

	"github.com/katalvlaran/reachscore/floodfill"
	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScoreGraph() *graphmodel.Graph {
	g := &graphmodel.Graph{
		Walk: make([]graphmodel.WalkNode, 2),
		Subpurposes: [][]graphmodel.SubpurposeScore{
			{},
			{{Ix: 0, Score: 100}},
		},
		SubpurposeToPurpose: [graphmodel.SubpurposesCount]int{0: 2},
		Multipliers: map[graphmodel.Mode][graphmodel.SubpurposesCount]nodeid.Multiplier{
			graphmodel.ModeWalk: {0: 1.0},
		},
		Decay: map[graphmodel.Mode]*graphmodel.DecayCurve{
			graphmodel.ModeWalk: flatDecayCurve(1.0),
		},
	}
	return g
}

// flatDecayCurve builds a DecayCurve returning the same multiplier for every
// bucket, purpose, and elapsed-seconds combination.
func flatDecayCurve(v nodeid.Multiplier) *graphmodel.DecayCurve {
	var c graphmodel.DecayCurve
	for b := 0; b < graphmodel.TimeBuckets; b++ {
		strip := make([]nodeid.Multiplier, graphmodel.PurposesCount*graphmodel.DecayStride)
		for i := range strip {
			strip[i] = v
		}
		c[b] = strip
	}
	return &c
}

func TestAggregateAppliesLogAndClamp(t *testing.T) {
	g := buildScoreGraph()
	destinations := []floodfill.DestinationReached{
		{Node: 0, Cost: 0},
		{Node: 1, Cost: 100},
	}
	v := Aggregate(g, destinations, graphmodel.ModeWalk, 0)
	want := nodeid.Score(math.Log(100))
	assert.InDelta(t, float64(want), float64(v[2]), 1e-9)
	for p := 0; p < graphmodel.PurposesCount; p++ {
		if p != 2 {
			assert.Zero(t, v[p])
		}
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	g := buildScoreGraph()
	forward := []floodfill.DestinationReached{{Node: 0, Cost: 0}, {Node: 1, Cost: 100}}
	backward := []floodfill.DestinationReached{{Node: 1, Cost: 100}, {Node: 0, Cost: 0}}
	require.Equal(t, Aggregate(g, forward, graphmodel.ModeWalk, 0), Aggregate(g, backward, graphmodel.ModeWalk, 0))
}

func TestAggregateSkipsNonPositiveSubtotals(t *testing.T) {
	g := buildScoreGraph()
	g.Multipliers = map[graphmodel.Mode][graphmodel.SubpurposesCount]nodeid.Multiplier{
		graphmodel.ModeWalk: {0: 0},
	}
	v := Aggregate(g, []floodfill.DestinationReached{{Node: 1, Cost: 0}}, graphmodel.ModeWalk, 0)
	assert.Equal(t, Vector{}, v)
}

func TestSummarizeEmptyBatch(t *testing.T) {
	assert.Equal(t, BatchStats{}, Summarize(nil))
}

func TestSummarizeComputesMeanAndVariance(t *testing.T) {
	vectors := []Vector{
		{1, 0, 0, 0, 0},
		{3, 0, 0, 0, 0},
	}
	stats := Summarize(vectors)
	assert.InDelta(t, 2.0, stats.Mean[0], 1e-9)
	assert.InDelta(t, 2.0, stats.Variance[0], 1e-9)
}
