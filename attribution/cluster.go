package attribution

import (
	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
)

const clustersPerPurpose = graphmodel.TopClustersCount

type clusterSlot struct {
	node  nodeid.ID
	score nodeid.Score
}

// ClusterFinder maintains, per purpose, up to TopClustersCount cluster
// centres under a greedy, order-dependent replacement rule with non-
// overlapping neighbourhoods.
// Determinism comes from processing settled nodes in settle order and
// breaking score ties on NodeID.
//
// The slot array is fixed at exactly K entries; an empty slot holds
// nodeid.None with a zero score, so there is never a "more than K
// non-sentinel centres" state to correct: every occupied slot is already a
// real centre.
type ClusterFinder struct {
	slots          [graphmodel.PurposesCount][clustersPerPurpose]clusterSlot
	nearToCentres  [graphmodel.PurposesCount]map[nodeid.ID][]int
	coveredNodes   [graphmodel.PurposesCount]map[nodeid.ID]bool
	neighbourhoods [graphmodel.PurposesCount]map[nodeid.ID][]nodeid.ID
}

// NewClusterFinder returns an empty finder with every slot at the sentinel
// nodeid.None/zero-score state.
func NewClusterFinder() *ClusterFinder {
	cf := &ClusterFinder{}
	for p := 0; p < graphmodel.PurposesCount; p++ {
		cf.nearToCentres[p] = make(map[nodeid.ID][]int)
		cf.coveredNodes[p] = make(map[nodeid.ID]bool)
		cf.neighbourhoods[p] = make(map[nodeid.ID][]nodeid.ID)
	}
	return cf
}

// ClusterScore sums contribution[m][p] for every m in neighbourhood, for
// every purpose p, reading the settled contributions scratch already holds.
func ClusterScore(scratch *Scratch, neighbourhood []nodeid.ID) [graphmodel.PurposesCount]nodeid.Score {
	var out [graphmodel.PurposesCount]nodeid.Score
	for _, m := range neighbourhood {
		c := scratch.Get(m)
		for p := range out {
			out[p] += c[p]
		}
	}
	return out
}

// minSlot returns the index of the lowest-scoring slot for purpose p,
// tie-broken toward the lower NodeID. This is the replacement threshold a
// candidate centre has to beat.
func (cf *ClusterFinder) minSlot(p int) int {
	min := 0
	for i := 1; i < clustersPerPurpose; i++ {
		s, m := cf.slots[p][i], cf.slots[p][min]
		if s.score < m.score || (s.score == m.score && s.node < m.node) {
			min = i
		}
	}
	return min
}

// Process feeds one settled node's neighbourhood-summed cluster score into
// every purpose's candidate set. scratch must
// already hold n's own contribution (for the tie-break rule) alongside
// every neighbourhood member's.
func (cf *ClusterFinder) Process(n nodeid.ID, neighbourhood []nodeid.ID, scratch *Scratch) {
	clusterScore := ClusterScore(scratch, neighbourhood)
	for p := 0; p < graphmodel.PurposesCount; p++ {
		cf.processPurpose(p, n, neighbourhood, clusterScore[p], scratch)
	}
}

func (cf *ClusterFinder) processPurpose(p int, n nodeid.ID, neighbourhood []nodeid.ID, score nodeid.Score, scratch *Scratch) {
	if n == nodeid.None {
		return
	}
	minIx := cf.minSlot(p)
	if score < cf.slots[p][minIx].score {
		return
	}

	var candidates []int
	if cf.coveredNodes[p][n] {
		candidates = cf.nearToCentres[p][n]
	}
	if len(candidates) == 0 {
		candidates = []int{minIx}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if cf.slots[p][c].score > cf.slots[p][best].score {
			best = c
		}
	}
	bestScore := cf.slots[p][best].score

	if cf.coveredNodes[p][n] && score < bestScore {
		return
	}
	if score == bestScore {
		own := scratch.Get(n)[p]
		rival := scratch.Get(cf.slots[p][best].node)[p]
		if own <= rival {
			return
		}
	}

	installSlot := candidates[0]
	for _, c := range candidates {
		old := cf.slots[p][c].node
		if old != nodeid.None {
			for _, m := range cf.neighbourhoods[p][old] {
				delete(cf.coveredNodes[p], m)
				cf.removeCentreFromNear(p, m, c)
			}
			delete(cf.neighbourhoods[p], old)
		}
		cf.slots[p][c] = clusterSlot{}
	}

	cf.slots[p][installSlot] = clusterSlot{node: n, score: score}
	cf.neighbourhoods[p][n] = neighbourhood
	for _, m := range neighbourhood {
		cf.coveredNodes[p][m] = true
		cf.nearToCentres[p][m] = append(cf.nearToCentres[p][m], installSlot)
	}
}

func (cf *ClusterFinder) removeCentreFromNear(p int, m nodeid.ID, slot int) {
	list := cf.nearToCentres[p][m]
	for i, s := range list {
		if s == slot {
			cf.nearToCentres[p][m] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Top returns the occupied cluster-centre node ids for purpose p. Order is
// slot order, which carries no ranking; callers that
// need a ranked list should sort by score themselves.
func (cf *ClusterFinder) Top(p int) []nodeid.ID {
	var out []nodeid.ID
	for _, s := range cf.slots[p] {
		if s.node != nodeid.None {
			out = append(out, s.node)
		}
	}
	return out
}
