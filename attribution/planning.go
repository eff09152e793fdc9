package attribution

import (
	"github.com/katalvlaran/reachscore/floodfill"
	"github.com/katalvlaran/reachscore/graphmodel"
)

// PlanningResult bundles the planning-tool postprocessing output: per-purpose
// cluster centres alongside the per-link attribution the single origin's
// floodfill produced.
type PlanningResult struct {
	Links    []Link
	Clusters *ClusterFinder
}

// Postprocess runs both planning-tool postprocessing passes over one
// floodfill result: link attribution and cluster finding, sharing a single
// scratch fill/reset cycle.
func Postprocess(g *graphmodel.Graph, res *floodfill.Result, scratch *Scratch, mode graphmodel.Mode, bucket int) PlanningResult {
	scratch.Fill(g, res.DestinationsReached, mode, bucket)
	defer scratch.Reset(res.DestinationsReached)

	links := attributeFilled(g, res.DestinationsReached, scratch)

	cf := NewClusterFinder()
	for _, d := range res.DestinationsReached {
		cf.Process(d.Node, g.Neighbourhoods[d.Node], scratch)
	}

	return PlanningResult{Links: links, Clusters: cf}
}
