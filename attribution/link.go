package attribution

import (
	"github.com/katalvlaran/reachscore/floodfill"
	"github.com/katalvlaran/reachscore/geo"
	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
)

// Link is one traversed edge of the discovered shortest-path tree, carrying
// the endpoint coordinates, PT/route metadata, and the summed per-purpose
// contribution of every settled node whose path back to the origin passes
// through it.
type Link struct {
	From, To           nodeid.ID
	FromLon, FromLat   string
	ToLon, ToLat       string
	IsPT               bool
	RouteID, RouteName string
	Contribution       Contribution
}

// Attribute walks the predecessor chain of every settled node backward,
// folding that node's own contribution into every link on its path to the
// origin, and strips the degenerate origin self-link from the output.
// Total work is O(Σ path_length), bounded by the number of
// settled nodes since every path has length at most that.
func Attribute(g *graphmodel.Graph, destinations []floodfill.DestinationReached, scratch *Scratch, mode graphmodel.Mode, bucket int) []Link {
	scratch.Fill(g, destinations, mode, bucket)
	defer scratch.Reset(destinations)
	return attributeFilled(g, destinations, scratch)
}

// attributeFilled is Attribute's body minus the scratch fill/reset, shared
// with Postprocess which manages one fill/reset cycle across both
// planning-tool passes.
func attributeFilled(g *graphmodel.Graph, destinations []floodfill.DestinationReached, scratch *Scratch) []Link {
	links := make([]Link, len(destinations))
	for i, d := range destinations {
		if i == 0 {
			continue
		}
		fromLon, fromLat := geo.Coord{Lon: g.Lon[d.PreviousNode], Lat: g.Lat[d.PreviousNode]}.Format()
		toLon, toLat := geo.Coord{Lon: g.Lon[d.Node], Lat: g.Lat[d.Node]}.Format()
		links[i] = Link{
			From:    d.PreviousNode,
			To:      d.Node,
			FromLon: fromLon, FromLat: fromLat,
			ToLon: toLon, ToLat: toLat,
			IsPT: d.ArrivedByPT,
		}
		if d.ArrivedByPT {
			ri := g.RouteInfos[d.PreviousNode]
			links[i].RouteID = ri.RouteID
			links[i].RouteName = ri.RouteName
		}
	}

	for i, d := range destinations {
		contrib := scratch.Get(d.Node)
		for step := i; step > 0; step = destinations[step].PreviousStepIndex {
			for p := range contrib {
				links[step].Contribution[p] += contrib[p]
			}
		}
	}

	return links[1:]
}
