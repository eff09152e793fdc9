package graphmodel

import (
	"fmt"

	"github.com/katalvlaran/reachscore/nodeid"
)

// Graph is the immutable, process-lifetime graph and lookup store. It is
// built once by an external preprocessor through a Loader and is read-only
// for the lifetime of the process except for the service-change overlay's
// scoped, reversible edits (graphmodel does not itself mutate a Graph; see
// the overlay package).
//
// All node-keyed slices share one length, NodeCount(); NodeID(0) is a valid
// node except as the cluster-finder's "no centre" sentinel.
type Graph struct {
	Walk []WalkNode
	Turn []TurnNode
	// Routes holds the route-node for each PT-boarding node; only indices
	// where Walk[i].HasPT is true are meaningful.
	Routes     []RouteNode
	RouteInfos []RouteInfo

	IsRail    []bool
	NearestPT []bool

	Lon, Lat []float64

	Subpurposes       [][]SubpurposeScore
	DestinationCounts [][]DestinationCount
	Neighbourhoods    [][]nodeid.ID

	SubpurposeToPurpose [SubpurposesCount]int
	Multipliers         map[Mode][SubpurposesCount]nodeid.Multiplier
	Decay               map[Mode]*DecayCurve
}

// NodeCount returns |V|, the shared length of every node-keyed slice. The
// walk adjacency is canonical; a turn-only graph (car/bike deployments may
// omit walk adjacency entirely) falls back to the turn adjacency's length.
func (g *Graph) NodeCount() int {
	if len(g.Walk) >= len(g.Turn) {
		return len(g.Walk)
	}
	return len(g.Turn)
}

// InRange reports whether id is a valid index into this graph's node-keyed
// arrays.
func (g *Graph) InRange(id nodeid.ID) bool {
	return int(id) < g.NodeCount()
}

// Validate checks the structural invariants of a loaded graph: matching
// node-keyed array lengths, sorted timetables, and in-range
// subpurpose/purpose indices. It is meant to run once at load time
// (or after a service-change overlay edits the graph) and fails fast with a
// descriptive error identifying the offending node.
func (g *Graph) Validate() error {
	n := g.NodeCount()
	lengths := map[string]int{
		"Walk":              len(g.Walk),
		"Turn":              len(g.Turn),
		"Routes":            len(g.Routes),
		"RouteInfos":        len(g.RouteInfos),
		"IsRail":            len(g.IsRail),
		"NearestPT":         len(g.NearestPT),
		"Lon":               len(g.Lon),
		"Lat":               len(g.Lat),
		"Subpurposes":       len(g.Subpurposes),
		"DestinationCounts": len(g.DestinationCounts),
		"Neighbourhoods":    len(g.Neighbourhoods),
	}
	for name, l := range lengths {
		if l != 0 && l != n {
			return fmt.Errorf("%w: graph has %d nodes, %s has %d", ErrLengthMismatch, n, name, l)
		}
	}

	for ix, p := range g.SubpurposeToPurpose {
		if p < 0 || p >= PurposesCount {
			return fmt.Errorf("%w: subpurpose_to_purpose[%d]=%d", ErrPurposeIndexOutOfRange, ix, p)
		}
	}

	for nodeID, sps := range g.Subpurposes {
		for _, sp := range sps {
			if sp.Ix < 0 || sp.Ix >= SubpurposesCount {
				return fmt.Errorf("%w: node %d subpurpose ix=%d", ErrSubpurposeIndexOutOfRange, nodeID, sp.Ix)
			}
		}
	}

	for nodeID, rn := range g.Routes {
		if !g.Walk[nodeID].HasPT {
			continue
		}
		for i := 1; i < len(rn.Timetable); i++ {
			if rn.Timetable[i].Leavetime <= rn.Timetable[i-1].Leavetime {
				return fmt.Errorf("%w: node %d entry %d", ErrTimetableNotSorted, nodeID, i)
			}
		}
	}

	for mode, curve := range g.Decay {
		for bucket, strip := range curve {
			if len(strip) != PurposesCount*DecayStride {
				return fmt.Errorf("%w: mode %s bucket %d has %d entries, want %d",
					ErrBadDecayCurveLength, mode, bucket, len(strip), PurposesCount*DecayStride)
			}
		}
	}

	return nil
}

// TimeOfDayBucket maps a trip-start wall clock to one of the four decay
// buckets. Boundaries are strict on the low side: bucket 0 for t0<=10h,
// 1 for (10h,16h], 2 for (16h,19h], 3 for t0>19h.
func TimeOfDayBucket(t0 nodeid.SecondsPastMidnight) int {
	const hour = 3600
	switch {
	case t0 <= 10*hour:
		return 0
	case t0 <= 16*hour:
		return 1
	case t0 <= 19*hour:
		return 2
	default:
		return 3
	}
}
