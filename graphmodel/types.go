// Package graphmodel holds the immutable, process-lifetime graph and lookup
// store the floodfill engine queries: walking/cycling/driving adjacency,
// the public-transport route graph, timetables, per-node opportunity
// vectors, decay curves, and the neighbourhood index.
//
// Every node-keyed field is a plain slice indexed by nodeid.ID rather than a
// map: |V| is a few million and known at load time, so a slice beats a map
// on cache locality, hashing, and per-entry allocation.
package graphmodel

import (
	"github.com/katalvlaran/reachscore/geo"
	"github.com/katalvlaran/reachscore/nodeid"
)

// Mode selects which adjacency/turn-penalty/decay table a query uses.
type Mode int

const (
	ModeWalk Mode = iota
	ModeCycling
	ModeCar
	ModeDrivingByDistance
	ModePT
)

// String implements fmt.Stringer for log lines and error messages.
func (m Mode) String() string {
	switch m {
	case ModeWalk:
		return "walk"
	case ModeCycling:
		return "cycling"
	case ModeCar:
		return "car"
	case ModeDrivingByDistance:
		return "car-by-distance"
	case ModePT:
		return "pt"
	default:
		return "unknown"
	}
}

// Shape constants fixed by the data model.
const (
	SubpurposesCount = 32
	PurposesCount    = 5
	TopClustersCount = 10
	DecayStride      = 3601 // seconds 0..3600 inclusive, per purpose strip
	TimeBuckets      = 4
)

// WalkEdge is one outgoing edge in the plain walk graph. has_pt lives on the
// node, not the edge.
type WalkEdge struct {
	To   nodeid.ID
	Cost nodeid.Cost
}

// WalkNode is a node's outgoing walk-edge list plus its PT-boarding flag.
type WalkNode struct {
	Edges []WalkEdge
	HasPT bool
}

// TurnEdge augments WalkEdge with the bearings and link id the turn-penalty
// relaxation rule needs.
type TurnEdge struct {
	WalkEdge
	AngleLeaving    geo.Angle
	AngleArrived    geo.Angle
	LinkArrivedFrom nodeid.Link
}

// TurnNode is a node's outgoing turn-edge list, used by the car/bike/
// walk-with-turns floodfill variant.
type TurnNode struct {
	Edges []TurnEdge
}

// TimetableEntry is one scheduled departure and its ride time to the
// route's next stop. A RouteNode's Timetable is sorted ascending by
// Leavetime.
type TimetableEntry struct {
	Leavetime nodeid.SecondsPastMidnight
	Cost      nodeid.Cost
}

// RouteNode represents boarding one route at one stop and riding one hop to
// NextStop. Route graphs are star-shaped per stop.
type RouteNode struct {
	NextStop  nodeid.ID
	Timetable []TimetableEntry
}

// RouteInfo is the route metadata link attribution copies onto PT arrival
// links. Empty for walk links.
type RouteInfo struct {
	RouteID   string
	RouteName string
}

// SubpurposeScore is one sparse entry of a node's opportunity vector.
type SubpurposeScore struct {
	Ix    int
	Score nodeid.Score
}

// DestinationCount is one sparse per-node, per-subpurpose small/medium/
// large destination tally entry.
type DestinationCount struct {
	Ix                   int
	Small, Medium, Large int32
}

// DecayCurve is one mode's travel-time decay table: TimeBuckets strips, each
// holding PurposesCount*DecayStride multipliers, read as PurposesCount rows
// of DecayStride values indexed by purpose then integer seconds elapsed.
type DecayCurve [TimeBuckets][]nodeid.Multiplier

// At returns the multiplier for the given time-of-day bucket, purpose, and
// elapsed seconds (clamped to [0, DecayStride-1]).
func (d *DecayCurve) At(bucket, purpose int, seconds nodeid.Cost) nodeid.Multiplier {
	s := int(seconds)
	if s > DecayStride-1 {
		s = DecayStride - 1
	}
	if s < 0 {
		s = 0
	}
	strip := d[bucket]
	return strip[purpose*DecayStride+s]
}
