// Package nodeid defines the dense integer identifiers shared by every
// node-keyed structure in the accessibility engine, plus the saturating
// Cost arithmetic the floodfill loop relies on.
//
// Every per-node array in graphmodel, floodfill, score and attribution is
// indexed directly by ID (no hashing, no string keys). The ID-keyed maps
// are the cluster finder's coverage bookkeeping and the optimiser mode's
// per-trajectory visited sets.
package nodeid

import "math"

// ID is a dense index into all node-keyed arrays. ID(0) is reserved as the
// cluster-finder's "no centre" sentinel; it is still a valid graph node
// otherwise.
type ID uint32

// None is the cluster-finder's empty-slot sentinel.
const None ID = 0

// Link is an opaque edge identifier used only for turn-penalty bookkeeping.
type Link uint32

// Cost is a duration in seconds, or a distance proxy for distance-based
// variants. It is stored as 16 bits on disk but carried as a wider signed
// type at runtime so additions cannot wrap silently.
type Cost int32

// MaxCost is the saturation ceiling for Cost arithmetic.
const MaxCost Cost = math.MaxInt32

// Add returns c+other, saturating at MaxCost instead of overflowing.
// Budgets are bounded at 3600s and individual edge costs fit in 16 bits, so
// saturation is not expected to trigger in practice; it exists as a
// safety net.
func (c Cost) Add(other Cost) Cost {
	sum := int64(c) + int64(other)
	if sum > int64(MaxCost) {
		return MaxCost
	}
	if sum < 0 {
		return 0
	}
	return Cost(sum)
}

// Sub returns c-other, saturating at 0 rather than going negative. Used by
// the PT-node short-circuit reclaim, which can otherwise drive cost
// negative against Cost's signed-but-budget-bounded domain.
func (c Cost) Sub(other Cost) Cost {
	diff := int64(c) - int64(other)
	if diff < 0 {
		return 0
	}
	if diff > int64(MaxCost) {
		return MaxCost
	}
	return Cost(diff)
}

// SecondsPastMidnight is a wall-clock offset used for trip-start times and
// timetable lookups.
type SecondsPastMidnight int32

// Score is a scalar opportunity value accumulated in floating point.
type Score float64

// Multiplier is a decay or scaling factor applied to a Score.
type Multiplier float64
