package floodfill

import (
	"errors"

	"github.com/katalvlaran/reachscore/geo"
	"github.com/katalvlaran/reachscore/nodeid"
)

// Sentinel errors surfaced by Run/RunTurnMode. An out-of-range NodeID or a
// missing lookup is a programmer error, not a query outcome.
var (
	ErrOriginOutOfRange = errors.New("floodfill: origin node id out of range")
	ErrTargetOutOfRange = errors.New("floodfill: target node id out of range")
	ErrNoTurnGraph      = errors.New("floodfill: graph has no Turn adjacency loaded")
)

// Options configures one floodfill invocation. Not every field applies to
// every variant; see Run (walk+PT) and RunTurnMode (car/bike/walk-with-turns)
// for which subset each reads.
type Options struct {
	TripStart nodeid.SecondsPastMidnight
	Budget    nodeid.Cost

	// EnablePT turns on PT boarding in Run (walk+PT variant). Ignored by
	// RunTurnMode.
	EnablePT bool

	// StoreLinkTrace controls whether PreviousNode/PreviousStepIndex are
	// populated. Batch mode (no link attribution) can leave this false to
	// skip the bookkeeping; planning-tool mode needs it true.
	StoreLinkTrace bool

	// TargetNodes, when non-empty, enables OD-pair collection: every time a
	// target settles, its (cost, node) is appended to Result.ODPairs.
	TargetNodes []nodeid.ID

	// RailDiscountEnabled turns on the shadow-cost rail time-discount in
	// Run. RailDivisor is the fixed integer divisor applied to rail leg
	// costs in the shadow cost that governs frontier expansion.
	RailDiscountEnabled bool
	RailDivisor         nodeid.Cost

	// TurnPenalties is the mode's turn-penalty table for RunTurnMode.
	TurnPenalties geo.TurnPenalties

	// PTShortCircuit enables the optimiser mode in RunTurnMode: arriving at
	// a "nearest to PT stop" node subtracts ReclaimSeconds from cost, with
	// a per-trajectory visited-set guard against the cycles a locally
	// decreasing cost could introduce. Combined with a single TargetNodes entry,
	// RunTurnMode forces StoreLinkTrace on internally, since
	// Result.Sequence reconstruction needs the back-pointers regardless of
	// what the caller passed.
	PTShortCircuit bool
	ReclaimSeconds nodeid.Cost

	// IntervalThresholds, when non-empty, enables destination-count
	// interval snapshots. Must be ascending; each threshold
	// fires at most once.
	IntervalThresholds []nodeid.Cost
}
