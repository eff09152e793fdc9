// Package score implements the per-origin opportunity-score aggregator:
// it folds a settled-node stream into a 32-entry subpurpose
// vector via the travel-time decay curve, then into a 5-entry purpose
// vector via the fixed subpurpose-to-purpose lookup, per-mode multipliers,
// and a log-and-clamp finalisation step.
package score

import (
	"math"

	"github.com/katalvlaran/reachscore/floodfill"
	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
	"gonum.org/v1/gonum/stat"
)

// Vector is a purpose-indexed opportunity-score result.
type Vector [graphmodel.PurposesCount]nodeid.Score

// Aggregate folds destinationsReached into a purpose-score vector for the
// given mode and time-of-day bucket. Three structurally-zero
// multiplier slots (residential, motor sports, allotment) stay zero because
// their subtotal is only ever scaled by a zero multiplier. The ln call is
// skipped for totals that are not strictly positive, which lands on the
// same clamped zero a ln-then-max would.
func Aggregate(g *graphmodel.Graph, destinations []floodfill.DestinationReached, mode graphmodel.Mode, bucket int) Vector {
	var subpurposeTotals [graphmodel.SubpurposesCount]nodeid.Score

	curve := g.Decay[mode]
	for _, d := range destinations {
		for _, sp := range g.Subpurposes[d.Node] {
			purpose := g.SubpurposeToPurpose[sp.Ix]
			m := curve.At(bucket, purpose, d.Cost)
			subpurposeTotals[sp.Ix] += sp.Score * nodeid.Score(m)
		}
	}

	mult := g.Multipliers[mode]
	var purposeTotals Vector
	for ix, total := range subpurposeTotals {
		scaled := float64(total) * float64(mult[ix])
		if scaled <= 0 {
			continue
		}
		v := math.Log(scaled)
		if v < 0 {
			v = 0
		}
		purpose := g.SubpurposeToPurpose[ix]
		purposeTotals[purpose] += nodeid.Score(v)
	}
	return purposeTotals
}

// BatchStats summarizes a batch of per-origin purpose-score vectors with
// per-purpose mean and variance through gonum/stat. This is diagnostic
// output for the batch dispatcher, beyond what a single query reports.
type BatchStats struct {
	Mean     [graphmodel.PurposesCount]float64
	Variance [graphmodel.PurposesCount]float64
}

// Summarize computes per-purpose mean and variance across a batch's
// purpose-score vectors.
func Summarize(vectors []Vector) BatchStats {
	var out BatchStats
	if len(vectors) == 0 {
		return out
	}
	column := make([]float64, len(vectors))
	for p := 0; p < graphmodel.PurposesCount; p++ {
		for i, v := range vectors {
			column[i] = float64(v[p])
		}
		out.Mean[p], out.Variance[p] = stat.MeanVariance(column, nil)
	}
	return out
}
