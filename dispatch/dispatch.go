// Package dispatch implements the batch dispatcher: it
// fans out one floodfill query per origin across worker goroutines, with
// no shared mutable state besides the immutable graph, and aggregates each
// origin's purpose-score vector independently so a single failed origin
// does not abort the batch.
package dispatch

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/reachscore/floodfill"
	"github.com/katalvlaran/reachscore/graphmodel"
	"github.com/katalvlaran/reachscore/nodeid"
	"github.com/katalvlaran/reachscore/overlay"
	"github.com/katalvlaran/reachscore/score"
)

// OriginQuery is one origin's floodfill request within a batch.
type OriginQuery struct {
	Origin        nodeid.ID
	WalkingPrefix nodeid.Cost
	Mode          graphmodel.Mode
	Options       floodfill.Options
}

// OriginResult is one origin's batch output.
// Err is set instead of the batch call failing outright when an individual
// origin's floodfill invocation errors.
type OriginResult struct {
	Origin        nodeid.ID
	WalkingPrefix nodeid.Cost
	PurposeScores score.Vector
	ODPairs       []floodfill.ODPair
	Iterations    int
	Sequence      []nodeid.ID
	Err           error
}

// BatchResult is a full batch dispatch's output, tagged with a correlation
// id for log correlation across the fan-out.
type BatchResult struct {
	CorrelationID uuid.UUID
	Results       []OriginResult
}

// Params carries the settings shared by every origin in one batch, as
// opposed to the per-origin floodfill Options on each OriginQuery.
type Params struct {
	// Bucket is the time-of-day decay bucket derived from the batch's trip
	// start (see graphmodel.TimeOfDayBucket).
	Bucket int
}

// RunBatch fans origin queries out across goroutines via errgroup, bounded
// by workerLimit (0 = unbounded), and scores each origin's destinations
// independently. One origin's error is captured on its OriginResult rather
// than aborting the whole batch.
func RunBatch(ctx context.Context, g *graphmodel.Graph, queries []OriginQuery, params Params, workerLimit int, logger zerolog.Logger) *BatchResult {
	id := uuid.New()
	log := logger.With().Str("batch_id", id.String()).Logger()

	results := make([]OriginResult, len(queries))
	grp, _ := errgroup.WithContext(ctx)
	if workerLimit > 0 {
		grp.SetLimit(workerLimit)
	}

	for i, q := range queries {
		i, q := i, q
		grp.Go(func() error {
			results[i] = runOrigin(g, q, params, log)
			return nil
		})
	}
	_ = grp.Wait()

	return &BatchResult{CorrelationID: id, Results: results}
}

// RunBatchWithServiceChange stages change onto g before dispatching the
// batch and rolls it back once every origin has finished, so the graph is
// byte-equal to its pre-call state afterward.
func RunBatchWithServiceChange(ctx context.Context, g *graphmodel.Graph, change overlay.Change, queries []OriginQuery, params Params, workerLimit int, logger zerolog.Logger) *BatchResult {
	rb := overlay.Apply(g, change)
	defer func() {
		if err := rb.Undo(g); err != nil {
			logger.Error().Err(err).Msg("service-change rollback failed")
		}
	}()
	return RunBatch(ctx, g, queries, params, workerLimit, logger)
}

func runOrigin(g *graphmodel.Graph, q OriginQuery, params Params, log zerolog.Logger) OriginResult {
	res, err := runFloodfill(g, q)
	if err != nil {
		log.Error().Err(err).Uint32("origin", uint32(q.Origin)).Msg("origin query failed")
		return OriginResult{Origin: q.Origin, WalkingPrefix: q.WalkingPrefix, Err: err}
	}

	return OriginResult{
		Origin:        q.Origin,
		WalkingPrefix: q.WalkingPrefix,
		PurposeScores: score.Aggregate(g, res.DestinationsReached, q.Mode, params.Bucket),
		ODPairs:       res.ODPairs,
		Iterations:    res.Iterations,
		Sequence:      res.Sequence,
	}
}

func runFloodfill(g *graphmodel.Graph, q OriginQuery) (*floodfill.Result, error) {
	switch q.Mode {
	case graphmodel.ModeCycling, graphmodel.ModeCar, graphmodel.ModeDrivingByDistance:
		return floodfill.RunTurnMode(g, q.Origin, q.WalkingPrefix, q.Options)
	default:
		return floodfill.Run(g, q.Origin, q.WalkingPrefix, q.Options)
	}
}
