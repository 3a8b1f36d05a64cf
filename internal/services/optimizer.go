package services

import (
	"context"
	"pickup-delivery-planner/internal/domain"
	"pickup-delivery-planner/internal/metrics"
	"pickup-delivery-planner/internal/ports"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCheckEvery is the number of candidates evaluated between clock reads.
const DefaultCheckEvery = 32

type OptimizerState int

const (
	Running OptimizerState = iota
	Finished
)

func (s OptimizerState) String() string {
	if s == Finished {
		return "finished"
	}
	return "running"
}

// OptimizeStats summarises one optimizer run.
type OptimizeStats struct {
	Candidates   int
	Improvements int
	Rejected     int
	InitialScore int
	BestScore    int
	Elapsed      time.Duration
}

// Optimizer is a time-boxed hill climber: it repeatedly asks the Proposer for
// a neighbour of the best route and adopts it only when the Validator scores
// it strictly higher. The deadline is measured from Start, which callers set
// to process start so input parsing and construction count against the budget.
type Optimizer struct {
	Validator *Validator
	Proposer  ports.Proposer
	Start     time.Time
	Deadline  time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// CheckEvery candidates are evaluated between clock reads; defaults to DefaultCheckEvery.
	CheckEvery int
}

func (o *Optimizer) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Run improves initial until the deadline passes and returns the best route
// seen. The initial route is returned unchanged when no candidate beats it.
func (o *Optimizer) Run(ctx context.Context, initial domain.Route) (domain.Route, OptimizeStats) {
	best := initial
	bestScore := o.Validator.Evaluate(best.OrderIDs, best.Path).Score
	stats := OptimizeStats{InitialScore: bestScore, BestScore: bestScore}

	checkEvery := o.CheckEvery
	if checkEvery <= 0 {
		checkEvery = DefaultCheckEvery
	}

	state := Running
	for state == Running {
		if elapsed := o.now().Sub(o.Start); elapsed >= o.Deadline {
			stats.Elapsed = elapsed
			state = Finished
			continue
		}

		for range checkEvery {
			cand := o.Proposer.Propose(best)
			ev := o.Validator.Evaluate(cand.OrderIDs, cand.Path)
			stats.Candidates++

			if !ev.Valid() {
				stats.Rejected++
				continue
			}
			if ev.Score > bestScore {
				best = cand
				bestScore = ev.Score
				stats.Improvements++
			}
		}
	}
	stats.BestScore = bestScore

	metrics.OptimizerCandidates.Add(float64(stats.Candidates))
	metrics.OptimizerImprovements.Add(float64(stats.Improvements))
	metrics.OptimizerRejected.Add(float64(stats.Rejected))

	zerolog.Ctx(ctx).Info().
		Stringer("state", state).
		Int("candidates", stats.Candidates).
		Int("improvements", stats.Improvements).
		Int("rejected", stats.Rejected).
		Int("initial_score", stats.InitialScore).
		Int("best_score", stats.BestScore).
		Int64("elapsed_ms", stats.Elapsed.Milliseconds()).
		Msg("optimizer finished")

	return best, stats
}
