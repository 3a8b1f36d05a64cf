package services

import (
	"context"
	"pickup-delivery-planner/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stepClock advances by step on every read.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

type scriptedProposer struct {
	routes []domain.Route
	calls  int
}

func (p *scriptedProposer) Propose(route domain.Route) domain.Route {
	p.calls++
	if len(p.routes) == 0 {
		return route.Clone()
	}
	next := p.routes[0]
	p.routes = p.routes[1:]
	return next
}

func fixedRoute(t *testing.T, orders []domain.Order, depot domain.Point, k int) domain.Route {
	t.Helper()
	route, err := NewFixedOrderBuilder(domain.NewVehicle(depot, k)).Build(context.Background(), orders)
	require.NoError(t, err)
	return route
}

func TestOptimizerExpiredDeadlineReturnsInitial(t *testing.T) {
	orders := singleOrder()
	initial := fixedRoute(t, orders, pt(0, 0), 1)
	start := time.Unix(1000, 0)
	proposer := &scriptedProposer{}

	opt := &Optimizer{
		Validator: NewValidator(orders, pt(0, 0), 1),
		Proposer:  proposer,
		Start:     start,
		Deadline:  time.Second,
		Now:       func() time.Time { return start.Add(2 * time.Second) },
	}
	best, stats := opt.Run(context.Background(), initial)

	require.Equal(t, initial, best)
	require.Zero(t, stats.Candidates)
	require.Zero(t, proposer.calls)
	require.Equal(t, 99601, stats.BestScore)
	require.Equal(t, stats.InitialScore, stats.BestScore)
}

func TestOptimizerAdoptsOnlyStrictImprovements(t *testing.T) {
	orders := domain.NewOrders([][4]int{{5, 0, 5, 1}, {1, 0, 1, 1}})
	depot := pt(0, 0)
	// depot, p0, p1, d0, d1, depot: 5+4+5+4+2
	initial := fixedRoute(t, orders, depot, 2)

	worse := domain.Route{OrderIDs: []int{0, 1}, Path: []domain.Point{depot, pt(5, 0), pt(1, 0), pt(5, 1), pt(1, 1), pt(5, 1), depot}}
	infeasible := domain.Route{OrderIDs: []int{0, 1}, Path: []domain.Point{depot, pt(5, 1), pt(1, 0), pt(5, 0), pt(1, 1), depot}}
	equal := domain.Route{OrderIDs: []int{0, 1}, Path: []domain.Point{depot, pt(1, 0), pt(5, 0), pt(1, 1), pt(5, 1), depot}}
	better := domain.Route{OrderIDs: []int{0, 1}, Path: []domain.Point{depot, pt(1, 0), pt(5, 0), pt(5, 1), pt(1, 1), depot}}

	v := NewValidator(orders, depot, 2)
	require.Equal(t, 20, v.Evaluate(initial.OrderIDs, initial.Path).Distance)
	require.Equal(t, 28, v.Evaluate(worse.OrderIDs, worse.Path).Distance)
	require.False(t, v.Evaluate(infeasible.OrderIDs, infeasible.Path).Valid())
	require.Equal(t, 20, v.Evaluate(equal.OrderIDs, equal.Path).Distance)
	require.Equal(t, 12, v.Evaluate(better.OrderIDs, better.Path).Distance)

	start := time.Unix(1000, 0)
	opt := &Optimizer{
		Validator:  v,
		Proposer:   &scriptedProposer{routes: []domain.Route{worse, infeasible, equal, better}},
		Start:      start,
		Deadline:   10 * time.Millisecond,
		Now:        stepClock(start, 4*time.Millisecond),
		CheckEvery: 4,
	}
	best, stats := opt.Run(context.Background(), initial)

	require.Equal(t, better, best)
	require.Equal(t, 8, stats.Candidates)
	require.Equal(t, 1, stats.Improvements)
	require.Equal(t, 1, stats.Rejected)
	require.Equal(t, ScoreForDistance(20), stats.InitialScore)
	require.Equal(t, ScoreForDistance(12), stats.BestScore)
	require.Equal(t, 12*time.Millisecond, stats.Elapsed)
}

func TestOptimizerNeverRegresses(t *testing.T) {
	rng := NewRand(445)
	orders := randomOrders(rng, 40)
	depot := pt(10, 10)
	initial := fixedRoute(t, orders, depot, 25)
	v := NewValidator(orders, depot, 25)
	initialScore := v.Evaluate(initial.OrderIDs, initial.Path).Score

	moves, err := NewMoves(map[string]float64{MoveSwap: 1, MoveReverse: 1, MoveRelocate: 1}, rng)
	require.NoError(t, err)

	start := time.Unix(1000, 0)
	opt := &Optimizer{
		Validator:  v,
		Proposer:   moves,
		Start:      start,
		Deadline:   time.Second,
		Now:        stepClock(start, 5*time.Millisecond),
		CheckEvery: 16,
	}
	best, stats := opt.Run(context.Background(), initial)

	ev := v.Evaluate(best.OrderIDs, best.Path)
	require.NoError(t, ev.Err)
	require.GreaterOrEqual(t, ev.Score, initialScore)
	require.Equal(t, ev.Score, stats.BestScore)
	require.Equal(t, initial.OrderIDs, best.OrderIDs)
	// 199 clock reads fall before the deadline, each followed by CheckEvery candidates.
	require.Equal(t, 199*16, stats.Candidates)
}

func TestOptimizerSilentWhenNothingValidates(t *testing.T) {
	orders := singleOrder()
	depot := pt(0, 0)
	initial := fixedRoute(t, orders, depot, 1)
	broken := domain.Route{OrderIDs: []int{0}, Path: []domain.Point{depot, pt(1, 1), pt(1, 0), depot}}

	routes := make([]domain.Route, 0, 64)
	for range 64 {
		routes = append(routes, broken)
	}

	start := time.Unix(1000, 0)
	opt := &Optimizer{
		Validator:  NewValidator(orders, depot, 1),
		Proposer:   &scriptedProposer{routes: routes},
		Start:      start,
		Deadline:   3 * time.Millisecond,
		Now:        stepClock(start, time.Millisecond),
		CheckEvery: 8,
	}
	best, stats := opt.Run(context.Background(), initial)

	require.Equal(t, initial, best)
	require.Equal(t, 16, stats.Rejected)
	require.Zero(t, stats.Improvements)
}

func TestOptimizerStateString(t *testing.T) {
	require.Equal(t, "running", Running.String())
	require.Equal(t, "finished", Finished.String())
}
