package services

import (
	"context"
	"errors"
	"fmt"
	"pickup-delivery-planner/internal/domain"
	"pickup-delivery-planner/internal/metrics"
	"pickup-delivery-planner/internal/platform/obs"
	"pickup-delivery-planner/internal/ports"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type PlanRouteRequest struct {
	Vehicle    domain.Vehicle
	Start      time.Time
	Deadline   time.Duration
	CheckEvery int
	Proposer   ports.Proposer
}

type PlanResult struct {
	RunID        string
	Initial      domain.Route
	Route        domain.Route
	InitialScore int
	Score        int
	Distance     int
	Stats        OptimizeStats
}

// PlanRoute runs one planning pass: load orders, build an initial route,
// improve it until the deadline, re-validate the winner and publish it.
// A route that fails final validation is never written to the sink.
func PlanRoute(
	ctx context.Context,
	req PlanRouteRequest,
	source ports.OrderSource,
	builder ports.RouteBuilder,
	sink ports.RouteSink,
) (*PlanResult, error) {
	if req.Proposer == nil {
		return nil, errors.New("plan route: proposer must be non-nil")
	}

	runID := uuid.NewString()
	ctx = obs.WithRun(ctx, *zerolog.Ctx(ctx), runID)

	orders, err := listOrders(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	initial, err := buildInitial(ctx, builder, orders)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	validator := NewValidator(orders, req.Vehicle.Depot, req.Vehicle.BatchSize)

	// Constructors must satisfy the oracle; a failure here is a bug, not a bad candidate.
	initialEv := validator.Evaluate(initial.OrderIDs, initial.Path)
	if !initialEv.Valid() {
		return nil, fmt.Errorf("plan route: %s builder produced an invalid route: %w", builder.Name(), initialEv.Err)
	}
	metrics.RouteScore.WithLabelValues("initial").Set(float64(initialEv.Score))
	metrics.RouteDistance.WithLabelValues("initial").Set(float64(initialEv.Distance))

	opt := &Optimizer{
		Validator:  validator,
		Proposer:   req.Proposer,
		Start:      req.Start,
		Deadline:   req.Deadline,
		CheckEvery: req.CheckEvery,
	}
	best, stats := optimize(ctx, opt, initial)

	score := validator.Score(ctx, best.OrderIDs, best.Path)
	if score == 0 {
		return nil, errors.New("plan route: optimized route failed final validation")
	}
	distance := best.Length()
	metrics.RouteScore.WithLabelValues("final").Set(float64(score))
	metrics.RouteDistance.WithLabelValues("final").Set(float64(distance))

	if err := sink.WriteRoute(ctx, best); err != nil {
		return nil, fmt.Errorf("plan route: write route: %w", err)
	}

	return &PlanResult{
		RunID:        runID,
		Initial:      initial,
		Route:        best,
		InitialScore: initialEv.Score,
		Score:        score,
		Distance:     distance,
		Stats:        stats,
	}, nil
}

func listOrders(ctx context.Context, source ports.OrderSource) (_ []domain.Order, err error) {
	defer obs.Time(ctx, "list_orders")(&err)

	orders, err := source.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Int("orders", len(orders)).Msg("orders loaded")
	return orders, nil
}

func buildInitial(ctx context.Context, builder ports.RouteBuilder, orders []domain.Order) (_ domain.Route, err error) {
	defer obs.Time(ctx, "build_"+builder.Name())(&err)

	route, err := builder.Build(ctx, orders)
	if err != nil {
		return domain.Route{}, fmt.Errorf("build initial route: %w", err)
	}
	return route, nil
}

func optimize(ctx context.Context, opt *Optimizer, initial domain.Route) (domain.Route, OptimizeStats) {
	defer obs.Time(ctx, "optimize")(nil)

	return opt.Run(ctx, initial)
}
