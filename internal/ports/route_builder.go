package ports

import (
	"context"
	"pickup-delivery-planner/internal/domain"
)

// Contract for strategies that produce an initial feasible Route.
type RouteBuilder interface {
	// Build a depot-bracketed route over a batch of the given orders.
	Build(ctx context.Context, orders []domain.Order) (domain.Route, error)
	Name() string
}
