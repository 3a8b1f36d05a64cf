package ports

import (
	"context"
	"pickup-delivery-planner/internal/domain"
)

// Port: a boundary for publishing the final route.
type RouteSink interface {
	WriteRoute(ctx context.Context, route domain.Route) error
}
