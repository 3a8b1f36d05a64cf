package services

import (
	"fmt"
	"pickup-delivery-planner/internal/domain"
	"pickup-delivery-planner/internal/ports"
	"strings"
)

const (
	BuilderGreedy = "greedy"
	BuilderFixed  = "fixed"
)

// NewRouteBuilder selects an initial-route strategy by name.
func NewRouteBuilder(name string, v domain.Vehicle) (ports.RouteBuilder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BuilderGreedy:
		return NewNearestNeighborBuilder(v), nil
	case BuilderFixed:
		return NewFixedOrderBuilder(v), nil
	default:
		return nil, fmt.Errorf("new route builder: unknown strategy %q", name)
	}
}
