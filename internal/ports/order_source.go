package ports

import (
	"context"
	"pickup-delivery-planner/internal/domain"
)

// Port: a boundary for retrieving the fixed order set of a planning run.
type OrderSource interface {
	// Return all orders in id order (order i has ID i).
	ListOrders(ctx context.Context) ([]domain.Order, error)
}
