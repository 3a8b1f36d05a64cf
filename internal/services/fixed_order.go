package services

import (
	"context"
	"fmt"
	"pickup-delivery-planner/internal/domain"
)

// FixedOrderBuilder is the trivial baseline: all pickups of the batch in
// index order, then all deliveries in index order, bracketed by the depot.
// It performs no optimization and serves as a correctness reference.
type FixedOrderBuilder struct {
	Vehicle domain.Vehicle
}

func NewFixedOrderBuilder(v domain.Vehicle) *FixedOrderBuilder {
	return &FixedOrderBuilder{Vehicle: v}
}

func (b *FixedOrderBuilder) Name() string { return BuilderFixed }

func (b *FixedOrderBuilder) Build(ctx context.Context, orders []domain.Order) (domain.Route, error) {
	batch, err := b.Vehicle.SelectBatch(orders)
	if err != nil {
		return domain.Route{}, fmt.Errorf("fixed order route: %w", err)
	}

	depot := b.Vehicle.Depot
	if len(batch) == 0 {
		return domain.DepotRoute(depot), nil
	}

	path := make([]domain.Point, 0, 2*len(batch)+2)
	path = append(path, depot)
	for _, o := range batch {
		path = append(path, o.Pickup.Point)
	}
	for _, o := range batch {
		path = append(path, o.Delivery.Point)
	}
	path = append(path, depot)

	return domain.Route{
		OrderIDs: batchIDs(batch),
		Path:     path,
	}, nil
}
