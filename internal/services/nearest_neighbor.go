package services

import (
	"context"
	"fmt"
	"math"
	"pickup-delivery-planner/internal/domain"
)

// NearestNeighborBuilder plans a route using a greedy nearest-neighbor algorithm.
//
// It runs two phases over the vehicle's batch: every pickup first, then every
// delivery, each time moving to the closest unvisited target. Because the whole
// pickup phase precedes the delivery phase, pickup-before-delivery holds by
// construction. The design prioritizes determinism and simplicity over optimality;
// cost is O(K^2) distance evaluations per phase.
type NearestNeighborBuilder struct {
	Vehicle domain.Vehicle
}

func NewNearestNeighborBuilder(v domain.Vehicle) *NearestNeighborBuilder {
	return &NearestNeighborBuilder{Vehicle: v}
}

func (b *NearestNeighborBuilder) Name() string { return BuilderGreedy }

func (b *NearestNeighborBuilder) Build(ctx context.Context, orders []domain.Order) (domain.Route, error) {
	batch, err := b.Vehicle.SelectBatch(orders)
	if err != nil {
		return domain.Route{}, fmt.Errorf("nearest neighbor route: %w", err)
	}

	depot := b.Vehicle.Depot
	if len(batch) == 0 {
		return domain.DepotRoute(depot), nil
	}

	path := make([]domain.Point, 0, 2*len(batch)+2)
	path = append(path, depot)

	current, path := visitNearest(batch, domain.Pickup, depot, path)
	_, path = visitNearest(batch, domain.Delivery, current, path)

	path = append(path, depot)

	return domain.Route{
		OrderIDs: batchIDs(batch),
		Path:     path,
	}, nil
}

// visitNearest appends one target of the given kind per order, always moving
// to the closest unvisited one. Returns the final position and the extended path.
func visitNearest(
	batch []domain.Order,
	kind domain.TargetKind,
	start domain.Point,
	path []domain.Point,
) (domain.Point, []domain.Point) {
	visited := make(map[int]struct{}, len(batch))
	current := start

	for len(visited) < len(batch) {
		best := -1
		minDist := math.MaxInt

		// Select next target by minimum distance (greedy step.)
		for i, o := range batch {
			if _, ok := visited[o.ID]; ok {
				continue
			}
			d := domain.Distance(current, o.Target(kind).Point)
			// Tie-breaker: the smaller order id wins, regardless of batch order.
			if best < 0 || d < minDist || (d == minDist && o.ID < batch[best].ID) {
				minDist = d
				best = i
			}
		}

		next := batch[best].Target(kind)
		visited[next.OrderID] = struct{}{}
		path = append(path, next.Point)
		current = next.Point
	}

	return current, path
}

func batchIDs(batch []domain.Order) []int {
	ids := make([]int, 0, len(batch))
	for _, o := range batch {
		ids = append(ids, o.ID)
	}
	return ids
}
