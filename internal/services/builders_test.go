package services

import (
	"context"
	"errors"
	"pickup-delivery-planner/internal/domain"
	"slices"
	"testing"
)

func pt(x, y int) domain.Point { return domain.NewPoint(x, y) }

func TestNearestNeighborBuild(t *testing.T) {
	orders := domain.NewOrders([][4]int{
		{5, 0, 5, 5},
		{1, 0, 0, 3},
		{3, 0, 6, 1},
	})

	b := NewNearestNeighborBuilder(domain.NewVehicle(pt(0, 0), 3))
	route, err := b.Build(context.Background(), orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Point{pt(0, 0), pt(1, 0), pt(3, 0), pt(5, 0), pt(6, 1), pt(5, 5), pt(0, 3), pt(0, 0)}
	if !slices.Equal(route.Path, want) {
		t.Fatalf("path = %v, want %v", route.Path, want)
	}
	if !slices.Equal(route.OrderIDs, []int{0, 1, 2}) {
		t.Fatalf("order ids = %v, want [0 1 2]", route.OrderIDs)
	}
	if route.Length() != 22 {
		t.Fatalf("length = %d, want 22", route.Length())
	}

	v := NewValidator(orders, pt(0, 0), 3)
	if got := v.Evaluate(route.OrderIDs, route.Path).Score; got != 97847 {
		t.Fatalf("score = %d, want 97847", got)
	}
}

func TestNearestNeighborTieBreakByOrderID(t *testing.T) {
	// Order 1 comes first in the slice, but both pickups are 2 away from the
	// depot: the smaller id must win.
	orders := []domain.Order{
		domain.NewOrder(1, pt(2, 0), pt(4, 0)),
		domain.NewOrder(0, pt(0, 2), pt(0, 4)),
	}

	b := NewNearestNeighborBuilder(domain.NewVehicle(pt(0, 0), 2))
	route, err := b.Build(context.Background(), orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Point{pt(0, 0), pt(0, 2), pt(2, 0), pt(4, 0), pt(0, 4), pt(0, 0)}
	if !slices.Equal(route.Path, want) {
		t.Fatalf("path = %v, want %v", route.Path, want)
	}
}

func TestFixedOrderBuild(t *testing.T) {
	orders := domain.NewOrders([][4]int{
		{5, 0, 5, 5},
		{1, 0, 0, 3},
		{3, 0, 6, 1},
	})

	b := NewFixedOrderBuilder(domain.NewVehicle(pt(400, 400), 2))
	route, err := b.Build(context.Background(), orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Point{pt(400, 400), pt(5, 0), pt(1, 0), pt(5, 5), pt(0, 3), pt(400, 400)}
	if !slices.Equal(route.Path, want) {
		t.Fatalf("path = %v, want %v", route.Path, want)
	}
	if !slices.Equal(route.OrderIDs, []int{0, 1}) {
		t.Fatalf("order ids = %v, want [0 1]", route.OrderIDs)
	}
}

func TestBuildersSingleOrderScenario(t *testing.T) {
	orders := domain.NewOrders([][4]int{{1, 0, 1, 1}})
	vehicle := domain.NewVehicle(pt(0, 0), 1)

	for _, name := range []string{BuilderGreedy, BuilderFixed} {
		b, err := NewRouteBuilder(name, vehicle)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		route, err := b.Build(context.Background(), orders)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}

		want := []domain.Point{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 0)}
		if !slices.Equal(route.Path, want) {
			t.Fatalf("%s: path = %v, want %v", name, route.Path, want)
		}
		ev := NewValidator(orders, pt(0, 0), 1).Evaluate(route.OrderIDs, route.Path)
		if ev.Distance != 4 || ev.Score != 99601 {
			t.Fatalf("%s: distance=%d score=%d, want 4 and 99601", name, ev.Distance, ev.Score)
		}
	}
}

func TestBuildersEmptyBatch(t *testing.T) {
	for _, name := range []string{BuilderGreedy, BuilderFixed} {
		b, err := NewRouteBuilder(name, domain.NewVehicle(pt(7, 7), 0))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		route, err := b.Build(context.Background(), nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !slices.Equal(route.Path, []domain.Point{pt(7, 7), pt(7, 7)}) {
			t.Fatalf("%s: path = %v, want depot only", name, route.Path)
		}
		if len(route.OrderIDs) != 0 {
			t.Fatalf("%s: expected no processed orders, got %v", name, route.OrderIDs)
		}
		if score := NewValidator(nil, pt(7, 7), 0).Evaluate(route.OrderIDs, route.Path).Score; score != 100000 {
			t.Fatalf("%s: score = %d, want 100000", name, score)
		}
	}
}

func TestBuildersBatchOutOfRange(t *testing.T) {
	orders := domain.NewOrders([][4]int{{1, 0, 1, 1}})

	for _, name := range []string{BuilderGreedy, BuilderFixed} {
		b, _ := NewRouteBuilder(name, domain.NewVehicle(pt(0, 0), 2))
		if _, err := b.Build(context.Background(), orders); !errors.Is(err, domain.ErrOutOfRange) {
			t.Fatalf("%s: err = %v, want ErrOutOfRange", name, err)
		}
	}
}

func TestNewRouteBuilderUnknown(t *testing.T) {
	if _, err := NewRouteBuilder("annealing", domain.NewVehicle(pt(0, 0), 1)); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
