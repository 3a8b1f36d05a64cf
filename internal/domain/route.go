package domain

import "slices"

// Represents a candidate solution for one vehicle.
// OrderIDs lists the processed orders; Path is the physical visiting sequence,
// which starts and ends at the depot. A Route is plain planning data: the
// validator decides whether it satisfies the depot, uniqueness and
// pickup-before-delivery invariants.
type Route struct {
	OrderIDs []int
	Path     []Point
}

// DepotRoute is the trivial route that never leaves the depot.
func DepotRoute(depot Point) Route {
	return Route{
		OrderIDs: []int{},
		Path:     []Point{depot, depot},
	}
}

// Clone returns a deep copy so the caller may mutate it freely.
func (r Route) Clone() Route {
	return Route{
		OrderIDs: slices.Clone(r.OrderIDs),
		Path:     slices.Clone(r.Path),
	}
}

func (r Route) Length() int { return PathLength(r.Path) }
