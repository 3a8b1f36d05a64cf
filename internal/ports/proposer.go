package ports

import "pickup-delivery-planner/internal/domain"

// Candidate generator for local search.
// Propose must not mutate its argument; the returned route may be infeasible,
// in which case the optimizer discards it after validation.
type Proposer interface {
	Propose(route domain.Route) domain.Route
}
