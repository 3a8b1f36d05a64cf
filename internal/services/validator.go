package services

import (
	"context"
	"errors"
	"fmt"
	"pickup-delivery-planner/internal/domain"

	"github.com/rs/zerolog"
)

// Structural failures. Every one of them wraps ErrStructuralInvalid and
// scores 0; the validator reports them, it never returns them as call errors.
var (
	ErrStructuralInvalid = errors.New("structurally invalid route")
	ErrEmptyPath         = fmt.Errorf("%w: path is empty", ErrStructuralInvalid)
	ErrDepotBookend      = fmt.Errorf("%w: path must start and end at the depot", ErrStructuralInvalid)
	ErrDuplicateOrder    = fmt.Errorf("%w: processed order ids are duplicated", ErrStructuralInvalid)
	ErrIncompleteOrder   = fmt.Errorf("%w: some orders were not picked up and delivered", ErrStructuralInvalid)
)

// ErrBatchSizeMismatch is a non-fatal warning: the route is scored normally.
var ErrBatchSizeMismatch = errors.New("processed order count differs from batch size")

const (
	scoreNumerator = 100_000_000
	scoreOffset    = 1000
)

// ScoreForDistance maps a total path length to a score; shorter is better.
func ScoreForDistance(distance int) int {
	return scoreNumerator / (scoreOffset + distance)
}

// Per-order progress while replaying a path.
// Pending -> PickedUp -> Completed; every other transition is ignored, which
// is what makes a delivery visited before its pickup not count.
type orderState uint8

const (
	untracked orderState = iota
	pending
	pickedUp
	completed
)

func (s orderState) String() string {
	switch s {
	case pending:
		return "pending"
	case pickedUp:
		return "picked_up"
	case completed:
		return "completed"
	default:
		return "untracked"
	}
}

func (s orderState) visit(kind domain.TargetKind) orderState {
	switch {
	case s == pending && kind == domain.Pickup:
		return pickedUp
	case s == pickedUp && kind == domain.Delivery:
		return completed
	default:
		return s
	}
}

type occupant struct {
	kind    domain.TargetKind
	orderID int
}

// Evaluation is the outcome of replaying one candidate route.
type Evaluation struct {
	Score    int
	Distance int
	// Err is nil for a feasible route, otherwise one of the structural errors.
	Err error
	// OrderID is the first offending order for duplicate/incomplete failures, -1 otherwise.
	OrderID int
	Warning error
}

func (e Evaluation) Valid() bool { return e.Err == nil }

// Validator replays candidate routes against a fixed order set.
// The point lookup is built once, so Evaluate is cheap enough for the
// optimizer's inner loop. A Validator is read-only after construction.
type Validator struct {
	depot         domain.Point
	expectedBatch int
	occupants     map[domain.Point][]occupant
	maxOrderID    int
}

func NewValidator(orders []domain.Order, depot domain.Point, expectedBatch int) *Validator {
	v := &Validator{
		depot:         depot,
		expectedBatch: expectedBatch,
		occupants:     make(map[domain.Point][]occupant, 2*len(orders)),
		maxOrderID:    -1,
	}

	// Several orders may share a coordinate; keep pickup before delivery per order.
	for _, o := range orders {
		v.occupants[o.Pickup.Point] = append(v.occupants[o.Pickup.Point], occupant{kind: domain.Pickup, orderID: o.ID})
		v.occupants[o.Delivery.Point] = append(v.occupants[o.Delivery.Point], occupant{kind: domain.Delivery, orderID: o.ID})
		if o.ID > v.maxOrderID {
			v.maxOrderID = o.ID
		}
	}
	return v
}

func (v *Validator) Depot() domain.Point { return v.depot }

// Evaluate checks feasibility and scores the route. It has no side effects
// and does not modify ids or path.
func (v *Validator) Evaluate(ids []int, path []domain.Point) Evaluation {
	if len(path) == 0 {
		return Evaluation{Err: ErrEmptyPath, OrderID: -1}
	}
	if path[0] != v.depot || path[len(path)-1] != v.depot {
		return Evaluation{Err: ErrDepotBookend, OrderID: -1}
	}

	states := make([]orderState, v.maxOrderID+1)
	var unknown map[int]struct{}
	incomplete := -1

	for _, id := range ids {
		if id < 0 || id > v.maxOrderID {
			// Unknown ids can never be picked up, but duplicates still win.
			if unknown == nil {
				unknown = make(map[int]struct{})
			}
			if _, dup := unknown[id]; dup {
				return Evaluation{Err: ErrDuplicateOrder, OrderID: id}
			}
			unknown[id] = struct{}{}
			if incomplete < 0 {
				incomplete = id
			}
			continue
		}
		if states[id] != untracked {
			return Evaluation{Err: ErrDuplicateOrder, OrderID: id}
		}
		states[id] = pending
	}

	for _, p := range path {
		for _, occ := range v.occupants[p] {
			states[occ.orderID] = states[occ.orderID].visit(occ.kind)
		}
	}

	if incomplete < 0 {
		for _, id := range ids {
			if states[id] != completed {
				incomplete = id
				break
			}
		}
	}
	if incomplete >= 0 || unknown != nil {
		return Evaluation{Err: ErrIncompleteOrder, OrderID: incomplete}
	}

	distance := domain.PathLength(path)
	ev := Evaluation{
		Score:    ScoreForDistance(distance),
		Distance: distance,
		OrderID:  -1,
	}
	if len(ids) != v.expectedBatch {
		ev.Warning = ErrBatchSizeMismatch
	}
	return ev
}

// Score evaluates the route and writes diagnostics to the logger carried by ctx.
// Infeasible routes score 0.
func (v *Validator) Score(ctx context.Context, ids []int, path []domain.Point) int {
	ev := v.Evaluate(ids, path)
	logger := zerolog.Ctx(ctx)

	if ev.Err != nil {
		e := logger.Warn().Err(ev.Err).Int("processed", len(ids)).Int("path_len", len(path))
		if ev.OrderID >= 0 {
			e = e.Int("order_id", ev.OrderID)
		}
		e.Msg("route rejected")
		return 0
	}

	if ev.Warning != nil {
		logger.Warn().
			Err(ev.Warning).
			Int("processed", len(ids)).
			Int("expected", v.expectedBatch).
			Msg("route accepted with warning")
	}
	logger.Info().Int("score", ev.Score).Int("distance", ev.Distance).Msg("route scored")
	return ev.Score
}

// Score is the one-shot form of Validator.Score.
func Score(
	ctx context.Context,
	orders []domain.Order,
	depot domain.Point,
	expectedBatch int,
	ids []int,
	path []domain.Point,
) int {
	return NewValidator(orders, depot, expectedBatch).Score(ctx, ids, path)
}
