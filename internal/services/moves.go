package services

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"pickup-delivery-planner/internal/domain"
	"pickup-delivery-planner/internal/ports"
	"slices"
	"strings"
)

const (
	MoveSwap     = "swap"
	MoveReverse  = "reverse"
	MoveRelocate = "relocate"
)

// NewRand returns the deterministic generator shared by the moves of one run.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Interior positions are 1..len(path)-2; the depot bookends never move.
func interiorLen(path []domain.Point) int {
	return len(path) - 2
}

// twoInterior picks two distinct interior indices.
func twoInterior(rng *rand.Rand, n int) (int, int) {
	i := 1 + rng.IntN(n)
	j := 1 + rng.IntN(n-1)
	if j >= i {
		j++
	}
	return i, j
}

// SwapMove exchanges two visit positions.
type SwapMove struct {
	rng *rand.Rand
}

func NewSwapMove(rng *rand.Rand) *SwapMove { return &SwapMove{rng: rng} }

func (m *SwapMove) Propose(route domain.Route) domain.Route {
	out := route.Clone()
	n := interiorLen(out.Path)
	if n < 2 {
		return out
	}
	i, j := twoInterior(m.rng, n)
	out.Path[i], out.Path[j] = out.Path[j], out.Path[i]
	return out
}

// ReverseMove reverses the interior segment [i, k] (2-opt).
type ReverseMove struct {
	rng *rand.Rand
}

func NewReverseMove(rng *rand.Rand) *ReverseMove { return &ReverseMove{rng: rng} }

func (m *ReverseMove) Propose(route domain.Route) domain.Route {
	out := route.Clone()
	n := interiorLen(out.Path)
	if n < 2 {
		return out
	}
	i, k := twoInterior(m.rng, n)
	if i > k {
		i, k = k, i
	}
	slices.Reverse(out.Path[i : k+1])
	return out
}

// RelocateMove removes one visit and reinserts it at another interior position (or-opt).
type RelocateMove struct {
	rng *rand.Rand
}

func NewRelocateMove(rng *rand.Rand) *RelocateMove { return &RelocateMove{rng: rng} }

func (m *RelocateMove) Propose(route domain.Route) domain.Route {
	out := route.Clone()
	n := interiorLen(out.Path)
	if n < 2 {
		return out
	}
	from, to := twoInterior(m.rng, n)
	node := out.Path[from]
	out.Path = slices.Delete(out.Path, from, from+1)
	out.Path = slices.Insert(out.Path, to, node)
	return out
}

// WeightedMoves picks one move per proposal by roulette wheel.
type WeightedMoves struct {
	moves   []ports.Proposer
	weights []float64
	rng     *rand.Rand
}

func (w *WeightedMoves) Propose(route domain.Route) domain.Route {
	return w.moves[selectMove(w.weights, w.rng)].Propose(route)
}

func selectMove(weights []float64, rng *rand.Rand) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return 0
	}
	r := rng.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

// NewMoves builds the candidate generator from move weights keyed by name.
// Names are applied in sorted order so a seed always reproduces the same run.
func NewMoves(weights map[string]float64, rng *rand.Rand) (ports.Proposer, error) {
	if len(weights) == 0 {
		return nil, errors.New("new moves: no moves configured")
	}

	wm := &WeightedMoves{rng: rng}
	for _, name := range slices.Sorted(maps.Keys(weights)) {
		weight := weights[name]
		if weight < 0 {
			return nil, fmt.Errorf("new moves: move %q has negative weight %v", name, weight)
		}
		if weight == 0 {
			continue
		}

		var move ports.Proposer
		switch strings.ToLower(strings.TrimSpace(name)) {
		case MoveSwap:
			move = NewSwapMove(rng)
		case MoveReverse:
			move = NewReverseMove(rng)
		case MoveRelocate:
			move = NewRelocateMove(rng)
		default:
			return nil, fmt.Errorf("new moves: unknown move %q", name)
		}
		wm.moves = append(wm.moves, move)
		wm.weights = append(wm.weights, weight)
	}

	switch len(wm.moves) {
	case 0:
		return nil, errors.New("new moves: every move has zero weight")
	case 1:
		return wm.moves[0], nil
	}
	return wm, nil
}
