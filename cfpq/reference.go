// SPDX-License-Identifier: MIT

package cfpq

import (
	"time"

	"github.com/katalvlaran/cfpq/boolmat"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// Reference is the all-pairs fixpoint solver used as ground truth.
type Reference struct{ base }

var _ Solver = (*Reference)(nil)

// NewReference validates inputs and options and returns a Reference solver.
// Errors: ErrNilGraph, ErrNilGrammar, ErrOptionViolation.
func NewReference(g *graph.LabeledGraph, gr *grammar.Grammar, opts ...Option) (*Reference, error) {
	b, err := newBase(AlgoReference, g, gr, opts)
	if err != nil {
		return nil, err
	}

	return &Reference{base: b}, nil
}

// Solve computes the full fixpoint and returns the chunk's rows.
//
// Steps:
//  1. Seed M[A] from unit rules and nullable diagonals.
//  2. For every A -> B C: M[A] |= M[B]·M[C].
//  3. Repeat 2 until a round changes nothing.
//
// Complexity: O(rounds * |P| * n^3) worst case; each product only visits stored entries.
func (s *Reference) Solve(chunk []int) (*Result, error) {
	if err := ValidateChunk(chunk, s.n); err != nil {
		return nil, err
	}
	if len(chunk) == 0 {
		return emptyResult(), nil
	}
	start := time.Now()

	ms, rounds, err := s.Fixpoint()
	if err != nil {
		return nil, err
	}
	res, err := s.collect(chunk, ms)
	if err != nil {
		return nil, err
	}
	s.done(chunk, rounds, start)

	return res, nil
}

// Fixpoint returns the n×n matrices of every nonterminal, indexed like
// grammar.Nonterminals(), together with the number of rounds run.
func (s *Reference) Fixpoint() ([]*boolmat.Matrix, int, error) {
	ms, err := s.seed()
	if err != nil {
		return nil, 0, err
	}

	var round int
	for changed := true; changed; {
		round++
		changed = false
		for _, r := range s.rules {
			prod, err := boolmat.Mul(ms[r.Left], ms[r.Right])
			if err != nil {
				return nil, round, err
			}
			ch, err := ms[r.Head].Or(prod)
			if err != nil {
				return nil, round, err
			}
			changed = changed || ch
		}
		s.observe(round, changed, ms)
	}

	return ms, round, nil
}
