// SPDX-License-Identifier: MIT

package cfpq

import (
	"time"

	"github.com/katalvlaran/cfpq/boolmat"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// Brute solves one source vertex at a time with row-vector × matrix products.
// Nothing computed for one source is reused for the next.
type Brute struct{ base }

var _ Solver = (*Brute)(nil)

// NewBrute validates inputs and options and returns a Brute solver.
// Errors: ErrNilGraph, ErrNilGrammar, ErrOptionViolation.
func NewBrute(g *graph.LabeledGraph, gr *grammar.Grammar, opts ...Option) (*Brute, error) {
	b, err := newBase(AlgoBrute, g, gr, opts)
	if err != nil {
		return nil, err
	}

	return &Brute{base: b}, nil
}

// Solve runs an independent single-source closure for every chunk vertex and
// copies row v of each M[A] into the result.
func (s *Brute) Solve(chunk []int) (*Result, error) {
	if err := ValidateChunk(chunk, s.n); err != nil {
		return nil, err
	}
	if len(chunk) == 0 {
		return emptyResult(), nil
	}
	start := time.Now()

	seeds, err := s.seed()
	if err != nil {
		return nil, err
	}
	out := make([]*boolmat.Matrix, len(seeds))
	for i := range out {
		if out[i], err = boolmat.NewMatrix(s.n, s.n); err != nil {
			return nil, err
		}
	}

	// Working matrices are reused across sources. A source only writes rows
	// inside its final src sets, so only those rows are restored from seeds.
	ms := make([]*boolmat.Matrix, len(seeds))
	for i := range ms {
		ms[i] = seeds[i].Clone()
	}

	var rounds int
	for _, v := range chunk {
		src, r, err := s.closure(v, ms)
		if err != nil {
			return nil, err
		}
		rounds += r
		for i := range ms {
			row, _ := ms[i].Row(v) // v validated
			if _, err = out[i].OrRow(v, row); err != nil {
				return nil, err
			}
			if err = ms[i].CopyRows(seeds[i], src[i]); err != nil {
				return nil, err
			}
		}
	}

	res, err := s.collect(chunk, out)
	if err != nil {
		return nil, err
	}
	s.done(chunk, rounds, start)

	return res, nil
}

// closure runs the single-source fixpoint from vertex v over ms and returns
// the final source sets with the number of rounds.
//
// src[X] holds the rows of M[X] that must be complete. For A -> B C:
//
//	src[B] ⊇ src[A]
//	src[C] ⊇ ∪ M[B][i] for i in src[A]
//	M[A][i] |= M[B][i]·M[C] for i in src[A]
func (s *Brute) closure(v int, ms []*boolmat.Matrix) ([]boolmat.Vector, int, error) {
	mask, err := boolmat.VectorOf(s.n, v)
	if err != nil {
		return nil, 0, err
	}
	src := s.sources(mask)
	prod, err := boolmat.NewVector(s.n)
	if err != nil {
		return nil, 0, err
	}

	var round int
	for changed := true; changed; {
		round++
		changed = false
		for _, r := range s.rules {
			ch, err := src[r.Left].Or(src[r.Head])
			if err != nil {
				return nil, round, err
			}
			changed = changed || ch

			if ch, err = boolmat.RowUnion(ms[r.Left], src[r.Head], src[r.Right]); err != nil {
				return nil, round, err
			}
			changed = changed || ch

			for _, i := range src[r.Head].Indices() {
				left, _ := ms[r.Left].Row(i) // i < n
				prod.Reset()
				if _, err = boolmat.MulVec(left, ms[r.Right], prod); err != nil {
					return nil, round, err
				}
				if ch, err = ms[r.Head].OrRow(i, prod); err != nil {
					return nil, round, err
				}
				changed = changed || ch
			}
		}
		s.observe(round, changed, ms)
	}

	return src, round, nil
}
