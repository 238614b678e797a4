// SPDX-License-Identifier: MIT

package cfpq

import (
	"time"

	"github.com/katalvlaran/cfpq/boolmat"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// Smart solves the whole chunk at once with masked matrix-matrix products.
//
// Every nonterminal carries two version counters, one for its source set and
// one for its matrix. A production A -> B C is skipped in a round when
// (ver src[A], ver M[B], ver M[C]) equals the key it was last evaluated with.
type Smart struct{ base }

var _ Solver = (*Smart)(nil)

// NewSmart validates inputs and options and returns a Smart solver.
// Errors: ErrNilGraph, ErrNilGrammar, ErrOptionViolation.
func NewSmart(g *graph.LabeledGraph, gr *grammar.Grammar, opts ...Option) (*Smart, error) {
	b, err := newBase(AlgoSmart, g, gr, opts)
	if err != nil {
		return nil, err
	}

	return &Smart{base: b}, nil
}

// ruleKey is the input version tuple a production was evaluated with.
type ruleKey [3]int

// Solve runs the chunk-wide single-source fixpoint.
func (s *Smart) Solve(chunk []int) (*Result, error) {
	if err := ValidateChunk(chunk, s.n); err != nil {
		return nil, err
	}
	if len(chunk) == 0 {
		return emptyResult(), nil
	}
	start := time.Now()

	ms, err := s.seed()
	if err != nil {
		return nil, err
	}
	src := s.sources(s.chunkMask(chunk))

	var (
		k     = len(ms)
		sVer  = make([]int, k)
		mVer  = make([]int, k)
		last  = make([]ruleKey, len(s.rules))
		round int
	)
	for i := range last {
		last[i] = ruleKey{-1, -1, -1}
	}

	for changed := true; changed; {
		round++
		changed = false
		for ri, r := range s.rules {
			key := ruleKey{sVer[r.Head], mVer[r.Left], mVer[r.Right]}
			if key == last[ri] {
				continue
			}
			last[ri] = key // recorded before the outputs move the versions

			ch, err := src[r.Left].Or(src[r.Head])
			if err != nil {
				return nil, err
			}
			if ch {
				sVer[r.Left]++
				changed = true
			}

			if ch, err = boolmat.RowUnion(ms[r.Left], src[r.Head], src[r.Right]); err != nil {
				return nil, err
			}
			if ch {
				sVer[r.Right]++
				changed = true
			}

			if ch, err = boolmat.MulMaskedInto(ms[r.Head], ms[r.Left], src[r.Head], ms[r.Right]); err != nil {
				return nil, err
			}
			if ch {
				mVer[r.Head]++
				changed = true
			}
		}
		s.observe(round, changed, ms)
	}

	res, err := s.collect(chunk, ms)
	if err != nil {
		return nil, err
	}
	s.done(chunk, round, start)

	return res, nil
}
