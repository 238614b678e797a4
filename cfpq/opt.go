// SPDX-License-Identifier: MIT

package cfpq

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/cfpq/boolmat"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// Opt is Smart with semi-naive rounds and parallel evaluation.
//
// A round reads the state left by the previous one (M, src) together with
// what that round added (dM, dSrc) and only multiplies combinations that
// contain a delta:
//
//	rows in dSrc[A]: M[B]·M[C]
//	rows in src[A]:  dM[B]·M[C] ∪ M[B]·dM[C]
//	src[C] gains  ∪ M[B][i], i ∈ dSrc[A]  and  ∪ dM[B][i], i ∈ src[A]
//	src[B] gains  dSrc[A]
//
// Productions are grouped by head; each group writes a private buffer, the
// groups run concurrently (at most Workers at a time), and after the barrier
// the buffers are merged sequentially into the next deltas. The fixpoint is
// reached when a merge adds nothing.
type Opt struct{ base }

var _ Solver = (*Opt)(nil)

// NewOpt validates inputs and options and returns an Opt solver.
// Errors: ErrNilGraph, ErrNilGrammar, ErrOptionViolation.
func NewOpt(g *graph.LabeledGraph, gr *grammar.Grammar, opts ...Option) (*Opt, error) {
	b, err := newBase(AlgoOpt, g, gr, opts)
	if err != nil {
		return nil, err
	}

	return &Opt{base: b}, nil
}

// headGroup is the unit of parallel work: all productions sharing one head.
type headGroup struct {
	head  int
	rules []grammar.BinaryRule
	buf   *boolmat.Matrix  // new rows of M[head]
	srcC  []boolmat.Vector // per rule: new sources for the right symbol
}

// optState is the per-Solve working set.
type optState struct {
	ms, dms   []*boolmat.Matrix
	src, dSrc []boolmat.Vector
	nextDM    []*boolmat.Matrix
	nextDSrc  []boolmat.Vector
	dmEmpty   []bool
	dSrcEmpty []bool
	groups    []*headGroup
}

// Solve runs the semi-naive parallel fixpoint.
func (s *Opt) Solve(chunk []int) (*Result, error) {
	if err := ValidateChunk(chunk, s.n); err != nil {
		return nil, err
	}
	if len(chunk) == 0 {
		return emptyResult(), nil
	}
	start := time.Now()

	st, err := s.prepare(chunk)
	if err != nil {
		return nil, err
	}

	var round int
	for changed := true; changed; {
		round++
		if err = s.evaluate(st); err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		if changed, err = s.merge(st); err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		s.observe(round, changed, st.ms)
	}

	res, err := s.collect(chunk, st.ms)
	if err != nil {
		return nil, err
	}
	s.done(chunk, round, start)

	return res, nil
}

// prepare seeds M and treats every seeded entry and every chunk row as new.
func (s *Opt) prepare(chunk []int) (*optState, error) {
	ms, err := s.seed()
	if err != nil {
		return nil, err
	}
	k := len(ms)
	mask := s.chunkMask(chunk)
	st := &optState{
		ms:        ms,
		dms:       make([]*boolmat.Matrix, k),
		src:       s.sources(mask),
		dSrc:      s.sources(mask),
		nextDM:    make([]*boolmat.Matrix, k),
		nextDSrc:  s.sources(mask),
		dmEmpty:   make([]bool, k),
		dSrcEmpty: make([]bool, k),
	}
	for i := 0; i < k; i++ {
		st.dms[i] = ms[i].Clone()
		if st.nextDM[i], err = boolmat.NewMatrix(s.n, s.n); err != nil {
			return nil, err
		}
		st.nextDSrc[i].Reset()
	}

	byHead := make(map[int]*headGroup)
	for _, r := range s.rules {
		hg, ok := byHead[r.Head]
		if !ok {
			buf, err := boolmat.NewMatrix(s.n, s.n)
			if err != nil {
				return nil, err
			}
			hg = &headGroup{head: r.Head, buf: buf}
			byHead[r.Head] = hg
			st.groups = append(st.groups, hg)
		}
		v, err := boolmat.NewVector(s.n)
		if err != nil {
			return nil, err
		}
		hg.rules = append(hg.rules, r)
		hg.srcC = append(hg.srcC, v)
	}

	return st, nil
}

// evaluate is the parallel phase. Shared state is only read; each group
// writes its own buffers.
func (s *Opt) evaluate(st *optState) error {
	for i := range st.ms {
		st.dmEmpty[i] = st.dms[i].IsZero()
		st.dSrcEmpty[i] = st.dSrc[i].IsZero()
	}

	var eg errgroup.Group
	eg.SetLimit(s.opts.Workers)
	for _, hg := range st.groups {
		hg := hg
		eg.Go(func() error { return s.evalGroup(st, hg) })
	}

	return eg.Wait()
}

// evalGroup computes the delta products of every production of one head.
func (s *Opt) evalGroup(st *optState, hg *headGroup) error {
	// Rows written last round lie inside src[head], which only grows.
	if err := hg.buf.ResetRows(st.src[hg.head]); err != nil {
		return err
	}
	for ri, r := range hg.rules {
		srcC := hg.srcC[ri]
		srcC.Reset()

		a, b, c := r.Head, r.Left, r.Right
		if !st.dSrcEmpty[a] {
			if _, err := boolmat.MulMaskedInto(hg.buf, st.ms[b], st.dSrc[a], st.ms[c]); err != nil {
				return err
			}
			if _, err := boolmat.RowUnion(st.ms[b], st.dSrc[a], srcC); err != nil {
				return err
			}
		}
		if !st.dmEmpty[b] {
			if _, err := boolmat.MulMaskedInto(hg.buf, st.dms[b], st.src[a], st.ms[c]); err != nil {
				return err
			}
			if _, err := boolmat.RowUnion(st.dms[b], st.src[a], srcC); err != nil {
				return err
			}
		}
		if !st.dmEmpty[c] {
			if _, err := boolmat.MulMaskedInto(hg.buf, st.ms[b], st.src[a], st.dms[c]); err != nil {
				return err
			}
		}
	}

	return nil
}

// merge folds the group buffers into M and src, records what was new as the
// next deltas and swaps them in. Reports whether anything was added.
func (s *Opt) merge(st *optState) (bool, error) {
	for i := range st.nextDM {
		st.nextDM[i].Reset()
		st.nextDSrc[i].Reset()
	}

	var changed bool
	for _, hg := range st.groups {
		ch, err := st.ms[hg.head].OrTrack(hg.buf, st.nextDM[hg.head])
		if err != nil {
			return false, err
		}
		changed = changed || ch
		for ri, r := range hg.rules {
			if !st.dSrcEmpty[r.Head] {
				if ch, err = st.src[r.Left].OrTrack(st.dSrc[r.Head], st.nextDSrc[r.Left]); err != nil {
					return false, err
				}
				changed = changed || ch
			}
			if ch, err = st.src[r.Right].OrTrack(hg.srcC[ri], st.nextDSrc[r.Right]); err != nil {
				return false, err
			}
			changed = changed || ch
		}
	}

	st.dms, st.nextDM = st.nextDM, st.dms
	st.dSrc, st.nextDSrc = st.nextDSrc, st.dSrc

	return changed, nil
}
