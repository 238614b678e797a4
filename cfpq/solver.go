// SPDX-License-Identifier: MIT

package cfpq

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/cfpq/boolmat"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// Solver computes nonterminal reachability restricted to the rows of a chunk
// of source vertices.
//
// Solve returns, for every nonterminal A, a len(chunk)×n matrix whose row r is
// row chunk[r] of the all-pairs least fixpoint M[A]. An empty chunk yields an
// empty Result. Errors: ErrInvalidSubset.
type Solver interface {
	Name() string
	Solve(chunk []int) (*Result, error)
}

// base holds what every solver shares: the read-only inputs and options.
type base struct {
	name  string
	g     *graph.LabeledGraph
	gr    *grammar.Grammar
	n     int
	rules []grammar.BinaryRule
	opts  Options
	log   *zap.Logger
	debug bool
}

func newBase(name string, g *graph.LabeledGraph, gr *grammar.Grammar, opts []Option) (base, error) {
	if g == nil {
		return base{}, ErrNilGraph
	}
	if gr == nil {
		return base{}, ErrNilGrammar
	}
	o, err := gatherOptions(opts)
	if err != nil {
		return base{}, err
	}
	log := o.Logger.With(zap.String("algo", name))

	return base{
		name:  name,
		g:     g,
		gr:    gr,
		n:     g.MatricesSize(),
		rules: gr.BinaryRules(),
		opts:  o,
		log:   log,
		debug: log.Core().Enabled(zap.DebugLevel),
	}, nil
}

// Name returns the registry name of the solver.
func (b *base) Name() string { return b.name }

// ValidateChunk checks that every index lies in [0,n) and none repeats.
// Returns ErrInvalidSubset naming the first offending position.
func ValidateChunk(chunk []int, n int) error {
	seen := make(map[int]int, len(chunk))
	for pos, v := range chunk {
		if v < 0 || v >= n {
			return fmt.Errorf("chunk[%d]=%d outside [0,%d): %w", pos, v, n, ErrInvalidSubset)
		}
		if first, dup := seen[v]; dup {
			return fmt.Errorf("chunk[%d]=%d repeats chunk[%d]: %w", pos, v, first, ErrInvalidSubset)
		}
		seen[v] = pos
	}

	return nil
}

// chunkMask returns the chunk as an n-bit vector. The chunk is validated.
func (b *base) chunkMask(chunk []int) boolmat.Vector {
	v, _ := boolmat.VectorOf(b.n, chunk...)

	return v
}

// seed builds one sparse n×n matrix per nonterminal holding the unit-rule and
// nullable entries.
func (b *base) seed() ([]*boolmat.Matrix, error) {
	ms := make([]*boolmat.Matrix, b.gr.NumNonterminals())
	for i := range ms {
		m, err := boolmat.NewMatrix(b.n, b.n)
		if err != nil {
			return nil, err
		}
		if b.gr.NullableIndex(i) {
			m.SetDiagonal()
		}
		ms[i] = m
	}
	for _, u := range b.gr.UnitRules() {
		if _, err := b.g.OrTerminalInto(u.Terminal, ms[u.Head]); err != nil {
			return nil, fmt.Errorf("seed %s -> %s: %w", b.gr.Nonterminal(u.Head), u.Terminal, err)
		}
	}

	return ms, nil
}

// sources returns one copy of mask per nonterminal.
func (b *base) sources(mask boolmat.Vector) []boolmat.Vector {
	src := make([]boolmat.Vector, b.gr.NumNonterminals())
	for i := range src {
		src[i] = mask.Clone()
	}

	return src
}

// totalNnz sums true entries over ms.
func totalNnz(ms []*boolmat.Matrix) int {
	var c int
	for _, m := range ms {
		c += m.Nnz()
	}

	return c
}

// observe reports a finished round to the hook and the debug log.
// The true-count is only computed when someone consumes it.
func (b *base) observe(round int, changed bool, ms []*boolmat.Matrix) {
	if b.opts.OnRound == nil && !b.debug {
		return
	}
	nnz := totalNnz(ms)
	if b.opts.OnRound != nil {
		b.opts.OnRound(round, nnz)
	}
	b.log.Debug("round",
		zap.Int("round", round),
		zap.Int("nnz", nnz),
		zap.Bool("changed", changed))
}

// emptyResult is returned for a zero-length chunk without any iteration.
func emptyResult() *Result {
	return &Result{mats: map[string]*boolmat.Matrix{}}
}

// collect projects the rows chunk[r] of every nonterminal matrix into a Result.
func (b *base) collect(chunk []int, ms []*boolmat.Matrix) (*Result, error) {
	res := &Result{
		chunk: append([]int(nil), chunk...),
		names: b.gr.Nonterminals(),
		mats:  make(map[string]*boolmat.Matrix, len(ms)),
	}
	for i, m := range ms {
		rows, err := boolmat.ExtractRows(m, chunk)
		if err != nil {
			return nil, err
		}
		res.mats[b.gr.Nonterminal(i)] = rows
	}

	return res, nil
}

// done logs the end of one Solve call.
func (b *base) done(chunk []int, rounds int, start time.Time) {
	b.log.Debug("solved",
		zap.Int("chunk_size", len(chunk)),
		zap.Int("rounds", rounds),
		zap.Duration("elapsed", time.Since(start)))
}
