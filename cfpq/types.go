// SPDX-License-Identifier: MIT
// Package cfpq provides tunable options and error definitions shared by
// every solver.

package cfpq

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Sentinel errors for solver construction and Solve.
var (
	// ErrNilGraph is returned if a nil graph pointer is passed.
	ErrNilGraph = errors.New("cfpq: graph is nil")

	// ErrNilGrammar is returned if a nil grammar pointer is passed.
	ErrNilGrammar = errors.New("cfpq: grammar is nil")

	// ErrInvalidSubset is returned when a chunk holds an index outside [0,n)
	// or the same index twice, or when Extract asks for a vertex the result
	// does not cover.
	ErrInvalidSubset = errors.New("cfpq: invalid vertex subset")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("cfpq: invalid option supplied")

	// ErrUnknownAlgorithm is returned by New for an unregistered solver name.
	ErrUnknownAlgorithm = errors.New("cfpq: unknown algorithm")
)

// Option configures a solver via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by the
// constructor.
type Option func(*Options)

// Options holds parameters and callbacks shared by all solvers.
type Options struct {
	// Logger receives Debug records per fixpoint round and per Solve.
	Logger *zap.Logger

	// Workers bounds the goroutines Opt uses to evaluate one round.
	// Other solvers ignore it.
	Workers int

	// OnRound, when set, is called after every fixpoint round with the
	// 1-based round number and the total count of true entries across all
	// nonterminal matrices. Brute restarts numbering for each source vertex.
	OnRound func(round, nnz int)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a no-op logger, one worker per
// available CPU and no round hook.
func DefaultOptions() Options {
	return Options{
		Logger:  zap.NewNop(),
		Workers: runtime.GOMAXPROCS(0),
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithWorkers bounds intra-round parallelism of Opt.
//
//	n > 0: at most n goroutines
//	n == 0: one per available CPU
//	n < 0: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, n)
		case n == 0:
			o.Workers = runtime.GOMAXPROCS(0)
		default:
			o.Workers = n
		}
	}
}

// WithRoundHook registers a callback observing every fixpoint round.
func WithRoundHook(fn func(round, nnz int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRound = fn
		}
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Options{}, o.err
	}

	return o, nil
}
