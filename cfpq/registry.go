// SPDX-License-Identifier: MIT

package cfpq

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cfpq/boolmat"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// Registry names of the solvers.
const (
	AlgoReference = "reference"
	AlgoBrute     = "brute"
	AlgoSmart     = "smart"
	AlgoOpt       = "opt"
)

type constructor func(*graph.LabeledGraph, *grammar.Grammar, ...Option) (Solver, error)

var registry = map[string]constructor{
	AlgoReference: func(g *graph.LabeledGraph, gr *grammar.Grammar, o ...Option) (Solver, error) {
		return NewReference(g, gr, o...)
	},
	AlgoBrute: func(g *graph.LabeledGraph, gr *grammar.Grammar, o ...Option) (Solver, error) {
		return NewBrute(g, gr, o...)
	},
	AlgoSmart: func(g *graph.LabeledGraph, gr *grammar.Grammar, o ...Option) (Solver, error) {
		return NewSmart(g, gr, o...)
	},
	AlgoOpt: func(g *graph.LabeledGraph, gr *grammar.Grammar, o ...Option) (Solver, error) {
		return NewOpt(g, gr, o...)
	},
}

// New builds the solver registered under name.
// Errors: ErrUnknownAlgorithm plus those of the concrete constructor.
func New(name string, g *graph.LabeledGraph, gr *grammar.Grammar, opts ...Option) (Solver, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q (known: %v): %w", name, Names(), ErrUnknownAlgorithm)
	}

	return ctor(g, gr, opts...)
}

// Names lists registered solver names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// ExtractMatrix returns the rows of m listed in indices, in that order, with
// all columns. Returns ErrInvalidSubset for an index outside m.
func ExtractMatrix(indices []int, m *boolmat.Matrix) (*boolmat.Matrix, error) {
	out, err := boolmat.ExtractRows(m, indices)
	if err != nil {
		return nil, fmt.Errorf("ExtractMatrix: %v: %w", err, ErrInvalidSubset)
	}

	return out, nil
}

// MatricesEqual reports whether a and b match in shape and every entry.
func MatricesEqual(a, b *boolmat.Matrix) bool {
	return boolmat.Equal(a, b)
}
