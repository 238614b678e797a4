// SPDX-License-Identifier: MIT

package cfpq

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cfpq/boolmat"
)

// Result maps every nonterminal to a len(Chunk())×n matrix whose row r holds
// the targets reachable from source Chunk()[r]. A Result is never mutated
// after Solve returns it.
type Result struct {
	chunk []int
	names []string
	mats  map[string]*boolmat.Matrix
}

// Pair is one derived (source, target) entry.
type Pair struct {
	From, To int
}

// Chunk returns a copy of the source vertices in row order.
func (r *Result) Chunk() []int {
	return append([]int(nil), r.chunk...)
}

// Nonterminals returns the nonterminals present, in grammar declaration order.
// An empty-chunk Result has none.
func (r *Result) Nonterminals() []string {
	return append([]string(nil), r.names...)
}

// Matrix returns a copy of the matrix of nonterminal name.
// The second result is false if the name is absent.
func (r *Result) Matrix(name string) (*boolmat.Matrix, bool) {
	m, ok := r.mats[name]
	if !ok {
		return nil, false
	}

	return m.Clone(), true
}

// Reachable reports whether target is derivable from source under name.
// Unknown names and vertices outside the result report false.
func (r *Result) Reachable(name string, source, target int) bool {
	m, ok := r.mats[name]
	if !ok {
		return false
	}
	for row, v := range r.chunk {
		if v == source {
			hit, err := m.At(row, target)
			return err == nil && hit
		}
	}

	return false
}

// Pairs lists the (source, target) entries of name, ordered by row then target.
func (r *Result) Pairs(name string) []Pair {
	m, ok := r.mats[name]
	if !ok {
		return nil
	}
	var out []Pair
	for row, from := range r.chunk {
		v, _ := m.Row(row) // row < len(chunk)
		v.ForEach(func(to int) { out = append(out, Pair{From: from, To: to}) })
	}

	return out
}

// Nnz returns the number of true entries across all nonterminals.
func (r *Result) Nnz() int {
	var c int
	for _, m := range r.mats {
		c += m.Nnz()
	}

	return c
}

// Extract returns the rows of r whose source vertex is in indices, in
// indices order. Returns ErrInvalidSubset if some index is not a source of r
// or repeats.
func (r *Result) Extract(indices []int) (*Result, error) {
	if len(indices) == 0 {
		return emptyResult(), nil
	}
	rowOf := make(map[int]int, len(r.chunk))
	for row, v := range r.chunk {
		rowOf[v] = row
	}
	rows := make([]int, len(indices))
	seen := make(map[int]struct{}, len(indices))
	for pos, v := range indices {
		row, ok := rowOf[v]
		if !ok {
			return nil, fmt.Errorf("Extract: vertex %d not in result: %w", v, ErrInvalidSubset)
		}
		if _, dup := seen[v]; dup {
			return nil, fmt.Errorf("Extract: indices[%d]=%d repeats: %w", pos, v, ErrInvalidSubset)
		}
		seen[v] = struct{}{}
		rows[pos] = row
	}

	out := &Result{
		chunk: append([]int(nil), indices...),
		names: append([]string(nil), r.names...),
		mats:  make(map[string]*boolmat.Matrix, len(r.mats)),
	}
	for name, m := range r.mats {
		sub, err := boolmat.ExtractRows(m, rows)
		if err != nil {
			return nil, err
		}
		out.mats[name] = sub
	}

	return out, nil
}

// Equal reports whether both results cover the same chunk in the same order
// and hold identical matrices for the same nonterminals.
func (r *Result) Equal(o *Result) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.chunk) != len(o.chunk) || len(r.mats) != len(o.mats) {
		return false
	}
	for i := range r.chunk {
		if r.chunk[i] != o.chunk[i] {
			return false
		}
	}
	for name, m := range r.mats {
		if !boolmat.Equal(m, o.mats[name]) {
			return false
		}
	}

	return true
}

// Diff lists the nonterminals whose matrices differ between r and o, sorted.
// A nonterminal present on one side only is reported as differing; a nil
// Result counts as having no nonterminals.
func (r *Result) Diff(o *Result) []string {
	if r == nil {
		r = emptyResult()
	}
	if o == nil {
		o = emptyResult()
	}
	seen := make(map[string]struct{})
	var out []string
	for name, m := range r.mats {
		seen[name] = struct{}{}
		if !boolmat.Equal(m, o.mats[name]) {
			out = append(out, name)
		}
	}
	for name := range o.mats {
		if _, ok := seen[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)

	return out
}
