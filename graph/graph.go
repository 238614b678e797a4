// SPDX-License-Identifier: MIT
// Package: graph
//
// graph.go - construction and read-only accessors of LabeledGraph.
//
// Contract:
//   - n >= 0; every edge endpoint in [0,n); every label non-empty.
//   - Parallel identical edges collapse into one matrix entry.
//   - Terminal matrices never leave the package by pointer; readers get
//     clones or OR the matrix into their own buffer.

package graph

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cfpq/boolmat"
)

const methodNew = "New"

// New builds a LabeledGraph over n vertices from edges.
// Returns an error wrapping ErrMalformedGraph on n outside [0, boolmat.MaxDim],
// an endpoint outside [0,n) or an empty label.
// Complexity: O(|edges|); matrices store only the rows that carry edges.
func New(n int, edges []Edge) (*LabeledGraph, error) {
	if n < 0 || uint64(n) > boolmat.MaxDim {
		return nil, fmt.Errorf("%s: n=%d outside [0,%d]: %w", methodNew, n, boolmat.MaxDim, ErrMalformedGraph)
	}

	g := &LabeledGraph{
		n:         n,
		terminals: make(map[string]*boolmat.Matrix),
	}
	for i, e := range edges {
		if e.Label == "" {
			return nil, fmt.Errorf("%s: edge %d: empty label: %w", methodNew, i, ErrMalformedGraph)
		}
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, fmt.Errorf("%s: edge %d (%d,%s,%d) outside [0,%d): %w",
				methodNew, i, e.From, e.Label, e.To, n, ErrMalformedGraph)
		}
		m, ok := g.terminals[e.Label]
		if !ok {
			var err error
			if m, err = boolmat.NewMatrix(n, n); err != nil {
				return nil, fmt.Errorf("%s: %v: %w", methodNew, err, ErrMalformedGraph)
			}
			g.terminals[e.Label] = m
			g.labels = append(g.labels, e.Label)
		}
		if seen, _ := m.At(e.From, e.To); seen {
			continue
		}
		_ = m.Set(e.From, e.To, true) // bounds checked above
		g.edges++
	}
	sort.Strings(g.labels)

	return g, nil
}

// MatricesSize returns n, the order of every matrix derived from g.
func (g *LabeledGraph) MatricesSize() int { return g.n }

// EdgeCount returns the number of distinct labeled edges.
func (g *LabeledGraph) EdgeCount() int { return g.edges }

// Labels returns the terminal alphabet observed on edges, sorted.
func (g *LabeledGraph) Labels() []string {
	return append([]string(nil), g.labels...)
}

// HasLabel reports whether any edge carries label.
func (g *LabeledGraph) HasLabel(label string) bool {
	_, ok := g.terminals[label]
	return ok
}

// Terminal returns a copy of the adjacency matrix of label.
// The second result is false when no edge carries label.
func (g *LabeledGraph) Terminal(label string) (*boolmat.Matrix, bool) {
	m, ok := g.terminals[label]
	if !ok {
		return nil, false
	}

	return m.Clone(), true
}

// OrTerminalInto performs dst |= T[label] and reports whether dst changed.
// A label absent from the graph is an all-false matrix and changes nothing.
// dst must be n×n.
func (g *LabeledGraph) OrTerminalInto(label string, dst *boolmat.Matrix) (bool, error) {
	m, ok := g.terminals[label]
	if !ok {
		return false, nil
	}

	return dst.Or(m)
}

// Edges returns every edge sorted by (label, from, to).
func (g *LabeledGraph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, l := range g.labels {
		m := g.terminals[l]
		m.NonZeroRows().ForEach(func(i int) {
			row, _ := m.Row(i) // i < n
			row.ForEach(func(j int) {
				out = append(out, Edge{From: i, Label: l, To: j})
			})
		})
	}

	return out
}

// FullRange returns the chunk [0, 1, ..., n-1].
func (g *LabeledGraph) FullRange() []int {
	out := make([]int, g.n)
	for i := range out {
		out[i] = i
	}

	return out
}

// Chunkify partitions 0..n-1 into consecutive chunks of size vertices; the
// last chunk may be shorter. An empty graph yields no chunks.
// Returns ErrInvalidChunkSize if size < 1.
func (g *LabeledGraph) Chunkify(size int) ([][]int, error) {
	if size < 1 {
		return nil, fmt.Errorf("Chunkify: size=%d: %w", size, ErrInvalidChunkSize)
	}
	out := make([][]int, 0, (g.n+size-1)/size)
	for lo := 0; lo < g.n; lo += size {
		hi := lo + size
		if hi > g.n {
			hi = g.n
		}
		chunk := make([]int, hi-lo)
		for k := range chunk {
			chunk[k] = lo + k
		}
		out = append(out, chunk)
	}

	return out, nil
}
