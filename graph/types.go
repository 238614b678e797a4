// Package graph defines LabeledGraph, the fixed-size edge-labeled directed
// graph a CFPQ query runs over.
//
// A LabeledGraph with n vertices owns one n×n boolean adjacency matrix per
// distinct edge label (the terminal alphabet). It is immutable after
// construction, so any number of solvers may read it concurrently.
//
// Errors:
//
//	ErrMalformedGraph    - an edge references a vertex outside [0,n), has an
//	                       empty label, or a text line cannot be parsed.
//	ErrInvalidChunkSize  - Chunkify called with size < 1.
package graph

import (
	"errors"

	"github.com/katalvlaran/cfpq/boolmat"
)

// Sentinel errors for graph construction and introspection.
var (
	// ErrMalformedGraph indicates edge data that cannot form a graph.
	// No partial graph is returned alongside it.
	ErrMalformedGraph = errors.New("graph: malformed graph")

	// ErrInvalidChunkSize indicates a non-positive chunk size.
	ErrInvalidChunkSize = errors.New("graph: chunk size must be >= 1")
)

// Edge is one labeled arc From -> To.
type Edge struct {
	From  int
	Label string
	To    int
}

// LabeledGraph is an immutable vertex space 0..n-1 with one boolean adjacency
// matrix per label.
type LabeledGraph struct {
	n         int
	labels    []string                   // sorted
	terminals map[string]*boolmat.Matrix // label -> n×n adjacency, never mutated after New
	edges     int                        // distinct (from,label,to) triples
}
