// SPDX-License-Identifier: MIT
// Package: graph
//
// generate.go - RandomSparse(n, p, labels, rng) labeled graph sampler.
//
// Canonical model:
//   - Erdős–Rényi-like: every ordered pair (i,j), self-loops included, gets
//     each label independently with probability p.
//
// Contract:
//   - n ≥ 0, 0 ≤ p ≤ 1, at least one non-empty label.
//   - rng is required when 0 < p < 1; p ∈ {0,1} is deterministic without it.
//   - violations wrap ErrMalformedGraph.
//
// Determinism:
//   - Trial order is i asc, j asc, label in argument order; a fixed seed gives
//     a fixed graph.

package graph

import (
	"fmt"
	"math/rand"
)

const (
	methodRandomSparse = "RandomSparse"
	probMin            = 0.0
	probMax            = 1.0
)

// RandomSparse samples a labeled graph over n vertices where each (i, label, j)
// edge is present independently with probability p.
func RandomSparse(n int, p float64, labels []string, rng *rand.Rand) (*LabeledGraph, error) {
	// 1) Validate parameters early; no partial graph on failure.
	if p < probMin || p > probMax {
		return nil, fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
			methodRandomSparse, p, probMin, probMax, ErrMalformedGraph)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%s: no labels: %w", methodRandomSparse, ErrMalformedGraph)
	}
	if rng == nil && p > probMin && p < probMax {
		return nil, fmt.Errorf("%s: rng is required for p=%.6f: %w", methodRandomSparse, p, ErrMalformedGraph)
	}

	// 2) Bernoulli trials in a stable order.
	var edges []Edge
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			for _, l := range labels {
				if rng == nil {
					if p == probMax {
						edges = append(edges, Edge{From: i, Label: l, To: j})
					}
					continue
				}
				if rng.Float64() < p {
					edges = append(edges, Edge{From: i, Label: l, To: j})
				}
			}
		}
	}

	// 3) New validates labels and endpoints once more.
	return New(n, edges)
}
