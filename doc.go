// Package cfpq is the module root of a boolean-matrix engine for
// Context-Free Path Querying: given an edge-labeled graph and a grammar in
// Chomsky Normal Form, find every vertex pair joined by a path whose label
// word the grammar derives.
//
// What is inside?
//
//   - A sparse boolean matrix library (roaring-bitmap rows) with
//     Gustavson-style products
//   - A CNF grammar model and a labeled-graph model with text/gzip loaders
//   - An all-pairs reference fixpoint and three single-source solvers
//     (Brute, Smart, Opt) that must agree with it on every vertex subset
//   - A timing and verification harness with CSV and Prometheus output
//
// Packages:
//
//	boolmat/  - Vector, Matrix, Mul/MulMaskedInto/MulVec/RowUnion, ExtractRows, Equal
//	grammar/  - Grammar, Build, Parse, ParseFile
//	graph/    - LabeledGraph, New, Parse, ParseFile, Chunkify, RandomSparse
//	cfpq/     - Solver, Reference, Brute, Smart, Opt, Result, New
//	corpus/   - YAML manifest of named (graph, grammar) cases
//	bench/    - Runner.Bench, Runner.Verify, WriteCSV, Metrics
//	config/   - viper-backed settings for the command
//	cmd/cfpq/ - the cfpq command: solve, verify, bench
//
// Quick start:
//
//	g, _ := graph.ParseFile("skos.txt")
//	gr, _ := grammar.ParseFile("an_bn.cnf")
//	s, _ := cfpq.NewOpt(g, gr)
//	res, _ := s.Solve([]int{0, 1, 2})
//	for _, p := range res.Pairs(gr.Start()) {
//		fmt.Println(p.From, p.To)
//	}
package cfpq
