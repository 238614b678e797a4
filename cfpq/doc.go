// Package cfpq solves Context-Free Path Queries with boolean matrices.
//
// Given a LabeledGraph (one adjacency matrix per edge label) and a CNF
// Grammar, a solver computes for every nonterminal A the matrix M[A] with
// M[A][i][j] = true iff some word derivable from A labels a path i→j.
//
// Solvers:
//
//	Reference - the all-pairs least fixpoint: seed M[A] from unit rules and
//	            nullable diagonals, then repeat M[A] |= M[B]·M[C] for every
//	            A -> B C until a round changes nothing. Ground truth.
//	Brute     - single-source, one source vertex at a time, row-vector ×
//	            matrix products; no work shared between sources.
//	Smart     - single-source over the whole chunk at once with masked
//	            matrix-matrix products; a production is skipped in a round
//	            when none of its inputs changed since it last ran.
//	Opt       - Smart plus semi-naive rounds (only newly derived entries are
//	            multiplied) and parallel evaluation of productions with a
//	            barrier per round.
//
// Every solver implements Solver and returns, for a chunk S of source
// vertices, |S|×n matrices whose row r equals row S[r] of the Reference
// fixpoint. Single-source solvers track, per nonterminal, the set of source
// rows that must be complete: rows of S for every nonterminal, plus every
// intermediate vertex k reached through the left half of A -> B C, which
// becomes a source for C.
//
// Graph and grammar are shared read-only; working matrices are allocated per
// Solve call, so one solver value may serve concurrent Solve calls.
package cfpq
