// Package boolmat offers sparse boolean matrices and vectors over the
// boolean semiring (OR as addition, AND as multiplication).
//
// The boolmat package provides:
//
//   - Vector: a fixed-length bitset with change-reporting OR, used as a row
//     copy or as a vertex set (sources of a single-source solve).
//   - Matrix: a rows×cols matrix with safe accessors that stores only its
//     non-empty rows, each as a compressed (roaring) bitmap of columns.
//   - Kernels: Mul (full boolean product), MulMaskedInto (product restricted
//     to a row mask, accumulated in place), MulVec (row-vector × matrix) and
//     RowUnion (column support of masked rows).
//   - Projection and equality: ExtractRows, Extract, Equal.
//
// Storage and kernel cost follow the number of true entries, never
// rows×cols, so a single-source query over a large sparse graph stays small.
// Both axes are limited to 2^32.
//
// Matrices are mutable; callers that share one across goroutines must treat
// it as read-only.
package boolmat
