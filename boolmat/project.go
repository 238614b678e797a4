// SPDX-License-Identifier: MIT
// Package: boolmat
//
// Purpose:
//   - Projection of a matrix onto a vertex subset and exact equality.
//   - Used to state the single-source equivalence contract; none of the
//     solving kernels call these.

package boolmat

import "fmt"

const (
	opExtractRows = "ExtractRows"
	opExtract     = "Extract"
)

// ExtractRows returns a new len(indices)×m.Cols() matrix whose row r is a copy
// of m's row indices[r]. Order of indices is preserved; repeats are copied twice.
//
// Errors: ErrNilMatrix, ErrOutOfRange (index outside [0,m.Rows())).
// Complexity: O(len(indices) + nnz of the copied rows).
func ExtractRows(m *Matrix, indices []int) (*Matrix, error) {
	if m == nil {
		return nil, boolmatErrorf(opExtractRows, ErrNilMatrix)
	}
	out, err := NewMatrix(len(indices), m.c)
	if err != nil {
		return nil, boolmatErrorf(opExtractRows, err)
	}
	for r, i := range indices {
		if i < 0 || i >= m.r {
			return nil, boolmatErrorf(opExtractRows, fmt.Errorf("row %d: %w", i, ErrOutOfRange))
		}
		if bm, ok := m.rows[i]; ok && !bm.IsEmpty() {
			out.rows[r] = bm.Clone()
		}
	}

	return out, nil
}

// Extract returns the len(indices)×len(indices) sub-matrix selecting the
// given rows and the same columns, both in indices order.
//
// Errors: ErrNilMatrix, ErrOutOfRange (index outside rows or cols of m).
// Complexity: O(len(indices) + nnz of the selected rows).
func Extract(m *Matrix, indices []int) (*Matrix, error) {
	if m == nil {
		return nil, boolmatErrorf(opExtract, ErrNilMatrix)
	}
	k := len(indices)
	out, err := NewMatrix(k, k)
	if err != nil {
		return nil, boolmatErrorf(opExtract, err)
	}
	for _, i := range indices {
		if i < 0 || i >= m.r || i >= m.c {
			return nil, boolmatErrorf(opExtract, fmt.Errorf("index %d: %w", i, ErrOutOfRange))
		}
	}
	cols := make(map[int][]int, k) // vertex -> output columns
	for c, j := range indices {
		cols[j] = append(cols[j], c)
	}
	for r, i := range indices {
		forEachBit(m.rows[i], func(j int) {
			for _, c := range cols[j] {
				out.rowFor(r).Add(uint32(c))
			}
		})
	}

	return out, nil
}

// Equal reports whether a and b have the same shape and entries.
// Two nil matrices are equal; a nil and a non-nil matrix are not.
func Equal(a, b *Matrix) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	for i, bm := range a.rows {
		if !sameBits(bm, b.rows[i]) {
			return false
		}
	}
	for i, bm := range b.rows {
		if _, ok := a.rows[i]; !ok && !bm.IsEmpty() {
			return false
		}
	}

	return true
}
