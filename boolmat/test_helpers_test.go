// SPDX-License-Identifier: MIT
// Package boolmat_test contains test helpers.

package boolmat_test

import (
	"testing"

	"github.com/katalvlaran/cfpq/boolmat"
)

// MustMatrix allocates an r×c matrix or fails the test.
func MustMatrix(t testing.TB, r, c int) *boolmat.Matrix {
	t.Helper()
	m, err := boolmat.NewMatrix(r, c)
	if err != nil {
		t.Fatalf("NewMatrix(%d,%d): %v", r, c, err)
	}

	return m
}

// FromRows builds a matrix from strings of '0'/'1', one string per row.
// Every row must have exactly cols characters.
func FromRows(t *testing.T, cols int, rows ...string) *boolmat.Matrix {
	t.Helper()
	m := MustMatrix(t, len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			t.Fatalf("row %d has %d columns, want %d", i, len(r), cols)
		}
		for j := 0; j < cols; j++ {
			if r[j] == '1' {
				if err := m.Set(i, j, true); err != nil {
					t.Fatalf("Set(%d,%d): %v", i, j, err)
				}
			}
		}
	}

	return m
}

// naiveMul is the textbook i-j-k boolean product used as an oracle.
func naiveMul(t *testing.T, a, b *boolmat.Matrix) *boolmat.Matrix {
	t.Helper()
	out := MustMatrix(t, a.Rows(), b.Cols())
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < b.Cols(); j++ {
			for k := 0; k < a.Cols(); k++ {
				x, _ := a.At(i, k)
				y, _ := b.At(k, j)
				if x && y {
					_ = out.Set(i, j, true)
					break
				}
			}
		}
	}

	return out
}
