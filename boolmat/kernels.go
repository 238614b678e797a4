// SPDX-License-Identifier: MIT
// Package: boolmat
//
// Purpose:
//   - Boolean-semiring products used by the CFPQ fixpoint solvers.
//   - Row-by-row (Gustavson) formulation: row i of A·B is the OR of rows k of B
//     for every set column k of A[i]. Only stored rows and set columns are
//     visited, so cost is O(sum over k in A[i] of nnz(B[k])) per row.
//
// Aliasing:
//   - The accumulate-in-place kernels tolerate dst aliasing a or b. The columns
//     of A[i] are snapshotted before they are walked, so the result is a
//     superset of the non-aliased product and never contains an entry the
//     semiring could not derive. Fixpoint callers rely only on that monotone
//     property.

package boolmat

import "github.com/RoaringBitmap/roaring"

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opMulMasked = "MulMaskedInto"
	opMulVec    = "MulVec"
	opRowUnion  = "RowUnion"
)

// orRowProduct performs dst |= a·b where a is one row (a column set over
// b's rows). dst is fetched lazily so an empty product allocates nothing.
// Reports whether dst changed.
func orRowProduct(dst func() *roaring.Bitmap, a *roaring.Bitmap, b *Matrix) bool {
	if a == nil || a.IsEmpty() || len(b.rows) == 0 {
		return false
	}
	var (
		changed bool
		acc     *roaring.Bitmap
	)
	for _, k := range a.ToArray() {
		bk, ok := b.rows[int(k)]
		if !ok || bk.IsEmpty() {
			continue
		}
		if acc == nil {
			acc = dst()
		}
		if orInto(acc, bk) {
			changed = true
		}
	}

	return changed
}

// validateProduct checks the shared preconditions of the product kernels.
func validateProduct(tag string, a, b *Matrix) error {
	if a == nil || b == nil {
		return boolmatErrorf(tag, ErrNilMatrix)
	}
	if a.c != b.r {
		return boolmatErrorf(tag, ErrDimensionMismatch)
	}

	return nil
}

// Mul returns the boolean product a·b:
//
//	out[i,j] = OR_k (a[i,k] AND b[k,j]).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: O(sum over (i,k) in a of nnz(b[k])).
func Mul(a, b *Matrix) (*Matrix, error) {
	if err := validateProduct(opMul, a, b); err != nil {
		return nil, err
	}
	out, err := NewMatrix(a.r, b.c)
	if err != nil {
		return nil, boolmatErrorf(opMul, err)
	}
	for i, ai := range a.rows {
		i := i
		orRowProduct(func() *roaring.Bitmap { return out.rowFor(i) }, ai, b)
	}

	return out, nil
}

// MulMaskedInto accumulates dst[i] |= a[i]·b for every row i set in mask and
// reports whether dst changed. Rows outside mask are neither read nor written.
//
// Contract:
//   - a.Cols == b.Rows; dst is a.Rows × b.Cols; mask.Len() == a.Rows.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(sum over masked rows i of sum over k in a[i] of nnz(b[k])).
func MulMaskedInto(dst, a *Matrix, mask Vector, b *Matrix) (bool, error) {
	if err := validateProduct(opMulMasked, a, b); err != nil {
		return false, err
	}
	if dst == nil {
		return false, boolmatErrorf(opMulMasked, ErrNilMatrix)
	}
	if dst.r != a.r || dst.c != b.c || mask.n != a.r {
		return false, boolmatErrorf(opMulMasked, ErrDimensionMismatch)
	}
	if len(a.rows) == 0 || len(b.rows) == 0 {
		return false, nil
	}

	var changed bool
	mask.ForEach(func(i int) {
		ai, ok := a.rows[i]
		if !ok {
			return
		}
		if orRowProduct(func() *roaring.Bitmap { return dst.rowFor(i) }, ai, b) {
			changed = true
		}
	})

	return changed, nil
}

// MulVec accumulates dst |= v·m (row-vector times full matrix) and reports
// whether dst changed.
//
// Contract: v.Len() == m.Rows(); dst.Len() == m.Cols().
func MulVec(v Vector, m *Matrix, dst Vector) (bool, error) {
	if m == nil {
		return false, boolmatErrorf(opMulVec, ErrNilMatrix)
	}
	if v.n != m.r || dst.n != m.c {
		return false, boolmatErrorf(opMulVec, ErrDimensionMismatch)
	}

	return orRowProduct(func() *roaring.Bitmap { return dst.bm }, v.bm, m), nil
}

// RowUnion accumulates dst |= OR of rows a[i] for every i set in mask and
// reports whether dst changed. With a as a reachability relation this is the
// image of the set mask.
//
// Contract: mask.Len() == a.Rows(); dst.Len() == a.Cols().
func RowUnion(a *Matrix, mask Vector, dst Vector) (bool, error) {
	if a == nil {
		return false, boolmatErrorf(opRowUnion, ErrNilMatrix)
	}
	if mask.n != a.r || dst.n != a.c {
		return false, boolmatErrorf(opRowUnion, ErrDimensionMismatch)
	}
	if len(a.rows) == 0 {
		return false, nil
	}

	var changed bool
	mask.ForEach(func(i int) {
		if orInto(dst.bm, a.rows[i]) {
			changed = true
		}
	})

	return changed, nil
}
