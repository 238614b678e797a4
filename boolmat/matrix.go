// SPDX-License-Identifier: MIT

// Package boolmat - Matrix storage (sparse rows) & safe accessors.
//
// Purpose:
//   - Keep only non-empty rows, each as a roaring bitmap of column indices,
//     so storage is O(rows touched + nnz) rather than O(rows*cols).
//   - Guarantee safety at the public surface: At/Set/Row return errors instead of panicking.
//   - Dimensions are capped at 2^32 per axis; larger requests fail with
//     ErrInvalidDimensions.
//
// Complexity quicksheet:
//   - NewMatrix: O(1); At/Set: O(log nnz(row)); Clone/Or/Nnz: O(nnz).

package boolmat

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"
	ctxSet   = "Set"
	ctxRow   = "Row"
	ctxOrRow = "OrRow"
	ctxOr    = "Or"
	ctxTrack = "OrTrack"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]"
	_fmtSep      = ", "
)

// matrixErrorf wraps err with a uniform Matrix context and call-site indices.
func matrixErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// Matrix is a sparse boolean matrix stored by rows.
//   - r,c hold dimensions; zero is legal for either (an empty chunk yields 0×n).
//   - rows maps a row index to its column set; absent rows are all-false.
//     A present row may be empty after Set(..., false).
type Matrix struct {
	r, c int
	rows map[int]*roaring.Bitmap
}

var _ fmt.Stringer = (*Matrix)(nil)

// NewMatrix creates an all-false rows×cols matrix.
// Returns ErrInvalidDimensions if either dimension is negative or above 2^32.
// Complexity: O(1); nothing is allocated per row until it is written.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if !validDim(rows) || !validDim(cols) {
		return nil, ErrInvalidDimensions
	}

	return &Matrix{r: rows, c: cols, rows: make(map[int]*roaring.Bitmap)}, nil
}

// Identity returns the n×n matrix with true exactly on the diagonal.
func Identity(n int) (*Matrix, error) {
	m, err := NewMatrix(n, n)
	if err != nil {
		return nil, err
	}
	m.SetDiagonal()

	return m, nil
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Matrix) Shape() (rows, cols int) { return m.r, m.c }

// rowFor returns the bitmap of row i, allocating it on first write.
func (m *Matrix) rowFor(i int) *roaring.Bitmap {
	bm, ok := m.rows[i]
	if !ok {
		bm = roaring.New()
		m.rows[i] = bm
	}

	return bm
}

// Row returns a copy of row i as a Vector of length Cols().
// Returns ErrOutOfRange if i is outside [0,Rows()).
func (m *Matrix) Row(i int) (Vector, error) {
	if i < 0 || i >= m.r {
		return Vector{}, matrixErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return Vector{n: m.c, bm: cloneBitmap(m.rows[i])}, nil
}

// OrRow performs row i |= v and reports whether the row changed.
// Returns ErrOutOfRange for a bad i and ErrDimensionMismatch unless
// v.Len() == Cols().
func (m *Matrix) OrRow(i int, v Vector) (bool, error) {
	if i < 0 || i >= m.r {
		return false, matrixErrorf(ctxOrRow, i, 0, ErrOutOfRange)
	}
	if v.n != m.c {
		return false, matrixErrorf(ctxOrRow, i, 0, ErrDimensionMismatch)
	}
	if v.IsZero() {
		return false, nil
	}

	return orInto(m.rowFor(i), v.bm), nil
}

// At reports entry (row, col) or ErrOutOfRange.
func (m *Matrix) At(row, col int) (bool, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return false, matrixErrorf(ctxAt, row, col, ErrOutOfRange)
	}
	bm, ok := m.rows[row]

	return ok && bm.Contains(uint32(col)), nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
func (m *Matrix) Set(row, col int, v bool) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return matrixErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if v {
		m.rowFor(row).Add(uint32(col))
		return nil
	}
	if bm, ok := m.rows[row]; ok {
		bm.Remove(uint32(col))
		if bm.IsEmpty() {
			delete(m.rows, row)
		}
	}

	return nil
}

// SetDiagonal sets (i,i) for every i < min(Rows, Cols).
func (m *Matrix) SetDiagonal() {
	n := m.r
	if m.c < n {
		n = m.c
	}
	for i := 0; i < n; i++ {
		m.rowFor(i).Add(uint32(i))
	}
}

// Nnz returns the number of true entries.
func (m *Matrix) Nnz() int {
	var c int
	for _, bm := range m.rows {
		c += cardinality(bm)
	}

	return c
}

// IsZero reports whether no entry is true.
func (m *Matrix) IsZero() bool {
	for _, bm := range m.rows {
		if !bm.IsEmpty() {
			return false
		}
	}

	return true
}

// Reset clears every entry in place.
// Complexity: O(number of stored rows).
func (m *Matrix) Reset() { clear(m.rows) }

// ResetRows clears every row i set in mask.
// Returns ErrDimensionMismatch unless mask.Len() == Rows().
func (m *Matrix) ResetRows(mask Vector) error {
	if mask.n != m.r {
		return boolmatErrorf("ResetRows", ErrDimensionMismatch)
	}
	mask.ForEach(func(i int) { delete(m.rows, i) })

	return nil
}

// CopyRows overwrites every row i set in mask with a copy of from's row i.
// Rows outside mask are left untouched.
// Returns ErrNilMatrix or ErrDimensionMismatch on bad operands.
func (m *Matrix) CopyRows(from *Matrix, mask Vector) error {
	if from == nil {
		return boolmatErrorf("CopyRows", ErrNilMatrix)
	}
	if from.r != m.r || from.c != m.c || mask.n != m.r {
		return boolmatErrorf("CopyRows", ErrDimensionMismatch)
	}
	mask.ForEach(func(i int) {
		if bm, ok := from.rows[i]; ok && !bm.IsEmpty() {
			m.rows[i] = bm.Clone()
		} else {
			delete(m.rows, i)
		}
	})

	return nil
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	cp := &Matrix{r: m.r, c: m.c, rows: make(map[int]*roaring.Bitmap, len(m.rows))}
	for i, bm := range m.rows {
		if !bm.IsEmpty() {
			cp.rows[i] = bm.Clone()
		}
	}

	return cp
}

// Or performs m |= o and reports whether m changed.
// Returns ErrNilMatrix or ErrDimensionMismatch on bad operands.
func (m *Matrix) Or(o *Matrix) (bool, error) {
	if o == nil {
		return false, boolmatErrorf(ctxOr, ErrNilMatrix)
	}
	if m.r != o.r || m.c != o.c {
		return false, boolmatErrorf(ctxOr, ErrDimensionMismatch)
	}
	if m == o {
		return false, nil
	}

	var changed bool
	for i, bm := range o.rows {
		if bm.IsEmpty() {
			continue
		}
		if orInto(m.rowFor(i), bm) {
			changed = true
		}
	}

	return changed, nil
}

// OrTrack performs m |= o and records each newly set entry in delta.
// All three matrices must share one shape.
func (m *Matrix) OrTrack(o, delta *Matrix) (bool, error) {
	if o == nil || delta == nil {
		return false, boolmatErrorf(ctxTrack, ErrNilMatrix)
	}
	if m.r != o.r || m.c != o.c || m.r != delta.r || m.c != delta.c {
		return false, boolmatErrorf(ctxTrack, ErrDimensionMismatch)
	}
	if m == o {
		return false, nil
	}

	var changed bool
	for i, bm := range o.rows {
		if bm.IsEmpty() {
			continue
		}
		dst := m.rowFor(i)
		fresh := roaring.AndNot(bm, dst)
		if fresh.IsEmpty() {
			continue
		}
		dst.Or(fresh)
		delta.rowFor(i).Or(fresh)
		changed = true
	}

	return changed, nil
}

// NonZeroRows returns a vector of length Rows() marking rows with any true entry.
func (m *Matrix) NonZeroRows() Vector {
	v, _ := NewVector(m.r) // r is a valid dimension by construction
	for i, bm := range m.rows {
		if !bm.IsEmpty() {
			v.bm.Add(uint32(i))
		}
	}

	return v
}

// String renders one "[b, b, ...]" line per row.
// Intended for diagnostics and test failure messages.
func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		writeBits(&b, m.c, m.rows[i])
		b.WriteByte('\n')
	}

	return b.String()
}
