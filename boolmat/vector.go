// SPDX-License-Identifier: MIT

// Package boolmat - Vector (fixed-length sparse bitset).
//
// Purpose:
//   - Represent a boolean row or a vertex set as a compressed bitmap.
//   - Report whether an in-place OR changed anything, which is what every
//     fixpoint loop in this module needs to detect convergence.
//
// Layout:
//   - Bits live in a roaring bitmap keyed by uint32; memory follows the
//     number of set bits, not the logical length.
//   - No bit at a position >= n is ever set; every mutator preserves this.
//
// A Vector is a small value (length + bitmap pointer). Copies share storage.

package boolmat

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// MaxDim is the largest legal vector length or matrix dimension:
// indices must fit in uint32.
const MaxDim uint64 = 1 << 32

// validDim reports whether n can be used as a length or a matrix order.
func validDim(n int) bool { return n >= 0 && uint64(n) <= MaxDim }

// Vector is a fixed-length bitset.
type Vector struct {
	n  int             // logical length in bits
	bm *roaring.Bitmap // nil only for the zero Vector
}

// NewVector allocates an all-false vector of length n.
// Returns ErrInvalidDimensions if n < 0 or n > 2^32.
// Complexity: O(1).
func NewVector(n int) (Vector, error) {
	if !validDim(n) {
		return Vector{}, ErrInvalidDimensions
	}

	return Vector{n: n, bm: roaring.New()}, nil
}

// VectorOf builds a vector of length n with the given indices set.
// Returns ErrInvalidDimensions for a bad n and ErrOutOfRange for an index
// outside [0,n).
func VectorOf(n int, indices ...int) (Vector, error) {
	v, err := NewVector(n)
	if err != nil {
		return Vector{}, err
	}
	for _, i := range indices {
		if err = v.Set(i); err != nil {
			return Vector{}, boolmatErrorf("VectorOf", err)
		}
	}

	return v, nil
}

// Len returns the logical length in bits.
func (v Vector) Len() int { return v.n }

// Test reports whether bit i is set. Out-of-range indices report false.
func (v Vector) Test(i int) bool {
	if i < 0 || i >= v.n {
		return false
	}

	return v.bm.Contains(uint32(i))
}

// Set turns bit i on. Returns ErrOutOfRange if i is outside [0,Len()).
func (v Vector) Set(i int) error {
	if i < 0 || i >= v.n {
		return ErrOutOfRange
	}
	v.bm.Add(uint32(i))

	return nil
}

// Unset turns bit i off. Returns ErrOutOfRange if i is outside [0,Len()).
func (v Vector) Unset(i int) error {
	if i < 0 || i >= v.n {
		return ErrOutOfRange
	}
	v.bm.Remove(uint32(i))

	return nil
}

// Reset clears every bit in place.
func (v Vector) Reset() {
	if v.bm != nil {
		v.bm.Clear()
	}
}

// Count returns the number of set bits.
func (v Vector) Count() int { return cardinality(v.bm) }

// IsZero reports whether no bit is set.
func (v Vector) IsZero() bool { return v.bm == nil || v.bm.IsEmpty() }

// Or performs v |= o and reports whether v changed.
// Returns ErrDimensionMismatch if lengths differ.
func (v Vector) Or(o Vector) (bool, error) {
	if v.n != o.n {
		return false, boolmatErrorf("Vector.Or", ErrDimensionMismatch)
	}

	return orInto(v.bm, o.bm), nil
}

// OrTrack performs v |= o and additionally records in delta every bit that
// was newly set in v. delta is OR-accumulated, never cleared.
// Returns ErrDimensionMismatch unless all three lengths agree.
func (v Vector) OrTrack(o, delta Vector) (bool, error) {
	if v.n != o.n || v.n != delta.n {
		return false, boolmatErrorf("Vector.OrTrack", ErrDimensionMismatch)
	}

	return orTrack(v.bm, o.bm, delta.bm), nil
}

// AndNot performs v &^= o in place.
// Returns ErrDimensionMismatch if lengths differ.
func (v Vector) AndNot(o Vector) error {
	if v.n != o.n {
		return boolmatErrorf("Vector.AndNot", ErrDimensionMismatch)
	}
	if v.bm != nil && o.bm != nil && v.bm != o.bm {
		v.bm.AndNot(o.bm)
	} else if v.bm != nil && v.bm == o.bm {
		v.bm.Clear()
	}

	return nil
}

// ForEach calls fn for every set bit in ascending order.
// The set is snapshotted first, so fn may mutate v.
func (v Vector) ForEach(fn func(i int)) {
	forEachBit(v.bm, fn)
}

// Indices returns the set bits in ascending order.
func (v Vector) Indices() []int {
	out := make([]int, 0, v.Count())
	v.ForEach(func(i int) { out = append(out, i) })

	return out
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	return Vector{n: v.n, bm: cloneBitmap(v.bm)}
}

// Equal reports whether both vectors have the same length and bits.
func (v Vector) Equal(o Vector) bool {
	return v.n == o.n && sameBits(v.bm, o.bm)
}

// String renders the vector as "[1, 0, 1]".
func (v Vector) String() string {
	var b strings.Builder
	writeBits(&b, v.n, v.bm)

	return b.String()
}

// writeBits appends "[b0, b1, ...]" for a row of length n to b.
func writeBits(b *strings.Builder, n int, bm *roaring.Bitmap) {
	b.WriteString(_fmtRowOpen)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(_fmtSep)
		}
		if bm != nil && bm.Contains(uint32(i)) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteString(_fmtRowClose)
}

// ---------- bitmap helpers (nil is the empty set) ----------

func cardinality(bm *roaring.Bitmap) int {
	if bm == nil {
		return 0
	}

	return int(bm.GetCardinality())
}

func cloneBitmap(bm *roaring.Bitmap) *roaring.Bitmap {
	if bm == nil {
		return roaring.New()
	}

	return bm.Clone()
}

func sameBits(a, b *roaring.Bitmap) bool {
	switch {
	case a == nil || a.IsEmpty():
		return b == nil || b.IsEmpty()
	case b == nil:
		return false
	default:
		return a.Equals(b)
	}
}

// forEachBit walks a snapshot of bm in ascending order.
func forEachBit(bm *roaring.Bitmap, fn func(i int)) {
	if bm == nil || bm.IsEmpty() {
		return
	}
	for _, x := range bm.ToArray() {
		fn(int(x))
	}
}

// orInto performs dst |= src and reports change. dst must be non-nil
// unless src is empty.
func orInto(dst, src *roaring.Bitmap) bool {
	if src == nil || src == dst || src.IsEmpty() || dst == nil {
		return false
	}
	before := dst.GetCardinality()
	dst.Or(src)

	return dst.GetCardinality() != before
}

// orTrack is orInto that also records newly set bits into delta.
func orTrack(dst, src, delta *roaring.Bitmap) bool {
	if src == nil || src == dst || src.IsEmpty() || dst == nil {
		return false
	}
	fresh := roaring.AndNot(src, dst)
	if fresh.IsEmpty() {
		return false
	}
	dst.Or(fresh)
	if delta != nil {
		delta.Or(fresh)
	}

	return true
}
