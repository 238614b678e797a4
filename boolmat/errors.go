// SPDX-License-Identifier: MIT
// Package boolmat: sentinel error set.
// All kernels return these sentinels (optionally wrapped with a call-site tag)
// and tests match them via errors.Is. User-triggered conditions never panic.

package boolmat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates a negative dimension or one above 2^32.
	ErrInvalidDimensions = errors.New("boolmat: dimensions must be in [0, 2^32]")

	// ErrOutOfRange indicates that a row, column or bit index is outside valid bounds.
	ErrOutOfRange = errors.New("boolmat: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes,
	// e.g. Or of different shapes or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("boolmat: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Matrix was passed to a kernel.
	ErrNilMatrix = errors.New("boolmat: nil matrix")
)

// boolmatErrorf tags err with the operation that detected it.
func boolmatErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
