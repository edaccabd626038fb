// SPDX-License-Identifier: MIT
// Package partition: sentinel error set.
// Every exported operation fails fast at its boundary with one of these
// sentinels (wrapped with the operation name) or with a matrix/sparse
// sentinel bubbled from validation. Nothing is returned on failure.

package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when the partition length differs from the
	// number of data rows, when broadcast means do not have the data's shape,
	// or when an aggregate handed to Broadcast does not have K rows.
	ErrShapeMismatch = errors.New("partition: shape mismatch")

	// ErrPreconditionViolation is returned by Max when a value is negative and
	// the non-negativity check is enabled (the default).
	ErrPreconditionViolation = errors.New("partition: precondition violation")
)

// Operation name constants for unified error wrapping.
const (
	opIndicator = "NewIndicator"
	opBroadcast = "Broadcast"
	opSum       = "Sum"
	opMean      = "Mean"
	opMax       = "Max"
	opMaxRadius = "MaxRadius"
	opStd       = "Std"
	opNormalize = "Normalize"
)

// partitionErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Use only when err != nil.
func partitionErrorf(tag string, err error) error {
	return fmt.Errorf("partition.%s: %w", tag, err)
}

// shapeErrorf reports a length/shape mismatch with both sides named.
func shapeErrorf(tag, what string, got, want int) error {
	return partitionErrorf(tag, fmt.Errorf("%s: got %d, want %d: %w", what, got, want, ErrShapeMismatch))
}
