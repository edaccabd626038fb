// SPDX-License-Identifier: MIT
// Package matrix provides universal element-wise operations on any Matrix
// implementation: subtraction, Hadamard product and division.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Purpose:
//   - Declare the canonical binary kernels used by the partition engine
//     (deviations, squared deviations, z-scoring).
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - All kernels use central validators and wrap sentinels via matrixErrorf.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opSub      = "Sub"
	opHadamard = "Hadamard"
	opDivide   = "Divide"
)

// binaryKind selects the element-wise operator applied by binaryOp.
type binaryKind int

const (
	kindSub binaryKind = iota
	kindMul
	kindDiv
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
//   - Keep `tag` to the canonical constants to simplify log/search pipelines.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// apply evaluates a single element for the given operator.
func (k binaryKind) apply(x, y float64) float64 {
	switch k {
	case kindSub:
		return x - y
	case kindMul:
		return x * y
	default:
		return x / y
	}
}

// binaryOp computes out[i,j] = a[i,j] ∘ b[i,j] for the operator selected by kind.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result (zero-area allowed).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1 with the
//     operator switch hoisted out of the loop.
//     Otherwise, fallback At with fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (from ValidateBinarySameShape).
//   - Wrapped At errors from the fallback.
//
// Determinism:
//   - Fast-path: single flat slice walk 0..(r*c−1).
//   - Fallback: fixed nested loops i=0..r−1, j=0..c−1.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
//
// Notes:
//   - Division follows IEEE-754: x/0 gives ±Inf or NaN; callers that need a
//     strictly positive denominator must guarantee it (see partition.Std epsilon).
func binaryOp(a, b Matrix, kind binaryKind, tag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	r, c := a.Rows(), a.Cols()
	res, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			x, y, out := da.data, db.data, res.data
			switch kind {
			case kindSub:
				floats.SubTo(out, x, y)
			case kindMul:
				floats.MulTo(out, x, y)
			default:
				floats.DivTo(out, x, y)
			}

			return res, nil
		}
	}

	var i, j int
	var av, bv float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(tag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(tag, err)
			}
			res.data[i*c+j] = kind.apply(av, bv)
		}
	}

	return res, nil
}

// Sub returns a − b element-wise (deviations from broadcast means).
// Complexity: O(rc).
func Sub(a, b Matrix) (*Dense, error) { return binaryOp(a, b, kindSub, opSub) }

// Hadamard returns a ⊙ b (element-wise product). Hadamard(d, d) squares d.
// Complexity: O(rc).
func Hadamard(a, b Matrix) (*Dense, error) { return binaryOp(a, b, kindMul, opHadamard) }

// Divide returns a ⊘ b (element-wise quotient).
// Complexity: O(rc).
//
// AI-Hints: pair with Sub for z-scoring against broadcast means/stds.
func Divide(a, b Matrix) (*Dense, error) { return binaryOp(a, b, kindDiv, opDivide) }
