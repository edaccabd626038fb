// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small element-wise and broadcast kernels (ew*) to avoid
//     duplicating tight loops across higher-level ops (group statistics).
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - ew* helpers are UNEXPORTED micro-kernels; the exported names below are thin
//     wrappers that add operation tags.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opDivideRows = "DivideRows"
	opSqrt       = "Sqrt"
	opAddScalar  = "AddScalar"
)

// ewUnary computes out[i,j] = f(X[i,j]).
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewUnary(X Matrix, f func(float64) float64, tag string) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	r, c := X.Rows(), X.Cols()
	out, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	// Dense fast-path: single pass over the flat row-major buffer.
	if d, ok := X.(*Dense); ok {
		for i, v := range d.data {
			out.data[i] = f(v)
		}
		return out, nil
	}

	// Generic fallback via At (still deterministic).
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(tag, err)
			}
			out.data[i*c+j] = f(v)
		}
	}
	return out, nil
}

// ewDivRows computes out[i,j] = X[i,j] / div[i].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
//
// AI-Hint: divide group sums by exact member counts (true arithmetic mean).
func ewDivRows(X Matrix, div []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opDivideRows, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(div) != r {
		return nil, matrixErrorf(opDivideRows, ErrDimensionMismatch)
	}
	out, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, matrixErrorf(opDivideRows, err)
	}

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c // row base offset
			dv := div[i]  // divisor for row i
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] / dv
			}
		}
		return out, nil
	}

	var v float64
	for i := 0; i < r; i++ {
		dv := div[i]
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(opDivideRows, err)
			}
			out.data[i*c+j] = v / dv
		}
	}
	return out, nil
}

// DivideRows returns out[i,j] = X[i,j] / div[i]. len(div) must equal Rows(X).
// Time: O(r*c). Space: O(r*c).
func DivideRows(X Matrix, div []float64) (*Dense, error) { return ewDivRows(X, div) }

// Sqrt returns the element-wise square root. Negative inputs yield NaN (IEEE-754).
// Time: O(r*c). Space: O(r*c).
func Sqrt(X Matrix) (*Dense, error) { return ewUnary(X, math.Sqrt, opSqrt) }

// AddScalar returns X + s element-wise.
// Time: O(r*c). Space: O(r*c).
//
// AI-Hint: use a tiny s to keep standard deviations strictly positive.
func AddScalar(X Matrix, s float64) (*Dense, error) {
	if d, ok := X.(*Dense); ok && d != nil {
		out, err := newDenseZeroOK(d.r, d.c)
		if err != nil {
			return nil, matrixErrorf(opAddScalar, err)
		}
		copy(out.data, d.data)
		floats.AddConst(s, out.data)
		return out, nil
	}

	return ewUnary(X, func(v float64) float64 { return v + s }, opAddScalar)
}
