// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide whole-matrix statistics used by and checked against the
//     partition engine: per-row Euclidean norms and per-column means.
//
// Exposed API:
//   - RowNormsL2(X)   -> norms  // ‖X[i,*]‖₂ for every row
//   - ColumnMeans(X)  -> means  // Σ_i X[i,j] / r for every column
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths operate on row-major flat buffers; norms go through
//     gonum's floats.Norm on shared row subslices (no copies).
//   - Zero-size matrices yield empty (RowNormsL2) or zero (ColumnMeans) vectors.

package matrix

import "gonum.org/v1/gonum/floats"

// Operation name constants for unified error wrapping.
const (
	opRowNormsL2  = "RowNormsL2"
	opColumnMeans = "ColumnMeans"
)

// l2 is the norm order passed to floats.Norm.
const l2 = 2

// RowNormsL2 returns the Euclidean norm of every row.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Dense fast-path: floats.Norm over each shared row subslice.
//   - Stage 3: Fallback: copy each row through At into a scratch buffer, then floats.Norm.
//
// Returns:
//   - []float64: len=Rows(X), every entry ≥ 0 (or NaN for NaN input).
//
// Errors:
//   - ErrNilMatrix; wrapped At errors from the fallback.
//
// Complexity:
//   - Time O(r*c), Space O(r) (+ O(c) scratch on the fallback).
//
// Notes:
//   - floats.Norm with L=2 scales internally, so very large components do not overflow.
func RowNormsL2(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opRowNormsL2, err)
	}
	r, c := X.Rows(), X.Cols()
	norms := make([]float64, r)
	if c == 0 {
		return norms, nil
	}

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			norms[i] = floats.Norm(d.data[i*c:(i+1)*c], l2)
		}
		return norms, nil
	}

	row := make([]float64, c)
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if row[j], err = X.At(i, j); err != nil {
				return nil, matrixErrorf(opRowNormsL2, err)
			}
		}
		norms[i] = floats.Norm(row, l2)
	}
	return norms, nil
}

// ColumnMeans returns Σ_i X[i,j] / r for every column j.
// Implementation:
//   - Stage 1: Validate X; zero rows yields a zero vector of length c.
//   - Stage 2: accumulate column sums deterministically (Dense fast-path; At fallback).
//   - Stage 3: divide by r.
//
// Errors:
//   - ErrNilMatrix; wrapped At errors from the fallback.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)
	if r == 0 || c == 0 {
		return means, nil
	}

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			floats.Add(means, d.data[i*c:(i+1)*c])
		}
	} else {
		var v float64
		var err error
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, matrixErrorf(opColumnMeans, err)
				}
				means[j] += v
			}
		}
	}

	for j := range means {
		means[j] /= float64(r)
	}
	return means, nil
}
