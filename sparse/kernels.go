// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Provide the three kernels group reductions are built from:
//     ScaleCols (A·diag(d)), MulDense (A×B with dense B) and RowMax.
//
// Determinism & Performance:
//   - Each output row is produced by exactly one goroutine, accumulating its
//     stored entries in ascending column order. Results are bit-identical for
//     every worker count.
//   - MulDense touches each stored entry once: O(nnz·f) multiply-adds, with
//     no dense intermediate beyond the output.
//
// AI-Hints:
//   - workers ≤ 1 runs inline with no goroutines; use more only when r is large
//     enough to amortize scheduling.

package sparse

import (
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/groupagg/matrix"
)

const (
	opScaleCols = "ScaleCols"
	opMulDense  = "MulDense"
	opRowMax    = "RowMax"
)

// parallelRows splits [0, rows) into at most workers contiguous blocks and
// runs fn on each. workers ≤ 1 (or a single row) runs fn inline.
// Complexity: O(workers) scheduling overhead.
func parallelRows(rows, workers int, fn func(lo, hi int) error) error {
	if workers <= 1 || rows <= 1 {
		return fn(0, rows)
	}
	if workers > rows {
		workers = rows
	}
	chunk := (rows + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < rows; lo += chunk {
		lo, hi := lo, min(lo+chunk, rows)
		g.Go(func() error { return fn(lo, hi) })
	}

	return g.Wait()
}

// ScaleCols returns A·diag(d): every stored entry (i,j) is multiplied by d[j].
// The sparsity structure is unchanged (zeros in d become explicit zeros).
// Errors: matrix.ErrDimensionMismatch when len(d) != Cols().
// Complexity: Time O(nnz + r), Space O(nnz + r).
func (m *CSR) ScaleCols(d []float64) (*CSR, error) {
	if err := matrix.ValidateVecLen(d, m.c); err != nil {
		return nil, sparseErrorf(opScaleCols, err)
	}
	indptr := make([]int, len(m.indptr))
	copy(indptr, m.indptr)
	indices := make([]int, len(m.indices))
	copy(indices, m.indices)
	data := make([]float64, len(m.data))
	for p, j := range m.indices {
		data[p] = m.data[p] * d[j]
	}

	return &CSR{r: m.r, c: m.c, indptr: indptr, indices: indices, data: data}, nil
}

// MulDense computes A×B for dense B (Cols(A) == Rows(B)).
// MAIN DESCRIPTION:
//   - Sparse-times-dense product; with A a k×n gather indicator and B the n×f
//     feature matrix this yields the k×f per-group sums in one pass.
//
// Implementation:
//   - Stage 1: validate B and the inner dimension.
//   - Stage 2: allocate the r×f result (zero-area legal).
//   - Stage 3: for each output row i, out[i,:] += A[i,j]·B[j,:] over stored j,
//     via floats.AddScaled on shared row subslices.
//
// Errors:
//   - matrix.ErrNilMatrix (nil B), matrix.ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(nnz·f), Space O(r·f).
func (m *CSR) MulDense(b *matrix.Dense, workers int) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, sparseErrorf(opMulDense, err)
	}
	if b.Rows() != m.c {
		return nil, sparseErrorf(opMulDense, matrix.ErrDimensionMismatch)
	}
	f := b.Cols()
	out, err := matrix.NewZeros(m.r, f)
	if err != nil {
		return nil, sparseErrorf(opMulDense, err)
	}
	if f == 0 {
		return out, nil
	}
	src, dst := b.RawData(), out.RawData()

	err = parallelRows(m.r, workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			row := dst[i*f : (i+1)*f]
			for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
				j := m.indices[p]
				floats.AddScaled(row, m.data[p], src[j*f:(j+1)*f])
			}
		}
		return nil
	})
	if err != nil {
		return nil, sparseErrorf(opMulDense, err)
	}

	return out, nil
}

// RowMax returns, for every row, the maximum over the row's values where
// coordinates without a stored entry count as 0 (sparse-max semantics).
// Implementation:
//   - Stage 1: for each row, take the max of its stored entries.
//   - Stage 2: if the row is not fully populated, fold in the implicit 0.
//
// Behavior highlights:
//   - An empty row reports 0.
//   - A NaN among the stored entries makes the row report NaN, wherever it
//     sits in the row.
//   - For non-negative values the implicit zeros never exceed the true maximum;
//     negative stored values can be masked by them, which is why callers that
//     reduce signed data must guarantee full rows or non-negativity.
//
// Complexity:
//   - Time O(nnz + r), Space O(r).
func (m *CSR) RowMax(workers int) ([]float64, error) {
	out := make([]float64, m.r)
	err := parallelRows(m.r, workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			a, b := m.indptr[i], m.indptr[i+1]
			if a == b {
				continue // all implicit: 0
			}
			best := m.data[a]
			for p := a; p < b; p++ {
				v := m.data[p]
				if math.IsNaN(v) {
					best = v
					break
				}
				if v > best {
					best = v
				}
			}
			if b-a < m.c && best < 0 {
				best = 0
			}
			out[i] = best
		}
		return nil
	})
	if err != nil {
		return nil, sparseErrorf(opRowMax, err)
	}

	return out, nil
}
