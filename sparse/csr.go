// SPDX-License-Identifier: MIT
// Package sparse - compressed sparse row (CSR) storage.
//
// Purpose:
//   - Hold sparse operators (indicator relations, diagonally scaled indicators)
//     with memory proportional to the number of stored entries, never r×c.
//   - Build from coordinate (COO) triplets, scipy-style: duplicates are summed,
//     column indices inside a row end up strictly ascending.
//
// Layout:
//   - indptr  : len r+1, row i occupies [indptr[i], indptr[i+1]).
//   - indices : column index of each stored entry (ascending within a row).
//   - data    : value of each stored entry.
//
// Determinism:
//   - Construction is a stable counting sort by row; ties inside a row are
//     ordered by column and then by input position, so equal inputs always
//     produce identical buffers.
//
// Complexity quicksheet:
//   - NewCSR: O(nnz + r) plus O(d log d) per row holding d>1 entries.
//   - Transpose: O(nnz + c). ToDense: O(r*c).

package sparse

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/groupagg/matrix"
)

// Operation tags for error wrapping.
const (
	opNewCSR    = "NewCSR"
	opToDense   = "ToDense"
	opTranspose = "Transpose"
)

// sparseErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Use only when err != nil.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("sparse.%s: %w", tag, err)
}

// CSR is an immutable compressed sparse row matrix of float64 values.
// The zero value is not usable; construct with NewCSR or Transpose.
type CSR struct {
	r, c    int       // logical shape
	indptr  []int     // row offsets, len r+1
	indices []int     // column of each stored entry
	data    []float64 // value of each stored entry
}

// NewCSR builds an r×c CSR matrix from COO triplets (rowIdx[p], colIdx[p], vals[p]).
// MAIN DESCRIPTION:
//   - Canonical constructor; mirrors the (data, (row, col)) form of sparse libraries.
//
// Implementation:
//   - Stage 1: validate shape (≥0) and equal triplet lengths.
//   - Stage 2: validate every coordinate against the shape.
//   - Stage 3: counting sort by row (stable) into indptr/indices/data.
//   - Stage 4: sort rows with more than one entry by column and sum duplicates.
//
// Behavior highlights:
//   - Explicit zeros are stored; they take part in reductions like any value.
//   - Inputs are not retained; the CSR owns fresh buffers.
//
// Errors:
//   - matrix.ErrInvalidDimensions (negative shape).
//   - matrix.ErrDimensionMismatch (triplet slices of different lengths).
//   - matrix.ErrOutOfRange (coordinate outside the shape).
//
// Complexity:
//   - Time O(nnz + r) when every row holds at most one entry (indicator case).
//   - Space O(nnz + r).
func NewCSR(rows, cols int, rowIdx, colIdx []int, vals []float64) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, sparseErrorf(opNewCSR, matrix.ErrInvalidDimensions)
	}
	nnz := len(vals)
	if len(rowIdx) != nnz || len(colIdx) != nnz {
		return nil, sparseErrorf(opNewCSR, matrix.ErrDimensionMismatch)
	}
	for p := 0; p < nnz; p++ {
		if rowIdx[p] < 0 || rowIdx[p] >= rows || colIdx[p] < 0 || colIdx[p] >= cols {
			return nil, sparseErrorf(opNewCSR,
				fmt.Errorf("entry %d at (%d,%d): %w", p, rowIdx[p], colIdx[p], matrix.ErrOutOfRange))
		}
	}

	// Counting sort by row: count, prefix-sum, scatter.
	indptr := make([]int, rows+1)
	for _, i := range rowIdx {
		indptr[i+1]++
	}
	for i := 0; i < rows; i++ {
		indptr[i+1] += indptr[i]
	}
	next := make([]int, rows)
	copy(next, indptr[:rows])
	indices := make([]int, nnz)
	data := make([]float64, nnz)
	var dst int
	for p := 0; p < nnz; p++ {
		dst = next[rowIdx[p]]
		indices[dst] = colIdx[p]
		data[dst] = vals[p]
		next[rowIdx[p]]++
	}

	m := &CSR{r: rows, c: cols, indptr: indptr, indices: indices, data: data}
	m.canonicalize()

	return m, nil
}

// canonicalize sorts every row by column and sums duplicate coordinates,
// compacting the buffers in place. Rows with at most one entry are skipped,
// so the indicator case stays linear.
func (m *CSR) canonicalize() {
	var out, lo, hi int
	for i := 0; i < m.r; i++ {
		lo, hi = m.indptr[i], m.indptr[i+1]
		if hi-lo > 1 {
			sort.Stable(rowSegment{indices: m.indices[lo:hi], data: m.data[lo:hi]})
		}
		rowStart := out
		for p := lo; p < hi; p++ {
			if out > rowStart && m.indices[out-1] == m.indices[p] {
				m.data[out-1] += m.data[p] // duplicate coordinate: sum
				continue
			}
			m.indices[out] = m.indices[p]
			m.data[out] = m.data[p]
			out++
		}
		m.indptr[i] = rowStart
	}
	m.indptr[m.r] = out
	m.indices = m.indices[:out]
	m.data = m.data[:out]
}

// rowSegment sorts one CSR row by column while keeping values aligned.
type rowSegment struct {
	indices []int
	data    []float64
}

func (s rowSegment) Len() int           { return len(s.indices) }
func (s rowSegment) Less(a, b int) bool { return s.indices[a] < s.indices[b] }
func (s rowSegment) Swap(a, b int) {
	s.indices[a], s.indices[b] = s.indices[b], s.indices[a]
	s.data[a], s.data[b] = s.data[b], s.data[a]
}

// Rows returns the number of rows. Complexity: O(1).
func (m *CSR) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *CSR) Cols() int { return m.c }

// NNZ returns the number of stored entries (explicit zeros included).
// Complexity: O(1).
func (m *CSR) NNZ() int { return len(m.data) }

// RowNNZ returns the number of stored entries in row i, or 0 when i is out of range.
// Complexity: O(1).
func (m *CSR) RowNNZ(i int) int {
	if i < 0 || i >= m.r {
		return 0
	}
	return m.indptr[i+1] - m.indptr[i]
}

// Transpose returns mᵀ as a new CSR (counting sort by column).
// Rows of the result come out with ascending column indices because the
// source rows are visited in ascending order.
// Complexity: Time O(nnz + c), Space O(nnz + c).
func (m *CSR) Transpose() *CSR {
	nnz := len(m.data)
	indptr := make([]int, m.c+1)
	for _, j := range m.indices {
		indptr[j+1]++
	}
	for j := 0; j < m.c; j++ {
		indptr[j+1] += indptr[j]
	}
	next := make([]int, m.c)
	copy(next, indptr[:m.c])
	indices := make([]int, nnz)
	data := make([]float64, nnz)
	var j, dst int
	for i := 0; i < m.r; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			j = m.indices[p]
			dst = next[j]
			indices[dst] = i
			data[dst] = m.data[p]
			next[j]++
		}
	}

	return &CSR{r: m.c, c: m.r, indptr: indptr, indices: indices, data: data}
}

// ToDense materializes m as a matrix.Dense. Intended for diagnostics and tests;
// the engine never calls it on indicator operators.
// Complexity: Time O(r*c), Space O(r*c).
func (m *CSR) ToDense() (*matrix.Dense, error) {
	out, err := matrix.NewZeros(m.r, m.c)
	if err != nil {
		return nil, sparseErrorf(opToDense, err)
	}
	buf := out.RawData()
	for i := 0; i < m.r; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			buf[i*m.c+m.indices[p]] = m.data[p]
		}
	}

	return out, nil
}
