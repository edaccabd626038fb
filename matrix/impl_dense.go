// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support copy-based row gathering (SelectRows) used for broadcast-back of group aggregates.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot kernels: operate on the flat data slice directly.
//   - Use SelectRows(idx) to expand a k×f aggregate to n×f by a rank index map.
//   - DefaultValidateNaNInf is on; ingestion through NewDenseData rejects non-finite input
//     unless WithNoValidateNaNInf() is passed.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); SelectRows: O(len(idx)*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt         = "At"         // method tag used in error wrappers
	ctxSet        = "Set"        // method tag used in error wrappers
	ctxSelectRows = "SelectRows" // ctor tag for Dense.SelectRows
	ctxNewData    = "NewDenseData"
	ctxFromRows   = "FromRows"
	ctxAsDense    = "AsDense"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Keeps sentinels matchable through %w.
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>=0; zero allowed for NewDenseData)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation and default numeric policy.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize policy.
//
// Behavior highlights:
//   - Public constructor forbids empty dimensions to avoid accidental 0×0 matrices;
//     legal empty matrices come from NewDenseData.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// newDenseZeroOK is an internal constructor that allows rows==0 or cols==0.
// Kernels use it so that empty partitions (n=0, k=0) flow through without
// special cases.
// Complexity: Time O(rows*cols), Space O(rows*cols).
func newDenseZeroOK(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewZeros returns a zero-initialized rows×cols Dense with the default numeric
// policy. Unlike NewDense, zero-area shapes (0×c, r×0) are legal; kernels in
// sibling packages use it to allocate results for empty partitions.
// Errors: ErrInvalidDimensions on negative dimensions.
// Complexity: Time O(r*c), Space O(r*c).
func NewZeros(rows, cols int) (*Dense, error) {
	return newDenseZeroOK(rows, cols)
}

// NewDenseData wraps a row-major buffer as a rows×cols Dense without copying.
// MAIN DESCRIPTION:
//   - Ingestion constructor: the caller hands over ownership of data.
//
// Implementation:
//   - Stage 1: resolve options (numeric policy).
//   - Stage 2: validate rows>=0, cols>=0 and len(data)==rows*cols.
//   - Stage 3: when the policy is on, reject any NaN/±Inf in data.
//
// Behavior highlights:
//   - Zero-area shapes are legal (0×f feature matrices for empty partitions);
//     a nil data slice is accepted when rows*cols == 0.
//
// Errors:
//   - ErrInvalidDimensions (negative dims), ErrBadShape (buffer length),
//     ErrNaNInf (non-finite value under policy).
//
// Complexity:
//   - Time O(r*c) for the finite scan (O(1) when the policy is off), Space O(1).
//
// AI-Hints:
//   - Do not mutate data after handing it over; kernels treat inputs as immutable.
func NewDenseData(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(ctxNewData, ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, matrixErrorf(ctxNewData, ErrBadShape)
	}
	if data == nil {
		data = make([]float64, 0)
	}
	if o.validateNaNInf {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxNewData, k/max(cols, 1), k%max(cols, 1), ErrNaNInf)
			}
		}
	}

	return &Dense{r: rows, c: cols, data: data, validateNaNInf: o.validateNaNInf}, nil
}

// FromRows copies a slice of equal-length rows into a new Dense.
// An empty input yields a 0×0 matrix. Ragged input fails with ErrBadShape.
// Complexity: Time O(r*c), Space O(r*c).
func FromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	r := len(rows)
	if r == 0 {
		return NewDenseData(0, 0, nil, opts...)
	}
	c := len(rows[0])
	buf := make([]float64, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", ctxFromRows, i, len(row), c, ErrBadShape)
		}
		copy(buf[i*c:(i+1)*c], row)
	}

	return NewDenseData(r, c, buf, opts...)
}

// AsDense returns m itself when it already is a *Dense, otherwise a *Dense
// copy read through At. Kernels call it once at their boundary so that the
// hot loops only ever see the flat buffer.
// Errors: ErrNilMatrix; wrapped At errors from the fallback.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(ctxAsDense, err)
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, matrixErrorf(ctxAsDense, err)
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(ctxAsDense, err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// RawData exposes the row-major backing buffer (shared, not copied).
// Sibling packages (sparse) use it for flat-slice kernels; writes through
// the returned slice bypass the numeric policy.
// Complexity: O(1).
func (m *Dense) RawData() []float64 { return m.data }

// RawRow returns row i of the backing buffer as a shared subslice.
// Panics on an out-of-range row like a slice expression would.
// Complexity: O(1).
func (m *Dense) RawRow(i int) []float64 { return m.data[i*m.c : (i+1)*m.c] }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates and method name.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range; returns the wrapped sentinel.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// MAIN DESCRIPTION:
//   - Safe element write with optional finite-only policy.
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: enforce numeric policy (reject NaN/±Inf when enabled).
//   - Stage 3: write into flat buffer.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// Row returns a copy of row i.
// Errors: ErrOutOfRange.
// Complexity: O(c).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf("Row", i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Not for hot paths; intended for logs and debugging.
// Complexity: Time O(r*c), Space O(r*c) for formatting.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// SelectRows materializes a copy whose row i is row idx[i] of m.
// MAIN DESCRIPTION:
//   - Gather rows by an index map (duplicates allowed); all columns are kept.
//
// Implementation:
//   - Stage 1: validate every index up front so a failure leaves nothing half-built.
//   - Stage 2: allocate len(idx)×c and copy whole rows with copy().
//
// Behavior highlights:
//   - This is the broadcast-back primitive: a k×f group aggregate selected by the
//     per-row rank vector yields the n×f per-row aggregate.
//   - Policy is preserved from the base (validateNaNInf).
//   - Zero-area results are legal.
//
// Errors:
//   - ErrOutOfRange (index outside [0, Rows())).
//
// Complexity:
//   - Time O(len(idx)*c), Space O(len(idx)*c).
func (m *Dense) SelectRows(idx []int) (*Dense, error) {
	for _, ri := range idx {
		if ri < 0 || ri >= m.r {
			return nil, fmt.Errorf("Dense.%s: row index %d: %w", ctxSelectRows, ri, ErrOutOfRange)
		}
	}
	res, err := newDenseZeroOK(len(idx), m.c)
	if err != nil {
		return nil, err
	}
	res.validateNaNInf = m.validateNaNInf
	c := m.c
	for i, ri := range idx {
		copy(res.data[i*c:(i+1)*c], m.data[ri*c:(ri+1)*c])
	}

	return res, nil
}
