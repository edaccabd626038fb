// SPDX-License-Identifier: MIT

// Package matrix: adapters between Dense and gonum's mat package, so callers
// holding feature matrices as *mat.Dense can feed the partition engine and
// read its results back without hand-written copy loops.
package matrix

import (
	"gonum.org/v1/gonum/mat"
)

const (
	ctxFromGonum = "FromGonum"
	ctxToGonum   = "ToGonum"
)

// FromGonum copies any gonum mat.Matrix into a new Dense.
// Row-major *mat.Dense inputs are copied row by row from the raw buffer
// (respecting Stride); other implementations go through At.
// A nil input, including a typed-nil *mat.Dense, fails with ErrNilMatrix. Non-finite values are rejected under
// the default numeric policy, as in NewDenseData.
// Complexity: Time O(r*c), Space O(r*c).
func FromGonum(g mat.Matrix, opts ...Option) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf(ctxFromGonum, ErrNilMatrix)
	}
	if gd, ok := g.(*mat.Dense); ok && gd == nil {
		return nil, matrixErrorf(ctxFromGonum, ErrNilMatrix)
	}
	r, c := g.Dims()
	buf := make([]float64, r*c)
	if gd, ok := g.(*mat.Dense); ok {
		raw := gd.RawMatrix()
		for i := 0; i < r; i++ {
			copy(buf[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
		}
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				buf[i*c+j] = g.At(i, j)
			}
		}
	}

	d, err := NewDenseData(r, c, buf, opts...)
	if err != nil {
		return nil, matrixErrorf(ctxFromGonum, err)
	}

	return d, nil
}

// ToGonum copies m into a new *mat.Dense.
// gonum forbids zero-length dimensions, so zero-area matrices fail with
// ErrInvalidDimensions instead of panicking inside mat.NewDense.
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense) ToGonum() (*mat.Dense, error) {
	if m == nil {
		return nil, matrixErrorf(ctxToGonum, ErrNilMatrix)
	}
	if m.r == 0 || m.c == 0 {
		return nil, matrixErrorf(ctxToGonum, ErrInvalidDimensions)
	}
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return mat.NewDense(m.r, m.c, buf), nil
}
