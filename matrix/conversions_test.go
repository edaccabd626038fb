// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/groupagg/matrix"
)

func TestGonumRoundTrip(t *testing.T) {
	t.Parallel()

	X := MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	g, err := X.ToGonum()
	require.NoError(t, err)
	require.Equal(t, 5.0, g.At(1, 1))

	back, err := matrix.FromGonum(g)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, back)

	// The gonum copy is independent.
	g.Set(0, 0, 100)
	require.Equal(t, 1.0, MustAt(t, X, 0, 0))
}

func TestFromGonum_StridedView(t *testing.T) {
	t.Parallel()

	full := mat.NewDense(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	view := full.Slice(1, 3, 1, 3).(*mat.Dense)
	d, err := matrix.FromGonum(view)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{5, 6}, {8, 9}}, d)

	tr, err := matrix.FromGonum(full.T())
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}}, tr)
}

func TestGonumErrors(t *testing.T) {
	t.Parallel()

	_, err := matrix.FromGonum(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	var nilDense *mat.Dense
	_, err = matrix.FromGonum(nilDense)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.FromGonum(mat.NewDense(1, 1, []float64{math.NaN()}))
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	empty, err := matrix.NewZeros(0, 2)
	require.NoError(t, err)
	_, err = empty.ToGonum()
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
