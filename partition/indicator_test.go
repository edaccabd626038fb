// SPDX-License-Identifier: MIT

package partition_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/groupagg/partition"
)

func TestNewIndicator_RanksAndCounts(t *testing.T) {
	t.Parallel()

	labels := []int{5, -2, 5, 9, -2, 5}
	ind := partition.NewIndicator(labels)

	require.Equal(t, 6, ind.N())
	require.Equal(t, 3, ind.K())
	require.Equal(t, []int{-2, 5, 9}, ind.Labels())
	require.Equal(t, []int{2, 3, 1}, ind.Counts())
	require.Equal(t, []int{1, 0, 1, 2, 0, 1}, ind.Ranks())

	g, ok := ind.Rank(9)
	require.True(t, ok)
	require.Equal(t, 2, g)
	_, ok = ind.Rank(4)
	require.False(t, ok)

	// Input untouched, accessors return copies.
	require.Equal(t, []int{5, -2, 5, 9, -2, 5}, labels)
	ind.Labels()[0] = 100
	require.Equal(t, -2, ind.Labels()[0])
}

func TestCounts(t *testing.T) {
	t.Parallel()

	distinct, counts := partition.Counts([]int{3, 1, 3, 3})
	require.Equal(t, []int{1, 3}, distinct)
	require.Equal(t, []int{1, 3}, counts)

	distinct, counts = partition.Counts(nil)
	require.Empty(t, distinct)
	require.Empty(t, counts)
}

func TestIndicator_ScatterGather(t *testing.T) {
	t.Parallel()

	ind := partition.NewIndicator([]int{0, 0, 1})

	s, err := ind.Scatter()
	require.NoError(t, err)
	require.Equal(t, 3, s.Rows())
	require.Equal(t, 2, s.Cols())
	require.Equal(t, 3, s.NNZ(), "one entry per row")
	sd, err := s.ToDense()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 1, 0, 0, 1}, sd.RawData())

	g, err := ind.Gather()
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())
	require.Equal(t, 3, g.Cols())
	gd, err := g.ToDense()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 0, 0, 0, 1}, gd.RawData())
}

// Broadcast must agree with the explicit Scatter × agg product.
func TestIndicator_BroadcastMatchesScatterProduct(t *testing.T) {
	t.Parallel()

	X, labels := randomFixture(t, 60, 3, 5, 11)
	ind := partition.NewIndicator(labels)
	means, err := partition.MeanWithIndicator(X, ind)
	require.NoError(t, err)

	viaRows, err := ind.Broadcast(means)
	require.NoError(t, err)
	s, err := ind.Scatter()
	require.NoError(t, err)
	viaSparse, err := s.MulDense(means, 1)
	require.NoError(t, err)
	require.Equal(t, viaSparse.RawData(), viaRows.RawData())

	perGroup := make([]float64, ind.K())
	for g, l := range ind.Labels() {
		perGroup[g] = float64(l)
	}
	vec, err := ind.BroadcastVec(perGroup)
	require.NoError(t, err)
	for i, g := range ind.Ranks() {
		require.Equal(t, float64(ind.Labels()[g]), vec[i])
	}
}

func TestIndicator_BroadcastErrors(t *testing.T) {
	t.Parallel()

	ind := partition.NewIndicator([]int{1, 2})
	_, err := ind.Broadcast(mustRows(t, [][]float64{{1}}))
	require.ErrorIs(t, err, partition.ErrShapeMismatch)
	_, err = ind.Broadcast(nil)
	require.Error(t, err)
	_, err = ind.BroadcastVec([]float64{1, 2, 3})
	require.ErrorIs(t, err, partition.ErrShapeMismatch)
}

func TestIndicator_Empty(t *testing.T) {
	t.Parallel()

	ind := partition.NewIndicator(nil)
	require.Equal(t, 0, ind.N())
	require.Equal(t, 0, ind.K())
	g, err := ind.Gather()
	require.NoError(t, err)
	require.Equal(t, 0, g.NNZ())
}
