// SPDX-License-Identifier: MIT

package partition_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/groupagg/matrix"
)

// hide masks *matrix.Dense so the At-based fallbacks are exercised.
type hide struct{ matrix.Matrix }

func mustRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	return m
}

func mustEmpty(t testing.TB, f int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewZeros(0, f)
	if err != nil {
		t.Fatalf("NewZeros: %v", err)
	}

	return m
}

// randomFixture returns an n×f Gaussian matrix and n labels drawn from a
// scattered set of k label values (negative and non-contiguous).
func randomFixture(t testing.TB, n, f, k int, seed int64) (*matrix.Dense, []int) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	buf := make([]float64, n*f)
	for i := range buf {
		buf[i] = rng.NormFloat64()*3 + 1
	}
	X, err := matrix.NewDenseData(n, f, buf)
	if err != nil {
		t.Fatalf("NewDenseData: %v", err)
	}
	labels := make([]int, n)
	for i := range labels {
		labels[i] = rng.Intn(k)*7 - 20
	}

	return X, labels
}

func rowOf(t *testing.T, m *matrix.Dense, i int) []float64 {
	t.Helper()
	r, err := m.Row(i)
	require.NoError(t, err)

	return r
}
