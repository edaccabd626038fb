// Package matrix_test provides benchmarks for the element-wise and row kernels,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/groupagg/matrix"
)

// benchSizes are the row counts to benchmark (16 features each).
var benchSizes = []int{1024, 16384}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkV []float64
)

func BenchmarkSub(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := RandFilledDense(b, n, 16, 11)
			B := RandFilledDense(b, n, 16, 22)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Sub(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkRowNormsL2(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := RandFilledDense(b, n, 16, 1337)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				v, err := matrix.RowNormsL2(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = v
			}
		})
	}
}
