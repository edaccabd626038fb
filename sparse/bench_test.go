package sparse_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/groupagg/matrix"
)

var sinkD *matrix.Dense

func BenchmarkMulDense(b *testing.B) {
	const n, f, k = 1 << 15, 16, 64
	rng := rand.New(rand.NewSource(1))
	labels := make([]int, n)
	for i := range labels {
		labels[i] = rng.Intn(k)
	}
	buf := make([]float64, n*f)
	for i := range buf {
		buf[i] = rng.Float64()
	}
	X, err := matrix.NewDenseData(n, f, buf)
	if err != nil {
		b.Fatal(err)
	}
	g := indicator(b, labels, k)

	for _, w := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", w), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				out, err := g.MulDense(X, w)
				if err != nil {
					b.Fatal(err)
				}
				sinkD = out
			}
		})
	}
}
