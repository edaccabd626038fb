package partition_test

import (
	"fmt"

	"github.com/katalvlaran/groupagg/matrix"
	"github.com/katalvlaran/groupagg/partition"
)

// ExampleMean reduces three rows into two groups; results follow ascending
// label order, so label -4 comes before label 7.
func ExampleMean() {
	data, _ := matrix.FromRows([][]float64{{0, 0}, {2, 0}, {10, 0}})
	means, _ := partition.Mean(data, []int{7, 7, -4})
	fmt.Print(means)
	// Output:
	// [10, 0]
	// [1, 0]
}

func ExampleMax() {
	maxes, _ := partition.Max([]float64{0, 2, 10}, []int{0, 0, 1})
	fmt.Println(maxes)
	// Output: [2 10]
}

// ExampleNormalize z-scores rows within their group. The singleton group
// (label 9) maps to zeros.
func ExampleNormalize() {
	data, _ := matrix.FromRows([][]float64{{1, 10}, {3, 30}, {5, 5}})
	z, _ := partition.Normalize(data, []int{0, 0, 9})
	for i := 0; i < z.Rows(); i++ {
		row, _ := z.Row(i)
		fmt.Printf("%.3f\n", row)
	}
	// Output:
	// [-1.000 -1.000]
	// [1.000 1.000]
	// [0.000 0.000]
}

func ExampleIndicator_Broadcast() {
	ind := partition.NewIndicator([]int{3, 1, 3})
	agg, _ := matrix.FromRows([][]float64{{100}, {300}})
	rows, _ := ind.Broadcast(agg)
	fmt.Println(ind.Labels(), ind.Counts())
	fmt.Print(rows)
	// Output:
	// [1 3] [1 2]
	// [300]
	// [100]
	// [300]
}
