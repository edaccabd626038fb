// SPDX-License-Identifier: MIT

package partition

import (
	"github.com/katalvlaran/groupagg/matrix"
)

// Sum returns the k×f per-group sums of data's rows (rank order).
// Implementation: Gather × data, a single sparse×dense pass.
// Errors: matrix.ErrNilMatrix; ErrShapeMismatch when len(labels) != Rows(data).
// Complexity: Time O(n log n + n·f), Space O(n + k·f).
func Sum(data matrix.Matrix, labels []int, opts ...Option) (*matrix.Dense, error) {
	if err := checkRows(opSum, data, len(labels)); err != nil {
		return nil, err
	}

	return groupSum(opSum, data, NewIndicator(labels), gatherOptions(opts...))
}

// Mean returns the k×f per-group arithmetic means of data's rows.
// MAIN DESCRIPTION:
//   - Group sums via the gather indicator, each divided by its exact integer
//     member count.
//
// Behavior highlights:
//   - Row g of the result belongs to the g-th smallest distinct label.
//   - A singleton group's mean is its row, bit for bit.
//   - n=0 yields a 0×f result.
//
// Errors:
//   - matrix.ErrNilMatrix; ErrShapeMismatch when len(labels) != Rows(data).
//
// Complexity:
//   - Time O(n log n + n·f), Space O(n + k·f).
func Mean(data matrix.Matrix, labels []int, opts ...Option) (*matrix.Dense, error) {
	if err := checkRows(opMean, data, len(labels)); err != nil {
		return nil, err
	}

	return groupMean(opMean, data, NewIndicator(labels), gatherOptions(opts...))
}

// MeanWithIndicator is Mean over a prebuilt indicator, for callers reducing
// several matrices over the same partition.
// Errors: matrix.ErrNilMatrix; ErrShapeMismatch when ind.N() != Rows(data).
func MeanWithIndicator(data matrix.Matrix, ind *Indicator, opts ...Option) (*matrix.Dense, error) {
	if ind == nil {
		return nil, partitionErrorf(opMean, matrix.ErrNilMatrix)
	}
	if err := checkRows(opMean, data, ind.N()); err != nil {
		return nil, err
	}

	return groupMean(opMean, data, ind, gatherOptions(opts...))
}

// checkRows validates data presence and that it has exactly n rows.
func checkRows(tag string, data matrix.Matrix, n int) error {
	if err := matrix.ValidateNotNil(data); err != nil {
		return partitionErrorf(tag, err)
	}
	if data.Rows() != n {
		return shapeErrorf(tag, "partition length vs data rows", n, data.Rows())
	}

	return nil
}

// groupSum computes Gather × data. Inputs are assumed validated.
func groupSum(tag string, data matrix.Matrix, ind *Indicator, o Options) (*matrix.Dense, error) {
	d, err := matrix.AsDense(data)
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}
	gather, err := ind.Gather()
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}
	sums, err := gather.MulDense(d, o.workers)
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}

	return sums, nil
}

// groupMean divides groupSum by the member counts. Inputs are assumed validated.
func groupMean(tag string, data matrix.Matrix, ind *Indicator, o Options) (*matrix.Dense, error) {
	sums, err := groupSum(tag, data, ind, o)
	if err != nil {
		return nil, err
	}
	means, err := matrix.DivideRows(sums, ind.countsFloat())
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}

	return means, nil
}
