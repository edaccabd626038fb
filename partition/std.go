// SPDX-License-Identifier: MIT

package partition

import (
	"github.com/katalvlaran/groupagg/matrix"
)

// Std returns the k×f per-group (population) standard deviation of data
// around caller-supplied broadcast means, plus a fixed epsilon.
// MAIN DESCRIPTION:
//   - sqrt(Mean((data - means)²)) + eps, reported at group granularity.
//
// Inputs:
//   - data  : n×f feature matrix.
//   - means : n×f broadcast-back means (row i holds the mean of row i's group);
//     used as given, never recomputed.
//   - labels: partition vector of length n.
//
// Behavior highlights:
//   - The epsilon (DefaultEpsilon unless WithEpsilon) is added before any
//     broadcast-back, so a singleton group reports exactly eps, never 0.
//
// Errors:
//   - matrix.ErrNilMatrix (nil data or means).
//   - ErrShapeMismatch when len(labels) != Rows(data) or means' shape != data's.
//
// Complexity:
//   - Time O(n log n + n·f), Space O(n·f).
func Std(data, means matrix.Matrix, labels []int, opts ...Option) (*matrix.Dense, error) {
	if err := checkRows(opStd, data, len(labels)); err != nil {
		return nil, err
	}
	if err := checkSameShape(opStd, data, means); err != nil {
		return nil, err
	}

	return groupStd(opStd, data, means, NewIndicator(labels), gatherOptions(opts...))
}

// checkSameShape validates that means is present and shaped like data.
func checkSameShape(tag string, data, means matrix.Matrix) error {
	if err := matrix.ValidateNotNil(means); err != nil {
		return partitionErrorf(tag, err)
	}
	if means.Rows() != data.Rows() {
		return shapeErrorf(tag, "means rows", means.Rows(), data.Rows())
	}
	if means.Cols() != data.Cols() {
		return shapeErrorf(tag, "means cols", means.Cols(), data.Cols())
	}

	return nil
}

// groupStd composes Sub → Hadamard → groupMean → Sqrt → AddScalar.
// Inputs are assumed validated.
func groupStd(tag string, data, means matrix.Matrix, ind *Indicator, o Options) (*matrix.Dense, error) {
	dev, err := matrix.Sub(data, means)
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}
	sq, err := matrix.Hadamard(dev, dev)
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}
	variance, err := groupMean(tag, sq, ind, o)
	if err != nil {
		return nil, err
	}
	sd, err := matrix.Sqrt(variance)
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}
	out, err := matrix.AddScalar(sd, o.eps)
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}

	return out, nil
}
