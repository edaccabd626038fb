// SPDX-License-Identifier: MIT

package partition

import (
	"fmt"

	"github.com/katalvlaran/groupagg/matrix"
)

// Max returns the per-group maximum of non-negative values (rank order).
// MAIN DESCRIPTION:
//   - Gather · diag(values) places each row's value in its group's row of a
//     k×n sparse operator; a sparse row-max then reduces every group.
//
// Implementation:
//   - Stage 1: validate lengths and, unless disabled, non-negativity.
//   - Stage 2: build the gather indicator and scale its columns by values.
//   - Stage 3: RowMax over the scaled operator.
//
// Behavior highlights:
//   - Coordinates outside a group read as implicit zeros; with non-negative
//     input they never exceed a true maximum.
//   - With WithoutNonNegativeCheck, negative input gives undefined results.
//   - A NaN value makes its group's maximum NaN.
//
// Errors:
//   - ErrShapeMismatch when len(values) != len(labels).
//   - ErrPreconditionViolation on a negative value (default policy).
//
// Complexity:
//   - Time O(n log n), Space O(n + k).
func Max(values []float64, labels []int, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	if len(values) != len(labels) {
		return nil, shapeErrorf(opMax, "partition length vs values", len(labels), len(values))
	}
	if o.checkNonNegative {
		if err := validateNonNegative(opMax, values); err != nil {
			return nil, err
		}
	}

	return groupMax(opMax, values, NewIndicator(labels), o)
}

// MaxRadius returns the per-group maximum Euclidean row norm of data.
// Norms are non-negative by construction, so the precondition check of Max
// is not repeated.
// Errors: matrix.ErrNilMatrix; ErrShapeMismatch when len(labels) != Rows(data).
// Complexity: Time O(n·f + n log n), Space O(n + k).
func MaxRadius(data matrix.Matrix, labels []int, opts ...Option) ([]float64, error) {
	if err := checkRows(opMaxRadius, data, len(labels)); err != nil {
		return nil, err
	}
	norms, err := matrix.RowNormsL2(data)
	if err != nil {
		return nil, partitionErrorf(opMaxRadius, err)
	}

	return groupMax(opMaxRadius, norms, NewIndicator(labels), gatherOptions(opts...))
}

// validateNonNegative fails on the first negative value. NaN passes.
func validateNonNegative(tag string, values []float64) error {
	for i, v := range values {
		if v < 0 {
			return partitionErrorf(tag, fmt.Errorf("value %g at row %d: %w", v, i, ErrPreconditionViolation))
		}
	}

	return nil
}

// groupMax reduces values per group via the scaled gather operator.
func groupMax(tag string, values []float64, ind *Indicator, o Options) ([]float64, error) {
	gather, err := ind.Gather()
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}
	scaled, err := gather.ScaleCols(values)
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}
	maxes, err := scaled.RowMax(o.workers)
	if err != nil {
		return nil, partitionErrorf(tag, err)
	}

	return maxes, nil
}
