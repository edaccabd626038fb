// SPDX-License-Identifier: MIT

package partition

import (
	"github.com/katalvlaran/groupagg/matrix"
)

// Normalize z-scores every row within its own group:
// out[i] = (data[i] - mean[g]) / std[g] with g = rank of row i.
// Implementation:
//   - Stage 1: build the indicator once.
//   - Stage 2: group means, broadcast back to n×f.
//   - Stage 3: group stds around the broadcast means, broadcast back to n×f.
//   - Stage 4: (data - means) ⊘ stds.
//
// Behavior highlights:
//   - Groups with ≥2 members come out with ≈0 mean per feature.
//   - Singleton (or constant) groups map to 0: the deviation is 0 and the
//     std is epsilon.
//   - With WithEpsilon(0), constant groups divide 0/0 and produce NaN.
//
// Errors:
//   - matrix.ErrNilMatrix; ErrShapeMismatch when len(labels) != Rows(data).
//
// Complexity:
//   - Time O(n log n + n·f), Space O(n·f).
func Normalize(data matrix.Matrix, labels []int, opts ...Option) (*matrix.Dense, error) {
	if err := checkRows(opNormalize, data, len(labels)); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	ind := NewIndicator(labels)

	means, err := groupMean(opNormalize, data, ind, o)
	if err != nil {
		return nil, err
	}
	rowMeans, err := ind.Broadcast(means)
	if err != nil {
		return nil, partitionErrorf(opNormalize, err)
	}
	stds, err := groupStd(opNormalize, data, rowMeans, ind, o)
	if err != nil {
		return nil, err
	}
	rowStds, err := ind.Broadcast(stds)
	if err != nil {
		return nil, partitionErrorf(opNormalize, err)
	}
	dev, err := matrix.Sub(data, rowMeans)
	if err != nil {
		return nil, partitionErrorf(opNormalize, err)
	}
	out, err := matrix.Divide(dev, rowStds)
	if err != nil {
		return nil, partitionErrorf(opNormalize, err)
	}

	return out, nil
}
