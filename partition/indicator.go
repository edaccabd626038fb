// SPDX-License-Identifier: MIT
// Package partition - indicator-matrix builder.
//
// Purpose:
//   - Turn a partition vector (one integer label per row) into the three facts
//     every reduction needs: sorted distinct labels, their multiplicities and
//     the rank of every row.
//   - Expose the indicator relation as a sparse operator in both orientations:
//     Scatter (n×k, row → group) and Gather (k×n, group ← rows).
//
// Contract:
//   - Group order is ascending distinct label value, re-derived on every build.
//     A label value is never used as an index; only its rank is.
//   - Exactly one stored entry per row: O(n) nonzeros for every k.
//     A dense n×k matrix is never formed.
//
// Complexity:
//   - NewIndicator: O(n log n) (sort of a label copy) + O(n log k) ranking.
//   - Scatter/Gather: O(n + k) each.

package partition

import (
	"slices"

	"github.com/katalvlaran/groupagg/matrix"
	"github.com/katalvlaran/groupagg/sparse"
)

// Indicator is the row→group relation implied by a partition vector.
// It is immutable after construction and safe for concurrent readers.
type Indicator struct {
	labels []int // sorted distinct labels; labels[g] is the label of rank g
	counts []int // counts[g] = members of rank g
	ranks  []int // ranks[i] = rank of row i's label
}

// NewIndicator derives the indicator relation of a partition vector.
// Implementation:
//   - Stage 1: sort a copy of the labels and compact it to distinct values.
//   - Stage 2: rank every row by binary search and count members per rank.
//
// Behavior highlights:
//   - Any int is a valid label, negative values included.
//   - A nil or empty partition yields N()=0, K()=0.
//   - The input slice is neither retained nor mutated.
//
// Complexity:
//   - Time O(n log n), Space O(n).
func NewIndicator(labels []int) *Indicator {
	n := len(labels)
	distinct := slices.Clone(labels)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)
	distinct = slices.Clip(distinct)
	if distinct == nil {
		distinct = []int{}
	}

	ranks := make([]int, n)
	counts := make([]int, len(distinct))
	for i, l := range labels {
		g, _ := slices.BinarySearch(distinct, l) // always found: distinct ⊇ labels
		ranks[i] = g
		counts[g]++
	}

	return &Indicator{labels: distinct, counts: counts, ranks: ranks}
}

// Counts returns the sorted distinct labels of a partition and the number of
// rows carrying each. It is the label/multiplicity half of NewIndicator.
// Complexity: O(n log n).
func Counts(labels []int) (distinct []int, counts []int) {
	ind := NewIndicator(labels)
	return ind.Labels(), ind.Counts()
}

// N returns the number of rows (partition length). Complexity: O(1).
func (ind *Indicator) N() int { return len(ind.ranks) }

// K returns the number of distinct groups. Complexity: O(1).
func (ind *Indicator) K() int { return len(ind.labels) }

// Labels returns a copy of the sorted distinct labels (rank order).
func (ind *Indicator) Labels() []int { return slices.Clone(ind.labels) }

// Counts returns a copy of the member count per rank.
func (ind *Indicator) Counts() []int { return slices.Clone(ind.counts) }

// Ranks returns a copy of the per-row rank vector (the broadcast index map).
func (ind *Indicator) Ranks() []int { return slices.Clone(ind.ranks) }

// Rank returns the rank of label and whether the label occurs in the partition.
// Complexity: O(log k).
func (ind *Indicator) Rank(label int) (int, bool) {
	return slices.BinarySearch(ind.labels, label)
}

// countsFloat returns the multiplicities as float64 divisors.
func (ind *Indicator) countsFloat() []float64 {
	out := make([]float64, len(ind.counts))
	for g, c := range ind.counts {
		out[g] = float64(c)
	}
	return out
}

// Scatter returns the n×k indicator: row i holds a single 1 at column rank(i).
// Scatter × A (A k×f) broadcasts a group aggregate back to rows.
// Complexity: Time O(n + k), Space O(n + k).
func (ind *Indicator) Scatter() (*sparse.CSR, error) {
	n := len(ind.ranks)
	rows := make([]int, n)
	ones := make([]float64, n)
	for i := range rows {
		rows[i] = i
		ones[i] = 1
	}
	m, err := sparse.NewCSR(n, len(ind.labels), rows, ind.ranks, ones)
	if err != nil {
		return nil, partitionErrorf(opIndicator, err)
	}

	return m, nil
}

// Gather returns the k×n indicator (the transpose of Scatter): row g holds a 1
// at every member row of group g, in ascending row order.
// Gather × X (X n×f) yields per-group sums.
// Complexity: Time O(n + k), Space O(n + k).
func (ind *Indicator) Gather() (*sparse.CSR, error) {
	s, err := ind.Scatter()
	if err != nil {
		return nil, err
	}

	return s.Transpose(), nil
}

// Broadcast expands a k×f group aggregate to n×f: row i receives row rank(i).
// Equivalent to Scatter × agg, computed as a direct row gather.
// Errors: matrix.ErrNilMatrix; ErrShapeMismatch when agg does not have K rows.
// Complexity: Time O(n·f), Space O(n·f).
func (ind *Indicator) Broadcast(agg matrix.Matrix) (*matrix.Dense, error) {
	d, err := matrix.AsDense(agg)
	if err != nil {
		return nil, partitionErrorf(opBroadcast, err)
	}
	if d.Rows() != ind.K() {
		return nil, shapeErrorf(opBroadcast, "aggregate rows", d.Rows(), ind.K())
	}
	out, err := d.SelectRows(ind.ranks)
	if err != nil {
		return nil, partitionErrorf(opBroadcast, err)
	}

	return out, nil
}

// BroadcastVec expands a length-k per-group vector to length n.
// Errors: ErrShapeMismatch when len(agg) != K.
// Complexity: O(n).
func (ind *Indicator) BroadcastVec(agg []float64) ([]float64, error) {
	if len(agg) != ind.K() {
		return nil, shapeErrorf(opBroadcast, "aggregate length", len(agg), ind.K())
	}
	out := make([]float64, len(ind.ranks))
	for i, g := range ind.ranks {
		out[i] = agg[g]
	}

	return out, nil
}
