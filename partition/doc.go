// Package partition computes per-group statistics over the rows of a feature
// matrix, where group membership is an arbitrary integer label per row.
//
// Labels need not be contiguous or sorted. Every call derives the groups
// from the data: the distinct labels in ascending order define the group
// ranks 0..k-1, and every aggregate is indexed by rank, never by label value.
//
// All reductions go through a sparse indicator relation with one entry per
// row (see Indicator), so memory stays O(n) regardless of the number of
// groups and no per-group row lists are ever built:
//
//	Mean      Gather × X, divided by member counts           (k×f)
//	Max       RowMax(Gather · diag(v)), v ≥ 0                 (k)
//	MaxRadius Max over row norms                               (k)
//	Std       sqrt(Mean((X - M)²)) + eps, M broadcast means   (k×f)
//	Normalize (X - M) ⊘ S with M, S broadcast back to rows    (n×f)
//
// Every function is pure: inputs are never mutated and no state survives a
// call. WithWorkers parallelizes the sparse kernels without changing results.
package partition
