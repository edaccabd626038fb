// Package sparse provides the compressed sparse row (CSR) operator used to
// express group-wise reductions as linear algebra.
//
// A partition of n rows into k groups is an indicator relation with exactly
// one nonzero per row. Stored as CSR it costs O(n) memory for any k, and the
// three kernels here (ScaleCols, MulDense, RowMax) turn "reduce per group"
// into a single pass over those n entries.
package sparse
