// Package matrix offers dense row-major float64 storage and the element-wise
// kernels the partition engine composes.
//
// The matrix package provides:
//
//   - Dense, a bounds-checked row-major matrix with a finite-only numeric
//     policy, flat-buffer fast paths and SelectRows for broadcast-back.
//   - Element-wise kernels (Sub, Hadamard, Divide, DivideRows, Sqrt,
//     AddScalar) with a generic At-based fallback for any Matrix.
//   - Row norms and column means.
//   - Adapters from and to gonum's mat.Dense.
//
// Every kernel allocates its result and never mutates its operands.
package matrix
