// Package groupagg is a small engine for per-group statistics over the rows
// of a feature matrix, where each row carries an arbitrary integer label.
//
// 🚀 What is groupagg?
//
//	A pure-Go aggregation core plus a CLI around it:
//		• Group mean, sum and member counts
//		• Group max of non-negative values and max row radius
//		• Group standard deviation with an epsilon floor
//		• Within-group z-score normalization
//
// ✨ How it works
//
//   - Labels are ranked by ascending value on every call; results are indexed
//     by rank, never by label value, so labels may be negative or sparse.
//   - Every reduction is a product with a sparse indicator holding exactly one
//     entry per row: O(n) memory for any number of groups.
//   - Kernels optionally split rows across goroutines with bit-identical results.
//
// Packages:
//
//	matrix/          — dense row-major float64 storage + element-wise kernels
//	sparse/          — CSR storage, transpose, sparse×dense product, row max
//	partition/       — indicator relation and the group aggregations
//	internal/config  — YAML configuration for the CLI
//	internal/dataset — labelled CSV tables
//	cmd/groupstat    — aggregate / normalize / bench commands
//
// Quick example:
//
//	labels  = [ 7,  7, -4 ]
//	data    = [[0,0],[2,0],[10,0]]
//	Mean    → [[10,0],   // label -4
//	           [ 1,0]]   // label  7
//
//	go install github.com/katalvlaran/groupagg/cmd/groupstat@latest
package groupagg
