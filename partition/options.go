// SPDX-License-Identifier: MIT

// Package partition: functional options for the aggregation engine.
//
// Design goals:
//   - Deterministic behavior: no global state; defaults are exported constants.
//   - Safe by construction: option constructors panic only on nonsensical
//     values (programmer error), never on data.
package partition

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is added to every group standard deviation so that
	// singleton or constant groups report a strictly positive spread.
	DefaultEpsilon = 1e-12

	// DefaultWorkers runs the sparse kernels inline (no goroutines).
	DefaultWorkers = 1

	// DefaultCheckNonNegative makes Max reject negative values with
	// ErrPreconditionViolation instead of returning undefined maxima.
	DefaultCheckNonNegative = true
)

const (
	panicEpsilonInvalid = "partition: WithEpsilon: eps must be finite, non-negative"
	panicWorkersInvalid = "partition: WithWorkers: n must be >= 1"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options is the resolved engine configuration. Fields are unexported;
// public entry points consume ...Option.
type Options struct {
	eps              float64 // additive std floor
	workers          int     // row blocks for sparse kernels
	checkNonNegative bool    // validate Max precondition
}

// Epsilon reports the configured std floor.
func (o Options) Epsilon() float64 { return o.eps }

// Workers reports the configured worker count.
func (o Options) Workers() int { return o.workers }

// CheckNonNegative reports whether Max validates its input.
func (o Options) CheckNonNegative() bool { return o.checkNonNegative }

// WithEpsilon sets the additive std floor used by Std and Normalize.
// Panics if eps is NaN, ±Inf or negative.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// WithWorkers splits sparse reductions into n row blocks run concurrently.
// Results are bit-identical for every n. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}
	return func(o *Options) { o.workers = n }
}

// WithNonNegativeCheck makes Max reject negative values (the default).
func WithNonNegativeCheck() Option {
	return func(o *Options) { o.checkNonNegative = true }
}

// WithoutNonNegativeCheck skips the O(n) scan in Max. Negative values then
// yield undefined maxima: a group's result may be 0 instead of its true
// (negative) maximum.
func WithoutNonNegativeCheck() Option {
	return func(o *Options) { o.checkNonNegative = false }
}

// NewOptions resolves a set of options on top of the defaults. Useful for
// callers that want to inspect the effective configuration.
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

// gatherOptions applies user setters on top of defaults (last-writer-wins).
// Complexity: Time O(k), Space O(1).
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:              DefaultEpsilon,
		workers:          DefaultWorkers,
		checkNonNegative: DefaultCheckNonNegative,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
