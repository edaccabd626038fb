// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/groupagg/internal/dataset"
	"github.com/katalvlaran/groupagg/matrix"
	"github.com/katalvlaran/groupagg/partition"
)

// Aggregation names accepted by --ops.
const (
	opCount     = "count"
	opSum       = "sum"
	opMean      = "mean"
	opStd       = "std"
	opMax       = "max"
	opMaxRadius = "max-radius"
)

var (
	knownOps   = []string{opCount, opSum, opMean, opStd, opMax, opMaxRadius}
	defaultOps = []string{opCount, opMean, opStd, opMaxRadius}

	errUnknownOp = errors.New("unknown aggregation")
)

// groupReport is one group's row of the aggregate report.
type groupReport struct {
	Label     int       `json:"label" yaml:"label"`
	Count     int       `json:"count" yaml:"count"`
	Sum       []float64 `json:"sum,omitempty" yaml:"sum,omitempty"`
	Mean      []float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Std       []float64 `json:"std,omitempty" yaml:"std,omitempty"`
	Max       *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	MaxRadius *float64  `json:"max_radius,omitempty" yaml:"max_radius,omitempty"`
}

// aggregateReport is the full output of the aggregate command.
type aggregateReport struct {
	Rows     int           `json:"rows" yaml:"rows"`
	Features int           `json:"features" yaml:"features"`
	Columns  []string      `json:"columns,omitempty" yaml:"columns,omitempty"`
	Epsilon  float64       `json:"epsilon" yaml:"epsilon"`
	Groups   []groupReport `json:"groups" yaml:"groups"`
}

func newAggregateCmd(a *app) *cobra.Command {
	var (
		input    string
		ops      []string
		valueCol int
	)
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Report per-group statistics",
		Long: `Computes the selected per-group statistics and prints one report entry per
group in ascending label order. "max" reduces the feature selected by
--value-column, which must be non-negative unless --no-check is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := a.readTable(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			rep, err := a.aggregate(tbl, ops, valueCol)
			if err != nil {
				return err
			}

			return a.encode(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "Input CSV path (- for stdin)")
	cmd.Flags().StringSliceVar(&ops, "ops", defaultOps, fmt.Sprintf("Aggregations to compute %v", knownOps))
	cmd.Flags().IntVar(&valueCol, "value-column", 0, "Feature index reduced by the max aggregation")

	return cmd
}

// aggregate runs the requested reductions over a shared indicator.
func (a *app) aggregate(tbl *dataset.Table, ops []string, valueCol int) (*aggregateReport, error) {
	for _, op := range ops {
		if !slices.Contains(knownOps, op) {
			return nil, fmt.Errorf("%w %q (want one of %v)", errUnknownOp, op, knownOps)
		}
	}
	want := func(op string) bool { return slices.Contains(ops, op) }
	opts := a.cfg.PartitionOptions()
	ind := partition.NewIndicator(tbl.Labels)
	labels, counts := ind.Labels(), ind.Counts()

	rep := &aggregateReport{
		Rows:     tbl.Data.Rows(),
		Features: tbl.Data.Cols(),
		Columns:  tbl.Columns,
		Epsilon:  a.cfg.Epsilon,
		Groups:   make([]groupReport, ind.K()),
	}
	for g := range rep.Groups {
		rep.Groups[g].Label = labels[g]
		rep.Groups[g].Count = counts[g]
	}

	start := time.Now()
	if want(opSum) {
		sums, err := partition.Sum(tbl.Data, tbl.Labels, opts...)
		if err != nil {
			return nil, err
		}
		for g := range rep.Groups {
			rep.Groups[g].Sum = sums.RawRow(g)
		}
	}
	if want(opMean) || want(opStd) {
		means, err := partition.MeanWithIndicator(tbl.Data, ind, opts...)
		if err != nil {
			return nil, err
		}
		if want(opMean) {
			for g := range rep.Groups {
				rep.Groups[g].Mean = means.RawRow(g)
			}
		}
		if want(opStd) {
			rowMeans, err := ind.Broadcast(means)
			if err != nil {
				return nil, err
			}
			stds, err := partition.Std(tbl.Data, rowMeans, tbl.Labels, opts...)
			if err != nil {
				return nil, err
			}
			for g := range rep.Groups {
				rep.Groups[g].Std = stds.RawRow(g)
			}
		}
	}
	if want(opMax) {
		values, err := column(tbl.Data, valueCol)
		if err != nil {
			return nil, err
		}
		maxes, err := partition.Max(values, tbl.Labels, opts...)
		if err != nil {
			return nil, err
		}
		for g := range rep.Groups {
			rep.Groups[g].Max = &maxes[g]
		}
	}
	if want(opMaxRadius) {
		radii, err := partition.MaxRadius(tbl.Data, tbl.Labels, opts...)
		if err != nil {
			return nil, err
		}
		for g := range rep.Groups {
			rep.Groups[g].MaxRadius = &radii[g]
		}
	}
	a.log.Info().
		Int("groups", ind.K()).
		Strs("ops", ops).
		Dur("elapsed", time.Since(start)).
		Msg("aggregation done")

	return rep, nil
}

// column copies feature j of every row.
func column(d *matrix.Dense, j int) ([]float64, error) {
	if j < 0 || j >= d.Cols() {
		return nil, fmt.Errorf("value column %d of %d features: %w", j, d.Cols(), matrix.ErrOutOfRange)
	}
	out := make([]float64, d.Rows())
	for i := range out {
		out[i] = d.RawRow(i)[j]
	}

	return out, nil
}
