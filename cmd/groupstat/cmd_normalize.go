// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/groupagg/internal/dataset"
	"github.com/katalvlaran/groupagg/partition"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Z-score every row within its group",
		Long: `Writes the input table back with each feature replaced by
(value - group mean) / group std. Labels and column names are preserved;
the label is always written as the first column.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := a.readTable(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			z, err := partition.Normalize(tbl.Data, tbl.Labels, a.cfg.PartitionOptions()...)
			if err != nil {
				return err
			}
			out := &dataset.Table{Columns: tbl.Columns, Labels: tbl.Labels, Data: z}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err = dataset.Write(w, out, a.cfg.Comma()); err != nil {
				return err
			}
			a.log.Info().Str("output", output).Int("rows", z.Rows()).Msg("normalized table written")

			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "Input CSV path (- for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output CSV path (- for stdout)")

	return cmd
}
