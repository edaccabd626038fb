// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/groupagg/internal/config"
	"github.com/katalvlaran/groupagg/internal/dataset"
)

// readTable loads the input CSV ("-" or empty reads stdin).
func (a *app) readTable(path string, stdin io.Reader) (*dataset.Table, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	tbl, err := dataset.Read(r, dataset.Layout{
		Header:      a.cfg.Dataset.Header,
		Comma:       a.cfg.Comma(),
		LabelColumn: a.cfg.Dataset.LabelColumn,
	})
	if err != nil {
		return nil, err
	}
	a.log.Info().
		Str("input", path).
		Int("rows", tbl.Data.Rows()).
		Int("features", tbl.Data.Cols()).
		Msg("dataset loaded")

	return tbl, nil
}

// encode writes v in the configured report format.
func (a *app) encode(w io.Writer, v any) error {
	switch a.cfg.Format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
