// SPDX-License-Identifier: MIT

// Package dataset reads and writes labelled feature tables as CSV: one row
// per sample, one integer label column, every other column a float64 feature.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/groupagg/matrix"
)

var (
	// ErrEmptyRecord is returned for a record with no feature columns.
	ErrEmptyRecord = errors.New("dataset: record has no features")

	// ErrBadLabel is returned when the label field is not an integer.
	ErrBadLabel = errors.New("dataset: invalid label")

	// ErrBadValue is returned when a feature field is not a finite float.
	ErrBadValue = errors.New("dataset: invalid feature value")
)

// Layout describes the CSV shape.
type Layout struct {
	Header      bool // first record holds column names
	Comma       rune // field separator; 0 means ','
	LabelColumn int  // index of the label field
}

// Table is a parsed dataset.
type Table struct {
	Columns []string      // feature column names (nil without header)
	Labels  []int         // one label per row
	Data    *matrix.Dense // n×f features
}

// Read parses a labelled table. An input with no data records yields n=0
// with the feature count taken from the header (0 without one).
// Errors carry the 1-based data record number; a header is not counted.
func Read(r io.Reader, layout Layout) (*Table, error) {
	cr := csv.NewReader(r)
	if layout.Comma != 0 {
		cr.Comma = layout.Comma
	}
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	t := &Table{}
	f := -1
	if layout.Header {
		rec, err := cr.Read()
		if err == io.EOF {
			return emptyTable(t, 0)
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: header: %w", err)
		}
		if layout.LabelColumn >= len(rec) {
			return nil, fmt.Errorf("dataset: header: label column %d of %d: %w", layout.LabelColumn, len(rec), ErrEmptyRecord)
		}
		t.Columns = featureFields(rec, layout.LabelColumn)
		f = len(t.Columns)
	}

	var buf []float64
	for num := 1; ; num++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		if f < 0 {
			f = len(rec) - 1
		}
		if f < 1 || layout.LabelColumn >= len(rec) {
			return nil, fmt.Errorf("dataset: record %d: %w", num, ErrEmptyRecord)
		}
		label, err := strconv.Atoi(rec[layout.LabelColumn])
		if err != nil {
			return nil, fmt.Errorf("dataset: record %d: %q: %w", num, rec[layout.LabelColumn], ErrBadLabel)
		}
		t.Labels = append(t.Labels, label)
		for j, field := range rec {
			if j == layout.LabelColumn {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("dataset: record %d field %d: %q: %w", num, j, field, ErrBadValue)
			}
			buf = append(buf, v)
		}
	}

	if len(t.Labels) == 0 {
		return emptyTable(t, max(f, 0))
	}
	data, err := matrix.NewDenseData(len(t.Labels), f, buf)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w: %w", ErrBadValue, err)
	}
	t.Data = data

	return t, nil
}

func emptyTable(t *Table, f int) (*Table, error) {
	data, err := matrix.NewZeros(0, f)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	t.Labels = []int{}
	t.Data = data

	return t, nil
}

func featureFields(rec []string, labelCol int) []string {
	out := make([]string, 0, len(rec)-1)
	for j, name := range rec {
		if j != labelCol {
			out = append(out, name)
		}
	}

	return out
}

// Write emits a table in the canonical layout: label first, then features,
// with a header when t.Columns is set. Floats use the shortest exact form.
func Write(w io.Writer, t *Table, comma rune) error {
	if t == nil || t.Data == nil {
		return fmt.Errorf("dataset: write: %w", matrix.ErrNilMatrix)
	}
	n, f := t.Data.Shape()
	if len(t.Labels) != n {
		return fmt.Errorf("dataset: write: %d labels for %d rows: %w", len(t.Labels), n, matrix.ErrDimensionMismatch)
	}
	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}
	rec := make([]string, f+1)
	if t.Columns != nil {
		if len(t.Columns) != f {
			return fmt.Errorf("dataset: write: %d column names for %d features: %w", len(t.Columns), f, matrix.ErrDimensionMismatch)
		}
		rec[0] = "label"
		copy(rec[1:], t.Columns)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("dataset: write header: %w", err)
		}
	}
	for i := 0; i < n; i++ {
		rec[0] = strconv.Itoa(t.Labels[i])
		for j, v := range t.Data.RawRow(i) {
			rec[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("dataset: write record %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("dataset: write: %w", err)
	}

	return nil
}
