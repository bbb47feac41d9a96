// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cube-quadruplets/internal/arith"
	"github.com/pdiddy/cube-quadruplets/internal/verify"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// Format selects an export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown export format %q (want yaml, json or csv)", s)
}

func (f Format) ext() string {
	return string(f)
}

// Row is one exported quadruplet with its derived columns.
type Row struct {
	No            int    `json:"no" yaml:"no"`
	A             int64  `json:"a" yaml:"a"`
	B             int64  `json:"b" yaml:"b"`
	C             int64  `json:"c" yaml:"c"`
	D             int64  `json:"d" yaml:"d"`
	N             int64  `json:"n" yaml:"n"`
	Factor        int64  `json:"factor" yaml:"factor"`
	Type          string `json:"type" yaml:"type"`
	PrimitiveForm string `json:"primitive_form" yaml:"primitive_form"`
	CubeA         string `json:"a3" yaml:"a3"`
	CubeB         string `json:"b3" yaml:"b3"`
	CubeC         string `json:"c3" yaml:"c3"`
	CubeD         string `json:"d3" yaml:"d3"`
	LeftSide      string `json:"d3_minus_a3" yaml:"d3_minus_a3"`
	RightSide     string `json:"b3_plus_c3" yaml:"b3_plus_c3"`
	Check         string `json:"check" yaml:"check"`
}

// Summary aggregates an export.
type Summary struct {
	Total         int    `json:"total" yaml:"total"`
	Primitive     int    `json:"primitive" yaml:"primitive"`
	Scaled        int    `json:"scaled" yaml:"scaled"`
	UniqueFactors int    `json:"unique_factors" yaml:"unique_factors"`
	MeanA         string `json:"mean_a" yaml:"mean_a"`
	MeanD         string `json:"mean_d" yaml:"mean_d"`
	Min           string `json:"min,omitempty" yaml:"min,omitempty"`
	Max           string `json:"max,omitempty" yaml:"max,omitempty"`
}

// Export is the document written by the YAML and JSON encoders.
type Export struct {
	Run     *Run    `json:"run,omitempty" yaml:"run,omitempty"`
	Summary Summary `json:"summary" yaml:"summary"`
	Rows    []Row   `json:"rows" yaml:"rows"`
}

var csvHeader = []string{
	"No", "a", "b", "c", "d", "n", "factor", "type", "primitive form",
	"a3", "b3", "c3", "d3", "d3-a3", "b3+c3", "check",
}

// BuildRows derives export rows for qs, numbered from 1 in input order.
func BuildRows(qs []types.Quadruplet) []Row {
	rows := make([]Row, len(qs))
	for i, q := range qs {
		pf := arith.PrimitiveForm(q)
		v := verify.Quadruplet(q)
		kind := "Primitive"
		if !pf.IsPrimitive() {
			kind = "Scaled"
		}
		check := "Valid"
		if !v.Valid() {
			check = "Invalid"
		}
		rows[i] = Row{
			No: i + 1, A: q.A, B: q.B, C: q.C, D: q.D, N: q.N(),
			Factor:        pf.Factor,
			Type:          kind,
			PrimitiveForm: pf.Primitive.String(),
			CubeA:         v.CubeA,
			CubeB:         v.CubeB,
			CubeC:         v.CubeC,
			CubeD:         v.CubeD,
			LeftSide:      v.LeftSide,
			RightSide:     v.RightSide,
			Check:         check,
		}
	}
	return rows
}

// Summarize computes the aggregate statistics for qs. Min and Max use
// (a, b, c, d) lexicographic order and are empty when qs is empty.
func Summarize(qs []types.Quadruplet) Summary {
	s := Summary{Total: len(qs), MeanA: "0.0", MeanD: "0.0"}
	if len(qs) == 0 {
		return s
	}

	factors := map[int64]bool{}
	var sumA, sumD float64
	lo, hi := qs[0], qs[0]
	for _, q := range qs {
		f := arith.QuadrupletGCD(q)
		factors[f] = true
		if f == 1 {
			s.Primitive++
		} else {
			s.Scaled++
		}
		sumA += float64(q.A)
		sumD += float64(q.D)
		if q.Less(lo) {
			lo = q
		}
		if hi.Less(q) {
			hi = q
		}
	}
	s.UniqueFactors = len(factors)
	s.MeanA = strconv.FormatFloat(sumA/float64(len(qs)), 'f', 1, 64)
	s.MeanD = strconv.FormatFloat(sumD/float64(len(qs)), 'f', 1, 64)
	s.Min = lo.String()
	s.Max = hi.String()
	return s
}

// Write encodes qs in the given format to w. run may be nil.
func Write(w io.Writer, format Format, run *Run, qs []types.Quadruplet) error {
	rows := BuildRows(qs)
	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		data, err := json.MarshalIndent(Export{Run: run, Summary: Summarize(qs), Rows: rows}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(Export{Run: run, Summary: Summarize(qs), Rows: rows})
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown export format %q", format)
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.No),
			strconv.FormatInt(r.A, 10),
			strconv.FormatInt(r.B, 10),
			strconv.FormatInt(r.C, 10),
			strconv.FormatInt(r.D, 10),
			strconv.FormatInt(r.N, 10),
			strconv.FormatInt(r.Factor, 10),
			r.Type, r.PrimitiveForm,
			r.CubeA, r.CubeB, r.CubeC, r.CubeD,
			r.LeftSide, r.RightSide, r.Check,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", r.No, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportRun writes a stored run to <dir>/exports/<run-id>.<format> and
// returns the file path. An empty id exports every distinct quadruplet in
// the catalog to all.<format>.
func (s *Store) ExportRun(ctx context.Context, id string, format Format) (string, error) {
	var (
		run  *Run
		qs   []types.Quadruplet
		name = "all"
	)
	if id != "" {
		r, loaded, err := s.LoadRun(ctx, id)
		if err != nil {
			return "", err
		}
		run, qs, name = &r, loaded, r.ID
	} else {
		all, err := s.Distinct(ctx)
		if err != nil {
			return "", fmt.Errorf("querying for export: %w", err)
		}
		qs = all
	}

	dir := filepath.Join(s.dir, exportsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating exports directory: %w", err)
	}
	path := filepath.Join(dir, name+"."+format.ext())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(f, format, run, qs); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	return path, f.Close()
}
