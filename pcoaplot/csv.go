// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat"
)

var float64Type = reflect.TypeOf(float64(0))

// parseTable reads a CSV document with a header row into a table,
// coercing columns to int or float64 where all values parse.
func parseTable(r io.Reader) (*table.Table, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	return table.TableFromStrings(rows[0], rows[1:], true), nil
}

// readTable reads the CSV table at path, or standard input if path
// is "-".
func readTable(path string) *table.Table {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}
	t, err := parseTable(f)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	return t
}

// isNumeric reports whether a table column can be converted to
// []float64.
func isNumeric(col interface{}) bool {
	return reflect.TypeOf(col).Elem().ConvertibleTo(float64Type)
}

func floatCol(t *table.Table, name string) []float64 {
	var out []float64
	slice.Convert(&out, t.MustColumn(name))
	return out
}

// stringsOf renders any table column as strings.
func stringsOf(col interface{}) []string {
	if ss, ok := col.([]string); ok {
		return ss
	}
	rv := reflect.ValueOf(col)
	ss := make([]string, rv.Len())
	for i := range ss {
		ss[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return ss
}

// scoreMatrix splits a scores table into observation names and a
// row-per-observation coordinate matrix. The first non-numeric
// column, if any, names the observations; the numeric columns are
// the ordination axes, in order.
func scoreMatrix(t *table.Table) ([]string, *mat64.Dense) {
	var names []string
	var axisCols []string
	for _, col := range t.Columns() {
		if isNumeric(t.Column(col)) {
			axisCols = append(axisCols, col)
		} else if names == nil {
			names = stringsOf(t.Column(col))
		}
	}
	if t.Len() == 0 || len(axisCols) == 0 {
		log.Fatal("scores table has no numeric score columns")
	}
	m := mat64.NewDense(t.Len(), len(axisCols), nil)
	for j, col := range axisCols {
		for i, v := range floatCol(t, col) {
			m.Set(i, j, v)
		}
	}
	return names, m
}

// numericTable returns a table holding only the numeric columns of
// t.
func numericTable(t *table.Table) *table.Table {
	b := new(table.Builder)
	for _, col := range t.Columns() {
		if isNumeric(t.Column(col)) {
			b.Add(col, t.Column(col))
		}
	}
	nt := b.Done()
	if len(nt.Columns()) == 0 {
		log.Fatal("table has no numeric columns")
	}
	return nt
}

// eigenvalues returns the first numeric column of t.
func eigenvalues(t *table.Table) []float64 {
	for _, col := range t.Columns() {
		if isNumeric(t.Column(col)) {
			return floatCol(t, col)
		}
	}
	log.Fatal("eigenvalue table has no numeric column")
	return nil
}

// varianceEigenvalues derives eigenvalues from the per-axis variance
// of the scores. Principal coordinate axes are centered, so their
// variances are proportional to the eigenvalues and give the same
// percentages.
func varianceEigenvalues(pts *mat64.Dense) []float64 {
	n, k := pts.Dims()
	col := make([]float64, n)
	eig := make([]float64, k)
	for j := range eig {
		for i := range col {
			col[i] = pts.At(i, j)
		}
		eig[j] = stat.Variance(col, nil)
	}
	return eig
}

// loadGroups resolves the -groups flag: a path to a single-column
// CSV file, or the name of a column in one of tabs. nil tabs are
// skipped.
func loadGroups(src string, tabs ...*table.Table) []string {
	if _, err := os.Stat(src); err == nil {
		t := readTable(src)
		cols := t.Columns()
		if len(cols) == 0 {
			log.Fatalf("%s: no group column", src)
		}
		return stringsOf(t.Column(cols[0]))
	}
	for _, t := range tabs {
		if t == nil {
			continue
		}
		for _, col := range t.Columns() {
			if col == src {
				return stringsOf(t.Column(col))
			}
		}
	}
	log.Fatalf("groups column or file %q not found", src)
	return nil
}

// parseAxes parses a 1-based "i,j" axis pair into 0-based indexes.
func parseAxes(s string) ([2]int, error) {
	var axes [2]int
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return axes, fmt.Errorf("invalid axes %q; want two comma-separated axis numbers", s)
	}
	for i, part := range parts {
		a, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || a < 1 {
			return axes, fmt.Errorf("invalid axis %q; axes are numbered from 1", part)
		}
		axes[i] = a - 1
	}
	return axes, nil
}
