// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sitesCSV = `site,x,y
A,1,2.5
B,2,0.5
C,3,3.0
`

func TestParseTable(t *testing.T) {
	tab, err := parseTable(strings.NewReader(sitesCSV))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"site", "x", "y"}; !reflect.DeepEqual(tab.Columns(), want) {
		t.Fatalf("columns = %v, want %v", tab.Columns(), want)
	}
	if _, ok := tab.Column("site").([]string); !ok {
		t.Errorf("site column coerced to %T, want []string", tab.Column("site"))
	}
	if isNumeric(tab.Column("site")) {
		t.Errorf("site column reported numeric")
	}
	if !isNumeric(tab.Column("x")) || !isNumeric(tab.Column("y")) {
		t.Errorf("coordinate columns not numeric: %T, %T", tab.Column("x"), tab.Column("y"))
	}

	if _, err := parseTable(strings.NewReader("")); err == nil {
		t.Errorf("empty input parsed without error")
	}
	if _, err := parseTable(strings.NewReader("a,b\n1\n")); err == nil {
		t.Errorf("ragged input parsed without error")
	}
}

func TestScoreMatrix(t *testing.T) {
	tab, err := parseTable(strings.NewReader(sitesCSV))
	if err != nil {
		t.Fatal(err)
	}
	names, m := scoreMatrix(tab)
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	rows, cols := m.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("matrix is %d×%d, want 3×2", rows, cols)
	}
	if m.At(1, 0) != 2 || m.At(2, 1) != 3 {
		t.Errorf("matrix values wrong: %v, %v", m.At(1, 0), m.At(2, 1))
	}

	// Without a name column, names are nil.
	tab, err = parseTable(strings.NewReader("x,y\n1,2\n3,4\n"))
	if err != nil {
		t.Fatal(err)
	}
	names, m = scoreMatrix(tab)
	if names != nil {
		t.Errorf("names = %v, want nil", names)
	}
	if rows, cols := m.Dims(); rows != 2 || cols != 2 {
		t.Errorf("matrix is %d×%d, want 2×2", rows, cols)
	}
}

func TestNumericTable(t *testing.T) {
	tab, err := parseTable(strings.NewReader(sitesCSV))
	if err != nil {
		t.Fatal(err)
	}
	nt := numericTable(tab)
	if want := []string{"x", "y"}; !reflect.DeepEqual(nt.Columns(), want) {
		t.Errorf("columns = %v, want %v", nt.Columns(), want)
	}
	if nt.Len() != 3 {
		t.Errorf("numeric table has %d rows, want 3", nt.Len())
	}
}

func TestEigenvalues(t *testing.T) {
	tab, err := parseTable(strings.NewReader("axis,eig\nPCoA1,4\nPCoA2,2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{4, 2}; !reflect.DeepEqual(eigenvalues(tab), want) {
		t.Errorf("eigenvalues = %v, want %v", eigenvalues(tab), want)
	}
}

func TestVarianceEigenvalues(t *testing.T) {
	tab, err := parseTable(strings.NewReader("x,y\n1,2\n2,4\n3,6\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, m := scoreMatrix(tab)
	eig := varianceEigenvalues(m)
	if want := []float64{1, 4}; !reflect.DeepEqual(eig, want) {
		t.Errorf("eigenvalues = %v, want %v", eig, want)
	}
}

func TestParseAxes(t *testing.T) {
	tests := []struct {
		in   string
		want [2]int
		ok   bool
	}{
		{"1,2", [2]int{0, 1}, true},
		{"3 , 1", [2]int{2, 0}, true},
		{"1", [2]int{}, false},
		{"1,2,3", [2]int{}, false},
		{"0,2", [2]int{}, false},
		{"a,b", [2]int{}, false},
	}
	for _, test := range tests {
		got, err := parseAxes(test.in)
		if (err == nil) != test.ok {
			t.Errorf("parseAxes(%q) error = %v, ok = %v", test.in, err, test.ok)
			continue
		}
		if test.ok && got != test.want {
			t.Errorf("parseAxes(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestLoadGroups(t *testing.T) {
	tab1, err := parseTable(strings.NewReader("x\n1\n2\n"))
	if err != nil {
		t.Fatal(err)
	}
	tab2, err := parseTable(strings.NewReader("grp,id\nctl,1\nexp,2\n"))
	if err != nil {
		t.Fatal(err)
	}

	// Column lookup skips nil tables and non-matching ones.
	if got, want := loadGroups("grp", nil, tab1, tab2), []string{"ctl", "exp"}; !reflect.DeepEqual(got, want) {
		t.Errorf("groups = %v, want %v", got, want)
	}
	// Numeric columns are rendered as strings.
	if got, want := loadGroups("id", tab2), []string{"1", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("groups = %v, want %v", got, want)
	}

	// A file path takes priority and uses the first column.
	path := filepath.Join(t.TempDir(), "groups.csv")
	if err := os.WriteFile(path, []byte("grp\na\nb\nc\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if got, want := loadGroups(path, tab2), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("groups from file = %v, want %v", got, want)
	}
}
