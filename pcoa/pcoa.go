// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pcoa provides types for working with principal coordinates
// ordinations: the ordination result itself, weighted-average scores
// for the variables underlying it, and environmental vector fitting.
//
// Computing the ordination is out of scope; a Result is typically
// loaded from the output of other software.
package pcoa

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// A Result is a principal coordinates ordination: the coordinates of
// n observations on k axes, plus the eigenvalue of each axis.
type Result struct {
	// Points is the n×k matrix of observation coordinates, one
	// row per observation, one column per ordination axis.
	Points *mat64.Dense

	// Eigenvalues holds the k axis eigenvalues, in axis order.
	Eigenvalues []float64

	// Names optionally labels the observations. It must be nil or
	// have length n.
	Names []string
}

// Len returns the number of observations in r.
func (r *Result) Len() int {
	n, _ := r.Points.Dims()
	return n
}

// Dims returns the number of ordination axes in r.
func (r *Result) Dims() int {
	_, k := r.Points.Dims()
	return k
}

// Axis returns the observation coordinates on axis i as a fresh
// slice. It panics if i is out of range.
func (r *Result) Axis(i int) []float64 {
	n, k := r.Points.Dims()
	if i < 0 || i >= k {
		panic(fmt.Sprintf("axis %d out of range [0,%d)", i, k))
	}
	out := make([]float64, n)
	for j := range out {
		out[j] = r.Points.At(j, i)
	}
	return out
}

// VarianceExplained returns the percentage of the total variance
// captured by each axis: 100·eig[i]/Σeig.
func (r *Result) VarianceExplained() []float64 {
	total := floats.Sum(r.Eigenvalues)
	out := make([]float64, len(r.Eigenvalues))
	for i, e := range r.Eigenvalues {
		out[i] = e / total * 100
	}
	return out
}

var float64Type = reflect.TypeOf(float64(0))

// floatColumn extracts column name of t as []float64. The column
// must exist and must have a numeric type.
func floatColumn(t *table.Table, name string) ([]float64, error) {
	col := t.MustColumn(name)
	if et := reflect.TypeOf(col).Elem(); !et.ConvertibleTo(float64Type) {
		return nil, fmt.Errorf("column %q has type %s; need a numeric column", name, et)
	}
	var out []float64
	slice.Convert(&out, col)
	return out, nil
}
