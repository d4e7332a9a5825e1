// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcoa

import (
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// WAScores computes weighted-average scores: each column of
// abundance is placed at the average of the rows of points, weighted
// by the column's values. It returns an m×k matrix with one row per
// abundance column, in table column order, along with the column
// names.
//
// All columns of abundance must be numeric, and the table must have
// one row per row of points. A column whose values sum to zero has no
// defined average and gets non-finite coordinates.
func WAScores(points *mat64.Dense, abundance *table.Table) (*mat64.Dense, []string, error) {
	n, k := points.Dims()
	if abundance.Len() != n {
		return nil, nil, fmt.Errorf("abundance table has %d rows; coordinates have %d", abundance.Len(), n)
	}

	names := abundance.Columns()
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("abundance table has no columns")
	}
	scores := mat64.NewDense(len(names), k, nil)
	row := make([]float64, k)
	for i, name := range names {
		w, err := floatColumn(abundance, name)
		if err != nil {
			return nil, nil, err
		}
		wavg := mat64.NewVector(k, row)
		wavg.MulVec(points.T(), mat64.NewVector(n, w))
		floats.Scale(1/floats.Sum(w), row)
		scores.SetRow(i, row)
	}
	return scores, names, nil
}
