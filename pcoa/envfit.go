// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcoa

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// EnvFit fits environmental variables to a plane of an ordination.
//
// The zero value fits with 999 permutations using the global random
// source.
type EnvFit struct {
	// Permutations is the number of permutations used to estimate
	// P values. If it is 0, 999 are used.
	Permutations int

	// Rand is the source of permutations. If it is nil, the
	// global source is used.
	Rand *rand.Rand
}

// A FitResult holds fitted environmental vectors: for each variable,
// the unit direction of steepest increase across the ordination
// plane, the squared correlation r² measuring the fit, and a
// permutation P value.
type FitResult struct {
	Names  []string
	Arrows *mat64.Dense // m×2 unit direction cosines
	R2     []float64
	P      []float64
}

// Fit fits each column of env to the plane spanned by the two given
// axes of r. For each variable, the direction is the least-squares
// regression of the centered variable on the centered axis scores,
// normalized to unit length, and r² is the fraction of the
// variable's variance the regression explains. A constant column has
// r² = 0 and a non-finite direction.
//
// P values come from a permutation test: the variable is shuffled
// and refitted, and P = (hits+1)/(permutations+1) where hits counts
// permuted fits with r² at least the observed one. Note that this is
// a Monte Carlo method, so P values vary slightly between calls
// unless Rand is fixed. Arrows and R2 are deterministic.
func (f EnvFit) Fit(r *Result, axes [2]int, env *table.Table) (*FitResult, error) {
	n := r.Len()
	for _, a := range axes {
		if a < 0 || a >= r.Dims() {
			return nil, fmt.Errorf("axis %d out of range [0,%d)", a, r.Dims())
		}
	}
	if axes[0] == axes[1] {
		return nil, fmt.Errorf("axes %d and %d must be distinct", axes[0], axes[1])
	}
	if env.Len() != n {
		return nil, fmt.Errorf("env table has %d rows; ordination has %d", env.Len(), n)
	}
	if n < 3 {
		return nil, fmt.Errorf("need at least 3 observations to fit vectors; have %d", n)
	}

	perms := f.Permutations
	if perms == 0 {
		perms = 999
	}
	shuffle := rand.Shuffle
	if f.Rand != nil {
		shuffle = f.Rand.Shuffle
	}

	// The regression design is the same for every variable and
	// every permutation: the centered axis scores.
	x1, x2 := center(r.Axis(axes[0])), center(r.Axis(axes[1]))
	xData := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		xData[2*i], xData[2*i+1] = x1[i], x2[i]
	}
	X := mat64.NewDense(n, 2, xData)
	lhs := mat64.NewDense(2, 2, nil)
	lhs.Mul(X.T(), X)

	// fitOne solves the normal equations (𝐗ᵀ𝐗)b = 𝐗ᵀy for the
	// regression of y, which must be centered, on the two axes,
	// and returns the coefficients along with the fraction of y's
	// variance the fit explains.
	rhs := mat64.NewVector(2, nil)
	yhat := make([]float64, n)
	fitOne := func(y []float64) (b [2]float64, r2 float64, err error) {
		rhs.MulVec(X.T(), mat64.NewVector(n, y))
		bv := mat64.NewVector(2, b[:])
		if err := bv.SolveVec(lhs, rhs); err != nil {
			return b, 0, fmt.Errorf("axes are degenerate: %v", err)
		}
		for i := range yhat {
			yhat[i] = b[0]*x1[i] + b[1]*x2[i]
		}
		ssTot := floats.Dot(y, y)
		if ssTot == 0 {
			return b, 0, nil
		}
		return b, floats.Dot(yhat, yhat) / ssTot, nil
	}

	names := env.Columns()
	if len(names) == 0 {
		return nil, fmt.Errorf("environment table has no columns")
	}
	fit := &FitResult{
		Names:  names,
		Arrows: mat64.NewDense(len(names), 2, nil),
		R2:     make([]float64, len(names)),
		P:      make([]float64, len(names)),
	}
	perm := make([]float64, n)
	for i, name := range names {
		y, err := floatColumn(env, name)
		if err != nil {
			return nil, err
		}
		y = center(y)

		b, r2, err := fitOne(y)
		if err != nil {
			return nil, fmt.Errorf("fitting %q: %v", name, err)
		}
		norm := math.Hypot(b[0], b[1])
		fit.Arrows.Set(i, 0, b[0]/norm)
		fit.Arrows.Set(i, 1, b[1]/norm)
		fit.R2[i] = r2

		hits := 0
		copy(perm, y)
		for j := 0; j < perms; j++ {
			shuffle(n, func(a, b int) {
				perm[a], perm[b] = perm[b], perm[a]
			})
			if _, r2p, err := fitOne(perm); err != nil {
				return nil, fmt.Errorf("fitting %q: %v", name, err)
			} else if r2p >= r2 {
				hits++
			}
		}
		fit.P[i] = float64(hits+1) / float64(perms+1)
	}
	return fit, nil
}

// center returns a copy of xs shifted to zero mean.
func center(xs []float64) []float64 {
	out := append([]float64(nil), xs...)
	floats.AddConst(-stats.Mean(xs), out)
	return out
}
