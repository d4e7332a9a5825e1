// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biplot

import (
	"math"

	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/go-pcoa/plot"
	"github.com/gonum/stat"
)

// ellipseSegs is the number of points traced along each half of a
// confidence ellipse outline.
const ellipseSegs = 50

// confidenceEllipse returns a closed path tracing the prob
// confidence region of the bivariate normal distribution fitted to
// xs, ys. ok is false if there are fewer than three points or their
// covariance is singular.
func confidenceEllipse(xs, ys []float64, prob float64) (path []plot.Point, ok bool) {
	if len(xs) < 3 {
		return nil, false
	}
	mx, my := stat.Mean(xs, nil), stat.Mean(ys, nil)

	// Upper Cholesky factor of the 2×2 sample covariance matrix.
	u00 := math.Sqrt(stat.Variance(xs, nil))
	if u00 == 0 {
		return nil, false
	}
	u01 := stat.Covariance(xs, ys, nil) / u00
	u11 := math.Sqrt(stat.Variance(ys, nil) - u01*u01)
	if u11 == 0 || math.IsNaN(u11) {
		return nil, false
	}

	// The squared Mahalanobis radius enclosing probability prob
	// is the chi-squared quantile with two degrees of freedom,
	// which has the closed form -2·ln(1-prob).
	radius := math.Sqrt(-2 * math.Log(1-prob))

	// Trace the unit circle from -π to π and back so the path
	// begins and ends at the same point, then map it through the
	// Cholesky factor.
	thetas := append(vec.Linspace(-math.Pi, math.Pi, ellipseSegs),
		vec.Linspace(math.Pi, -math.Pi, ellipseSegs)...)
	path = make([]plot.Point, len(thetas))
	for i, theta := range thetas {
		c, s := math.Cos(theta), math.Sin(theta)
		path[i] = plot.Point{
			X: mx + radius*c*u00,
			Y: my + radius*(c*u01+s*u11),
		}
	}
	return path, true
}
