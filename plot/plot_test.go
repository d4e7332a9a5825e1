// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"
	"testing"
)

func TestAdd(t *testing.T) {
	p := New()
	if got := p.Add(PointLayer{}, TextLayer{}); got != p {
		t.Errorf("Add returned %p; want receiver %p", got, p)
	}
	if len(p.Layers) != 2 {
		t.Errorf("got %d layers; want 2", len(p.Layers))
	}
	if _, ok := p.Layers[0].(PointLayer); !ok {
		t.Errorf("layer 0 is %T; want PointLayer", p.Layers[0])
	}
}

func TestDomain(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name                   string
		layers                 []Layer
		xMin, xMax, yMin, yMax float64
	}{
		{
			"empty",
			nil,
			-1, 1, -1, 1,
		},
		{
			"points",
			[]Layer{PointLayer{XY: []Point{{1, 2}, {3, -4}}}},
			1, 3, -4, 2,
		},
		{
			"nonfinite ignored",
			[]Layer{PointLayer{XY: []Point{{nan, nan}, {1, 1}, {math.Inf(1), math.Inf(-1)}}}},
			0, 2, 0, 2,
		},
		{
			"degenerate widened",
			[]Layer{PointLayer{XY: []Point{{5, -3}}}},
			4, 6, -4, -2,
		},
		{
			"text",
			[]Layer{TextLayer{XY: []Point{{-2, 0}, {2, 1}}, Labels: []string{"a", "b"}}},
			-2, 2, 0, 1,
		},
		{
			"arrows",
			[]Layer{ArrowLayer{Segments: []Segment{{Point{0, 0}, Point{2, 3}}}}},
			0, 2, 0, 3,
		},
		{
			"path",
			[]Layer{PathLayer{XY: []Point{{-1, 0}, {1, 5}, {0, -2}}}},
			-1, 1, -2, 5,
		},
		{
			"vertical refline",
			[]Layer{
				PointLayer{XY: []Point{{1, 2}}},
				RefLineLayer{Vertical: true, Value: -10},
			},
			-10, 1, 1, 3,
		},
		{
			"horizontal refline",
			[]Layer{
				PointLayer{XY: []Point{{1, 2}}},
				RefLineLayer{Value: 7},
			},
			0, 2, 2, 7,
		},
	}
	for _, test := range tests {
		p := New().Add(test.layers...)
		xs, ys := p.domain()
		if xs.Min != test.xMin || xs.Max != test.xMax {
			t.Errorf("%s: got x domain [%g,%g]; want [%g,%g]", test.name, xs.Min, xs.Max, test.xMin, test.xMax)
		}
		if ys.Min != test.yMin || ys.Max != test.yMax {
			t.Errorf("%s: got y domain [%g,%g]; want [%g,%g]", test.name, ys.Min, ys.Max, test.yMin, test.yMax)
		}
	}
}
