// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strings"
	"testing"
)

func shouldPanic(t *testing.T, re string, f func()) {
	t.Helper()
	r := regexp.MustCompile(re)
	defer func() {
		err := recover()
		if err == nil {
			t.Fatalf("want panic matching %q; got no panic", re)
		} else if !r.MatchString(fmt.Sprintf("%s", err)) {
			t.Fatalf("panic %q does not match %q", err, re)
		}
	}()
	f()
}

// testPlot returns a plot exercising every layer type plus titles and
// a legend.
func testPlot() *Plot {
	p := New()
	p.Title = "Ordination"
	p.XLabel = "Axis 1"
	p.YLabel = "Axis 2"
	p.Add(
		RefLineLayer{Vertical: true, Value: 0, Dashed: true},
		RefLineLayer{Value: 0, Dashed: true},
		PathLayer{XY: []Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}, Dashed: true},
		PointLayer{XY: []Point{{0.5, 0.5}, {-0.5, 0.25}}, Color: color.RGBA{0x4c, 0x72, 0xb0, 0xff}},
		ArrowLayer{Segments: []Segment{{Point{0, 0}, Point{0.8, 0.3}}}, HeadLength: 8},
		TextLayer{XY: []Point{{0.1, -0.7}}, Labels: []string{"alpha"}, Angles: []float64{45}, HJusts: []float64{0}},
	)
	p.Legend = append(p.Legend,
		LegendEntry{Label: "exposed", Color: color.Black, Shape: Circle},
		LegendEntry{Label: "control", Color: color.Black, Shape: NoShape},
	)
	return p
}

func renderString(t *testing.T, p *Plot, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := p.WriteSVG(&buf, w, h); err != nil {
		t.Fatalf("WriteSVG: %s", err)
	}
	return buf.String()
}

func TestWriteSVG(t *testing.T) {
	got := renderString(t, testPlot(), 600, 500)
	for _, want := range []string{
		"<svg", "</svg>",
		"Ordination", "Axis 1", "Axis 2",
		">alpha<", ">exposed<", ">control<",
		"<circle",
		"clip-path",
		"stroke-dasharray",
		"rotate(-45 ",
		"rotate(-90 ",
		`text-anchor="start"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestWriteSVGEmpty(t *testing.T) {
	got := renderString(t, New(), 200, 200)
	if !strings.Contains(got, "<svg") || !strings.Contains(got, "</svg>") {
		t.Errorf("empty plot did not render an SVG document")
	}
}

func TestWriteSVGLayerOrder(t *testing.T) {
	got := renderString(t, testPlot(), 600, 500)
	// The point layer is added before the text layer, so its
	// circles must be painted first.
	ci, ti := strings.Index(got, "<circle"), strings.Index(got, ">alpha<")
	if ci < 0 || ti < 0 {
		t.Fatalf("output is missing the point or text layer")
	}
	if ci > ti {
		t.Errorf("point layer painted at offset %d, after text layer at %d", ci, ti)
	}
}

func TestWriteSVGDeterministic(t *testing.T) {
	p := testPlot()
	a := renderString(t, p, 600, 500)
	b := renderString(t, p, 600, 500)
	if a != b {
		t.Errorf("two renders of the same plot differ")
	}
}

func TestWriteSVGTooSmall(t *testing.T) {
	var buf bytes.Buffer
	err := testPlot().WriteSVG(&buf, 10, 10)
	if err == nil {
		t.Fatalf("want error for 10x10 canvas; got nil")
	}
	if !strings.Contains(err.Error(), "too small") {
		t.Errorf("got error %q; want it to mention being too small", err)
	}
}

func TestWriteSVGSkipsNonfinite(t *testing.T) {
	p := New().Add(PointLayer{XY: []Point{
		{math.NaN(), 0},
		{math.Inf(1), 1},
		{0, 0},
	}})
	got := renderString(t, p, 300, 300)
	if n := strings.Count(got, "<circle"); n != 1 {
		t.Errorf("got %d circles; want 1 (nonfinite points skipped)", n)
	}
}

func TestLayerLengthMismatchPanics(t *testing.T) {
	var buf bytes.Buffer
	shouldPanic(t, "Colors has length 1", func() {
		p := New().Add(PointLayer{
			XY:     []Point{{0, 0}, {1, 1}},
			Colors: []color.Color{color.Black},
		})
		p.WriteSVG(&buf, 300, 300)
	})
	shouldPanic(t, "Labels has length 0", func() {
		p := New().Add(TextLayer{XY: []Point{{0, 0}}})
		p.WriteSVG(&buf, 300, 300)
	})
}

func TestCSSPaint(t *testing.T) {
	tests := []struct {
		c    color.Color
		prop string
		want string
	}{
		{color.Black, "fill", "fill:#000"},
		{color.White, "fill", "fill:#fff"},
		{color.RGBA{0x4c, 0x72, 0xb0, 0xff}, "fill", "fill:#4c72b0"},
		{color.Transparent, "fill", "fill:none"},
		{color.RGBA{0x80, 0x00, 0x00, 0x80}, "stroke", "stroke:#f00;stroke-opacity:0.501961"},
	}
	for _, test := range tests {
		if got := cssPaint(test.prop, test.c); got != test.want {
			t.Errorf("cssPaint(%q, %v) = %q; want %q", test.prop, test.c, got, test.want)
		}
	}
}

func TestWrapPath(t *testing.T) {
	if p := "M1 2L3 4"; wrapPath(p) != p {
		t.Errorf("short path was rewrapped: %q", wrapPath(p))
	}

	long := strings.Repeat("M12345 67890L12345 67890", 10)
	got := wrapPath(long)
	if !strings.Contains(got, "\n") {
		t.Errorf("long path was not wrapped")
	}
	if strings.Replace(got, "\n", "", -1) != long {
		t.Errorf("wrapping altered path data:\n%q", got)
	}
}

func TestMarkerPath(t *testing.T) {
	got := markerPath(0, 0, 10, 4, -math.Pi/2)
	if !strings.HasPrefix(got, "M") || !strings.HasSuffix(got, "Z") {
		t.Errorf("marker path %q is not a closed path", got)
	}
	if n := strings.Count(got, "L"); n != 3 {
		t.Errorf("4-gon path %q has %d linetos; want 3", got, n)
	}
}

func TestAnchorAttr(t *testing.T) {
	tests := []struct {
		hjusts []float64
		want   string
	}{
		{nil, `text-anchor="middle"`},
		{[]float64{0}, `text-anchor="start"`},
		{[]float64{0.5}, `text-anchor="middle"`},
		{[]float64{1}, `text-anchor="end"`},
	}
	for _, test := range tests {
		if got := anchorAttr(test.hjusts, 0); got != test.want {
			t.Errorf("anchorAttr(%v) = %q; want %q", test.hjusts, got, test.want)
		}
	}
}
