// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot provides a small layered plot description and an SVG
// renderer for it.
//
// A Plot is a flat list of layers. Each layer is a complete, concrete
// description of one visual stratum: a set of points, labels, arrows,
// paths, or reference lines, all in data coordinates. Layers carry no
// behavior; they are plain values that the renderer interprets in
// order, first to last, so later layers paint over earlier ones.
//
// This is deliberately much less than a grammar of graphics. There are
// no scales to configure, no stats, and no aesthetic mappings: callers
// are expected to have already reduced their data to drawable form.
// The payoff is that a Plot can be constructed, inspected, and tested
// without rendering it.
package plot

import "image/color"

// A Point is a location in data coordinates.
type Point struct {
	X, Y float64
}

// A Segment is a directed line between two points in data
// coordinates.
type Segment struct {
	From, To Point
}

// A Shape is a marker glyph for point layers and legend entries.
type Shape int

const (
	// Circle is the default marker shape.
	Circle Shape = iota
	Triangle
	Square
	Diamond
	Plus
	Cross
)

// NoShape indicates a legend entry without a marker glyph. Such
// entries get a colored text swatch instead.
const NoShape Shape = -1

// A Font selects label typography. The zero Font means the renderer's
// default face at its default weight.
type Font struct {
	Family string // CSS font-family; "" for the renderer default
	Weight string // CSS font-weight, e.g. "bold"; "" for normal
}

// A Layer is one visual stratum of a Plot.
//
// Layer is a closed set: the only implementations are PointLayer,
// TextLayer, ArrowLayer, PathLayer, and RefLineLayer. The renderer
// switches over these types exhaustively.
type Layer interface {
	layer()
}

// A PointLayer draws a marker at each point.
//
// Colors, Sizes, and Shapes, when non-nil, must have the same length
// as XY and give per-point values; otherwise the scalar Color, Size,
// and Shape apply to every point.
type PointLayer struct {
	XY     []Point
	Color  color.Color // nil means black
	Colors []color.Color
	Size   float64 // marker radius in pixels; 0 means the default
	Sizes  []float64
	Shape  Shape
	Shapes []Shape
}

func (PointLayer) layer() {}

// A TextLayer draws a label at each point.
//
// Labels must have the same length as XY. Colors, Sizes, Angles, and
// HJusts, when non-nil, must also have the same length as XY and give
// per-label values.
type TextLayer struct {
	XY     []Point
	Labels []string
	Color  color.Color // nil means black
	Colors []color.Color
	Size   float64 // font size in pixels; 0 means the default
	Sizes  []float64
	Font   Font
	// Angles gives each label's rotation in degrees
	// counterclockwise about its anchor. Nil means horizontal.
	Angles []float64
	// HJusts gives each label's horizontal justification: 0
	// anchors the label's left edge at its point, 1 the right
	// edge, 0.5 the center. Nil means centered.
	HJusts []float64
}

func (TextLayer) layer() {}

// An ArrowLayer draws each segment as a line with an arrowhead at its
// To end.
type ArrowLayer struct {
	Segments []Segment
	Color    color.Color // nil means black
	Width    float64     // stroke width in pixels; 0 means the default
	// HeadLength is the length of each arrowhead barb in pixels.
	// If it is not positive, segments are drawn without heads.
	HeadLength float64
	Dashed     bool
}

func (ArrowLayer) layer() {}

// A PathLayer draws a polyline through XY in order. Non-finite points
// break the path into separate subpaths.
type PathLayer struct {
	XY     []Point
	Color  color.Color // nil means black
	Width  float64     // stroke width in pixels; 0 means the default
	Dashed bool
	// Fill, if non-nil and non-transparent, fills the region
	// enclosed by the path.
	Fill color.Color
}

func (PathLayer) layer() {}

// A RefLineLayer draws a reference line spanning the plot area: a
// vertical line at X=Value if Vertical is set, otherwise a horizontal
// line at Y=Value. The line's value participates in axis ranging, so
// a reference line is always visible.
type RefLineLayer struct {
	Vertical bool
	Value    float64
	Color    color.Color // nil means gray
	Dashed   bool
}

func (RefLineLayer) layer() {}

// A LegendEntry describes one keyed row of the plot legend. If Shape
// is NoShape, the key is a text swatch in Color rather than a marker.
type LegendEntry struct {
	Label string
	Color color.Color
	Shape Shape
}

// Plot is a renderable plot description.
//
// The zero Plot is valid and empty. Layers and Legend may be
// manipulated directly; Add is a convenience for building plots in a
// single expression.
type Plot struct {
	Title  string
	XLabel string
	YLabel string

	Layers []Layer
	Legend []LegendEntry
}

// New returns a new, empty Plot.
func New() *Plot {
	return new(Plot)
}

// Add appends layers to p's layer list and returns p.
func (p *Plot) Add(layers ...Layer) *Plot {
	p.Layers = append(p.Layers, layers...)
	return p
}
