// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package biplot renders principal coordinates ordinations as
// two-axis biplots.
//
// A biplot shows the observations of an ordination in the plane of
// two selected axes, and optionally overlays weighted-average
// variable scores, externally fitted environmental vectors, and
// per-group confidence ellipses. Render assembles these overlays
// into a plot.Plot from a single Config; every overlay is enabled by
// setting the corresponding Config field and omitted by leaving it
// nil.
package biplot

import (
	"image/color"
	"log"
	"math"
	"os"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-pcoa/pcoa"
	"github.com/aclements/go-pcoa/plot"
)

// Warning is a logger for reporting conditions that don't prevent
// Render from producing a plot, but may lead to unexpected output.
var Warning = log.New(os.Stderr, "[biplot] ", log.Lshortfile)

const (
	defaultHeadLength  = 8
	defaultMarkerSize  = 3
	defaultTagSize     = 14
	defaultEllipseProb = 0.95
)

// A Display selects how a layer of scores is drawn.
type Display int

const (
	// Points draws each score as a marker.
	Points Display = iota

	// Tags draws each score as a text label.
	Tags
)

// Config describes a biplot of an ordination result. The zero value
// plots the first two axes as plain black points with no overlays.
type Config struct {
	// Axes selects the two ordination axes to plot. The zero
	// value selects the first two axes.
	Axes [2]int

	// Groups optionally assigns each observation to a named
	// group. It must have one entry per observation. Groups
	// color the observations, add a legend, and are required for
	// confidence ellipses.
	Groups []string

	// Labels optionally overrides the labels used when
	// observations are drawn as tags. When nil, the result's row
	// names are used, and failing that 1-based row numbers.
	Labels []string

	// Obs styles the observation layer.
	Obs ObsStyle

	// Species, if non-nil, overlays weighted-average variable
	// scores computed from the abundance table passed to Render.
	Species *SpeciesStyle

	// Vectors, if non-nil, overlays fitted environmental
	// vectors.
	Vectors *VectorStyle

	// Ellipse, if non-nil, overlays a confidence ellipse for
	// each group. It has no effect unless Groups is set.
	Ellipse *EllipseStyle
}

// ObsStyle styles the observation layer of a biplot.
type ObsStyle struct {
	// Display selects markers (Points) or text labels (Tags).
	Display Display

	// Color is the color of ungrouped observations. nil means
	// black. Grouped observations ignore it and use Palette.
	Color color.Color

	// Size is the marker radius or label size in pixels. 0 means
	// a reasonable default.
	Size float64

	// Font styles observation labels in Tags mode.
	Font plot.Font

	// Palette supplies one color per group, in sorted group name
	// order. When nil, a default six-color palette is used. If
	// there are more groups than palette entries, the remainder
	// samples the viridis palette.
	Palette []color.Color
}

// SpeciesStyle styles the weighted-average variable score overlay.
type SpeciesStyle struct {
	// Arrow, if non-nil, draws an arrow from the origin toward
	// each score, stopping at 90% of its distance. nil draws no
	// arrows.
	Arrow *ArrowStyle

	// Display selects markers (Points) or text labels (Tags) for
	// the scores themselves.
	Display Display

	// Color colors the arrows and scores. nil means black.
	Color color.Color

	// Size is the marker radius or label size in pixels. 0 means
	// a reasonable default.
	Size float64

	// Font styles score labels in Tags mode.
	Font plot.Font

	// Rotate angles each label along its direction from the
	// origin and anchors it at the end nearest the origin.
	Rotate bool

	// SizeMap, if non-nil, scales each score's size by its
	// distance from the origin.
	SizeMap *SizeMap
}

// VectorStyle styles the fitted environmental vector overlay.
// Vector labels are always drawn as text.
type VectorStyle struct {
	// Fits holds the fitted vectors, as returned by pcoa.EnvFit.
	// Each vector is scaled by the square root of its goodness
	// of fit, so poorly fitting variables stay near the origin.
	Fits *pcoa.FitResult

	// Zoom multiplies the length of every vector. 0 means 1.
	Zoom float64

	// Arrow, if non-nil, draws an arrow from the origin toward
	// each vector tip, stopping at 90% of its distance.
	Arrow *ArrowStyle

	// Color colors the arrows and labels. nil means black.
	Color color.Color

	// Size is the label size in pixels. 0 means a reasonable
	// default.
	Size float64

	// Font styles the labels.
	Font plot.Font

	// SizeMap, if non-nil, scales each label's size by its
	// vector's length.
	SizeMap *SizeMap
}

// ArrowStyle styles an arrow layer.
type ArrowStyle struct {
	// HeadLength is the length of the arrowhead barbs in pixels.
	// 0 means a reasonable default; negative draws bare shafts.
	HeadLength float64

	// Width is the shaft stroke width in pixels. 0 means a
	// reasonable default.
	Width float64

	// Dashed draws dashed shafts.
	Dashed bool
}

// A SizeMap scales marker or label sizes by each score's distance
// from the origin: size = base size × (distance + Offset).
type SizeMap struct {
	// Offset is added to the distance before scaling, so scores
	// at the origin remain visible when it is positive.
	Offset float64
}

// EllipseStyle styles per-group confidence ellipses.
type EllipseStyle struct {
	// Prob is the confidence level of the ellipses. 0 means
	// 0.95.
	Prob float64

	// Width is the outline stroke width in pixels. 0 means a
	// reasonable default.
	Width float64

	// Dashed draws dashed outlines.
	Dashed bool
}

// groupPalette is the default qualitative palette for group colors.
var groupPalette = []color.Color{
	color.RGBA{0x4c, 0x72, 0xb0, 0xff},
	color.RGBA{0x55, 0xa8, 0x68, 0xff},
	color.RGBA{0xc4, 0x4e, 0x52, 0xff},
	color.RGBA{0x81, 0x72, 0xb2, 0xff},
	color.RGBA{0xcc, 0xb9, 0x74, 0xff},
	color.RGBA{0x64, 0xb5, 0xcd, 0xff},
}

// groupShapes is cycled to assign marker shapes to groups.
var groupShapes = []plot.Shape{
	plot.Circle, plot.Triangle, plot.Square,
	plot.Diamond, plot.Plus, plot.Cross,
}

// groupColors assigns a color to each of n groups from pal, or from
// the default palette if pal is nil. Groups beyond the palette
// sample the viridis palette.
func groupColors(n int, pal []color.Color) []color.Color {
	if pal == nil {
		pal = groupPalette
	}
	cs := make([]color.Color, n)
	for i := range cs {
		if i < len(pal) {
			cs[i] = pal[i]
			continue
		}
		x := float64(i-len(pal)) / math.Max(float64(n-len(pal)-1), 1)
		cs[i] = palette.Viridis.Map(x)
	}
	return cs
}
