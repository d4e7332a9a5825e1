// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/scale"
	"github.com/ajstarks/svgo"
)

// Warning is a logger for reporting conditions that don't prevent
// rendering a plot, but may lead to unexpected output.
var Warning = log.New(os.Stderr, "[plot] ", log.Lshortfile)

// fontSize is the default font size in pixels.
const fontSize float64 = 14

const xTickSep = 5

const yTickSep = 5

// maxTicks is the maximum number of major ticks per axis.
const maxTicks = 6

// headAngle is the angle between an arrow shaft and each of its two
// barbs.
const headAngle = math.Pi / 6

const (
	defaultPointSize   = 3
	defaultStrokeWidth = 2
)

const (
	legendKeySize = 16
	legendSep     = 4
	legendPad     = 8
)

const dashArray = ";stroke-dasharray:6,4"

// plotMargins returns the top, right, bottom, and left margins inside
// the plot area for a plot area of the given width and height.
//
// By default, this adds a 5% margin based on the smaller of width and
// height. This ensures that the extremes of the data don't appear
// right on the plot border.
var plotMargins = func(w, h float64) (t, r, b, l float64) {
	margin := 0.05 * math.Min(w, h)
	return margin, margin, margin, margin
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}

// A frame maps data coordinates to pixel coordinates within the plot
// area.
type frame struct {
	xi, yi, x2i, y2i int
	xs, ys           scale.Linear
	mt, mr, mb, ml   float64
}

func (f *frame) px(v float64) float64 {
	lo, hi := float64(f.xi)+f.ml, float64(f.x2i)-f.mr
	return lo + (hi-lo)*f.xs.Map(v)
}

func (f *frame) py(v float64) float64 {
	// Pixel y grows downward, so the range is inverted.
	lo, hi := float64(f.y2i)-f.mb, float64(f.yi)+f.mt
	return lo + (hi-lo)*f.ys.Map(v)
}

// WriteSVG renders p as a width x height SVG image to w.
//
// Layers are painted in order, so later layers appear over earlier
// ones. The axis ranges are derived from the union of the finite
// coordinates in all layers, expanded by a small margin.
func (p *Plot) WriteSVG(w io.Writer, width, height int) error {
	// Compute the data domain from the layers.
	xs, ys := p.domain()

	// Compute ticks before layout. The left gutter depends on the
	// widths of the y tick labels.
	o := scale.TickOptions{Max: maxTicks}
	xMajor, xMinor := xs.Ticks(o)
	yMajor, yMinor := ys.Ticks(o)
	xLabels, yLabels := tickLabels(xMajor), tickLabels(yMajor)

	// Lay out the gutters around the plot area.
	leading := measureString(fontSize, "").leading
	var yTickW float64
	for _, l := range yLabels {
		yTickW = math.Max(yTickW, measureString(fontSize, l).width)
	}
	var top, right float64
	if p.Title != "" {
		top = 1.5 * leading
	}
	left := yTickW + yTickSep
	if p.YLabel != "" {
		left += 1.5 * leading
	}
	bottom := leading + xTickSep
	if p.XLabel != "" {
		bottom += 1.5 * leading
	}
	if len(p.Legend) > 0 {
		var labelW float64
		for _, e := range p.Legend {
			labelW = math.Max(labelW, measureString(fontSize, e.Label).width)
		}
		right = legendPad + legendKeySize + legendSep + labelW + legendPad
	}

	// Round the plot area rectangle in.
	xi, yi := int(math.Ceil(left)), int(math.Ceil(top))
	x2i, y2i := width-int(math.Ceil(right)), height-int(math.Ceil(bottom))
	wi, hi := x2i-xi, y2i-yi
	if wi < 20 || hi < 20 {
		return fmt.Errorf("%dx%d plot is too small for its labels", width, height)
	}

	f := &frame{xi: xi, yi: yi, x2i: x2i, y2i: y2i, xs: xs, ys: ys}
	f.mt, f.mr, f.mb, f.ml = plotMargins(float64(wi), float64(hi))

	canvas := svg.New(w)
	canvas.Start(width, height, fmt.Sprintf(`font-size="%.6gpx" font-family="Roboto,&quot;Helvetica Neue&quot;,Helvetica,Arial,sans-serif"`, fontSize))
	defer canvas.End()

	canvas.Rect(xi, yi, wi, hi, "fill:#fff")

	// Create clip region for the plot area and paint the layers
	// inside it.
	canvas.ClipPath(`id="plotArea"`)
	canvas.Rect(xi, yi, wi, hi)
	canvas.ClipEnd()
	canvas.Group(`clip-path="url(#plotArea)"`)
	for _, l := range p.Layers {
		switch l := l.(type) {
		case RefLineLayer:
			drawRefLine(canvas, f, l)
		case PathLayer:
			drawPathLayer(canvas, f, l)
		case PointLayer:
			drawPoints(canvas, f, l)
		case ArrowLayer:
			drawArrows(canvas, f, l)
		case TextLayer:
			drawText(canvas, f, l)
		default:
			panic(fmt.Sprintf("unknown layer type %T", l))
		}
	}
	canvas.Gend()

	// Draw the border and scale ticks over the layers.
	canvas.Path(fmt.Sprintf("M%d %dV%dH%d", xi, yi, y2i, x2i), "stroke:#888; fill:none; stroke-width:2")
	renderScale(canvas, 'x', f, xMajor, xMinor, y2i)
	renderScale(canvas, 'y', f, yMajor, yMinor, xi)

	// Tick labels.
	for i, label := range xLabels {
		tick := math.Floor(f.px(xMajor[i]) + 0.5)
		canvas.Text(int(tick), y2i+xTickSep, label, `text-anchor="middle" dy="1em" fill="#666"`)
	}
	for i, label := range yLabels {
		tick := math.Floor(f.py(yMajor[i]) + 0.5)
		canvas.Text(xi-yTickSep, int(tick), label, `text-anchor="end" dy=".3em" fill="#666"`)
	}

	// Titles. Vertical centering is very poorly supported; dy is
	// the best chance.
	if p.XLabel != "" {
		canvas.Text((xi+x2i)/2, height-int(0.75*leading), p.XLabel, `text-anchor="middle" dy=".3em"`)
	}
	if p.YLabel != "" {
		cx, cy := int(0.75*leading), (yi+y2i)/2
		canvas.Text(cx, cy, p.YLabel, fmt.Sprintf(`text-anchor="middle" dy=".3em" transform="rotate(-90 %d %d)"`, cx, cy))
	}
	if p.Title != "" {
		canvas.Text((xi+x2i)/2, int(top/2), p.Title, `text-anchor="middle" dy=".3em"`)
	}

	renderLegend(canvas, p.Legend, x2i+legendPad, yi, leading)

	return nil
}

// domain returns the x and y data domains of p's layers. A domain
// with no finite data is [-1, 1]; a degenerate single-value domain is
// widened by 1 on each side.
func (p *Plot) domain() (xs, ys scale.Linear) {
	xMin, xMax := math.NaN(), math.NaN()
	yMin, yMax := math.NaN(), math.NaN()
	addX := func(v float64) {
		if !isFinite(v) {
			return
		}
		if v < xMin || math.IsNaN(xMin) {
			xMin = v
		}
		if v > xMax || math.IsNaN(xMax) {
			xMax = v
		}
	}
	addY := func(v float64) {
		if !isFinite(v) {
			return
		}
		if v < yMin || math.IsNaN(yMin) {
			yMin = v
		}
		if v > yMax || math.IsNaN(yMax) {
			yMax = v
		}
	}
	add := func(pts []Point) {
		for _, pt := range pts {
			addX(pt.X)
			addY(pt.Y)
		}
	}
	for _, l := range p.Layers {
		switch l := l.(type) {
		case PointLayer:
			add(l.XY)
		case TextLayer:
			add(l.XY)
		case ArrowLayer:
			for _, s := range l.Segments {
				addX(s.From.X)
				addX(s.To.X)
				addY(s.From.Y)
				addY(s.To.Y)
			}
		case PathLayer:
			add(l.XY)
		case RefLineLayer:
			if l.Vertical {
				addX(l.Value)
			} else {
				addY(l.Value)
			}
		}
	}
	if math.IsNaN(xMin) {
		xMin, xMax = -1, 1
	}
	if math.IsNaN(yMin) {
		yMin, yMax = -1, 1
	}
	if xMin == xMax {
		xMin, xMax = xMin-1, xMax+1
	}
	if yMin == yMax {
		yMin, yMax = yMin-1, yMax+1
	}
	return scale.Linear{Min: xMin, Max: xMax}, scale.Linear{Min: yMin, Max: yMax}
}

func tickLabels(major []float64) []string {
	labels := make([]string, len(major))
	for i, x := range major {
		labels[i] = fmt.Sprintf("%.6g", x)
	}
	return labels
}

func checkLen(what string, n, want int) {
	if n != want {
		panic(fmt.Sprintf("plot: %s has length %d, but layer has %d points", what, n, want))
	}
}

func drawPoints(canvas *svg.SVG, f *frame, l PointLayer) {
	if l.Colors != nil {
		checkLen("Colors", len(l.Colors), len(l.XY))
	}
	if l.Sizes != nil {
		checkLen("Sizes", len(l.Sizes), len(l.XY))
	}
	if l.Shapes != nil {
		checkLen("Shapes", len(l.Shapes), len(l.XY))
	}
	for i, pt := range l.XY {
		if !isFinite(pt.X) || !isFinite(pt.Y) {
			continue
		}
		c := l.Color
		if l.Colors != nil {
			c = l.Colors[i]
		}
		if c == nil {
			c = color.Black
		}
		r := l.Size
		if l.Sizes != nil {
			r = l.Sizes[i]
		}
		if r <= 0 {
			r = defaultPointSize
		}
		shape := l.Shape
		if l.Shapes != nil {
			shape = l.Shapes[i]
		}
		drawMarker(canvas, f.px(pt.X), f.py(pt.Y), r, shape, c)
	}
}

func drawMarker(canvas *svg.SVG, x, y, r float64, shape Shape, c color.Color) {
	switch shape {
	case Triangle:
		canvas.Path(markerPath(x, y, 1.3*r, 3, -math.Pi/2), cssPaint("fill", c))
	case Square:
		canvas.Rect(int(x-r), int(y-r), int(2*r), int(2*r), cssPaint("fill", c))
	case Diamond:
		canvas.Path(markerPath(x, y, 1.3*r, 4, -math.Pi/2), cssPaint("fill", c))
	case Plus:
		path := fmt.Sprintf("M%.6g %.6gh%.6gM%.6g %.6gv%.6g", x-r, y, 2*r, x, y-r, 2*r)
		canvas.Path(path, cssPaint("stroke", c)+";fill:none;stroke-width:2")
	case Cross:
		d := r * math.Sqrt2 / 2
		path := fmt.Sprintf("M%.6g %.6gL%.6g %.6gM%.6g %.6gL%.6g %.6g", x-d, y-d, x+d, y+d, x-d, y+d, x+d, y-d)
		canvas.Path(path, cssPaint("stroke", c)+";fill:none;stroke-width:2")
	default:
		canvas.Circle(int(x), int(y), int(r), cssPaint("fill", c))
	}
}

// markerPath returns a closed regular n-gon path centered at x, y
// with circumradius r and its first vertex at angle phase.
func markerPath(x, y, r float64, n int, phase float64) string {
	var path []byte
	for i := 0; i < n; i++ {
		a := phase + 2*math.Pi*float64(i)/float64(n)
		if i == 0 {
			path = append(path, 'M')
		} else {
			path = append(path, 'L')
		}
		path = strconv.AppendFloat(path, x+r*math.Cos(a), 'g', 6, 64)
		path = append(path, ' ')
		path = strconv.AppendFloat(path, y+r*math.Sin(a), 'g', 6, 64)
	}
	path = append(path, 'Z')
	return string(path)
}

func drawText(canvas *svg.SVG, f *frame, l TextLayer) {
	checkLen("Labels", len(l.Labels), len(l.XY))
	if l.Colors != nil {
		checkLen("Colors", len(l.Colors), len(l.XY))
	}
	if l.Sizes != nil {
		checkLen("Sizes", len(l.Sizes), len(l.XY))
	}
	if l.Angles != nil {
		checkLen("Angles", len(l.Angles), len(l.XY))
	}
	if l.HJusts != nil {
		checkLen("HJusts", len(l.HJusts), len(l.XY))
	}
	for i, pt := range l.XY {
		if !isFinite(pt.X) || !isFinite(pt.Y) || l.Labels[i] == "" {
			continue
		}
		c := l.Color
		if l.Colors != nil {
			c = l.Colors[i]
		}
		if c == nil {
			c = color.Black
		}
		size := l.Size
		if l.Sizes != nil {
			size = l.Sizes[i]
		}
		if size <= 0 {
			size = fontSize
		}
		x, y := f.px(pt.X), f.py(pt.Y)
		style := []string{cssPaint("fill", c), `dy=".3em"`, anchorAttr(l.HJusts, i)}
		if size != fontSize {
			style = append(style, fmt.Sprintf(`font-size="%.6gpx"`, size))
		}
		if l.Font.Family != "" {
			style = append(style, fmt.Sprintf(`font-family=%q`, l.Font.Family))
		}
		if l.Font.Weight != "" {
			style = append(style, fmt.Sprintf(`font-weight=%q`, l.Font.Weight))
		}
		if l.Angles != nil && l.Angles[i] != 0 {
			// SVG rotation is clockwise in pixel space, so
			// a counterclockwise data-space angle negates.
			style = append(style, fmt.Sprintf(`transform="rotate(%.6g %d %d)"`, -l.Angles[i], int(x), int(y)))
		}
		canvas.Text(int(x), int(y), l.Labels[i], style...)
	}
}

func anchorAttr(hjusts []float64, i int) string {
	if hjusts == nil {
		return `text-anchor="middle"`
	}
	switch h := hjusts[i]; {
	case h <= 0.25:
		return `text-anchor="start"`
	case h >= 0.75:
		return `text-anchor="end"`
	}
	return `text-anchor="middle"`
}

func drawArrows(canvas *svg.SVG, f *frame, l ArrowLayer) {
	c := l.Color
	if c == nil {
		c = color.Black
	}
	width := l.Width
	if width <= 0 {
		width = defaultStrokeWidth
	}
	style := cssPaint("stroke", c) + ";fill:none" + fmt.Sprintf(";stroke-width:%.6g", width)
	if l.Dashed {
		style += dashArray
	}
	var path bytes.Buffer
	for _, seg := range l.Segments {
		x1, y1 := f.px(seg.From.X), f.py(seg.From.Y)
		x2, y2 := f.px(seg.To.X), f.py(seg.To.Y)
		if !isFinite(x1) || !isFinite(y1) || !isFinite(x2) || !isFinite(y2) {
			continue
		}
		fmt.Fprintf(&path, "M%.6g %.6gL%.6g %.6g", x1, y1, x2, y2)
		if l.HeadLength > 0 && math.Hypot(x2-x1, y2-y1) > 1e-6 {
			a := math.Atan2(y2-y1, x2-x1)
			for _, da := range [2]float64{headAngle, -headAngle} {
				fmt.Fprintf(&path, "M%.6g %.6gL%.6g %.6g",
					x2-l.HeadLength*math.Cos(a+da), y2-l.HeadLength*math.Sin(a+da), x2, y2)
			}
		}
	}
	if path.Len() == 0 {
		return
	}
	canvas.Path(wrapPath(path.String()), style)
}

func drawPathLayer(canvas *svg.SVG, f *frame, l PathLayer) {
	switch len(l.XY) {
	case 0:
		return
	case 1:
		Warning.Print("cannot draw path through 1 point; ignoring")
		return
	}

	// Build the path. A moveto's trailing coordinate pairs are
	// implicit linetos.
	var path []byte
	inLine := false
	for _, pt := range l.XY {
		x, y := f.px(pt.X), f.py(pt.Y)
		if !isFinite(x) || !isFinite(y) {
			inLine = false
			continue
		}
		if !inLine {
			path = append(path, 'M')
			inLine = true
		}
		path = append(path, ' ')
		path = strconv.AppendFloat(path, x, 'g', 6, 64)
		path = append(path, ' ')
		path = strconv.AppendFloat(path, y, 'g', 6, 64)
	}
	if len(path) == 0 {
		return
	}

	stroke := l.Color
	if stroke == nil {
		stroke = color.Black
	}
	var fill color.Color = color.Transparent
	if l.Fill != nil {
		fill = l.Fill
	}
	width := l.Width
	if width <= 0 {
		width = defaultStrokeWidth
	}
	style := cssPaint("stroke", stroke) + ";" + cssPaint("fill", fill) + fmt.Sprintf(";stroke-width:%.6g", width)
	if l.Dashed {
		style += dashArray
	}
	canvas.Path(wrapPath(string(path)), style)
}

func drawRefLine(canvas *svg.SVG, f *frame, l RefLineLayer) {
	c := l.Color
	if c == nil {
		c = color.Gray{0x88}
	}
	style := cssPaint("stroke", c) + ";fill:none;stroke-width:1"
	if l.Dashed {
		style += dashArray
	}
	if l.Vertical {
		canvas.Path(fmt.Sprintf("M%.6g %dV%d", f.px(l.Value), f.yi, f.y2i), style)
	} else {
		canvas.Path(fmt.Sprintf("M%d %.6gH%d", f.xi, f.py(l.Value), f.x2i), style)
	}
}

func renderScale(canvas *svg.SVG, dir rune, f *frame, major, minor []float64, pos int) {
	const length float64 = 4

	var path bytes.Buffer
	have := map[float64]bool{}
	for _, t := range []struct {
		length float64
		ticks  []float64
	}{
		{length * 2, major},
		{length, minor},
	} {
		for _, v := range t.ticks {
			var p float64
			if dir == 'x' {
				p = f.px(v)
			} else {
				p = f.py(v)
			}
			// Round to the nearest pixel.
			p = math.Floor(p + 0.5)
			if have[p] {
				// Avoid overplotting the same tick
				// marks.
				continue
			}
			have[p] = true
			if dir == 'x' {
				fmt.Fprintf(&path, "M%.6g %dv%.6g", p, pos, -t.length)
			} else {
				fmt.Fprintf(&path, "M%d %.6gh%.6g", pos, p, t.length)
			}
		}
	}
	canvas.Path(wrapPath(path.String()), "stroke:#888; stroke-width:2")
}

func renderLegend(canvas *svg.SVG, legend []LegendEntry, x, y int, leading float64) {
	for i, e := range legend {
		cy := float64(y) + (float64(i)+0.5)*leading
		c := e.Color
		if c == nil {
			c = color.Black
		}
		if e.Shape == NoShape {
			canvas.Text(x+legendKeySize/2, int(cy), "a", cssPaint("fill", c), `text-anchor="middle" dy=".3em" font-weight="bold"`)
		} else {
			drawMarker(canvas, float64(x)+legendKeySize/2, cy, defaultPointSize+1, e.Shape, c)
		}
		canvas.Text(x+legendKeySize+legendSep, int(cy), e.Label, `dy=".3em" fill="#333"`)
	}
}

// cssPaint returns a CSS fragment for setting CSS property prop to
// color c.
func cssPaint(prop string, c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		// No paint.
		return prop + ":none"
	}

	if a != 0xffff {
		// Undo alpha pre-multiplication.
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	r, g, b = r>>8, g>>8, b>>8

	css := prop
	if r>>4 == r&0xF && g>>4 == g&0xF && b>>4 == b&0xF {
		// Use #rgb form.
		css += fmt.Sprintf(":#%x%x%x", r>>4, g>>4, b>>4)
	} else {
		// Use #rrggbb form.
		css += fmt.Sprintf(":#%02x%02x%02x", r, g, b)
	}

	if a != 0xffff {
		// SVG 1.1 only supports CSS2 color formats, which
		// don't include rgba, so use the opacity property.
		css += fmt.Sprintf(";%s-opacity:%.6g", prop, float64(a)/0xffff)
	}
	return css
}

// wrapPath wraps long path data strings at likely-irrelevant
// boundaries to keep SVG output lines reasonable.
func wrapPath(p string) string {
	const width = 70
	if len(p) <= width {
		return p
	}
	// Chop up p until we get below the width limit.
	parts := make([]string, 0, 16)
	for len(p) > width {
		// Find the last command or space before exceeding width.
		lastCmd, lastSpace := 0, 0
		for i, ch := range p {
			if i >= width && (lastCmd != 0 || lastSpace != 0) {
				break
			}
			if 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' {
				lastCmd = i
			} else if ch == ' ' {
				lastSpace = i
			}
		}
		split := len(p)
		// Prefer splitting at commands, but take spaces in
		// case it's a huge command.
		if lastCmd != 0 {
			split = lastCmd
		} else if lastSpace != 0 {
			split = lastSpace
		}
		parts, p = append(parts, p[:split]), p[split:]
	}
	if len(p) > 0 {
		parts = append(parts, p)
	}
	return strings.Join(parts, "\n")
}
