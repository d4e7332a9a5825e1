// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-pcoa/pcoa"
	"github.com/aclements/go-pcoa/plot"
	"github.com/gonum/matrix/mat64"
)

// Render renders ordination result r as a biplot in the plane of the
// two axes selected by cfg. abundance supplies per-observation
// variable values for the species overlay; it may be nil if
// cfg.Species is nil.
//
// The returned plot titles each axis with the percent of total
// variance its eigenvalue explains. Layers are stacked in a fixed
// order: reference lines through the origin, observations, species
// scores, fitted vectors, and finally ellipses.
//
// Render validates cfg against r before building any layer and
// returns an error describing the first mismatch it finds.
func Render(r *pcoa.Result, abundance *table.Table, cfg Config) (*plot.Plot, error) {
	n := r.Len()
	axes := cfg.Axes
	if axes == ([2]int{}) {
		axes = [2]int{0, 1}
	}
	if k := r.Dims(); axes[0] < 0 || axes[0] >= k || axes[1] < 0 || axes[1] >= k {
		return nil, fmt.Errorf("axes %v out of range [0,%d)", axes, k)
	}
	if axes[0] == axes[1] {
		return nil, fmt.Errorf("axes must be distinct; got %v", axes)
	}
	if r.Names != nil && len(r.Names) != n {
		return nil, fmt.Errorf("result has %d names for %d observations", len(r.Names), n)
	}
	if cfg.Groups != nil && len(cfg.Groups) != n {
		return nil, fmt.Errorf("Groups has length %d; ordination has %d observations", len(cfg.Groups), n)
	}
	if cfg.Labels != nil && len(cfg.Labels) != n {
		return nil, fmt.Errorf("Labels has length %d; ordination has %d observations", len(cfg.Labels), n)
	}
	if cfg.Species != nil {
		if abundance == nil {
			return nil, fmt.Errorf("species scores require an abundance table")
		}
		if abundance.Len() != n {
			return nil, fmt.Errorf("abundance table has %d rows; ordination has %d observations", abundance.Len(), n)
		}
	}
	if cfg.Ellipse != nil {
		if p := cfg.Ellipse.Prob; p < 0 || p >= 1 {
			return nil, fmt.Errorf("ellipse confidence level %v is outside (0, 1)", p)
		}
	}

	xs, ys := r.Axis(axes[0]), r.Axis(axes[1])
	pct := r.VarianceExplained()

	plt := plot.New()
	plt.XLabel = axisTitle(axes[0], pct)
	plt.YLabel = axisTitle(axes[1], pct)

	// Reference lines through the origin.
	plt.Add(
		plot.RefLineLayer{Vertical: true, Dashed: true},
		plot.RefLineLayer{Dashed: true},
	)

	addObservations(plt, xs, ys, obsLabels(r, cfg), cfg)

	if cfg.Species != nil {
		scores, names, err := pcoa.WAScores(r.Points, abundance)
		if err != nil {
			return nil, err
		}
		addScores(plt, axisPoints(scores, axes), names, scoreStyle{
			arrow:   cfg.Species.Arrow,
			display: cfg.Species.Display,
			color:   cfg.Species.Color,
			size:    cfg.Species.Size,
			font:    cfg.Species.Font,
			rotate:  cfg.Species.Rotate,
			sizeMap: cfg.Species.SizeMap,
		})
	}

	if cfg.Vectors != nil && cfg.Vectors.Fits != nil {
		addScores(plt, vectorTips(cfg.Vectors), cfg.Vectors.Fits.Names, scoreStyle{
			arrow:   cfg.Vectors.Arrow,
			display: Tags,
			color:   cfg.Vectors.Color,
			size:    cfg.Vectors.Size,
			font:    cfg.Vectors.Font,
			sizeMap: cfg.Vectors.SizeMap,
		})
	}

	if cfg.Ellipse != nil && cfg.Groups != nil {
		addEllipses(plt, xs, ys, cfg)
	}

	return plt, nil
}

// axisTitle titles ordination axis i with the percent of total
// variance it explains, like "PCoA1 (32.48%)".
func axisTitle(i int, pct []float64) string {
	return fmt.Sprintf("PCoA%d (%.2f%%)", i+1, pct[i])
}

// obsLabels returns the per-observation display labels: cfg.Labels
// if set, otherwise the result's row names, otherwise 1-based row
// numbers.
func obsLabels(r *pcoa.Result, cfg Config) []string {
	if cfg.Labels != nil {
		return cfg.Labels
	}
	if r.Names != nil {
		return r.Names
	}
	ls := make([]string, r.Len())
	for i := range ls {
		ls[i] = strconv.Itoa(i + 1)
	}
	return ls
}

// groupLevels returns the sorted distinct group names and each
// observation's index into them.
func groupLevels(groups []string) (levels []string, index []int) {
	seen := make(map[string]bool)
	for _, g := range groups {
		if !seen[g] {
			seen[g] = true
			levels = append(levels, g)
		}
	}
	sort.Strings(levels)
	pos := make(map[string]int, len(levels))
	for i, l := range levels {
		pos[l] = i
	}
	index = make([]int, len(groups))
	for i, g := range groups {
		index[i] = pos[g]
	}
	return
}

// addObservations adds the observation layer, colored and shaped by
// group when groups are present, and fills in the plot legend.
func addObservations(plt *plot.Plot, xs, ys []float64, labels []string, cfg Config) {
	pts := makePoints(xs, ys)
	st := cfg.Obs
	if cfg.Groups == nil {
		if st.Display == Tags {
			plt.Add(plot.TextLayer{XY: pts, Labels: labels, Color: st.Color, Size: st.Size, Font: st.Font})
		} else {
			plt.Add(plot.PointLayer{XY: pts, Color: st.Color, Size: st.Size})
		}
		return
	}

	levels, index := groupLevels(cfg.Groups)
	colors := groupColors(len(levels), st.Palette)
	obsColors := make([]color.Color, len(pts))
	for i, gi := range index {
		obsColors[i] = colors[gi]
	}
	if st.Display == Tags {
		plt.Add(plot.TextLayer{XY: pts, Labels: labels, Colors: obsColors, Size: st.Size, Font: st.Font})
		for gi, level := range levels {
			plt.Legend = append(plt.Legend, plot.LegendEntry{Label: level, Color: colors[gi], Shape: plot.NoShape})
		}
		return
	}
	shapes := make([]plot.Shape, len(pts))
	for i, gi := range index {
		shapes[i] = groupShapes[gi%len(groupShapes)]
	}
	plt.Add(plot.PointLayer{XY: pts, Colors: obsColors, Size: st.Size, Shapes: shapes})
	for gi, level := range levels {
		plt.Legend = append(plt.Legend, plot.LegendEntry{Label: level, Color: colors[gi], Shape: groupShapes[gi%len(groupShapes)]})
	}
}

// scoreStyle is the styling shared by the species and fitted vector
// overlays.
type scoreStyle struct {
	arrow   *ArrowStyle
	display Display
	color   color.Color
	size    float64
	font    plot.Font
	rotate  bool
	sizeMap *SizeMap
}

// addScores adds an optional arrow layer from the origin toward each
// score and a layer of markers or labels at the scores themselves.
func addScores(plt *plot.Plot, coords []plot.Point, names []string, st scoreStyle) {
	if st.arrow != nil {
		segs := make([]plot.Segment, len(coords))
		for i, c := range coords {
			// Arrows stop short of the score so they don't
			// overplot its marker or label.
			segs[i] = plot.Segment{To: plot.Point{X: 0.9 * c.X, Y: 0.9 * c.Y}}
		}
		head := st.arrow.HeadLength
		if head == 0 {
			head = defaultHeadLength
		}
		plt.Add(plot.ArrowLayer{Segments: segs, Color: st.color, Width: st.arrow.Width, HeadLength: head, Dashed: st.arrow.Dashed})
	}

	var sizes []float64
	if st.sizeMap != nil {
		base := st.size
		if base <= 0 {
			if st.display == Tags {
				base = defaultTagSize
			} else {
				base = defaultMarkerSize
			}
		}
		sizes = make([]float64, len(coords))
		for i, c := range coords {
			sizes[i] = base * (math.Hypot(c.X, c.Y) + st.sizeMap.Offset)
		}
	}

	if st.display != Tags {
		plt.Add(plot.PointLayer{XY: coords, Color: st.color, Size: st.size, Sizes: sizes})
		return
	}
	var angles, hjusts []float64
	if st.rotate {
		angles = make([]float64, len(coords))
		hjusts = make([]float64, len(coords))
		for i, c := range coords {
			angles[i] = math.Atan2(c.Y, c.X) * 180 / math.Pi
			hjusts[i] = (1 - sign(c.X)) / 2
		}
	}
	plt.Add(plot.TextLayer{XY: coords, Labels: names, Color: st.color, Size: st.size, Sizes: sizes, Font: st.font, Angles: angles, HJusts: hjusts})
}

// addEllipses adds one confidence ellipse path per group, in the
// group's color. Groups whose ellipse is undefined are skipped with
// a warning.
func addEllipses(plt *plot.Plot, xs, ys []float64, cfg Config) {
	prob := cfg.Ellipse.Prob
	if prob == 0 {
		prob = defaultEllipseProb
	}
	levels, index := groupLevels(cfg.Groups)
	colors := groupColors(len(levels), cfg.Obs.Palette)
	for gi, level := range levels {
		var gx, gy []float64
		for i, g := range index {
			if g == gi {
				gx = append(gx, xs[i])
				gy = append(gy, ys[i])
			}
		}
		path, ok := confidenceEllipse(gx, gy, prob)
		if !ok {
			Warning.Printf("cannot draw ellipse for group %q with %d points; ignoring", level, len(gx))
			continue
		}
		plt.Add(plot.PathLayer{XY: path, Color: colors[gi], Width: cfg.Ellipse.Width, Dashed: cfg.Ellipse.Dashed})
	}
}

// vectorTips returns the display position of each fitted vector: its
// unit direction scaled by the square root of its r² and the zoom
// factor.
func vectorTips(v *VectorStyle) []plot.Point {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	pts := make([]plot.Point, len(v.Fits.R2))
	for i := range pts {
		s := math.Sqrt(v.Fits.R2[i]) * zoom
		pts[i] = plot.Point{X: s * v.Fits.Arrows.At(i, 0), Y: s * v.Fits.Arrows.At(i, 1)}
	}
	return pts
}

// axisPoints projects the rows of m onto the two selected columns.
func axisPoints(m *mat64.Dense, axes [2]int) []plot.Point {
	rows, _ := m.Dims()
	pts := make([]plot.Point, rows)
	for i := range pts {
		pts[i] = plot.Point{X: m.At(i, axes[0]), Y: m.At(i, axes[1])}
	}
	return pts
}

func makePoints(xs, ys []float64) []plot.Point {
	pts := make([]plot.Point, len(xs))
	for i := range pts {
		pts[i] = plot.Point{X: xs[i], Y: ys[i]}
	}
	return pts
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
