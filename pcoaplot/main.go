// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pcoaplot renders a principal coordinates biplot from CSV
// tables.
//
// The scores table gives the ordination coordinates, one row per
// observation and one numeric column per axis, with a header row. A
// leading non-numeric column names the observations. The eigenvalue
// table, if given, holds one numeric column with one value per axis;
// without it, axis variance percentages are computed from the score
// columns themselves, which are proportional to the eigenvalues in a
// principal coordinates analysis.
//
// The abundance table (-data) supplies per-observation variable
// values for the species overlay and the environment table (-env)
// supplies variables to fit as vectors; non-numeric columns in
// either are ignored. -groups may name a column in any input table
// or a single-column CSV file.
//
// Output is a single SVG document.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-pcoa/biplot"
	"github.com/aclements/go-pcoa/pcoa"
)

func main() {
	log.SetPrefix("pcoaplot: ")
	log.SetFlags(0)

	var (
		flagScores  = flag.String("scores", "-", "read ordination scores from CSV `file`")
		flagEig     = flag.String("eig", "", "read eigenvalues from CSV `file`")
		flagData    = flag.String("data", "", "read abundance data from CSV `file`")
		flagEnv     = flag.String("env", "", "read environmental variables from CSV `file` and fit vectors")
		flagGroups  = flag.String("groups", "", "group observations by `column` (or single-column CSV file)")
		flagAxes    = flag.String("axes", "1,2", "plot ordination `axes`, 1-based")
		flagText    = flag.Bool("text", false, "draw observations as labels instead of points")
		flagSpe     = flag.Bool("spe", false, "overlay weighted-average species scores (requires -data)")
		flagSpeAro  = flag.Float64("spearrow", 0, "draw species arrows with heads of `length` pixels")
		flagEllipse = flag.Bool("ellipse", false, "draw a confidence ellipse per group")
		flagEllProb = flag.Float64("ellprob", 0.95, "ellipse confidence `level`")
		flagZoom    = flag.Float64("zoom", 1, "scale fitted vectors by `factor`")
		flagPerm    = flag.Int("perm", 999, "permutation `count` for vector fitting")
		flagOut     = flag.String("o", "", "write output to `file` (default: stdout)")
		flagWidth   = flag.Int("w", 600, "output width in `pixels`")
		flagHeight  = flag.Int("h", 500, "output height in `pixels`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	axes, err := parseAxes(*flagAxes)
	if err != nil {
		log.Fatal(err)
	}

	// Load the ordination.
	scoresTab := readTable(*flagScores)
	names, pts := scoreMatrix(scoresTab)
	_, dims := pts.Dims()

	var eig []float64
	if *flagEig != "" {
		eig = eigenvalues(readTable(*flagEig))
		if len(eig) != dims {
			log.Fatalf("%d eigenvalues for %d score axes", len(eig), dims)
		}
	} else {
		eig = varianceEigenvalues(pts)
	}
	r := &pcoa.Result{Points: pts, Eigenvalues: eig, Names: names}

	// Assemble the biplot configuration.
	cfg := biplot.Config{Axes: axes}
	if *flagText {
		cfg.Obs.Display = biplot.Tags
	}

	var dataTab, envTab *table.Table
	if *flagData != "" {
		dataTab = readTable(*flagData)
	}
	if *flagEnv != "" {
		envTab = readTable(*flagEnv)
	}

	if *flagGroups != "" {
		cfg.Groups = loadGroups(*flagGroups, envTab, dataTab, scoresTab)
	}

	var abundance *table.Table
	if *flagSpe {
		if dataTab == nil {
			log.Fatal("-spe requires -data")
		}
		abundance = numericTable(dataTab)
		sp := &biplot.SpeciesStyle{Display: biplot.Tags}
		if *flagSpeAro > 0 {
			sp.Arrow = &biplot.ArrowStyle{HeadLength: *flagSpeAro}
		}
		cfg.Species = sp
	}

	if envTab != nil {
		fits, err := pcoa.EnvFit{Permutations: *flagPerm}.Fit(r, axes, numericTable(envTab))
		if err != nil {
			log.Fatal(err)
		}
		cfg.Vectors = &biplot.VectorStyle{Fits: fits, Zoom: *flagZoom, Arrow: &biplot.ArrowStyle{}}
	}

	if *flagEllipse {
		cfg.Ellipse = &biplot.EllipseStyle{Prob: *flagEllProb}
	}

	plt, err := biplot.Render(r, abundance, cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Render plot.
	f := os.Stdout
	if *flagOut != "" {
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}
	if err := plt.WriteSVG(f, *flagWidth, *flagHeight); err != nil {
		log.Fatal(err)
	}
}
