// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import "unicode/utf8"

type textMetrics struct {
	width   float64
	leading float64
}

// measureString returns the metrics in pixels of s rendered in a font
// with pixel size pxSize.
//
// This is a crude estimate. Real text extents depend on the font, but
// half an em per rune is about right for the default face at UI
// sizes, and the layout only needs gutter-sizing accuracy.
func measureString(pxSize float64, s string) textMetrics {
	return textMetrics{
		width:   0.5 * pxSize * float64(utf8.RuneCountInString(s)),
		leading: 1.25 * pxSize,
	}
}
