package layout

import (
	"math"

	"github.com/matzehuels/yuletree/pkg/silhouette"
)

// bandSpan returns the span available at every height of [y0, y1]: the
// intersection of the boundary's spans over the band.
//
// Boundaries only widen between breakpoints, so the narrowest span of each
// monotone piece sits at its top. Sampling the band ends and both
// sides of every breakpoint in the band (including one at y0) is therefore
// exact.
func bandSpan(b silhouette.Boundary, y0, y1 float64) (lo, hi float64) {
	lo, hi = b.Bounds(y0)
	take := func(y float64) {
		l, h := b.Bounds(y)
		lo, hi = math.Max(lo, l), math.Min(hi, h)
	}
	take(y1)
	for _, bp := range b.Breakpoints() {
		if bp < y0 || bp >= y1 {
			continue
		}
		take(bp)
		take(math.Nextafter(bp, math.Inf(1)))
	}
	return lo, hi
}

// capacity is the number of ornaments a span of width w holds with at
// least spacing between neighbours.
func capacity(w, spacing float64) int {
	if w < 0 {
		return 0
	}
	return int(math.Floor(w/spacing)) + 1
}

// AutoRows derives an ornament row plan from a boundary's taper.
//
// Rows are spaced MinSpacing+JitterY apart so that ornaments of different
// rows can never come closer than MinSpacing vertically. Each row is
// given as many ornaments as its usable span holds, so wider rows carry
// more items; rows with no usable span are dropped.
func AutoRows(b silhouette.Boundary, opts Options) []silhouette.Row {
	opts = opts.withDefaults()
	top, bottom := b.Extent()
	gap := opts.MinSpacing + opts.JitterY
	half := opts.JitterY / 2

	var rows []silhouette.Row
	for y := top + gap; y+half <= bottom; y += gap {
		lo, hi := bandSpan(b, y-half, y+half)
		n := capacity(hi-lo-2*opts.Margin, opts.MinSpacing)
		if n == 0 {
			continue
		}
		rows = append(rows, silhouette.Row{Y: y, Count: n})
	}
	return rows
}
