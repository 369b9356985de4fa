package silhouette

import (
	"math"
	"sort"
)

// Boundary maps a height to the horizontal span of the silhouette there.
type Boundary interface {
	// Bounds returns the span at y. Outside the silhouette the span is
	// degenerate (xMin == xMax) rather than an error.
	Bounds(y float64) (xMin, xMax float64)

	// Extent returns the vertical range the silhouette covers.
	Extent() (yTop, yBottom float64)

	// Breakpoints returns the sorted heights at which the set of shapes
	// contributing to Bounds changes.
	Breakpoints() []float64
}

// Center returns the horizontal midpoint of b at y.
func Center(b Boundary, y float64) float64 {
	lo, hi := b.Bounds(y)
	return (lo + hi) / 2
}

type tiered struct {
	cx     float64
	tiers  []Tier
	shape  func(float64) float64
	top    float64
	bottom float64
	breaks []float64
}

func newTiered(cx float64, tiers []Tier, shape func(float64) float64) *tiered {
	t := &tiered{cx: cx, tiers: tiers, shape: shape}
	if len(tiers) == 0 {
		return t
	}
	t.top, t.bottom = math.Inf(1), math.Inf(-1)
	seen := make(map[float64]bool, 2*len(tiers))
	for _, tr := range tiers {
		t.top = math.Min(t.top, tr.YTop)
		t.bottom = math.Max(t.bottom, tr.YBottom)
		for _, y := range []float64{tr.YTop, tr.YBottom} {
			if !seen[y] {
				seen[y] = true
				t.breaks = append(t.breaks, y)
			}
		}
	}
	sort.Float64s(t.breaks)
	return t
}

func (t *tiered) Bounds(y float64) (float64, float64) {
	lo, hi := t.cx, t.cx
	for _, tr := range t.tiers {
		if y < tr.YTop || y > tr.YBottom {
			continue
		}
		p := 1.0
		if h := tr.YBottom - tr.YTop; h > 0 {
			p = (y - tr.YTop) / h
		}
		if t.shape != nil {
			p = t.shape(p)
		}
		lo = math.Min(lo, t.cx-(t.cx-tr.XLeft)*p)
		hi = math.Max(hi, t.cx+(tr.XRight-t.cx)*p)
	}
	return lo, hi
}

func (t *tiered) Extent() (float64, float64) { return t.top, t.bottom }

func (t *tiered) Breakpoints() []float64 { return append([]float64(nil), t.breaks...) }

type boxBoundary struct {
	box Box
}

func (b boxBoundary) Bounds(y float64) (float64, float64) {
	if y < b.box.Y0 || y > b.box.Y1 {
		c := (b.box.X0 + b.box.X1) / 2
		return c, c
	}
	return b.box.X0, b.box.X1
}

func (b boxBoundary) Extent() (float64, float64) { return b.box.Y0, b.box.Y1 }

func (b boxBoundary) Breakpoints() []float64 { return []float64{b.box.Y0, b.box.Y1} }
