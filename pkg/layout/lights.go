package layout

import "math"

// Light is a small blinking point. Lights have no minimum spacing; only a
// margin from the silhouette edge.
type Light struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	// Duration and Delay of the blink cycle, in seconds.
	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay"`
}

// centerBias is the share of lights drawn towards the middle of their row.
const centerBias = 0.25

// PlaceLight returns light i. Its height is uniform over the silhouette
// extent and its x uniform over the span at that height, shrunk by the
// light margin (or by 15% of the width on narrow spans). A quarter of the
// lights use only the central half of the span.
func (e *Engine) PlaceLight(i int) Light {
	o := e.opts
	k := uint64(i)
	r1 := Seeded(o.Seed, StreamLightY, k)
	r2 := Seeded(o.Seed, StreamLightX, k)
	r3 := Seeded(o.Seed, StreamLightBlink, k)
	r4 := Seeded(o.Seed, StreamLightBias, k)

	top, bottom := e.boundary.Extent()
	y := top + r1*(bottom-top)
	lo, hi := e.boundary.Bounds(y)

	m := o.LightMargin
	if w := hi - lo; w <= 2*m {
		m = 0.15 * w
	}
	lo, hi = lo+m, hi-m

	var x float64
	switch {
	case hi <= lo:
		x = (lo + hi) / 2
	case r4 < centerBias:
		x = (lo+hi)/2 + (r2-0.5)*(hi-lo)*0.5
	default:
		x = lo + r2*(hi-lo)
	}
	x = math.Max(lo, math.Min(hi, x))

	return Light{
		Index:    i,
		X:        x,
		Y:        y,
		Color:    cycle(o.LightPalette, i),
		Duration: 1.5 + r3,
		Delay:    2 * r3,
	}
}

// ScatterLights returns lights 0..m-1.
func (e *Engine) ScatterLights(m int) []Light {
	lights := make([]Light, max(m, 0))
	for i := range lights {
		lights[i] = e.PlaceLight(i)
	}
	return lights
}
