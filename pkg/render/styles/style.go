package styles

import "bytes"

// Style defines the visual appearance of a tree scene.
// Implementations draw static shapes only; animation wrappers are added by
// the SVG renderer around what the style writes.
type Style interface {
	// Name is the identifier accepted by [ByName].
	Name() string
	// RenderDefs writes SVG <defs> content (gradients, filters).
	RenderDefs(buf *bytes.Buffer)
	// RenderTier writes one foliage tier.
	RenderTier(buf *bytes.Buffer, t Tier)
	// RenderTrunk writes the trunk below the foliage.
	RenderTrunk(buf *bytes.Buffer, t Trunk)
	// RenderLight writes a single light at its resting state.
	RenderLight(buf *bytes.Buffer, l Light)
	// RenderOrnament writes a single ornament bauble.
	RenderOrnament(buf *bytes.Buffer, o Ornament)
	// RenderStar writes the star topper.
	RenderStar(buf *bytes.Buffer, s Star)
}

// Tier is a closed foliage polygon.
type Tier struct {
	Index  int
	Points [][2]float64
}

// Trunk is the rectangle below the foliage.
type Trunk struct {
	X, Y, W, H float64
}

// Light is a small glowing dot.
type Light struct {
	Index int
	X, Y  float64
	R     float64
	Color string
}

// Ornament is a bauble hanging on the tree.
type Ornament struct {
	Index int
	X, Y  float64
	R     float64
	Color string
}

// Star is the topper polygon.
type Star struct {
	Points [][2]float64
	Color  string
}
