package silhouette

import (
	"math"

	"github.com/matzehuels/yuletree/pkg/errors"
)

// Kind selects the boundary variant of a silhouette.
type Kind string

const (
	KindTriangular Kind = "triangular"
	KindRounded    Kind = "rounded"
	KindPhoto      Kind = "photo"
)

// Kinds lists the supported silhouette kinds in display order.
var Kinds = []Kind{KindTriangular, KindRounded, KindPhoto}

// Tier is one cone of a tiered silhouette. The apex sits at (CenterX, YTop)
// and the cone widens to [XLeft, XRight] at YBottom.
type Tier struct {
	YTop    float64 `toml:"y_top" json:"y_top"`
	YBottom float64 `toml:"y_bottom" json:"y_bottom"`
	XLeft   float64 `toml:"x_left" json:"x_left"`
	XRight  float64 `toml:"x_right" json:"x_right"`
}

// Box is an axis-aligned rectangle given by two corners.
type Box struct {
	X0 float64 `toml:"x0" json:"x0"`
	Y0 float64 `toml:"y0" json:"y0"`
	X1 float64 `toml:"x1" json:"x1"`
	Y1 float64 `toml:"y1" json:"y1"`
}

// Width returns the horizontal size of the box.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical size of the box.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// ViewBox is the drawing canvas in silhouette units.
type ViewBox struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Star is the five-pointed topper. It is not part of the placeable area.
type Star struct {
	X     float64 `toml:"x" json:"x"`
	Y     float64 `toml:"y" json:"y"`
	Outer float64 `toml:"outer" json:"outer"`
	Inner float64 `toml:"inner" json:"inner"`
	Color string  `toml:"color" json:"color"`
}

// Points returns the ten polygon vertices of the star, starting at the top
// point and alternating outer and inner radius clockwise.
func (s Star) Points() [][2]float64 {
	pts := make([][2]float64, 10)
	for i := range pts {
		r := s.Outer
		if i%2 == 1 {
			r = s.Inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = [2]float64{s.X + r*math.Cos(a), s.Y + r*math.Sin(a)}
	}
	return pts
}

// Trunk is the rectangle below the foliage.
type Trunk struct {
	X      float64 `toml:"x" json:"x"`
	Y      float64 `toml:"y" json:"y"`
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Row is one hand-tuned ornament row: a height and the number of ornaments
// the row should hold when space allows.
type Row struct {
	Y     float64 `toml:"y" json:"y"`
	Count int     `toml:"count" json:"count"`
}

// Spec is an authored silhouette description. It is never mutated after
// construction; [Spec.Boundary] derives the geometry from it.
type Spec struct {
	Name    string  `toml:"name" json:"name"`
	Kind    Kind    `toml:"kind" json:"kind"`
	CenterX float64 `toml:"center_x" json:"center_x"`
	ViewBox ViewBox `toml:"viewbox" json:"viewbox"`
	Tiers   []Tier  `toml:"tier" json:"tiers,omitempty"`

	// Box and Image are used by KindPhoto only.
	Box   Box    `toml:"box" json:"box"`
	Image string `toml:"image,omitempty" json:"image,omitempty"`

	Star  Star  `toml:"star" json:"star"`
	Trunk Trunk `toml:"trunk" json:"trunk"`

	// Rows is an optional hand-tuned ornament row plan. When empty the
	// layout engine derives rows from the silhouette's taper.
	Rows []Row `toml:"row" json:"rows,omitempty"`
}

// Default returns the canonical six-tier tree in a 420x580 view box.
func Default() Spec {
	return Spec{
		Name:    "classic",
		Kind:    KindTriangular,
		CenterX: 210,
		ViewBox: ViewBox{Width: 420, Height: 580},
		Tiers: []Tier{
			{YTop: 35, YBottom: 95, XLeft: 170, XRight: 250},
			{YTop: 75, YBottom: 150, XLeft: 130, XRight: 290},
			{YTop: 130, YBottom: 220, XLeft: 90, XRight: 330},
			{YTop: 190, YBottom: 295, XLeft: 60, XRight: 360},
			{YTop: 260, YBottom: 380, XLeft: 30, XRight: 390},
			{YTop: 340, YBottom: 470, XLeft: 10, XRight: 410},
		},
		Star:  Star{X: 210, Y: 35, Outer: 30, Inner: 12, Color: "#FFD700"},
		Trunk: Trunk{X: 185, Y: 470, Width: 50, Height: 70},
		Rows: []Row{
			{Y: 85, Count: 1},
			{Y: 130, Count: 2},
			{Y: 175, Count: 3},
			{Y: 220, Count: 3},
			{Y: 265, Count: 4},
			{Y: 310, Count: 4},
			{Y: 355, Count: 4},
			{Y: 400, Count: 3},
			{Y: 445, Count: 2},
		},
	}
}

// Validate checks that the spec describes a usable silhouette.
func (s Spec) Validate() error {
	if s.ViewBox.Width <= 0 || s.ViewBox.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidSilhouette, "viewbox must have a positive size, got %gx%g", s.ViewBox.Width, s.ViewBox.Height)
	}
	switch s.Kind {
	case KindTriangular, KindRounded:
		if len(s.Tiers) == 0 {
			return errors.New(errors.ErrCodeInvalidSilhouette, "%s silhouette needs at least one tier", s.Kind)
		}
		for i, t := range s.Tiers {
			if t.YBottom < t.YTop {
				return errors.New(errors.ErrCodeInvalidSilhouette, "tier %d: y_bottom %g above y_top %g", i, t.YBottom, t.YTop)
			}
			if t.XLeft > s.CenterX || t.XRight < s.CenterX {
				return errors.New(errors.ErrCodeInvalidSilhouette, "tier %d: span [%g, %g] does not contain center_x %g", i, t.XLeft, t.XRight, s.CenterX)
			}
		}
	case KindPhoto:
		if s.Box.Width() < 0 || s.Box.Height() < 0 {
			return errors.New(errors.ErrCodeInvalidSilhouette, "box corners are inverted")
		}
	default:
		return errors.New(errors.ErrCodeInvalidSilhouette, "unknown kind %q (want triangular, rounded or photo)", s.Kind)
	}
	for i, r := range s.Rows {
		if r.Count < 0 {
			return errors.New(errors.ErrCodeInvalidSilhouette, "row %d: negative count %d", i, r.Count)
		}
	}
	return nil
}

// Boundary returns the boundary function for the spec's kind. Unknown kinds
// fall back to the triangular variant so that rendering never fails.
func (s Spec) Boundary() Boundary {
	switch s.Kind {
	case KindPhoto:
		return boxBoundary{box: s.Box}
	case KindRounded:
		return newTiered(s.CenterX, s.Tiers, math.Sqrt)
	default:
		return newTiered(s.CenterX, s.Tiers, nil)
	}
}
