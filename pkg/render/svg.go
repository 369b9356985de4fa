package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/yuletree/pkg/render/styles"
	"github.com/matzehuels/yuletree/pkg/shell"
	"github.com/matzehuels/yuletree/pkg/silhouette"
)

// Decoration sizes in silhouette units.
const (
	OrnamentRadius = 11.0
	LightRadius    = 3.0
	flakeRadius    = 2.0
)

// roundedSamples is the number of segments per flank of a rounded tier.
const roundedSamples = 12

const interactionCSS = `
    .ornament, .topper.clickable { cursor: pointer; outline: none; }
    .ornament:hover > *, .ornament:focus > * { filter: brightness(1.2); }
    .ornament.selected circle, .topper.selected polygon { stroke: #ffffff; stroke-width: 2; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	animate     bool
	snow        bool
	interactive bool
}

// WithStyle selects the drawing style. The default is [styles.Classic].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithAnimations adds blinking lights, bobbing ornaments and a pulsing star.
func WithAnimations() SVGOption { return func(r *svgRenderer) { r.animate = true } }

// WithSnow draws the scene's snowflakes falling over the tree.
func WithSnow() SVGOption { return func(r *svgRenderer) { r.snow = true } }

// WithInteractive marks decorations bound to a message as focusable buttons
// carrying a data-id attribute with the message id.
func WithInteractive() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Classic{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Classic{}
	}
	return r
}

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	vb := s.Spec.ViewBox

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" role="img" aria-label="Christmas tree">`+"\n",
		vb.Width, vb.Height, vb.Width, vb.Height)

	r.style.RenderDefs(&buf)
	r.renderCSS(&buf, vb)
	r.renderTree(&buf, s.Spec)
	r.renderLights(&buf, s)
	r.renderOrnaments(&buf, s.Ornaments)
	r.renderStar(&buf, s)
	if r.snow {
		renderSnow(&buf, s, vb)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderCSS(buf *bytes.Buffer, vb silhouette.ViewBox) {
	if !r.animate && !r.interactive && !r.snow {
		return
	}
	buf.WriteString("  <style>\n")
	if r.animate {
		buf.WriteString(animationCSS())
	}
	if r.snow {
		fmt.Fprintf(buf, "    @keyframes fall { from { transform: translateY(-10px); } to { transform: translateY(%.0fpx); } }\n", vb.Height+10)
		buf.WriteString("    .flake { animation-name: fall; animation-iteration-count: infinite; animation-timing-function: linear; pointer-events: none; }\n")
	}
	if r.interactive {
		buf.WriteString(interactionCSS + "\n")
	}
	buf.WriteString("  </style>\n")
}

func (r *svgRenderer) renderTree(buf *bytes.Buffer, spec silhouette.Spec) {
	buf.WriteString(`  <g class="tree">` + "\n")
	if t := spec.Trunk; t.Width > 0 && t.Height > 0 {
		r.style.RenderTrunk(buf, styles.Trunk{X: t.X, Y: t.Y, W: t.Width, H: t.Height})
	}
	if spec.Kind == silhouette.KindPhoto {
		if spec.Image != "" {
			fmt.Fprintf(buf, `    <image href="%s" x="0" y="0" width="%.1f" height="%.1f" preserveAspectRatio="xMidYMid meet"/>`+"\n",
				styles.EscapeXML(spec.Image), spec.ViewBox.Width, spec.ViewBox.Height)
		}
	} else {
		// Lower tiers first so each upper tier overlaps the one below.
		for i := len(spec.Tiers) - 1; i >= 0; i-- {
			r.style.RenderTier(buf, styles.Tier{Index: i, Points: tierPoints(spec, spec.Tiers[i])})
		}
	}
	buf.WriteString("  </g>\n")
}

// tierPoints returns the outline of tier t: a triangle, or for rounded
// silhouettes two sqrt-shaped flanks closed by the base.
func tierPoints(spec silhouette.Spec, t silhouette.Tier) [][2]float64 {
	cx := spec.CenterX
	if spec.Kind != silhouette.KindRounded {
		return [][2]float64{{cx, t.YTop}, {t.XRight, t.YBottom}, {t.XLeft, t.YBottom}}
	}
	h := t.YBottom - t.YTop
	pts := make([][2]float64, 0, 2*roundedSamples+1)
	pts = append(pts, [2]float64{cx, t.YTop})
	for k := 1; k <= roundedSamples; k++ {
		p := float64(k) / roundedSamples
		pts = append(pts, [2]float64{cx + (t.XRight-cx)*math.Sqrt(p), t.YTop + h*p})
	}
	for k := roundedSamples; k >= 1; k-- {
		p := float64(k) / roundedSamples
		pts = append(pts, [2]float64{cx - (cx-t.XLeft)*math.Sqrt(p), t.YTop + h*p})
	}
	return pts
}

func (r *svgRenderer) renderLights(buf *bytes.Buffer, s Scene) {
	buf.WriteString(`  <g class="lights">` + "\n")
	for _, l := range s.Lights {
		if r.animate {
			fmt.Fprintf(buf, `    <g class="light" style="animation-duration:%.2fs;animation-delay:%.2fs">`+"\n", l.Duration, l.Delay)
		} else {
			buf.WriteString(`    <g class="light">` + "\n")
		}
		r.style.RenderLight(buf, styles.Light{Index: l.Index, X: l.X, Y: l.Y, R: LightRadius, Color: l.Color})
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderOrnaments(buf *bytes.Buffer, items []shell.Item) {
	buf.WriteString(`  <g class="ornaments">` + "\n")
	for _, it := range items {
		p := it.Placed
		buf.WriteString(`    <g class="ornament`)
		if r.animate {
			buf.WriteString(` bob"`)
			d, delay := BobTiming(p.Index)
			fmt.Fprintf(buf, ` style="animation-duration:%.2fs;animation-delay:%.2fs"`, d, delay)
		} else {
			buf.WriteString(`"`)
		}
		fmt.Fprintf(buf, ` data-index="%d"`, p.Index)
		if r.interactive {
			fmt.Fprintf(buf, ` data-id="%d" tabindex="0" role="button" aria-label="Ornament %d"`, it.Message.ID, p.Index+1)
		}
		buf.WriteString(">\n")
		r.style.RenderOrnament(buf, styles.Ornament{Index: p.Index, X: p.X, Y: p.Y, R: OrnamentRadius, Color: p.Color})
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderStar(buf *bytes.Buffer, s Scene) {
	st := s.Spec.Star
	if st.Outer <= 0 {
		return
	}
	class := "topper"
	if r.animate {
		class += " star"
	}
	if r.interactive && s.Star != nil {
		class += " clickable"
	}
	fmt.Fprintf(buf, `  <g class="%s"`, class)
	if r.interactive && s.Star != nil {
		fmt.Fprintf(buf, ` data-id="%d" tabindex="0" role="button" aria-label="Star"`, s.Star.Message.ID)
	}
	buf.WriteString(">\n")
	r.style.RenderStar(buf, styles.Star{Points: st.Points(), Color: st.Color})
	buf.WriteString("  </g>\n")
}

func renderSnow(buf *bytes.Buffer, s Scene, vb silhouette.ViewBox) {
	buf.WriteString(`  <g class="snow" fill="#ffffff" opacity="0.8">` + "\n")
	for _, f := range s.Snow {
		fmt.Fprintf(buf, `    <circle class="flake" cx="%.1f" cy="0" r="%.2f" style="animation-duration:%.2fs;animation-delay:%.2fs"/>`+"\n",
			f.Left/100*vb.Width, flakeRadius*f.Scale, f.Duration, f.Delay)
	}
	buf.WriteString("  </g>\n")
}
