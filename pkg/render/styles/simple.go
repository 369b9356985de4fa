package styles

import (
	"bytes"
	"fmt"
)

// Simple draws flat fills without gradients or filters. It is the cheaper
// choice for terminals that rasterise the SVG and for print.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderTier(buf *bytes.Buffer, t Tier) {
	fmt.Fprintf(buf, `    <polygon class="tier" data-tier="%d" points="%s" fill="#16a34a"/>`+"\n", t.Index, Points(t.Points))
}

func (Simple) RenderTrunk(buf *bytes.Buffer, t Trunk) {
	fmt.Fprintf(buf, `    <rect class="trunk" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#92400e"/>`+"\n",
		t.X, t.Y, t.W, t.H)
}

func (Simple) RenderLight(buf *bytes.Buffer, l Light) {
	fmt.Fprintf(buf, `      <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", l.X, l.Y, l.R, EscapeXML(l.Color))
}

func (Simple) RenderOrnament(buf *bytes.Buffer, o Ornament) {
	fmt.Fprintf(buf, `      <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#ffffff" stroke-width="1"/>`+"\n",
		o.X, o.Y, o.R, EscapeXML(o.Color))
}

func (Simple) RenderStar(buf *bytes.Buffer, s Star) {
	fmt.Fprintf(buf, `      <polygon points="%s" fill="%s"/>`+"\n", Points(s.Points), EscapeXML(s.Color))
}
