package styles

import (
	"bytes"
	"fmt"
)

// Classic draws shaded foliage, glossy baubles and glowing lights.
type Classic struct{}

func (Classic) Name() string { return "classic" }

func (Classic) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <linearGradient id="foliage" x1="0" y1="0" x2="0" y2="1">
      <stop offset="0%" stop-color="#22c55e"/>
      <stop offset="100%" stop-color="#15803d"/>
    </linearGradient>
    <linearGradient id="bark" x1="0" y1="0" x2="1" y2="0">
      <stop offset="0%" stop-color="#78350f"/>
      <stop offset="50%" stop-color="#92400e"/>
      <stop offset="100%" stop-color="#78350f"/>
    </linearGradient>
    <radialGradient id="shine" cx="35%" cy="35%" r="65%">
      <stop offset="0%" stop-color="#ffffff" stop-opacity="0.85"/>
      <stop offset="40%" stop-color="#ffffff" stop-opacity="0.15"/>
      <stop offset="100%" stop-color="#000000" stop-opacity="0.25"/>
    </radialGradient>
    <filter id="glow" x="-100%" y="-100%" width="300%" height="300%">
      <feGaussianBlur stdDeviation="2.5" result="blur"/>
      <feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge>
    </filter>
  </defs>
`)
}

func (Classic) RenderTier(buf *bytes.Buffer, t Tier) {
	fmt.Fprintf(buf, `    <polygon class="tier" data-tier="%d" points="%s" fill="url(#foliage)" stroke="#166534" stroke-width="1.5" stroke-linejoin="round"/>`+"\n",
		t.Index, Points(t.Points))
}

func (Classic) RenderTrunk(buf *bytes.Buffer, t Trunk) {
	fmt.Fprintf(buf, `    <rect class="trunk" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="url(#bark)"/>`+"\n",
		t.X, t.Y, t.W, t.H)
}

func (Classic) RenderLight(buf *bytes.Buffer, l Light) {
	fmt.Fprintf(buf, `      <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" filter="url(#glow)"/>`+"\n",
		l.X, l.Y, l.R, EscapeXML(l.Color))
}

func (Classic) RenderOrnament(buf *bytes.Buffer, o Ornament) {
	fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="1" fill="#d4af37"/>`+"\n",
		o.X-o.R*0.3, o.Y-o.R-3, o.R*0.6, 4.0)
	fmt.Fprintf(buf, `      <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", o.X, o.Y, o.R, EscapeXML(o.Color))
	fmt.Fprintf(buf, `      <circle cx="%.1f" cy="%.1f" r="%.1f" fill="url(#shine)"/>`+"\n", o.X, o.Y, o.R)
}

func (Classic) RenderStar(buf *bytes.Buffer, s Star) {
	fmt.Fprintf(buf, `      <polygon points="%s" fill="%s" stroke="#f59e0b" stroke-width="1.5" filter="url(#glow)"/>`+"\n",
		Points(s.Points), EscapeXML(s.Color))
}
