package render

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/message"
	"github.com/matzehuels/yuletree/pkg/render/styles"
	"github.com/matzehuels/yuletree/pkg/silhouette"
)

func seededScene(t *testing.T) Scene {
	t.Helper()
	msgs, err := message.Seed("en")
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	return NewScene(silhouette.Default(), msgs, DefaultSceneOptions())
}

func TestNewScene(t *testing.T) {
	s := seededScene(t)

	if s.Star == nil || s.Star.Message.ID != 1 {
		t.Fatalf("Star = %+v, want message 1", s.Star)
	}
	if got := len(s.Ornaments); got != 11 {
		t.Errorf("len(Ornaments) = %d, want 11", got)
	}
	if got := len(s.Lights); got != 28 {
		t.Errorf("len(Lights) = %d, want 28", got)
	}
	if got := len(s.Snow); got != 30 {
		t.Errorf("len(Snow) = %d, want 30", got)
	}
	if s.Seed != 42 {
		t.Errorf("Seed = %d, want 42", s.Seed)
	}
	if got := s.Messages(); len(got) != 12 || got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("Messages() = %v, want star first then ornaments", got)
	}
}

func TestNewSceneEmpty(t *testing.T) {
	s := NewScene(silhouette.Default(), nil, DefaultSceneOptions())
	if s.Star != nil || len(s.Ornaments) != 0 {
		t.Errorf("empty scene has items: %+v", s.Items())
	}
	if len(s.Lights) == 0 {
		t.Error("empty scene has no lights, want the tree still decorated")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(seededScene(t), WithAnimations(), WithSnow(), WithInteractive())
	b := RenderSVG(seededScene(t), WithAnimations(), WithSnow(), WithInteractive())
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG() output differs between identical scenes")
	}
}

func TestRenderSVG(t *testing.T) {
	s := seededScene(t)
	svg := string(RenderSVG(s, WithAnimations(), WithInteractive()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 420.0 580.0"`) {
		t.Errorf("unexpected header: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if got := strings.Count(svg, `class="tier"`); got != 6 {
		t.Errorf("tiers = %d, want 6", got)
	}
	if got := strings.Count(svg, `data-id="`); got != 12 {
		t.Errorf("clickable items = %d, want 12", got)
	}
	if !strings.Contains(svg, `class="topper star clickable" data-id="1"`) {
		t.Error("star is not bound to message 1")
	}
	if got := strings.Count(svg, `<g class="light"`); got != 28 {
		t.Errorf("lights = %d, want 28", got)
	}
	for _, kf := range []string{"@keyframes blink", "@keyframes bob", "@keyframes pulse"} {
		if !strings.Contains(svg, kf) {
			t.Errorf("missing %s", kf)
		}
	}
	if strings.Contains(svg, "@keyframes fall") {
		t.Error("snow rendered without WithSnow")
	}
}

func TestRenderSVGStatic(t *testing.T) {
	svg := string(RenderSVG(seededScene(t), WithStyle(styles.Simple{})))
	for _, unwanted := range []string{"<style>", "data-id", "animation-duration", "url(#"} {
		if strings.Contains(svg, unwanted) {
			t.Errorf("static simple SVG contains %q", unwanted)
		}
	}
	if !strings.Contains(svg, `<g class="topper">`) {
		t.Error("star missing from static SVG")
	}
}

func TestRenderSVGNilStyle(t *testing.T) {
	svg := string(RenderSVG(seededScene(t), WithStyle(nil)))
	if !strings.Contains(svg, `id="foliage"`) {
		t.Error("nil style did not fall back to classic")
	}
}

func TestRenderSVGPhoto(t *testing.T) {
	spec := silhouette.Spec{
		Name:    "photo",
		Kind:    silhouette.KindPhoto,
		CenterX: 200,
		ViewBox: silhouette.ViewBox{Width: 400, Height: 500},
		Box:     silhouette.Box{X0: 50, Y0: 60, X1: 350, Y1: 440},
		Image:   "tree.png?a=1&b=2",
	}
	msgs, _ := message.Seed("en")
	svg := string(RenderSVG(NewScene(spec, msgs, DefaultSceneOptions())))

	if !strings.Contains(svg, `<image href="tree.png?a=1&amp;b=2"`) {
		t.Error("photo image missing or unescaped")
	}
	if strings.Contains(svg, `class="tier"`) {
		t.Error("photo silhouette drew tiers")
	}
	if strings.Contains(svg, `class="topper"`) {
		t.Error("photo silhouette without a star drew one")
	}
}

func TestTierPoints(t *testing.T) {
	tier := silhouette.Tier{YTop: 0, YBottom: 100, XLeft: 0, XRight: 200}

	spec := silhouette.Spec{Kind: silhouette.KindTriangular, CenterX: 100}
	want := [][2]float64{{100, 0}, {200, 100}, {0, 100}}
	if diff := cmp.Diff(want, tierPoints(spec, tier)); diff != "" {
		t.Errorf("triangular tierPoints() mismatch (-want +got):\n%s", diff)
	}

	spec.Kind = silhouette.KindRounded
	pts := tierPoints(spec, tier)
	if len(pts) != 2*roundedSamples+1 {
		t.Fatalf("rounded tierPoints() has %d points, want %d", len(pts), 2*roundedSamples+1)
	}
	b := spec
	b.Tiers = []silhouette.Tier{tier}
	bound := b.Boundary()
	for _, p := range pts[1:] {
		_, hi := bound.Bounds(p[1])
		if p[0] > 100 && math.Abs(p[0]-hi) > 1e-9 {
			t.Errorf("rounded outline x=%v at y=%v, boundary says %v", p[0], p[1], hi)
		}
	}
}

func TestTrackAt(t *testing.T) {
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0.1},
		{0.15, 0.55},
		{0.3, 1},
		{0.5, 0.1},
		{1, 0.1},
		{-1, 0.1},
		{2, 0.1},
	}
	for _, tt := range tests {
		if got := blinkOpacity.at(tt.t); math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("blinkOpacity.at(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestBobTiming(t *testing.T) {
	tests := []struct {
		i          int
		dur, delay float64
	}{
		{0, 2.5, 0},
		{1, 3.0, 0.3},
		{2, 3.5, 0.6},
		{3, 2.5, 0.9},
		{5, 3.5, 0},
	}
	for _, tt := range tests {
		d, delay := BobTiming(tt.i)
		if math.Abs(d-tt.dur) > 1e-9 || math.Abs(delay-tt.delay) > 1e-9 {
			t.Errorf("BobTiming(%d) = (%v, %v), want (%v, %v)", tt.i, d, delay, tt.dur, tt.delay)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	s := seededScene(t)
	data, err := RenderJSON(s, WithJSONStyle("classic"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Silhouette != "classic" || out.Style != "classic" || out.Seed != 42 {
		t.Errorf("header = %q/%q/%d", out.Silhouette, out.Style, out.Seed)
	}
	if out.Star == nil || out.Star.ID != 1 || out.Star.Message != "I love you" {
		t.Errorf("Star = %+v, want message 1", out.Star)
	}
	if len(out.Ornaments) != 11 || out.Ornaments[0].ID != 2 {
		t.Fatalf("Ornaments = %+v", out.Ornaments)
	}
	first := s.Ornaments[0].Placed
	if out.Ornaments[0].X != first.X || out.Ornaments[0].Color != first.Color {
		t.Errorf("Ornaments[0] = %+v, want placed %+v", out.Ornaments[0], first)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(Scene{Spec: silhouette.Default()})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	for _, want := range []string{`"ornaments":[]`, `"lights":[]`, `"snowflakes":[]`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("RenderJSON() = %s, missing %s", data, want)
		}
	}
	if strings.Contains(string(data), `"star"`) {
		t.Error("empty scene has a star item")
	}
}

func TestRenderHTML(t *testing.T) {
	page, err := RenderHTML(seededScene(t), DefaultPageOptions())
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	html := string(page)

	for _, want := range []string{
		"<title>My Christmas gift to you my Selsell</title>",
		"Click on an ornament to reveal a special Christmas message.",
		`id="message-dialog"`,
		`"1":"I love you"`,
		`"particleCount":40`,
		`class="snowflake"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if got := strings.Count(html, `class="snowflake"`); got != 30 {
		t.Errorf("snowflakes = %d, want 30", got)
	}
}

func TestRenderHTMLNoMessages(t *testing.T) {
	opts := DefaultPageOptions()
	opts.Snow = false
	opts.Year = 2025
	page, err := RenderHTML(NewScene(silhouette.Default(), nil, DefaultSceneOptions()), opts)
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	html := string(page)
	if !strings.Contains(html, `class="tier"`) {
		t.Error("page without messages lost the tree")
	}
	if strings.Contains(html, "data-id=") {
		t.Error("page without messages has clickable items")
	}
	if strings.Contains(html, `class="snowflake"`) {
		t.Error("snow rendered with Snow=false")
	}
	if !strings.Contains(html, "&copy; 2025") {
		t.Error("footer year missing")
	}
}

func TestRenderHTMLEscapesMessages(t *testing.T) {
	msgs := []message.Message{{ID: 1, Text: `</script><script>alert(1)</script>`}}
	page, err := RenderHTML(NewScene(silhouette.Default(), msgs, DefaultSceneOptions()), PageOptions{Title: "<b>hi</b>"})
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	if strings.Contains(string(page), "<script>alert(1)") {
		t.Error("message text was not escaped")
	}
	if strings.Contains(string(page), "<b>hi</b>") {
		t.Error("title was not escaped")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{" HTML ", FormatHTML, false},
		{"json", FormatJSON, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) error code = %v, want INVALID_FORMAT", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatContentType(t *testing.T) {
	tests := map[Format]string{
		FormatSVG:  "image/svg+xml",
		FormatHTML: "text/html; charset=utf-8",
		FormatJSON: "application/json",
	}
	for f, want := range tests {
		if got := f.ContentType(); got != want {
			t.Errorf("%s.ContentType() = %q, want %q", f, got, want)
		}
		if got := f.Ext(); got != "."+string(f) {
			t.Errorf("%s.Ext() = %q", f, got)
		}
	}
}
