package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/yuletree/pkg/errors"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "classic"},
		{"classic", "classic"},
		{" Simple ", "simple"},
	}
	for _, tt := range tests {
		s, err := ByName(tt.name)
		if err != nil {
			t.Fatalf("ByName(%q) error: %v", tt.name, err)
		}
		if s.Name() != tt.want {
			t.Errorf("ByName(%q).Name() = %q, want %q", tt.name, s.Name(), tt.want)
		}
	}

	if _, err := ByName("handdrawn"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("ByName(handdrawn) error = %v, want INVALID_STYLE", err)
	}
}

func TestPoints(t *testing.T) {
	got := Points([][2]float64{{210, 35}, {250, 95}, {170.04, 95}})
	if want := "210.0,35.0 250.0,95.0 170.0,95.0"; got != want {
		t.Errorf("Points() = %q, want %q", got, want)
	}
	if got := Points(nil); got != "" {
		t.Errorf("Points(nil) = %q, want empty", got)
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`<b>"red" & gold</b>`); strings.ContainsAny(got, `<>"`) {
		t.Errorf("EscapeXML() = %q, still contains markup", got)
	}
}

func TestStylesEscapeColors(t *testing.T) {
	for _, s := range []Style{Classic{}, Simple{}} {
		var buf bytes.Buffer
		s.RenderOrnament(&buf, Ornament{X: 10, Y: 10, R: 5, Color: `red"/><script>`})
		s.RenderLight(&buf, Light{X: 1, Y: 1, R: 2, Color: `<x>`})
		if strings.Contains(buf.String(), "<script>") || strings.Contains(buf.String(), "<x>") {
			t.Errorf("%s style wrote unescaped colour: %s", s.Name(), buf.String())
		}
	}
}

func TestClassicDefsReferenced(t *testing.T) {
	var defs, body bytes.Buffer
	c := Classic{}
	c.RenderDefs(&defs)
	c.RenderTier(&body, Tier{Points: [][2]float64{{0, 0}, {1, 1}, {0, 1}}})
	c.RenderTrunk(&body, Trunk{W: 1, H: 1})
	c.RenderOrnament(&body, Ornament{R: 5, Color: "#fff"})
	c.RenderLight(&body, Light{R: 2, Color: "#fff"})

	for _, id := range []string{"foliage", "bark", "shine", "glow"} {
		if !strings.Contains(body.String(), "url(#"+id+")") {
			t.Errorf("body does not reference #%s", id)
		}
		if !strings.Contains(defs.String(), `id="`+id+`"`) {
			t.Errorf("defs do not define #%s", id)
		}
	}
}
