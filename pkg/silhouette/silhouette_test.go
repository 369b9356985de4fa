package silhouette

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/yuletree/pkg/errors"
)

func TestTriangularBounds(t *testing.T) {
	b := Default().Boundary()

	tests := []struct {
		name   string
		y      float64
		lo, hi float64
	}{
		{"apex", 35, 210, 210},
		{"above tree", 10, 210, 210},
		{"below tree", 500, 210, 210},
		{"first tier only", 65, 190, 230},
		{"first tier bottom", 95, 170, 250},
		{"overlap takes union", 140, 130 + 80*(1-65.0/75), 290 - 80*(1-65.0/75)},
		{"base", 470, 10, 410},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := b.Bounds(tt.y)
			if math.Abs(lo-tt.lo) > 1e-9 || math.Abs(hi-tt.hi) > 1e-9 {
				t.Errorf("Bounds(%v) = (%v, %v), want (%v, %v)", tt.y, lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestRoundedBoundsBulge(t *testing.T) {
	s := Default()
	s.Kind = KindRounded
	rounded := s.Boundary()
	straight := Default().Boundary()

	for y := 36.0; y < 470; y += 7 {
		rl, rh := rounded.Bounds(y)
		sl, sh := straight.Bounds(y)
		if rh-rl < sh-sl-1e-9 {
			t.Errorf("rounded span at %v = %v, narrower than triangular %v", y, rh-rl, sh-sl)
		}
	}
}

func TestPhotoBounds(t *testing.T) {
	s := Spec{
		Kind:    KindPhoto,
		ViewBox: ViewBox{Width: 400, Height: 600},
		Box:     Box{X0: 50, Y0: 60, X1: 350, Y1: 500},
	}
	b := s.Boundary()

	if lo, hi := b.Bounds(200); lo != 50 || hi != 350 {
		t.Errorf("Bounds(200) = (%v, %v), want (50, 350)", lo, hi)
	}
	if lo, hi := b.Bounds(10); lo != 200 || hi != 200 {
		t.Errorf("Bounds(10) = (%v, %v), want (200, 200)", lo, hi)
	}
	if top, bottom := b.Extent(); top != 60 || bottom != 500 {
		t.Errorf("Extent() = (%v, %v), want (60, 500)", top, bottom)
	}
}

func TestExtentAndBreakpoints(t *testing.T) {
	b := Default().Boundary()

	top, bottom := b.Extent()
	if top != 35 || bottom != 470 {
		t.Errorf("Extent() = (%v, %v), want (35, 470)", top, bottom)
	}

	want := []float64{35, 75, 95, 130, 150, 190, 220, 260, 295, 340, 380, 470}
	if diff := cmp.Diff(want, b.Breakpoints()); diff != "" {
		t.Errorf("Breakpoints() mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundsWidenBetweenBreakpoints(t *testing.T) {
	for _, kind := range []Kind{KindTriangular, KindRounded} {
		s := Default()
		s.Kind = kind
		b := s.Boundary()
		bps := b.Breakpoints()
		for i := 0; i+1 < len(bps); i++ {
			prev := -1.0
			for y := bps[i] + 1e-6; y < bps[i+1]; y += 0.5 {
				lo, hi := b.Bounds(y)
				if hi-lo < prev-1e-9 {
					t.Errorf("%s: span narrows at y=%v (%v < %v)", kind, y, hi-lo, prev)
				}
				prev = hi - lo
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Spec)
		wantErr bool
	}{
		{"default", func(*Spec) {}, false},
		{"rounded", func(s *Spec) { s.Kind = KindRounded }, false},
		{"photo", func(s *Spec) { s.Kind = KindPhoto; s.Box = Box{X0: 0, Y0: 0, X1: 10, Y1: 10} }, false},
		{"unknown kind", func(s *Spec) { s.Kind = "hexagonal" }, true},
		{"no tiers", func(s *Spec) { s.Tiers = nil }, true},
		{"inverted tier", func(s *Spec) { s.Tiers[0].YBottom = 10 }, true},
		{"center outside tier", func(s *Spec) { s.Tiers[0].XLeft = 220 }, true},
		{"empty viewbox", func(s *Spec) { s.ViewBox = ViewBox{} }, true},
		{"inverted box", func(s *Spec) { s.Kind = KindPhoto; s.Box = Box{X0: 10, X1: 0} }, true},
		{"negative row", func(s *Spec) { s.Rows[0].Count = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidSilhouette) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSilhouette)
			}
		})
	}
}

func TestStarPoints(t *testing.T) {
	star := Default().Star
	pts := star.Points()
	if len(pts) != 10 {
		t.Fatalf("len(Points()) = %d, want 10", len(pts))
	}
	if math.Abs(pts[0][0]-210) > 1e-9 || math.Abs(pts[0][1]-5) > 1e-9 {
		t.Errorf("top point = %v, want [210 5]", pts[0])
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			s := Default()
			s.Kind = kind
			if kind == KindPhoto {
				s.Box = Box{X0: 20, Y0: 40, X1: 400, Y1: 470}
				s.Image = "tree.png"
			}

			data, err := Marshal(s)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			got, err := Decode(strings.NewReader(string(data)))
			if err != nil {
				t.Fatalf("Decode() error: %v\n%s", err, data)
			}
			if diff := cmp.Diff(s, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	src := `
center_x = 210
colour = "green"

[viewbox]
width = 420
height = 580

[[tier]]
y_top = 35
y_bottom = 95
x_left = 170
x_right = 250
`
	_, err := Decode(strings.NewReader(src))
	if err == nil {
		t.Fatal("Decode() error = nil, want unknown key error")
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("Decode() error = %v, want mention of colour", err)
	}
}

func TestDecodeDefaultsKind(t *testing.T) {
	src := `
center_x = 100

[viewbox]
width = 200
height = 300

[[tier]]
y_top = 10
y_bottom = 250
x_left = 20
x_right = 180
`
	s, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if s.Kind != KindTriangular {
		t.Errorf("Kind = %q, want %q", s.Kind, KindTriangular)
	}
	if lo, hi := s.Boundary().Bounds(250); lo != 20 || hi != 180 {
		t.Errorf("Bounds(250) = (%v, %v), want (20, 180)", lo, hi)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.toml")
	data, err := Marshal(Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Name != "classic" {
		t.Errorf("Name = %q, want classic", s.Name)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestExampleFiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "silhouettes", "*.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example silhouettes found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			top, bottom := s.Boundary().Extent()
			if bottom <= top {
				t.Errorf("Extent() = (%v, %v), want a non-empty range", top, bottom)
			}
		})
	}
}
