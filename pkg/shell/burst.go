package shell

import (
	"context"
	"math"
	"slices"

	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/observability"
)

// ClickEvent is a click on a decoration, in viewport pixels. Target is
// the centre of the clicked element.
type ClickEvent struct {
	TargetX        float64
	TargetY        float64
	ViewportWidth  float64
	ViewportHeight float64
}

// Normalize returns the click position relative to the viewport, each
// coordinate clamped to [0, 1]. An unknown (non-positive) viewport
// dimension maps to the centre, 0.5.
func (ev ClickEvent) Normalize() (x, y float64) {
	return ratio(ev.TargetX, ev.ViewportWidth), ratio(ev.TargetY, ev.ViewportHeight)
}

func ratio(v, size float64) float64 {
	if size <= 0 || math.IsNaN(v) || math.IsNaN(size) || math.IsInf(size, 0) {
		return 0.5
	}
	return math.Max(0, math.Min(1, v/size))
}

// Burst parametrises a confetti burst.
type Burst struct {
	OriginX       float64  `json:"x"`
	OriginY       float64  `json:"y"`
	Colors        []string `json:"colors"`
	ParticleCount int      `json:"particleCount"`
	Spread        float64  `json:"spread"`
	Scalar        float64  `json:"scalar"`
}

// BurstColors are red, yellow, green and white.
var BurstColors = []string{"#ef4444", "#eab308", "#22c55e", "#ffffff"}

// DefaultBurst returns the burst used for every selection. Its colours
// are a copy of [BurstColors].
func DefaultBurst() Burst {
	return Burst{
		OriginX:       0.5,
		OriginY:       0.5,
		Colors:        slices.Clone(BurstColors),
		ParticleCount: 40,
		Spread:        60,
		Scalar:        0.8,
	}
}

// Celebrator fires a particle burst. Implementations are best-effort.
type Celebrator interface {
	Celebrate(b Burst) error
}

// CelebratorFunc adapts a function to [Celebrator].
type CelebratorFunc func(Burst) error

func (f CelebratorFunc) Celebrate(b Burst) error { return f(b) }

// celebrate calls c. Errors and panics never reach the caller; they are
// reported to the shell hooks.
func celebrate(c Celebrator, b Burst) {
	if c == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			observability.Shell().OnCelebrateError(context.Background(),
				errors.New(errors.ErrCodeInternal, "celebrator panicked: %v", r))
		}
	}()
	if err := c.Celebrate(b); err != nil {
		observability.Shell().OnCelebrateError(context.Background(), err)
	}
}
