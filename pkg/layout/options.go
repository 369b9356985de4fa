package layout

// Default option values. They are the canonical constants of the classic
// tree and are used whenever an option is left at its zero value.
const (
	DefaultMargin      = 25.0
	DefaultMinSpacing  = 35.0
	DefaultJitterX     = 15.0
	DefaultJitterY     = 12.0
	DefaultSeed        = 42
	DefaultLightMargin = 15.0
	DefaultLights      = 28
	DefaultSnowflakes  = 30
)

// OrnamentPalette is the default ornament colour cycle.
var OrnamentPalette = []string{
	"#dc2626", "#facc15", "#3b82f6", "#a855f7",
	"#ec4899", "#f97316", "#22d3ee", "#a3e635",
	"#e11d48", "#f59e0b", "#6366f1", "#d946ef",
}

// LightPalette is the default light colour cycle.
var LightPalette = []string{
	"#FFD700", "#FF69B4", "#00BFFF", "#00FF00",
	"#FFB6C1", "#FF6347", "#FFA500",
}

// Options tunes placement. Distances are in silhouette units.
type Options struct {
	// Margin is kept free between an ornament centre and the silhouette edge.
	Margin float64 `json:"margin"`
	// MinSpacing is the smallest horizontal distance between two ornaments
	// of the same row. Must be positive; zero selects the default.
	MinSpacing float64 `json:"min_spacing"`
	// JitterX is the widest horizontal perturbation (peak to peak).
	JitterX float64 `json:"jitter_x"`
	// JitterY is the vertical perturbation (peak to peak).
	JitterY float64 `json:"jitter_y"`
	// Seed selects the pseudo-random sequence.
	Seed uint64 `json:"seed"`

	LightMargin float64 `json:"light_margin"`

	Palette      []string `json:"palette,omitempty"`
	LightPalette []string `json:"light_palette,omitempty"`
}

// DefaultOptions returns the canonical option set.
func DefaultOptions() Options {
	return Options{
		Margin:       DefaultMargin,
		MinSpacing:   DefaultMinSpacing,
		JitterX:      DefaultJitterX,
		JitterY:      DefaultJitterY,
		Seed:         DefaultSeed,
		LightMargin:  DefaultLightMargin,
		Palette:      OrnamentPalette,
		LightPalette: LightPalette,
	}
}

// withDefaults fills fields that have no meaningful zero value. Margin,
// jitter and seed may legitimately be zero and are left alone.
func (o Options) withDefaults() Options {
	if o.MinSpacing <= 0 {
		o.MinSpacing = DefaultMinSpacing
	}
	if o.LightMargin <= 0 {
		o.LightMargin = DefaultLightMargin
	}
	if len(o.Palette) == 0 {
		o.Palette = OrnamentPalette
	}
	if len(o.LightPalette) == 0 {
		o.LightPalette = LightPalette
	}
	o.Margin = max(o.Margin, 0)
	o.JitterX = max(o.JitterX, 0)
	o.JitterY = max(o.JitterY, 0)
	return o
}
