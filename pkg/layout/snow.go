package layout

// Snowflake is one falling flake of the page background. Positions are in
// percent of the viewport width, times in seconds.
type Snowflake struct {
	Index    int     `json:"index"`
	Left     float64 `json:"left"`
	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay"`
	Scale    float64 `json:"scale"`
}

// Snowfall returns k snowflakes. Each attribute is drawn from its own
// stream for the flake's index.
func Snowfall(k int, seed uint64) []Snowflake {
	flakes := make([]Snowflake, max(k, 0))
	for i := range flakes {
		n := uint64(i)
		flakes[i] = Snowflake{
			Index:    i,
			Left:     100 * Seeded(seed, StreamSnowLeft, n),
			Duration: 5 + 10*Seeded(seed, StreamSnowDuration, n),
			Delay:    5 * Seeded(seed, StreamSnowDelay, n),
			Scale:    0.5 + Seeded(seed, StreamSnowScale, n),
		}
	}
	return flakes
}
