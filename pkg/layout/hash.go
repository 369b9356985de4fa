package layout

// Stream separates the pseudo-random channels drawn for the same index, so
// that an item's x offset and y offset are independent values.
type Stream uint64

const (
	StreamOrnamentX Stream = iota + 1
	StreamOrnamentY
	StreamLightY
	StreamLightX
	StreamLightBlink
	StreamLightBias
	StreamSnowLeft
	StreamSnowDuration
	StreamSnowDelay
	StreamSnowScale
)

const golden = 0x9E3779B97F4A7C15

// mix64 is the SplitMix64 step: it advances x by the golden gamma and runs
// the finaliser over the result.
func mix64(x uint64) uint64 {
	z := x + golden
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	return z ^ z>>31
}

// Hash maps an index to a uniformly distributed value in [0, 1).
//
// Hash is a pure function with no hidden state: the same index yields the
// same value in every process and on every platform, because it uses only
// 64-bit integer arithmetic and an exact power-of-two division.
func Hash(index uint64) float64 {
	return float64(mix64(index)>>11) / (1 << 53)
}

// Seeded returns the value of stream s for index under seed. Distinct
// (seed, stream) pairs produce unrelated sequences.
func Seeded(seed uint64, s Stream, index uint64) float64 {
	return Hash(mix64(seed^uint64(s)) + index)
}
