package render

import (
	"bytes"
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// keyframeSteps is the number of samples written per CSS animation. CSS
// interpolates linearly between them, so the sampled curve carries the
// easing.
const keyframeSteps = 20

// Ornament bobbing.
const (
	bobAmplitude = 2.0
	bobBase      = 2.5
	bobStep      = 0.5
	bobDelayStep = 0.3
)

// track is a property animated through a series of stops. Times are
// fractions of the cycle in ascending order.
type track struct {
	times  []float64
	values []float64
	fn     ease.TweenFunc
}

// at returns the property value at cycle fraction t, easing between the
// two stops around t.
func (tr track) at(t float64) float64 {
	if t <= tr.times[0] {
		return tr.values[0]
	}
	for k := 1; k < len(tr.times); k++ {
		if t > tr.times[k] {
			continue
		}
		t0, t1 := tr.times[k-1], tr.times[k]
		tw := gween.New(float32(tr.values[k-1]), float32(tr.values[k]), float32(t1-t0), tr.fn)
		v, _ := tw.Update(float32(t - t0))
		return float64(v)
	}
	return tr.values[len(tr.values)-1]
}

var (
	blinkTimes   = []float64{0, 0.3, 0.5, 0.8, 1}
	blinkOpacity = track{times: blinkTimes, values: []float64{0.1, 1, 0.1, 1, 0.1}, fn: ease.InOutSine}
	blinkScale   = track{times: blinkTimes, values: []float64{1, 1.3, 1, 1.2, 1}, fn: ease.InOutSine}

	bobOffset = track{times: []float64{0, 0.5, 1}, values: []float64{0, -bobAmplitude, 0}, fn: ease.InOutSine}

	pulseScale  = track{times: []float64{0, 0.5, 1}, values: []float64{1, 1.05, 1}, fn: ease.InOutQuad}
	pulseRotate = track{times: []float64{0, 0.33, 0.66, 1}, values: []float64{0, 3, -3, 0}, fn: ease.InOutQuad}
)

// BobTiming returns the duration and delay, in seconds, of ornament i's
// bobbing cycle.
func BobTiming(i int) (duration, delay float64) {
	return bobBase + float64(i%3)*bobStep, float64(i%5) * bobDelayStep
}

// writeKeyframes writes a @keyframes rule sampling each step's declaration.
func writeKeyframes(buf *bytes.Buffer, name string, decl func(t float64) string) {
	fmt.Fprintf(buf, "    @keyframes %s {\n", name)
	for s := 0; s <= keyframeSteps; s++ {
		t := float64(s) / keyframeSteps
		fmt.Fprintf(buf, "      %.0f%% { %s }\n", t*100, decl(t))
	}
	buf.WriteString("    }\n")
}

// animationCSS returns the keyframes and classes used by animated scenes.
func animationCSS() string {
	var buf bytes.Buffer
	writeKeyframes(&buf, "blink", func(t float64) string {
		return fmt.Sprintf("opacity: %.3f; transform: scale(%.3f);", blinkOpacity.at(t), blinkScale.at(t))
	})
	writeKeyframes(&buf, "bob", func(t float64) string {
		return fmt.Sprintf("transform: translateY(%.3fpx);", bobOffset.at(t))
	})
	writeKeyframes(&buf, "pulse", func(t float64) string {
		return fmt.Sprintf("transform: scale(%.4f) rotate(%.3fdeg);", pulseScale.at(t), pulseRotate.at(t))
	})
	buf.WriteString(`    .light { animation-name: blink; animation-iteration-count: infinite; animation-timing-function: linear; transform-box: fill-box; transform-origin: center; }
    .bob { animation-name: bob; animation-iteration-count: infinite; animation-timing-function: linear; }
    .star { animation: pulse 4s linear infinite; transform-box: fill-box; transform-origin: center; }
    @media (prefers-reduced-motion: reduce) { .light, .bob, .star { animation: none; } }
`)
	return buf.String()
}
