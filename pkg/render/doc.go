// Package render draws a decorated tree scene.
//
// # Overview
//
// A [Scene] holds a silhouette together with the ornaments and star bound
// to messages, the scattered lights and the snowflakes. [NewScene] builds
// one from a silhouette and a message list using the layout engine, so the
// same inputs always give the same picture.
//
// Three outputs are supported:
//
//   - [RenderSVG]: a standalone SVG document
//   - [RenderHTML]: the greeting page with the interactive tree
//   - [RenderJSON]: a snapshot of the computed layout
//
// # Styles
//
// The [styles] subpackage provides the visual styles. Classic uses
// gradients and glow filters; Simple uses flat fills.
//
//	svg := render.RenderSVG(scene, render.WithStyle(styles.Simple{}), render.WithAnimations())
//
// # Animation
//
// Lights blink, ornaments bob and the star pulses. Each motion is described
// by a few stops joined by an easing curve; the curve is sampled into CSS
// keyframes so the browser only interpolates linearly between samples.
// Timings derive from the item index, never from the clock.
package render
