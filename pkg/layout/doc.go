// Package layout places ornaments, lights and snowflakes deterministically.
//
// # Determinism
//
// Every pseudo-random value comes from [Hash], a SplitMix64 finaliser
// mapped to [0, 1). [Seeded] mixes a seed and a [Stream] into the index
// before hashing, so each channel (ornament x, ornament y, light height,
// ...) is an independent sequence. Nothing reads the clock or an entropy
// source: the same silhouette, options and index always give the same
// position, in any process.
//
// # Ornaments
//
// [NewEngine] partitions the silhouette into the rows of a row plan (the
// silhouette's hand-tuned plan, or [AutoRows]). For each row:
//
//  1. The usable span is the narrowest span over the row's vertical
//     jitter band, shrunk by the margin on both sides.
//  2. The row holds min(count, floor(span/MinSpacing)+1) ornaments. A
//     negative span skips the row; a single ornament sits at the midpoint.
//  3. Base positions are spread evenly with step = span/(n-1) and moved by
//     at most a = min(JitterX/2, (step-MinSpacing)/2), which keeps
//     neighbours at least MinSpacing apart and strictly preserves order.
//  4. Positions are clamped to the span and y is jittered within the band.
//
// [Engine.PlaceOrnament] then maps ornament i onto slot i mod len(slots)
// and colours it palette[i mod len(palette)].
//
//	e := layout.ForSpec(silhouette.Default(), layout.DefaultOptions())
//	items := e.PlaceOrnaments(12)
//
// # Lights and snow
//
// [Engine.ScatterLights] scatters blinking lights with only an edge
// margin. [Snowfall] produces the falling flakes drawn behind the tree.
package layout
