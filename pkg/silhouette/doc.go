// Package silhouette describes the closed region a tree is drawn in and the
// horizontal bounds of that region at any height.
//
// A [Spec] is static, authored data: a centre line, a list of [Tier] cones,
// a view box and the decorations that sit outside the placeable area (the
// star topper and the trunk). Specs are usually the built-in [Default] but
// can be loaded from TOML with [Load] or [Decode].
//
// # Boundaries
//
// [Spec.Boundary] turns a spec into a [Boundary], the single abstraction the
// layout engine consumes:
//
//	b := silhouette.Default().Boundary()
//	xMin, xMax := b.Bounds(220)
//
// Three variants exist, selected by [Spec.Kind]:
//
//   - [KindTriangular]: every tier is a straight-sided cone from
//     (CenterX, YTop) to [XLeft, XRight] at YBottom. At a given y the
//     span is the union of the tiers containing y; outside every tier it
//     collapses to the centre point.
//   - [KindRounded]: as triangular, but each tier's width grows with the
//     square root of its progress, giving bulging sides.
//   - [KindPhoto]: a photographic overlay with no computed outline. The
//     fixed [Box] is used for every y inside it.
//
// Between two consecutive [Boundary.Breakpoints] a boundary never narrows
// as y grows. The layout engine relies on this to find the narrowest span
// of a band by sampling its ends and the breakpoints inside it.
package silhouette
