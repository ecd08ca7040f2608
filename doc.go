// Package vecpath provides 2D vector paths and the geometric operations
// graphics and design tools build on: affine transformations, intersection of
// paths, boolean operations on closed shapes, and morphing between two shapes.
//
// # Paths
//
// A [Path] is a sequence of [PathElement] drawing commands, akin to the
// commands of PostScript or the HTML canvas: [MoveTo] starts a subpath,
// [LineTo], [QuadTo] and [CubicTo] draw lines and Bézier curves, [ArcTo] draws
// a line followed by a circular arc in the manner of the canvas arcTo method,
// and [ClosePath] closes the subpath. Each element starts where the previous
// one ended. Paths are built with the methods of the same names, by
// functions such as [Polygon] and [Rect.Path], or parsed from text with
// [ParseText].
//
// For geometric processing, paths are converted to a list of [PathSegment]
// values by [Path.Segments]. Segments are self-contained lines, quadratic
// Béziers or cubic Béziers with explicit start points. Arcs are approximated
// by cubic Béziers. Intersections refer to segments by their index in that
// list.
//
// # Coordinate system
//
// Coordinates are y-up. Counter-clockwise paths have positive [Path.Area] and
// a winding number of +1 around the points they enclose. Use [FlipY] to
// convert from y-down spaces.
//
// # Operations
//
//   - [Affine] transformations, composed with [Affine.Mul] and [Compose]
//   - Intersecting two paths with [Intersect]
//   - [Union], [Intersection] and [Difference] of closed paths
//   - Interpolating between two shapes with [NewMorph]
//   - Reading and writing the text format with [ParseText] and [Path.WriteText]
//
// Operations never modify their inputs and are safe for concurrent use.
// Invalid arguments are reported by a [*PreconditionError] wrapping one of
// the sentinel errors such as [ErrOpenPath]. Numerical degeneracies, such as
// parallel lines or zero-length segments, are not errors.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to receive debug events
// about intersection and boolean operation internals.
package vecpath
