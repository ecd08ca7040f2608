package vecpath

import (
	"fmt"
	"math"
)

// MaxExtrema is the maximum number of extrema that can be reported for a
// segment. This is 4 to support cubic Béziers.
const MaxExtrema = 4

// DefaultTolerance is the default distance below which two points are
// considered equal by intersection, boolean and morphing operations.
const DefaultTolerance = 1e-6

type PathSegmentKind int

const (
	LineKind PathSegmentKind = iota + 1
	QuadKind
	CubicKind
)

func (k PathSegmentKind) String() string {
	switch k {
	case LineKind:
		return "Line"
	case QuadKind:
		return "Quad"
	case CubicKind:
		return "Cubic"
	default:
		return fmt.Sprintf("PathSegmentKind(%d)", int(k))
	}
}

// PathSegment is a single geometric piece of a path with an explicit start
// point. Lines use P0 and P1, quadratic Béziers P0 through P2 and cubic
// Béziers P0 through P3.
type PathSegment struct {
	Kind PathSegmentKind
	P0   Point
	P1   Point
	P2   Point
	P3   Point
}

func (seg PathSegment) String() string {
	switch seg.Kind {
	case LineKind:
		return fmt.Sprintf("Line(%s, %s)", seg.P0, seg.P1)
	case QuadKind:
		return fmt.Sprintf("Quad(%s, %s, %s)", seg.P0, seg.P1, seg.P2)
	case CubicKind:
		return fmt.Sprintf("Cubic(%s, %s, %s, %s)", seg.P0, seg.P1, seg.P2, seg.P3)
	default:
		return fmt.Sprintf("%s(%s, %s, %s, %s)", seg.Kind, seg.P0, seg.P1, seg.P2, seg.P3)
	}
}

func (seg PathSegment) Line() Line { return Line{seg.P0, seg.P1} }

func (seg PathSegment) Quad() QuadBez { return QuadBez{seg.P0, seg.P1, seg.P2} }

// Cubic returns the segment as a cubic Bézier, raising lines and quadratic
// Béziers as necessary.
func (seg PathSegment) Cubic() CubicBez {
	switch seg.Kind {
	case LineKind:
		return CubicBez{seg.P0, seg.P0.Lerp(seg.P1, 1.0/3.0), seg.P1.Lerp(seg.P0, 1.0/3.0), seg.P1}
	case QuadKind:
		return seg.Quad().Raise()
	case CubicKind:
		return CubicBez{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

func (seg PathSegment) Start() Point {
	return seg.P0
}

func (seg PathSegment) End() Point {
	switch seg.Kind {
	case LineKind:
		return seg.P1
	case QuadKind:
		return seg.P2
	case CubicKind:
		return seg.P3
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

// withEnds returns the segment with its end points replaced.
func (seg PathSegment) withEnds(start, end Point) PathSegment {
	seg.P0 = start
	switch seg.Kind {
	case LineKind:
		seg.P1 = end
	case QuadKind:
		seg.P2 = end
	case CubicKind:
		seg.P3 = end
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
	return seg
}

// Eval evaluates the segment at t without checking that t lies in [0, 1].
// Eval(0) and Eval(1) are exactly the end points. Degenerate segments whose
// points all coincide evaluate to that point.
func (seg PathSegment) Eval(t float64) Point {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Eval(t)
	case QuadKind:
		return seg.Quad().Eval(t)
	case CubicKind:
		return seg.Cubic().Eval(t)
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

// Evaluate is like Eval but returns a [*PreconditionError] wrapping
// [ErrParameterRange] if t is outside of [0, 1] or NaN.
func (seg PathSegment) Evaluate(t float64) (Point, error) {
	if !(t >= 0 && t <= 1) {
		return Point{}, precondition("Evaluate", ErrParameterRange, "t = %g", t)
	}
	return seg.Eval(t), nil
}

// Split splits the segment at t into two segments of the same kind, using de
// Casteljau's algorithm. The end of the first segment is identical to the
// start of the second one.
//
// It returns a [*PreconditionError] wrapping [ErrParameterRange] if t is
// outside of [0, 1] or NaN.
func (seg PathSegment) Split(t float64) (PathSegment, PathSegment, error) {
	if !(t >= 0 && t <= 1) {
		return PathSegment{}, PathSegment{}, precondition("Split", ErrParameterRange, "t = %g", t)
	}
	a, b := seg.splitAt(t)
	return a, b, nil
}

func (seg PathSegment) splitAt(t float64) (PathSegment, PathSegment) {
	switch seg.Kind {
	case LineKind:
		pm := seg.Line().Eval(t)
		return Line{seg.P0, pm}.Seg(), Line{pm, seg.P1}.Seg()
	case QuadKind:
		a, b := seg.Quad().SplitAt(t)
		return a.Seg(), b.Seg()
	case CubicKind:
		a, b := seg.Cubic().SplitAt(t)
		return a.Seg(), b.Seg()
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

// Subdivide splits the segment into halves.
func (seg PathSegment) Subdivide() (PathSegment, PathSegment) {
	return seg.splitAt(0.5)
}

// Subsegment returns the part of the segment between t0 and t1, which must
// satisfy 0 <= t0 <= t1 <= 1.
func (seg PathSegment) Subsegment(t0, t1 float64) PathSegment {
	if t1 < 1 {
		seg, _ = seg.splitAt(t1)
		if t1 > 0 {
			t0 /= t1
		} else {
			t0 = 0
		}
	}
	if t0 > 0 {
		_, seg = seg.splitAt(t0)
	}
	return seg
}

func (seg PathSegment) Transform(aff Affine) PathSegment {
	return PathSegment{
		Kind: seg.Kind,
		P0:   seg.P0.Transform(aff),
		P1:   seg.P1.Transform(aff),
		P2:   seg.P2.Transform(aff),
		P3:   seg.P3.Transform(aff),
	}
}

func (seg PathSegment) IsInf() bool {
	return seg.P0.IsInf() || seg.P1.IsInf() || seg.P2.IsInf() || seg.P3.IsInf()
}

func (seg PathSegment) IsNaN() bool {
	return seg.P0.IsNaN() || seg.P1.IsNaN() || seg.P2.IsNaN() || seg.P3.IsNaN()
}

// ControlBox returns the bounding box of the segment's control points. It
// always contains the segment and is cheaper to compute than
// [PathSegment.BoundingBox].
func (seg PathSegment) ControlBox() Rect {
	r := NewRectFromPoints(seg.P0, seg.P1)
	switch seg.Kind {
	case LineKind:
	case QuadKind:
		r = r.UnionPoint(seg.P2)
	case CubicKind:
		r = r.UnionPoint(seg.P2).UnionPoint(seg.P3)
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
	return r
}

// BoundingBox returns the smallest axis-aligned rectangle that encloses the
// segment.
func (seg PathSegment) BoundingBox() Rect {
	bbox := NewRectFromPoints(seg.Eval(0), seg.Eval(1))
	ex, n := seg.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(seg.Eval(t))
	}
	return bbox
}

// Extrema returns the parameters of the segment's interior extrema in x and
// y, in increasing order.
func (seg PathSegment) Extrema() ([MaxExtrema]float64, int) {
	switch seg.Kind {
	case LineKind:
		return [MaxExtrema]float64{}, 0
	case QuadKind:
		return seg.Quad().Extrema()
	case CubicKind:
		return seg.Cubic().Extrema()
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

// extremaRanges returns parameter ranges, each of which is monotonic in x and
// y.
func (seg PathSegment) extremaRanges() ([MaxExtrema + 1][2]float64, int) {
	var ret [MaxExtrema + 1][2]float64
	var retN int
	var t0 float64

	ex, n := seg.Extrema()
	for _, t := range ex[:n] {
		ret[retN] = [2]float64{t0, t}
		retN++
		t0 = t
	}
	ret[retN] = [2]float64{t0, 1}
	retN++
	return ret, retN
}

// ApproxLength approximates the arc length of the segment by summing the
// lengths of a polyline through samples+1 evenly spaced parameters. Values of
// samples below 1 are treated as 1.
func (seg PathSegment) ApproxLength(samples int) float64 {
	if seg.Kind == LineKind {
		return seg.Line().Length()
	}
	samples = max(samples, 1)
	var l float64
	prev := seg.P0
	for i := 1; i <= samples; i++ {
		pt := seg.Eval(float64(i) / float64(samples))
		l += prev.Distance(pt)
		prev = pt
	}
	return l
}

// Tangent returns the derivative of the segment at t.
func (seg PathSegment) Tangent(t float64) Vec2 {
	switch seg.Kind {
	case LineKind:
		return seg.P1.Sub(seg.P0)
	case QuadKind:
		return seg.Quad().Deriv(t)
	case CubicKind:
		return seg.Cubic().Deriv(t)
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

// SignedArea returns the signed area under the segment, see [Path.Area].
func (seg PathSegment) SignedArea() float64 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().SignedArea()
	case QuadKind:
		return seg.Quad().SignedArea()
	case CubicKind:
		return seg.Cubic().SignedArea()
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

// Reverse returns the same segment traversed in the opposite direction.
func (seg PathSegment) Reverse() PathSegment {
	switch seg.Kind {
	case LineKind:
		return PathSegment{Kind: LineKind, P0: seg.P1, P1: seg.P0}
	case QuadKind:
		return PathSegment{Kind: QuadKind, P0: seg.P2, P1: seg.P1, P2: seg.P0}
	case CubicKind:
		return PathSegment{Kind: CubicKind, P0: seg.P3, P1: seg.P2, P2: seg.P1, P3: seg.P0}
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

// PathElement returns the element that draws this segment from its start
// point.
func (seg PathSegment) PathElement() PathElement {
	switch seg.Kind {
	case LineKind:
		return LineTo(seg.P1)
	case QuadKind:
		return QuadTo(seg.P1, seg.P2)
	case CubicKind:
		return CubicTo(seg.P1, seg.P2, seg.P3)
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

// sameAs reports whether the two segments have the same kind and the same
// control points within tol, in the same or in the opposite direction.
func (seg PathSegment) sameAs(o PathSegment, tol float64) (same, opposite bool) {
	if seg.Kind != o.Kind {
		return false, false
	}
	eq := func(a, b PathSegment) bool {
		return a.P0.ApproxEqual(b.P0, tol) && a.P1.ApproxEqual(b.P1, tol) &&
			a.P2.ApproxEqual(b.P2, tol) && a.P3.ApproxEqual(b.P3, tol)
	}
	if eq(seg, o) {
		return true, false
	}
	if eq(seg, o.Reverse()) {
		return false, true
	}
	return false, false
}

// windingInner computes the winding contribution of a segment that is
// monotonic in y, by casting a ray to the left of pt.
func (seg PathSegment) windingInner(pt Point) int {
	start := seg.Eval(0)
	end := seg.Eval(1)
	var sign int
	if end.Y > start.Y {
		if pt.Y < start.Y || pt.Y >= end.Y {
			return 0
		}
		sign = -1
	} else if end.Y < start.Y {
		if pt.Y < end.Y || pt.Y >= start.Y {
			return 0
		}
		sign = 1
	} else {
		return 0
	}
	switch seg.Kind {
	case LineKind:
		if pt.X < min(start.X, end.X) {
			return 0
		}
		if pt.X >= max(start.X, end.X) {
			return sign
		}
		// line equation ax + by = c
		a := end.Y - start.Y
		b := start.X - end.X
		c := a*start.X + b*start.Y
		if (a*pt.X+b*pt.Y-c)*float64(sign) <= 0.0 {
			return sign
		}
		return 0
	case QuadKind:
		quad := seg.Quad()
		p1 := quad.P1
		if pt.X < min(start.X, end.X, p1.X) {
			return 0
		}
		if pt.X >= max(start.X, end.X, p1.X) {
			return sign
		}
		a := end.Y - 2.0*p1.Y + start.Y
		b := 2.0 * (p1.Y - start.Y)
		c := start.Y - pt.Y
		solution, n := SolveQuadratic(c, b, a)
		for _, t := range solution[:n] {
			if t >= 0.0 && t <= 1.0 {
				if pt.X >= quad.Eval(t).X {
					return sign
				}
				return 0
			}
		}
		return 0
	case CubicKind:
		cubic := seg.Cubic()
		p1 := cubic.P1
		p2 := cubic.P2
		if pt.X < min(start.X, end.X, p1.X, p2.X) {
			return 0
		}
		if pt.X >= max(start.X, end.X, p1.X, p2.X) {
			return sign
		}
		a := end.Y - 3.0*p2.Y + 3.0*p1.Y - start.Y
		b := 3.0 * (p2.Y - 2.0*p1.Y + start.Y)
		c := 3.0 * (p1.Y - start.Y)
		d := start.Y - pt.Y
		solution, n := SolveCubic(d, c, b, a)
		for _, t := range solution[:n] {
			if t >= 0.0 && t <= 1.0 {
				if pt.X >= cubic.Eval(t).X {
					return sign
				}
				return 0
			}
		}
		return 0
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.Kind))
	}
}

// Winding computes the winding number contribution of the segment for the
// point pt. Summed over the segments of a closed path, this is the path's
// winding number.
func (seg PathSegment) Winding(pt Point) int {
	exs, n := seg.extremaRanges()
	var w int
	for _, ex := range exs[:n] {
		w += seg.Subsegment(ex[0], ex[1]).windingInner(pt)
	}
	return w
}

// SubdivideMaxLength splits the segment into pieces of equal parameter range
// such that no piece is longer than maxLen, as measured by
// [PathSegment.ApproxLength]. A non-positive or NaN maxLen, or a segment of
// infinite length, returns the segment unchanged.
func SubdivideMaxLength(seg PathSegment, maxLen float64) []PathSegment {
	const samples = 16
	const maxPieces = 1 << 16
	l := seg.ApproxLength(samples)
	if !(maxLen > 0) || math.IsInf(l, 0) || math.IsNaN(l) {
		return []PathSegment{seg}
	}
	n := max(int(math.Ceil(l/maxLen)), 1)
	for {
		pieces := splitEvenly(seg, n)
		fits := true
		for _, piece := range pieces {
			if piece.ApproxLength(samples) > maxLen {
				fits = false
				break
			}
		}
		if fits || n >= maxPieces {
			return pieces
		}
		n *= 2
	}
}

// splitEvenly splits the segment into n pieces of equal parameter range.
func splitEvenly(seg PathSegment, n int) []PathSegment {
	out := make([]PathSegment, 0, n)
	rest := seg
	for i := 0; i < n-1; i++ {
		// split off 1/(n-i) of what is left
		var piece PathSegment
		piece, rest = rest.splitAt(1 / float64(n-i))
		out = append(out, piece)
	}
	return append(out, rest)
}
