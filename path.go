package vecpath

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// FillRule determines which points are inside of a path.
type FillRule int

const (
	// NonZero treats points with a non-zero winding number as inside.
	NonZero FillRule = iota
	// EvenOdd treats points with an odd winding number as inside.
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	default:
		return fmt.Sprintf("FillRule(%d)", int(r))
	}
}

// Path is a sequence of [PathElement] values making up zero or more
// subpaths. The zero value is an empty path ready to use.
//
// Elements can only be added through the builder methods, which maintain the
// following properties:
//
//   - every subpath starts with a MoveTo element
//   - the start point of every element is the end point of the previous one
//   - drawing after a ClosePath starts a new subpath at the start of the
//     closed one
//
// Operations on paths never modify their inputs. The builder methods modify
// the path they are called on and must not be called concurrently with other
// uses of the same path. Copies of a path made by assignment can be built on
// independently of each other.
type Path struct {
	elements []PathElement
	// start of the current subpath and the current point
	start, cur Point
	// owner is the address of the path that may append to the spare
	// capacity of elements in place. Copies have a different address.
	owner    *Path
	FillRule FillRule
}

// Len returns the number of elements in the path.
func (p Path) Len() int { return len(p.elements) }

// Element returns the i-th element.
func (p Path) Element(i int) PathElement { return p.elements[i] }

// Elements returns an iterator over the path's elements.
func (p Path) Elements() iter.Seq[PathElement] { return slices.Values(p.elements) }

// IsEmpty reports whether the path has no elements.
func (p Path) IsEmpty() bool { return len(p.elements) == 0 }

// CurrentPoint returns the point at which the next element will start.
func (p Path) CurrentPoint() Point { return p.cur }

// Clone returns a copy of the path that doesn't share memory with p.
func (p Path) Clone() Path {
	p.elements = slices.Clone(p.elements)
	return p
}

// Push adds an element to the path.
//
// Drawing elements on an empty path first start a subpath, at the target of
// LineTo, at the first control point of QuadTo and CubicTo, or at the corner
// of ArcTo. Drawing elements after a ClosePath start a new subpath at the
// start of the closed one. A MoveTo directly following another MoveTo
// replaces it. The end point of ArcTo elements is computed from the current
// point.
func (p *Path) Push(el PathElement) {
	if p.owner != p {
		// other copies may share the backing array
		p.elements = slices.Clip(p.elements)
		p.owner = p
	}
	n := len(p.elements)
	switch el.Kind {
	case MoveToKind:
		if n > 0 && p.elements[n-1].Kind == MoveToKind {
			p.elements = append(p.elements[:n-1:n-1], el)
		} else {
			p.elements = append(p.elements, el)
		}
		p.start, p.cur = el.P0, el.P0
		return
	case ClosePathKind:
		if n == 0 || p.elements[n-1].Kind == ClosePathKind {
			return
		}
		p.elements = append(p.elements, el)
		p.cur = p.start
		return
	case LineToKind, QuadToKind, CubicToKind, ArcToKind:
	default:
		panic(fmt.Sprintf("unhandled path element kind %s", el.Kind))
	}

	if n == 0 {
		p.Push(MoveTo(el.P0))
		if el.Kind == LineToKind {
			return
		}
	} else if p.elements[n-1].Kind == ClosePathKind {
		p.Push(MoveTo(p.start))
	}
	if el.Kind == ArcToKind {
		el.Radius = math.Abs(el.Radius)
		el.P2 = newCornerArc(p.cur, el.P0, el.P1, el.Radius).end()
	}
	p.elements = append(p.elements, el)
	p.cur, _ = el.EndPoint()
}

// MoveTo starts a new subpath at pt.
func (p *Path) MoveTo(pt Point) { p.Push(MoveTo(pt)) }

// LineTo draws a line from the current point to pt.
func (p *Path) LineTo(pt Point) { p.Push(LineTo(pt)) }

// QuadTo draws a quadratic Bézier with control point p1, ending at p2.
func (p *Path) QuadTo(p1, p2 Point) { p.Push(QuadTo(p1, p2)) }

// CubicTo draws a cubic Bézier with control points p1 and p2, ending at p3.
func (p *Path) CubicTo(p1, p2, p3 Point) { p.Push(CubicTo(p1, p2, p3)) }

// ArcTo draws a line from the current point towards corner, followed by a
// circular arc of the given radius that is tangent to that line and to the
// line from corner to direction. This matches the arcTo method of the HTML
// canvas. The path ends on the second tangent point.
//
// If the radius is zero, or the current point, corner and direction are
// collinear or coincide, a line to the corner is drawn instead. Negative radii
// are treated as their absolute value.
func (p *Path) ArcTo(corner, direction Point, radius float64) {
	p.Push(ArcTo(corner, direction, radius))
}

// Close closes the current subpath with a line back to its start.
func (p *Path) Close() { p.Push(ClosePath()) }

// subpath is the geometry of one subpath.
type subpath struct {
	segs   []PathSegment
	start  Point
	closed bool
}

// end returns the end point of the subpath's last segment.
func (sp subpath) end() Point {
	if len(sp.segs) == 0 {
		return sp.start
	}
	return sp.segs[len(sp.segs)-1].End()
}

// area returns the signed area of the subpath, treating it as closed.
func (sp subpath) area() float64 {
	var a float64
	for _, seg := range sp.segs {
		a += seg.SignedArea()
	}
	if !sp.closed {
		a += Line{sp.end(), sp.start}.SignedArea()
	}
	return a
}

// winding returns the winding number of the subpath around pt, treating it
// as closed.
func (sp subpath) winding(pt Point) int {
	var w int
	for _, seg := range sp.segs {
		w += seg.Winding(pt)
	}
	if !sp.closed {
		w += Line{sp.end(), sp.start}.Seg().Winding(pt)
	}
	return w
}

func (sp subpath) reverse() subpath {
	out := subpath{start: sp.end(), closed: sp.closed}
	out.segs = make([]PathSegment, len(sp.segs))
	for i, seg := range sp.segs {
		out.segs[len(sp.segs)-1-i] = seg.Reverse()
	}
	return out
}

// pushSubpath appends the subpath's segments as a new subpath.
func (p *Path) pushSubpath(sp subpath) {
	p.MoveTo(sp.start)
	for _, seg := range sp.segs {
		p.Push(seg.PathElement())
	}
	if sp.closed {
		p.Close()
	}
}

// subpaths converts the path to segments, grouped by subpath. Subpaths
// consisting of a lone MoveTo are dropped.
func (p Path) subpaths() []subpath {
	var out []subpath
	var cur subpath
	var pt Point
	started := false
	flush := func() {
		if started {
			out = append(out, cur)
		}
		started = false
	}
	for _, el := range p.elements {
		switch el.Kind {
		case MoveToKind:
			flush()
			cur = subpath{start: el.P0}
			pt = el.P0
		case LineToKind:
			cur.segs = append(cur.segs, Line{pt, el.P0}.Seg())
			pt = el.P0
			started = true
		case QuadToKind:
			cur.segs = append(cur.segs, QuadBez{pt, el.P0, el.P1}.Seg())
			pt = el.P1
			started = true
		case CubicToKind:
			cur.segs = append(cur.segs, CubicBez{pt, el.P0, el.P1, el.P2}.Seg())
			pt = el.P2
			started = true
		case ArcToKind:
			cur.segs = append(cur.segs, newCornerArc(pt, el.P0, el.P1, el.Radius).segments()...)
			pt = el.P2
			started = true
		case ClosePathKind:
			if pt != cur.start {
				cur.segs = append(cur.segs, Line{pt, cur.start}.Seg())
			}
			pt = cur.start
			cur.closed = true
			started = true
			flush()
		default:
			panic(fmt.Sprintf("unhandled path element kind %s", el.Kind))
		}
	}
	flush()
	return out
}

// Segments returns the geometric segments of the path. Arcs are converted to
// an optional line and one or two cubic Béziers, and ClosePath elements
// become lines if the subpath doesn't already end at its start. Intersection
// results refer to segments by their index in this slice.
func (p Path) Segments() []PathSegment {
	var out []PathSegment
	for _, sp := range p.subpaths() {
		out = append(out, sp.segs...)
	}
	return out
}

// NumSubpaths returns the number of subpaths that draw anything or are
// closed.
func (p Path) NumSubpaths() int {
	return len(p.subpaths())
}

// Closed reports whether the path has at least one subpath and all of its
// subpaths are closed.
func (p Path) Closed() bool {
	sps := p.subpaths()
	if len(sps) == 0 {
		return false
	}
	for _, sp := range sps {
		if !sp.closed {
			return false
		}
	}
	return true
}

// HasArcs reports whether the path contains ArcTo elements.
func (p Path) HasArcs() bool {
	return slices.ContainsFunc(p.elements, func(el PathElement) bool {
		return el.Kind == ArcToKind
	})
}

// WithoutArcs returns a copy of the path with every ArcTo element replaced by
// the lines and cubic Béziers that [Path.Segments] uses for it.
func (p Path) WithoutArcs() Path {
	if !p.HasArcs() {
		return p.Clone()
	}
	out := Path{FillRule: p.FillRule}
	var pt Point
	for _, el := range p.elements {
		if el.Kind == ArcToKind {
			for _, seg := range newCornerArc(pt, el.P0, el.P1, el.Radius).segments() {
				out.Push(seg.PathElement())
			}
			pt = el.P2
			continue
		}
		out.Push(el)
		pt = out.cur
	}
	return out
}

// Transform returns the path with an affine transformation applied to every
// element. Arcs are replaced by cubic Béziers first if the transformation
// isn't a similarity, since the image of a circle would be an ellipse.
func (p Path) Transform(aff Affine) Path {
	if p.HasArcs() && !aff.isSimilarity() {
		p = p.WithoutArcs()
	}
	els := make([]PathElement, len(p.elements))
	for i, el := range p.elements {
		els[i] = el.Transform(aff)
	}
	return Path{
		elements: els,
		start:    p.start.Transform(aff),
		cur:      p.cur.Transform(aff),
		FillRule: p.FillRule,
	}
}

// Reverse returns the path with the direction of every subpath reversed. Arcs
// are converted to cubic Béziers.
func (p Path) Reverse() Path {
	out := Path{FillRule: p.FillRule}
	for _, sp := range p.subpaths() {
		out.pushSubpath(sp.reverse())
	}
	return out
}

// Area returns the signed area of the path. Open subpaths are treated as if
// they were closed. Subpaths that run counter-clockwise in a y-up coordinate
// system have positive area.
func (p Path) Area() float64 {
	var a float64
	for _, sp := range p.subpaths() {
		a += sp.area()
	}
	return a
}

// Winding returns the winding number of the path around pt. Open subpaths
// are treated as if they were closed.
func (p Path) Winding(pt Point) int {
	var w int
	for _, sp := range p.subpaths() {
		w += sp.winding(pt)
	}
	return w
}

// Contains reports whether pt is inside the path according to its fill rule.
func (p Path) Contains(pt Point) bool {
	return p.FillRule.inside(p.Winding(pt))
}

func (r FillRule) inside(w int) bool {
	switch r {
	case NonZero:
		return w != 0
	case EvenOdd:
		return w%2 != 0
	default:
		panic(fmt.Sprintf("unhandled fill rule %s", r))
	}
}

// BoundingBox returns the smallest rectangle that encloses the path. It
// returns the zero rectangle for paths without segments.
func (p Path) BoundingBox() Rect {
	return p.box(PathSegment.BoundingBox)
}

// ControlBox returns the bounding box of the control points of all segments.
// It always contains [Path.BoundingBox].
func (p Path) ControlBox() Rect {
	return p.box(PathSegment.ControlBox)
}

func (p Path) box(fn func(PathSegment) Rect) Rect {
	segs := p.Segments()
	if len(segs) == 0 {
		return Rect{}
	}
	bbox := fn(segs[0])
	for _, seg := range segs[1:] {
		bbox = bbox.Union(fn(seg))
	}
	return bbox
}

// ApproxLength returns the sum of [PathSegment.ApproxLength] over all
// segments.
func (p Path) ApproxLength(samples int) float64 {
	var l float64
	for _, seg := range p.Segments() {
		l += seg.ApproxLength(samples)
	}
	return l
}

func (p Path) IsInf() bool {
	return slices.ContainsFunc(p.elements, PathElement.IsInf)
}

func (p Path) IsNaN() bool {
	return slices.ContainsFunc(p.elements, PathElement.IsNaN)
}

func (p Path) String() string {
	return p.Text()
}
