package vecpath

import (
	"math"
)

// Line represents a line segment.
type Line struct {
	P0 Point
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Eval returns the point at parameter t. Eval(0) and Eval(1) are exactly the
// end points.
func (l Line) Eval(t float64) Point {
	return l.P0.blend(l.P1, t)
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) Seg() PathSegment {
	return PathSegment{Kind: LineKind, P0: l.P0, P1: l.P1}
}

// SignedArea returns the signed area under the line, see [Path.Area].
func (l Line) SignedArea() float64 {
	return Vec2(l.P0).Cross(Vec2(l.P1)) * 0.5
}

// lineHit is a single result of intersecting two lines.
type lineHit struct {
	t, u    float64
	pt      Point
	overlap bool
}

// intersectLine intersects two line segments analytically. t is the position
// on l, u the position on o.
//
// Lines whose determinant is within tolerance of zero are parallel. Parallel
// lines that are also collinear produce hits at both ends of their shared
// interval, marked as overlapping, or a single ordinary hit if the interval is
// a point. Other parallel lines never intersect.
func (l Line) intersectLine(o Line, tol float64) ([2]lineHit, int) {
	r := l.P1.Sub(l.P0)
	s := o.P1.Sub(o.P0)
	lr, ls := r.Hypot(), s.Hypot()
	if lr == 0 || ls == 0 {
		return l.intersectDegenerate(o, tol)
	}
	d := o.P0.Sub(l.P0)
	det := r.Cross(s)
	if math.Abs(det) <= 1e-12*lr*ls {
		if math.Abs(d.Cross(r))/lr > tol {
			// parallel, not collinear
			return [2]lineHit{}, 0
		}
		return l.intersectCollinear(o, tol)
	}
	t := d.Cross(s) / det
	u := d.Cross(r) / det
	et := tol / lr
	eu := tol / ls
	if t < -et || t > 1+et || u < -eu || u > 1+eu {
		return [2]lineHit{}, 0
	}
	t = clamp01(t)
	u = clamp01(u)
	return [2]lineHit{{t: t, u: u, pt: l.Eval(t)}}, 1
}

func (l Line) intersectCollinear(o Line, tol float64) ([2]lineHit, int) {
	r := l.P1.Sub(l.P0)
	rr := r.Hypot2()
	s := o.P1.Sub(o.P0)
	ss := s.Hypot2()
	project := func(p Point) float64 { return p.Sub(l.P0).Dot(r) / rr }
	projectO := func(p Point) float64 { return p.Sub(o.P0).Dot(s) / ss }

	t0, t1 := project(o.P0), project(o.P1)
	lo := max(0, min(t0, t1))
	hi := min(1, max(t0, t1))
	et := tol / math.Sqrt(rr)
	if lo > hi+et {
		return [2]lineHit{}, 0
	}
	if hi-lo <= et {
		t := clamp01(0.5 * (lo + hi))
		pt := l.Eval(t)
		return [2]lineHit{{t: t, u: clamp01(projectO(pt)), pt: pt}}, 1
	}
	a, b := l.Eval(lo), l.Eval(hi)
	// Snap to exact end points where possible so that callers splitting both
	// lines at these hits produce identical points.
	for _, pt := range [...]Point{l.P0, l.P1, o.P0, o.P1} {
		if a.ApproxEqual(pt, tol) {
			a = pt
		}
		if b.ApproxEqual(pt, tol) {
			b = pt
		}
	}
	return [2]lineHit{
		{t: lo, u: clamp01(projectO(a)), pt: a, overlap: true},
		{t: hi, u: clamp01(projectO(b)), pt: b, overlap: true},
	}, 2
}

// intersectDegenerate handles lines of zero length, which intersect the other
// line if they lie on it.
func (l Line) intersectDegenerate(o Line, tol float64) ([2]lineHit, int) {
	onLine := func(p Point, m Line) (float64, bool) {
		d := m.P1.Sub(m.P0)
		dd := d.Hypot2()
		if dd == 0 {
			return 0, p.ApproxEqual(m.P0, tol)
		}
		t := clamp01(p.Sub(m.P0).Dot(d) / dd)
		return t, p.ApproxEqual(m.Eval(t), tol)
	}
	if l.P0 == l.P1 {
		if u, ok := onLine(l.P0, o); ok {
			return [2]lineHit{{t: 0, u: u, pt: l.P0}}, 1
		}
		return [2]lineHit{}, 0
	}
	if t, ok := onLine(o.P0, l); ok {
		return [2]lineHit{{t: t, u: 0, pt: o.P0}}, 1
	}
	return [2]lineHit{}, 0
}

func clamp01(t float64) float64 {
	return min(max(t, 0), 1)
}
