package vecpath

import (
	"math"
)

// cornerArc is the geometry of an ArcTo element drawn from a current point:
// a line from the current point to the first tangent point T1, followed by a
// circular arc from T1 to T2.
//
// The arc is tangent to the line from the current point to the corner and to
// the line from the corner to the direction point. Of the two possible arcs
// it is always the shorter one, so no sweep flag is needed.
type cornerArc struct {
	start Point
	// degenerate arcs are drawn as a line to the corner.
	degenerate bool
	corner     Point
	center     Point
	radius     float64
	t1, t2     Point
	// startAngle and sweepAngle describe the arc from t1 to t2 on the circle
	// around center.
	startAngle float64
	sweepAngle float64
}

func newCornerArc(start, corner, direction Point, radius float64) cornerArc {
	radius = math.Abs(radius)
	a := cornerArc{start: start, corner: corner, radius: radius, t1: corner, t2: corner}
	v1 := start.Sub(corner)
	v2 := direction.Sub(corner)
	l1, l2 := v1.Hypot(), v2.Hypot()
	if radius == 0 || l1 == 0 || l2 == 0 || math.IsNaN(radius) {
		a.degenerate = true
		return a
	}
	u1, u2 := v1.Mul(1/l1), v2.Mul(1/l2)
	// sine and cosine of the angle between the two legs
	sin := math.Abs(u1.Cross(u2))
	cos := u1.Dot(u2)
	if sin < 1e-12 {
		// collinear, the circle would be at infinity or the legs fold back
		a.degenerate = true
		return a
	}
	theta := math.Atan2(sin, cos)
	half := theta / 2
	d := radius / math.Tan(half)
	a.t1 = corner.Translate(u1.Mul(d))
	a.t2 = corner.Translate(u2.Mul(d))
	bisector := u1.Add(u2).Normalize()
	a.center = corner.Translate(bisector.Mul(radius / math.Sin(half)))
	a.startAngle = a.t1.Sub(a.center).Angle()
	sweep := math.Pi - theta
	// Turn the same way the legs turn: the arc goes clockwise when going from
	// the first leg to the second is a clockwise turn.
	if (corner.Sub(start)).Cross(direction.Sub(corner)) < 0 {
		sweep = -sweep
	}
	a.sweepAngle = sweep
	return a
}

// end returns the end point of the arc element.
func (a cornerArc) end() Point {
	return a.t2
}

// segments returns the arc as an optional line to the first tangent point
// followed by one or two cubic Béziers. The last cubic ends exactly at the
// second tangent point.
func (a cornerArc) segments() []PathSegment {
	if a.degenerate {
		if a.start == a.corner {
			return nil
		}
		return []PathSegment{Line{a.start, a.corner}.Seg()}
	}
	var out []PathSegment
	if a.start != a.t1 {
		out = append(out, Line{a.start, a.t1}.Seg())
	}
	n := max(int(math.Ceil(math.Abs(a.sweepAngle)/(math.Pi/2)-1e-9)), 1)
	angleStep := a.sweepAngle / float64(n)
	armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), a.sweepAngle) * a.radius
	angle0 := a.startAngle
	p0 := a.t1
	for i := range n {
		angle1 := angle0 + angleStep
		p3 := a.center.Translate(VecFromAngle(angle1).Mul(a.radius))
		if i == n-1 {
			p3 = a.t2
		}
		p1 := p0.Translate(VecFromAngle(angle0 + math.Pi/2).Mul(armLen))
		p2 := p3.Translate(VecFromAngle(angle1 + math.Pi/2).Mul(-armLen))
		out = append(out, CubicBez{p0, p1, p2, p3}.Seg())
		angle0 = angle1
		p0 = p3
	}
	return out
}
