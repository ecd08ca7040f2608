package vecpath

// SmoothPath returns a path of cubic Béziers passing through all points,
// using Catmull-Rom tangents. A tension of 1 produces uniform Catmull-Rom
// splines, 0 produces straight lines between the points and larger values
// produce rounder curves.
//
// If closed is set, the path returns to the first point and is closed. End
// points of open paths use their neighbor as the missing outer point.
func SmoothPath(pts []Point, closed bool, tension float64) Path {
	var p Path
	n := len(pts)
	if n == 0 {
		return p
	}
	p.MoveTo(pts[0])
	if n == 1 {
		if closed {
			p.Close()
		}
		return p
	}
	at := func(i int) Point {
		if closed {
			return pts[((i%n)+n)%n]
		}
		return pts[min(max(i, 0), n-1)]
	}
	segs := n - 1
	if closed {
		segs = n
	}
	k := tension / 6
	for i := range segs {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		c1 := p1.Translate(p2.Sub(p0).Mul(k))
		c2 := p2.Translate(p3.Sub(p1).Mul(-k))
		p.CubicTo(c1, c2, p2)
	}
	if closed {
		p.Close()
	}
	return p
}
