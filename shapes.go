package vecpath

import (
	"math"
)

// Circle is a circle given by its center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// circleArm is the length of the control arms, relative to the radius, of
// four cubic Béziers approximating a circle.
//
// Solution from http://spencermortensen.com/articles/bezier-circle/
const circleArm = 0.551915024494

// Path returns the circle as a closed path of four cubic Béziers, running
// counter-clockwise and starting at the point with the largest x coordinate.
func (c Circle) Path() Path {
	x, y := c.Center.Splat()
	r := c.Radius
	a := circleArm
	var p Path
	p.MoveTo(Pt(x+r, y))
	for ix := 1; ix <= 4; ix++ {
		th1 := math.Pi / 2 * float64(ix)
		th0 := th1 - math.Pi/2
		s0, c0 := math.Sincos(th0)
		var s1, c1 float64
		if ix == 4 {
			s1, c1 = 0, 1
		} else {
			s1, c1 = math.Sincos(th1)
		}
		p.CubicTo(
			Pt(x+r*(c0-a*s0), y+r*(s0+a*c0)),
			Pt(x+r*(c1+a*s1), y+r*(s1-a*c1)),
			Pt(x+r*c1, y+r*s1),
		)
	}
	p.Close()
	return p
}

// Contains reports whether pt lies inside the circle.
func (c Circle) Contains(pt Point) bool {
	return pt.DistanceSquared(c.Center) < c.Radius*c.Radius
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) BoundingBox() Rect {
	r := math.Abs(c.Radius)
	return Rect{c.Center.X - r, c.Center.Y - r, c.Center.X + r, c.Center.Y + r}
}

// Path returns the rectangle as a closed path running counter-clockwise,
// starting at (X0, Y0).
func (r Rect) Path() Path {
	r = r.Abs()
	return Polygon(Pt(r.X0, r.Y0), Pt(r.X1, r.Y0), Pt(r.X1, r.Y1), Pt(r.X0, r.Y1))
}

// Polygon returns a closed path of lines through the points.
func Polygon(pts ...Point) Path {
	var p Path
	if len(pts) == 0 {
		return p
	}
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	p.Close()
	return p
}

// Polyline returns an open path of lines through the points.
func Polyline(pts ...Point) Path {
	var p Path
	if len(pts) == 0 {
		return p
	}
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	return p
}
