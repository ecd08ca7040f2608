package vecpath

import (
	"fmt"
	"math"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic Bézier using the current location and the two points.
	QuadToKind
	// Draw a cubic Bézier using the current location and the three points.
	CubicToKind
	// Draw a line from the current location towards the corner, followed by a
	// circular arc of the given radius that is tangent to both the line from
	// the current location to the corner and the line from the corner to the
	// direction point.
	ArcToKind
	// Close off the subpath with a line back to its start.
	ClosePathKind
)

func (k PathElementKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case QuadToKind:
		return "QuadTo"
	case CubicToKind:
		return "CubicTo"
	case ArcToKind:
		return "ArcTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return fmt.Sprintf("PathElementKind(%d)", int(k))
	}
}

// PathElement is one drawing command of a [Path]. Its start point is implicit:
// it is the end point of the previous element.
//
// The meaning of the points depends on the kind:
//
//   - MoveTo, LineTo: P0 is the target.
//   - QuadTo: P0 is the control point, P1 the end point.
//   - CubicTo: P0 and P1 are the control points, P2 the end point.
//   - ArcTo: P0 is the corner, P1 the direction point and Radius the radius
//     of the arc. P2 is the end of the arc, which is derived from the other
//     values and the current point when the element is added to a path.
//   - ClosePath: no points.
type PathElement struct {
	Kind   PathElementKind
	P0     Point
	P1     Point
	P2     Point
	Radius float64
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return fmt.Sprintf("%s(%s)", el.Kind, el.P0)
	case QuadToKind:
		return fmt.Sprintf("%s(%s, %s)", el.Kind, el.P0, el.P1)
	case CubicToKind:
		return fmt.Sprintf("%s(%s, %s, %s)", el.Kind, el.P0, el.P1, el.P2)
	case ArcToKind:
		return fmt.Sprintf("%s(%s, %s, %g)", el.Kind, el.P0, el.P1, el.Radius)
	case ClosePathKind:
		return "ClosePath()"
	default:
		return fmt.Sprintf("%s(%s, %s, %s)", el.Kind, el.P0, el.P1, el.P2)
	}
}

// Transform applies an affine transformation to the element's points. The
// radius of arcs is scaled by the square root of the absolute determinant,
// which is exact for similarity transforms. [Path.Transform] replaces arcs
// by cubics for all other transforms.
func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind:
		return MoveTo(el.P0.Transform(aff))
	case LineToKind:
		return LineTo(el.P0.Transform(aff))
	case QuadToKind:
		return QuadTo(el.P0.Transform(aff), el.P1.Transform(aff))
	case CubicToKind:
		return CubicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff))
	case ArcToKind:
		return PathElement{
			Kind:   ArcToKind,
			P0:     el.P0.Transform(aff),
			P1:     el.P1.Transform(aff),
			P2:     el.P2.Transform(aff),
			Radius: el.Radius * math.Sqrt(math.Abs(aff.Determinant())),
		}
	case ClosePathKind:
		return el
	default:
		panic(fmt.Sprintf("unhandled path element kind %s", el.Kind))
	}
}

// EndPoint returns the end point of the element, or false for ClosePath,
// whose end point depends on the subpath.
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind, ArcToKind:
		return el.P2, true
	case ClosePathKind:
		return Point{}, false
	default:
		panic(fmt.Sprintf("unhandled path element kind %s", el.Kind))
	}
}

func (el PathElement) IsInf() bool {
	return el.P0.IsInf() || el.P1.IsInf() || el.P2.IsInf() || math.IsInf(el.Radius, 0)
}

func (el PathElement) IsNaN() bool {
	return el.P0.IsNaN() || el.P1.IsNaN() || el.P2.IsNaN() || math.IsNaN(el.Radius)
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

// ArcTo returns an arc element. Its end point is only known once it is added
// to a path with [Path.Push].
func ArcTo(corner, direction Point, radius float64) PathElement {
	return PathElement{Kind: ArcToKind, P0: corner, P1: direction, Radius: math.Abs(radius)}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}
