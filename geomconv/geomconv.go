// Package geomconv converts between vecpath values and the types of
// seehuhn.de/go/geom, which is used by the seehuhn.de/go/render rasterizer
// and PDF tooling.
package geomconv

import (
	"fmt"

	"honnef.co/go/vecpath"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Path returns an iterator over the commands of p. Arcs are converted to
// lines and cubic Béziers.
func Path(p vecpath.Path) path.Path {
	p = p.WithoutArcs()
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for el := range p.Elements() {
			var ok bool
			switch el.Kind {
			case vecpath.MoveToKind:
				ok = yield(path.CmdMoveTo, []vec.Vec2{toVec(el.P0)})
			case vecpath.LineToKind:
				ok = yield(path.CmdLineTo, []vec.Vec2{toVec(el.P0)})
			case vecpath.QuadToKind:
				ok = yield(path.CmdQuadTo, []vec.Vec2{toVec(el.P0), toVec(el.P1)})
			case vecpath.CubicToKind:
				ok = yield(path.CmdCubeTo, []vec.Vec2{toVec(el.P0), toVec(el.P1), toVec(el.P2)})
			case vecpath.ClosePathKind:
				ok = yield(path.CmdClose, nil)
			default:
				panic(fmt.Sprintf("unhandled path element kind %s", el.Kind))
			}
			if !ok {
				return
			}
		}
	}
}

// FromPath collects the commands of gp into a path with the given fill rule.
func FromPath(gp path.Path, rule vecpath.FillRule) vecpath.Path {
	out := vecpath.Path{FillRule: rule}
	for cmd, pts := range gp {
		switch cmd {
		case path.CmdMoveTo:
			out.MoveTo(fromVec(pts[0]))
		case path.CmdLineTo:
			out.LineTo(fromVec(pts[0]))
		case path.CmdQuadTo:
			out.QuadTo(fromVec(pts[0]), fromVec(pts[1]))
		case path.CmdCubeTo:
			out.CubicTo(fromVec(pts[0]), fromVec(pts[1]), fromVec(pts[2]))
		case path.CmdClose:
			out.Close()
		default:
			panic(fmt.Sprintf("unhandled path command %v", cmd))
		}
	}
	return out
}

// Matrix returns the affine transformation as a matrix. Both types store the
// coefficients in the same order.
func Matrix(aff vecpath.Affine) matrix.Matrix {
	return matrix.Matrix(aff.Coefficients())
}

// Affine returns the matrix as an affine transformation.
func Affine(m matrix.Matrix) vecpath.Affine {
	return vecpath.NewAffine([6]float64(m))
}

func toVec(pt vecpath.Point) vec.Vec2 {
	return vec.Vec2{X: pt.X, Y: pt.Y}
}

func fromVec(v vec.Vec2) vecpath.Point {
	return vecpath.Pt(v.X, v.Y)
}
