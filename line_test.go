package vecpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLineLength(t *testing.T) {
	l := Line{Pt(0.0, 0.0), Pt(1.0, 1.0)}
	want := math.Sqrt(2.0)
	if d := math.Abs(l.Length() - want); d > 1e-12 {
		t.Errorf("%g > %g", d, 1e-12)
	}
	if got := l.Seg().ApproxLength(1); got != l.Length() {
		t.Errorf("got length %v, want %v", got, l.Length())
	}
}

func TestIntersectLine(t *testing.T) {
	opt := cmp.AllowUnexported(lineHit{})
	approx := cmpopts.EquateApprox(0, 1e-9)
	hLine := Line{Pt(0.0, 0.0), Pt(100.0, 0.0)}
	vLine := Line{Pt(10.0, -10.0), Pt(10.0, 10.0)}
	xs, n := hLine.intersectLine(vLine, 1e-6)
	want := []lineHit{{t: 0.1, u: 0.5, pt: Pt(10, 0)}}
	diff(t, want, xs[:n], opt, approx)

	vLine = Line{Pt(-10.0, -10.0), Pt(-10.0, 10.0)}
	if xs, n := hLine.intersectLine(vLine, 1e-6); n != 0 {
		t.Errorf("expected no intersections, got %v", xs[:n])
	}

	vLine = Line{Pt(10.0, 10.0), Pt(10.0, 20.0)}
	if xs, n := hLine.intersectLine(vLine, 1e-6); n != 0 {
		t.Errorf("expected no intersections, got %v", xs[:n])
	}

	// touching at an end point
	vLine = Line{Pt(100.0, 0.0), Pt(100.0, 20.0)}
	xs, n = hLine.intersectLine(vLine, 1e-6)
	want = []lineHit{{t: 1, u: 0, pt: Pt(100, 0)}}
	diff(t, want, xs[:n], opt, approx)
}

func TestIntersectLineParallel(t *testing.T) {
	opt := cmp.AllowUnexported(lineHit{})
	approx := cmpopts.EquateApprox(0, 1e-9)
	l := Line{Pt(0, 0), Pt(10, 0)}

	if xs, n := l.intersectLine(Line{Pt(0, 1), Pt(10, 1)}, 1e-6); n != 0 {
		t.Errorf("expected no intersections, got %v", xs[:n])
	}
	// collinear but disjoint
	if xs, n := l.intersectLine(Line{Pt(11, 0), Pt(20, 0)}, 1e-6); n != 0 {
		t.Errorf("expected no intersections, got %v", xs[:n])
	}

	// collinear and overlapping, in opposite directions
	xs, n := l.intersectLine(Line{Pt(15, 0), Pt(5, 0)}, 1e-6)
	want := []lineHit{
		{t: 0.5, u: 1, pt: Pt(5, 0), overlap: true},
		{t: 1, u: 0.5, pt: Pt(10, 0), overlap: true},
	}
	diff(t, want, xs[:n], opt, approx)

	// collinear, touching in a single point
	xs, n = l.intersectLine(Line{Pt(10, 0), Pt(20, 0)}, 1e-6)
	want = []lineHit{{t: 1, u: 0, pt: Pt(10, 0)}}
	diff(t, want, xs[:n], opt, approx)
}

func TestIntersectLineDegenerate(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	xs, n := l.intersectLine(Line{Pt(4, 0), Pt(4, 0)}, 1e-6)
	if n != 1 || xs[0].pt != Pt(4, 0) {
		t.Errorf("got %v, want a single hit at (4, 0)", xs[:n])
	}
	if xs, n := l.intersectLine(Line{Pt(4, 1), Pt(4, 1)}, 1e-6); n != 0 {
		t.Errorf("expected no intersections, got %v", xs[:n])
	}
}
