package vecpath

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

var testSegments = []PathSegment{
	Line{Pt(0, 0), Pt(10, 5)}.Seg(),
	QuadBez{Pt(0, 0), Pt(5, 10), Pt(10, 0)}.Seg(),
	CubicBez{Pt(0, 0), Pt(1, 2), Pt(3, -1), Pt(4, 1)}.Seg(),
}

func TestSegmentEvaluate(t *testing.T) {
	for _, seg := range testSegments {
		if got, err := seg.Evaluate(0); err != nil || got != seg.Start() {
			t.Errorf("%s: got (%s, %v) at t=0, want %s", seg, got, err, seg.Start())
		}
		if got, err := seg.Evaluate(1); err != nil || got != seg.End() {
			t.Errorf("%s: got (%s, %v) at t=1, want %s", seg, got, err, seg.End())
		}
		for _, ts := range []float64{-0.1, 1.5, math.NaN()} {
			_, err := seg.Evaluate(ts)
			if !errors.Is(err, ErrParameterRange) {
				t.Errorf("%s: got error %v for t=%g, want %v", seg, err, ts, ErrParameterRange)
			}
			var perr *PreconditionError
			if !errors.As(err, &perr) || perr.Op != "Evaluate" {
				t.Errorf("%s: got error %#v, want a precondition error for Evaluate", seg, err)
			}
		}
	}
}

func TestSegmentSplit(t *testing.T) {
	const epsilon = 1e-12
	for _, seg := range testSegments {
		for _, ts := range []float64{0, 0.3, 0.5, 1} {
			a, b, err := seg.Split(ts)
			if err != nil {
				t.Fatal(err)
			}
			if a.Kind != seg.Kind || b.Kind != seg.Kind {
				t.Errorf("%s: split changed the kind to %s and %s", seg, a.Kind, b.Kind)
			}
			if a.End() != b.Start() {
				t.Errorf("%s: halves don't meet at t=%g: %s and %s", seg, ts, a.End(), b.Start())
			}
			assertNear(t, a.End(), seg.Eval(ts), epsilon)
			diff(t, seg.Start(), a.Start())
			diff(t, seg.End(), b.End())
		}
		if _, _, err := seg.Split(2); !errors.Is(err, ErrParameterRange) {
			t.Errorf("%s: got error %v, want %v", seg, err, ErrParameterRange)
		}
	}
}

func TestSegmentSubsegment(t *testing.T) {
	const epsilon = 1e-12
	for _, seg := range testSegments {
		t0, t1 := 0.1, 0.8
		sub := seg.Subsegment(t0, t1)
		const n = 10
		for i := range n + 1 {
			tt := float64(i) / float64(n)
			assertNear(t, sub.Eval(tt), seg.Eval(t0+tt*(t1-t0)), epsilon)
		}
		diff(t, seg, seg.Subsegment(0, 1))
	}
}

func TestSegmentDegenerate(t *testing.T) {
	p := Pt(3, 4)
	segs := []PathSegment{
		Line{p, p}.Seg(),
		QuadBez{p, p, p}.Seg(),
		CubicBez{p, p, p, p}.Seg(),
	}
	for _, seg := range segs {
		for _, ts := range []float64{0, 0.25, 0.5, 1} {
			if got := seg.Eval(ts); got != p {
				t.Errorf("%s: got %s at t=%g, want %s", seg, got, ts, p)
			}
		}
		if l := seg.ApproxLength(8); l != 0 {
			t.Errorf("%s: got length %g, want 0", seg, l)
		}
		if w := seg.Winding(Pt(0, 4)); w != 0 {
			t.Errorf("%s: got winding %d, want 0", seg, w)
		}
		diff(t, Rect{3, 4, 3, 4}, seg.BoundingBox())
	}
}

func TestSegmentBoundingBox(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)
	q := testSegments[1]
	diff(t, Rect{0, 0, 10, 5}, q.BoundingBox(), approx)
	diff(t, Rect{0, 0, 10, 10}, q.ControlBox(), approx)
	for _, seg := range testSegments {
		bbox, cbox := seg.BoundingBox(), seg.ControlBox()
		if bbox.Union(cbox) != cbox {
			t.Errorf("%s: control box %s doesn't contain bounding box %s", seg, cbox, bbox)
		}
	}
}

func TestSegmentReverse(t *testing.T) {
	const epsilon = 1e-12
	for _, seg := range testSegments {
		rev := seg.Reverse()
		for i := range 11 {
			ts := float64(i) / 10
			assertNear(t, rev.Eval(ts), seg.Eval(1-ts), epsilon)
		}
		diff(t, seg, rev.Reverse())
		if a, b := seg.SignedArea(), rev.SignedArea(); math.Abs(a+b) > epsilon {
			t.Errorf("%s: reversed area %g isn't the negation of %g", seg, b, a)
		}
		same, opposite := seg.sameAs(rev, 1e-9)
		if same || !opposite {
			t.Errorf("%s: got sameAs (%t, %t) for reversed segment", seg, same, opposite)
		}
		same, opposite = seg.sameAs(seg, 1e-9)
		if !same || opposite {
			t.Errorf("%s: got sameAs (%t, %t) for itself", seg, same, opposite)
		}
	}
}

func TestSegmentTangent(t *testing.T) {
	const delta = 1e-7
	for _, seg := range testSegments {
		for _, ts := range []float64{0.1, 0.5, 0.9} {
			approx := seg.Eval(ts + delta).Sub(seg.Eval(ts)).Mul(1 / delta)
			if d := seg.Tangent(ts).Sub(approx).Hypot(); d > 1e-4 {
				t.Errorf("%s: tangent at %g is off by %g", seg, ts, d)
			}
		}
	}
}

func TestSegmentWinding(t *testing.T) {
	// a closed loop made of one segment of each kind
	segs := []PathSegment{
		Line{Pt(0, 0), Pt(10, 0)}.Seg(),
		QuadBez{Pt(10, 0), Pt(12, 5), Pt(10, 10)}.Seg(),
		CubicBez{Pt(10, 10), Pt(6, 12), Pt(4, 8), Pt(0, 10)}.Seg(),
		Line{Pt(0, 10), Pt(0, 0)}.Seg(),
	}
	winding := func(pt Point) int {
		var w int
		for _, seg := range segs {
			w += seg.Winding(pt)
		}
		return w
	}
	tests := []struct {
		pt   Point
		want int
	}{
		{Pt(5, 5), 1},
		{Pt(10.5, 5), 1},
		{Pt(12, 5), 0},
		{Pt(-1, 5), 0},
		{Pt(5, 12), 0},
		{Pt(5, -1), 0},
	}
	for _, tt := range tests {
		if got := winding(tt.pt); got != tt.want {
			t.Errorf("%s: got winding %d, want %d", tt.pt, got, tt.want)
		}
	}
}

func TestSubdivideMaxLength(t *testing.T) {
	for _, seg := range testSegments {
		const maxLen = 1.5
		pieces := SubdivideMaxLength(seg, maxLen)
		if len(pieces) < 2 {
			t.Fatalf("%s: got %d pieces, want several", seg, len(pieces))
		}
		diff(t, seg.Start(), pieces[0].Start())
		diff(t, seg.End(), pieces[len(pieces)-1].End())
		for i, piece := range pieces {
			if l := piece.ApproxLength(16); l > maxLen {
				t.Errorf("%s: piece %d has length %g", seg, i, l)
			}
			if i > 0 && pieces[i-1].End() != piece.Start() {
				t.Errorf("%s: pieces %d and %d don't meet", seg, i-1, i)
			}
		}
	}

	seg := testSegments[0]
	diff(t, []PathSegment{seg}, SubdivideMaxLength(seg, 0))
	diff(t, []PathSegment{seg}, SubdivideMaxLength(seg, 100))
}
