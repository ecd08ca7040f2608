package vecpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestIntersectLines(t *testing.T) {
	a := Polyline(Pt(0, 0), Pt(10, 10))
	b := Polyline(Pt(0, 10), Pt(10, 0))
	want := []SegmentIntersection{{SegA: 0, TA: 0.5, SegB: 0, TB: 0.5, Point: Pt(5, 5)}}
	diff(t, want, Intersect(a, b), cmpopts.EquateApprox(0, 1e-12))
}

func TestIntersectParallel(t *testing.T) {
	a := Polyline(Pt(0, 0), Pt(10, 0))
	b := Polyline(Pt(0, 1), Pt(10, 1))
	if hits := Intersect(a, b); len(hits) != 0 {
		t.Errorf("expected no intersections, got %v", hits)
	}
}

func TestIntersectCollinearOverlap(t *testing.T) {
	a := Polyline(Pt(0, 0), Pt(10, 0))
	b := Polyline(Pt(5, 0), Pt(15, 0))
	want := []SegmentIntersection{
		{SegA: 0, TA: 0.5, SegB: 0, TB: 0, Point: Pt(5, 0), Overlap: true},
		{SegA: 0, TA: 1, SegB: 0, TB: 0.5, Point: Pt(10, 0), Overlap: true},
	}
	diff(t, want, Intersect(a, b), cmpopts.EquateApprox(0, 1e-12))
}

func TestIntersectQuadLine(t *testing.T) {
	a := MustParseText("M0,0 Q5,10 10,0")
	b := Polyline(Pt(0, 2.5), Pt(10, 2.5))
	// y = 20t(1-t) = 2.5
	t0 := (1 - math.Sqrt(0.5)) / 2
	t1 := (1 + math.Sqrt(0.5)) / 2
	want := []SegmentIntersection{
		{SegA: 0, TA: t0, SegB: 0, TB: t0, Point: Pt(10*t0, 2.5)},
		{SegA: 0, TA: t1, SegB: 0, TB: t1, Point: Pt(10*t1, 2.5)},
	}
	diff(t, want, Intersect(a, b), cmpopts.EquateApprox(0, 1e-5))
}

func TestIntersectCubicLine(t *testing.T) {
	// S-shaped cubic crossing the x axis three times
	a := MustParseText("M0,-1 C3,5 7,-5 10,1")
	b := Polyline(Pt(-1, 0), Pt(11, 0))
	hits := Intersect(a, b)
	if len(hits) != 3 {
		t.Fatalf("got %d intersections, want 3: %v", len(hits), hits)
	}
	seg := a.Segments()[0]
	for i, hit := range hits {
		if math.Abs(hit.Point.Y) > 1e-5 {
			t.Errorf("intersection %d at %s isn't on the line", i, hit.Point)
		}
		assertNear(t, seg.Eval(hit.TA), hit.Point, 1e-5)
		if i > 0 && hits[i-1].TA >= hit.TA {
			t.Errorf("intersections aren't sorted: %v", hits)
		}
	}
}

func TestIntersectCircles(t *testing.T) {
	a := Circle{Pt(0, 0), 1}.Path()
	b := Circle{Pt(1, 0), 1}.Path()
	hits := Intersect(a, b)
	if len(hits) != 2 {
		t.Fatalf("got %d intersections, want 2: %v", len(hits), hits)
	}
	h := math.Sqrt(3) / 2
	assertNear(t, hits[0].Point, Pt(0.5, h), 1e-3)
	assertNear(t, hits[1].Point, Pt(0.5, -h), 1e-3)
	diff(t, []int{0, 3}, []int{hits[0].SegA, hits[1].SegA})
	diff(t, []int{1, 2}, []int{hits[0].SegB, hits[1].SegB})

	segsA, segsB := a.Segments(), b.Segments()
	for _, hit := range hits {
		assertNear(t, segsA[hit.SegA].Eval(hit.TA), hit.Point, 1e-5)
		assertNear(t, segsB[hit.SegB].Eval(hit.TB), hit.Point, 1e-5)
	}
}

func TestIntersectIdenticalCurves(t *testing.T) {
	a := MustParseText("M0,0 C0,10 10,10 10,0")
	want := []SegmentIntersection{
		{SegA: 0, TA: 0, SegB: 0, TB: 0, Point: Pt(0, 0), Overlap: true},
		{SegA: 0, TA: 1, SegB: 0, TB: 1, Point: Pt(10, 0), Overlap: true},
	}
	diff(t, want, Intersect(a, a))

	want = []SegmentIntersection{
		{SegA: 0, TA: 0, SegB: 0, TB: 1, Point: Pt(0, 0), Overlap: true},
		{SegA: 0, TA: 1, SegB: 0, TB: 0, Point: Pt(10, 0), Overlap: true},
	}
	diff(t, want, Intersect(a, a.Reverse()))
}

func TestIntersectEmpty(t *testing.T) {
	if hits := Intersect(Path{}, square(0, 0, 1, 1)); len(hits) != 0 {
		t.Errorf("expected no intersections, got %v", hits)
	}
	// disjoint bounding boxes
	if hits := Intersect(square(0, 0, 1, 1), square(5, 5, 6, 6)); len(hits) != 0 {
		t.Errorf("expected no intersections, got %v", hits)
	}
}

func TestIntersectMerge(t *testing.T) {
	// the squares' corners touch, which all four pairs of adjacent segments
	// report
	a := square(0, 0, 10, 10)
	b := square(10, 10, 20, 20)
	want := []SegmentIntersection{{SegA: 1, TA: 1, SegB: 0, TB: 0, Point: Pt(10, 10)}}
	diff(t, want, Intersect(a, b))
}

func TestIntersectWorkers(t *testing.T) {
	a := MustParseText("M0,0 C30,60 60,-60 90,0 Q100,50 50,50 L0,50 Z")
	b := Circle{Pt(45, 10), 30}.Path()
	c := Circle{Pt(10, 40), 25}.Path()
	for _, o := range []Path{b, c} {
		seq := Intersect(a, o)
		if len(seq) == 0 {
			t.Fatal("expected intersections")
		}
		opts := DefaultIntersectOptions
		opts.Workers = 4
		diff(t, seq, IntersectOpt(a, o, opts))
	}
}

func TestSelfIntersects(t *testing.T) {
	tests := []struct {
		name string
		p    Path
		want bool
	}{
		{"square", square(0, 0, 10, 10), false},
		{"circle", Circle{Pt(0, 0), 1}.Path(), false},
		{"lens", MustParseText("M0,0 Q5,10 10,0 Z"), false},
		{"bowtie", Polygon(Pt(0, 0), Pt(10, 10), Pt(10, 0), Pt(0, 10)), true},
		{"crossing back", MustParseText("M0,0 L10,0 L10,10 L5,-5 Z"), true},
		{"touching subpaths", MustParseText("M0,0 L10,0 L10,10 Z M10,10 L20,10 L20,20 Z"), true},
		{"disjoint subpaths", MustParseText("M0,0 L10,0 L10,10 Z M20,20 L30,20 L30,30 Z"), false},
		{"open polyline", Polyline(Pt(0, 0), Pt(10, 0), Pt(10, 10)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.SelfIntersects(); got != tt.want {
				t.Errorf("got %t, want %t", got, tt.want)
			}
		})
	}
}

func BenchmarkIntersectCircles(b *testing.B) {
	p := Circle{Pt(0, 0), 100}.Path()
	q := Circle{Pt(50, 20), 80}.Path()
	for b.Loop() {
		Intersect(p, q)
	}
}

func BenchmarkIntersectCirclesParallel(b *testing.B) {
	p := Circle{Pt(0, 0), 100}.Path()
	q := Circle{Pt(50, 20), 80}.Path()
	opts := DefaultIntersectOptions
	opts.Workers = 4
	for b.Loop() {
		IntersectOpt(p, q, opts)
	}
}
