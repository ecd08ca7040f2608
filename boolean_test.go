package vecpath

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// totalArea sums the areas of the paths returned by a boolean operation.
func totalArea(ps []Path) float64 {
	var a float64
	for _, p := range ps {
		a += p.Area()
	}
	return a
}

func TestBooleanSquares(t *testing.T) {
	a := MustParseText("M0,0 L10,0 L10,10 L0,10 Z")
	b := MustParseText("M5,5 L15,5 L15,15 L5,15 Z")
	tests := []struct {
		op   Op
		area float64
		bbox Rect
	}{
		{OpUnion, 175, Rect{0, 0, 15, 15}},
		{OpIntersection, 25, Rect{5, 5, 10, 10}},
		{OpDifference, 75, Rect{0, 0, 10, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			res, err := BooleanOp(a, b, tt.op)
			if err != nil {
				t.Fatal(err)
			}
			if len(res) != 1 {
				t.Fatalf("got %d paths, want 1", len(res))
			}
			p := res[0]
			if !p.Closed() {
				t.Error("result isn't closed")
			}
			if p.FillRule != NonZero {
				t.Errorf("got fill rule %s, want %s", p.FillRule, NonZero)
			}
			diff(t, tt.area, p.Area(), cmpopts.EquateApprox(0, 1e-9))
			diff(t, tt.bbox, p.BoundingBox(), cmpopts.EquateApprox(0, 1e-9))
			if p.SelfIntersects() {
				t.Error("result intersects itself")
			}
		})
	}
}

func TestBooleanIntersectionCorners(t *testing.T) {
	a := MustParseText("M0,0 L10,0 L10,10 L0,10 Z")
	b := MustParseText("M5,5 L15,5 L15,15 L5,15 Z")
	res, err := Intersection(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("got %d paths, want 1", len(res))
	}
	var corners []Point
	for _, seg := range res[0].Segments() {
		corners = append(corners, seg.Start())
	}
	// the result starts on the first piece of a that is inside of b
	want := []Point{Pt(10, 5), Pt(10, 10), Pt(5, 10), Pt(5, 5)}
	diff(t, want, corners)
}

func TestBooleanIdempotent(t *testing.T) {
	shapes := map[string]Path{
		"square": square(0, 0, 10, 10),
		"circle": Circle{Pt(3, 4), 5}.Path(),
		"mixed":  MustParseText("M0,0 L10,0 Q15,5 10,10 C5,15 0,15 0,10 Z"),
	}
	for name, a := range shapes {
		t.Run(name, func(t *testing.T) {
			for _, op := range []Op{OpUnion, OpIntersection} {
				res, err := BooleanOp(a, a, op)
				if err != nil {
					t.Fatal(err)
				}
				if len(res) != 1 {
					t.Fatalf("%s: got %d paths, want 1", op, len(res))
				}
				diff(t, a.Area(), res[0].Area(), cmpopts.EquateApprox(0, 1e-9))
				diff(t, a.BoundingBox(), res[0].BoundingBox(), cmpopts.EquateApprox(0, 1e-9))
			}
			res, err := Difference(a, a)
			if err != nil {
				t.Fatal(err)
			}
			if len(res) != 0 {
				t.Errorf("difference: got %d paths, want none", len(res))
			}
		})
	}
}

func TestBooleanDisjoint(t *testing.T) {
	a := square(0, 0, 10, 10)
	b := square(20, 0, 30, 10)

	res, err := Union(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("union: got %d paths, want 2", len(res))
	}
	diff(t, 200.0, totalArea(res), cmpopts.EquateApprox(0, 1e-9))

	res, err = Intersection(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("intersection: got %d paths, want none", len(res))
	}

	res, err = Difference(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("difference: got %d paths, want 1", len(res))
	}
	diff(t, a.Segments(), res[0].Segments())
}

func TestBooleanContained(t *testing.T) {
	big := square(0, 0, 10, 10)
	small := square(3, 3, 7, 7)

	res, err := Union(big, small)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("union: got %d paths, want 1", len(res))
	}
	diff(t, 100.0, res[0].Area(), cmpopts.EquateApprox(0, 1e-9))

	res, err = Intersection(big, small)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("intersection: got %d paths, want 1", len(res))
	}
	diff(t, 16.0, res[0].Area(), cmpopts.EquateApprox(0, 1e-9))

	// cutting a hole
	res, err = Difference(big, small)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("difference: got %d paths, want 1", len(res))
	}
	p := res[0]
	if n := p.NumSubpaths(); n != 2 {
		t.Errorf("got %d subpaths, want 2", n)
	}
	diff(t, 84.0, p.Area(), cmpopts.EquateApprox(0, 1e-9))
	if p.Contains(Pt(5, 5)) {
		t.Error("result shouldn't contain the hole")
	}
	if !p.Contains(Pt(1, 1)) {
		t.Error("result should contain the ring")
	}

	res, err = Difference(small, big)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("difference: got %d paths, want none", len(res))
	}
}

func TestBooleanOperandWithHole(t *testing.T) {
	// both subpaths run counter-clockwise, the inner one is still a hole
	ring := square(0, 0, 10, 10)
	for el := range square(3, 3, 7, 7).Elements() {
		ring.Push(el)
	}
	b := square(5, -5, 15, 15)

	res, err := Intersection(ring, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("got %d paths, want 1", len(res))
	}
	diff(t, 42.0, res[0].Area(), cmpopts.EquateApprox(0, 1e-9))
	if res[0].Contains(Pt(6, 5)) {
		t.Error("result shouldn't contain the hole")
	}
	if !res[0].Contains(Pt(8, 5)) {
		t.Error("result should contain the ring")
	}

	res, err = Union(ring, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("got %d paths, want 1", len(res))
	}
	// 100 + 200 - 50 overlap, minus the part of the hole left of x = 5
	diff(t, 242.0, totalArea(res), cmpopts.EquateApprox(0, 1e-9))
}

func TestBooleanSharedEdge(t *testing.T) {
	a := square(0, 0, 10, 10)
	b := square(10, 0, 20, 10)

	res, err := Union(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("union: got %d paths, want 1", len(res))
	}
	diff(t, 200.0, res[0].Area(), cmpopts.EquateApprox(0, 1e-9))
	diff(t, Rect{0, 0, 20, 10}, res[0].BoundingBox())

	res, err = Difference(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("difference: got %d paths, want 1", len(res))
	}
	diff(t, 100.0, res[0].Area(), cmpopts.EquateApprox(0, 1e-9))

	res, err = Intersection(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if a := totalArea(res); a > 1e-9 {
		t.Errorf("intersection: got area %g, want 0", a)
	}
}

func TestBooleanCircles(t *testing.T) {
	a := Circle{Pt(0, 0), 1}.Path()
	b := Circle{Pt(1, 0), 1}.Path()
	lens := 2*math.Acos(0.5) - 0.5*math.Sqrt(3)
	circle := math.Pi

	tests := []struct {
		op   Op
		area float64
	}{
		{OpUnion, 2*circle - lens},
		{OpIntersection, lens},
		{OpDifference, circle - lens},
	}
	for _, tt := range tests {
		res, err := BooleanOp(a, b, tt.op)
		if err != nil {
			t.Fatal(err)
		}
		if len(res) != 1 {
			t.Fatalf("%s: got %d paths, want 1", tt.op, len(res))
		}
		if got := res[0].Area(); math.Abs(got-tt.area) > 5e-3 {
			t.Errorf("%s: got area %g, want %g", tt.op, got, tt.area)
		}
	}
}

func TestBooleanOrientation(t *testing.T) {
	// clockwise operands produce counter-clockwise results
	a := square(0, 0, 10, 10).Reverse()
	b := square(5, 5, 15, 15).Reverse()
	res, err := Union(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("got %d paths, want 1", len(res))
	}
	diff(t, 175.0, res[0].Area(), cmpopts.EquateApprox(0, 1e-9))
}

func TestBooleanErrors(t *testing.T) {
	sq := square(0, 0, 10, 10)
	tests := []struct {
		name string
		a, b Path
		err  error
	}{
		{"empty first", Path{}, sq, ErrEmptyPath},
		{"empty second", sq, Path{}, ErrEmptyPath},
		{"lone move", MustParseText("M1,1"), sq, ErrEmptyPath},
		{"open", Polyline(Pt(0, 0), Pt(10, 0), Pt(10, 10)), sq, ErrOpenPath},
		{"partially open", MustParseText("M0,0 L10,0 L10,10 Z M20,20 L30,20"), sq, ErrOpenPath},
		{"self-intersecting", sq, Polygon(Pt(0, 0), Pt(10, 10), Pt(10, 0), Pt(0, 10)), ErrSelfIntersecting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, op := range []Op{OpUnion, OpIntersection, OpDifference} {
				res, err := BooleanOp(tt.a, tt.b, op)
				if !errors.Is(err, tt.err) {
					t.Errorf("%s: got error %v, want %v", op, err, tt.err)
				}
				var perr *PreconditionError
				if !errors.As(err, &perr) || perr.Op != op.String() {
					t.Errorf("%s: got error %#v, want a precondition error for %s", op, err, op)
				}
				if res != nil {
					t.Errorf("%s: got result %v alongside an error", op, res)
				}
			}
		})
	}
}

func TestBooleanInputsUnchanged(t *testing.T) {
	a := square(0, 0, 10, 10).Reverse()
	b := square(5, 5, 15, 15)
	wantA, wantB := a.Clone(), b.Clone()
	if _, err := Union(a, b); err != nil {
		t.Fatal(err)
	}
	diff(t, elements(wantA), elements(a))
	diff(t, elements(wantB), elements(b))
}
