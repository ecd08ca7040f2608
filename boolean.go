package vecpath

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Op is a boolean set operation on the regions enclosed by two paths.
type Op int

const (
	// OpUnion keeps the points inside of either path.
	OpUnion Op = iota
	// OpIntersection keeps the points inside of both paths.
	OpIntersection
	// OpDifference keeps the points inside of the first but not the second
	// path.
	OpDifference
)

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "Union"
	case OpIntersection:
		return "Intersection"
	case OpDifference:
		return "Difference"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// BooleanOptions controls [BooleanOpOpt].
type BooleanOptions struct {
	// Tolerance is the distance below which end points of pieces are
	// considered equal when matching shared boundaries and when chaining
	// pieces into closed loops.
	Tolerance float64
	// Intersect controls how the boundaries of the two paths are
	// intersected.
	Intersect IntersectOptions
}

// DefaultBooleanOptions are the options used by [BooleanOp].
var DefaultBooleanOptions = BooleanOptions{
	Tolerance: DefaultTolerance,
	Intersect: DefaultIntersectOptions,
}

// Union returns the union of the regions enclosed by a and b.
func Union(a, b Path) ([]Path, error) {
	return BooleanOp(a, b, OpUnion)
}

// Intersection returns the intersection of the regions enclosed by a and b.
func Intersection(a, b Path) ([]Path, error) {
	return BooleanOp(a, b, OpIntersection)
}

// Difference returns the region enclosed by a but not by b.
func Difference(a, b Path) ([]Path, error) {
	return BooleanOp(a, b, OpDifference)
}

// BooleanOp applies a boolean operation to the regions enclosed by a and b,
// using [DefaultBooleanOptions].
func BooleanOp(a, b Path, op Op) ([]Path, error) {
	return BooleanOpOpt(a, b, op, DefaultBooleanOptions)
}

// BooleanOpOpt applies a boolean operation to the regions enclosed by a and
// b.
//
// Both paths must have at least one segment, all of their subpaths must be
// closed and they must not intersect themselves. Otherwise, a
// [*PreconditionError] wrapping [ErrEmptyPath], [ErrOpenPath] or
// [ErrSelfIntersecting] is returned.
//
// Subpaths nested inside an odd number of other subpaths are holes. The
// result is a list of closed paths, one per outer boundary, each followed by
// the holes it contains. It uses the NonZero fill rule, outer boundaries run
// counter-clockwise and holes clockwise. The result is empty if no region
// remains.
//
// The paths are split at their intersections and every piece is classified,
// by testing its midpoint, as inside or outside of the other path, or as part
// of a boundary shared with the other path. Depending on op, a subset of the
// pieces is chained into closed loops.
func BooleanOpOpt(a, b Path, op Op, opts BooleanOptions) ([]Path, error) {
	if !(opts.Tolerance > 0) {
		opts.Tolerance = DefaultBooleanOptions.Tolerance
	}
	iopts := opts.Intersect.withDefaults()
	switch op {
	case OpUnion, OpIntersection, OpDifference:
	default:
		panic(fmt.Sprintf("unhandled boolean operation %s", op))
	}
	if err := checkOperand(op, "first", a, iopts); err != nil {
		return nil, err
	}
	if err := checkOperand(op, "second", b, iopts); err != nil {
		return nil, err
	}

	a = orient(a)
	b = orient(b)
	segsA, segsB := a.Segments(), b.Segments()
	hits := intersectSegments(segsA, segsB, iopts, nil)
	piecesA := splitAtHits(segsA, hits, false, opts.Tolerance)
	piecesB := splitAtHits(segsB, hits, true, opts.Tolerance)
	classA := classify(piecesA, piecesB, b, opts.Tolerance)
	classB := classify(piecesB, piecesA, a, opts.Tolerance)
	selected := selectPieces(op, piecesA, classA, piecesB, classB)
	loops := stitch(selected, opts.Tolerance)
	out := assemble(loops)

	Logger().Debug("boolean operation",
		"op", op,
		"intersections", len(hits),
		"piecesA", len(piecesA),
		"piecesB", len(piecesB),
		"selected", len(selected),
		"loops", len(loops),
		"paths", len(out))
	return out, nil
}

func checkOperand(op Op, which string, p Path, opts IntersectOptions) error {
	switch {
	case len(p.Segments()) == 0:
		return precondition(op.String(), ErrEmptyPath, "%s operand", which)
	case !p.Closed():
		return precondition(op.String(), ErrOpenPath, "%s operand", which)
	case p.selfIntersects(opts):
		return precondition(op.String(), ErrSelfIntersecting, "%s operand", which)
	}
	return nil
}

// orient returns the path with every subpath oriented so that outer
// boundaries have positive and holes negative area. A subpath is a hole if it
// is nested inside an odd number of other subpaths. Subpaths without segments
// are dropped.
func orient(p Path) Path {
	sps := slices.DeleteFunc(p.subpaths(), func(sp subpath) bool {
		return len(sp.segs) == 0
	})
	out := Path{FillRule: p.FillRule}
	for i, sp := range sps {
		probe := sp.segs[0].Eval(0.5)
		depth := 0
		for j, o := range sps {
			if i != j && o.winding(probe) != 0 {
				depth++
			}
		}
		if (depth%2 == 0) != (sp.area() >= 0) {
			sp = sp.reverse()
		}
		out.pushSubpath(sp)
	}
	return out
}

type cut struct {
	t  float64
	pt Point
}

// splitAtHits splits every segment at the intersections that lie on it. If
// useB is set, the B side of the intersections is used. Pieces end exactly
// on the intersection points, so that pieces of both paths that meet at an
// intersection share their end points.
func splitAtHits(segs []PathSegment, hits []SegmentIntersection, useB bool, tol float64) []PathSegment {
	cuts := make([][]cut, len(segs))
	for _, hit := range hits {
		idx, t := hit.SegA, hit.TA
		if useB {
			idx, t = hit.SegB, hit.TB
		}
		seg := segs[idx]
		if t <= 0 || t >= 1 || hit.Point.ApproxEqual(seg.Start(), tol) || hit.Point.ApproxEqual(seg.End(), tol) {
			continue
		}
		cuts[idx] = append(cuts[idx], cut{t, hit.Point})
	}

	var out []PathSegment
	for i, seg := range segs {
		cs := cuts[i]
		slices.SortStableFunc(cs, func(x, y cut) int { return cmp.Compare(x.t, y.t) })
		cs = slices.CompactFunc(cs, func(x, y cut) bool {
			return x.pt.ApproxEqual(y.pt, tol)
		})
		prevT, prevPt := 0.0, seg.Start()
		for _, c := range cs {
			out = append(out, seg.Subsegment(prevT, c.t).withEnds(prevPt, c.pt))
			prevT, prevPt = c.t, c.pt
		}
		out = append(out, seg.Subsegment(prevT, 1).withEnds(prevPt, seg.End()))
	}
	return out
}

type pieceClass int

const (
	classOutside pieceClass = iota
	classInside
	// the piece is also a piece of the other path, running in the same
	// direction
	classShared
	// the piece is also a piece of the other path, running in the opposite
	// direction
	classSharedOpposite
)

func (c pieceClass) String() string {
	switch c {
	case classOutside:
		return "outside"
	case classInside:
		return "inside"
	case classShared:
		return "shared"
	case classSharedOpposite:
		return "sharedOpposite"
	default:
		return fmt.Sprintf("pieceClass(%d)", int(c))
	}
}

// classify classifies each piece relative to other, whose pieces are
// otherPieces.
func classify(pieces, otherPieces []PathSegment, other Path, tol float64) []pieceClass {
	out := make([]pieceClass, len(pieces))
	for i, piece := range pieces {
		if c, ok := matchShared(piece, otherPieces, tol); ok {
			out[i] = c
			continue
		}
		if other.Contains(piece.Eval(0.5)) {
			out[i] = classInside
		} else {
			out[i] = classOutside
		}
	}
	return out
}

// matchShared looks for a piece of the other path that covers the same
// points as piece.
func matchShared(piece PathSegment, others []PathSegment, tol float64) (pieceClass, bool) {
	start, end, mid := piece.Start(), piece.End(), piece.Eval(0.5)
	for _, o := range others {
		if !o.Eval(0.5).ApproxEqual(mid, tol) {
			continue
		}
		switch {
		case o.Start().ApproxEqual(start, tol) && o.End().ApproxEqual(end, tol):
			return classShared, true
		case o.Start().ApproxEqual(end, tol) && o.End().ApproxEqual(start, tol):
			return classSharedOpposite, true
		}
	}
	return 0, false
}

// selectPieces picks the pieces that bound the result of op. All returned
// pieces are oriented so that the result lies to their left.
func selectPieces(op Op, piecesA []PathSegment, classA []pieceClass, piecesB []PathSegment, classB []pieceClass) []PathSegment {
	var out []PathSegment
	for i, piece := range piecesA {
		var keep bool
		switch classA[i] {
		case classOutside:
			keep = op == OpUnion || op == OpDifference
		case classInside:
			keep = op == OpIntersection
		case classShared:
			keep = op == OpUnion || op == OpIntersection
		case classSharedOpposite:
			keep = op == OpDifference
		default:
			panic(fmt.Sprintf("unhandled piece class %s", classA[i]))
		}
		if keep {
			out = append(out, piece)
		}
	}
	for i, piece := range piecesB {
		switch classB[i] {
		case classOutside:
			if op == OpUnion {
				out = append(out, piece)
			}
		case classInside:
			switch op {
			case OpIntersection:
				out = append(out, piece)
			case OpDifference:
				out = append(out, piece.Reverse())
			}
		case classShared, classSharedOpposite:
			// emitted once, by the first path
		default:
			panic(fmt.Sprintf("unhandled piece class %s", classB[i]))
		}
	}
	return out
}

// stitch chains pieces into closed loops by joining pieces whose end points
// are within tol of each other. Pieces are preferably continued by a piece
// starting where the chain ends; failing that, a piece ending there is
// reversed. Chains that can't be closed are closed with a line.
func stitch(pieces []PathSegment, tol float64) [][]PathSegment {
	used := make([]bool, len(pieces))
	// next returns the unused piece closest to pt, preferring pieces that
	// start there over ones that end there.
	next := func(pt Point) (PathSegment, bool) {
		best, bestDist := -1, math.Inf(1)
		for k, piece := range pieces {
			if used[k] {
				continue
			}
			if d := piece.Start().Distance(pt); d <= tol && d < bestDist {
				best, bestDist = k, d
			}
		}
		if best != -1 {
			used[best] = true
			return pieces[best], true
		}
		for k, piece := range pieces {
			if used[k] {
				continue
			}
			if d := piece.End().Distance(pt); d <= tol && d < bestDist {
				best, bestDist = k, d
			}
		}
		if best != -1 {
			used[best] = true
			return pieces[best].Reverse(), true
		}
		return PathSegment{}, false
	}

	var loops [][]PathSegment
	for i, first := range pieces {
		if used[i] {
			continue
		}
		used[i] = true
		start := first.Start()
		loop := []PathSegment{first}
		end := first.End()
		for !end.ApproxEqual(start, tol) {
			piece, ok := next(end)
			if !ok {
				Logger().Debug("closing open chain of pieces", "pieces", len(loop), "gap", end.Distance(start))
				loop = append(loop, Line{end, start}.Seg())
				break
			}
			// remove gaps within tolerance
			loop = append(loop, piece.withEnds(end, piece.End()))
			end = piece.End()
		}
		last := loop[len(loop)-1]
		loop[len(loop)-1] = last.withEnds(last.Start(), start)
		loops = append(loops, loop)
	}
	return loops
}

// assemble turns loops into paths. Loops with negative area are holes and are
// attached to the smallest loop with positive area that contains them. Loops
// without area are dropped.
func assemble(loops [][]PathSegment) []Path {
	type outer struct {
		path Path
		area float64
	}
	var outers []outer
	var holes []subpath
	for _, loop := range loops {
		sp := subpath{segs: loop, start: loop[0].Start(), closed: true}
		switch area := sp.area(); {
		case area > 0:
			var p Path
			p.pushSubpath(sp)
			outers = append(outers, outer{p, area})
		case area < 0:
			holes = append(holes, sp)
		}
	}
	for _, hole := range holes {
		probe := hole.segs[0].Eval(0.5)
		best := -1
		for k, o := range outers {
			if o.path.Contains(probe) && (best == -1 || o.area < outers[best].area) {
				best = k
			}
		}
		if best == -1 {
			// A hole without an outer boundary encloses a region in its own
			// right.
			var p Path
			p.pushSubpath(hole.reverse())
			outers = append(outers, outer{p, -hole.area()})
			continue
		}
		outers[best].path.pushSubpath(hole)
	}
	out := make([]Path, len(outers))
	for i, o := range outers {
		out[i] = o.path
	}
	return out
}
