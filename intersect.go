package vecpath

import (
	"cmp"
	"slices"

	"golang.org/x/sync/errgroup"
)

// SegmentIntersection is a point where a segment of one path meets a segment of
// another path.
type SegmentIntersection struct {
	// SegA is the index of the segment in the first path's
	// [Path.Segments], and TA the parameter on that segment.
	SegA int
	TA   float64
	// SegB is the index of the segment in the second path's
	// [Path.Segments], and TB the parameter on that segment.
	SegB int
	TB   float64
	// Point is the position of the intersection.
	Point Point
	// Overlap is set for the two intersections that bound a stretch along
	// which the segments coincide.
	Overlap bool
}

// IntersectOptions controls [IntersectOpt].
type IntersectOptions struct {
	// Tolerance is the distance below which two points are considered equal.
	// Curves are subdivided until the control boxes of both pieces are no
	// larger than this, and intersections closer than this are merged.
	Tolerance float64
	// MaxDepth limits the number of times curves get subdivided. Branches
	// that reach the limit without converging are dropped.
	MaxDepth int
	// Workers is the number of segment pairs that are processed
	// concurrently. Values below 2 process all pairs on the calling
	// goroutine. The result doesn't depend on the number of workers.
	Workers int
}

// DefaultIntersectOptions are the options used by [Intersect].
var DefaultIntersectOptions = IntersectOptions{
	Tolerance: DefaultTolerance,
	MaxDepth:  32,
	Workers:   1,
}

func (opts IntersectOptions) withDefaults() IntersectOptions {
	if !(opts.Tolerance > 0) {
		opts.Tolerance = DefaultIntersectOptions.Tolerance
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultIntersectOptions.MaxDepth
	}
	opts.Workers = max(opts.Workers, 1)
	return opts
}

// Intersect returns the intersections between the segments of a and b, using
// [DefaultIntersectOptions].
func Intersect(a, b Path) []SegmentIntersection {
	return IntersectOpt(a, b, DefaultIntersectOptions)
}

// IntersectOpt returns the intersections between the segments of a and b.
//
// Pairs of lines are intersected analytically. Parallel lines don't
// intersect, unless they are collinear and overlap, in which case the
// overlapping stretch is reported as two intersections with Overlap set, one
// at each end. All other pairs are intersected by recursively subdividing
// both segments and discarding pairs of pieces whose control boxes don't
// overlap.
//
// Intersections within opts.Tolerance of each other are merged, keeping the
// first one found. The result is sorted by SegA and TA.
func IntersectOpt(a, b Path, opts IntersectOptions) []SegmentIntersection {
	opts = opts.withDefaults()
	hits := intersectSegments(a.Segments(), b.Segments(), opts, nil)
	hits = mergeIntersections(hits, opts.Tolerance)
	sortIntersections(hits)
	return hits
}

// intersectSegments intersects all pairs of segments for which skip, if
// non-nil, returns false. The result contains the hits of each pair, in order
// of the pairs, without merging hits of different pairs.
func intersectSegments(segsA, segsB []PathSegment, opts IntersectOptions, skip func(i, j int) bool) []SegmentIntersection {
	type pair struct{ i, j int }
	var pairs []pair
	boxesB := make([]Rect, len(segsB))
	for j, seg := range segsB {
		boxesB[j] = seg.ControlBox()
	}
	for i, sa := range segsA {
		boxA := sa.ControlBox()
		for j := range segsB {
			if skip != nil && skip(i, j) {
				continue
			}
			if !boxA.Overlaps(boxesB[j], opts.Tolerance) {
				continue
			}
			pairs = append(pairs, pair{i, j})
		}
	}

	results := make([][]SegmentIntersection, len(pairs))
	run := func(k int) {
		p := pairs[k]
		results[k] = intersectPair(segsA[p.i], segsB[p.j], p.i, p.j, opts)
	}
	if opts.Workers > 1 && len(pairs) > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for k := range pairs {
			g.Go(func() error {
				run(k)
				return nil
			})
		}
		// run never fails
		_ = g.Wait()
	} else {
		for k := range pairs {
			run(k)
		}
	}

	var out []SegmentIntersection
	for _, res := range results {
		out = append(out, res...)
	}
	return out
}

// mergeIntersections drops intersections that are within tol of an earlier
// one.
func mergeIntersections(hits []SegmentIntersection, tol float64) []SegmentIntersection {
	out := hits[:0:0]
	for _, hit := range hits {
		dup := slices.ContainsFunc(out, func(o SegmentIntersection) bool {
			return o.Point.ApproxEqual(hit.Point, tol)
		})
		if !dup {
			out = append(out, hit)
		}
	}
	return out
}

func sortIntersections(hits []SegmentIntersection) {
	slices.SortStableFunc(hits, func(a, b SegmentIntersection) int {
		if c := cmp.Compare(a.SegA, b.SegA); c != 0 {
			return c
		}
		return cmp.Compare(a.TA, b.TA)
	})
}

// intersectPair intersects two segments. i and j are stored in the results.
func intersectPair(a, b PathSegment, i, j int, opts IntersectOptions) []SegmentIntersection {
	tol := opts.Tolerance
	if a.Kind == LineKind && b.Kind == LineKind {
		hits, n := a.Line().intersectLine(b.Line(), tol)
		out := make([]SegmentIntersection, n)
		for k, hit := range hits[:n] {
			out[k] = SegmentIntersection{SegA: i, TA: hit.t, SegB: j, TB: hit.u, Point: hit.pt, Overlap: hit.overlap}
		}
		return out
	}

	if same, opposite := a.sameAs(b, tol); same {
		return []SegmentIntersection{
			{SegA: i, TA: 0, SegB: j, TB: 0, Point: a.Start(), Overlap: true},
			{SegA: i, TA: 1, SegB: j, TB: 1, Point: a.End(), Overlap: true},
		}
	} else if opposite {
		return []SegmentIntersection{
			{SegA: i, TA: 0, SegB: j, TB: 1, Point: a.Start(), Overlap: true},
			{SegA: i, TA: 1, SegB: j, TB: 0, Point: a.End(), Overlap: true},
		}
	}

	ix := &bisector{
		tol:      tol,
		maxDepth: opts.MaxDepth,
		budget:   1 << 16,
	}
	ix.recurse(a, 0, 1, b, 0, 1, 0)
	if ix.capped > 0 || ix.budget <= 0 {
		Logger().Debug("intersection subdivision limit reached",
			"segA", i, "segB", j,
			"droppedBranches", ix.capped,
			"budgetExhausted", ix.budget <= 0)
	}

	clusters := ix.clusters()
	out := make([]SegmentIntersection, 0, len(clusters))
	for _, c := range clusters {
		ta, tb := c.ta, c.tb
		pt := a.Eval(ta).Midpoint(b.Eval(tb))
		// Snap to end points so that hits at shared vertices carry exact
		// parameters.
		switch {
		case pt.ApproxEqual(a.Start(), tol):
			ta, pt = 0, a.Start()
		case pt.ApproxEqual(a.End(), tol):
			ta, pt = 1, a.End()
		}
		switch {
		case pt.ApproxEqual(b.Start(), tol):
			tb = 0
		case pt.ApproxEqual(b.End(), tol):
			tb = 1
		}
		out = append(out, SegmentIntersection{SegA: i, TA: ta, SegB: j, TB: tb, Point: pt})
	}
	return out
}

// bisector intersects two segments by recursive subdivision.
type bisector struct {
	tol      float64
	maxDepth int
	// budget is the number of box tests left.
	budget int
	// capped counts branches dropped at maxDepth.
	capped int
	leaves []bisectLeaf
}

// bisectLeaf is a pair of converged pieces.
type bisectLeaf struct {
	a0, a1 float64
	b0, b1 float64
	// dist is the distance between the midpoints of the two pieces.
	dist float64
}

func (ix *bisector) recurse(a PathSegment, a0, a1 float64, b PathSegment, b0, b1 float64, depth int) {
	if ix.budget <= 0 {
		return
	}
	ix.budget--
	boxA, boxB := a.ControlBox(), b.ControlBox()
	if !boxA.Overlaps(boxB, ix.tol) {
		return
	}
	smallA := boxA.Diagonal() <= ix.tol
	smallB := boxB.Diagonal() <= ix.tol
	if smallA && smallB {
		ix.leaves = append(ix.leaves, bisectLeaf{
			a0: a0, a1: a1,
			b0: b0, b1: b1,
			dist: a.Eval(0.5).Distance(b.Eval(0.5)),
		})
		return
	}
	if depth >= ix.maxDepth {
		ix.capped++
		return
	}
	am := 0.5 * (a0 + a1)
	bm := 0.5 * (b0 + b1)
	switch {
	case smallA:
		bl, br := b.Subdivide()
		ix.recurse(a, a0, a1, bl, b0, bm, depth+1)
		ix.recurse(a, a0, a1, br, bm, b1, depth+1)
	case smallB:
		al, ar := a.Subdivide()
		ix.recurse(al, a0, am, b, b0, b1, depth+1)
		ix.recurse(ar, am, a1, b, b0, b1, depth+1)
	default:
		al, ar := a.Subdivide()
		bl, br := b.Subdivide()
		ix.recurse(al, a0, am, bl, b0, bm, depth+1)
		ix.recurse(al, a0, am, br, bm, b1, depth+1)
		ix.recurse(ar, am, a1, bl, b0, bm, depth+1)
		ix.recurse(ar, am, a1, br, bm, b1, depth+1)
	}
}

type bisectCluster struct {
	a0, a1, b0, b1 float64
	ta, tb         float64
	dist           float64
}

// clusters groups leaves whose parameter ranges touch on both segments. Each
// group is a single intersection, represented by the leaf whose pieces are
// closest to each other.
func (ix *bisector) clusters() []bisectCluster {
	leaves := ix.leaves
	slices.SortFunc(leaves, func(x, y bisectLeaf) int {
		if c := cmp.Compare(x.a0, y.a0); c != 0 {
			return c
		}
		return cmp.Compare(x.b0, y.b0)
	})
	var out []bisectCluster
	for _, l := range leaves {
		idx := slices.IndexFunc(out, func(c bisectCluster) bool {
			return l.a0 <= c.a1 && l.a1 >= c.a0 && l.b0 <= c.b1 && l.b1 >= c.b0
		})
		if idx == -1 {
			out = append(out, bisectCluster{
				a0: l.a0, a1: l.a1, b0: l.b0, b1: l.b1,
				ta: 0.5 * (l.a0 + l.a1), tb: 0.5 * (l.b0 + l.b1),
				dist: l.dist,
			})
			continue
		}
		c := &out[idx]
		c.a0, c.a1 = min(c.a0, l.a0), max(c.a1, l.a1)
		c.b0, c.b1 = min(c.b0, l.b0), max(c.b1, l.b1)
		if l.dist < c.dist {
			c.ta, c.tb = 0.5*(l.a0+l.a1), 0.5*(l.b0+l.b1)
			c.dist = l.dist
		}
	}
	return out
}

// SelfIntersects reports whether any two segments of the path intersect,
// other than neighboring segments meeting at their shared point. Segments of
// different subpaths that touch count as intersecting.
func (p Path) SelfIntersects() bool {
	return p.selfIntersects(DefaultIntersectOptions)
}

func (p Path) selfIntersects(opts IntersectOptions) bool {
	opts = opts.withDefaults()
	type ref struct {
		sub, idx, n int
		closed      bool
	}
	var segs []PathSegment
	var refs []ref
	for si, sp := range p.subpaths() {
		for k, seg := range sp.segs {
			segs = append(segs, seg)
			refs = append(refs, ref{sub: si, idx: k, n: len(sp.segs), closed: sp.closed})
		}
	}
	// shared returns the points shared by segments i and j if they are
	// neighbors. The first and last segment of a closed subpath are
	// neighbors as well.
	shared := func(i, j int) []Point {
		ri, rj := refs[i], refs[j]
		if ri.sub != rj.sub {
			return nil
		}
		var vs []Point
		if rj.idx == ri.idx+1 {
			vs = append(vs, segs[i].End())
		}
		if ri.closed && ri.idx == 0 && rj.idx == rj.n-1 {
			vs = append(vs, segs[i].Start())
		}
		return vs
	}
	skip := func(i, j int) bool { return j <= i }
	for _, hit := range intersectSegments(segs, segs, opts, skip) {
		atVertex := slices.ContainsFunc(shared(hit.SegA, hit.SegB), func(v Point) bool {
			return hit.Point.ApproxEqual(v, opts.Tolerance)
		})
		if !atVertex {
			return true
		}
	}
	return false
}
