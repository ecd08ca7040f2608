package vecpath

import (
	"math"
	"slices"
)

// lengthSamples is the number of samples per segment used to measure arc
// length for morphing.
const lengthSamples = 32

// SignificantPoints samples a path for morphing. It returns the start point
// of every segment, and between them points that divide each segment into
// round(length/spacing) pieces of roughly equal arc length. The end point of
// open subpaths is included. Closed subpaths don't repeat their start point.
// Consecutive duplicate points are removed.
//
// A non-positive spacing adds no points between segment starts.
func SignificantPoints(p Path, spacing float64) []Point {
	var pts []Point
	for _, sp := range p.subpaths() {
		for _, seg := range sp.segs {
			pts = append(pts, seg.Start())
			n := 1
			if spacing > 0 {
				l := seg.ApproxLength(lengthSamples)
				if r := math.Round(l / spacing); r > 1 && !math.IsInf(r, 0) {
					n = int(r)
				}
			}
			pts = appendEquidistant(pts, seg, n)
		}
		if !sp.closed {
			pts = append(pts, sp.end())
		}
	}
	return slices.Compact(pts)
}

// appendEquidistant appends the n-1 points that split seg into n pieces of
// roughly equal arc length.
func appendEquidistant(pts []Point, seg PathSegment, n int) []Point {
	if n <= 1 {
		return pts
	}
	if seg.Kind == LineKind {
		for k := 1; k < n; k++ {
			pts = append(pts, seg.Eval(float64(k)/float64(n)))
		}
		return pts
	}
	// cumulative lengths of a fine polyline approximation
	m := lengthSamples * n
	cum := make([]float64, m+1)
	prev := seg.Start()
	for i := 1; i <= m; i++ {
		pt := seg.Eval(float64(i) / float64(m))
		cum[i] = cum[i-1] + prev.Distance(pt)
		prev = pt
	}
	total := cum[m]
	if total == 0 {
		return pts
	}
	i := 0
	for k := 1; k < n; k++ {
		target := total * float64(k) / float64(n)
		for i < m && cum[i+1] < target {
			i++
		}
		frac := 0.0
		if d := cum[i+1] - cum[i]; d > 0 {
			frac = (target - cum[i]) / d
		}
		pts = append(pts, seg.Eval((float64(i)+frac)/float64(m)))
	}
	return pts
}

// Match pairs a point of the first sequence with a point of the second one.
// A or B is -1 if the entry has no point in that sequence.
type Match struct {
	A, B int
}

// HasA reports whether the entry has a point in the first sequence.
func (m Match) HasA() bool { return m.A >= 0 }

// HasB reports whether the entry has a point in the second sequence.
func (m Match) HasB() bool { return m.B >= 0 }

// Correspondence is an alignment of two point sequences. Taken in order, the
// non-negative A values enumerate the first sequence and the non-negative B
// values the second one.
type Correspondence []Match

// Align computes the cheapest alignment of two point sequences, where pairing
// two points costs their distance and leaving a point unpaired costs
// gapPenalty. Ties prefer pairing over leaving points unpaired.
//
// It takes O(len(a)·len(b)) time and memory.
func Align(a, b []Point, gapPenalty float64) Correspondence {
	n, m := len(a), len(b)
	w := m + 1
	cost := make([]float64, (n+1)*w)
	for i := 1; i <= n; i++ {
		cost[i*w] = float64(i) * gapPenalty
	}
	for j := 1; j <= m; j++ {
		cost[j] = float64(j) * gapPenalty
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost[i*w+j] = min(
				cost[(i-1)*w+j-1]+a[i-1].Distance(b[j-1]),
				cost[(i-1)*w+j]+gapPenalty,
				cost[i*w+j-1]+gapPenalty,
			)
		}
	}

	out := make(Correspondence, 0, max(n, m))
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && cost[i*w+j] == cost[(i-1)*w+j-1]+a[i-1].Distance(b[j-1]):
			i--
			j--
			out = append(out, Match{i, j})
		case i > 0 && (j == 0 || cost[i*w+j] == cost[(i-1)*w+j]+gapPenalty):
			i--
			out = append(out, Match{i, -1})
		default:
			j--
			out = append(out, Match{-1, j})
		}
	}
	slices.Reverse(out)
	return out
}

// MorphOptions controls [NewMorphOpt].
type MorphOptions struct {
	// Resolution is the number of points sampled along the longer of the
	// two paths. Values below 1 use the default.
	Resolution int
	// GapPenalty is the cost of leaving a point unpaired when aligning the
	// two paths. Zero uses the spacing between sampled points.
	GapPenalty float64
	// Tension is passed to [SmoothPath]. Zero connects the points with
	// straight lines. Negative values use the default.
	Tension float64
}

// DefaultMorphOptions are the options used by [NewMorph].
var DefaultMorphOptions = MorphOptions{
	Resolution: 24,
	Tension:    1,
}

// Morph interpolates between two paths.
type Morph struct {
	a, b    []Point
	corr    Correspondence
	closed  bool
	tension float64
	// anchor holds, for entries with a point in only one sequence, the index
	// of the point in the other sequence that the unpaired point moves
	// towards or grows from.
	anchor []int

	from, to Path
}

// NewMorph prepares a morph from a to b using [DefaultMorphOptions].
func NewMorph(a, b Path) (*Morph, error) {
	return NewMorphOpt(a, b, DefaultMorphOptions)
}

// NewMorphOpt prepares a morph from a to b.
//
// Both paths are sampled with [SignificantPoints] and the samples aligned
// with [Align]. Both paths must consist of exactly one subpath with at least
// one segment. Otherwise, a [*PreconditionError] wrapping [ErrEmptyPath] or
// [ErrMultipleSubpaths] is returned. The intermediate paths are closed if
// both inputs are.
//
// The alignment takes time and memory proportional to the product of the
// numbers of samples, which are bounded by the resolution plus the number of
// segments.
func NewMorphOpt(a, b Path, opts MorphOptions) (*Morph, error) {
	for _, p := range [...]Path{a, b} {
		switch n := p.NumSubpaths(); {
		case n == 0 || len(p.Segments()) == 0:
			return nil, precondition("NewMorph", ErrEmptyPath, "")
		case n > 1:
			return nil, precondition("NewMorph", ErrMultipleSubpaths, "%d subpaths", n)
		}
	}
	if opts.Resolution < 1 {
		opts.Resolution = DefaultMorphOptions.Resolution
	}
	if opts.Tension < 0 {
		opts.Tension = DefaultMorphOptions.Tension
	}
	spacing := max(a.ApproxLength(lengthSamples), b.ApproxLength(lengthSamples)) / float64(opts.Resolution)
	gap := opts.GapPenalty
	if gap == 0 {
		gap = spacing
	}

	m := &Morph{
		a:       SignificantPoints(a, spacing),
		b:       SignificantPoints(b, spacing),
		closed:  a.Closed() && b.Closed(),
		tension: opts.Tension,
	}
	m.corr = Align(m.a, m.b, gap)
	m.anchor = anchors(m.corr)
	m.from = SmoothPath(m.positions(0), m.closed, m.tension)
	m.to = SmoothPath(m.positions(1), m.closed, m.tension)

	Logger().Debug("morph alignment",
		"pointsA", len(m.a),
		"pointsB", len(m.b),
		"entries", len(m.corr),
		"spacing", spacing)
	return m, nil
}

// anchors finds, for every entry with a point in only one sequence, the
// nearest preceding entry with a point in the other sequence, or the nearest
// following one if there is none before it.
func anchors(corr Correspondence) []int {
	out := make([]int, len(corr))
	lastA, lastB := -1, -1
	for k, e := range corr {
		if e.HasA() && !e.HasB() {
			out[k] = lastB
		} else if !e.HasA() && e.HasB() {
			out[k] = lastA
		}
		if e.HasA() {
			lastA = e.A
		}
		if e.HasB() {
			lastB = e.B
		}
	}
	nextA, nextB := -1, -1
	for k := len(corr) - 1; k >= 0; k-- {
		e := corr[k]
		if out[k] == -1 {
			if e.HasA() && !e.HasB() {
				out[k] = nextB
			} else if !e.HasA() && e.HasB() {
				out[k] = nextA
			}
		}
		if e.HasA() {
			nextA = e.A
		}
		if e.HasB() {
			nextB = e.B
		}
	}
	return out
}

// Correspondence returns the alignment of the sampled points.
func (m *Morph) Correspondence() Correspondence {
	return slices.Clone(m.corr)
}

// positions returns the interpolated points at t, without consecutive
// duplicates.
func (m *Morph) positions(t float64) []Point {
	pts := make([]Point, 0, len(m.corr))
	for k, e := range m.corr {
		var from, to Point
		switch {
		case e.HasA() && e.HasB():
			from, to = m.a[e.A], m.b[e.B]
		case e.HasA():
			from, to = m.a[e.A], m.b[m.anchor[k]]
		default:
			from, to = m.a[m.anchor[k]], m.b[e.B]
		}
		pts = append(pts, from.blend(to, t))
	}
	return slices.Compact(pts)
}

// At returns the intermediate path at t, which must be in [0, 1]. Otherwise,
// a [*PreconditionError] wrapping [ErrParameterRange] is returned.
//
// Paired points move on straight lines. Unpaired points of the first path
// move towards the point of the second path paired with their nearest
// neighbor, and unpaired points of the second path grow out of the
// corresponding point of the first path. The points are connected by
// [SmoothPath].
func (m *Morph) At(t float64) (Path, error) {
	switch t {
	case 0:
		return m.from.Clone(), nil
	case 1:
		return m.to.Clone(), nil
	}
	if !(t >= 0 && t <= 1) {
		return Path{}, precondition("Morph.At", ErrParameterRange, "t = %g", t)
	}
	return SmoothPath(m.positions(t), m.closed, m.tension), nil
}

// From returns the smoothed reconstruction of the first path, which is the
// path at t = 0.
func (m *Morph) From() Path {
	return m.from.Clone()
}

// To returns the smoothed reconstruction of the second path, which is the
// path at t = 1.
func (m *Morph) To() Path {
	return m.to.Clone()
}
