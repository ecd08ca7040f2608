package vecpath

// QuadBez is a quadratic Bézier curve.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// Raise raises the order by 1, returning a cubic Bézier segment that exactly
// represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

// SplitAt splits the curve at t using de Casteljau's algorithm.
func (q QuadBez) SplitAt(t float64) (QuadBez, QuadBez) {
	p01 := q.P0.Lerp(q.P1, t)
	p12 := q.P1.Lerp(q.P2, t)
	pm := p01.Lerp(p12, t)
	return QuadBez{q.P0, p01, pm}, QuadBez{pm, p12, q.P2}
}

// Deriv returns the derivative at t.
func (q QuadBez) Deriv(t float64) Vec2 {
	return q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t).Mul(2)
}

func (q QuadBez) Extrema() ([MaxExtrema]float64, int) {
	// The derivative of a quadratic is a line; each coordinate has at most one
	// root.
	var out [MaxExtrema]float64
	var n int
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)
	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			out[n] = t
			n++
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			if n == 1 && t < out[0] {
				out[0], t = t, out[0]
			}
			if n == 0 || t != out[0] {
				out[n] = t
				n++
			}
		}
	}
	return out, n
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{
		P0: q.P0.Transform(aff),
		P1: q.P1.Transform(aff),
		P2: q.P2.Transform(aff),
	}
}

// SignedArea returns the signed area under the curve, see [Path.Area].
func (q QuadBez) SignedArea() float64 {
	return (q.P0.X*(2.0*q.P1.Y+q.P2.Y) + 2.0*q.P1.X*(q.P2.Y-q.P0.Y) - q.P2.X*(q.P0.Y+2.0*q.P1.Y)) * (1.0 / 6.0)
}

func (q QuadBez) Seg() PathSegment {
	return PathSegment{Kind: QuadKind, P0: q.P0, P1: q.P1, P2: q.P2}
}
