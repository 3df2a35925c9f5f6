package raster

import "math"

// DegenerateEpsilon is the smallest |2*area| a triangle may have before its
// gradients are considered undefined.
const DegenerateEpsilon = 1e-9

// Gradient is the constant rate of change of an attribute across a planar
// triangle, per unit x and per unit y.
type Gradient[T Attr[T]] struct {
	DX, DY T
}

// GradientDenominator returns D = (P1.x-P2.x)*(P0.y-P2.y) - (P0.x-P2.x)*(P1.y-P2.y),
// twice the signed area of the triangle p0, p1, p2.
func GradientDenominator(p [3]Point) float64 {
	return (p[1].X-p[2].X)*(p[0].Y-p[2].Y) - (p[0].X-p[2].X)*(p[1].Y-p[2].Y)
}

// IsDegenerate reports whether the triangle has (near) zero area.
func IsDegenerate(p [3]Point) bool {
	return math.Abs(GradientDenominator(p)) < DegenerateEpsilon
}

// NewGradient derives the attribute gradient from three positions and the
// attribute values at those positions, in the same caller-supplied order.
// ok is false for a degenerate triangle, in which case the gradient is zero.
func NewGradient[T Attr[T]](p [3]Point, a [3]T) (g Gradient[T], ok bool) {
	d := GradientDenominator(p)
	if math.Abs(d) < DegenerateEpsilon {
		return g, false
	}
	inv := 1 / d

	a12 := a[1].Sub(a[2])
	a02 := a[0].Sub(a[2])

	g.DX = a12.Scale(p[0].Y - p[2].Y).Sub(a02.Scale(p[1].Y - p[2].Y)).Scale(inv)
	g.DY = a12.Scale(p[0].X - p[2].X).Sub(a02.Scale(p[1].X - p[2].X)).Scale(-inv)
	return g, true
}

// At evaluates the attribute at q given its value at origin.
func (g Gradient[T]) At(value T, origin, q Point) T {
	return value.Add(g.DX.Scale(q.X - origin.X)).Add(g.DY.Scale(q.Y - origin.Y))
}

// Varying bundles a triangle's per-vertex attribute values with their
// gradient. It is computed once per triangle and shared by its edges.
type Varying[T Attr[T]] struct {
	Values   [3]T
	Gradient Gradient[T]
}

// NewVarying computes the gradient for values over positions p.
// ok is false for a degenerate triangle.
func NewVarying[T Attr[T]](p [3]Point, values [3]T) (Varying[T], bool) {
	g, ok := NewGradient(p, values)
	return Varying[T]{Values: values, Gradient: g}, ok
}

// Interpolant walks an attribute down an edge one scanline at a time.
type Interpolant[T Attr[T]] struct {
	value T
	step  T
}

// NewInterpolant starts at base, offset by the gradient dotted with the
// sub-pixel prestep, and advances by dA/dy + dA/dx*dxOverDy per row so the
// value tracks the edge's own slope.
func NewInterpolant[T Attr[T]](base T, g Gradient[T], dxOverDy float64, prestep Point) Interpolant[T] {
	return Interpolant[T]{
		value: base.Add(g.DX.Scale(prestep.X)).Add(g.DY.Scale(prestep.Y)),
		step:  g.DY.Add(g.DX.Scale(dxOverDy)),
	}
}

// Value returns the attribute at the current row.
func (it *Interpolant[T]) Value() T {
	return it.value
}

// Step advances one row.
func (it *Interpolant[T]) Step() {
	it.value = it.value.Add(it.step)
}
