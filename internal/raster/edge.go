package raster

import "math"

// Edge represents one triangle edge for scanline rasterization.
//
// It tracks the edge's x intersection at the current scanline and, in
// lockstep, the attribute values at that intersection. Rows are sampled at
// integer y starting at the first row >= the start vertex (top-left fill
// convention), clipped to [yMin, yMax).
type Edge[T Attr[T]] struct {
	x        float64 // x at the current row
	dxOverDy float64 // change in x per scanline
	yStart   int
	yEnd     int

	attr        Interpolant[T]
	invW        Interpolant[Vec1]
	perspective bool
}

// NewEdge creates the edge from v[start] to v[end]. v must be sorted by
// ascending y and attr/invW must hold values in the same order. invW may be
// nil, in which case the edge carries no inverse-depth interpolant.
//
// A horizontal edge (equal y at both ends) gets zero slope and an empty
// row range.
func NewEdge[T Attr[T]](v *[3]Vertex, start, end, yMin, yMax int, attr *Varying[T], invW *Varying[Vec1]) Edge[T] {
	s, e := v[start], v[end]

	yDist := e.Y - s.Y
	var dxOverDy float64
	if yDist != 0 {
		dxOverDy = (e.X - s.X) / yDist
	}

	// Clamp in float: converting an out-of-range float to int is
	// implementation-defined.
	yStart := int(clampRange(math.Ceil(s.Y), float64(yMin), float64(yMax)))
	yEnd := int(clampRange(math.Ceil(e.Y), float64(yMin), float64(yMax)))

	// Pre-step to the first sampled row, which may be below ceil(s.Y) when
	// the edge starts above the viewport.
	yPrestep := float64(yStart) - s.Y
	x := s.X + yPrestep*dxOverDy
	prestep := Point{X: x - s.X, Y: yPrestep}

	edge := Edge[T]{
		x:        x,
		dxOverDy: dxOverDy,
		yStart:   yStart,
		yEnd:     yEnd,
		attr:     NewInterpolant(attr.Values[start], attr.Gradient, dxOverDy, prestep),
	}
	if invW != nil {
		edge.invW = NewInterpolant(invW.Values[start], invW.Gradient, dxOverDy, prestep)
		edge.perspective = true
	}
	return edge
}

// X returns the edge's x intersection at the current row.
func (e *Edge[T]) X() float64 { return e.x }

// YStart returns the first row covered by the edge.
func (e *Edge[T]) YStart() int { return e.yStart }

// YEnd returns one past the last row covered by the edge.
func (e *Edge[T]) YEnd() int { return e.yEnd }

// Attr returns the interpolated attribute at the current row.
func (e *Edge[T]) Attr() T { return e.attr.Value() }

// InvW returns the interpolated 1/w at the current row, or 1 when the edge
// carries no inverse-depth interpolant.
func (e *Edge[T]) InvW() float64 {
	if !e.perspective {
		return 1
	}
	return e.invW.Value()[0]
}

// Step advances x and all interpolants by one scanline.
func (e *Edge[T]) Step() {
	e.x += e.dxOverDy
	e.attr.Step()
	if e.perspective {
		e.invW.Step()
	}
}

// clampRange limits v to [lo, hi]. NaN maps to lo.
func clampRange(v, lo, hi float64) float64 {
	switch {
	case v >= hi:
		return hi
	case v >= lo:
		return v
	default:
		return lo
	}
}
