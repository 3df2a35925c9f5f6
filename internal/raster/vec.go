package raster

// Attr is a fixed-dimension attribute vector carried by a vertex and
// interpolated across a triangle. Implementations are small value types with
// elementwise arithmetic.
type Attr[T any] interface {
	Add(T) T
	Sub(T) T
	Scale(s float64) T
}

// Vec1 is a one-component attribute (inverse depth).
type Vec1 [1]float64

// Add returns v + w.
func (v Vec1) Add(w Vec1) Vec1 { return Vec1{v[0] + w[0]} }

// Sub returns v - w.
func (v Vec1) Sub(w Vec1) Vec1 { return Vec1{v[0] - w[0]} }

// Scale returns v * s.
func (v Vec1) Scale(s float64) Vec1 { return Vec1{v[0] * s} }

// Vec2 is a two-component attribute (texture coordinate).
type Vec2 [2]float64

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v[0] + w[0], v[1] + w[1]} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v[0] - w[0], v[1] - w[1]} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v[0] * s, v[1] * s} }

// Vec4 is a four-component attribute (RGBA color in [0,1]).
type Vec4 [4]float64

// Add returns v + w.
func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{v[0] + w[0], v[1] + w[1], v[2] + w[2], v[3] + w[3]}
}

// Sub returns v - w.
func (v Vec4) Sub(w Vec4) Vec4 {
	return Vec4{v[0] - w[0], v[1] - w[1], v[2] - w[2], v[3] - w[3]}
}

// Scale returns v * s.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// lerp returns a + (b-a)*t for any attribute type.
func lerp[T Attr[T]](a, b T, t float64) T {
	return a.Add(b.Sub(a).Scale(t))
}

// Point is a screen-space position (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Vertex is a screen-space vertex after perspective division.
// X and Y are pixel coordinates, Z is normalized depth and W is the
// clip-space w kept for perspective-correct interpolation.
type Vertex struct {
	X, Y, Z, W float64
}

// XY returns the vertex position projected onto the screen plane.
func (v Vertex) XY() Point {
	return Point{X: v.X, Y: v.Y}
}
