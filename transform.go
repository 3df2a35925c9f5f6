package softrast

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/softrast/internal/raster"
)

// Vertex is a screen-space vertex: X and Y in pixels (origin top-left, y
// down), Z the normalized depth and W the clip-space w retained for
// perspective-correct interpolation.
type Vertex = raster.Vertex

// Camera describes a symmetric perspective frustum.
type Camera struct {
	FOV  float64 // vertical field of view in radians
	Near float64
	Far  float64
}

// DefaultCamera returns a 70 degree camera with near 0.1 and far 1000.
func DefaultCamera() Camera {
	return Camera{FOV: mgl64.DegToRad(70), Near: 0.1, Far: 1000}
}

// Perspective returns the projection matrix for the given aspect ratio.
func (c Camera) Perspective(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ScreenSpace maps normalized device coordinates to pixel coordinates of a
// width x height target: y is flipped so that +y points up in NDC and down
// on screen, then x and y are shifted by 1 and scaled by half the size.
func ScreenSpace(width, height int) mgl64.Mat4 {
	hw, hh := float64(width)/2, float64(height)/2
	return mgl64.Scale3D(hw, hh, 1).
		Mul4(mgl64.Translate3D(1, 1, 0)).
		Mul4(mgl64.Scale3D(1, -1, 1))
}

// Orbit returns a model matrix that spins geometry by angle radians around
// the y axis and pushes it distance units in front of the camera.
func Orbit(angle, distance float64) mgl64.Mat4 {
	return mgl64.Translate3D(0, 0, -distance).Mul4(mgl64.HomogRotate3DY(angle))
}

// Transform is the combined model -> perspective -> screen-space matrix.
type Transform struct {
	m mgl64.Mat4
}

// NewTransform builds ScreenSpace * Perspective * model for a width x height
// target.
func NewTransform(cam Camera, width, height int, model mgl64.Mat4) Transform {
	aspect := float64(width) / float64(height)
	return Transform{
		m: ScreenSpace(width, height).Mul4(cam.Perspective(aspect)).Mul4(model),
	}
}

// Matrix returns the combined matrix.
func (t Transform) Matrix() mgl64.Mat4 {
	return t.m
}

// Project transforms p to clip space and divides x, y and z by w. W is kept
// as the clip-space w. Points at or behind the eye (w <= 0) are not clipped
// and yield meaningless coordinates.
func (t Transform) Project(p mgl64.Vec3) Vertex {
	c := t.m.Mul4x1(p.Vec4(1))
	w := c.W()
	return Vertex{X: c.X() / w, Y: c.Y() / w, Z: c.Z() / w, W: w}
}
