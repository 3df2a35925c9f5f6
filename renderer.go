package softrast

import (
	"errors"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/softrast/internal/raster"
	"github.com/gogpu/softrast/mesh"
)

// ErrNilTarget is returned by NewRenderer when no target is given.
var ErrNilTarget = errors.New("softrast: nil target")

// Target is the pixel sink the renderer writes into. The renderer only
// plots inside [0, Width) x [0, Height) and never reads pixels back.
type Target interface {
	Width() int
	Height() int
	Plot(c color.RGBA, x, y int)
}

// Sampler maps a normalized texture coordinate to a color.
// *texture.Texture implements Sampler.
type Sampler interface {
	Sample(u, v float64) color.RGBA
}

// Stats counts the work done by one or more draw calls.
type Stats struct {
	Triangles int // submitted
	Culled    int // back-facing
	Skipped   int // degenerate or behind the camera
	Rows      int
	Pixels    int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Triangles += o.Triangles
	s.Culled += o.Culled
	s.Skipped += o.Skipped
	s.Rows += o.Rows
	s.Pixels += o.Pixels
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("triangles", s.Triangles),
		slog.Int("culled", s.Culled),
		slog.Int("skipped", s.Skipped),
		slog.Int("rows", s.Rows),
		slog.Int("pixels", s.Pixels),
	)
}

// Renderer rasterizes textured triangles into a Target.
//
// The texture is shared read-only for the lifetime of the renderer. A
// Renderer is not safe for concurrent use; draws complete synchronously in
// submission order, with no depth buffer.
type Renderer struct {
	target Target
	tex    Sampler
	opts   rendererOptions
}

// NewRenderer creates a renderer drawing into target with texture tex.
func NewRenderer(target Target, tex Sampler, opts ...Option) (*Renderer, error) {
	if target == nil || tex == nil {
		return nil, ErrNilTarget
	}
	if target.Width() <= 0 || target.Height() <= 0 {
		return nil, ErrInvalidSize
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{target: target, tex: tex, opts: o}, nil
}

// Target returns the render target.
func (r *Renderer) Target() Target {
	return r.target
}

// Clear plots the clear color over the whole target.
func (r *Renderer) Clear() {
	if c, ok := r.target.(interface{ Clear(color.RGBA) }); ok {
		c.Clear(r.opts.clearColor)
		return
	}
	for y := range r.target.Height() {
		for x := range r.target.Width() {
			r.target.Plot(r.opts.clearColor, x, y)
		}
	}
}

// FrontArea returns half the signed screen-space area of v0, v1, v2,
// positive when the triangle winds counter-clockwise as seen on screen
// (y pointing down).
func FrontArea(v [3]Vertex) float64 {
	ax, ay := v[2].X-v[0].X, v[2].Y-v[0].Y
	bx, by := v[1].X-v[0].X, v[1].Y-v[0].Y
	return (ax*by - bx*ay) * 0.5
}

// DrawTriangle rasterizes one screen-space triangle with per-vertex texture
// coordinates.
func (r *Renderer) DrawTriangle(v [3]Vertex, uv [3]mgl64.Vec2) Stats {
	s := r.drawTriangle(v, uv)
	if s.Skipped > 0 {
		Logger().Warn("triangle skipped", "vertices", v)
	}
	return s
}

func (r *Renderer) drawTriangle(v [3]Vertex, uv [3]mgl64.Vec2) Stats {
	s := Stats{Triangles: 1}
	if r.opts.culling && FrontArea(v) <= 0 {
		s.Culled++
		return s
	}

	cov := raster.DrawTextured(r.target, r.tex, v,
		[3]raster.Vec2{raster.Vec2(uv[0]), raster.Vec2(uv[1]), raster.Vec2(uv[2])},
		raster.Options{Perspective: r.opts.perspective, ClampUV: r.opts.clampUV})
	if cov.Skip != raster.NotSkipped {
		s.Skipped++
	}
	s.Rows, s.Pixels = cov.Rows, cov.Pixels
	return s
}

// DrawMesh projects every vertex of m with xf and rasterizes its triangles
// in index order. Later triangles overwrite earlier ones. An invalid mesh
// draws nothing.
func (r *Renderer) DrawMesh(m *mesh.Mesh, xf Transform) Stats {
	if err := m.Validate(); err != nil {
		Logger().Error("draw mesh", "err", err)
		return Stats{}
	}

	projected := make([]Vertex, len(m.Positions))
	for i, p := range m.Positions {
		projected[i] = xf.Project(p)
	}

	var stats Stats
	for i := range m.TriangleCount() {
		tri := m.Triangle(i)
		v := [3]Vertex{projected[tri[0]], projected[tri[1]], projected[tri[2]]}
		uv := [3]mgl64.Vec2{m.UVs[tri[0]], m.UVs[tri[1]], m.UVs[tri[2]]}
		stats.Add(r.drawTriangle(v, uv))
	}

	if stats.Skipped > 0 {
		Logger().Warn("triangles skipped", "count", stats.Skipped)
	}
	Logger().Debug("draw mesh", "stats", stats)
	return stats
}

// DrawColored rasterizes one screen-space triangle with per-vertex RGBA
// colors in [0,1], interpolated across the face.
func (r *Renderer) DrawColored(v [3]Vertex, colors [3]mgl64.Vec4) Stats {
	s := Stats{Triangles: 1}
	if r.opts.culling && FrontArea(v) <= 0 {
		s.Culled++
		return s
	}
	cov := raster.DrawColored(r.target, v,
		[3]raster.Vec4{raster.Vec4(colors[0]), raster.Vec4(colors[1]), raster.Vec4(colors[2])},
		raster.Options{Perspective: r.opts.perspective})
	if cov.Skip != raster.NotSkipped {
		s.Skipped++
	}
	s.Rows, s.Pixels = cov.Rows, cov.Pixels
	return s
}
