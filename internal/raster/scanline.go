package raster

import (
	"image/color"
	"math"
)

// Sink receives rasterized pixels. Width and Height bound the rows and
// columns the rasterizer writes; Plot is only called inside those bounds.
type Sink interface {
	Width() int
	Height() int
	Plot(c color.RGBA, x, y int)
}

// Sampler maps a normalized texture coordinate to a color.
type Sampler interface {
	Sample(u, v float64) color.RGBA
}

// Options selects the scanline engine variant.
type Options struct {
	// Perspective interpolates attributes divided by w together with 1/w and
	// divides per pixel. When false attributes are interpolated linearly in
	// screen space.
	Perspective bool

	// ClampUV clamps texture coordinates to [0,1] before sampling.
	ClampUV bool
}

// SkipReason tells why a triangle produced no output before scanning.
type SkipReason uint8

const (
	// NotSkipped means the triangle was scanned.
	NotSkipped SkipReason = iota

	// SkipDegenerate marks a triangle with (near) zero screen-space area.
	SkipDegenerate

	// SkipBehindCamera marks a perspective triangle with a vertex at w <= 0.
	SkipBehindCamera
)

// String returns a string representation of the skip reason.
func (r SkipReason) String() string {
	switch r {
	case NotSkipped:
		return "none"
	case SkipDegenerate:
		return "degenerate"
	case SkipBehindCamera:
		return "behind-camera"
	default:
		return "unknown"
	}
}

// Coverage reports what one triangle draw produced.
type Coverage struct {
	Rows   int // scanlines walked inside the viewport
	Pixels int // pixels plotted
	Skip   SkipReason
}

// SignedArea returns half the 2D cross product of (a-b) and (a-c).
// Called as SignedArea(v0, v2, v1) on y-sorted vertices, a non-negative
// result means the long edge v0->v2 is the right boundary.
func SignedArea(a, b, c Point) float64 {
	ux, uy := a.X-b.X, a.Y-b.Y
	vx, vy := a.X-c.X, a.Y-c.Y
	return (ux*vy - vx*uy) * 0.5
}

// SortByY returns vertex indices ordered by ascending y. Ties keep their
// input order.
func SortByY(v [3]Vertex) [3]int {
	idx := [3]int{0, 1, 2}
	for i := 1; i < 3; i++ {
		key := idx[i]
		j := i - 1
		for j >= 0 && v[idx[j]].Y > v[key].Y {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = key
	}
	return idx
}

// DrawTextured rasterizes a texture-mapped triangle into dst.
func DrawTextured(dst Sink, tex Sampler, v [3]Vertex, uv [3]Vec2, opts Options) Coverage {
	return scanTriangle(dst, v, uv, opts.Perspective, func(a Vec2) color.RGBA {
		u, w := a[0], a[1]
		if opts.ClampUV {
			u, w = clamp01(u), clamp01(w)
		}
		return tex.Sample(u, w)
	})
}

// DrawColored rasterizes a Gouraud-shaded triangle into dst. Colors are RGBA
// in [0,1].
func DrawColored(dst Sink, v [3]Vertex, colors [3]Vec4, opts Options) Coverage {
	return scanTriangle(dst, v, colors, opts.Perspective, func(c Vec4) color.RGBA {
		return color.RGBA{R: toByte(c[0]), G: toByte(c[1]), B: toByte(c[2]), A: toByte(c[3])}
	})
}

// scanTriangle orders the vertices, builds the three edges and walks the
// two edge pairs, calling shade for every covered pixel.
func scanTriangle[T Attr[T]](dst Sink, v [3]Vertex, a [3]T, perspective bool, shade func(T) color.RGBA) Coverage {
	order := SortByY(v)
	sv := [3]Vertex{v[order[0]], v[order[1]], v[order[2]]}
	sa := [3]T{a[order[0]], a[order[1]], a[order[2]]}
	p := [3]Point{sv[0].XY(), sv[1].XY(), sv[2].XY()}

	if IsDegenerate(p) {
		return Coverage{Skip: SkipDegenerate}
	}

	var invW *Varying[Vec1]
	if perspective {
		for i := range sv {
			if !(sv[i].W > 0) {
				return Coverage{Skip: SkipBehindCamera}
			}
		}
		var w [3]Vec1
		for i := range sv {
			w[i] = Vec1{1 / sv[i].W}
			sa[i] = sa[i].Scale(w[i][0])
		}
		vw, _ := NewVarying(p, w)
		invW = &vw
	}

	attr, _ := NewVarying(p, sa)

	handedness := SignedArea(p[0], p[2], p[1]) >= 0

	yMin, yMax := 0, dst.Height()
	topToBottom := NewEdge(&sv, 0, 2, yMin, yMax, &attr, invW)
	topToMiddle := NewEdge(&sv, 0, 1, yMin, yMax, &attr, invW)
	middleToBottom := NewEdge(&sv, 1, 2, yMin, yMax, &attr, invW)

	s := spanWriter[T]{dst: dst, width: dst.Width(), perspective: perspective, shade: shade}
	s.scanEdgePair(&topToBottom, &topToMiddle, handedness)
	s.scanEdgePair(&topToBottom, &middleToBottom, handedness)
	return s.cov
}

type spanWriter[T Attr[T]] struct {
	dst         Sink
	width       int
	perspective bool
	shade       func(T) color.RGBA
	cov         Coverage
}

// scanEdgePair walks the rows of the short edge b, pairing it with the long
// edge a.
func (s *spanWriter[T]) scanEdgePair(a, b *Edge[T], handedness bool) {
	left, right := a, b
	if handedness {
		left, right = b, a
	}
	for j := b.YStart(); j < b.YEnd(); j++ {
		s.drawScanLine(left, right, j)
		s.cov.Rows++
		left.Step()
		right.Step()
	}
}

func (s *spanWriter[T]) drawScanLine(left, right *Edge[T], j int) {
	// Span ends stay in float so that t is relative to the unclipped span.
	xMin := math.Ceil(left.X())
	xMax := math.Ceil(right.X())
	if !(xMax > xMin) {
		return
	}

	minAttr, maxAttr := left.Attr(), right.Attr()
	minInvW, maxInvW := left.InvW(), right.InvW()
	span := xMax - xMin

	first := int(clampRange(xMin, 0, float64(s.width)))
	last := int(clampRange(xMax, 0, float64(s.width)))
	for i := first; i < last; i++ {
		t := (float64(i) - xMin) / span
		a := lerp(minAttr, maxAttr, t)
		if s.perspective {
			invW := minInvW + (maxInvW-minInvW)*t
			a = a.Scale(1 / invW)
		}
		s.dst.Plot(s.shade(a), i, j)
		s.cov.Pixels++
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func toByte(c float64) uint8 {
	return uint8(clamp01(c)*255 + 0.5)
}
