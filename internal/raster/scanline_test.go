package raster

import (
	"image/color"
	"math"
	"testing"
)

// recordSink records every plot and fails the test on out-of-bounds writes.
type recordSink struct {
	t      *testing.T
	w, h   int
	pixels map[[2]int]color.RGBA
	counts map[[2]int]int
	// uv holds the texture coordinate sampled for each pixel when the sink
	// is also used as the Sampler.
	uv      map[[2]int]Vec2
	lastUV  Vec2
	sampled color.RGBA
}

func newRecordSink(t *testing.T, w, h int) *recordSink {
	return &recordSink{
		t:      t,
		w:      w,
		h:      h,
		pixels: make(map[[2]int]color.RGBA),
		counts: make(map[[2]int]int),
		uv:     make(map[[2]int]Vec2),
	}
}

func (s *recordSink) Width() int  { return s.w }
func (s *recordSink) Height() int { return s.h }

func (s *recordSink) Plot(c color.RGBA, x, y int) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		s.t.Fatalf("Plot(%d, %d) outside %dx%d", x, y, s.w, s.h)
	}
	k := [2]int{x, y}
	s.pixels[k] = c
	s.counts[k]++
	s.uv[k] = s.lastUV
}

// Sample records the coordinate so the following Plot can store it.
func (s *recordSink) Sample(u, v float64) color.RGBA {
	s.lastUV = Vec2{u, v}
	return s.sampled
}

func (s *recordSink) rows() map[int]int {
	rows := make(map[int]int)
	for k := range s.pixels {
		rows[k[1]]++
	}
	return rows
}

// gridSampler is a nearest-neighbor RGBA grid.
type gridSampler struct {
	w, h int
	px   []color.RGBA
}

func (g *gridSampler) at(x, y int) color.RGBA { return g.px[y*g.w+x] }

func (g *gridSampler) Sample(u, v float64) color.RGBA {
	x := int(math.Round(u * float64(g.w-1)))
	y := int(math.Round(v * float64(g.h-1)))
	return g.at(x, y)
}

// checker builds an n x n grid split into cells x cells squares.
func checker(n, cells int) *gridSampler {
	g := &gridSampler{w: n, h: n, px: make([]color.RGBA, n*n)}
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := range n {
		for x := range n {
			if (x*cells/n+y*cells/n)%2 == 0 {
				g.px[y*n+x] = black
			} else {
				g.px[y*n+x] = white
			}
		}
	}
	return g
}

func flat(x, y float64) Vertex { return Vertex{X: x, Y: y, W: 1} }

func TestSortByY(t *testing.T) {
	tests := []struct {
		name string
		ys   [3]float64
		want [3]int
	}{
		{"sorted", [3]float64{0, 1, 2}, [3]int{0, 1, 2}},
		{"reversed", [3]float64{2, 1, 0}, [3]int{2, 1, 0}},
		{"middle first", [3]float64{1, 0, 2}, [3]int{1, 0, 2}},
		{"top tie keeps order", [3]float64{0, 0, 5}, [3]int{0, 1, 2}},
		{"bottom tie keeps order", [3]float64{10, 0, 10}, [3]int{1, 0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := [3]Vertex{flat(0, tt.ys[0]), flat(0, tt.ys[1]), flat(0, tt.ys[2])}
			if got := SortByY(v); got != tt.want {
				t.Errorf("SortByY() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignedArea(t *testing.T) {
	a, b, c := Point{0, 0}, Point{0, 10}, Point{10, 0}
	area := SignedArea(a, b, c)
	if math.Abs(area) != 50 {
		t.Fatalf("|SignedArea()| = %v, want 50", math.Abs(area))
	}
	if swapped := SignedArea(a, c, b); swapped != -area {
		t.Errorf("swapped winding = %v, want %v", swapped, -area)
	}
}

func TestDrawTextured_RowCoverage(t *testing.T) {
	sink := newRecordSink(t, 32, 32)
	// start y=0, middle y=5, end y=10
	v := [3]Vertex{flat(4, 0), flat(20, 5), flat(0, 10)}
	uv := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}

	cov := DrawTextured(sink, sink, v, uv, Options{})
	if cov.Skip != NotSkipped {
		t.Fatalf("Skip = %v, want none", cov.Skip)
	}
	if cov.Rows != 10 {
		t.Errorf("Rows = %d, want 10", cov.Rows)
	}
	for k, n := range sink.counts {
		if n != 1 {
			t.Errorf("pixel %v plotted %d times", k, n)
		}
	}
	rows := sink.rows()
	for y := 1; y < 10; y++ {
		if rows[y] == 0 {
			t.Errorf("row %d has no pixels", y)
		}
	}
	for y := range rows {
		if y < 0 || y >= 10 {
			t.Errorf("pixel drawn on row %d outside [0, 10)", y)
		}
	}
	if cov.Pixels != len(sink.pixels) {
		t.Errorf("Pixels = %d, want %d", cov.Pixels, len(sink.pixels))
	}
}

func TestDrawTextured_HandednessInvariance(t *testing.T) {
	tri := [3]Vertex{flat(3.2, 1.5), flat(27.9, 9.1), flat(11.4, 22.6)}
	uv := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}

	cw := newRecordSink(t, 32, 32)
	DrawTextured(cw, cw, tri, uv, Options{})

	swapped := [3]Vertex{tri[0], tri[2], tri[1]}
	swappedUV := [3]Vec2{uv[0], uv[2], uv[1]}
	ccw := newRecordSink(t, 32, 32)
	DrawTextured(ccw, ccw, swapped, swappedUV, Options{})

	a := SignedArea(tri[0].XY(), tri[1].XY(), tri[2].XY())
	b := SignedArea(swapped[0].XY(), swapped[1].XY(), swapped[2].XY())
	if a != -b {
		t.Errorf("signed areas %v and %v do not flip", a, b)
	}

	if len(cw.pixels) == 0 {
		t.Fatal("no pixels drawn")
	}
	if len(cw.pixels) != len(ccw.pixels) {
		t.Fatalf("pixel count %d vs %d", len(cw.pixels), len(ccw.pixels))
	}
	for k := range cw.pixels {
		if _, ok := ccw.pixels[k]; !ok {
			t.Errorf("pixel %v missing after winding swap", k)
		}
	}
}

func TestDrawTextured_BothHandedness(t *testing.T) {
	// Middle vertex right of the long edge, then left of it.
	tests := []struct {
		name string
		v    [3]Vertex
	}{
		{"middle right", [3]Vertex{flat(5, 0), flat(15, 5), flat(5, 10)}},
		{"middle left", [3]Vertex{flat(15, 0), flat(5, 5), flat(15, 10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := newRecordSink(t, 20, 20)
			cov := DrawTextured(sink, sink, tt.v, [3]Vec2{{0, 0}, {1, 0}, {0, 1}}, Options{})
			// The 10-row tall, 10-wide triangle covers half its 100-pixel box.
			if cov.Pixels < 40 || cov.Pixels > 60 {
				t.Errorf("Pixels = %d, want about 50", cov.Pixels)
			}
		})
	}
}

func TestDrawTextured_DegenerateGuard(t *testing.T) {
	tests := []struct {
		name string
		v    [3]Vertex
	}{
		{"shared y", [3]Vertex{flat(0, 4), flat(5, 4), flat(9, 4)}},
		{"collinear", [3]Vertex{flat(0, 0), flat(5, 5), flat(10, 10)}},
	}
	for _, tt := range tests {
		for _, persp := range []bool{false, true} {
			sink := newRecordSink(t, 16, 16)
			cov := DrawTextured(sink, sink, tt.v, [3]Vec2{}, Options{Perspective: persp})
			if cov.Rows != 0 || cov.Pixels != 0 {
				t.Errorf("%s (perspective=%v): drew %d rows, %d pixels", tt.name, persp, cov.Rows, cov.Pixels)
			}
			if cov.Skip != SkipDegenerate {
				t.Errorf("%s (perspective=%v): Skip = %v, want degenerate", tt.name, persp, cov.Skip)
			}
		}
	}
}

func TestDrawTextured_BehindCamera(t *testing.T) {
	sink := newRecordSink(t, 16, 16)
	v := [3]Vertex{flat(0, 0), flat(10, 0), {X: 0, Y: 10, W: 0}}
	cov := DrawTextured(sink, sink, v, [3]Vec2{}, Options{Perspective: true})
	if cov.Skip != SkipBehindCamera || cov.Pixels != 0 {
		t.Errorf("coverage = %+v, want behind-camera skip", cov)
	}
}

func TestDrawTextured_EndToEndCheckerboard(t *testing.T) {
	// 2x2 cells over a 5x5 grid, so uv 0.5 lands on texel 2 exactly.
	tex := checker(5, 2)
	sink := newRecordSink(t, 10, 10)

	// Unit square as two triangles.
	upper := [3]Vertex{flat(0, 0), flat(10, 0), flat(0, 10)}
	upperUV := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}
	lower := [3]Vertex{flat(10, 0), flat(10, 10), flat(0, 10)}
	lowerUV := [3]Vec2{{1, 0}, {1, 1}, {0, 1}}

	DrawTextured(sink, tex, upper, upperUV, Options{ClampUV: true})
	DrawTextured(sink, tex, lower, lowerUV, Options{ClampUV: true})

	got, ok := sink.pixels[[2]int{5, 5}]
	if !ok {
		t.Fatal("pixel (5,5) not drawn")
	}
	if want := tex.at(2, 2); got != want {
		t.Errorf("pixel (5,5) = %v, want texel (2,2) %v", got, want)
	}
	if got := sink.pixels[[2]int{0, 0}]; got != tex.at(0, 0) {
		t.Errorf("pixel (0,0) = %v, want %v", got, tex.at(0, 0))
	}

	// The shared diagonal is drawn exactly once.
	if len(sink.pixels) != 100 {
		t.Errorf("drew %d pixels, want 100", len(sink.pixels))
	}
	for k, n := range sink.counts {
		if n != 1 {
			t.Errorf("pixel %v plotted %d times", k, n)
		}
	}
}

func TestDrawTextured_PerspectiveCorrectCentroid(t *testing.T) {
	v := [3]Vertex{
		{X: 0, Y: 0, W: 1},
		{X: 30, Y: 0, W: 2},
		{X: 0, Y: 30, W: 4},
	}
	uv := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}

	// Screen-space barycentrics at (10,10) are 1/3 each. Perspective
	// weights are (l_i/w_i) / sum(l_j/w_j) = (4/7, 2/7, 1/7).
	want := Vec2{2.0 / 7, 1.0 / 7}

	sink := newRecordSink(t, 32, 32)
	DrawTextured(sink, sink, v, uv, Options{Perspective: true})
	got, ok := sink.uv[[2]int{10, 10}]
	if !ok {
		t.Fatal("pixel (10,10) not drawn")
	}
	if !approxVec2(got, want, 1e-9) {
		t.Errorf("perspective uv at centroid = %v, want %v", got, want)
	}

	affine := newRecordSink(t, 32, 32)
	DrawTextured(affine, affine, v, uv, Options{})
	if got := affine.uv[[2]int{10, 10}]; !approxVec2(got, Vec2{1.0 / 3, 1.0 / 3}, 1e-9) {
		t.Errorf("affine uv at centroid = %v, want (1/3, 1/3)", got)
	}
}

func TestDrawTextured_PerspectiveMatchesAffineAtUnitW(t *testing.T) {
	v := [3]Vertex{flat(1.5, 2.25), flat(28.75, 7.5), flat(9.5, 29.25)}
	uv := [3]Vec2{{0.1, 0.1}, {0.5, 0.9}, {0.9, 0.1}}

	a := newRecordSink(t, 32, 32)
	DrawTextured(a, a, v, uv, Options{})
	p := newRecordSink(t, 32, 32)
	DrawTextured(p, p, v, uv, Options{Perspective: true})

	if len(a.uv) != len(p.uv) {
		t.Fatalf("pixel count %d vs %d", len(a.uv), len(p.uv))
	}
	for k, want := range a.uv {
		if got := p.uv[k]; !approxVec2(got, want, 1e-9) {
			t.Errorf("pixel %v: perspective %v, affine %v", k, got, want)
		}
	}
}

func TestDrawTextured_ClipsToViewport(t *testing.T) {
	sink := newRecordSink(t, 10, 10)
	v := [3]Vertex{flat(-10, -10), flat(30, -10), flat(-10, 30)}
	cov := DrawTextured(sink, sink, v, [3]Vec2{{0, 0}, {1, 0}, {0, 1}}, Options{ClampUV: true})

	if cov.Rows != 10 {
		t.Errorf("Rows = %d, want 10", cov.Rows)
	}
	if len(sink.pixels) != 100 {
		t.Errorf("drew %d pixels, want 100", len(sink.pixels))
	}

	// Attributes are stepped to the first visible row: u = (x+10)/40.
	got := sink.uv[[2]int{0, 0}]
	if !approxVec2(got, Vec2{0.25, 0.25}, 1e-9) {
		t.Errorf("uv at (0,0) = %v, want (0.25, 0.25)", got)
	}
}

// TestDrawTextured_FarOffscreenVertex covers vertices whose screen
// coordinates do not fit in an int, as produced by a tiny positive w.
func TestDrawTextured_FarOffscreenVertex(t *testing.T) {
	sink := newRecordSink(t, 100, 100)
	v := [3]Vertex{
		{X: 10, Y: 10, W: 1},
		{X: 90, Y: 50, W: 1},
		{X: 50, Y: 1e19, W: 1e-17},
	}
	cov := DrawTextured(sink, sink, v, [3]Vec2{{0, 0}, {1, 0}, {0, 1}}, Options{Perspective: true, ClampUV: true})

	if cov.Skip != NotSkipped {
		t.Fatalf("Skip = %v, want none", cov.Skip)
	}
	if cov.Rows != 90 {
		t.Errorf("Rows = %d, want 90", cov.Rows)
	}
	rows := sink.rows()
	for y := 11; y < 100; y++ {
		if rows[y] == 0 {
			t.Fatalf("row %d has no pixels", y)
		}
	}
}

func TestDrawColored_FarOffscreenX(t *testing.T) {
	sink := newRecordSink(t, 100, 10)
	v := [3]Vertex{flat(0, 0), flat(1e19, 5), flat(0, 10)}
	white := Vec4{1, 1, 1, 1}
	DrawColored(sink, v, [3]Vec4{white, white, white}, Options{})

	rows := sink.rows()
	for y := 1; y < 10; y++ {
		if rows[y] != 100 {
			t.Errorf("row %d has %d pixels, want 100", y, rows[y])
		}
	}
}

func TestClampRange(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"inside", 3, 3},
		{"below", -1e30, 0},
		{"above", 1e30, 10},
		{"negative infinity", math.Inf(-1), 0},
		{"positive infinity", math.Inf(1), 10},
		{"nan", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampRange(tt.v, 0, 10); got != tt.want {
				t.Errorf("clampRange(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestDrawTextured_ClampUV(t *testing.T) {
	sink := newRecordSink(t, 16, 16)
	v := [3]Vertex{flat(0, 0), flat(12, 0), flat(0, 12)}
	DrawTextured(sink, sink, v, [3]Vec2{{-1, -1}, {2, -1}, {-1, 2}}, Options{ClampUV: true})
	for k, uv := range sink.uv {
		if uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1 {
			t.Fatalf("pixel %v sampled at %v outside [0,1]", k, uv)
		}
	}
}

func TestDrawColored(t *testing.T) {
	sink := newRecordSink(t, 16, 16)
	v := [3]Vertex{flat(0, 0), flat(15, 0), flat(0, 15)}
	red := Vec4{1, 0, 0, 1}

	cov := DrawColored(sink, v, [3]Vec4{red, red, red}, Options{})
	if cov.Pixels == 0 {
		t.Fatal("no pixels drawn")
	}
	want := color.RGBA{R: 255, A: 255}
	for k, c := range sink.pixels {
		if c != want {
			t.Fatalf("pixel %v = %v, want %v", k, c, want)
		}
	}
}

func TestDrawColored_Gradient(t *testing.T) {
	sink := newRecordSink(t, 32, 32)
	v := [3]Vertex{flat(0, 0), flat(30, 0), flat(0, 30)}
	colors := [3]Vec4{{0, 0, 0, 1}, {1, 0, 0, 1}, {0, 1, 0, 1}}
	DrawColored(sink, v, colors, Options{})

	// Red grows with x, green with y.
	c := sink.pixels[[2]int{15, 6}]
	if int(c.R) < 120 || int(c.R) > 135 {
		t.Errorf("R at x=15 = %d, want about 127", c.R)
	}
	if int(c.G) < 45 || int(c.G) > 57 {
		t.Errorf("G at y=6 = %d, want about 51", c.G)
	}
}

func TestSkipReason_String(t *testing.T) {
	tests := []struct {
		r    SkipReason
		want string
	}{
		{NotSkipped, "none"},
		{SkipDegenerate, "degenerate"},
		{SkipBehindCamera, "behind-camera"},
		{SkipReason(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("SkipReason(%d).String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}
