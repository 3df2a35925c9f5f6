// Package softrast provides a software triangle rasterizer for Go.
//
// # Overview
//
// softrast draws texture-mapped triangles into an in-memory pixel buffer
// using classic top-to-bottom scanline filling. Vertices are projected with a
// model -> perspective -> screen-space matrix, attributes are interpolated
// perspective-correctly, and every covered pixel samples a texture with
// nearest-neighbor lookup. There is no GPU, no depth buffer and no clipping
// beyond the viewport rectangle.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/softrast"
//	    "github.com/gogpu/softrast/mesh"
//	    "github.com/gogpu/softrast/texture"
//	)
//
//	pm := softrast.NewPixmap(320, 240)
//	tex, _ := texture.Checkerboard(64, 8, black, white)
//	r, _ := softrast.NewRenderer(pm, tex)
//
//	xf := softrast.NewTransform(softrast.DefaultCamera(), 320, 240, softrast.Orbit(0.3, 4))
//	stats := r.DrawMesh(mesh.Cube(), xf)
//
//	pm.SavePNG("cube.png")
//
// # Conventions
//
// Screen space has its origin at the top-left corner with y pointing down.
// A pixel (x, y) is covered when x is in [ceil(left), ceil(right)) and y is
// in [ceil(top), ceil(bottom)) of the triangle, so triangles sharing an edge
// never plot the same pixel twice.
//
// Front faces wind counter-clockwise as seen on screen; back faces are
// culled unless WithCulling(false) is given. Triangles with (near) zero area
// or, in perspective mode, a vertex at or behind the eye are skipped and
// counted in Stats.Skipped.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Pixmap, Renderer, Camera, Transform, Stats
//   - texture: RGBA8 textures, image decoding, procedural patterns
//   - mesh: indexed triangle meshes, Wavefront OBJ loading
//   - Internal: raster (gradients, edges, scanline engine),
//     config (YAML scenes), overlay (HUD text)
//
// # Logging
//
// softrast is silent by default. Call SetLogger to receive per-draw
// statistics at debug level and skipped-triangle warnings.
package softrast
