// Package player turns a scene into a sequence of rendered frames. Both the
// offline CLI and the windowed viewer drive it.
package player

import (
	"fmt"
	"image"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/internal/config"
	"github.com/gogpu/softrast/internal/overlay"
	"github.com/gogpu/softrast/mesh"
	"github.com/gogpu/softrast/texture"
)

// Player owns the render target, renderer and assets of one scene.
// It is not safe for concurrent use.
type Player struct {
	scene *config.Scene
	mesh  *mesh.Mesh
	tex   *texture.Texture
	pm    *softrast.Pixmap
	r     *softrast.Renderer

	culling     bool
	perspective bool

	total   softrast.Stats
	printer *message.Printer
}

// New loads the scene's mesh and texture and builds a renderer.
func New(scene *config.Scene) (*Player, error) {
	m, err := scene.LoadMesh()
	if err != nil {
		return nil, fmt.Errorf("player: load mesh: %w", err)
	}
	tex, err := scene.LoadTexture()
	if err != nil {
		return nil, fmt.Errorf("player: load texture: %w", err)
	}

	p := &Player{
		scene:       scene,
		mesh:        m,
		tex:         tex,
		pm:          softrast.NewPixmap(scene.Width, scene.Height),
		culling:     scene.Cull == nil || *scene.Cull,
		perspective: scene.Perspective == nil || *scene.Perspective,
		printer:     message.NewPrinter(language.English),
	}
	if err := p.rebuild(); err != nil {
		return nil, err
	}
	softrast.Logger().Info("scene loaded",
		"size", fmt.Sprintf("%dx%d", scene.Width, scene.Height),
		"triangles", m.TriangleCount(),
		"texture", fmt.Sprintf("%dx%d", tex.Width(), tex.Height()))
	return p, nil
}

func (p *Player) rebuild() error {
	// Later options win, so the toggled state overrides the scene's.
	opts := append(p.scene.RendererOptions(),
		softrast.WithCulling(p.culling),
		softrast.WithPerspective(p.perspective))
	r, err := softrast.NewRenderer(p.pm, p.tex, opts...)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	p.r = r
	return nil
}

// ToggleCulling flips back-face culling and returns the new state.
func (p *Player) ToggleCulling() bool {
	p.culling = !p.culling
	_ = p.rebuild() // size is unchanged, cannot fail
	return p.culling
}

// TogglePerspective flips perspective-correct interpolation and returns the
// new state.
func (p *Player) TogglePerspective() bool {
	p.perspective = !p.perspective
	_ = p.rebuild()
	return p.perspective
}

// Pixmap returns the render target of the last frame.
func (p *Player) Pixmap() *softrast.Pixmap {
	return p.pm
}

// Total returns the stats accumulated over every rendered frame.
func (p *Player) Total() softrast.Stats {
	return p.total
}

// Render clears the target and draws the mesh at time t seconds.
func (p *Player) Render(t float64) softrast.Stats {
	p.r.Clear()
	s := p.r.DrawMesh(p.mesh, p.scene.Transform(t))
	p.total.Add(s)
	return s
}

// Frame renders frame i of the scene and returns the image, with the HUD
// drawn when enabled and upscaled by the configured output scale.
func (p *Player) Frame(i int) (*image.RGBA, softrast.Stats, error) {
	s := p.Render(float64(i) / float64(p.scene.FPS))
	img, err := p.pm.Scaled(p.scene.Output.Scale)
	if err != nil {
		return nil, s, fmt.Errorf("player: scale: %w", err)
	}
	if p.scene.HUD {
		if err := overlay.Lines(img, p.HUD(i, s), 4, 2); err != nil {
			return nil, s, err
		}
	}
	return img, s, nil
}

// HUD returns the overlay lines for frame i.
func (p *Player) HUD(i int, s softrast.Stats) []string {
	mode := "perspective"
	if !p.perspective {
		mode = "affine"
	}
	return []string{
		p.printer.Sprintf("frame %d  %s", i, mode),
		p.printer.Sprintf("%d tris  %d culled  %d skipped", s.Triangles, s.Culled, s.Skipped),
		p.printer.Sprintf("%d px", s.Pixels),
	}
}

// Summary formats stats accumulated over frames for humans, grouping
// digits the English way.
func Summary(frames int, t softrast.Stats) string {
	return message.NewPrinter(language.English).Sprintf(
		"%d frames, %d triangles (%d culled, %d skipped), %d rows, %d pixels",
		frames, t.Triangles, t.Culled, t.Skipped, t.Rows, t.Pixels)
}
