// Package config loads YAML scene descriptions for the softrast drivers.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/mesh"
	"github.com/gogpu/softrast/texture"
)

// ErrInvalid is returned when a scene fails validation.
var ErrInvalid = errors.New("config: invalid scene")

// Builtin mesh and procedural texture names.
const (
	MeshTriangle = "triangle"
	MeshCube     = "cube"

	TextureChecker = "checker"
	TextureRandom  = "random"
)

// Scene describes what a driver renders and where the frames go.
type Scene struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Camera Camera `yaml:"camera"`

	// Spin is the model rotation around the y axis in radians per second.
	Spin float64 `yaml:"spin"`

	Mesh    MeshSource    `yaml:"mesh"`
	Texture TextureSource `yaml:"texture"`

	Frames int `yaml:"frames"`
	FPS    int `yaml:"fps"`

	Output Output `yaml:"output"`

	HUD         bool     `yaml:"hud"`
	Cull        *bool    `yaml:"cull"`        // nil means enabled
	Perspective *bool    `yaml:"perspective"` // nil means enabled
	Background  [3]uint8 `yaml:"background"`

	dir string // directory relative paths resolve against
}

// Camera is the scene camera. FOV is in degrees.
type Camera struct {
	FOV      float64 `yaml:"fov"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Distance float64 `yaml:"distance"`
}

// MeshSource selects an OBJ file or a builtin mesh. Path wins when both are
// set.
type MeshSource struct {
	Path    string `yaml:"path"`
	Builtin string `yaml:"builtin"`
}

// TextureSource selects an image file or a procedural texture. Path wins
// when both are set.
type TextureSource struct {
	Path       string `yaml:"path"`
	Procedural string `yaml:"procedural"`
	Size       int    `yaml:"size"`
	Cells      int    `yaml:"cells"`
	Seed       uint64 `yaml:"seed"`
	MaxSize    int    `yaml:"max_size"` // downscale loaded images; 0 keeps full size
}

// Output controls frame files.
type Output struct {
	Dir   string `yaml:"dir"`
	Scale int    `yaml:"scale"`
}

// Default returns the demo scene: a spinning triangle with a random 45x45
// texture on a 320x240 target.
func Default() *Scene {
	return &Scene{
		Width:  320,
		Height: 240,
		Camera: Camera{FOV: 70, Near: 0.1, Far: 1000, Distance: 3},
		Spin:   1,
		Mesh:   MeshSource{Builtin: MeshTriangle},
		Texture: TextureSource{
			Procedural: TextureRandom,
			Size:       45,
			Cells:      8,
			Seed:       1,
		},
		Frames: 60,
		FPS:    30,
		Output: Output{Dir: "frames", Scale: 1},
		HUD:    true,
		// The demo triangle is single-sided and spins through its back.
		Cull: new(bool),
	}
}

// Load reads and parses a scene file. Relative mesh and texture paths are
// resolved against the file's directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (*Scene, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports the first invalid field wrapped in ErrInvalid.
func (s *Scene) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, s.Width, s.Height)
	case s.Camera.FOV <= 0 || s.Camera.FOV >= 180:
		return fmt.Errorf("%w: fov %v must be in (0, 180)", ErrInvalid, s.Camera.FOV)
	case s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near:
		return fmt.Errorf("%w: need 0 < near < far, got near %v far %v", ErrInvalid, s.Camera.Near, s.Camera.Far)
	case s.Frames < 0:
		return fmt.Errorf("%w: frames %d is negative", ErrInvalid, s.Frames)
	case s.FPS <= 0:
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalid, s.FPS)
	case s.Output.Scale <= 0:
		return fmt.Errorf("%w: output scale %d must be positive", ErrInvalid, s.Output.Scale)
	case s.Texture.MaxSize < 0:
		return fmt.Errorf("%w: texture max_size %d is negative", ErrInvalid, s.Texture.MaxSize)
	}

	if s.Mesh.Path == "" {
		switch s.Mesh.Builtin {
		case MeshTriangle, MeshCube:
		default:
			return fmt.Errorf("%w: unknown builtin mesh %q", ErrInvalid, s.Mesh.Builtin)
		}
	}
	if s.Texture.Path == "" {
		switch s.Texture.Procedural {
		case TextureChecker, TextureRandom:
		default:
			return fmt.Errorf("%w: unknown procedural texture %q", ErrInvalid, s.Texture.Procedural)
		}
		if s.Texture.Size <= 0 {
			return fmt.Errorf("%w: texture size %d must be positive", ErrInvalid, s.Texture.Size)
		}
		if s.Texture.Procedural == TextureChecker && s.Texture.Cells <= 0 {
			return fmt.Errorf("%w: checker cells %d must be positive", ErrInvalid, s.Texture.Cells)
		}
	}
	return nil
}

func (s *Scene) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || s.dir == "" {
		return path
	}
	return filepath.Join(s.dir, path)
}

// OutputDir returns the frame directory, resolved against the scene file.
func (s *Scene) OutputDir() string {
	return s.resolve(s.Output.Dir)
}

// LoadMesh returns the scene mesh, validated.
func (s *Scene) LoadMesh() (*mesh.Mesh, error) {
	var m *mesh.Mesh
	switch {
	case s.Mesh.Path != "":
		var err error
		if m, err = mesh.LoadOBJ(s.resolve(s.Mesh.Path)); err != nil {
			return nil, err
		}
	case s.Mesh.Builtin == MeshCube:
		m = mesh.Cube()
	default:
		m = mesh.Triangle()
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadTexture returns the scene texture.
func (s *Scene) LoadTexture() (*texture.Texture, error) {
	t := s.Texture
	if t.Path != "" {
		tex, err := texture.Load(s.resolve(t.Path))
		if err != nil {
			return nil, err
		}
		return texture.FitWithin(tex, t.MaxSize)
	}
	if t.Procedural == TextureChecker {
		return texture.Checkerboard(t.Size, t.Cells,
			color.RGBA{R: 30, G: 30, B: 30, A: 255},
			color.RGBA{R: 230, G: 230, B: 230, A: 255})
	}
	return texture.Random(t.Size, t.Size, t.Seed)
}

// CameraModel returns the renderer camera.
func (s *Scene) CameraModel() softrast.Camera {
	return softrast.Camera{
		FOV:  mgl64.DegToRad(s.Camera.FOV),
		Near: s.Camera.Near,
		Far:  s.Camera.Far,
	}
}

// Transform returns the full vertex transform at time t seconds.
func (s *Scene) Transform(t float64) softrast.Transform {
	return softrast.NewTransform(s.CameraModel(), s.Width, s.Height,
		softrast.Orbit(s.Spin*t, s.Camera.Distance))
}

// BackgroundColor returns the opaque clear color.
func (s *Scene) BackgroundColor() color.RGBA {
	return color.RGBA{R: s.Background[0], G: s.Background[1], B: s.Background[2], A: 255}
}

// RendererOptions maps the scene switches to renderer options.
func (s *Scene) RendererOptions() []softrast.Option {
	return []softrast.Option{
		softrast.WithCulling(s.Cull == nil || *s.Cull),
		softrast.WithPerspective(s.Perspective == nil || *s.Perspective),
		softrast.WithClearColor(s.BackgroundColor()),
	}
}
