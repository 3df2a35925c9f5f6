// Package texture provides the read-only RGBA8 textures sampled by the
// softrast rasterizer.
//
// A Texture is a fixed-size grid of RGBA8 samples addressed by normalized
// coordinates. Sampling is nearest-neighbor: uv in [0,1] maps to the texel
// round(uv * (dim-1)), so uv 0 and 1 hit the first and last texel exactly.
//
// Textures are immutable once handed to a renderer; Set exists for building
// them and must not race with a draw call.
package texture

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// Common errors for texture operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrOutOfBounds is returned when texel coordinates are outside the grid.
	ErrOutOfBounds = errors.New("texture: coordinates out of bounds")
)

// Texture is a grid of RGBA8 texels.
type Texture struct {
	data   []byte // RGBA, 4 bytes per texel
	width  int
	height int
}

// New creates a transparent black texture with the given dimensions.
func New(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Texture{
		data:   make([]byte, width*height*4),
		width:  width,
		height: height,
	}, nil
}

// Width returns the texture width in texels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the texture height in texels.
func (t *Texture) Height() int {
	return t.height
}

// Size returns the texture dimensions as (width, height).
func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// At returns the texel at (x, y). Coordinates are clamped to the grid.
func (t *Texture) At(x, y int) color.RGBA {
	x = clamp(x, 0, t.width-1)
	y = clamp(y, 0, t.height-1)
	i := (y*t.width + x) * 4
	return color.RGBA{R: t.data[i], G: t.data[i+1], B: t.data[i+2], A: t.data[i+3]}
}

// Set sets the texel at (x, y).
// Returns ErrOutOfBounds if coordinates are outside the grid.
func (t *Texture) Set(x, y int, c color.RGBA) error {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return ErrOutOfBounds
	}
	i := (y*t.width + x) * 4
	t.data[i+0] = c.R
	t.data[i+1] = c.G
	t.data[i+2] = c.B
	t.data[i+3] = c.A
	return nil
}

// Sample returns the texel nearest to the normalized coordinate (u, v),
// selected by round(uv * (dim-1)). Coordinates outside [0,1] are clamped to
// the edge texels.
func (t *Texture) Sample(u, v float64) color.RGBA {
	x := int(math.Round(u * float64(t.width-1)))
	y := int(math.Round(v * float64(t.height-1)))
	return t.At(x, y)
}

// ToImage copies the texture into an *image.NRGBA. Texels are stored
// without alpha premultiplication.
func (t *Texture) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	copy(img.Pix, t.data)
	return img
}

// FromImage creates a texture from any image.Image.
// Returns ErrInvalidDimensions for an empty image.
func FromImage(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	t, err := New(width, height)
	if err != nil {
		return nil, err
	}

	// Fast path for non-premultiplied RGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
			copy(t.data[y*width*4:], src)
		}
		return t, nil
	}

	for y := range height {
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			_ = t.Set(x, y, color.RGBA(c))
		}
	}
	return t, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
