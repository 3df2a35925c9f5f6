package texture

import (
	"image/color"
	"math/rand/v2"
)

// Checkerboard creates a size x size texture split into cells x cells
// alternating squares, starting with a at the top-left.
func Checkerboard(size, cells int, a, b color.RGBA) (*Texture, error) {
	if cells <= 0 {
		return nil, ErrInvalidDimensions
	}
	t, err := New(size, size)
	if err != nil {
		return nil, err
	}
	for y := range size {
		for x := range size {
			c := a
			if (x*cells/size+y*cells/size)%2 == 1 {
				c = b
			}
			_ = t.Set(x, y, c)
		}
	}
	return t, nil
}

// Random creates an opaque texture of uniformly random colors. The same
// seed always produces the same texture.
func Random(width, height int, seed uint64) (*Texture, error) {
	t, err := New(width, height)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for y := range height {
		for x := range width {
			_ = t.Set(x, y, color.RGBA{
				R: uint8(rng.IntN(255)),
				G: uint8(rng.IntN(255)),
				B: uint8(rng.IntN(255)),
				A: 255,
			})
		}
	}
	return t, nil
}
