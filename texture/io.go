package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrEmptyData is returned when image data is empty.
var ErrEmptyData = errors.New("texture: empty data")

// Load loads a texture from the given file path, auto-detecting the format.
// Supported formats: PNG, JPEG, BMP, TIFF, WebP.
func Load(path string) (*Texture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("texture: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadFromBytes decodes a texture from a byte slice.
func LoadFromBytes(data []byte) (*Texture, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes a texture from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	return FromImage(img)
}

// Resize returns a copy of t scaled to width x height with Catmull-Rom
// filtering. Used to bring large source images down to a texture size that
// suits low-resolution targets.
func Resize(t *Texture, width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	src := t.ToImage()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return FromImage(dst)
}

// FitWithin downscales t so that neither side exceeds maxSize, keeping the
// aspect ratio. t is returned unchanged when it already fits or maxSize <= 0.
func FitWithin(t *Texture, maxSize int) (*Texture, error) {
	if maxSize <= 0 || (t.width <= maxSize && t.height <= maxSize) {
		return t, nil
	}
	w, h := maxSize, maxSize
	if t.width > t.height {
		h = max(1, t.height*maxSize/t.width)
	} else {
		w = max(1, t.width*maxSize/t.height)
	}
	return Resize(t, w, h)
}
