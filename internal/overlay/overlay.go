// Package overlay draws HUD text onto rendered frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Size is the HUD font size in points at 72 DPI.
const Size = 12

var (
	faceOnce sync.Once
	face     font.Face
	faceErr  error
)

// Face returns the shared HUD face, parsing the embedded Go Regular font on
// first use.
func Face() (font.Face, error) {
	faceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			faceErr = fmt.Errorf("overlay: parse font: %w", err)
			return
		}
		face, faceErr = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    Size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if faceErr != nil {
			faceErr = fmt.Errorf("overlay: new face: %w", faceErr)
		}
	})
	return face, faceErr
}

var (
	foreground = image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadow     = image.NewUniform(color.RGBA{A: 255})
)

// Label draws text with its top-left corner at (x, y), white over a one
// pixel drop shadow.
func Label(dst draw.Image, text string, x, y int) error {
	f, err := Face()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	baseline := y + f.Metrics().Ascent.Ceil()
	d := &font.Drawer{Dst: dst, Src: shadow, Face: f, Dot: fixed.P(x+1, baseline+1)}
	d.DrawString(text)

	d.Src = foreground
	d.Dot = fixed.P(x, baseline)
	d.DrawString(text)
	return nil
}

// Lines draws one label per line starting at (x, y).
func Lines(dst draw.Image, lines []string, x, y int) error {
	f, err := Face()
	if err != nil {
		return err
	}
	step := f.Metrics().Height.Ceil()
	for i, line := range lines {
		if err := Label(dst, line, x, y+i*step); err != nil {
			return err
		}
	}
	return nil
}

// Measure returns the advance width of text in pixels.
func Measure(text string) (int, error) {
	f, err := Face()
	if err != nil {
		return 0, err
	}
	return font.MeasureString(f, text).Ceil(), nil
}
