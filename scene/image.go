package scene

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	stdmath "math"
	"os"

	"lightlab/core"
)

// LoadImage reads a PNG or JPEG file for use with an ImageBrush.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// SmileyImage draws a size×size smiley face on a white background. The
// materials demo falls back to it when no image file is available.
func SmileyImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	face := core.ColorYellow.NRGBA()
	ink := core.ColorBlack.NRGBA()
	paper := core.ColorWhite.NRGBA()

	s := float64(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// normalized coordinates in [-1,1], y down
			u := (float64(x)+0.5)/s*2 - 1
			v := (float64(y)+0.5)/s*2 - 1
			r := stdmath.Hypot(u, v)

			var c color.NRGBA
			switch {
			case r > 0.95:
				c = paper
			case r > 0.9:
				c = ink
			case stdmath.Hypot(u+0.35, v+0.3) < 0.12, stdmath.Hypot(u-0.35, v+0.3) < 0.12:
				c = ink
			case v > 0.1 && stdmath.Abs(stdmath.Hypot(u, v+0.05)-0.55) < 0.05:
				c = ink
			default:
				c = face
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
