package core

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Color is a straight-alpha RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// Named colors used by the demos. Values follow the CSS/SVG names, which
// agree with the usual desktop toolkit palettes.
var (
	ColorWhite     = ColorFrom(colornames.White)
	ColorBlack     = ColorFrom(colornames.Black)
	ColorGray      = ColorFrom(colornames.Gray)
	ColorRed       = ColorFrom(colornames.Red)
	ColorGreen     = ColorFrom(colornames.Green)
	ColorBlue      = ColorFrom(colornames.Blue)
	ColorYellow    = ColorFrom(colornames.Yellow)
	ColorLightBlue = ColorFrom(colornames.Lightblue)
	ColorDarkBlue  = ColorFrom(colornames.Darkblue)
)

// ColorFrom converts any image/color value.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// RGB8 builds an opaque color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return ColorFrom(color.NRGBA{R: r, G: g, B: b, A: 255})
}

// NRGBA converts back to 8-bit channels, clamping out-of-range values.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Vec3 returns the RGB channels, for shader uniforms.
func (c Color) Vec3() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
