package core

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamedColors(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, ColorGray.NRGBA())
	assert.Equal(t, color.NRGBA{R: 0xad, G: 0xd8, B: 0xe6, A: 255}, ColorLightBlue.NRGBA())
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 0x8b, A: 255}, ColorDarkBlue.NRGBA())
	assert.Equal(t, Color{1, 1, 0, 1}, ColorYellow)
}

func TestRGB8RoundTrip(t *testing.T) {
	c := RGB8(128, 64, 3)
	assert.Equal(t, color.NRGBA{R: 128, G: 64, B: 3, A: 255}, c.NRGBA())
	assert.Equal(t, [3]float32{c.R, c.G, c.B}, c.Vec3())
}

func TestNRGBAClamps(t *testing.T) {
	c := Color{R: 2, G: -1, B: 0.5, A: 1}
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 128, A: 255}, c.NRGBA())
}
