package scene

import (
	"image"
	stdmath "math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"lightlab/core"
	"lightlab/math"
)

// Brush paints a surface. Coordinates are relative to the painted area:
// (0,0) is the top-left corner and (1,1) the bottom-right.
type Brush interface {
	ColorAt(u, v float64) core.Color
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color core.Color
}

func NewSolidBrush(c core.Color) *SolidBrush {
	return &SolidBrush{Color: c}
}

func (b *SolidBrush) ColorAt(_, _ float64) core.Color {
	return b.Color
}

// ImageBrush stretches an image over the painted area.
type ImageBrush struct {
	Image image.Image
}

func NewImageBrush(img image.Image) *ImageBrush {
	return &ImageBrush{Image: img}
}

func (b *ImageBrush) ColorAt(u, v float64) core.Color {
	r := b.Image.Bounds()
	if r.Empty() {
		return core.Color{}
	}
	x := r.Min.X + clampIndex(int(u*float64(r.Dx())), r.Dx())
	y := r.Min.Y + clampIndex(int(v*float64(r.Dy())), r.Dy())
	return core.ColorFrom(b.Image.At(x, y))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// GradientStop places a color at an offset along a gradient.
type GradientStop struct {
	Color  core.Color
	Offset float64
}

// gradient interpolates between stops in sRGB space and pads with the end
// colors outside the stop range.
type gradient []GradientStop

func newGradient(stops []GradientStop) gradient {
	g := append(gradient(nil), stops...)
	sort.SliceStable(g, func(i, j int) bool { return g[i].Offset < g[j].Offset })
	return g
}

func (g gradient) at(t float64) core.Color {
	if len(g) == 0 {
		return core.Color{}
	}
	if t <= g[0].Offset {
		return g[0].Color
	}
	last := g[len(g)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g); i++ {
		hi := g[i]
		if t > hi.Offset {
			continue
		}
		if t == hi.Offset {
			return hi.Color
		}
		lo := g[i-1]
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Color
		}
		return blend(lo.Color, hi.Color, (t-lo.Offset)/span)
	}
	return last.Color
}

func blend(a, b core.Color, t float64) core.Color {
	ca := colorful.Color{R: float64(a.R), G: float64(a.G), B: float64(a.B)}
	cb := colorful.Color{R: float64(b.R), G: float64(b.G), B: float64(b.B)}
	c := ca.BlendRgb(cb, t).Clamped()
	return core.Color{
		R: float32(c.R),
		G: float32(c.G),
		B: float32(c.B),
		A: a.A + (b.A-a.A)*float32(t),
	}
}

// LinearGradientBrush varies color along the line from Start to End.
type LinearGradientBrush struct {
	Start, End math.Vec2
	stops      gradient
}

// NewLinearGradientBrush returns a gradient running from start to end in
// relative coordinates.
func NewLinearGradientBrush(start, end math.Vec2, stops ...GradientStop) *LinearGradientBrush {
	return &LinearGradientBrush{Start: start, End: end, stops: newGradient(stops)}
}

func (b *LinearGradientBrush) Stops() []GradientStop {
	return b.stops
}

func (b *LinearGradientBrush) ColorAt(u, v float64) core.Color {
	axis := b.End.Sub(b.Start)
	lenSq := axis.Dot(axis)
	if lenSq == 0 {
		return b.stops.at(0)
	}
	t := math.Vec2{X: u, Y: v}.Sub(b.Start).Dot(axis) / lenSq
	return b.stops.at(t)
}

// RadialGradientBrush varies color with the distance from Center, reaching
// offset 1 on the ellipse with radii RadiusX and RadiusY.
type RadialGradientBrush struct {
	Center           math.Vec2
	RadiusX, RadiusY float64
	stops            gradient
}

// NewRadialGradientBrush returns a gradient centred in the painted area and
// touching its edges.
func NewRadialGradientBrush(stops ...GradientStop) *RadialGradientBrush {
	return &RadialGradientBrush{
		Center:  math.Vec2{X: 0.5, Y: 0.5},
		RadiusX: 0.5,
		RadiusY: 0.5,
		stops:   newGradient(stops),
	}
}

func (b *RadialGradientBrush) Stops() []GradientStop {
	return b.stops
}

func (b *RadialGradientBrush) ColorAt(u, v float64) core.Color {
	if b.RadiusX <= 0 || b.RadiusY <= 0 {
		return b.stops.at(1)
	}
	dx := (u - b.Center.X) / b.RadiusX
	dy := (v - b.Center.Y) / b.RadiusY
	return b.stops.at(stdmath.Hypot(dx, dy))
}

// Rasterize renders b into a w×h image, sampling pixel centres. Image
// brushes are resampled with bilinear filtering instead.
func Rasterize(b Brush, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if ib, ok := b.(*ImageBrush); ok {
		draw.BiLinear.Scale(dst, dst.Bounds(), ib.Image, ib.Image.Bounds(), draw.Src, nil)
		return dst
	}
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			dst.SetNRGBA(x, y, b.ColorAt(u, v).NRGBA())
		}
	}
	return dst
}

// AverageColor approximates the overall tint of b, for consumers that can
// only use a flat color.
func AverageColor(b Brush) core.Color {
	if sb, ok := b.(*SolidBrush); ok {
		return sb.Color
	}
	const n = 16
	var r, g, bl, a float64
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := b.ColorAt((float64(x)+0.5)/n, (float64(y)+0.5)/n)
			r += float64(c.R)
			g += float64(c.G)
			bl += float64(c.B)
			a += float64(c.A)
		}
	}
	const total = n * n
	return core.Color{R: float32(r / total), G: float32(g / total), B: float32(bl / total), A: float32(a / total)}
}
