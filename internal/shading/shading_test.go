package shading

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightlab/core"
	"lightlab/math"
	"lightlab/mesh"
	"lightlab/scene"
)

func TestPackLightsDemoSet(t *testing.T) {
	lights := []scene.Light{
		scene.NewAmbientLight(core.ColorGray),
		scene.NewDirectionalLight(core.ColorGray, math.Vec3{X: 1, Y: -3, Z: -2}),
		scene.NewPointLight(core.ColorWhite, math.Vec3{Y: 1}),
		scene.NewSpotLight(core.ColorWhite, math.Vec3{Y: 3, Z: -3}, math.Vec3{Y: -3, Z: 3}, 45, 30),
	}
	got := PackLights(lights)

	assert.Equal(t, core.ColorGray.Vec3(), got.Ambient)

	require.Len(t, got.Directional, 1)
	dir := got.Directional[0].Direction
	assert.InDelta(t, 1/stdmath.Sqrt(14), dir[0], 1e-6)
	assert.InDelta(t, -3/stdmath.Sqrt(14), dir[1], 1e-6)

	require.Len(t, got.Point, 1)
	assert.Equal(t, [3]float32{0, 1, 0}, got.Point[0].Position)
	assert.Equal(t, [3]float32{1, 0, 0}, got.Point[0].Attenuation)
	assert.Zero(t, got.Point[0].Range)

	require.Len(t, got.Spot, 1)
	spot := got.Spot[0]
	assert.InDelta(t, stdmath.Cos(22.5*stdmath.Pi/180), spot.CosOuter, 1e-6)
	assert.InDelta(t, stdmath.Cos(15*stdmath.Pi/180), spot.CosInner, 1e-6)
	assert.InDelta(t, -stdmath.Sqrt2/2, spot.Direction[1], 1e-6)
	assert.Zero(t, got.Dropped)
}

func TestPackLightsSumsAmbientAndCaps(t *testing.T) {
	var lights []scene.Light
	lights = append(lights,
		scene.NewAmbientLight(core.Color{R: 0.25, G: 0.25, B: 0.25, A: 1}),
		scene.NewAmbientLight(core.Color{R: 0.25, G: 0, B: 0, A: 1}),
	)
	for i := 0; i < MaxPoint+2; i++ {
		lights = append(lights, scene.NewPointLight(core.ColorWhite, math.Vec3{X: float64(i)}))
	}
	got := PackLights(lights)

	assert.Equal(t, [3]float32{0.5, 0.25, 0.25}, got.Ambient)
	assert.Len(t, got.Point, MaxPoint)
	assert.Equal(t, 2, got.Dropped)
}

func TestPackLightsFiniteRange(t *testing.T) {
	p := scene.NewPointLight(core.ColorWhite, math.Vec3{})
	p.Range = 12
	p.QuadraticAttenuation = 0.5
	got := PackLights([]scene.Light{p})
	assert.Equal(t, float32(12), got.Point[0].Range)
	assert.Equal(t, float32(0.5), got.Point[0].Attenuation[2])
}

func TestPasses(t *testing.T) {
	grad := scene.NewRadialGradientBrush(scene.GradientStop{Color: core.ColorBlue, Offset: 0})
	mat := scene.NewMaterialGroup(
		scene.NewDiffuseMaterial(grad),
		scene.NewSpecularMaterial(scene.NewSolidBrush(core.ColorLightBlue), 100),
		scene.NewEmissiveMaterial(scene.NewSolidBrush(core.ColorDarkBlue)),
		scene.NewDiffuseMaterial(nil),
	)

	passes := Passes(mat)
	require.Len(t, passes, 3)

	assert.Equal(t, PassDiffuse, passes[0].Kind)
	assert.Same(t, grad, passes[0].Brush)
	assert.Equal(t, core.ColorWhite, passes[0].Color)

	assert.Equal(t, PassSpecular, passes[1].Kind)
	assert.Equal(t, float32(100), passes[1].SpecularPower)
	assert.Equal(t, core.ColorLightBlue, passes[1].Color)
	assert.Nil(t, passes[1].Brush)

	assert.Equal(t, PassEmissive, passes[2].Kind)
	assert.Equal(t, "emissive", passes[2].Kind.String())

	assert.Empty(t, Passes(nil))
	assert.Empty(t, Passes(scene.NewMaterialGroup()))
}

func TestPassBlendModes(t *testing.T) {
	mat := scene.NewMaterialGroup(
		scene.NewDiffuseMaterial(scene.NewImageBrush(scene.SmileyImage(8))),
		scene.NewDiffuseMaterial(scene.NewSolidBrush(core.ColorLightBlue)),
		scene.NewSpecularMaterial(scene.NewSolidBrush(core.ColorLightBlue), 100),
		scene.NewEmissiveMaterial(scene.NewSolidBrush(core.ColorDarkBlue)),
	)

	passes := Passes(mat)
	require.Len(t, passes, 4)
	assert.Equal(t, BlendOver, passes[0].Blend)
	assert.Equal(t, BlendOver, passes[1].Blend)
	assert.Equal(t, BlendAdd, passes[2].Blend)
	assert.Equal(t, BlendAdd, passes[3].Blend)
	assert.Equal(t, float32(1), passes[1].Color.A)
}

func TestPackVerticesRemapsUVBounds(t *testing.T) {
	m, err := mesh.BuildSurface(-3, -3, 3, 3, 2, 2, mesh.Paraboloid(2, 5))
	require.NoError(t, err)

	data := PackVertices(m)
	require.Len(t, data, 9*VertexStride)

	first := data[:VertexStride]
	assert.Equal(t, float32(-3), first[0])
	assert.Equal(t, float32(0), first[6])
	assert.Equal(t, float32(0), first[7])

	last := data[8*VertexStride:]
	assert.Equal(t, float32(1), last[6])
	assert.Equal(t, float32(1), last[7])

	centre := data[4*VertexStride:]
	assert.Equal(t, float32(0.5), centre[6])
	// the dome's apex normal points straight up
	assert.InDelta(t, 1, centre[4], 1e-6)
}

func TestPackVerticesWithoutUVs(t *testing.T) {
	data := PackVertices(mesh.BuildCube(0, 0, 0, 1))
	require.Len(t, data, 24*VertexStride)
	for i := 0; i < 24; i++ {
		assert.Zero(t, data[i*VertexStride+6])
		assert.Zero(t, data[i*VertexStride+7])
	}
}
