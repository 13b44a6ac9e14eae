package lighttypes

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightlab/core"
	"lightlab/scene"
	"lightlab/toggle"
)

func newScene(t *testing.T) *Scene {
	t.Helper()
	s, err := New(5, 0.1)
	require.NoError(t, err)
	return s
}

func TestNewStartsDark(t *testing.T) {
	s := newScene(t)

	assert.Equal(t, 1, s.Group.Len())
	assert.Empty(t, s.Group.Lights())
	assert.Equal(t, 40000, s.Floor.Mesh.VertexCount())
	assert.Equal(t, 20000, s.Floor.Mesh.TriangleCount())

	d, ok := s.Floor.Material.(*scene.DiffuseMaterial)
	require.True(t, ok)
	assert.Equal(t, core.ColorWhite, d.Brush.ColorAt(0, 0))
}

func TestCaptionsInOrder(t *testing.T) {
	s := newScene(t)

	var captions []string
	for _, it := range s.Lights.Items() {
		captions = append(captions, it.Caption)
		assert.False(t, it.Checked)
	}
	assert.Equal(t, []string{"Ambient", "<1, -3, -2>", "Point(0, 1, 0)", "Spot(0, 3, -3)"}, captions)
}

func TestLightDefinitions(t *testing.T) {
	items := newScene(t).Lights.Items()

	amb := items[Ambient].Value.(*scene.AmbientLight)
	assert.Equal(t, core.ColorGray, amb.Color)

	dir := items[Directional].Value.(*scene.DirectionalLight)
	assert.Equal(t, core.ColorGray, dir.Color)
	assert.Equal(t, -3.0, dir.Direction.Y)

	pt := items[Point].Value.(*scene.PointLight)
	assert.Equal(t, core.ColorWhite, pt.Color)
	assert.True(t, stdmath.IsInf(pt.Range, 1))

	spot := items[Spot].Value.(*scene.SpotLight)
	assert.Equal(t, 45.0, spot.OuterConeAngle)
	assert.Equal(t, 30.0, spot.InnerConeAngle)
	assert.Equal(t, 3.0, spot.Direction.Z)
}

func TestSetAddsAndRemovesLights(t *testing.T) {
	s := newScene(t)

	require.NoError(t, s.Set(Point, true))
	require.NoError(t, s.Set(Ambient, true))
	lights := s.Group.Lights()
	require.Len(t, lights, 2)
	assert.IsType(t, &scene.PointLight{}, lights[0])
	assert.IsType(t, &scene.AmbientLight{}, lights[1])

	require.NoError(t, s.Set(Point, false))
	lights = s.Group.Lights()
	require.Len(t, lights, 1)
	assert.IsType(t, &scene.AmbientLight{}, lights[0])
	assert.True(t, s.Group.Contains(s.Floor))
}

func TestSetTwiceDoesNotDuplicate(t *testing.T) {
	s := newScene(t)

	require.NoError(t, s.Set(Spot, true))
	require.NoError(t, s.Set(Spot, true))
	assert.Len(t, s.Group.Lights(), 1)
}

func TestToggleAll(t *testing.T) {
	s := newScene(t)

	for id := Ambient; id <= Spot; id++ {
		on, err := s.Toggle(id)
		require.NoError(t, err)
		assert.True(t, on)
	}
	assert.Len(t, s.Group.Lights(), 4)

	for id := Ambient; id <= Spot; id++ {
		_, err := s.Toggle(id)
		require.NoError(t, err)
	}
	assert.Empty(t, s.Group.Lights())
	assert.Equal(t, 1, s.Group.Len())
}

func TestUnknownToggle(t *testing.T) {
	s := newScene(t)
	assert.ErrorIs(t, s.Set(toggle.ID(9), true), toggle.ErrUnknownToggle)
}

func TestNewRejectsBadFloor(t *testing.T) {
	_, err := New(0, 0.1)
	assert.Error(t, err)
}
