package mesh_test

import (
	"context"
	"errors"
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightlab/math"
	"lightlab/mesh"
)

var dome = mesh.Paraboloid(2, 5)

func TestBuildSurfaceSmallGrid(t *testing.T) {
	m, err := mesh.BuildSurface(-3, -3, 3, 3, 2, 2, dome)
	require.NoError(t, err)

	require.Equal(t, 9, m.VertexCount())
	require.Equal(t, 8, m.TriangleCount())

	assert.InDelta(t, -3, m.Positions[0].X, 1e-12)
	assert.InDelta(t, -3, m.Positions[0].Z, 1e-12)
	// 2 - (9+9)/5
	assert.InDelta(t, -1.6, m.Positions[0].Y, 1e-12)

	// centre vertex is (i=1, j=1) -> 1*3+1
	center := m.Positions[4]
	assert.Equal(t, math.Vec3{X: 0, Y: 2, Z: 0}, center)

	last := m.Positions[8]
	assert.Equal(t, 3.0, last.X)
	assert.Equal(t, 3.0, last.Z)
	assert.InDelta(t, -1.6, last.Y, 1e-12)
}

func TestBuildSurfaceCounts(t *testing.T) {
	tests := []struct {
		numX, numZ int
	}{
		{1, 1},
		{1, 7},
		{5, 3},
		{50, 50},
	}
	for _, tt := range tests {
		m, err := mesh.BuildSurface(-1, -2, 4, 2, tt.numX, tt.numZ, dome)
		require.NoError(t, err)
		assert.Equal(t, (tt.numX+1)*(tt.numZ+1), m.VertexCount(), "%dx%d", tt.numX, tt.numZ)
		assert.Equal(t, 2*tt.numX*tt.numZ, m.TriangleCount(), "%dx%d", tt.numX, tt.numZ)
		assert.Len(t, m.UVs, m.VertexCount())
		assert.NoError(t, m.Validate())
	}
}

func TestBuildSurfaceHeights(t *testing.T) {
	m, err := mesh.BuildSurface(-3, -3, 3, 3, 10, 7, dome)
	require.NoError(t, err)
	for i, p := range m.Positions {
		assert.Equal(t, dome(p.X, p.Z), p.Y, "vertex %d", i)
	}
}

func TestBuildSurfaceVertexOrder(t *testing.T) {
	m, err := mesh.BuildSurface(0, 0, 2, 3, 2, 3, func(x, z float64) float64 { return 0 })
	require.NoError(t, err)

	// x is the outer loop, z the inner one
	want := []math.Vec3{
		{X: 0, Z: 0}, {X: 0, Z: 1}, {X: 0, Z: 2}, {X: 0, Z: 3},
		{X: 1, Z: 0}, {X: 1, Z: 1}, {X: 1, Z: 2}, {X: 1, Z: 3},
		{X: 2, Z: 0}, {X: 2, Z: 1}, {X: 2, Z: 2}, {X: 2, Z: 3},
	}
	assert.Equal(t, want, m.Positions)

	assert.Equal(t, mesh.Triangle{0, 1, 5}, m.Triangles[0])
	assert.Equal(t, mesh.Triangle{0, 5, 4}, m.Triangles[1])
	assert.Equal(t, mesh.Triangle{6, 7, 11}, m.Triangles[len(m.Triangles)-2])
	assert.Equal(t, mesh.Triangle{6, 11, 10}, m.Triangles[len(m.Triangles)-1])
}

func TestBuildSurfaceFacesUp(t *testing.T) {
	m, err := mesh.BuildSurface(-1, -1, 1, 1, 4, 4, func(x, z float64) float64 { return 0 })
	require.NoError(t, err)
	for _, n := range m.Normals() {
		assert.InDelta(t, 1, n.Y, 1e-12)
	}
}

func TestBuildSurfaceTextureCoordinates(t *testing.T) {
	m, err := mesh.BuildSurface(-3, -3, 3, 3, 2, 2, dome)
	require.NoError(t, err)

	// u = x/width, not shifted by xMin
	assert.Equal(t, math.Vec2{X: -0.5, Y: -0.5}, m.UVs[0])
	assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}, m.UVs[8])

	lo, hi := m.UVBounds()
	assert.Equal(t, math.Vec2{X: -0.5, Y: -0.5}, lo)
	assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}, hi)

	n, err := mesh.BuildSurface(-3, -3, 3, 3, 2, 2, dome, mesh.WithNormalizedUV())
	require.NoError(t, err)
	assert.Equal(t, math.Vec2{X: 0, Y: 0}, n.UVs[0])
	assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}, n.UVs[4])
	assert.Equal(t, math.Vec2{X: 1, Y: 1}, n.UVs[8])
	assert.Equal(t, m.Positions, n.Positions)
}

func TestBuildSurfaceIsDeterministic(t *testing.T) {
	a, err := mesh.BuildSurface(-3, -3, 3, 3, 13, 9, dome)
	require.NoError(t, err)
	b, err := mesh.BuildSurface(-3, -3, 3, 3, 13, 9, dome)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildSurfaceInvalidArguments(t *testing.T) {
	tests := []struct {
		name                   string
		xMin, zMin, xMax, zMax float64
		numX, numZ             int
		f                      mesh.HeightFunc
	}{
		{"zero numX", -1, -1, 1, 1, 0, 4, dome},
		{"negative numZ", -1, -1, 1, 1, 4, -2, dome},
		{"empty x range", 1, -1, 1, 1, 4, 4, dome},
		{"reversed z range", -1, 1, 1, -1, 4, 4, dome},
		{"nil height function", -1, -1, 1, 1, 4, 4, nil},
		{"numX wraps on increment", 0, 0, 1, 1, stdmath.MaxInt, 1, dome},
		{"numZ wraps on increment", 0, 0, 1, 1, 1, stdmath.MaxInt, dome},
		{"too many vertices", 0, 0, 1, 1, 1 << 16, 1 << 16, dome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := mesh.BuildSurface(tt.xMin, tt.zMin, tt.xMax, tt.zMax, tt.numX, tt.numZ, tt.f)
			assert.Nil(t, m)
			require.Error(t, err)
			assert.True(t, errors.Is(err, mesh.ErrInvalidArgument))

			var argErr *mesh.ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, "BuildSurface", argErr.Op)
		})
	}
}

func TestBuildSurfaceNonFiniteHeights(t *testing.T) {
	m, err := mesh.BuildSurface(-1, -1, 1, 1, 2, 2, func(x, z float64) float64 { return 1 / x })
	require.NoError(t, err)
	assert.NoError(t, m.Validate())
	assert.Len(t, m.Normals(), m.VertexCount())
}

func TestBuildSurfaceParallelMatchesSequential(t *testing.T) {
	want, err := mesh.BuildSurface(-3, -3, 3, 3, 50, 50, dome)
	require.NoError(t, err)
	got, err := mesh.BuildSurfaceParallel(context.Background(), -3, -3, 3, 3, 50, 50, dome)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	wantN, err := mesh.BuildSurface(0, 0, 1, 2, 7, 3, dome, mesh.WithNormalizedUV())
	require.NoError(t, err)
	gotN, err := mesh.BuildSurfaceParallel(context.Background(), 0, 0, 1, 2, 7, 3, dome, mesh.WithNormalizedUV())
	require.NoError(t, err)
	assert.Equal(t, wantN, gotN)
}

func TestBuildSurfaceParallelErrors(t *testing.T) {
	_, err := mesh.BuildSurfaceParallel(context.Background(), 0, 0, 1, 1, 0, 1, dome)
	assert.ErrorIs(t, err, mesh.ErrInvalidArgument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, err := mesh.BuildSurfaceParallel(ctx, 0, 0, 1, 1, 4, 4, dome)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, context.Canceled)

	m, err = mesh.BuildSurfaceParallel(context.Background(), 0, 0, 1, 1, 4, 4, func(x, z float64) float64 {
		panic("boom")
	})
	assert.Nil(t, m)
	assert.ErrorContains(t, err, "boom")
}

func BenchmarkBuildSurface(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = mesh.BuildSurface(-3, -3, 3, 3, 200, 200, dome)
	}
}
