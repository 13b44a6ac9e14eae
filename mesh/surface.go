package mesh

import (
	"context"
	"fmt"
	stdmath "math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lightlab/math"
)

// HeightFunc returns the surface height y at (x, z). It must be pure.
// Non-finite results are stored as-is; the mesh stays index-valid but the
// affected triangles are degenerate.
type HeightFunc func(x, z float64) float64

// Paraboloid returns f(x,z) = peak - (x²+z²)/scale, a dome centred on the
// origin.
func Paraboloid(peak, scale float64) HeightFunc {
	return func(x, z float64) float64 {
		return peak - (x*x+z*z)/scale
	}
}

type surfaceConfig struct {
	normalizedUV bool
}

// SurfaceOption customises BuildSurface.
type SurfaceOption func(*surfaceConfig)

// WithNormalizedUV shifts texture coordinates by the domain minimum so they
// span exactly [0,1]. By default u = x/(xMax-xMin) and v = z/(zMax-zMin),
// which is offset for domains not starting at zero.
func WithNormalizedUV() SurfaceOption {
	return func(c *surfaceConfig) {
		c.normalizedUV = true
	}
}

// surfaceGrid holds validated parameters shared by the sequential and
// parallel builders.
type surfaceGrid struct {
	xMin, zMin, xMax, zMax float64
	numX, numZ             int
	dx, dz                 float64
	f                      HeightFunc
	cfg                    surfaceConfig
}

func newSurfaceGrid(op string, xMin, zMin, xMax, zMax float64, numX, numZ int, f HeightFunc, opts []SurfaceOption) (*surfaceGrid, error) {
	switch {
	case numX < 1:
		return nil, invalid(op, "numX", "must be at least 1, got %d", numX)
	case numZ < 1:
		return nil, invalid(op, "numZ", "must be at least 1, got %d", numZ)
	case !(xMax > xMin) || stdmath.IsInf(xMax-xMin, 0):
		return nil, invalid(op, "x range", "[%g, %g] is empty or unbounded", xMin, xMax)
	case !(zMax > zMin) || stdmath.IsInf(zMax-zMin, 0):
		return nil, invalid(op, "z range", "[%g, %g] is empty or unbounded", zMin, zMax)
	case f == nil:
		return nil, invalid(op, "height function", "is nil")
	}
	if uint64(numX) >= stdmath.MaxUint32 || uint64(numZ) >= stdmath.MaxUint32 ||
		(uint64(numX)+1)*(uint64(numZ)+1) > stdmath.MaxUint32 ||
		2*uint64(numX)*uint64(numZ) > stdmath.MaxInt32 {
		return nil, invalid(op, "subdivisions", "%dx%d exceed 32-bit vertex indices", numX, numZ)
	}

	g := &surfaceGrid{
		xMin: xMin, zMin: zMin, xMax: xMax, zMax: zMax,
		numX: numX, numZ: numZ,
		dx: (xMax - xMin) / float64(numX),
		dz: (zMax - zMin) / float64(numZ),
		f:  f,
	}
	for _, opt := range opts {
		opt(&g.cfg)
	}
	return g, nil
}

func (g *surfaceGrid) stride() int {
	return g.numZ + 1
}

// fillRow writes the vertices of grid column i (fixed x) into the mesh.
func (g *surfaceGrid) fillRow(m *Mesh, i int) {
	x := g.xMin + float64(i)*g.dx
	if i == g.numX {
		x = g.xMax
	}
	width, depth := g.xMax-g.xMin, g.zMax-g.zMin
	base := i * g.stride()
	for j := 0; j <= g.numZ; j++ {
		z := g.zMin + float64(j)*g.dz
		if j == g.numZ {
			z = g.zMax
		}
		m.Positions[base+j] = math.Vec3{X: x, Y: g.f(x, z), Z: z}
		if g.cfg.normalizedUV {
			m.UVs[base+j] = math.Vec2{X: (x - g.xMin) / width, Y: (z - g.zMin) / depth}
		} else {
			m.UVs[base+j] = math.Vec2{X: x / width, Y: z / depth}
		}
	}
}

func (g *surfaceGrid) alloc() *Mesh {
	n := (g.numX + 1) * g.stride()
	return &Mesh{
		Positions: make([]math.Vec3, n),
		UVs:       make([]math.Vec2, n),
		Triangles: make([]Triangle, 0, 2*g.numX*g.numZ),
	}
}

func (g *surfaceGrid) triangulate(m *Mesh) {
	stride := uint32(g.stride())
	for i := 0; i < g.numX; i++ {
		for j := 0; j < g.numZ; j++ {
			i1 := uint32(i)*stride + uint32(j)
			i2 := i1 + 1
			i3 := i2 + stride
			i4 := i3 - 1
			m.Triangles = append(m.Triangles, Triangle{i1, i2, i3}, Triangle{i1, i3, i4})
		}
	}
}

// BuildSurface tessellates y = f(x, z) over [xMin,xMax]×[zMin,zMax] into
// numX×numZ cells, two triangles each.
//
// Vertices are laid out row-major with x as the outer index, so vertex
// (i, j) sits at i*(numZ+1)+j. Each cell is split along the diagonal from
// (i, j) to (i+1, j+1) with an upward-facing winding for a flat f.
//
// Invalid subdivisions, an empty domain or a nil f fail with an error
// wrapping ErrInvalidArgument.
func BuildSurface(xMin, zMin, xMax, zMax float64, numX, numZ int, f HeightFunc, opts ...SurfaceOption) (*Mesh, error) {
	g, err := newSurfaceGrid("BuildSurface", xMin, zMin, xMax, zMax, numX, numZ, f, opts)
	if err != nil {
		return nil, err
	}
	m := g.alloc()
	for i := 0; i <= g.numX; i++ {
		g.fillRow(m, i)
	}
	g.triangulate(m)
	return m, nil
}

// BuildSurfaceParallel is BuildSurface with the height function evaluated
// for several grid rows at once. The result is identical to BuildSurface.
// f must be safe for concurrent use. A panic inside f is returned as an
// error, and ctx cancellation stops work between rows.
func BuildSurfaceParallel(ctx context.Context, xMin, zMin, xMax, zMax float64, numX, numZ int, f HeightFunc, opts ...SurfaceOption) (*Mesh, error) {
	g, err := newSurfaceGrid("BuildSurfaceParallel", xMin, zMin, xMax, zMax, numX, numZ, f, opts)
	if err != nil {
		return nil, err
	}
	m := g.alloc()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i <= g.numX; i++ {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("mesh: height function panicked on row %d: %v", i, r)
				}
			}()
			if ctxErr := egCtx.Err(); ctxErr != nil {
				return ctxErr
			}
			g.fillRow(m, i)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	g.triangulate(m)
	return m, nil
}
