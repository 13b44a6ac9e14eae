// Package mesh builds the indexed triangle meshes used by the lighting and
// material demos: parametric height-field surfaces, axis-aligned cubes and
// the tiled floor.
package mesh

import (
	"fmt"

	"lightlab/math"
)

// Triangle is an ordered triple of vertex indices. Counter-clockwise winding,
// seen from the outside, faces outward.
type Triangle [3]uint32

// Mesh holds positions, optional texture coordinates and triangles.
// When UVs is non-nil it has one entry per position. A mesh is never
// modified after a builder returns it.
type Mesh struct {
	Positions []math.Vec3
	UVs       []math.Vec2
	Triangles []Triangle
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

func (m *Mesh) HasUVs() bool {
	return m.UVs != nil
}

// Indices flattens the triangle list into a single index slice.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// Validate checks that every triangle references an existing vertex and
// that the texture coordinates, if present, match the positions.
func (m *Mesh) Validate() error {
	if m.UVs != nil && len(m.UVs) != len(m.Positions) {
		return fmt.Errorf("mesh: %d texture coordinates for %d positions", len(m.UVs), len(m.Positions))
	}
	n := uint32(len(m.Positions))
	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx >= n {
				return fmt.Errorf("mesh: triangle %d references vertex %d of %d", i, idx, n)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the positions. An empty
// mesh yields zero vectors.
func (m *Mesh) Bounds() (min, max math.Vec3) {
	if len(m.Positions) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// UVBounds returns the bounding rectangle of the texture coordinates.
// Brushes are stretched over this rectangle when a material is applied, so
// coordinates need not lie in [0,1]. Without UVs it returns (0,0)-(1,1).
func (m *Mesh) UVBounds() (min, max math.Vec2) {
	if len(m.UVs) == 0 {
		return math.Vec2{}, math.Vec2{X: 1, Y: 1}
	}
	min, max = m.UVs[0], m.UVs[0]
	for _, uv := range m.UVs[1:] {
		if uv.X < min.X {
			min.X = uv.X
		}
		if uv.Y < min.Y {
			min.Y = uv.Y
		}
		if uv.X > max.X {
			max.X = uv.X
		}
		if uv.Y > max.Y {
			max.Y = uv.Y
		}
	}
	return min, max
}

// Normals computes smooth per-vertex normals by summing the area-weighted
// face normals of the triangles sharing each vertex. Vertices not used by
// any triangle, or only by degenerate ones, get a zero normal.
func (m *Mesh) Normals() []math.Vec3 {
	normals := make([]math.Vec3, len(m.Positions))
	for _, t := range m.Triangles {
		p0, p1, p2 := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
		// unnormalized, so larger faces weigh more
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		if !face.IsFinite() {
			continue
		}
		for _, idx := range t {
			normals[idx] = normals[idx].Add(face)
		}
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
