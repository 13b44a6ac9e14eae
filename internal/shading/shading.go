// Package shading converts scene lights, materials and meshes into the flat
// data the OpenGL renderer uploads. It has no GL dependency.
package shading

import (
	stdmath "math"

	"lightlab/core"
	"lightlab/mesh"
	"lightlab/scene"
)

// Limits match the array sizes declared in the fragment shader.
const (
	MaxDirectional = 4
	MaxPoint       = 8
	MaxSpot        = 4
)

type DirLight struct {
	Color     [3]float32
	Direction [3]float32 // normalized, pointing away from the light
}

type PointLight struct {
	Color       [3]float32
	Position    [3]float32
	Attenuation [3]float32 // constant, linear, quadratic
	Range       float32    // 0 means unlimited
}

type SpotLight struct {
	PointLight
	Direction [3]float32
	CosOuter  float32 // cosine of the outer half angle
	CosInner  float32 // cosine of the inner half angle
}

// Lights is the per-frame light block.
type Lights struct {
	Ambient     [3]float32
	Directional []DirLight
	Point       []PointLight
	Spot        []SpotLight
	// Dropped counts lights beyond the shader limits.
	Dropped int
}

// PackLights sums ambient lights and collects the rest, up to the shader
// limits, in scene order.
func PackLights(lights []scene.Light) Lights {
	var out Lights
	for _, l := range lights {
		switch l := l.(type) {
		case *scene.AmbientLight:
			for i, v := range l.Color.Vec3() {
				out.Ambient[i] += v
			}
		case *scene.DirectionalLight:
			if len(out.Directional) == MaxDirectional {
				out.Dropped++
				continue
			}
			out.Directional = append(out.Directional, DirLight{
				Color:     l.Color.Vec3(),
				Direction: l.Direction.Normalize().Float32(),
			})
		case *scene.SpotLight:
			if len(out.Spot) == MaxSpot {
				out.Dropped++
				continue
			}
			outer := stdmath.Cos(stdmath.Min(l.OuterConeAngle, 180) * stdmath.Pi / 360)
			inner := stdmath.Cos(stdmath.Min(l.InnerConeAngle, l.OuterConeAngle) * stdmath.Pi / 360)
			out.Spot = append(out.Spot, SpotLight{
				PointLight: packPoint(&l.PointLight),
				Direction:  l.Direction.Normalize().Float32(),
				CosOuter:   float32(outer),
				CosInner:   float32(inner),
			})
		case *scene.PointLight:
			if len(out.Point) == MaxPoint {
				out.Dropped++
				continue
			}
			out.Point = append(out.Point, packPoint(l))
		}
	}
	return out
}

func packPoint(l *scene.PointLight) PointLight {
	r := float32(0)
	if !stdmath.IsInf(l.Range, 1) && l.Range > 0 {
		r = float32(l.Range)
	}
	return PointLight{
		Color:    l.Color.Vec3(),
		Position: l.Position.Float32(),
		Attenuation: [3]float32{
			float32(l.ConstantAttenuation),
			float32(l.LinearAttenuation),
			float32(l.QuadraticAttenuation),
		},
		Range: r,
	}
}

// PassKind selects the lighting term a pass contributes.
type PassKind int

const (
	PassDiffuse PassKind = iota
	PassSpecular
	PassEmissive
)

func (k PassKind) String() string {
	switch k {
	case PassDiffuse:
		return "diffuse"
	case PassSpecular:
		return "specular"
	case PassEmissive:
		return "emissive"
	}
	return "unknown"
}

// Blend selects how a pass combines with what earlier passes drew.
type Blend int

const (
	// BlendOver composites the pass over the result by its alpha.
	BlendOver Blend = iota
	// BlendAdd adds the pass to the result.
	BlendAdd
)

// Pass is one draw of a model. The first pass is drawn opaque; later passes
// combine with it according to Blend.
type Pass struct {
	Kind  PassKind
	Blend Blend
	Color core.Color
	// Brush is set when the layer needs a texture; Color is then white.
	Brush         scene.Brush
	SpecularPower float32
}

// Passes expands a material into draw passes in layer order.
func Passes(m scene.Material) []Pass {
	var out []Pass
	for _, layer := range scene.Layers(m) {
		p := Pass{Color: core.ColorWhite}
		switch l := layer.(type) {
		case *scene.DiffuseMaterial:
			p.Kind = PassDiffuse
		case *scene.SpecularMaterial:
			p.Kind = PassSpecular
			p.Blend = BlendAdd
			p.SpecularPower = float32(l.SpecularPower)
		case *scene.EmissiveMaterial:
			p.Kind = PassEmissive
			p.Blend = BlendAdd
		default:
			continue
		}
		switch b := scene.LayerBrush(layer).(type) {
		case nil:
			continue
		case *scene.SolidBrush:
			p.Color = b.Color
		default:
			p.Brush = b
		}
		out = append(out, p)
	}
	return out
}

// VertexStride is the number of float32 values per packed vertex:
// position, normal and brush coordinate.
const VertexStride = 8

// PackVertices interleaves positions, smooth normals and brush coordinates.
// Texture coordinates are remapped from the mesh's UV bounding box onto
// [0,1] so brushes stretch over the whole surface whatever range the
// coordinates were generated in.
func PackVertices(m *mesh.Mesh) []float32 {
	normals := m.Normals()
	lo, hi := m.UVBounds()
	du, dv := hi.X-lo.X, hi.Y-lo.Y

	out := make([]float32, 0, len(m.Positions)*VertexStride)
	for i, p := range m.Positions {
		var u, v float64
		if m.HasUVs() {
			if du > 0 {
				u = (m.UVs[i].X - lo.X) / du
			}
			if dv > 0 {
				v = (m.UVs[i].Y - lo.Y) / dv
			}
		}
		n := normals[i]
		out = append(out,
			float32(p.X), float32(p.Y), float32(p.Z),
			float32(n.X), float32(n.Y), float32(n.Z),
			float32(u), float32(v),
		)
	}
	return out
}
