package export

import (
	"fmt"
	"io"
	"log/slog"
	stdmath "math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"lightlab/core"
	"lightlab/math"
	"lightlab/mesh"
	"lightlab/scene"
)

const generator = "lightlab"

// BuildGLTF converts models into a glTF document with one node and one mesh
// per model, in order. Layered materials are collapsed to a single
// metallic-roughness material: the first diffuse layer sets the base
// color, emissive layers add to the emissive factor and the sharpest
// specular layer sets the roughness. Brushes contribute their average
// color. Models with no material are exported untextured.
func BuildGLTF(models []*scene.Model) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	for _, mdl := range models {
		if mdl == nil || mdl.Mesh == nil || mdl.Mesh.IsEmpty() {
			slog.Warn("gltf: skipping empty model")
			continue
		}
		m := mdl.Mesh
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("export: model %q: %w", mdl.Name, err)
		}

		attrs := map[string]int{
			"POSITION": modeler.WritePosition(doc, vec3s(m.Positions)),
			"NORMAL":   modeler.WriteNormal(doc, vec3s(m.Normals())),
		}
		if m.HasUVs() {
			attrs["TEXCOORD_0"] = modeler.WriteTextureCoord(doc, vec2s(m.UVs))
		}
		prim := &gltf.Primitive{
			Attributes: attrs,
			Indices:    gltf.Index(modeler.WriteIndices(doc, m.Indices())),
		}
		if mat := convertMaterial(mdl.Name, mdl.Material); mat != nil {
			doc.Materials = append(doc.Materials, mat)
			prim.Material = gltf.Index(len(doc.Materials) - 1)
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: mdl.Name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: mdl.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc, nil
}

// WriteGLB encodes models as binary glTF.
func WriteGLB(w io.Writer, models []*scene.Model) error {
	doc, err := BuildGLTF(models)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode glb: %w", err)
	}
	return nil
}

// SaveGLB writes models to a .glb file.
func SaveGLB(path string, models []*scene.Model) error {
	doc, err := BuildGLTF(models)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("export: save %q: %w", path, err)
	}
	slog.Info("glb written", "path", path, "meshes", len(doc.Meshes))
	return nil
}

// roughnessFor inverts the shininess mapping used when importing glTF:
// power = (1-r)²·128 + 1.
func roughnessFor(power float64) float64 {
	if power <= 1 {
		return 1
	}
	r := 1 - stdmath.Sqrt((power-1)/128)
	return stdmath.Max(0, stdmath.Min(1, r))
}

func convertMaterial(name string, m scene.Material) *gltf.Material {
	layers := scene.Layers(m)
	if len(layers) == 0 {
		return nil
	}

	base := core.ColorBlack
	haveBase := false
	var emissive [3]float64
	roughness := 1.0
	for _, l := range layers {
		b := scene.LayerBrush(l)
		if b == nil {
			continue
		}
		c := scene.AverageColor(b)
		switch l := l.(type) {
		case *scene.DiffuseMaterial:
			if !haveBase {
				base, haveBase = c, true
			}
		case *scene.EmissiveMaterial:
			emissive[0] = stdmath.Min(1, emissive[0]+float64(c.R))
			emissive[1] = stdmath.Min(1, emissive[1]+float64(c.G))
			emissive[2] = stdmath.Min(1, emissive[2]+float64(c.B))
		case *scene.SpecularMaterial:
			roughness = stdmath.Min(roughness, roughnessFor(l.SpecularPower))
		}
	}

	return &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(base.R), float64(base.G), float64(base.B), 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(roughness),
		},
		EmissiveFactor: emissive,
	}
}

// LoadGLTF reads every triangle primitive of a .gltf or .glb file as a mesh.
func LoadGLTF(path string) ([]*mesh.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: gltf open %q: %w", path, err)
	}
	return documentMeshes(doc)
}

// ReadGLB decodes a binary glTF stream, as LoadGLTF does for files.
func ReadGLB(r io.Reader) ([]*mesh.Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("export: decode glb: %w", err)
	}
	return documentMeshes(doc)
}

func documentMeshes(doc *gltf.Document) ([]*mesh.Mesh, error) {
	var out []*mesh.Mesh
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("export: mesh %d prim %d: %w", mi, pi, err)
			}
			out = append(out, m)
		}
	}
	return out, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*mesh.Mesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	m := &mesh.Mesh{Positions: make([]math.Vec3, len(positions))}
	for i, p := range positions {
		m.Positions[i] = math.Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
	}

	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
		m.UVs = make([]math.Vec2, len(uvs))
		for i, t := range uvs {
			m.UVs[i] = math.Vec2{X: float64(t[0]), Y: float64(t[1])}
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%d indices do not form triangles", len(indices))
	}
	m.Triangles = make([]mesh.Triangle, len(indices)/3)
	for i := range m.Triangles {
		m.Triangles[i] = mesh.Triangle{indices[3*i], indices[3*i+1], indices[3*i+2]}
	}
	return m, m.Validate()
}

func vec3s(vs []math.Vec3) [][3]float32 {
	out := make([][3]float32, len(vs))
	for i, v := range vs {
		out[i] = v.Float32()
	}
	return out
}

func vec2s(vs []math.Vec2) [][2]float32 {
	out := make([][2]float32, len(vs))
	for i, v := range vs {
		out[i] = v.Float32()
	}
	return out
}
