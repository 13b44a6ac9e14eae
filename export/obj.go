// Package export writes meshes and models to Wavefront OBJ and binary glTF,
// and reads them back for inspection.
package export

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"lightlab/math"
	"lightlab/mesh"
)

// WriteOBJ writes m as a single OBJ object. Texture coordinates are written
// when the mesh has them, and faces then reference them as v/vt.
func WriteOBJ(w io.Writer, m *mesh.Mesh, name string) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(p.X), ftoa(p.Y), ftoa(p.Z))
	}
	uv := m.HasUVs()
	if uv {
		for _, t := range m.UVs {
			fmt.Fprintf(bw, "vt %s %s\n", ftoa(t.X), ftoa(t.Y))
		}
	}
	for _, tri := range m.Triangles {
		a, b, c := tri[0]+1, tri[1]+1, tri[2]+1
		if uv {
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: write obj: %w", err)
	}
	return nil
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ReadOBJ parses the geometry of an OBJ stream into one mesh. Groups and
// objects are merged, normals and materials are ignored, and polygons are
// fan-triangulated. Each distinct v/vt pair becomes one vertex.
func ReadOBJ(r io.Reader) (*mesh.Mesh, error) {
	var positions []math.Vec3
	var uvs []math.Vec2

	out := &mesh.Mesh{}
	vertexMap := make(map[string]uint32) // "v/vt" -> vertex index
	anyUV := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("export: obj line %d: short vertex", lineNo)
			}
			p, err := parseFloats(parts[1:4])
			if err != nil {
				return nil, fmt.Errorf("export: obj line %d: %w", lineNo, err)
			}
			positions = append(positions, math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		case "vt":
			if len(parts) < 3 {
				return nil, fmt.Errorf("export: obj line %d: short texture coordinate", lineNo)
			}
			t, err := parseFloats(parts[1:3])
			if err != nil {
				return nil, fmt.Errorf("export: obj line %d: %w", lineNo, err)
			}
			uvs = append(uvs, math.Vec2{X: t[0], Y: t[1]})
		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("export: obj line %d: face needs three vertices", lineNo)
			}
			face := make([]uint32, 0, len(parts)-1)
			for _, tok := range parts[1:] {
				key, vi, ti, err := faceVertex(tok, len(positions), len(uvs))
				if err != nil {
					return nil, fmt.Errorf("export: obj line %d: %w", lineNo, err)
				}
				if idx, ok := vertexMap[key]; ok {
					face = append(face, idx)
					continue
				}
				idx := uint32(len(out.Positions))
				out.Positions = append(out.Positions, positions[vi])
				if ti >= 0 {
					out.UVs = append(out.UVs, uvs[ti])
					anyUV = true
				} else {
					out.UVs = append(out.UVs, math.Vec2{})
				}
				vertexMap[key] = idx
				face = append(face, idx)
			}
			for i := 2; i < len(face); i++ {
				out.Triangles = append(out.Triangles, mesh.Triangle{face[0], face[i-1], face[i]})
			}
		case "vn", "o", "g", "s", "usemtl", "mtllib":
		default:
			slog.Debug("obj: skipping record", "line", lineNo, "kind", parts[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("export: read obj: %w", err)
	}
	if len(out.Triangles) == 0 {
		return nil, fmt.Errorf("export: no faces found in obj")
	}
	if !anyUV {
		out.UVs = nil
	}
	return out, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// faceVertex resolves one "v", "v/vt", "v//vn" or "v/vt/vn" token into
// zero-based position and texture indices. Negative OBJ indices count back
// from the latest entry. ti is -1 when the token has no texture index.
func faceVertex(tok string, nPos, nUV int) (key string, vi, ti int, err error) {
	fields := strings.Split(tok, "/")
	vi, err = objIndex(fields[0], nPos)
	if err != nil {
		return "", 0, 0, err
	}
	ti = -1
	if len(fields) > 1 && fields[1] != "" {
		ti, err = objIndex(fields[1], nUV)
		if err != nil {
			return "", 0, 0, err
		}
	}
	return fmt.Sprintf("%d/%d", vi, ti), vi, ti, nil
}

func objIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	if i < 0 {
		i += n
	} else {
		i--
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range (%d entries)", s, n)
	}
	return i, nil
}
