package mesh

import "lightlab/math"

// cubeCorners lists, per face, the sign of each corner offset from the
// centre. Faces run bottom, +z, +x, top, -x, -z and each is wound
// counter-clockwise seen from outside.
var cubeCorners = [24][3]float64{
	{-1, -1, -1}, {+1, -1, -1}, {+1, -1, +1}, {-1, -1, +1},
	{-1, -1, +1}, {+1, -1, +1}, {+1, +1, +1}, {-1, +1, +1},
	{+1, -1, +1}, {+1, -1, -1}, {+1, +1, -1}, {+1, +1, +1},
	{+1, +1, +1}, {+1, +1, -1}, {-1, +1, -1}, {-1, +1, +1},
	{-1, -1, +1}, {-1, +1, +1}, {-1, +1, -1}, {-1, -1, -1},
	{-1, -1, -1}, {-1, +1, -1}, {+1, +1, -1}, {+1, -1, -1},
}

// BuildCube returns a cube of edge length width centred on (cx, cy, cz).
// Each face owns its four vertices so faces shade flat. The width is not
// validated; a negative width turns the cube inside out.
func BuildCube(cx, cy, cz, width float64) *Mesh {
	h := width / 2
	m := &Mesh{
		Positions: make([]math.Vec3, 0, len(cubeCorners)),
		Triangles: make([]Triangle, 0, 12),
	}
	for _, c := range cubeCorners {
		m.Positions = append(m.Positions, math.Vec3{X: cx + c[0]*h, Y: cy + c[1]*h, Z: cz + c[2]*h})
	}
	for face := uint32(0); face < 6; face++ {
		b := face * 4
		m.Triangles = append(m.Triangles, Triangle{b, b + 1, b + 2}, Triangle{b + 2, b + 3, b})
	}
	return m
}
