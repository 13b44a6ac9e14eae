package mesh

import (
	stdmath "math"

	"lightlab/math"
)

// maxFloorCells keeps 4n² vertex indices within uint32.
const maxFloorCells = 32767

// BuildGridFloor tiles the square [-halfExtent, halfExtent]² in the y = 0
// plane with cells of side cellSize. The number of cells per axis is
// 2*halfExtent/cellSize rounded to the nearest integer (at least one), and
// the cell size is adjusted so the tiles cover the square exactly.
//
// Cells do not share vertices: every cell contributes four vertices and two
// upward-facing triangles, 4n² vertices and 2n² triangles in total.
func BuildGridFloor(halfExtent, cellSize float64) (*Mesh, error) {
	const op = "BuildGridFloor"
	if !(halfExtent > 0) || stdmath.IsInf(halfExtent, 0) {
		return nil, invalid(op, "halfExtent", "must be positive and finite, got %g", halfExtent)
	}
	if !(cellSize > 0) {
		return nil, invalid(op, "cellSize", "must be positive, got %g", cellSize)
	}

	cells := stdmath.Round(2 * halfExtent / cellSize)
	if cells > maxFloorCells {
		return nil, invalid(op, "cellSize", "%g yields more than %d cells per side", cellSize, maxFloorCells)
	}
	n := max(int(cells), 1)
	d := 2 * halfExtent / float64(n)

	m := &Mesh{
		Positions: make([]math.Vec3, 0, 4*n*n),
		Triangles: make([]Triangle, 0, 2*n*n),
	}
	for i := 0; i < n; i++ {
		x := -halfExtent + float64(i)*d
		for j := 0; j < n; j++ {
			z := -halfExtent + float64(j)*d
			idx := uint32(len(m.Positions))
			m.Positions = append(m.Positions,
				math.Vec3{X: x, Y: 0, Z: z},
				math.Vec3{X: x, Y: 0, Z: z + d},
				math.Vec3{X: x + d, Y: 0, Z: z + d},
				math.Vec3{X: x + d, Y: 0, Z: z},
			)
			m.Triangles = append(m.Triangles, Triangle{idx, idx + 1, idx + 2}, Triangle{idx, idx + 2, idx + 3})
		}
	}
	return m, nil
}
