// Package camera provides a perspective camera and the spherical orbit
// controller the demos steer it with.
package camera

import (
	"lightlab/math"
)

// Camera is a perspective camera. FieldOfView is the vertical field of view
// in degrees.
type Camera struct {
	Position    math.Vec3
	Target      math.Vec3
	Up          math.Vec3
	FieldOfView float64
	Near        float64
	Far         float64
}

// New returns a camera at the origin looking down -Z.
func New(fov float64) *Camera {
	return &Camera{
		Target:      math.Vec3{Z: -1},
		Up:          math.Vec3Up,
		FieldOfView: fov,
		Near:        0.1,
		Far:         1000,
	}
}

func (c *Camera) View() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection(aspect float64) math.Mat4 {
	return math.Mat4Perspective(math.DegToRad(c.FieldOfView), aspect, c.Near, c.Far)
}

// ViewProjection composes view then projection for row vectors.
func (c *Camera) ViewProjection(aspect float64) math.Mat4 {
	return c.View().Mul(c.Projection(aspect))
}
