package camera

import (
	stdmath "math"

	"lightlab/math"
)

// Key is a controller command bound to a keyboard key by the caller.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyZoomIn
	KeyZoomOut
)

const (
	// phi stays just short of the poles so the up vector is never parallel
	// to the view direction.
	maxPhi = stdmath.Pi/2 - 0.01
	minR   = 0.5
)

// Spherical orbits a camera around the origin. The camera sits at
//
//	(R cosφ cosθ, R sinφ, R cosφ sinθ)
//
// and always looks at the origin with +Y up.
type Spherical struct {
	R, Theta, Phi float64

	// DragSpeed is radians per pixel of pointer movement.
	DragSpeed float64
	// KeyAngle is the rotation per arrow key press, in radians.
	KeyAngle float64
	// KeyDistance is the change in R per zoom key press.
	KeyDistance float64
	// WheelFactor scales R per wheel notch; below 1 zooms in on scroll up.
	WheelFactor float64

	cam *Camera
}

// NewSpherical attaches a controller to cam and positions it.
func NewSpherical(cam *Camera, r, theta, phi float64) *Spherical {
	s := &Spherical{
		R:           r,
		Theta:       theta,
		Phi:         phi,
		DragSpeed:   0.01,
		KeyAngle:    stdmath.Pi / 30,
		KeyDistance: 0.5,
		WheelFactor: 0.9,
		cam:         cam,
	}
	s.Update()
	return s
}

// Update clamps the spherical coordinates and moves the camera to match.
func (s *Spherical) Update() {
	s.Phi = stdmath.Max(-maxPhi, stdmath.Min(maxPhi, s.Phi))
	if s.R < minR {
		s.R = minR
	}

	cosPhi, sinPhi := stdmath.Cos(s.Phi), stdmath.Sin(s.Phi)
	s.cam.Position = math.Vec3{
		X: s.R * cosPhi * stdmath.Cos(s.Theta),
		Y: s.R * sinPhi,
		Z: s.R * cosPhi * stdmath.Sin(s.Theta),
	}
	s.cam.Target = math.Vec3Zero
	s.cam.Up = math.Vec3Up
}

// Drag rotates the camera by a pointer movement in pixels. Horizontal
// movement spins around the Y axis; vertical movement raises or lowers the
// camera.
func (s *Spherical) Drag(dx, dy float64) {
	s.Theta += dx * s.DragSpeed
	s.Phi += dy * s.DragSpeed
	s.Update()
}

// Wheel zooms by notches; positive values move closer.
func (s *Spherical) Wheel(notches float64) {
	s.R *= stdmath.Pow(s.WheelFactor, notches)
	s.Update()
}

// HandleKey applies a key command and reports whether it was recognised.
func (s *Spherical) HandleKey(k Key) bool {
	switch k {
	case KeyLeft:
		s.Theta += s.KeyAngle
	case KeyRight:
		s.Theta -= s.KeyAngle
	case KeyUp:
		s.Phi += s.KeyAngle
	case KeyDown:
		s.Phi -= s.KeyAngle
	case KeyZoomIn:
		s.R -= s.KeyDistance
	case KeyZoomOut:
		s.R += s.KeyDistance
	default:
		return false
	}
	s.Update()
	return true
}
