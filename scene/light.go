package scene

import (
	stdmath "math"

	"lightlab/core"
	"lightlab/math"
)

// Light is one of *AmbientLight, *DirectionalLight, *PointLight or
// *SpotLight. Lights affect every model in the group that holds them.
type Light interface {
	Node
	LightColor() core.Color
}

// AmbientLight lights every surface uniformly from all directions.
type AmbientLight struct {
	Color core.Color
}

// DirectionalLight shines parallel rays along Direction.
type DirectionalLight struct {
	Color     core.Color
	Direction math.Vec3
}

// PointLight radiates from Position in all directions. Intensity falls off
// as 1/(c + l*d + q*d²) and is zero beyond Range.
type PointLight struct {
	Color                core.Color
	Position             math.Vec3
	Range                float64
	ConstantAttenuation  float64
	LinearAttenuation    float64
	QuadraticAttenuation float64
}

// SpotLight is a point light limited to a cone around Direction. Inside
// InnerConeAngle it is at full strength; it fades to nothing at
// OuterConeAngle. Both angles are full cone angles in degrees.
type SpotLight struct {
	PointLight
	Direction      math.Vec3
	OuterConeAngle float64
	InnerConeAngle float64
}

func NewAmbientLight(c core.Color) *AmbientLight {
	return &AmbientLight{Color: c}
}

func NewDirectionalLight(c core.Color, direction math.Vec3) *DirectionalLight {
	return &DirectionalLight{Color: c, Direction: direction}
}

// NewPointLight returns a light with constant attenuation and unlimited
// range.
func NewPointLight(c core.Color, position math.Vec3) *PointLight {
	return &PointLight{
		Color:               c,
		Position:            position,
		Range:               stdmath.Inf(1),
		ConstantAttenuation: 1,
	}
}

func NewSpotLight(c core.Color, position, direction math.Vec3, outer, inner float64) *SpotLight {
	return &SpotLight{
		PointLight:     *NewPointLight(c, position),
		Direction:      direction,
		OuterConeAngle: outer,
		InnerConeAngle: inner,
	}
}

func (l *AmbientLight) LightColor() core.Color     { return l.Color }
func (l *DirectionalLight) LightColor() core.Color { return l.Color }
func (l *PointLight) LightColor() core.Color       { return l.Color }

func (*AmbientLight) node()     {}
func (*DirectionalLight) node() {}
func (*PointLight) node()       {}
func (*SpotLight) node()        {}
