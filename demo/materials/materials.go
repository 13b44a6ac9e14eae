// Package materials builds the materials demo: a paraboloid surface whose
// material is rebuilt from whichever material toggles are checked.
package materials

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"lightlab/core"
	"lightlab/math"
	"lightlab/mesh"
	"lightlab/scene"
	"lightlab/toggle"
)

// Toggle IDs in panel order. The order is the layering order.
const (
	Image toggle.ID = iota
	Diffuse
	Linear
	Radial
	Specular
	Emissive
)

const (
	FieldOfView = 60

	sunWidth  = 0.25
	axisDist  = 3
	axisWidth = 0.5
	smileyPx  = 256
)

// Options controls the surface tessellation and optional extras.
type Options struct {
	XMin, ZMin, XMax, ZMax float64
	NumX, NumZ             int
	NormalizedUV           bool
	// Parallel evaluates the height function on several goroutines.
	Parallel bool
	// Image is the picture for the Image material. Nil uses a drawn smiley.
	Image    image.Image
	ShowAxes bool
}

func DefaultOptions() Options {
	return Options{XMin: -3, ZMin: -3, XMax: 3, ZMax: 3, NumX: 50, NumZ: 50}
}

// Height is the demo surface, y = 2 - (x² + z²)/5.
var Height = mesh.Paraboloid(2, 5)

type Scene struct {
	Group   *scene.Group
	Light   *scene.PointLight
	Surface *scene.Model
	Sun     *scene.Model
	// Axes are the axis marker cubes, in the group only while visible.
	Axes      []*scene.Model
	Materials *toggle.Panel[scene.Material]

	surfaceMesh *mesh.Mesh
}

// New builds the lights, the surface with no material, the sun marker and
// the material toggles, all unchecked.
func New(ctx context.Context, opts Options) (*Scene, error) {
	surf, err := buildSurface(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("materials: surface: %w", err)
	}

	s := &Scene{
		Group:       scene.NewGroup(),
		Light:       scene.NewPointLight(core.ColorGray, math.NewVec3(0, 3, 2)),
		Materials:   toggle.NewPanel[scene.Material](),
		surfaceMesh: surf,
	}
	s.Group.Add(scene.NewAmbientLight(core.RGB8(128, 128, 128)))
	s.Group.Add(s.Light)

	s.Surface = scene.NewModel("surface", surf, nil)
	s.Group.Add(s.Surface)

	p := s.Light.Position
	s.Sun = scene.NewModel("sun", mesh.BuildCube(p.X, p.Y, p.Z, sunWidth), scene.NewMaterialGroup(
		scene.NewDiffuseMaterial(scene.NewSolidBrush(core.ColorYellow)),
		scene.NewEmissiveMaterial(scene.NewSolidBrush(core.ColorYellow)),
	))
	s.Group.Add(s.Sun)

	s.Axes = []*scene.Model{
		axis("x-axis", math.NewVec3(axisDist, 0, 0), core.ColorRed),
		axis("y-axis", math.NewVec3(0, axisDist, 0), core.ColorGreen),
		axis("z-axis", math.NewVec3(0, 0, axisDist), core.ColorBlue),
	}
	s.SetAxesVisible(opts.ShowAxes)

	s.addMaterials(opts.Image)
	s.Materials.OnChange(s.useMaterials)

	slog.Debug("materials scene built",
		"vertices", surf.VertexCount(), "triangles", surf.TriangleCount(), "axes", opts.ShowAxes)
	return s, nil
}

func buildSurface(ctx context.Context, o Options) (*mesh.Mesh, error) {
	var surfOpts []mesh.SurfaceOption
	if o.NormalizedUV {
		surfOpts = append(surfOpts, mesh.WithNormalizedUV())
	}
	if o.Parallel {
		return mesh.BuildSurfaceParallel(ctx, o.XMin, o.ZMin, o.XMax, o.ZMax, o.NumX, o.NumZ, Height, surfOpts...)
	}
	return mesh.BuildSurface(o.XMin, o.ZMin, o.XMax, o.ZMax, o.NumX, o.NumZ, Height, surfOpts...)
}

func axis(name string, at math.Vec3, c core.Color) *scene.Model {
	return scene.NewModel(name, mesh.BuildCube(at.X, at.Y, at.Z, axisWidth),
		scene.NewDiffuseMaterial(scene.NewSolidBrush(c)))
}

// SetAxesVisible shows or hides the red, green and blue axis cubes.
func (s *Scene) SetAxesVisible(on bool) {
	for _, m := range s.Axes {
		if on && !s.Group.Contains(m) {
			s.Group.Add(m)
		} else if !on {
			s.Group.Remove(m)
		}
	}
}

func (s *Scene) AxesVisible() bool {
	return len(s.Axes) > 0 && s.Group.Contains(s.Axes[0])
}

func (s *Scene) addMaterials(img image.Image) {
	if img == nil {
		img = scene.SmileyImage(smileyPx)
	}
	s.Materials.Add("Image", scene.NewDiffuseMaterial(scene.NewImageBrush(img)))

	s.Materials.Add("Diffuse", scene.NewDiffuseMaterial(scene.NewSolidBrush(core.ColorLightBlue)))

	linear := scene.NewLinearGradientBrush(math.Vec2{X: 1, Y: 0}, math.Vec2{X: 0, Y: 1},
		scene.GradientStop{Color: core.ColorBlue, Offset: 0},
		scene.GradientStop{Color: core.ColorWhite, Offset: 0.4},
		scene.GradientStop{Color: core.ColorGreen, Offset: 0.5},
		scene.GradientStop{Color: core.ColorWhite, Offset: 0.6},
		scene.GradientStop{Color: core.ColorRed, Offset: 1},
	)
	s.Materials.Add("Linear", scene.NewDiffuseMaterial(linear))

	radial := scene.NewRadialGradientBrush(
		scene.GradientStop{Color: core.ColorBlue, Offset: 0},
		scene.GradientStop{Color: core.ColorWhite, Offset: 0.25},
		scene.GradientStop{Color: core.ColorGreen, Offset: 0.5},
		scene.GradientStop{Color: core.ColorWhite, Offset: 0.75},
		scene.GradientStop{Color: core.ColorRed, Offset: 1},
	)
	s.Materials.Add("Radial", scene.NewDiffuseMaterial(radial))

	s.Materials.Add("Specular", scene.NewSpecularMaterial(scene.NewSolidBrush(core.ColorLightBlue), 100))
	s.Materials.Add("Emissive", scene.NewEmissiveMaterial(scene.NewSolidBrush(core.ColorDarkBlue)))
}

// Set checks or unchecks a material and rebuilds the surface model.
func (s *Scene) Set(id toggle.ID, on bool) error {
	return s.Materials.Set(id, on)
}

// Toggle flips a material and returns its new state.
func (s *Scene) Toggle(id toggle.ID) (bool, error) {
	return s.Materials.Toggle(id)
}

// useMaterials swaps the surface model for a new one over the same mesh
// whose material group holds the checked materials in panel order.
func (s *Scene) useMaterials() {
	s.Group.Remove(s.Surface)
	selected := s.Materials.Selected()
	s.Surface = scene.NewModel("surface", s.surfaceMesh, scene.NewMaterialGroup(selected...))
	s.Group.Add(s.Surface)
	slog.Info("surface material rebuilt", "layers", len(selected))
}
