// Package lighttypes builds the light types demo: a white floor lit by any
// combination of an ambient, a directional, a point and a spot light.
package lighttypes

import (
	"fmt"
	"log/slog"

	"lightlab/core"
	"lightlab/math"
	"lightlab/mesh"
	"lightlab/scene"
	"lightlab/toggle"
)

// Toggle IDs in panel order.
const (
	Ambient toggle.ID = iota
	Directional
	Point
	Spot
)

// FieldOfView is the camera's vertical field of view in degrees.
const FieldOfView = 60

type Scene struct {
	Group  *scene.Group
	Floor  *scene.Model
	Lights *toggle.Panel[scene.Light]

	display *toggle.Display[scene.Node]
}

// New builds the floor and the light toggles. All lights start off.
func New(halfExtent, cellSize float64) (*Scene, error) {
	floor, err := mesh.BuildGridFloor(halfExtent, cellSize)
	if err != nil {
		return nil, fmt.Errorf("lighttypes: floor: %w", err)
	}

	s := &Scene{
		Floor:   scene.NewModel("floor", floor, scene.NewDiffuseMaterial(scene.NewSolidBrush(core.ColorWhite))),
		Lights:  toggle.NewPanel[scene.Light](),
		display: toggle.NewDisplay[scene.Node](),
	}
	s.Group = scene.NewGroup(s.Floor)

	s.addAmbient(core.ColorGray)
	s.addDirectional(core.ColorGray, math.NewVec3(1, -3, -2))
	s.addPoint(core.ColorWhite, math.NewVec3(0, 1, 0))
	s.addSpot(core.ColorWhite, math.NewVec3(0, 3, -3), math.NewVec3(0, -3, 3), 45, 30)

	s.Lights.OnChange(s.sync)
	slog.Debug("light types scene built",
		"vertices", floor.VertexCount(), "triangles", floor.TriangleCount())
	return s, nil
}

func (s *Scene) addAmbient(c core.Color) {
	s.Lights.Add("Ambient", scene.NewAmbientLight(c))
}

func (s *Scene) addDirectional(c core.Color, dir math.Vec3) {
	s.Lights.Add(fmt.Sprintf("<%g, %g, %g>", dir.X, dir.Y, dir.Z), scene.NewDirectionalLight(c, dir))
}

func (s *Scene) addPoint(c core.Color, pos math.Vec3) {
	s.Lights.Add(fmt.Sprintf("Point(%g, %g, %g)", pos.X, pos.Y, pos.Z), scene.NewPointLight(c, pos))
}

func (s *Scene) addSpot(c core.Color, pos, dir math.Vec3, outer, inner float64) {
	s.Lights.Add(fmt.Sprintf("Spot(%g, %g, %g)", pos.X, pos.Y, pos.Z), scene.NewSpotLight(c, pos, dir, outer, inner))
}

// Set switches one light and re-syncs all of them with the group.
func (s *Scene) Set(id toggle.ID, on bool) error {
	return s.Lights.Set(id, on)
}

// Toggle flips one light and returns its new state.
func (s *Scene) Toggle(id toggle.ID) (bool, error) {
	return s.Lights.Toggle(id)
}

func (s *Scene) sync() {
	selected := s.Lights.Selected()
	desired := make([]scene.Node, len(selected))
	for i, l := range selected {
		desired[i] = l
	}
	added, removed := s.display.Sync(s.Group, desired)
	if len(added) > 0 || len(removed) > 0 {
		slog.Info("lights changed", "added", len(added), "removed", len(removed), "on", len(desired))
	}
}
