package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/colornames"

	"lightlab/core"
	"lightlab/export"
	"lightlab/mesh"
	"lightlab/scene"
)

func newSurfaceCmd() *cobra.Command {
	var (
		out                    string
		xMin, zMin, xMax, zMax float64
		numX, numZ             int
		peak, scale            float64
		normalized, parallel   bool
		color                  string
	)
	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Tessellate y = peak - (x²+z²)/scale over a rectangle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireOut(out); err != nil {
				return err
			}
			var opts []mesh.SurfaceOption
			if normalized {
				opts = append(opts, mesh.WithNormalizedUV())
			}
			f := mesh.Paraboloid(peak, scale)
			var m *mesh.Mesh
			var err error
			if parallel {
				m, err = mesh.BuildSurfaceParallel(cmd.Context(), xMin, zMin, xMax, zMax, numX, numZ, f, opts...)
			} else {
				m, err = mesh.BuildSurface(xMin, zMin, xMax, zMax, numX, numZ, f, opts...)
			}
			if err != nil {
				return err
			}
			return write(cmd, out, "surface", m, color)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&out, "out", "o", "", "output file (.obj or .glb)")
	fl.Float64Var(&xMin, "x-min", -3, "lowest x")
	fl.Float64Var(&zMin, "z-min", -3, "lowest z")
	fl.Float64Var(&xMax, "x-max", 3, "highest x")
	fl.Float64Var(&zMax, "z-max", 3, "highest z")
	fl.IntVar(&numX, "num-x", 50, "cells along x")
	fl.IntVar(&numZ, "num-z", 50, "cells along z")
	fl.Float64Var(&peak, "peak", 2, "height at the origin")
	fl.Float64Var(&scale, "scale", 5, "divisor of x²+z²")
	fl.BoolVar(&normalized, "normalized-uv", false, "shift texture coordinates to start at 0")
	fl.BoolVar(&parallel, "parallel", false, "evaluate rows concurrently")
	fl.StringVar(&color, "color", "", "diffuse color name for .glb output")
	return cmd
}

func newCubeCmd() *cobra.Command {
	var (
		out, center, color string
		width              float64
	)
	cmd := &cobra.Command{
		Use:   "cube",
		Short: "Build an axis-aligned cube with flat-shaded faces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireOut(out); err != nil {
				return err
			}
			c, err := parseVec(center)
			if err != nil {
				return fmt.Errorf("--center: %w", err)
			}
			return write(cmd, out, "cube", mesh.BuildCube(c[0], c[1], c[2], width), color)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&out, "out", "o", "", "output file (.obj or .glb)")
	fl.StringVar(&center, "center", "0,0,0", "centre as x,y,z")
	fl.Float64Var(&width, "width", 1, "edge length")
	fl.StringVar(&color, "color", "", "diffuse color name for .glb output")
	return cmd
}

func newFloorCmd() *cobra.Command {
	var (
		out, color       string
		halfExtent, cell float64
	)
	cmd := &cobra.Command{
		Use:   "floor",
		Short: "Tile a square in the y = 0 plane",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireOut(out); err != nil {
				return err
			}
			m, err := mesh.BuildGridFloor(halfExtent, cell)
			if err != nil {
				return err
			}
			return write(cmd, out, "floor", m, color)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&out, "out", "o", "", "output file (.obj or .glb)")
	fl.Float64Var(&halfExtent, "half-extent", 5, "half the side of the square")
	fl.Float64Var(&cell, "cell", 0.1, "approximate cell size")
	fl.StringVar(&color, "color", "white", "diffuse color name for .glb output")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Print vertex and triangle counts of .obj, .gltf or .glb files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				meshes, err := readMeshes(path)
				if err != nil {
					return err
				}
				for i, m := range meshes {
					lo, hi := m.Bounds()
					fmt.Fprintf(cmd.OutOrStdout(), "%s[%d]: %d vertices, %d triangles, uv=%t, bounds %v..%v\n",
						path, i, m.VertexCount(), m.TriangleCount(), m.HasUVs(), lo, hi)
				}
			}
			return nil
		},
	}
}

func readMeshes(path string) ([]*mesh.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		m, err := export.ReadOBJ(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []*mesh.Mesh{m}, nil
	case ".gltf", ".glb":
		return export.LoadGLTF(path)
	}
	return nil, fmt.Errorf("%s: unsupported extension", path)
}

func write(cmd *cobra.Command, out, name string, m *mesh.Mesh, color string) error {
	switch strings.ToLower(filepath.Ext(out)) {
	case ".obj":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := export.WriteOBJ(f, m, name); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case ".glb":
		mat, err := material(color)
		if err != nil {
			return err
		}
		if err := export.SaveGLB(out, []*scene.Model{scene.NewModel(name, m, mat)}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%s: output must end in .obj or .glb", out)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d vertices, %d triangles\n", out, m.VertexCount(), m.TriangleCount())
	return nil
}

func material(name string) (scene.Material, error) {
	if name == "" {
		return nil, nil
	}
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown color %q", name)
	}
	return scene.NewDiffuseMaterial(scene.NewSolidBrush(core.ColorFrom(c))), nil
}

func parseVec(s string) ([3]float64, error) {
	var v [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("want x,y,z, got %q", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}
