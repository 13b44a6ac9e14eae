// Command materials shows a paraboloid surface drawn with any combination
// of image, solid, gradient, specular and emissive materials, layered in a
// fixed order.
//
// Keys 1-6 toggle the materials and A toggles the axis cubes. Drag or use
// the arrow keys to orbit, scroll or press +/- to zoom, W toggles wireframe
// and Esc quits.
package main

import (
	"context"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"lightlab/config"
	"lightlab/demo/materials"
	"lightlab/internal/logx"
	"lightlab/internal/window"
	"lightlab/renderer"
	"lightlab/scene"
	"lightlab/toggle"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath, level, imagePath string
	var axes bool
	cmd := &cobra.Command{
		Use:          "materials",
		Short:        "Layer diffuse, specular and emissive materials on a surface",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if level != "" {
				cfg.Log.Level = level
			}
			if imagePath != "" {
				cfg.Materials.Image = imagePath
			}
			if cmd.Flags().Changed("axes") {
				cfg.Materials.ShowAxes = axes
			}
			if _, err := logx.Setup(cfg.Log.Level, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "TOML settings file")
	cmd.Flags().StringVar(&level, "log-level", "", "log level: debug, info, warn or error")
	cmd.Flags().StringVar(&imagePath, "image", "", "picture for the Image material")
	cmd.Flags().BoolVar(&axes, "axes", false, "show the axis cubes")
	return cmd
}

func loadImage(path string) image.Image {
	if path == "" {
		return nil
	}
	img, err := scene.LoadImage(path)
	if err != nil {
		slog.Warn("using built-in smiley", "err", err)
		return nil
	}
	return img
}

func options(cfg config.Config) materials.Options {
	sc := cfg.Surface
	return materials.Options{
		XMin: sc.XMin, ZMin: sc.ZMin, XMax: sc.XMax, ZMax: sc.ZMax,
		NumX: sc.NumX, NumZ: sc.NumZ,
		NormalizedUV: sc.NormalizedUV,
		Parallel:     sc.Parallel,
		Image:        loadImage(cfg.Materials.Image),
		ShowAxes:     cfg.Materials.ShowAxes,
	}
}

func run(ctx context.Context, cfg config.Config) error {
	s, err := materials.New(ctx, options(cfg))
	if err != nil {
		return err
	}

	re, err := renderer.New(cfg, "Materials")
	if err != nil {
		return err
	}
	defer re.Destroy()
	re.Group = s.Group

	updateTitle := func() {
		var on []string
		for _, it := range s.Materials.Items() {
			if it.Checked {
				on = append(on, it.Caption)
			}
		}
		if len(on) == 0 {
			on = []string{"no material"}
		}
		re.SetTitle("Materials - " + strings.Join(on, " + "))
	}
	updateTitle()

	re.OnKey(func(k window.Key) bool {
		if k == window.KeyA {
			s.SetAxesVisible(!s.AxesVisible())
			return true
		}
		id := toggle.ID(k - window.Key1)
		if k < window.Key1 || k > window.Key9 || int(id) >= s.Materials.Len() {
			return false
		}
		if _, err := s.Toggle(id); err != nil {
			return false
		}
		updateTitle()
		return true
	})

	return re.Run(ctx)
}
