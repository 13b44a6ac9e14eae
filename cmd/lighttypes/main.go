// Command lighttypes shows a white floor lit by any combination of an
// ambient, a directional, a point and a spot light.
//
// Keys 1-4 toggle the lights. Drag or use the arrow keys to orbit, scroll
// or press +/- to zoom, W toggles wireframe and Esc quits.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"lightlab/config"
	"lightlab/demo/lighttypes"
	"lightlab/internal/logx"
	"lightlab/internal/window"
	"lightlab/renderer"
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
	var cfgPath, level string
	cmd := &cobra.Command{
		Use:          "lighttypes",
		Short:        "Compare ambient, directional, point and spot lights",
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
			if _, err := logx.Setup(cfg.Log.Level, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "TOML settings file")
	cmd.Flags().StringVar(&level, "log-level", "", "log level: debug, info, warn or error")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	s, err := lighttypes.New(cfg.Floor.HalfExtent, cfg.Floor.CellSize)
	if err != nil {
		return err
	}

	re, err := renderer.New(cfg, "Light Types")
	if err != nil {
		return err
	}
	defer re.Destroy()
	re.Group = s.Group

	updateTitle := func() {
		var on []string
		for _, it := range s.Lights.Items() {
			if it.Checked {
				on = append(on, it.Caption)
			}
		}
		if len(on) == 0 {
			on = []string{"no lights"}
		}
		re.SetTitle("Light Types - " + strings.Join(on, ", "))
	}
	updateTitle()

	re.OnKey(func(k window.Key) bool {
		id := toggle.ID(k - window.Key1)
		if k < window.Key1 || k > window.Key9 || int(id) >= s.Lights.Len() {
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
