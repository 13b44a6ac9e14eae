// Command meshgen writes the demo meshes to OBJ or binary glTF files and
// reports the size of existing ones.
//
//	meshgen surface -o dome.glb --num-x 50 --num-z 50
//	meshgen cube -o sun.obj --center 0,3,2 --width 0.25
//	meshgen floor -o floor.glb --half-extent 5 --cell 0.1
//	meshgen inspect floor.glb
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"lightlab/internal/logx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var level string
	root := &cobra.Command{
		Use:          "meshgen",
		Short:        "Generate surface, cube and floor meshes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := logx.Setup(level, cmd.ErrOrStderr())
			return err
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "info", "log level: debug, info, warn or error")
	root.AddCommand(newSurfaceCmd(), newCubeCmd(), newFloorCmd(), newInspectCmd())
	return root
}

func requireOut(out string) error {
	if out == "" {
		return fmt.Errorf("an output file is required (-o)")
	}
	return nil
}
