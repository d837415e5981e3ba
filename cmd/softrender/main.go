// softrender - software 3D renderer
// Renders raw triangle files and glTF/GLB meshes to PNG or TIFF, or to
// the terminal.
//
// Commands:
//
//	render     - Render one model to an image
//	batch      - Render every job in a YAML or TOML manifest
//	watch      - Re-render whenever the model or config changes
//	view       - Interactive terminal preview
//	turntable  - Render a spring-eased rotation as numbered frames
//	convert    - Write any model as raw triangles
//	config     - Print the effective configuration
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/softrender/pkg/render"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "softrender",
		Short: "Software 3D renderer",
		Long: "softrender rasterizes triangle meshes on the CPU with flat Lambertian shading,\n" +
			"homogeneous clipping and 2x2 supersampling.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			render.SetLogger(logger)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline statistics")

	root.AddCommand(
		newRenderCmd(),
		newBatchCmd(),
		newWatchCmd(),
		newViewCmd(),
		newTurntableCmd(),
		newConvertCmd(),
		newConfigCmd(),
	)
	return root
}
