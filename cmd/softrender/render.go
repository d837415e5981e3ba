package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/taigrr/softrender/pkg/render"
)

func newRenderCmd() *cobra.Command {
	var opts sceneOptions

	cmd := &cobra.Command{
		Use:   "render <model> <output>",
		Short: "Render a model to a PNG or TIFF image",
		Long: "Render a raw triangle file or glTF/GLB mesh. The image format follows the\n" +
			"output extension (.png, .tif, .tiff).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]
			if _, err := render.ImageFormatFromPath(output); err != nil {
				return err
			}

			j, err := opts.load(cmd, input)
			if err != nil {
				return err
			}

			var stats render.Stats
			target, err := j.renderTo(render.Options{Stats: &stats})
			if err != nil {
				return err
			}
			if err := target.Save(output); err != nil {
				return err
			}

			slog.Info("rendered", slog.String("input", input), slog.String("output", output), slog.String("stats", stats.String()))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %s\n", output, target.Width, target.Height, stats)
			return nil
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}
