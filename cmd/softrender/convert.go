package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigrr/softrender/pkg/models"
	"github.com/taigrr/softrender/pkg/render"
)

func newConvertCmd() *cobra.Command {
	var fit float32

	cmd := &cobra.Command{
		Use:   "convert <model> <output.raw>",
		Short: "Write a glTF/GLB or raw model as raw triangles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := sceneOptions{fit: fit}
			mesh, err := opts.model(args[0])
			if err != nil {
				return err
			}
			tris := render.TrianglesFromMesh(mesh)
			if err := models.SaveRaw(args[1], tris); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d triangles\n", args[1], tris.Len())
			return nil
		},
	}
	cmd.Flags().Float32Var(&fit, "fit", 0, "center the model and scale its largest extent to this size")
	return cmd
}
