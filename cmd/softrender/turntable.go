package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/harmonica"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/render"
	"github.com/taigrr/softrender/pkg/status"
	"golang.org/x/sync/errgroup"
)

// turntableAngles returns the Y rotation of each frame. A spring chases a
// target that advances evenly through turns full revolutions, so the motion
// eases in from rest and settles on the final angle in the last frame.
func turntableAngles(frames, fps int, turns, frequency, damping float64) []float64 {
	if frames <= 0 {
		return nil
	}
	spring := harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
	end := turns * 2 * math.Pi

	angles := make([]float64, frames)
	var pos, vel float64
	for i := range angles {
		target := end * float64(i+1) / float64(frames)
		pos, vel = spring.Update(pos, vel, target)
		angles[i] = pos
	}
	angles[frames-1] = end
	return angles
}

func newTurntableCmd() *cobra.Command {
	var (
		opts      sceneOptions
		frames    int
		fps       int
		turns     float64
		frequency float64
		damping   float64
		format    string
		jobs      int
	)

	cmd := &cobra.Command{
		Use:   "turntable <model> <outdir>",
		Short: "Render a spring-eased rotation about Y as numbered frames",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 1 || fps < 1 {
				return fmt.Errorf("--frames %d --fps %d must be positive: %w", frames, fps, status.InvalidValue)
			}
			ext := "." + format
			if _, err := render.ImageFormatFromPath(ext); err != nil {
				return err
			}

			j, err := opts.load(cmd, args[0])
			if err != nil {
				return err
			}
			dir, err := homedir.Expand(args[1])
			if err != nil {
				return fmt.Errorf("expand %q: %w", args[1], status.InvalidValue)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %v: %w", dir, err, status.FileOpenFailed)
			}

			angles := turntableAngles(frames, fps, turns, frequency, damping)
			base := j.cfg.ObjectRotation

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			for i, a := range angles {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					fj := j
					fj.cfg.ObjectRotation = base.Add(math3d.V3(0, float32(a), 0))
					target, err := fj.renderTo(render.Options{})
					if err != nil {
						return fmt.Errorf("frame %d: %w", i, err)
					}
					return target.Save(filepath.Join(dir, fmt.Sprintf("frame_%04d%s", i, ext)))
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d frames in %s\n", frames, dir)
			return nil
		},
	}
	opts.bind(cmd.Flags())
	cmd.Flags().IntVar(&frames, "frames", 60, "number of frames")
	cmd.Flags().IntVar(&fps, "fps", 30, "frame rate the spring is stepped at")
	cmd.Flags().Float64Var(&turns, "turns", 1, "full revolutions")
	cmd.Flags().Float64Var(&frequency, "frequency", 6, "spring angular frequency")
	cmd.Flags().Float64Var(&damping, "damping", 1, "spring damping ratio (1 is critical)")
	cmd.Flags().StringVar(&format, "format", "png", "frame format: png or tiff")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "frames to render at once")
	return cmd
}
