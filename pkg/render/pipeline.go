package render

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/scene"
	"github.com/taigrr/softrender/pkg/status"
)

// DefaultMaxCanvasPixels caps the supersampled canvas a render may
// allocate (1 GiB of color plus 1 GiB of depth).
const DefaultMaxCanvasPixels = 1 << 28

// Options tune a render without changing what it draws.
type Options struct {
	// Rand picks painter's-mode sort pivots. Nil uses the global source.
	Rand *rand.Rand

	// Stats, when set, receives per-stage counts.
	Stats *Stats

	// MaxCanvasPixels bounds 2W·2H. Zero means DefaultMaxCanvasPixels.
	MaxCanvasPixels int64
}

// Render draws tris into target using cfg. See RenderWith.
func Render(tris TriangleBuffer, cfg scene.Config, target *Surface) error {
	return RenderWith(tris, cfg, target, Options{})
}

// RenderWith clears target and draws tris into it. The aspect ratio and
// viewport come from target's dimensions.
//
// A render that culls or clips away every triangle succeeds and leaves
// target transparent. tris is never modified. Errors carry a status.Code:
// InvalidValue for a bad configuration or target and OutOfMemory when the
// supersampled canvas would exceed the pixel budget.
func RenderWith(tris TriangleBuffer, cfg scene.Config, target *Surface, opts Options) error {
	start := time.Now()
	log := Logger()

	if target == nil || target.Width < 1 || target.Height < 1 || len(target.Pixels) != target.Width*target.Height {
		return fmt.Errorf("render target: %w", status.InvalidValue)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	limit := opts.MaxCanvasPixels
	if limit <= 0 {
		limit = DefaultMaxCanvasPixels
	}
	cw, ch := 2*target.Width, 2*target.Height
	if int64(cw)*int64(ch) > limit {
		return fmt.Errorf("canvas %dx%d exceeds %d pixels: %w", cw, ch, limit, status.OutOfMemory)
	}

	target.Clear()

	var stats Stats
	defer func() {
		stats.Duration = time.Since(start)
		if opts.Stats != nil {
			*opts.Stats = stats
		}
		log.Debug("render finished", slog.String("stats", stats.String()))
	}()

	stats.Input = len(tris)
	visible := tris
	if cfg.BackfaceCulling {
		cam := CameraInModelSpace(cfg.CameraPosition, cfg.ObjectPosition, cfg.ObjectRotation, cfg.ObjectScale)
		visible = Cull(tris, cam)
	}
	stats.Culled = len(visible)
	if len(visible) == 0 {
		log.Debug("nothing left after culling", slog.Int("input", len(tris)))
		return nil
	}

	view := math3d.ViewMatrix(cfg.CameraPosition, cfg.LookAt, cfg.Up)
	object := math3d.ObjectMatrix(cfg.ObjectPosition, cfg.ObjectRotation, cfg.ObjectScale)
	camera := visible.Transform(object.Mul(view))

	lights := Light(camera, view.MulPoint(cfg.LightPosition), cfg.Material)

	aspect := float32(target.Width) / float32(target.Height)
	projected := camera.Transform(math3d.ProjectionMatrix(cfg.FieldOfView, aspect, cfg.Near, cfg.Far))

	screen, lights := Clip(projected, lights)
	stats.Clipped = len(screen)
	if len(screen) == 0 {
		log.Debug("nothing left after clipping", slog.Int("culled", stats.Culled))
		return nil
	}
	screen.TransformInPlace(math3d.ViewportMatrix(target.Width, target.Height))

	canvas := NewSurface(cw, ch)
	raster := NewRasterizer(canvas, cfg.ZBuffer)
	if !cfg.ZBuffer {
		SortByDepth(screen, lights, opts.Rand)
	}
	raster.DrawAll(screen, lights)
	stats.Covered = raster.Covered

	Resolve(canvas, target)
	return nil
}
