package main

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/render"
	"github.com/taigrr/softrender/pkg/scene"
	"github.com/taigrr/softrender/pkg/status"
)

// RotationAxis tracks an angle and a velocity that a critically damped
// spring pulls back to zero.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

// NewRotationAxis creates an axis with a spring stepped fps times a second.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies the velocity and decays it.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Moving reports whether the axis still has visible motion.
func (a *RotationAxis) Moving() bool {
	return a.Velocity > 1e-4 || a.Velocity < -1e-4
}

// viewer is the state of the terminal preview.
type viewer struct {
	tris render.TriangleBuffer
	cfg  scene.Config

	pitch, yaw RotationAxis
	base       math3d.Vec3 // configured rotation
	fps        int

	surface *render.Surface
	last    status.Slot
}

func newViewer(j job, fps int) *viewer {
	return &viewer{
		tris:  j.tris,
		cfg:   j.cfg,
		pitch: NewRotationAxis(fps),
		yaw:   NewRotationAxis(fps),
		base:  j.cfg.ObjectRotation,
		fps:   fps,
	}
}

// resize matches the surface to a terminal of cols×rows cells, two pixels
// per cell vertically. The last row is kept for the status line.
func (v *viewer) resize(cols, rows int) {
	h := max(rows-1, 1) * 2
	w := max(cols, 1)
	v.cfg.Width, v.cfg.Height = min(w, scene.MaxDimension), min(h, scene.MaxDimension)
	v.surface = render.NewSurface(v.cfg.Width, v.cfg.Height)
}

// frame steps the springs and renders into the surface.
func (v *viewer) frame() {
	v.pitch.Update()
	v.yaw.Update()
	cfg := v.cfg
	cfg.ObjectRotation = v.base.Add(math3d.V3(float32(v.pitch.Position), float32(v.yaw.Position), 0))
	if err := render.Render(v.tris, cfg, v.surface); err != nil {
		v.last.Set(err)
		return
	}
	v.last.Clear()
}

func (v *viewer) moving() bool {
	return v.pitch.Moving() || v.yaw.Moving()
}

// key handles one key press and reports whether the viewer should quit.
func (v *viewer) key(ev uv.KeyPressEvent) (quit bool) {
	const impulse = 0.08
	switch {
	case ev.MatchString("q", "esc", "ctrl+c"):
		return true
	case ev.MatchString("left", "a"):
		v.yaw.Velocity -= impulse
	case ev.MatchString("right", "d"):
		v.yaw.Velocity += impulse
	case ev.MatchString("up", "w"):
		v.pitch.Velocity -= impulse
	case ev.MatchString("down", "s"):
		v.pitch.Velocity += impulse
	case ev.MatchString("z"):
		v.cfg.ZBuffer = !v.cfg.ZBuffer
	case ev.MatchString("c"):
		v.cfg.BackfaceCulling = !v.cfg.BackfaceCulling
	case ev.MatchString("r"):
		v.pitch = NewRotationAxis(v.fps)
		v.yaw = NewRotationAxis(v.fps)
	}
	return false
}

func (v *viewer) statusLine() string {
	mode := "painter"
	if v.cfg.ZBuffer {
		mode = "z-buffer"
	}
	cull := "off"
	if v.cfg.BackfaceCulling {
		cull = "on"
	}
	line := fmt.Sprintf(" %d tris | %s | cull %s | arrows rotate, z c r, q quits", len(v.tris), mode, cull)
	if err := v.last.Err(); err != nil {
		line = " " + err.Error()
	}
	return line
}

var statusStyle = uv.Style{Fg: color.Black, Bg: color.Gray{Y: 200}}

func (v *viewer) draw(scr uv.Screen, cols, rows int) {
	v.surface.Draw(scr, uv.Rect(0, 0, cols, max(rows-1, 1)))
	line := []rune(v.statusLine())
	for x := range cols {
		r := " "
		if x < len(line) {
			r = string(line[x])
		}
		scr.SetCell(x, rows-1, &uv.Cell{Content: r, Width: 1, Style: statusStyle})
	}
}

func runViewer(ctx context.Context, v *viewer) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan uv.Event)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	v.resize(width, height)
	dirty := true
	tick := time.NewTicker(time.Second / time.Duration(v.fps))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				v.resize(width, height)
			case uv.KeyPressEvent:
				if v.key(ev) {
					return nil
				}
			}
			dirty = true

		case <-tick.C:
			if !dirty && !v.moving() {
				continue
			}
			dirty = false
			v.frame()
			v.draw(term, width, height)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

func newViewCmd() *cobra.Command {
	var (
		opts sceneOptions
		fps  int
	)

	cmd := &cobra.Command{
		Use:   "view <model>",
		Short: "Preview a model in the terminal",
		Long: `Render a model into the terminal using half-block cells.

Keys:
  arrows / wasd  rotate
  z              toggle z-buffer
  c              toggle backface culling
  r              reset rotation
  q / esc        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fps < 1 {
				return fmt.Errorf("--fps %d: %w", fps, status.InvalidValue)
			}
			j, err := opts.load(cmd, args[0])
			if err != nil {
				return err
			}
			return runViewer(cmd.Context(), newViewer(j, fps))
		},
	}
	opts.bind(cmd.Flags())
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second while the model is spinning")
	return cmd
}
