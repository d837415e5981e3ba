package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/taigrr/softrender/pkg/models"
	"github.com/taigrr/softrender/pkg/render"
	"github.com/taigrr/softrender/pkg/scene"
	"github.com/taigrr/softrender/pkg/status"
)

// sceneOptions are the flags shared by every command that renders.
type sceneOptions struct {
	configPath string
	sets       []string
	width      int
	height     int
	zbuffer    bool
	cull       bool
	fit        float32
	meshColor  bool
}

func (o *sceneOptions) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "configuration file (INI, TOML or YAML)")
	fs.StringArrayVar(&o.sets, "set", nil, "override a configuration key, as Key=Value (repeatable)")
	fs.IntVar(&o.width, "width", 0, "output width in pixels")
	fs.IntVar(&o.height, "height", 0, "output height in pixels")
	fs.BoolVar(&o.zbuffer, "zbuffer", false, "resolve visibility with a depth buffer instead of painter's sorting")
	fs.BoolVar(&o.cull, "cull", false, "drop triangles facing away from the camera")
	fs.Float32Var(&o.fit, "fit", 0, "center the model and scale its largest extent to this size (0 keeps it as is)")
	fs.BoolVar(&o.meshColor, "mesh-color", false, "use the glTF base color as the material")
}

// config loads the configuration file, if any, and applies the flag
// overrides in order: --set pairs first, then the dedicated flags that were
// given explicitly.
func (o *sceneOptions) config(flags *pflag.FlagSet) (scene.Config, error) {
	cfg := scene.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = scene.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	for _, kv := range o.sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return cfg, fmt.Errorf("--set %q: want Key=Value: %w", kv, status.InvalidValue)
		}
		if err := cfg.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return cfg, err
		}
	}

	overrides := []struct {
		flag, key, value string
	}{
		{"width", scene.KeyWidth, strconv.Itoa(o.width)},
		{"height", scene.KeyHeight, strconv.Itoa(o.height)},
		{"zbuffer", scene.KeyZBuffer, boolKey(o.zbuffer)},
		{"cull", scene.KeyBackfaceCulling, boolKey(o.cull)},
	}
	for _, ov := range overrides {
		if flags == nil || !flags.Changed(ov.flag) {
			continue
		}
		if err := cfg.Set(ov.key, ov.value); err != nil {
			return cfg, fmt.Errorf("--%s: %w", ov.flag, err)
		}
	}

	return cfg, cfg.Validate()
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// model loads the mesh at path and applies --fit.
func (o *sceneOptions) model(path string) (*models.Mesh, error) {
	mesh, err := models.Load(path)
	if err != nil {
		return nil, err
	}
	if o.fit > 0 {
		mesh.Fit(o.fit)
	}
	return mesh, nil
}

// job is everything a single render needs.
type job struct {
	tris render.TriangleBuffer
	cfg  scene.Config
}

func (o *sceneOptions) load(cmd *cobra.Command, input string) (job, error) {
	cfg, err := o.config(cmd.Flags())
	if err != nil {
		return job{}, err
	}
	mesh, err := o.model(input)
	if err != nil {
		return job{}, err
	}
	if o.meshColor {
		if c, ok := mesh.BaseColor(); ok {
			cfg.Material = c
		}
	}
	return job{tris: render.TrianglesFromMesh(mesh), cfg: cfg}, nil
}

// renderTo renders j to a new surface sized by its configuration.
func (j job) renderTo(opts render.Options) (*render.Surface, error) {
	target := render.NewSurface(j.cfg.Width, j.cfg.Height)
	if err := render.RenderWith(j.tris, j.cfg, target, opts); err != nil {
		return nil, err
	}
	return target, nil
}
