// Package scene holds the camera, light and object configuration a render
// is driven by, and the loaders that produce it.
package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/status"
)

// MaxDimension is the largest accepted output width or height.
const MaxDimension = 32767

// Color is a linear RGB triple with channels in [0,1].
type Color struct {
	R, G, B float32
}

// Config describes one render. Angles are in radians.
// A Config is a plain value: loaders return a fresh one and the renderer
// never mutates it.
type Config struct {
	LightPosition  math3d.Vec3
	CameraPosition math3d.Vec3
	LookAt         math3d.Vec3
	Up             math3d.Vec3

	ObjectPosition math3d.Vec3
	ObjectRotation math3d.Vec3 // radians, applied X then Y then Z
	ObjectScale    math3d.Vec3

	FieldOfView float32 // vertical, radians
	Near, Far   float32

	Width, Height int

	Material Color

	BackfaceCulling bool
	ZBuffer         bool
}

// Default returns the configuration used when a key is absent.
func Default() Config {
	return Config{
		Up:          math3d.Up(),
		ObjectScale: math3d.V3(1, 1, 1),
		FieldOfView: math3d.Radians(90),
		Near:        0.1,
		Far:         100,
		Width:       600,
		Height:      600,
		Material:    Color{1, 1, 1},
	}
}

// Aspect returns Width/Height.
func (c Config) Aspect() float32 {
	return float32(c.Width) / float32(c.Height)
}

// Validate checks the invariants a render depends on. A Config that fails
// validation must not be rendered.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Width > MaxDimension:
		return fmt.Errorf("output width %d out of range 1..%d: %w", c.Width, MaxDimension, status.InvalidValue)
	case c.Height < 1 || c.Height > MaxDimension:
		return fmt.Errorf("output height %d out of range 1..%d: %w", c.Height, MaxDimension, status.InvalidValue)
	case !(c.FieldOfView > 0 && c.FieldOfView < math3d.Radians(180)):
		return fmt.Errorf("field of view %v rad out of range: %w", c.FieldOfView, status.InvalidValue)
	case !(c.Near > math3d.Epsilon) || !(c.Far > math3d.Epsilon):
		return fmt.Errorf("clip planes near=%v far=%v must be positive: %w", c.Near, c.Far, status.InvalidValue)
	case !(c.Near < c.Far) || math32.IsInf(c.Far, 1):
		return fmt.Errorf("near plane %v must be less than far plane %v: %w", c.Near, c.Far, status.InvalidValue)
	case c.ObjectScale.X == 0 || c.ObjectScale.Y == 0 || c.ObjectScale.Z == 0:
		return fmt.Errorf("object scale %v has a zero component: %w", c.ObjectScale, status.InvalidValue)
	}
	for _, ch := range [...]float32{c.Material.R, c.Material.G, c.Material.B} {
		if ch < 0 || ch > 1 {
			return fmt.Errorf("material reflectance %v outside [0,1]: %w", c.Material, status.InvalidValue)
		}
	}
	return nil
}
