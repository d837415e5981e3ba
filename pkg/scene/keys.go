package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/status"
)

// Section is the configuration section (INI) or top-level table (TOML,
// YAML) that holds the renderer keys.
const Section = "Renderer"

// Key names as they appear in configuration files.
const (
	KeyLightX          = "LightSourcePositionX"
	KeyLightY          = "LightSourcePositionY"
	KeyLightZ          = "LightSourcePositionZ"
	KeyCameraX         = "CameraPositionX"
	KeyCameraY         = "CameraPositionY"
	KeyCameraZ         = "CameraPositionZ"
	KeyLookAtX         = "CameraLookAtPointX"
	KeyLookAtY         = "CameraLookAtPointY"
	KeyLookAtZ         = "CameraLookAtPointZ"
	KeyUpX             = "UpVectorX"
	KeyUpY             = "UpVectorY"
	KeyUpZ             = "UpVectorZ"
	KeyPositionX       = "ObjectPositionX"
	KeyPositionY       = "ObjectPositionY"
	KeyPositionZ       = "ObjectPositionZ"
	KeyRotationX       = "ObjectRotationX"
	KeyRotationY       = "ObjectRotationY"
	KeyRotationZ       = "ObjectRotationZ"
	KeyScaleX          = "ObjectScalingX"
	KeyScaleY          = "ObjectScalingY"
	KeyScaleZ          = "ObjectScalingZ"
	KeyFieldOfView     = "FieldOfView"
	KeyNear            = "zNear"
	KeyFar             = "zFar"
	KeyWidth           = "OutputWidth"
	KeyHeight          = "OutputHeight"
	KeyMaterial        = "MaterialDiffuseReflectance"
	KeyBackfaceCulling = "BackfaceCulling"
	KeyZBuffer         = "UseZBuffer"
)

// vecField maps a component key to the vector it writes.
func (c *Config) vecField(key string) (*float32, bool) {
	fields := map[string]*float32{
		KeyLightX: &c.LightPosition.X, KeyLightY: &c.LightPosition.Y, KeyLightZ: &c.LightPosition.Z,
		KeyCameraX: &c.CameraPosition.X, KeyCameraY: &c.CameraPosition.Y, KeyCameraZ: &c.CameraPosition.Z,
		KeyLookAtX: &c.LookAt.X, KeyLookAtY: &c.LookAt.Y, KeyLookAtZ: &c.LookAt.Z,
		KeyUpX: &c.Up.X, KeyUpY: &c.Up.Y, KeyUpZ: &c.Up.Z,
		KeyPositionX: &c.ObjectPosition.X, KeyPositionY: &c.ObjectPosition.Y, KeyPositionZ: &c.ObjectPosition.Z,
		KeyScaleX: &c.ObjectScale.X, KeyScaleY: &c.ObjectScale.Y, KeyScaleZ: &c.ObjectScale.Z,
	}
	f, ok := fields[key]
	return f, ok
}

func (c *Config) rotationField(key string) (*float32, bool) {
	switch key {
	case KeyRotationX:
		return &c.ObjectRotation.X, true
	case KeyRotationY:
		return &c.ObjectRotation.Y, true
	case KeyRotationZ:
		return &c.ObjectRotation.Z, true
	}
	return nil, false
}

// Set parses value for the named key and stores it. Unknown keys are
// ignored. A value that does not parse yields status.ConfigWrongFormat and
// one that parses but is out of range yields status.InvalidValue; in both
// cases c is left unchanged.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	if f, ok := c.vecField(key); ok {
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		*f = v
		return nil
	}
	if f, ok := c.rotationField(key); ok {
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		*f = math3d.Radians(v)
		return nil
	}

	switch key {
	case KeyFieldOfView:
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if !(v > 0 && v < 180) {
			return fmt.Errorf("%s=%s: want degrees in (0,180): %w", key, value, status.InvalidValue)
		}
		c.FieldOfView = math3d.Radians(v)
	case KeyNear, KeyFar:
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if !(v > math3d.Epsilon) {
			return fmt.Errorf("%s=%s: must be positive: %w", key, value, status.InvalidValue)
		}
		if key == KeyNear {
			c.Near = v
		} else {
			c.Far = v
		}
	case KeyWidth, KeyHeight:
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", key, value, status.ConfigWrongFormat)
		}
		if n == 0 || n > MaxDimension {
			return fmt.Errorf("%s=%d: want 1..%d: %w", key, n, MaxDimension, status.InvalidValue)
		}
		if key == KeyWidth {
			c.Width = int(n)
		} else {
			c.Height = int(n)
		}
	case KeyMaterial:
		col, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Material = col
	case KeyBackfaceCulling, KeyZBuffer:
		b, err := parseFlag(key, value)
		if err != nil {
			return err
		}
		if key == KeyBackfaceCulling {
			c.BackfaceCulling = b
		} else {
			c.ZBuffer = b
		}
	}
	return nil
}

func parseFloat(key, value string) (float32, error) {
	v, err := strconv.ParseFloat(value, 32)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s=%q: %w", key, value, status.ConfigWrongFormat)
	}
	return float32(v), nil
}

func parseFlag(key, value string) (bool, error) {
	switch value {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("%s=%q: want 0 or 1: %w", key, value, status.ConfigWrongFormat)
}

// ParseColor parses a #RRGGBB string into channels normalized to [0,1].
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("color %q: want #RRGGBB: %w", s, status.ConfigWrongFormat)
	}
	rgb, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, status.ConfigWrongFormat)
	}
	return Color{
		R: float32(rgb>>16&0xFF) / 255,
		G: float32(rgb>>8&0xFF) / 255,
		B: float32(rgb&0xFF) / 255,
	}, nil
}

// Hex formats c as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

func channelByte(v float32) uint8 {
	return uint8(v*255 + 0.5)
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// degrees inverts math3d.Radians for serialisation.
func degrees(rad float32) float32 {
	return rad * 180 / 3.14159265
}

// Pairs returns every key with its current value in file order, in the
// same format Set accepts.
func (c Config) Pairs() [][2]string {
	return [][2]string{
		{KeyLightX, formatFloat(c.LightPosition.X)},
		{KeyLightY, formatFloat(c.LightPosition.Y)},
		{KeyLightZ, formatFloat(c.LightPosition.Z)},
		{KeyCameraX, formatFloat(c.CameraPosition.X)},
		{KeyCameraY, formatFloat(c.CameraPosition.Y)},
		{KeyCameraZ, formatFloat(c.CameraPosition.Z)},
		{KeyLookAtX, formatFloat(c.LookAt.X)},
		{KeyLookAtY, formatFloat(c.LookAt.Y)},
		{KeyLookAtZ, formatFloat(c.LookAt.Z)},
		{KeyUpX, formatFloat(c.Up.X)},
		{KeyUpY, formatFloat(c.Up.Y)},
		{KeyUpZ, formatFloat(c.Up.Z)},
		{KeyPositionX, formatFloat(c.ObjectPosition.X)},
		{KeyPositionY, formatFloat(c.ObjectPosition.Y)},
		{KeyPositionZ, formatFloat(c.ObjectPosition.Z)},
		{KeyRotationX, formatFloat(degrees(c.ObjectRotation.X))},
		{KeyRotationY, formatFloat(degrees(c.ObjectRotation.Y))},
		{KeyRotationZ, formatFloat(degrees(c.ObjectRotation.Z))},
		{KeyScaleX, formatFloat(c.ObjectScale.X)},
		{KeyScaleY, formatFloat(c.ObjectScale.Y)},
		{KeyScaleZ, formatFloat(c.ObjectScale.Z)},
		{KeyFieldOfView, formatFloat(degrees(c.FieldOfView))},
		{KeyNear, formatFloat(c.Near)},
		{KeyFar, formatFloat(c.Far)},
		{KeyWidth, strconv.Itoa(c.Width)},
		{KeyHeight, strconv.Itoa(c.Height)},
		{KeyMaterial, c.Material.Hex()},
		{KeyBackfaceCulling, formatFlag(c.BackfaceCulling)},
		{KeyZBuffer, formatFlag(c.ZBuffer)},
	}
}
