package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/status"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, math3d.Up(), cfg.Up)
	assert.Equal(t, math3d.V3(1, 1, 1), cfg.ObjectScale)
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, Color{1, 1, 1}, cfg.Material)
	assert.False(t, cfg.BackfaceCulling)
	assert.False(t, cfg.ZBuffer)
	assert.InDelta(t, 1.5707963, cfg.FieldOfView, 1e-6)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"near equals far", func(c *Config) { c.Near, c.Far = 5, 5 }},
		{"near beyond far", func(c *Config) { c.Near, c.Far = 10, 1 }},
		{"zero near", func(c *Config) { c.Near = 0 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"huge height", func(c *Config) { c.Height = MaxDimension + 1 }},
		{"zero fov", func(c *Config) { c.FieldOfView = 0 }},
		{"straight fov", func(c *Config) { c.FieldOfView = math3d.Radians(180) }},
		{"nan near", func(c *Config) { c.Near = math32.NaN() }},
		{"nan far", func(c *Config) { c.Far = math32.NaN() }},
		{"infinite far", func(c *Config) { c.Far = math32.Inf(1) }},
		{"nan fov", func(c *Config) { c.FieldOfView = math32.NaN() }},
		{"zero scale", func(c *Config) { c.ObjectScale.Y = 0 }},
		{"bright material", func(c *Config) { c.Material.G = 2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, status.InvalidValue)
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(t *testing.T, c Config)
	}{
		{KeyLightY, "7.5", func(t *testing.T, c Config) { assert.Equal(t, float32(7.5), c.LightPosition.Y) }},
		{KeyCameraZ, " -3 ", func(t *testing.T, c Config) { assert.Equal(t, float32(-3), c.CameraPosition.Z) }},
		{KeyLookAtX, "1e1", func(t *testing.T, c Config) { assert.Equal(t, float32(10), c.LookAt.X) }},
		{KeyRotationZ, "180", func(t *testing.T, c Config) { assert.InDelta(t, 3.14159265, c.ObjectRotation.Z, 1e-6) }},
		{KeyScaleX, "2", func(t *testing.T, c Config) { assert.Equal(t, float32(2), c.ObjectScale.X) }},
		{KeyFieldOfView, "60", func(t *testing.T, c Config) { assert.InDelta(t, 1.0471975, c.FieldOfView, 1e-6) }},
		{KeyNear, "0.5", func(t *testing.T, c Config) { assert.Equal(t, float32(0.5), c.Near) }},
		{KeyFar, "50", func(t *testing.T, c Config) { assert.Equal(t, float32(50), c.Far) }},
		{KeyWidth, "320", func(t *testing.T, c Config) { assert.Equal(t, 320, c.Width) }},
		{KeyHeight, "32767", func(t *testing.T, c Config) { assert.Equal(t, 32767, c.Height) }},
		{KeyMaterial, "#FF8000", func(t *testing.T, c Config) {
			assert.Equal(t, Color{1, float32(0x80) / 255, 0}, c.Material)
		}},
		{KeyBackfaceCulling, "1", func(t *testing.T, c Config) { assert.True(t, c.BackfaceCulling) }},
		{KeyZBuffer, "1", func(t *testing.T, c Config) { assert.True(t, c.ZBuffer) }},
		{"SomethingElse", "whatever", func(t *testing.T, c Config) { assert.Equal(t, Default(), c) }},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			cfg := Default()
			assert.NoError(t, cfg.Set(tc.key, tc.value))
			tc.check(t, cfg)
		})
	}
}

func TestSetRejects(t *testing.T) {
	tests := []struct {
		key, value string
		want       status.Code
	}{
		{KeyNear, "abc", status.ConfigWrongFormat},
		{KeyLightX, "", status.ConfigWrongFormat},
		{KeyFieldOfView, "0", status.InvalidValue},
		{KeyFieldOfView, "180", status.InvalidValue},
		{KeyFieldOfView, "-5", status.InvalidValue},
		{KeyNear, "0", status.InvalidValue},
		{KeyNear, "nan", status.ConfigWrongFormat},
		{KeyFar, "NaN", status.ConfigWrongFormat},
		{KeyFar, "inf", status.ConfigWrongFormat},
		{KeyFar, "1e40", status.ConfigWrongFormat},
		{KeyFieldOfView, "nan", status.ConfigWrongFormat},
		{KeyFieldOfView, "-Inf", status.ConfigWrongFormat},
		{KeyCameraX, "+inf", status.ConfigWrongFormat},
		{KeyRotationY, "nan", status.ConfigWrongFormat},
		{KeyFar, "-1", status.InvalidValue},
		{KeyWidth, "0", status.InvalidValue},
		{KeyWidth, "32768", status.InvalidValue},
		{KeyHeight, "-1", status.ConfigWrongFormat},
		{KeyHeight, "12px", status.ConfigWrongFormat},
		{KeyMaterial, "FF0000", status.ConfigWrongFormat},
		{KeyMaterial, "#GG0000", status.ConfigWrongFormat},
		{KeyMaterial, "#FFF", status.ConfigWrongFormat},
		{KeyZBuffer, "true", status.ConfigWrongFormat},
		{KeyBackfaceCulling, "2", status.ConfigWrongFormat},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tc.key, tc.value)
			assert.Equal(t, tc.want, status.Of(err))
			assert.Equal(t, Default(), cfg, "rejected value must not modify the config")
		})
	}
}

func TestColorHex(t *testing.T) {
	for _, s := range []string{"#000000", "#FFFFFF", "#12AB9F"} {
		c, err := ParseColor(s)
		assert.NoError(t, err)
		assert.Equal(t, s, c.Hex())
	}
}

func TestPairsRoundTrip(t *testing.T) {
	want := Default()
	want.LightPosition = math3d.V3(1, 2, 3)
	want.ObjectRotation = math3d.V3(math3d.Radians(30), 0, math3d.Radians(-45))
	want.Width = 64
	want.ZBuffer = true
	want.Material = Color{1, 0, 0}

	got := Default()
	for _, kv := range want.Pairs() {
		assert.NoError(t, got.Set(kv[0], kv[1]), kv[0])
	}
	assert.Equal(t, want.LightPosition, got.LightPosition)
	assert.InDelta(t, want.ObjectRotation.X, got.ObjectRotation.X, 1e-6)
	assert.InDelta(t, want.ObjectRotation.Z, got.ObjectRotation.Z, 1e-6)
	assert.InDelta(t, want.FieldOfView, got.FieldOfView, 1e-6)
	assert.Equal(t, want.Width, got.Width)
	assert.Equal(t, want.ZBuffer, got.ZBuffer)
	assert.Equal(t, want.Material, got.Material)
}
