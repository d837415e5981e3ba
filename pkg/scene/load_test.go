package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/status"
)

const sampleINI = `; sample scene
[Renderer]
LightSourcePositionX=10
LightSourcePositionY=20
LightSourcePositionZ=-30
CameraPositionZ=-5
ObjectRotationY=90
FieldOfView=60
zNear=0.5
zFar=50
OutputWidth=320
OutputHeight=240
MaterialDiffuseReflectance=#FF0000
BackfaceCulling=1
UseZBuffer=1
UnknownKey=ignored

[Other]
OutputWidth=1
`

const sampleTOML = `[Renderer]
LightSourcePositionX = 10
LightSourcePositionY = 20
LightSourcePositionZ = -30
CameraPositionZ = -5
ObjectRotationY = 90
FieldOfView = 60
zNear = 0.5
zFar = 50
OutputWidth = 320
OutputHeight = 240
MaterialDiffuseReflectance = "#FF0000"
BackfaceCulling = true
UseZBuffer = "1"
`

const sampleYAML = `Renderer:
  LightSourcePositionX: 10
  LightSourcePositionY: 20
  LightSourcePositionZ: -30
  CameraPositionZ: -5
  ObjectRotationY: 90
  FieldOfView: 60
  zNear: 0.5
  zFar: 50
  OutputWidth: 320
  OutputHeight: 240
  MaterialDiffuseReflectance: "#FF0000"
  BackfaceCulling: 1
  UseZBuffer: true
`

func expectedSample() Config {
	c := Default()
	c.LightPosition = math3d.V3(10, 20, -30)
	c.CameraPosition = math3d.V3(0, 0, -5)
	c.ObjectRotation = math3d.V3(0, math3d.Radians(90), 0)
	c.FieldOfView = math3d.Radians(60)
	c.Near, c.Far = 0.5, 50
	c.Width, c.Height = 320, 240
	c.Material = Color{1, 0, 0}
	c.BackfaceCulling = true
	c.ZBuffer = true
	return c
}

func TestParseFormatsAgree(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"ini", FormatINI, sampleINI},
		{"toml", FormatTOML, sampleTOML},
		{"yaml", FormatYAML, sampleYAML},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(tc.doc), tc.format)
			require.NoError(t, err)
			assert.Equal(t, expectedSample(), cfg)
		})
	}
}

func TestParseMalformedNearKeepsOtherFields(t *testing.T) {
	doc := "[Renderer]\nOutputWidth=123\nzNear=abc\nzFar=42\nUseZBuffer=1\n"
	cfg, err := Parse(strings.NewReader(doc), FormatINI)

	assert.Equal(t, status.ConfigWrongFormat, status.Of(err))
	assert.True(t, IsFormatError(err))
	assert.Equal(t, 123, cfg.Width)
	assert.Equal(t, float32(42), cfg.Far)
	assert.True(t, cfg.ZBuffer)
	assert.Equal(t, Default().Near, cfg.Near)
}

func TestParseNearNotBeforeFar(t *testing.T) {
	doc := "[Renderer]\nzNear=10\nzFar=5\n"
	_, err := Parse(strings.NewReader(doc), FormatINI)
	assert.Equal(t, status.InvalidValue, status.Of(err))
}

func TestParseNonFiniteClipAndFieldOfView(t *testing.T) {
	for _, line := range []string{"zNear = nan", "zFar = nan", "zFar = inf", "FieldOfView = nan"} {
		t.Run(line, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader("[Renderer]\n"+line+"\n"), FormatINI)
			assert.Equal(t, status.ConfigWrongFormat, status.Of(err))
			assert.Equal(t, Default().Near, cfg.Near)
			assert.Equal(t, Default().Far, cfg.Far)
			assert.Equal(t, Default().FieldOfView, cfg.FieldOfView)
		})
	}
}

func TestParseMissingSectionGivesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[Other]\nzNear=1\n"), FormatINI)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseBrokenDocument(t *testing.T) {
	_, err := Parse(strings.NewReader("Renderer: [unterminated"), FormatYAML)
	assert.Equal(t, status.ConfigWrongFormat, status.Of(err))

	_, err = Parse(strings.NewReader("[Renderer]\nzNear = [1, 2]\n"), FormatTOML)
	assert.Equal(t, status.ConfigWrongFormat, status.Of(err))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.ini")
	require.NoError(t, os.WriteFile(path, []byte(sampleINI), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, expectedSample(), cfg)

	_, err = Load(filepath.Join(dir, "missing.ini"))
	assert.Equal(t, status.FileOpenFailed, status.Of(err))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatINI, FormatFromPath("a.ini"))
	assert.Equal(t, FormatINI, FormatFromPath("a.cfg"))
	assert.Equal(t, FormatTOML, FormatFromPath("a.TOML"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.yaml"))
}

func TestWriteINIRoundTrip(t *testing.T) {
	want := expectedSample()

	var buf bytes.Buffer
	require.NoError(t, want.WriteINI(&buf))
	assert.Contains(t, buf.String(), "[Renderer]")
	assert.Contains(t, buf.String(), "#FF0000")

	got, err := Parse(&buf, FormatINI)
	require.NoError(t, err)
	assert.Equal(t, want.Width, got.Width)
	assert.Equal(t, want.Material, got.Material)
	assert.Equal(t, want.LightPosition, got.LightPosition)
	assert.InDelta(t, want.FieldOfView, got.FieldOfView, 1e-6)
	assert.InDelta(t, want.ObjectRotation.Y, got.ObjectRotation.Y, 1e-6)
	assert.Equal(t, want.BackfaceCulling, got.BackfaceCulling)
}
