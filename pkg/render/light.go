package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/scene"
)

// Shade returns the Lambertian color of one camera-space triangle lit by a
// point light at light.
func Shade(t Triangle, light math3d.Vec3, material scene.Color) Lighting {
	n := t.Normal().Normalize()
	l := light.Sub(t.Centroid()).Normalize()
	i := math32.Max(0, n.Dot(l))
	return Lighting{
		R: material.R * i,
		G: material.G * i,
		B: material.B * i,
	}
}

// Light shades every triangle, producing a LightingBuffer of the same
// length and order.
func Light(tris TriangleBuffer, light math3d.Vec3, material scene.Color) LightingBuffer {
	out := make(LightingBuffer, len(tris))
	for i, t := range tris {
		out[i] = Shade(t, light, material)
	}
	return out
}
