package render

import (
	"github.com/chewxy/math32"
)

// Rasterizer scan-converts screen-space triangles onto a canvas with flat
// colors. With a depth buffer the nearest fragment wins; without one each
// triangle overwrites whatever was drawn before it.
type Rasterizer struct {
	canvas *Surface
	depth  DepthBuffer

	// Covered counts fragments written since creation.
	Covered int
}

// NewRasterizer draws onto canvas. When zbuffer is set a depth buffer the
// size of canvas is allocated.
func NewRasterizer(canvas *Surface, zbuffer bool) *Rasterizer {
	r := &Rasterizer{canvas: canvas}
	if zbuffer {
		r.depth = NewDepthBuffer(len(canvas.Pixels))
	}
	return r
}

// PackLighting converts a flat color to an opaque Surface pixel.
func PackLighting(l Lighting) uint32 {
	return 0xFF000000 |
		channel(l.B)<<16 |
		channel(l.G)<<8 |
		channel(l.R)
}

func channel(v float32) uint32 {
	c := math32.Round(v * 255)
	switch {
	case c <= 0:
		return 0
	case c >= 255:
		return 255
	}
	return uint32(c)
}

func roundInt(v float32) int {
	return int(math32.Round(v))
}

// DrawAll draws every triangle in order with its paired lighting.
func (r *Rasterizer) DrawAll(tris TriangleBuffer, lights LightingBuffer) {
	for i, t := range tris {
		r.DrawTriangle(t, lights[i])
	}
}

// DrawTriangle fills the pixels covered by t. Coverage is decided on
// rounded vertex positions with exact integer edge tests, so either
// winding order is accepted and shared edges are drawn by both triangles.
func (r *Rasterizer) DrawTriangle(t Triangle, l Lighting) {
	w, h := r.canvas.Width, r.canvas.Height

	x0, y0 := roundInt(t.V[0].X), roundInt(t.V[0].Y)
	x1, y1 := roundInt(t.V[1].X), roundInt(t.V[1].Y)
	x2, y2 := roundInt(t.V[2].X), roundInt(t.V[2].Y)

	minX := max(min(x0, x1, x2), 0)
	maxX := min(max(x0, x1, x2), w-1)
	minY := max(min(y0, y1, y2), 0)
	maxY := min(max(y0, y1, y2), h-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Edge vectors from v0 and twice the signed area.
	ex1, ey1 := x1-x0, y1-y0
	ex2, ey2 := x2-x0, y2-y0
	area := ex1*ey2 - ey1*ex2
	if area == 0 {
		return
	}

	// Depth plane n·p = d in screen space.
	var nx, ny, nz, d float32
	if r.depth != nil {
		v0 := t.V[0].Vec3()
		n := t.V[1].Vec3().Sub(v0).Cross(t.V[2].Vec3().Sub(v0))
		nx, ny, nz, d = n.X, n.Y, n.Z, n.Dot(v0)
	}

	color := PackLighting(l)
	pix := r.canvas.Pixels

	for y := minY; y <= maxY; y++ {
		dy := y - y0
		dx := minX - x0
		// s and u are the unnormalized weights of v1 and v2; both step by a
		// constant per pixel along the row.
		s := dx*ey2 - dy*ex2
		u := ex1*dy - ey1*dx
		row := y * w

		for x := minX; x <= maxX; x, s, u = x+1, s+ey2, u-ey1 {
			var inside bool
			if area > 0 {
				inside = s >= 0 && u >= 0 && s+u <= area
			} else {
				inside = s <= 0 && u <= 0 && s+u >= area
			}
			if !inside {
				continue
			}

			idx := row + x
			if r.depth != nil {
				z := -(nx*float32(x) + ny*float32(y) - d) / nz
				if !(z < r.depth[idx]) {
					continue
				}
				r.depth[idx] = z
			}
			pix[idx] = color
			r.Covered++
		}
	}
}
