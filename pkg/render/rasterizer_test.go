package render

import (
	"testing"
)

func TestPackLighting(t *testing.T) {
	tests := []struct {
		name string
		l    Lighting
		want uint32
	}{
		{"black", Lighting{0, 0, 0}, 0xFF000000},
		{"white", Lighting{1, 1, 1}, 0xFFFFFFFF},
		{"red", Lighting{1, 0, 0}, 0xFF0000FF},
		{"blue", Lighting{0, 0, 1}, 0xFFFF0000},
		{"half green rounds up", Lighting{0, 0.5, 0}, 0xFF008000},
		{"clamped", Lighting{2, -1, 0}, 0xFF0000FF},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PackLighting(tc.l); got != tc.want {
				t.Errorf("PackLighting(%v) = %#08x, want %#08x", tc.l, got, tc.want)
			}
		})
	}
}

// screenTri builds a screen-space triangle; z is the depth.
func screenTri(x0, y0, x1, y1, x2, y2, z float32) Triangle {
	return Tri(v3(x0, y0, z), v3(x1, y1, z), v3(x2, y2, z))
}

func coverage(s *Surface) int {
	n := 0
	for _, p := range s.Pixels {
		if p != 0 {
			n++
		}
	}
	return n
}

func TestDrawTriangleWindingIndependent(t *testing.T) {
	ccw := screenTri(1, 1, 6, 1, 1, 6, 0.5)
	cw := screenTri(1, 1, 1, 6, 6, 1, 0.5)

	a := NewSurface(8, 8)
	NewRasterizer(a, false).DrawTriangle(ccw, Lighting{1, 1, 1})
	b := NewSurface(8, 8)
	NewRasterizer(b, false).DrawTriangle(cw, Lighting{1, 1, 1})

	if coverage(a) == 0 {
		t.Fatal("triangle drew nothing")
	}
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("winding changed coverage at pixel %d", i)
		}
	}

	// Right isosceles with legs of 5 covers (6·7)/2 integer points.
	if got := coverage(a); got != 21 {
		t.Errorf("coverage = %d, want 21", got)
	}
}

func TestDrawTriangleClipsToCanvas(t *testing.T) {
	s := NewSurface(4, 4)
	r := NewRasterizer(s, true)
	r.DrawTriangle(screenTri(-10, -10, 20, -10, -10, 20, 0.5), Lighting{1, 0, 0})

	if got := coverage(s); got != 16 {
		t.Errorf("coverage = %d, want every pixel", got)
	}
	if r.Covered != 16 {
		t.Errorf("Covered = %d, want 16", r.Covered)
	}
}

func TestDrawTriangleDegenerate(t *testing.T) {
	s := NewSurface(8, 8)
	NewRasterizer(s, false).DrawTriangle(screenTri(1, 1, 4, 4, 6, 6, 0.5), Lighting{1, 1, 1})
	if got := coverage(s); got != 0 {
		t.Errorf("collinear triangle covered %d pixels", got)
	}
}

func TestDepthTestNearestWins(t *testing.T) {
	near := screenTri(0, 0, 7, 0, 0, 7, 0.2)
	far := screenTri(0, 0, 7, 0, 0, 7, 0.8)
	red, green := Lighting{1, 0, 0}, Lighting{0, 1, 0}

	for _, order := range [][2]int{{0, 1}, {1, 0}} {
		s := NewSurface(8, 8)
		r := NewRasterizer(s, true)
		tris := [2]Triangle{near, far}
		lights := [2]Lighting{green, red}
		for _, i := range order {
			r.DrawTriangle(tris[i], lights[i])
		}
		if got := s.At(1, 1); got != PackLighting(green) {
			t.Errorf("order %v: pixel = %#08x, want near green", order, got)
		}
	}
}

func TestDepthTestSlopedPlane(t *testing.T) {
	// Two triangles crossing each other: depth must come from the plane,
	// not a per-triangle constant.
	s := NewSurface(16, 16)
	r := NewRasterizer(s, true)
	a := Tri(v3(0, 0, 0), v3(15, 0, 1), v3(0, 15, 0))
	b := Tri(v3(0, 0, 1), v3(15, 0, 0), v3(0, 15, 1))
	r.DrawTriangle(a, Lighting{1, 0, 0})
	r.DrawTriangle(b, Lighting{0, 0, 1})

	if got := s.At(1, 1); got != PackLighting(Lighting{1, 0, 0}) {
		t.Errorf("left side = %#08x, want a (nearer there)", got)
	}
	if got := s.At(13, 1); got != PackLighting(Lighting{0, 0, 1}) {
		t.Errorf("right side = %#08x, want b (nearer there)", got)
	}
}

func TestPainterNearOverFar(t *testing.T) {
	// Overlapping squares-ish triangles handed over near-first.
	near := screenTri(2, 2, 12, 2, 2, 12, 0.1)
	far := screenTri(0, 0, 15, 0, 0, 15, 0.9)
	tris := TriangleBuffer{near, far}
	lights := LightingBuffer{{0, 1, 0}, {1, 0, 0}}

	SortByDepth(tris, lights, nil)

	s := NewSurface(16, 16)
	NewRasterizer(s, false).DrawAll(tris, lights)

	green := PackLighting(Lighting{0, 1, 0})
	red := PackLighting(Lighting{1, 0, 0})
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			inNear := x >= 2 && y >= 2 && x+y <= 14
			inFar := x+y <= 15
			got := s.At(x, y)
			switch {
			case inNear && got != green:
				t.Errorf("(%d,%d) = %#08x, want near green", x, y, got)
			case !inNear && inFar && got != red:
				t.Errorf("(%d,%d) = %#08x, want far red", x, y, got)
			}
		}
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	s := NewSurface(512, 512)
	r := NewRasterizer(s, true)
	tri := Tri(v3(10, 10, 0.5), v3(500, 40, 0.4), v3(60, 490, 0.6))

	for b.Loop() {
		r.depth.Clear()
		r.DrawTriangle(tri, Lighting{1, 1, 1})
	}
}
