package render

import (
	"testing"

	"github.com/taigrr/softrender/pkg/math3d"
)

func TestTriangleBufferFloatsView(t *testing.T) {
	var b TriangleBuffer
	if b.Floats() != nil {
		t.Error("empty buffer should have no float view")
	}

	b.Append(Tri(v3(1, 2, 3), v3(4, 5, 6), v3(7, 8, 9)))
	b.Append(Tri(v3(-1, -2, -3), v3(0, 0, 0), v3(1, 1, 1)))
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}

	f := b.Floats()
	if len(f) != 24 {
		t.Fatalf("len(Floats()) = %d, want 24", len(f))
	}
	want := []float32{1, 2, 3, 1, 4, 5, 6, 1, 7, 8, 9, 1}
	for i, w := range want {
		if f[i] != w {
			t.Errorf("Floats()[%d] = %v, want %v", i, f[i], w)
		}
	}

	// The view shares storage.
	f[0] = 42
	if b[0].V[0].X != 42 {
		t.Error("Floats() should alias the buffer")
	}
}

func TestTriangleBufferTransform(t *testing.T) {
	b := TriangleBuffer{Tri(v3(1, 0, 0), v3(0, 1, 0), v3(0, 0, 1))}
	moved := b.Transform(math3d.Translate(v3(10, 20, 30)))

	if b[0].V[0].X != 1 {
		t.Error("Transform must not modify its receiver")
	}
	want := Vertex{11, 20, 30, 1}
	if !approxVertex(moved[0].V[0], want) {
		t.Errorf("moved vertex = %v, want %v", moved[0].V[0], want)
	}

	b.TransformInPlace(math3d.Scale(v3(2, 2, 2)))
	if !approxVertex(b[0].V[2], Vertex{0, 0, 2, 1}) {
		t.Errorf("in-place vertex = %v", b[0].V[2])
	}
}

func TestTriangleBufferCloneAndReset(t *testing.T) {
	b := TriangleBuffer{Tri(v3(1, 0, 0), v3(0, 1, 0), v3(0, 0, 1))}
	c := b.Clone()
	c[0].V[0].X = 9
	if b[0].V[0].X != 1 {
		t.Error("Clone should not share storage")
	}

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len() after Reset = %d", b.Len())
	}
}

func TestTriangleMeasures(t *testing.T) {
	tri := Tri(v3(0, 0, 3), v3(3, 0, 6), v3(0, 3, 9))
	if got := tri.AverageZ(); got != 6 {
		t.Errorf("AverageZ() = %v, want 6", got)
	}
	if got := tri.Centroid(); got != v3(1, 1, 6) {
		t.Errorf("Centroid() = %v", got)
	}
	flat := Tri(v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0))
	if got := flat.Normal(); got != v3(0, 0, 1) {
		t.Errorf("Normal() = %v, want (0,0,1)", got)
	}
}
