package render

import (
	"math/rand/v2"
	"testing"

	"github.com/taigrr/softrender/pkg/math3d"
)

func TestCameraInModelSpaceInvertsObjectMatrix(t *testing.T) {
	tests := []struct {
		name                  string
		pos, rot, scale, model math3d.Vec3
	}{
		{"identity", v3(0, 0, 0), v3(0, 0, 0), v3(1, 1, 1), v3(1, 2, 3)},
		{"translate", v3(5, -2, 1), v3(0, 0, 0), v3(1, 1, 1), v3(1, 2, 3)},
		{"rotate", v3(0, 0, 0), v3(0.3, -1.2, 2.1), v3(1, 1, 1), v3(-4, 0.5, 2)},
		{"scale", v3(0, 0, 0), v3(0, 0, 0), v3(2, 0.5, -3), v3(1, 1, 1)},
		{"all", v3(1, 2, 3), v3(0.7, 0.1, -0.4), v3(1.5, 2, 0.25), v3(3, -1, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			world := math3d.ObjectMatrix(tc.pos, tc.rot, tc.scale).MulPoint(tc.model)
			got := CameraInModelSpace(world, tc.pos, tc.rot, tc.scale)
			if !approx3(got, tc.model, 1e-4) {
				t.Errorf("CameraInModelSpace = %v, want %v", got, tc.model)
			}
		})
	}
}

func approx3(a, b math3d.Vec3, eps float32) bool {
	d := a.Sub(b).Abs()
	return d.X <= eps && d.Y <= eps && d.Z <= eps
}

func TestFacesCamera(t *testing.T) {
	// Normal (0,0,-1) points at a camera on the -z side.
	front := Tri(v3(0, 0, 0), v3(0, 1, 0), v3(1, 0, 0))
	back := Tri(v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0))
	cam := v3(0, 0, -5)

	if !FacesCamera(front, cam) {
		t.Error("front triangle should face the camera")
	}
	if FacesCamera(back, cam) {
		t.Error("back triangle should not face the camera")
	}
	// Edge-on triangles are culled.
	if FacesCamera(front, v3(5, 5, 0)) {
		t.Error("edge-on triangle should be culled")
	}
}

func TestCullKeepsOrder(t *testing.T) {
	cam := v3(0, 0, -5)
	front := Tri(v3(0, 0, 0), v3(0, 1, 0), v3(1, 0, 0))
	back := Tri(v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0))
	front2 := Tri(v3(2, 0, 0), v3(2, 1, 0), v3(3, 0, 0))

	in := TriangleBuffer{front, back, front2, back}
	got := Cull(in, cam)
	if len(got) != 2 || got[0] != front || got[1] != front2 {
		t.Errorf("Cull() = %v", got)
	}
	if len(in) != 4 || in[1] != back {
		t.Error("Cull must not modify its input")
	}
}

func TestCullOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	randVec := func() math3d.Vec3 {
		return v3(rng.Float32()*10-5, rng.Float32()*10-5, rng.Float32()*10-5)
	}

	tris := make(TriangleBuffer, 200)
	for i := range tris {
		tris[i] = Tri(randVec(), randVec(), randVec())
	}
	cam := CameraInModelSpace(v3(0, 0, -20), v3(1, 0, 0), v3(0.2, 0.4, 0), v3(1, 2, 1))

	count := func(b TriangleBuffer) map[Triangle]int {
		m := make(map[Triangle]int)
		for _, t := range b {
			m[t]++
		}
		return m
	}

	want := count(Cull(tris, cam))
	shuffled := tris.Clone()
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	got := count(Cull(shuffled, cam))

	if len(got) != len(want) {
		t.Fatalf("survivor count differs: %d vs %d", len(got), len(want))
	}
	for tri, n := range want {
		if got[tri] != n {
			t.Errorf("triangle %v survives %d times after shuffle, want %d", tri, got[tri], n)
		}
	}
}
