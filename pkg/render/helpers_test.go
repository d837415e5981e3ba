package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/softrender/pkg/math3d"
)

const tol = 1e-5

func approx(a, b float32) bool {
	return math32.Abs(a-b) <= tol
}

func approxVertex(a, b Vertex) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z) && approx(a.W, b.W)
}

// ndcTri builds an already-divided triangle.
func ndcTri(a, b, c math3d.Vec3) Triangle {
	return Tri(a, b, c)
}

func v3(x, y, z float32) math3d.Vec3 {
	return math3d.V3(x, y, z)
}
