package render

import "github.com/taigrr/softrender/pkg/math3d"

// MeshRenderer is an indexed triangle mesh that can be flattened into a
// TriangleBuffer. models.Mesh implements it.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
}

// TrianglesFromMesh expands every face of m into a triangle with W = 1,
// keeping the stored winding.
func TrianglesFromMesh(m MeshRenderer) TriangleBuffer {
	out := make(TriangleBuffer, 0, m.TriangleCount())
	for i := range m.TriangleCount() {
		f := m.GetFace(i)
		out = append(out, Tri(m.GetVertex(f[0]), m.GetVertex(f[1]), m.GetVertex(f[2])))
	}
	return out
}
