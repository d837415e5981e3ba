package render

import (
	"unsafe"

	"github.com/taigrr/softrender/pkg/math3d"
)

// Vertex is a homogeneous point. W is 1 outside clip space.
type Vertex struct {
	X, Y, Z, W float32
}

// NewVertex returns the point (x, y, z) with W = 1.
func NewVertex(x, y, z float32) Vertex {
	return Vertex{x, y, z, 1}
}

// Vec3 drops W.
func (v Vertex) Vec3() math3d.Vec3 {
	return math3d.V3(v.X, v.Y, v.Z)
}

// Vec4 returns v as a math3d row vector.
func (v Vertex) Vec4() math3d.Vec4 {
	return math3d.V4(v.X, v.Y, v.Z, v.W)
}

func vertexFromVec4(v math3d.Vec4) Vertex {
	return Vertex{v.X, v.Y, v.Z, v.W}
}

// Triangle is three vertices. Winding order is significant: the front face
// is the one whose normal (V[1]-V[0])×(V[2]-V[0]) points at the viewer.
type Triangle struct {
	V [3]Vertex
}

// Tri builds a triangle from three points with W = 1.
func Tri(a, b, c math3d.Vec3) Triangle {
	return Triangle{V: [3]Vertex{
		NewVertex(a.X, a.Y, a.Z),
		NewVertex(b.X, b.Y, b.Z),
		NewVertex(c.X, c.Y, c.Z),
	}}
}

// Normal returns the unnormalized face normal (v2-v1)×(v3-v1).
func (t Triangle) Normal() math3d.Vec3 {
	a := t.V[0].Vec3()
	return t.V[1].Vec3().Sub(a).Cross(t.V[2].Vec3().Sub(a))
}

// Centroid returns the average of the three vertices.
func (t Triangle) Centroid() math3d.Vec3 {
	return math3d.Centroid(t.V[0].Vec3(), t.V[1].Vec3(), t.V[2].Vec3())
}

// AverageZ returns the mean depth of the three vertices.
func (t Triangle) AverageZ() float32 {
	return (t.V[0].Z + t.V[1].Z + t.V[2].Z) / 3
}

// TriangleBuffer is a growable sequence of triangles. The zero value is an
// empty buffer ready to use.
type TriangleBuffer []Triangle

// Len returns the number of triangles.
func (b TriangleBuffer) Len() int {
	return len(b)
}

// Append adds triangles to the end of the buffer.
func (b *TriangleBuffer) Append(t ...Triangle) {
	*b = append(*b, t...)
}

// Reset empties the buffer, keeping its storage.
func (b *TriangleBuffer) Reset() {
	*b = (*b)[:0]
}

// Clone returns a copy that shares no storage with b.
func (b TriangleBuffer) Clone() TriangleBuffer {
	if b == nil {
		return nil
	}
	out := make(TriangleBuffer, len(b))
	copy(out, b)
	return out
}

// Floats views the buffer as a dense (3·Len)×4 row-major matrix. The view
// shares storage with b.
func (b TriangleBuffer) Floats() []float32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)*12)
}

// trianglesFromFloats is the inverse view of Floats.
func trianglesFromFloats(f []float32) TriangleBuffer {
	if len(f) == 0 {
		return nil
	}
	return unsafe.Slice((*Triangle)(unsafe.Pointer(&f[0])), len(f)/12)
}

// Transform returns a new buffer with every vertex multiplied by m.
func (b TriangleBuffer) Transform(m math3d.Mat4) TriangleBuffer {
	return trianglesFromFloats(math3d.ApplyBatch(b.Floats(), m))
}

// TransformInPlace multiplies every vertex by m, overwriting b.
func (b TriangleBuffer) TransformInPlace(m math3d.Mat4) {
	math3d.ApplyBatchInPlace(b.Floats(), m)
}

// Lighting is a flat triangle color with channels in [0,1].
type Lighting struct {
	R, G, B float32
}

// LightingBuffer pairs one Lighting with each triangle of a TriangleBuffer,
// index for index.
type LightingBuffer []Lighting
