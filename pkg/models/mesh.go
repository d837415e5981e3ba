// Package models loads triangle geometry for the renderer: the raw
// nine-floats-per-line text format and glTF/GLB meshes.
package models

import (
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/scene"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle with vertex indices and a material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the diffuse color of a glTF material. The renderer shades
// with a single reflectance, so only the base color is kept.
type Material struct {
	Name      string
	BaseColor scene.Color
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies mat to every vertex and recomputes the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.MulPoint(v)
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so that its
// largest bounding-box dimension equals size. Empty or flat-to-a-point
// meshes are left alone.
func (m *Mesh) Fit(size float32) {
	ext := m.Size()
	largest := max(ext.X, ext.Y, ext.Z)
	if largest <= math3d.Epsilon {
		return
	}
	s := size / largest
	m.Transform(math3d.Compose(
		math3d.Translate(m.Center().Negate()),
		math3d.Scale(math3d.V3(s, s, s)),
	))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetVertex returns the position of vertex i.
// Implements render.MeshRenderer.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetMaterial returns the material at index i, or nil if i is out of
// range or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// BaseColor returns the color of the material used by the most faces.
// ok is false when no face references a material.
func (m *Mesh) BaseColor() (c scene.Color, ok bool) {
	counts := make([]int, len(m.Materials))
	for _, f := range m.Faces {
		if f.Material >= 0 && f.Material < len(counts) {
			counts[f.Material]++
		}
	}
	best := -1
	for i, n := range counts {
		if n > 0 && (best < 0 || n > counts[best]) {
			best = i
		}
	}
	if best < 0 {
		return scene.Color{}, false
	}
	return m.Materials[best].BaseColor, true
}
