package models

import (
	"path/filepath"
	"strings"

	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/render"
)

// IsGLTF reports whether path names a glTF or GLB file.
func IsGLTF(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return true
	}
	return false
}

// Load reads a model by extension: glTF/GLB through LoadGLTF and
// anything else as the raw triangle format.
func Load(path string) (*Mesh, error) {
	if IsGLTF(path) {
		return LoadGLTF(path)
	}
	var tris render.TriangleBuffer
	if err := LoadRaw(path, &tris); err != nil {
		return nil, err
	}
	m := FromTriangles(filepath.Base(path), tris)
	return m, nil
}

// FromTriangles builds an unindexed mesh with three vertices per triangle.
func FromTriangles(name string, tris render.TriangleBuffer) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0, 3*len(tris)),
		Faces:    make([]Face, 0, len(tris)),
	}
	for _, t := range tris {
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices, t.V[0].Vec3(), t.V[1].Vec3(), t.V[2].Vec3())
		m.Faces = append(m.Faces, Face{V: [3]int{base, base + 1, base + 2}, Material: -1})
	}
	m.CalculateBounds()
	return m
}
