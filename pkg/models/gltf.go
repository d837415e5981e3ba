package models

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/mitchellh/go-homedir"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/scene"
	"github.com/taigrr/softrender/pkg/status"
)

// LoadGLTF loads a glTF or GLB file and flattens every triangle primitive
// of every mesh into one Mesh. Winding is kept as stored.
func LoadGLTF(path string) (*Mesh, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %s: %v: %w", path, err, status.FileOpenFailed)
	}
	doc, err := gltf.Open(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("open gltf: %v: %w", err, status.FileOpenFailed)
		}
		return nil, fmt.Errorf("decode gltf %s: %v: %w", path, err, status.InvalidValue)
	}
	return MeshFromDocument(doc, filepath.Base(path))
}

// MeshFromDocument converts an already decoded glTF document. Buffers
// must have their data loaded.
func MeshFromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	mesh.Materials = materials(doc)

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func materials(doc *gltf.Document) []Material {
	out := make([]Material, len(doc.Materials))
	for i, m := range doc.Materials {
		c := scene.Color{R: 1, G: 1, B: 1}
		if pbr := m.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			f := pbr.BaseColorFactor
			c = scene.Color{R: unit(f[0]), G: unit(f[1]), B: unit(f[2])}
		}
		out[i] = Material{Name: m.Name, BaseColor: c}
	}
	return out
}

func unit(v float64) float32 {
	return math32.Min(math32.Max(float32(v), 0), 1)
}

// processMesh appends the triangle primitives of m.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Lines, points and strips carry no filled faces.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return fmt.Errorf("position accessor %d out of range: %w", posIdx, status.InvalidValue)
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %v: %w", err, status.InvalidValue)
		}

		material := -1
		if prim.Material != nil && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		base := len(mesh.Vertices)
		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, math3d.V3(p[0], p[1], p[2]))
		}

		if prim.Indices == nil {
			// Unindexed: consecutive vertex triples.
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, Face{
					V:        [3]int{base + i, base + i + 1, base + i + 2},
					Material: material,
				})
			}
			continue
		}

		if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
			return fmt.Errorf("index accessor %d out of range: %w", *prim.Indices, status.InvalidValue)
		}
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %v: %w", err, status.InvalidValue)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{Material: material}
			for j := range 3 {
				idx := int(indices[i+j])
				if idx >= len(positions) {
					return fmt.Errorf("index %d exceeds %d vertices: %w", idx, len(positions), status.InvalidValue)
				}
				f.V[j] = base + idx
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}
