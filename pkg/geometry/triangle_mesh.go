package geometry

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// meshBVHSeed fixes the split axes of mesh hierarchies so that meshes build identically
const meshBVHSeed = 1

// Mesh is an ordered collection of triangles sharing one material and name.
// It uses an internal BVH for fast intersection tests.
type Mesh struct {
	triangles []*Triangle
	bvh       *BVH
	material  *material.Material
	name      string
}

// NewMesh creates a mesh from vertices and face indices.
// Each group of 3 indices in faces forms a triangle.
func NewMesh(name string, vertices []core.Vec3, faces []int, mat *material.Material) (*Mesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("mesh %q: face indices must be a multiple of 3, got %d", name, len(faces))
	}

	numTriangles := len(faces) / 3
	triangles := make([]*Triangle, numTriangles)
	shapes := make([]Shape, numTriangles)

	for i := 0; i < numTriangles; i++ {
		idx := faces[i*3 : i*3+3]
		for _, vi := range idx {
			if vi < 0 || vi >= len(vertices) {
				return nil, fmt.Errorf("mesh %q: face %d references vertex %d out of %d", name, i, vi, len(vertices))
			}
		}
		triangles[i] = NewTriangle(name, vertices[idx[0]], vertices[idx[1]], vertices[idx[2]], mat)
		shapes[i] = triangles[i]
	}

	bvh, err := NewBVH(shapes, rand.New(rand.NewSource(meshBVHSeed)))
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}

	return &Mesh{
		triangles: triangles,
		bvh:       bvh,
		material:  mat,
		name:      name,
	}, nil
}

// Name returns the mesh name
func (m *Mesh) Name() string { return m.name }

// Material returns the material shared by every triangle
func (m *Mesh) Material() *material.Material { return m.material }

// Hit tests if a ray intersects with any triangle in the mesh
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	return m.bvh.Hit(ray, tMin, tMax, rec)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (m *Mesh) BoundingBox() (core.AABB, bool) {
	return m.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Triangles returns the individual triangles
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}
